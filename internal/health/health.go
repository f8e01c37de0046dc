package health

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Checker struct {
	db *pgxpool.Pool
}

type Status struct {
	Status   string   `json:"status"`
	Database Database `json:"database"`
}

type Database struct {
	Status       string `json:"status"`
	ResponseTime int64  `json:"response_time_ms"`
}

func NewChecker(db *pgxpool.Pool) *Checker {
	return &Checker{db: db}
}

// Check pings the database with a short timeout and rolls the result up
// into an overall status.
func (c *Checker) Check(ctx context.Context) Status {
	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	start := time.Now()
	err := c.db.Ping(pingCtx)
	elapsed := time.Since(start).Milliseconds()

	db := Database{Status: "healthy", ResponseTime: elapsed}
	overall := "healthy"
	if err != nil {
		db.Status = "unhealthy"
		overall = "unhealthy"
	}
	return Status{Status: overall, Database: db}
}
