package monitoring

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/mem"
)

// Collector samples host and database-pool metrics for the admin dashboard.
type Collector struct {
	db      *pgxpool.Pool
	started time.Time
}

type SystemStats struct {
	CPUPercent    float64 `json:"cpuPercent"`
	MemoryPercent float64 `json:"memoryPercent"`
	MemoryUsed    string  `json:"memoryUsed"`
	MemoryTotal   string  `json:"memoryTotal"`
	DiskPercent   float64 `json:"diskPercent"`
	DiskUsed      string  `json:"diskUsed"`
	DiskTotal     string  `json:"diskTotal"`
	Uptime        string  `json:"uptime"`

	DBStatus       string `json:"dbStatus"`
	DBResponseMS   int64  `json:"dbResponseMs"`
	DBConnsTotal   int32  `json:"dbConnsTotal"`
	DBConnsIdle    int32  `json:"dbConnsIdle"`
	DBConnsAcquired int32 `json:"dbConnsAcquired"`
}

func NewCollector(db *pgxpool.Pool) *Collector {
	return &Collector{db: db, started: time.Now()}
}

func formatBytes(b uint64) string {
	const gb = 1024 * 1024 * 1024
	const mb = 1024 * 1024
	if b >= gb {
		return fmt.Sprintf("%.1f GB", float64(b)/gb)
	}
	return fmt.Sprintf("%.0f MB", float64(b)/mb)
}

// Snapshot collects one sample. Host probes that fail leave their fields
// zeroed rather than failing the whole snapshot.
func (c *Collector) Snapshot(ctx context.Context) *SystemStats {
	stats := &SystemStats{
		Uptime: time.Since(c.started).Round(time.Second).String(),
	}

	if percents, err := cpu.Percent(0, false); err == nil && len(percents) > 0 {
		stats.CPUPercent = percents[0]
	}
	if vm, err := mem.VirtualMemory(); err == nil {
		stats.MemoryPercent = vm.UsedPercent
		stats.MemoryUsed = formatBytes(vm.Used)
		stats.MemoryTotal = formatBytes(vm.Total)
	}
	if du, err := disk.Usage("/"); err == nil {
		stats.DiskPercent = du.UsedPercent
		stats.DiskUsed = formatBytes(du.Used)
		stats.DiskTotal = formatBytes(du.Total)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	start := time.Now()
	if err := c.db.Ping(pingCtx); err != nil {
		stats.DBStatus = "unhealthy"
	} else {
		stats.DBStatus = "healthy"
	}
	stats.DBResponseMS = time.Since(start).Milliseconds()

	pool := c.db.Stat()
	stats.DBConnsTotal = pool.TotalConns()
	stats.DBConnsIdle = pool.IdleConns()
	stats.DBConnsAcquired = pool.AcquiredConns()

	return stats
}
