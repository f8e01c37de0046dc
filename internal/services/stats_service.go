package services

import (
	"context"
	"sort"
	"time"

	"carwash-backend/internal/auth"
	"carwash-backend/internal/models"
	"carwash-backend/internal/timeutil"
)

// StatsEntrySource is the read surface reporting needs.
type StatsEntrySource interface {
	ListWindow(ctx context.Context, from, to time.Time, employeeID *int) ([]*models.EntryDetail, error)
	CountByStatus(ctx context.Context, status string, employeeID *int) (int, error)
}

type Counter interface {
	Count(ctx context.Context) (int, error)
}

type StatsService struct {
	Entries   StatsEntrySource
	Vehicles  Counter
	Employees Counter
	Services  Counter
}

func NewStatsService(entries StatsEntrySource, vehicles, employees, services Counter) *StatsService {
	return &StatsService{
		Entries:   entries,
		Vehicles:  vehicles,
		Employees: employees,
		Services:  services,
	}
}

// Compute recomputes all rollups from today's entries in the business
// timezone. Technician sessions see only their own numbers. The in-progress
// count is all-time, not today-scoped, matching the historical behavior.
func (s *StatsService) Compute(ctx context.Context, sess *auth.Session) (*models.Stats, error) {
	stats := &models.Stats{
		ByEmployee: []models.EmployeeRollup{},
		ByVehicle:  []models.VehicleRollup{},
		ByLocation: []models.LocationRollup{},
	}

	var err error
	if stats.TotalVehicles, err = s.Vehicles.Count(ctx); err != nil {
		return nil, err
	}
	if stats.TotalEmployees, err = s.Employees.Count(ctx); err != nil {
		return nil, err
	}
	if stats.TotalServices, err = s.Services.Count(ctx); err != nil {
		return nil, err
	}

	scope := scopeEmployee(sess)
	now := timeutil.Now()
	today, err := s.Entries.ListWindow(ctx, timeutil.StartOfDay(now), timeutil.EndOfDay(now), scope)
	if err != nil {
		return nil, err
	}

	stats.TodayEntries = len(today)
	if stats.InProgressToday, err = s.Entries.CountByStatus(ctx, models.StatusInProgress, scope); err != nil {
		return nil, err
	}

	byEmployee := map[int]*models.EmployeeRollup{}
	byVehicle := map[int]*models.VehicleRollup{}
	byLocation := map[int]*models.LocationRollup{}

	for _, e := range today {
		var price float64
		if e.Service != nil {
			price = e.Service.Price
		}
		completed := e.Status == models.StatusCompleted

		switch e.Status {
		case models.StatusPending:
			stats.PendingToday++
		case models.StatusCompleted:
			stats.CompletedToday++
			stats.TotalRevenue += price
		}

		emp := byEmployee[e.EmployeeID]
		if emp == nil {
			emp = &models.EmployeeRollup{EmployeeID: e.EmployeeID}
			if e.Employee != nil {
				emp.Name = e.Employee.Name
			}
			byEmployee[e.EmployeeID] = emp
		}
		emp.Entries++
		if completed {
			emp.Completed++
			emp.Revenue += price
		}

		veh := byVehicle[e.VehicleID]
		if veh == nil {
			veh = &models.VehicleRollup{VehicleID: e.VehicleID}
			if e.Vehicle != nil {
				veh.InternalCode = e.Vehicle.InternalCode
			}
			byVehicle[e.VehicleID] = veh
		}
		veh.Entries++

		locID := 0
		if e.Employee != nil && e.Employee.LocationID != nil {
			locID = *e.Employee.LocationID
		}
		loc := byLocation[locID]
		if loc == nil {
			loc = &models.LocationRollup{LocationID: locID}
			byLocation[locID] = loc
		}
		loc.Entries++
		if completed {
			loc.Revenue += price
		}
	}

	for _, r := range byEmployee {
		stats.ByEmployee = append(stats.ByEmployee, *r)
	}
	for _, r := range byVehicle {
		stats.ByVehicle = append(stats.ByVehicle, *r)
	}
	for _, r := range byLocation {
		stats.ByLocation = append(stats.ByLocation, *r)
	}
	sort.Slice(stats.ByEmployee, func(i, j int) bool { return stats.ByEmployee[i].EmployeeID < stats.ByEmployee[j].EmployeeID })
	sort.Slice(stats.ByVehicle, func(i, j int) bool { return stats.ByVehicle[i].VehicleID < stats.ByVehicle[j].VehicleID })
	sort.Slice(stats.ByLocation, func(i, j int) bool { return stats.ByLocation[i].LocationID < stats.ByLocation[j].LocationID })

	return stats, nil
}
