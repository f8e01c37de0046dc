package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"carwash-backend/internal/auth"
	"carwash-backend/internal/models"
)

type fakeStatsSource struct {
	today      []*models.EntryDetail
	inProgress int

	windowScope *int
	countScope  *int
	from, to    time.Time
}

func (f *fakeStatsSource) ListWindow(ctx context.Context, from, to time.Time, employeeID *int) ([]*models.EntryDetail, error) {
	f.from, f.to = from, to
	f.windowScope = employeeID
	return f.today, nil
}

func (f *fakeStatsSource) CountByStatus(ctx context.Context, status string, employeeID *int) (int, error) {
	f.countScope = employeeID
	return f.inProgress, nil
}

type fixedCounter int

func (c fixedCounter) Count(ctx context.Context) (int, error) { return int(c), nil }

func statsEntry(id, vehicleID, employeeID int, status string, price float64, locationID *int) *models.EntryDetail {
	return &models.EntryDetail{
		Entry: models.Entry{ID: id, VehicleID: vehicleID, EmployeeID: employeeID, Status: status},
		Vehicle:  &models.Vehicle{ID: vehicleID, InternalCode: fmt.Sprintf("CW-%03d", vehicleID)},
		Employee: &models.EmployeeSummary{ID: employeeID, Name: "Empleado", LocationID: locationID},
		Service:  &models.Service{ID: 1, Price: price},
	}
}

func TestComputeStats(t *testing.T) {
	loc := 3
	source := &fakeStatsSource{
		inProgress: 4,
		today: []*models.EntryDetail{
			statsEntry(1, 1, 10, models.StatusCompleted, 150, &loc),
			statsEntry(2, 2, 10, models.StatusCompleted, 350, nil),
			statsEntry(3, 1, 20, models.StatusPending, 250, &loc),
		},
	}
	svc := NewStatsService(source, fixedCounter(8), fixedCounter(5), fixedCounter(3))

	stats, err := svc.Compute(context.Background(), &auth.Session{EmployeeID: 1, Role: models.RoleAdmin})
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}

	if stats.TotalVehicles != 8 || stats.TotalEmployees != 5 || stats.TotalServices != 3 {
		t.Fatalf("totals = %d/%d/%d", stats.TotalVehicles, stats.TotalEmployees, stats.TotalServices)
	}
	if stats.TodayEntries != 3 || stats.PendingToday != 1 || stats.CompletedToday != 2 {
		t.Fatalf("today = %d pending=%d completed=%d", stats.TodayEntries, stats.PendingToday, stats.CompletedToday)
	}
	if stats.InProgressToday != 4 {
		t.Fatalf("inProgressToday = %d, want the all-time count", stats.InProgressToday)
	}
	if stats.TotalRevenue != 500 {
		t.Fatalf("revenue = %v, want 500", stats.TotalRevenue)
	}
	if source.windowScope != nil {
		t.Fatalf("admin window scope = %v, want unscoped", source.windowScope)
	}
	if !source.to.Equal(source.from.AddDate(0, 0, 1)) {
		t.Fatalf("window [%v, %v) is not one local day", source.from, source.to)
	}
}

func TestComputeStatsRollups(t *testing.T) {
	loc := 3
	source := &fakeStatsSource{
		today: []*models.EntryDetail{
			statsEntry(1, 2, 20, models.StatusCompleted, 100, nil),
			statsEntry(2, 1, 10, models.StatusCompleted, 150, &loc),
			statsEntry(3, 1, 10, models.StatusPending, 150, &loc),
		},
	}
	svc := NewStatsService(source, fixedCounter(0), fixedCounter(0), fixedCounter(0))

	stats, err := svc.Compute(context.Background(), nil)
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}

	if len(stats.ByEmployee) != 2 {
		t.Fatalf("byEmployee = %+v", stats.ByEmployee)
	}
	// Sorted by employee id.
	if stats.ByEmployee[0].EmployeeID != 10 || stats.ByEmployee[1].EmployeeID != 20 {
		t.Fatalf("byEmployee order = %+v", stats.ByEmployee)
	}
	if e := stats.ByEmployee[0]; e.Entries != 2 || e.Completed != 1 || e.Revenue != 150 {
		t.Fatalf("employee 10 rollup = %+v", e)
	}

	if len(stats.ByVehicle) != 2 || stats.ByVehicle[0].VehicleID != 1 || stats.ByVehicle[0].Entries != 2 {
		t.Fatalf("byVehicle = %+v", stats.ByVehicle)
	}

	// Entries whose employee has no location land in bucket 0, sorted first.
	if len(stats.ByLocation) != 2 || stats.ByLocation[0].LocationID != 0 || stats.ByLocation[1].LocationID != 3 {
		t.Fatalf("byLocation = %+v", stats.ByLocation)
	}
	if stats.ByLocation[1].Entries != 2 || stats.ByLocation[1].Revenue != 150 {
		t.Fatalf("location 3 rollup = %+v", stats.ByLocation[1])
	}
}

func TestComputeStatsScopesTechnician(t *testing.T) {
	source := &fakeStatsSource{}
	svc := NewStatsService(source, fixedCounter(0), fixedCounter(0), fixedCounter(0))

	if _, err := svc.Compute(context.Background(), &auth.Session{EmployeeID: 7, Role: models.RoleTechnician}); err != nil {
		t.Fatalf("Compute: %v", err)
	}
	if source.windowScope == nil || *source.windowScope != 7 {
		t.Fatalf("window scope = %v, want employee 7", source.windowScope)
	}
	if source.countScope == nil || *source.countScope != 7 {
		t.Fatalf("count scope = %v, want employee 7", source.countScope)
	}
}
