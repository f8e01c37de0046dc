package models

// Stats is recomputed in memory on every request; nothing is precomputed or
// cached. Revenue reads the service price current at query time, not a
// snapshot taken when the order completed.
type Stats struct {
	TotalVehicles   int     `json:"totalVehicles"`
	TotalEmployees  int     `json:"totalEmployees"`
	TotalServices   int     `json:"totalServices"`
	TodayEntries    int     `json:"todayEntries"`
	InProgressToday int     `json:"inProgressToday"`
	PendingToday    int     `json:"pendingToday"`
	CompletedToday  int     `json:"completedToday"`
	TotalRevenue    float64 `json:"totalRevenue"`

	ByEmployee []EmployeeRollup `json:"byEmployee"`
	ByVehicle  []VehicleRollup  `json:"byVehicle"`
	ByLocation []LocationRollup `json:"byLocation"`
}

type EmployeeRollup struct {
	EmployeeID int     `json:"employeeId"`
	Name       string  `json:"name"`
	Entries    int     `json:"entries"`
	Completed  int     `json:"completed"`
	Revenue    float64 `json:"revenue"`
}

type VehicleRollup struct {
	VehicleID    int    `json:"vehicleId"`
	InternalCode string `json:"internalCode"`
	Entries      int    `json:"entries"`
}

// LocationRollup groups today's entries by the technician's assigned
// location; entries whose employee has no location fall under LocationID 0.
type LocationRollup struct {
	LocationID int     `json:"locationId"`
	Entries    int     `json:"entries"`
	Revenue    float64 `json:"revenue"`
}
