package models

import "time"

// Entry status values. Transitions are not validated server-side: the UI
// drives pending -> in-progress -> completed, but the API accepts any value,
// matching the historical behavior.
const (
	StatusPending    = "pending"
	StatusInProgress = "in-progress"
	StatusCompleted  = "completed"
)

// Photo attachment types
const (
	PhotoInitial = "initial"
	PhotoFinal   = "final"
	PhotoUpdate  = "update"
)

// MaxPhotosPerRequest caps inline photo payloads on create/complete/update.
const MaxPhotosPerRequest = 4

// Entry is one service order for one vehicle.
type Entry struct {
	ID             int        `json:"id"`
	VehicleID      int        `json:"vehicleId"`
	EmployeeID     int        `json:"employeeId"`
	ServiceID      int        `json:"serviceId"`
	Status         string     `json:"status"`
	ArrivalDate    time.Time  `json:"arrivalDate"`
	CompletionDate *time.Time `json:"completionDate"`
	Notes          *string    `json:"notes"`
	FinalNotes     *string    `json:"finalNotes"`
	CreatedAt      time.Time  `json:"createdAt"`
}

// EntryDetail is an entry enriched with its joined records, the shape every
// read endpoint returns.
type EntryDetail struct {
	Entry
	Vehicle  *Vehicle         `json:"vehicle,omitempty"`
	Employee *EmployeeSummary `json:"employee,omitempty"`
	Service  *Service         `json:"service,omitempty"`
	Photos   []Photo          `json:"photos"`
	Updates  []EntryUpdate    `json:"updates"`
}

// InlineVehicle carries vehicle attributes supplied inline on entry creation
// when no vehicleId is known yet (scanner workflow).
type InlineVehicle struct {
	VIN          string `json:"vin"`
	InternalCode string `json:"internalCode"`
	Brand        string `json:"brand"`
	Model        string `json:"model"`
	Color        string `json:"color"`
	Year         int    `json:"year"`
}

type CreateEntryRequest struct {
	VehicleID     *int           `json:"vehicleId"`
	Vehicle       *InlineVehicle `json:"vehicle"`
	EmployeeID    *int           `json:"employeeId"`
	ServiceID     *int           `json:"serviceId"`
	Status        string         `json:"status"`
	ArrivalDate   string         `json:"arrivalDate"`
	Notes         *string        `json:"notes"`
	InitialPhotos []string       `json:"initialPhotos"`
}

type UpdateEntryRequest struct {
	Status         *string  `json:"status"`
	ArrivalDate    *string  `json:"arrivalDate"`
	CompletionDate *string  `json:"completionDate"`
	Notes          *string  `json:"notes"`
	FinalNotes     *string  `json:"finalNotes"`
	FinalPhotos    []string `json:"finalPhotos"`
}

// EntryPatch is the set of column changes an update resolves to.
type EntryPatch struct {
	Status         *string
	ArrivalDate    *time.Time
	CompletionDate *time.Time
	Notes          *string
	FinalNotes     *string
}

type CreateEntryUpdateRequest struct {
	Text   string   `json:"text"`
	Photos []string `json:"photos"`
}

type EntryUpdate struct {
	ID        int       `json:"id"`
	EntryID   int       `json:"entryId"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"createdAt"`
	Photos    []Photo   `json:"photos,omitempty"`
}

type Photo struct {
	ID       int    `json:"id"`
	EntryID  int    `json:"entryId"`
	UpdateID *int   `json:"updateId,omitempty"`
	Type     string `json:"type"`
	URL      string `json:"url"`
}

// EntryEvent is broadcast over the live feed when an entry is created or its
// status changes.
type EntryEvent struct {
	Type    string       `json:"type"` // "created" or "updated"
	EntryID int          `json:"entryId"`
	Status  string       `json:"status"`
	Entry   *EntryDetail `json:"entry,omitempty"`
}
