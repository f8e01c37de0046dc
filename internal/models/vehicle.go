package models

import "time"

type Vehicle struct {
	ID           int       `json:"id"`
	VIN          string    `json:"vin"`
	InternalCode string    `json:"internalCode"`
	Brand        string    `json:"brand"`
	Model        string    `json:"model"`
	Color        string    `json:"color"`
	Year         int       `json:"year"`
	CreatedAt    time.Time `json:"createdAt"`
}

type CreateVehicleRequest struct {
	VIN          string `json:"vin"`
	InternalCode string `json:"internalCode"`
	Brand        string `json:"brand"`
	Model        string `json:"model"`
	Color        string `json:"color"`
	Year         int    `json:"year"`
}

type UpdateVehicleRequest struct {
	VIN          *string `json:"vin"`
	InternalCode *string `json:"internalCode"`
	Brand        *string `json:"brand"`
	Model        *string `json:"model"`
	Color        *string `json:"color"`
	Year         *int    `json:"year"`
}
