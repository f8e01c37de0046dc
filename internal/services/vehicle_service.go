package services

import (
	"context"

	"github.com/sirupsen/logrus"

	"carwash-backend/internal/apperr"
	"carwash-backend/internal/media"
	"carwash-backend/internal/models"
)

// VehicleStore is the persistence surface vehicle management needs.
type VehicleStore interface {
	Create(ctx context.Context, v *models.Vehicle) error
	Get(ctx context.Context, id int) (*models.Vehicle, error)
	FindByVINOrCode(ctx context.Context, vin, code string) (*models.Vehicle, error)
	List(ctx context.Context) ([]*models.Vehicle, error)
	Update(ctx context.Context, v *models.Vehicle) error
	MediaURLs(ctx context.Context, vehicleID int) ([]string, error)
	DeleteCascade(ctx context.Context, vehicleID int) error
}

type VehicleService struct {
	Vehicles VehicleStore
	Media    media.Store
	Log      *logrus.Logger
}

func NewVehicleService(vehicles VehicleStore, store media.Store, log *logrus.Logger) *VehicleService {
	return &VehicleService{Vehicles: vehicles, Media: store, Log: log}
}

func (s *VehicleService) CreateVehicle(ctx context.Context, req *models.CreateVehicleRequest) (*models.Vehicle, error) {
	if req.VIN == "" || req.InternalCode == "" || req.Brand == "" || req.Model == "" || req.Color == "" || req.Year == 0 {
		return nil, apperr.Invalid("Datos incompletos")
	}
	v := &models.Vehicle{
		VIN:          req.VIN,
		InternalCode: req.InternalCode,
		Brand:        req.Brand,
		Model:        req.Model,
		Color:        req.Color,
		Year:         req.Year,
	}
	if err := s.Vehicles.Create(ctx, v); err != nil {
		return nil, err
	}
	return v, nil
}

func (s *VehicleService) GetVehicle(ctx context.Context, id int) (*models.Vehicle, error) {
	return s.Vehicles.Get(ctx, id)
}

func (s *VehicleService) ListVehicles(ctx context.Context) ([]*models.Vehicle, error) {
	return s.Vehicles.List(ctx)
}

// FindByCode resolves a scanner read: either identifier may be present and
// both columns are checked.
func (s *VehicleService) FindByCode(ctx context.Context, vin, code string) (*models.Vehicle, error) {
	if vin == "" && code == "" {
		return nil, apperr.Invalid("Debe enviar vin o code")
	}
	return s.Vehicles.FindByVINOrCode(ctx, vin, code)
}

func (s *VehicleService) UpdateVehicle(ctx context.Context, id int, req *models.UpdateVehicleRequest) (*models.Vehicle, error) {
	v, err := s.Vehicles.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.VIN != nil {
		v.VIN = *req.VIN
	}
	if req.InternalCode != nil {
		v.InternalCode = *req.InternalCode
	}
	if req.Brand != nil {
		v.Brand = *req.Brand
	}
	if req.Model != nil {
		v.Model = *req.Model
	}
	if req.Color != nil {
		v.Color = *req.Color
	}
	if req.Year != nil {
		v.Year = *req.Year
	}
	if err := s.Vehicles.Update(ctx, v); err != nil {
		return nil, err
	}
	return v, nil
}

// DeleteVehicle removes the vehicle and its dependent rows in one
// transaction, then cleans up stored media. File deletion is best-effort:
// the rows are already gone and a leftover file is harmless.
func (s *VehicleService) DeleteVehicle(ctx context.Context, id int) error {
	urls, err := s.Vehicles.MediaURLs(ctx, id)
	if err != nil {
		return err
	}
	if err := s.Vehicles.DeleteCascade(ctx, id); err != nil {
		return err
	}
	for _, u := range urls {
		if err := s.Media.Delete(ctx, u); err != nil && s.Log != nil {
			s.Log.WithError(err).WithField("url", u).Warn("could not delete media file")
		}
	}
	return nil
}
