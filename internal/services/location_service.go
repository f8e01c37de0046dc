package services

import (
	"context"

	"carwash-backend/internal/apperr"
	"carwash-backend/internal/models"
	"carwash-backend/internal/repositories"
)

type LocationService struct {
	Repo *repositories.LocationRepository
}

func NewLocationService(repo *repositories.LocationRepository) *LocationService {
	return &LocationService{Repo: repo}
}

func (s *LocationService) CreateLocation(ctx context.Context, l *models.Location) (*models.Location, error) {
	if l.Name == "" {
		return nil, apperr.Invalid("Nombre requerido")
	}
	if err := s.Repo.Create(ctx, l); err != nil {
		return nil, err
	}
	return l, nil
}

func (s *LocationService) ListLocations(ctx context.Context) ([]*models.Location, error) {
	return s.Repo.List(ctx)
}

func (s *LocationService) UpdateLocation(ctx context.Context, id int, req *models.UpdateLocationRequest) (*models.Location, error) {
	l, err := s.Repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Name != nil {
		l.Name = *req.Name
	}
	if req.Address != nil {
		l.Address = *req.Address
	}
	if req.City != nil {
		l.City = *req.City
	}
	if req.Country != nil {
		l.Country = *req.Country
	}
	if req.IsActive != nil {
		l.IsActive = *req.IsActive
	}
	if err := s.Repo.Update(ctx, l); err != nil {
		return nil, err
	}
	return l, nil
}

func (s *LocationService) DeleteLocation(ctx context.Context, id int) error {
	return s.Repo.Delete(ctx, id)
}
