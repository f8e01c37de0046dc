package services

import (
	"context"

	"carwash-backend/internal/apperr"
	"carwash-backend/internal/models"
	"carwash-backend/internal/repositories"
)

// CatalogService covers the service menu and the brand/model reference lists.
type CatalogService struct {
	Services *repositories.ServiceRepository
	Brands   *repositories.BrandRepository
	Models   *repositories.CarModelRepository
}

func NewCatalogService(services *repositories.ServiceRepository, brands *repositories.BrandRepository, carModels *repositories.CarModelRepository) *CatalogService {
	return &CatalogService{Services: services, Brands: brands, Models: carModels}
}

func (s *CatalogService) CreateService(ctx context.Context, req *models.CreateServiceRequest) (*models.Service, error) {
	if req.Name == "" || req.Price == nil || req.Duration == nil {
		return nil, apperr.Invalid("Datos inválidos")
	}
	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}
	svc := &models.Service{
		Name:        req.Name,
		Description: req.Description,
		Price:       *req.Price,
		Duration:    *req.Duration,
		IsActive:    active,
	}
	if err := s.Services.Create(ctx, svc); err != nil {
		return nil, err
	}
	return svc, nil
}

func (s *CatalogService) ListServices(ctx context.Context) ([]*models.Service, error) {
	return s.Services.List(ctx)
}

func (s *CatalogService) UpdateService(ctx context.Context, id int, req *models.UpdateServiceRequest) (*models.Service, error) {
	svc, err := s.Services.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Name != nil {
		svc.Name = *req.Name
	}
	if req.Description != nil {
		svc.Description = *req.Description
	}
	if req.Price != nil {
		svc.Price = *req.Price
	}
	if req.Duration != nil {
		svc.Duration = *req.Duration
	}
	if req.IsActive != nil {
		svc.IsActive = *req.IsActive
	}
	if err := s.Services.Update(ctx, svc); err != nil {
		return nil, err
	}
	return svc, nil
}

func (s *CatalogService) DeleteService(ctx context.Context, id int) error {
	return s.Services.Delete(ctx, id)
}

func (s *CatalogService) CreateBrand(ctx context.Context, name string, isActive *bool) (*models.Brand, error) {
	if name == "" {
		return nil, apperr.Invalid("Nombre requerido")
	}
	b := &models.Brand{Name: name, IsActive: true}
	if isActive != nil {
		b.IsActive = *isActive
	}
	if err := s.Brands.Create(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *CatalogService) ListBrands(ctx context.Context) ([]*models.Brand, error) {
	return s.Brands.List(ctx)
}

func (s *CatalogService) UpdateBrand(ctx context.Context, id int, name *string, isActive *bool) (*models.Brand, error) {
	b, err := s.Brands.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if name != nil {
		b.Name = *name
	}
	if isActive != nil {
		b.IsActive = *isActive
	}
	if err := s.Brands.Update(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *CatalogService) DeleteBrand(ctx context.Context, id int) error {
	return s.Brands.Delete(ctx, id)
}

func (s *CatalogService) CreateModel(ctx context.Context, name string, brandID int, isActive *bool) (*models.CarModel, error) {
	if name == "" || brandID == 0 {
		return nil, apperr.Invalid("Datos inválidos")
	}
	m := &models.CarModel{BrandID: brandID, Name: name, IsActive: true}
	if isActive != nil {
		m.IsActive = *isActive
	}
	if err := s.Models.Create(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *CatalogService) ListModels(ctx context.Context, brandID *int) ([]*models.CarModel, error) {
	return s.Models.List(ctx, brandID)
}

func (s *CatalogService) UpdateModel(ctx context.Context, id int, name *string, brandID *int, isActive *bool) (*models.CarModel, error) {
	m, err := s.Models.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if name != nil {
		m.Name = *name
	}
	if brandID != nil {
		m.BrandID = *brandID
	}
	if isActive != nil {
		m.IsActive = *isActive
	}
	if err := s.Models.Update(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *CatalogService) DeleteModel(ctx context.Context, id int) error {
	return s.Models.Delete(ctx, id)
}
