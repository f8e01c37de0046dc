package main

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"

	"carwash-backend/internal/apperr"
	"carwash-backend/internal/auth"
	"carwash-backend/internal/models"
	"carwash-backend/internal/repositories"
	"carwash-backend/internal/timeutil"
)

// runSeed loads the demo dataset. Every step is idempotent so the command
// can be re-run safely.
func runSeed(ctx context.Context, pool *pgxpool.Pool, log *logrus.Logger) error {
	employees := repositories.NewEmployeeRepository(pool)
	vehicles := repositories.NewVehicleRepository(pool)
	servicesRepo := repositories.NewServiceRepository(pool)
	brands := repositories.NewBrandRepository(pool)
	carModels := repositories.NewCarModelRepository(pool)
	settings := repositories.NewSettingsRepository(pool)
	entries := repositories.NewEntryRepository(pool)

	adminHash, err := auth.HashPassword("admin123")
	if err != nil {
		return err
	}

	seedEmployees := []*models.Employee{
		{Name: "Administrador", Email: "admin@carwash.local", Username: "admin", PasswordHash: adminHash, Phone: "000000000", Role: models.RoleAdmin, IsActive: true, Language: "es"},
		{Name: "Juan Pérez", Email: "juan.perez@carwash.local", Phone: "555111222", Role: models.RoleTechnician, IsActive: true, Language: "es"},
		{Name: "María López", Email: "maria.lopez@carwash.local", Phone: "555333444", Role: models.RoleTechnician, IsActive: true, Language: "es"},
	}
	byEmail := map[string]*models.Employee{}
	for _, e := range seedEmployees {
		existing, err := employees.GetByEmail(ctx, e.Email)
		if err == nil {
			byEmail[e.Email] = existing
			continue
		}
		if apperr.KindOf(err) != apperr.KindNotFound {
			return err
		}
		if err := employees.Create(ctx, e); err != nil {
			return err
		}
		byEmail[e.Email] = e
	}

	seedVehicles := []*models.Vehicle{
		{VIN: "1HGCM82633A004352", InternalCode: "CW-001", Brand: "Toyota", Model: "Corolla", Color: "Blanco", Year: 2019},
		{VIN: "JHMFA16586S000123", InternalCode: "CW-002", Brand: "Honda", Model: "Civic", Color: "Negro", Year: 2020},
	}
	byVIN := map[string]*models.Vehicle{}
	for _, v := range seedVehicles {
		existing, err := vehicles.FindByVINOrCode(ctx, v.VIN, v.InternalCode)
		if err == nil {
			byVIN[v.VIN] = existing
			continue
		}
		if apperr.KindOf(err) != apperr.KindNotFound {
			return err
		}
		if err := vehicles.Create(ctx, v); err != nil {
			return err
		}
		byVIN[v.VIN] = v
	}

	seedServices := []*models.Service{
		{Name: "Lavado Básico", Description: "Lavado exterior rápido", Price: 150, Duration: 20, IsActive: true},
		{Name: "Lavado Premium", Description: "Exterior e interior con detallado", Price: 350, Duration: 60, IsActive: true},
		{Name: "Desinfección", Description: "Desinfección interior", Price: 250, Duration: 40, IsActive: true},
	}
	existing, err := servicesRepo.List(ctx)
	if err != nil {
		return err
	}
	byName := map[string]*models.Service{}
	for _, s := range existing {
		byName[s.Name] = s
	}
	for _, s := range seedServices {
		if found, ok := byName[s.Name]; ok {
			byName[s.Name] = found
			continue
		}
		if err := servicesRepo.Create(ctx, s); err != nil {
			return err
		}
		byName[s.Name] = s
	}

	brandModels := map[string][]string{
		"Toyota": {"Corolla", "Hilux"},
		"Honda":  {"Civic", "CR-V"},
	}
	for brandName, modelNames := range brandModels {
		brand := &models.Brand{Name: brandName, IsActive: true}
		if err := brands.Create(ctx, brand); err != nil {
			if apperr.KindOf(err) != apperr.KindConflict {
				return err
			}
			found, err := brands.GetByName(ctx, brandName)
			if err != nil {
				return err
			}
			brand = found
		}
		current, err := carModels.List(ctx, &brand.ID)
		if err != nil {
			return err
		}
		have := map[string]bool{}
		for _, m := range current {
			have[m.Name] = true
		}
		for _, name := range modelNames {
			if have[name] {
				continue
			}
			if err := carModels.Create(ctx, &models.CarModel{BrandID: brand.ID, Name: name, IsActive: true}); err != nil {
				return err
			}
		}
	}

	s, err := settings.GetOrCreate(ctx)
	if err != nil {
		return err
	}
	if s.CompanyName == "Carwash" {
		phone, email := "555123456", "contacto@carwash.local"
		address, hours := "Av. Principal 123", "Lun-Sáb 8:00-18:00"
		s.CompanyName = "Mi Carwash"
		s.Phone = &phone
		s.Email = &email
		s.Address = &address
		s.Hours = &hours
		if err := settings.Update(ctx, s); err != nil {
			return err
		}
	}

	vehicle := byVIN["1HGCM82633A004352"]
	pending, err := entries.HasPending(ctx, vehicle.ID)
	if err != nil {
		return err
	}
	if !pending {
		notes := "Cliente espera en recepción"
		entry := &models.Entry{
			VehicleID:   vehicle.ID,
			EmployeeID:  byEmail["juan.perez@carwash.local"].ID,
			ServiceID:   byName["Lavado Básico"].ID,
			Status:      models.StatusPending,
			ArrivalDate: timeutil.Now(),
			Notes:       &notes,
		}
		if err := entries.Create(ctx, entry); err != nil {
			return err
		}
		photos := []models.Photo{
			{EntryID: entry.ID, Type: models.PhotoInitial, URL: "https://example.com/photo1.jpg"},
			{EntryID: entry.ID, Type: models.PhotoFinal, URL: "https://example.com/photo2.jpg"},
		}
		if err := entries.AddPhotos(ctx, photos); err != nil {
			return err
		}
	}

	log.WithFields(logrus.Fields{
		"employees": len(seedEmployees),
		"vehicles":  len(seedVehicles),
		"services":  len(seedServices),
	}).Info("seed data ensured")
	return nil
}
