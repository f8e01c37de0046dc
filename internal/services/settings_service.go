package services

import (
	"context"

	"carwash-backend/internal/media"
	"carwash-backend/internal/models"
	"carwash-backend/internal/repositories"
)

type SettingsService struct {
	Repo  *repositories.SettingsRepository
	Media media.Store
}

func NewSettingsService(repo *repositories.SettingsRepository, store media.Store) *SettingsService {
	return &SettingsService{Repo: repo, Media: store}
}

func (s *SettingsService) GetSettings(ctx context.Context) (*models.Settings, error) {
	return s.Repo.GetOrCreate(ctx)
}

// UpdateSettings applies a partial update to the singleton row. Currency only
// accepts the supported values; anything else leaves it unchanged. A logo
// payload is stored via the media backend; an empty string clears the logo
// and a payload that fails to convert leaves it unchanged.
func (s *SettingsService) UpdateSettings(ctx context.Context, req *models.UpdateSettingsRequest) (*models.Settings, error) {
	current, err := s.Repo.GetOrCreate(ctx)
	if err != nil {
		return nil, err
	}

	if req.CompanyName != nil {
		current.CompanyName = *req.CompanyName
	}
	if req.EIN != nil {
		current.EIN = req.EIN
	}
	if req.Address != nil {
		current.Address = req.Address
	}
	if req.Phone != nil {
		current.Phone = req.Phone
	}
	if req.Email != nil {
		current.Email = req.Email
	}
	if req.Hours != nil {
		current.Hours = req.Hours
	}
	if req.Currency != nil && (*req.Currency == models.CurrencyUSD || *req.Currency == models.CurrencyCOP) {
		current.Currency = *req.Currency
	}
	if req.Logo != nil {
		if *req.Logo == "" {
			current.Logo = nil
		} else if url, err := s.Media.Save(ctx, *req.Logo); err == nil {
			current.Logo = &url
		}
	}

	if err := s.Repo.Update(ctx, current); err != nil {
		return nil, err
	}
	return current, nil
}
