package services

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"carwash-backend/internal/apperr"
	"carwash-backend/internal/auth"
	"carwash-backend/internal/media"
	"carwash-backend/internal/metrics"
	"carwash-backend/internal/models"
	"carwash-backend/internal/timeutil"
)

// EntryStore is the persistence surface the entry workflow needs.
type EntryStore interface {
	Create(ctx context.Context, e *models.Entry) error
	HasPending(ctx context.Context, vehicleID int) (bool, error)
	GetRow(ctx context.Context, id int) (*models.Entry, error)
	Get(ctx context.Context, id int) (*models.EntryDetail, error)
	List(ctx context.Context, employeeID *int) ([]*models.EntryDetail, error)
	ListByVehicle(ctx context.Context, vehicleID int) ([]*models.EntryDetail, error)
	Recent(ctx context.Context, limit int) ([]*models.EntryDetail, error)
	AddPhotos(ctx context.Context, photos []models.Photo) error
	Update(ctx context.Context, id int, patch models.EntryPatch, photos []models.Photo, incrementEmployeeID int) error
	CreateUpdate(ctx context.Context, u *models.EntryUpdate) error
	GetUpdate(ctx context.Context, id int) (*models.EntryUpdate, error)
}

// VehicleFinder resolves and registers vehicles during order creation.
type VehicleFinder interface {
	Get(ctx context.Context, id int) (*models.Vehicle, error)
	FindByVINOrCode(ctx context.Context, vin, code string) (*models.Vehicle, error)
	Create(ctx context.Context, v *models.Vehicle) error
}

// EntryPublisher pushes entry events to the live feed.
type EntryPublisher interface {
	Publish(ev models.EntryEvent)
}

const recentLimit = 5

type EntryService struct {
	Entries  EntryStore
	Vehicles VehicleFinder
	Media    media.Store
	Hub      EntryPublisher
	Log      *logrus.Logger
}

func NewEntryService(entries EntryStore, vehicles VehicleFinder, store media.Store, hub EntryPublisher, log *logrus.Logger) *EntryService {
	return &EntryService{
		Entries:  entries,
		Vehicles: vehicles,
		Media:    store,
		Hub:      hub,
		Log:      log,
	}
}

// arrivalLayouts are tried in order when parsing date inputs. Date-only
// values are interpreted in the business timezone.
var arrivalLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

func parseDate(raw string) (time.Time, bool) {
	if raw == "" {
		return time.Time{}, false
	}
	for _, layout := range arrivalLayouts {
		if t, err := time.ParseInLocation(layout, raw, timeutil.Location()); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// CreateEntry creates a service order. Vehicle resolution order: explicit id,
// then VIN/internal-code lookup on the inline payload, then a fresh vehicle
// when all inline fields are present. The employee falls back to the session
// identity when absent from the request.
func (s *EntryService) CreateEntry(ctx context.Context, req *models.CreateEntryRequest, sess *auth.Session) (*models.EntryDetail, error) {
	vehicleID, err := s.resolveVehicle(ctx, req)
	if err != nil {
		return nil, err
	}

	employeeID := 0
	if req.EmployeeID != nil {
		employeeID = *req.EmployeeID
	} else if sess != nil {
		employeeID = sess.EmployeeID
	}

	arrival, arrivalOK := parseDate(req.ArrivalDate)
	if vehicleID == 0 || employeeID == 0 || req.ServiceID == nil || !arrivalOK {
		return nil, apperr.Invalid("Datos inválidos")
	}

	pending, err := s.Entries.HasPending(ctx, vehicleID)
	if err != nil {
		return nil, err
	}
	if pending {
		return nil, apperr.Conflict("Ya existe una orden pendiente para este vehículo")
	}

	status := req.Status
	if status == "" {
		status = models.StatusPending
	}

	entry := &models.Entry{
		VehicleID:   vehicleID,
		EmployeeID:  employeeID,
		ServiceID:   *req.ServiceID,
		Status:      status,
		ArrivalDate: arrival,
		Notes:       req.Notes,
	}
	if err := s.Entries.Create(ctx, entry); err != nil {
		return nil, err
	}

	if photos := s.storePhotos(ctx, entry.ID, nil, models.PhotoInitial, req.InitialPhotos); len(photos) > 0 {
		if err := s.Entries.AddPhotos(ctx, photos); err != nil {
			return nil, err
		}
	}

	detail, err := s.Entries.Get(ctx, entry.ID)
	if err != nil {
		return nil, err
	}

	metrics.OrdersCreatedTotal.Inc()
	if s.Hub != nil {
		s.Hub.Publish(models.EntryEvent{Type: "created", EntryID: detail.ID, Status: detail.Status, Entry: detail})
	}
	return detail, nil
}

func (s *EntryService) resolveVehicle(ctx context.Context, req *models.CreateEntryRequest) (int, error) {
	if req.VehicleID != nil {
		return *req.VehicleID, nil
	}
	v := req.Vehicle
	if v == nil || v.VIN == "" || v.InternalCode == "" || v.Brand == "" || v.Model == "" || v.Color == "" || v.Year == 0 {
		return 0, nil
	}

	found, err := s.Vehicles.FindByVINOrCode(ctx, v.VIN, v.InternalCode)
	if err == nil {
		return found.ID, nil
	}
	if apperr.KindOf(err) != apperr.KindNotFound {
		return 0, err
	}

	created := &models.Vehicle{
		VIN:          v.VIN,
		InternalCode: v.InternalCode,
		Brand:        v.Brand,
		Model:        v.Model,
		Color:        v.Color,
		Year:         v.Year,
	}
	if err := s.Vehicles.Create(ctx, created); err != nil {
		return 0, err
	}
	return created.ID, nil
}

// storePhotos converts inline payloads into stored photo rows, capped at
// MaxPhotosPerRequest. A payload that fails to convert is dropped, never
// fatal to the calling operation.
func (s *EntryService) storePhotos(ctx context.Context, entryID int, updateID *int, photoType string, raws []string) []models.Photo {
	if len(raws) > models.MaxPhotosPerRequest {
		raws = raws[:models.MaxPhotosPerRequest]
	}
	photos := []models.Photo{}
	for _, raw := range raws {
		if raw == "" {
			continue
		}
		url, err := s.Media.Save(ctx, raw)
		if err != nil {
			metrics.PhotosDroppedTotal.Inc()
			if s.Log != nil {
				s.Log.WithError(err).WithField("entry_id", entryID).Warn("dropping photo payload")
			}
			continue
		}
		photos = append(photos, models.Photo{EntryID: entryID, UpdateID: updateID, Type: photoType, URL: url})
	}
	return photos
}

func (s *EntryService) GetEntry(ctx context.Context, id int) (*models.EntryDetail, error) {
	return s.Entries.Get(ctx, id)
}

// ListEntries applies technician scoping: technicians see only their own
// orders, every other role sees everything.
func (s *EntryService) ListEntries(ctx context.Context, sess *auth.Session) ([]*models.EntryDetail, error) {
	return s.Entries.List(ctx, scopeEmployee(sess))
}

func (s *EntryService) ListByVehicle(ctx context.Context, vehicleID int) ([]*models.EntryDetail, error) {
	return s.Entries.ListByVehicle(ctx, vehicleID)
}

// RecentEntries returns the latest orders globally, regardless of role.
func (s *EntryService) RecentEntries(ctx context.Context) ([]*models.EntryDetail, error) {
	return s.Entries.Recent(ctx, recentLimit)
}

// UpdateEntry applies a partial update. Unparseable date values are ignored
// rather than rejected. Moving into "completed" from any other status bumps
// the assigned employee's counter exactly once, in the same transaction as
// the status write.
func (s *EntryService) UpdateEntry(ctx context.Context, id int, req *models.UpdateEntryRequest) (*models.EntryDetail, error) {
	prev, err := s.Entries.GetRow(ctx, id)
	if err != nil {
		return nil, err
	}

	patch := models.EntryPatch{
		Status:     req.Status,
		Notes:      req.Notes,
		FinalNotes: req.FinalNotes,
	}
	if req.ArrivalDate != nil {
		if t, ok := parseDate(*req.ArrivalDate); ok {
			patch.ArrivalDate = &t
		}
	}
	if req.CompletionDate != nil {
		if t, ok := parseDate(*req.CompletionDate); ok {
			patch.CompletionDate = &t
		}
	}

	completing := req.Status != nil && *req.Status == models.StatusCompleted && prev.Status != models.StatusCompleted
	incrementEmployeeID := 0
	if completing {
		incrementEmployeeID = prev.EmployeeID
	}

	photos := s.storePhotos(ctx, id, nil, models.PhotoFinal, req.FinalPhotos)
	if err := s.Entries.Update(ctx, id, patch, photos, incrementEmployeeID); err != nil {
		return nil, err
	}

	detail, err := s.Entries.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if completing {
		metrics.OrdersCompletedTotal.Inc()
	}
	if s.Hub != nil && req.Status != nil {
		s.Hub.Publish(models.EntryEvent{Type: "updated", EntryID: detail.ID, Status: detail.Status, Entry: detail})
	}
	return detail, nil
}

// AppendUpdate attaches a free-text update ("novedad") with optional photos.
func (s *EntryService) AppendUpdate(ctx context.Context, entryID int, req *models.CreateEntryUpdateRequest) (*models.EntryUpdate, error) {
	if req.Text == "" {
		return nil, apperr.Invalid("Texto requerido")
	}
	if entryID == 0 {
		return nil, apperr.Invalid("ID de entrada requerido")
	}

	update := &models.EntryUpdate{EntryID: entryID, Text: req.Text}
	if err := s.Entries.CreateUpdate(ctx, update); err != nil {
		return nil, err
	}

	if photos := s.storePhotos(ctx, entryID, &update.ID, models.PhotoUpdate, req.Photos); len(photos) > 0 {
		if err := s.Entries.AddPhotos(ctx, photos); err != nil {
			return nil, err
		}
	}

	return s.Entries.GetUpdate(ctx, update.ID)
}

func scopeEmployee(sess *auth.Session) *int {
	if sess != nil && sess.Role == models.RoleTechnician {
		id := sess.EmployeeID
		return &id
	}
	return nil
}
