package services

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/sirupsen/logrus"

	"carwash-backend/internal/apperr"
	"carwash-backend/internal/auth"
	"carwash-backend/internal/models"
)

type fakeEntryStore struct {
	pending    bool
	entries    map[int]*models.Entry
	nextID     int
	photos     []models.Photo
	updates    map[int]*models.EntryUpdate
	nextUpdate int
	increments map[int]int
	lastPatch  models.EntryPatch

	listScope   *int
	listCalled  bool
	recentLimit int
}

func newFakeEntryStore() *fakeEntryStore {
	return &fakeEntryStore{
		entries:    map[int]*models.Entry{},
		updates:    map[int]*models.EntryUpdate{},
		increments: map[int]int{},
	}
}

func (f *fakeEntryStore) Create(ctx context.Context, e *models.Entry) error {
	f.nextID++
	e.ID = f.nextID
	cp := *e
	f.entries[e.ID] = &cp
	return nil
}

func (f *fakeEntryStore) HasPending(ctx context.Context, vehicleID int) (bool, error) {
	return f.pending, nil
}

func (f *fakeEntryStore) GetRow(ctx context.Context, id int) (*models.Entry, error) {
	e, ok := f.entries[id]
	if !ok {
		return nil, apperr.NotFound("Entrada no encontrada")
	}
	cp := *e
	return &cp, nil
}

func (f *fakeEntryStore) Get(ctx context.Context, id int) (*models.EntryDetail, error) {
	e, ok := f.entries[id]
	if !ok {
		return nil, apperr.NotFound("No encontrado")
	}
	return &models.EntryDetail{Entry: *e, Photos: []models.Photo{}, Updates: []models.EntryUpdate{}}, nil
}

func (f *fakeEntryStore) List(ctx context.Context, employeeID *int) ([]*models.EntryDetail, error) {
	f.listCalled = true
	f.listScope = employeeID
	return []*models.EntryDetail{}, nil
}

func (f *fakeEntryStore) ListByVehicle(ctx context.Context, vehicleID int) ([]*models.EntryDetail, error) {
	return []*models.EntryDetail{}, nil
}

func (f *fakeEntryStore) Recent(ctx context.Context, limit int) ([]*models.EntryDetail, error) {
	f.recentLimit = limit
	return []*models.EntryDetail{}, nil
}

func (f *fakeEntryStore) AddPhotos(ctx context.Context, photos []models.Photo) error {
	f.photos = append(f.photos, photos...)
	return nil
}

func (f *fakeEntryStore) Update(ctx context.Context, id int, patch models.EntryPatch, photos []models.Photo, incrementEmployeeID int) error {
	e, ok := f.entries[id]
	if !ok {
		return apperr.NotFound("Entrada no encontrada")
	}
	f.lastPatch = patch
	if patch.Status != nil {
		e.Status = *patch.Status
	}
	if patch.Notes != nil {
		e.Notes = patch.Notes
	}
	if patch.FinalNotes != nil {
		e.FinalNotes = patch.FinalNotes
	}
	f.photos = append(f.photos, photos...)
	if incrementEmployeeID != 0 {
		f.increments[incrementEmployeeID]++
	}
	return nil
}

func (f *fakeEntryStore) CreateUpdate(ctx context.Context, u *models.EntryUpdate) error {
	if _, ok := f.entries[u.EntryID]; !ok {
		return apperr.NotFound("Entrada no encontrada")
	}
	f.nextUpdate++
	u.ID = f.nextUpdate
	cp := *u
	f.updates[u.ID] = &cp
	return nil
}

func (f *fakeEntryStore) GetUpdate(ctx context.Context, id int) (*models.EntryUpdate, error) {
	u, ok := f.updates[id]
	if !ok {
		return nil, apperr.NotFound("No encontrado")
	}
	cp := *u
	return &cp, nil
}

type fakeVehicleFinder struct {
	known   map[string]*models.Vehicle
	nextID  int
	created []*models.Vehicle
}

func newFakeVehicleFinder() *fakeVehicleFinder {
	return &fakeVehicleFinder{known: map[string]*models.Vehicle{}, nextID: 100}
}

func (f *fakeVehicleFinder) Get(ctx context.Context, id int) (*models.Vehicle, error) {
	return nil, apperr.NotFound("No encontrado")
}

func (f *fakeVehicleFinder) FindByVINOrCode(ctx context.Context, vin, code string) (*models.Vehicle, error) {
	if v, ok := f.known[vin]; ok {
		return v, nil
	}
	if v, ok := f.known[code]; ok {
		return v, nil
	}
	return nil, apperr.NotFound("No encontrado")
}

func (f *fakeVehicleFinder) Create(ctx context.Context, v *models.Vehicle) error {
	f.nextID++
	v.ID = f.nextID
	f.created = append(f.created, v)
	return nil
}

type fakeMediaStore struct {
	fail  bool
	saved []string
}

func (f *fakeMediaStore) Save(ctx context.Context, raw string) (string, error) {
	if f.fail {
		return "", errors.New("conversion failed")
	}
	f.saved = append(f.saved, raw)
	return "/uploads/" + raw, nil
}

func (f *fakeMediaStore) Delete(ctx context.Context, url string) error { return nil }

type fakePublisher struct {
	events []models.EntryEvent
}

func (f *fakePublisher) Publish(ev models.EntryEvent) { f.events = append(f.events, ev) }

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func intp(v int) *int       { return &v }
func strp(v string) *string { return &v }

func newTestEntryService() (*EntryService, *fakeEntryStore, *fakeVehicleFinder, *fakeMediaStore, *fakePublisher) {
	store := newFakeEntryStore()
	vehicles := newFakeVehicleFinder()
	mediaStore := &fakeMediaStore{}
	hub := &fakePublisher{}
	svc := NewEntryService(store, vehicles, mediaStore, hub, testLogger())
	return svc, store, vehicles, mediaStore, hub
}

func TestCreateEntryRequiresCompleteData(t *testing.T) {
	svc, _, _, _, _ := newTestEntryService()

	req := &models.CreateEntryRequest{VehicleID: intp(1), ArrivalDate: "2024-05-01T10:00:00"}
	_, err := svc.CreateEntry(context.Background(), req, &auth.Session{EmployeeID: 3, Role: models.RoleAdmin})
	if apperr.KindOf(err) != apperr.KindInvalid {
		t.Fatalf("err = %v, want invalid", err)
	}
	if apperr.Message(err) != "Datos inválidos" {
		t.Fatalf("message = %q", apperr.Message(err))
	}
}

func TestCreateEntryRejectsSecondPending(t *testing.T) {
	svc, store, _, _, _ := newTestEntryService()
	store.pending = true

	req := &models.CreateEntryRequest{
		VehicleID:   intp(1),
		ServiceID:   intp(2),
		ArrivalDate: "2024-05-01T10:00:00",
	}
	_, err := svc.CreateEntry(context.Background(), req, &auth.Session{EmployeeID: 3, Role: models.RoleAdmin})
	if apperr.KindOf(err) != apperr.KindConflict {
		t.Fatalf("err = %v, want conflict", err)
	}
	if apperr.Message(err) != "Ya existe una orden pendiente para este vehículo" {
		t.Fatalf("message = %q", apperr.Message(err))
	}
}

func TestCreateEntryDefaultsAndPublishes(t *testing.T) {
	svc, store, _, _, hub := newTestEntryService()

	req := &models.CreateEntryRequest{
		VehicleID:   intp(1),
		ServiceID:   intp(2),
		ArrivalDate: "2024-05-01T10:00:00",
	}
	detail, err := svc.CreateEntry(context.Background(), req, &auth.Session{EmployeeID: 7, Role: models.RoleTechnician})
	if err != nil {
		t.Fatalf("CreateEntry: %v", err)
	}
	if detail.Status != models.StatusPending {
		t.Fatalf("status = %q, want pending default", detail.Status)
	}
	if detail.EmployeeID != 7 {
		t.Fatalf("employeeID = %d, want session fallback 7", detail.EmployeeID)
	}
	if got := store.entries[detail.ID]; got == nil || got.ServiceID != 2 {
		t.Fatalf("entry not persisted correctly: %+v", got)
	}
	if len(hub.events) != 1 || hub.events[0].Type != "created" || hub.events[0].EntryID != detail.ID {
		t.Fatalf("events = %+v, want one created event", hub.events)
	}
}

func TestCreateEntryResolvesInlineVehicle(t *testing.T) {
	svc, _, vehicles, _, _ := newTestEntryService()

	req := &models.CreateEntryRequest{
		Vehicle: &models.InlineVehicle{
			VIN:          "1HGCM82633A004352",
			InternalCode: "CW-001",
			Brand:        "Toyota",
			Model:        "Corolla",
			Color:        "Blanco",
			Year:         2019,
		},
		EmployeeID:  intp(3),
		ServiceID:   intp(2),
		ArrivalDate: "2024-05-01",
	}
	detail, err := svc.CreateEntry(context.Background(), req, nil)
	if err != nil {
		t.Fatalf("CreateEntry: %v", err)
	}
	if len(vehicles.created) != 1 {
		t.Fatalf("created vehicles = %d, want 1", len(vehicles.created))
	}
	if detail.VehicleID != vehicles.created[0].ID {
		t.Fatalf("vehicleID = %d, want freshly created %d", detail.VehicleID, vehicles.created[0].ID)
	}
}

func TestCreateEntryReusesKnownVehicle(t *testing.T) {
	svc, _, vehicles, _, _ := newTestEntryService()
	vehicles.known["CW-001"] = &models.Vehicle{ID: 55, VIN: "1HGCM82633A004352", InternalCode: "CW-001"}

	req := &models.CreateEntryRequest{
		Vehicle: &models.InlineVehicle{
			VIN:          "OTHERVIN0000000000",
			InternalCode: "CW-001",
			Brand:        "Toyota",
			Model:        "Corolla",
			Color:        "Blanco",
			Year:         2019,
		},
		EmployeeID:  intp(3),
		ServiceID:   intp(2),
		ArrivalDate: "2024-05-01",
	}
	detail, err := svc.CreateEntry(context.Background(), req, nil)
	if err != nil {
		t.Fatalf("CreateEntry: %v", err)
	}
	if detail.VehicleID != 55 {
		t.Fatalf("vehicleID = %d, want matched 55", detail.VehicleID)
	}
	if len(vehicles.created) != 0 {
		t.Fatalf("no vehicle should be created when the code matches")
	}
}

func TestCreateEntryIncompleteInlineVehicle(t *testing.T) {
	svc, _, _, _, _ := newTestEntryService()

	req := &models.CreateEntryRequest{
		Vehicle:     &models.InlineVehicle{VIN: "1HGCM82633A004352", InternalCode: "CW-001"},
		EmployeeID:  intp(3),
		ServiceID:   intp(2),
		ArrivalDate: "2024-05-01",
	}
	_, err := svc.CreateEntry(context.Background(), req, nil)
	if apperr.KindOf(err) != apperr.KindInvalid {
		t.Fatalf("err = %v, want invalid for partial inline vehicle", err)
	}
}

func TestCreateEntryCapsAndStoresPhotos(t *testing.T) {
	svc, store, _, mediaStore, _ := newTestEntryService()

	req := &models.CreateEntryRequest{
		VehicleID:     intp(1),
		EmployeeID:    intp(3),
		ServiceID:     intp(2),
		ArrivalDate:   "2024-05-01T10:00:00",
		InitialPhotos: []string{"a", "b", "c", "d", "e", "f"},
	}
	if _, err := svc.CreateEntry(context.Background(), req, nil); err != nil {
		t.Fatalf("CreateEntry: %v", err)
	}
	if len(mediaStore.saved) != models.MaxPhotosPerRequest {
		t.Fatalf("saved = %d, want cap of %d", len(mediaStore.saved), models.MaxPhotosPerRequest)
	}
	if len(store.photos) != models.MaxPhotosPerRequest {
		t.Fatalf("stored photos = %d, want %d", len(store.photos), models.MaxPhotosPerRequest)
	}
	for _, p := range store.photos {
		if p.Type != models.PhotoInitial {
			t.Fatalf("photo type = %q, want initial", p.Type)
		}
	}
}

func TestCreateEntrySurvivesPhotoFailure(t *testing.T) {
	svc, store, _, mediaStore, _ := newTestEntryService()
	mediaStore.fail = true

	req := &models.CreateEntryRequest{
		VehicleID:     intp(1),
		EmployeeID:    intp(3),
		ServiceID:     intp(2),
		ArrivalDate:   "2024-05-01T10:00:00",
		InitialPhotos: []string{"broken"},
	}
	detail, err := svc.CreateEntry(context.Background(), req, nil)
	if err != nil {
		t.Fatalf("CreateEntry must not fail on photo conversion: %v", err)
	}
	if len(store.photos) != 0 {
		t.Fatalf("stored photos = %d, want failed payload dropped", len(store.photos))
	}
	if detail == nil {
		t.Fatalf("expected created entry")
	}
}

func TestUpdateEntryCompletionIncrementsOnce(t *testing.T) {
	svc, store, _, _, _ := newTestEntryService()
	store.entries[1] = &models.Entry{ID: 1, VehicleID: 1, EmployeeID: 9, ServiceID: 2, Status: models.StatusInProgress}

	req := &models.UpdateEntryRequest{Status: strp(models.StatusCompleted)}
	if _, err := svc.UpdateEntry(context.Background(), 1, req); err != nil {
		t.Fatalf("UpdateEntry: %v", err)
	}
	if store.increments[9] != 1 {
		t.Fatalf("increments = %d, want exactly 1", store.increments[9])
	}

	// Completing an already-completed order must not bump again.
	if _, err := svc.UpdateEntry(context.Background(), 1, req); err != nil {
		t.Fatalf("second UpdateEntry: %v", err)
	}
	if store.increments[9] != 1 {
		t.Fatalf("increments after repeat = %d, want still 1", store.increments[9])
	}
}

func TestUpdateEntryPublishesOnStatusChange(t *testing.T) {
	svc, store, _, _, hub := newTestEntryService()
	store.entries[1] = &models.Entry{ID: 1, VehicleID: 1, EmployeeID: 9, ServiceID: 2, Status: models.StatusPending}

	if _, err := svc.UpdateEntry(context.Background(), 1, &models.UpdateEntryRequest{Status: strp(models.StatusInProgress)}); err != nil {
		t.Fatalf("UpdateEntry: %v", err)
	}
	if len(hub.events) != 1 || hub.events[0].Type != "updated" || hub.events[0].Status != models.StatusInProgress {
		t.Fatalf("events = %+v, want one updated event", hub.events)
	}

	// A notes-only patch carries no status and stays off the live feed.
	if _, err := svc.UpdateEntry(context.Background(), 1, &models.UpdateEntryRequest{Notes: strp("sin novedad")}); err != nil {
		t.Fatalf("UpdateEntry: %v", err)
	}
	if len(hub.events) != 1 {
		t.Fatalf("events = %d, notes-only update must not publish", len(hub.events))
	}
}

func TestUpdateEntryIgnoresUnparseableDates(t *testing.T) {
	svc, store, _, _, _ := newTestEntryService()
	store.entries[1] = &models.Entry{ID: 1, VehicleID: 1, EmployeeID: 9, ServiceID: 2, Status: models.StatusPending}

	req := &models.UpdateEntryRequest{
		CompletionDate: strp("not-a-date"),
		Notes:          strp("ok"),
	}
	if _, err := svc.UpdateEntry(context.Background(), 1, req); err != nil {
		t.Fatalf("UpdateEntry: %v", err)
	}
	if store.lastPatch.CompletionDate != nil {
		t.Fatalf("unparseable completionDate must be ignored, got %v", store.lastPatch.CompletionDate)
	}
	if store.lastPatch.Notes == nil || *store.lastPatch.Notes != "ok" {
		t.Fatalf("notes patch lost: %+v", store.lastPatch)
	}
}

func TestUpdateEntryNotFound(t *testing.T) {
	svc, _, _, _, _ := newTestEntryService()
	_, err := svc.UpdateEntry(context.Background(), 404, &models.UpdateEntryRequest{})
	if apperr.KindOf(err) != apperr.KindNotFound {
		t.Fatalf("err = %v, want not found", err)
	}
}

func TestAppendUpdateValidation(t *testing.T) {
	svc, store, _, _, _ := newTestEntryService()
	store.entries[1] = &models.Entry{ID: 1, Status: models.StatusPending}

	_, err := svc.AppendUpdate(context.Background(), 1, &models.CreateEntryUpdateRequest{})
	if apperr.Message(err) != "Texto requerido" {
		t.Fatalf("message = %q, want Texto requerido", apperr.Message(err))
	}

	_, err = svc.AppendUpdate(context.Background(), 0, &models.CreateEntryUpdateRequest{Text: "avance"})
	if apperr.Message(err) != "ID de entrada requerido" {
		t.Fatalf("message = %q, want ID de entrada requerido", apperr.Message(err))
	}
}

func TestAppendUpdateAttachesPhotos(t *testing.T) {
	svc, store, _, _, _ := newTestEntryService()
	store.entries[1] = &models.Entry{ID: 1, Status: models.StatusInProgress}

	update, err := svc.AppendUpdate(context.Background(), 1, &models.CreateEntryUpdateRequest{
		Text:   "pulido terminado",
		Photos: []string{"p1"},
	})
	if err != nil {
		t.Fatalf("AppendUpdate: %v", err)
	}
	if update.Text != "pulido terminado" {
		t.Fatalf("text = %q", update.Text)
	}
	if len(store.photos) != 1 {
		t.Fatalf("photos = %d, want 1", len(store.photos))
	}
	p := store.photos[0]
	if p.Type != models.PhotoUpdate || p.UpdateID == nil || *p.UpdateID != update.ID {
		t.Fatalf("photo = %+v, want update-typed and linked to %d", p, update.ID)
	}
}

func TestListEntriesScopesTechnician(t *testing.T) {
	svc, store, _, _, _ := newTestEntryService()

	if _, err := svc.ListEntries(context.Background(), &auth.Session{EmployeeID: 7, Role: models.RoleTechnician}); err != nil {
		t.Fatalf("ListEntries: %v", err)
	}
	if store.listScope == nil || *store.listScope != 7 {
		t.Fatalf("scope = %v, want employee 7", store.listScope)
	}

	if _, err := svc.ListEntries(context.Background(), &auth.Session{EmployeeID: 1, Role: models.RoleAdmin}); err != nil {
		t.Fatalf("ListEntries: %v", err)
	}
	if store.listScope != nil {
		t.Fatalf("admin scope = %v, want unscoped", store.listScope)
	}
}

func TestRecentEntriesLimit(t *testing.T) {
	svc, store, _, _, _ := newTestEntryService()
	if _, err := svc.RecentEntries(context.Background()); err != nil {
		t.Fatalf("RecentEntries: %v", err)
	}
	if store.recentLimit != recentLimit {
		t.Fatalf("limit = %d, want %d", store.recentLimit, recentLimit)
	}
}
