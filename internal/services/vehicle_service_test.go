package services

import (
	"context"
	"errors"
	"testing"

	"carwash-backend/internal/apperr"
	"carwash-backend/internal/models"
)

type fakeVehicleStore struct {
	vehicles map[int]*models.Vehicle
	nextID   int
	media    []string
	deleted  []int
}

func newFakeVehicleStore() *fakeVehicleStore {
	return &fakeVehicleStore{vehicles: map[int]*models.Vehicle{}}
}

func (f *fakeVehicleStore) Create(ctx context.Context, v *models.Vehicle) error {
	f.nextID++
	v.ID = f.nextID
	cp := *v
	f.vehicles[v.ID] = &cp
	return nil
}

func (f *fakeVehicleStore) Get(ctx context.Context, id int) (*models.Vehicle, error) {
	v, ok := f.vehicles[id]
	if !ok {
		return nil, apperr.NotFound("No encontrado")
	}
	cp := *v
	return &cp, nil
}

func (f *fakeVehicleStore) FindByVINOrCode(ctx context.Context, vin, code string) (*models.Vehicle, error) {
	for _, v := range f.vehicles {
		if (vin != "" && v.VIN == vin) || (code != "" && v.InternalCode == code) {
			cp := *v
			return &cp, nil
		}
	}
	return nil, apperr.NotFound("No encontrado")
}

func (f *fakeVehicleStore) List(ctx context.Context) ([]*models.Vehicle, error) {
	return []*models.Vehicle{}, nil
}

func (f *fakeVehicleStore) Update(ctx context.Context, v *models.Vehicle) error {
	if _, ok := f.vehicles[v.ID]; !ok {
		return apperr.NotFound("No encontrado")
	}
	cp := *v
	f.vehicles[v.ID] = &cp
	return nil
}

func (f *fakeVehicleStore) MediaURLs(ctx context.Context, vehicleID int) ([]string, error) {
	return f.media, nil
}

func (f *fakeVehicleStore) DeleteCascade(ctx context.Context, vehicleID int) error {
	if _, ok := f.vehicles[vehicleID]; !ok {
		return apperr.NotFound("No encontrado")
	}
	delete(f.vehicles, vehicleID)
	f.deleted = append(f.deleted, vehicleID)
	return nil
}

type failingMediaStore struct {
	deleteCalls int
}

func (f *failingMediaStore) Save(ctx context.Context, raw string) (string, error) {
	return "", errors.New("unavailable")
}

func (f *failingMediaStore) Delete(ctx context.Context, url string) error {
	f.deleteCalls++
	return errors.New("unavailable")
}

func TestCreateVehicleRequiresAllFields(t *testing.T) {
	svc := NewVehicleService(newFakeVehicleStore(), &fakeMediaStore{}, testLogger())

	_, err := svc.CreateVehicle(context.Background(), &models.CreateVehicleRequest{VIN: "1HGCM82633A004352"})
	if apperr.Message(err) != "Datos incompletos" {
		t.Fatalf("message = %q", apperr.Message(err))
	}
}

func TestCreateVehicle(t *testing.T) {
	store := newFakeVehicleStore()
	svc := NewVehicleService(store, &fakeMediaStore{}, testLogger())

	v, err := svc.CreateVehicle(context.Background(), &models.CreateVehicleRequest{
		VIN:          "1HGCM82633A004352",
		InternalCode: "CW-001",
		Brand:        "Toyota",
		Model:        "Corolla",
		Color:        "Blanco",
		Year:         2019,
	})
	if err != nil {
		t.Fatalf("CreateVehicle: %v", err)
	}
	if v.ID == 0 || store.vehicles[v.ID] == nil {
		t.Fatalf("vehicle not persisted: %+v", v)
	}
}

func TestFindByCodeRequiresIdentifier(t *testing.T) {
	svc := NewVehicleService(newFakeVehicleStore(), &fakeMediaStore{}, testLogger())

	_, err := svc.FindByCode(context.Background(), "", "")
	if apperr.Message(err) != "Debe enviar vin o code" {
		t.Fatalf("message = %q", apperr.Message(err))
	}
}

func TestUpdateVehicleMergesFields(t *testing.T) {
	store := newFakeVehicleStore()
	store.Create(context.Background(), &models.Vehicle{
		VIN: "1HGCM82633A004352", InternalCode: "CW-001", Brand: "Toyota", Model: "Corolla", Color: "Blanco", Year: 2019,
	})
	svc := NewVehicleService(store, &fakeMediaStore{}, testLogger())

	v, err := svc.UpdateVehicle(context.Background(), 1, &models.UpdateVehicleRequest{Color: strp("Negro")})
	if err != nil {
		t.Fatalf("UpdateVehicle: %v", err)
	}
	if v.Color != "Negro" {
		t.Fatalf("color = %q, want Negro", v.Color)
	}
	if v.VIN != "1HGCM82633A004352" || v.Year != 2019 {
		t.Fatalf("untouched fields changed: %+v", v)
	}
}

func TestDeleteVehicleSwallowsMediaFailures(t *testing.T) {
	store := newFakeVehicleStore()
	store.Create(context.Background(), &models.Vehicle{VIN: "1HGCM82633A004352", InternalCode: "CW-001"})
	store.media = []string{"/uploads/a.png", "/uploads/b.png"}
	mediaStore := &failingMediaStore{}
	svc := NewVehicleService(store, mediaStore, testLogger())

	if err := svc.DeleteVehicle(context.Background(), 1); err != nil {
		t.Fatalf("DeleteVehicle must succeed despite media failures: %v", err)
	}
	if len(store.deleted) != 1 || store.deleted[0] != 1 {
		t.Fatalf("deleted = %v", store.deleted)
	}
	if mediaStore.deleteCalls != 2 {
		t.Fatalf("delete calls = %d, want every url attempted", mediaStore.deleteCalls)
	}
}

func TestDeleteVehicleNotFound(t *testing.T) {
	svc := NewVehicleService(newFakeVehicleStore(), &fakeMediaStore{}, testLogger())
	if err := svc.DeleteVehicle(context.Background(), 404); apperr.KindOf(err) != apperr.KindNotFound {
		t.Fatalf("err = %v, want not found", err)
	}
}
