package http

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"carwash-backend/internal/auth"
	"carwash-backend/internal/handlers"
	"carwash-backend/internal/middleware"
	"carwash-backend/internal/realtime"
)

type RouterDeps struct {
	Auth       *handlers.AuthHandler
	Entries    *handlers.EntryHandler
	Vehicles   *handlers.VehicleHandler
	Employees  *handlers.EmployeeHandler
	Catalog    *handlers.CatalogHandler
	Locations  *handlers.LocationHandler
	Settings   *handlers.SettingsHandler
	Stats      *handlers.StatsHandler
	Receipts   *handlers.ReceiptHandler
	Health     *handlers.HealthHandler
	Monitoring *handlers.MonitoringHandler

	Hub        *realtime.Hub
	Sessions   *auth.SessionManager
	CookieName string
	UploadDir  string
	StaticDir  string
	Log        *logrus.Logger
}

func NewRouter(d RouterDeps) *mux.Router {
	r := mux.NewRouter()

	r.Use(middleware.PanicRecovery(d.Log))
	r.Use(middleware.WithSession(d.Sessions, d.CookieName))
	r.Use(middleware.RequestLogging(d.Log))
	r.Use(middleware.Metrics)

	// Auth
	r.HandleFunc("/api/auth/login", d.Auth.Login).Methods("POST")
	r.HandleFunc("/api/auth/logout", d.Auth.Logout).Methods("POST")
	r.HandleFunc("/api/auth/me", d.Auth.Me).Methods("GET")

	// Entries
	entriesAPI := r.PathPrefix("/api/entries").Subrouter()
	entriesAPI.HandleFunc("", d.Entries.ListEntries).Methods("GET")
	entriesAPI.HandleFunc("", d.Entries.CreateEntry).Methods("POST")
	entriesAPI.HandleFunc("/by-vehicle", d.Entries.ListByVehicle).Methods("GET")
	entriesAPI.HandleFunc("/recent", d.Entries.RecentEntries).Methods("GET")
	entriesAPI.HandleFunc("/{id}", d.Entries.GetEntry).Methods("GET")
	entriesAPI.HandleFunc("/{id}", d.Entries.UpdateEntry).Methods("PATCH")
	entriesAPI.HandleFunc("/{id}/updates", d.Entries.AppendUpdate).Methods("POST")
	entriesAPI.HandleFunc("/{id}/receipt", d.Receipts.EntryReceipt).Methods("GET")

	// Vehicles
	vehiclesAPI := r.PathPrefix("/api/vehicles").Subrouter()
	vehiclesAPI.HandleFunc("", d.Vehicles.ListVehicles).Methods("GET")
	vehiclesAPI.HandleFunc("", d.Vehicles.CreateVehicle).Methods("POST")
	vehiclesAPI.HandleFunc("/by-code", d.Vehicles.FindByCode).Methods("GET")
	vehiclesAPI.HandleFunc("/{id}", d.Vehicles.GetVehicle).Methods("GET")
	vehiclesAPI.HandleFunc("/{id}", d.Vehicles.UpdateVehicle).Methods("PATCH")
	vehiclesAPI.HandleFunc("/{id}", d.Vehicles.DeleteVehicle).Methods("DELETE")

	// Employees
	employeesAPI := r.PathPrefix("/api/employees").Subrouter()
	employeesAPI.HandleFunc("", d.Employees.ListEmployees).Methods("GET")
	employeesAPI.HandleFunc("", d.Employees.CreateEmployee).Methods("POST")
	employeesAPI.HandleFunc("/{id}", d.Employees.UpdateEmployee).Methods("PATCH")
	employeesAPI.HandleFunc("/{id}", d.Employees.DeleteEmployee).Methods("DELETE")

	// Service catalog
	servicesAPI := r.PathPrefix("/api/services").Subrouter()
	servicesAPI.HandleFunc("", d.Catalog.ListServices).Methods("GET")
	servicesAPI.HandleFunc("", d.Catalog.CreateService).Methods("POST")
	servicesAPI.HandleFunc("/{id}", d.Catalog.UpdateService).Methods("PATCH")
	servicesAPI.HandleFunc("/{id}", d.Catalog.DeleteService).Methods("DELETE")

	// Brands and models
	brandsAPI := r.PathPrefix("/api/brands").Subrouter()
	brandsAPI.HandleFunc("", d.Catalog.ListBrands).Methods("GET")
	brandsAPI.HandleFunc("", d.Catalog.CreateBrand).Methods("POST")
	brandsAPI.HandleFunc("/{id}", d.Catalog.UpdateBrand).Methods("PATCH")
	brandsAPI.HandleFunc("/{id}", d.Catalog.DeleteBrand).Methods("DELETE")

	modelsAPI := r.PathPrefix("/api/models").Subrouter()
	modelsAPI.HandleFunc("", d.Catalog.ListModels).Methods("GET")
	modelsAPI.HandleFunc("", d.Catalog.CreateModel).Methods("POST")
	modelsAPI.HandleFunc("/{id}", d.Catalog.UpdateModel).Methods("PATCH")
	modelsAPI.HandleFunc("/{id}", d.Catalog.DeleteModel).Methods("DELETE")

	// Locations
	locationsAPI := r.PathPrefix("/api/locations").Subrouter()
	locationsAPI.HandleFunc("", d.Locations.ListLocations).Methods("GET")
	locationsAPI.HandleFunc("", d.Locations.CreateLocation).Methods("POST")
	locationsAPI.HandleFunc("/{id}", d.Locations.UpdateLocation).Methods("PATCH")
	locationsAPI.HandleFunc("/{id}", d.Locations.DeleteLocation).Methods("DELETE")

	// Settings and stats
	r.HandleFunc("/api/settings", d.Settings.GetSettings).Methods("GET")
	r.HandleFunc("/api/settings", d.Settings.UpdateSettings).Methods("PATCH")
	r.HandleFunc("/api/stats", d.Stats.GetStats).Methods("GET")

	// Monitoring
	r.HandleFunc("/api/monitoring/system", d.Monitoring.SystemStats).Methods("GET")

	// Live entry feed
	r.HandleFunc("/ws/entries", d.Hub.ServeWS)

	// Health endpoints for probes
	r.HandleFunc("/health", d.Health.Liveness).Methods("GET")
	r.HandleFunc("/health/ready", d.Health.Readiness).Methods("GET")

	// Prometheus metrics
	r.Handle("/metrics", promhttp.Handler())

	// Stored media and static assets
	r.PathPrefix("/uploads/").Handler(http.StripPrefix("/uploads/", http.FileServer(http.Dir(d.UploadDir))))
	if d.StaticDir != "" {
		r.PathPrefix("/static/").Handler(http.StripPrefix("/static/", http.FileServer(http.Dir(d.StaticDir))))
	}

	// Everything else is a page route behind the session gate.
	r.PathPrefix("/").Handler(middleware.PageGate(http.FileServer(http.Dir(d.StaticDir))))

	return r
}
