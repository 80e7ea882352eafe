package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	cancelBookingHandler "github.com/m04kA/SMC-WorkshopService/internal/api/handlers/cancel_booking"
	createInvoiceHandler "github.com/m04kA/SMC-WorkshopService/internal/api/handlers/create_invoice"
	getBookingHandler "github.com/m04kA/SMC-WorkshopService/internal/api/handlers/get_booking"
	getMechanicBookingsHandler "github.com/m04kA/SMC-WorkshopService/internal/api/handlers/get_mechanic_bookings"
	recordPaymentHandler "github.com/m04kA/SMC-WorkshopService/internal/api/handlers/record_payment"
	rescheduleBookingHandler "github.com/m04kA/SMC-WorkshopService/internal/api/handlers/reschedule_booking"
	scheduleEventHandler "github.com/m04kA/SMC-WorkshopService/internal/api/handlers/schedule_event"
	startBookingHandler "github.com/m04kA/SMC-WorkshopService/internal/api/handlers/start_booking"
	transitionServiceHandler "github.com/m04kA/SMC-WorkshopService/internal/api/handlers/transition_service"
	"github.com/m04kA/SMC-WorkshopService/internal/api/middleware"
	"github.com/m04kA/SMC-WorkshopService/internal/config"
	bookingRepo "github.com/m04kA/SMC-WorkshopService/internal/infra/storage/booking"
	invoiceRepo "github.com/m04kA/SMC-WorkshopService/internal/infra/storage/invoice"
	mechanicRepo "github.com/m04kA/SMC-WorkshopService/internal/infra/storage/mechanic"
	serviceRepo "github.com/m04kA/SMC-WorkshopService/internal/infra/storage/service"
	vehicleRepo "github.com/m04kA/SMC-WorkshopService/internal/infra/storage/vehicle"
	bookingsService "github.com/m04kA/SMC-WorkshopService/internal/service/bookings"
	vehiclesService "github.com/m04kA/SMC-WorkshopService/internal/service/vehicles"
	createInvoiceUC "github.com/m04kA/SMC-WorkshopService/internal/usecase/create_invoice"
	recordPaymentUC "github.com/m04kA/SMC-WorkshopService/internal/usecase/record_payment"
	rescheduleBookingUC "github.com/m04kA/SMC-WorkshopService/internal/usecase/reschedule_booking"
	scheduleEventUC "github.com/m04kA/SMC-WorkshopService/internal/usecase/schedule_event"
	transitionServiceUC "github.com/m04kA/SMC-WorkshopService/internal/usecase/transition_service"
	"github.com/m04kA/SMC-WorkshopService/pkg/dbmetrics"
	"github.com/m04kA/SMC-WorkshopService/pkg/logger"
	"github.com/m04kA/SMC-WorkshopService/pkg/metrics"
	"github.com/m04kA/SMC-WorkshopService/pkg/simpletxmanager"
	"github.com/m04kA/SMC-WorkshopService/pkg/txmanager"
)

func main() {
	cfg, err := config.Load("config.toml")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting SMC-WorkshopService...")
	log.Info("Configuration loaded from config.toml")

	var metricsCollector *metrics.Metrics
	var wrappedDB *dbmetrics.DB
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	var (
		bookingRepository  *bookingRepo.Repository
		mechanicRepository *mechanicRepo.Repository
		vehicleRepository  *vehicleRepo.Repository
		serviceRepository  *serviceRepo.Repository
		invoiceRepository  *invoiceRepo.Repository
	)

	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		mechanicRepository = mechanicRepo.NewRepository(wrappedDB)
		vehicleRepository = vehicleRepo.NewRepository(wrappedDB)
		serviceRepository = serviceRepo.NewRepository(wrappedDB)
		invoiceRepository = invoiceRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		bookingRepository = bookingRepo.NewRepository(db)
		mechanicRepository = mechanicRepo.NewRepository(db)
		vehicleRepository = vehicleRepo.NewRepository(db)
		serviceRepository = serviceRepo.NewRepository(db)
		invoiceRepository = invoiceRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Services
	bookingSvc := bookingsService.NewService(bookingRepository, log)
	vehicleReconciler := vehiclesService.NewReconciler(serviceRepository, vehicleRepository, log)

	// Use cases
	scheduleEventUseCase := scheduleEventUC.NewUseCase(
		bookingRepository,
		mechanicRepository,
		serviceRepository,
		vehicleReconciler,
		txMgr,
		log,
	)
	rescheduleBookingUseCase := rescheduleBookingUC.NewUseCase(
		bookingRepository,
		mechanicRepository,
		serviceRepository,
		txMgr,
		log,
	)
	transitionServiceUseCase := transitionServiceUC.NewUseCase(
		serviceRepository,
		bookingRepository,
		vehicleReconciler,
		txMgr,
		log,
	)
	createInvoiceUseCase := createInvoiceUC.NewUseCase(
		invoiceRepository,
		serviceRepository,
		txMgr,
		log,
		cfg.Billing.TaxRate,
		cfg.Billing.DueDays,
	)
	recordPaymentUseCase := recordPaymentUC.NewUseCase(
		invoiceRepository,
		txMgr,
		log,
	)

	// Handlers
	scheduleEvent := scheduleEventHandler.NewHandler(scheduleEventUseCase, log)
	rescheduleBooking := rescheduleBookingHandler.NewHandler(rescheduleBookingUseCase, log)
	startBooking := startBookingHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	getMechanicBookings := getMechanicBookingsHandler.NewHandler(bookingSvc, log)
	transitionService := transitionServiceHandler.NewHandler(transitionServiceUseCase, log)
	createInvoice := createInvoiceHandler.NewHandler(createInvoiceUseCase, log)
	recordPayment := recordPaymentHandler.NewHandler(recordPaymentUseCase, log)

	r := mux.NewRouter()

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		log.Info("HTTP metrics middleware enabled")

		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	api := r.PathPrefix("/api/v1").Subrouter()

	// Public routes
	api.HandleFunc("/mechanics/{mechanicId}/bookings", getMechanicBookings.Handle).Methods(http.MethodGet)

	// Protected routes (require X-User-ID header)
	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// Bookings
	protected.HandleFunc("/bookings", scheduleEvent.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}/start", startBooking.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/bookings/{bookingId}/reschedule", rescheduleBooking.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)

	// Services
	protected.HandleFunc("/services/{serviceId}/status", transitionService.Handle).Methods(http.MethodPatch)

	// Invoices
	protected.HandleFunc("/invoices", createInvoice.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/invoices/{invoiceId}/payments", recordPayment.Handle).Methods(http.MethodPost)

	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	if cfg.Metrics.Enabled {
		close(stopMetricsCh)
		log.Info("Metrics collection stopped")
	}

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
}
