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

	cancelReservationHandler "github.com/m04kA/CWS-ReservationService/internal/api/handlers/cancel_reservation"
	completeReservationHandler "github.com/m04kA/CWS-ReservationService/internal/api/handlers/complete_reservation"
	confirmReservationHandler "github.com/m04kA/CWS-ReservationService/internal/api/handlers/confirm_reservation"
	createReservationHandler "github.com/m04kA/CWS-ReservationService/internal/api/handlers/create_reservation"
	deleteReservationHandler "github.com/m04kA/CWS-ReservationService/internal/api/handlers/delete_reservation"
	getReservationHandler "github.com/m04kA/CWS-ReservationService/internal/api/handlers/get_reservation"
	getReservationStatsHandler "github.com/m04kA/CWS-ReservationService/internal/api/handlers/get_reservation_stats"
	getUserPenaltiesHandler "github.com/m04kA/CWS-ReservationService/internal/api/handlers/get_user_penalties"
	getUserReservationsHandler "github.com/m04kA/CWS-ReservationService/internal/api/handlers/get_user_reservations"
	getWorkstationSlotsHandler "github.com/m04kA/CWS-ReservationService/internal/api/handlers/get_workstation_slots"
	listFlaggedUsersHandler "github.com/m04kA/CWS-ReservationService/internal/api/handlers/list_flagged_users"
	markNoShowHandler "github.com/m04kA/CWS-ReservationService/internal/api/handlers/mark_no_show"
	updateReservationHandler "github.com/m04kA/CWS-ReservationService/internal/api/handlers/update_reservation"
	updateUserStrikesHandler "github.com/m04kA/CWS-ReservationService/internal/api/handlers/update_user_strikes"
	"github.com/m04kA/CWS-ReservationService/internal/api/middleware"
	"github.com/m04kA/CWS-ReservationService/internal/config"
	reservationRepo "github.com/m04kA/CWS-ReservationService/internal/infra/storage/reservation"
	userRepo "github.com/m04kA/CWS-ReservationService/internal/infra/storage/user"
	workstationRepo "github.com/m04kA/CWS-ReservationService/internal/infra/storage/workstation"
	"github.com/m04kA/CWS-ReservationService/internal/integrations/notifyservice"
	availabilityService "github.com/m04kA/CWS-ReservationService/internal/service/availability"
	penaltiesService "github.com/m04kA/CWS-ReservationService/internal/service/penalties"
	policyService "github.com/m04kA/CWS-ReservationService/internal/service/policy"
	reservationsService "github.com/m04kA/CWS-ReservationService/internal/service/reservations"
	createReservationUC "github.com/m04kA/CWS-ReservationService/internal/usecase/create_reservation"
	getTimeSlotsUC "github.com/m04kA/CWS-ReservationService/internal/usecase/get_time_slots"
	"github.com/m04kA/CWS-ReservationService/pkg/dbmetrics"
	"github.com/m04kA/CWS-ReservationService/pkg/logger"
	"github.com/m04kA/CWS-ReservationService/pkg/metrics"
	"github.com/m04kA/CWS-ReservationService/pkg/simpletxmanager"
	"github.com/m04kA/CWS-ReservationService/pkg/txmanager"
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

	log.Info("Starting CWS-ReservationService...")
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

	notifyClient := notifyservice.NewClient(
		cfg.NotifyService.URL,
		time.Duration(cfg.NotifyService.Timeout)*time.Second,
		log,
	)
	log.Info("Notification client initialized (url=%s, timeout=%ds)",
		cfg.NotifyService.URL, cfg.NotifyService.Timeout)

	var (
		reservationRepository *reservationRepo.Repository
		userRepository        *userRepo.Repository
		workstationRepository *workstationRepo.Repository
	)

	// Transaction manager interface shared by the booking flows
	type TxManager interface {
		Do(ctx context.Context, fn func(ctx context.Context) error) error
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		reservationRepository = reservationRepo.NewRepository(wrappedDB)
		userRepository = userRepo.NewRepository(wrappedDB)
		workstationRepository = workstationRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		reservationRepository = reservationRepo.NewRepository(db)
		userRepository = userRepo.NewRepository(db)
		workstationRepository = workstationRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	availabilitySvc := availabilityService.NewService(
		workstationRepository,
		reservationRepository,
		log,
	)
	policyEngine := policyService.NewEngine(
		reservationRepository,
		nil,
		log,
	)
	penaltySvc := penaltiesService.NewService(
		userRepository,
		log,
	)
	reservationSvc := reservationsService.NewService(
		reservationRepository,
		userRepository,
		policyEngine,
		penaltySvc,
		availabilitySvc,
		txMgr,
		notifyClient,
		log,
	)

	createReservationUseCase := createReservationUC.NewUseCase(
		reservationRepository,
		userRepository,
		policyEngine,
		availabilitySvc,
		txMgr,
		notifyClient,
		log,
	)
	getTimeSlotsUseCase := getTimeSlotsUC.NewUseCase(
		availabilitySvc,
		cfg.Booking.DayStartHour,
		cfg.Booking.DayEndHour,
		log,
	)

	createReservation := createReservationHandler.NewHandler(createReservationUseCase, log)
	getReservation := getReservationHandler.NewHandler(reservationSvc, log)
	updateReservation := updateReservationHandler.NewHandler(reservationSvc, log)
	cancelReservation := cancelReservationHandler.NewHandler(reservationSvc, log)
	confirmReservation := confirmReservationHandler.NewHandler(reservationSvc, log)
	completeReservation := completeReservationHandler.NewHandler(reservationSvc, log)
	markNoShow := markNoShowHandler.NewHandler(reservationSvc, log)
	deleteReservation := deleteReservationHandler.NewHandler(reservationSvc, log)
	getUserReservations := getUserReservationsHandler.NewHandler(reservationSvc, log)
	getWorkstationSlots := getWorkstationSlotsHandler.NewHandler(getTimeSlotsUseCase, log)
	getReservationStats := getReservationStatsHandler.NewHandler(reservationSvc, log)
	getUserPenalties := getUserPenaltiesHandler.NewHandler(penaltySvc, log)
	updateUserStrikes := updateUserStrikesHandler.NewHandler(penaltySvc, log)
	listFlaggedUsers := listFlaggedUsersHandler.NewHandler(penaltySvc, log)

	r := mux.NewRouter()

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		log.Info("HTTP metrics middleware enabled")

		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES
	// ============================================================

	// Hourly slot grid of a workstation
	api.HandleFunc("/workstations/{workstationId}/slots",
		getWorkstationSlots.Handle).Methods(http.MethodGet)

	// Per-user penalty statistics
	api.HandleFunc("/users/{userId}/penalties",
		getUserPenalties.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (require X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Reservations ---
	protected.HandleFunc("/reservations", createReservation.Handle).Methods(http.MethodPost)

	// Aggregate counts; registered before {reservationId} so "stats" is not parsed as an id
	protected.HandleFunc("/reservations/stats", getReservationStats.Handle).Methods(http.MethodGet)

	protected.HandleFunc("/reservations/{reservationId}", getReservation.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/reservations/{reservationId}", updateReservation.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/reservations/{reservationId}", deleteReservation.Handle).Methods(http.MethodDelete)

	// --- Lifecycle transitions ---
	protected.HandleFunc("/reservations/{reservationId}/cancel", cancelReservation.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/reservations/{reservationId}/confirm", confirmReservation.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/reservations/{reservationId}/complete", completeReservation.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/reservations/{reservationId}/no-show", markNoShow.Handle).Methods(http.MethodPatch)

	// --- Users ---
	protected.HandleFunc("/users/{userId}/reservations", getUserReservations.Handle).Methods(http.MethodGet)

	// --- Penalty management (privileged) ---
	protected.HandleFunc("/users/{userId}/strikes", updateUserStrikes.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/penalties/users", listFlaggedUsers.Handle).Methods(http.MethodGet)

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
