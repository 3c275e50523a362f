package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/segmentio/kafka-go"

	cancelAppointmentHandler "github.com/lkbeauty/salon-booking-service/internal/api/handlers/cancel_appointment"
	createAppointmentHandler "github.com/lkbeauty/salon-booking-service/internal/api/handlers/create_appointment"
	getAppointmentHandler "github.com/lkbeauty/salon-booking-service/internal/api/handlers/get_appointment"
	getAvailabilityHandler "github.com/lkbeauty/salon-booking-service/internal/api/handlers/get_availability"
	getCustomerAppointmentsHandler "github.com/lkbeauty/salon-booking-service/internal/api/handlers/get_customer_appointments"
	getDayAppointmentsHandler "github.com/lkbeauty/salon-booking-service/internal/api/handlers/get_day_appointments"
	getSalonConfigHandler "github.com/lkbeauty/salon-booking-service/internal/api/handlers/get_salon_config"
	updateSalonConfigHandler "github.com/lkbeauty/salon-booking-service/internal/api/handlers/update_salon_config"
	"github.com/lkbeauty/salon-booking-service/internal/api/middleware"
	"github.com/lkbeauty/salon-booking-service/internal/config"
	"github.com/lkbeauty/salon-booking-service/internal/events"
	appointmentRepo "github.com/lkbeauty/salon-booking-service/internal/infra/storage/appointment"
	catalogRepo "github.com/lkbeauty/salon-booking-service/internal/infra/storage/catalog"
	outboxRepo "github.com/lkbeauty/salon-booking-service/internal/infra/storage/outbox"
	salonConfigRepo "github.com/lkbeauty/salon-booking-service/internal/infra/storage/salonconfig"
	appointmentsService "github.com/lkbeauty/salon-booking-service/internal/service/appointments"
	salonConfigService "github.com/lkbeauty/salon-booking-service/internal/service/salonconfig"
	createAppointmentUC "github.com/lkbeauty/salon-booking-service/internal/usecase/create_appointment"
	getAvailableTimesUC "github.com/lkbeauty/salon-booking-service/internal/usecase/get_available_times"
	"github.com/lkbeauty/salon-booking-service/pkg/dbmetrics"
	"github.com/lkbeauty/salon-booking-service/pkg/logger"
	"github.com/lkbeauty/salon-booking-service/pkg/metrics"
	"github.com/lkbeauty/salon-booking-service/pkg/simpletxmanager"
	"github.com/lkbeauty/salon-booking-service/pkg/txmanager"
)

func main() {
	// Загружаем конфигурацию
	cfg, err := config.Load("config.toml")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting salon-booking-service...")
	log.Info("Configuration loaded from config.toml")

	// Часовой пояс салона: окно записи и отсечка отмены считаются в нём
	location, err := cfg.Salon.Location()
	if err != nil {
		log.Fatal("Failed to load salon timezone %q: %v", cfg.Salon.Timezone, err)
	}
	log.Info("Salon timezone: %s", location)

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	var wrappedDB *dbmetrics.DB
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаемся к базе данных
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	// Проверяем соединение
	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Инициализируем репозитории (с метриками или без)
	var (
		appointmentRepository *appointmentRepo.Repository
		catalogRepository     *catalogRepo.Repository
		salonConfigRepository *salonConfigRepo.Repository
		outboxRepository      *outboxRepo.Repository
	)

	// Интерфейс для transaction manager (используется в usecases и сервисах)
	type TxManager interface {
		Do(ctx context.Context, fn func(ctx context.Context) error) error
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, 15*time.Second, stopMetricsCh)
		log.Info("Database metrics collection started")

		appointmentRepository = appointmentRepo.NewRepository(wrappedDB)
		catalogRepository = catalogRepo.NewRepository(wrappedDB)
		salonConfigRepository = salonConfigRepo.NewRepository(wrappedDB)
		outboxRepository = outboxRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		appointmentRepository = appointmentRepo.NewRepository(db)
		catalogRepository = catalogRepo.NewRepository(db)
		salonConfigRepository = salonConfigRepo.NewRepository(db)
		outboxRepository = outboxRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	appointmentSvc := appointmentsService.NewService(
		appointmentRepository,
		outboxRepository,
		txMgr,
		cfg.Kafka.Topic,
		location,
		log,
	)
	salonConfigSvc := salonConfigService.NewService(salonConfigRepository, log)

	// Инициализируем use cases
	createAppointmentUseCase := createAppointmentUC.NewUseCase(
		appointmentRepository,
		catalogRepository,
		salonConfigRepository,
		outboxRepository,
		txMgr,
		cfg.Kafka.Topic,
		location,
		log,
	)
	getAvailableTimesUseCase := getAvailableTimesUC.NewUseCase(
		appointmentRepository,
		catalogRepository,
		salonConfigRepository,
		location,
		log,
	)

	// Запускаем публикацию событий из outbox (если настроен Kafka)
	publisherCtx, stopPublisher := context.WithCancel(context.Background())
	defer stopPublisher()

	if cfg.Kafka.Brokers != "" {
		writer := &kafka.Writer{
			Addr:     kafka.TCP(strings.Split(cfg.Kafka.Brokers, ",")...),
			Balancer: &kafka.Hash{},
		}
		defer writer.Close()

		publisher := events.NewPublisher(
			outboxRepository,
			writer,
			time.Duration(cfg.Kafka.PollEverySecs)*time.Second,
			cfg.Kafka.BatchSize,
			log,
		)
		go publisher.Run(publisherCtx)
		log.Info("Outbox publisher started (brokers=%s, topic=%s)", cfg.Kafka.Brokers, cfg.Kafka.Topic)
	} else {
		log.Warn("Kafka brokers not configured, outbox events will not be published")
	}

	// Инициализируем handlers
	createAppointment := createAppointmentHandler.NewHandler(createAppointmentUseCase, log)
	getAvailability := getAvailabilityHandler.NewHandler(getAvailableTimesUseCase, log)
	getAppointment := getAppointmentHandler.NewHandler(appointmentSvc, log)
	cancelAppointment := cancelAppointmentHandler.NewHandler(appointmentSvc, log)
	getCustomerAppointments := getCustomerAppointmentsHandler.NewHandler(appointmentSvc, log)
	getDayAppointments := getDayAppointmentsHandler.NewHandler(appointmentSvc, log)
	getSalonConfig := getSalonConfigHandler.NewHandler(salonConfigSvc, log)
	updateSalonConfig := updateSalonConfigHandler.NewHandler(salonConfigSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		log.Info("HTTP metrics middleware enabled")
	}

	// Metrics endpoint (публичный, без аутентификации)
	if cfg.Metrics.Enabled {
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Доступное время на дату
	api.HandleFunc("/availability", getAvailability.Handle).Methods(http.MethodGet)

	// Конфигурация салона
	api.HandleFunc("/salon-config", getSalonConfig.Handle).Methods(http.MethodGet)
	api.HandleFunc("/salon-config", updateSalonConfig.Handle).Methods(http.MethodPut)

	// Дневной лист для персонала
	api.HandleFunc("/appointments/day", getDayAppointments.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-Customer-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// Создание записи
	protected.HandleFunc("/appointments", createAppointment.Handle).Methods(http.MethodPost)

	// Получение записи по ID
	protected.HandleFunc("/appointments/{appointmentId}", getAppointment.Handle).Methods(http.MethodGet)

	// Отмена записи
	protected.HandleFunc("/appointments/{appointmentId}/cancel", cancelAppointment.Handle).Methods(http.MethodPost)

	// История записей клиента
	protected.HandleFunc("/customers/{customerId}/appointments", getCustomerAppointments.Handle).Methods(http.MethodGet)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	// Останавливаем публикацию событий
	stopPublisher()

	// Останавливаем сбор метрик connection pool
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

	log.Info("Server exited")
}
