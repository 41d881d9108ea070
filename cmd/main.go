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
	"github.com/redis/go-redis/v9"

	completeFakePaymentHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/complete_fake_payment"
	createAppointmentHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/create_appointment"
	createScheduleBlockHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/create_schedule_block"
	createServiceHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/create_service"
	deleteScheduleBlockHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/delete_schedule_block"
	getAppointmentHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/get_appointment"
	getAvailableDatesHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/get_available_dates"
	getAvailableSlotsHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/get_available_slots"
	getClientAppointmentsHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/get_client_appointments"
	getPendingDepositHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/get_pending_deposit"
	getProfessionalAppointmentsHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/get_professional_appointments"
	getScheduleHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/get_schedule"
	listServicesHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/list_services"
	paymentWebhookHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/payment_webhook"
	updateAppointmentStatusHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/update_appointment_status"
	updateScheduleBlockHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/update_schedule_block"
	updateServiceHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/update_service"
	"github.com/m04kA/SMC-AppointmentService/internal/api/middleware"
	"github.com/m04kA/SMC-AppointmentService/internal/config"
	appointmentRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/appointment"
	catalogRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/catalog"
	pendingStore "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/pending"
	scheduleRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/schedule"
	"github.com/m04kA/SMC-AppointmentService/internal/integrations/payments"
	appointmentsService "github.com/m04kA/SMC-AppointmentService/internal/service/appointments"
	catalogService "github.com/m04kA/SMC-AppointmentService/internal/service/catalog"
	scheduleService "github.com/m04kA/SMC-AppointmentService/internal/service/schedule"
	confirmDepositUC "github.com/m04kA/SMC-AppointmentService/internal/usecase/confirm_deposit"
	createBookingUC "github.com/m04kA/SMC-AppointmentService/internal/usecase/create_booking"
	getAvailableDatesUC "github.com/m04kA/SMC-AppointmentService/internal/usecase/get_available_dates"
	getAvailableSlotsUC "github.com/m04kA/SMC-AppointmentService/internal/usecase/get_available_slots"
	"github.com/m04kA/SMC-AppointmentService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AppointmentService/pkg/logger"
	"github.com/m04kA/SMC-AppointmentService/pkg/metrics"
	"github.com/m04kA/SMC-AppointmentService/pkg/txmanager"
)

// paymentGateway платежный провайдер, нужный обоим use case оплаты депозита
type paymentGateway interface {
	createBookingUC.PaymentGateway
	confirmDepositUC.PaymentGateway
}

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

	log.Info("Starting SMC-AppointmentService...")
	log.Info("Configuration loaded from config.toml")

	location, err := cfg.Booking.Location()
	if err != nil {
		log.Fatal("Failed to load timezone %q: %v", cfg.Booking.Timezone, err)
	}

	// Инициализируем метрики (если включены)
	// Без метрик коллектор остается nil, все его методы это допускают
	var metricsCollector *metrics.Metrics
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

	wrappedDB := dbmetrics.Wrap(db, metricsCollector, stopMetricsCh)
	if cfg.Metrics.Enabled {
		log.Info("Database metrics collection started")
	}

	// Подключаемся к Redis (ожидающие оплаты записи)
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer redisClient.Close()

	pingCtx, pingCancel := context.WithTimeout(context.Background(), 5*time.Second)
	if err := redisClient.Ping(pingCtx).Err(); err != nil {
		pingCancel()
		log.Fatal("Failed to ping redis at %s: %v", cfg.Redis.Addr, err)
	}
	pingCancel()
	log.Info("Successfully connected to redis (addr=%s, db=%d)", cfg.Redis.Addr, cfg.Redis.DB)

	// Инициализируем платежного провайдера
	var gateway paymentGateway
	switch cfg.Payments.Provider {
	case config.ProviderMercadoPago:
		mpGateway, err := payments.NewMercadoPagoGateway(
			cfg.Payments.AccessToken,
			cfg.Payments.PublicBaseURL,
			cfg.Payments.NotificationURL,
			log,
		)
		if err != nil {
			log.Fatal("Failed to initialize MercadoPago gateway: %v", err)
		}
		gateway = mpGateway
	default:
		gateway = payments.NewFakeGateway(cfg.Payments.PublicBaseURL, log)
	}
	log.Info("Payment provider initialized (provider=%s, currency=%s, pending_ttl=%s)",
		cfg.Payments.Provider, cfg.Payments.Currency, cfg.Payments.PendingTTL())

	// Инициализируем репозитории
	appointmentRepository := appointmentRepo.NewRepository(wrappedDB)
	catalogRepository := catalogRepo.NewRepository(wrappedDB)
	scheduleRepository := scheduleRepo.NewRepository(wrappedDB)
	pendingBookings := pendingStore.NewStore(redisClient)
	txMgr := txmanager.NewTransactionManager(wrappedDB)

	// Инициализируем сервисы
	appointmentSvc := appointmentsService.NewService(
		appointmentRepository,
		metricsCollector,
		location,
		log,
	)
	scheduleSvc := scheduleService.NewService(
		scheduleRepository,
		txMgr,
		log,
	)
	catalogSvc := catalogService.NewService(
		catalogRepository,
		log,
	)

	// Инициализируем use cases
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		catalogRepository,
		scheduleRepository,
		appointmentRepository,
		metricsCollector,
		location,
		cfg.Booking.HorizonDays,
		log,
	)

	getAvailableDatesUseCase := getAvailableDatesUC.NewUseCase(
		catalogRepository,
		scheduleRepository,
		appointmentRepository,
		metricsCollector,
		location,
		cfg.Booking.HorizonDays,
		cfg.Booking.MaxRangeDays,
		log,
	)

	createBookingUseCase := createBookingUC.NewUseCase(
		catalogRepository,
		scheduleRepository,
		appointmentRepository,
		pendingBookings,
		gateway,
		txMgr,
		metricsCollector,
		createBookingUC.Settings{
			Location:    location,
			HorizonDays: cfg.Booking.HorizonDays,
			PendingTTL:  cfg.Payments.PendingTTL(),
			Currency:    cfg.Payments.Currency,
		},
		log,
	)

	confirmDepositUseCase := confirmDepositUC.NewUseCase(
		pendingBookings,
		createBookingUseCase,
		gateway,
		metricsCollector,
		log,
	)

	// Инициализируем handlers
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	getAvailableDates := getAvailableDatesHandler.NewHandler(getAvailableDatesUseCase, log)
	createAppointment := createAppointmentHandler.NewHandler(createBookingUseCase, log)
	getAppointment := getAppointmentHandler.NewHandler(appointmentSvc, log)
	updateAppointmentStatus := updateAppointmentStatusHandler.NewHandler(appointmentSvc, log)
	getClientAppointments := getClientAppointmentsHandler.NewHandler(appointmentSvc, log)
	getProfessionalAppointments := getProfessionalAppointmentsHandler.NewHandler(appointmentSvc, log)
	getSchedule := getScheduleHandler.NewHandler(scheduleSvc, log)
	createScheduleBlock := createScheduleBlockHandler.NewHandler(scheduleSvc, log)
	updateScheduleBlock := updateScheduleBlockHandler.NewHandler(scheduleSvc, log)
	deleteScheduleBlock := deleteScheduleBlockHandler.NewHandler(scheduleSvc, log)
	listServices := listServicesHandler.NewHandler(catalogSvc, log)
	createService := createServiceHandler.NewHandler(catalogSvc, log)
	updateService := updateServiceHandler.NewHandler(catalogSvc, log)
	paymentWebhook := paymentWebhookHandler.NewHandler(confirmDepositUseCase, log)
	getPendingDeposit := getPendingDepositHandler.NewHandler(confirmDepositUseCase, log)
	completeFakePayment := completeFakePaymentHandler.NewHandler(confirmDepositUseCase, log)

	auth := middleware.NewAuthenticator(cfg.Auth.JWTSecret, cfg.Auth.Issuer)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestLogging(log))

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		log.Info("HTTP metrics middleware enabled")

		// Metrics endpoint (публичный, без аутентификации)
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (токен не обязателен)
	// ============================================================

	public := api.PathPrefix("").Subrouter()
	public.Use(auth.Optional)

	// Доступность специалиста
	public.HandleFunc("/professionals/{professionalId}/services/{serviceId}/available-dates",
		getAvailableDates.Handle).Methods(http.MethodGet)
	public.HandleFunc("/professionals/{professionalId}/services/{serviceId}/available-slots",
		getAvailableSlots.Handle).Methods(http.MethodGet)

	// Услуги и расписание (владелец видит и неактивные)
	public.HandleFunc("/professionals/{professionalId}/services",
		listServices.Handle).Methods(http.MethodGet)
	public.HandleFunc("/professionals/{professionalId}/schedule",
		getSchedule.Handle).Methods(http.MethodGet)

	// --- Оплата депозита ---
	// Уведомления платежного провайдера
	public.HandleFunc("/payments/webhook", paymentWebhook.Handle).Methods(http.MethodPost)

	// Состояние ожидающей оплаты записи
	public.HandleFunc("/payments/pending/{pendingId}", getPendingDeposit.Handle).Methods(http.MethodGet)

	// Страница тестового провайдера (только для provider=fake)
	if cfg.Payments.Provider == config.ProviderFake {
		public.HandleFunc("/payments/fake/{pendingId}", getPendingDeposit.Handle).Methods(http.MethodGet)
		public.HandleFunc("/payments/fake/{pendingId}/{outcome}", completeFakePayment.Handle).Methods(http.MethodPost)
		log.Warn("Fake payment provider enabled: deposits are confirmed without real charges")
	}

	// ============================================================
	// PROTECTED ROUTES (требуют Bearer JWT)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(auth.Required)

	// --- Записи ---
	// Создание записи
	protected.HandleFunc("/appointments", createAppointment.Handle).Methods(http.MethodPost)

	// Получение записи по ID
	protected.HandleFunc("/appointments/{appointmentId}", getAppointment.Handle).Methods(http.MethodGet)

	// Смена статуса записи (отмена, завершение, неявка)
	protected.HandleFunc("/appointments/{appointmentId}/status",
		updateAppointmentStatus.Handle).Methods(http.MethodPatch)

	// История записей клиента
	protected.HandleFunc("/clients/me/appointments", getClientAppointments.Handle).Methods(http.MethodGet)

	// --- Управление специалистом ---
	// Записи специалиста
	protected.HandleFunc("/professionals/{professionalId}/appointments",
		getProfessionalAppointments.Handle).Methods(http.MethodGet)

	// Блоки расписания
	protected.HandleFunc("/professionals/{professionalId}/schedule",
		createScheduleBlock.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/professionals/{professionalId}/schedule/{blockId}",
		updateScheduleBlock.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/professionals/{professionalId}/schedule/{blockId}",
		deleteScheduleBlock.Handle).Methods(http.MethodDelete)

	// Услуги
	protected.HandleFunc("/professionals/{professionalId}/services",
		createService.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/professionals/{professionalId}/services/{serviceId}",
		updateService.Handle).Methods(http.MethodPut)

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

	// Останавливаем сбор метрик connection pool
	close(stopMetricsCh)
	if cfg.Metrics.Enabled {
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
