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

	applyBillCreditHandler "github.com/bookitgy/BookitGY-Marketplace/internal/api/handlers/apply_bill_credit"
	cancelBookingHandler "github.com/bookitgy/BookitGY-Marketplace/internal/api/handlers/cancel_booking"
	cancelProviderBookingHandler "github.com/bookitgy/BookitGY-Marketplace/internal/api/handlers/cancel_provider_booking"
	createBookingHandler "github.com/bookitgy/BookitGY-Marketplace/internal/api/handlers/create_booking"
	createServiceHandler "github.com/bookitgy/BookitGY-Marketplace/internal/api/handlers/create_service"
	deleteServiceHandler "github.com/bookitgy/BookitGY-Marketplace/internal/api/handlers/delete_service"
	generateBillsHandler "github.com/bookitgy/BookitGY-Marketplace/internal/api/handlers/generate_bills"
	getAvailabilityHandler "github.com/bookitgy/BookitGY-Marketplace/internal/api/handlers/get_availability"
	getProviderBillsHandler "github.com/bookitgy/BookitGY-Marketplace/internal/api/handlers/get_provider_bills"
	getProviderBookingsHandler "github.com/bookitgy/BookitGY-Marketplace/internal/api/handlers/get_provider_bookings"
	getServiceChargeHandler "github.com/bookitgy/BookitGY-Marketplace/internal/api/handlers/get_service_charge"
	getUserBookingsHandler "github.com/bookitgy/BookitGY-Marketplace/internal/api/handlers/get_user_bookings"
	getWorkingHoursHandler "github.com/bookitgy/BookitGY-Marketplace/internal/api/handlers/get_working_hours"
	listProviderServicesHandler "github.com/bookitgy/BookitGY-Marketplace/internal/api/handlers/list_provider_services"
	markBillPaidHandler "github.com/bookitgy/BookitGY-Marketplace/internal/api/handlers/mark_bill_paid"
	updatePromotionHandler "github.com/bookitgy/BookitGY-Marketplace/internal/api/handlers/update_promotion"
	updateServiceChargeHandler "github.com/bookitgy/BookitGY-Marketplace/internal/api/handlers/update_service_charge"
	updateWorkingHoursHandler "github.com/bookitgy/BookitGY-Marketplace/internal/api/handlers/update_working_hours"
	"github.com/bookitgy/BookitGY-Marketplace/internal/api/middleware"
	"github.com/bookitgy/BookitGY-Marketplace/internal/config"
	billingRepo "github.com/bookitgy/BookitGY-Marketplace/internal/infra/storage/billing"
	bookingRepo "github.com/bookitgy/BookitGY-Marketplace/internal/infra/storage/booking"
	promotionRepo "github.com/bookitgy/BookitGY-Marketplace/internal/infra/storage/promotion"
	providerRepo "github.com/bookitgy/BookitGY-Marketplace/internal/infra/storage/provider"
	serviceRepo "github.com/bookitgy/BookitGY-Marketplace/internal/infra/storage/service"
	settingsRepo "github.com/bookitgy/BookitGY-Marketplace/internal/infra/storage/settings"
	userRepo "github.com/bookitgy/BookitGY-Marketplace/internal/infra/storage/user"
	workingHoursRepo "github.com/bookitgy/BookitGY-Marketplace/internal/infra/storage/workinghours"
	"github.com/bookitgy/BookitGY-Marketplace/internal/integrations/expopush"
	"github.com/bookitgy/BookitGY-Marketplace/internal/integrations/twilio"
	"github.com/bookitgy/BookitGY-Marketplace/internal/jobs"
	billingService "github.com/bookitgy/BookitGY-Marketplace/internal/service/billing"
	bookingsService "github.com/bookitgy/BookitGY-Marketplace/internal/service/bookings"
	catalogService "github.com/bookitgy/BookitGY-Marketplace/internal/service/catalog"
	notificationsService "github.com/bookitgy/BookitGY-Marketplace/internal/service/notifications"
	scheduleService "github.com/bookitgy/BookitGY-Marketplace/internal/service/schedule"
	createBookingUC "github.com/bookitgy/BookitGY-Marketplace/internal/usecase/create_booking"
	generateBillsUC "github.com/bookitgy/BookitGY-Marketplace/internal/usecase/generate_bills"
	getAvailabilityUC "github.com/bookitgy/BookitGY-Marketplace/internal/usecase/get_availability"
	"github.com/bookitgy/BookitGY-Marketplace/pkg/dbmetrics"
	"github.com/bookitgy/BookitGY-Marketplace/pkg/localclock"
	"github.com/bookitgy/BookitGY-Marketplace/pkg/logger"
	"github.com/bookitgy/BookitGY-Marketplace/pkg/metrics"
	"github.com/bookitgy/BookitGY-Marketplace/pkg/simpletxmanager"
	"github.com/bookitgy/BookitGY-Marketplace/pkg/txmanager"
)

// TxManager объединяет оба менеджера транзакций (с метриками и без)
type TxManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
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

	log.Info("Starting BookitGY-Marketplace...")

	// Часы маркетплейса: вся логика слотов и счетов работает во времени Гайаны
	clock, err := localclock.New(cfg.App.Timezone)
	if err != nil {
		log.Fatal("Failed to load timezone %s: %v", cfg.App.Timezone, err)
	}
	log.Info("Local clock initialized, timezone=%s", cfg.App.Timezone)

	// Инициализируем метрики (если включены)
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

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Инициализируем клиентов уведомлений
	notifyTimeout := time.Duration(cfg.Notifications.Timeout) * time.Second
	pushClient := expopush.NewClient(cfg.Notifications.ExpoPushURL, notifyTimeout, log)
	whatsappClient := twilio.NewClient(
		cfg.Notifications.TwilioBaseURL,
		cfg.Notifications.TwilioAccountSID,
		cfg.Notifications.TwilioAuthToken,
		cfg.Notifications.TwilioWhatsappFrom,
		notifyTimeout,
		log,
	)
	if whatsappClient.Configured() {
		log.Info("Twilio WhatsApp client configured")
	} else {
		log.Info("Twilio not configured, WhatsApp messages will be logged only")
	}

	// Выбираем исполнителя запросов и менеджер транзакций
	var (
		executor dbmetrics.DBExecutor
		txMgr    TxManager
	)

	if cfg.Metrics.Enabled {
		wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		executor = wrappedDB
		txMgr = txmanager.NewTransactionManager(wrappedDB)
		log.Info("Database metrics collection started")
	} else {
		executor = db
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем репозитории
	bookingRepository := bookingRepo.NewRepository(executor)
	userRepository := userRepo.NewRepository(executor)
	providerRepository := providerRepo.NewRepository(executor)
	serviceRepository := serviceRepo.NewRepository(executor)
	workingHoursRepository := workingHoursRepo.NewRepository(executor)
	billingRepository := billingRepo.NewRepository(executor)
	promotionRepository := promotionRepo.NewRepository(executor)
	settingsRepository := settingsRepo.NewRepository(executor)

	// Инициализируем сервисы
	notifier := notificationsService.NewService(pushClient, whatsappClient, log)
	bookingSvc := bookingsService.NewService(
		bookingRepository,
		providerRepository,
		userRepository,
		notifier,
		clock,
		log,
	)
	scheduleSvc := scheduleService.NewService(workingHoursRepository, providerRepository, log)
	catalogSvc := catalogService.NewService(serviceRepository, providerRepository, log)
	billingSvc := billingService.NewService(
		billingRepository,
		providerRepository,
		promotionRepository,
		settingsRepository,
		clock,
		log,
	)

	// Инициализируем use cases
	getAvailabilityUseCase := getAvailabilityUC.NewUseCase(
		serviceRepository,
		workingHoursRepository,
		bookingRepository,
		clock,
		log,
	)
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		serviceRepository,
		providerRepository,
		userRepository,
		billingRepository,
		promotionRepository,
		notifier,
		txMgr,
		clock,
		log,
	)
	generateBillsUseCase := generateBillsUC.NewUseCase(
		providerRepository,
		bookingRepository,
		billingRepository,
		settingsRepository,
		userRepository,
		notifier,
		txMgr,
		clock,
		log,
	)

	// Инициализируем handlers
	getAvailability := getAvailabilityHandler.NewHandler(getAvailabilityUseCase, log)
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	cancelProviderBooking := cancelProviderBookingHandler.NewHandler(bookingSvc, log)
	getUserBookings := getUserBookingsHandler.NewHandler(bookingSvc, log)
	getProviderBookings := getProviderBookingsHandler.NewHandler(bookingSvc, log)
	getWorkingHours := getWorkingHoursHandler.NewHandler(scheduleSvc, log)
	updateWorkingHours := updateWorkingHoursHandler.NewHandler(scheduleSvc, log)
	createService := createServiceHandler.NewHandler(catalogSvc, log)
	listProviderServices := listProviderServicesHandler.NewHandler(catalogSvc, log)
	deleteService := deleteServiceHandler.NewHandler(catalogSvc, log)
	getProviderBills := getProviderBillsHandler.NewHandler(billingSvc, log)
	generateBills := generateBillsHandler.NewHandler(generateBillsUseCase, log)
	markBillPaid := markBillPaidHandler.NewHandler(billingSvc, log)
	applyBillCredit := applyBillCreditHandler.NewHandler(billingSvc, log)
	updatePromotion := updatePromotionHandler.NewHandler(billingSvc, log)
	getServiceCharge := getServiceChargeHandler.NewHandler(billingSvc, log)
	updateServiceCharge := updateServiceChargeHandler.NewHandler(billingSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID)

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Календарь доступности услуги провайдера
	api.HandleFunc("/providers/{providerId}/services/{serviceId}/availability", getAvailability.Handle).Methods(http.MethodGet)

	// Каталог услуг провайдера
	api.HandleFunc("/providers/{providerId}/services", listProviderServices.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Бронирования ---
	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/users/{userId}/bookings", getUserBookings.Handle).Methods(http.MethodGet)

	// --- Кабинет провайдера (только владелец {providerId}) ---
	owner := protected.PathPrefix("/providers/{providerId}").Subrouter()
	owner.Use(middleware.ProviderOnly(providerRepository))

	owner.HandleFunc("/bookings", getProviderBookings.Handle).Methods(http.MethodGet)
	owner.HandleFunc("/bookings/{bookingId}/cancel", cancelProviderBooking.Handle).Methods(http.MethodPost)
	owner.HandleFunc("/working-hours", getWorkingHours.Handle).Methods(http.MethodGet)
	owner.HandleFunc("/working-hours", updateWorkingHours.Handle).Methods(http.MethodPut)
	owner.HandleFunc("/services", createService.Handle).Methods(http.MethodPost)
	owner.HandleFunc("/services/{serviceId}", deleteService.Handle).Methods(http.MethodDelete)
	owner.HandleFunc("/bills", getProviderBills.Handle).Methods(http.MethodGet)

	// --- Администрирование (только для пользователей с is_admin) ---
	admin := protected.PathPrefix("/admin").Subrouter()
	admin.Use(middleware.AdminOnly(userRepository))

	admin.HandleFunc("/bills/generate", generateBills.Handle).Methods(http.MethodPost)
	admin.HandleFunc("/bills/{billId}/pay", markBillPaid.Handle).Methods(http.MethodPost)
	admin.HandleFunc("/credits", applyBillCredit.Handle).Methods(http.MethodPost)
	admin.HandleFunc("/providers/{providerId}/promotion", updatePromotion.Handle).Methods(http.MethodPut)
	admin.HandleFunc("/service-charge", getServiceCharge.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/service-charge", updateServiceCharge.Handle).Methods(http.MethodPut)

	// Запускаем фоновые задачи
	jobsCtx, stopJobs := context.WithCancel(context.Background())

	reminderJob := jobs.NewReminderJob(
		bookingRepository,
		userRepository,
		notifier,
		clock,
		time.Duration(cfg.Scheduler.ReminderInterval)*time.Second,
		log,
	)
	go reminderJob.Start(jobsCtx)

	billingJob := jobs.NewBillingJob(
		generateBillsUseCase,
		clock,
		time.Duration(cfg.Scheduler.BillingInterval)*time.Second,
		log,
	)
	go billingJob.Start(jobsCtx)

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

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	stopJobs()

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
