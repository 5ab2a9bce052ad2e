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

	cancelBookingHandler "github.com/m04kA/SMC-BeautyBookingService/internal/api/handlers/cancel_booking"
	getAvailableSlotsHandler "github.com/m04kA/SMC-BeautyBookingService/internal/api/handlers/get_available_slots"
	getBookingHandler "github.com/m04kA/SMC-BeautyBookingService/internal/api/handlers/get_booking"
	getProviderBookingsHandler "github.com/m04kA/SMC-BeautyBookingService/internal/api/handlers/get_provider_bookings"
	getProviderSettingsHandler "github.com/m04kA/SMC-BeautyBookingService/internal/api/handlers/get_provider_settings"
	getUserBookingsHandler "github.com/m04kA/SMC-BeautyBookingService/internal/api/handlers/get_user_bookings"
	paymentWebhookHandler "github.com/m04kA/SMC-BeautyBookingService/internal/api/handlers/payment_webhook"
	settleBookingHandler "github.com/m04kA/SMC-BeautyBookingService/internal/api/handlers/settle_booking"
	startBookingHandler "github.com/m04kA/SMC-BeautyBookingService/internal/api/handlers/start_booking"
	updateProviderSettingsHandler "github.com/m04kA/SMC-BeautyBookingService/internal/api/handlers/update_provider_settings"
	"github.com/m04kA/SMC-BeautyBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-BeautyBookingService/internal/config"
	bookingRepo "github.com/m04kA/SMC-BeautyBookingService/internal/infra/storage/booking"
	settingsRepo "github.com/m04kA/SMC-BeautyBookingService/internal/infra/storage/settings"
	slotRepo "github.com/m04kA/SMC-BeautyBookingService/internal/infra/storage/slot"
	catalogServiceClient "github.com/m04kA/SMC-BeautyBookingService/internal/integrations/catalogservice"
	notifierClient "github.com/m04kA/SMC-BeautyBookingService/internal/integrations/notifier"
	paymentGatewayClient "github.com/m04kA/SMC-BeautyBookingService/internal/integrations/paymentgw"
	userServiceClient "github.com/m04kA/SMC-BeautyBookingService/internal/integrations/userservice"
	bookingsService "github.com/m04kA/SMC-BeautyBookingService/internal/service/bookings"
	settingsService "github.com/m04kA/SMC-BeautyBookingService/internal/service/settings"
	confirmBookingUC "github.com/m04kA/SMC-BeautyBookingService/internal/usecase/confirm_booking"
	getAvailableSlotsUC "github.com/m04kA/SMC-BeautyBookingService/internal/usecase/get_available_slots"
	settleBookingUC "github.com/m04kA/SMC-BeautyBookingService/internal/usecase/settle_booking"
	startBookingUC "github.com/m04kA/SMC-BeautyBookingService/internal/usecase/start_booking"
	"github.com/m04kA/SMC-BeautyBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-BeautyBookingService/pkg/logger"
	"github.com/m04kA/SMC-BeautyBookingService/pkg/metrics"
	"github.com/m04kA/SMC-BeautyBookingService/pkg/simpletxmanager"
	"github.com/m04kA/SMC-BeautyBookingService/pkg/txmanager"
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

	log.Info("Starting SMC-BeautyBookingService...")
	log.Info("Configuration loaded from config.toml")

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

	// Инициализируем интеграционных клиентов
	gatewayClient := paymentGatewayClient.NewClient(
		cfg.PaymentGateway.BaseURL,
		cfg.PaymentGateway.SecretKey,
		time.Duration(cfg.PaymentGateway.Timeout)*time.Second,
		log,
	)
	catalogClient := catalogServiceClient.NewClient(
		cfg.CatalogService.URL,
		time.Duration(cfg.CatalogService.Timeout)*time.Second,
		log,
	)
	userClient := userServiceClient.NewClient(
		cfg.UserService.URL,
		time.Duration(cfg.UserService.Timeout)*time.Second,
		log,
	)
	notifyClient := notifierClient.NewClient(
		cfg.Notifier.URL,
		time.Duration(cfg.Notifier.Timeout)*time.Second,
		log,
	)
	log.Info("Integration clients initialized (PaymentGateway=%s, CatalogService=%s, UserService=%s, Notifier=%s)",
		cfg.PaymentGateway.BaseURL, cfg.CatalogService.URL, cfg.UserService.URL, cfg.Notifier.URL)

	// Инициализируем репозитории (с метриками или без)
	var (
		bookingRepository  *bookingRepo.Repository
		slotRepository     *slotRepo.Repository
		settingsRepository *settingsRepo.Repository
	)

	// Интерфейс для transaction manager (используется в usecases и сервисах)
	type TxManager interface {
		Do(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		// Инициализируем репозитории с обёрткой метрик
		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		slotRepository = slotRepo.NewRepository(wrappedDB)
		settingsRepository = settingsRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		// Инициализируем репозитории без метрик
		bookingRepository = bookingRepo.NewRepository(db)
		slotRepository = slotRepo.NewRepository(db)
		settingsRepository = settingsRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	bookingSvc := bookingsService.NewService(
		bookingRepository,
		slotRepository,
		txMgr,
		notifyClient,
		log,
	)
	settingsSvc := settingsService.NewService(
		settingsRepository,
		catalogClient,
		log,
	)

	// Инициализируем use cases
	startBookingUseCase := startBookingUC.NewUseCase(
		slotRepository,
		bookingRepository,
		catalogClient,
		gatewayClient,
		startBookingUC.Config{
			PlatformFeePercent: cfg.PaymentGateway.PlatformFeePercent,
			SuccessURL:         cfg.PaymentGateway.SuccessURL,
			CancelURL:          cfg.PaymentGateway.CancelURL,
		},
		log,
	)

	confirmBookingUseCase := confirmBookingUC.NewUseCase(
		bookingRepository,
		slotRepository,
		catalogClient,
		userClient,
		txMgr,
		notifyClient,
		log,
	)

	settleBookingUseCase := settleBookingUC.NewUseCase(
		bookingRepository,
		settingsRepository,
		catalogClient,
		gatewayClient,
		notifyClient,
		settleBookingUC.Config{
			PlatformFeePercent: cfg.PaymentGateway.PlatformFeePercent,
		},
		log,
	)

	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		slotRepository,
		cfg.Booking.MinBookingNoticeMinutes,
		log,
	)

	// Инициализируем handlers
	startBooking := startBookingHandler.NewHandler(startBookingUseCase, log)
	paymentWebhook := paymentWebhookHandler.NewHandler(confirmBookingUseCase, log)
	settleBooking := settleBookingHandler.NewHandler(settleBookingUseCase, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	getUserBookings := getUserBookingsHandler.NewHandler(bookingSvc, log)
	getProviderBookings := getProviderBookingsHandler.NewHandler(bookingSvc, log)
	getProviderSettings := getProviderSettingsHandler.NewHandler(settingsSvc, log)
	updateProviderSettings := updateProviderSettingsHandler.NewHandler(settingsSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.Metrics(metricsCollector))
		log.Info("HTTP metrics middleware enabled")
	}

	// Metrics endpoint (публичный, без аутентификации)
	if cfg.Metrics.Enabled {
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.Auth)

	// ============================================================
	// PUBLIC ROUTES (гостевые операции, без авторизации)
	// ============================================================

	// Начало бронирования: захват слота + платёжная сессия
	api.HandleFunc("/bookings", startBooking.Handle).Methods(http.MethodPost)

	// Webhook платёжного шлюза
	api.HandleFunc("/webhooks/payment", paymentWebhook.Handle).Methods(http.MethodPost)

	// Доступные слоты услуги
	api.HandleFunc("/services/{serviceId}/slots",
		getAvailableSlots.Handle).Methods(http.MethodGet)

	// ============================================================
	// AUTHENTICATED ROUTES (X-User-ID или X-Provider-ID)
	// ============================================================

	// --- Бронирования ---
	// Получение бронирования по ID
	api.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)

	// Отмена бронирования
	api.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)

	// Итоговый расчёт после оказания услуги
	api.HandleFunc("/bookings/{bookingId}/settle", settleBooking.Handle).Methods(http.MethodPost)

	// История бронирований пользователя
	api.HandleFunc("/users/{userId}/bookings", getUserBookings.Handle).Methods(http.MethodGet)

	// --- Кабинет провайдера ---
	// Список бронирований провайдера
	api.HandleFunc("/providers/{providerId}/bookings", getProviderBookings.Handle).Methods(http.MethodGet)

	// Настройки расчётов провайдера
	api.HandleFunc("/providers/{providerId}/settings", getProviderSettings.Handle).Methods(http.MethodGet)
	api.HandleFunc("/providers/{providerId}/settings", updateProviderSettings.Handle).Methods(http.MethodPut)

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
