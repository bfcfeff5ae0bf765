package routes

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"laboratorio_dental/internal/adapter/http/handlers"
	"laboratorio_dental/internal/adapter/persistence/repository"
	"laboratorio_dental/internal/infrastructure/auth"
	"laboratorio_dental/internal/infrastructure/config"
	"laboratorio_dental/internal/infrastructure/database"
	"laboratorio_dental/internal/infrastructure/logging"
	"laboratorio_dental/internal/infrastructure/payments"
	"laboratorio_dental/internal/infrastructure/scheduler"
	"laboratorio_dental/internal/usecase"
	"laboratorio_dental/internal/usecase/interfaces"
)

const shutdownTimeout = 10 * time.Second

// Run wires the application, starts the background sweeps and serves HTTP until
// ctx is cancelled.
func Run(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	ctx = logging.WithLogger(ctx, logger)

	ddb, err := database.ConnectDynamoDB(ctx, cfg)
	if err != nil {
		return fmt.Errorf("connect dynamodb: %w", err)
	}
	if cfg.AutoCreateTables {
		if err := database.EnsureTables(ctx, ddb, cfg.Tables, logger); err != nil {
			return fmt.Errorf("ensure tables: %w", err)
		}
	}

	orderRepo := repository.NewOrderDynamoRepository(ddb, cfg.Tables)
	doctorRepo := repository.NewDoctorDynamoRepository(ddb, cfg.Tables)
	notificationRepo := repository.NewNotificationDynamoRepository(ddb, cfg.Tables)
	counterRepo := repository.NewCounterDynamoRepository(ddb, cfg.Tables)
	userRepo := repository.NewUserDynamoRepository(ddb, cfg.Tables)

	tokens, err := auth.NewTokenService(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTExpiryDuration)
	if err != nil {
		return fmt.Errorf("token service: %w", err)
	}

	var paymentGateway interfaces.IPaymentGateway
	mpGateway, err := payments.NewMercadoPagoGateway(payments.Options{
		AccessToken:    cfg.MercadoPagoAccessToken,
		TestPayerEmail: cfg.MercadoPagoTestPayerMail,
		Mock:           cfg.PaymentGatewayMock,
	})
	if err != nil {
		logger.Warn("mercado pago gateway not configured", slog.String("error", err.Error()))
	} else {
		paymentGateway = mpGateway
	}

	numbers := usecase.NewOrderNumberAllocator(counterRepo, orderRepo)
	orderUseCase := usecase.NewOrderUseCase(orderRepo, doctorRepo, numbers, notificationRepo)
	paymentUseCase := usecase.NewPaymentUseCase(orderRepo, paymentGateway, notificationRepo)
	noteUseCase := usecase.NewNoteUseCase(orderRepo)
	doctorUseCase := usecase.NewDoctorUseCase(doctorRepo, orderRepo)
	notificationUseCase := usecase.NewNotificationUseCase(notificationRepo)
	authUseCase := usecase.NewAuthUseCase(userRepo, tokens)
	sweepUseCase := usecase.NewSweepUseCase(orderRepo, notificationRepo, cfg.UnpaidGracePeriod, cfg.PurgeRetention)

	if _, err := authUseCase.EnsureAdmin(ctx, cfg.AdminUsername, cfg.AdminPassword, cfg.AdminName); err != nil {
		return fmt.Errorf("bootstrap admin: %w", err)
	}
	if cfg.SeedCountersOnStart {
		n, err := numbers.SeedCounters(ctx)
		if err != nil {
			return fmt.Errorf("seed counters: %w", err)
		}
		logger.Info("order counters seeded", slog.Int("counters", n))
	}

	router := NewRouter(cfg, logger, Handlers{
		Orders:        handlers.NewOrderHandler(orderUseCase, doctorUseCase),
		Ledger:        handlers.NewLedgerHandler(paymentUseCase, noteUseCase),
		Doctors:       handlers.NewDoctorHandler(doctorUseCase),
		Notifications: handlers.NewNotificationHandler(notificationUseCase),
		Auth:          handlers.NewAuthHandler(authUseCase),
		Sweeps:        handlers.NewSweepHandler(sweepUseCase),
	}, tokens)

	sweeps := scheduler.New(logger,
		scheduler.Job{Name: "unpaid-check", Interval: cfg.UnpaidCheckInterval, Run: sweepUseCase.CheckUnpaidOrders},
		scheduler.Job{Name: "purge", Interval: cfg.PurgeInterval, Run: sweepUseCase.PurgeStaleOrders},
	)
	sweepCtx, stopSweeps := context.WithCancel(ctx)
	sweeps.Start(sweepCtx)
	defer sweeps.Wait()
	defer stopSweeps()

	srv := &http.Server{
		Addr:              net.JoinHostPort("", cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return serve(ctx, srv, logger)
}

func serve(ctx context.Context, srv *http.Server, logger *slog.Logger) error {
	serveErr := make(chan error, 1)
	logger.Info("http server listening", slog.String("addr", srv.Addr))
	go func() {
		serveErr <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		logger.Info("http server stopped")
		return nil
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve http: %w", err)
	}
}
