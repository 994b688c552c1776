package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"brightloop_backend/internal/app/di"
	"brightloop_backend/internal/app/router"
	authadapters "brightloop_backend/internal/feature/auth/adapters"
	authhandler "brightloop_backend/internal/feature/auth/transport/handler"
	authjob "brightloop_backend/internal/feature/auth/transport/job"
	authusecase "brightloop_backend/internal/feature/auth/usecase"
	interviewhandler "brightloop_backend/internal/feature/interview/transport/handler"
	interviewusecase "brightloop_backend/internal/feature/interview/usecase"
	resourceadapters "brightloop_backend/internal/feature/resources/adapters"
	resourcehandler "brightloop_backend/internal/feature/resources/transport/handler"
	resourceusecase "brightloop_backend/internal/feature/resources/usecase"
	uploadhandler "brightloop_backend/internal/feature/upload/transport/handler"
	uploadusecase "brightloop_backend/internal/feature/upload/usecase"
	infradb "brightloop_backend/internal/platform/db"
	platformhandler "brightloop_backend/internal/platform/http/handler"
	jwtmw "brightloop_backend/internal/platform/jwt"
	"brightloop_backend/internal/platform/schedule"
)

const shutdownTimeout = 15 * time.Second

func runServer(parent context.Context, rt *runtime) error {
	cfg, log := rt.cfg, rt.log

	if cfg.Server.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.Database.RunMigrations {
		if err := infradb.AutoMigrate(rt.db, di.Models()...); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}

	// Notifier
	mail := di.NewMailDispatcher(cfg.Mail)
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := mail.Close(closeCtx); err != nil {
			log.Warn("mail queue not drained", zap.Error(err))
		}
	}()

	// Repository
	userRepo := authadapters.NewUserGorm(rt.db)
	otpRepo := di.NewOTPRepository(rt.rdb, rt.db)
	resourceRepo := resourceadapters.NewResourceGorm(rt.db)
	categoryRepo := resourceadapters.NewCategoryGorm(rt.db)
	answers := di.NewAnswerStore(rt.rdb, cfg.Answers.Capacity, cfg.Answers.TTL)

	completion, err := di.NewCompletionClient(ctx, cfg.AI)
	if err != nil {
		return fmt.Errorf("init completion client: %w", err)
	}
	ocr, closeOCR, err := di.NewTextRecognizer(ctx, cfg.Vision)
	if err != nil {
		return fmt.Errorf("init ocr: %w", err)
	}
	defer func() { _ = closeOCR() }()

	// Usecase
	otpManager := authusecase.NewOTPManager(userRepo, otpRepo, authadapters.NewOTPMailer(mail), cfg.OTP.TTL)
	authUC := authusecase.NewAuthUsecase(userRepo, otpManager, jwtmw.NewGenerator(cfg.JWT.Secret, cfg.JWT.TTL))
	pipeline := interviewusecase.NewPipeline(completion, answers, cfg.AI.Timeout)
	resourceUC := resourceusecase.NewResourceUsecase(resourceRepo, categoryRepo)
	uploadUC := uploadusecase.NewUploadUsecase(ocr)

	// Handler
	engine, err := router.NewRouter(router.Options{
		Logger:         log,
		JWTSecret:      cfg.JWT.Secret,
		AllowedOrigins: cfg.Server.AllowedOrigins,
		RateLimit:      cfg.Server.RateLimit,
		RateWindow:     cfg.Server.RateWindow,
		MaxBodyBytes:   cfg.Server.MaxBodyBytes,
	}, router.Handlers{
		Health:    platformhandler.NewHealthHandler(platformhandler.PingFunc(func(ctx context.Context) error { return infradb.Ping(ctx, rt.db) })),
		Auth:      authhandler.NewAuthHandler(authUC),
		Questions: interviewhandler.NewQuestionHandler(pipeline),
		Upload:    uploadhandler.NewUploadHandler(uploadUC),
		Resources: resourcehandler.NewResourceHandler(resourceUC),
	})
	if err != nil {
		return err
	}

	// Redisはキーを自動で失効させるため、定期削除はSQLストアのときだけ登録します。
	if rt.rdb == nil {
		scheduler := schedule.NewCronScheduler()
		if err := scheduler.AddJob(authjob.NewOTPSweepJob(otpManager), cfg.OTP.SweepSchedule); err != nil {
			return fmt.Errorf("schedule otp sweep: %w", err)
		}
		scheduler.Start(ctx)
		defer scheduler.Stop()
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("http server listening", zap.String("addr", srv.Addr), zap.String("env", cfg.Server.Environment))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
	case <-ctx.Done():
	}

	log.Info("server stopping...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
