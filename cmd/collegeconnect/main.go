package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"collegeconnect/internal/config"
	"collegeconnect/internal/domain"
	"collegeconnect/internal/observability/logging"
	"collegeconnect/internal/observability/metrics"
	"collegeconnect/internal/service"
	impl "collegeconnect/internal/service/impl"
	"collegeconnect/internal/store"
	httpx "collegeconnect/internal/transport/http"
	"collegeconnect/pkg/db"
)

const serviceName = "collegeconnect"

func main() {
	cfg := config.Load()

	logger := logging.NewLogger(logging.Config{
		ServiceName: serviceName,
		Environment: cfg.Environment,
		Level:       cfg.LogLevel,
	})
	slog.SetDefault(logger)
	logger.Info("starting service")

	metrics.MustRegister(serviceName)

	// 1) DB
	gdb, err := db.OpenGorm(db.Config{DSN: cfg.DatabaseURL, LogSQL: cfg.LogSQL})
	if err != nil {
		logger.Error("gorm open", "error", err)
		os.Exit(1)
	}
	if cfg.AutoMigrate {
		if err := gdb.AutoMigrate(domain.Models()...); err != nil {
			logger.Error("automigrate", "error", err)
			os.Exit(1)
		}
		logger.Info("schema migrated")
	}
	st := store.New(gdb)

	// 2) Services
	pw := impl.NewPasswordServiceArgon2id()
	ts := impl.NewTokenServiceHS256(impl.TokenConfig{
		Issuer:     cfg.Issuer,
		Audience:   cfg.Audience,
		AccessTTL:  cfg.AccessTTL,
		RefreshTTL: cfg.RefreshTTL,
		SigningKey: []byte(cfg.SigningKey),
	}, st)
	identity := impl.NewIdentityServiceImpl(st, pw, ts)

	if err := bootstrapAdmin(context.Background(), identity, cfg); err != nil {
		logger.Error("bootstrap admin", "error", err)
		os.Exit(1)
	}

	svc := httpx.Services{
		Identity:      identity,
		Tokens:        ts,
		Provision:     impl.NewProvisionServiceImpl(st, identity),
		Registrations: impl.NewRegistrationServiceImpl(st),
		Users:         impl.NewUserServiceImpl(st, identity),
		Colleges:      impl.NewCollegeServiceImpl(st),
		CollegeAdmins: impl.NewCollegeAdminServiceImpl(st),
		Counselors:    impl.NewCounselorServiceImpl(st),
		Students:      impl.NewStudentServiceImpl(st),
		Peers:         impl.NewPeerServiceImpl(st),
		Appointments:  impl.NewAppointmentServiceImpl(st),
	}

	// 3) HTTP router
	router := httpx.NewRouter(svc, httpx.Options{
		CORSOrigins:        cfg.CORSOrigins,
		RateLimitPerMinute: cfg.RateLimitPerMinute,
		MaxUploadBytes:     cfg.MaxUploadBytes(),
		TrustProxy:         cfg.TrustProxy,
	})

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		slog.Info("collegeconnect listening", "addr", srv.Addr, "issuer", cfg.Issuer)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown", "error", err)
	}
}

// bootstrapAdmin creates the configured platform admin once. An existing
// account with that email is left alone.
func bootstrapAdmin(ctx context.Context, identity service.IdentityService, cfg config.Config) error {
	if cfg.BootstrapAdminEmail == "" {
		return nil
	}
	if _, err := identity.FindUserByEmail(ctx, cfg.BootstrapAdminEmail); err == nil {
		return nil
	} else if !errors.Is(err, domain.ErrNotFound) {
		return err
	}
	if cfg.BootstrapAdminPassword == "" {
		return errors.New("BOOTSTRAP_ADMIN_PASSWORD is required with BOOTSTRAP_ADMIN_EMAIL")
	}
	u, err := identity.CreateUser(ctx, "Administrator", cfg.BootstrapAdminEmail, cfg.BootstrapAdminPassword, domain.RoleAdmin)
	if err != nil {
		return err
	}
	slog.Info("bootstrap admin created", "user_id", u.ID, "email", u.Email)
	return nil
}
