package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/MemorialTransportation/web-backend/internal/company"
	"github.com/MemorialTransportation/web-backend/internal/config"
	"github.com/MemorialTransportation/web-backend/internal/db"
	"github.com/MemorialTransportation/web-backend/internal/employee"
	"github.com/MemorialTransportation/web-backend/internal/fleet"
	"github.com/MemorialTransportation/web-backend/internal/logging"
	"github.com/MemorialTransportation/web-backend/internal/middleware"
	"github.com/MemorialTransportation/web-backend/internal/session"
	"github.com/MemorialTransportation/web-backend/internal/views"
)

func RootHandler(w http.ResponseWriter, r *http.Request) {
	response := "Server is up!"
	w.Header().Set("Content-Type", "text/plain")
	fmt.Fprintln(w, response)
}

// NewRouter wires every route. d is nil in demo mode.
func NewRouter(cfg *config.Config, log *zap.Logger, d *gorm.DB) (http.Handler, error) {
	profile, err := company.Load(cfg.CompanyProfile)
	if err != nil {
		return nil, err
	}

	proxies, err := middleware.ParseTrustedProxies(cfg.TrustedProxies)
	if err != nil {
		return nil, err
	}

	sessions := session.NewManager(session.Options{
		Secret: []byte(cfg.SessionSecret),
		TTL:    cfg.SessionTTL,
		Secure: cfg.SecureCookies,
	})

	var dir employee.Directory
	if !cfg.DemoModeEnabled {
		dir = employee.NewGormDirectory(d, log)
	}
	auth := employee.NewAuthenticator(dir, employee.AuthOptions{DemoMode: cfg.DemoModeEnabled}, log)
	gate := employee.NewGate(auth, sessions)
	limiter := middleware.NewLoginLimiter(cfg.LoginRatePerMinute, cfg.LoginBurst)
	trucks := fleet.NewStore(d)

	pages, err := views.New(views.Deps{
		Company:  profile,
		Gate:     gate,
		Sessions: sessions,
		Fleet:    trucks,
		Limiter:  limiter,
		Log:      log.Named("views"),
	})
	if err != nil {
		return nil, err
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP(proxies))
	r.Use(chimiddleware.Logger)
	r.Use(middleware.Recovery(log))
	r.Use(middleware.CORSMiddleware(cfg.AllowedOrigins))
	r.Use(middleware.OriginGuard(cfg.AllowedOrigins))

	r.Get("/", RootHandler)

	r.Mount("/employee", employee.SetupRoutes(employee.NewHandlers(gate, log.Named("employee")), sessions, limiter))
	r.Mount("/fleet", fleet.SetupRoutes(fleet.NewHandlers(trucks, log.Named("fleet")), sessions))
	r.Mount("/company", company.SetupRoutes(profile))
	pages.Register(r)

	return r, nil
}

// openDatabase connects and migrates. A database that cannot be reached at
// startup is not fatal: logins are rejected until it comes back.
func openDatabase(cfg *config.Config, log *zap.Logger) (*gorm.DB, error) {
	d, err := db.Open(cfg.DatabaseURL, log)
	if err != nil {
		return nil, err
	}

	for _, migrate := range []func(*gorm.DB) error{employee.Init, fleet.Init} {
		err := migrate(d)
		if db.IsUnavailable(err) {
			log.Warn("database unreachable, skipping migrations", zap.Error(err))
			break
		}
		if err != nil {
			db.Close(d)
			return nil, err
		}
	}
	return d, nil
}

func main() {
	_ = godotenv.Load(".env.local")

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}

	log, err := logging.New(cfg.LogLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, "logger:", err)
		os.Exit(1)
	}
	defer log.Sync()

	// chi's request logger writes through the standard library logger.
	undo := zap.RedirectStdLog(log.Named("http"))
	defer undo()

	var d *gorm.DB
	if cfg.DemoModeEnabled {
		log.Warn("DATABASE_URL not set, running in demo mode")
		if cfg.GeneratedSecret {
			log.Warn("SESSION_SECRET not set, using a per-process secret; sessions end on restart")
		}
	} else {
		d, err = openDatabase(cfg, log)
		if err != nil {
			log.Fatal("database setup failed", zap.Error(err))
		}
		defer db.Close(d)
	}

	router, err := NewRouter(cfg, log, d)
	if err != nil {
		log.Fatal("router setup failed", zap.Error(err))
	}

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Info("server listening", zap.String("addr", cfg.Addr()), zap.Bool("demo_mode", cfg.DemoModeEnabled))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		log.Info("shutting down server", zap.String("signal", sig.String()))
	case err := <-serverErr:
		log.Fatal("server error", zap.Error(err))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("server forced to shutdown", zap.Error(err))
		return
	}
	log.Info("server stopped gracefully")
}
