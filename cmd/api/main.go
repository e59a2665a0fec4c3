package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/vaughan-dsouza/fitness/internal/config"
	"github.com/vaughan-dsouza/fitness/internal/db"
	"github.com/vaughan-dsouza/fitness/internal/forms"
	"github.com/vaughan-dsouza/fitness/internal/handlers"
	"github.com/vaughan-dsouza/fitness/internal/images"
	"github.com/vaughan-dsouza/fitness/internal/logging"
	"github.com/vaughan-dsouza/fitness/internal/metrics"
	"github.com/vaughan-dsouza/fitness/internal/middleware"
	"github.com/vaughan-dsouza/fitness/internal/session"
	"github.com/vaughan-dsouza/fitness/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("load config: %v", err)
	}

	log := logging.New(cfg.LogLevel, cfg.LogFormat)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	dbConn, err := db.Connect(ctx, cfg.DB)
	cancel()
	if err != nil {
		log.Fatalf("db connect: %v", err)
	}
	defer dbConn.Close()

	if cfg.DB.Migrate {
		if err := db.Migrate(cfg.DB.URL); err != nil {
			log.Fatalf("db migrate: %v", err)
		}
		log.Info("database schema up to date")
	}

	pictures, err := images.NewSaver(cfg.PictureDir)
	if err != nil {
		log.Fatalf("picture dir: %v", err)
	}

	st := store.New(dbConn)
	h := handlers.NewHandler(&handlers.App{
		Users:    st.Users,
		Posts:    st.Posts,
		Comments: st.Comments,
		Sessions: session.NewManager(cfg.Session),
		Forms:    forms.New(st.Users),
		Pictures: pictures,
		Metrics:  metrics.New(),
		Log:      log,
	})

	stop := make(chan struct{})
	limiter := middleware.NewRateLimiter(cfg.RateLimit.PerSecond, cfg.RateLimit.Burst, log)
	limiter.StartCleanup(10*time.Minute, stop)

	srv := &http.Server{
		Addr: ":" + cfg.Port,
		Handler: h.Routes(handlers.RouterConfig{
			CORSOrigins: cfg.CORSOrigins,
			PictureDir:  cfg.PictureDir,
			AuthLimiter: limiter,
			Health:      st.Ping,
		}),
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.WithField("addr", srv.Addr).Info("listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("listen: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	log.Info("shutting down server...")
	close(stop)

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("server forced to shutdown: %v", err)
	}

	log.Info("server exited")
}
