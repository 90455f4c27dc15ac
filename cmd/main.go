package main

import (
	"context"
	"errors"
	"fmt"
	"github.com/asaskevich/EventBus"
	"github.com/maxaizer/ats-realtime/internal/api"
	"github.com/maxaizer/ats-realtime/internal/config"
	"github.com/maxaizer/ats-realtime/internal/logger"
	"github.com/maxaizer/ats-realtime/internal/metrics"
	"github.com/maxaizer/ats-realtime/internal/realtime"
	"github.com/maxaizer/ats-realtime/internal/repositories"
	"github.com/maxaizer/ats-realtime/internal/services"
	log "github.com/sirupsen/logrus"
	"net/http"
	"os/signal"
	"syscall"
	"time"
)

const shutdownTimeout = 10 * time.Second

func runRealtime(cfg config.RealtimeConfig, bus EventBus.Bus) (*realtime.Hub, *realtime.Sweeper) {

	hub := realtime.NewHub(realtime.NewRegistry())

	if _, err := realtime.NewNotifier(hub, bus); err != nil {
		log.Fatalf("can't create notifier: %v", err)
	}

	sweeper, err := realtime.NewSweeper(hub, cfg.SweepInterval)
	if err != nil {
		log.Fatalf("can't create sweeper: %v", err)
	}
	return hub, sweeper
}

func main() {

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.Get()

	logger.Setup(ctx, cfg.Logger)
	defer logger.Cleanup()

	metrics.Register()

	dbContext, err := repositories.NewDbContext(cfg.DB.ConnectionString, cfg.DB.Debug)
	if err != nil {
		log.Fatalf("can't create db context: %v", err)
	}
	defer dbContext.Close()

	err = dbContext.Migrate()
	if err != nil {
		log.Fatalf("can't migrate db context: %v", err)
	}

	bus := EventBus.New()

	users := repositories.NewUsersRepository(dbContext.DB)
	jobs := repositories.NewJobsRepository(dbContext.DB)
	applicants := repositories.NewApplicantsRepository(dbContext.DB)
	cachedApplicants, err := repositories.NewCachedApplicants(applicants, bus, cfg.Realtime.ApplicantsCacheTTL)
	if err != nil {
		log.Fatalf("can't create applicants cache: %v", err)
	}

	hub, sweeper := runRealtime(cfg.Realtime, bus)
	defer sweeper.Stop()

	handler := api.NewHandler(api.Services{
		Users:      services.NewUserService(users, bus),
		Jobs:       services.NewJobService(jobs, users, bus),
		Applicants: services.NewApplicantService(applicants, cachedApplicants, jobs, bus),
		Statuses:   services.NewCandidateStatusManager(applicants, bus),
	})

	router := api.NewRouter(cfg.Server, handler, api.Realtime{
		Path:      cfg.Realtime.Path,
		WebSocket: realtime.NewServer(hub, cfg.Realtime),
		Metrics:   metrics.Handler(),
	})

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router,
	}

	go func() {
		log.Infof("server listening on %s, websocket path %s", server.Addr, cfg.Realtime.Path)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server failed: %v", err)
		}
	}()

	<-ctx.Done()

	log.Info("Shutting down services...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Errorf("server shutdown failed: %v", err)
	}
	hub.CloseAll()
	log.Info("Services stopped.")
}
