package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ujjiboni/dashboard/internal/backend"
	"github.com/ujjiboni/dashboard/internal/config"
	"github.com/ujjiboni/dashboard/internal/domain"
	"github.com/ujjiboni/dashboard/internal/platform"
	"github.com/ujjiboni/dashboard/internal/service"
	"github.com/ujjiboni/dashboard/internal/session"
	"github.com/ujjiboni/dashboard/internal/validation"

	"github.com/robfig/cron/v3"
)

const submissionTTL = 30 * time.Second

// The scheduler re-validates the persisted session against the backend so
// a revoked token is logged out even while no one is using the dashboard.
func main() {
	log.Println("Starting session scheduler...")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if cfg.State.Driver != config.DriverPostgres {
		log.Println("STATE_DRIVER is memory; the scheduler only sees its own session")
	}

	ctx := context.Background()
	domain.SetLocation(cfg.GetBusinessLocation())

	stateRepo, closeState, err := platform.OpenStateRepository(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to initialize state store: %v", err)
	}
	defer closeState()

	store, err := session.NewStore(ctx, stateRepo, cfg.State.Namespace)
	if err != nil {
		log.Fatalf("Failed to load session state: %v", err)
	}

	// With redis the cache is shared with the server, so a logout here also
	// drops what the server has cached.
	queryCache, submissions, closeCache := platform.OpenCache(cfg, submissionTTL)
	defer closeCache()

	api := backend.NewClient(cfg, store)
	authService := service.NewAuthService(api, store, queryCache, submissions, validation.New())
	api.OnUnauthorized(authService.HandleUnauthorized)

	c := cron.New(cron.WithLocation(cfg.GetSchedulerLocation()))
	setupCronJobs(c, cfg, store, authService)

	c.Start()
	log.Println("Scheduler started successfully")

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down scheduler...")
	<-c.Stop().Done()
	log.Println("Scheduler stopped")
}

func setupCronJobs(c *cron.Cron, cfg *config.Config, store *session.Store, auth *service.AuthService) {
	_, err := c.AddFunc(cfg.Scheduler.ProfilePollSpec, func() {
		revalidateProfile(store, auth)
	})
	if err != nil {
		log.Fatalf("Error scheduling profile revalidation job: %v", err)
	}

	log.Printf("Profile revalidation scheduled (%s)", cfg.Scheduler.ProfilePollSpec)
}

func revalidateProfile(store *session.Store, auth *service.AuthService) {
	ctx := context.Background()

	// Pick up logins and logouts made by the server.
	if err := store.Refresh(ctx); err != nil {
		log.Printf("Error refreshing session state: %v", err)
		return
	}
	if store.Token() == "" {
		return
	}

	log.Println("Running profile revalidation job...")
	if err := auth.RevalidateProfile(ctx); err != nil {
		log.Printf("Profile revalidation failed: %v", err)
	}
}
