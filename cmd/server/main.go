package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ujjiboni/dashboard/internal/backend"
	"github.com/ujjiboni/dashboard/internal/config"
	"github.com/ujjiboni/dashboard/internal/domain"
	"github.com/ujjiboni/dashboard/internal/handler"
	"github.com/ujjiboni/dashboard/internal/platform"
	"github.com/ujjiboni/dashboard/internal/service"
	"github.com/ujjiboni/dashboard/internal/session"
	"github.com/ujjiboni/dashboard/internal/validation"
	"github.com/ujjiboni/dashboard/pkg/response"

	"github.com/robfig/cron/v3"
)

const submissionTTL = 30 * time.Second

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if cfg.Logging.Level == "debug" {
		log.SetFlags(log.LstdFlags | log.Lshortfile)
	}

	ctx := context.Background()
	loc := cfg.GetBusinessLocation()
	domain.SetLocation(loc)

	stateRepo, closeState, err := platform.OpenStateRepository(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to initialize state store: %v", err)
	}
	defer closeState()

	queryCache, submissions, closeCache := platform.OpenCache(cfg, submissionTTL)
	defer closeCache()

	store, err := session.NewStore(ctx, stateRepo, cfg.State.Namespace)
	if err != nil {
		log.Fatalf("Failed to load session state: %v", err)
	}

	// Initialize services
	validator := validation.New()
	api := backend.NewClient(cfg, store)

	authService := service.NewAuthService(api, store, queryCache, submissions, validator)
	api.OnUnauthorized(authService.HandleUnauthorized)
	accountService := service.NewAccountService(api, queryCache, submissions, validator, loc)
	loanService := service.NewLoanService(api, queryCache, submissions, validator, loc)
	memberService := service.NewMemberService(api, store, queryCache, submissions, validator)
	summaryService := service.NewSummaryService(accountService, loanService)

	router := handler.NewRouter(handler.Handlers{
		Auth:     handler.NewAuthHandler(authService),
		Accounts: handler.NewAccountHandler(accountService),
		Loans:    handler.NewLoanHandler(loanService),
		Members:  handler.NewMemberHandler(memberService),
		Summary:  handler.NewSummaryHandler(summaryService),
		Health: handler.NewHealthHandler(map[string]handler.Pinger{
			"state": stateRepo,
			"cache": queryCache,
		}, cfg.GetHealthTimeout()),
	}, store)

	poller := cron.New(cron.WithLocation(cfg.GetSchedulerLocation()))
	if _, err := poller.AddFunc(cfg.Scheduler.ProfilePollSpec, func() {
		if err := authService.RevalidateProfile(context.Background()); err != nil {
			log.Printf("Profile revalidation failed: %v", err)
		}
	}); err != nil {
		log.Fatalf("Invalid PROFILE_POLL_SPEC %q: %v", cfg.Scheduler.ProfilePollSpec, err)
	}
	poller.Start()

	server := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      response.CORSMiddleware(router),
		ReadTimeout:  cfg.GetReadTimeout(),
		WriteTimeout: cfg.GetWriteTimeout(),
	}

	go func() {
		log.Printf("Server starting on %s (backend %s)", server.Addr, cfg.Backend.URL)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	<-poller.Stop().Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}
