package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"natura-salon-backend/config"
	"natura-salon-backend/models"
	"natura-salon-backend/repository"
	"natura-salon-backend/routes"
	"natura-salon-backend/services"
	"natura-salon-backend/utils"
)

func main() {
	if len(os.Args) == 3 && os.Args[1] == "hash-password" {
		hash, err := utils.HashPassword(os.Args[2])
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		fmt.Println(hash)
		return
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}
	config.SetupLogger(cfg.App.Environment)
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	repo, db, err := openRepository(cfg)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.Database.Driver).Msg("Failed to open reservation store")
	}

	var notifier services.Notifier = services.NopNotifier{}
	if cfg.SendGrid.Enabled() {
		notifier = services.NewSendGridNotifier(cfg.SendGrid, cfg.Menu.Items)
	} else {
		log.Info().Msg("SendGrid is not configured; confirmation emails disabled")
	}

	reservations := services.NewReservationService(repo, services.RulesFromConfig(cfg), cfg.Location(),
		services.WithNotifier(notifier))

	var reminders *services.ReminderService
	if cfg.Twilio.Enabled() {
		reminders = services.NewReminderService(repo, services.NewTwilioSender(cfg.Twilio), db, cfg)
		if err := reminders.StartScheduler(cfg.Reminders.Cron); err != nil {
			log.Fatal().Err(err).Msg("Failed to start reminder scheduler")
		}
		defer reminders.Stop()
	} else {
		log.Info().Msg("Twilio is not configured; reminders disabled")
	}

	r := routes.SetupRouter(cfg, reservations)
	printRoutes(r)

	server := &http.Server{
		Addr:              ":" + cfg.App.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info().Str("port", cfg.App.Port).Str("store", cfg.Database.Driver).Msg("Starting server")
		if err := server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()

		log.Info().Msg("Shutting down server")
		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown error: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		log.Error().Err(err).Msg("Server terminated with error")
		os.Exit(1)
	}
}

// openRepository returns the configured store. db is nil for the memory driver.
func openRepository(cfg *config.Config) (repository.ReservationRepository, *gorm.DB, error) {
	if cfg.Database.Driver == config.DriverMemory {
		log.Warn().Msg("Using in-memory reservation store; data is lost on restart")
		return repository.NewMemoryReservationRepository(), nil, nil
	}

	db, err := config.ConnectDB(cfg.Database)
	if err != nil {
		return nil, nil, err
	}
	if err := models.AutoMigrate(db); err != nil {
		return nil, nil, fmt.Errorf("auto migrate: %w", err)
	}
	return repository.NewGormReservationRepository(db), db, nil
}

func printRoutes(r *gin.Engine) {
	for _, route := range r.Routes() {
		log.Debug().Str("method", route.Method).Str("path", route.Path).Msg("route")
	}
}
