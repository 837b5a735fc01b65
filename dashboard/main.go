package main

import (
	"context"
	"fmt"
	"os"

	"github.com/groupware-tools/zimbra-go/dashboard/services"
	"github.com/groupware-tools/zimbra-go/pkg/config"
	"github.com/groupware-tools/zimbra-go/pkg/credstore"
	"github.com/groupware-tools/zimbra-go/pkg/credstore/postgres"
	"github.com/groupware-tools/zimbra-go/pkg/zimbra"
	"go.uber.org/zap"
)

func main() {
	// Initialize logger
	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Error("Failed to load config", zap.Error(err))
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize the credential store; the refresh cannot run without it
	storeCfg := postgres.NewConfig()
	store, err := postgres.New(storeCfg, logger)
	if err != nil {
		logger.Error("Failed to connect to credential store", zap.Error(err))
		fmt.Fprintf(os.Stderr, "Failed to connect to credential store: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	ctx := context.Background()
	if err := store.InitSchema(ctx); err != nil {
		logger.Error("Failed to initialize credential store schema", zap.Error(err))
		fmt.Fprintf(os.Stderr, "Failed to initialize credential store schema: %v\n", err)
		os.Exit(1)
	}

	// Seed the admin-configured default instance URL
	if err := store.SetAppValue(ctx, credstore.KeyAdminInstanceURL, cfg.AdminInstanceURL); err != nil {
		logger.Error("Failed to store admin instance URL", zap.Error(err))
		fmt.Fprintf(os.Stderr, "Failed to store admin instance URL: %v\n", err)
		os.Exit(1)
	}

	// Create Zimbra client and refresh service
	client := zimbra.NewClientWithLogger(store, logger)
	unreadSvc := services.NewUnreadService(client, store, cfg.RefreshConcurrency, logger)

	counts, metrics, err := unreadSvc.RefreshAll(ctx)
	if err != nil {
		logger.Error("Failed to refresh unread counts", zap.Error(err))
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Unread counts refreshed")
	for userID, count := range counts {
		fmt.Printf("  %s: %d unread\n", userID, count)
	}
	fmt.Printf("Refresh metrics (%s):\n", metrics.RefreshID)
	fmt.Printf("  Users: %d succeeded, %d failed, %d skipped (of %d)\n",
		metrics.UsersSucceeded, metrics.UsersFailed, metrics.UsersSkipped, metrics.Total())
	fmt.Printf("  Duration: %s\n", metrics.Duration)
}
