package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/sudatra/aora/internal/adapter"
	"github.com/sudatra/aora/internal/appwrite"
	"github.com/sudatra/aora/internal/service"
	"github.com/sudatra/aora/internal/store"
)

// Version is set at build time via -ldflags
var Version = "dev"

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "aora",
	Short: "Browse, search and publish AI videos from the terminal",
	Long: `aora is a terminal client for the Aora video sharing app.

Running aora without a subcommand opens the browser UI.

Examples:
  aora signup --email alice@example.com --username alice
  aora signin --email alice@example.com
  aora posts --latest
  aora upload --title "Neon city" --prompt "a city at night" --thumbnail thumb.png --video city.mp4`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runBrowse,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default ~/.config/aora/config.yaml)")
	rootCmd.SetVersionTemplate("aora {{.Version}}\n")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// app holds the wired dependencies shared by every command
type app struct {
	cfg     *adapter.Config
	logger  *slog.Logger
	store   *store.Store
	client  *appwrite.Client
	backend *service.Backend

	logCloser io.Closer
}

// setup loads configuration and wires the backend
func setup() (*app, error) {
	cfg, err := adapter.LoadConfig(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger, closer, err := adapter.SetupLogger(&cfg.Logging)
	if err != nil {
		// Fall back to null logger if file logging fails
		logger = adapter.NullLogger()
		closer = nil
	}
	slog.SetDefault(logger)

	logger.Info("starting aora", "version", Version)

	st, err := store.New(cfg.Store.Path, cfg.Backend.Endpoint, cfg.Backend.ProjectID)
	if err != nil {
		if closer != nil {
			closer.Close()
		}
		return nil, fmt.Errorf("failed to open store: %w", err)
	}

	backendCfg := cfg.Backend
	client := appwrite.NewClient(backendCfg.Endpoint, backendCfg.ProjectID,
		appwrite.WithPlatform(backendCfg.OriginScheme, backendCfg.Platform),
		appwrite.WithTimeout(backendCfg.Timeout),
		appwrite.WithLogger(logger),
		appwrite.WithSessionStore(st),
	)

	backend := service.NewBackend(service.Repositories{
		Accounts: client.Account,
		Profiles: appwrite.NewProfileCollection(client, backendCfg.DatabaseID, backendCfg.UserCollectionID),
		Posts:    appwrite.NewPostCollection(client, backendCfg.DatabaseID, backendCfg.VideoCollectionID),
		Files:    appwrite.NewBucket(client, backendCfg.StorageID),
		Avatars:  client.Avatars,
		IDs:      appwrite.IDs{},
	}, logger)

	return &app{
		cfg:       cfg,
		logger:    logger,
		store:     st,
		client:    client,
		backend:   backend,
		logCloser: closer,
	}, nil
}

func (a *app) Close() {
	if err := a.store.Close(); err != nil {
		a.logger.Warn("failed to close store", "error", err)
	}
	a.logger.Info("shutting down")
	if a.logCloser != nil {
		a.logCloser.Close()
	}
}

// withApp runs fn with a wired app and closes it afterwards
func withApp(fn func(cmd *cobra.Command, args []string, a *app) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		a, err := setup()
		if err != nil {
			return err
		}
		defer a.Close()
		return fn(cmd, args, a)
	}
}
