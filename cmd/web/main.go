package main

import (
	"fmt"
	"net"
	"os"
	"os/user"
	"time"

	"github.com/bi-tools/reportsmith/pkg/server"
	"github.com/bi-tools/reportsmith/pkg/services/archive"
	"github.com/bi-tools/reportsmith/pkg/services/assembler"
	"github.com/bi-tools/reportsmith/pkg/services/config"
	"github.com/bi-tools/reportsmith/pkg/store/duckdb"
	reportstore "github.com/bi-tools/reportsmith/pkg/store/duckdb/report"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var (
	cfgPath     string
	profileName string
)

func main() {
	var rootCmd = &cobra.Command{
		Use:   "web",
		Short: "Start the web server for Reportsmith",
		RunE:  runServer,
	}

	usr, _ := user.Current()
	defaultPath := fmt.Sprintf("%s/.reportsmithcfg", usr.HomeDir)

	rootCmd.Flags().StringVarP(&cfgPath, "config", "c", defaultPath,
		"Path to the .reportsmithcfg file (default is $HOME/.reportsmithcfg)")
	rootCmd.Flags().StringVar(&profileName, "profile", "default",
		"Profile section to serve")

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func runServer(cmd *cobra.Command, _ []string) error {
	if err := godotenv.Load(); err != nil {
		fmt.Printf("Error loading .env file: %v\n", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	ctx := logger.WithContext(cmd.Context())

	registry, err := config.NewRegistry(cfgPath)
	if err != nil {
		return fmt.Errorf("failed to create config registry: %w", err)
	}

	logger.Info().Msgf("Configuration found at `%s` successfully loaded.", cfgPath)
	profiles, _ := registry.GetProfiles(ctx)
	logger.Info().Msgf("Found the following profiles: %v", profiles)

	profile, err := registry.GetProfile(ctx, profileName)
	if err != nil {
		return fmt.Errorf("failed to load profile %q: %w", profileName, err)
	}

	db, err := duckdb.NewDB(duckdb.Settings{
		DbPath: profile.DBPath,
	})
	if err != nil {
		return fmt.Errorf("failed to create DuckDB instance: %w", err)
	}
	defer db.Close()

	store, err := reportstore.NewStore(db)
	if err != nil {
		return fmt.Errorf("failed to create report store: %w", err)
	}

	renderer, err := assembler.New()
	if err != nil {
		return fmt.Errorf("failed to create assembler: %w", err)
	}
	archiver := archive.NewArchiver("markdown", renderer, store, profile.ReportsDir)

	host := os.Getenv("SERVER_HOST")
	port := os.Getenv("SERVER_PORT")

	if host == "" || port == "" {
		logger.Error().Msgf("Missing server configuration from .env file")
		os.Exit(1)
	}

	addr := net.JoinHostPort(host, port)

	api := server.NewWebAPI(logger, server.Config{
		Addr:            addr,
		ShutdownTimeout: 10 * time.Second,
		Dependencies: server.Dependencies{
			Assembler: archiver,
			Store:     store,
		},
	})

	return api.Start()
}
