package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/hushchat/hush-tui/internal/api"
	"github.com/hushchat/hush-tui/internal/cache"
	"github.com/hushchat/hush-tui/internal/config"
	"github.com/hushchat/hush-tui/internal/session"
	"github.com/hushchat/hush-tui/internal/tui"
)

// Version is set at build time via ldflags.
var Version = "dev"

func main() {
	// Parse flags
	var (
		showVersion = flag.Bool("version", false, "Show version and exit")
		configPath  = flag.String("config", "config.toml", "Path to config file")
		debug       = flag.Bool("debug", false, "Enable debug logging")
		server      = flag.String("server", "", "Hush server endpoint (overrides config)")
	)
	flag.Parse()

	if *showVersion {
		fmt.Printf("Hush %s\n", Version)
		os.Exit(0)
	}

	// Initialize logging
	if err := initLogging(*debug); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logging: %v\n", err)
		os.Exit(1)
	}

	log.Info().Str("version", Version).Msg("Starting Hush")

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load config")
	}
	if *server != "" {
		cfg.Server.Endpoint = *server
	}
	log.Debug().Interface("config", cfg).Msg("Configuration loaded")

	// Initialize API client
	client, err := api.New(cfg.Server.Endpoint, cfg.Timeout(), cfg.Server.SessionCookie)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create API client")
	}

	// Initialize local cache
	c, err := cache.New()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize cache")
	}
	defer c.Close()
	log.Debug().Msg("Cache initialized")

	// Fetch identity before entering the TUI; nothing renders without it.
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Timeout())
	user, err := client.Me(ctx)
	cancel()
	if err != nil {
		log.Error().Err(err).Msg("Identity fetch failed")
		fmt.Fprintf(os.Stderr, "Could not sign in to %s: %v\n", cfg.Server.Endpoint, err)
		fmt.Fprintln(os.Stderr, "Check the endpoint and session cookie in config.toml or HUSH_ENDPOINT / HUSH_SESSION_COOKIE.")
		os.Exit(1)
	}
	sess := session.FromUser(user)
	log.Info().Int64("user_id", sess.UserID).Str("username", sess.Username).Msg("Signed in")

	// Bubble color: server preference first, cached preference as the
	// offline fallback.
	ctx, cancel = context.WithTimeout(context.Background(), cfg.Timeout())
	color, err := client.MessageColor(ctx)
	cancel()
	if err != nil {
		log.Warn().Err(err).Msg("Failed to fetch message color; using cached preference")
		if cached, cacheErr := c.MessageColor(); cacheErr == nil && cached != "" {
			color = cached
		}
	}
	if color == "" {
		color = cfg.UI.DefaultMessageColor
	}
	sess.SetMessageColor(color)

	// Create and run TUI
	model := tui.NewModel(client, c, sess, cfg.Server.Endpoint)
	program := tea.NewProgram(model, tea.WithAltScreen())

	if _, err := program.Run(); err != nil {
		log.Fatal().Err(err).Msg("TUI error")
	}

	log.Info().Msg("Hush shutdown complete")
}

func initLogging(debug bool) error {
	// Ensure data directory exists
	dataDir, err := config.EnsureDataDir()
	if err != nil {
		return fmt.Errorf("ensure data dir: %w", err)
	}

	// Open log file (truncate on startup)
	logPath := filepath.Join(dataDir, "hush.log")
	logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}

	// Configure zerolog
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	if debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	// Log to file only (TUI owns stdout/stderr)
	log.Logger = zerolog.New(logFile).With().Timestamp().Logger()

	return nil
}
