package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"csdesk/internal/api"
	"csdesk/internal/config"
	"csdesk/internal/ui"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	baseURL := flag.String("api", cfg.APIBaseURL, "backend API base address")
	agentID := flag.String("agent", cfg.AgentID, "agent identifier sent with workbench actions")
	logFile := flag.String("log-file", cfg.LogFile, "debug log destination (the terminal belongs to the UI)")
	altScreen := flag.Bool("alt-screen", true, "run in the terminal alternate screen")
	flag.Parse()

	zerolog.TimeFieldFormat = time.RFC3339
	level, levelErr := zerolog.ParseLevel(cfg.LogLevel)
	if levelErr != nil {
		level = zerolog.InfoLevel
	}
	sink, err := os.OpenFile(*logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "open log file: %v\n", err)
		os.Exit(1)
	}
	defer sink.Close()
	logger := zerolog.New(sink).Level(level).With().
		Timestamp().Str("service", "csdesk").Logger()

	client := api.New(*baseURL, cfg.RequestTimeout, logger)
	logger.Info().Str("api", *baseURL).Str("session", client.SessionID()).Msg("client started")

	deps := ui.Deps{
		API:           client,
		Log:           logger,
		AgentID:       *agentID,
		BIUserID:      cfg.BIUserID,
		TestUserID:    cfg.TestUserID,
		CouponDetails: cfg.CouponDetails,
		ChartOutDir:   cfg.ChartOutDir,
	}

	opts := []tea.ProgramOption{}
	if *altScreen {
		opts = append(opts, tea.WithAltScreen())
	}
	if _, err := tea.NewProgram(ui.NewModel(deps), opts...).Run(); err != nil {
		logger.Error().Err(err).Msg("ui exited with error")
		fmt.Fprintf(os.Stderr, "csdesk: %v\n", err)
		os.Exit(1)
	}
	logger.Info().Msg("client stopped")
}
