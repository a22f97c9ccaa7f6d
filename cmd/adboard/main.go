package main

import (
	"context"
	"fmt"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/dmitrijs2005/adboard/internal/buildinfo"
	"github.com/dmitrijs2005/adboard/internal/client/api"
	"github.com/dmitrijs2005/adboard/internal/client/config"
	"github.com/dmitrijs2005/adboard/internal/client/services"
	"github.com/dmitrijs2005/adboard/internal/client/session"
	"github.com/dmitrijs2005/adboard/internal/client/tui"
	"github.com/dmitrijs2005/adboard/internal/logging"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Fprintln(os.Stderr, "adboard needs an interactive terminal")
		os.Exit(1)
	}

	ctx := context.Background()
	cfg := config.LoadConfig()

	logger, closeLog, err := logging.NewFileLogger(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		log.Fatalf("%v", err)
	}
	defer closeLog()

	sess, err := session.NewStore(cfg.SessionFile, logger)
	if err != nil {
		log.Fatalf("%v", err)
	}
	if err := sess.Load(ctx); err != nil {
		logger.Warn(ctx, "session not restored", "error", err)
	}

	opts := []api.Option{
		api.WithLogger(logger),
		api.WithTimeout(cfg.RequestTimeout),
	}
	if cfg.ClearOn401 {
		opts = append(opts, api.WithUnauthorizedHook(func() {
			sess.Logout(ctx)
		}))
	}
	client := api.NewHTTPClient(cfg.ServerEndpointURL, sess, opts...)

	media := services.NewMediaService(client, logger)
	metrics := services.NewMetricService(client, media, logger)

	app := tui.NewApp(sess, client, metrics, media, logger)
	if _, err := tea.NewProgram(app, tea.WithAltScreen()).Run(); err != nil {
		log.Fatalf("%v", err)
	}
}
