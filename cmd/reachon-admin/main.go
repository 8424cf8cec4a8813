package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/glabrego/reachon-admin/internal/api"
	"github.com/glabrego/reachon-admin/internal/app"
	"github.com/glabrego/reachon-admin/internal/config"
	"github.com/glabrego/reachon-admin/internal/logging"
	"github.com/glabrego/reachon-admin/internal/media"
	"github.com/glabrego/reachon-admin/internal/session"
	"github.com/glabrego/reachon-admin/internal/storage"
	"github.com/glabrego/reachon-admin/internal/tui"
	"github.com/glabrego/reachon-admin/internal/tui/platform"
)

func main() {
	cfg, err := config.LoadFromEnv()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	logger, err := logging.New(cfg.LogPath, cfg.LogLevel)
	if err != nil {
		log.Fatalf("logger init error: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	repo, err := storage.NewRepository(cfg.DBPath)
	if err != nil {
		log.Fatalf("storage init error: %v", err)
	}
	defer repo.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := repo.Init(ctx); err != nil {
		log.Fatalf("storage schema error: %v", err)
	}
	if err := repo.CheckWritable(ctx); err != nil {
		log.Fatalf("storage write check failed (%v). Verify REACHON_DB_PATH is writable: %s", err, cfg.DBPath)
	}

	sess := session.New(session.Tokens{})
	client := api.NewClient(cfg.APIBaseURL, sess, &http.Client{Timeout: cfg.HTTPTimeout}, logger)
	service := app.NewService(client, repo, sess, logger)

	previews := media.NewTempPreviews(os.TempDir())
	defer previews.Close()

	opts := tui.Options{
		Service:  service,
		Previews: previews,
		OpenFn:   platform.OpenWithSystem,
		CopyFn:   platform.CopyToClipboard,
		ReadFn:   platform.ReadAttachment,
	}
	if recorder, err := platform.DetectRecorder(os.TempDir()); err != nil {
		logger.Warn("audio recording disabled", zap.Error(err))
	} else {
		opts.Recorder = recorder
	}

	logger.Info("starting", zap.String("api", cfg.APIBaseURL), zap.String("db", cfg.DBPath))
	program := tea.NewProgram(tui.NewModel(opts), tea.WithAltScreen())
	final, err := program.Run()
	if m, ok := final.(tui.Model); ok {
		m.Close()
	}
	if err != nil {
		log.Fatalf("tui error: %v", err)
	}
	if n := previews.Outstanding(); n > 0 {
		logger.Warn("previews left behind at exit", zap.Int("count", n))
	}
}
