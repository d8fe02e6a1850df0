package app

import (
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/hance08/bankdash/internal/api"
	"github.com/hance08/bankdash/internal/config"
	"github.com/hance08/bankdash/internal/constants"
	"github.com/hance08/bankdash/internal/export"
	"github.com/hance08/bankdash/internal/logger"
	"github.com/hance08/bankdash/internal/service"
	"github.com/hance08/bankdash/internal/store"
	"github.com/spf13/afero"
)

type App struct {
	Service     *service.Service
	Store       *store.Store
	Config      *config.Config
	Logger      *slog.Logger
	SessionPath string
	ExportDir   string
}

// NewApp opens the session database, builds the API client and the
// services on top of it, then returns the App with its cleanup func.
func NewApp(cfg *config.Config, migrationFS fs.FS) (*App, func(), error) {
	log := logger.New(os.Stderr, cfg.Log.Level)

	sessionPath, err := SessionPath(cfg)
	if err != nil {
		return nil, nil, err
	}
	if err := os.MkdirAll(filepath.Dir(sessionPath), 0o755); err != nil {
		return nil, nil, fmt.Errorf("failed to create session directory: %w", err)
	}

	dbStore, err := store.NewStore(sessionPath, migrationFS)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize session storage: %w", err)
	}

	client, err := api.NewClient(cfg.API.BaseURL, cfg.API.Timeout, dbStore, log)
	if err != nil {
		_ = dbStore.Close()
		return nil, nil, fmt.Errorf("invalid api.base_url: %w", err)
	}

	exportDir, err := ExportDir(cfg)
	if err != nil {
		_ = dbStore.Close()
		return nil, nil, err
	}
	saver := export.NewSaver(afero.NewOsFs(), exportDir)

	svc := service.NewService(client, dbStore, saver, cfg, log)

	cleanup := func() {
		if err := dbStore.Close(); err != nil {
			log.Error("failed to close session storage", slog.Any("error", err))
		}
	}

	return &App{
		Service:     svc,
		Store:       dbStore,
		Config:      cfg,
		Logger:      log,
		SessionPath: sessionPath,
		ExportDir:   exportDir,
	}, cleanup, nil
}

// SessionPath resolves session.path, defaulting to the app data dir.
func SessionPath(cfg *config.Config) (string, error) {
	if cfg.Session.Path == "" {
		appDir, err := DataDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(appDir, constants.AppName+".db"), nil
	}
	return ExpandPath(cfg.Session.Path)
}

// ExportDir resolves export.dir, defaulting to ~/Downloads.
func ExportDir(cfg *config.Config) (string, error) {
	if cfg.Export.Dir == "" {
		return export.DefaultDir(), nil
	}
	return ExpandPath(cfg.Export.Dir)
}

func DataDir() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("unable to determine user home directory: %w", err)
		}
		return filepath.Join(home, "."+constants.AppName), nil
	}

	return filepath.Join(configDir, constants.AppName), nil
}

func ExpandPath(path string) (string, error) {
	if strings.HasPrefix(path, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		if path == "~" {
			return home, nil
		}
		if strings.HasPrefix(path, "~/") || strings.HasPrefix(path, "~\\") {
			return filepath.Join(home, path[2:]), nil
		}
	}
	return path, nil
}
