package cmd

import (
	"os"

	"github.com/edumanage/edudash/internal/backend"
	"github.com/edumanage/edudash/internal/config"
	"github.com/edumanage/edudash/internal/log"
	"github.com/edumanage/edudash/internal/store"
)

// app bundles the wired boundaries every command needs.
type app struct {
	cfg     *config.Config
	logger  *log.Logger
	client  *backend.Client
	catalog *store.Backend
}

// newApp loads configuration and wires the backend client. With logToFile
// set, log output goes to the configured log file instead of stderr; the
// dashboard uses this because the TUI owns the terminal.
func newApp(logToFile bool) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger := newLogger(cfg, logToFile)
	log.SetDefaultLogger(logger)

	client := backend.NewClient(cfg.BackendURL, cfg.AnonKey).
		WithTimeout(cfg.HTTPTimeout()).
		WithLogger(logger)

	return &app{
		cfg:     cfg,
		logger:  logger,
		client:  client,
		catalog: store.NewBackend(client),
	}, nil
}

func newLogger(cfg *config.Config, logToFile bool) *log.Logger {
	logCfg := log.DefaultConfig()
	logCfg.Level = log.ParseLevel(cfg.Logging.Level)
	logCfg.Format = log.ParseFormat(cfg.Logging.Format)

	if logToFile {
		logCfg.Output = log.OutputDiscard()
		if err := os.MkdirAll(config.Dir(), 0o700); err == nil {
			if f, err := os.OpenFile(cfg.LogFile(), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600); err == nil {
				logCfg.Output = log.NewOutput(f)
			}
		}
	}

	return log.New(logCfg)
}
