package cmd

import (
	"context"
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/samber/oops"

	"github.com/taskmanager/pkg/config"
	"github.com/taskmanager/pkg/database"
	"github.com/taskmanager/pkg/errutil"
	"github.com/taskmanager/pkg/logging"
	"github.com/taskmanager/pkg/mail"
	"github.com/taskmanager/pkg/server"
	"github.com/taskmanager/pkg/utils"
)

// loadConfig reads .env, the config file and the environment, and validates the result.
// A non-empty build version replaces app.version.
func loadConfig(path, version string) (*config.Config, error) {
	utils.LoadEnv()
	cfg, err := config.InitConfig(path)
	if err != nil {
		return nil, oops.Code("CONFIG_INVALID").With("path", path).Wrap(err)
	}
	if version != "" {
		cfg.App.Version = version
	}
	if err := cfg.Validate(); err != nil {
		return nil, oops.Code("CONFIG_INVALID").Wrap(err)
	}
	return cfg, nil
}

// StartApp runs the HTTP server until ctx is cancelled.
func StartApp(ctx context.Context, configPath, version string) error {
	cfg, err := loadConfig(configPath, version)
	if err != nil {
		return err
	}
	logger := logging.SetDefault(cfg.App.Name, cfg.App.Version, cfg.Log.Format, cfg.Log.Level)
	gin.SetMode(cfg.App.Mode)

	if err := database.InitDB(cfg.Database); err != nil {
		return oops.Code("DB_CONNECT_FAILED").With("operation", "connect to database").Wrap(err)
	}
	defer database.Close()

	mailer, err := mail.New(cfg.Mail)
	if err != nil {
		return oops.Code("CONFIG_INVALID").With("operation", "configure mail").Wrap(err)
	}
	defer func() {
		if err := mailer.Close(); err != nil {
			errutil.LogError(ctx, logger, "failed to close mailer", err)
		}
	}()

	router := server.NewRouter(cfg, database.DBClient(), mailer)
	slog.Info("starting http server", "mail_driver", cfg.Mail.Driver, "db_driver", cfg.Database.Driver)
	return server.Launch(ctx, cfg.App, router)
}
