package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/Depado/ginprom"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"gorm.io/gorm"

	"github.com/taskmanager/app/api/routes"
	"github.com/taskmanager/pkg/config"
	"github.com/taskmanager/pkg/domains/auth"
	"github.com/taskmanager/pkg/domains/task"
	"github.com/taskmanager/pkg/mail"
	"github.com/taskmanager/pkg/metrics"
	"github.com/taskmanager/pkg/middleware"
	"github.com/taskmanager/pkg/token"
	"github.com/taskmanager/pkg/utils"

	_ "github.com/taskmanager/docs"
)

const shutdownTimeout = 10 * time.Second

// NewRouter wires the middleware stack, the account and task routes and the ambient endpoints.
func NewRouter(cfg *config.Config, db *gorm.DB, mailer mail.Sender) *gin.Engine {
	utils.RegisterBindingValidations()

	app := gin.New()
	if err := app.SetTrustedProxies(cfg.Allows.TrustedProxies); err != nil {
		slog.Warn("ignoring trusted proxies", "error", err)
		_ = app.SetTrustedProxies(nil)
	}
	app.Use(gin.LoggerWithFormatter(func(log gin.LogFormatterParams) string {
		return fmt.Sprintf("[%s] - %s \"%s %s %s %d %s\"\n",
			log.TimeStamp.Format("2006-01-02 15:04:05"),
			log.ClientIP,
			log.Method,
			log.Path,
			log.Request.Proto,
			log.StatusCode,
			log.Latency,
		)
	}))
	app.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	app.Use(gin.Recovery())
	app.Use(otelgin.Middleware(cfg.App.Name))
	app.Use(middleware.RequestID())
	app.Use(middleware.ClaimIp())
	app.Use(middleware.SecurityHeaders())
	app.Use(cors.New(cors.Config{
		AllowMethods:     cfg.Allows.Methods,
		AllowHeaders:     cfg.Allows.Headers,
		AllowOrigins:     cfg.Allows.Origins,
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))
	app.Use(middleware.BodyLimit(cfg.Limits.MaxBodySize))
	app.Use(middleware.NewRateLimiter(cfg.Limits.RequestNumber, cfg.Limits.RequestWindow).Limit())

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics.Register(registry)
	p := ginprom.New(
		ginprom.Engine(app),
		ginprom.Registry(registry),
		ginprom.Subsystem("gin"),
		ginprom.Path("/metrics"),
		ginprom.Ignore("/docs/*any"),
	)
	app.Use(p.Instrument())

	app.GET("/health", health(db))

	tokens := token.NewService([]byte(cfg.Auth.Secret), cfg.Auth.TokenTTL)
	checkAuth := middleware.CheckAuth(tokens)
	api := app.Group("/api")

	// Auth Routes
	auth_repo := auth.NewRepo(db)
	codes := auth.NewCodeService(auth_repo, mailer, cfg.Auth.CodeTTL)
	auth_service := auth.NewService(auth_repo, auth.NewBcryptHasher(cfg.Auth.BcryptCost), tokens, codes)
	routes.AuthRoutes(api, auth_service, checkAuth)

	// Task Routes
	task_repo := task.NewRepo(db)
	task_service := task.NewService(task_repo)
	routes.TaskRoutes(api, task_service, checkAuth)

	return app
}

func health(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		sqlDB, err := db.DB()
		if err == nil {
			err = sqlDB.PingContext(c.Request.Context())
		}
		if err != nil {
			slog.WarnContext(c.Request.Context(), "health check failed", "error", err)
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}

// Launch serves handler until ctx is cancelled, then drains in-flight requests.
func Launch(ctx context.Context, appc config.App, handler http.Handler) error {
	srv := &http.Server{
		Addr:              net.JoinHostPort(appc.Host, appc.Port),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server is running", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	slog.Info("shutting down http server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http shutdown: %w", err)
	}
	return <-errCh
}
