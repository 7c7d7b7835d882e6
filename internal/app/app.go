package app

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"org_diagnostics/internal/catalog"
	"org_diagnostics/internal/config"
	"org_diagnostics/internal/controller"
	"org_diagnostics/internal/service"
	"org_diagnostics/internal/web"
	"org_diagnostics/pkg/logger"
	"org_diagnostics/pkg/monitoring"
	"org_diagnostics/pkg/security"
	"org_diagnostics/pkg/tracing"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"
)

type App struct {
	Config   *config.Config
	Router   *gin.Engine
	Catalogs *catalog.Store
	services *services
	tracer   *sdktrace.TracerProvider
	// stop 结束中间件的后台协程
	stop context.CancelFunc
}

type services struct {
	storage *service.StorageService
	session *service.SessionService
	report  *service.ReportService
}

type controllers struct {
	assessment *controller.AssessmentController
	health     *controller.HealthController
}

func (a *App) initServices(cfg *config.Config) (*services, error) {
	s := &services{}

	storage, err := service.NewStorageService(&cfg.Storage)
	if err != nil {
		return nil, err
	}
	s.storage = storage
	s.session = service.NewSessionService(a.Catalogs, cfg.Session.MaxSessions, cfg.Session.TTL)
	s.report = service.NewReportService(service.NewCollector(), s.session, s.storage)

	return s, nil
}

func (a *App) initControllers(s *services) *controllers {
	return &controllers{
		assessment: controller.NewAssessmentController(a.Catalogs, s.session, s.report, a.Config.Session.SecureCookie),
		health:     controller.NewHealthController(a.Catalogs, s.session),
	}
}

func (a *App) setupMiddlewares(ctx context.Context, router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())
	router.Use(security.RateLimiter(ctx, cfg.RateLimit.MaxRequests, time.Duration(cfg.RateLimit.WindowMinutes)*time.Minute))

	// 分布式追踪中间件
	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

// NewApp 目录加载失败时直接返回 CatalogLoadError，不创建任何会话
func NewApp(cfg *config.Config, catalogs *catalog.Store) (*App, error) {
	app := &App{
		Config:   cfg,
		Catalogs: catalogs,
	}

	services, err := app.initServices(cfg)
	if err != nil {
		return nil, fmt.Errorf("init services: %w", err)
	}
	app.services = services
	controllers := app.initControllers(services)

	// 监控初始化
	monitoring.Init()

	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	if cfg.Server.Mode == gin.DebugMode {
		router.Use(gin.Logger())
	}
	app.Router = router

	tmpl, err := web.Templates()
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	router.SetHTMLTemplate(tmpl)

	bgCtx, stop := context.WithCancel(context.Background())
	app.stop = stop
	app.setupMiddlewares(bgCtx, router, cfg)

	if cfg.Tracing.Enabled {
		tp, err := tracing.InitTracer(cfg.Tracing)
		if err != nil {
			stop()
			return nil, fmt.Errorf("init tracing: %w", err)
		}
		app.tracer = tp
	}

	app.registerRoutes(router, controllers, services)

	return app, nil
}

// Close 停止后台协程，可重复调用
func (a *App) Close() {
	if a.stop != nil {
		a.stop()
	}
}

func (a *App) Run() {
	defer a.Close()

	srv := &http.Server{
		Addr:              ":" + a.Config.Server.Port,
		Handler:           a.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if a.Config.Catalog.Watch {
		go func() {
			if err := a.Catalogs.Watch(ctx, a.Config.Catalog.Debounce); err != nil {
				logger.Log.Error("Catalog watcher stopped", zap.Error(err))
			}
		}()
	}

	// 启动服务器
	go func() {
		logger.Log.Info("Server running", zap.String("port", a.Config.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// 等待中断信号优雅地关闭服务器（设置5秒的超时时间）
	<-ctx.Done()
	logger.Log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Error("Server forced to shutdown", zap.Error(err))
	}

	if a.tracer != nil {
		if err := a.tracer.Shutdown(shutdownCtx); err != nil {
			logger.Log.Error("Failed to shutdown tracer provider", zap.Error(err))
		}
	}

	logger.Log.Info("Server exiting")
}
