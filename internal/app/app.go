package app

import (
	"context"
	"elearning_backend/internal/config"
	"elearning_backend/internal/controller"
	"elearning_backend/internal/middleware"
	"elearning_backend/internal/repository"
	"elearning_backend/internal/service"
	"elearning_backend/pkg/configwatcher"
	"elearning_backend/pkg/discord"
	"elearning_backend/pkg/logger"
	"elearning_backend/pkg/monitoring"
	"elearning_backend/pkg/security"
	"elearning_backend/pkg/storage"
	"elearning_backend/pkg/tracing"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-co-op/gocron"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"
)

type App struct {
	Config         *config.Config
	Router         *gin.Engine
	services       *services
	scheduler      *gocron.Scheduler
	tracerProvider *sdktrace.TracerProvider
}

type repositories struct {
	records *repository.RecordRepository
	quizzes *repository.QuizRepository
	titles  *repository.HTMLTitleLookup
}

type services struct {
	user         *service.UserService
	quiz         *service.QuizService
	notification *service.NotificationService
	learning     *service.LearningService
	backup       *service.BackupService
}

type controllers struct {
	user         *controller.UserController
	quiz         *controller.QuizController
	notification *controller.NotificationController
	learning     *controller.LearningController
	health       *controller.HealthController
}

func (a *App) initRepositories(cfg *config.Config, provider storage.Provider) *repositories {
	titles := repository.NewHTMLTitleLookup(cfg.Content.LearningDir)
	return &repositories{
		records: repository.NewRecordRepository(provider, cfg.Records.Object, cfg.Records.BaselineFields),
		quizzes: repository.NewQuizRepository(cfg.Content.QuizDir, titles),
		titles:  titles,
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, provider storage.Provider) *services {
	s := &services{}

	s.user = service.NewUserService(repos.records, cfg.Records.NamePrefix)
	s.quiz = service.NewQuizService(repos.quizzes, repos.records, cfg.Quiz.PassThreshold)
	s.learning = service.NewLearningService(cfg.Content.LearningDir, repos.titles, repos.quizzes)
	s.backup = service.NewBackupService(repos.records, provider, cfg.Records.Object, cfg.Backup.Prefix)

	// 未配置 Bot Token 时通知网关关闭，接口返回 success=false
	var messenger service.Messenger
	var granter service.CapabilityGranter
	if cfg.Discord.BotToken != "" {
		client := discord.NewClient(cfg.Discord.APIBaseURL, cfg.Discord.BotToken, cfg.Discord.Timeout)
		messenger = client
		granter = discord.NewRoleGranter(client)
	} else {
		logger.Log.Warn("Discord bot token is not set, pass notifications are disabled")
	}
	s.notification = service.NewNotificationService(messenger, granter, repos.records, notificationSettings(cfg))

	return s
}

func (a *App) initControllers(s *services, repos *repositories) *controllers {
	return &controllers{
		user:         controller.NewUserController(s.user),
		quiz:         controller.NewQuizController(s.quiz),
		notification: controller.NewNotificationController(s.notification),
		learning:     controller.NewLearningController(s.learning),
		health:       controller.NewHealthController(repos.records),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger())
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())
	router.Use(security.RateLimiter(cfg.RateLimit.MaxRequests, time.Duration(cfg.RateLimit.WindowMinutes)*time.Minute))

	// 分布式追踪中间件
	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

// startBackgroundTasks 按配置每日备份记录文件
func (a *App) startBackgroundTasks(ctx context.Context, s *services) error {
	if !a.Config.Backup.Enabled {
		return nil
	}

	scheduler := gocron.NewScheduler(time.UTC)
	_, err := scheduler.Every(1).Day().At(a.Config.Backup.At).Do(func() {
		if _, err := s.backup.Run(ctx); err != nil {
			logger.Log.Error("Scheduled backup failed", zap.Error(err))
		}
	})
	if err != nil {
		return err
	}

	scheduler.StartAsync()
	a.scheduler = scheduler
	logger.Log.Info("Backup job scheduled", zap.String("at", a.Config.Backup.At))
	return nil
}

func notificationSettings(cfg *config.Config) service.NotificationSettings {
	return service.NotificationSettings{
		DefaultGuildID: cfg.Discord.GuildID,
		RoleName:       cfg.Discord.RoleName,
		PassMessage:    cfg.Discord.PassMessage,
	}
}

// applyConfig 热更新：只替换无需重建组件的配置
func (a *App) applyConfig(newCfg *config.Config) {
	a.services.notification.UpdateSettings(notificationSettings(newCfg))
}

func NewApp(cfg *config.Config) (*App, error) {
	provider, err := storage.NewProvider(&cfg.Storage)
	if err != nil {
		return nil, err
	}

	app := &App{Config: cfg}

	repos := app.initRepositories(cfg, provider)
	if err := repos.records.Init(context.Background()); err != nil {
		return nil, err
	}

	svc := app.initServices(repos, cfg, provider)
	app.services = svc
	ctrls := app.initControllers(svc, repos)

	// 监控初始化
	monitoring.Init()

	if cfg.Tracing.Enabled {
		tp, err := tracing.InitTracer(tracing.ServiceName, cfg.Tracing.CollectorEndpoint)
		if err != nil {
			return nil, err
		}
		app.tracerProvider = tp
	}

	if cfg.Server.Mode == gin.DebugMode || cfg.Server.Mode == gin.ReleaseMode || cfg.Server.Mode == gin.TestMode {
		gin.SetMode(cfg.Server.Mode)
	}
	router := gin.New()
	app.Router = router

	app.setupMiddlewares(router, cfg)
	app.registerRoutes(router, ctrls, cfg)

	return app, nil
}

// Run 启动 HTTP 服务，收到中断信号后优雅退出
func (a *App) Run(configDir string) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := a.startBackgroundTasks(ctx, a.services); err != nil {
		logger.Log.Fatal("Failed to schedule backups", zap.Error(err))
	}

	configFile := filepath.Join(configDir, "config.yaml")
	if _, err := os.Stat(configFile); err == nil {
		go configwatcher.WatchConfig(ctx, configFile, func(cfg *config.Config) {
			a.applyConfig(cfg)
		})
	}

	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	go func() {
		logger.Log.Info("Server running", zap.String("port", a.Config.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Log.Fatal("listen failed", zap.Error(err))
		}
	}()

	// 等待中断信号优雅地关闭服务器（设置5秒的超时时间）
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	if a.scheduler != nil {
		a.scheduler.Stop()
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Error("Server forced to shutdown", zap.Error(err))
	}

	if a.tracerProvider != nil {
		if err := a.tracerProvider.Shutdown(shutdownCtx); err != nil {
			logger.Log.Error("Failed to shutdown tracer provider", zap.Error(err))
		}
	}

	logger.Log.Info("Server exiting")
}
