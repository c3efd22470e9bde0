package internal

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"qa-forum/pkg/cache"
	"qa-forum/pkg/config"
	"qa-forum/pkg/database"
	"qa-forum/pkg/flash"
	"qa-forum/pkg/jwt"
	"qa-forum/pkg/logger"
	"qa-forum/pkg/middleware"
	forumHTTP "qa-forum/services/forum/internal/controller/http"
	"qa-forum/services/forum/internal/repo/persistent"
	"qa-forum/services/forum/internal/usecase"
	"qa-forum/services/forum/web"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	_ "qa-forum/services/forum/docs" // Swagger docs
)

type App struct {
	cfg         *config.Config
	log         *logger.Logger
	db          *gorm.DB
	redisClient *redis.Client
	denylist    jwt.Denylist
	jwtService  *jwt.Service
	router      *gin.Engine
	httpServer  *http.Server
}

func NewApp(cfg *config.Config) (*App, error) {
	log := logger.New()

	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}

	db, err := database.NewDB(cfg)
	if err != nil {
		log.Error("Failed to connect to database: %v", err)
		return nil, err
	}

	if err := database.Migrate(context.Background(), db, cfg.DBDriver, log); err != nil {
		log.Error("Failed to apply migrations: %v", err)
		_ = database.Close(db)
		return nil, err
	}

	var redisClient *redis.Client
	if cfg.RedisEnabled {
		redisClient, err = cache.NewRedisClient(cfg)
		if err != nil {
			// Redis is optional: without it logout does not revoke tokens and nothing is rate limited.
			log.Warn("Failed to connect to redis: %v (continuing without it)", err)
			redisClient = nil
		}
	}

	return New(cfg, log, db, redisClient)
}

// New assembles the application from already opened connections.
// redisClient may be nil.
func New(cfg *config.Config, log *logger.Logger, db *gorm.DB, redisClient *redis.Client) (*App, error) {
	a := &App{
		cfg:         cfg,
		log:         log,
		db:          db,
		redisClient: redisClient,
		jwtService:  jwt.NewService(cfg.JWTSecret, cfg.SessionTTL),
	}
	if redisClient != nil {
		a.denylist = cache.NewTokenDenylist(redisClient)
	}

	router, err := a.setupRouter()
	if err != nil {
		return nil, err
	}
	a.router = router

	return a, nil
}

// Handler exposes the configured router.
func (a *App) Handler() http.Handler {
	return a.router
}

func (a *App) setupRouter() (*gin.Engine, error) {
	// Initialize repositories
	userRepo := persistent.NewUserRepository(a.db)
	questionRepo := persistent.NewQuestionRepository(a.db)
	answerRepo := persistent.NewAnswerRepository(a.db)

	// Initialize use cases
	authUseCase := usecase.NewAuthUseCase(userRepo, a.jwtService, a.denylist, a.log)
	forumUseCase := usecase.NewForumUseCase(questionRepo, answerRepo, a.log)

	// Initialize HTTP handlers
	session := forumHTTP.SessionCookie{
		Name:   a.cfg.SessionCookieName,
		TTL:    a.jwtService.TTL(),
		Secure: a.cfg.CookieSecure,
	}
	authHandler := forumHTTP.NewAuthHandler(authUseCase, session, a.log)
	forumHandler := forumHTTP.NewForumHandler(forumUseCase, a.log)
	apiHandler := forumHTTP.NewAPIHandler(authUseCase, forumUseCase)

	templates, err := web.Templates()
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	flash.SetSecure(a.cfg.CookieSecure)

	r := gin.New()
	r.Use(middleware.RequestID(), gin.Logger(), gin.Recovery())
	r.SetHTMLTemplate(templates)

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Swagger documentation
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	rateLimit := middleware.RateLimitMiddleware(a.redisClient, a.cfg.RateLimitPerMinute, time.Minute)
	sessions := middleware.SessionMiddleware(a.jwtService, a.denylist, a.cfg.SessionCookieName)

	pages := r.Group("/")
	pages.Use(sessions)
	{
		pages.GET("/register/", authHandler.RegisterPage)
		pages.POST("/register/", rateLimit, authHandler.Register)
		pages.GET("/login/", authHandler.LoginPage)
		pages.POST("/login/", rateLimit, authHandler.Login)
		pages.GET("/logout/", authHandler.Logout)
		pages.POST("/logout/", authHandler.Logout)

		// Pages for signed-in users
		members := pages.Group("/")
		members.Use(middleware.RequireLogin(forumHTTP.LoginPath))
		{
			members.GET("/", forumHandler.Home)
			members.GET("/ask/", forumHandler.AskPage)
			members.POST("/ask/", rateLimit, forumHandler.Ask)
			members.GET("/question/:id/", forumHandler.QuestionDetail)
			members.POST("/question/:id/", rateLimit, forumHandler.SubmitAnswer)
			members.POST("/like/:answer_id/", rateLimit, forumHandler.LikeAnswer)
		}
	}

	api := r.Group("/api/v1")
	api.Use(cors.New(cors.Config{
		AllowOrigins:     a.cfg.CORSAllowOrigins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "Accept"},
		ExposeHeaders:    []string{"Content-Length", middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	{
		api.POST("/auth/register", rateLimit, apiHandler.Register)
		api.POST("/auth/login", rateLimit, apiHandler.Login)

		// Protected routes
		protected := api.Group("")
		protected.Use(middleware.AuthMiddleware(a.jwtService, a.denylist))
		{
			protected.GET("/questions", apiHandler.ListQuestions)
			protected.POST("/questions", rateLimit, apiHandler.AskQuestion)
			protected.GET("/questions/:id", apiHandler.GetQuestion)
			protected.POST("/questions/:id/answers", rateLimit, apiHandler.SubmitAnswer)
			protected.POST("/answers/:answer_id/like", rateLimit, apiHandler.ToggleLike)
		}
	}

	r.NoRoute(sessions, forumHTTP.NotFound)

	return r, nil
}

func (a *App) Run() error {
	// Create HTTP server
	a.httpServer = &http.Server{
		Addr:              ":" + a.cfg.ServerPort,
		Handler:           a.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		a.log.Info("Forum service starting on port %s (db=%s)", a.cfg.ServerPort, a.cfg.DBDriver)
		if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			a.log.Error("Failed to start server: %v", err)
			panic(err)
		}
	}()

	return nil
}

func (a *App) Wait() {
	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	a.log.Info("Shutting down forum service...")
}

func (a *App) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var shutdownErr error
	if a.httpServer != nil {
		if err := a.httpServer.Shutdown(ctx); err != nil {
			a.log.Error("Server forced to shutdown: %v", err)
			shutdownErr = err
		}
	}

	if err := database.Close(a.db); err != nil {
		a.log.Error("Error closing database: %v", err)
	}

	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			a.log.Error("Error closing Redis: %v", err)
		}
	}

	a.log.Info("Forum service exited")
	return shutdownErr
}
