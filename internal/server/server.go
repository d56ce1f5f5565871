package server

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"provenance.com/innovationhub/internal/config"
	"provenance.com/innovationhub/internal/middleware"
	"provenance.com/innovationhub/internal/observability/metrics"

	categoryHttp "provenance.com/innovationhub/internal/modules/category/delivery/http"
	categoryRepo "provenance.com/innovationhub/internal/modules/category/repository"
	categoryService "provenance.com/innovationhub/internal/modules/category/service"

	commentHttp "provenance.com/innovationhub/internal/modules/comment/delivery/http"
	commentRepo "provenance.com/innovationhub/internal/modules/comment/repository"
	commentService "provenance.com/innovationhub/internal/modules/comment/service"

	notifHttp "provenance.com/innovationhub/internal/modules/notification/delivery/http"
	notifService "provenance.com/innovationhub/internal/modules/notification/service"

	searchService "provenance.com/innovationhub/internal/modules/search/service"

	statHttp "provenance.com/innovationhub/internal/modules/stat/delivery/http"
	statService "provenance.com/innovationhub/internal/modules/stat/service"

	suggestionHttp "provenance.com/innovationhub/internal/modules/suggestion/delivery/http"
	suggestionRepo "provenance.com/innovationhub/internal/modules/suggestion/repository"
	suggestionService "provenance.com/innovationhub/internal/modules/suggestion/service"

	upvoteHttp "provenance.com/innovationhub/internal/modules/upvote/delivery/http"
	upvoteRepo "provenance.com/innovationhub/internal/modules/upvote/repository"
	upvoteService "provenance.com/innovationhub/internal/modules/upvote/service"

	userHttp "provenance.com/innovationhub/internal/modules/user/delivery/http"
	userRepo "provenance.com/innovationhub/internal/modules/user/repository"
	userService "provenance.com/innovationhub/internal/modules/user/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Server struct {
	engine      *gin.Engine
	httpServer  *http.Server
	db          *gorm.DB
	redisClient *redis.Client

	UserService     userService.UserService
	CategoryService categoryService.CategoryService
}

func NewServer(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) *Server {
	userRepo := userRepo.NewUserRepository(db)
	userSvc := userService.NewUserService(userRepo)
	userHandler := userHttp.NewUserHandler(userSvc)

	categoryRepo := categoryRepo.NewCategoryRepository(db)
	categorySvc := categoryService.NewCategoryService(categoryRepo)
	categoryHandler := categoryHttp.NewCategoryHandler(categorySvc)

	suggestionRepo := suggestionRepo.NewSuggestionRepository(db)
	upvoteRepository := upvoteRepo.NewUpvoteRepository(db)
	countCache := upvoteRepo.NewCountCache(redisClient, cfg.UpvoteCacheTTL)
	commentRepository := commentRepo.NewCommentRepository(db)

	// Notification Module
	emailSvc := notifService.NewEmailService(notifService.EmailConfig{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		Username: cfg.SMTPUsername,
		Password: cfg.SMTPPassword,
		From:     cfg.SenderEmail,
		FromName: cfg.SenderName,
	})
	notificationSvc := notifService.NewNotificationService(emailSvc, cfg.AdminNotificationEmail, redisClient)
	notificationHandler := notifHttp.NewNotificationHandler(notificationSvc, cfg.AllowedOrigins)

	meiliSvc := searchService.NewSearchService(cfg.MeiliSearchHost, cfg.MeiliMasterKey)

	statSvc := statService.NewStatService(suggestionRepo, upvoteRepository, countCache)
	statHandler := statHttp.NewStatHandler(statSvc)

	upvoteSvc := upvoteService.NewUpvoteService(upvoteRepository, suggestionRepo, countCache, notificationSvc)
	upvoteHandler := upvoteHttp.NewUpvoteHandler(upvoteSvc)

	commentSvc := commentService.NewCommentService(commentRepository, suggestionRepo, userRepo)
	commentHandler := commentHttp.NewCommentHandler(commentSvc)

	suggestionSvc := suggestionService.NewSuggestionService(
		suggestionRepo, categoryRepo, userRepo, upvoteRepository, commentRepository, countCache,
		statSvc, meiliSvc, notificationSvc, redisClient,
		suggestionService.Config{CreateCooldown: cfg.RateLimitSuggestion, MaxPageSize: cfg.MaxPageSize},
	)
	suggestionHandler := suggestionHttp.NewSuggestionHandler(suggestionSvc)

	router := gin.New()

	setupCORS(router, cfg.AllowedOrigins)

	router.Use(gin.Recovery())
	router.Use(metrics.GinMiddleware())
	router.Use(gin.LoggerWithConfig(gin.LoggerConfig{
		SkipPaths: []string{"/health", "/metrics"},
	}))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	authMiddleware := middleware.NewAuthMiddleware(userSvc, cfg.JWTSecret)

	api := router.Group("/api")

	// Protected routes (apply auth middleware explicitly)
	protected := api.Group("")
	protected.Use(authMiddleware.RequireAuth())
	{
		protected.GET("/auth/me", userHandler.Me)

		// Admin routes
		adminGroup := protected.Group("/admin")
		adminGroup.Use(authMiddleware.RequireAdmin())
		{
			adminGroup.POST("/categories/seed", categoryHandler.SeedCategories)
		}
		admin := authMiddleware.RequireAdmin()

		// Category routes
		protected.GET("/categories", categoryHandler.GetAllCategories)
		protected.POST("/categories", admin, categoryHandler.CreateCategory)
		protected.GET("/categories/:id", categoryHandler.GetCategory)
		protected.PUT("/categories/:id", admin, categoryHandler.UpdateCategory)
		protected.DELETE("/categories/:id", admin, categoryHandler.DeleteCategory)

		// Suggestion routes
		protected.GET("/suggestions", suggestionHandler.GetAllSuggestions)
		protected.POST("/suggestions", suggestionHandler.CreateSuggestion)
		protected.GET("/suggestions/search", suggestionHandler.SearchSuggestions)
		protected.GET("/suggestions/stats", statHandler.GetStatusCounts)
		protected.GET("/suggestions/check-changes", statHandler.CheckChanges)
		protected.GET("/suggestions/ws", notificationHandler.StreamChanges)
		protected.GET("/suggestions/:id", suggestionHandler.GetSuggestion)
		protected.PUT("/suggestions/:id", admin, suggestionHandler.UpdateSuggestion)
		protected.DELETE("/suggestions/:id", admin, suggestionHandler.DeleteSuggestion)

		// Upvote routes
		protected.GET("/suggestions/:id/upvote", upvoteHandler.GetStatus)
		protected.POST("/suggestions/:id/upvote", upvoteHandler.Upvote)
		protected.DELETE("/suggestions/:id/upvote", upvoteHandler.RemoveUpvote)

		// Comment routes
		protected.GET("/suggestions/:id/comments", commentHandler.ListComments)
		protected.POST("/suggestions/:id/comments", admin, commentHandler.CreateComment)
		protected.DELETE("/suggestions/:id/comments", commentHandler.DeleteComment)
	}

	return &Server{
		engine:          router,
		db:              db,
		redisClient:     redisClient,
		UserService:     userSvc,
		CategoryService: categorySvc,
	}
}

func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves until ctx is cancelled, then drains in-flight requests.
func (s *Server) Run(ctx context.Context, addr string) error {
	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return s.httpServer.Shutdown(shutdownCtx)
}

func setupCORS(router *gin.Engine, allowedOrigins string) {
	var origins []string
	for _, origin := range strings.Split(allowedOrigins, ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			origins = append(origins, origin)
		}
	}
	if len(origins) == 0 {
		origins = []string{"http://localhost:3000"}
	}

	router.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Retry-After"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
}
