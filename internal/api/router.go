// Package api wires the HTTP surface: routes, middleware, and the central
// error handler.
package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/campusops/api/docs"
	"github.com/campusops/api/internal/api/handler"
	"github.com/campusops/api/internal/api/middleware"
	"github.com/campusops/api/internal/core/ports"
	"github.com/campusops/api/internal/core/service"
	mongodb "github.com/campusops/api/internal/infrastructure/db/mongo"
	redisdb "github.com/campusops/api/internal/infrastructure/db/redis"
	"github.com/campusops/api/internal/infrastructure/docx"
)

// Deps carries everything the router needs to assemble the handler graph.
// TextGen and Vision may be nil; the AI endpoints then answer 503 while the
// rest of the API keeps working.
type Deps struct {
	DB        *mongo.Database
	Redis     *redis.Client
	JWTSecret string
	TextGen   ports.TextGenerator
	Vision    ports.VisionAnalyzer
	Archiver  service.Archiver
	Log       zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("campusops"))

	// --- Dependencies ---
	clubRepo := mongodb.NewClubRepository(d.DB)
	entityRepo := mongodb.NewEntityRepository(d.DB)
	mouRepo := mongodb.NewMOURepository(d.DB)
	suggestionRepo := mongodb.NewSuggestionRepository(d.DB)
	archiveRepo := mongodb.NewArchiveRepository(d.DB)
	cache := redisdb.NewResultCache(d.Redis)
	renderer := docx.NewRenderer()

	authService := service.NewAuthService(clubRepo, d.JWTSecret, 24*time.Hour)
	mgmtService := service.NewManagementService(entityRepo, d.Log)
	reportService := service.NewReportService(d.TextGen, renderer, archiveRepo, d.Archiver, d.Log)
	feedbackService := service.NewFeedbackService(d.TextGen, cache, d.Archiver, d.Log)
	budgetService := service.NewBudgetService(d.TextGen, suggestionRepo, cache, d.Log)
	mouService := service.NewMOUService(d.TextGen, mouRepo, renderer, d.Log)
	imageService := service.NewImageService(d.Vision, d.Log)

	authHandler := handler.NewAuthHandler(authService)
	mgmtHandler := handler.NewManagementHandler(mgmtService)
	reportHandler := handler.NewReportHandler(reportService)
	feedbackHandler := handler.NewFeedbackHandler(feedbackService)
	budgetHandler := handler.NewBudgetHandler(budgetService)
	mouHandler := handler.NewMOUHandler(mouService)
	imageHandler := handler.NewImageHandler(imageService)
	healthHandler := handler.NewHealthHandler(d.DB, d.Redis, d.TextGen != nil)

	authMiddleware := middleware.Auth(d.JWTSecret)

	// --- Public routes ---
	e.POST("/api/auth/login", authHandler.Login)
	e.POST("/api/auth/signup", authHandler.Signup)
	e.GET("/api/auth/clubs", authHandler.ListClubs)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// --- Data manager ---
	management := e.Group("/api/management", authMiddleware)
	management.GET("/stats", mgmtHandler.Stats)
	management.GET("/:tab", mgmtHandler.List)
	management.POST("/:tab", mgmtHandler.Create)
	management.PUT("/:tab/:id", mgmtHandler.Update)
	management.DELETE("/:tab/:id", mgmtHandler.Delete)

	// --- AI features ---
	events := e.Group("/api/events", authMiddleware)
	events.POST("/generate", reportHandler.Generate)
	events.GET("/list", reportHandler.History)

	feedback := e.Group("/api/feedback", authMiddleware)
	feedback.POST("/analyze", feedbackHandler.Analyze)

	budget := e.Group("/api/budget", authMiddleware)
	budget.POST("/suggest", budgetHandler.Suggest)
	budget.GET("/history", budgetHandler.History)

	mou := e.Group("/api/mou", authMiddleware)
	mou.POST("/generate", mouHandler.Generate)
	mou.GET("/history", mouHandler.History)
	mou.GET("/download/:id", mouHandler.Download)
	mou.GET("/:id", mouHandler.Get)

	image := e.Group("/api/image", authMiddleware)
	image.POST("/caption", imageHandler.Caption)
	image.POST("/ocr", imageHandler.ExtractText)

	return e
}
