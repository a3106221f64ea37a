package server

import (
	"log"
	"os"
	"strings"
	"time"

	"github.com/campusgo/admin-backend/internal/handler"
	"github.com/campusgo/admin-backend/internal/middleware"
	"github.com/campusgo/admin-backend/internal/repository"
	"github.com/campusgo/admin-backend/internal/service"
	"github.com/campusgo/admin-backend/pkg/storage"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/meilisearch/meilisearch-go"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Server struct {
	engine      *gin.Engine
	db          *gorm.DB
	redisClient *redis.Client
	configSvc   service.ConfigService
}

func NewServer(db *gorm.DB, redisClient *redis.Client) *Server {
	userRepo := repository.NewUserRepository(db)
	postRepo := repository.NewPostRepository(db)
	reportRepo := repository.NewReportRepository(db)
	moderationRepo := repository.NewModerationRepository(db)
	announcementRepo := repository.NewAnnouncementRepository(db)
	announcerRepo := repository.NewAnnouncerRepository(db)
	spawnRepo := repository.NewARSpawnRepository(db)
	configRepo := repository.NewConfigRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)

	imageStorage, err := storage.NewCloudinaryStorage()
	if err != nil {
		log.Fatalf("failed to initialize cloudinary storage: %v", err)
	}

	// Initialize Meilisearch
	meiliHost := os.Getenv("MEILISEARCH_HOST")
	if meiliHost == "" {
		meiliHost = "http://localhost:7700"
	}
	if !strings.HasPrefix(meiliHost, "http") {
		meiliHost = "http://" + meiliHost + ":7700"
	}

	meiliClient := meilisearch.New(meiliHost, meilisearch.WithAPIKey(os.Getenv("MEILI_MASTER_KEY")))
	searchSvc := service.NewSearchService(meiliClient)

	configSvc := service.NewConfigService(configRepo, redisClient)
	notificationSvc := service.NewNotificationService(notificationRepo, postRepo, announcementRepo, configSvc, redisClient)
	moderationSvc := service.NewModerationService(moderationRepo, userRepo, postRepo, reportRepo, configSvc, notificationSvc)

	authSvc := service.NewAuthService(userRepo)
	authHandler := handler.NewAuthHandler(authSvc)

	userSvc := service.NewUserService(userRepo)
	userHandler := handler.NewUserHandler(userSvc, moderationSvc, redisClient)

	postSvc := service.NewPostService(postRepo, configSvc, searchSvc, notificationSvc)
	postHandler := handler.NewPostHandler(postSvc, moderationSvc)

	reportSvc := service.NewReportService(reportRepo, postRepo, configSvc, notificationSvc)
	reportHandler := handler.NewReportHandler(reportSvc, moderationSvc)

	announcementSvc := service.NewAnnouncementService(announcementRepo, announcerRepo, configSvc, imageStorage, searchSvc, notificationSvc)
	announcementHandler := handler.NewAnnouncementHandler(announcementSvc)

	announcerSvc := service.NewAnnouncerService(announcerRepo, imageStorage)
	announcerHandler := handler.NewAnnouncerHandler(announcerSvc)

	spawnSvc := service.NewARSpawnService(spawnRepo)
	spawnHandler := handler.NewARSpawnHandler(spawnSvc)

	configHandler := handler.NewConfigHandler(configSvc)
	notificationHandler := handler.NewNotificationHandler(notificationSvc, redisClient)

	router := gin.New()

	setupCORS(router)

	router.Use(gin.Recovery())
	router.Use(gin.Logger())

	authMiddleware := middleware.NewAuthMiddleware(userRepo)

	api := router.Group("/api")

	// Public routes (no auth required)
	auth := api.Group("/auth")
	{
		auth.POST("/login", authHandler.Login)
	}

	// Protected routes: every management surface requires an admin account.
	protected := api.Group("")
	protected.Use(authMiddleware.RequireAuth())
	{
		adminGroup := protected.Group("")
		adminGroup.Use(authMiddleware.RequireAdmin())
		{
			// User management
			adminGroup.GET("/users", userHandler.ListUsers)
			adminGroup.GET("/users/:id", userHandler.GetUser)
			adminGroup.PUT("/users/:id", userHandler.UpdateUser)
			adminGroup.POST("/users/:id/warn", userHandler.WarnUser)
			adminGroup.PUT("/users/:id/ban", userHandler.BanUser)
			adminGroup.PUT("/users/:id/suspend", userHandler.SuspendUser)
			adminGroup.GET("/moderation/actions", userHandler.RecentModerationActions)

			// Post moderation
			adminGroup.GET("/posts", postHandler.ListPosts)
			adminGroup.GET("/posts/:id", postHandler.GetPost)
			adminGroup.DELETE("/posts/:id", postHandler.RemovePost)
			adminGroup.POST("/posts/:id/warn", postHandler.WarnPostAuthor)

			// Reports
			adminGroup.GET("/reports", reportHandler.ListReports)
			adminGroup.GET("/reports/:id", reportHandler.GetReport)
			adminGroup.PUT("/reports/:id/resolve", reportHandler.ResolveReport)
			adminGroup.PUT("/reports/:id/dismiss", reportHandler.DismissReport)
			adminGroup.POST("/reports/:id/warn", reportHandler.WarnFromReport)

			// Announcements
			adminGroup.POST("/announcements", announcementHandler.CreateAnnouncement)
			adminGroup.GET("/announcements", announcementHandler.ListAnnouncements)
			adminGroup.GET("/announcements/upcoming-urgent", announcementHandler.UpcomingUrgent)
			adminGroup.GET("/announcements/:id", announcementHandler.GetAnnouncement)
			adminGroup.PUT("/announcements/:id", announcementHandler.UpdateAnnouncement)
			adminGroup.DELETE("/announcements/:id", announcementHandler.DeleteAnnouncement)

			// Announcers
			adminGroup.POST("/announcers", announcerHandler.CreateAnnouncer)
			adminGroup.GET("/announcers", announcerHandler.ListAnnouncers)
			adminGroup.GET("/announcers/:id", announcerHandler.GetAnnouncer)
			adminGroup.PUT("/announcers/:id", announcerHandler.UpdateAnnouncer)
			adminGroup.PUT("/announcers/:id/activate", announcerHandler.ActivateAnnouncer)
			adminGroup.PUT("/announcers/:id/deactivate", announcerHandler.DeactivateAnnouncer)
			adminGroup.GET("/affiliations", announcerHandler.ListAffiliations)

			// AR spawn points
			adminGroup.POST("/spawns", spawnHandler.CreateSpawn)
			adminGroup.GET("/spawns", spawnHandler.ListSpawns)
			adminGroup.GET("/spawns/:id", spawnHandler.GetSpawn)
			adminGroup.PUT("/spawns/:id", spawnHandler.UpdateSpawn)
			adminGroup.PUT("/spawns/:id/deactivate", spawnHandler.DeactivateSpawn)

			// Configuration
			adminGroup.GET("/config", configHandler.GetConfig)
			adminGroup.PUT("/config", configHandler.UpdateConfig)

			// Notification bell
			adminGroup.GET("/notifications", notificationHandler.GetNotifications)
			adminGroup.GET("/notifications/unread-count", notificationHandler.UnreadCount)
			adminGroup.PUT("/notifications/:id/read", notificationHandler.MarkAsRead)
			adminGroup.PUT("/notifications/read-all", notificationHandler.MarkAllAsRead)
			adminGroup.GET("/notifications/bell", notificationHandler.BellCount)
			adminGroup.GET("/notifications/bell/ws", notificationHandler.HandleBellStream)
		}
	}

	return &Server{
		engine:      router,
		db:          db,
		redisClient: redisClient,
		configSvc:   configSvc,
	}
}

// ConfigService exposes the wired config service so main can start the
// cross-instance cache watcher.
func (s *Server) ConfigService() service.ConfigService {
	return s.configSvc
}

func (s *Server) Run(addr string) error {
	return s.engine.Run(addr)
}

func setupCORS(router *gin.Engine) {
	allowedOrigins := os.Getenv("ALLOWED_ORIGINS")
	var origins []string
	if allowedOrigins != "" {
		origins = strings.Split(allowedOrigins, ",")
	} else {
		origins = []string{"http://localhost:3000"}
	}

	router.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
}
