package server

import (
	"strings"
	"time"

	"ice.edu/helpinghand/internal/bootstrap"
	"ice.edu/helpinghand/internal/config"
	"ice.edu/helpinghand/internal/middleware"
	"ice.edu/helpinghand/pkg/logger"
	"ice.edu/helpinghand/pkg/storage"

	attachmentHttp "ice.edu/helpinghand/internal/modules/attachment/delivery/http"

	bookHttp "ice.edu/helpinghand/internal/modules/book/delivery/http"
	bookRepo "ice.edu/helpinghand/internal/modules/book/repository"
	bookService "ice.edu/helpinghand/internal/modules/book/service"

	dealHttp "ice.edu/helpinghand/internal/modules/deal/delivery/http"
	dealRepo "ice.edu/helpinghand/internal/modules/deal/repository"
	dealService "ice.edu/helpinghand/internal/modules/deal/service"

	noteHttp "ice.edu/helpinghand/internal/modules/note/delivery/http"
	noteRepo "ice.edu/helpinghand/internal/modules/note/repository"
	noteService "ice.edu/helpinghand/internal/modules/note/service"

	noticeHttp "ice.edu/helpinghand/internal/modules/notice/delivery/http"
	noticeRepo "ice.edu/helpinghand/internal/modules/notice/repository"
	noticeService "ice.edu/helpinghand/internal/modules/notice/service"

	searchService "ice.edu/helpinghand/internal/modules/search/service"

	settingHttp "ice.edu/helpinghand/internal/modules/setting/delivery/http"
	settingRepo "ice.edu/helpinghand/internal/modules/setting/repository"
	settingService "ice.edu/helpinghand/internal/modules/setting/service"

	socialLinkHttp "ice.edu/helpinghand/internal/modules/sociallink/delivery/http"
	socialLinkRepo "ice.edu/helpinghand/internal/modules/sociallink/repository"
	socialLinkService "ice.edu/helpinghand/internal/modules/sociallink/service"

	subjectHttp "ice.edu/helpinghand/internal/modules/subject/delivery/http"
	subjectRepo "ice.edu/helpinghand/internal/modules/subject/repository"
	subjectService "ice.edu/helpinghand/internal/modules/subject/service"

	userHttp "ice.edu/helpinghand/internal/modules/user/delivery/http"
	userRepository "ice.edu/helpinghand/internal/modules/user/repository"
	userService "ice.edu/helpinghand/internal/modules/user/service"

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
}

type Deps struct {
	Config      *config.Config
	DB          *gorm.DB
	RedisClient *redis.Client
	MeiliClient meilisearch.ServiceManager
	FileStorage storage.FileStorage
	Logger      *logger.Logger
}

func NewServer(deps Deps) *Server {
	cfg := deps.Config
	db := deps.DB

	userRepo := userRepository.NewUserRepository(db)
	seeder := bootstrap.NewSeeder(db)

	meiliSvc := searchService.NewMeiliSearchService(deps.MeiliClient, deps.Logger)

	userSvc := userService.NewUserService(userRepo, seeder, deps.RedisClient, cfg.JWTSecret, cfg.SessionTTL, cfg.RateLimitLogin)
	authHandler := userHttp.NewAuthHandler(userSvc, int(cfg.SessionTTL.Seconds()), cfg.AppEnv == "production")

	subjectRepository := subjectRepo.NewSubjectRepository(db)
	subjectSvc := subjectService.NewSubjectService(subjectRepository)
	subjectHandler := subjectHttp.NewSubjectHandler(subjectSvc)

	bookRepository := bookRepo.NewBookRepository(db)
	bookSvc := bookService.NewBookService(bookRepository, userRepo, meiliSvc)
	bookHandler := bookHttp.NewBookHandler(bookSvc)

	noteRepository := noteRepo.NewNoteRepository(db)
	noteSvc := noteService.NewNoteService(noteRepository, userRepo, meiliSvc)
	noteHandler := noteHttp.NewNoteHandler(noteSvc)

	noticeRepository := noticeRepo.NewNoticeRepository(db)
	noticeSvc := noticeService.NewNoticeService(noticeRepository, userRepo)
	noticeHandler := noticeHttp.NewNoticeHandler(noticeSvc)

	dealRepository := dealRepo.NewDealRepository(db)
	dealSvc := dealService.NewDealService(dealRepository)
	dealHandler := dealHttp.NewDealHandler(dealSvc)

	socialLinkRepository := socialLinkRepo.NewSocialLinkRepository(db)
	socialLinkSvc := socialLinkService.NewSocialLinkService(socialLinkRepository)
	socialLinkHandler := socialLinkHttp.NewSocialLinkHandler(socialLinkSvc)

	settingRepository := settingRepo.NewSettingRepository(db)
	settingSvc := settingService.NewSettingService(settingRepository)
	settingHandler := settingHttp.NewSettingHandler(settingSvc)

	attachmentHandler := attachmentHttp.NewAttachmentHandler(deps.FileStorage, cfg.MaxUploadSize)

	router := gin.New()

	setupCORS(router, cfg.AllowedOrigins)

	router.Use(gin.Recovery())
	router.Use(gin.Logger())

	// Locally stored uploads are served from the upload dir. Cloudinary URLs
	// never hit this route.
	router.Static(cfg.UploadPath, cfg.UploadDir)

	authMiddleware := middleware.NewAuthMiddleware(userRepo, cfg.JWTSecret)

	api := router.Group("/api")

	// Public routes (no auth required)
	auth := api.Group("/auth")
	{
		auth.POST("/login", authHandler.Login)
		auth.POST("/logout", authHandler.Logout)
		auth.GET("/me", authHandler.Me)
	}

	api.POST("/seed", authHandler.Seed)

	api.GET("/books", bookHandler.ListBooks)
	api.GET("/books/:id", bookHandler.GetBook)
	api.GET("/books/download/:id", bookHandler.DownloadBook)
	api.POST("/books/like/:id", bookHandler.LikeBook)

	api.GET("/notes", noteHandler.ListNotes)
	api.GET("/notes/:id", noteHandler.GetNote)
	api.GET("/notes/download/:id", noteHandler.DownloadNote)
	api.POST("/notes/like/:id", noteHandler.LikeNote)

	api.GET("/notices", noticeHandler.ListNotices)
	api.GET("/notices/:id", noticeHandler.GetNotice)

	api.GET("/deals", dealHandler.ListDeals)
	api.GET("/social-links", socialLinkHandler.ListSocialLinks)
	api.GET("/settings", settingHandler.GetSettings)
	api.GET("/subjects", subjectHandler.ListSubjects)

	// Protected routes (apply auth middleware explicitly)
	protected := api.Group("")
	protected.Use(authMiddleware.RequireAuth())
	{
		// Staff routes (ADMIN or TEACHER)
		staff := protected.Group("")
		staff.Use(authMiddleware.RequireStaff())
		{
			staff.POST("/books", bookHandler.CreateBook)
			staff.POST("/notes", noteHandler.CreateNote)
			staff.POST("/notices", noticeHandler.CreateNotice)
			staff.POST("/subjects", subjectHandler.CreateSubject)
			staff.POST("/upload", attachmentHandler.Upload)
		}

		// Ownership is enforced in the services for these.
		protected.PUT("/books/:id", bookHandler.UpdateBook)
		protected.DELETE("/books/:id", bookHandler.DeleteBook)
		protected.PUT("/notes/:id", noteHandler.UpdateNote)
		protected.DELETE("/notes/:id", noteHandler.DeleteNote)
		protected.PUT("/notices/:id", noticeHandler.UpdateNotice)
		protected.DELETE("/notices/:id", noticeHandler.DeleteNotice)

		// Admin routes keep their public paths, gated by role middleware.
		admin := protected.Group("")
		admin.Use(authMiddleware.RequireAdmin())
		{
			admin.POST("/users", authHandler.CreateUser)
			admin.GET("/users", authHandler.ListUsers)
			admin.DELETE("/users/:id", authHandler.DeleteUser)

			admin.POST("/deals", dealHandler.CreateDeal)
			admin.PUT("/deals/:id", dealHandler.UpdateDeal)
			admin.DELETE("/deals/:id", dealHandler.DeleteDeal)

			admin.POST("/social-links", socialLinkHandler.CreateSocialLink)
			admin.PUT("/social-links/:id", socialLinkHandler.UpdateSocialLink)
			admin.DELETE("/social-links/:id", socialLinkHandler.DeleteSocialLink)

			admin.PUT("/settings", settingHandler.UpdateSettings)

			admin.DELETE("/subjects/:id", subjectHandler.DeleteSubject)
		}
	}

	return &Server{
		engine:      router,
		db:          db,
		redisClient: deps.RedisClient,
	}
}

func (s *Server) Run(addr string) error {
	return s.engine.Run(addr)
}

// Engine exposes the underlying router for tests.
func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func setupCORS(router *gin.Engine, allowedOrigins string) {
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
		ExposeHeaders:    []string{"Content-Length", "Retry-After"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
}
