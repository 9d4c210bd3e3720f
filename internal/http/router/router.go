package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"

	"github.com/swapo-org/swapo-backend/internal/config"
	"github.com/swapo-org/swapo-backend/internal/http/middleware"
	"github.com/swapo-org/swapo-backend/internal/interface/http/handler"
	"github.com/swapo-org/swapo-backend/internal/storage"
)

// authRateLimit - лимит запросов на /auth/* с одного IP за RATE_LIMIT_PERIOD.
const authRateLimit = 5

// Handlers собирает все HTTP обработчики приложения.
type Handlers struct {
	Health       *handler.HealthHandler
	Auth         *handler.AuthHandler
	Profile      *handler.ProfileHandler
	Skill        *handler.SkillHandler
	Listing      *handler.ListingHandler
	Block        *handler.BlockHandler
	Proposal     *handler.ProposalHandler
	Trade        *handler.TradeHandler
	Message      *handler.MessageHandler
	Notification *handler.NotificationHandler
}

// Options - инфраструктура, нужная маршрутам помимо обработчиков.
type Options struct {
	Tokens         middleware.AccessTokenParser
	RateLimitStore limiter.Store
	// MediaRoot - каталог локальных фото. Пустой, если фото хранятся в Cloudinary.
	MediaRoot string
}

func SetupRouter(cfg *config.Config, h Handlers, opts Options) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.CORSMiddleware(cfg.AllowedOrigins))

	r.GET("/health", h.Health.Health)
	if opts.MediaRoot != "" {
		r.StaticFS(storage.PublicPrefix, http.Dir(opts.MediaRoot))
	}

	api := r.Group("/api/v1")
	api.Use(middleware.RateLimitMiddleware(opts.RateLimitStore, "api", cfg.RateLimitLimit, cfg.RateLimitPeriod))
	api.GET("/health", h.Health.Health)

	auth := middleware.AuthMiddleware(opts.Tokens)

	authGroup := api.Group("/auth")
	authGroup.Use(middleware.RateLimitMiddleware(opts.RateLimitStore, "auth", authRateLimit, cfg.RateLimitPeriod))
	{
		authGroup.POST("/register", h.Auth.Register)
		authGroup.POST("/login", h.Auth.Login)
		authGroup.POST("/refresh", h.Auth.Refresh)
		authGroup.GET("/google/login", h.Auth.GoogleLogin)
		authGroup.GET("/google/callback", h.Auth.GoogleCallback)
	}
	api.PUT("/auth/password", auth, h.Auth.ChangePassword)

	// Публичные маршруты
	api.GET("/users/:id", h.Profile.GetPublic)
	api.GET("/skills", h.Skill.ListSkills)
	api.GET("/user-skills/:userId", h.Skill.ListUserSkills)
	api.GET("/listings", h.Listing.ListListings)
	api.GET("/listings/:id", h.Listing.GetListing)

	// Защищённые маршруты
	protected := api.Group("/")
	protected.Use(auth)
	{
		protected.GET("/profile", h.Profile.GetMe)
		protected.PUT("/profile", h.Profile.UpdateMe)
		protected.POST("/profile/photo", h.Profile.UploadPhoto)

		protected.POST("/skills", h.Skill.CreateSkill)
		protected.POST("/user-skills", h.Skill.AddUserSkills)
		protected.DELETE("/user-skills/:id", h.Skill.DeleteUserSkill)

		protected.POST("/listings", h.Listing.CreateListing)
		protected.PATCH("/listings/:id", h.Listing.UpdateListing)
		protected.DELETE("/listings/:id", h.Listing.DeleteListing)

		protected.POST("/blocks", h.Block.Block)
		protected.GET("/blocks", h.Block.ListBlocks)
		protected.GET("/blocks/is-blocked/:userId", h.Block.IsBlocked)
		protected.DELETE("/blocks/:id", h.Block.Unblock)

		protected.POST("/proposals", h.Proposal.CreateProposal)
		protected.GET("/proposals", h.Proposal.ListProposals)
		protected.GET("/proposals/:id", h.Proposal.GetProposal)
		protected.POST("/proposals/:id/accept", h.Proposal.AcceptProposal)
		protected.POST("/proposals/:id/reject", h.Proposal.RejectProposal)

		protected.GET("/trades", h.Trade.ListTrades)
		protected.GET("/trades/:id", h.Trade.GetTrade)
		protected.POST("/trades/:id/start", h.Trade.StartTrade)
		protected.POST("/trades/:id/complete", h.Trade.CompleteTrade)

		protected.POST("/messages", h.Message.SendMessage)
		protected.GET("/messages", h.Message.ListMessages)

		protected.GET("/notifications", h.Notification.ListNotifications)
		protected.GET("/notifications/unread-count", h.Notification.UnreadCount)
		protected.POST("/notifications/mark-all-read", h.Notification.MarkAllRead)
		protected.PATCH("/notifications/:id/read", h.Notification.MarkRead)
	}

	return r
}
