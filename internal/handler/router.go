package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"foodshare/internal/domain/user"
	"foodshare/internal/handler/api"
	"foodshare/internal/handler/middleware"
	"foodshare/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

type Handlers struct {
	Auth      *api.AuthHandler
	User      *api.UserHandler
	Listing   *api.ListingHandler
	Donation  *api.DonationHandler
	Analytics *api.AnalyticsHandler
}

func NewRouter(engine *gin.Engine, cfg config.Config, handlers Handlers, authMiddleware *middleware.AuthMiddleware) {
	setupMiddleware(engine, cfg)
	setupRoutes(engine, handlers, authMiddleware)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(middleware.LoggingMiddleware(cfg.Log))
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(engine *gin.Engine, h Handlers, authMiddleware *middleware.AuthMiddleware) {
	engine.GET("/health", healthCheck)

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	requireDonor := authMiddleware.RequireRole(user.RoleFoodDonor)
	requireRecipient := authMiddleware.RequireRole(user.RoleRecipientOrg)
	requireAnalyst := authMiddleware.RequireRole(user.RoleDataAnalyst)
	requireAdmin := authMiddleware.RequireAdmin()

	apiGroup := engine.Group("/api")
	{
		auth := apiGroup.Group("/auth")
		{
			addRoutes(auth, []route{
				{Method: http.MethodPost, Path: "/register", Handler: h.Auth.Register},
				{Method: http.MethodPost, Path: "/register-admin", Handler: h.Auth.RegisterAdmin},
				{Method: http.MethodPost, Path: "/login", Handler: h.Auth.Login},
			})

			authRequired := auth.Group("")
			authRequired.Use(authMiddleware.RequireAuth())
			addRoutes(authRequired, []route{
				{Method: http.MethodPost, Path: "/logout", Handler: h.Auth.Logout},
				{Method: http.MethodGet, Path: "/me", Handler: h.Auth.Me},
			})
		}

		users := apiGroup.Group("/users")
		users.Use(authMiddleware.RequireAuth())
		{
			addRoutes(users, []route{
				{Method: http.MethodGet, Path: "/profile", Handler: h.User.GetProfile},
				{Method: http.MethodPut, Path: "/profile", Handler: h.User.UpdateProfile},
				{Method: http.MethodGet, Path: "/donors", Handler: h.User.ListDonors},
				{Method: http.MethodGet, Path: "/recipients", Handler: h.User.ListRecipients},
				{Method: http.MethodGet, Path: "", Handler: h.User.ListUsers, Mw: []gin.HandlerFunc{requireAdmin}},
				{Method: http.MethodPatch, Path: "/:id/verify", Handler: h.User.SetVerified, Mw: []gin.HandlerFunc{requireAdmin}},
				{Method: http.MethodPatch, Path: "/:id/activate", Handler: h.User.SetActive, Mw: []gin.HandlerFunc{requireAdmin}},
			})
		}

		listings := apiGroup.Group("/listings")
		listings.Use(authMiddleware.RequireAuth())
		{
			addRoutes(listings, []route{
				{Method: http.MethodGet, Path: "", Handler: h.Listing.ListListings},
				{Method: http.MethodGet, Path: "/available", Handler: h.Listing.ListAvailable},
				{Method: http.MethodGet, Path: "/my", Handler: h.Listing.ListMyListings, Mw: []gin.HandlerFunc{requireDonor}},
				{Method: http.MethodGet, Path: "/:id", Handler: h.Listing.GetListing},
				{Method: http.MethodPost, Path: "", Handler: h.Listing.CreateListing, Mw: []gin.HandlerFunc{requireDonor}},
				{Method: http.MethodPut, Path: "/:id", Handler: h.Listing.UpdateListing, Mw: []gin.HandlerFunc{requireDonor}},
				{Method: http.MethodDelete, Path: "/:id", Handler: h.Listing.DeleteListing, Mw: []gin.HandlerFunc{requireDonor}},
			})
		}

		donations := apiGroup.Group("/donations")
		donations.Use(authMiddleware.RequireAuth())
		{
			addRoutes(donations, []route{
				{Method: http.MethodPost, Path: "", Handler: h.Donation.RequestDonation, Mw: []gin.HandlerFunc{requireRecipient}},
				{Method: http.MethodGet, Path: "", Handler: h.Donation.ListDonations},
				{Method: http.MethodGet, Path: "/:id", Handler: h.Donation.GetDonation},
				{Method: http.MethodPatch, Path: "/:id/status", Handler: h.Donation.UpdateStatus},
			})
		}

		analytics := apiGroup.Group("/analytics")
		analytics.Use(authMiddleware.RequireAuth(), requireAnalyst)
		{
			addRoutes(analytics, []route{
				{Method: http.MethodGet, Path: "/overview", Handler: h.Analytics.Overview},
				{Method: http.MethodGet, Path: "/trends", Handler: h.Analytics.Trends},
				{Method: http.MethodGet, Path: "/categories", Handler: h.Analytics.CategoryBreakdown},
				{Method: http.MethodGet, Path: "/top-donors", Handler: h.Analytics.TopDonors},
				{Method: http.MethodGet, Path: "/top-recipients", Handler: h.Analytics.TopRecipients},
				{Method: http.MethodGet, Path: "/impact-report", Handler: h.Analytics.ImpactReport},
			})
		}
	}
}

// @Summary Health check
// @Description Check if the service is healthy
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		h := r.Handler
		if len(r.Mw) > 0 {
			h = chainHandlers(append(r.Mw, r.Handler)...)
		}
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, h)
		case http.MethodPost:
			g.POST(r.Path, h)
		case http.MethodPut:
			g.PUT(r.Path, h)
		case http.MethodPatch:
			g.PATCH(r.Path, h)
		case http.MethodDelete:
			g.DELETE(r.Path, h)
		default:
			g.Any(r.Path, h)
		}
	}
}

func chainHandlers(hs ...gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, h := range hs {
			h(c)
			if c.IsAborted() {
				return
			}
		}
	}
}
