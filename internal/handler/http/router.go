package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/mikiasgoitom/TakeTravel/internal/domain/entity"
	"github.com/mikiasgoitom/TakeTravel/internal/handler/http/dto"
	"github.com/mikiasgoitom/TakeTravel/internal/handler/http/middleware"
	usecasecontract "github.com/mikiasgoitom/TakeTravel/internal/usecase/contract"
)

// MetricsExporter instruments requests and serves the scrape endpoint.
type MetricsExporter interface {
	Middleware() gin.HandlerFunc
	Handler() http.Handler
}

// HealthCheck reports whether a backing service is reachable.
type HealthCheck func(ctx context.Context) error

// Options carries the HTTP-level settings.
type Options struct {
	BaseURL               string
	Development           bool
	Cookie                CookieConfig
	Google                GoogleOAuthConfig
	AllowedOrigins        []string
	RequestsPerSecond     float64
	AuthRequestsPerSecond float64
}

// Dependencies are the usecases and services the router serves.
type Dependencies struct {
	UserUsecase    usecasecontract.IUserUseCase
	EmailUsecase   usecasecontract.IEmailVerificationUC
	GuideUsecase   usecasecontract.IGuideUseCase
	PackageUsecase usecasecontract.IPackageUseCase
	BookingUsecase usecasecontract.IBookingUseCase
	ContactUsecase usecasecontract.IContactUseCase
	Logger         usecasecontract.IAppLogger
	Metrics        MetricsExporter
	HealthChecks   map[string]HealthCheck
}

type Router struct {
	userHandler    *UserHandler
	authHandler    *AuthHandler
	emailHandler   *EmailHandler
	guideHandler   *GuideHandler
	packageHandler *PackageHandler
	bookingHandler *BookingHandler
	contactHandler *ContactHandler
	authenticator  middleware.Authenticator
	logger         usecasecontract.IAppLogger
	metrics        MetricsExporter
	health         map[string]HealthCheck
	opts           Options
}

func NewRouter(deps Dependencies, opts Options) *Router {
	userHandler := NewUserHandler(deps.UserUsecase, opts.Cookie)
	return &Router{
		userHandler:    userHandler,
		authHandler:    NewAuthHandler(userHandler, opts.BaseURL, opts.Google),
		emailHandler:   NewEmailHandler(deps.EmailUsecase),
		guideHandler:   NewGuideHandler(deps.GuideUsecase),
		packageHandler: NewPackageHandler(deps.PackageUsecase),
		bookingHandler: NewBookingHandler(deps.BookingUsecase),
		contactHandler: NewContactHandler(deps.ContactUsecase),
		authenticator:  deps.UserUsecase,
		logger:         deps.Logger,
		metrics:        deps.Metrics,
		health:         deps.HealthChecks,
		opts:           opts,
	}
}

func (r *Router) SetupRoutes(router *gin.Engine) {
	router.Use(middleware.Recovery(r.logger))
	// Metrics sit outside the error boundary so they see the final status.
	if r.metrics != nil {
		router.Use(r.metrics.Middleware())
		router.GET("/metrics", gin.WrapH(r.metrics.Handler()))
	}
	router.Use(middleware.ErrorResponder(r.logger, r.opts.Development))
	// Without configured origins no cross-origin request is allowed.
	if len(r.opts.AllowedOrigins) > 0 {
		router.Use(cors.New(cors.Config{
			AllowOrigins:     r.opts.AllowedOrigins,
			AllowMethods:     []string{"GET", "POST", "PATCH", "PUT", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "Accept"},
			ExposeHeaders:    []string{"Content-Length"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}
	router.GET("/healthz", r.healthz)

	// rate limiter configuration
	if r.opts.RequestsPerSecond > 0 {
		router.Use(middleware.RateLimiter(middleware.NewLimiter(r.opts.RequestsPerSecond)))
	}
	strict := func(c *gin.Context) { c.Next() }
	if r.opts.AuthRequestsPerSecond > 0 {
		strict = middleware.RateLimiter(middleware.NewLimiter(r.opts.AuthRequestsPerSecond))
	}

	requireAuth := middleware.RequireAuth(r.authenticator)
	admin := middleware.RequireRole(entity.AdminRoles...)
	superadmin := middleware.RequireRole(entity.UserRoleSuperAdmin)
	guide := middleware.RequireRole(entity.UserRoleGuide)

	users := router.Group("/users")
	{
		users.POST("/signup", strict, r.userHandler.Signup)
		users.POST("/signup/guide", strict, r.userHandler.SignupGuide)
		users.POST("/login", strict, r.userHandler.Login)
		users.GET("/logout", r.userHandler.Logout)
		users.POST("/logout", r.userHandler.Logout)
		users.GET("/verifyEmail", r.emailHandler.HandleVerifyEmailToken)
		users.POST("/forgotPassword", strict, r.userHandler.ForgotPassword)
		users.PATCH("/resetPassword", r.userHandler.ResetPassword)
		users.GET("/google/login", r.authHandler.HandleGoogleLogin)
		users.GET("/google/callback", r.authHandler.HandleGoogleCallback)
		users.GET("/all-guides", r.guideHandler.ListPublicGuides)

		users.GET("/me", requireAuth, r.userHandler.GetCurrentUser)
		users.PATCH("/updateMyPassword", requireAuth, r.userHandler.UpdateMyPassword)
		users.POST("/requestVerificationEmail", requireAuth, r.emailHandler.HandleRequestEmailVerification)

		users.GET("", requireAuth, admin, r.userHandler.ListUsers)
		users.GET("/guides", requireAuth, admin, r.guideHandler.ListGuides)
		users.PATCH("/:id/verify", requireAuth, admin, r.guideHandler.ApproveGuide)
		users.DELETE("/:id", requireAuth, admin, r.guideHandler.RejectGuide)
		users.PATCH("/:id/promote", requireAuth, superadmin, r.userHandler.PromoteUser)
		users.PATCH("/:id/demote", requireAuth, superadmin, r.userHandler.DemoteUser)
	}

	packages := router.Group("/packages")
	{
		packages.GET("", r.packageHandler.ListPackages)
		packages.GET("/:id", r.packageHandler.GetPackage)
		packages.POST("", requireAuth, admin, r.packageHandler.CreatePackage)
		packages.PATCH("/:id", requireAuth, admin, r.packageHandler.UpdatePackage)
		packages.DELETE("/:id", requireAuth, admin, r.packageHandler.DeletePackage)
		packages.DELETE("/:id/permanent", requireAuth, admin, r.packageHandler.PurgePackage)
	}

	bookings := router.Group("/bookings", requireAuth)
	{
		bookings.POST("", r.bookingHandler.CreateBooking)
		bookings.GET("/my-bookings", r.bookingHandler.MyBookings)
		bookings.POST("/user-bookings", r.bookingHandler.UserBookings)
		bookings.POST("/guide-bookings", r.bookingHandler.GuideBookings)
		bookings.GET("/guide-analytics", guide, r.bookingHandler.GuideAnalytics)
		bookings.GET("/available-guides", admin, r.guideHandler.AvailableGuides)
		bookings.GET("/getAllBookings", admin, r.bookingHandler.ListAllBookings)
		bookings.GET("/:id", admin, r.bookingHandler.GetBooking)
		bookings.PATCH("/:id", admin, r.bookingHandler.UpdateStatus)
		bookings.PATCH("/:id/assign-guide", admin, r.bookingHandler.AssignGuide)
	}

	contacts := router.Group("/contacts")
	{
		contacts.POST("/contact", r.contactHandler.Submit)
		contacts.GET("/contacts", requireAuth, admin, r.contactHandler.List)
	}
}

// healthz pings every registered backend.
func (r *Router) healthz(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	status := http.StatusOK
	report := make(map[string]string, len(r.health))
	for name, check := range r.health {
		if err := check(ctx); err != nil {
			r.logger.Warnf("health check %s failed: %v", name, err)
			report[name] = "unavailable"
			status = http.StatusServiceUnavailable
			continue
		}
		report[name] = "ok"
	}
	body := dto.Success(report)
	if status != http.StatusOK {
		body.Status = "error"
	}
	c.JSON(status, body)
}
