package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"golang.org/x/time/rate"

	_ "github.com/cafecritique/review-api/docs"
	"github.com/cafecritique/review-api/internal/api/handler"
	"github.com/cafecritique/review-api/internal/api/middleware"
	"github.com/cafecritique/review-api/internal/core/domain"
	"github.com/cafecritique/review-api/internal/core/ports"
)

// Services are the domain services the routes dispatch to.
type Services struct {
	Auth       ports.AuthService
	User       ports.UserService
	Restaurant ports.RestaurantService
	Blog       ports.BlogService
	Comment    ports.CommentService
	Reaction   ports.ReactionService
	Rating     ports.RatingService
}

// Options configures the router.
type Options struct {
	JWTSecret string
	// AuthRequired puts write routes behind Auth and RBAC.
	AuthRequired  bool
	MaxImageBytes int64
	// UploadDir is served under /uploads when images are stored on local disk.
	UploadDir string
	Checks    map[string]handler.Check
	Log       zerolog.Logger
	// Registry receives the HTTP metrics. Nil means the default registry.
	Registry *prometheus.Registry
	// AuthRateLimit throttles /authentication per client IP. Zero RPS disables it.
	AuthRateLimit RateLimit
}

// RateLimit is a token bucket refilled at RPS with room for Burst requests.
type RateLimit struct {
	RPS   float64
	Burst int
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(svc Services, opts Options) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = NewHTTPErrorHandler(opts.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(opts.Log))
	e.Use(echomiddleware.CORS())
	e.Use(echomiddleware.BodyLimit(bodyLimit(opts.MaxImageBytes)))

	promConfig := echoprometheus.MiddlewareConfig{Subsystem: "cafecritique"}
	var metricsHandler echo.HandlerFunc
	if opts.Registry != nil {
		promConfig.Registerer = opts.Registry
		metricsHandler = echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: opts.Registry})
	} else {
		metricsHandler = echoprometheus.NewHandler()
	}
	e.Use(echoprometheus.NewMiddlewareWithConfig(promConfig))

	// --- Operational endpoints (no auth required) ---
	health := handler.NewHealthHandler(opts.Checks)
	e.GET("/health", health.Live)
	e.GET("/health/ready", health.Ready)
	e.GET("/metrics", metricsHandler)
	e.GET("/swagger/*", echoSwagger.WrapHandler)
	if opts.UploadDir != "" {
		e.Static("/uploads", opts.UploadDir)
	}

	authn := middleware.Auth(opts.JWTSecret)
	// guard returns the middleware chain for a write route.
	guard := func(roles ...domain.Role) []echo.MiddlewareFunc {
		if !opts.AuthRequired {
			return nil
		}
		return []echo.MiddlewareFunc{authn, middleware.RBAC(roles...)}
	}

	// --- Authentication ---
	authHandler := handler.NewAuthHandler(svc.Auth, svc.User)
	auth := e.Group("/authentication")
	if opts.AuthRateLimit.RPS > 0 {
		auth.Use(rateLimiter(opts.AuthRateLimit))
	}
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/isUsernameAvailable", authHandler.IsUsernameAvailable)
	auth.GET("/profile", authHandler.Profile, authn)

	// --- Users ---
	userHandler := handler.NewUserHandler(svc.User)
	users := e.Group("/user")
	users.GET("", userHandler.List)
	users.GET("/_id=:id", userHandler.GetByID)
	users.GET("/username=:username", userHandler.GetByUsername)

	// --- Restaurants and ratings ---
	restaurantHandler := handler.NewRestaurantHandler(svc.Restaurant, opts.MaxImageBytes)
	ratingHandler := handler.NewRatingHandler(svc.Rating)
	restaurants := e.Group("/restaurant")
	restaurants.GET("", restaurantHandler.List)
	restaurants.POST("", restaurantHandler.Create, guard(domain.RoleRestaurateur)...)
	restaurants.GET("/_id=:id", restaurantHandler.GetByID)
	restaurants.PUT("/_id=:id", restaurantHandler.Update, guard(domain.RoleRestaurateur)...)
	restaurants.GET("/name=:name", restaurantHandler.GetByName)
	restaurants.GET("/restaurateur=:restaurateur", restaurantHandler.GetByOwner)
	restaurants.GET("/:restaurant_id/rating", ratingHandler.List)
	restaurants.POST("/:restaurant_id/rating", ratingHandler.Upsert, guard(domain.RoleBlogger)...)
	restaurants.DELETE("/:restaurant_id/rating", ratingHandler.Delete, guard(domain.RoleBlogger)...)

	// --- Blogs, comments and reactions ---
	blogHandler := handler.NewBlogHandler(svc.Blog, opts.MaxImageBytes)
	commentHandler := handler.NewCommentHandler(svc.Comment)
	reactionHandler := handler.NewReactionHandler(svc.Reaction)
	blogs := e.Group("/blog")
	blogs.GET("", blogHandler.List)
	blogs.POST("", blogHandler.Create, guard(domain.RoleBlogger)...)
	blogs.GET("/restaurant_id=:restaurant_id", blogHandler.GetByRestaurant)
	blogs.GET("/:blog_id", blogHandler.GetByID)
	blogs.DELETE("/:blog_id", blogHandler.Delete, guard(domain.RoleBlogger)...)

	blogs.GET("/:blog_id/comment", commentHandler.List)
	blogs.POST("/:blog_id/comment", commentHandler.Create, guard(domain.Roles...)...)
	blogs.GET("/:blog_id/comment/:comment_id", commentHandler.Get)
	blogs.DELETE("/:blog_id/comment/:comment_id", commentHandler.Delete, guard(domain.Roles...)...)

	blogs.GET("/:blog_id/reaction", reactionHandler.List)
	blogs.POST("/:blog_id/reaction", reactionHandler.Upsert, guard(domain.Roles...)...)
	blogs.GET("/:blog_id/reaction/:reaction_id", reactionHandler.Get)

	return e
}

// bodyLimit allows one full-size image plus the surrounding form fields.
func bodyLimit(maxImageBytes int64) string {
	if maxImageBytes <= 0 {
		maxImageBytes = 1_000_000
	}
	return fmt.Sprintf("%dK", maxImageBytes/1024+64)
}

// rateLimiter keys buckets by the client IP echo resolves for the request.
func rateLimiter(rl RateLimit) echo.MiddlewareFunc {
	return echomiddleware.RateLimiterWithConfig(echomiddleware.RateLimiterConfig{
		Store: echomiddleware.NewRateLimiterMemoryStoreWithConfig(echomiddleware.RateLimiterMemoryStoreConfig{
			Rate:      rate.Limit(rl.RPS),
			Burst:     rl.Burst,
			ExpiresIn: 3 * time.Minute,
		}),
		DenyHandler: func(c echo.Context, _ string, _ error) error {
			return echo.NewHTTPError(http.StatusTooManyRequests, "Too many requests, please try again later")
		},
	})
}

// requestLogger writes one zerolog event per request.
func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			evt := log.Info()
			if v.Status >= 500 {
				evt = log.Error().Err(v.Error)
			} else if v.Status >= 400 {
				evt = log.Warn()
			}
			evt.
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}
