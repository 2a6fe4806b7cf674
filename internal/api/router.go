package api

import (
	"strconv"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/intranet-portal/portal-api/docs"
	"github.com/intranet-portal/portal-api/internal/api/handler"
	"github.com/intranet-portal/portal-api/internal/api/middleware"
	"github.com/intranet-portal/portal-api/internal/core/domain"
	"github.com/intranet-portal/portal-api/internal/core/guard"
	"github.com/intranet-portal/portal-api/internal/core/ports"
	infrahttp "github.com/intranet-portal/portal-api/internal/infrastructure/http"
	"github.com/intranet-portal/portal-api/internal/infrastructure/http/handlers"
	"github.com/intranet-portal/portal-api/internal/pkg/config"
)

// multipartOverhead is added to the upload limit to leave room for the form
// fields and part headers around the image.
const multipartOverhead = 64 << 10

// Deps are the services the HTTP layer is built on.
type Deps struct {
	Config    *config.Config
	Log       zerolog.Logger
	Auth      ports.AuthService
	Tokens    ports.TokenVerifier
	Carousel  ports.CarouselService
	Birthdays ports.BirthdayService
	Resources ports.ResourceService
	Users     ports.UserRepository
	Checks    []handlers.Check
	// Registry receives the HTTP metrics. Nil uses the default registry.
	Registry *prometheus.Registry
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	cfg := d.Config

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log, !cfg.IsProduction())

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(d.Log))
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins:     cfg.CORSOrigins,
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
		AllowCredentials: true,
	}))

	var (
		registerer prometheus.Registerer = prometheus.DefaultRegisterer
		gatherer   prometheus.Gatherer   = prometheus.DefaultGatherer
	)
	if d.Registry != nil {
		registerer, gatherer = d.Registry, d.Registry
	}
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "portal",
		Registerer: registerer,
		Skipper: func(c echo.Context) bool {
			p := c.Path()
			return p == "/metrics" || p == "/health" || p == "/health/ready"
		},
	}))

	// --- Operational endpoints ---
	infrahttp.RegisterHealth(e, d.Checks...)
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: gatherer}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)
	e.Static("/uploads", cfg.Uploads.Dir)

	authRequired := middleware.Auth(d.Tokens)

	// --- Auth routes ---
	authHandler := handler.NewAuthHandler(d.Auth)
	e.POST("/api/auth/login", authHandler.Login, middleware.LoginRateLimit(cfg.Portal.LoginRatePerMinute))
	e.GET("/api/auth/me", authHandler.Me, authRequired)
	e.POST("/api/auth/logout", authHandler.Logout, authRequired)

	// --- Portal content ---
	carouselHandler := handler.NewCarouselHandler(d.Carousel)
	e.GET("/api/carousel", carouselHandler.List)
	createSlide := []echo.MiddlewareFunc{
		echomiddleware.BodyLimit(strconv.FormatInt(cfg.Uploads.MaxBytes+multipartOverhead, 10)),
	}
	if len(cfg.Portal.CarouselEditorRoles) > 0 {
		createSlide = append(createSlide,
			authRequired,
			middleware.RequireAccess(domain.AccessRequirement{Roles: cfg.Portal.CarouselEditorRoles}),
		)
	}
	e.POST("/api/carousel", carouselHandler.Create, createSlide...)

	e.GET("/api/cumple-hoy", handler.NewBirthdayHandler(d.Birthdays).Today)
	e.GET("/api/recursos", handler.NewResourceHandler(d.Resources).Catalog, authRequired)
	e.GET("/api/rutas", handler.NewNavigationHandler(guard.DefaultRoutes()).Routes, middleware.OptionalAuth(d.Tokens))

	// --- Troubleshooting, never in production ---
	if !cfg.IsProduction() {
		debugHandler := handler.NewDebugHandler(handler.DebugInfo{
			Port:          cfg.Port,
			Env:           cfg.Env,
			DirectoryMode: cfg.Directory.Mode,
			DirectoryURL:  cfg.Directory.URL != "",
			BaseDN:        cfg.Directory.BaseDN != "",
			ServiceBind:   cfg.Directory.BindUser != "" && cfg.Directory.BindPassword != "",
		}, d.Users)
		e.GET("/api/auth/debug", debugHandler.Config)
		e.GET("/api/debug/usuarios", debugHandler.Users)
	}

	return e
}

// requestLogger writes one zerolog event per request.
func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRemoteIP:  true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			ev := log.Info()
			if v.Status >= 500 {
				ev = log.Error().Err(v.Error)
			}
			ev.Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("remote_ip", v.RemoteIP).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}
