package router

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/clinicore/clinic-api/pkg/metrics"

	appointmentHandler "github.com/clinicore/clinic-api/internal/handler/appointment"
	authHandler "github.com/clinicore/clinic-api/internal/handler/auth"
	clinicHandler "github.com/clinicore/clinic-api/internal/handler/clinic"
	doctorHandler "github.com/clinicore/clinic-api/internal/handler/doctor"
	healthHandler "github.com/clinicore/clinic-api/internal/handler/health"
	locationHandler "github.com/clinicore/clinic-api/internal/handler/location"
	userHandler "github.com/clinicore/clinic-api/internal/handler/user"
	"github.com/clinicore/clinic-api/internal/middleware"
	"github.com/clinicore/clinic-api/internal/model"
)

type Config struct {
	RateLimitRPS   float64
	RateLimitBurst int
	CacheTTL       time.Duration
	CORS           middleware.CORSConfig
}

type Handlers struct {
	Auth        *authHandler.Handler
	User        *userHandler.Handler
	Doctor      *doctorHandler.Handler
	Clinic      *clinicHandler.Handler
	Location    *locationHandler.Handler
	Appointment *appointmentHandler.Handler
	Health      *healthHandler.Handler
}

type Router struct {
	engine   *gin.Engine
	auth     *middleware.AuthMiddleware
	handlers Handlers
	cache    *middleware.ResponseCache
	metrics  *metrics.Metrics
	config   Config
}

func New(auth *middleware.AuthMiddleware, handlers Handlers, m *metrics.Metrics, cfg Config) *Router {
	gin.SetMode(gin.ReleaseMode)
	registerValidations()

	engine := gin.New()

	r := &Router{
		engine:   engine,
		auth:     auth,
		handlers: handlers,
		cache:    middleware.NewResponseCache(cfg.CacheTTL),
		metrics:  m,
		config:   cfg,
	}

	rateLimiter := middleware.NewRateLimiter(middleware.RateLimiterConfig{
		RPS:   cfg.RateLimitRPS,
		Burst: cfg.RateLimitBurst,
	})

	engine.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		middleware.CORS(cfg.CORS),
		rateLimiter.RateLimit(),
		r.metricsMiddleware(),
	)

	return r
}

func (r *Router) Engine() *gin.Engine {
	return r.engine
}

func (r *Router) Setup() {
	root := r.engine.Group("")

	r.handlers.Health.RegisterRoutes(root)
	root.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Public surface: login plus the append-only location/clinic listings,
	// the latter behind the in-process response cache.
	public := root.Group("")
	public.Use(r.cache.Cached(), r.cache.Invalidate())
	r.handlers.Location.RegisterRoutes(public)
	r.handlers.Clinic.RegisterRoutes(public)

	protected := root.Group("")
	protected.Use(r.auth.Authenticate())

	r.handlers.Auth.RegisterRoutes(root, protected)
	r.handlers.Appointment.RegisterRoutes(protected)

	admin := protected.Group("")
	admin.Use(r.auth.RequireRoles(model.RoleAdmin))

	r.handlers.Doctor.RegisterRoutes(protected, admin)
	r.handlers.User.RegisterRoutes(admin)
}

func (r *Router) metricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if r.metrics == nil {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		status := strconv.Itoa(c.Writer.Status())

		r.metrics.RequestsTotal.WithLabelValues(c.Request.Method, path, status).Inc()
		r.metrics.RequestDuration.WithLabelValues(c.Request.Method, path).Observe(time.Since(start).Seconds())
		if c.Writer.Status() >= 400 {
			r.metrics.ErrorsTotal.WithLabelValues(c.Request.Method, path, status).Inc()
		}
	}
}

// registerValidations adds the "role" rule to gin's validator engine.
func registerValidations() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("role", func(fl validator.FieldLevel) bool {
			_, err := model.ParseRole(fl.Field().String())
			return err == nil
		})
	}
}
