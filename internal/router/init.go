package router

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-hbnb/internal/application"
	handlers "github.com/oksasatya/go-hbnb/internal/interface/http"
	"github.com/oksasatya/go-hbnb/internal/interface/middleware"
	"github.com/oksasatya/go-hbnb/internal/router/modules"
	"github.com/oksasatya/go-hbnb/pkg/helpers"
	"github.com/oksasatya/go-hbnb/pkg/response"
	"github.com/oksasatya/go-hbnb/pkg/validation"
)

// Limits configures the redis rate limiter. Zero values disable a limit.
type Limits struct {
	LoginPerMinute  int
	WritesPerMinute int
	BypassPrivateIP bool
}

// Deps is everything the HTTP surface needs. Redis may be nil, in which
// case rate limiting is off.
type Deps struct {
	Facade      *application.Facade
	JWT         *helpers.JWTManager
	Cookies     *helpers.Manager
	Redis       *redis.Client
	Logger      *logrus.Logger
	Health      map[string]handlers.Pinger
	CORSOrigins []string
	AccessLog   bool
	Limits      Limits
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.HeaderRequestID},
		ExposeHeaders:    []string{"Content-Length", middleware.HeaderRequestID},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(origins) == 1 && strings.TrimSpace(origins[0]) == "*" {
		cfg.AllowAllOrigins = true
		cfg.AllowCredentials = false
		return cfg
	}
	cfg.AllowOrigins = origins
	return cfg
}

func guards(d Deps) modules.Guards {
	allow := middleware.AllowAdmin()
	if d.Limits.BypassPrivateIP {
		allow = middleware.AllowAny(allow, middleware.AllowPrivateIP())
	}
	return modules.Guards{
		Auth:   middleware.RequireAuth(),
		Login:  middleware.RateLimit(d.Redis, d.Limits.LoginPerMinute, time.Minute, middleware.KeyByIPAndPath(), allow),
		Signup: middleware.RateLimit(d.Redis, d.Limits.LoginPerMinute, time.Minute, middleware.KeyByIP("signup"), allow),
		Write:  middleware.RateLimit(d.Redis, d.Limits.WritesPerMinute, time.Minute, middleware.KeyByUserID(), allow),
	}
}

// InitModules builds the handlers and registers every feature module.
func InitModules(r *Registry, d Deps) {
	g := guards(d)
	r.Add(
		modules.NewHealthModule(handlers.NewHealthHandler(d.Health)),
		modules.NewAuthModule(handlers.NewAuthHandler(d.Facade, d.JWT, d.Cookies, d.Logger), g),
		modules.NewUserModule(handlers.NewUserHandler(d.Facade, d.Logger), g),
		modules.NewAmenityModule(handlers.NewAmenityHandler(d.Facade, d.Logger), g),
		modules.NewPlaceModule(handlers.NewPlaceHandler(d.Facade, d.Logger), g),
		modules.NewReviewModule(handlers.NewReviewHandler(d.Facade, d.Logger), g),
	)
}

// NewEngine returns a gin engine with global middleware and all routes.
func NewEngine(d Deps) *gin.Engine {
	if d.Logger == nil {
		d.Logger = logrus.New()
	}
	if d.Cookies == nil {
		d.Cookies = helpers.NewCookie("", false)
	}

	validation.Init()

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware(), middleware.RealIP())
	if len(d.CORSOrigins) > 0 {
		r.Use(cors.New(corsConfig(d.CORSOrigins)))
	}
	if d.AccessLog {
		r.Use(middleware.AccessLog(d.Logger))
	}
	r.NoRoute(func(c *gin.Context) {
		response.Error[any](c, http.StatusNotFound, "route not found", nil)
	})

	reg := NewRegistry(r)
	reg.Use(middleware.JWTCaller(d.JWT))
	InitModules(reg, d)
	reg.RegisterAll()
	return r
}
