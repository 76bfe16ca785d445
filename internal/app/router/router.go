// Package router wires HTTP routes onto a gin engine.
package router

import (
	"log/slog"
	"slices"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	authhandler "worldexplorer/internal/feature/auth/transport/handler"
	countrieshandler "worldexplorer/internal/feature/countries/transport/handler"
	"worldexplorer/internal/platform/http/handler"
	"worldexplorer/internal/platform/http/middleware"
	jwtmw "worldexplorer/internal/platform/jwt"
)

// Deps are the handlers and middleware the router mounts.
type Deps struct {
	Environment string
	CORSOrigins []string
	Logger      *slog.Logger
	Metrics     *middleware.Metrics
	Tokens      jwtmw.TokenParser
	Users       jwtmw.UserResolver
	Auth        *authhandler.AuthHandler
	Countries   *countrieshandler.CountriesHandler
}

// NewRouter builds the engine. Every route is served both at the root and
// under /api.
func NewRouter(d Deps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	if d.Logger != nil {
		r.Use(middleware.RequestLogger(d.Logger))
	}
	if d.Metrics != nil {
		r.Use(d.Metrics.Instrument())
		r.GET("/metrics", gin.WrapH(d.Metrics.Handler()))
	}
	r.Use(cors.New(corsConfig(d.CORSOrigins)))

	register(&r.RouterGroup, d)
	register(r.Group("/api"), d)

	return r
}

func register(g *gin.RouterGroup, d Deps) {
	// 認証不要
	// 導通確認用
	g.GET("/health", handler.Health(d.Environment))

	users := g.Group("/users")
	{
		// 新規ユーザー登録
		users.POST("/register", d.Auth.Register)
		// ログイン（JWT 発行）
		users.POST("/login", d.Auth.Login)
		// 認証必須
		users.GET("/me", jwtmw.AuthRequired(d.Tokens, d.Users), d.Auth.Me)
	}

	if d.Countries != nil {
		countries := g.Group("/countries")
		{
			countries.GET("", d.Countries.List)
			countries.GET("/search", d.Countries.Search)
			countries.GET("/region/:region", d.Countries.Region)
			countries.GET("/:code", d.Countries.Detail)
		}
	}
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 || slices.Contains(origins, "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cfg
}
