// Package server assembles the catalog's gin engine and HTTP server.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/render"
	"github.com/rs/zerolog"
	"github.com/snnyvrz/shelfshare/apps/catalog/internal/handler"
	"github.com/snnyvrz/shelfshare/apps/catalog/internal/middleware"
	"github.com/snnyvrz/shelfshare/apps/catalog/internal/repository"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

const (
	readTimeout  = 15 * time.Second
	writeTimeout = 30 * time.Second
	idleTimeout  = 60 * time.Second
)

type Deps struct {
	Authors repository.AuthorRepository
	Books   repository.BookRepository
	Ping    func(ctx context.Context) error
	Views   render.HTMLRender
	Metrics *middleware.Metrics
	Log     zerolog.Logger

	Version   string
	StartTime time.Time
	// Verbose shows error details on the error page.
	Verbose bool
}

func NewRouter(d Deps) *gin.Engine {
	e := gin.New()
	e.HTMLRender = d.Views

	_ = e.SetTrustedProxies([]string{
		"127.0.0.1",
		"::1",
	})

	e.Use(
		middleware.RequestID(),
		middleware.Recovery(d.Log),
		middleware.Logger(d.Log),
	)
	if d.Metrics != nil {
		e.Use(d.Metrics.Middleware())
		e.GET("/metrics", gin.WrapH(d.Metrics.Handler()))
	}

	handler.NewHealthHandler(d.Ping, d.StartTime, d.Version).RegisterRoutes(e)

	site := e.Group("", handler.ErrorHandler(d.Log, d.Verbose))
	handler.NewAuthorHandler(d.Authors, d.Books).RegisterRoutes(site)

	api := e.Group("/api")
	handler.NewAuthorAPIHandler(d.Authors, d.Books).RegisterRoutes(api)

	e.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return e
}

func NewHTTPServer(addr string, h http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           h,
		ReadHeaderTimeout: readTimeout,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
	}
}
