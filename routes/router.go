// Package routes assembles the HTTP engine: correlation, logging, error
// mapping and CORS. Business routers are not registered yet; the /api
// group below is where they attach once they exist.
package routes

import (
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/craftmarket/api/config"
	"github.com/craftmarket/api/httperr"
	"github.com/craftmarket/api/middleware"
	"github.com/craftmarket/api/session"
)

// SetupRouter wires middlewares and (future) routers. The session
// provider is what request handlers will receive by injection.
func SetupRouter(cfg config.Config, sessions *session.Provider, log *zap.Logger) *gin.Engine {
	switch strings.ToLower(cfg.Log.Level) {
	case "debug":
		gin.SetMode(gin.DebugMode)
	default:
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger(log))
	r.Use(middleware.ErrorHandler(log))

	r.Use(cors.New(cors.Config{
		AllowAllOrigins:  true,
		AllowMethods:     []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"*"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// api := r.Group("/api")
	// user, post, review and favorite routers attach here with sessions
	// injected once their handlers exist.

	r.NoRoute(func(c *gin.Context) {
		apiErr := httperr.NotFound("")
		c.JSON(apiErr.Status, apiErr)
	})

	return r
}
