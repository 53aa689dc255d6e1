package server

import (
	"time"

	"github.com/emrgen/linkdealer/internal/config"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// NewRouter builds the gin engine: public healthcheck, basic-auth
// protected /api group.
func NewRouter(cnf *config.Config, h *Handler) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(RequestLog())

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST"},
		AllowHeaders:     []string{"Authorization", "Content-Type"},
		AllowCredentials: false,
	}))

	router.GET("/healthcheck", HealthCheck)

	api := router.Group("/api")
	api.Use(BasicAuth(cnf.APIUsername, cnf.APIPassword))
	{
		api.GET("/info", h.GetInfo)
		api.POST("/update_info", h.UpdateInfo)
		api.POST("/create_link", h.CreateLink)
		api.POST("/make_utm", h.MakeUTM)
	}

	return router
}

// RequestLog tags each request with a short id and logs the outcome.
func RequestLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		id := uuid.NewString()[:8]

		c.Next()

		logrus.Infof("request %s: %s %s -> %d in %v",
			id, c.Request.Method, c.Request.URL.Path, c.Writer.Status(), time.Since(start))
	}
}
