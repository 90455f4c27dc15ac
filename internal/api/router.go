package api

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/maxaizer/ats-realtime/internal/config"
	"github.com/maxaizer/ats-realtime/internal/entities"
	log "github.com/sirupsen/logrus"
	"net/http"
	"slices"
	"time"
)

// Realtime groups the non-REST endpoints served next to the API.
type Realtime struct {
	Path      string
	WebSocket http.Handler
	Metrics   http.Handler
}

func NewRouter(cfg config.ServerConfig, handler *Handler, realtime Realtime) *gin.Engine {
	gin.SetMode(cfg.Mode)

	router := gin.New()
	router.Use(gin.Recovery(), requestLogger(), cors.New(corsConfig(cfg.AllowedOrigins)))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	if realtime.Metrics != nil {
		router.GET("/metrics", gin.WrapH(realtime.Metrics))
	}
	if realtime.WebSocket != nil {
		router.GET(realtime.Path, gin.WrapH(realtime.WebSocket))
	}

	api := router.Group("/api", identify())
	{
		api.GET("/users", requireRole(entities.RoleAdmin, entities.RoleHiringManager), handler.ListUsers)
		api.POST("/users", requireRole(entities.RoleAdmin), handler.CreateUser)

		api.GET("/jobs", handler.ListJobs)
		api.POST("/jobs", requireRole(entities.RoleHiringManager), handler.CreateJob)
		api.GET("/jobs/:id", handler.GetJob)
		api.POST("/jobs/:id/assign", requireRole(entities.RoleHiringManager), handler.AssignRecruiter)
		api.GET("/jobs/:id/applicants", handler.ListApplicants)
		api.POST("/jobs/:id/applicants", requireRole(entities.RoleRecruiter), handler.CreateApplicant)

		api.PATCH("/applicants/:id/status", requireRole(entities.RoleRecruiter), handler.UpdateStatus)
		api.POST("/applicants/:id/hold", requireRole(entities.RoleRecruiter), handler.HoldApplicant)
		api.GET("/applicants/:id/next-statuses", handler.NextStatuses)
	}

	return router
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.DefaultConfig()
	if len(origins) == 0 || slices.Contains(origins, "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	cfg.AllowMethods = []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodOptions}
	cfg.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", UserIDHeader, UserRoleHeader}
	return cfg
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		entry := log.WithFields(log.Fields{
			"status":  c.Writer.Status(),
			"latency": time.Since(start),
			"client":  c.ClientIP(),
		})
		if c.Writer.Status() >= http.StatusInternalServerError {
			entry.Warnf("%s %s", c.Request.Method, c.Request.URL.Path)
			return
		}
		entry.Debugf("%s %s", c.Request.Method, c.Request.URL.Path)
	}
}
