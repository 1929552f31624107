package api

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/honeycarbs/jobboard/internal/domain/job"
	"github.com/honeycarbs/jobboard/pkg/logging"
)

// Prefix is the route group every REST endpoint lives under
const Prefix = "/api/v1"

// NewRouter builds the REST API engine. An empty origins list allows any origin.
func NewRouter(svc job.Service, logger *logging.Logger, origins []string) *gin.Engine {
	if logger == nil {
		logger = logging.NewNop()
	}

	r := gin.New()
	r.Use(accessLog(logger), recovery(logger))

	config := cors.DefaultConfig()
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		config.AllowAllOrigins = true
	} else {
		config.AllowOrigins = origins
	}
	config.AllowMethods = []string{"GET", "PUT", "DELETE", "OPTIONS"}
	config.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	config.MaxAge = 12 * time.Hour
	r.Use(cors.New(config))

	h := NewJobHandler(svc)

	v1 := r.Group(Prefix)
	{
		v1.GET("/health", h.Health)

		v1.GET("/jobs", h.ListJobs)
		v1.GET("/jobs/featured", h.Featured)
		v1.GET("/jobs/:id", h.GetJob)
		v1.GET("/categories", h.Categories)

		v1.GET("/saved", h.Saved)
		v1.PUT("/saved/:id", h.SaveJob)
		v1.DELETE("/saved/:id", h.UnsaveJob)
	}

	r.NoRoute(func(c *gin.Context) {
		abort(c, errNotFound("route not found"))
	})
	return r
}
