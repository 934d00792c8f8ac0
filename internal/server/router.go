package server

import (
	"net/http"
	"strconv"

	"osint-desk/internal/metrics"
	"osint-desk/internal/storage"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Options configures the router.
type Options struct {
	AllowOrigins []string
	Gatherer     prometheus.Gatherer // serves /metrics when set
	Metrics      *metrics.Feed
}

// NewRouter wires the feed routes.
func NewRouter(repo storage.Repository, opts Options) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	if opts.Metrics != nil {
		r.Use(countRequests(opts.Metrics))
	}
	if len(opts.AllowOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins: opts.AllowOrigins,
			AllowMethods: []string{http.MethodGet, http.MethodOptions},
			AllowHeaders: []string{"Origin", "Content-Type"},
		}))
	}

	h := NewEventHandler(repo, opts.Metrics)
	r.GET("/events/:id", h.GetEvent)
	r.GET("/events", h.GetEvents)
	r.GET("/health", h.GetHealth)
	if opts.Gatherer != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(opts.Gatherer, promhttp.HandlerOpts{})))
	}
	return r
}

func countRequests(m *metrics.Feed) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.Requests.WithLabelValues(route, strconv.Itoa(c.Writer.Status())).Inc()
	}
}
