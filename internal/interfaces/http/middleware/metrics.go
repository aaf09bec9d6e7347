package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/ayuraa/wellness-backend/internal/domain/navigation"
	"github.com/ayuraa/wellness-backend/internal/domain/session"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const metricsNamespace = "ayuraa"

// Metrics holds the HTTP and storefront collectors of one server
type Metrics struct {
	registry      *prometheus.Registry
	requests      *prometheus.CounterVec
	latency       *prometheus.HistogramVec
	navigations   *prometheus.CounterVec
	cartMutations *prometheus.CounterVec
}

// NewMetrics registers the collectors on a private registry
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		requests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Subsystem: "http",
				Name:      "requests_total",
				Help:      "HTTP requests by method, route and status.",
			},
			[]string{"method", "route", "status"},
		),
		latency: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: metricsNamespace,
				Subsystem: "http",
				Name:      "request_duration_seconds",
				Help:      "HTTP request latency.",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		navigations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Subsystem: "storefront",
				Name:      "navigations_total",
				Help:      "Storefront navigations by target view.",
			},
			[]string{"view"},
		),
		cartMutations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Subsystem: "storefront",
				Name:      "cart_mutations_total",
				Help:      "Cart changes by operation.",
			},
			[]string{"op"},
		),
	}
}

// Middleware records request count and latency. Unmatched paths share one
// route label.
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.requests.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
		m.latency.WithLabelValues(c.Request.Method, route).Observe(time.Since(start).Seconds())
	}
}

// NavigationListener counts navigations by the view they land on
func (m *Metrics) NavigationListener() session.Listener {
	return session.ListenerFunc(func(route navigation.Route, _ *session.UI) {
		m.navigations.WithLabelValues(viewLabel(route)).Inc()
	})
}

// CartMutation counts one cart change
func (m *Metrics) CartMutation(op string) {
	m.cartMutations.WithLabelValues(op).Inc()
}

// Handler serves the registry in the Prometheus text format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry exposes the underlying registry
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// viewLabel keeps label cardinality bounded: hash fragments and shop
// arguments are dropped.
func viewLabel(route navigation.Route) string {
	switch r := route.(type) {
	case navigation.HashView:
		return r.View
	case navigation.ShopRoute:
		if r.Segment == "" {
			return navigation.ViewShop
		}
		return navigation.ViewShop + "/" + r.Segment
	case navigation.PlainView:
		if r.View == "" {
			return navigation.ViewHome
		}
		return r.View
	default:
		return "unknown"
	}
}
