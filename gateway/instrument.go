package gateway

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

func Instrumentation() gin.HandlerFunc {
	counterVec := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "evalia",
		Subsystem: "request",
		Name:      "requests_count",
		Help:      "Number of requests per each endpoint",
	}, []string{"code", "method", "handler", "host", "url"})

	resTime := prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "evalia",
		Subsystem: "response",
		Name:      "response_time_hist",
		Help:      "evalia response duration",
	})

	resSize := prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "evalia",
		Subsystem: "response",
		Name:      "size_histogram",
		Help:      "evalia response size",
	})

	reqSize := prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "evalia",
		Subsystem: "request",
		Name:      "size_hist",
		Help:      "Request size instrumenter",
	})

	colls := []prometheus.Collector{counterVec, resTime, resSize, reqSize}
	for _, v := range colls {
		if err := prometheus.Register(v); err != nil {
			panic(err)
		}
	}
	return func(c *gin.Context) {
		if c.Request.URL.Path == "/metrics" {
			c.Next()
			return
		}
		start := time.Now()
		c.Next()
		duration := float64(time.Since(start)) * 1e-6 // to millisecond

		status := strconv.Itoa(c.Writer.Status())
		counterVec.WithLabelValues(status, c.Request.Method, c.HandlerName(), c.Request.Host, c.Request.URL.Path).Inc()
		resTime.Observe(duration)
		resSize.Observe(float64(c.Writer.Size()))
		reqSize.Observe(float64(c.Request.ContentLength))
	}
}
