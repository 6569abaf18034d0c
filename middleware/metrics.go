package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus 指标
var (
	// HTTP 请求计数（按路由和状态码）
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "finpal_http_requests_total",
			Help: "Total number of HTTP requests by route and status",
		},
		[]string{"method", "route", "status"},
	)

	// HTTP 请求耗时
	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "finpal_http_request_duration_seconds",
			Help:    "HTTP request latency by route",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	// 新建消费记录计数
	expensesCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "finpal_expenses_created_total",
			Help: "Total number of expenses created",
		},
	)

	// 登录成功计数
	loginsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "finpal_logins_total",
			Help: "Total number of successful logins",
		},
	)
)

// Metrics HTTP 指标采集中间件
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			// 未匹配的路由统一归并，避免指标基数膨胀
			route = "unmatched"
		}
		httpRequestsTotal.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
		httpRequestDuration.WithLabelValues(c.Request.Method, route).Observe(time.Since(start).Seconds())
	}
}

// CountExpenseCreated 记录一次消费记录创建
func CountExpenseCreated() {
	expensesCreated.Inc()
}

// CountLogin 记录一次登录成功
func CountLogin() {
	loginsTotal.Inc()
}
