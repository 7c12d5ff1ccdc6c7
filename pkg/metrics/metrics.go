// Package metrics 基于Prometheus的指标收集
//
// 指标分三类:
// - HTTP: 请求数、耗时、处理中请求数
// - 业务: 借阅、归还、滞纳金缴纳/退款、库存不一致次数
// - 基础设施: 熔断器状态、支付网关调用、缓存命中、消息发布
//
// 使用方式:
//
//	metrics.InitMetrics()
//	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
//
// 未调用InitMetrics时所有Record*函数为空操作,单元测试无需初始化
package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	initOnce    sync.Once
	initialized bool

	// HTTPRequestsTotal HTTP请求总数
	// 标签:method、path、status
	HTTPRequestsTotal *prometheus.CounterVec

	// HTTPRequestDuration HTTP请求耗时(秒)
	HTTPRequestDuration *prometheus.HistogramVec

	// HTTPRequestsInProgress 正在处理的HTTP请求数
	HTTPRequestsInProgress prometheus.Gauge

	// LoansTotal 借阅请求总数
	// 标签:result(success/rejected/error)
	LoansTotal *prometheus.CounterVec

	// ReturnsTotal 还书请求总数
	// 标签:result(success/rejected/error)
	ReturnsTotal *prometheus.CounterVec

	// AvailabilityDivergenceTotal 借阅记录已写入但可借册数未同步的次数
	// 标签:operation(borrow/return)
	AvailabilityDivergenceTotal *prometheus.CounterVec

	// LateFeeAmount 计算出的单笔滞纳金分布
	LateFeeAmount prometheus.Histogram

	// PaymentsTotal 支付网关业务结果
	// 标签:kind(charge/refund)、result(approved/declined/error/rejected)
	PaymentsTotal *prometheus.CounterVec

	// GatewayRequestDuration 支付网关调用耗时(秒)
	// 标签:kind(charge/refund)
	GatewayRequestDuration *prometheus.HistogramVec

	// CircuitBreakerState 熔断器状态
	// 0=CLOSED, 1=OPEN, 2=HALF_OPEN
	CircuitBreakerState *prometheus.GaugeVec

	// CircuitBreakerRequests 熔断器请求总数
	// 标签:name、result(success/failure/rejected)
	CircuitBreakerRequests *prometheus.CounterVec

	// CacheRequestsTotal 图书缓存访问
	// 标签:result(hit/miss/error)
	CacheRequestsTotal *prometheus.CounterVec

	// MessagesPublishedTotal 消息发布总数
	// 标签:exchange、routing_key、result(success/failure)
	MessagesPublishedTotal *prometheus.CounterVec
)

// InitMetrics 初始化并注册全部指标到默认Registry,重复调用无副作用
func InitMetrics() {
	initOnce.Do(register)
}

func register() {
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "HTTP请求总数",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP请求耗时(秒)",
			Buckets: []float64{0.001, 0.01, 0.1, 0.5, 1, 5, 10},
		},
		[]string{"method", "path"},
	)

	HTTPRequestsInProgress = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_requests_in_progress",
			Help: "正在处理的HTTP请求数",
		},
	)

	LoansTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "library_loans_total",
			Help: "借阅请求总数",
		},
		[]string{"result"},
	)

	ReturnsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "library_returns_total",
			Help: "还书请求总数",
		},
		[]string{"result"},
	)

	AvailabilityDivergenceTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "library_availability_divergence_total",
			Help: "借阅记录与可借册数不一致次数",
		},
		[]string{"operation"},
	)

	// 0.25/天,桶覆盖1天到半年
	LateFeeAmount = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "library_late_fee_amount",
			Help:    "单笔滞纳金金额",
			Buckets: []float64{0.25, 1, 2.5, 5, 10, 15, 25, 50},
		},
	)

	PaymentsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "library_payments_total",
			Help: "支付网关业务结果",
		},
		[]string{"kind", "result"},
	)

	GatewayRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "payment_gateway_request_duration_seconds",
			Help:    "支付网关调用耗时(秒)",
			Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 5},
		},
		[]string{"kind"},
	)

	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "熔断器状态(0=CLOSED, 1=OPEN, 2=HALF_OPEN)",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_requests_total",
			Help: "熔断器请求总数",
		},
		[]string{"name", "result"},
	)

	CacheRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "book_cache_requests_total",
			Help: "图书缓存访问次数",
		},
		[]string{"result"},
	)

	MessagesPublishedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "messages_published_total",
			Help: "消息发布总数",
		},
		[]string{"exchange", "routing_key", "result"},
	)

	initialized = true
}

// =========================================
// 记录函数(未初始化时为空操作)
// =========================================

// RecordHTTPRequest 记录一次HTTP请求
func RecordHTTPRequest(method, path, status string, elapsed time.Duration) {
	if !initialized {
		return
	}
	HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, path).Observe(elapsed.Seconds())
}

// TrackInProgress 递增处理中请求数,返回的函数用于递减
func TrackInProgress() func() {
	if !initialized {
		return func() {}
	}
	HTTPRequestsInProgress.Inc()
	return HTTPRequestsInProgress.Dec
}

// RecordLoan 记录借阅结果
func RecordLoan(result string) {
	if initialized {
		LoansTotal.WithLabelValues(result).Inc()
	}
}

// RecordReturn 记录还书结果
func RecordReturn(result string) {
	if initialized {
		ReturnsTotal.WithLabelValues(result).Inc()
	}
}

// RecordDivergence 记录一次可借册数未同步
func RecordDivergence(operation string) {
	if initialized {
		AvailabilityDivergenceTotal.WithLabelValues(operation).Inc()
	}
}

// ObserveLateFee 记录滞纳金金额
func ObserveLateFee(amount float64) {
	if initialized {
		LateFeeAmount.Observe(amount)
	}
}

// RecordPayment 记录支付/退款结果
func RecordPayment(kind, result string) {
	if initialized {
		PaymentsTotal.WithLabelValues(kind, result).Inc()
	}
}

// ObserveGateway 记录网关调用耗时
func ObserveGateway(kind string, elapsed time.Duration) {
	if initialized {
		GatewayRequestDuration.WithLabelValues(kind).Observe(elapsed.Seconds())
	}
}

// SetBreakerState 记录熔断器状态
func SetBreakerState(name string, state float64) {
	if initialized {
		CircuitBreakerState.WithLabelValues(name).Set(state)
	}
}

// RecordBreakerRequest 记录熔断器请求结果
func RecordBreakerRequest(name, result string) {
	if initialized {
		CircuitBreakerRequests.WithLabelValues(name, result).Inc()
	}
}

// RecordCache 记录缓存访问
func RecordCache(result string) {
	if initialized {
		CacheRequestsTotal.WithLabelValues(result).Inc()
	}
}

// RecordPublish 记录消息发布
func RecordPublish(exchange, routingKey, result string) {
	if initialized {
		MessagesPublishedTotal.WithLabelValues(exchange, routingKey, result).Inc()
	}
}
