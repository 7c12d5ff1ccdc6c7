package gateway

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/xiebiao/library/internal/domain/payment"
	"github.com/xiebiao/library/internal/infrastructure/config"
	"github.com/xiebiao/library/pkg/circuitbreaker"
	"github.com/xiebiao/library/pkg/metrics"
)

// breakerName 网关熔断器名称(指标标签)
const breakerName = "payment_gateway"

// GuardOptions 网关保护参数
type GuardOptions struct {
	RateLimit float64       // 每秒请求数,<=0表示不限流
	Burst     int           // 令牌桶容量
	Timeout   time.Duration // 单次调用超时,<=0表示不设置
	Breaker   circuitbreaker.Config
}

// Guarded 为任意支付网关加上限流、超时与熔断
// 1. 限流:令牌桶,Wait受ctx控制
// 2. 熔断:只有网关故障(error)计为失败,明确拒绝不计
// 3. 熔断打开时直接返回circuitbreaker.ErrOpenState
type Guarded struct {
	next    payment.Gateway
	limiter *rate.Limiter
	breaker *circuitbreaker.CircuitBreaker
	timeout time.Duration
	log     *zap.Logger
}

// NewGuarded 创建带保护的网关
func NewGuarded(next payment.Gateway, opts GuardOptions, log *zap.Logger) *Guarded {
	if log == nil {
		log = zap.NewNop()
	}

	g := &Guarded{
		next:    next,
		breaker: circuitbreaker.NewCircuitBreaker(breakerName, opts.Breaker),
		timeout: opts.Timeout,
		log:     log,
	}
	if opts.RateLimit > 0 {
		burst := opts.Burst
		if burst <= 0 {
			burst = 1
		}
		g.limiter = rate.NewLimiter(rate.Limit(opts.RateLimit), burst)
	}

	g.breaker.SetStateChangeCallback(func(name string, from, to circuitbreaker.State) {
		metrics.SetBreakerState(name, float64(to))
		log.Warn("支付网关熔断器状态变化",
			zap.String("name", name),
			zap.String("from", from.String()),
			zap.String("to", to.String()),
		)
	})
	metrics.SetBreakerState(breakerName, float64(circuitbreaker.StateClosed))
	return g
}

// Charge 扣款
func (g *Guarded) Charge(ctx context.Context, req payment.ChargeRequest) (*payment.GatewayResult, error) {
	return g.call(ctx, func(ctx context.Context) (*payment.GatewayResult, error) {
		return g.next.Charge(ctx, req)
	})
}

// Refund 退款
func (g *Guarded) Refund(ctx context.Context, req payment.RefundRequest) (*payment.GatewayResult, error) {
	return g.call(ctx, func(ctx context.Context) (*payment.GatewayResult, error) {
		return g.next.Refund(ctx, req)
	})
}

// State 熔断器当前状态
func (g *Guarded) State() circuitbreaker.State {
	return g.breaker.State()
}

func (g *Guarded) call(ctx context.Context, fn func(ctx context.Context) (*payment.GatewayResult, error)) (*payment.GatewayResult, error) {
	// 1. 限流
	if g.limiter != nil {
		if err := g.limiter.Wait(ctx); err != nil {
			metrics.RecordBreakerRequest(breakerName, "rate_limited")
			return nil, fmt.Errorf("gateway rate limit: %w", err)
		}
	}

	// 2. 超时
	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	// 3. 熔断保护下调用
	var result *payment.GatewayResult
	err := g.breaker.Execute(func() error {
		r, err := fn(ctx)
		result = r
		return err
	})

	switch {
	case errors.Is(err, circuitbreaker.ErrOpenState):
		metrics.RecordBreakerRequest(breakerName, "rejected")
		return nil, err
	case err != nil:
		metrics.RecordBreakerRequest(breakerName, "failure")
		return nil, err
	}
	metrics.RecordBreakerRequest(breakerName, "success")
	return result, nil
}

// New 按配置创建支付网关
func New(cfg config.GatewayConfig, log *zap.Logger) (payment.Gateway, error) {
	var backend payment.Gateway
	switch cfg.Mode {
	case "mock":
		backend = NewMock(decimal.NewFromFloat(cfg.MaxCharge))
	default:
		return nil, fmt.Errorf("不支持的支付网关: %s", cfg.Mode)
	}

	threshold := cfg.Breaker.FailureThreshold
	return NewGuarded(backend, GuardOptions{
		RateLimit: cfg.RateLimit,
		Burst:     cfg.Burst,
		Timeout:   cfg.Timeout,
		Breaker: circuitbreaker.Config{
			MaxRequests: cfg.Breaker.MaxRequests,
			Interval:    cfg.Breaker.Interval,
			Timeout:     cfg.Breaker.Timeout,
			ReadyToTrip: func(c circuitbreaker.Counts) bool {
				return c.ConsecutiveFailures >= threshold
			},
		},
	}, log), nil
}
