// Package payment 滞纳金缴纳与退款用例
package payment

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/xiebiao/library/internal/domain/event"
	"github.com/xiebiao/library/internal/domain/payment"
	"github.com/xiebiao/library/pkg/logger"
	"github.com/xiebiao/library/pkg/metrics"
)

// 指标标签
const (
	kindCharge = "charge"
	kindRefund = "refund"

	resultApproved = "approved"
	resultDeclined = "declined"
	resultError    = "error"
	resultRejected = "rejected"
)

// errEmptyResult 网关既没有返回结果也没有返回错误
var errEmptyResult = errors.New("empty gateway response")

// declineReason 网关未给出原因时使用的默认文案
const declineReason = "declined by payment gateway"

func reasonOf(r *payment.GatewayResult) string {
	if r.Message == "" {
		return declineReason
	}
	return r.Message
}

// callGateway 调用网关并记录耗时,统一处理空结果
func callGateway(kind string, fn func() (*payment.GatewayResult, error)) (*payment.GatewayResult, error) {
	start := time.Now()
	r, err := fn()
	metrics.ObserveGateway(kind, time.Since(start))
	if err == nil && r == nil {
		err = errEmptyResult
	}
	return r, err
}

func publish(ctx context.Context, p event.Publisher, log *zap.Logger, e event.Event) {
	if p == nil {
		return
	}
	if err := p.Publish(ctx, e); err != nil {
		logger.FromContext(ctx, log).Warn("事件发布失败", zap.String("routing_key", e.RoutingKey()), zap.Error(err))
	}
}
