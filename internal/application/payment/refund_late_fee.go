package payment

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/xiebiao/library/internal/domain/event"
	"github.com/xiebiao/library/internal/domain/payment"
	"github.com/xiebiao/library/pkg/logger"
	"github.com/xiebiao/library/pkg/metrics"
	"github.com/xiebiao/library/pkg/tracing"
)

// RefundLateFeeUseCase 滞纳金退款用例
type RefundLateFeeUseCase struct {
	gateway payment.Gateway
	events  event.Publisher
	log     *zap.Logger
	now     func() time.Time
}

// NewRefundLateFeeUseCase 创建退款用例,clock为nil时使用time.Now
func NewRefundLateFeeUseCase(gateway payment.Gateway, events event.Publisher, log *zap.Logger, clock func() time.Time) *RefundLateFeeUseCase {
	if clock == nil {
		clock = time.Now
	}
	return &RefundLateFeeUseCase{
		gateway: gateway,
		events:  events,
		log:     log,
		now:     clock,
	}
}

// RefundLateFeeRequest 退款请求DTO
type RefundLateFeeRequest struct {
	TransactionID string
	Amount        decimal.Decimal
}

// RefundLateFeeResponse 退款响应DTO
type RefundLateFeeResponse struct {
	TransactionID string `json:"transaction_id"`
	Amount        string `json:"amount"`
	Message       string `json:"message"`
}

// Execute 执行退款
// 校验:交易号非空,0 < 金额 <= 15
func (uc *RefundLateFeeUseCase) Execute(ctx context.Context, req RefundLateFeeRequest) (resp *RefundLateFeeResponse, err error) {
	ctx, span := tracing.StartSpan(ctx, "payment.Refund")
	defer span.End()
	span.SetAttributes(attribute.String("transaction_id", req.TransactionID))
	defer func() { tracing.RecordError(span, err) }()

	log := logger.FromContext(ctx, uc.log).With(zap.String("transaction_id", req.TransactionID))

	// 1. 参数校验
	if err := payment.ValidateRefund(req.TransactionID, req.Amount); err != nil {
		metrics.RecordPayment(kindRefund, resultRejected)
		return nil, err
	}
	amount := req.Amount.StringFixed(2)

	// 2. 调用网关
	result, err := callGateway(kindRefund, func() (*payment.GatewayResult, error) {
		return uc.gateway.Refund(ctx, payment.RefundRequest{
			TransactionID: req.TransactionID,
			Amount:        req.Amount,
		})
	})
	if err != nil {
		log.Error("退款时网关故障", zap.String("amount", amount), zap.Error(err))
		metrics.RecordPayment(kindRefund, resultError)
		return nil, payment.RefundError(err)
	}
	if !result.Approved {
		log.Warn("网关拒绝退款", zap.String("reason", result.Message))
		metrics.RecordPayment(kindRefund, resultDeclined)
		return nil, payment.RefundDeclined(reasonOf(result))
	}

	// 3. 成功
	metrics.RecordPayment(kindRefund, resultApproved)
	log.Info("退款成功", zap.String("amount", amount))
	publish(ctx, uc.events, uc.log, event.FeeRefunded{
		TransactionID: req.TransactionID,
		Amount:        amount,
		At:            uc.now(),
	})

	return &RefundLateFeeResponse{
		TransactionID: req.TransactionID,
		Amount:        amount,
		Message:       fmt.Sprintf("Refund of $%s processed successfully.", amount),
	}, nil
}
