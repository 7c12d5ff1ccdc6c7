package payment

import (
	"context"
	"errors"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/xiebiao/library/internal/domain/book"
	"github.com/xiebiao/library/internal/domain/event"
	"github.com/xiebiao/library/internal/domain/fee"
	"github.com/xiebiao/library/internal/domain/loan"
	"github.com/xiebiao/library/internal/domain/payment"
	apperrors "github.com/xiebiao/library/pkg/errors"
	"github.com/xiebiao/library/pkg/logger"
	"github.com/xiebiao/library/pkg/metrics"
	"github.com/xiebiao/library/pkg/tracing"
)

// PayLateFeeUseCase 缴纳滞纳金用例
type PayLateFeeUseCase struct {
	feeService fee.Service
	bookRepo   book.Repository
	gateway    payment.Gateway
	events     event.Publisher
	log        *zap.Logger
	now        func() time.Time
}

// NewPayLateFeeUseCase 创建缴费用例,clock为nil时使用time.Now
func NewPayLateFeeUseCase(
	feeService fee.Service,
	bookRepo book.Repository,
	gateway payment.Gateway,
	events event.Publisher,
	log *zap.Logger,
	clock func() time.Time,
) *PayLateFeeUseCase {
	if clock == nil {
		clock = time.Now
	}
	return &PayLateFeeUseCase{
		feeService: feeService,
		bookRepo:   bookRepo,
		gateway:    gateway,
		events:     events,
		log:        log,
		now:        clock,
	}
}

// PayLateFeeRequest 缴费请求DTO
type PayLateFeeRequest struct {
	PatronID string
	BookID   uint
}

// PayLateFeeResponse 缴费响应DTO
type PayLateFeeResponse struct {
	TransactionID string `json:"transaction_id"`
	Amount        string `json:"amount"`
	Message       string `json:"message"`
}

// PaymentSuccessful 扣款成功文案
const PaymentSuccessful = "Payment successful."

// Execute 执行缴费
// 失败时不返回交易号;网关拒绝与网关故障分别对应不同错误码
func (uc *PayLateFeeUseCase) Execute(ctx context.Context, req PayLateFeeRequest) (resp *PayLateFeeResponse, err error) {
	ctx, span := tracing.StartSpan(ctx, "payment.PayLateFee")
	defer span.End()
	span.SetAttributes(attribute.String("patron_id", req.PatronID), attribute.Int("book_id", int(req.BookID)))
	defer func() { tracing.RecordError(span, err) }()

	log := logger.FromContext(ctx, uc.log).With(zap.String("patron_id", req.PatronID), zap.Uint("book_id", req.BookID))

	// 1. 读者证号
	if err := loan.ValidatePatronID(req.PatronID); err != nil {
		metrics.RecordPayment(kindCharge, resultRejected)
		return nil, err
	}

	// 2. 应缴金额,为0时不调用网关
	assessment, err := uc.feeService.Calculate(ctx, req.PatronID, req.BookID, uc.now())
	if err != nil {
		return nil, err
	}
	if !assessment.HasFee() {
		metrics.RecordPayment(kindCharge, resultRejected)
		return nil, payment.ErrNoFeeDue
	}

	// 3. 图书(用于扣款描述)
	b, err := uc.bookRepo.FindByID(ctx, req.BookID)
	if err != nil {
		if errors.Is(err, book.ErrBookNotFound) {
			return nil, book.ErrBookNotFound
		}
		return nil, apperrors.ErrDatabaseError.WithCause(err)
	}

	// 4. 调用网关
	result, err := callGateway(kindCharge, func() (*payment.GatewayResult, error) {
		return uc.gateway.Charge(ctx, payment.ChargeRequest{
			PatronID:    req.PatronID,
			Amount:      assessment.Amount,
			Description: payment.Description(b.Title),
		})
	})
	if err != nil {
		log.Error("扣款时网关故障", zap.String("amount", assessment.Amount.StringFixed(2)), zap.Error(err))
		metrics.RecordPayment(kindCharge, resultError)
		return nil, payment.PaymentError(err)
	}
	if !result.Approved {
		log.Warn("网关拒绝扣款", zap.String("reason", result.Message))
		metrics.RecordPayment(kindCharge, resultDeclined)
		return nil, payment.PaymentDeclined(reasonOf(result))
	}

	// 5. 成功
	metrics.RecordPayment(kindCharge, resultApproved)
	amount := assessment.Amount.StringFixed(2)
	log.Info("滞纳金已缴纳", zap.String("transaction_id", result.TransactionID), zap.String("amount", amount))

	publish(ctx, uc.events, uc.log, event.FeePaid{
		PatronID:      req.PatronID,
		BookID:        req.BookID,
		TransactionID: result.TransactionID,
		Amount:        amount,
		At:            uc.now(),
	})

	return &PayLateFeeResponse{
		TransactionID: result.TransactionID,
		Amount:        amount,
		Message:       PaymentSuccessful,
	}, nil
}
