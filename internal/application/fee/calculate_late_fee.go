package fee

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/xiebiao/library/internal/domain/fee"
	"github.com/xiebiao/library/pkg/metrics"
	"github.com/xiebiao/library/pkg/tracing"
)

// CalculateLateFeeUseCase 单册滞纳金查询用例
type CalculateLateFeeUseCase struct {
	feeService fee.Service
	now        func() time.Time
}

// NewCalculateLateFeeUseCase 创建滞纳金查询用例,clock为nil时使用time.Now
func NewCalculateLateFeeUseCase(feeService fee.Service, clock func() time.Time) *CalculateLateFeeUseCase {
	if clock == nil {
		clock = time.Now
	}
	return &CalculateLateFeeUseCase{feeService: feeService, now: clock}
}

// CalculateLateFeeRequest 查询请求DTO
type CalculateLateFeeRequest struct {
	PatronID string
	BookID   uint
}

// CalculateLateFeeResponse 查询响应DTO
// Amount序列化为两位小数的字符串,如"1.25"
type CalculateLateFeeResponse struct {
	PatronID    string `json:"patron_id"`
	BookID      uint   `json:"book_id"`
	Amount      string `json:"fee_amount"`
	DaysOverdue int    `json:"days_overdue"`
	Status      string `json:"status"`
}

// Execute 执行查询
func (uc *CalculateLateFeeUseCase) Execute(ctx context.Context, req CalculateLateFeeRequest) (*CalculateLateFeeResponse, error) {
	ctx, span := tracing.StartSpan(ctx, "fee.Calculate")
	defer span.End()
	span.SetAttributes(attribute.String("patron_id", req.PatronID), attribute.Int("book_id", int(req.BookID)))

	a, err := uc.feeService.Calculate(ctx, req.PatronID, req.BookID, uc.now())
	if err != nil {
		tracing.RecordError(span, err)
		return nil, err
	}

	if a.HasFee() {
		metrics.ObserveLateFee(a.Amount.InexactFloat64())
	}
	span.SetAttributes(attribute.String("status", string(a.Status)))

	return &CalculateLateFeeResponse{
		PatronID:    req.PatronID,
		BookID:      req.BookID,
		Amount:      a.Amount.StringFixed(2),
		DaysOverdue: a.DaysOverdue,
		Status:      string(a.Status),
	}, nil
}
