package fee

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/xiebiao/library/internal/domain/fee"
	"github.com/xiebiao/library/pkg/tracing"
)

// PatronStatusUseCase 读者借阅状态报表用例
type PatronStatusUseCase struct {
	feeService fee.Service
	now        func() time.Time
}

// NewPatronStatusUseCase 创建报表用例,clock为nil时使用time.Now
func NewPatronStatusUseCase(feeService fee.Service, clock func() time.Time) *PatronStatusUseCase {
	if clock == nil {
		clock = time.Now
	}
	return &PatronStatusUseCase{feeService: feeService, now: clock}
}

// PatronStatusRequest 报表请求DTO
type PatronStatusRequest struct {
	PatronID string
}

// LoanItem 报表中的单条借阅
type LoanItem struct {
	BookID   uint   `json:"book_id"`
	Title    string `json:"book_title"`
	ISBN     string `json:"isbn"`
	DueDate  string `json:"due_date"`
	Returned bool   `json:"returned"`
	DaysLate int    `json:"days_late"`
	Fee      string `json:"fee"`
}

// PatronStatusResponse 报表响应DTO
type PatronStatusResponse struct {
	PatronID      string     `json:"patron_id"`
	BorrowedBooks []LoanItem `json:"borrowed_books"`
	Outstanding   int        `json:"outstanding"`
	TotalLateFees string     `json:"total_late_fees"`
}

// Execute 生成报表
// 记录顺序与仓储返回顺序一致
func (uc *PatronStatusUseCase) Execute(ctx context.Context, req PatronStatusRequest) (*PatronStatusResponse, error) {
	ctx, span := tracing.StartSpan(ctx, "fee.PatronStatus")
	defer span.End()
	span.SetAttributes(attribute.String("patron_id", req.PatronID))

	report, err := uc.feeService.Report(ctx, req.PatronID, uc.now())
	if err != nil {
		tracing.RecordError(span, err)
		return nil, err
	}

	items := make([]LoanItem, 0, len(report.Loans))
	for _, s := range report.Loans {
		items = append(items, LoanItem{
			BookID:   s.BookID,
			Title:    s.Title,
			ISBN:     s.ISBN,
			DueDate:  s.DueDate,
			Returned: s.Returned,
			DaysLate: s.DaysLate,
			Fee:      s.Fee.StringFixed(2),
		})
	}

	return &PatronStatusResponse{
		PatronID:      report.PatronID,
		BorrowedBooks: items,
		Outstanding:   report.Outstanding(),
		TotalLateFees: report.TotalFee.StringFixed(2),
	}, nil
}
