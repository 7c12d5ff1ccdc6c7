package lending

import (
	"context"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/xiebiao/library/internal/domain/book"
	"github.com/xiebiao/library/internal/domain/event"
	"github.com/xiebiao/library/internal/domain/fee"
	"github.com/xiebiao/library/internal/domain/loan"
	"github.com/xiebiao/library/pkg/logger"
	"github.com/xiebiao/library/pkg/metrics"
	"github.com/xiebiao/library/pkg/tracing"
)

// BorrowBookUseCase 借书用例
type BorrowBookUseCase struct {
	bookRepo book.Repository
	loanRepo loan.Repository
	events   event.Publisher
	log      *zap.Logger
	now      Clock
}

// NewBorrowBookUseCase 创建借书用例,clock为nil时使用time.Now
func NewBorrowBookUseCase(
	bookRepo book.Repository,
	loanRepo loan.Repository,
	events event.Publisher,
	log *zap.Logger,
	clock Clock,
) *BorrowBookUseCase {
	return &BorrowBookUseCase{
		bookRepo: bookRepo,
		loanRepo: loanRepo,
		events:   events,
		log:      log,
		now:      orNow(clock),
	}
}

// BorrowBookRequest 借书请求DTO
type BorrowBookRequest struct {
	PatronID string
	BookID   uint
}

// BorrowBookResponse 借书响应DTO
type BorrowBookResponse struct {
	LoanID   uint   `json:"loan_id"`
	PatronID string `json:"patron_id"`
	BookID   uint   `json:"book_id"`
	Title    string `json:"title"`
	DueDate  string `json:"due_date"`
	Message  string `json:"message"`
}

// Execute 执行借书
// 校验顺序:读者证号 → 图书存在 → 有可借副本 → 未超借阅上限
func (uc *BorrowBookUseCase) Execute(ctx context.Context, req BorrowBookRequest) (resp *BorrowBookResponse, err error) {
	ctx, span := tracing.StartSpan(ctx, "lending.Borrow")
	defer span.End()
	span.SetAttributes(attribute.String("patron_id", req.PatronID), attribute.Int("book_id", int(req.BookID)))
	defer func() {
		tracing.RecordError(span, err)
		metrics.RecordLoan(resultOf(err))
	}()

	log := logger.FromContext(ctx, uc.log).With(zap.String("patron_id", req.PatronID), zap.Uint("book_id", req.BookID))

	// 1. 读者证号
	if err := loan.ValidatePatronID(req.PatronID); err != nil {
		return nil, err
	}

	// 2. 图书存在且有可借副本
	b, err := findBook(ctx, uc.bookRepo, req.BookID, book.ErrBookNotFound)
	if err != nil {
		return nil, err
	}
	if !b.IsAvailable() {
		return nil, loan.ErrNotAvailable
	}

	// 3. 借阅上限
	outstanding, err := uc.loanRepo.CountOutstanding(ctx, req.PatronID)
	if err != nil {
		log.Error("统计在借册数失败", zap.Error(err))
		return nil, loan.ErrCountFailed.WithCause(err)
	}
	if !loan.CanBorrowMore(outstanding) {
		return nil, loan.ErrBorrowLimit
	}

	// 4. 写借阅记录,失败则不扣减可借册数
	// 同一读者同一本书只能有一条未归还记录,由仓储保证
	l := loan.NewLoan(req.PatronID, req.BookID, uc.now())
	if err := uc.loanRepo.Create(ctx, l); err != nil {
		if errors.Is(err, loan.ErrAlreadyBorrowed) {
			return nil, loan.ErrAlreadyBorrowed
		}
		log.Error("写入借阅记录失败", zap.Error(err))
		return nil, loan.ErrCreateFailed.WithCause(err)
	}

	// 5. 可借册数-1,失败时借阅记录保留
	if err := uc.bookRepo.UpdateAvailability(ctx, req.BookID, -1); err != nil {
		log.Error("借阅记录已写入但可借册数未扣减",
			zap.Uint("loan_id", l.ID),
			zap.Error(err),
		)
		metrics.RecordDivergence("borrow")
		return nil, loan.ErrDecrementFailed.WithCause(err)
	}

	dueDate := l.DueAt.Format(fee.DateLayout)
	log.Info("借书成功", zap.Uint("loan_id", l.ID), zap.String("due_date", dueDate))

	publish(ctx, uc.events, uc.log, event.LoanBorrowed{
		LoanID:   l.ID,
		PatronID: l.PatronID,
		BookID:   l.BookID,
		Title:    b.Title,
		DueAt:    l.DueAt,
		At:       l.BorrowedAt,
	})

	return &BorrowBookResponse{
		LoanID:   l.ID,
		PatronID: l.PatronID,
		BookID:   l.BookID,
		Title:    b.Title,
		DueDate:  dueDate,
		Message:  fmt.Sprintf(`Successfully borrowed "%s". Due date: %s.`, b.Title, dueDate),
	}, nil
}
