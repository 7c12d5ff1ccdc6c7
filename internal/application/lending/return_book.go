package lending

import (
	"context"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/xiebiao/library/internal/domain/book"
	"github.com/xiebiao/library/internal/domain/event"
	"github.com/xiebiao/library/internal/domain/loan"
	apperrors "github.com/xiebiao/library/pkg/errors"
	"github.com/xiebiao/library/pkg/logger"
	"github.com/xiebiao/library/pkg/metrics"
	"github.com/xiebiao/library/pkg/tracing"
)

// ReturnBookUseCase 还书用例
type ReturnBookUseCase struct {
	bookRepo book.Repository
	loanRepo loan.Repository
	events   event.Publisher
	log      *zap.Logger
	now      Clock
}

// NewReturnBookUseCase 创建还书用例,clock为nil时使用time.Now
func NewReturnBookUseCase(
	bookRepo book.Repository,
	loanRepo loan.Repository,
	events event.Publisher,
	log *zap.Logger,
	clock Clock,
) *ReturnBookUseCase {
	return &ReturnBookUseCase{
		bookRepo: bookRepo,
		loanRepo: loanRepo,
		events:   events,
		log:      log,
		now:      orNow(clock),
	}
}

// ReturnBookRequest 还书请求DTO
type ReturnBookRequest struct {
	PatronID string
	BookID   uint
}

// ReturnBookResponse 还书响应DTO
type ReturnBookResponse struct {
	PatronID   string `json:"patron_id"`
	BookID     uint   `json:"book_id"`
	Title      string `json:"title"`
	ReturnedAt string `json:"returned_at"`
	Message    string `json:"message"`
}

// Execute 执行还书
func (uc *ReturnBookUseCase) Execute(ctx context.Context, req ReturnBookRequest) (resp *ReturnBookResponse, err error) {
	ctx, span := tracing.StartSpan(ctx, "lending.Return")
	defer span.End()
	span.SetAttributes(attribute.String("patron_id", req.PatronID), attribute.Int("book_id", int(req.BookID)))
	defer func() {
		tracing.RecordError(span, err)
		metrics.RecordReturn(resultOf(err))
	}()

	log := logger.FromContext(ctx, uc.log).With(zap.String("patron_id", req.PatronID), zap.Uint("book_id", req.BookID))

	// 1. 读者证号
	if err := loan.ValidatePatronID(req.PatronID); err != nil {
		return nil, err
	}

	// 2. 图书存在
	b, err := findBook(ctx, uc.bookRepo, req.BookID, loan.ErrBookNotLocated)
	if err != nil {
		return nil, err
	}

	// 3. 写归还时间
	returnedAt := uc.now()
	if err := uc.loanRepo.MarkReturned(ctx, req.PatronID, req.BookID, returnedAt); err != nil {
		if errors.Is(err, loan.ErrNoActiveLoan) {
			return nil, loan.ErrNoActiveLoan
		}
		log.Error("写入归还时间失败", zap.Error(err))
		return nil, apperrors.ErrDatabaseError.WithCause(err)
	}

	// 4. 可借册数+1,失败时归还记录保留
	if err := uc.bookRepo.UpdateAvailability(ctx, req.BookID, 1); err != nil {
		log.Error("归还时间已写入但可借册数未增加", zap.Error(err))
		metrics.RecordDivergence("return")
		return nil, loan.ErrIncrementFailed.WithCause(err)
	}

	log.Info("还书成功")
	publish(ctx, uc.events, uc.log, event.LoanReturned{
		PatronID: req.PatronID,
		BookID:   req.BookID,
		Title:    b.Title,
		At:       returnedAt,
	})

	return &ReturnBookResponse{
		PatronID:   req.PatronID,
		BookID:     req.BookID,
		Title:      b.Title,
		ReturnedAt: returnedAt.Format("2006-01-02 15:04:05"),
		Message:    fmt.Sprintf(`Book "%s" has been returned.`, b.Title),
	}, nil
}
