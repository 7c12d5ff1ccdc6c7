package fee

import (
	"context"
	"errors"
	"time"

	"github.com/xiebiao/library/internal/domain/book"
	"github.com/xiebiao/library/internal/domain/loan"
	apperrors "github.com/xiebiao/library/pkg/errors"
)

// Service 滞纳金领域服务
// 图书或借阅记录缺失不是错误,体现在Assessment.Status中;
// 只有存储故障才返回error
type Service interface {
	// Calculate 计算读者某本书截至now的滞纳金
	Calculate(ctx context.Context, patronID string, bookID uint, now time.Time) (Assessment, error)

	// Report 生成读者借阅状态报表
	Report(ctx context.Context, patronID string, now time.Time) (*Report, error)
}

type service struct {
	bookRepo book.Repository
	loanRepo loan.Repository
}

// NewService 创建滞纳金领域服务
func NewService(bookRepo book.Repository, loanRepo loan.Repository) Service {
	return &service{bookRepo: bookRepo, loanRepo: loanRepo}
}

func (s *service) Calculate(ctx context.Context, patronID string, bookID uint, now time.Time) (Assessment, error) {
	// 1. 图书
	if _, err := s.bookRepo.FindByID(ctx, bookID); err != nil {
		if errors.Is(err, book.ErrBookNotFound) {
			return NotFound(StatusBookNotFound), nil
		}
		return Assessment{}, apperrors.ErrDatabaseError.WithCause(err)
	}

	// 2. 借阅记录(没有应还时间的记录视为缺失)
	l, err := s.loanRepo.FindByPatronAndBook(ctx, patronID, bookID)
	if err != nil {
		if errors.Is(err, loan.ErrLoanNotFound) {
			return NotFound(StatusLoanNotFound), nil
		}
		return Assessment{}, apperrors.ErrDatabaseError.WithCause(err)
	}
	if l == nil || l.DueAt.IsZero() {
		return NotFound(StatusLoanNotFound), nil
	}

	// 3. 归还时间或当前时间为参照
	return Assess(l, now), nil
}

func (s *service) Report(ctx context.Context, patronID string, now time.Time) (*Report, error) {
	loans, err := s.loanRepo.ListByPatron(ctx, patronID)
	if err != nil {
		return nil, apperrors.ErrDatabaseError.WithCause(err)
	}
	return BuildReport(patronID, loans, now), nil
}
