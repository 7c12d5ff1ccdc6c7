package mysql

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/xiebiao/library/internal/domain/loan"
	apperrors "github.com/xiebiao/library/pkg/errors"
)

// loanRepository 借阅记录仓储实现(MySQL)
type loanRepository struct {
	db *gorm.DB
}

// NewLoanRepository 创建借阅记录仓储
func NewLoanRepository(db *gorm.DB) loan.Repository {
	return &loanRepository{db: db}
}

// loanRow 借阅记录联表查询结果(带书名与ISBN)
type loanRow struct {
	ID         uint
	PatronID   string
	BookID     uint
	BorrowedAt time.Time
	DueAt      time.Time
	ReturnedAt *time.Time
	Title      string
	ISBN       string
}

// CountOutstanding 统计读者未归还的册数
func (r *loanRepository) CountOutstanding(ctx context.Context, patronID string) (int, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&LoanModel{}).
		Where("patron_id = ? AND returned_at IS NULL", patronID).
		Count(&count).Error
	if err != nil {
		return 0, apperrors.Wrap(err, "统计在借册数失败")
	}
	return int(count), nil
}

// Create 写入借阅记录
// 已有未归还记录时uk_active_loan冲突,返回ErrAlreadyBorrowed
func (r *loanRepository) Create(ctx context.Context, l *loan.Loan) error {
	model := &LoanModel{
		PatronID:   l.PatronID,
		BookID:     l.BookID,
		BorrowedAt: l.BorrowedAt,
		DueAt:      l.DueAt,
		ReturnedAt: l.ReturnedAt,
	}

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		if isDuplicateError(err) {
			return loan.ErrAlreadyBorrowed.WithCause(err)
		}
		return apperrors.Wrap(err, "创建借阅记录失败")
	}

	l.ID = model.ID
	return nil
}

// MarkReturned 为最早一条未归还记录写入归还时间
// 1. 先按借出时间找到未归还记录
// 2. 再按主键更新,避免依赖UPDATE ... ORDER BY LIMIT
func (r *loanRepository) MarkReturned(ctx context.Context, patronID string, bookID uint, returnedAt time.Time) error {
	var model LoanModel
	err := r.db.WithContext(ctx).
		Where("patron_id = ? AND book_id = ? AND returned_at IS NULL", patronID, bookID).
		Order("borrowed_at ASC").
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return loan.ErrNoActiveLoan
		}
		return apperrors.Wrap(err, "查询借阅记录失败")
	}

	result := r.db.WithContext(ctx).
		Model(&LoanModel{}).
		Where("id = ? AND returned_at IS NULL", model.ID).
		Update("returned_at", returnedAt)
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "更新归还时间失败")
	}
	// 两次查询之间被其它请求归还
	if result.RowsAffected == 0 {
		return loan.ErrNoActiveLoan
	}
	return nil
}

// ListByPatron 返回读者全部借阅记录,按借出顺序
// LEFT JOIN保证图书被删除后借阅记录仍然可见(书名为空)
func (r *loanRepository) ListByPatron(ctx context.Context, patronID string) ([]*loan.Loan, error) {
	var rows []loanRow
	err := r.db.WithContext(ctx).
		Table("loans").
		Select("loans.id, loans.patron_id, loans.book_id, loans.borrowed_at, loans.due_at, loans.returned_at, books.title, books.isbn").
		Joins("LEFT JOIN books ON books.id = loans.book_id").
		Where("loans.patron_id = ?", patronID).
		Order("loans.borrowed_at ASC, loans.id ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "查询借阅记录失败")
	}

	loans := make([]*loan.Loan, len(rows))
	for i := range rows {
		loans[i] = rows[i].toEntity()
	}
	return loans, nil
}

// FindByPatronAndBook 查找读者该书的借阅记录
// 未归还记录优先,其次是最近一次借阅
func (r *loanRepository) FindByPatronAndBook(ctx context.Context, patronID string, bookID uint) (*loan.Loan, error) {
	var model LoanModel
	err := r.db.WithContext(ctx).
		Where("patron_id = ? AND book_id = ?", patronID, bookID).
		Order("returned_at IS NULL DESC").
		Order("borrowed_at DESC").
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, loan.ErrLoanNotFound
		}
		return nil, apperrors.Wrap(err, "查询借阅记录失败")
	}

	return toLoanEntity(&model), nil
}

// toLoanEntity GORM模型 → 领域实体
func toLoanEntity(m *LoanModel) *loan.Loan {
	return &loan.Loan{
		ID:         m.ID,
		PatronID:   m.PatronID,
		BookID:     m.BookID,
		BorrowedAt: m.BorrowedAt,
		DueAt:      m.DueAt,
		ReturnedAt: m.ReturnedAt,
	}
}

func (r *loanRow) toEntity() *loan.Loan {
	return &loan.Loan{
		ID:         r.ID,
		PatronID:   r.PatronID,
		BookID:     r.BookID,
		Title:      r.Title,
		ISBN:       r.ISBN,
		BorrowedAt: r.BorrowedAt,
		DueAt:      r.DueAt,
		ReturnedAt: r.ReturnedAt,
	}
}
