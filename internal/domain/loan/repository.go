package loan

import (
	"context"
	"time"
)

// Repository 借阅记录仓储接口
// 设计说明:
// 1. 同一读者对同一图书最多只有一条未归还记录,由存储层保证
// 2. 查询不到时返回ErrLoanNotFound/ErrNoActiveLoan,其它错误视为存储故障
type Repository interface {
	// CountOutstanding 统计读者未归还的借阅册数
	CountOutstanding(ctx context.Context, patronID string) (int, error)

	// Create 写入借阅记录,成功后回填ID
	Create(ctx context.Context, loan *Loan) error

	// MarkReturned 为读者该书的未归还记录写入归还时间
	// 没有匹配记录时返回ErrNoActiveLoan
	MarkReturned(ctx context.Context, patronID string, bookID uint, returnedAt time.Time) error

	// ListByPatron 返回读者全部借阅记录(含已归还),带书名与ISBN
	ListByPatron(ctx context.Context, patronID string) ([]*Loan, error)

	// FindByPatronAndBook 查找读者该书的借阅记录
	// 优先返回未归还记录,否则返回最近一次借阅;都没有时返回ErrLoanNotFound
	FindByPatronAndBook(ctx context.Context, patronID string, bookID uint) (*Loan, error)
}
