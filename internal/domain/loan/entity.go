package loan

import (
	"time"
)

const (
	// LoanPeriodDays 借阅期限(天),应还日期 = 借出日期 + 14天
	LoanPeriodDays = 14
	// MaxOutstandingLoans 每位读者同时在借的最大册数
	MaxOutstandingLoans = 5
	// PatronIDLength 读者证号长度
	PatronIDLength = 6
)

// Loan 借阅记录
// 设计说明:
// 1. 一条记录对应读者借出的一册图书
// 2. ReturnedAt为nil表示尚未归还
// 3. Title/ISBN由仓储联表查询填充,仅用于报表展示,写入时忽略
type Loan struct {
	ID         uint
	PatronID   string     // 6位数字读者证号
	BookID     uint       // 图书ID
	Title      string     // 书名(只读,联表)
	ISBN       string     // ISBN(只读,联表)
	BorrowedAt time.Time  // 借出时间
	DueAt      time.Time  // 应还时间
	ReturnedAt *time.Time // 归还时间,未归还为nil
}

// NewLoan 创建借阅记录(工厂方法)
// 应还时间按日历日推算,与借出时间保持相同的钟点
func NewLoan(patronID string, bookID uint, borrowedAt time.Time) *Loan {
	return &Loan{
		PatronID:   patronID,
		BookID:     bookID,
		BorrowedAt: borrowedAt,
		DueAt:      DueDate(borrowedAt),
	}
}

// DueDate 根据借出时间计算应还时间
func DueDate(borrowedAt time.Time) time.Time {
	return borrowedAt.AddDate(0, 0, LoanPeriodDays)
}

// IsReturned 是否已归还
func (l *Loan) IsReturned() bool {
	return l.ReturnedAt != nil
}

// ReferenceTime 计算逾期天数的参照时间
// 已归还按归还时间,未归还按当前时间
func (l *Loan) ReferenceTime(now time.Time) time.Time {
	if l.ReturnedAt != nil {
		return *l.ReturnedAt
	}
	return now
}
