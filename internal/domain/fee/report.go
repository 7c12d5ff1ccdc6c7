package fee

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/xiebiao/library/internal/domain/loan"
)

// LoanSummary 报表中的单条借阅摘要
type LoanSummary struct {
	BookID   uint
	Title    string
	ISBN     string
	DueDate  string // 仅日期,格式2006-01-02
	Returned bool
	DaysLate int
	Fee      decimal.Decimal
}

// Report 读者借阅状态报表(不持久化)
type Report struct {
	PatronID string
	Loans    []LoanSummary
	TotalFee decimal.Decimal
}

// BuildReport 汇总读者全部借阅记录
// 已归还记录以归还时间为参照,未归还记录以now为参照;保持仓储返回的顺序
func BuildReport(patronID string, loans []*loan.Loan, now time.Time) *Report {
	report := &Report{
		PatronID: patronID,
		Loans:    make([]LoanSummary, 0, len(loans)),
		TotalFee: decimal.Zero,
	}

	for _, l := range loans {
		days := DaysOverdue(l.DueAt, l.ReferenceTime(now))
		amount := Amount(days)

		report.Loans = append(report.Loans, LoanSummary{
			BookID:   l.BookID,
			Title:    l.Title,
			ISBN:     l.ISBN,
			DueDate:  l.DueAt.Format(DateLayout),
			Returned: l.IsReturned(),
			DaysLate: days,
			Fee:      amount,
		})
		report.TotalFee = report.TotalFee.Add(amount)
	}

	return report
}

// Outstanding 未归还册数
func (r *Report) Outstanding() int {
	n := 0
	for _, s := range r.Loans {
		if !s.Returned {
			n++
		}
	}
	return n
}
