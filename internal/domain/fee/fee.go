// Package fee 滞纳金计算
//
// 规则:
// 1. 逾期天数 = (参照时间 - 应还时间)的整天数,不足一天不计,最小为0
// 2. 滞纳金 = 逾期天数 × 0.25,四舍五入保留两位小数
// 3. 读者报表按单条记录先取整再求和
package fee

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/xiebiao/library/internal/domain/loan"
)

// DateLayout 报表中应还日期的格式
const DateLayout = "2006-01-02"

// DailyRate 每逾期一天的滞纳金
var DailyRate = decimal.New(25, -2)

// Status 滞纳金计算结果状态
type Status string

const (
	StatusBookNotFound Status = "Book not found"
	StatusLoanNotFound Status = "Borrow record not located"
	StatusCalculated   Status = "Late fee calculated"
	StatusNoOverdue    Status = "No overdue charge"
)

// Assessment 单册图书的滞纳金计算结果(不持久化)
type Assessment struct {
	Amount      decimal.Decimal
	DaysOverdue int
	Status      Status
}

// HasFee 是否产生了滞纳金
func (a Assessment) HasFee() bool {
	return a.Amount.IsPositive()
}

// NotFound 图书或借阅记录缺失时的结果,金额与天数均为0
func NotFound(status Status) Assessment {
	return Assessment{Amount: decimal.Zero, DaysOverdue: 0, Status: status}
}

// DaysOverdue 计算逾期整天数
func DaysOverdue(due, reference time.Time) int {
	late := reference.Sub(due)
	if late <= 0 {
		return 0
	}
	return int(late / (24 * time.Hour))
}

// Amount 按逾期天数计算滞纳金
func Amount(daysOverdue int) decimal.Decimal {
	if daysOverdue <= 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(int64(daysOverdue)).Mul(DailyRate).Round(2)
}

// Assess 计算一条借阅记录的滞纳金
// 已归还的记录按归还时间计算,未归还按now
func Assess(l *loan.Loan, now time.Time) Assessment {
	days := DaysOverdue(l.DueAt, l.ReferenceTime(now))
	status := StatusNoOverdue
	if days > 0 {
		status = StatusCalculated
	}
	return Assessment{
		Amount:      Amount(days),
		DaysOverdue: days,
		Status:      status,
	}
}
