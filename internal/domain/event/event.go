// Package event 借阅与缴费的领域事件
//
// 事件在业务操作成功后发布,发布失败只记录日志,不影响操作结果
package event

import (
	"context"
	"time"
)

// 路由键
const (
	KeyLoanBorrowed = "loan.borrowed"
	KeyLoanReturned = "loan.returned"
	KeyFeePaid      = "fee.paid"
	KeyFeeRefunded  = "fee.refunded"
)

// Event 领域事件
type Event interface {
	RoutingKey() string
	OccurredAt() time.Time
}

// Publisher 事件发布端口
type Publisher interface {
	Publish(ctx context.Context, e Event) error
}

// LoanBorrowed 借出成功
type LoanBorrowed struct {
	LoanID   uint      `json:"loan_id"`
	PatronID string    `json:"patron_id"`
	BookID   uint      `json:"book_id"`
	Title    string    `json:"title"`
	DueAt    time.Time `json:"due_at"`
	At       time.Time `json:"occurred_at"`
}

func (e LoanBorrowed) RoutingKey() string    { return KeyLoanBorrowed }
func (e LoanBorrowed) OccurredAt() time.Time { return e.At }

// LoanReturned 归还成功
type LoanReturned struct {
	PatronID string    `json:"patron_id"`
	BookID   uint      `json:"book_id"`
	Title    string    `json:"title"`
	At       time.Time `json:"occurred_at"`
}

func (e LoanReturned) RoutingKey() string    { return KeyLoanReturned }
func (e LoanReturned) OccurredAt() time.Time { return e.At }

// FeePaid 滞纳金扣款成功,Amount为两位小数的字符串
type FeePaid struct {
	PatronID      string    `json:"patron_id"`
	BookID        uint      `json:"book_id"`
	TransactionID string    `json:"transaction_id"`
	Amount        string    `json:"amount"`
	At            time.Time `json:"occurred_at"`
}

func (e FeePaid) RoutingKey() string    { return KeyFeePaid }
func (e FeePaid) OccurredAt() time.Time { return e.At }

// FeeRefunded 退款成功
type FeeRefunded struct {
	TransactionID string    `json:"transaction_id"`
	Amount        string    `json:"amount"`
	At            time.Time `json:"occurred_at"`
}

func (e FeeRefunded) RoutingKey() string    { return KeyFeeRefunded }
func (e FeeRefunded) OccurredAt() time.Time { return e.At }

// NopPublisher 丢弃所有事件(未启用消息队列时使用)
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, Event) error { return nil }
