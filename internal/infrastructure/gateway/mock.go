// Package gateway 支付网关适配器
package gateway

import (
	"context"
	"fmt"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/xiebiao/library/internal/domain/payment"
)

// Mock 内存支付网关(开发、测试环境使用)
// 1. 金额不超过单笔上限即批准扣款,交易号格式txn_<uuid>
// 2. 只能对本网关产生的交易退款,累计退款不超过原扣款金额
type Mock struct {
	maxCharge decimal.Decimal
	newID     func() string

	mu      sync.Mutex
	charges map[string]decimal.Decimal // 交易号 → 剩余可退金额
}

// NewMock 创建内存网关
func NewMock(maxCharge decimal.Decimal) *Mock {
	return &Mock{
		maxCharge: maxCharge,
		newID:     payment.GenerateTransactionID,
		charges:   make(map[string]decimal.Decimal),
	}
}

// Charge 扣款
func (m *Mock) Charge(ctx context.Context, req payment.ChargeRequest) (*payment.GatewayResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !req.Amount.IsPositive() {
		return payment.Decline("invalid amount"), nil
	}
	if req.Amount.GreaterThan(m.maxCharge) {
		return payment.Decline(fmt.Sprintf("amount exceeds limit of $%s", m.maxCharge.StringFixed(2))), nil
	}

	id := m.newID()

	m.mu.Lock()
	m.charges[id] = req.Amount
	m.mu.Unlock()

	return payment.Approve(id, "charged"), nil
}

// Refund 退款
func (m *Mock) Refund(ctx context.Context, req payment.RefundRequest) (*payment.GatewayResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	remaining, ok := m.charges[req.TransactionID]
	if !ok {
		return payment.Decline("unknown transaction"), nil
	}
	if req.Amount.GreaterThan(remaining) {
		return payment.Decline("refund exceeds charged amount"), nil
	}

	m.charges[req.TransactionID] = remaining.Sub(req.Amount)
	return payment.Approve(req.TransactionID, "refunded"), nil
}
