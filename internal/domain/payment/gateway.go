package payment

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
)

// MaxRefundAmount 单笔退款上限(与单册图书可能产生的最大滞纳金对齐)
var MaxRefundAmount = decimal.NewFromInt(15)

// Gateway 外部支付网关(端口)
//
// 约定:
// 1. 网关明确拒绝时返回Approved=false的结果,error为nil
// 2. 网络/系统故障时返回error,结果忽略
// 3. 适配器负责把各自后端的返回形态统一为GatewayResult
type Gateway interface {
	// Charge 向读者收取滞纳金
	Charge(ctx context.Context, req ChargeRequest) (*GatewayResult, error)

	// Refund 按交易号退款
	Refund(ctx context.Context, req RefundRequest) (*GatewayResult, error)
}

// ChargeRequest 扣款请求
type ChargeRequest struct {
	PatronID    string
	Amount      decimal.Decimal
	Description string
}

// RefundRequest 退款请求
type RefundRequest struct {
	TransactionID string
	Amount        decimal.Decimal
}

// GatewayResult 统一的网关返回
type GatewayResult struct {
	Approved      bool
	TransactionID string // 扣款成功时的交易号,退款可为空
	Message       string // 网关给出的说明(拒绝原因等)
}

// Approve 构造成功结果
func Approve(transactionID, message string) *GatewayResult {
	return &GatewayResult{Approved: true, TransactionID: transactionID, Message: message}
}

// Decline 构造拒绝结果
func Decline(message string) *GatewayResult {
	return &GatewayResult{Approved: false, Message: message}
}

// Description 生成扣款描述
func Description(title string) string {
	return fmt.Sprintf("Late fees for '%s'", title)
}
