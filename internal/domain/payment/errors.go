package payment

import (
	"github.com/shopspring/decimal"

	apperrors "github.com/xiebiao/library/pkg/errors"
)

// 缴费/退款领域错误定义
var (
	// ErrNoFeeDue 没有需要缴纳的滞纳金
	ErrNoFeeDue = apperrors.New(apperrors.ErrCodeNoFeeDue, "No late fees to pay for this book.")

	// ErrInvalidTransactionID 交易号为空
	ErrInvalidTransactionID = apperrors.New(apperrors.ErrCodeInvalidParams, "Invalid transaction ID.")

	// ErrRefundNotPositive 退款金额必须大于0
	ErrRefundNotPositive = apperrors.New(apperrors.ErrCodeInvalidAmount, "Refund amount must be greater than 0.")

	// ErrRefundExceedsMax 退款金额超过上限
	ErrRefundExceedsMax = apperrors.New(apperrors.ErrCodeInvalidAmount, "Refund amount exceeds maximum late fee.")
)

// PaymentDeclined 网关拒绝扣款
func PaymentDeclined(reason string) *apperrors.AppError {
	return apperrors.Newf(apperrors.ErrCodeGatewayDeclined, "Payment failed: %s", reason)
}

// PaymentError 扣款时网关故障
func PaymentError(err error) *apperrors.AppError {
	e := apperrors.Newf(apperrors.ErrCodeGatewayError, "Payment processing error: %v", err)
	e.Err = err
	return e
}

// RefundDeclined 网关拒绝退款
func RefundDeclined(reason string) *apperrors.AppError {
	return apperrors.Newf(apperrors.ErrCodeGatewayDeclined, "Refund failed: %s", reason)
}

// RefundError 退款时网关故障
func RefundError(err error) *apperrors.AppError {
	e := apperrors.Newf(apperrors.ErrCodeGatewayError, "Refund processing error: %v", err)
	e.Err = err
	return e
}

// ValidateRefund 退款参数校验:交易号非空,0 < amount <= 15
func ValidateRefund(transactionID string, amount decimal.Decimal) error {
	if transactionID == "" {
		return ErrInvalidTransactionID
	}
	if !amount.IsPositive() {
		return ErrRefundNotPositive
	}
	if amount.GreaterThan(MaxRefundAmount) {
		return ErrRefundExceedsMax
	}
	return nil
}
