package payment

import (
	"errors"
	"regexp"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	apperrors "github.com/xiebiao/library/pkg/errors"
)

func TestValidateRefund(t *testing.T) {
	cases := []struct {
		name   string
		txn    string
		amount string
		want   error
	}{
		{"合法", "txn_1", "5.00", nil},
		{"等于上限", "txn_1", "15", nil},
		{"交易号为空", "", "5", ErrInvalidTransactionID},
		{"金额为0", "txn_1", "0", ErrRefundNotPositive},
		{"金额为负", "txn_1", "-1", ErrRefundNotPositive},
		{"超过上限", "txn_1", "15.01", ErrRefundExceedsMax},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateRefund(tc.txn, decimal.RequireFromString(tc.amount))
			if tc.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestGatewayMessages(t *testing.T) {
	assert.Equal(t, "Late fees for 'Dune'", Description("Dune"))

	declined := PaymentDeclined("insufficient funds")
	assert.Equal(t, "Payment failed: insufficient funds", declined.Message)
	assert.Equal(t, apperrors.ErrCodeGatewayDeclined, declined.Code)

	cause := errors.New("connection refused")
	failed := PaymentError(cause)
	assert.Equal(t, "Payment processing error: connection refused", failed.Message)
	assert.ErrorIs(t, failed, cause)

	assert.Equal(t, "Refund failed: unknown transaction", RefundDeclined("unknown transaction").Message)
	assert.Equal(t, apperrors.ErrCodeGatewayError, RefundError(cause).Code)
}

func TestGatewayResult(t *testing.T) {
	ok := Approve("txn_abc", "approved")
	assert.True(t, ok.Approved)
	assert.Equal(t, "txn_abc", ok.TransactionID)

	no := Decline("card expired")
	assert.False(t, no.Approved)
	assert.Empty(t, no.TransactionID)
}

func TestGenerateTransactionID(t *testing.T) {
	id := GenerateTransactionID()
	assert.Regexp(t, regexp.MustCompile(`^txn_[0-9a-f]{32}$`), id)
	assert.NotEqual(t, id, GenerateTransactionID())
}
