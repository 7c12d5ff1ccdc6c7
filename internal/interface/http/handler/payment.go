package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/xiebiao/library/internal/application/payment"
	"github.com/xiebiao/library/internal/interface/http/dto"
	apperrors "github.com/xiebiao/library/pkg/errors"
	"github.com/xiebiao/library/pkg/response"
)

// PaymentHandler 缴费与退款HTTP处理器
type PaymentHandler struct {
	payUseCase    *payment.PayLateFeeUseCase
	refundUseCase *payment.RefundLateFeeUseCase
}

// NewPaymentHandler 创建缴费处理器
func NewPaymentHandler(payUseCase *payment.PayLateFeeUseCase, refundUseCase *payment.RefundLateFeeUseCase) *PaymentHandler {
	return &PaymentHandler{
		payUseCase:    payUseCase,
		refundUseCase: refundUseCase,
	}
}

// PayLateFee 缴纳滞纳金
// @Summary      缴纳滞纳金
// @Description  按当前应缴金额向支付网关扣款,无应缴金额时不调用网关
// @Tags         缴费
// @Accept       json
// @Produce      json
// @Param        request body dto.PayLateFeeRequest true "读者证号与图书ID"
// @Success      200 {object} response.Response{data=payment.PayLateFeeResponse}
// @Failure      200 {object} response.Response "无应缴金额/网关拒绝/网关故障"
// @Router       /api/v1/payments [post]
func (h *PaymentHandler) PayLateFee(c *gin.Context) {
	var req dto.PayLateFeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperrors.ErrBindError.WithCause(err))
		return
	}

	result, err := h.payUseCase.Execute(c.Request.Context(), payment.PayLateFeeRequest{
		PatronID: req.PatronID,
		BookID:   req.BookID,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithMessage(c, result.Message, result)
}

// Refund 退还滞纳金
// @Summary      退款
// @Description  单笔退款金额须大于0且不超过15.00
// @Tags         缴费
// @Accept       json
// @Produce      json
// @Param        request body dto.RefundRequest true "交易号与金额"
// @Success      200 {object} response.Response{data=payment.RefundLateFeeResponse}
// @Failure      200 {object} response.Response "金额不合法/网关拒绝/网关故障"
// @Router       /api/v1/refunds [post]
func (h *PaymentHandler) Refund(c *gin.Context) {
	var req dto.RefundRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperrors.ErrBindError.WithCause(err))
		return
	}

	result, err := h.refundUseCase.Execute(c.Request.Context(), payment.RefundLateFeeRequest{
		TransactionID: req.TransactionID,
		Amount:        req.Amount,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithMessage(c, result.Message, result)
}
