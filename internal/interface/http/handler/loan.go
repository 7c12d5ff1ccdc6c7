package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/xiebiao/library/internal/application/lending"
	"github.com/xiebiao/library/internal/interface/http/dto"
	apperrors "github.com/xiebiao/library/pkg/errors"
	"github.com/xiebiao/library/pkg/response"
)

// LoanHandler 借还书HTTP处理器
type LoanHandler struct {
	borrowUseCase *lending.BorrowBookUseCase
	returnUseCase *lending.ReturnBookUseCase
}

// NewLoanHandler 创建借还书处理器
func NewLoanHandler(borrowUseCase *lending.BorrowBookUseCase, returnUseCase *lending.ReturnBookUseCase) *LoanHandler {
	return &LoanHandler{
		borrowUseCase: borrowUseCase,
		returnUseCase: returnUseCase,
	}
}

// Borrow 借书
// @Summary      借书
// @Description  借阅期限14天,每位读者最多同时借5本,同一本书未归还前不能重复借
// @Tags         借阅
// @Accept       json
// @Produce      json
// @Param        request body dto.LoanRequest true "读者证号与图书ID"
// @Success      200 {object} response.Response{data=lending.BorrowBookResponse}
// @Failure      200 {object} response.Response "无可借副本/超出借阅上限"
// @Router       /api/v1/loans [post]
func (h *LoanHandler) Borrow(c *gin.Context) {
	var req dto.LoanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperrors.ErrBindError.WithCause(err))
		return
	}

	result, err := h.borrowUseCase.Execute(c.Request.Context(), lending.BorrowBookRequest{
		PatronID: req.PatronID,
		BookID:   req.BookID,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithMessage(c, result.Message, result)
}

// Return 还书
// @Summary      还书
// @Tags         借阅
// @Accept       json
// @Produce      json
// @Param        request body dto.LoanRequest true "读者证号与图书ID"
// @Success      200 {object} response.Response{data=lending.ReturnBookResponse}
// @Failure      200 {object} response.Response "没有未归还的借阅记录"
// @Router       /api/v1/loans/return [post]
func (h *LoanHandler) Return(c *gin.Context) {
	var req dto.LoanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperrors.ErrBindError.WithCause(err))
		return
	}

	result, err := h.returnUseCase.Execute(c.Request.Context(), lending.ReturnBookRequest{
		PatronID: req.PatronID,
		BookID:   req.BookID,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithMessage(c, result.Message, result)
}
