package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/xiebiao/library/internal/application/fee"
	apperrors "github.com/xiebiao/library/pkg/errors"
	"github.com/xiebiao/library/pkg/response"
)

// FeeHandler 滞纳金查询HTTP处理器
type FeeHandler struct {
	calculateUseCase *fee.CalculateLateFeeUseCase
	statusUseCase    *fee.PatronStatusUseCase
}

// NewFeeHandler 创建滞纳金处理器
func NewFeeHandler(calculateUseCase *fee.CalculateLateFeeUseCase, statusUseCase *fee.PatronStatusUseCase) *FeeHandler {
	return &FeeHandler{
		calculateUseCase: calculateUseCase,
		statusUseCase:    statusUseCase,
	}
}

// LateFee 单本图书的滞纳金
// @Summary      滞纳金查询
// @Description  图书或借阅记录不存在时以status字段返回,fee_amount为0.00
// @Tags         滞纳金
// @Produce      json
// @Param        patron_id path string true "读者证号"
// @Param        book_id   path int    true "图书ID"
// @Success      200 {object} response.Response{data=fee.CalculateLateFeeResponse}
// @Router       /api/v1/patrons/{patron_id}/fees/{book_id} [get]
func (h *FeeHandler) LateFee(c *gin.Context) {
	bookID, ok := bookIDParam(c)
	if !ok {
		return
	}

	result, err := h.calculateUseCase.Execute(c.Request.Context(), fee.CalculateLateFeeRequest{
		PatronID: c.Param("patron_id"),
		BookID:   bookID,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// PatronStatus 读者借阅状态报表
// @Summary      读者状态报表
// @Description  全部借阅记录(含已归还)、在借册数与滞纳金合计
// @Tags         滞纳金
// @Produce      json
// @Param        patron_id path string true "读者证号"
// @Success      200 {object} response.Response{data=fee.PatronStatusResponse}
// @Router       /api/v1/patrons/{patron_id}/status [get]
func (h *FeeHandler) PatronStatus(c *gin.Context) {
	result, err := h.statusUseCase.Execute(c.Request.Context(), fee.PatronStatusRequest{
		PatronID: c.Param("patron_id"),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// bookIDParam 解析路径参数book_id,失败时直接写错误响应
func bookIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("book_id"), 10, 0)
	if err != nil {
		response.Error(c, apperrors.ErrInvalidParams.WithCause(err))
		return 0, false
	}
	return uint(id), true
}
