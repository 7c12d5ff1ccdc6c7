package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/xiebiao/library/internal/application/catalog"
	"github.com/xiebiao/library/internal/interface/http/dto"
	apperrors "github.com/xiebiao/library/pkg/errors"
	"github.com/xiebiao/library/pkg/response"
)

// BookHandler 馆藏HTTP处理器
type BookHandler struct {
	addBookUseCase   *catalog.AddBookUseCase
	searchUseCase    *catalog.SearchCatalogUseCase
	listBooksUseCase *catalog.ListBooksUseCase
}

// NewBookHandler 创建馆藏处理器
func NewBookHandler(
	addBookUseCase *catalog.AddBookUseCase,
	searchUseCase *catalog.SearchCatalogUseCase,
	listBooksUseCase *catalog.ListBooksUseCase,
) *BookHandler {
	return &BookHandler{
		addBookUseCase:   addBookUseCase,
		searchUseCase:    searchUseCase,
		listBooksUseCase: listBooksUseCase,
	}
}

// AddBook 图书入库
// @Summary      图书入库
// @Description  新增馆藏,可借册数等于总册数
// @Tags         馆藏
// @Accept       json
// @Produce      json
// @Param        request body dto.AddBookRequest true "图书信息"
// @Success      200 {object} response.Response{data=catalog.AddBookResponse}
// @Failure      200 {object} response.Response "参数错误/ISBN已存在"
// @Router       /api/v1/books [post]
func (h *BookHandler) AddBook(c *gin.Context) {
	// 1. 参数绑定
	var req dto.AddBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperrors.ErrBindError.WithCause(err))
		return
	}

	// 2. 调用应用层用例
	result, err := h.addBookUseCase.Execute(c.Request.Context(), catalog.AddBookRequest{
		Title:       req.Title,
		Author:      req.Author,
		ISBN:        req.ISBN,
		TotalCopies: req.TotalCopies,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithMessage(c, result.Message, result)
}

// SearchBooks 馆藏检索
// @Summary      馆藏检索
// @Description  按书名/作者/ISBN做不区分大小写的子串匹配
// @Tags         馆藏
// @Produce      json
// @Param        q    query string true "检索词"
// @Param        type query string true "检索字段" Enums(title, author, isbn)
// @Success      200 {object} response.Response{data=catalog.SearchCatalogResponse}
// @Router       /api/v1/books/search [get]
func (h *BookHandler) SearchBooks(c *gin.Context) {
	var req dto.SearchBooksRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.Error(c, apperrors.ErrBindError.WithCause(err))
		return
	}

	result, err := h.searchUseCase.Execute(c.Request.Context(), catalog.SearchCatalogRequest{
		Term:  req.Term,
		Field: req.Field,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// ListBooks 馆藏列表
// @Summary      馆藏列表
// @Description  按入库顺序分页返回
// @Tags         馆藏
// @Produce      json
// @Param        page      query int false "页码" default(1)
// @Param        page_size query int false "每页数量" default(20)
// @Success      200 {object} response.Response{data=catalog.ListBooksResponse}
// @Router       /api/v1/books [get]
func (h *BookHandler) ListBooks(c *gin.Context) {
	var req dto.ListBooksRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.Error(c, apperrors.ErrBindError.WithCause(err))
		return
	}

	result, err := h.listBooksUseCase.Execute(c.Request.Context(), catalog.ListBooksRequest{
		Page:     req.Page,
		PageSize: req.PageSize,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}
