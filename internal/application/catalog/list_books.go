package catalog

import (
	"context"

	"github.com/xiebiao/library/internal/domain/book"
	apperrors "github.com/xiebiao/library/pkg/errors"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// ListBooksUseCase 馆藏列表用例
// 按入库顺序返回,分页在内存中完成
type ListBooksUseCase struct {
	bookService book.Service
}

// NewListBooksUseCase 创建列表用例
func NewListBooksUseCase(bookService book.Service) *ListBooksUseCase {
	return &ListBooksUseCase{bookService: bookService}
}

// ListBooksRequest 列表请求DTO
type ListBooksRequest struct {
	Page     int // 页码(从1开始)
	PageSize int // 每页数量
}

// ListBooksResponse 列表响应DTO
type ListBooksResponse struct {
	List       []BookItem `json:"list"`
	Total      int64      `json:"total"`
	Page       int        `json:"page"`
	PageSize   int        `json:"page_size"`
	TotalPages int        `json:"total_pages"`
}

// Execute 执行列表查询
func (uc *ListBooksUseCase) Execute(ctx context.Context, req ListBooksRequest) (*ListBooksResponse, error) {
	// 1. 参数默认值与范围限制
	if req.Page < 1 {
		req.Page = 1
	}
	if req.PageSize < 1 {
		req.PageSize = defaultPageSize
	}
	if req.PageSize > maxPageSize {
		req.PageSize = maxPageSize
	}

	// 2. 查询全部馆藏
	books, err := uc.bookService.ListBooks(ctx)
	if err != nil {
		return nil, apperrors.ErrDatabaseError.WithCause(err)
	}

	// 3. 截取当前页
	total := len(books)
	start := (req.Page - 1) * req.PageSize
	if start > total {
		start = total
	}
	end := start + req.PageSize
	if end > total {
		end = total
	}

	totalPages := total / req.PageSize
	if total%req.PageSize != 0 {
		totalPages++
	}

	return &ListBooksResponse{
		List:       toBookItems(books[start:end]),
		Total:      int64(total),
		Page:       req.Page,
		PageSize:   req.PageSize,
		TotalPages: totalPages,
	}, nil
}
