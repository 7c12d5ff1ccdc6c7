package catalog

import (
	"context"

	"go.opentelemetry.io/otel/attribute"

	"github.com/xiebiao/library/internal/domain/book"
	apperrors "github.com/xiebiao/library/pkg/errors"
	"github.com/xiebiao/library/pkg/tracing"
)

// SearchCatalogUseCase 馆藏检索用例
type SearchCatalogUseCase struct {
	bookService book.Service
}

// NewSearchCatalogUseCase 创建检索用例
func NewSearchCatalogUseCase(bookService book.Service) *SearchCatalogUseCase {
	return &SearchCatalogUseCase{bookService: bookService}
}

// SearchCatalogRequest 检索请求DTO
type SearchCatalogRequest struct {
	Term  string // 检索词
	Field string // title | author | isbn
}

// SearchCatalogResponse 检索响应DTO
type SearchCatalogResponse struct {
	List  []BookItem `json:"list"`
	Total int        `json:"total"`
}

// Execute 执行检索
// 检索词为空或字段不合法时返回空列表而不是错误
func (uc *SearchCatalogUseCase) Execute(ctx context.Context, req SearchCatalogRequest) (*SearchCatalogResponse, error) {
	ctx, span := tracing.StartSpan(ctx, "catalog.Search")
	defer span.End()
	span.SetAttributes(attribute.String("field", req.Field))

	books, err := uc.bookService.SearchCatalog(ctx, req.Term, book.SearchField(req.Field))
	if err != nil {
		tracing.RecordError(span, err)
		return nil, apperrors.ErrDatabaseError.WithCause(err)
	}

	items := toBookItems(books)
	return &SearchCatalogResponse{List: items, Total: len(items)}, nil
}
