package catalog

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/xiebiao/library/internal/domain/book"
	apperrors "github.com/xiebiao/library/pkg/errors"
	"github.com/xiebiao/library/pkg/tracing"
)

// AddBookUseCase 图书入库用例
// 校验与唯一性检查由领域服务负责,用例只做编排和结果文案
type AddBookUseCase struct {
	bookService book.Service
	log         *zap.Logger
}

// NewAddBookUseCase 创建入库用例
func NewAddBookUseCase(bookService book.Service, log *zap.Logger) *AddBookUseCase {
	return &AddBookUseCase{
		bookService: bookService,
		log:         log,
	}
}

// AddBookRequest 入库请求DTO
type AddBookRequest struct {
	Title       string
	Author      string
	ISBN        string
	TotalCopies int
}

// AddBookResponse 入库响应DTO
type AddBookResponse struct {
	Book    BookItem `json:"book"`
	Message string   `json:"message"`
}

// Execute 执行入库
func (uc *AddBookUseCase) Execute(ctx context.Context, req AddBookRequest) (*AddBookResponse, error) {
	ctx, span := tracing.StartSpan(ctx, "catalog.AddBook")
	defer span.End()
	span.SetAttributes(attribute.String("isbn", req.ISBN))

	b, err := uc.bookService.AddBook(ctx, req.Title, req.Author, req.ISBN, req.TotalCopies)
	if err != nil {
		tracing.RecordError(span, err)
		if appErr := apperrors.GetAppError(err); appErr.Err != nil {
			uc.log.Error("图书入库失败", zap.String("isbn", req.ISBN), zap.Error(appErr.Err))
		}
		return nil, err
	}

	uc.log.Info("图书已入库", zap.Uint("book_id", b.ID), zap.String("isbn", b.ISBN))
	return &AddBookResponse{
		Book:    toBookItem(b),
		Message: fmt.Sprintf(`Book "%s" has been successfully added to the catalog.`, b.Title),
	}, nil
}
