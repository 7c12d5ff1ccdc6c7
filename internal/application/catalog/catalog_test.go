package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/xiebiao/library/internal/domain/book"
	apperrors "github.com/xiebiao/library/pkg/errors"
)

// mockBookService book.Service的testify mock
type mockBookService struct {
	mock.Mock
}

func (m *mockBookService) AddBook(ctx context.Context, title, author, isbn string, totalCopies int) (*book.Book, error) {
	args := m.Called(ctx, title, author, isbn, totalCopies)
	if b, ok := args.Get(0).(*book.Book); ok {
		return b, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockBookService) GetBook(ctx context.Context, id uint) (*book.Book, error) {
	args := m.Called(ctx, id)
	if b, ok := args.Get(0).(*book.Book); ok {
		return b, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockBookService) ListBooks(ctx context.Context) ([]*book.Book, error) {
	args := m.Called(ctx)
	if bs, ok := args.Get(0).([]*book.Book); ok {
		return bs, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockBookService) SearchCatalog(ctx context.Context, term string, field book.SearchField) ([]*book.Book, error) {
	args := m.Called(ctx, term, field)
	if bs, ok := args.Get(0).([]*book.Book); ok {
		return bs, args.Error(1)
	}
	return nil, args.Error(1)
}

func TestAddBookUseCase(t *testing.T) {
	ctx := context.Background()

	t.Run("入库成功返回确认文案", func(t *testing.T) {
		svc := new(mockBookService)
		svc.On("AddBook", mock.Anything, "Dune", "Frank Herbert", "1111111111111", 3).
			Return(&book.Book{ID: 1, Title: "Dune", Author: "Frank Herbert", ISBN: "1111111111111", TotalCopies: 3, AvailableCopies: 3}, nil)

		resp, err := NewAddBookUseCase(svc, zap.NewNop()).Execute(ctx, AddBookRequest{
			Title: "Dune", Author: "Frank Herbert", ISBN: "1111111111111", TotalCopies: 3,
		})
		require.NoError(t, err)
		assert.Equal(t, `Book "Dune" has been successfully added to the catalog.`, resp.Message)
		assert.Equal(t, 3, resp.Book.AvailableCopies)
		svc.AssertExpectations(t)
	})

	t.Run("领域错误透传", func(t *testing.T) {
		svc := new(mockBookService)
		svc.On("AddBook", mock.Anything, "X", "Y", "123", 1).Return(nil, book.ErrInvalidISBN)

		_, err := NewAddBookUseCase(svc, zap.NewNop()).Execute(ctx, AddBookRequest{Title: "X", Author: "Y", ISBN: "123", TotalCopies: 1})
		assert.ErrorIs(t, err, book.ErrInvalidISBN)
	})

	t.Run("写库失败", func(t *testing.T) {
		svc := new(mockBookService)
		svc.On("AddBook", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return(nil, book.ErrCreateFailed.WithCause(errors.New("deadlock")))

		_, err := NewAddBookUseCase(svc, zap.NewNop()).Execute(ctx, AddBookRequest{Title: "Dune", Author: "F", ISBN: "1111111111111", TotalCopies: 1})
		assert.ErrorIs(t, err, book.ErrCreateFailed)
		assert.Equal(t, "Database error occurred while adding the book.", apperrors.MessageOf(err))
	})
}

func TestSearchCatalogUseCase(t *testing.T) {
	ctx := context.Background()

	t.Run("返回匹配结果", func(t *testing.T) {
		svc := new(mockBookService)
		svc.On("SearchCatalog", mock.Anything, "dune", book.SearchByTitle).
			Return([]*book.Book{{ID: 1, Title: "Dune"}, {ID: 4, Title: "Dune Messiah"}}, nil)

		resp, err := NewSearchCatalogUseCase(svc).Execute(ctx, SearchCatalogRequest{Term: "dune", Field: "title"})
		require.NoError(t, err)
		assert.Equal(t, 2, resp.Total)
		assert.Equal(t, uint(4), resp.List[1].ID)
	})

	t.Run("空结果不是nil", func(t *testing.T) {
		svc := new(mockBookService)
		svc.On("SearchCatalog", mock.Anything, "", book.SearchField("title")).Return([]*book.Book{}, nil)

		resp, err := NewSearchCatalogUseCase(svc).Execute(ctx, SearchCatalogRequest{Field: "title"})
		require.NoError(t, err)
		assert.NotNil(t, resp.List)
		assert.Equal(t, 0, resp.Total)
	})

	t.Run("仓储失败", func(t *testing.T) {
		svc := new(mockBookService)
		svc.On("SearchCatalog", mock.Anything, mock.Anything, mock.Anything).Return(nil, errors.New("boom"))

		_, err := NewSearchCatalogUseCase(svc).Execute(ctx, SearchCatalogRequest{Term: "x", Field: "title"})
		assert.Equal(t, apperrors.ErrCodeDatabaseError, apperrors.CodeOf(err))
	})
}

func TestListBooksUseCase(t *testing.T) {
	ctx := context.Background()
	books := make([]*book.Book, 0, 45)
	for i := 1; i <= 45; i++ {
		books = append(books, &book.Book{ID: uint(i)})
	}

	svc := new(mockBookService)
	svc.On("ListBooks", mock.Anything).Return(books, nil)
	uc := NewListBooksUseCase(svc)

	t.Run("默认分页", func(t *testing.T) {
		resp, err := uc.Execute(ctx, ListBooksRequest{})
		require.NoError(t, err)
		assert.Len(t, resp.List, 20)
		assert.Equal(t, int64(45), resp.Total)
		assert.Equal(t, 3, resp.TotalPages)
		assert.Equal(t, uint(1), resp.List[0].ID)
	})

	t.Run("最后一页", func(t *testing.T) {
		resp, err := uc.Execute(ctx, ListBooksRequest{Page: 3, PageSize: 20})
		require.NoError(t, err)
		assert.Len(t, resp.List, 5)
		assert.Equal(t, uint(41), resp.List[0].ID)
	})

	t.Run("超出范围返回空页", func(t *testing.T) {
		resp, err := uc.Execute(ctx, ListBooksRequest{Page: 9, PageSize: 500})
		require.NoError(t, err)
		assert.Equal(t, 100, resp.PageSize)
		assert.Empty(t, resp.List)
	})
}
