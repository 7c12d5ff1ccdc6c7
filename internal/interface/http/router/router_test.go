package router

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/xiebiao/library/internal/application/catalog"
	appfee "github.com/xiebiao/library/internal/application/fee"
	"github.com/xiebiao/library/internal/application/lending"
	apppayment "github.com/xiebiao/library/internal/application/payment"
	"github.com/xiebiao/library/internal/domain/book"
	"github.com/xiebiao/library/internal/domain/event"
	"github.com/xiebiao/library/internal/domain/fee"
	"github.com/xiebiao/library/internal/infrastructure/gateway"
	"github.com/xiebiao/library/internal/infrastructure/persistence/memory"
	"github.com/xiebiao/library/internal/interface/http/handler"
	"github.com/xiebiao/library/internal/interface/http/middleware"
	apperrors "github.com/xiebiao/library/pkg/errors"
)

type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// testServer 基于内存仓储与mock网关组装完整的路由
type testServer struct {
	engine *gin.Engine
	now    time.Time
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	s := &testServer{now: time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)}
	clock := func() time.Time { return s.now }
	log := zap.NewNop()

	store := memory.NewStore()
	bookRepo, loanRepo := store.Books(), store.Loans()
	bookService := book.NewService(bookRepo)
	feeService := fee.NewService(bookRepo, loanRepo)
	gw := gateway.NewMock(decimal.NewFromInt(100))
	events := event.NopPublisher{}

	s.engine = New(log, Handlers{
		Book: handler.NewBookHandler(
			catalog.NewAddBookUseCase(bookService, log),
			catalog.NewSearchCatalogUseCase(bookService),
			catalog.NewListBooksUseCase(bookService),
		),
		Loan: handler.NewLoanHandler(
			lending.NewBorrowBookUseCase(bookRepo, loanRepo, events, log, clock),
			lending.NewReturnBookUseCase(bookRepo, loanRepo, events, log, clock),
		),
		Fee: handler.NewFeeHandler(
			appfee.NewCalculateLateFeeUseCase(feeService, clock),
			appfee.NewPatronStatusUseCase(feeService, clock),
		),
		Payment: handler.NewPaymentHandler(
			apppayment.NewPayLateFeeUseCase(feeService, bookRepo, gw, events, log, clock),
			apppayment.NewRefundLateFeeUseCase(gw, events, log, clock),
		),
	}, Options{MetricsPath: "/metrics"})
	return s
}

func (s *testServer) do(t *testing.T, method, path string, body interface{}) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		data, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)

	var env envelope
	if w.Header().Get("Content-Type") == "application/json; charset=utf-8" {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	}
	return w, env
}

func TestLendingFlow(t *testing.T) {
	s := newTestServer(t)

	// 1. 入库
	_, env := s.do(t, http.MethodPost, "/api/v1/books", gin.H{
		"title": "  The Go Programming Language ", "author": "Alan Donovan",
		"isbn": "9780134190440", "total_copies": 1,
	})
	require.Equal(t, 0, env.Code, env.Message)
	assert.Equal(t, `Book "The Go Programming Language" has been successfully added to the catalog.`, env.Message)

	// 2. 列表与检索
	_, env = s.do(t, http.MethodGet, "/api/v1/books", nil)
	var list catalog.ListBooksResponse
	require.NoError(t, json.Unmarshal(env.Data, &list))
	assert.Equal(t, int64(1), list.Total)

	_, env = s.do(t, http.MethodGet, "/api/v1/books/search?q=GO&type=title", nil)
	var found catalog.SearchCatalogResponse
	require.NoError(t, json.Unmarshal(env.Data, &found))
	require.Equal(t, 1, found.Total)
	bookID := found.List[0].ID

	// 3. 借书
	_, env = s.do(t, http.MethodPost, "/api/v1/loans", gin.H{"patron_id": "123456", "book_id": bookID})
	require.Equal(t, 0, env.Code, env.Message)
	assert.Equal(t, `Successfully borrowed "The Go Programming Language". Due date: 2024-03-15.`, env.Message)

	_, env = s.do(t, http.MethodPost, "/api/v1/loans", gin.H{"patron_id": "654321", "book_id": bookID})
	assert.Equal(t, apperrors.ErrCodeNotAvailable, env.Code)

	// 4. 逾期6天
	s.now = s.now.AddDate(0, 0, 20)
	_, env = s.do(t, http.MethodGet, "/api/v1/patrons/123456/fees/1", nil)
	var assessed appfee.CalculateLateFeeResponse
	require.NoError(t, json.Unmarshal(env.Data, &assessed))
	assert.Equal(t, "1.50", assessed.Amount)
	assert.Equal(t, 6, assessed.DaysOverdue)
	assert.Equal(t, "Late fee calculated", assessed.Status)

	// 5. 缴费与退款
	_, env = s.do(t, http.MethodPost, "/api/v1/payments", gin.H{"patron_id": "123456", "book_id": bookID})
	require.Equal(t, 0, env.Code, env.Message)
	assert.Equal(t, "Payment successful.", env.Message)
	var paid apppayment.PayLateFeeResponse
	require.NoError(t, json.Unmarshal(env.Data, &paid))
	assert.Equal(t, "1.50", paid.Amount)

	_, env = s.do(t, http.MethodPost, "/api/v1/refunds", `{"transaction_id":"`+paid.TransactionID+`","amount":"1.00"}`)
	require.Equal(t, 0, env.Code, env.Message)
	assert.Equal(t, "Refund of $1.00 processed successfully.", env.Message)

	_, env = s.do(t, http.MethodPost, "/api/v1/refunds", gin.H{"transaction_id": paid.TransactionID, "amount": 20})
	assert.Equal(t, "Refund amount exceeds maximum late fee.", env.Message)

	// 6. 还书与报表
	_, env = s.do(t, http.MethodPost, "/api/v1/loans/return", gin.H{"patron_id": "123456", "book_id": bookID})
	require.Equal(t, 0, env.Code, env.Message)
	assert.Equal(t, `Book "The Go Programming Language" has been returned.`, env.Message)

	_, env = s.do(t, http.MethodPost, "/api/v1/loans/return", gin.H{"patron_id": "123456", "book_id": bookID})
	assert.Equal(t, "No active borrow record.", env.Message)

	_, env = s.do(t, http.MethodGet, "/api/v1/patrons/123456/status", nil)
	var status appfee.PatronStatusResponse
	require.NoError(t, json.Unmarshal(env.Data, &status))
	require.Len(t, status.BorrowedBooks, 1)
	assert.True(t, status.BorrowedBooks[0].Returned)
	assert.Equal(t, "2024-03-15", status.BorrowedBooks[0].DueDate)
	assert.Equal(t, 0, status.Outstanding)
	assert.Equal(t, "1.50", status.TotalLateFees)
}

func TestReturnedOnTime(t *testing.T) {
	s := newTestServer(t)

	_, env := s.do(t, http.MethodPost, "/api/v1/books", gin.H{
		"title": "Dune", "author": "Frank Herbert", "isbn": "9780441172719", "total_copies": 2,
	})
	require.Equal(t, 0, env.Code, env.Message)
	loanReq := gin.H{"patron_id": "123456", "book_id": 1}

	// 1. 两册可借,同一读者不能重复借同一本书
	_, env = s.do(t, http.MethodPost, "/api/v1/loans", loanReq)
	require.Equal(t, 0, env.Code, env.Message)
	_, env = s.do(t, http.MethodPost, "/api/v1/loans", loanReq)
	assert.Equal(t, apperrors.ErrCodeAlreadyBorrowed, env.Code)

	// 2. 第10天归还,之后不再产生滞纳金
	s.now = s.now.AddDate(0, 0, 10)
	_, env = s.do(t, http.MethodPost, "/api/v1/loans/return", loanReq)
	require.Equal(t, 0, env.Code, env.Message)

	s.now = s.now.AddDate(0, 3, 0)
	_, env = s.do(t, http.MethodGet, "/api/v1/patrons/123456/fees/1", nil)
	var assessed appfee.CalculateLateFeeResponse
	require.NoError(t, json.Unmarshal(env.Data, &assessed))
	assert.Equal(t, "0.00", assessed.Amount)
	assert.Equal(t, "No overdue charge", assessed.Status)

	_, env = s.do(t, http.MethodPost, "/api/v1/payments", loanReq)
	assert.Equal(t, apperrors.ErrCodeNoFeeDue, env.Code)

	// 3. 归还后可再次借阅,可借册数未多扣
	_, env = s.do(t, http.MethodPost, "/api/v1/loans", loanReq)
	require.Equal(t, 0, env.Code, env.Message)
	_, env = s.do(t, http.MethodGet, "/api/v1/books", nil)
	var list catalog.ListBooksResponse
	require.NoError(t, json.Unmarshal(env.Data, &list))
	require.Len(t, list.List, 1)
	assert.Equal(t, 1, list.List[0].AvailableCopies)
}

func TestRequestErrors(t *testing.T) {
	s := newTestServer(t)

	t.Run("请求体格式错误", func(t *testing.T) {
		_, env := s.do(t, http.MethodPost, "/api/v1/loans", `{"patron_id":`)
		assert.Equal(t, apperrors.ErrCodeBindError, env.Code)
	})

	t.Run("读者证号不合法", func(t *testing.T) {
		_, env := s.do(t, http.MethodPost, "/api/v1/loans", gin.H{"patron_id": "12345", "book_id": 1})
		assert.Equal(t, apperrors.ErrCodeInvalidPatronID, env.Code)
		assert.Equal(t, "Invalid patron ID. Must be exactly 6 digits.", env.Message)
	})

	t.Run("路径参数不是数字", func(t *testing.T) {
		_, env := s.do(t, http.MethodGet, "/api/v1/patrons/123456/fees/abc", nil)
		assert.Equal(t, apperrors.ErrCodeInvalidParams, env.Code)
	})

	t.Run("图书不存在时以状态返回", func(t *testing.T) {
		_, env := s.do(t, http.MethodGet, "/api/v1/patrons/123456/fees/42", nil)
		require.Equal(t, 0, env.Code)
		var r appfee.CalculateLateFeeResponse
		require.NoError(t, json.Unmarshal(env.Data, &r))
		assert.Equal(t, "Book not found", r.Status)
		assert.Equal(t, "0.00", r.Amount)
	})

	t.Run("入库校验", func(t *testing.T) {
		_, env := s.do(t, http.MethodPost, "/api/v1/books", gin.H{"title": "A", "author": "B", "isbn": "978-0134190440", "total_copies": 1})
		assert.Equal(t, "ISBN must be exactly 13 digits.", env.Message)
	})

	t.Run("无应缴金额", func(t *testing.T) {
		_, env := s.do(t, http.MethodPost, "/api/v1/payments", gin.H{"patron_id": "123456", "book_id": 42})
		assert.NotEqual(t, 0, env.Code)
	})
}

func TestMiddleware(t *testing.T) {
	s := newTestServer(t)

	t.Run("生成请求ID", func(t *testing.T) {
		w, env := s.do(t, http.MethodGet, "/ping", nil)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, 0, env.Code)
		assert.Len(t, w.Header().Get(middleware.RequestIDHeader), 36)
	})

	t.Run("透传请求ID", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.Header.Set(middleware.RequestIDHeader, "req-1")
		w := httptest.NewRecorder()
		s.engine.ServeHTTP(w, req)
		assert.Equal(t, "req-1", w.Header().Get(middleware.RequestIDHeader))
	})

	t.Run("panic恢复为500", func(t *testing.T) {
		s.engine.GET("/boom", func(*gin.Context) { panic("boom") })
		w, env := s.do(t, http.MethodGet, "/boom", nil)
		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Equal(t, apperrors.ErrCodeInternal, env.Code)
	})

	t.Run("暴露metrics", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
		w := httptest.NewRecorder()
		s.engine.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
	})
}
