package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/xiebiao/library/pkg/errors"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func do(t *testing.T, fn func(c *gin.Context)) Response {
	t.Helper()
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	fn(c)

	require.Equal(t, http.StatusOK, w.Code)
	var resp Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestSuccess(t *testing.T) {
	resp := do(t, func(c *gin.Context) {
		SuccessWithMessage(c, "Borrow successful.", gin.H{"book_id": 1})
	})
	assert.Equal(t, 0, resp.Code)
	assert.Equal(t, "Borrow successful.", resp.Message)
	assert.NotNil(t, resp.Data)
}

func TestError(t *testing.T) {
	t.Run("AppError原样返回码和文案", func(t *testing.T) {
		sentinel := apperrors.New(apperrors.ErrCodeBorrowLimit, "You have reached the maximum borrowing limit of 5 books.")
		resp := do(t, func(c *gin.Context) { Error(c, sentinel) })
		assert.Equal(t, apperrors.ErrCodeBorrowLimit, resp.Code)
		assert.Equal(t, sentinel.Message, resp.Message)
		assert.Nil(t, resp.Data)
	})

	t.Run("内部原因不暴露", func(t *testing.T) {
		err := apperrors.ErrDatabaseError.WithCause(errors.New("dial tcp: refused"))
		resp := do(t, func(c *gin.Context) { Error(c, err) })
		assert.Equal(t, apperrors.ErrCodeDatabaseError, resp.Code)
		assert.NotContains(t, resp.Message, "refused")
	})

	t.Run("普通error视为内部错误", func(t *testing.T) {
		resp := do(t, func(c *gin.Context) { Error(c, errors.New("boom")) })
		assert.Equal(t, apperrors.ErrCodeInternal, resp.Code)
	})
}
