package fee

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/library/internal/domain/fee"
	apperrors "github.com/xiebiao/library/pkg/errors"
)

var now = time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

func clock() time.Time { return now }

type mockFeeService struct {
	mock.Mock
}

func (m *mockFeeService) Calculate(ctx context.Context, patronID string, bookID uint, at time.Time) (fee.Assessment, error) {
	args := m.Called(ctx, patronID, bookID, at)
	return args.Get(0).(fee.Assessment), args.Error(1)
}

func (m *mockFeeService) Report(ctx context.Context, patronID string, at time.Time) (*fee.Report, error) {
	args := m.Called(ctx, patronID, at)
	if r, ok := args.Get(0).(*fee.Report); ok {
		return r, args.Error(1)
	}
	return nil, args.Error(1)
}

func TestCalculateLateFeeUseCase(t *testing.T) {
	ctx := context.Background()

	t.Run("逾期金额格式化为两位小数", func(t *testing.T) {
		svc := new(mockFeeService)
		svc.On("Calculate", mock.Anything, "123456", uint(1), now).
			Return(fee.Assessment{Amount: decimal.RequireFromString("1.25"), DaysOverdue: 5, Status: fee.StatusCalculated}, nil)

		resp, err := NewCalculateLateFeeUseCase(svc, clock).Execute(ctx, CalculateLateFeeRequest{PatronID: "123456", BookID: 1})
		require.NoError(t, err)
		assert.Equal(t, "1.25", resp.Amount)
		assert.Equal(t, 5, resp.DaysOverdue)
		assert.Equal(t, "Late fee calculated", resp.Status)
		svc.AssertExpectations(t)
	})

	t.Run("缺失状态不是错误", func(t *testing.T) {
		svc := new(mockFeeService)
		svc.On("Calculate", mock.Anything, "123456", uint(9), now).Return(fee.NotFound(fee.StatusBookNotFound), nil)

		resp, err := NewCalculateLateFeeUseCase(svc, clock).Execute(ctx, CalculateLateFeeRequest{PatronID: "123456", BookID: 9})
		require.NoError(t, err)
		assert.Equal(t, "0.00", resp.Amount)
		assert.Equal(t, "Book not found", resp.Status)
	})

	t.Run("存储故障", func(t *testing.T) {
		svc := new(mockFeeService)
		svc.On("Calculate", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return(fee.Assessment{}, apperrors.ErrDatabaseError.WithCause(errors.New("down")))

		_, err := NewCalculateLateFeeUseCase(svc, clock).Execute(ctx, CalculateLateFeeRequest{PatronID: "123456", BookID: 1})
		assert.ErrorIs(t, err, apperrors.ErrDatabaseError)
	})
}

func TestPatronStatusUseCase(t *testing.T) {
	ctx := context.Background()

	report := &fee.Report{
		PatronID: "123456",
		Loans: []fee.LoanSummary{
			{BookID: 1, Title: "Dune", DueDate: "2024-06-13", DaysLate: 2, Fee: decimal.RequireFromString("0.5")},
			{BookID: 2, Title: "Emma", DueDate: "2024-06-10", DaysLate: 5, Fee: decimal.RequireFromString("1.25"), Returned: true},
		},
		TotalFee: decimal.RequireFromString("1.75"),
	}
	svc := new(mockFeeService)
	svc.On("Report", mock.Anything, "123456", now).Return(report, nil)

	resp, err := NewPatronStatusUseCase(svc, clock).Execute(ctx, PatronStatusRequest{PatronID: "123456"})
	require.NoError(t, err)
	assert.Equal(t, "1.75", resp.TotalLateFees)
	require.Len(t, resp.BorrowedBooks, 2)
	assert.Equal(t, "0.50", resp.BorrowedBooks[0].Fee)
	assert.Equal(t, "Dune", resp.BorrowedBooks[0].Title)
	assert.Equal(t, 1, resp.Outstanding)
}
