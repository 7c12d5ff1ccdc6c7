package loan

import (
	"fmt"

	apperrors "github.com/xiebiao/library/pkg/errors"
)

// 借阅领域错误定义
var (
	// ErrInvalidPatronID 读者证号格式错误
	ErrInvalidPatronID = apperrors.New(apperrors.ErrCodeInvalidPatronID, "Invalid patron ID. Must be exactly 6 digits.")

	// ErrNotAvailable 无可借副本
	ErrNotAvailable = apperrors.New(apperrors.ErrCodeNotAvailable, "This book is currently not available.")

	// ErrBorrowLimit 超出借阅上限
	ErrBorrowLimit = apperrors.New(apperrors.ErrCodeBorrowLimit,
		fmt.Sprintf("You have reached the maximum borrowing limit of %d books.", MaxOutstandingLoans))

	// ErrAlreadyBorrowed 读者已借出同一本书且未归还
	ErrAlreadyBorrowed = apperrors.New(apperrors.ErrCodeAlreadyBorrowed, "You have already borrowed this book.")

	// ErrBookNotLocated 还书时图书不存在
	ErrBookNotLocated = apperrors.New(apperrors.ErrCodeBookNotFound, "This book cannot be located.")

	// ErrNoActiveLoan 没有未归还的借阅记录
	ErrNoActiveLoan = apperrors.New(apperrors.ErrCodeActiveNotFound, "No active borrow record.")

	// ErrLoanNotFound 借阅记录不存在
	ErrLoanNotFound = apperrors.New(apperrors.ErrCodeLoanNotFound, "Borrow record not located.")

	// ErrCreateFailed 写入借阅记录失败
	ErrCreateFailed = apperrors.New(apperrors.ErrCodeDatabaseError, "Database error occurred while creating borrow record.")

	// ErrDecrementFailed 借出后扣减可借册数失败(借阅记录已写入)
	ErrDecrementFailed = apperrors.New(apperrors.ErrCodeDatabaseError, "Database error occurred while updating book availability.")

	// ErrIncrementFailed 归还后增加可借册数失败(归还时间已写入)
	ErrIncrementFailed = apperrors.New(apperrors.ErrCodeDatabaseError, "Failed to update book availability.")

	// ErrCountFailed 统计在借册数失败
	ErrCountFailed = apperrors.New(apperrors.ErrCodeDatabaseError, "Database error occurred while checking borrowed books.")
)
