package book

import (
	apperrors "github.com/xiebiao/library/pkg/errors"
)

// 图书领域错误定义
var (
	// ErrBookNotFound 图书不存在
	ErrBookNotFound = apperrors.New(apperrors.ErrCodeBookNotFound, "Book not found.")

	// ErrISBNDuplicate ISBN已存在
	ErrISBNDuplicate = apperrors.New(apperrors.ErrCodeISBNDuplicate, "A book with this ISBN already exists.")

	// ErrTitleRequired 书名为空
	ErrTitleRequired = apperrors.New(apperrors.ErrCodeInvalidParams, "Title is required.")

	// ErrTitleTooLong 书名超长
	ErrTitleTooLong = apperrors.New(apperrors.ErrCodeInvalidParams, "Title must be less than 200 characters.")

	// ErrAuthorRequired 作者为空
	ErrAuthorRequired = apperrors.New(apperrors.ErrCodeInvalidParams, "Author is required.")

	// ErrAuthorTooLong 作者超长
	ErrAuthorTooLong = apperrors.New(apperrors.ErrCodeInvalidParams, "Author must be less than 100 characters.")

	// ErrInvalidISBN ISBN格式不正确
	ErrInvalidISBN = apperrors.New(apperrors.ErrCodeInvalidParams, "ISBN must be exactly 13 digits.")

	// ErrInvalidCopies 馆藏册数不合法
	ErrInvalidCopies = apperrors.New(apperrors.ErrCodeInvalidParams, "Total copies must be a positive integer.")

	// ErrAvailabilityOutOfRange 可借册数增量越界(低于0或超过总册数)
	ErrAvailabilityOutOfRange = apperrors.New(apperrors.ErrCodeBusinessError, "Book availability out of range.")

	// ErrCreateFailed 入库写库失败
	ErrCreateFailed = apperrors.New(apperrors.ErrCodeDatabaseError, "Database error occurred while adding the book.")
)
