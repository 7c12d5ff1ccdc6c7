package errors

import (
	"errors"
	"fmt"
)

// AppError 自定义应用错误
// 设计说明：
// 1. Code用于客户端判断错误类型（不要直接暴露HTTP状态码）
// 2. Message是返回给读者的提示信息（借阅、还书、缴费等结果文案）
// 3. Err是内部错误，仅记录到日志，不返回给客户端
type AppError struct {
	Code    int    `json:"code"`    // 业务错误码
	Message string `json:"message"` // 用户友好的错误提示
	Err     error  `json:"-"`       // 内部错误（不序列化）
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%d] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%d] %s", e.Code, e.Message)
}

// Unwrap 支持errors.Is和errors.As
func (e *AppError) Unwrap() error {
	return e.Err
}

// Is 按错误码比较，WithCause派生出的错误仍然匹配原哨兵错误
func (e *AppError) Is(target error) bool {
	var t *AppError
	if !errors.As(target, &t) {
		return false
	}
	return t.Code == e.Code && t.Message == e.Message
}

// WithCause 基于哨兵错误附加底层原因（不修改哨兵本身）
func (e *AppError) WithCause(err error) *AppError {
	return &AppError{Code: e.Code, Message: e.Message, Err: err}
}

// New 创建新的AppError
func New(code int, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Newf 格式化创建AppError
func Newf(code int, format string, args ...interface{}) *AppError {
	return &AppError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap 包装系统错误（如数据库错误、网络错误）
// 用途：将底层错误转换为业务错误，隐藏实现细节
func Wrap(err error, message string) *AppError {
	return &AppError{
		Code:    ErrCodeInternal,
		Message: message,
		Err:     err,
	}
}

// Wrapf 格式化包装错误
func Wrapf(err error, format string, args ...interface{}) *AppError {
	return &AppError{
		Code:    ErrCodeInternal,
		Message: fmt.Sprintf(format, args...),
		Err:     err,
	}
}

// =========================================
// 错误码定义
// =========================================
// 规范：
// - 4xxxx: 客户端错误（参数错误、业务规则校验失败）
// - 5xxxx: 服务端错误（数据库异常、支付网关异常）

const (
	// 系统级错误码（50000-50099）
	ErrCodeInternal      = 50000 // 内部错误
	ErrCodeDatabaseError = 50001 // 数据库错误
	ErrCodeRedisError    = 50002 // Redis错误
	ErrCodeGatewayError  = 50003 // 支付网关异常

	// 资源错误（40400-40499）
	ErrCodeNotFound       = 40400 // 资源不存在(通用)
	ErrCodeBookNotFound   = 40402 // 图书不存在
	ErrCodeLoanNotFound   = 40404 // 借阅记录不存在
	ErrCodeActiveNotFound = 40405 // 没有未归还的借阅记录

	// 业务规则错误（40000-40099）
	ErrCodeBusinessError   = 40000 // 业务错误(通用)
	ErrCodeNotAvailable    = 40001 // 图书无可借副本
	ErrCodeBorrowLimit     = 40002 // 超出借阅上限
	ErrCodeAlreadyBorrowed = 40003 // 同一本书已在借
	ErrCodeISBNDuplicate   = 40004 // ISBN已存在
	ErrCodeNoFeeDue        = 40006 // 无滞纳金
	ErrCodeGatewayDeclined = 40007 // 支付网关拒绝
	ErrCodeDuplicateEntry  = 40009 // 重复记录(通用)

	// 参数错误（40900-40999）
	ErrCodeInvalidParams   = 40900 // 参数错误
	ErrCodeBindError       = 40901 // 参数绑定失败
	ErrCodeInvalidPatronID = 40902 // 读者证号格式错误
	ErrCodeInvalidAmount   = 40903 // 金额不合法
)

// =========================================
// 预定义错误（避免每次都New）
// =========================================

var (
	// 系统错误
	ErrInternal      = New(ErrCodeInternal, "Internal server error.")
	ErrDatabaseError = New(ErrCodeDatabaseError, "Database error occurred.")
	ErrRedisError    = New(ErrCodeRedisError, "Cache service error.")

	// 资源不存在
	ErrNotFound = New(ErrCodeNotFound, "Resource not found.")

	// 参数错误
	ErrInvalidParams = New(ErrCodeInvalidParams, "Invalid parameters.")
	ErrBindError     = New(ErrCodeBindError, "Malformed request body.")
)

// =========================================
// 辅助函数
// =========================================

// IsAppError 判断是否为AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// GetAppError 提取AppError（如果不是AppError则包装成Internal错误）
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return Wrap(err, "Internal server error.")
}

// MessageOf 返回错误面向用户的提示信息
func MessageOf(err error) string {
	if err == nil {
		return ""
	}
	return GetAppError(err).Message
}

// CodeOf 返回错误码，nil表示成功(0)
func CodeOf(err error) int {
	if err == nil {
		return 0
	}
	return GetAppError(err).Code
}
