package dto

import "github.com/shopspring/decimal"

// AddBookRequest HTTP图书入库请求
// 字段规则(非空、长度、ISBN格式)由领域层校验,返回统一的错误文案
type AddBookRequest struct {
	Title       string `json:"title" example:"The Go Programming Language"`
	Author      string `json:"author" example:"Alan Donovan"`
	ISBN        string `json:"isbn" example:"9780134190440"`
	TotalCopies int    `json:"total_copies" example:"3"`
}

// ListBooksRequest HTTP馆藏列表请求
type ListBooksRequest struct {
	Page     int `form:"page" binding:"omitempty,min=1" example:"1"`
	PageSize int `form:"page_size" binding:"omitempty,min=1,max=100" example:"20"`
}

// SearchBooksRequest HTTP馆藏检索请求
// type为title/author/isbn之一,其它取值返回空列表
type SearchBooksRequest struct {
	Term  string `form:"q" example:"go"`
	Field string `form:"type" example:"title"`
}

// LoanRequest HTTP借书/还书请求
type LoanRequest struct {
	PatronID string `json:"patron_id" example:"123456"`
	BookID   uint   `json:"book_id" binding:"required" example:"1"`
}

// PayLateFeeRequest HTTP缴纳滞纳金请求
type PayLateFeeRequest struct {
	PatronID string `json:"patron_id" example:"123456"`
	BookID   uint   `json:"book_id" binding:"required" example:"1"`
}

// RefundRequest HTTP退款请求
// amount支持数字或字符串("1.25")
type RefundRequest struct {
	TransactionID string          `json:"transaction_id" example:"txn_3f2c9a0e5b7d4c1e9a8b6d5c4e3f2a1b"`
	Amount        decimal.Decimal `json:"amount" swaggertype:"string" example:"1.25"`
}
