package book

import (
	"time"
)

// Book 图书实体(聚合根)
// 设计说明:
// 1. ISBN作为业务唯一标识(数据库层保证唯一性)
// 2. TotalCopies为馆藏总册数,AvailableCopies为当前可借册数
// 3. AvailableCopies只能通过仓储的增量更新修改(借出-1,归还+1)
type Book struct {
	ID              uint
	Title           string // 书名(已去除首尾空白)
	Author          string // 作者(已去除首尾空白)
	ISBN            string // 13位数字
	TotalCopies     int    // 馆藏总册数
	AvailableCopies int    // 可借册数,0 <= AvailableCopies <= TotalCopies
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// NewBook 创建新图书(工厂方法)
// 新入库的图书全部可借:AvailableCopies = TotalCopies
func NewBook(title, author, isbn string, totalCopies int) *Book {
	now := time.Now()
	return &Book{
		Title:           title,
		Author:          author,
		ISBN:            isbn,
		TotalCopies:     totalCopies,
		AvailableCopies: totalCopies,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

// IsAvailable 是否还有可借副本
func (b *Book) IsAvailable() bool {
	return b.AvailableCopies > 0
}
