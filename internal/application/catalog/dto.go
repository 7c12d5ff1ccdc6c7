package catalog

import (
	"github.com/xiebiao/library/internal/domain/book"
)

// BookItem 图书DTO
type BookItem struct {
	ID              uint   `json:"id"`
	Title           string `json:"title"`
	Author          string `json:"author"`
	ISBN            string `json:"isbn"`
	TotalCopies     int    `json:"total_copies"`
	AvailableCopies int    `json:"available_copies"`
	CreatedAt       string `json:"created_at"`
}

func toBookItem(b *book.Book) BookItem {
	return BookItem{
		ID:              b.ID,
		Title:           b.Title,
		Author:          b.Author,
		ISBN:            b.ISBN,
		TotalCopies:     b.TotalCopies,
		AvailableCopies: b.AvailableCopies,
		CreatedAt:       b.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}

func toBookItems(books []*book.Book) []BookItem {
	items := make([]BookItem, 0, len(books))
	for _, b := range books {
		items = append(items, toBookItem(b))
	}
	return items
}
