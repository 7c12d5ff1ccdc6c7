// Package memory 进程内仓储实现
//
// database.driver=memory时使用,便于本地调试与接口测试;进程退出后数据丢失
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/xiebiao/library/internal/domain/book"
	"github.com/xiebiao/library/internal/domain/loan"
)

// Store 图书与借阅记录共享同一把锁,ListByPatron需要联表读取书名
type Store struct {
	mu     sync.RWMutex
	books  map[uint]book.Book
	loans  []loan.Loan
	nextID uint
	now    func() time.Time
}

// NewStore 创建内存存储
func NewStore() *Store {
	return &Store{
		books: make(map[uint]book.Book),
		now:   time.Now,
	}
}

// Books 图书仓储
func (s *Store) Books() book.Repository {
	return &bookRepository{s: s}
}

// Loans 借阅记录仓储
func (s *Store) Loans() loan.Repository {
	return &loanRepository{s: s}
}

type bookRepository struct {
	s *Store
}

func (r *bookRepository) Create(_ context.Context, b *book.Book) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, existing := range r.s.books {
		if existing.ISBN == b.ISBN {
			return book.ErrISBNDuplicate
		}
	}

	r.s.nextID++
	b.ID = r.s.nextID
	now := r.s.now()
	b.CreatedAt, b.UpdatedAt = now, now
	r.s.books[b.ID] = *b
	return nil
}

func (r *bookRepository) FindByID(_ context.Context, id uint) (*book.Book, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	b, ok := r.s.books[id]
	if !ok {
		return nil, book.ErrBookNotFound
	}
	return &b, nil
}

func (r *bookRepository) FindByISBN(_ context.Context, isbn string) (*book.Book, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, b := range r.s.books {
		if b.ISBN == isbn {
			return &b, nil
		}
	}
	return nil, book.ErrBookNotFound
}

func (r *bookRepository) ListAll(_ context.Context) ([]*book.Book, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	books := make([]*book.Book, 0, len(r.s.books))
	for id := range r.s.books {
		b := r.s.books[id]
		books = append(books, &b)
	}
	sort.Slice(books, func(i, j int) bool { return books[i].ID < books[j].ID })
	return books, nil
}

func (r *bookRepository) UpdateAvailability(_ context.Context, id uint, delta int) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	b, ok := r.s.books[id]
	if !ok {
		return book.ErrBookNotFound
	}
	next := b.AvailableCopies + delta
	if next < 0 || next > b.TotalCopies {
		return book.ErrAvailabilityOutOfRange
	}
	b.AvailableCopies = next
	b.UpdatedAt = r.s.now()
	r.s.books[id] = b
	return nil
}

type loanRepository struct {
	s *Store
}

func (r *loanRepository) CountOutstanding(_ context.Context, patronID string) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	n := 0
	for i := range r.s.loans {
		if r.s.loans[i].PatronID == patronID && !r.s.loans[i].IsReturned() {
			n++
		}
	}
	return n, nil
}

func (r *loanRepository) Create(_ context.Context, l *loan.Loan) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for i := range r.s.loans {
		existing := &r.s.loans[i]
		if existing.PatronID == l.PatronID && existing.BookID == l.BookID && !existing.IsReturned() {
			return loan.ErrAlreadyBorrowed
		}
	}

	l.ID = uint(len(r.s.loans) + 1)
	r.s.loans = append(r.s.loans, *l)
	return nil
}

func (r *loanRepository) MarkReturned(_ context.Context, patronID string, bookID uint, returnedAt time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for i := range r.s.loans {
		l := &r.s.loans[i]
		if l.PatronID == patronID && l.BookID == bookID && !l.IsReturned() {
			t := returnedAt
			l.ReturnedAt = &t
			return nil
		}
	}
	return loan.ErrNoActiveLoan
}

func (r *loanRepository) ListByPatron(_ context.Context, patronID string) ([]*loan.Loan, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	loans := make([]*loan.Loan, 0)
	for i := range r.s.loans {
		if r.s.loans[i].PatronID != patronID {
			continue
		}
		l := r.s.loans[i]
		if b, ok := r.s.books[l.BookID]; ok {
			l.Title, l.ISBN = b.Title, b.ISBN
		}
		loans = append(loans, &l)
	}
	return loans, nil
}

func (r *loanRepository) FindByPatronAndBook(_ context.Context, patronID string, bookID uint) (*loan.Loan, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var latest *loan.Loan
	for i := range r.s.loans {
		l := r.s.loans[i]
		if l.PatronID != patronID || l.BookID != bookID {
			continue
		}
		if !l.IsReturned() {
			return &l, nil
		}
		if latest == nil || !l.BorrowedAt.Before(latest.BorrowedAt) {
			latest = &l
		}
	}
	if latest == nil {
		return nil, loan.ErrLoanNotFound
	}
	return latest, nil
}
