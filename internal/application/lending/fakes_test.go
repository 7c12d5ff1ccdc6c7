package lending

import (
	"context"
	"time"

	"github.com/xiebiao/library/internal/domain/book"
	"github.com/xiebiao/library/internal/domain/event"
	"github.com/xiebiao/library/internal/domain/loan"
)

var fixedNow = time.Date(2024, 5, 10, 9, 30, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }

// fakeBookRepo 记录可借册数的增量调用
type fakeBookRepo struct {
	books     map[uint]*book.Book
	findErr   error
	updateErr error
	deltas    []int
}

func newFakeBookRepo(books ...*book.Book) *fakeBookRepo {
	r := &fakeBookRepo{books: map[uint]*book.Book{}}
	for _, b := range books {
		r.books[b.ID] = b
	}
	return r
}

func (r *fakeBookRepo) Create(context.Context, *book.Book) error { return nil }

func (r *fakeBookRepo) FindByID(_ context.Context, id uint) (*book.Book, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	if b, ok := r.books[id]; ok {
		return b, nil
	}
	return nil, book.ErrBookNotFound
}

func (r *fakeBookRepo) FindByISBN(context.Context, string) (*book.Book, error) {
	return nil, book.ErrBookNotFound
}

func (r *fakeBookRepo) ListAll(context.Context) ([]*book.Book, error) { return nil, nil }

func (r *fakeBookRepo) UpdateAvailability(_ context.Context, id uint, delta int) error {
	if r.updateErr != nil {
		return r.updateErr
	}
	r.deltas = append(r.deltas, delta)
	r.books[id].AvailableCopies += delta
	return nil
}

// fakeLoanRepo 内存借阅记录
type fakeLoanRepo struct {
	outstanding int
	countErr    error
	createErr   error
	markErr     error
	created     []*loan.Loan
	returned    []time.Time
}

func (r *fakeLoanRepo) CountOutstanding(context.Context, string) (int, error) {
	return r.outstanding, r.countErr
}

func (r *fakeLoanRepo) Create(_ context.Context, l *loan.Loan) error {
	if r.createErr != nil {
		return r.createErr
	}
	l.ID = uint(len(r.created) + 1)
	r.created = append(r.created, l)
	return nil
}

func (r *fakeLoanRepo) MarkReturned(_ context.Context, _ string, _ uint, at time.Time) error {
	if r.markErr != nil {
		return r.markErr
	}
	r.returned = append(r.returned, at)
	return nil
}

func (r *fakeLoanRepo) ListByPatron(context.Context, string) ([]*loan.Loan, error) { return nil, nil }

func (r *fakeLoanRepo) FindByPatronAndBook(context.Context, string, uint) (*loan.Loan, error) {
	return nil, loan.ErrLoanNotFound
}

// recordingPublisher 记录发布的事件
type recordingPublisher struct {
	events []event.Event
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, e event.Event) error {
	p.events = append(p.events, e)
	return p.err
}
