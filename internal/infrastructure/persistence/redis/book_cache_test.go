package redis

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/xiebiao/library/internal/domain/book"
	"github.com/xiebiao/library/internal/infrastructure/config"
)

// countingRepo 统计FindByID调用次数的内存仓储
type countingRepo struct {
	book.Repository
	books     map[uint]*book.Book
	findCalls int
}

func (r *countingRepo) FindByID(_ context.Context, id uint) (*book.Book, error) {
	r.findCalls++
	b, ok := r.books[id]
	if !ok {
		return nil, book.ErrBookNotFound
	}
	cp := *b
	return &cp, nil
}

func (r *countingRepo) UpdateAvailability(_ context.Context, id uint, delta int) error {
	b, ok := r.books[id]
	if !ok {
		return book.ErrBookNotFound
	}
	b.AvailableCopies += delta
	return nil
}

func (r *countingRepo) Create(_ context.Context, b *book.Book) error {
	b.ID = uint(len(r.books) + 1)
	cp := *b
	r.books[b.ID] = &cp
	return nil
}

func setup(t *testing.T) (*miniredis.Miniredis, *countingRepo, *CachedBookRepository) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	inner := &countingRepo{books: map[uint]*book.Book{
		1: {ID: 1, Title: "Go语言圣经", Author: "Alan Donovan", ISBN: "9787111558422", TotalCopies: 2, AvailableCopies: 2},
	}}
	return mr, inner, NewCachedBookRepository(inner, client, time.Minute, zap.NewNop())
}

func TestCachedBookRepository_FindByID(t *testing.T) {
	ctx := context.Background()

	t.Run("第二次读取命中缓存", func(t *testing.T) {
		mr, inner, repo := setup(t)

		b, err := repo.FindByID(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, "Go语言圣经", b.Title)
		assert.True(t, mr.Exists("library:book:1"))
		assert.Equal(t, time.Minute, mr.TTL("library:book:1"))

		b, err = repo.FindByID(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, 2, b.AvailableCopies)
		assert.Equal(t, 1, inner.findCalls)
	})

	t.Run("不存在的图书不缓存", func(t *testing.T) {
		mr, inner, repo := setup(t)

		_, err := repo.FindByID(ctx, 9)
		assert.ErrorIs(t, err, book.ErrBookNotFound)
		assert.False(t, mr.Exists("library:book:9"))

		_, _ = repo.FindByID(ctx, 9)
		assert.Equal(t, 2, inner.findCalls)
	})

	t.Run("缓存数据损坏时回源", func(t *testing.T) {
		mr, inner, repo := setup(t)
		require.NoError(t, mr.Set("library:book:1", "{broken"))

		b, err := repo.FindByID(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, uint(1), b.ID)
		assert.Equal(t, 1, inner.findCalls)
	})

	t.Run("Redis不可用时降级查库", func(t *testing.T) {
		mr, inner, repo := setup(t)
		mr.Close()

		b, err := repo.FindByID(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, "Go语言圣经", b.Title)
		assert.Equal(t, 1, inner.findCalls)
	})
}

func TestCachedBookRepository_UpdateAvailability(t *testing.T) {
	ctx := context.Background()
	mr, inner, repo := setup(t)

	_, err := repo.FindByID(ctx, 1)
	require.NoError(t, err)
	require.True(t, mr.Exists("library:book:1"))

	require.NoError(t, repo.UpdateAvailability(ctx, 1, -1))
	assert.False(t, mr.Exists("library:book:1"), "更新后缓存失效")

	b, err := repo.FindByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, b.AvailableCopies)
	assert.Equal(t, 2, inner.findCalls)

	assert.ErrorIs(t, repo.UpdateAvailability(ctx, 9, 1), book.ErrBookNotFound)
}

func TestCachedBookRepository_Create(t *testing.T) {
	ctx := context.Background()
	mr, _, repo := setup(t)
	require.NoError(t, mr.Set("library:book:2", `{"id":2,"title":"stale"}`))

	b := book.NewBook("设计数据密集型应用", "Martin Kleppmann", "9787519821111", 1)
	require.NoError(t, repo.Create(ctx, b))
	assert.Equal(t, uint(2), b.ID)
	assert.False(t, mr.Exists("library:book:2"))

	got, err := repo.FindByID(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, "设计数据密集型应用", got.Title)
}

func TestNewClient(t *testing.T) {
	mr := miniredis.RunT(t)
	port, err := strconv.Atoi(mr.Port())
	require.NoError(t, err)

	client, err := NewClient(context.Background(), config.RedisConfig{Host: mr.Host(), Port: port}, zap.NewNop())
	require.NoError(t, err)
	defer client.Close()

	assert.NoError(t, client.Set(context.Background(), "k", "v", 0).Err())
	mr.CheckGet(t, "k", "v")
}
