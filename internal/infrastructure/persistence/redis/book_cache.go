package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/xiebiao/library/internal/domain/book"
	"github.com/xiebiao/library/pkg/metrics"
)

const (
	// bookKeyPrefix 图书详情缓存Key: library:book:<id>
	bookKeyPrefix = "library:book:"
	// DefaultBookTTL 未配置时的缓存时间
	DefaultBookTTL = 5 * time.Minute
)

// CachedBookRepository 带缓存的图书仓储(装饰器)
// 设计说明:
// 1. FindByID走Cache-Aside:先查Redis,未命中查库后回填
// 2. 可借册数变化后删除缓存,下次读取时重新加载
// 3. Redis故障只记录日志,降级为直接查库
// 4. 其余方法直接委托给底层仓储
type CachedBookRepository struct {
	book.Repository
	client *redis.Client
	ttl    time.Duration
	log    *zap.Logger
}

// NewCachedBookRepository 创建带缓存的图书仓储
func NewCachedBookRepository(inner book.Repository, client *redis.Client, ttl time.Duration, log *zap.Logger) *CachedBookRepository {
	if ttl <= 0 {
		ttl = DefaultBookTTL
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &CachedBookRepository{
		Repository: inner,
		client:     client,
		ttl:        ttl,
		log:        log,
	}
}

// cachedBook 缓存中的图书结构
type cachedBook struct {
	ID              uint      `json:"id"`
	Title           string    `json:"title"`
	Author          string    `json:"author"`
	ISBN            string    `json:"isbn"`
	TotalCopies     int       `json:"total_copies"`
	AvailableCopies int       `json:"available_copies"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// FindByID 根据ID查找图书(Cache-Aside)
func (r *CachedBookRepository) FindByID(ctx context.Context, id uint) (*book.Book, error) {
	key := bookKey(id)

	// 1. 查缓存
	data, err := r.client.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var cb cachedBook
		if jsonErr := json.Unmarshal(data, &cb); jsonErr == nil {
			metrics.RecordCache("hit")
			return cb.toEntity(), nil
		}
		// 数据损坏按未命中处理
		metrics.RecordCache("miss")
	case errors.Is(err, redis.Nil):
		metrics.RecordCache("miss")
	default:
		metrics.RecordCache("error")
		r.log.Warn("读取图书缓存失败", zap.Uint("book_id", id), zap.Error(err))
	}

	// 2. 查库
	b, err := r.Repository.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// 3. 回填缓存(不存在的图书不缓存)
	r.store(ctx, key, b)
	return b, nil
}

// UpdateAvailability 更新可借册数后删除缓存
// 更新失败也删除,避免缓存与数据库状态不一致
func (r *CachedBookRepository) UpdateAvailability(ctx context.Context, id uint, delta int) error {
	err := r.Repository.UpdateAvailability(ctx, id, delta)
	r.invalidate(ctx, id)
	return err
}

// Create 创建图书,并清理同ID的残留缓存
func (r *CachedBookRepository) Create(ctx context.Context, b *book.Book) error {
	if err := r.Repository.Create(ctx, b); err != nil {
		return err
	}
	r.invalidate(ctx, b.ID)
	return nil
}

func (r *CachedBookRepository) store(ctx context.Context, key string, b *book.Book) {
	data, err := json.Marshal(fromEntity(b))
	if err != nil {
		return
	}
	if err := r.client.Set(ctx, key, data, r.ttl).Err(); err != nil {
		r.log.Warn("写入图书缓存失败", zap.Uint("book_id", b.ID), zap.Error(err))
	}
}

func (r *CachedBookRepository) invalidate(ctx context.Context, id uint) {
	if err := r.client.Del(ctx, bookKey(id)).Err(); err != nil {
		r.log.Warn("删除图书缓存失败", zap.Uint("book_id", id), zap.Error(err))
	}
}

func bookKey(id uint) string {
	return fmt.Sprintf("%s%d", bookKeyPrefix, id)
}

func fromEntity(b *book.Book) cachedBook {
	return cachedBook{
		ID:              b.ID,
		Title:           b.Title,
		Author:          b.Author,
		ISBN:            b.ISBN,
		TotalCopies:     b.TotalCopies,
		AvailableCopies: b.AvailableCopies,
		CreatedAt:       b.CreatedAt,
		UpdatedAt:       b.UpdatedAt,
	}
}

func (c cachedBook) toEntity() *book.Book {
	return &book.Book{
		ID:              c.ID,
		Title:           c.Title,
		Author:          c.Author,
		ISBN:            c.ISBN,
		TotalCopies:     c.TotalCopies,
		AvailableCopies: c.AvailableCopies,
		CreatedAt:       c.CreatedAt,
		UpdatedAt:       c.UpdatedAt,
	}
}
