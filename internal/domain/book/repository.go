package book

import (
	"context"
)

// Repository 图书仓储接口(依赖倒置原则)
// 设计说明:
// 1. 由domain层定义接口,infrastructure层实现
// 2. 查询不到时返回ErrBookNotFound,其它错误均视为存储故障
type Repository interface {
	// Create 创建图书,成功后回填ID
	Create(ctx context.Context, book *Book) error

	// FindByID 根据ID查找图书
	FindByID(ctx context.Context, id uint) (*Book, error)

	// FindByISBN 根据ISBN查找图书
	FindByISBN(ctx context.Context, isbn string) (*Book, error)

	// ListAll 按入库顺序返回全部图书
	ListAll(ctx context.Context) ([]*Book, error)

	// UpdateAvailability 增量更新可借册数
	// delta为-1表示借出,+1表示归还
	UpdateAvailability(ctx context.Context, id uint, delta int) error
}
