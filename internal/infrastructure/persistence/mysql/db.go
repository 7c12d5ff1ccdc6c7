package mysql

import (
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/xiebiao/library/internal/infrastructure/config"
)

// NewDB 创建数据库连接
// 设计说明：
// 1. 使用GORM v2作为ORM框架
// 2. 配置连接池参数（MaxOpenConns、MaxIdleConns、ConnMaxLifetime）
// 3. 开发环境开启SQL日志，生产环境关闭
// 4. database.auto_migrate为true时自动迁移表结构
func NewDB(cfg *config.Config, log *zap.Logger) (*gorm.DB, error) {
	// 1. 配置GORM日志
	logLevel := logger.Silent
	if cfg.Server.Mode == "debug" {
		logLevel = logger.Info // 开发环境打印SQL
	}

	// 2. 连接数据库
	db, err := gorm.Open(mysql.Open(cfg.Database.DSN()), &gorm.Config{
		Logger:  logger.Default.LogMode(logLevel),
		NowFunc: time.Now,
	})
	if err != nil {
		return nil, fmt.Errorf("连接数据库失败: %w", err)
	}

	// 3. 配置连接池
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("获取SQL DB失败: %w", err)
	}
	sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	// 4. 测试连接
	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("数据库连接测试失败: %w", err)
	}
	log.Info("数据库连接成功",
		zap.String("host", cfg.Database.Host),
		zap.String("dbname", cfg.Database.DBName),
	)

	// 5. 自动迁移表结构
	// 生产环境应使用版本化的迁移脚本
	if cfg.Database.AutoMigrate {
		if err := AutoMigrate(db); err != nil {
			return nil, fmt.Errorf("数据库迁移失败: %w", err)
		}
		log.Info("数据库表结构迁移完成")
	}

	return db, nil
}

// AutoMigrate 自动迁移表结构
// AutoMigrate只会创建表、添加字段，不会删除或修改现有字段
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&BookModel{},
		&LoanModel{},
	)
}

// BookModel GORM图书模型
// 设计说明:
// 1. 这是infrastructure层的数据模型，包含GORM tag
// 2. domain/book/entity.go是领域实体，不依赖GORM
// 3. ISBN有唯一索引,并发入库时由数据库兜底
type BookModel struct {
	ID              uint      `gorm:"primaryKey"`
	Title           string    `gorm:"size:200;not null;comment:书名"`
	Author          string    `gorm:"size:100;not null;comment:作者"`
	ISBN            string    `gorm:"uniqueIndex;size:13;not null;comment:ISBN(13位数字)"`
	TotalCopies     int       `gorm:"not null;comment:馆藏总册数"`
	AvailableCopies int       `gorm:"not null;comment:可借册数"`
	CreatedAt       time.Time `gorm:"comment:创建时间"`
	UpdatedAt       time.Time `gorm:"comment:更新时间"`
}

// TableName 指定表名
func (BookModel) TableName() string {
	return "books"
}

// LoanModel GORM借阅记录模型
// 1. ReturnedAt为NULL表示未归还
// 2. (patron_id, book_id)复合索引服务于还书与滞纳金查询
// 3. active_key为生成列,未归还时取"patron_id:book_id",归还后为NULL;
//    唯一索引保证同一读者同一本书最多一条未归还记录(NULL不参与唯一约束)
type LoanModel struct {
	ID         uint       `gorm:"primaryKey"`
	PatronID   string     `gorm:"index:idx_patron_book;size:6;not null;comment:读者证号"`
	BookID     uint       `gorm:"index:idx_patron_book;not null;comment:图书ID"`
	BorrowedAt time.Time  `gorm:"not null;comment:借出时间"`
	DueAt      time.Time  `gorm:"not null;comment:应还时间"`
	ReturnedAt *time.Time `gorm:"index;comment:归还时间"`
	ActiveKey  *string    `gorm:"->;type:varchar(32) GENERATED ALWAYS AS (IF(returned_at IS NULL, CONCAT(patron_id, ':', book_id), NULL)) STORED;uniqueIndex:uk_active_loan"`
}

// TableName 指定表名
func (LoanModel) TableName() string {
	return "loans"
}
