package book

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"
)

const (
	// MaxTitleLength 书名最大长度(去除首尾空白后)
	MaxTitleLength = 200
	// MaxAuthorLength 作者最大长度(去除首尾空白后)
	MaxAuthorLength = 100
	// ISBNLength ISBN固定长度
	ISBNLength = 13
)

// SearchField 检索字段
type SearchField string

const (
	SearchByTitle  SearchField = "title"
	SearchByAuthor SearchField = "author"
	SearchByISBN   SearchField = "isbn"
)

// Service 图书领域服务接口
// 设计说明:
// 1. 领域服务封装入库校验和馆藏检索规则
// 2. 不依赖具体的Repository实现(依赖倒置)
type Service interface {
	// AddBook 图书入库
	// 业务规则(按顺序校验,第一条不满足即返回):
	// - 书名非空且不超过200字符
	// - 作者非空且不超过100字符
	// - ISBN为13位数字
	// - 馆藏册数为正整数
	// - ISBN不能重复
	AddBook(ctx context.Context, title, author, isbn string, totalCopies int) (*Book, error)

	// GetBook 根据ID获取图书
	GetBook(ctx context.Context, id uint) (*Book, error)

	// ListBooks 按入库顺序返回全部馆藏
	ListBooks(ctx context.Context) ([]*Book, error)

	// SearchCatalog 按字段做不区分大小写的子串匹配
	// term或field为空串、field不是title/author/isbn时返回空列表;
	// 只含空白的term去除空白后为空串,匹配全部图书
	SearchCatalog(ctx context.Context, term string, field SearchField) ([]*Book, error)
}

// service 领域服务实现
type service struct {
	repo Repository
}

// NewService 创建图书领域服务
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// AddBook 图书入库
func (s *service) AddBook(ctx context.Context, title, author, isbn string, totalCopies int) (*Book, error) {
	// 1. 字段校验
	title = strings.TrimSpace(title)
	author = strings.TrimSpace(author)
	if err := validateNewBook(title, author, isbn, totalCopies); err != nil {
		return nil, err
	}

	// 2. ISBN唯一性检查
	existing, err := s.repo.FindByISBN(ctx, isbn)
	if err == nil && existing != nil {
		return nil, ErrISBNDuplicate
	}
	if err != nil && !errors.Is(err, ErrBookNotFound) {
		return nil, ErrCreateFailed.WithCause(err)
	}

	// 3. 持久化(可借册数 = 总册数)
	b := NewBook(title, author, isbn, totalCopies)
	if err := s.repo.Create(ctx, b); err != nil {
		// 并发入库时由唯一索引兜底
		if errors.Is(err, ErrISBNDuplicate) {
			return nil, ErrISBNDuplicate
		}
		return nil, ErrCreateFailed.WithCause(err)
	}

	return b, nil
}

// GetBook 根据ID获取图书
func (s *service) GetBook(ctx context.Context, id uint) (*Book, error) {
	return s.repo.FindByID(ctx, id)
}

// ListBooks 返回全部馆藏
func (s *service) ListBooks(ctx context.Context) ([]*Book, error) {
	return s.repo.ListAll(ctx)
}

// SearchCatalog 馆藏检索
// 1. 空串直接返回空列表
// 2. 去除首尾空白并转小写后再匹配
func (s *service) SearchCatalog(ctx context.Context, term string, field SearchField) ([]*Book, error) {
	if term == "" || field == "" {
		return []*Book{}, nil
	}
	term = strings.ToLower(strings.TrimSpace(term))
	field = SearchField(strings.ToLower(strings.TrimSpace(string(field))))
	if !field.valid() {
		return []*Book{}, nil
	}

	books, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	matches := make([]*Book, 0)
	for _, b := range books {
		if strings.Contains(strings.ToLower(field.valueOf(b)), term) {
			matches = append(matches, b)
		}
	}
	return matches, nil
}

// =========================================
// 辅助函数:业务规则校验
// =========================================

// validateNewBook 入库字段校验,title/author需已去除首尾空白
func validateNewBook(title, author, isbn string, totalCopies int) error {
	switch {
	case title == "":
		return ErrTitleRequired
	case utf8.RuneCountInString(title) > MaxTitleLength:
		return ErrTitleTooLong
	case author == "":
		return ErrAuthorRequired
	case utf8.RuneCountInString(author) > MaxAuthorLength:
		return ErrAuthorTooLong
	case !IsValidISBN(isbn):
		return ErrInvalidISBN
	case totalCopies <= 0:
		return ErrInvalidCopies
	}
	return nil
}

// IsValidISBN 校验ISBN:恰好13位,全部为数字
// 不接受分隔符(978-7-...),调用方需传入纯数字
func IsValidISBN(isbn string) bool {
	if len(isbn) != ISBNLength {
		return false
	}
	for i := 0; i < len(isbn); i++ {
		if isbn[i] < '0' || isbn[i] > '9' {
			return false
		}
	}
	return true
}

func (f SearchField) valid() bool {
	switch f {
	case SearchByTitle, SearchByAuthor, SearchByISBN:
		return true
	}
	return false
}

func (f SearchField) valueOf(b *Book) string {
	switch f {
	case SearchByTitle:
		return b.Title
	case SearchByAuthor:
		return b.Author
	default:
		return b.ISBN
	}
}
