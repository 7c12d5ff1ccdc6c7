// Package lending 借书与还书用例
//
// 借书:写借阅记录 → 可借册数-1
// 还书:写归还时间 → 可借册数+1
// 两步之间没有事务,第二步失败时第一步的结果保留,
// 记录日志与library_availability_divergence_total指标,不做补偿
package lending

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/xiebiao/library/internal/domain/book"
	"github.com/xiebiao/library/internal/domain/event"
	apperrors "github.com/xiebiao/library/pkg/errors"
	"github.com/xiebiao/library/pkg/logger"
)

// 指标结果标签
const (
	resultSuccess  = "success"
	resultRejected = "rejected"
	resultError    = "error"
)

// Clock 当前时间来源
type Clock func() time.Time

func orNow(c Clock) Clock {
	if c == nil {
		return time.Now
	}
	return c
}

// findBook 查询图书,不存在时返回notFound,其它错误视为存储故障
func findBook(ctx context.Context, repo book.Repository, id uint, notFound error) (*book.Book, error) {
	b, err := repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, book.ErrBookNotFound) {
			return nil, notFound
		}
		return nil, apperrors.ErrDatabaseError.WithCause(err)
	}
	return b, nil
}

// publish 发布事件,失败只记日志
func publish(ctx context.Context, p event.Publisher, log *zap.Logger, e event.Event) {
	if p == nil {
		return
	}
	if err := p.Publish(ctx, e); err != nil {
		logger.FromContext(ctx, log).Warn("事件发布失败",
			zap.String("routing_key", e.RoutingKey()),
			zap.Error(err),
		)
	}
}

// resultOf 把用例错误归类为指标标签
func resultOf(err error) string {
	if err == nil {
		return resultSuccess
	}
	if apperrors.CodeOf(err) >= 50000 {
		return resultError
	}
	return resultRejected
}
