// Package events 领域事件发布适配器
package events

import (
	"context"
	"time"

	"github.com/xiebiao/library/internal/domain/event"
	"github.com/xiebiao/library/pkg/tracing"
)

// sender 消息发送方(pkg/mq.Publisher实现)
type sender interface {
	Publish(ctx context.Context, routingKey string, message interface{}) error
}

// Envelope 消息信封
// 下游按event字段分发,data为具体事件
type Envelope struct {
	Event      string      `json:"event"`
	OccurredAt time.Time   `json:"occurred_at"`
	TraceID    string      `json:"trace_id,omitempty"`
	Data       event.Event `json:"data"`
}

// LoanEventPublisher 将领域事件包装为信封后发送到RabbitMQ
type LoanEventPublisher struct {
	sender sender
}

// NewLoanEventPublisher 创建事件发布器
func NewLoanEventPublisher(s sender) *LoanEventPublisher {
	return &LoanEventPublisher{sender: s}
}

// Publish 发布领域事件,路由键即事件类型
func (p *LoanEventPublisher) Publish(ctx context.Context, e event.Event) error {
	env := Envelope{
		Event:      e.RoutingKey(),
		OccurredAt: e.OccurredAt(),
		TraceID:    tracing.ExtractTraceID(ctx),
		Data:       e,
	}
	return p.sender.Publish(ctx, e.RoutingKey(), env)
}

var _ event.Publisher = (*LoanEventPublisher)(nil)
