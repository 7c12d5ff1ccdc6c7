package main

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/xiebiao/library/internal/application/catalog"
	appfee "github.com/xiebiao/library/internal/application/fee"
	"github.com/xiebiao/library/internal/application/lending"
	apppayment "github.com/xiebiao/library/internal/application/payment"
	"github.com/xiebiao/library/internal/domain/book"
	"github.com/xiebiao/library/internal/domain/event"
	"github.com/xiebiao/library/internal/domain/fee"
	"github.com/xiebiao/library/internal/domain/loan"
	"github.com/xiebiao/library/internal/domain/payment"
	"github.com/xiebiao/library/internal/infrastructure/config"
	"github.com/xiebiao/library/internal/infrastructure/events"
	"github.com/xiebiao/library/internal/infrastructure/gateway"
	"github.com/xiebiao/library/internal/infrastructure/persistence/memory"
	"github.com/xiebiao/library/internal/infrastructure/persistence/mysql"
	"github.com/xiebiao/library/internal/infrastructure/persistence/redis"
	"github.com/xiebiao/library/internal/interface/http/handler"
	"github.com/xiebiao/library/internal/interface/http/router"
	"github.com/xiebiao/library/pkg/mq"
)

// Repositories 仓储集合
type Repositories struct {
	Books book.Repository
	Loans loan.Repository
}

// buildEngine 手动依赖注入(与wire.go中的initializeEngine等价)
// 依赖链:Repository ← Service ← UseCase ← Handler ← Router
func buildEngine(ctx context.Context, cfg *config.Config, log *zap.Logger) (*gin.Engine, func(), error) {
	// 1. 基础设施层
	repos, closeRepos, err := provideRepositories(ctx, cfg, log)
	if err != nil {
		return nil, nil, err
	}
	publisher, closePublisher, err := provideEventPublisher(cfg, log)
	if err != nil {
		closeRepos()
		return nil, nil, err
	}
	gw, err := provideGateway(cfg, log)
	if err != nil {
		closePublisher()
		closeRepos()
		return nil, nil, err
	}
	cleanup := func() {
		closePublisher()
		closeRepos()
	}

	// 2. 领域层
	bookService := book.NewService(repos.Books)
	feeService := fee.NewService(repos.Books, repos.Loans)

	// 3. 应用层
	now := provideNow()
	clock := provideClock()
	bookHandler := handler.NewBookHandler(
		catalog.NewAddBookUseCase(bookService, log),
		catalog.NewSearchCatalogUseCase(bookService),
		catalog.NewListBooksUseCase(bookService),
	)
	loanHandler := handler.NewLoanHandler(
		lending.NewBorrowBookUseCase(repos.Books, repos.Loans, publisher, log, clock),
		lending.NewReturnBookUseCase(repos.Books, repos.Loans, publisher, log, clock),
	)
	feeHandler := handler.NewFeeHandler(
		appfee.NewCalculateLateFeeUseCase(feeService, now),
		appfee.NewPatronStatusUseCase(feeService, now),
	)
	paymentHandler := handler.NewPaymentHandler(
		apppayment.NewPayLateFeeUseCase(feeService, repos.Books, gw, publisher, log, now),
		apppayment.NewRefundLateFeeUseCase(gw, publisher, log, now),
	)

	// 4. 接口层
	engine := provideRouter(cfg, log, bookHandler, loanHandler, feeHandler, paymentHandler)
	return engine, cleanup, nil
}

// provideRepositories 按database.driver创建仓储,redis.enabled时为图书加缓存
func provideRepositories(ctx context.Context, cfg *config.Config, log *zap.Logger) (Repositories, func(), error) {
	var (
		repos   Repositories
		closers []func()
	)
	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}

	switch cfg.Database.Driver {
	case "memory":
		store := memory.NewStore()
		repos = Repositories{Books: store.Books(), Loans: store.Loans()}
		log.Warn("使用内存存储,进程退出后数据丢失")
	default:
		db, err := mysql.NewDB(cfg, log)
		if err != nil {
			return Repositories{}, nil, err
		}
		closers = append(closers, func() {
			if sqlDB, err := db.DB(); err == nil {
				_ = sqlDB.Close()
			}
		})
		repos = Repositories{Books: mysql.NewBookRepository(db), Loans: mysql.NewLoanRepository(db)}
	}

	if cfg.Redis.Enabled {
		client, err := redis.NewClient(ctx, cfg.Redis, log)
		if err != nil {
			cleanup()
			return Repositories{}, nil, err
		}
		closers = append(closers, func() { _ = client.Close() })
		repos.Books = redis.NewCachedBookRepository(repos.Books, client, cfg.Redis.BookTTL, log)
	}

	return repos, cleanup, nil
}

// provideEventPublisher mq.enabled时发布到RabbitMQ,否则丢弃事件
func provideEventPublisher(cfg *config.Config, log *zap.Logger) (event.Publisher, func(), error) {
	if !cfg.MQ.Enabled {
		return event.NopPublisher{}, func() {}, nil
	}

	p, err := mq.NewPublisher(cfg.MQ.URL, cfg.MQ.Exchange, cfg.MQ.ExchangeType, log)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		if err := p.Close(); err != nil {
			log.Warn("关闭消息发布者失败", zap.Error(err))
		}
	}
	return events.NewLoanEventPublisher(p), cleanup, nil
}

// provideGateway 支付网关(带限流与熔断)
func provideGateway(cfg *config.Config, log *zap.Logger) (payment.Gateway, error) {
	return gateway.New(cfg.Gateway, log)
}

// provideNow 滞纳金与缴费用例的时钟
func provideNow() func() time.Time {
	return time.Now
}

// provideClock 借还书用例的时钟
func provideClock() lending.Clock {
	return time.Now
}

// provideRouter 创建gin引擎并注册路由
func provideRouter(
	cfg *config.Config,
	log *zap.Logger,
	bookHandler *handler.BookHandler,
	loanHandler *handler.LoanHandler,
	feeHandler *handler.FeeHandler,
	paymentHandler *handler.PaymentHandler,
) *gin.Engine {
	opts := router.Options{
		Swagger: cfg.Server.Mode != gin.ReleaseMode,
		Tracing: cfg.Tracing.Enabled,
	}
	if cfg.Metrics.Enabled {
		opts.MetricsPath = cfg.Metrics.Path
	}

	return router.New(log, router.Handlers{
		Book:    bookHandler,
		Loan:    loanHandler,
		Fee:     feeHandler,
		Payment: paymentHandler,
	}, opts)
}
