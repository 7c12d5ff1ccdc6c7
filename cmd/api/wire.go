//go:build wireinject
// +build wireinject

// Wire依赖注入配置
//
// 运行 `wire gen ./cmd/api` 生成wire_gen.go;
// 未生成时main.go使用app.go中的buildEngine(手动注入,依赖链相同)

package main

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/wire"
	"go.uber.org/zap"

	"github.com/xiebiao/library/internal/application/catalog"
	appfee "github.com/xiebiao/library/internal/application/fee"
	"github.com/xiebiao/library/internal/application/lending"
	apppayment "github.com/xiebiao/library/internal/application/payment"
	"github.com/xiebiao/library/internal/domain/book"
	"github.com/xiebiao/library/internal/domain/fee"
	"github.com/xiebiao/library/internal/infrastructure/config"
	"github.com/xiebiao/library/internal/interface/http/handler"
)

// infrastructureSet 基础设施层:仓储、事件发布、支付网关、时钟
var infrastructureSet = wire.NewSet(
	provideRepositories,
	wire.FieldsOf(new(Repositories), "Books", "Loans"),
	provideEventPublisher,
	provideGateway,
	provideNow,
	provideClock,
)

// domainSet 领域服务
var domainSet = wire.NewSet(
	book.NewService,
	fee.NewService,
)

// applicationSet 用例
var applicationSet = wire.NewSet(
	catalog.NewAddBookUseCase,
	catalog.NewSearchCatalogUseCase,
	catalog.NewListBooksUseCase,
	lending.NewBorrowBookUseCase,
	lending.NewReturnBookUseCase,
	appfee.NewCalculateLateFeeUseCase,
	appfee.NewPatronStatusUseCase,
	apppayment.NewPayLateFeeUseCase,
	apppayment.NewRefundLateFeeUseCase,
)

// handlerSet HTTP处理器
var handlerSet = wire.NewSet(
	handler.NewBookHandler,
	handler.NewLoanHandler,
	handler.NewFeeHandler,
	handler.NewPaymentHandler,
	provideRouter,
)

// initializeEngine Wire注入器
func initializeEngine(ctx context.Context, cfg *config.Config, log *zap.Logger) (*gin.Engine, func(), error) {
	wire.Build(
		infrastructureSet,
		domainSet,
		applicationSet,
		handlerSet,
	)
	return nil, nil, nil
}
