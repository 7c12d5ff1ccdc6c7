// Package router 注册HTTP路由
package router

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"github.com/xiebiao/library/internal/interface/http/handler"
	"github.com/xiebiao/library/internal/interface/http/middleware"
	"github.com/xiebiao/library/pkg/response"
)

// Handlers 路由依赖的全部处理器
type Handlers struct {
	Book    *handler.BookHandler
	Loan    *handler.LoanHandler
	Fee     *handler.FeeHandler
	Payment *handler.PaymentHandler
}

// Options 路由选项
type Options struct {
	MetricsPath string // 为空时不暴露/metrics
	Swagger     bool
	Tracing     bool
}

// New 创建gin引擎并注册全部路由
func New(log *zap.Logger, h Handlers, opts Options) *gin.Engine {
	r := gin.New()
	r.Use(middleware.Recovery(log), middleware.RequestLogger(log))
	if opts.Tracing {
		r.Use(middleware.Tracing())
	}

	// 健康检查
	r.GET("/ping", func(c *gin.Context) {
		response.Success(c, gin.H{
			"message": "pong",
			"status":  "healthy",
		})
	})

	if opts.MetricsPath != "" {
		r.GET(opts.MetricsPath, gin.WrapH(promhttp.Handler()))
	}
	if opts.Swagger {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	v1 := r.Group("/api/v1")
	{
		// 馆藏
		books := v1.Group("/books")
		{
			books.GET("", h.Book.ListBooks)
			books.POST("", h.Book.AddBook)
			books.GET("/search", h.Book.SearchBooks)
		}

		// 借阅
		loans := v1.Group("/loans")
		{
			loans.POST("", h.Loan.Borrow)
			loans.POST("/return", h.Loan.Return)
		}

		// 滞纳金
		patrons := v1.Group("/patrons/:patron_id")
		{
			patrons.GET("/fees/:book_id", h.Fee.LateFee)
			patrons.GET("/status", h.Fee.PatronStatus)
		}

		// 缴费与退款
		v1.POST("/payments", h.Payment.PayLateFee)
		v1.POST("/refunds", h.Payment.Refund)
	}

	return r
}
