package payment

import (
	"strings"

	"github.com/google/uuid"
)

// GenerateTransactionID 生成交易号
// 格式:txn_ + 32位十六进制(去掉连字符的UUID)
// 示例:txn_3f2c9a0e5b7d4c1e9a8b6d5c4e3f2a1b
func GenerateTransactionID() string {
	return "txn_" + strings.ReplaceAll(uuid.NewString(), "-", "")
}
