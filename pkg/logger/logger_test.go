package logger

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Run("默认配置", func(t *testing.T) {
		log, err := New(Options{})
		require.NoError(t, err)
		assert.NotNil(t, log)
	})

	t.Run("JSON格式写文件", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "app.log")
		log, err := New(Options{Level: "debug", Format: "json", Output: path, EnableCaller: true})
		require.NoError(t, err)
		log.Info("hello")
		assert.NoError(t, log.Sync())
		assert.FileExists(t, path)
	})

	t.Run("无效级别", func(t *testing.T) {
		_, err := New(Options{Level: "loud"})
		assert.Error(t, err)
	})

	t.Run("无效格式", func(t *testing.T) {
		_, err := New(Options{Format: "xml"})
		assert.Error(t, err)
	})
}

func TestFromContext(t *testing.T) {
	base := Nop()
	reqLog := base.With()

	t.Run("取出请求级Logger", func(t *testing.T) {
		ctx := WithContext(context.Background(), reqLog)
		assert.Same(t, reqLog, FromContext(ctx, base))
	})

	t.Run("没有时返回fallback", func(t *testing.T) {
		assert.Same(t, base, FromContext(context.Background(), base))
	})

	t.Run("fallback为nil", func(t *testing.T) {
		assert.NotNil(t, FromContext(context.Background(), nil))
	})
}
