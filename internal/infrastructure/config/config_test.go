package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadFile(t *testing.T) {
	t.Run("读取仓库自带配置", func(t *testing.T) {
		cfg, err := LoadFile(filepath.Join("..", "..", "..", "config", "config.yaml"))
		require.NoError(t, err)
		assert.Equal(t, 8080, cfg.Server.Port)
		assert.Equal(t, "mock", cfg.Gateway.Mode)
		assert.Equal(t, 10*time.Minute, cfg.Redis.BookTTL)
		assert.Equal(t, uint32(5), cfg.Gateway.Breaker.FailureThreshold)
	})

	t.Run("缺省值", func(t *testing.T) {
		cfg, err := LoadFile(writeConfig(t, "server:\n  port: 9000\n"))
		require.NoError(t, err)
		assert.Equal(t, 9000, cfg.Server.Port)
		assert.Equal(t, "debug", cfg.Server.Mode)
		assert.Equal(t, "library.events", cfg.MQ.Exchange)
		assert.Equal(t, 5*time.Second, cfg.Gateway.Timeout)
		assert.Equal(t, "/metrics", cfg.Metrics.Path)
	})

	t.Run("环境变量覆盖", func(t *testing.T) {
		t.Setenv("LIBRARY_DATABASE_PASSWORD", "from-env")
		t.Setenv("LIBRARY_SERVER_PORT", "9090")
		cfg, err := LoadFile(writeConfig(t, "database:\n  password: from-file\n"))
		require.NoError(t, err)
		assert.Equal(t, "from-env", cfg.Database.Password)
		assert.Equal(t, 9090, cfg.Server.Port)
	})

	t.Run("文件不存在", func(t *testing.T) {
		_, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
		assert.Error(t, err)
	})
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Server:   ServerConfig{Port: 8080, Mode: "debug"},
			Database: DatabaseConfig{Driver: "mysql"},
			Gateway: GatewayConfig{
				Mode: "mock", MaxCharge: 100, RateLimit: 10, Burst: 1,
				Breaker: BreakerConfig{FailureThreshold: 5},
			},
		}
	}
	require.NoError(t, Validate(valid()))

	cases := map[string]func(c *Config){
		"端口越界":    func(c *Config) { c.Server.Port = 70000 },
		"运行模式未知":  func(c *Config) { c.Server.Mode = "prod" },
		"网关类型未知":  func(c *Config) { c.Gateway.Mode = "stripe" },
		"数据库驱动未知": func(c *Config) { c.Database.Driver = "sqlite" },
		"扣款上限非正":  func(c *Config) { c.Gateway.MaxCharge = 0 },
		"限流非正":    func(c *Config) { c.Gateway.RateLimit = 0 },
		"熔断阈值为0":  func(c *Config) { c.Gateway.Breaker.FailureThreshold = 0 },
		"MQ缺少地址":  func(c *Config) { c.MQ.Enabled = true },
		"缓存TTL非正": func(c *Config) { c.Redis.Enabled = true },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := valid()
			mutate(cfg)
			assert.Error(t, Validate(cfg))
		})
	}
}

func TestDSN(t *testing.T) {
	d := DatabaseConfig{
		Host: "db", Port: 3306, User: "u", Password: "p", DBName: "library",
		Charset: "utf8mb4", ParseTime: true, Loc: "Asia/Shanghai",
	}
	assert.Equal(t, "u:p@tcp(db:3306)/library?charset=utf8mb4&parseTime=true&loc=Asia%2FShanghai", d.DSN())
}
