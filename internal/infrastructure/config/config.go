package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/xiebiao/library/pkg/logger"
	"github.com/xiebiao/library/pkg/tracing"
)

// EnvPrefix 环境变量前缀,如LIBRARY_DATABASE_PASSWORD → database.password
const EnvPrefix = "LIBRARY"

// Config 全局配置结构
// 使用Viper管理配置,支持YAML文件和环境变量覆盖
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Log      LogConfig      `mapstructure:"log"`
	Gateway  GatewayConfig  `mapstructure:"gateway"`
	MQ       MQConfig       `mapstructure:"mq"`
	Tracing  TracingConfig  `mapstructure:"tracing"`
	Metrics  MetricsConfig  `mapstructure:"metrics"`
}

type ServerConfig struct {
	Port         int           `mapstructure:"port"`
	Mode         string        `mapstructure:"mode"` // debug | release | test
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

type DatabaseConfig struct {
	Driver          string        `mapstructure:"driver"` // mysql | memory
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	DBName          string        `mapstructure:"dbname"`
	Charset         string        `mapstructure:"charset"`
	ParseTime       bool          `mapstructure:"parse_time"`
	Loc             string        `mapstructure:"loc"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	AutoMigrate     bool          `mapstructure:"auto_migrate"`
}

// DSN 生成MySQL连接字符串
// loc需要URL编码(Asia/Shanghai → Asia%2FShanghai)
func (d DatabaseConfig) DSN() string {
	loc := url.QueryEscape(d.Loc)
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.Charset, d.ParseTime, loc)
}

type RedisConfig struct {
	Enabled      bool          `mapstructure:"enabled"`
	Host         string        `mapstructure:"host"`
	Port         int           `mapstructure:"port"`
	Password     string        `mapstructure:"password"`
	DB           int           `mapstructure:"db"`
	PoolSize     int           `mapstructure:"pool_size"`
	MinIdleConns int           `mapstructure:"min_idle_conns"`
	DialTimeout  time.Duration `mapstructure:"dial_timeout"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	BookTTL      time.Duration `mapstructure:"book_ttl"` // 图书详情缓存时间
}

// Addr 返回Redis地址
func (r RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

type LogConfig struct {
	Level        string `mapstructure:"level"`  // debug | info | warn | error
	Format       string `mapstructure:"format"` // console | json
	Output       string `mapstructure:"output"` // stdout | stderr | /path/to/file
	EnableCaller bool   `mapstructure:"enable_caller"`
}

// Options 转换为logger.Options
func (l LogConfig) Options() logger.Options {
	return logger.Options{
		Level:        l.Level,
		Format:       l.Format,
		Output:       l.Output,
		EnableCaller: l.EnableCaller,
	}
}

// GatewayConfig 支付网关
type GatewayConfig struct {
	Mode      string        `mapstructure:"mode"`       // 目前只支持mock
	MaxCharge float64       `mapstructure:"max_charge"` // mock网关单笔扣款上限,超过则拒绝
	Timeout   time.Duration `mapstructure:"timeout"`    // 单次调用超时
	RateLimit float64       `mapstructure:"rate_limit"` // 每秒请求数
	Burst     int           `mapstructure:"burst"`
	Breaker   BreakerConfig `mapstructure:"breaker"`
}

// BreakerConfig 网关熔断器
type BreakerConfig struct {
	MaxRequests      uint32        `mapstructure:"max_requests"`
	Interval         time.Duration `mapstructure:"interval"`
	Timeout          time.Duration `mapstructure:"timeout"`
	FailureThreshold uint32        `mapstructure:"failure_threshold"` // 连续失败次数
}

// MQConfig RabbitMQ事件发布
type MQConfig struct {
	Enabled      bool   `mapstructure:"enabled"`
	URL          string `mapstructure:"url"`
	Exchange     string `mapstructure:"exchange"`
	ExchangeType string `mapstructure:"exchange_type"`
}

// TracingConfig OpenTelemetry
type TracingConfig struct {
	Enabled     bool    `mapstructure:"enabled"`
	ServiceName string  `mapstructure:"service_name"`
	Endpoint    string  `mapstructure:"endpoint"`
	Insecure    bool    `mapstructure:"insecure"`
	SampleRatio float64 `mapstructure:"sample_ratio"`
}

// Options 转换为tracing.Options
func (t TracingConfig) Options() tracing.Options {
	return tracing.Options{
		ServiceName: t.ServiceName,
		Endpoint:    t.Endpoint,
		Insecure:    t.Insecure,
		SampleRatio: t.SampleRatio,
	}
}

// MetricsConfig Prometheus
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

// Load 加载配置
// 1. 默认读取./config/config.yaml
// 2. LIBRARY_ENV指定环境时读取config.<env>.yaml
// 3. 环境变量覆盖同名配置
func Load() (*Config, error) {
	name := "config"
	if env := os.Getenv(EnvPrefix + "_ENV"); env != "" {
		name = "config." + env
	}
	return load(name, "./config", ".")
}

// LoadFile 从指定文件加载配置(测试与命令行参数使用)
func LoadFile(path string) (*Config, error) {
	v := newViper()
	v.SetConfigFile(path)
	return read(v)
}

func load(name string, paths ...string) (*Config, error) {
	v := newViper()
	v.SetConfigName(name)
	v.SetConfigType("yaml")
	for _, p := range paths {
		v.AddConfigPath(p)
	}
	return read(v)
}

func newViper() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

func read(v *viper.Viper) (*Config, error) {
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("读取配置文件失败: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("解析配置失败: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "debug")
	v.SetDefault("server.read_timeout", 10*time.Second)
	v.SetDefault("server.write_timeout", 10*time.Second)

	v.SetDefault("database.driver", "mysql")
	v.SetDefault("database.charset", "utf8mb4")
	v.SetDefault("database.parse_time", true)
	v.SetDefault("database.loc", "Local")
	v.SetDefault("database.max_open_conns", 50)
	v.SetDefault("database.max_idle_conns", 10)
	v.SetDefault("database.conn_max_lifetime", time.Hour)

	v.SetDefault("redis.book_ttl", 10*time.Minute)
	v.SetDefault("redis.pool_size", 20)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("log.output", "stdout")

	v.SetDefault("gateway.mode", "mock")
	v.SetDefault("gateway.max_charge", 100)
	v.SetDefault("gateway.timeout", 5*time.Second)
	v.SetDefault("gateway.rate_limit", 20)
	v.SetDefault("gateway.burst", 5)
	v.SetDefault("gateway.breaker.max_requests", 1)
	v.SetDefault("gateway.breaker.interval", time.Minute)
	v.SetDefault("gateway.breaker.timeout", 30*time.Second)
	v.SetDefault("gateway.breaker.failure_threshold", 5)

	v.SetDefault("mq.exchange", "library.events")
	v.SetDefault("mq.exchange_type", "topic")

	v.SetDefault("tracing.service_name", "library-api")
	v.SetDefault("tracing.endpoint", "localhost:4317")
	v.SetDefault("tracing.insecure", true)
	v.SetDefault("tracing.sample_ratio", 1.0)

	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.path", "/metrics")
}

// Validate 配置校验
func Validate(cfg *Config) error {
	if cfg.Server.Port <= 0 || cfg.Server.Port > 65535 {
		return fmt.Errorf("无效的服务端口: %d", cfg.Server.Port)
	}

	switch cfg.Server.Mode {
	case "debug", "release", "test":
	default:
		return fmt.Errorf("无效的运行模式: %s", cfg.Server.Mode)
	}

	switch cfg.Database.Driver {
	case "mysql", "memory":
	default:
		return fmt.Errorf("不支持的数据库驱动: %s", cfg.Database.Driver)
	}

	if cfg.Gateway.Mode != "mock" {
		return fmt.Errorf("不支持的支付网关: %s", cfg.Gateway.Mode)
	}
	if cfg.Gateway.MaxCharge <= 0 {
		return fmt.Errorf("gateway.max_charge必须大于0")
	}
	if cfg.Gateway.RateLimit <= 0 || cfg.Gateway.Burst <= 0 {
		return fmt.Errorf("gateway.rate_limit与gateway.burst必须大于0")
	}
	if cfg.Gateway.Breaker.FailureThreshold == 0 {
		return fmt.Errorf("gateway.breaker.failure_threshold必须大于0")
	}

	if cfg.MQ.Enabled && cfg.MQ.URL == "" {
		return fmt.Errorf("启用消息队列时必须配置mq.url")
	}
	if cfg.Redis.Enabled && cfg.Redis.BookTTL <= 0 {
		return fmt.Errorf("redis.book_ttl必须大于0")
	}

	return nil
}
