package config

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"
)

// envVarPattern 匹配 ${VAR} 或 ${VAR:default} 形式的占位符
var envVarPattern = regexp.MustCompile(`\$\{(\w+)(:([^}]*))?\}`)

// Load 加载配置文件并展开环境变量
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("读取配置文件失败: %w", err)
	}

	// 展开配置中的环境变量占位符
	for _, key := range v.AllKeys() {
		val := v.GetString(key)
		if strings.Contains(val, "${") {
			v.Set(key, expandEnv(val))
		}
	}

	var cfg Config
	// 环境变量展开后的值一律是字符串,按弱类型解码到数值与布尔字段
	err := v.Unmarshal(&cfg, func(dc *mapstructure.DecoderConfig) {
		dc.WeaklyTypedInput = true
	})
	if err != nil {
		return nil, fmt.Errorf("解析配置失败: %w", err)
	}

	return &cfg, nil
}

// expandEnv 展开 ${VAR:default} 占位符
func expandEnv(s string) string {
	return envVarPattern.ReplaceAllStringFunc(s, func(match string) string {
		parts := envVarPattern.FindStringSubmatch(match)
		name := parts[1]
		def := parts[3]
		if val, ok := os.LookupEnv(name); ok {
			return val
		}
		return def
	})
}

// setDefaults 设置默认配置
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", "30s")
	v.SetDefault("server.write_timeout", "60s")
	v.SetDefault("server.shutdown_timeout", "15s")
	v.SetDefault("server.mode", "release")

	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_open_conns", 25)
	v.SetDefault("database.max_idle_conns", 5)
	v.SetDefault("database.conn_max_lifetime", "1h")

	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.pool_size", 10)

	v.SetDefault("jwt.issuer", "webmatic-api")
	v.SetDefault("jwt.access_expire", "2h")
	v.SetDefault("jwt.refresh_expire", "168h")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	v.SetDefault("trace.enabled", false)
	v.SetDefault("trace.endpoint", "localhost:4317")
	v.SetDefault("trace.sample_rate", 1.0)

	v.SetDefault("rate_limit.enabled", true)
	v.SetDefault("rate_limit.limit", 100)
	v.SetDefault("rate_limit.window", "1m")

	v.SetDefault("llm.default", "anthropic")
	v.SetDefault("llm.timeout", "45s")

	v.SetDefault("scaffold.temperature", 0.2)
	v.SetDefault("scaffold.plan_max_tokens", 900)
	v.SetDefault("scaffold.artifact_max_tokens", 1800)
	v.SetDefault("scaffold.history_turns", 10)
}
