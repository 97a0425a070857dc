package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandEnv(t *testing.T) {
	t.Setenv("TEST_DB_HOST", "db.internal")

	assert.Equal(t, "db.internal", expandEnv("${TEST_DB_HOST}"))
	assert.Equal(t, "db.internal", expandEnv("${TEST_DB_HOST:fallback}"))
	assert.Equal(t, "fallback", expandEnv("${TEST_MISSING_VAR:fallback}"))
	assert.Equal(t, "", expandEnv("${TEST_MISSING_VAR}"))
	assert.Equal(t, "host=db.internal port=5432", expandEnv("host=${TEST_DB_HOST} port=${TEST_PORT:5432}"))
	assert.Equal(t, "plain", expandEnv("plain"))
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
server:
  port: 9090
database:
  host: ${TEST_CFG_DB_HOST:pg.local}
  user: app
  password: secret
  dbname: appdb
llm:
  default: openai
  providers:
    openai:
      api_key: ${TEST_CFG_KEY:sk-test}
      base_url: https://api.openai.com/v1
      model: gpt-5
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "pg.local", cfg.Database.Host)
	assert.Equal(t, "openai", cfg.LLM.Default)
	assert.Equal(t, "sk-test", cfg.LLM.Providers["openai"].APIKey)

	// 默认值生效
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, 10, cfg.Scaffold.HistoryTurns)
	assert.Equal(t, 900, cfg.Scaffold.PlanMaxTokens)
	assert.Equal(t, 1800, cfg.Scaffold.ArtifactMaxTokens)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load("/nonexistent/config.yaml")
	assert.Error(t, err)
}

func TestDatabaseDSN(t *testing.T) {
	cfg := DatabaseConfig{
		Host: "localhost", Port: 5432, User: "u", Password: "p",
		DBName: "d", SSLMode: "disable",
	}
	assert.Equal(t, "host=localhost port=5432 user=u password=p dbname=d sslmode=disable", cfg.DSN())
}

func TestRedisAddr(t *testing.T) {
	cfg := RedisConfig{Host: "cache", Port: 6379}
	assert.Equal(t, "cache:6379", cfg.Addr())
}
