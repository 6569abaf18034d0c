package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	defer func() { GlobalConfig = nil }()

	cfg, err := LoadConfig("")
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, ":8080", cfg.Server.Port)
	assert.Equal(t, "finpal", cfg.Database.DBName)
	assert.Equal(t, "utf8mb4", cfg.Database.Charset)

	// JWT 过期时间由 expire_hours 推导
	assert.Equal(t, 720, cfg.JWT.ExpireHours)
	assert.Equal(t, 720*time.Hour, cfg.JWT.ExpireTime)

	// 会话缓存 TTL 默认 30 分钟
	assert.Equal(t, 30, cfg.Cache.TotalTTLMinutes)
	assert.Equal(t, 30*time.Minute, cfg.Cache.TotalTTL)

	// 全局配置已赋值
	assert.Same(t, cfg, GlobalConfig)
}

func TestLoadConfig_NonexistentExternalFile(t *testing.T) {
	defer func() { GlobalConfig = nil }()

	// 指定不存在的外部配置文件时仅告警，仍使用内置默认配置
	cfg, err := LoadConfig("/nonexistent/path/config.yaml")
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.Server.Port)
}

func TestGetConfig_PanicsWhenUninitialized(t *testing.T) {
	GlobalConfig = nil
	assert.Panics(t, func() { GetConfig() })
}
