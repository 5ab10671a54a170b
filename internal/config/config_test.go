package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeDSN(t *testing.T) {
	// хостинговый алиас приводится к канонической схеме
	assert.Equal(t,
		"postgresql://u:p@host:5432/db",
		NormalizeDSN("postgres://u:p@host:5432/db"))

	// каноническая строка не трогается
	assert.Equal(t,
		"postgresql://u:p@host:5432/db",
		NormalizeDSN("postgresql://u:p@host:5432/db"))

	// key=value DSN тоже не трогается
	assert.Equal(t,
		"host=localhost dbname=accounts",
		NormalizeDSN("host=localhost dbname=accounts"))
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("CONFIG_PATH", "testdata/nonexistent.yaml")
	t.Setenv("DATABASE_URL", "postgres://u:p@host:5432/db")
	t.Setenv("PORT", "9000")
	t.Setenv("APP_ENV", "staging")
	t.Setenv("RENDER", "")

	cfg := LoadConfig()
	require.NotNil(t, cfg)
	assert.Equal(t, "postgresql://u:p@host:5432/db", cfg.Database.DSN)
	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, "staging", cfg.Server.Env)
	assert.False(t, cfg.IsProduction())
}

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("CONFIG_PATH", "testdata/nonexistent.yaml")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("PORT", "")
	t.Setenv("APP_ENV", "")
	t.Setenv("RENDER", "")

	cfg := LoadConfig()
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "local", cfg.Server.Env)
	assert.Equal(t, 1, cfg.Database.MaxOpenConns)
}

func TestLoadConfig_RenderMarksProduction(t *testing.T) {
	t.Setenv("CONFIG_PATH", "testdata/nonexistent.yaml")
	t.Setenv("RENDER", "true")

	cfg := LoadConfig()
	assert.True(t, cfg.IsProduction())
}
