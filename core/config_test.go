package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewConfig(t *testing.T) {
	t.Setenv("ENV", "test")
	t.Setenv("TEST_SERVER_HOST", "0.0.0.0:9000")
	t.Setenv("TEST_DATABASE_MAXOPENCONNS", "4")
	t.Setenv("DATABASE_URL", "postgres://userql@localhost/userql?sslmode=disable")

	conf := NewConfig()

	assert.Equal(t, "TEST", conf.Env)
	assert.Equal(t, "userql", conf.AppName)
	assert.True(t, conf.TestMode)
	assert.Equal(t, "0.0.0.0:9000", conf.Server.Host)
	assert.Equal(t, "127.0.0.1:4000", conf.Server.DebugHost)
	assert.Equal(t, DatabaseConfig{
		Engine:          "postgres",
		URL:             "postgres://userql@localhost/userql?sslmode=disable",
		MaxOpenConns:    4,
		MinIdleConns:    2,
		ConnMaxIdleTime: 60 * time.Second,
		ConnectTimeout:  10 * time.Second,
	}, conf.Database)
}

func TestNewConfig_defaultEnv(t *testing.T) {
	t.Setenv("ENV", "")
	t.Setenv("DATABASE_URL", "")

	conf := NewConfig()

	assert.Equal(t, "DEV", conf.Env)
	assert.True(t, conf.Debug)
	assert.False(t, conf.TestMode)
	assert.Empty(t, conf.Database.URL)
	assert.Equal(t, 10, conf.Database.MaxOpenConns)
}
