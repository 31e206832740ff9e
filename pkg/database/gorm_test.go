package database

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewGormDBFromDSN_Empty(t *testing.T) {
	_, err := NewGormDBFromDSN("")
	assert.EqualError(t, err, "database DSN is empty")
}

func TestDefaultPoolConfig(t *testing.T) {
	cfg := DefaultPoolConfig()
	assert.Equal(t, 20, cfg.MaxOpenConns)
	assert.Equal(t, time.Hour, cfg.ConnMaxLifetime)
}
