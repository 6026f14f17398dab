package logger

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestNew_NivelExplicito(t *testing.T) {
	zl := New(Config{Env: "production", Level: "warn", Service: "test"})
	assert.Equal(t, zerolog.WarnLevel, zl.GetLevel())
}

func TestNew_NivelDesconocidoCaeEnInfo(t *testing.T) {
	zl := New(Config{Env: "production", Level: "verboso", Service: "test"})
	assert.Equal(t, zerolog.InfoLevel, zl.GetLevel())
}
