package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestJWTConfig_Enabled(t *testing.T) {
	assert.False(t, JWTConfig{}.Enabled())
	assert.True(t, JWTConfig{Secret: "0123456789abcdef"}.Enabled())
}

func TestJWTConfig_Normalize(t *testing.T) {
	assert.NoError(t, (&JWTConfig{}).normalize(), "disabled config is valid")
	assert.NoError(t, (&JWTConfig{Secret: "0123456789abcdef", Leeway: time.Minute}).normalize())
	assert.Error(t, (&JWTConfig{Secret: "too-short"}).normalize())
	assert.Error(t, (&JWTConfig{Leeway: -1}).normalize())
}
