package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	req := require.New(t)

	cfg := DefaultConfig()
	req.NoError(cfg.Validate())
}

func TestValidate(t *testing.T) {
	req := require.New(t)

	cfg := DefaultConfig()
	cfg.MaxBits = 24
	req.Error(cfg.Validate())

	cfg = DefaultConfig()
	cfg.Code = "nosuchcode"
	req.Error(cfg.Validate())

	cfg = DefaultConfig()
	cfg.Code = "rice(3)"
	req.NoError(cfg.Validate())

	cfg = DefaultConfig()
	cfg.HeaderLines = -1
	req.Error(cfg.Validate())
}
