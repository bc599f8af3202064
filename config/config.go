package config

import (
	"fmt"
	"math/bits"
	"path/filepath"

	"github.com/spacemeshos/bitcode/registry"
	"github.com/spacemeshos/smutil"
)

const (
	DefaultDataDirName = "data"
	DefaultCode        = "gamma"
	DefaultHeaderLines = 0
)

var (
	DefaultMaxBits = uint(bits.UintSize)
	DefaultDataDir = filepath.Join(smutil.GetUserHomeDirectory(), "bitcode", DefaultDataDirName)
)

type Config struct {
	DataDir     string `mapstructure:"bitcode-datadir"`
	MaxBits     uint   `mapstructure:"bitcode-maxbits"`
	Code        string `mapstructure:"bitcode-code"`
	HeaderLines int    `mapstructure:"bitcode-headerlines"`
}

func DefaultConfig() *Config {
	return &Config{
		DataDir:     DefaultDataDir,
		MaxBits:     DefaultMaxBits,
		Code:        DefaultCode,
		HeaderLines: DefaultHeaderLines,
	}
}

func (cfg *Config) Validate() error {
	if cfg.MaxBits != 16 && cfg.MaxBits != 32 && cfg.MaxBits != 64 {
		return fmt.Errorf("invalid `MaxBits`; expected: 16, 32 or 64, given: %d", cfg.MaxBits)
	}

	if _, err := registry.Parse(cfg.Code); err != nil {
		return fmt.Errorf("invalid `Code`; %v", err)
	}

	if cfg.HeaderLines < 0 {
		return fmt.Errorf("invalid `HeaderLines`; expected: >= 0, given: %d", cfg.HeaderLines)
	}

	return nil
}
