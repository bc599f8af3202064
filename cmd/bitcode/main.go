package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/spacemeshos/bitcode/config"
	"github.com/spacemeshos/bitcode/persistence"
)

var (
	cfg = config.DefaultConfig()

	cfgFile  string
	logLevel string
	logger   *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "bitcode",
	Short: "Encode and decode integer sequences with universal codes",
	Long: `bitcode reads and writes sequences of unsigned integers as bit streams
using universal and parametric prefix codes (unary, Elias gamma/delta/omega,
Levenstein, Even-Rodeh, Fibonacci, Golomb, Rice, start-stop and more).`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := loadConfigFile(cmd); err != nil {
			return err
		}
		if err := cfg.Validate(); err != nil {
			return err
		}

		level, err := zapcore.ParseLevel(logLevel)
		if err != nil {
			return fmt.Errorf("invalid log level: %w", err)
		}
		zapCfg := zap.NewDevelopmentConfig()
		zapCfg.Level = zap.NewAtomicLevelAt(level)
		logger, err = zapCfg.Build()
		if err != nil {
			return err
		}
		persistence.SetLogger(sugaredLogger{logger.Sugar()})
		return nil
	},
}

// sugaredLogger adapts a zap logger to the shared.Logger interface.
type sugaredLogger struct {
	s *zap.SugaredLogger
}

func (l sugaredLogger) Info(format string, args ...any)    { l.s.Infof(format, args...) }
func (l sugaredLogger) Debug(format string, args ...any)   { l.s.Debugf(format, args...) }
func (l sugaredLogger) Warning(format string, args ...any) { l.s.Warnf(format, args...) }
func (l sugaredLogger) Error(format string, args ...any)   { l.s.Errorf(format, args...) }

// loadConfigFile merges the config file, if any, under the explicitly set
// command-line flags.
func loadConfigFile(cmd *cobra.Command) error {
	if cfgFile == "" {
		return nil
	}
	viper.SetConfigFile(cfgFile)
	if err := viper.ReadInConfig(); err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	fileCfg := config.DefaultConfig()
	if err := viper.Unmarshal(fileCfg); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}

	flags := cmd.Flags()
	if !flags.Changed("datadir") {
		cfg.DataDir = fileCfg.DataDir
	}
	if !flags.Changed("maxbits") {
		cfg.MaxBits = fileCfg.MaxBits
	}
	if !flags.Changed("code") {
		cfg.Code = fileCfg.Code
	}
	if !flags.Changed("headerlines") {
		cfg.HeaderLines = fileCfg.HeaderLines
	}
	return nil
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file path")
	flags.StringVar(&logLevel, "logLevel", zapcore.InfoLevel.String(), "log level (debug, info, warn, error)")
	flags.StringVar(&cfg.DataDir, "datadir", cfg.DataDir, "filesystem datadir path")
	flags.UintVar(&cfg.MaxBits, "maxbits", cfg.MaxBits, "stream width: 16, 32 or 64")
	flags.StringVar(&cfg.Code, "code", cfg.Code, "code specification, e.g. gamma, rice(3), startstop(0-1-2-3)")
	flags.IntVar(&cfg.HeaderLines, "headerlines", cfg.HeaderLines, "number of header lines to consume when reading store files")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
