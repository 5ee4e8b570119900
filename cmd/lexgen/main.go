// Command lexgen compiles a rule file into the character map of a lexer.
package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/xerrors"
)

var (
	defaultLogLevel  = "info"
	defaultLogConfig = "console"
)

// cli holds the state shared by all subcommands.
type cli struct {
	configFile string
	logLevel   string
	logConfig  string
	log        *zap.SugaredLogger
}

func main() {
	if err := newRootCommand().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	c := &cli{log: zap.NewNop().Sugar()}

	rootCommand := &cobra.Command{
		Use:          "lexgen",
		Short:        "Compile lexer rules into character classes",
		Example:      "lexgen generate -s tokens.lex -o tokens_classes.go -p tokens -n Tok",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			log, err := newLogger(c.logLevel, c.logConfig)
			if err != nil {
				return err
			}
			c.log = log
			return nil
		},
	}
	rootCommand.AddCommand(generateCommand(c))
	rootCommand.AddCommand(analyzeCommand(c))

	rootCommand.PersistentFlags().StringVarP(&c.configFile, "config", "c", "", "Path to a YAML file with options; flags override it")
	rootCommand.PersistentFlags().StringVar(&c.logLevel, "log-level", defaultLogLevel, "Specifies logging level for output logs (\"error\", \"warning\", \"info\", \"debug\")")
	rootCommand.PersistentFlags().StringVar(&c.logConfig, "log-config", defaultLogConfig, "Specifies logging config for output logs (\"console\", \"json\", \"minimal\")")
	return rootCommand
}

func newLogger(level, config string) (*zap.SugaredLogger, error) {
	loggerConfig := zap.NewDevelopmentConfig()
	switch config {
	case "console":
	case "json":
		loggerConfig = zap.NewProductionConfig()
	case "minimal":
		loggerConfig.EncoderConfig = zapcore.EncoderConfig{
			MessageKey:  "message",
			LevelKey:    "level",
			LineEnding:  zapcore.DefaultLineEnding,
			EncodeLevel: zapcore.CapitalLevelEncoder,
		}
	default:
		return nil, xerrors.Errorf("unsupported value \"%s\" for --log-config", config)
	}
	loggerConfig.OutputPaths = []string{"stderr"}
	loggerConfig.ErrorOutputPaths = []string{"stderr"}

	switch level {
	case "error":
		loggerConfig.Level.SetLevel(zapcore.ErrorLevel)
	case "warning":
		loggerConfig.Level.SetLevel(zapcore.WarnLevel)
	case "info":
		loggerConfig.Level.SetLevel(zapcore.InfoLevel)
	case "debug":
		loggerConfig.Level.SetLevel(zapcore.DebugLevel)
	default:
		return nil, xerrors.Errorf("unsupported value \"%s\" for --log-level", level)
	}

	log, err := loggerConfig.Build()
	if err != nil {
		return nil, xerrors.Errorf("unable to build logger: %w", err)
	}
	return log.Sugar(), nil
}
