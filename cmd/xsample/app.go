package main

import (
	"context"
	"fmt"
	"io"

	"github.com/urfave/cli/v3"

	"github.com/omeyang/xsample/pkg/config/xconf"
	"github.com/omeyang/xsample/pkg/sampling/xhash"
)

// 选项名
const (
	flagRate      = "rate"
	flagCol       = "col"
	flagSeed      = "seed"
	flagHash      = "hash"
	flagSep       = "sep"
	flagMethod    = "method"
	flagOrder     = "order"
	flagConfig    = "config"
	flagLogLevel  = "log-level"
	flagLogFormat = "log-format"
	flagLogFile   = "log-file"
	flagStats     = "stats"
	flagRatios    = "ratios"
	flagPrefix    = "prefix"
)

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	app := createApp(stdin, stdout, stderr)
	err := app.Run(ctx, normalizeArgs(args, flagNames(app)))
	return exitCode(err, stderr)
}

func createApp(stdin io.Reader, stdout, stderr io.Writer) *cli.Command {
	return &cli.Command{
		Name:      "xsample",
		Usage:     "consistent, reservoir and partition sampling for text streams",
		UsageText: "xsample [options] [file...]",
		Version:   fmt.Sprintf("%s (commit: %s)", Version, GitCommit),
		Reader:    stdin,
		Writer:    stdout,
		ErrWriter: stderr,
		Flags:     globalFlags(),
		Commands:  []*cli.Command{createSplitCommand()},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			p, err := profileFromCommand(cmd, "")
			if err != nil {
				return err
			}
			return execute(ctx, cmd, p)
		},
		OnUsageError: onUsageError,
		// 退出码由 run 统一映射，不允许 cli 直接 os.Exit
		ExitErrHandler: func(context.Context, *cli.Command, error) {},
	}
}

func createSplitCommand() *cli.Command {
	return &cli.Command{
		Name:      "split",
		Usage:     "partition records into disjoint files by hash ratio",
		UsageText: "xsample split --ratios 0.2,0.3,0.5 [--prefix part] [options] [file...]",
		Flags: []cli.Flag{
			&cli.FloatSliceFlag{
				Name:  flagRatios,
				Usage: "comma separated bucket ratios, sum <= 1.0; the remainder goes to <prefix>.rest",
			},
			&cli.StringFlag{
				Name:  flagPrefix,
				Usage: "output file prefix, buckets are written to <prefix>.<i>",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			p, err := profileFromCommand(cmd, xconf.MethodPartition)
			if err != nil {
				return err
			}
			return execute(ctx, cmd, p)
		},
		OnUsageError: onUsageError,
	}
}

func globalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.FloatFlag{
			Name:    flagRate,
			Aliases: []string{"r"},
			Usage:   "sampling rate in [0, 1]; sample size with --method=reservoir",
		},
		&cli.IntFlag{
			Name:    flagCol,
			Aliases: []string{"c"},
			Usage:   "0-based column used as the sampling key (default: whole line)",
		},
		&cli.StringFlag{
			Name:    flagSeed,
			Aliases: []string{"s"},
			Usage:   "hash salt; random seed with --method=reservoir",
		},
		&cli.StringFlag{
			Name:  flagHash,
			Usage: fmt.Sprintf("hash function %v", xhash.Algorithms()),
			Value: string(xhash.Default),
		},
		&cli.StringFlag{
			Name:  flagSep,
			Usage: "column separator",
			Value: xconf.DefaultSeparator,
		},
		&cli.StringFlag{
			Name:  flagMethod,
			Usage: "sampling method: hash or reservoir",
			Value: string(xconf.MethodHash),
		},
		&cli.BoolFlag{
			Name:  flagOrder,
			Usage: "keep input order in reservoir output",
		},
		&cli.StringFlag{
			Name:  flagConfig,
			Usage: "YAML or JSON profile; command line options take precedence",
		},
		&cli.StringFlag{
			Name:  flagLogLevel,
			Usage: "log level: debug, info, warn, error",
		},
		&cli.StringFlag{
			Name:  flagLogFormat,
			Usage: "log format: text or json",
		},
		&cli.StringFlag{
			Name:  flagLogFile,
			Usage: "write logs to a rotating file instead of stderr",
		},
		&cli.BoolFlag{
			Name:  flagStats,
			Usage: "print record counts to stderr when done",
		},
	}
}

func onUsageError(_ context.Context, _ *cli.Command, err error, _ bool) error {
	return asUsageError(err)
}

// flagNames 返回所有选项名与别名，值表示该选项是否需要参数值
func flagNames(cmd *cli.Command) map[string]bool {
	names := make(map[string]bool)
	var walk func(*cli.Command)
	walk = func(c *cli.Command) {
		for _, f := range c.Flags {
			takesValue := false
			if df, ok := f.(cli.DocGenerationFlag); ok {
				takesValue = df.TakesValue()
			}
			for _, n := range f.Names() {
				names[n] = takesValue
			}
		}
		for _, sub := range c.Commands {
			walk(sub)
		}
	}
	walk(cmd)
	// 内置选项
	for _, n := range []string{"help", "h", "version", "v"} {
		names[n] = false
	}
	return names
}
