// Command mdlist edits markdown lists the way an editor does on enter, tab,
// and shift-tab: it runs one list operation at some cursors within a document,
// then prints the result or writes it back.
//
// Usage:
//
//	mdlist continue --cursor 3:12 notes.md
//	mdlist indent --cursor 4-6 -w notes.md
//	mdlist outdent < notes.md
//	mdlist parse notes.md
//	mdlist outline notes.md
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/jcorbin/mdlist/internal/config"
	"github.com/jcorbin/mdlist/internal/listedit"
	"github.com/jcorbin/mdlist/internal/logutil"
)

// globalFlags are set by the root command, and shared with every subcommand.
type globalFlags struct {
	LogLevel   string
	LogFile    string
	ConfigPath string

	// Config is loaded in the Before hook
	Config *config.Config
}

func main() {
	if err := newApp(&globalFlags{}).Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newApp(flags *globalFlags) *cli.Command {
	var logCloser func()

	app := &cli.Command{
		Name:      "mdlist",
		Usage:     "Continue, indent, and outdent markdown list items",
		UsageText: "mdlist [global options] command [command options] [FILE]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "log-level",
				Usage:       "log level (debug, info, warn, error, fatal, panic)",
				Sources:     cli.EnvVars("MDLIST_LOG_LEVEL"),
				Value:       "warn",
				Destination: &flags.LogLevel,
			},
			&cli.StringFlag{
				Name:        "log-file",
				Usage:       "path to log file (defaults to stderr)",
				Sources:     cli.EnvVars("MDLIST_LOG_FILE"),
				Destination: &flags.LogFile,
			},
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "path to config file (default: nearest " + config.ProjectConfigName + ", else the user config)",
				Sources:     cli.EnvVars("MDLIST_CONFIG"),
				Value:       config.DefaultConfigPath(),
				Destination: &flags.ConfigPath,
			},
		},
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			logger, closer, err := logutil.New(flags.LogLevel, flags.LogFile)
			if err != nil {
				return ctx, fmt.Errorf("setup logger: %w", err)
			}
			logutil.SetDefault(logger)
			logCloser = closer

			// a project config overrides the user's unless one is given
			if !c.IsSet("config") {
				if wd, err := os.Getwd(); err == nil {
					if path, err := config.FindUp(wd, config.ProjectConfigName); err == nil {
						flags.ConfigPath = path
					}
				}
			}

			cfg, err := config.Load(flags.ConfigPath)
			if err != nil {
				return ctx, fmt.Errorf("load config: %w", err)
			}
			flags.Config = cfg
			log.Debug().Str("config", flags.ConfigPath).Msg("loaded config")
			return ctx, nil
		},
		After: func(ctx context.Context, c *cli.Command) error {
			if logCloser != nil {
				logCloser()
			}
			return nil
		},
	}

	app = newEditCmd(flags, "continue", "Continue the list at each cursor, as if enter were pressed", listedit.Continue).Register(app)
	app = newEditCmd(flags, "indent", "Indent list items within each selection, as if tab were pressed", listedit.Indent).Register(app)
	app = newEditCmd(flags, "outdent", "Outdent list items within each selection, as if shift-tab were pressed", listedit.Outdent).Register(app)
	app = newParseCmd(flags).Register(app)
	app = newOutlineCmd().Register(app)
	return app
}
