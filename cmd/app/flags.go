package main

import (
	"fmt"
	"log/slog"

	"github.com/urfave/cli/v3"

	"github.com/starford/inkpress/internal"
	"github.com/starford/inkpress/internal/apperr"
	"github.com/starford/inkpress/internal/selector"
	pkgconfig "github.com/starford/inkpress/pkg/config"
)

const defaultConfigFile = "config/config.yaml"

// orderFlags returns the mutually exclusive selection order flags. The
// group registers them on the command, so they are not part of globalFlags.
func orderFlags() cli.MutuallyExclusiveFlags {
	return cli.MutuallyExclusiveFlags{
		Flags: [][]cli.Flag{
			{&cli.BoolFlag{
				Name:    "by_time",
				Usage:   "Select the recent posts by file creation time",
				Sources: cli.EnvVars("INKPRESS_BY_TIME"),
			}},
			{&cli.BoolFlag{
				Name:    "by_name",
				Usage:   "Select the recent posts by file name",
				Sources: cli.EnvVars("INKPRESS_BY_NAME"),
			}},
		},
	}
}

func globalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "config",
			Aliases:     []string{"c"},
			Usage:       "Path to config file (.yaml or .toml)",
			DefaultText: defaultConfigFile,
			Value:       defaultConfigFile,
			Sources:     cli.EnvVars("INKPRESS_CONFIG_FILE"),
		},
		&cli.StringFlag{
			Name:    "templates",
			Aliases: []string{"t"},
			Usage:   "Template directory or glob",
			Sources: cli.EnvVars("INKPRESS_TEMPLATES"),
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "Output directory",
			Sources: cli.EnvVars("INKPRESS_OUTPUT"),
		},
		&cli.StringFlag{
			Name:    "source",
			Aliases: []string{"s"},
			Usage:   "Post source directory",
			Sources: cli.EnvVars("INKPRESS_SOURCE"),
		},
		&cli.IntFlag{
			Name:    "recent",
			Aliases: []string{"r"},
			Usage:   "Number of recent posts in the working set",
			Sources: cli.EnvVars("INKPRESS_RECENT"),
		},
		&cli.StringFlag{
			Name:    "blog_name",
			Usage:   "Blog title used in feeds and pages",
			Sources: cli.EnvVars("INKPRESS_BLOG_NAME"),
		},
		&cli.StringFlag{
			Name:    "url",
			Usage:   "Base URL for permalinks",
			Sources: cli.EnvVars("INKPRESS_URL"),
		},
		&cli.StringFlag{
			Name:    "short_url",
			Usage:   "Base URL for short links",
			Sources: cli.EnvVars("INKPRESS_SHORT_URL"),
		},
		&cli.BoolFlag{
			Name:    "strict",
			Usage:   "Fail on posts whose header has no === delimiter",
			Sources: cli.EnvVars("INKPRESS_STRICT"),
		},
		&cli.StringFlag{
			Name:    "log_level",
			Usage:   "Log level (debug, info, warn, error)",
			Sources: cli.EnvVars("INKPRESS_LOG_LEVEL"),
		},
	}
}

// loadConfig resolves defaults, then the config file, then flags that were
// set explicitly, and validates the result.
func loadConfig(cmd *cli.Command) (*internal.Config, error) {
	cfg := internal.NewDefaultConfig()

	path := cmd.String("config")
	if cmd.IsSet("config") {
		if err := pkgconfig.Decode(path, cfg); err != nil {
			return nil, apperr.Settings(err, "load config")
		}
	} else if _, err := pkgconfig.DecodeOptional(path, cfg); err != nil {
		return nil, apperr.Settings(err, "load config")
	}

	if err := applyFlags(cmd, cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, apperr.Settings(err, "invalid config")
	}
	return cfg, nil
}

func applyFlags(cmd *cli.Command, cfg *internal.Config) error {
	stringFlags := []struct {
		flag   string
		target *string
	}{
		{"templates", &cfg.Paths.Templates},
		{"output", &cfg.Paths.Output},
		{"source", &cfg.Paths.Source},
		{"blog_name", &cfg.Site.Name},
		{"url", &cfg.Site.URL},
		{"short_url", &cfg.Site.ShortURL},
	}
	for _, s := range stringFlags {
		if cmd.IsSet(s.flag) {
			*s.target = cmd.String(s.flag)
		}
	}

	if cmd.IsSet("recent") {
		cfg.Publish.Recent = int(cmd.Int("recent"))
	}
	if cmd.IsSet("by_time") && cmd.Bool("by_time") {
		cfg.Publish.Order = string(selector.OrderByTime)
	}
	if cmd.IsSet("by_name") && cmd.Bool("by_name") {
		cfg.Publish.Order = string(selector.OrderByName)
	}
	if cmd.IsSet("strict") {
		cfg.Publish.StrictHeader = cmd.Bool("strict")
	}
	if cmd.IsSet("log_level") {
		var level slog.Level
		if err := level.UnmarshalText([]byte(cmd.String("log_level"))); err != nil {
			return apperr.Settings(fmt.Errorf("log_level: %w", err), "flags")
		}
		cfg.App.LogLevel = level
	}
	return nil
}
