package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	_ "github.com/joho/godotenv/autoload"
	"github.com/urfave/cli/v3"

	"github.com/starford/inkpress/internal"
	"github.com/starford/inkpress/internal/newpost"
)

func publish(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	page, err := internal.Run(ctx, internal.WithConfig(cfg))
	if err != nil {
		return fmt.Errorf("publish: %w", err)
	}

	if page != "" {
		fmt.Fprintln(cmd.Root().Writer, page)
	}
	return nil
}

func watch(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	if err := internal.Watch(ctx, internal.WithConfig(cfg)); err != nil {
		return fmt.Errorf("watch: %w", err)
	}
	return nil
}

func create(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	title := strings.TrimSpace(strings.Join(cmd.Args().Slice(), " "))
	if title == "" {
		return fmt.Errorf("new: a post title is required")
	}
	req := newpost.Request{
		Title:   title,
		Tags:    cmd.StringSlice("tag"),
		Summary: cmd.String("summary"),
	}

	path, err := internal.NewPost(ctx, req, internal.WithConfig(cfg))
	if err != nil {
		return fmt.Errorf("new: %w", err)
	}
	fmt.Fprintln(cmd.Root().Writer, path)
	return nil
}

func format(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	path := cmd.Args().First()
	if path == "" {
		return fmt.Errorf("fmt: a post file is required")
	}

	out, err := internal.Format(ctx, path, cmd.Bool("write"), internal.WithConfig(cfg))
	if err != nil {
		return fmt.Errorf("fmt: %w", err)
	}
	if !cmd.Bool("write") {
		_, err = cmd.Root().Writer.Write(out)
	}
	return err
}

func newApp() *cli.Command {
	return &cli.Command{
		Name:   "inkpress",
		Usage:  "Publish the most recent markdown posts as linked pages, category lists, an archive and feeds",
		Action: publish,
		Flags:  globalFlags(),
		MutuallyExclusiveFlags: []cli.MutuallyExclusiveFlags{orderFlags()},
		Commands: []*cli.Command{
			{
				Name:      "new",
				Usage:     "Create a new post source file with the next free number",
				ArgsUsage: "<title>",
				Action:    create,
				Flags: []cli.Flag{
					&cli.StringSliceFlag{
						Name:  "tag",
						Usage: "Tag for the new post (repeatable)",
						Local: true,
					},
					&cli.StringFlag{
						Name:  "summary",
						Usage: "One line summary",
						Local: true,
					},
				},
			},
			{
				Name:      "fmt",
				Usage:     "Print a post in canonical header form",
				ArgsUsage: "<file>",
				Action:    format,
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:    "write",
						Aliases: []string{"w"},
						Usage:   "Rewrite the file in place",
						Local:   true,
					},
				},
			},
			{
				Name:   "watch",
				Usage:  "Publish, then republish whenever a post changes",
				Action: watch,
			},
		},
	}
}

func main() {
	if err := newApp().Run(context.Background(), os.Args); err != nil {
		slog.Error("application error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
