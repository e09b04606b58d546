package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pixil98/go-adventure/internal/game"
	"github.com/pixil98/go-adventure/internal/storage"
	"github.com/urfave/cli/v3"
)

func main() {
	err := newApp(os.Stdout).Run(context.Background(), os.Args)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newApp(w io.Writer) *cli.Command {
	return &cli.Command{
		Name:   "mapcheck",
		Usage:  "validate and inspect adventure map files",
		Writer: w,
		Commands: []*cli.Command{
			{
				Name:      "validate",
				Usage:     "load every map and report structural problems",
				ArgsUsage: "<file or directory>...",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:    "quiet",
						Aliases: []string{"q"},
						Usage:   "only report failures",
					},
				},
				Action: func(ctx context.Context, c *cli.Command) error {
					return validate(w, c.Args().Slice(), c.Bool("quiet"))
				},
			},
			{
				Name:      "describe",
				Usage:     "print the rooms and exits of a map",
				ArgsUsage: "<file>",
				Action: func(ctx context.Context, c *cli.Command) error {
					if c.Args().Len() != 1 {
						return fmt.Errorf("describe takes exactly one map file")
					}
					return describe(w, c.Args().First())
				},
			},
		},
	}
}

func validate(w io.Writer, roots []string, quiet bool) error {
	if len(roots) == 0 {
		return fmt.Errorf("no map files given")
	}

	var paths []string
	for _, root := range roots {
		found, err := storage.FindMaps(root)
		if err != nil {
			return fmt.Errorf("finding maps in %q: %w", root, err)
		}
		paths = append(paths, found...)
	}

	failed := 0
	for _, path := range paths {
		g, err := storage.LoadMap(path)
		if err != nil {
			failed++
			fmt.Fprintf(w, "FAIL %s\n  %s\n", path, strings.ReplaceAll(err.Error(), "\n", "\n  "))
			continue
		}
		if !quiet {
			fmt.Fprintf(w, "ok   %s (%d rooms)\n", path, g.Len())
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d maps failed validation", failed, len(paths))
	}
	return nil
}

func describe(w io.Writer, path string) error {
	g, err := storage.LoadMap(path)
	if err != nil {
		return err
	}

	if g.Intro != "" {
		fmt.Fprintf(w, "%s\n\n", g.Intro)
	}

	for i, r := range g.Rooms() {
		tags := []string{}
		if i == 0 {
			tags = append(tags, "start")
		}
		if r.End {
			tags = append(tags, "end")
		}

		fmt.Fprintf(w, "%d. %s", r.Number, r.Name)
		if len(tags) > 0 {
			fmt.Fprintf(w, " [%s]", strings.Join(tags, ", "))
		}
		fmt.Fprintln(w)

		if r.Items.Len() > 0 {
			fmt.Fprintf(w, "   items: %s\n", strings.Join(r.Items.Names(), ", "))
		}
		for _, d := range game.Directions {
			if dest, ok := r.Exit(d); ok {
				fmt.Fprintf(w, "   %-5s -> %s (%d)\n", d, g.Room(dest).Name, dest)
			}
		}
	}

	return nil
}
