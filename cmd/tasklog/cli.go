package main

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/mkantor/tasklog/internal/config"
	"github.com/mkantor/tasklog/internal/errors"
	"github.com/mkantor/tasklog/internal/ops"
	"github.com/mkantor/tasklog/internal/web"
)

// newCLIApp creates the CLI application with all commands.
func newCLIApp(cfg *config.Config) *cli.App {
	if cfg == nil {
		cfg = &config.Config{}
	}
	app := &cli.App{
		Name:    "tasklog",
		Usage:   "File-backed to-do journal",
		Version: Version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "journal-file",
				Aliases: []string{"j"},
				Value:   cfg.JournalFile,
				Usage:   "Use a different journal file",
			},
		},
		Commands: []*cli.Command{
			addCmd(),
			doneCmd(),
			listCmd(cfg),
			searchCmd(),
			exportCmd(),
			serveCmd(cfg),
		},
	}
	// Disable default exit error handler to allow proper error return in tests
	app.ExitErrHandler = func(_ *cli.Context, _ error) {}
	return app
}

// addCmd creates the add command.
func addCmd() *cli.Command {
	return &cli.Command{
		Name:      "add",
		Usage:     "Append a task to the journal",
		ArgsUsage: "<text>",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "due-date", Aliases: []string{"d"}, Usage: "Due date (yyyy-mm-dd)"},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() < 1 {
				return outputError(errors.NewInvalidInput("task text argument is required"))
			}

			output, err := ops.Add(ops.AddInput{
				JournalFile: c.String("journal-file"),
				Text:        strings.Join(c.Args().Slice(), " "),
				DueDate:     c.String("due-date"),
			})
			if err != nil {
				return outputError(err)
			}

			return outputJSON(output)
		},
	}
}

// doneCmd creates the done command. Positions address tasks in ascending
// creation order, regardless of the order of the last listing.
func doneCmd() *cli.Command {
	return &cli.Command{
		Name:      "done",
		Usage:     "Remove a task by its 1-based position (ascending creation order)",
		ArgsUsage: "<position>",
		Action: func(c *cli.Context) error {
			if c.NArg() < 1 {
				return outputError(errors.NewInvalidInput("position argument is required"))
			}

			position, err := strconv.Atoi(c.Args().First())
			if err != nil {
				return outputError(errors.NewInvalidInput(fmt.Sprintf("position must be an integer, got %q", c.Args().First())))
			}

			output, opErr := ops.Done(ops.DoneInput{
				JournalFile: c.String("journal-file"),
				Position:    position,
			})
			if opErr != nil {
				return outputError(opErr)
			}

			return outputJSON(output)
		},
	}
}

// listCmd creates the list command.
func listCmd(cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "list",
		Usage: "List tasks ordered by creation time",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "order", Aliases: []string{"o"}, Value: cfg.DefaultOrder, Usage: "Listing order: asc|desc"},
		},
		Action: func(c *cli.Context) error {
			output, err := ops.List(ops.ListInput{
				JournalFile: c.String("journal-file"),
				Order:       ops.Order(c.String("order")),
			})
			if err != nil {
				return outputError(err)
			}

			return outputJSON(output)
		},
	}
}

// searchCmd creates the search command.
func searchCmd() *cli.Command {
	return &cli.Command{
		Name:      "search",
		Usage:     "Search tasks by case-insensitive keyword",
		ArgsUsage: "<keyword>",
		Action: func(c *cli.Context) error {
			if c.NArg() < 1 {
				return outputError(errors.NewInvalidInput("keyword argument is required"))
			}

			output, err := ops.Search(ops.SearchInput{
				JournalFile: c.String("journal-file"),
				Keyword:     c.Args().First(),
			})
			if err != nil {
				return outputError(err)
			}

			return outputJSON(output)
		},
	}
}

// exportCmd creates the export command.
func exportCmd() *cli.Command {
	return &cli.Command{
		Name:  "export",
		Usage: "Export the journal to a JSONL file",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "path", Aliases: []string{"p"}, Usage: "Export file path (default: ~/.tasklog/exports/journal-<timestamp>.jsonl)"},
		},
		Action: func(c *cli.Context) error {
			output, err := ops.Export(ops.ExportInput{
				JournalFile: c.String("journal-file"),
				Path:        c.String("path"),
			})
			if err != nil {
				return outputError(err)
			}

			return outputJSON(output)
		},
	}
}

// serveCmd creates the serve command for the read-only web viewer.
func serveCmd(cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Serve a read-only web viewer for the journal",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "bind", Value: cfg.WebBind, Usage: "Bind address"},
			&cli.IntFlag{Name: "port", Value: cfg.WebPort, Usage: "Port"},
		},
		Action: func(c *cli.Context) error {
			srv := web.NewServer(c.String("journal-file"), cfg, Version, c.String("bind"), c.Int("port"))
			return web.Run(srv)
		},
	}
}

// outputJSON writes an op result to stdout as indented JSON.
func outputJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// outputError turns an op error into a non-zero CLI exit, keeping the error
// code visible in the message.
func outputError(err error) error {
	var jErr *errors.JournalError
	if stderrors.As(err, &jErr) {
		return cli.Exit(fmt.Sprintf("[%s] %s", jErr.Code, jErr.Message), 1)
	}
	return cli.Exit(err.Error(), 1)
}
