package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/davecgh/go-spew/spew"
	"github.com/mattn/go-isatty"
	"github.com/urfave/cli/v2"

	"github.com/smarthome-go/lox/lox"
	"github.com/smarthome-go/lox/lox/config"
	"github.com/smarthome-go/lox/lox/diagnostic"
	"github.com/smarthome-go/lox/lox/lexer"
)

const programName = "lox"
const version = "latest"

// Exit codes for static and runtime errors
const exitCodeStaticError = 65
const exitCodeRuntimeError = 70

func fileValidator(ctx *cli.Context) error {
	if ctx.Args().Len() != 1 {
		return fmt.Errorf("Expected exactly one argument")
	}
	return nil
}

// Reads the program from the file at `filename` or from stdin if the filename is `-`
func readSource(filename string) (string, error) {
	if filename == "-" {
		content, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("Could not read from stdin: %w", err)
		}
		return string(content), nil
	}

	content, err := os.ReadFile(filename)
	if err != nil {
		return "", fmt.Errorf("Could not read '%s': %w", filename, err)
	}
	return string(content), nil
}

func loadConfig(ctx *cli.Context) (config.Config, error) {
	path := ctx.String("config")
	if path == "" {
		return config.Default(), nil
	}

	cfg, err := config.Load(path)
	if err != nil {
		return config.Config{}, err
	}

	if ctx.Bool("verbose") {
		log.Printf("Loaded config from '%s'\n", path)
	}

	return cfg, nil
}

func stdoutIsTerminal() bool {
	return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
}

// Prints the diagnostics, `sources` maps filenames to the program text the spans refer to
func printDiagnostics(output io.Writer, diagnostics []diagnostic.Diagnostic, sources map[string]string, cfg config.Config) {
	useColor := cfg.UseColor(stdoutIsTerminal())

	for _, item := range diagnostics {
		if item.Level < diagnostic.DiagnosticLevelError && !cfg.Warnings {
			continue
		}
		fmt.Fprintln(output, item.Display(sources[item.Span.Filename], useColor))
	}
}

func main() {
	log.SetFlags(0)
	log.SetPrefix("lox: ")

	// nolint:exhaustruct
	app := &cli.App{
		Name:     programName,
		Usage:    "A tree-walking interpreter for the Lox scripting language",
		Version:  version,
		Compiled: time.Now(),
		Authors: []*cli.Author{
			{
				Name:  "The Smarthome Authors",
				Email: "",
			},
		},
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Usage:   "Path to a YAML config file",
				Aliases: []string{"c"},
				EnvVars: []string{"LOX_CONFIG"},
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Usage:   "If set, phase timings are logged to stderr",
				Aliases: []string{"v"},
			},
		},
		// Without a subcommand, the REPL is started
		Action: runRepl,
		Commands: []*cli.Command{
			{
				Name:      "run",
				Usage:     "Run a Lox file, `-` reads the program from stdin",
				ArgsUsage: "[file]",
				Args:      true,
				Before:    fileValidator,
				Action: func(ctx *cli.Context) error {
					cfg, err := loadConfig(ctx)
					if err != nil {
						return err
					}

					filename := ctx.Args().First()
					source, err := readSource(filename)
					if err != nil {
						return err
					}

					session := lox.NewSession(lox.NewStdoutExecutor())
					session.SetCallStackLimit(cfg.CallStackLimit)

					start := time.Now()
					result := session.Run(filename, source)
					if ctx.Bool("verbose") {
						log.Printf("Finished execution: elapsed: %v\n", time.Since(start))
					}

					printDiagnostics(os.Stdout, result.Diagnostics, map[string]string{filename: source}, cfg)

					if result.RuntimeError != nil {
						return cli.Exit("", exitCodeRuntimeError)
					}
					if !result.Success() {
						return cli.Exit("", exitCodeStaticError)
					}
					return nil
				},
			},
			{
				Name:   "repl",
				Usage:  "Start an interactive session",
				Action: runRepl,
			},
			{
				Name:      "check",
				Usage:     "Report syntax and resolver errors without running the file",
				ArgsUsage: "[file]",
				Args:      true,
				Before:    fileValidator,
				Action: func(ctx *cli.Context) error {
					cfg, err := loadConfig(ctx)
					if err != nil {
						return err
					}

					filename := ctx.Args().First()
					source, err := readSource(filename)
					if err != nil {
						return err
					}

					start := time.Now()
					diagnostics := lox.Check(filename, source)
					if ctx.Bool("verbose") {
						log.Printf("Finished analysis: elapsed: %v\n", time.Since(start))
					}

					printDiagnostics(os.Stdout, diagnostics, map[string]string{filename: source}, cfg)

					if diagnostic.ContainsErrors(diagnostics) {
						return cli.Exit("", exitCodeStaticError)
					}
					return nil
				},
			},
			{
				Name:      "test",
				Usage:     "Run every Lox file of a directory and compare its output with the `.out` file next to it",
				ArgsUsage: "[directory]",
				Args:      true,
				Before:    fileValidator,
				Action: func(ctx *cli.Context) error {
					cfg, err := loadConfig(ctx)
					if err != nil {
						return err
					}

					start := time.Now()
					failed, err := runTestSuite(os.Stdout, ctx.Args().First(), cfg, ctx.Bool("verbose"))
					if err != nil {
						return err
					}
					if ctx.Bool("verbose") {
						log.Printf("Finished test suite: elapsed: %v\n", time.Since(start))
					}

					if failed > 0 {
						return cli.Exit("", 1)
					}
					return nil
				},
			},
			{
				Name:      "ast",
				Usage:     "Print the syntax tree of a Lox file",
				ArgsUsage: "[file]",
				Args:      true,
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:    "raw",
						Usage:   "If set, the Go representation of the tree is dumped",
						Aliases: []string{"r"},
					},
				},
				Before: fileValidator,
				Action: func(ctx *cli.Context) error {
					cfg, err := loadConfig(ctx)
					if err != nil {
						return err
					}

					filename := ctx.Args().First()
					source, err := readSource(filename)
					if err != nil {
						return err
					}

					program, _, diagnostics := lox.Parse(filename, source, false)
					if len(diagnostics) > 0 {
						printDiagnostics(os.Stdout, diagnostics, map[string]string{filename: source}, cfg)
						return cli.Exit("", exitCodeStaticError)
					}

					if ctx.Bool("raw") {
						spew.Dump(program)
						return nil
					}

					fmt.Println(program)
					return nil
				},
			},
			{
				Name:      "tokens",
				Usage:     "Print the tokens of a Lox file",
				ArgsUsage: "[file]",
				Args:      true,
				Before:    fileValidator,
				Action: func(ctx *cli.Context) error {
					cfg, err := loadConfig(ctx)
					if err != nil {
						return err
					}

					filename := ctx.Args().First()
					source, err := readSource(filename)
					if err != nil {
						return err
					}

					lex := lexer.NewLexer(source, filename)
					tokens, lexErrors := lex.Scan()

					for _, token := range tokens {
						fmt.Println(token)
					}

					if len(lexErrors) > 0 {
						diagnostics := make([]diagnostic.Diagnostic, 0, len(lexErrors))
						for _, err := range lexErrors {
							diagnostics = append(diagnostics, diagnostic.FromError(err))
						}
						printDiagnostics(os.Stdout, diagnostics, map[string]string{filename: source}, cfg)
						return cli.Exit("", exitCodeStaticError)
					}

					return nil
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
