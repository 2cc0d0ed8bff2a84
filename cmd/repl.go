package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/urfave/cli/v2"
	"golang.org/x/term"

	"github.com/smarthome-go/lox/lox"
	"github.com/smarthome-go/lox/lox/interpreter/value"
)

// Reads one line at a time
type lineReader interface {
	ReadLine() (string, error)
}

// Used if stdin is not a terminal
type plainReader struct {
	scanner *bufio.Scanner
	prompt  string
}

func (self plainReader) ReadLine() (string, error) {
	fmt.Print(self.prompt)
	if !self.scanner.Scan() {
		if err := self.scanner.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return self.scanner.Text(), nil
}

// Provides line editing and history through a raw mode terminal
type terminalReader struct {
	terminal *term.Terminal
}

func (self terminalReader) ReadLine() (string, error) {
	return self.terminal.ReadLine()
}

type stdio struct {
	io.Reader
	io.Writer
}

// The terminal writes with `\r\n` line endings while it is in raw mode
type terminalExecutor struct {
	terminal *term.Terminal
}

func (self terminalExecutor) WriteStringTo(input string) error {
	_, err := self.terminal.Write([]byte(input))
	return err
}

func runRepl(ctx *cli.Context) error {
	cfg, err := loadConfig(ctx)
	if err != nil {
		return err
	}

	var reader lineReader
	var executor value.Executor
	var output io.Writer = os.Stdout

	stdinFd := int(os.Stdin.Fd())
	if term.IsTerminal(stdinFd) {
		oldState, err := term.MakeRaw(stdinFd)
		if err != nil {
			return err
		}
		defer func() {
			_ = term.Restore(stdinFd, oldState)
		}()

		terminal := term.NewTerminal(stdio{Reader: os.Stdin, Writer: os.Stdout}, cfg.Prompt)
		reader = terminalReader{terminal: terminal}
		executor = terminalExecutor{terminal: terminal}
		output = terminal
	} else {
		reader = plainReader{scanner: bufio.NewScanner(os.Stdin), prompt: cfg.Prompt}
		executor = lox.NewStdoutExecutor()
	}

	session := lox.NewSession(executor)
	session.SetCallStackLimit(cfg.CallStackLimit)
	useColor := cfg.UseColor(stdoutIsTerminal())

	fmt.Fprintf(output, "Lox %s\nPress Ctrl+D to exit\n\n", version)

	// every line is kept so that diagnostics can refer back to earlier lines
	sources := make(map[string]string)

	for {
		line, err := reader.ReadLine()
		if errors.Is(err, io.EOF) {
			fmt.Fprintln(output)
			return nil
		}
		if err != nil {
			return err
		}

		if strings.TrimSpace(line) == "" {
			continue
		}

		result := session.RunLine(line)
		sources[result.Filename] = line

		printDiagnostics(output, result.Diagnostics, sources, cfg)

		if result.Value != nil {
			fmt.Fprintf(output, "=> %s\n", replDisplay(result.Value, useColor))
		}
	}
}

// Renders the value of a trailing expression, strings are quoted
func replDisplay(val value.Value, useColor bool) string {
	text := val.Display()
	color := 0

	switch val.Kind() {
	case value.IntValueKind:
		color = 34 // blue
	case value.FloatValueKind:
		color = 36 // cyan
	case value.StringValueKind:
		text = strconv.Quote(text)
		color = 32 // green
	case value.BoolValueKind, value.NilValueKind:
		color = 35 // purple
	default:
		color = 33 // yellow
	}

	if !useColor {
		return text
	}
	return fmt.Sprintf("\x1b[%dm%s\x1b[0m", color, text)
}
