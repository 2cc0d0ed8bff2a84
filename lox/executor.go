package lox

import (
	"fmt"
	"io"
	"os"

	"github.com/smarthome-go/lox/lox/interpreter/value"
)

//
// Stdout executor
//

// Writes everything a program prints to an `io.Writer`, standard output by default
type WriterExecutor struct {
	Writer io.Writer
}

func NewStdoutExecutor() WriterExecutor {
	return WriterExecutor{Writer: os.Stdout}
}

func (self WriterExecutor) WriteStringTo(input string) error {
	_, err := fmt.Fprint(self.Writer, input)
	return err
}

//
// Testing executor
//

// Captures printed output so that tests can inspect it
type TestingExecutor struct {
	Output        *string
	PrintToStdout bool
}

func NewTestingExecutor() TestingExecutor {
	return TestingExecutor{
		Output:        new(string),
		PrintToStdout: false,
	}
}

func (self TestingExecutor) WriteStringTo(input string) error {
	*self.Output += input
	if self.PrintToStdout {
		fmt.Print(input)
	}
	return nil
}

// Statically asserts that both executors satisfy the interface
var (
	_ value.Executor = WriterExecutor{}
	_ value.Executor = TestingExecutor{}
)
