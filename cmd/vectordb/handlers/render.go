package handlers

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/go-logr/logr"

	"github.com/imamik/vectordb/internal/assembler"
	"github.com/imamik/vectordb/internal/function"
)

// Factory function variables for render and plan - can be replaced in tests.
var (
	// readInput reads a document from a file, or stdin for "-".
	readInput = func(path string) ([]byte, error) {
		if path == "-" {
			return io.ReadAll(os.Stdin)
		}
		return os.ReadFile(path)
	}

	// newAssembler creates the assembler used by render and plan.
	newAssembler = func(log logr.Logger) function.Assembler {
		return assembler.New(assembler.WithLogger(log))
	}
)

// Render generates the desired state for the input document and prints the
// function response. A fatal result is printed and also returned as an error.
func Render(ctx context.Context, inputPath, format string) error {
	req, err := loadRequest(inputPath)
	if err != nil {
		return err
	}

	log := logger()
	runner := function.NewRunner(newAssembler(log), log)
	rsp := runner.GenerateDesiredState(ctx, req)

	if err := function.WriteResponse(os.Stdout, rsp, format); err != nil {
		return fmt.Errorf("failed to write response: %w", err)
	}

	if rsp.Fatal() {
		return fmt.Errorf("render failed: %s", fatalMessage(rsp))
	}
	return nil
}

func loadRequest(inputPath string) (*function.Request, error) {
	data, err := readInput(inputPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", inputPath, err)
	}
	req, err := function.ReadRequest(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", inputPath, err)
	}
	return req, nil
}

func fatalMessage(rsp *function.Response) string {
	for _, res := range rsp.Results {
		if res.Severity == function.SeverityFatal {
			return res.Message
		}
	}
	return ""
}
