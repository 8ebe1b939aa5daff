// Package handlers implements the business logic for CLI commands.
//
// Handlers read composite documents, drive the assembler and function runner,
// and print results. Commands only parse flags and delegate here.
package handlers

import (
	"os"

	"github.com/go-logr/logr"
	ctrllog "sigs.k8s.io/controller-runtime/pkg/log"
	"sigs.k8s.io/controller-runtime/pkg/log/zap"
)

var cliLog = logr.Discard()

// SetupLogging installs a zap logger writing to stderr. Verbose enables
// debug output, which includes one line per generated resource.
func SetupLogging(verbose bool) {
	cliLog = zap.New(
		zap.UseDevMode(verbose),
		zap.WriteTo(os.Stderr),
	)
	ctrllog.SetLogger(cliLog)
}

func logger() logr.Logger {
	return cliLog.WithName("vectordb")
}
