package handlers

import (
	"bytes"
	"io"
	"os"
	"testing"

	"github.com/go-logr/logr"

	"github.com/imamik/vectordb/internal/assembler"
	"github.com/imamik/vectordb/internal/function"
)

const testComposite = `apiVersion: vectordb.io/v1alpha1
kind: VectorDatabase
metadata:
  name: search
  namespace: default
spec:
  region: us-west-2
`

func captureOutput(f func()) string {
	old := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w

	f()

	w.Close()
	os.Stdout = old

	var buf bytes.Buffer
	io.Copy(&buf, r)
	return buf.String()
}

// stubInput replaces readInput and newAssembler for the duration of a test.
func stubInput(t *testing.T, doc string) {
	t.Helper()

	origRead := readInput
	origAssembler := newAssembler
	t.Cleanup(func() {
		readInput = origRead
		newAssembler = origAssembler
	})

	readInput = func(string) ([]byte, error) {
		return []byte(doc), nil
	}
	newAssembler = func(log logr.Logger) function.Assembler {
		return assembler.New(
			assembler.WithLogger(log),
			assembler.WithPasswordGenerator(func() (string, error) { return "Handler!Passw0rd", nil }),
		)
	}
}
