package assembler

import (
	"context"

	"github.com/go-logr/logr"

	"github.com/imamik/vectordb/internal/builders"
	"github.com/imamik/vectordb/internal/config"
	"github.com/imamik/vectordb/internal/descriptor"
	"github.com/imamik/vectordb/internal/graph"
	"github.com/imamik/vectordb/internal/util/keygen"
	"github.com/imamik/vectordb/internal/util/netutil"
)

// Context carries the input and the results of earlier phases. It is
// progressively populated as each phase completes.
type Context struct {
	context.Context
	Log      logr.Logger
	Observer Observer

	// Input is the observed composite resource.
	Input map[string]any

	// Normalizing
	Config *config.Config

	// Allocating. Blocks is empty when an existing network is reused.
	Blocks []netutil.AddressBlock

	// Building
	Network builders.Network
	Built   []*descriptor.Descriptor

	// Linking
	Graph *graph.Graph

	passwords keygen.Generator
}
