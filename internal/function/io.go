package function

import (
	"encoding/json"
	"fmt"
	"io"

	"sigs.k8s.io/yaml"

	"github.com/imamik/vectordb/internal/config"
)

// Output formats accepted by WriteResponse.
const (
	FormatYAML = "yaml"
	FormatJSON = "json"
)

// ReadRequest parses a YAML or JSON request. A document without an observed
// section is taken to be the composite resource itself.
func ReadRequest(data []byte) (*Request, error) {
	doc, err := config.ParseDocument(data)
	if err != nil {
		return nil, err
	}
	if _, ok := doc["observed"]; !ok {
		return &Request{Observed: State{Composite: Resource{Resource: doc}}}, nil
	}

	req := &Request{}
	if err := yaml.Unmarshal(data, req); err != nil {
		return nil, fmt.Errorf("failed to unmarshal request: %w", err)
	}
	return req, nil
}

// WriteResponse encodes rsp in the given format.
func WriteResponse(w io.Writer, rsp *Response, format string) error {
	var (
		out []byte
		err error
	)
	switch format {
	case FormatJSON:
		out, err = json.MarshalIndent(rsp, "", "  ")
		out = append(out, '\n')
	case FormatYAML, "":
		out, err = yaml.Marshal(rsp)
	default:
		return fmt.Errorf("unsupported output format %q", format)
	}
	if err != nil {
		return fmt.Errorf("failed to marshal response: %w", err)
	}
	_, err = w.Write(out)
	return err
}
