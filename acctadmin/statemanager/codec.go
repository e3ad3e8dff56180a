package statemanager

import (
	"encoding/json"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Codec converts state values to and from their on-disk representation.
type Codec interface {
	Marshal(v any) ([]byte, error)
	Unmarshal(data []byte, v any) error
	Name() string
}

type JSONCodec struct{}

func (JSONCodec) Marshal(v any) ([]byte, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

func (JSONCodec) Unmarshal(data []byte, v any) error {
	return json.Unmarshal(data, v)
}

func (JSONCodec) Name() string { return "json" }

type YAMLCodec struct{}

func (YAMLCodec) Marshal(v any) ([]byte, error) {
	return yaml.Marshal(v)
}

func (YAMLCodec) Unmarshal(data []byte, v any) error {
	return yaml.Unmarshal(data, v)
}

func (YAMLCodec) Name() string { return "yaml" }

// CodecFor picks a codec by explicit format name, falling back to the file
// extension of path. Anything unrecognised is JSON.
func CodecFor(format, path string) Codec {
	switch strings.ToLower(format) {
	case "yaml", "yml":
		return YAMLCodec{}
	case "json":
		return JSONCodec{}
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return YAMLCodec{}
	default:
		return JSONCodec{}
	}
}
