package api

import (
	"github.com/go-viper/mapstructure/v2"
)

// AgentMetadata is the known, typed subset of a transcript entry's metadata
// mapping. The backend is free to attach more keys; unknown ones are
// ignored.
type AgentMetadata struct {
	Model      string  `mapstructure:"model"`
	Stage      string  `mapstructure:"stage"`
	Confidence float64 `mapstructure:"confidence"`
	Tokens     int     `mapstructure:"tokens"`
}

// DecodeMetadata decodes the entry's free-form metadata into AgentMetadata.
// Entries without metadata decode to the zero value.
func (e *TranscriptEntry) DecodeMetadata() (*AgentMetadata, error) {
	var md AgentMetadata
	if len(e.Metadata) == 0 {
		return &md, nil
	}
	if err := mapstructure.WeakDecode(e.Metadata, &md); err != nil {
		return nil, err
	}
	return &md, nil
}
