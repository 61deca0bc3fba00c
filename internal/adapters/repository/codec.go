package repository

import (
	jsoniter "github.com/json-iterator/go"

	"github.com/okian/pitchside/internal/domain/model"
)

// codec keeps non-ASCII names readable and leaves <, > and & unescaped so
// the file stays hand-editable.
var codec = jsoniter.Config{ //nolint:gochecknoglobals // frozen config
	EscapeHTML:             false,
	SortMapKeys:            true,
	ValidateJsonRawMessage: true,
}.Froze()

// Encode renders the document as indented JSON.
func Encode(d *model.Data) ([]byte, error) {
	b, err := codec.MarshalIndent(d, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(b, '\n'), nil
}

// Decode parses a document and fills in missing collections.
func Decode(b []byte) (*model.Data, error) {
	var d model.Data
	if err := codec.Unmarshal(b, &d); err != nil {
		return nil, err
	}
	return d.EnsureStructure(), nil
}
