// Package output serializes tables, groupings and charts.
package output

import (
	"encoding/json"
	"io"
)

// ToJSON serializes v, indented when pretty is set.
func ToJSON(v any, pretty bool) ([]byte, error) {
	if pretty {
		return json.MarshalIndent(v, "", "  ")
	}
	return json.Marshal(v)
}

// WriteJSON writes v followed by a newline.
func WriteJSON(w io.Writer, v any, pretty bool) error {
	data, err := ToJSON(v, pretty)
	if err != nil {
		return err
	}
	_, err = w.Write(append(data, '\n'))
	return err
}
