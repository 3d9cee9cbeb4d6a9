package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/meenmo/lifelib/errs"
)

type errorOutput struct {
	Error string `json:"error"`
	Kind  string `json:"kind,omitempty"`
	Field string `json:"field,omitempty"`
}

func writeJSON(w io.Writer, v any) error {
	out, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	_, err = fmt.Fprintln(w, string(out))
	return err
}

func writeError(w io.Writer, err error) int {
	out := errorOutput{Error: err.Error(), Field: errs.FieldOf(err)}
	if k := errs.KindOf(err); k != 0 {
		out.Kind = k.String()
	}
	_ = writeJSON(w, out)
	return 1
}

// intFlag returns a pointer to the named int flag when it was set.
func intFlag(changed bool, v int) *int {
	if !changed {
		return nil
	}
	return &v
}

func floatFlag(changed bool, v float64) *float64 {
	if !changed {
		return nil
	}
	return &v
}
