package tsconfig

import (
	"fmt"

	"github.com/tailscale/hujson"
)

// Standardize turns the JSON-with-comments dialect tsconfig files are written
// in into plain JSON. Comments and trailing commas are replaced by spaces so
// byte offsets in later decode errors still point into the original file.
func Standardize(src []byte) ([]byte, error) {
	out, err := hujson.Standardize(src)
	if err != nil {
		return nil, fmt.Errorf("standardizing JSONC: %w", err)
	}
	return out, nil
}

// Extends holds the files a configuration inherits from. tsconfig accepts a
// single path or, since TypeScript 5.0, a list applied in order.
type Extends []string

// UnmarshalJSON accepts a string, an array of strings, or null.
func (e *Extends) UnmarshalJSON(data []byte) error {
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		*e = nil
		if single != "" {
			*e = Extends{single}
		}
		return nil
	}

	var list []string
	if err := json.Unmarshal(data, &list); err != nil {
		return fmt.Errorf("extends must be a string or an array of strings: %w", err)
	}
	*e = list
	return nil
}
