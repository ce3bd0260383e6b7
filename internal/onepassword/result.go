package onepassword

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Result is the outcome of one op invocation. A successful Result always
// has Data set, possibly to an empty string. A failed one always has Error set.
type Result struct {
	Success bool
	// Data is the decoded JSON document when JSON was requested and parsed,
	// otherwise the trimmed stdout text.
	Data interface{}
	// Raw is stdout exactly as the binary wrote it.
	Raw   []byte
	Error string
}

// Ok builds a successful Result.
func Ok(data interface{}, raw []byte) Result {
	if data == nil {
		data = ""
	}
	return Result{Success: true, Data: data, Raw: raw}
}

// Fail builds a failed Result.
func Fail(msg string) Result {
	if msg == "" {
		msg = "unknown error"
	}
	return Result{Success: false, Error: msg}
}

// Err converts a failed Result into an error. It returns nil on success.
func (r Result) Err() error {
	if r.Success {
		return nil
	}
	return errors.New(r.Error)
}

// Text renders Data for display: strings as-is, documents as indented JSON.
func (r Result) Text() string {
	switch v := r.Data.(type) {
	case nil:
		return ""
	case string:
		return v
	default:
		out, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return fmt.Sprint(v)
		}
		return string(out)
	}
}

// IsEmpty reports whether Data carries nothing: an empty string, list or object.
func (r Result) IsEmpty() bool {
	switch v := r.Data.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(v) == ""
	case []interface{}:
		return len(v) == 0
	case map[string]interface{}:
		return len(v) == 0
	default:
		return false
	}
}
