// Package form reads text fields out of parsed multipart forms with
// explicit presence semantics: admins send every write as multipart, and
// partial updates must distinguish "field omitted" from "field sent empty".
package form

import (
	"mime/multipart"
	"strconv"
	"strings"
)

// Str returns the trimmed first value for key, or "".
func Str(f *multipart.Form, key string) string {
	if f == nil {
		return ""
	}
	vals := f.Value[key]
	if len(vals) == 0 {
		return ""
	}
	return strings.TrimSpace(vals[0])
}

// Present reports whether the client sent the key at all.
func Present(f *multipart.Form, key string) bool {
	if f == nil {
		return false
	}
	_, ok := f.Value[key]
	return ok
}

// Int parses the value for key. ok is false when the key is absent or
// blank; a non-numeric value returns an error.
func Int(f *multipart.Form, key string) (n int, ok bool, err error) {
	raw := Str(f, key)
	if raw == "" {
		return 0, false, nil
	}
	n, err = strconv.Atoi(raw)
	if err != nil {
		return 0, false, err
	}
	return n, true, nil
}
