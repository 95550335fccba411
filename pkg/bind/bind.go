// Package bind decodes and validates an HTTP request body into a struct.
package bind

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/shashiranjanraj/revoshop/config"
	"github.com/shashiranjanraj/revoshop/pkg/validate"
)

// maxBodyBytes returns the configured request body size limit (default 64 KB).
func maxBodyBytes() int64 {
	n := config.Int("MAX_BODY_BYTES", 64<<10)
	if n <= 0 {
		return 64 << 10
	}
	return int64(n)
}

// JSON decodes r.Body as JSON into dest and runs validation.
// An empty body decodes as {} so optional-only inputs need no payload.
// Returns (errs, nil) when there are validation failures.
// Returns (nil, err) when the body is malformed JSON or too large.
func JSON(r *http.Request, dest interface{}) (errs map[string]string, err error) {
	if r.Body != nil {
		r.Body = http.MaxBytesReader(nil, r.Body, maxBodyBytes())

		if err = json.NewDecoder(r.Body).Decode(dest); err != nil && !errors.Is(err, io.EOF) {
			var maxErr *http.MaxBytesError
			if errors.As(err, &maxErr) {
				return nil, fmt.Errorf("request body too large (max %d bytes)", maxErr.Limit)
			}
			return nil, fmt.Errorf("invalid JSON: %w", err)
		}
	}

	errs = validate.Struct(dest)
	if validate.HasErrors(errs) {
		return errs, nil
	}

	return nil, nil
}
