package shared

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/go-faster/errors"
)

var ErrEmptyBody = errors.New("request body is empty")

// DecodeJSON reads a JSON body into dst. Oversized bodies surface as *http.MaxBytesError.
func DecodeJSON(r *http.Request, dst any) error {
	if r.Body == nil {
		return ErrEmptyBody
	}
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return ErrEmptyBody
		}
		return errors.Wrap(err, "decode body")
	}
	return nil
}

// FailDecode writes the envelope matching a DecodeJSON failure.
func FailDecode(w http.ResponseWriter, err error, requestID string) {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		FailValidation(w, requestID, []ValidationIssue{{Reason: "request body too large"}})
		return
	}
	FailValidation(w, requestID, []ValidationIssue{{Reason: "request body must be valid JSON"}})
}
