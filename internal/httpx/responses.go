package httpx

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
)

var (
	// ErrEmptyBody is returned by DecodeJSON when the request carried no body.
	ErrEmptyBody = errors.New("empty request body")
	// ErrTrailingData is returned when the body holds more than one JSON value.
	ErrTrailingData = errors.New("unexpected data after JSON body")
)

const msgBodyTooLarge = "Request body too large"

type ErrorResponse struct {
	Error string `json:"error"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

// JSON writes v with the given status code.
func JSON(w http.ResponseWriter, statusCode int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(v)
}

// JSONError writes {"error": message}.
func JSONError(w http.ResponseWriter, statusCode int, message string) {
	JSON(w, statusCode, ErrorResponse{Error: message})
}

// JSONMessage writes {"message": message}.
func JSONMessage(w http.ResponseWriter, statusCode int, message string) {
	JSON(w, statusCode, MessageResponse{Message: message})
}

// DecodeJSON decodes a single JSON value from the request body into dst.
// An absent body yields ErrEmptyBody and anything after the value ErrTrailingData.
func DecodeJSON(r *http.Request, dst any) error {
	if r.Body == nil {
		return ErrEmptyBody
	}
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return ErrEmptyBody
		}
		return err
	}

	var extra json.RawMessage
	switch err := dec.Decode(&extra); {
	case errors.Is(err, io.EOF):
		return nil
	case IsBodyTooLarge(err):
		return err
	default:
		return ErrTrailingData
	}
}

// IsBodyTooLarge reports whether err came from a MaxBytesReader limit.
func IsBodyTooLarge(err error) bool {
	var maxErr *http.MaxBytesError
	return errors.As(err, &maxErr)
}
