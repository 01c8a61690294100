package httputil

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/matzehuels/lodviz/pkg/errors"
)

// MaxBodyBytes limits request bodies accepted by DecodeJSON.
const MaxBodyBytes = 32 << 20

// ErrorBody is the JSON body of every error response.
type ErrorBody struct {
	Code      errors.Code `json:"code"`
	Message   string      `json:"message"`
	RequestID string      `json:"request_id,omitempty"`
}

// DecodeJSON decodes the request body into v. Unknown fields are rejected.
func DecodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, MaxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		if err == io.EOF {
			return errors.New(errors.ErrCodeInvalidInput, "request body is empty")
		}
		if errors.GetCode(err) != "" {
			return err
		}
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "decode request body")
	}
	if dec.More() {
		return errors.New(errors.ErrCodeInvalidInput, "request body must hold a single JSON value")
	}
	return nil
}

// WriteJSON writes v as JSON with the given status. Values that fail to
// encode, such as non-finite floats, produce an INTERNAL_ERROR response
// instead and the encode error is returned.
func WriteJSON(w http.ResponseWriter, status int, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		body, _ := json.MarshalIndent(ErrorBody{
			Code:      errors.ErrCodeInternal,
			Message:   "encode response",
			RequestID: w.Header().Get(RequestIDHeader),
		}, "", "  ")
		writeBody(w, errors.ErrCodeInternal.HTTPStatus(), body)
		return fmt.Errorf("encode response: %w", err)
	}
	writeBody(w, status, data)
	return nil
}

func writeBody(w http.ResponseWriter, status int, data []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(append(data, '\n'))
}

// WriteError writes err as an ErrorBody. Errors without a code become
// INTERNAL_ERROR.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	body := ErrorBody{
		Code:      errors.CodeOrInternal(err),
		Message:   errors.UserMessage(err),
		RequestID: GetRequestID(r.Context()),
	}
	if errors.GetCode(err) == "" {
		body.Message = "internal error"
	}
	WriteJSON(w, body.Code.HTTPStatus(), body)
}

// NotFound writes a NOT_FOUND error for unknown routes.
func NotFound(w http.ResponseWriter, r *http.Request) {
	WriteError(w, r, errors.New(errors.ErrCodeNotFound, "no route for %s %s", r.Method, r.URL.Path))
}

// MethodNotAllowed writes an error for known routes with the wrong method.
func MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	body := ErrorBody{
		Code:      errors.ErrCodeInvalidInput,
		Message:   fmt.Sprintf("method %s not allowed on %s", r.Method, r.URL.Path),
		RequestID: GetRequestID(r.Context()),
	}
	WriteJSON(w, http.StatusMethodNotAllowed, body)
}
