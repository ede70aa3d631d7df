package handlers

import (
	"errors"
	"io"
	"net/http"

	e "github.com/gartstein/biztime/internal/biztime/errors"
	"github.com/grpc-ecosystem/grpc-gateway/v2/runtime"
	"go.uber.org/zap"
)

// marshaler encodes every response body and decodes every request body.
var marshaler runtime.Marshaler = &runtime.JSONBuiltin{}

// errorBody is the uniform error envelope.
type errorBody struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Message string `json:"message"`
	Status  int    `json:"status"`
}

type messageBody struct {
	Msg string `json:"msg"`
}

// writeJSON encodes body before touching the response, so a body that
// cannot be encoded turns into a 500 envelope instead of a half-written reply.
func writeJSON(w http.ResponseWriter, status int, body any, logger *zap.Logger) {
	data, err := marshaler.Marshal(body)
	if err != nil {
		logger.Error("Failed to encode response body", zap.Int("status", status), zap.Error(err))
		status = http.StatusInternalServerError
		body = errorBody{Error: errorDetail{Message: "Internal Server Error", Status: status}}
		if data, err = marshaler.Marshal(body); err != nil {
			http.Error(w, "Internal Server Error", status)
			return
		}
	}

	w.Header().Set("Content-Type", marshaler.ContentType(body))
	w.WriteHeader(status)
	if _, err := w.Write(data); err != nil {
		logger.Warn("Failed to write response body", zap.Error(err))
	}
}

// writeError is the single place where an error becomes an HTTP response.
func writeError(w http.ResponseWriter, r *http.Request, err error, logger *zap.Logger) {
	status := e.StatusOf(err)
	if status >= http.StatusInternalServerError {
		logger.Error("Request failed",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", status),
			zap.Error(err),
		)
	}
	writeJSON(w, status, errorBody{Error: errorDetail{Message: e.MessageOf(err), Status: status}}, logger)
}

// decodeBody reads a JSON request body into v. An empty body decodes as an
// empty object so that presence checks report the missing fields.
func decodeBody(r *http.Request, v any) error {
	if r.Body == nil {
		return nil
	}
	if err := marshaler.NewDecoder(r.Body).Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return e.BadRequest("malformed JSON body: %v", err)
	}
	return nil
}

func required(field string) error {
	return e.BadRequest("'%s' is required", field)
}
