package api

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	jsoniter "github.com/json-iterator/go"

	"github.com/AntonStoeckl/library-management-api/app/shared/core"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const maxBodyBytes = 1 << 20

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Message    string              `json:"message"`
	StatusCode int                 `json:"statusCode"`
	ErrorCode  string              `json:"errorCode"`
	Reason     string              `json:"reason,omitempty"`
	Timestamp  time.Time           `json:"timestamp"`
	Path       string              `json:"path"`
	RequestID  string              `json:"requestId,omitempty"`
	Errors     map[string][]string `json:"errors,omitempty"`

	// Detail carries the internal error chain, only in development.
	Detail string `json:"detail,omitempty"`
}

func (s *Server) writeJSON(w http.ResponseWriter, r *http.Request, status int, body any) {
	payload, err := json.Marshal(body)
	if err != nil {
		s.writeError(w, r, core.Internal(err))
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)

	if _, err = w.Write(payload); err != nil {
		s.logger.DebugContext(r.Context(), "writing response failed", "error", err)
	}
}

// writeError maps err to its AppError and writes it. Internal errors are logged with their cause,
// clients only see the generic message.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	appErr := core.ToAppError(err)

	response := ErrorResponse{
		Message:    appErr.Message,
		StatusCode: appErr.StatusCode(),
		ErrorCode:  appErr.Code,
		Reason:     appErr.Reason,
		Timestamp:  s.now().UTC(),
		Path:       r.URL.Path,
		RequestID:  RequestIDFromContext(r.Context()),
		Errors:     appErr.Fields,
	}

	if appErr.Kind == core.KindInternal {
		s.logger.ErrorContext(r.Context(), "request failed",
			"error", appErr.Error(),
			"path", r.URL.Path,
			"request_id", response.RequestID,
		)
	}

	if s.development && appErr.Cause != nil {
		response.Detail = appErr.Error()
	}

	payload, marshalErr := json.Marshal(response)
	if marshalErr != nil {
		http.Error(w, core.MessageInternal, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(response.StatusCode)
	_, _ = w.Write(payload)
}

// decodeJSON reads the request body into dst. A malformed body is a Validation error.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return core.ValidationField("body", "Request body must not be larger than 1 MiB")
		}

		return core.ValidationField("body", "Request body could not be read")
	}

	if len(body) == 0 {
		return core.ValidationField("body", "Request body is required")
	}

	if err = json.Unmarshal(body, dst); err != nil {
		return core.ValidationField("body", "Request body must be valid JSON").WithCause(err)
	}

	return nil
}

// pathID parses a positive integer path parameter.
func pathID(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(r.PathValue(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, core.ValidationField(name, name+" must be a positive integer")
	}

	return id, nil
}
