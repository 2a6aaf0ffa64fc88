package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/skingford/book-web/internal/domain"
	"github.com/skingford/book-web/internal/flows"
	"github.com/skingford/book-web/internal/logger"
)

const maxBodyBytes = 64 << 10

type errorResponse struct {
	Error    string            `json:"error"`
	Fields   map[string]string `json:"fields,omitempty"`
	Redirect string            `json:"redirect,omitempty"`
}

type successResponse struct {
	Redirect string `json:"redirect"`
	ID       string `json:"id,omitempty"`
}

func writeJSON(w http.ResponseWriter, log logger.Logger, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Debug("failed to write response", logger.Error(err))
	}
}

func writeError(w http.ResponseWriter, log logger.Logger, status int, msg string) {
	writeJSON(w, log, status, errorResponse{Error: msg})
}

// decode reads a JSON body into v, rejecting unknown fields.
func decode(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	return nil
}

// writeState turns the outcome of a flow into a response.
func writeState(w http.ResponseWriter, log logger.Logger, s flows.State, created bool) {
	switch st := s.(type) {
	case flows.Success:
		status := http.StatusOK
		if created {
			status = http.StatusCreated
		}
		writeJSON(w, log, status, successResponse{Redirect: st.Location, ID: st.ID})
	case flows.Failed:
		resp := errorResponse{Error: st.Message}
		if len(st.Fields) > 0 {
			resp.Fields = make(map[string]string, len(st.Fields))
			for _, f := range st.Fields {
				resp.Fields[f.Field] = f.Message
			}
		}
		status := failedStatus(st)
		if status == http.StatusNotFound {
			resp.Redirect = flows.CategoriesPath
		}
		writeJSON(w, log, status, resp)
	default:
		writeError(w, log, http.StatusInternalServerError, "unexpected state "+s.String())
	}
}

func failedStatus(f flows.Failed) int {
	var (
		verr    *domain.ValidationError
		cascade *domain.CascadeError
	)
	switch {
	case errors.As(f.Err, &verr), errors.Is(f.Err, domain.ErrForeignKey):
		return http.StatusUnprocessableEntity
	case errors.As(f.Err, &cascade):
		return http.StatusInternalServerError
	case errors.Is(f.Err, domain.ErrDeclined):
		return http.StatusBadRequest
	case errors.Is(f.Err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(f.Err, domain.ErrBusy):
		return http.StatusConflict
	default:
		return http.StatusServiceUnavailable
	}
}

// writeLoadError answers a failed read. Missing rows send the client back
// to the category list.
func writeLoadError(w http.ResponseWriter, log logger.Logger, op string, err error) {
	if domain.IsNotFound(err) {
		writeJSON(w, log, http.StatusNotFound, errorResponse{Error: flows.MsgNotFound, Redirect: flows.CategoriesPath})
		return
	}
	log.Error(op+" failed", logger.Error(err))
	writeError(w, log, http.StatusServiceUnavailable, flows.MsgRetry)
}

// NotFound answers unknown paths with a JSON error instead of chi's plain text.
func NotFound(log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeError(w, log, http.StatusNotFound, "no route for "+r.URL.Path)
	}
}

// MethodNotAllowed answers a known path hit with the wrong verb.
func MethodNotAllowed(log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeError(w, log, http.StatusMethodNotAllowed, r.Method+" not allowed on "+r.URL.Path)
	}
}
