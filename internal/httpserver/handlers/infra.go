package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/skingford/book-web/internal/httpserver/deps"
)

type componentStatus struct {
	OK         bool   `json:"ok"`
	Mode       string `json:"mode,omitempty"`
	Impact     string `json:"impact,omitempty"`
	LastImport string `json:"last_import,omitempty"`
	Imported   *int   `json:"bookmarks_imported,omitempty"`
	Error      string `json:"error,omitempty"`
}

type infraResponse struct {
	Mode       string                     `json:"mode"`
	Components map[string]componentStatus `json:"components"`
}

type pinger interface {
	Ping(ctx context.Context) error
}

func Infra(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		components := map[string]componentStatus{
			"database": checkDatabase(ctx, d),
			"history":  checkHistory(ctx, d),
		}
		if d.ImportStatus != nil {
			components["import"] = importStatus(d)
		}

		writeJSON(w, d.Logger, http.StatusOK, infraResponse{
			Mode:       determineMode(components),
			Components: components,
		})
	}
}

func determineMode(components map[string]componentStatus) string {
	if db, ok := components["database"]; ok && !db.OK {
		return "critical" // nothing can be read or written
	}
	if h, ok := components["history"]; ok && !h.OK {
		return "degraded" // searches work, history does not
	}
	return "optimal"
}

func checkDatabase(ctx context.Context, d deps.Deps) componentStatus {
	if err := d.Gateway.Ping(ctx); err != nil {
		return componentStatus{OK: false, Impact: "all-operations-failing", Error: "unreachable"}
	}
	return componentStatus{OK: true}
}

func checkHistory(ctx context.Context, d deps.Deps) componentStatus {
	mode := d.HistoryKV
	if mode == "" {
		mode = "memory"
	}
	p, ok := d.History.(pinger)
	if !ok {
		return componentStatus{OK: true, Mode: mode, Impact: "history-not-persisted"}
	}
	if err := p.Ping(ctx); err != nil {
		return componentStatus{OK: false, Mode: mode, Impact: "history-disabled", Error: "timeout"}
	}
	return componentStatus{OK: true, Mode: mode}
}

func importStatus(d deps.Deps) componentStatus {
	rep, at := d.ImportStatus()
	if at.IsZero() {
		return componentStatus{OK: false, LastImport: "never"}
	}
	return componentStatus{
		OK:         true,
		LastImport: at.Format("2006-01-02 15:04:05"),
		Imported:   &rep.BookmarksCreated,
	}
}
