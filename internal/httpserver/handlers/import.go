package handlers

import (
	"net/http"

	"github.com/skingford/book-web/internal/httpserver/deps"
	"github.com/skingford/book-web/internal/logger"
	"github.com/skingford/book-web/internal/scheduler"
)

// ImportReload triggers a manual import of the configured Homepage file.
func ImportReload(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if d.ImportTrigger == nil {
			writeError(w, d.Logger, http.StatusNotFound, "import is not configured")
			return
		}

		if !scheduler.Trigger(d.ImportTrigger) {
			d.Logger.Warn("import already pending",
				logger.String("remote_ip", r.RemoteAddr))
			w.WriteHeader(http.StatusTooManyRequests)
			if _, err := w.Write([]byte("⏳ Import already in progress, please wait\n")); err != nil {
				d.Logger.Debug("failed to write response", logger.Error(err))
			}
			return
		}

		d.Logger.Info("manual import triggered via endpoint",
			logger.String("remote_ip", r.RemoteAddr))
		w.WriteHeader(http.StatusAccepted)
		if _, err := w.Write([]byte("✅ Import triggered successfully\n")); err != nil {
			d.Logger.Debug("failed to write response", logger.Error(err))
		}
	}
}
