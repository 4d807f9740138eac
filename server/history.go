package server

import (
	"errors"
	"net/http"
	"time"

	"github.com/kasuboski/renamez/pkg/logger"
	"github.com/kasuboski/renamez/pkg/storage/sqlite/schema/gen/model"
)

var errHistoryUnavailable = errors.New("rename history is not configured")

// HistoryEntry is one applied rename
type HistoryEntry struct {
	ID        int32      `json:"id"`
	SessionID string     `json:"sessionId"`
	Source    string     `json:"source"`
	EntryID   string     `json:"entryId"`
	From      string     `json:"from"`
	To        string     `json:"to"`
	Edited    bool       `json:"edited"`
	CreatedAt *time.Time `json:"createdAt,omitempty"`
}

func toHistoryEntry(r *model.Rename) HistoryEntry {
	return HistoryEntry{
		ID:        r.ID,
		SessionID: r.SessionID,
		Source:    r.Source,
		EntryID:   r.EntryID,
		From:      r.FromName,
		To:        r.ToName,
		Edited:    r.Edited,
		CreatedAt: r.CreatedAt,
	}
}

// ListHistory lists the most recent renames, newest first
func (s Server) ListHistory() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromCtx(r.Context())

		if s.history == nil {
			writeErrorResponse(w, http.StatusServiceUnavailable, errHistoryUnavailable)
			return
		}

		limit, err := parseLimit(r)
		if err != nil {
			writeErrorResponse(w, http.StatusBadRequest, err)
			return
		}

		renames, err := s.history.ListRenames(r.Context(), limit)
		if err != nil {
			log.Errorw("failed to list renames", "error", err)
			http.Error(w, "failed to list renames", http.StatusInternalServerError)
			return
		}

		entries := make([]HistoryEntry, 0, len(renames))
		for _, rename := range renames {
			entries = append(entries, toHistoryEntry(rename))
		}

		err = writeResponse(w, http.StatusOK, GenericResponse{Response: entries})
		if err != nil {
			log.Errorw("failed to write response", "error", err)
		}
	}
}
