package httpapi

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"strings"

	"remotejobs-engine/internal/store"
)

type PreferencesHandler struct {
	DB *sql.DB
}

func prefsUserID(r *http.Request) string {
	id := strings.TrimPrefix(r.URL.Path, "/preferences/")
	if strings.Contains(id, "/") {
		return ""
	}
	return id
}

func (h PreferencesHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID := prefsUserID(r)
	if userID == "" {
		WriteError(w, r, http.StatusBadRequest, "invalid_user", "invalid user id")
		return
	}

	rec, ok, err := store.GetPreferences(r.Context(), h.DB, userID)
	if err != nil {
		WriteError(w, r, http.StatusInternalServerError, "preferences_failed", err.Error())
		return
	}
	if !ok {
		WriteError(w, r, http.StatusNotFound, "not_found", "no preferences for user")
		return
	}
	writeJSON(w, rec)
}

// Put stores the payload verbatim, replacing any previous record wholesale.
func (h PreferencesHandler) Put(w http.ResponseWriter, r *http.Request) {
	userID := prefsUserID(r)
	if userID == "" {
		WriteError(w, r, http.StatusBadRequest, "invalid_user", "invalid user id")
		return
	}

	var rec store.PreferenceRecord
	if err := json.NewDecoder(r.Body).Decode(&rec); err != nil {
		WriteError(w, r, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}

	if err := store.SavePreferences(r.Context(), h.DB, userID, rec); err != nil {
		WriteError(w, r, http.StatusInternalServerError, "save_failed", err.Error())
		return
	}
	writeJSON(w, map[string]any{"ok": true})
}
