package httpapi

import (
	"context"
	"crypto/subtle"
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"net/mail"
	"strings"
	"sync/atomic"

	"remotejobs-engine/internal/config"
	"remotejobs-engine/internal/store"
)

// ErrRunInProgress is returned by the injected RunAlerts when another digest
// run holds the lock.
var ErrRunInProgress = errors.New("alert run already in progress")

type AlertsHandler struct {
	DB        *sql.DB
	CfgVal    *atomic.Value // stores config.Config
	RunAlerts func(ctx context.Context) (int, error)
}

type createSubscriptionReq struct {
	Email     string `json:"email"`
	Keyword   string `json:"keyword"`
	Frequency string `json:"frequency"`
}

func (h AlertsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createSubscriptionReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, r, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}
	if _, err := mail.ParseAddress(strings.TrimSpace(req.Email)); err != nil {
		WriteError(w, r, http.StatusBadRequest, "invalid_email", "a valid email address is required")
		return
	}
	if req.Frequency != "" && req.Frequency != "daily" && req.Frequency != "weekly" {
		WriteError(w, r, http.StatusBadRequest, "invalid_frequency", "frequency must be daily or weekly")
		return
	}

	sub := store.NewSubscription(store.Subscription{
		Email:     strings.TrimSpace(req.Email),
		Keyword:   strings.TrimSpace(req.Keyword),
		Frequency: req.Frequency,
		IsActive:  true,
	})
	if err := store.InsertSubscription(r.Context(), h.DB, sub); err != nil {
		WriteError(w, r, http.StatusInternalServerError, "insert_failed", err.Error())
		return
	}
	writeJSON(w, sub)
}

// Run is the cron-style trigger. It is parameterless apart from the shared
// secret, presented as an X-Run-Token header or a token query param.
func (h AlertsHandler) Run(w http.ResponseWriter, r *http.Request) {
	cfg := h.CfgVal.Load().(config.Config)

	token := r.Header.Get("X-Run-Token")
	if token == "" {
		token = r.URL.Query().Get("token")
	}
	want := cfg.Alerts.RunToken
	if want == "" || subtle.ConstantTimeCompare([]byte(token), []byte(want)) != 1 {
		WriteError(w, r, http.StatusUnauthorized, "bad_token", "missing or invalid run token")
		return
	}

	sent, err := h.RunAlerts(r.Context())
	if err != nil {
		if errors.Is(err, ErrRunInProgress) {
			WriteError(w, r, http.StatusConflict, "run_in_progress", err.Error())
			return
		}
		WriteError(w, r, http.StatusInternalServerError, "run_failed", err.Error())
		return
	}
	writeJSON(w, runResponse{OK: true, Sent: sent})
}
