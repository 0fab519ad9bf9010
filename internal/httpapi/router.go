package httpapi

import "net/http"

func NewMux(d Deps) *http.ServeMux {
	mux := http.NewServeMux()

	// Jobs
	jh := JobsHandler{DB: d.DB, Hub: d.Hub, NotifyListing: d.NotifyListing}
	mux.HandleFunc("/jobs", methodMux(map[string]http.HandlerFunc{
		http.MethodGet:  jh.List,
		http.MethodPost: jh.Create,
	}))
	mux.HandleFunc("/jobs/optimised/", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: jh.Optimised, // expects /jobs/optimised/{userID}
	}))

	// Companies
	ch := CompaniesHandler{DB: d.DB}
	mux.HandleFunc("/companies", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: ch.List,
	}))

	// Preferences (replace-on-write)
	ph := PreferencesHandler{DB: d.DB}
	mux.HandleFunc("/preferences/", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: ph.Get,
		http.MethodPut: ph.Put, // expects /preferences/{userID}
	}))

	// Alerts
	ah := AlertsHandler{DB: d.DB, CfgVal: d.CfgVal, RunAlerts: d.RunAlerts}
	mux.HandleFunc("/alerts", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: ah.Create,
	}))
	mux.HandleFunc("/alerts/run", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: ah.Run,
	}))

	// Config
	cfgH := ConfigHandler{
		CfgVal:      d.CfgVal,
		UserCfgPath: d.UserCfgPath,
		LoadCfg:     d.LoadCfg,
	}
	mux.HandleFunc("/config", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: cfgH.Get,
		http.MethodPut: cfgH.Put,
	}))
	mux.HandleFunc("/config/path", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: cfgH.Path,
	}))

	// Secrets (use cfgVal, NOT a snapshot cfg)
	sh := SecretsHandler{CfgVal: d.CfgVal}
	mux.HandleFunc("/api/secrets/smtp", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: sh.SetSMTPPassword,
	}))

	// DB maintenance
	dbh := DBHandler{DB: d.DB}
	mux.HandleFunc("/db/checkpoint", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: dbh.Checkpoint,
	}))

	// SSE events
	eh := EventsHandler{Hub: d.Hub}
	mux.HandleFunc("/events", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: eh.ServeSSE,
	}))

	// Health
	hh := HealthHandler{}
	mux.HandleFunc("/health", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: hh.Health,
	}))

	return mux
}
