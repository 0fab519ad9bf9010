package config

import (
	"fmt"
	"net/mail"
	"strings"
)

type Validation struct {
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

func (v *Validation) addErr(format string, args ...any) {
	v.Errors = append(v.Errors, fmt.Sprintf(format, args...))
}
func (v *Validation) addWarn(format string, args ...any) {
	v.Warnings = append(v.Warnings, fmt.Sprintf(format, args...))
}
func (v Validation) OK() bool { return len(v.Errors) == 0 }

// NormalizeAndValidate returns a normalized copy plus everything worth
// flagging before the config is saved or applied.
func NormalizeAndValidate(cfg Config) (Config, Validation) {
	out := cfg
	var res Validation

	out.Alerts.RunToken = strings.TrimSpace(out.Alerts.RunToken)
	out.SMTP.Host = strings.TrimSpace(out.SMTP.Host)
	out.SMTP.Username = strings.TrimSpace(out.SMTP.Username)
	out.SMTP.From = strings.TrimSpace(out.SMTP.From)

	if out.App.Port <= 0 || out.App.Port > 65535 {
		res.addErr("app.port must be 1..65535")
	}

	if out.Alerts.IntervalHours <= 0 {
		res.addErr("alerts.interval_hours must be > 0")
	}
	if out.Alerts.WindowHours <= 0 {
		res.addErr("alerts.window_hours must be > 0")
	} else if out.Alerts.IntervalHours > 0 && out.Alerts.WindowHours < out.Alerts.IntervalHours {
		res.addWarn("alerts.window_hours (%d) is smaller than alerts.interval_hours (%d); listings posted between runs will never be digested.",
			out.Alerts.WindowHours, out.Alerts.IntervalHours)
	}
	if out.Alerts.SendDelayMS < 0 {
		res.addErr("alerts.send_delay_ms must be >= 0")
	} else if out.Alerts.SendDelayMS > 0 && out.Alerts.SendDelayMS < 100 {
		res.addWarn("alerts.send_delay_ms is very low (%d) and may trip the mail provider's rate limit.", out.Alerts.SendDelayMS)
	}
	if out.Alerts.MaxTitles < 0 {
		res.addErr("alerts.max_titles must be >= 0")
	}
	if out.Alerts.RunToken == "" {
		res.addWarn("alerts.run_token is empty; /alerts/run will reject every trigger.")
	}

	if out.SMTP.Enabled {
		if out.SMTP.Host == "" {
			res.addErr("smtp.host is required when smtp.enabled=true")
		}
		if out.SMTP.Port == 0 {
			res.addErr("smtp.port is required when smtp.enabled=true")
		}
		if out.SMTP.Username == "" {
			res.addErr("smtp.username is required when smtp.enabled=true")
		}
		if out.SMTP.From == "" {
			res.addErr("smtp.from is required when smtp.enabled=true")
		} else if _, err := mail.ParseAddress(out.SMTP.From); err != nil {
			res.addErr("smtp.from is not a valid address: %q", out.SMTP.From)
		}
	}

	return out, res
}
