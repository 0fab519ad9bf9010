package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	App struct {
		Port    int    `yaml:"port" json:"port"`
		DataDir string `yaml:"data_dir" json:"data_dir"`
	} `yaml:"app" json:"app"`

	Alerts struct {
		// Shared secret the cron trigger must present on /alerts/run.
		RunToken      string `yaml:"run_token" json:"run_token"`
		IntervalHours int    `yaml:"interval_hours" json:"interval_hours"`
		WindowHours   int    `yaml:"window_hours" json:"window_hours"`
		SendDelayMS   int    `yaml:"send_delay_ms" json:"send_delay_ms"`
		MaxTitles     int    `yaml:"max_titles" json:"max_titles"`
	} `yaml:"alerts" json:"alerts"`

	SMTP struct {
		Enabled  bool   `yaml:"enabled" json:"enabled"`
		Host     string `yaml:"host" json:"host"`
		Port     int    `yaml:"port" json:"port"`
		Username string `yaml:"username" json:"username"`
		From     string `yaml:"from" json:"from"`
		// Password lives in the OS keychain or SMTP_PASSWORD, never here.
	} `yaml:"smtp" json:"smtp"`
}

func Load(path string) (Config, error) {
	var cfg Config
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	err = yaml.Unmarshal(b, &cfg)
	return cfg, err
}
