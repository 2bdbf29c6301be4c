package commands

import (
	"time"

	"coursecatalog-backend/internal/components/telemetry"
	"coursecatalog-backend/internal/scrapers/wesmaps"
	configlibsql "coursecatalog-backend/pkg/configutil/libsql"
)

type Config struct {
	// the catalog root, every page is resolved against it
	BaseUrl  string `json:"base_url"`
	RootPage string `json:"root_page"`
	// maximum amount of course pages fetched at once
	Concurrency int `json:"concurrency"`
	// a negative value disables rate limiting, 0 falls back to the default
	RequestsPerSecond     float64 `json:"requests_per_second"`
	RequestTimeoutSeconds int     `json:"request_timeout_seconds"`
	UserAgent             string  `json:"user_agent"`

	// the JSON file crawls write to and ingestion reads from
	Output   string              `json:"output"`
	Database configlibsql.Struct `json:"database"`

	// cron expression used by `schedule`
	Schedule string `json:"schedule"`
	// IANA timezone the schedule is interpreted in, defaults to the local timezone
	Timezone string `json:"timezone"`

	Telemetry telemetry.Config `json:"telemetry"`
}

var defaultConfig = Config{
	BaseUrl:               "https://owaprod-pub.wesleyan.edu/reg/",
	RootPage:              "!wesmaps_page.html",
	Concurrency:           8,
	RequestsPerSecond:     4,
	RequestTimeoutSeconds: 30,
	Output:                "wesmaps_courses.json",
	Database: configlibsql.Struct{
		File: "wesmaps.db",
	},
	Schedule: "0 3 * * *",
}

func (c Config) scraperOptions(categories []string) wesmaps.Options {
	return wesmaps.Options{
		Client: wesmaps.ClientOptions{
			BaseUrl:           c.BaseUrl,
			RequestsPerSecond: c.RequestsPerSecond,
			Timeout:           time.Duration(c.RequestTimeoutSeconds) * time.Second,
			UserAgent:         c.UserAgent,
		},
		RootPage:    c.RootPage,
		Concurrency: c.Concurrency,
		Categories:  categories,
	}
}
