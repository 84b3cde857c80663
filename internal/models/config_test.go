package models

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/viper"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadConfig_Defaults(t *testing.T) {
	path := writeFile(t, "config.json", `{"timezone": "UTC"}`)
	cfg, err := loadConfig(viper.New(), path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Interval != IntervalDaily || cfg.Workers != 4 || cfg.TopN != 10 {
		t.Errorf("unexpected defaults: interval=%q workers=%d top_n=%d", cfg.Interval, cfg.Workers, cfg.TopN)
	}
	if cfg.PeakQuantile != 0.75 || cfg.PeakMaxWindows != 3 {
		t.Errorf("peak defaults = %v/%d, want 0.75/3", cfg.PeakQuantile, cfg.PeakMaxWindows)
	}
	if cfg.RequestTimeout != 30*time.Second {
		t.Errorf("request timeout = %v, want 30s", cfg.RequestTimeout)
	}
	if cfg.OutputFormat != OutputFormatConsole || cfg.OutputDestination != OutputDestinationLocal {
		t.Errorf("output = %s/%s, want console/local", cfg.OutputFormat, cfg.OutputDestination)
	}
	if len(cfg.Seed.Zones) == 0 || cfg.Seed.Days != 90 {
		t.Errorf("seed defaults not applied: %+v", cfg.Seed)
	}
}

func TestLoadConfig_Decodes(t *testing.T) {
	path := writeFile(t, "config.json", `{
		"interval": "weekly",
		"on_time_grace": "90s",
		"seed": {"start_date": "2024-02-01T00:00:00Z", "days": 7}
	}`)
	cfg, err := loadConfig(viper.New(), path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Interval != IntervalWeekly {
		t.Errorf("interval = %q, want weekly", cfg.Interval)
	}
	if cfg.OnTimeGrace != 90*time.Second {
		t.Errorf("on_time_grace = %v, want 90s", cfg.OnTimeGrace)
	}
	if want := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC); !cfg.Seed.StartDate.Equal(want) {
		t.Errorf("seed start = %v, want %v", cfg.Seed.StartDate, want)
	}
}

func TestLoadConfig_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"interval", `{"interval": "hourly"}`},
		{"workers", `{"workers": 0}`},
		{"quantile", `{"peak_quantile": 1.5}`},
		{"timezone", `{"timezone": "Mars/Olympus"}`},
		{"output", `{"output_format": "xml"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, "config.json", tt.content)
			if _, err := loadConfig(viper.New(), path); err == nil {
				t.Error("expected a validation error")
			}
		})
	}
}

func TestLoadConfig_MissingExplicitFile(t *testing.T) {
	_, err := loadConfig(viper.New(), filepath.Join(t.TempDir(), "nope.json"))
	if err == nil || !strings.Contains(err.Error(), "error reading config file") {
		t.Errorf("got %v, want a read error", err)
	}
}

func TestLoadCategoryData(t *testing.T) {
	cfg := &Config{Seed: SeedConfig{Categories: []string{"Old"}}}
	path := writeFile(t, "categories.csv", "id,name\n1,Ramen\n2,Tacos\n")
	if err := cfg.LoadCategoryData(path); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := strings.Join(cfg.Seed.Categories, ","); got != "Ramen,Tacos" {
		t.Errorf("categories = %q, want Ramen,Tacos", got)
	}

	bad := writeFile(t, "bad.csv", "id,name\nx,Ramen\n")
	if err := cfg.LoadCategoryData(bad); err == nil {
		t.Error("expected an error for a non-numeric id")
	}
}
