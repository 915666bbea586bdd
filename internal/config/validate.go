package config

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/currency"
)

var validLogFormats = map[string]struct{}{
	"console": {},
	"json":    {},
}

var validLogLevels = map[string]struct{}{
	"debug": {},
	"info":  {},
	"warn":  {},
	"error": {},
}

// Validate checks invariants the rest of the system relies on. It is called by
// Load after normalization, so fields are already trimmed and expanded.
func (c *Config) Validate() error {
	var problems []string

	if strings.TrimSpace(c.Paths.DataDir) == "" {
		problems = append(problems, "paths.data_dir must not be empty")
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		problems = append(problems, "paths.log_dir must not be empty")
	}

	if c.Studio.Currency != "" {
		if _, err := currency.ParseISO(c.Studio.Currency); err != nil {
			problems = append(problems, fmt.Sprintf("studio.currency %q is not an ISO 4217 code", c.Studio.Currency))
		}
	}
	if c.Studio.TravelRatePerKm < 0 {
		problems = append(problems, "studio.travel_rate_per_km must not be negative")
	}

	if _, ok := validLogFormats[c.Logging.Format]; !ok {
		problems = append(problems, fmt.Sprintf("logging.format %q is not supported (console, json)", c.Logging.Format))
	}
	if _, ok := validLogLevels[c.Logging.Level]; !ok {
		problems = append(problems, fmt.Sprintf("logging.level %q is not supported (debug, info, warn, error)", c.Logging.Level))
	}

	if c.Drive.Enabled {
		if strings.TrimSpace(c.Drive.CredentialsFile) == "" {
			problems = append(problems, "drive.credentials_file is required when drive.enabled is true")
		}
		if strings.TrimSpace(c.Drive.RootFolderID) == "" {
			problems = append(problems, "drive.root_folder_id is required when drive.enabled is true")
		}
	}

	if len(problems) == 0 {
		return nil
	}
	return errors.New("invalid configuration: " + strings.Join(problems, "; "))
}
