package config

import "strings"

func (c *Config) normalize() error {
	var err error

	if c.Paths.DataDir, err = expandPath(c.Paths.DataDir); err != nil {
		return err
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return err
	}
	if strings.TrimSpace(c.Drive.CredentialsFile) != "" {
		if c.Drive.CredentialsFile, err = expandPath(c.Drive.CredentialsFile); err != nil {
			return err
		}
	}

	c.Paths.APIBind = strings.TrimSpace(c.Paths.APIBind)
	c.Paths.APIToken = strings.TrimSpace(c.Paths.APIToken)
	c.Studio.Name = strings.TrimSpace(c.Studio.Name)
	c.Studio.Currency = strings.ToUpper(strings.TrimSpace(c.Studio.Currency))
	c.Drive.RootFolderID = strings.TrimSpace(c.Drive.RootFolderID)
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))

	if c.Logging.Format == "" {
		c.Logging.Format = "console"
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Drive.UploadChunkMiB <= 0 {
		c.Drive.UploadChunkMiB = 8
	}

	patterns := make([]string, 0, len(c.Uploads.IncludePatterns))
	for _, pattern := range c.Uploads.IncludePatterns {
		if trimmed := strings.TrimSpace(pattern); trimmed != "" {
			patterns = append(patterns, trimmed)
		}
	}
	if len(patterns) == 0 {
		patterns = []string{"**/*"}
	}
	c.Uploads.IncludePatterns = patterns

	return nil
}
