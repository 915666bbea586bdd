package config

// Default returns a configuration populated with sensible defaults. Paths are
// stored unexpanded; normalize resolves them to absolute locations.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir: "~/.local/share/callsheet",
			LogDir:  "~/.local/share/callsheet/logs",
			APIBind: "",
		},
		Studio: Studio{
			Name:            "Callsheet Studio",
			Currency:        "USD",
			TravelRatePerKm: 0.85,
		},
		Drive: Drive{
			Enabled:        false,
			UploadChunkMiB: 8,
		},
		Uploads: Uploads{
			IncludePatterns: []string{"**/*"},
		},
		Logging: Logging{
			Format: "console",
			Level:  "info",
		},
	}
}
