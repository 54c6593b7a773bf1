package config

// NewDefaultConfig creates a new Config with default values
func NewDefaultConfig() *Config {
	return &Config{
		Core: Core{
			TrashDir:         "", // SAFERM_HOME (~/.safe-rm)
			DefaultRetention: "7d",
			Verbose:          false,
		},
		Logging: Logging{
			Enabled: true,
			Level:   "debug",
			Format:  "text",
			Rotation: Rotation{
				MaxSize:  "10MB",
				MaxFiles: 3,
			},
		},
		List: List{
			Include: IncludeConfig{
				Period: 0, // no limit
			},
			Exclude: ExcludeConfig{
				Files:    []string{},
				Patterns: []string{},
				Globs:    []string{},
				Size: SizeConfig{
					Min: "",
					Max: "",
				},
			},
		},
	}
}
