package config

const (
	defaultAddr        = "127.0.0.1:8787"
	defaultProvider    = "stub"
	defaultMaxResults  = 3
	defaultIdleTimeout = 900
	defaultSweepExpr   = "*/5 * * * *"
	defaultCallTimeout = 30
)

// DefaultConfig returns a config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Addr: defaultAddr,
		},
		Finder: FinderConfig{
			Provider:   defaultProvider,
			MaxResults: defaultMaxResults,
		},
		Session: SessionConfig{
			IdleTimeout: defaultIdleTimeout,
			SweepExpr:   defaultSweepExpr,
			CallTimeout: defaultCallTimeout,
		},
		Logging: defaultLoggingConfig(),
	}
}

func defaultLoggingConfig() LoggingConfig {
	enabled := true
	return LoggingConfig{
		Enabled: &enabled,
		Level:   "info",
		Stdout:  true,
		File:    "logs/linkdock.log",
	}
}

func (c *Config) applyDefaults() {
	if c.Server.Addr == "" {
		c.Server.Addr = defaultAddr
	}

	if c.Finder.Provider == "" {
		c.Finder.Provider = defaultProvider
	}
	if c.Finder.MaxResults <= 0 {
		c.Finder.MaxResults = defaultMaxResults
	}

	if c.Session.IdleTimeout <= 0 {
		c.Session.IdleTimeout = defaultIdleTimeout
	}
	if c.Session.SweepExpr == "" {
		c.Session.SweepExpr = defaultSweepExpr
	}
	if c.Session.CallTimeout <= 0 {
		c.Session.CallTimeout = defaultCallTimeout
	}

	def := defaultLoggingConfig()
	if c.Logging == (LoggingConfig{}) {
		c.Logging = def
		return
	}

	hasAny := c.Logging.Level != "" || c.Logging.File != "" || c.Logging.Stdout
	if c.Logging.Enabled == nil && hasAny {
		enabled := true
		c.Logging.Enabled = &enabled
	}
	if c.Logging.Level == "" {
		c.Logging.Level = def.Level
	}
	if c.Logging.File == "" {
		c.Logging.File = def.File
	}
	if !c.Logging.Stdout && c.Logging.File == "" {
		c.Logging.Stdout = def.Stdout
	}
	if c.Logging.Enabled == nil {
		c.Logging.Enabled = def.Enabled
	}
}
