package cfg

type Cfg struct {
	// Server configuration
	Port string

	// Bluesky account for credential-based mode
	BlueskyIdentifier string
	BlueskyPassword   string

	// Application metadata
	UserAgent string
	Debug     bool
	Version   string
}

// HasBlueskyCredentials reports whether the process-wide Bluesky account is
// configured, i.e. GET /bluesky without a per-request token can be served.
func (c *Cfg) HasBlueskyCredentials() bool {
	return c.BlueskyIdentifier != "" && c.BlueskyPassword != ""
}
