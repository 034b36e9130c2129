package server

// Config holds configuration for the HTTP server.
type Config struct {
	// Port is the port where the server will listen.
	Port string `mapstructure:"port" default:"8080"`
	// ApiKey is the secret key required to access the API.
	// Empty disables authentication.
	ApiKey string `mapstructure:"api_key" default:""`
	// BodyLimitMB caps the size of multipart upload bodies in megabytes.
	BodyLimitMB int `mapstructure:"body_limit_mb" default:"64"`
}

// BodyLimitBytes returns the upload body cap in bytes.
func (c Config) BodyLimitBytes() int {
	mb := c.BodyLimitMB
	if mb < 1 {
		mb = 1
	}
	return mb * 1024 * 1024
}
