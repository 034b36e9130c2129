package cache

// Config holds configuration for the upload cache.
type Config struct {
	// MaxEntries is the number of uploaded file sets kept before the
	// oldest entry is evicted.
	MaxEntries int `mapstructure:"max_entries" default:"20"`
}
