package config

const (
	defaultInsertionLayer = 3
	defaultBottomMargin   = 320
	defaultSideMargin     = 20
	defaultCachePath      = "~/.cache/cuesync/dimensions.db"
	defaultLogFormat      = "auto"
	defaultLogLevel       = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Align: Align{
			InsertionLayer: defaultInsertionLayer,
			BottomMargin:   defaultBottomMargin,
			SideMargin:     defaultSideMargin,
		},
		DimensionCache: DimensionCache{
			Enabled: true,
			Path:    defaultCachePath,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
