package rest

// Environment holds the connection details for one API environment.
type Environment struct {
	// URL is the API root for this environment.
	URL string `mapstructure:"url" default:""`
	// APIKey authenticates requests. Keys are issued as five
	// dash-separated groups.
	APIKey string `mapstructure:"api_key" default:""`
}

// Config holds settings for the REST organization source.
type Config struct {
	// Mode selects the active environment, test or prod.
	Mode string `mapstructure:"mode" default:"test"`
	// Test is the test environment.
	Test Environment `mapstructure:"test"`
	// Prod is the production environment.
	Prod Environment `mapstructure:"prod"`
	// TimeoutSeconds bounds every HTTP call.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"10"`
	// WindowDays is the date window used for full list fetches.
	WindowDays int `mapstructure:"window_days" default:"365"`
}
