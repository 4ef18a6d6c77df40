package sheets

// Config holds settings for a spreadsheet-backed source.
type Config struct {
	// BaseURL is the spreadsheet values API root.
	BaseURL string `mapstructure:"base_url" default:"https://sheets.googleapis.com/v4/spreadsheets"`
	// SpreadsheetID identifies the spreadsheet document.
	SpreadsheetID string `mapstructure:"spreadsheet_id" default:""`
	// Worksheet is the tab holding the records.
	Worksheet string `mapstructure:"worksheet" default:""`
	// APIKey authenticates read access to the sheet.
	APIKey string `mapstructure:"api_key" default:""`
	// DriveBaseURL is the root for media downloads.
	DriveBaseURL string `mapstructure:"drive_base_url" default:"https://drive.google.com"`
	// TimeoutSeconds bounds every HTTP call.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"10"`
}
