package config

// Settings are the runtime settings resolved from flags and environment
// variables before the UI starts.
type Settings struct {
	AccessToken  string `mapstructure:"access_token"`
	APIURL       string `mapstructure:"api_url"`
	Organization string `mapstructure:"org"`
	LogLevel     string `mapstructure:"log_level"`
	LogFilter    string `mapstructure:"log_filter"`
	LogFile      string `mapstructure:"log_file"`
}
