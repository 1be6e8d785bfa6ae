package ncaa

import "time"

const (
	feedName           = "ncaa"
	defaultBaseURL     = "https://data.ncaa.com/casablanca"
	defaultHTTPTimeout = 5 * time.Second
	defaultUserAgent   = "gameday-threads"
	errorBodyLimit     = 512
)
