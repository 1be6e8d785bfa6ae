package reddit

import "time"

const (
	defaultAPIBase   = "https://oauth.reddit.com"
	defaultTokenURL  = "https://www.reddit.com/api/v1/access_token"
	defaultTimeout   = 10 * time.Second
	defaultUserAgent = "gameday-threads"
	errorBodyLimit   = 512
	suggestedSort    = "new"
)
