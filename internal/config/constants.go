package config

import "time"

const (
	envConfigFile        = "GAMETHREAD_CONFIG"
	envPort              = "PORT"
	envDiscoverInterval  = "DISCOVER_INTERVAL"
	envReconcileInterval = "RECONCILE_INTERVAL"
	envTeam              = "TEAM"
	envRival             = "RIVAL"
	envTimezone          = "TIMEZONE"
	envDataDir           = "DATA_DIR"
	envStoreBackend      = "STORE_BACKEND"
	envSQLitePath        = "SQLITE_PATH"
	envLogLevel          = "LOG_LEVEL"
	envLogFormat         = "LOG_FORMAT"
	envLogFile           = "LOG_FILE"
	envLogMaxSizeMB      = "LOG_MAX_SIZE_MB"
	envFeedProvider      = "FEED_PROVIDER"
	envNCAABaseURL       = "NCAA_BASE_URL"
	envFeedTimeout       = "FEED_TIMEOUT"
	envFeedMinInterval   = "FEED_MIN_INTERVAL"
	envForumProvider     = "FORUM_PROVIDER"
	envRedditClientID    = "REDDIT_CLIENT_ID"
	envRedditSecret      = "REDDIT_CLIENT_SECRET"
	envRedditUsername    = "REDDIT_USERNAME"
	envRedditPassword    = "REDDIT_PASSWORD"
	envRedditSubreddit   = "REDDIT_SUBREDDIT"
	envRedditAuthor      = "REDDIT_AUTHOR"
	envMetricsPort       = "METRICS_PORT"
	envMetricsOn         = "METRICS_ENABLED"
	envOtelEndpoint      = "OTEL_EXPORTER_OTLP_ENDPOINT"
	envOtelService       = "OTEL_SERVICE_NAME"
	envOtelInsecure      = "OTEL_EXPORTER_OTLP_INSECURE"
	envHTTPReadTimeout   = "HTTP_READ_TIMEOUT"
	envHTTPWriteTimeout  = "HTTP_WRITE_TIMEOUT"
	envHTTPIdleTimeout   = "HTTP_IDLE_TIMEOUT"
	envShutdownTimeout   = "SHUTDOWN_TIMEOUT"

	defaultPort = "4000"
	// Scoreboards change rarely; new games only need to be picked up well before tip-off.
	defaultDiscoverInterval = 30 * Duration(time.Minute)
	// Reconciliation drives thread timing, so it runs often.
	defaultReconcileInterval = 2 * Duration(time.Minute)
	defaultTeam              = "louisville"
	defaultRival             = "kentucky"
	defaultTimezone          = "America/New_York"
	defaultDataDir           = "data/games"
	defaultSQLitePath        = "data/games.db"
	defaultStoreBackend      = StoreFile
	defaultLogLevel          = "info"
	defaultLogMaxSizeMB      = 50
	defaultFeedProvider      = FeedNCAA
	defaultNCAABaseURL       = "https://data.ncaa.com/casablanca"
	defaultFeedTimeout       = 5 * Duration(time.Second)
	defaultForumProvider     = ForumReddit
	defaultMetricsPort       = "9090"
	defaultServiceName       = "gameday-threads"
	defaultHTTPReadTimeout   = 10 * Duration(time.Second)
	defaultHTTPWriteTimeout  = 10 * Duration(time.Second)
	defaultHTTPIdleTimeout   = 60 * Duration(time.Second)
	defaultShutdownTimeout   = 10 * Duration(time.Second)
)

// Store backends.
const (
	StoreFile   = "file"
	StoreSQLite = "sqlite"
	StoreMemory = "memory"
)

// Feed providers.
const (
	FeedNCAA    = "ncaa"
	FeedFixture = "fixture"
)

// Forum providers.
const (
	ForumReddit = "reddit"
	ForumLog    = "log"
)
