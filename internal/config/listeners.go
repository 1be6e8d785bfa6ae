package config

// HTTPConfig bounds the inspection server's request handling and shutdown.
type HTTPConfig struct {
	ReadTimeout     Duration
	WriteTimeout    Duration
	IdleTimeout     Duration
	ShutdownTimeout Duration
}

// MetricsConfig controls where telemetry is exposed and exported.
type MetricsConfig struct {
	Enabled      bool
	Port         string
	OtlpEndpoint string
	OtlpInsecure bool
	ServiceName  string
}

func loadHTTP() HTTPConfig {
	return HTTPConfig{
		ReadTimeout:     durationEnvOrDefault(envHTTPReadTimeout, defaultHTTPReadTimeout),
		WriteTimeout:    durationEnvOrDefault(envHTTPWriteTimeout, defaultHTTPWriteTimeout),
		IdleTimeout:     durationEnvOrDefault(envHTTPIdleTimeout, defaultHTTPIdleTimeout),
		ShutdownTimeout: durationEnvOrDefault(envShutdownTimeout, defaultShutdownTimeout),
	}
}

func loadMetrics() MetricsConfig {
	return MetricsConfig{
		Enabled:      boolEnvOrDefault(envMetricsOn, true),
		Port:         envOrDefault(envMetricsPort, defaultMetricsPort),
		OtlpEndpoint: envOrDefault(envOtelEndpoint, ""),
		OtlpInsecure: boolEnvOrDefault(envOtelInsecure, true),
		ServiceName:  envOrDefault(envOtelService, defaultServiceName),
	}
}
