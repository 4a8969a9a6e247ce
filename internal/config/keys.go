package config

const (
	KeyLogLevel             = "log_level"
	KeyTransport            = "transport"
	KeyHost                 = "host"
	KeyPort                 = "port"
	KeyTCGdexBaseURL        = "tcgdex_base_url"
	KeyTCGdexLanguage       = "tcgdex_language"
	KeyJustTCGBaseURL       = "justtcg_base_url"
	KeyJustTCGAPIKey        = "justtcg_api_key"
	KeyJustTCGRatePerSecond = "justtcg_requests_per_second"
	KeyJustTCGBurst         = "justtcg_burst"
	KeyJustTCGBatchLimit    = "justtcg_batch_limit"
	KeyHTTPTimeout          = "http_timeout"
	KeyCacheSize            = "cache_size"
	KeyCacheTTL             = "cache_ttl"
	KeyImageQuality         = "image_quality"
	KeyImageFormat          = "image_format"
	KeyFanoutConcurrency    = "fanout_concurrency"
	KeyMaxQueryResults      = "max_query_results"
	KeyEnvFile              = "env_file"
)
