package config

import (
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const defaultEnvFile = ".env"

// Init wires environment variables, persistent flags and defaults into viper.
// Flags are bound under their underscore form, so --log-level sets log_level.
// The env file is loaded now and again once flags are parsed, so --env-file
// takes effect; variables already set in the environment are never overridden.
func Init(root *cobra.Command) {
	viper.AutomaticEnv()
	if root != nil {
		root.PersistentFlags().VisitAll(func(f *pflag.Flag) {
			_ = viper.BindPFlag(strings.ReplaceAll(f.Name, "-", "_"), f)
		})
		cobra.OnInitialize(loadEnvFile)
	}
	setDefaults()
	loadEnvFile()
}

func loadEnvFile() {
	_ = godotenv.Load(EnvFile())
}

func setDefaults() {
	viper.SetDefault(KeyLogLevel, "info")
	viper.SetDefault(KeyTransport, "stdio")
	viper.SetDefault(KeyHost, "0.0.0.0")
	viper.SetDefault(KeyPort, 8000)
	viper.SetDefault(KeyTCGdexBaseURL, "https://api.tcgdex.net/v2")
	viper.SetDefault(KeyTCGdexLanguage, "en")
	viper.SetDefault(KeyJustTCGBaseURL, "https://api.justtcg.com/v1")
	viper.SetDefault(KeyJustTCGRatePerSecond, 5.0)
	viper.SetDefault(KeyJustTCGBurst, 5)
	viper.SetDefault(KeyJustTCGBatchLimit, 20)
	viper.SetDefault(KeyHTTPTimeout, "30s")
	viper.SetDefault(KeyCacheSize, 512)
	viper.SetDefault(KeyCacheTTL, "1h")
	viper.SetDefault(KeyImageQuality, "low")
	viper.SetDefault(KeyImageFormat, "png")
	viper.SetDefault(KeyFanoutConcurrency, 8)
	viper.SetDefault(KeyMaxQueryResults, 50)
	viper.SetDefault(KeyEnvFile, defaultEnvFile)
}

func LogLevel() string              { return viper.GetString(KeyLogLevel) }
func Transport() string             { return strings.ToLower(viper.GetString(KeyTransport)) }
func Host() string                  { return viper.GetString(KeyHost) }
func Port() int                     { return viper.GetInt(KeyPort) }
func TCGdexBaseURL() string         { return viper.GetString(KeyTCGdexBaseURL) }
func TCGdexLanguage() string        { return viper.GetString(KeyTCGdexLanguage) }
func JustTCGBaseURL() string        { return viper.GetString(KeyJustTCGBaseURL) }
func JustTCGAPIKey() string         { return strings.TrimSpace(viper.GetString(KeyJustTCGAPIKey)) }
func JustTCGRatePerSecond() float64 { return viper.GetFloat64(KeyJustTCGRatePerSecond) }
func JustTCGBurst() int             { return viper.GetInt(KeyJustTCGBurst) }
func JustTCGBatchLimit() int        { return viper.GetInt(KeyJustTCGBatchLimit) }
func HTTPTimeout() time.Duration    { return durationOr(KeyHTTPTimeout, 30*time.Second) }
func CacheSize() int                { return viper.GetInt(KeyCacheSize) }
func CacheTTL() time.Duration       { return durationOr(KeyCacheTTL, time.Hour) }
func ImageQuality() string          { return viper.GetString(KeyImageQuality) }
func ImageFormat() string           { return viper.GetString(KeyImageFormat) }
func FanoutConcurrency() int        { return viper.GetInt(KeyFanoutConcurrency) }
func MaxQueryResults() int          { return viper.GetInt(KeyMaxQueryResults) }
func EnvFile() string               { return viper.GetString(KeyEnvFile) }

// durationOr accepts Go duration strings ("90s") and falls back when the value
// is empty or malformed.
func durationOr(key string, fallback time.Duration) time.Duration {
	raw := strings.TrimSpace(viper.GetString(key))
	if raw == "" {
		return fallback
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d < 0 {
		return fallback
	}
	return d
}
