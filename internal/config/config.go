package config

import (
	"flag"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var once sync.Once
var logger *zap.SugaredLogger
var loggerOnce sync.Once

// isTestRun returns true if the current process is a Go test binary.
func isTestRun() bool {
	return flag.Lookup("test.v") != nil || filepath.Ext(os.Args[0]) == ".test"
}

func setDefaults() {
	viper.SetDefault("pdbe.base_url", "https://www.ebi.ac.uk/pdbe/")
	viper.SetDefault("pdbe.timeout", "30s")
	viper.SetDefault("pdbe.max_concurrency", 4)
	viper.SetDefault("pdbe.rate", 10)
	viper.SetDefault("pdbe.burst", 10)
	viper.SetDefault("redis.addr", "localhost:6379")
	viper.SetDefault("cache.enabled", false)
	viper.SetDefault("cache.expiration", "10m")
	viper.SetDefault("server.port", "8080")
	viper.SetDefault("server.read_header_timeout", "15s")
	viper.SetDefault("server.read_timeout", "15s")
	viper.SetDefault("server.write_timeout", "30s")
	viper.SetDefault("server.idle_timeout", "60s")
	viper.SetDefault("tools.superpose", "superpose")
	viper.SetDefault("tools.gesamt", "gesamt")
}

func initConfig() {
	once.Do(func() {
		_ = godotenv.Load()

		setDefaults()
		viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
		viper.AutomaticEnv()

		root, err := getProjectRoot()
		if err != nil {
			GetLogger().Debugw("Project root not found, using defaults", "error", err)
			return
		}
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
		viper.AddConfigPath(root)
		if err = viper.ReadInConfig(); err != nil {
			GetLogger().Debugw("Error reading config file", "error", err)
		}

		if isTestRun() {
			viper.SetConfigName("config_test")
			if err = viper.MergeInConfig(); err != nil {
				GetLogger().Debugw("Error merging test config file", "error", err)
			}
		}
	})
}

func getProjectRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", os.ErrNotExist
}

// GetPDBeBaseURL returns the API root, always ending with a slash.
func GetPDBeBaseURL() string {
	initConfig()
	u := viper.GetString("pdbe.base_url")
	if !strings.HasSuffix(u, "/") {
		u += "/"
	}
	return u
}

// GetPDBeTimeout returns the per-request timeout of the API client. Defaults to 30s.
func GetPDBeTimeout() time.Duration {
	initConfig()
	return getDuration("pdbe.timeout", 30*time.Second)
}

// GetPDBeMaxConcurrency returns how many entries are fetched at once in batch calls.
func GetPDBeMaxConcurrency() int {
	initConfig()
	n := viper.GetInt("pdbe.max_concurrency")
	if n <= 0 {
		n = 4
	}
	return n
}

// GetPDBeRateLimit returns the outgoing request rate (per second) and burst.
func GetPDBeRateLimit() (rate float64, burst int) {
	initConfig()
	rate = viper.GetFloat64("pdbe.rate")
	if rate <= 0 {
		rate = 10
	}
	burst = viper.GetInt("pdbe.burst")
	if burst <= 0 {
		burst = 10
	}
	return
}

func GetRedisAddr() string {
	initConfig()
	return viper.GetString("redis.addr")
}

func IsCacheEnabled() bool {
	initConfig()
	return viper.GetBool("cache.enabled")
}

// GetCacheExpiration returns how long API responses stay cached. Defaults to 10m.
func GetCacheExpiration() time.Duration {
	initConfig()
	return getDuration("cache.expiration", 10*time.Minute)
}

func GetServerPort() string {
	initConfig()
	return viper.GetString("server.port")
}

func GetServerTimeout(key string) time.Duration {
	initConfig()
	return getDuration("server."+key, 15*time.Second)
}

// GetToolBinary returns the executable configured for a superposition tool
// ("superpose" or "gesamt"). Unknown tools resolve to their own name.
func GetToolBinary(tool string) string {
	initConfig()
	if bin := viper.GetString("tools." + tool); bin != "" {
		return bin
	}
	return tool
}

// ReloadConfigForTest resets the config singleton and reloads Viper config. Use only in tests.
func ReloadConfigForTest() {
	once = sync.Once{}
	initConfig()
}

func GetLogger() *zap.SugaredLogger {
	loggerOnce.Do(func() {
		if logger != nil {
			return
		}
		l, err := zap.NewDevelopment()
		if err != nil {
			panic(err)
		}
		logger = l.Sugar()
	})
	return logger
}

// SetLogger replaces the process logger. The CLI uses it to honour --verbose.
func SetLogger(l *zap.SugaredLogger) {
	loggerOnce.Do(func() {})
	logger = l
}

// GetRateLimiterCleanupTimeout returns the rate limiter cleanup timeout as a time.Duration.
// Defaults to 3m if not set or invalid.
func GetRateLimiterCleanupTimeout() time.Duration {
	initConfig()
	return getDuration("rate_limiter.cleanup_timeout", 3*time.Minute)
}

// GetGlobalRateLimiterConfig returns the rate and burst for the global rate limiter from config.
func GetGlobalRateLimiterConfig() (rate float64, burst int) {
	initConfig()
	rate = viper.GetFloat64("rate_limiter.global.rate")
	if rate == 0 {
		rate = 10
	}
	burst = viper.GetInt("rate_limiter.global.burst")
	if burst == 0 {
		burst = 10
	}
	return
}

// GetParamRateLimiterConfig returns the rate and burst for the param rate limiter from config.
func GetParamRateLimiterConfig() (rate float64, burst int) {
	initConfig()
	rate = viper.GetFloat64("rate_limiter.param.rate")
	if rate == 0 {
		rate = 2
	}
	burst = viper.GetInt("rate_limiter.param.burst")
	if burst == 0 {
		burst = 2
	}
	return
}

func getDuration(key string, def time.Duration) time.Duration {
	s := viper.GetString(key)
	if s == "" {
		return def
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return def
	}
	return d
}
