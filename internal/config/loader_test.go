package config_test

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/okian/rosterlab/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfigLoader(t *testing.T) {
	convey.Convey("Given a config loader", t, func() {
		ctx := context.Background()

		convey.Convey("When loading config with defaults only", func() {
			clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load successfully with defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.CacheDir, convey.ShouldEqual, "data/cache")
				convey.So(cfg.RequestDelayMS, convey.ShouldEqual, 250)
			})
		})

		convey.Convey("When loading config with environment variables", func() {
			_ = os.Setenv("ROSTERLAB_CACHE_DIR", "/tmp/items")
			_ = os.Setenv("ROSTERLAB_REQUEST_DELAY_MS", "100")
			_ = os.Setenv("ROSTERLAB_THROTTLE", "token_bucket")
			_ = os.Setenv("ROSTERLAB_REQUESTS_PER_SECOND", "2.5")
			_ = os.Setenv("ROSTERLAB_BURST", "3")
			_ = os.Setenv("ROSTERLAB_STATS_DROP_COLUMNS", "PA, OPS")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should override defaults with env vars", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.CacheDir, convey.ShouldEqual, "/tmp/items")
				convey.So(cfg.RequestDelayMS, convey.ShouldEqual, 100)
				convey.So(cfg.Throttle, convey.ShouldEqual, config.ThrottleTokenBucket)
				convey.So(cfg.RequestsPerSecond, convey.ShouldEqual, 2.5)
				convey.So(cfg.Burst, convey.ShouldEqual, 3)
				convey.So(cfg.StatsDropColumns, convey.ShouldResemble, []string{"PA", "OPS"})
			})
		})

		convey.Convey("When loading config with a YAML file", func() {
			yamlContent := `
api_base_url: "http://localhost:9999/apis"
cache_backend: redis
redis_addr: "cache:6379"
lhp_stats_path: data/lhp.csv
rhp_stats_path: data/rhp.csv
stats_drop_columns: [PA]
`
			tmpFile := createTempConfigFile(yamlContent)
			defer func() { _ = os.Remove(tmpFile) }()
			_ = os.Setenv("ROSTERLAB_CONFIG", tmpFile)
			_ = os.Setenv("ROSTERLAB_REDIS_ADDR", "other:6379")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then file values apply and env wins over the file", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.APIBaseURL, convey.ShouldEqual, "http://localhost:9999/apis")
				convey.So(cfg.CacheBackend, convey.ShouldEqual, config.CacheBackendRedis)
				convey.So(cfg.RedisAddr, convey.ShouldEqual, "other:6379")
				convey.So(cfg.LHPStatsPath, convey.ShouldEqual, "data/lhp.csv")
				convey.So(cfg.StatsDropColumns, convey.ShouldResemble, []string{"PA"})
				convey.So(cfg.StatsNameColumn, convey.ShouldEqual, "Name")
			})
		})

		convey.Convey("When loading config with invalid YAML file", func() {
			tmpFile := createTempConfigFile(`invalid: yaml: content: [`)
			defer func() { _ = os.Remove(tmpFile) }()
			_ = os.Setenv("ROSTERLAB_CONFIG", tmpFile)
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a load error", func() {
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with non-existent file", func() {
			_ = os.Setenv("ROSTERLAB_CONFIG", "/non/existent/file.yaml")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return an error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with invalid numeric environment variables", func() {
			_ = os.Setenv("ROSTERLAB_REQUEST_DELAY_MS", "soon")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return an error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})
	})
}

func TestConfigValidation(t *testing.T) {
	convey.Convey("Given config validation", t, func() {
		ctx := context.Background()

		cases := []struct {
			name string
			env  map[string]string
		}{
			{"empty base url", map[string]string{"ROSTERLAB_API_BASE_URL": ""}},
			{"unknown cache backend", map[string]string{"ROSTERLAB_CACHE_BACKEND": "s3"}},
			{"empty cache dir", map[string]string{"ROSTERLAB_CACHE_DIR": ""}},
			{"unknown throttle", map[string]string{"ROSTERLAB_THROTTLE": "none"}},
			{"negative delay", map[string]string{"ROSTERLAB_REQUEST_DELAY_MS": "-5"}},
			{"zero token rate", map[string]string{"ROSTERLAB_THROTTLE": "token_bucket", "ROSTERLAB_REQUESTS_PER_SECOND": "0"}},
			{"empty stats name", map[string]string{"ROSTERLAB_STATS_NAME_COLUMN": ""}},
		}
		for _, tc := range cases {
			convey.Convey("When the config has "+tc.name, func() {
				for k, v := range tc.env {
					_ = os.Setenv(k, v)
				}
				defer clearConfigEnvVars()

				cfg, err := config.Load(ctx)

				convey.Convey("Then it is rejected as invalid", func() {
					convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
					convey.So(cfg, convey.ShouldBeNil)
				})
			})
		}
	})
}

// Helper functions.

func clearConfigEnvVars() {
	for _, kv := range os.Environ() {
		key, _, _ := strings.Cut(kv, "=")
		if strings.HasPrefix(key, config.EnvPrefix) {
			_ = os.Unsetenv(key)
		}
	}
}

func createTempConfigFile(content string) string {
	tmpFile, err := os.CreateTemp("", "rosterlab-config-*.yaml")
	if err != nil {
		panic(err)
	}
	if _, err := tmpFile.WriteString(content); err != nil {
		panic(err)
	}
	if err := tmpFile.Close(); err != nil {
		panic(err)
	}
	return tmpFile.Name()
}
