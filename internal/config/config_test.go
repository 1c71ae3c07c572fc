package config_test

import (
	"testing"
	"time"

	"github.com/okian/rosterlab/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfig_New(t *testing.T) {
	convey.Convey("Given a new config with default options", t, func() {
		cfg := config.New()

		convey.Convey("Then it should have sensible defaults", func() {
			convey.So(cfg.APIBaseURL, convey.ShouldEqual, "https://mlb25.theshow.com/apis")
			convey.So(cfg.CacheBackend, convey.ShouldEqual, config.CacheBackendFile)
			convey.So(cfg.Throttle, convey.ShouldEqual, config.ThrottleDelay)
			convey.So(cfg.RequestDelay(), convey.ShouldEqual, 250*time.Millisecond)
			convey.So(cfg.HTTPTimeout(), convey.ShouldEqual, 20*time.Second)
			convey.So(cfg.StatsNameColumn, convey.ShouldEqual, "Name")
			convey.So(cfg.StatsIDColumn, convey.ShouldEqual, "playerId")
			convey.So(cfg.StatsDropColumns, convey.ShouldContain, "PA")
			convey.So(cfg.Validate(), convey.ShouldBeNil)
		})
	})
}
