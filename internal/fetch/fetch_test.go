package fetch_test

import (
	"context"
	"errors"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/okian/rosterlab/internal/adapters/catalog"
	"github.com/okian/rosterlab/internal/adapters/repository"
	"github.com/okian/rosterlab/internal/domain/model"
	"github.com/okian/rosterlab/internal/fetch"
)

type fakeSource struct {
	items   map[string]string
	calls   []string
	roster  string
	rosterE error
}

func (f *fakeSource) Item(_ context.Context, id string) ([]byte, error) {
	f.calls = append(f.calls, id)
	raw, ok := f.items[id]
	if !ok {
		return nil, &catalog.UpstreamError{StatusCode: 404, URL: "/item.json?id=" + id}
	}
	return []byte(raw), nil
}

func (f *fakeSource) RosterUpdate(context.Context, int) ([]byte, error) {
	if f.rosterE != nil {
		return nil, f.rosterE
	}
	return []byte(f.roster), nil
}

type countingLimiter struct{ waits int }

func (c *countingLimiter) Wait(ctx context.Context) error {
	c.waits++
	return ctx.Err()
}

const hitter = `{"name":"José Ramírez","ovr":88,"is_hitter":true,"contact_left":80,"contact_right":80,"power_left":70,"power_right":70,"plate_vision":75,"plate_discipline":82}`

func setup(t *testing.T) (*repository.FileStore, *fakeSource, *countingLimiter, *fetch.Resolver) {
	store, err := repository.NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("store: %v", err)
	}
	src := &fakeSource{items: map[string]string{
		"abc123": hitter,
		"empty":  `{}`,
		"bad":    `{"name":"X","ovr":"high"}`,
	}}
	lim := &countingLimiter{}
	return store, src, lim, fetch.NewResolver(store, src, fetch.WithLimiter(lim))
}

func TestResolve(t *testing.T) {
	Convey("Given an empty cache", t, func() {
		ctx := context.Background()
		store, src, _, r := setup(t)

		Convey("A miss fetches, caches and returns the record", func() {
			rec, err := r.Resolve(ctx, "abc123")
			So(err, ShouldBeNil)
			So(rec.Role, ShouldEqual, model.RoleHitter)
			So(src.calls, ShouldResemble, []string{"abc123"})

			cached, err := store.Get(ctx, "abc123")
			So(err, ShouldBeNil)
			So(string(cached), ShouldEqual, hitter)

			Convey("And a second resolve is served from the cache", func() {
				again, err := r.Resolve(ctx, "abc123")
				So(err, ShouldBeNil)
				So(again.Name, ShouldEqual, rec.Name)
				So(src.calls, ShouldHaveLength, 1)
			})
		})

		Convey("An upstream failure propagates with its status", func() {
			_, err := r.Resolve(ctx, "missing")
			var ue *catalog.UpstreamError
			So(errors.As(err, &ue), ShouldBeTrue)
			So(ue.StatusCode, ShouldEqual, 404)
		})

		Convey("An empty upstream object is not cached", func() {
			_, err := r.Resolve(ctx, "empty")
			So(errors.Is(err, model.ErrEmptyPayload), ShouldBeTrue)
			_, err = store.Get(ctx, "empty")
			So(errors.Is(err, repository.ErrNotFound), ShouldBeTrue)
		})

		Convey("An empty identifier is rejected without a fetch", func() {
			_, err := r.Resolve(ctx, "")
			So(errors.Is(err, fetch.ErrEmptyIdentifier), ShouldBeTrue)
			So(src.calls, ShouldBeEmpty)
		})
	})
}

func TestResolveBatch(t *testing.T) {
	Convey("Given a partly cached batch", t, func() {
		ctx := context.Background()
		store, src, lim, r := setup(t)
		So(store.Put(ctx, "cached", []byte(`{"name":"Pitcher","ovr":90,"is_hitter":false,"hits_per_bf":0.2,"k_per_bf":0.3,"bb_per_bf":0.05,"hr_per_bf":0.02}`)), ShouldBeNil)

		Convey("When it is resolved", func() {
			res, err := r.ResolveBatch(ctx, []string{"cached", "abc123", "missing", "bad", ""})
			So(err, ShouldBeNil)

			Convey("Then failures are skipped without aborting", func() {
				So(res.Records, ShouldHaveLength, 2)
				So(res.Records[0].Name, ShouldEqual, "Pitcher")
				So(res.Records[1].ID, ShouldEqual, "abc123")
				So(res.Skipped, ShouldResemble, []string{"missing", "bad", ""})
			})

			Convey("Then the limiter runs after network fetches only", func() {
				So(res.Fetched, ShouldEqual, 3)
				So(lim.waits, ShouldEqual, 3)
				So(src.calls, ShouldResemble, []string{"abc123", "missing", "bad"})
			})
		})

		Convey("When the context is cancelled", func() {
			cctx, cancel := context.WithCancel(ctx)
			cancel()
			_, err := r.ResolveBatch(cctx, []string{"abc123"})

			Convey("Then the batch stops", func() {
				So(errors.Is(err, context.Canceled), ShouldBeTrue)
				So(src.calls, ShouldBeEmpty)
			})
		})
	})
}

func TestLoader(t *testing.T) {
	Convey("Given a roster source", t, func() {
		ctx := context.Background()
		src := &fakeSource{roster: `{"attribute_changes":[
			{"name":"A","old_rank":74,"current_rank":76,"item":{"uuid":"abc123"}},
			{"name":"B","old_rank":80,"current_rank":80},
			{"name":"A again","old_rank":74,"current_rank":76,"item":{"uuid":"abc123"}}
		]}`}
		l := fetch.NewLoader(src, nil)

		Convey("Load parses every change", func() {
			events, err := l.Load(ctx, 12)
			So(err, ShouldBeNil)
			So(events, ShouldHaveLength, 3)
			So(events[0].Label(), ShouldEqual, 1)

			Convey("And identifiers are distinct and non-empty", func() {
				So(fetch.Identifiers(events), ShouldResemble, []string{"abc123"})
			})
		})

		Convey("Upstream failures propagate", func() {
			src.rosterE = &catalog.UpstreamError{StatusCode: 500}
			_, err := l.Load(ctx, 12)
			So(errors.Is(err, catalog.ErrUpstream), ShouldBeTrue)
		})
	})
}
