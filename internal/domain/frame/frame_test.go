package frame_test

import (
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/okian/rosterlab/internal/domain/frame"
	. "github.com/smartystreets/goconvey/convey"
)

var valueEq = cmp.Comparer(func(a, b frame.Value) bool { return a.Equal(b) })

func mustFrame(cols []string, rows ...[]frame.Value) *frame.Frame {
	f, err := frame.FromRows(cols, rows)
	if err != nil {
		panic(err)
	}
	return f
}

func rowsOf(f *frame.Frame) [][]frame.Value {
	out := make([][]frame.Value, f.Len())
	for i, r := range f.Records() {
		for _, c := range f.Columns() {
			out[i] = append(out[i], r.Get(c))
		}
	}
	return out
}

func TestValue(t *testing.T) {
	Convey("Given cell values", t, func() {
		Convey("NaN is stored as null", func() {
			So(frame.Number(math.NaN()).IsNull(), ShouldBeTrue)
		})

		Convey("Equality compares kind and payload", func() {
			So(frame.Int(3).Equal(frame.Number(3)), ShouldBeTrue)
			So(frame.Text("3").Equal(frame.Int(3)), ShouldBeFalse)
			So(frame.Null().Equal(frame.Null()), ShouldBeTrue)
			So(frame.Bool(true).Equal(frame.Bool(false)), ShouldBeFalse)
		})

		Convey("Rendering is flat-file friendly", func() {
			So(frame.Number(0.25).String(), ShouldEqual, "0.25")
			So(frame.Int(76).String(), ShouldEqual, "76")
			So(frame.Bool(true).String(), ShouldEqual, "true")
			So(frame.Null().String(), ShouldEqual, "")
		})

		Convey("Arithmetic propagates missing operands", func() {
			So(frame.Sub(frame.Number(1), frame.Null()).IsNull(), ShouldBeTrue)
			So(frame.Mul(frame.Text("x"), frame.Number(2)).IsNull(), ShouldBeTrue)
			So(frame.Scale(frame.Null(), 115).IsNull(), ShouldBeTrue)
			v, _ := frame.Mul(frame.Int(80), frame.Number(0.5)).Float()
			So(v, ShouldEqual, 40)
		})
	})
}

func TestFrameOperations(t *testing.T) {
	Convey("Given a small frame", t, func() {
		f := mustFrame([]string{"id", "name", "score"},
			[]frame.Value{frame.Text("a"), frame.Text("Ann"), frame.Int(1)},
			[]frame.Value{frame.Text("b"), frame.Text("Bo"), frame.Null()},
			[]frame.Value{frame.Text("a"), frame.Text("Ann 2"), frame.Int(3)},
		)

		Convey("Construction rejects bad shapes", func() {
			_, err := frame.New("x", "x")
			So(errors.Is(err, frame.ErrDuplicateColumn), ShouldBeTrue)
			_, err = frame.FromRows([]string{"x"}, [][]frame.Value{{frame.Int(1), frame.Int(2)}})
			So(errors.Is(err, frame.ErrRowWidth), ShouldBeTrue)
			_, err = frame.NewBuilder("x").AddMap(map[string]frame.Value{"y": frame.Int(1)}).Frame()
			So(errors.Is(err, frame.ErrUnknownColumn), ShouldBeTrue)
		})

		Convey("Filter keeps matching rows and leaves the source alone", func() {
			g := f.Filter(func(r frame.Record) bool { return !r.Get("score").IsNull() })
			So(g.Len(), ShouldEqual, 2)
			So(f.Len(), ShouldEqual, 3)
		})

		Convey("Drop ignores unknown columns", func() {
			g := f.Drop("score", "nope")
			So(g.Columns(), ShouldResemble, []string{"id", "name"})
			So(f.Columns(), ShouldResemble, []string{"id", "name", "score"})
		})

		Convey("Prefix renames all but the excepted columns", func() {
			g, err := f.Prefix("lhp_", "id")
			So(err, ShouldBeNil)
			So(g.Columns(), ShouldResemble, []string{"id", "lhp_name", "lhp_score"})
			So(g.WithPrefix("lhp_"), ShouldResemble, []string{"lhp_name", "lhp_score"})
		})

		Convey("Rename into an existing name is rejected", func() {
			_, err := f.Rename(map[string]string{"name": "id"})
			So(errors.Is(err, frame.ErrDuplicateColumn), ShouldBeTrue)
		})

		Convey("Reorder moves lead columns first", func() {
			g, err := f.Reorder("score", "id")
			So(err, ShouldBeNil)
			So(g.Columns(), ShouldResemble, []string{"score", "id", "name"})
			_, err = f.Reorder("ghost")
			So(errors.Is(err, frame.ErrUnknownColumn), ShouldBeTrue)
		})

		Convey("WithColumn appends or replaces without touching the source", func() {
			g := f.WithColumn("double", func(r frame.Record) frame.Value {
				return frame.Mul(r.Get("score"), frame.Int(2))
			})
			So(g.Columns(), ShouldResemble, []string{"id", "name", "score", "double"})
			So(g.Get(2, "double").Equal(frame.Int(6)), ShouldBeTrue)
			So(g.Get(1, "double").IsNull(), ShouldBeTrue)

			h := g.WithColumn("score", func(frame.Record) frame.Value { return frame.Int(0) })
			So(h.Width(), ShouldEqual, 4)
			So(h.Get(0, "score").Equal(frame.Int(0)), ShouldBeTrue)
			So(g.Get(0, "score").Equal(frame.Int(1)), ShouldBeTrue)
		})

		Convey("Keys are null-aware", func() {
			_, ok := frame.Key(f.Row(1), "id", "score")
			So(ok, ShouldBeFalse)
			k1, _ := frame.Key(f.Row(0), "id")
			k2, _ := frame.Key(f.Row(2), "id")
			So(k1, ShouldEqual, k2)
		})
	})
}

func TestJoin(t *testing.T) {
	Convey("Given two keyed frames", t, func() {
		left := mustFrame([]string{"id", "l"},
			[]frame.Value{frame.Text("a"), frame.Int(1)},
			[]frame.Value{frame.Text("b"), frame.Int(2)},
			[]frame.Value{frame.Null(), frame.Int(3)},
		)
		right := mustFrame([]string{"id", "r"},
			[]frame.Value{frame.Text("b"), frame.Int(20)},
			[]frame.Value{frame.Text("c"), frame.Int(30)},
			[]frame.Value{frame.Null(), frame.Int(40)},
		)

		Convey("Inner keeps only shared keys", func() {
			out, err := frame.Join(left, right, frame.Inner, "id")
			So(err, ShouldBeNil)
			want := [][]frame.Value{{frame.Text("b"), frame.Int(2), frame.Int(20)}}
			So(cmp.Diff(want, rowsOf(out), valueEq), ShouldBeEmpty)
		})

		Convey("Left keeps every left row and null keys never match", func() {
			out, err := frame.Join(left, right, frame.Left, "id")
			So(err, ShouldBeNil)
			want := [][]frame.Value{
				{frame.Text("a"), frame.Int(1), frame.Null()},
				{frame.Text("b"), frame.Int(2), frame.Int(20)},
				{frame.Null(), frame.Int(3), frame.Null()},
			}
			So(cmp.Diff(want, rowsOf(out), valueEq), ShouldBeEmpty)
		})

		Convey("Outer appends right-only rows with their keys", func() {
			out, err := frame.Join(left, right, frame.Outer, "id")
			So(err, ShouldBeNil)
			So(out.Len(), ShouldBeGreaterThanOrEqualTo, left.Len())
			want := [][]frame.Value{
				{frame.Text("a"), frame.Int(1), frame.Null()},
				{frame.Text("b"), frame.Int(2), frame.Int(20)},
				{frame.Null(), frame.Int(3), frame.Null()},
				{frame.Text("c"), frame.Null(), frame.Int(30)},
				{frame.Null(), frame.Null(), frame.Int(40)},
			}
			So(cmp.Diff(want, rowsOf(out), valueEq), ShouldBeEmpty)
		})

		Convey("Duplicate right keys fan out", func() {
			dup := mustFrame([]string{"id", "r"},
				[]frame.Value{frame.Text("a"), frame.Int(1)},
				[]frame.Value{frame.Text("a"), frame.Int(2)},
			)
			out, err := frame.Join(left, dup, frame.Left, "id")
			So(err, ShouldBeNil)
			So(out.Len(), ShouldEqual, 4)
		})

		Convey("Shared non-key columns are rejected", func() {
			clash := mustFrame([]string{"id", "l"})
			_, err := frame.Join(left, clash, frame.Inner, "id")
			So(errors.Is(err, frame.ErrColumnCollision), ShouldBeTrue)
		})

		Convey("Missing key columns are rejected", func() {
			_, err := frame.Join(left, right, frame.Inner, "uuid")
			So(errors.Is(err, frame.ErrUnknownColumn), ShouldBeTrue)
		})
	})
}
