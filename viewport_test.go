package main

import (
	"math"
	"testing"
)

func TestViewport_Defaults(t *testing.T) {
	vp := NewViewport()
	snap := vp.Snapshot()
	if snap.OffsetX != DefaultOffsetX || snap.OffsetY != DefaultOffsetY || snap.Zoom != DefaultZoom {
		t.Fatalf("unexpected defaults: %+v", snap)
	}
	if !vp.TakeRedraw() {
		t.Fatal("a fresh viewport should request the initial frame")
	}
	if vp.TakeRedraw() {
		t.Fatal("TakeRedraw must consume the flag")
	}
}

func TestViewport_PanRightAtZoomOne(t *testing.T) {
	vp := NewViewport()
	vp.SetView(0, 0, 1.0)
	vp.TakeRedraw()

	if !vp.Apply(NavPanRight) {
		t.Fatal("pan right should succeed")
	}
	snap := vp.Snapshot()
	if snap.OffsetX != 0.1 {
		t.Errorf("offsetX = %g, want exactly 0.1", snap.OffsetX)
	}
	if snap.OffsetY != 0 {
		t.Errorf("offsetY = %g, want 0", snap.OffsetY)
	}
	if !vp.TakeRedraw() {
		t.Error("pan must set the redraw flag")
	}
}

func TestViewport_PanScalesWithZoom(t *testing.T) {
	vp := NewViewport()
	vp.SetView(0, 0, 4.0)

	vp.Apply(NavPanDown)
	if got := vp.Snapshot().OffsetY; math.Abs(got-0.025) > 1e-15 {
		t.Errorf("offsetY = %g, want 0.025", got)
	}
}

func TestViewport_ZoomRoundTrip(t *testing.T) {
	vp := NewViewport()
	before := vp.Snapshot().Zoom

	vp.Apply(NavZoomIn)
	vp.Apply(NavZoomOut)
	after := vp.Snapshot().Zoom
	if math.Abs(after-before) > 1e-12 {
		t.Errorf("zoom %g after in+out, want %g", after, before)
	}
}

func TestViewport_LandmarkJump(t *testing.T) {
	vp := NewViewport()
	if !vp.Apply(NavLandmark3) {
		t.Fatal("landmark jump should succeed")
	}
	snap := vp.Snapshot()
	lm := Landmarks[2]
	if snap.OffsetX != lm.OffsetX || snap.OffsetY != lm.OffsetY || snap.Zoom != lm.Zoom {
		t.Fatalf("got %+v, want landmark %+v", snap, lm)
	}
}

func TestViewport_RejectsDegenerateTransitions(t *testing.T) {
	vp := NewViewport()
	vp.TakeRedraw()

	if vp.SetView(math.NaN(), 0, 1) {
		t.Error("NaN offset must be rejected")
	}
	if vp.SetView(0, math.Inf(1), 1) {
		t.Error("infinite offset must be rejected")
	}
	if vp.SetView(0, 0, 0) {
		t.Error("zero zoom must be rejected")
	}
	if vp.SetView(0, 0, -1) {
		t.Error("negative zoom must be rejected")
	}
	if vp.TakeRedraw() {
		t.Error("rejected transitions must not set the redraw flag")
	}

	snap := vp.Snapshot()
	if snap.OffsetX != DefaultOffsetX || snap.Zoom != DefaultZoom {
		t.Errorf("rejected transitions must not move the viewport: %+v", snap)
	}
}

func TestViewport_UnknownActionIsNoop(t *testing.T) {
	vp := NewViewport()
	vp.TakeRedraw()
	if vp.Apply(NavNone) {
		t.Error("NavNone should not mutate state")
	}
	if vp.TakeRedraw() {
		t.Error("NavNone should not set the redraw flag")
	}
}

func TestViewLocation_FormatParseRoundTrip(t *testing.T) {
	in := ViewSnapshot{OffsetX: -0.7059225866, OffsetY: -0.267652026, Zoom: 12345.678}
	out, err := parseViewLocation(formatViewLocation(in))
	if err != nil {
		t.Fatalf("parse returned error: %v", err)
	}
	if math.Abs(out.OffsetX-in.OffsetX) > 1e-10 ||
		math.Abs(out.OffsetY-in.OffsetY) > 1e-10 ||
		math.Abs(out.Zoom-in.Zoom)/in.Zoom > 1e-10 {
		t.Fatalf("round trip drifted: in %+v, out %+v", in, out)
	}
}

func TestViewLocation_ParseAcceptsCommas(t *testing.T) {
	out, err := parseViewLocation("-0.5, 0.25, 2")
	if err != nil {
		t.Fatalf("parse returned error: %v", err)
	}
	if out.OffsetX != -0.5 || out.OffsetY != 0.25 || out.Zoom != 2 {
		t.Fatalf("unexpected result: %+v", out)
	}
}

func TestViewLocation_ParseRejectsGarbage(t *testing.T) {
	for _, in := range []string{"", "1 2", "1 2 3 4", "a b c", "0 0 0", "0 0 -1", "nan 0 1"} {
		if _, err := parseViewLocation(in); err == nil {
			t.Errorf("parseViewLocation(%q) should fail", in)
		}
	}
}
