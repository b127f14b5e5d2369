package detection

import (
	"image"
	"testing"
)

func detAt(x, y int) Detection {
	return Detection{Box: image.Rect(x-10, y-10, x+10, y+10), ClassName: "person"}
}

func TestTracker_StableIdentityAcrossFrames(t *testing.T) {
	tr := NewTracker(TrackerConfig{MaxDistance: 50, MaxMisses: 3})

	first := tr.Update([]Detection{detAt(100, 100)})
	if len(first) != 1 {
		t.Fatalf("frame 1: got %d tracks, want 1", len(first))
	}
	id := first[0].ID
	if id == "" {
		t.Fatal("empty identity token")
	}

	// Object moves a little each frame: same identity.
	for i := 1; i <= 5; i++ {
		tracks := tr.Update([]Detection{detAt(100+i*10, 100)})
		if len(tracks) != 1 {
			t.Fatalf("frame %d: got %d tracks, want 1", i+1, len(tracks))
		}
		if tracks[0].ID != id {
			t.Errorf("frame %d: identity changed from %s to %s", i+1, id, tracks[0].ID)
		}
	}
}

func TestTracker_DistantDetectionGetsNewIdentity(t *testing.T) {
	tr := NewTracker(TrackerConfig{MaxDistance: 50, MaxMisses: 3})

	a := tr.Update([]Detection{detAt(100, 100)})[0].ID
	b := tr.Update([]Detection{detAt(500, 500)})

	if b[0].ID == a {
		t.Errorf("detection far beyond MaxDistance kept the old identity")
	}
}

func TestTracker_TwoObjectsKeepSeparateIdentities(t *testing.T) {
	tr := NewTracker(TrackerConfig{MaxDistance: 50, MaxMisses: 3})

	frame1 := tr.Update([]Detection{detAt(100, 100), detAt(300, 100)})
	if len(frame1) != 2 {
		t.Fatalf("got %d tracks, want 2", len(frame1))
	}
	if frame1[0].ID == frame1[1].ID {
		t.Fatal("two objects in one frame share an identity")
	}

	frame2 := tr.Update([]Detection{detAt(110, 100), detAt(290, 100)})
	if frame2[0].ID != frame1[0].ID || frame2[1].ID != frame1[1].ID {
		t.Errorf("identities swapped or changed: %v vs %v", frame1, frame2)
	}
}

func TestTracker_MissExpiry(t *testing.T) {
	tr := NewTracker(TrackerConfig{MaxDistance: 50, MaxMisses: 2})

	id := tr.Update([]Detection{detAt(100, 100)})[0].ID

	// Object survives MaxMisses empty frames...
	tr.Update(nil)
	tr.Update(nil)
	got := tr.Update([]Detection{detAt(100, 100)})
	if got[0].ID != id {
		t.Errorf("identity lost within miss budget")
	}

	// ...but not more.
	tr.Update(nil)
	tr.Update(nil)
	tr.Update(nil)
	got = tr.Update([]Detection{detAt(100, 100)})
	if got[0].ID == id {
		t.Errorf("identity survived past MaxMisses")
	}
	if tr.ActiveCount() != 1 {
		t.Errorf("ActiveCount: got %d, want 1", tr.ActiveCount())
	}
}

func TestTracker_DefaultsApplied(t *testing.T) {
	tr := NewTracker(TrackerConfig{})
	if tr.cfg.MaxDistance != DefaultTrackerConfig().MaxDistance {
		t.Errorf("zero MaxDistance not defaulted")
	}
	if tr.cfg.MaxMisses != DefaultTrackerConfig().MaxMisses {
		t.Errorf("zero MaxMisses not defaulted")
	}
}
