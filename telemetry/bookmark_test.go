package telemetry

import "testing"

func hasBookmark(bookmarks []Bookmark, typ BookmarkType) bool {
	for _, bm := range bookmarks {
		if bm.Type == typ {
			return true
		}
	}
	return false
}

func TestBookmarkDetector_FirstCatch(t *testing.T) {
	bd := NewBookmarkDetector(10)

	if hasBookmark(bd.Check(WindowStats{WindowEndTick: 600, Transitions: 1}), BookmarkFirstCatch) {
		t.Fatal("first_catch without a catch")
	}
	if !hasBookmark(bd.Check(WindowStats{WindowEndTick: 1200, Transitions: 2, Catches: 1}), BookmarkFirstCatch) {
		t.Error("expected first_catch bookmark")
	}
	if hasBookmark(bd.Check(WindowStats{WindowEndTick: 1800, Transitions: 2, Catches: 2}), BookmarkFirstCatch) {
		t.Error("first_catch fired twice")
	}
}

func TestBookmarkDetector_FlapStorm(t *testing.T) {
	bd := NewBookmarkDetector(10)

	for i := 0; i < 5; i++ {
		bd.Check(WindowStats{WindowEndTick: int32(i * 600), Transitions: 4, Flaps: 2})
	}

	bookmarks := bd.Check(WindowStats{WindowEndTick: 3000, Transitions: 10, Flaps: 6})
	if !hasBookmark(bookmarks, BookmarkFlapStorm) {
		t.Error("expected flap_storm bookmark")
	}
}

func TestBookmarkDetector_NoFlapStormWithoutHistory(t *testing.T) {
	bd := NewBookmarkDetector(10)

	bookmarks := bd.Check(WindowStats{WindowEndTick: 600, Transitions: 20, Flaps: 20})
	if hasBookmark(bookmarks, BookmarkFlapStorm) {
		t.Error("flap_storm needs history to compare against")
	}
}

func TestBookmarkDetector_Settled(t *testing.T) {
	bd := NewBookmarkDetector(10)

	fired := 0
	for i := 0; i < 8; i++ {
		if hasBookmark(bd.Check(WindowStats{WindowEndTick: int32(i * 600)}), BookmarkSettled) {
			fired++
			if i != settledWindows-1 {
				t.Errorf("settled fired at window %d, want %d", i, settledWindows-1)
			}
		}
	}
	if fired != 1 {
		t.Errorf("settled fired %d times, want 1", fired)
	}

	// Activity resets the streak
	bd.Check(WindowStats{Transitions: 1})
	for i := 0; i < settledWindows-1; i++ {
		if hasBookmark(bd.Check(WindowStats{}), BookmarkSettled) {
			t.Fatal("settled fired before streak rebuilt")
		}
	}
	if !hasBookmark(bd.Check(WindowStats{}), BookmarkSettled) {
		t.Error("settled did not fire after a new quiet streak")
	}
}
