package telemetry

import (
	"fmt"
	"log/slog"
)

// BookmarkType identifies the type of bookmark.
type BookmarkType string

const (
	BookmarkFirstCatch BookmarkType = "first_catch"
	BookmarkFlapStorm  BookmarkType = "flap_storm"
	BookmarkSettled    BookmarkType = "settled"
)

// settledWindows is how many quiet windows in a row make a settled bookmark.
const settledWindows = 5

// Bookmark represents an automatically triggered bookmark.
type Bookmark struct {
	Type        BookmarkType `csv:"type" json:"type"`
	Tick        int32        `csv:"tick" json:"tick"`
	Description string       `csv:"description" json:"description"`
}

// LogBookmark logs the bookmark using slog.
func (b Bookmark) LogBookmark() {
	slog.Info("bookmark",
		"type", string(b.Type),
		"tick", b.Tick,
		"description", b.Description,
	)
}

// BookmarkDetector flags windows worth a closer look.
type BookmarkDetector struct {
	// Rolling history (circular buffer)
	history     []WindowStats
	historySize int
	historyIdx  int
	historyFull bool

	caughtOnce   bool
	quietWindows int
}

// NewBookmarkDetector creates a detector with the given history size.
func NewBookmarkDetector(historySize int) *BookmarkDetector {
	if historySize < 3 {
		historySize = 3
	}
	return &BookmarkDetector{
		history:     make([]WindowStats, historySize),
		historySize: historySize,
	}
}

// Check analyzes the latest stats and returns any triggered bookmarks.
func (bd *BookmarkDetector) Check(stats WindowStats) []Bookmark {
	var bookmarks []Bookmark

	if b := bd.checkFirstCatch(stats); b != nil {
		bookmarks = append(bookmarks, *b)
	}
	if b := bd.checkFlapStorm(stats); b != nil {
		bookmarks = append(bookmarks, *b)
	}
	if b := bd.checkSettled(stats); b != nil {
		bookmarks = append(bookmarks, *b)
	}

	bd.addToHistory(stats)
	return bookmarks
}

func (bd *BookmarkDetector) addToHistory(stats WindowStats) {
	bd.history[bd.historyIdx] = stats
	bd.historyIdx = (bd.historyIdx + 1) % bd.historySize
	if bd.historyIdx == 0 {
		bd.historyFull = true
	}
}

func (bd *BookmarkDetector) getHistory() []WindowStats {
	if bd.historyFull {
		return bd.history
	}
	return bd.history[:bd.historyIdx]
}

func (bd *BookmarkDetector) checkFirstCatch(stats WindowStats) *Bookmark {
	if bd.caughtOnce || stats.Catches == 0 {
		return nil
	}
	bd.caughtOnce = true
	return &Bookmark{
		Type:        BookmarkFirstCatch,
		Tick:        stats.WindowEndTick,
		Description: fmt.Sprintf("First catch (%d this window)", stats.Catches),
	}
}

// checkFlapStorm fires when flapping is at least double the rolling average.
func (bd *BookmarkDetector) checkFlapStorm(stats WindowStats) *Bookmark {
	history := bd.getHistory()
	if len(history) < 3 || stats.Flaps < 3 {
		return nil
	}

	var total int
	for _, h := range history {
		total += h.Flaps
	}
	avg := float64(total) / float64(len(history))

	if float64(stats.Flaps) >= 2*avg {
		return &Bookmark{
			Type:        BookmarkFlapStorm,
			Tick:        stats.WindowEndTick,
			Description: fmt.Sprintf("%d flaps vs %.1f average", stats.Flaps, avg),
		}
	}
	return nil
}

// checkSettled fires once after a run of windows without transitions.
func (bd *BookmarkDetector) checkSettled(stats WindowStats) *Bookmark {
	if stats.Transitions > 0 {
		bd.quietWindows = 0
		return nil
	}

	bd.quietWindows++
	if bd.quietWindows == settledWindows {
		return &Bookmark{
			Type:        BookmarkSettled,
			Tick:        stats.WindowEndTick,
			Description: fmt.Sprintf("No state changes for %d windows", settledWindows),
		}
	}
	return nil
}
