package telemetry

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"

	"github.com/pthm-cable/chase/config"
)

// csvSink is one CSV file that writes its header with the first record.
type csvSink struct {
	name          string
	file          *os.File
	headerWritten bool
}

func openSink(dir, name string) (*csvSink, error) {
	f, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return nil, fmt.Errorf("creating %s: %w", name, err)
	}
	return &csvSink{name: name, file: f}, nil
}

// write appends records, a slice of gocsv-tagged structs.
func (s *csvSink) write(records any) error {
	if s == nil {
		return nil
	}
	var err error
	if !s.headerWritten {
		err = gocsv.Marshal(records, s.file)
		s.headerWritten = err == nil
	} else {
		err = gocsv.MarshalWithoutHeaders(records, s.file)
	}
	if err != nil {
		return fmt.Errorf("writing %s: %w", s.name, err)
	}
	return nil
}

func (s *csvSink) close() error {
	if s == nil || s.file == nil {
		return nil
	}
	return s.file.Close()
}

// OutputManager handles structured run output with CSV logging.
type OutputManager struct {
	dir         string
	telemetry   *csvSink
	transitions *csvSink
	perf        *csvSink
	bookmarks   *csvSink
	trace       *csvSink // nil unless tracing
}

// NewOutputManager creates a new output manager and initializes the output directory.
// Returns nil if dir is empty (output disabled). trace.csv is only created
// when trace is set.
func NewOutputManager(dir string, trace bool) (*OutputManager, error) {
	if dir == "" {
		return nil, nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	om := &OutputManager{dir: dir}

	sinks := []struct {
		dst  **csvSink
		name string
	}{
		{&om.telemetry, "telemetry.csv"},
		{&om.transitions, "transitions.csv"},
		{&om.perf, "perf.csv"},
		{&om.bookmarks, "bookmarks.csv"},
	}
	if trace {
		sinks = append(sinks, struct {
			dst  **csvSink
			name string
		}{&om.trace, "trace.csv"})
	}

	for _, s := range sinks {
		sink, err := openSink(dir, s.name)
		if err != nil {
			om.Close()
			return nil, err
		}
		*s.dst = sink
	}

	return om, nil
}

// WriteConfig saves the current configuration as YAML.
func (om *OutputManager) WriteConfig(cfg *config.Config) error {
	if om == nil {
		return nil
	}
	return cfg.WriteYAML(filepath.Join(om.dir, "config.yaml"))
}

// WriteTelemetry writes a window stats record to telemetry.csv.
func (om *OutputManager) WriteTelemetry(stats WindowStats) error {
	if om == nil {
		return nil
	}
	return om.telemetry.write([]WindowStats{stats})
}

// WriteTransition writes a state transition to transitions.csv.
func (om *OutputManager) WriteTransition(ev TransitionEvent) error {
	if om == nil {
		return nil
	}
	return om.transitions.write([]TransitionEvent{ev})
}

// WritePerf writes a performance stats record to perf.csv.
func (om *OutputManager) WritePerf(stats PerfStats, windowEnd int32) error {
	if om == nil {
		return nil
	}
	return om.perf.write([]PerfStatsCSV{stats.ToCSV(windowEnd)})
}

// WriteBookmark writes a bookmark record to bookmarks.csv.
func (om *OutputManager) WriteBookmark(b Bookmark) error {
	if om == nil {
		return nil
	}
	return om.bookmarks.write([]Bookmark{b})
}

// WriteTrace writes one tick of agent rows to trace.csv. No-op when
// tracing is off.
func (om *OutputManager) WriteTrace(records []TraceRecord) error {
	if om == nil || om.trace == nil || len(records) == 0 {
		return nil
	}
	return om.trace.write(records)
}

// Tracing reports whether trace.csv is being written.
func (om *OutputManager) Tracing() bool {
	return om != nil && om.trace != nil
}

// Dir returns the output directory path.
func (om *OutputManager) Dir() string {
	if om == nil {
		return ""
	}
	return om.dir
}

// Close flushes and closes all output files.
func (om *OutputManager) Close() error {
	if om == nil {
		return nil
	}

	var firstErr error
	for _, s := range []*csvSink{om.telemetry, om.transitions, om.perf, om.bookmarks, om.trace} {
		if err := s.close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
