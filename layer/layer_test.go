package layer

import (
	stderrors "errors"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/wippyai/vk-perflayers/config"
	"github.com/wippyai/vk-perflayers/errors"
	"github.com/wippyai/vk-perflayers/eventlog"
	"github.com/wippyai/vk-perflayers/shaderhash"
	"github.com/wippyai/vk-perflayers/timing"
)

var epoch = time.Unix(1700000000, 0)

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return string(data)
}

func newTestLayer(t *testing.T, opts Options) *LayerData {
	t.Helper()
	if opts.LogFile == "" {
		opts.LogFile = filepath.Join(t.TempDir(), "layer.log")
	}
	if opts.Clock == nil {
		opts.Clock = timing.NewManualClock(epoch)
	}
	d := New(opts)
	t.Cleanup(func() { d.Close() })
	return d
}

func TestDefaultOptions(t *testing.T) {
	t.Setenv(config.EnvConfigFile, "")
	t.Setenv(config.EnvDebug, "")
	t.Setenv(config.EnvEventLogFile, "/tmp/events.csv")
	t.Setenv(config.EnvLogFile, "/tmp/layer.csv")

	opts := DefaultOptions()
	if opts.EventLogFile != "/tmp/events.csv" {
		t.Errorf("EventLogFile = %q", opts.EventLogFile)
	}
	if opts.LogFile != "/tmp/layer.csv" {
		t.Errorf("LogFile = %q", opts.LogFile)
	}
	if opts.Logger != nil {
		t.Error("Logger should be unset without debug")
	}
}

func TestOptionsFromConfig_Debug(t *testing.T) {
	opts := OptionsFromConfig(config.Config{Debug: true})
	if opts.Logger == nil {
		t.Fatal("debug config should set a logger")
	}
	if !opts.Logger.Core().Enabled(zapcore.DebugLevel) {
		t.Error("debug logger should enable debug level")
	}

	d := New(Options{LogFile: filepath.Join(t.TempDir(), "layer.log"), Logger: opts.Logger})
	defer d.Close()
	if d.logger != opts.Logger {
		t.Error("layer should use the configured logger")
	}
}

func TestLog_PipelineHashLine(t *testing.T) {
	path := filepath.Join(t.TempDir(), "compile_time.csv")
	d := New(Options{LogFile: path, Header: "event,pipeline_hash,time_delta"})

	if err := d.Log("pipeline_cache_hit", shaderhash.HashVector{0x1, 0x2}, "42"); err != nil {
		t.Fatalf("Log: %v", err)
	}
	if err := d.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	want := "event,pipeline_hash,time_delta\n\"[0x1,0x2]\",42\n"
	if got := readFile(t, path); got != want {
		t.Errorf("log = %q, want %q", got, want)
	}
}

func TestLogLine_EventLog(t *testing.T) {
	dir := t.TempDir()
	eventPath := filepath.Join(dir, "events.csv")
	if err := os.WriteFile(eventPath, []byte("earlier,1\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	logPath := filepath.Join(dir, "layer.log")
	clock := timing.NewManualClock(epoch)
	d := New(Options{LogFile: logPath, EventLogFile: eventPath, Clock: clock})
	if !d.HasEventLog() {
		t.Fatal("event log not opened")
	}

	ts := epoch.Add(5 * time.Nanosecond)
	if err := d.LogLine("compile_time", "a,b", ts); err != nil {
		t.Fatalf("LogLine: %v", err)
	}
	if err := d.Log("create_graphics_pipelines", shaderhash.HashVector{0xab}, "7"); err != nil {
		t.Fatalf("Log: %v", err)
	}
	if err := d.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	if got, want := readFile(t, logPath), "a,b\n\"[0xab]\",7\n"; got != want {
		t.Errorf("primary log = %q, want %q", got, want)
	}
	nanos := strconv.FormatInt(epoch.UnixNano(), 10)
	want := "earlier,1\n" +
		"compile_time," + strconv.FormatInt(ts.UnixNano(), 10) + ",a,b\n" +
		"create_graphics_pipelines," + nanos + ",\"[0xab]\",7\n"
	if got := readFile(t, eventPath); got != want {
		t.Errorf("event log = %q, want %q", got, want)
	}
}

func TestLogEventOnly(t *testing.T) {
	dir := t.TempDir()
	eventPath := filepath.Join(dir, "events.csv")
	d := New(Options{LogFile: filepath.Join(dir, "layer.log"), EventLogFile: eventPath, Clock: timing.NewManualClock(epoch)})

	if err := d.LogEventOnly("frame_present", ""); err != nil {
		t.Fatalf("LogEventOnly: %v", err)
	}
	if err := d.LogEventOnly("memory_usage", "1024,2048"); err != nil {
		t.Fatalf("LogEventOnly: %v", err)
	}
	if err := d.Close(); err != nil {
		t.Fatal(err)
	}

	nanos := strconv.FormatInt(epoch.UnixNano(), 10)
	want := "frame_present," + nanos + "\nmemory_usage," + nanos + ",1024,2048\n"
	if got := readFile(t, eventPath); got != want {
		t.Errorf("event log = %q, want %q", got, want)
	}
	if got := readFile(t, filepath.Join(dir, "layer.log")); got != "" {
		t.Errorf("primary log = %q, want empty", got)
	}
}

func TestLogEventOnly_WithoutEventLog(t *testing.T) {
	dir := t.TempDir()
	d := New(Options{LogFile: filepath.Join(dir, "layer.log")})
	if d.HasEventLog() {
		t.Fatal("event log should not be open")
	}
	if err := d.LogEventOnly("frame_present", "x"); err != nil {
		t.Errorf("LogEventOnly: %v", err)
	}
	if err := d.Close(); err != nil {
		t.Fatal(err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || entries[0].Name() != "layer.log" {
		t.Errorf("unexpected files: %v", entries)
	}
}

func TestNew_SinkFallbacks(t *testing.T) {
	core, logs := observer.New(zapcore.ErrorLevel)
	missing := filepath.Join(t.TempDir(), "no", "such", "dir")

	d := New(Options{
		LogFile:      filepath.Join(missing, "layer.log"),
		EventLogFile: filepath.Join(missing, "events.csv"),
		Logger:       zap.New(core),
	})
	defer d.Close()

	if !d.out.IsStderr() {
		t.Error("primary log should fall back to stderr")
	}
	if d.HasEventLog() {
		t.Error("event log should be disabled")
	}
	if logs.FilterMessage("failed to open event log, events will not be recorded").Len() != 1 {
		t.Errorf("missing event log diagnostic, got %v", logs.All())
	}
	primary := logs.FilterMessage("failed to open log file, output will be to stderr").All()
	if len(primary) != 1 {
		t.Fatalf("missing primary log diagnostic, got %v", logs.All())
	}
	if got := primary[0].ContextMap()["path"]; got != filepath.Join(missing, "layer.log") {
		t.Errorf("path field = %v", got)
	}
}

func TestClose(t *testing.T) {
	rec := &recordingLogger{}
	d := newTestLayer(t, Options{EventLoggers: []eventlog.EventLogger{rec}})

	if rec.started != 1 {
		t.Errorf("StartLog calls = %d, want 1", rec.started)
	}
	if err := d.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := d.Close(); err != nil {
		t.Fatalf("second Close: %v", err)
	}
	if rec.ended != 1 {
		t.Errorf("EndLog calls = %d, want 1", rec.ended)
	}

	err := d.LogLine("late", "x", epoch)
	if !stderrors.Is(err, &errors.Error{Phase: errors.PhaseSink, Kind: errors.KindClosed}) {
		t.Errorf("LogLine after Close = %v, want sink closed", err)
	}
}

func TestFlush(t *testing.T) {
	rec := &recordingLogger{}
	d := newTestLayer(t, Options{
		EventLogFile: filepath.Join(t.TempDir(), "events.csv"),
		EventLoggers: []eventlog.EventLogger{rec},
	})
	if err := d.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}
	if rec.flushed != 1 {
		t.Errorf("Flush calls = %d, want 1", rec.flushed)
	}
}

func TestLogEvent(t *testing.T) {
	a, b := &recordingLogger{}, &recordingLogger{}
	d := newTestLayer(t, Options{EventLoggers: []eventlog.EventLogger{a, nil, b}})

	e := eventlog.NewEvent("compile_time", eventlog.LevelHigh, d.Now(),
		eventlog.HashVector("hashes", shaderhash.HashVector{0x1}),
		eventlog.Duration("duration", time.Millisecond))
	if err := d.LogEvent(e); err != nil {
		t.Fatalf("LogEvent: %v", err)
	}
	for i, rec := range []*recordingLogger{a, b} {
		if len(rec.events) != 1 || rec.events[0] != e {
			t.Errorf("logger %d events = %v", i, rec.events)
		}
	}

	a.err = stderrors.New("disk full")
	if err := d.LogEvent(e); err == nil {
		t.Error("expected logger error to surface")
	}
	if len(b.events) != 2 {
		t.Error("remaining loggers must still receive the event")
	}
}

func TestGetTimeDelta(t *testing.T) {
	clock := timing.NewManualClock(epoch)
	d := newTestLayer(t, Options{Clock: clock})

	if got := d.GetTimeDelta(); got != timing.NoDelta {
		t.Errorf("first delta = %v, want NoDelta", got)
	}
	if got := d.GetTimeDelta(); got != 0 {
		t.Errorf("immediate delta = %v, want 0", got)
	}
	clock.Advance(5 * time.Millisecond)
	if got := d.GetTimeDelta(); got != 5*time.Millisecond {
		t.Errorf("delta = %v, want 5ms", got)
	}
}

func TestGetTimeDelta_Concurrent(t *testing.T) {
	d := newTestLayer(t, Options{Clock: timing.SystemClock{}})

	const workers, calls = 8, 100
	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		sentinel int
		negative int
	)
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < calls; i++ {
				delta := d.GetTimeDelta()
				mu.Lock()
				switch {
				case delta == timing.NoDelta:
					sentinel++
				case delta < 0:
					negative++
				}
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if sentinel != 1 {
		t.Errorf("NoDelta returned %d times, want 1", sentinel)
	}
	if negative != 0 {
		t.Errorf("%d negative deltas", negative)
	}
}

func TestLogLine_ConcurrentLinesStayWhole(t *testing.T) {
	dir := t.TempDir()
	logPath := filepath.Join(dir, "layer.log")
	eventPath := filepath.Join(dir, "events.csv")
	d := New(Options{LogFile: logPath, EventLogFile: eventPath})

	const workers, lines = 8, 200
	payload := strings.Repeat("x", 512)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < lines; i++ {
				line := "w" + strconv.Itoa(w) + "," + payload
				if err := d.LogLine("compile_time", line, d.Now()); err != nil {
					t.Errorf("LogLine: %v", err)
					return
				}
			}
		}(w)
	}
	wg.Wait()
	if err := d.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}

	check := func(path string, fields int) {
		got := strings.Split(strings.TrimSuffix(readFile(t, path), "\n"), "\n")
		if len(got) != workers*lines {
			t.Fatalf("%s: %d lines, want %d", path, len(got), workers*lines)
		}
		for _, l := range got {
			parts := strings.Split(l, ",")
			if len(parts) != fields || parts[len(parts)-1] != payload {
				t.Fatalf("%s: torn line %q", path, l)
			}
		}
	}
	check(logPath, 2)
	check(eventPath, 4)
	d.Close()
}

// recordingLogger is an eventlog.EventLogger that remembers calls.
type recordingLogger struct {
	mu      sync.Mutex
	events  []*eventlog.Event
	started int
	ended   int
	flushed int
	err     error
}

func (r *recordingLogger) AddEvent(e *eventlog.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
	return r.err
}

func (r *recordingLogger) StartLog() {
	r.mu.Lock()
	r.started++
	r.mu.Unlock()
}

func (r *recordingLogger) EndLog() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ended++
	return nil
}

func (r *recordingLogger) Flush() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.flushed++
	return nil
}
