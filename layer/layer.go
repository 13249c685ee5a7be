package layer

import (
	"sync"
	"time"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/wippyai/vk-perflayers/config"
	"github.com/wippyai/vk-perflayers/eventlog"
	"github.com/wippyai/vk-perflayers/shaderhash"
	"github.com/wippyai/vk-perflayers/timing"
)

// Options configures a LayerData.
type Options struct {
	// LogFile is the primary log. Empty means stderr. A file that cannot be
	// opened also falls back to stderr.
	LogFile string
	// Header is written as the first line of the primary log when non-empty.
	Header string
	// EventLogFile is the secondary event log, opened for append so that
	// several layers can share it. Empty disables it.
	EventLogFile string
	// Clock supplies timestamps. Defaults to timing.SystemClock.
	Clock timing.Clock
	// Logger receives diagnostics. Defaults to the package Logger.
	Logger *zap.Logger
	// EventLoggers receive every event passed to LogEvent.
	EventLoggers []eventlog.EventLogger
}

// DefaultOptions returns options populated from the environment and the
// optional configuration file.
func DefaultOptions() Options {
	cfg, err := config.Load()
	if err != nil {
		Logger().Warn("configuration not loaded, using environment only", zap.Error(err))
		cfg = config.FromEnv()
	}
	return OptionsFromConfig(cfg)
}

// OptionsFromConfig maps a loaded configuration onto Options. Debug
// configurations get a development logger for diagnostics.
func OptionsFromConfig(cfg config.Config) Options {
	opts := Options{
		LogFile:      cfg.LogFile,
		EventLogFile: cfg.EventLogFile,
	}
	if cfg.Debug {
		l, err := cfg.ZapLogger()
		if err != nil {
			Logger().Warn("debug logger not built", zap.Error(err))
		} else {
			opts.Logger = l
		}
	}
	return opts
}

// LayerData is the state shared by every intercepted entry point of one
// layer: dispatch tables, shader hashes and the log sinks.
//
// It is safe for concurrent use. Each registry has its own lock so that
// instance, device and shader traffic do not contend.
type LayerData struct {
	instances *instanceRegistry
	devices   *deviceRegistry
	shaders   *shaderhash.Table
	pipelines *pipelineRegistry

	out      *eventlog.Sink
	eventLog *eventlog.Sink // nil when no event log is configured
	events   *eventlog.Broadcast

	clock  timing.Clock
	logger *zap.Logger

	timeMu      sync.Mutex
	lastLogTime time.Time
	hasLogTime  bool

	closeOnce sync.Once
	closeErr  error
}

// New creates the layer state and opens its sinks. Sink failures are not
// fatal: the primary log falls back to stderr and a missing event log is
// reported and skipped.
func New(opts Options) *LayerData {
	d := &LayerData{
		instances: newInstanceRegistry(),
		devices:   newDeviceRegistry(),
		shaders:   shaderhash.NewTable(),
		pipelines: newPipelineRegistry(),
		events:    eventlog.NewBroadcast(opts.EventLoggers...),
		clock:     opts.Clock,
		logger:    opts.Logger,
	}
	if d.clock == nil {
		d.clock = timing.SystemClock{}
	}
	if d.logger == nil {
		d.logger = Logger()
	}

	d.out = eventlog.NewStderrSink()
	if opts.LogFile != "" {
		s, err := eventlog.OpenFileSink(opts.LogFile, eventlog.Truncate)
		if err != nil {
			d.logger.Error("failed to open log file, output will be to stderr",
				zap.String("path", opts.LogFile),
				zap.Error(err))
		} else {
			d.out = s
		}
	}
	if opts.Header != "" {
		if err := d.out.WriteLine(opts.Header); err != nil {
			d.logger.Error("failed to write log header", zap.String("sink", d.out.Name()), zap.Error(err))
		}
	}

	if opts.EventLogFile != "" {
		s, err := eventlog.OpenFileSink(opts.EventLogFile, eventlog.Append)
		if err != nil {
			d.logger.Error("failed to open event log, events will not be recorded",
				zap.String("path", opts.EventLogFile),
				zap.Error(err))
		} else {
			d.eventLog = s
		}
	}

	d.events.StartLog()
	return d
}

// HasEventLog reports whether a secondary event log is open.
func (d *LayerData) HasEventLog() bool { return d.eventLog != nil }

// Flush forces every sink and event logger to write out buffered output.
func (d *LayerData) Flush() error {
	err := d.out.Flush()
	if d.eventLog != nil {
		err = multierr.Append(err, d.eventLog.Flush())
	}
	return multierr.Append(err, d.events.Flush())
}

// Close ends every event logger and closes the sinks. Stderr stays open.
// Calling Close more than once returns the first result.
func (d *LayerData) Close() error {
	d.closeOnce.Do(func() {
		err := d.events.EndLog()
		err = multierr.Append(err, d.out.Close())
		if d.eventLog != nil {
			err = multierr.Append(err, d.eventLog.Close())
		}
		d.closeErr = err
	})
	return d.closeErr
}
