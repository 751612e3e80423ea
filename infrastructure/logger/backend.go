package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime/debug"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/jrick/logrotate/rotator"
	"github.com/pkg/errors"
)

// normalLogSize is the initial capacity of a formatted log line
const normalLogSize = 512

// Flags that add the logging callsite to every line
const (
	// LogFlagLongFile adds the full path and line, e.g. /a/b/c/main.go:123
	LogFlagLongFile uint32 = 1 << iota

	// LogFlagShortFile adds the file name and line, e.g. main.go:123. It
	// wins over LogFlagLongFile.
	LogFlagShortFile
)

// defaultFlags is read from the comma separated LOGFLAGS environment
// variable, e.g. LOGFLAGS=shortfile. It is a variable initializer rather
// than init() because BackendLog is built from it.
var defaultFlags = flagsFromEnv(os.Getenv("LOGFLAGS"))

func flagsFromEnv(value string) uint32 {
	var flags uint32
	for _, name := range strings.Split(value, ",") {
		switch strings.TrimSpace(name) {
		case "longfile":
			flags |= LogFlagLongFile
		case "shortfile":
			flags |= LogFlagShortFile
		}
	}
	return flags
}

// Log files roll over at 100 MB and the last 8 are kept unless the caller
// asks for something else
const (
	defaultThresholdKB = 100 * 1000
	defaultMaxRolls    = 8
)

// leveledWriter receives every entry at or above minLevel
type leveledWriter struct {
	io.WriteCloser
	minLevel Level
}

// Backend serializes the entries of all subsystem loggers into its writers
// from a single goroutine. Writers are added before Run and closed by Close.
type Backend struct {
	flag    uint32
	running uint32
	writers []leveledWriter
	entries chan logEntry

	// done is held by the writing goroutine until entries is drained
	done sync.Mutex
}

// NewBackendWithFlags creates a backend that ignores LOGFLAGS
func NewBackendWithFlags(flags uint32) *Backend {
	return &Backend{flag: flags, entries: make(chan logEntry)}
}

// NewBackend creates a backend configured from LOGFLAGS
func NewBackend() *Backend {
	return NewBackendWithFlags(defaultFlags)
}

func (b *Backend) addWriter(writer io.WriteCloser, minLevel Level) error {
	if b.IsRunning() {
		return errors.New("The logger is already running")
	}
	b.writers = append(b.writers, leveledWriter{WriteCloser: writer, minLevel: minLevel})
	return nil
}

// AddLogWriter sends entries at or above logLevel to logWriter
func (b *Backend) AddLogWriter(logWriter io.WriteCloser, logLevel Level) error {
	return b.addWriter(logWriter, logLevel)
}

// AddLogFile sends entries at or above logLevel to a rotated logFile,
// creating its directory when needed
func (b *Backend) AddLogFile(logFile string, logLevel Level) error {
	return b.AddLogFileWithCustomRotator(logFile, logLevel, defaultThresholdKB, defaultMaxRolls)
}

// AddLogFileWithCustomRotator is AddLogFile with explicit rotation: the file
// rolls over at thresholdKB and maxRolls old files are kept
func (b *Backend) AddLogFileWithCustomRotator(logFile string, logLevel Level, thresholdKB int64, maxRolls int) error {
	if b.IsRunning() {
		return errors.New("The logger is already running")
	}
	if logDir := filepath.Dir(logFile); logDir != "." {
		err := os.MkdirAll(logDir, 0700)
		if err != nil {
			return errors.Errorf("failed to create log directory: %+v", err)
		}
	}
	fileRotator, err := rotator.New(logFile, thresholdKB, false, maxRolls)
	if err != nil {
		return errors.Errorf("failed to create file rotator: %s", err)
	}
	return b.addWriter(fileRotator, logLevel)
}

// Run starts the writing goroutine. It fails when called twice.
func (b *Backend) Run() error {
	if !atomic.CompareAndSwapUint32(&b.running, 0, 1) {
		return errors.New("The logger is already running")
	}
	// Taken here so that a Close right after Run waits for the drain
	b.done.Lock()
	go b.drain()
	return nil
}

func (b *Backend) drain() {
	defer b.done.Unlock()
	defer atomic.StoreUint32(&b.running, 0)
	defer func() {
		if err := recover(); err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "Fatal error in logger.Backend goroutine: %+v\n", err)
			_, _ = fmt.Fprintf(os.Stderr, "Goroutine stacktrace: %s\n", debug.Stack())
		}
	}()

	for entry := range b.entries {
		for _, writer := range b.writers {
			if entry.level >= writer.minLevel {
				_, _ = writer.Write(entry.log)
			}
		}
	}
}

// IsRunning reports whether Run was called and the backend was not closed
func (b *Backend) IsRunning() bool {
	return atomic.LoadUint32(&b.running) != 0
}

// Close flushes the pending entries and closes all writers
func (b *Backend) Close() {
	close(b.entries)
	b.done.Lock()
	defer b.done.Unlock()
	for _, writer := range b.writers {
		_ = writer.Close()
	}
}

// Logger creates the logger of subsystemTag. It is off until SetLevel is
// called.
func (b *Backend) Logger(subsystemTag string) *Logger {
	return &Logger{LevelOff, subsystemTag, b, b.entries}
}
