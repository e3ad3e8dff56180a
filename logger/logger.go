package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"
)

// Logger is the sink every component reports through. Arguments after msg
// are alternating key/value pairs.
type Logger interface {
	Info(msg string, args ...interface{})
	Debug(msg string, args ...interface{})
	Warn(msg string, args ...interface{})
	Error(msg string, args ...interface{})
	Success(msg string, args ...interface{})
}

// StdLogger adapts a logrus entry to Logger.
type StdLogger struct {
	entry *logrus.Entry
}

// New wraps l. Entries carry the run field when runID is non-empty.
func New(l *logrus.Logger, runID string) *StdLogger {
	entry := logrus.NewEntry(l)
	if runID != "" {
		entry = entry.WithField("run", runID)
	}
	return &StdLogger{entry: entry}
}

func (l *StdLogger) Info(msg string, args ...interface{}) {
	l.entry.WithFields(fields(args)).Info(msg)
}

func (l *StdLogger) Debug(msg string, args ...interface{}) {
	l.entry.WithFields(fields(args)).Debug(msg)
}

func (l *StdLogger) Warn(msg string, args ...interface{}) {
	l.entry.WithFields(fields(args)).Warn(msg)
}

func (l *StdLogger) Error(msg string, args ...interface{}) {
	l.entry.WithFields(fields(args)).Error(msg)
}

// Success is logged at info level with status=success.
func (l *StdLogger) Success(msg string, args ...interface{}) {
	l.entry.WithFields(fields(args)).WithField("status", "success").Info(msg)
}

func fields(args []interface{}) logrus.Fields {
	f := logrus.Fields{}
	for i := 0; i < len(args); i += 2 {
		key, ok := args[i].(string)
		if !ok {
			key = fmt.Sprint(args[i])
		}
		if i+1 >= len(args) {
			f["!BADKEY"] = args[i]
			break
		}
		f[key] = args[i+1]
	}
	return f
}

// Options configures a FileLogger.
type Options struct {
	Dir     string
	Debug   bool
	RunID   string
	Console io.Writer
	Now     func() time.Time
}

// FileLogger mirrors every entry to the console and to a per-run log file.
type FileLogger struct {
	*StdLogger
	file *os.File
	path string
}

// NewFile creates Dir if needed and opens account_management_<timestamp>.log
// inside it.
func NewFile(opts Options) (*FileLogger, error) {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Console == nil {
		opts.Console = os.Stdout
	}

	if err := os.MkdirAll(opts.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}

	name := fmt.Sprintf("account_management_%s.log", opts.Now().Format("20060102_150405"))
	path := filepath.Join(opts.Dir, name)

	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}

	l := logrus.New()
	l.SetOutput(io.MultiWriter(opts.Console, file))
	l.SetFormatter(&logrus.TextFormatter{
		DisableColors:   true,
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})
	if opts.Debug {
		l.SetLevel(logrus.DebugLevel)
	} else {
		l.SetLevel(logrus.InfoLevel)
	}

	return &FileLogger{
		StdLogger: New(l, opts.RunID),
		file:      file,
		path:      path,
	}, nil
}

// Path returns the log file location.
func (l *FileLogger) Path() string {
	return l.path
}

func (l *FileLogger) Close() error {
	return l.file.Close()
}
