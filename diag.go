package dwgbits

import (
	"fmt"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Severity of a diagnostic event.
type Severity uint8

const (
	SeverityDebug Severity = iota
	SeverityInfo
	SeverityWarning
	SeverityError
)

func (s Severity) String() string {
	switch s {
	case SeverityDebug:
		return "debug"
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	}
	return fmt.Sprintf("severity(%d)", uint8(s))
}

// Code classifies what went wrong.
type Code uint8

const (
	CodeNone Code = iota
	CodeBufferOverflow
	CodeBufferUnderflow
	CodeOutOfBounds
	CodeInvalidHandle
	CodeInvalidPrefix
	CodeInvalidValue
	CodeTruncated
	CodeCRCMismatch
	CodeOutOfMemory
	CodeHeuristic
)

var codeNames = [...]string{
	CodeNone:            "none",
	CodeBufferOverflow:  "buffer_overflow",
	CodeBufferUnderflow: "buffer_underflow",
	CodeOutOfBounds:     "out_of_bounds",
	CodeInvalidHandle:   "invalid_handle",
	CodeInvalidPrefix:   "invalid_prefix",
	CodeInvalidValue:    "invalid_value",
	CodeTruncated:       "truncated",
	CodeCRCMismatch:     "crc_mismatch",
	CodeOutOfMemory:     "out_of_memory",
	CodeHeuristic:       "heuristic",
}

func (c Code) String() string {
	if int(c) < len(codeNames) {
		return codeNames[c]
	}
	return fmt.Sprintf("code(%d)", uint8(c))
}

func (c Code) sentinel() error {
	switch c {
	case CodeBufferOverflow:
		return ErrBufferOverflow
	case CodeBufferUnderflow:
		return ErrBufferUnderflow
	case CodeOutOfBounds:
		return ErrOutOfBounds
	case CodeInvalidHandle:
		return ErrInvalidHandle
	case CodeInvalidPrefix:
		return ErrInvalidPrefix
	case CodeInvalidValue:
		return ErrInvalidValue
	case CodeTruncated:
		return ErrTruncated
	case CodeCRCMismatch:
		return ErrCRCMismatch
	case CodeOutOfMemory:
		return ErrOutOfMemory
	}
	return nil
}

// Event is one diagnostic raised by a primitive.
type Event struct {
	Severity Severity
	Code     Code
	Op       string // primitive name, e.g. "BS" or "seek"
	Byte     int
	Bit      uint8
	Msg      string
}

// Err converts e into an error that matches the sentinel of its code with
// errors.Is. Events without a sentinel (heuristic notes) return a plain error.
func (e Event) Err() error {
	if s := e.Code.sentinel(); s != nil {
		return errors.Wrapf(s, "%s at %d.%d: %s", e.Op, e.Byte, e.Bit, e.Msg)
	}
	return errors.Errorf("dwgbits: %s at %d.%d: %s", e.Op, e.Byte, e.Bit, e.Msg)
}

func (e Event) String() string {
	return fmt.Sprintf("%s %s %s at %d.%d: %s", e.Severity, e.Code, e.Op, e.Byte, e.Bit, e.Msg)
}

// Recorder receives diagnostic events. Each cursor carries its own recorder.
type Recorder interface {
	Record(ev Event)
}

// RecorderFunc adapts a function to Recorder.
type RecorderFunc func(ev Event)

func (f RecorderFunc) Record(ev Event) { f(ev) }

type zapRecorder struct {
	log *zap.Logger
}

// NewZapRecorder logs events through log. Severities map onto zap levels.
func NewZapRecorder(log *zap.Logger) Recorder {
	if log == nil {
		log = zap.NewNop()
	}
	return &zapRecorder{log: log.Named("dwgbits")}
}

func (r *zapRecorder) Record(ev Event) {
	lvl := zapcore.DebugLevel
	switch ev.Severity {
	case SeverityInfo:
		lvl = zapcore.InfoLevel
	case SeverityWarning:
		lvl = zapcore.WarnLevel
	case SeverityError:
		lvl = zapcore.ErrorLevel
	}
	if ce := r.log.Check(lvl, ev.Msg); ce != nil {
		ce.Write(
			zap.String("op", ev.Op),
			zap.Stringer("code", ev.Code),
			zap.Int("byte", ev.Byte),
			zap.Uint8("bit", ev.Bit),
		)
	}
}

var nopRecorder = NewZapRecorder(zap.NewNop())

// Strictness decides what happens once errors pile up on a cursor.
type Strictness struct {
	limit int
}

// DefaultAbortLimit is the error count AbortAfter(0) tolerates.
const DefaultAbortLimit = 200

// Lenient never aborts. Errors are recorded and decoding continues with
// sentinel values.
var Lenient = Strictness{}

// AbortAfter panics with *AbortError once more than n errors were recorded.
// n <= 0 selects DefaultAbortLimit.
func AbortAfter(n int) Strictness {
	if n <= 0 {
		n = DefaultAbortLimit
	}
	return Strictness{limit: n}
}

// Limit returns the abort threshold, 0 when lenient.
func (s Strictness) Limit() int { return s.limit }

// AbortError is the panic value of a cursor that exceeded its error budget
// or failed to allocate.
type AbortError struct {
	Event    Event
	Errors   int
	Snapshot []byte // zstd image of the cursor, see Restore
}

func (e *AbortError) Error() string {
	return fmt.Sprintf("dwgbits: aborted after %d errors: %s", e.Errors, e.Event)
}

func (e *AbortError) Unwrap() error { return e.Event.Code.sentinel() }
