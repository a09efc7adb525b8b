package logger

// LogEntry is a single line in the event log. Exactly one of the event fields
// is set.
type LogEntry struct {
	TimestampMicros int64  `json:"timestamp_micros"`
	SessionID       string `json:"session_id,omitempty"`

	RunCommand *RunCommand `json:"run_command,omitempty"`
	SpawnError *SpawnError `json:"spawn_error,omitempty"`
	RunBuiltin *RunBuiltin `json:"run_builtin,omitempty"`
	Session    *Session    `json:"session,omitempty"`
}

// LogType is implemented by every event that can be recorded.
type LogType interface {
	setOn(le *LogEntry)
}

// GetLogType returns the event held by the entry or nil if the entry is empty.
func (le *LogEntry) GetLogType() LogType {
	switch {
	case le.RunCommand != nil:
		return le.RunCommand
	case le.SpawnError != nil:
		return le.SpawnError
	case le.RunBuiltin != nil:
		return le.RunBuiltin
	case le.Session != nil:
		return le.Session
	default:
		return nil
	}
}

func (le *LogEntry) GetSessionID() string {
	if le == nil {
		return ""
	}
	return le.SessionID
}

// RunCommand is logged when an external command runs to completion.
type RunCommand struct {
	Command  []string `json:"command"`
	ExitCode int32    `json:"exit_code"`
}

func (e *RunCommand) setOn(le *LogEntry) { le.RunCommand = e }

// SpawnError is logged when an external command can't be started.
type SpawnError struct {
	Command []string `json:"command"`
	Error   string   `json:"error"`
}

func (e *SpawnError) setOn(le *LogEntry) { le.SpawnError = e }

// RunBuiltin is logged when a builtin is evaluated.
type RunBuiltin struct {
	Command []string `json:"command"`
}

func (e *RunBuiltin) setOn(le *LogEntry) { le.RunBuiltin = e }

// Session is logged when an interpreter session starts or stops.
type Session struct {
	Interactive bool   `json:"interactive"`
	Source      string `json:"source,omitempty"`
	Closed      bool   `json:"closed,omitempty"`
}

func (e *Session) setOn(le *LogEntry) { le.Session = e }
