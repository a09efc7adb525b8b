package logger

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"
)

// ReadJSONLinesLog parses a newline delimited JSON log.
func ReadJSONLinesLog(r io.Reader, handler func(le *LogEntry)) error {
	decoder := json.NewDecoder(r)
	for decoder.More() {
		var logEntry LogEntry
		if err := decoder.Decode(&logEntry); err != nil {
			return err
		}

		handler(&logEntry)
	}
	return nil
}

// Report holds statistics about the logged events.
type Report struct {
	LogEntries     int        `json:"log_entries"`
	InvalidEntries StrCounter `json:"unknown_log_entries,omitempty"`

	RunCommand RunCommandReport `json:"run_command_report"`
	SpawnError SpawnErrorReport `json:"spawn_error_report"`
	RunBuiltin RunBuiltinReport `json:"run_builtin_report"`
	Session    SessionReport    `json:"session_report"`
}

func (r *Report) Update(le *LogEntry) {
	r.LogEntries++

	switch event := le.GetLogType().(type) {
	case *RunCommand:
		r.RunCommand.update(event)
	case *SpawnError:
		r.SpawnError.update(event)
	case *RunBuiltin:
		r.RunBuiltin.update(event)
	case *Session:
		r.Session.update(event)
	default:
		r.InvalidEntries.Increment(fmt.Sprintf("%T", event))
	}
}

type RunCommandReport struct {
	// Name of the command and the number of times it ran.
	CommandNames StrCounter `json:"command_names"`
	// Names of commands that exited non-zero.
	Failures StrCounter `json:"failures"`
	// Exit codes seen.
	ExitCodes StrCounter `json:"exit_codes"`
}

func (r *RunCommandReport) update(rc *RunCommand) {
	if len(rc.Command) == 0 {
		return
	}
	r.CommandNames.Increment(rc.Command[0])
	r.ExitCodes.Increment(fmt.Sprintf("%d", rc.ExitCode))
	if rc.ExitCode != 0 {
		r.Failures.Increment(rc.Command[0])
	}
}

type SpawnErrorReport struct {
	CommandNames *PathCounter `json:"command_names"`
}

func (r *SpawnErrorReport) update(se *SpawnError) {
	if r.CommandNames == nil {
		r.CommandNames = NewPathCounter("command", "error")
	}
	if len(se.Command) > 0 {
		r.CommandNames.Increment(se.Command[0], se.Error)
	}
}

type RunBuiltinReport struct {
	CommandNames StrCounter `json:"command_names"`
}

func (r *RunBuiltinReport) update(rb *RunBuiltin) {
	if len(rb.Command) > 0 {
		r.CommandNames.Increment(rb.Command[0])
	}
}

type SessionReport struct {
	Started     int        `json:"started"`
	Closed      int        `json:"closed"`
	Interactive int        `json:"interactive"`
	Sources     StrCounter `json:"sources"`
}

func (r *SessionReport) update(s *Session) {
	if s.Closed {
		r.Closed++
		return
	}

	r.Started++
	if s.Interactive {
		r.Interactive++
	}
	if s.Source != "" {
		r.Sources.Increment(s.Source)
	}
}

// InteractionReport groups the commands run by each session.
type InteractionReport struct {
	// Map of sessionID -> commands
	interactions map[string][]string
}

func (i *InteractionReport) init() {
	if i.interactions == nil {
		i.interactions = make(map[string][]string)
	}
}

// MarshalJSON implements custom JSON marshaler.
func (i *InteractionReport) MarshalJSON() ([]byte, error) {
	i.init()

	return json.Marshal(i.interactions)
}

// Commands returns the commands run by a session in order.
func (i *InteractionReport) Commands(sessionID string) []string {
	i.init()
	return i.interactions[sessionID]
}

func (i *InteractionReport) Update(le *LogEntry) {
	i.init()

	sessionID := le.GetSessionID()
	if sessionID == "" {
		return
	}

	var cmd []string
	switch event := le.GetLogType().(type) {
	case *RunCommand:
		cmd = event.Command
	case *SpawnError:
		cmd = event.Command
	case *RunBuiltin:
		cmd = event.Command
	default:
		return
	}

	i.interactions[sessionID] = append(i.interactions[sessionID], strings.Join(cmd, " "))
}

// StrCounter counts the number of strings seen.
type StrCounter struct {
	internal map[string]int
}

// Increment adds one to the given key.
func (s *StrCounter) Increment(toAdd string) {
	if s.internal == nil {
		s.internal = make(map[string]int)
	}

	s.internal[toAdd]++
}

// Get returns the count for the given key.
func (s *StrCounter) Get(key string) int {
	return s.internal[key]
}

// MarshalJSON implements custom JSON marshaler.
func (s StrCounter) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.internal)
}

func NewPathCounter(cols ...string) *PathCounter {
	return &PathCounter{
		cols:     cols,
		internal: make(map[string]int),
	}
}

// PathCounter counts the number of tuples seen.
type PathCounter struct {
	cols     []string
	internal map[string]int
}

// Increment adds one to the given key.
func (ctr *PathCounter) Increment(toAdd ...string) {
	if len(toAdd) != len(ctr.cols) {
		panic("wrong number of columns to add")
	}

	ctr.internal[toKey(toAdd...)]++
}

// Get returns the count for the given tuple.
func (ctr *PathCounter) Get(vals ...string) int {
	if ctr == nil {
		return 0
	}
	return ctr.internal[toKey(vals...)]
}

// MarshalJSON implements custom JSON marshaler.
func (ctr *PathCounter) MarshalJSON() ([]byte, error) {
	type Count struct {
		Count  int               `json:"count"`
		Fields map[string]string `json:"event"`
		Path   string            `json:"-"`
	}

	var out []Count
	for k, v := range ctr.internal {
		count := Count{
			Count:  v,
			Path:   k,
			Fields: make(map[string]string),
		}

		splitPath := fromKey(k)
		for colNum, colVal := range ctr.cols {
			count.Fields[colVal] = splitPath[colNum]
		}

		out = append(out, count)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Count == out[j].Count {
			return out[i].Path < out[j].Path
		}
		return out[i].Count > out[j].Count
	})

	return json.Marshal(out)
}

func toKey(vals ...string) string {
	key, _ := json.Marshal(vals)
	return string(key)
}

func fromKey(key string) (out []string) {
	json.Unmarshal([]byte(key), &out)
	return
}
