package common

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"sort"
	"strings"
)

var levelRank = map[string]int{"debug": 0, "info": 1, "warn": 2, "error": 3}

// StdLogger writes planner events through the standard log package.
type StdLogger struct {
	logger   *log.Logger
	minLevel int
	json     bool
}

// NewStdLogger creates a logger filtering below minLevel ("debug",
// "info", "warn", "error"). format is "text" or "json".
func NewStdLogger(out io.Writer, minLevel, format string) *StdLogger {
	rank, ok := levelRank[strings.ToLower(minLevel)]
	if !ok {
		rank = levelRank["info"]
	}
	return &StdLogger{
		logger:   log.New(out, "", log.LstdFlags),
		minLevel: rank,
		json:     format == "json",
	}
}

func (l *StdLogger) Log(level, message string, metadata map[string]interface{}) {
	rank, ok := levelRank[strings.ToLower(level)]
	if !ok {
		rank = levelRank["info"]
	}
	if rank < l.minLevel {
		return
	}

	if l.json {
		entry := map[string]interface{}{"level": level, "message": message}
		for key, value := range metadata {
			entry[key] = value
		}
		if encoded, err := json.Marshal(entry); err == nil {
			l.logger.Print(string(encoded))
		}
		return
	}

	keys := make([]string, 0, len(metadata))
	for key := range metadata {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var builder strings.Builder
	fmt.Fprintf(&builder, "[%s] %s", strings.ToUpper(level), message)
	for _, key := range keys {
		fmt.Fprintf(&builder, " %s=%v", key, metadata[key])
	}
	l.logger.Print(builder.String())
}
