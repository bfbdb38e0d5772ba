// FILE: arsenic/src/internal/format/json.go
package format

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Payload is the body posted to the remote HTTP collector.
type Payload struct {
	APIKey      string  `json:"apiKey"`
	Message     string  `json:"message"`
	Memory      uint64  `json:"memory"`
	MemoryTotal uint64  `json:"memoryTotal"`
	CPU         float64 `json:"cpu"`
	Level       string  `json:"level"`
	Hostname    string  `json:"hostname"`
	Stack       string  `json:"stack"`
	PID         int     `json:"pid"`
	Tag         string  `json:"tag"`
}

type stackFrame struct {
	FunctionName string `json:"functionName"`
	FileName     string `json:"fileName"`
	Line         int    `json:"line"`
}

// JSONFormatter produces the HTTP collector payload.
type JSONFormatter struct {
	apiKey string
}

// NewJSONFormatter creates a JSON payload formatter that stamps apiKey on every payload.
func NewJSONFormatter(apiKey string) *JSONFormatter {
	return &JSONFormatter{apiKey: apiKey}
}

// Build assembles the payload for a record.
func (f *JSONFormatter) Build(rec *Record) (*Payload, error) {
	window := rec.Window()
	frames := make([]stackFrame, 0, len(window))
	for _, fr := range window {
		frames = append(frames, stackFrame{
			FunctionName: fr.FunctionName(),
			FileName:     fr.File,
			Line:         fr.Line,
		})
	}

	stack, err := json.Marshal(frames)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal stack: %w", err)
	}

	return &Payload{
		APIKey:      f.apiKey,
		Message:     rec.Message,
		Memory:      rec.Snapshot.HeapUsed,
		MemoryTotal: rec.Snapshot.MemoryTotal,
		CPU:         rec.Snapshot.Load,
		Level:       rec.Entry.Level.String(),
		Hostname:    rec.Hostname,
		Stack:       string(stack),
		PID:         rec.PID,
		Tag:         strings.Join(rec.Entry.Tags, " "),
	}, nil
}

// Format transforms a record into the JSON body.
func (f *JSONFormatter) Format(rec *Record) ([]byte, error) {
	payload, err := f.Build(rec)
	if err != nil {
		return nil, err
	}

	result, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal JSON: %w", err)
	}
	return result, nil
}

// Name returns the formatter's type name.
func (f *JSONFormatter) Name() string {
	return "json"
}
