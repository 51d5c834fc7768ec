// Package transcript persists run events as an append-only JSONL file,
// one file per run, one record per line.
package transcript

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"m2demo/pkg/types"
)

// Kind tags the event a Record captures.
type Kind string

const (
	KindAssistant  Kind = "assistant"
	KindToolResult Kind = "tool_result"
	KindCompletion Kind = "completion"
)

// Record is one transcript event. Fields are kind-specific: assistant
// records carry thinking/content/tool_calls, tool_result records carry
// tool/result, completion records carry content/usage.
type Record struct {
	Step      int              `json:"step"`
	Type      Kind             `json:"type"`
	Thinking  string           `json:"thinking,omitempty"`
	Content   string           `json:"content,omitempty"`
	ToolCalls []types.ToolCall `json:"tool_calls,omitempty"`
	Tool      string           `json:"tool,omitempty"`
	Result    string           `json:"result,omitempty"`
	Usage     *types.Usage     `json:"usage,omitempty"`
}

// Writer is an append-only sink for transcript records.
type Writer interface {
	Write(rec Record) error
}

// FileWriter appends records to a per-run JSONL file. The file is opened
// and closed around each write so no handle is held across the blocking
// network calls between events.
type FileWriter struct {
	runID string
	path  string
}

// NewFileWriter prepares a transcript file under dir. The directory is
// created if missing; the file name is derived from the UTC start time
// plus a short random suffix so two runs never share a file.
func NewFileWriter(dir string) (*FileWriter, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create log directory %s: %w", dir, err)
	}

	runID := time.Now().UTC().Format("20060102-150405") + "-" + uuid.NewString()[:8]
	return &FileWriter{
		runID: runID,
		path:  filepath.Join(dir, runID+".jsonl"),
	}, nil
}

// RunID returns the identifier the transcript file is named after.
func (w *FileWriter) RunID() string { return w.runID }

// Path returns the transcript file path.
func (w *FileWriter) Path() string { return w.path }

// Write appends one record as a single JSON line.
func (w *FileWriter) Write(rec Record) error {
	f, err := os.OpenFile(w.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open transcript %s: %w", w.path, err)
	}
	defer f.Close()

	if err := json.NewEncoder(f).Encode(rec); err != nil {
		return fmt.Errorf("failed to append transcript record: %w", err)
	}
	return nil
}

// ReadFile loads all records from a transcript file, in file order.
func ReadFile(path string) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var records []Record
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var rec Record
		if err := json.Unmarshal(line, &rec); err != nil {
			return nil, fmt.Errorf("malformed transcript line: %w", err)
		}
		records = append(records, rec)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return records, nil
}
