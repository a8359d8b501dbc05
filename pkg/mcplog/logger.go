// Package mcplog keeps a journal of MCP tool calls as JSON lines, one per
// call, so a session against the showcase store can be replayed or audited.
package mcplog

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
)

// argLimit bounds journaled string arguments. Longer values are recorded
// by length under "<key>_len".
const argLimit = 64

// Call is one journal line.
type Call struct {
	At            time.Time      `json:"ts"`
	Tool          string         `json:"tool"`
	Args          map[string]any `json:"params"`
	DurationMs    int64          `json:"duration_ms"`
	ResponseBytes int            `json:"response_bytes"`
	// RevisionBefore and RevisionAfter bracket the call.
	RevisionBefore uint64 `json:"revision_before"`
	RevisionAfter  uint64 `json:"revision_after"`
	ToolError      bool   `json:"tool_error,omitempty"`
	Error          string `json:"error,omitempty"`
}

// Changed reports whether the call moved the store revision.
func (c Call) Changed() bool {
	return c.RevisionAfter != c.RevisionBefore
}

// Begin starts a Call for req at the current clock and store revision.
func Begin(req mcp.CallToolRequest, revision uint64) *Call {
	return &Call{
		At:             Now().UTC(),
		Tool:           req.Params.Name,
		Args:           trimArgs(req.GetArguments()),
		RevisionBefore: revision,
	}
}

// End fills in the outcome of the handler.
func (c *Call) End(result *mcp.CallToolResult, err error, revision uint64) {
	c.DurationMs = Now().Sub(c.At).Milliseconds()
	c.RevisionAfter = revision
	if result != nil {
		c.ToolError = result.IsError
		if b, merr := json.Marshal(result.Content); merr == nil {
			c.ResponseBytes = len(b)
		}
	}
	if err != nil {
		c.Error = err.Error()
	}
}

func trimArgs(args map[string]any) map[string]any {
	out := make(map[string]any, len(args))
	for k, v := range args {
		if s, ok := v.(string); ok && len(s) > argLimit {
			out[k+"_len"] = len(s)
			continue
		}
		out[k] = v
	}
	return out
}

// Journal appends calls to a file. It is safe for concurrent use.
type Journal struct {
	mu  sync.Mutex
	f   *os.File
	enc *json.Encoder
}

// Open opens path for appending and creates missing parent directories.
// An empty path yields a nil Journal, which records nothing.
func Open(path string) (*Journal, error) {
	if path == "" {
		return nil, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("mcplog: create journal directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("mcplog: open journal: %w", err)
	}
	return &Journal{f: f, enc: json.NewEncoder(f)}, nil
}

// Record appends c. A nil Journal discards it.
func (j *Journal) Record(c *Call) error {
	if j == nil {
		return nil
	}
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.enc.Encode(c)
}

func (j *Journal) Close() error {
	if j == nil {
		return nil
	}
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.f.Close()
}

// ReadCalls decodes a journal.
func ReadCalls(r io.Reader) ([]Call, error) {
	var calls []Call
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)
	for line := 1; sc.Scan(); line++ {
		if len(sc.Bytes()) == 0 {
			continue
		}
		var c Call
		if err := json.Unmarshal(sc.Bytes(), &c); err != nil {
			return nil, fmt.Errorf("mcplog: line %d: %w", line, err)
		}
		calls = append(calls, c)
	}
	return calls, sc.Err()
}

// ReadFile decodes the journal at path.
func ReadFile(path string) ([]Call, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadCalls(f)
}

// Now is the journal clock. Tests replace it.
var Now = time.Now
