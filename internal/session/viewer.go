package session

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// SessionFile represents a session log file on disk.
type SessionFile struct {
	Path      string
	Name      string
	Size      int64
	ModTime   time.Time
	NumEvents int
}

// ListSessions finds .jsonl session log files in dir.
func ListSessions(dir string) ([]SessionFile, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading session directory: %w", err)
	}

	var files []SessionFile
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if !strings.HasSuffix(e.Name(), "-session.jsonl") {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}

		path := filepath.Join(dir, e.Name())
		n, _ := countLines(path) //nolint:errcheck
		files = append(files, SessionFile{
			Path:      path,
			Name:      e.Name(),
			Size:      info.Size(),
			ModTime:   info.ModTime(),
			NumEvents: n,
		})
	}

	sort.Slice(files, func(i, j int) bool {
		return files[i].ModTime.After(files[j].ModTime)
	})

	return files, nil
}

func countLines(path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close() //nolint:errcheck
	n := 0
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		n++
	}
	return n, scanner.Err()
}

// ReadEvents parses all events from a session log file.
func ReadEvents(path string) ([]Event, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening session file: %w", err)
	}
	defer f.Close() //nolint:errcheck

	var events []Event
	scanner := bufio.NewScanner(f)
	// Increase buffer for large lines.
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		var ev Event
		if err := json.Unmarshal(scanner.Bytes(), &ev); err != nil {
			continue // skip malformed lines
		}
		events = append(events, ev)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading session file: %w", err)
	}
	return events, nil
}

// RenderTimeline writes a human-readable session timeline to w.
//
//nolint:errcheck // display-only writes; errors are not actionable
func RenderTimeline(w io.Writer, events []Event) {
	if len(events) == 0 {
		fmt.Fprintln(w, "No events found.")
		return
	}

	fmt.Fprintln(w, "═══════════════════════════════════════════════════════")
	fmt.Fprintln(w, " SESSION TIMELINE")
	fmt.Fprintln(w, "═══════════════════════════════════════════════════════")
	fmt.Fprintln(w)

	start := events[0].Timestamp
	for _, ev := range events {
		elapsed := ev.Timestamp.Sub(start)
		ts := formatDuration(elapsed)

		switch ev.Type {
		case EventSessionStart:
			mode, _ := ev.Data["mode"].(string) //nolint:errcheck
			fmt.Fprintf(w, "[%s] 🚀 Session started  mode=%s\n", ts, mode)

		case EventSubmitted:
			title, _ := ev.Data["idea_title"].(string) //nolint:errcheck
			jobID, _ := ev.Data["job_id"].(string)     //nolint:errcheck
			fmt.Fprintf(w, "[%s] ▶  Submitted %q  job=%s\n", ts, title, jobID)

		case EventPhaseChange:
			from, _ := ev.Data["from"].(string) //nolint:errcheck
			to, _ := ev.Data["to"].(string)     //nolint:errcheck
			turns := jsonNumber(ev.Data["transcript_len"])
			fmt.Fprintf(w, "[%s]    %s → %s  (%d transcript entries)\n", ts, from, to, turns)

		case EventVerdictReceived:
			decision, _ := ev.Data["decision"].(string) //nolint:errcheck
			score := jsonNumber(ev.Data["score"])
			icon := "✓"
			if decision == "kill" {
				icon = "✗"
			}
			fmt.Fprintf(w, "[%s] %s  Verdict: %s  score=%d\n", ts, icon, decision, score)

		case EventInterview:
			persona, _ := ev.Data["persona_id"].(string) //nolint:errcheck
			fmt.Fprintf(w, "[%s] 🎤 Interview with %s\n", ts, persona)

		case EventRebuttal:
			persona, _ := ev.Data["persona_id"].(string) //nolint:errcheck
			turns := jsonNumber(ev.Data["turns"])
			fmt.Fprintf(w, "[%s] 💬 Rebuttal to %s  (%d turns)\n", ts, persona, turns)

		case EventTaskToggle:
			taskID, _ := ev.Data["task_id"].(string)    //nolint:errcheck
			completed, _ := ev.Data["completed"].(bool) //nolint:errcheck
			mark := " "
			if completed {
				mark = "x"
			}
			fmt.Fprintf(w, "[%s] [%s] Task %s\n", ts, mark, taskID)

		case EventCredits:
			balance := jsonNumber(ev.Data["balance"])
			source, _ := ev.Data["source"].(string) //nolint:errcheck
			fmt.Fprintf(w, "[%s] 💰 Credits: %d (%s)\n", ts, balance, source)

		case EventError:
			msg, _ := ev.Data["message"].(string) //nolint:errcheck
			fmt.Fprintf(w, "[%s] ❌ Error: %s\n", ts, msg)

		case EventSessionEnd:
			dur := jsonNumber(ev.Data["duration_ms"])
			fmt.Fprintf(w, "[%s] 🏁 Session complete  (%dms)\n", ts, dur)

		default:
			fmt.Fprintf(w, "[%s] %s %v\n", ts, ev.Type, ev.Data)
		}
	}
	fmt.Fprintln(w)
}

func formatDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%6dms", d.Milliseconds())
	}
	return fmt.Sprintf("%6.1fs", d.Seconds())
}

// jsonNumber extracts a number from a JSON-decoded interface{} (float64 or json.Number).
func jsonNumber(v any) int {
	switch n := v.(type) {
	case float64:
		return int(n)
	case int:
		return n
	case json.Number:
		i, _ := n.Int64() //nolint:errcheck
		return int(i)
	}
	return 0
}
