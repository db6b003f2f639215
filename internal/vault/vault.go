// Package vault is the local verdict archive. Every verdict the client sees
// is written here keyed by job id, so past evaluations stay readable when
// the backend is unreachable or the remote copy has been pruned. Entries
// are zstd-compressed JSON.
package vault

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/klauspost/compress/zstd"

	"github.com/verdicthq/verdict/internal/api"
)

const entryExt = ".json.zst"

// Entry is one archived verdict as listed by the vault.
type Entry struct {
	JobID     string       `json:"jobId"`
	IdeaTitle string       `json:"ideaTitle,omitempty"`
	Decision  api.Decision `json:"decision"`
	Score     int          `json:"score"`
	SavedAt   time.Time    `json:"savedAt"`
}

type record struct {
	SavedAt  time.Time            `json:"savedAt"`
	Envelope *api.VerdictEnvelope `json:"envelope"`
}

// Vault stores verdict envelopes under a directory. A Vault with an empty
// directory is a no-op: every Get misses and every Put succeeds silently.
type Vault struct {
	dir string
	mu  sync.Mutex

	enc *zstd.Encoder
	dec *zstd.Decoder
}

// New creates a vault rooted at dir.
func New(dir string) (*Vault, error) {
	enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return nil, fmt.Errorf("creating zstd encoder: %w", err)
	}
	dec, err := zstd.NewReader(nil)
	if err != nil {
		return nil, fmt.Errorf("creating zstd decoder: %w", err)
	}
	return &Vault{dir: dir, enc: enc, dec: dec}, nil
}

// Put archives a verdict envelope for jobID, overwriting any earlier copy.
func (v *Vault) Put(jobID string, env *api.VerdictEnvelope) error {
	if v.dir == "" || env == nil || env.Verdict == nil {
		return nil
	}

	v.mu.Lock()
	defer v.mu.Unlock()

	if err := os.MkdirAll(v.dir, 0755); err != nil {
		return fmt.Errorf("creating vault directory: %w", err)
	}

	data, err := json.Marshal(record{SavedAt: time.Now().UTC(), Envelope: env})
	if err != nil {
		return fmt.Errorf("marshaling verdict: %w", err)
	}

	compressed := v.enc.EncodeAll(data, nil)
	if err := os.WriteFile(v.entryPath(jobID), compressed, 0644); err != nil {
		return fmt.Errorf("writing vault entry: %w", err)
	}
	return nil
}

// Get retrieves an archived envelope. A corrupt entry is treated as a miss.
func (v *Vault) Get(jobID string) (*api.VerdictEnvelope, bool) {
	if v.dir == "" {
		return nil, false
	}

	v.mu.Lock()
	defer v.mu.Unlock()

	compressed, err := os.ReadFile(v.entryPath(jobID))
	if err != nil {
		return nil, false
	}

	data, err := v.dec.DecodeAll(compressed, nil)
	if err != nil {
		return nil, false
	}

	var rec record
	if err := json.Unmarshal(data, &rec); err != nil || rec.Envelope == nil {
		return nil, false
	}
	return rec.Envelope, true
}

// List returns summaries of all archived verdicts, newest first.
func (v *Vault) List() ([]Entry, error) {
	if v.dir == "" {
		return nil, nil
	}

	v.mu.Lock()
	defer v.mu.Unlock()

	dirEntries, err := os.ReadDir(v.dir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading vault directory: %w", err)
	}

	var entries []Entry
	for _, de := range dirEntries {
		if de.IsDir() || !strings.HasSuffix(de.Name(), entryExt) {
			continue
		}
		jobID := strings.TrimSuffix(de.Name(), entryExt)

		compressed, err := os.ReadFile(filepath.Join(v.dir, de.Name()))
		if err != nil {
			continue
		}
		data, err := v.dec.DecodeAll(compressed, nil)
		if err != nil {
			continue
		}
		var rec record
		if err := json.Unmarshal(data, &rec); err != nil || rec.Envelope == nil || rec.Envelope.Verdict == nil {
			continue
		}

		entries = append(entries, Entry{
			JobID:     jobID,
			IdeaTitle: rec.Envelope.IdeaTitle,
			Decision:  rec.Envelope.Verdict.Decision,
			Score:     rec.Envelope.Verdict.OverallScore(),
			SavedAt:   rec.SavedAt,
		})
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].SavedAt.After(entries[j].SavedAt)
	})
	return entries, nil
}

// Clear removes the whole archive. It refuses to delete a directory that
// contains anything other than vault entries.
func (v *Vault) Clear() error {
	if v.dir == "" {
		return nil
	}

	v.mu.Lock()
	defer v.mu.Unlock()

	if _, err := os.Stat(v.dir); os.IsNotExist(err) {
		return nil
	}

	dirEntries, err := os.ReadDir(v.dir)
	if err != nil {
		return fmt.Errorf("reading vault directory: %w", err)
	}
	for _, de := range dirEntries {
		if de.IsDir() {
			return fmt.Errorf("vault directory contains subdirectories - refusing to delete for safety")
		}
		if !strings.HasSuffix(de.Name(), entryExt) {
			return fmt.Errorf("vault directory contains unrecognized files - refusing to delete for safety")
		}
	}

	return os.RemoveAll(v.dir)
}

func (v *Vault) entryPath(jobID string) string {
	return filepath.Join(v.dir, jobID+entryExt)
}
