package driver

import (
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"sift/internal/diag"
	"sift/internal/source"
)

// Increment when the payload format changes.
const diskCacheSchemaVersion uint16 = 1

// DiskCache stores per-file check results keyed by content hash, so an
// unchanged file skips lexing, parsing, and analysis on the next run.
// Thread-safe for concurrent access.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

// CachedSpan is a serializable span; file IDs are not stable between runs,
// so spans cache byte offsets only and rebind to the freshly loaded file.
type CachedSpan struct {
	Start uint32
	End   uint32
}

// CachedNote mirrors diag.Note.
type CachedNote struct {
	Span CachedSpan
	Msg  string
}

// CachedDiag mirrors diag.Diagnostic.
type CachedDiag struct {
	Severity uint8
	Code     uint16
	Message  string
	Primary  CachedSpan
	Notes    []CachedNote
	Footer   string
}

// DiskPayload stores one file's check outcome.
type DiskPayload struct {
	Schema uint16
	// RuleSet identifies the rule configuration the result was computed
	// under; a different set invalidates the entry.
	RuleSet     string
	Diagnostics []CachedDiag
	// Fixable counts signals that carried actions; a file with fixable
	// findings is never served from cache by the fix pipeline.
	Fixable int
}

// OpenDiskCache initializes and returns a disk cache at the standard
// location.
func OpenDiskCache(app string) (*DiskCache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	dir := filepath.Join(base, app)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskCache{dir: dir}, nil
}

func (c *DiskCache) pathFor(key [32]byte) string {
	hexKey := hex.EncodeToString(key[:])
	return filepath.Join(c.dir, "files", hexKey+".mp")
}

// Put serializes and writes a payload, replacing atomically.
func (c *DiskCache) Put(key [32]byte, payload *DiskPayload) error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	defer func() {
		if err := os.Remove(f.Name()); err != nil && !errors.Is(err, os.ErrNotExist) {
			fmt.Fprintf(os.Stderr, "failed to remove temp file: %v\n", err)
		}
	}()

	enc := msgpack.NewEncoder(f)
	if err := enc.Encode(payload); err != nil {
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(f.Name(), p)
}

// Get reads a payload. A missing entry or schema mismatch is a miss, not an
// error.
func (c *DiskCache) Get(key [32]byte, out *DiskPayload) (bool, error) {
	if c == nil {
		return false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	defer func() {
		_ = f.Close()
	}()
	dec := msgpack.NewDecoder(f)
	if err := dec.Decode(out); err != nil {
		return false, err
	}
	if out.Schema != diskCacheSchemaVersion {
		return false, nil
	}
	return true, nil
}

// DropAll invalidates the cache, useful after format changes.
func (c *DiskCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	old := c.dir + ".old-" + time.Now().Format("20060102150405")
	if err := os.Rename(c.dir, old); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	return os.RemoveAll(old)
}

// cacheDiagnostics converts a bag into cacheable form.
func cacheDiagnostics(bag *diag.Bag) []CachedDiag {
	items := bag.Items()
	out := make([]CachedDiag, 0, len(items))
	for _, d := range items {
		cd := CachedDiag{
			Severity: uint8(d.Severity),
			Code:     uint16(d.Code),
			Message:  d.Message,
			Primary:  CachedSpan{Start: d.Primary.Start, End: d.Primary.End},
			Footer:   d.Footer,
		}
		for _, n := range d.Notes {
			cd.Notes = append(cd.Notes, CachedNote{
				Span: CachedSpan{Start: n.Span.Start, End: n.Span.End},
				Msg:  n.Msg,
			})
		}
		out = append(out, cd)
	}
	return out
}

// restoreDiagnostics rebinds cached diagnostics to a freshly loaded file.
func restoreDiagnostics(cached []CachedDiag, file source.FileID, bag *diag.Bag) {
	for _, cd := range cached {
		d := diag.Diagnostic{
			Severity: diag.Severity(cd.Severity),
			Code:     diag.Code(cd.Code),
			Message:  cd.Message,
			Primary:  source.Span{File: file, Start: cd.Primary.Start, End: cd.Primary.End},
			Footer:   cd.Footer,
		}
		for _, n := range cd.Notes {
			d.Notes = append(d.Notes, diag.Note{
				Span: source.Span{File: file, Start: n.Span.Start, End: n.Span.End},
				Msg:  n.Msg,
			})
		}
		bag.Add(d)
	}
}
