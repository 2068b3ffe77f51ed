package driver

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"sift/internal/analyze"
	"sift/internal/fix"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestListSourceFilesFiltersAndSorts(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "b.js", "")
	writeFile(t, dir, "a.css", "")
	writeFile(t, dir, "notes.txt", "")
	writeFile(t, dir, filepath.Join("nested", "c.js"), "")

	files, err := ListSourceFiles(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(files) != 3 {
		t.Fatalf("files = %v, want 3 entries", files)
	}
	for i := 1; i < len(files); i++ {
		if files[i-1] >= files[i] {
			t.Fatalf("files not sorted: %v", files)
		}
	}
}

func TestTokenizeDispatchesByExtension(t *testing.T) {
	dir := t.TempDir()
	jsPath := writeFile(t, dir, "a.js", "const a = 1;\n")
	cssPath := writeFile(t, dir, "a.css", "a { color: red; }\n")

	_, res, err := Tokenize(jsPath, 0)
	if err != nil {
		t.Fatal(err)
	}
	if res.Lang.Name != "js" || len(res.Tokens) == 0 {
		t.Fatalf("js tokenize result wrong: %+v", res.Lang)
	}
	if last := res.Tokens[len(res.Tokens)-1]; last.Kind != res.Lang.EOFKind {
		t.Fatalf("token stream must end with EOF")
	}

	_, res, err = Tokenize(cssPath, 0)
	if err != nil {
		t.Fatal(err)
	}
	if res.Lang.Name != "css" {
		t.Fatalf("css tokenize picked language %q", res.Lang.Name)
	}
}

func TestParseRoundTrips(t *testing.T) {
	dir := t.TempDir()
	src := "for (const x of xs) { use(x); }\n"
	path := writeFile(t, dir, "a.js", src)

	_, res, err := Parse(path, 0)
	if err != nil {
		t.Fatal(err)
	}
	if res.Bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %+v", res.Bag.Items())
	}
	if res.Tree.Text() != src {
		t.Fatalf("parse lost text")
	}
}

func TestUnsupportedExtensionFails(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "a.py", "print(1)\n")
	if _, _, err := Parse(path, 0); err == nil {
		t.Fatalf("unsupported extensions must be rejected")
	}
}

func TestCheckDirRunsRules(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.js", "items.forEach(i => use(i));\n")
	writeFile(t, dir, "b.css", "@color-profile { src: none; }\n")

	var observed int
	_, results, err := CheckDir(context.Background(), dir, CheckOptions{
		Rules: analyze.DefaultRules(),
		Jobs:  1,
		Observer: func(done, total int, path string) {
			observed++
			if total != 2 {
				t.Errorf("total = %d, want 2", total)
			}
		},
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 2 || observed != 2 {
		t.Fatalf("results = %d, observed = %d", len(results), observed)
	}

	// results follow the sorted file order: a.js then b.css
	jsRes, cssRes := results[0], results[1]
	if len(jsRes.Signals) != 1 || jsRes.Signals[0].Rule != "noForEach" {
		t.Fatalf("js signals = %+v", jsRes.Signals)
	}
	if !jsRes.Bag.HasWarnings() {
		t.Fatalf("lint finding must land in the bag")
	}
	if !cssRes.Bag.HasErrors() {
		t.Fatalf("css parse errors must be reported")
	}
}

func TestCheckFileServesFromCache(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	cache, err := OpenDiskCache("sift-test")
	if err != nil {
		t.Fatal(err)
	}

	dir := t.TempDir()
	path := writeFile(t, dir, "a.js", "items.forEach(i => use(i));\n")
	opts := CheckOptions{Rules: analyze.DefaultRules(), Cache: cache}

	_, first, err := Check(path, opts)
	if err != nil {
		t.Fatal(err)
	}
	if first.FromCache {
		t.Fatalf("first run cannot hit the cache")
	}

	_, second, err := Check(path, opts)
	if err != nil {
		t.Fatal(err)
	}
	if !second.FromCache {
		t.Fatalf("unchanged file must be served from cache")
	}
	if second.Bag.Len() != first.Bag.Len() {
		t.Fatalf("cached diagnostics = %d, want %d", second.Bag.Len(), first.Bag.Len())
	}

	// A different rule set invalidates the entry.
	_, third, err := Check(path, CheckOptions{Cache: cache})
	if err != nil {
		t.Fatal(err)
	}
	if third.FromCache {
		t.Fatalf("a changed rule set must miss the cache")
	}

	// So does an edit.
	writeFile(t, dir, "a.js", "items.forEach(j => use(j));\n")
	_, fourth, err := Check(path, opts)
	if err != nil {
		t.Fatal(err)
	}
	if fourth.FromCache {
		t.Fatalf("edited content must miss the cache")
	}
}

func TestFixDirRewritesFiles(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "a.js", "const FOO = \"FOO\";\nuse(FOO);\n")

	_, results, err := FixDir(context.Background(), dir, FixOptions{
		Rules: analyze.DefaultRules(),
		Mode:  fix.ModeAll,
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 1 || !results[0].Changed {
		t.Fatalf("results = %+v", results)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "\nuse(\"FOO\");\n" {
		t.Fatalf("rewritten file = %q", data)
	}
}

func TestFixDryRunLeavesFilesAlone(t *testing.T) {
	dir := t.TempDir()
	src := "const FOO = \"FOO\";\nuse(FOO);\n"
	path := writeFile(t, dir, "a.js", src)

	_, res, err := Fix(path, FixOptions{
		Rules:  analyze.DefaultRules(),
		Mode:   fix.ModeAll,
		DryRun: true,
	})
	if err != nil {
		t.Fatal(err)
	}
	if !res.Changed || res.Output == src {
		t.Fatalf("dry run must still compute the rewrite")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != src {
		t.Fatalf("dry run must not touch the file")
	}
}

func TestFixSafeModeSkipsUnsafe(t *testing.T) {
	dir := t.TempDir()
	src := "const FOO = \"FOO\";\nuse(FOO);\n"
	path := writeFile(t, dir, "a.js", src)

	_, res, err := Fix(path, FixOptions{
		Rules: analyze.DefaultRules(),
		Mode:  fix.ModeSafe,
	})
	if err != nil {
		t.Fatal(err)
	}
	if res.Changed || len(res.Skipped) != 1 {
		t.Fatalf("safe mode outcome = %+v", res)
	}
	data, _ := os.ReadFile(path)
	if string(data) != src {
		t.Fatalf("safe mode must not rewrite")
	}
}

func TestRuleSetKeyEncodesSeverity(t *testing.T) {
	rules := analyze.DefaultRules()
	a := ruleSetKey(&CheckOptions{Rules: rules})
	b := ruleSetKey(&CheckOptions{Rules: rules, Severity: map[string]string{"noForEach": "error"}})
	if a == b {
		t.Fatalf("severity overrides must change the cache key")
	}
}
