package audit

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
)

func newTestLog(t *testing.T) (*Log, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test-audit.jsonl")
	l, err := Open(path)
	if err != nil {
		t.Fatalf("failed to open audit log: %v", err)
	}
	return l, path
}

func testEntry(compliant bool) Entry {
	e := Entry{
		CheckID:      "c-test123",
		Task:         NewTask("echo hello"),
		Jurisdiction: "Default",
		Compliant:    compliant,
		ConfigHash:   "sha256:abc123",
	}
	if !compliant {
		e.Violations = []string{"destructive_command"}
	}
	return e
}

func TestSequentialWritesProduceValidChain(t *testing.T) {
	l, path := newTestLog(t)

	for i := 0; i < 5; i++ {
		if err := l.Record(testEntry(true)); err != nil {
			t.Fatalf("record %d: %v", i, err)
		}
	}
	l.Close()

	result := Verify(path)
	if !result.Valid {
		t.Fatalf("expected valid chain, got error at line %d: %s", result.ErrorLine, result.Error)
	}
	if result.Lines != 5 {
		t.Fatalf("expected 5 lines, got %d", result.Lines)
	}
}

func TestFirstEntryReferencesGenesis(t *testing.T) {
	l, path := newTestLog(t)
	if err := l.Record(testEntry(true)); err != nil {
		t.Fatalf("record: %v", err)
	}
	l.Close()

	data, _ := os.ReadFile(path)
	var e Entry
	if err := json.Unmarshal([]byte(strings.TrimSpace(string(data))), &e); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if e.PrevHash != GenesisHash {
		t.Errorf("prev_hash = %s, want genesis", e.PrevHash)
	}
	if e.Timestamp == "" {
		t.Error("expected timestamp to be filled")
	}
	if e.Violations == nil {
		t.Error("expected empty violations array, got null")
	}
}

func TestVerifyDetectsTamperedEntry(t *testing.T) {
	l, path := newTestLog(t)
	for i := 0; i < 3; i++ {
		if err := l.Record(testEntry(false)); err != nil {
			t.Fatalf("record %d: %v", i, err)
		}
	}
	l.Close()

	// Tamper: flip compliant in line 2
	data, _ := os.ReadFile(path)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	lines[1] = strings.Replace(lines[1], `"compliant":false`, `"compliant":true`, 1)
	os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0644)

	result := Verify(path)
	if result.Valid {
		t.Fatal("expected tampered chain to be invalid")
	}
	if result.ErrorLine != 3 {
		t.Fatalf("expected error at line 3, got line %d", result.ErrorLine)
	}
}

func TestVerifyDetectsDeletedFirstEntry(t *testing.T) {
	l, path := newTestLog(t)
	for i := 0; i < 3; i++ {
		l.Record(testEntry(true))
	}
	l.Close()

	data, _ := os.ReadFile(path)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	os.WriteFile(path, []byte(strings.Join(lines[1:], "\n")+"\n"), 0644)

	result := Verify(path)
	if result.Valid {
		t.Fatal("expected chain without genesis entry to be invalid")
	}
	if result.ErrorLine != 1 {
		t.Fatalf("expected error at line 1, got %d", result.ErrorLine)
	}
}

func TestVerifyParseError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.jsonl")
	os.WriteFile(path, []byte("not json\n"), 0644)

	result := Verify(path)
	if result.Valid || result.ErrorLine != 1 {
		t.Fatalf("expected parse error at line 1, got %+v", result)
	}
}

func TestVerifyMissingFile(t *testing.T) {
	result := Verify(filepath.Join(t.TempDir(), "missing.jsonl"))
	if result.Valid || result.Error == "" {
		t.Fatalf("expected open error, got %+v", result)
	}
}

func TestReopenContinuesChain(t *testing.T) {
	l, path := newTestLog(t)
	l.Record(testEntry(true))
	l.Record(testEntry(false))
	l.Close()

	l2, err := Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	l2.Record(testEntry(true))
	l2.Close()

	result := Verify(path)
	if !result.Valid || result.Lines != 3 {
		t.Fatalf("expected valid 3-line chain after reopen, got %+v", result)
	}
}

func TestConcurrentWritesKeepChainValid(t *testing.T) {
	l, path := newTestLog(t)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			l.Record(testEntry(true))
		}()
	}
	wg.Wait()
	l.Close()

	result := Verify(path)
	if !result.Valid || result.Lines != 20 {
		t.Fatalf("expected valid 20-line chain, got %+v", result)
	}
}

func TestTail(t *testing.T) {
	l, path := newTestLog(t)
	for i := 0; i < 5; i++ {
		e := testEntry(i%2 == 0)
		e.CheckID = string(rune('a' + i))
		l.Record(e)
	}
	l.Close()

	entries, err := Tail(path, 2)
	if err != nil {
		t.Fatalf("Tail: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].CheckID != "d" || entries[1].CheckID != "e" {
		t.Errorf("unexpected tail order: %s, %s", entries[0].CheckID, entries[1].CheckID)
	}

	all, err := Tail(path, 0)
	if err != nil {
		t.Fatalf("Tail: %v", err)
	}
	if len(all) != 5 {
		t.Errorf("n=0 should return every entry, got %d", len(all))
	}
}

func TestFormatEntries(t *testing.T) {
	e := testEntry(false)
	e.Violations = append(e.Violations, "Violates: Never deploy destructive payloads.")
	out := FormatEntries([]Entry{e, testEntry(true)})

	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %q", out)
	}
	if !strings.Contains(lines[0], "VIOLATION") || !strings.Contains(lines[0], "destructive_command") {
		t.Errorf("unexpected first line %q", lines[0])
	}
	if strings.Contains(lines[0], "Violates:") {
		t.Errorf("verbose hits should not be rendered: %q", lines[0])
	}
	if !strings.Contains(lines[1], "OK") {
		t.Errorf("unexpected second line %q", lines[1])
	}
}

func TestNewTaskPreview(t *testing.T) {
	short := NewTask("rm -rf /data")
	if short.Preview != "rm -rf /data" {
		t.Errorf("Preview = %q", short.Preview)
	}
	if !strings.HasPrefix(short.Digest, "sha256:") {
		t.Errorf("Digest = %q", short.Digest)
	}

	long := NewTask(strings.Repeat("ü", 200))
	if got := len([]rune(long.Preview)); got != previewLen {
		t.Errorf("preview rune length = %d, want %d", got, previewLen)
	}
	if !strings.HasSuffix(long.Preview, "...") {
		t.Errorf("expected ellipsis, got %q", long.Preview)
	}
}

func TestNewTaskMasksPreviewNotDigest(t *testing.T) {
	raw := "curl -u admin password=hunter2 http://10.1.2.3/"
	task := NewTask(raw)
	if strings.Contains(task.Preview, "hunter2") || strings.Contains(task.Preview, "10.1.2.3") {
		t.Errorf("preview leaks secrets: %q", task.Preview)
	}
	if task.Digest != NewTask(raw).Digest || task.Digest == NewTask("curl -u admin").Digest {
		t.Error("digest should cover the raw text")
	}
}
