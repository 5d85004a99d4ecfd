package printers

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"totktools/common"
	"totktools/internal/defs"
	"totktools/internal/differ"
	"totktools/internal/savedata"
	"totktools/internal/value"
	"totktools/printer"
)

type failWriter struct{ n int }

func (w *failWriter) Write(p []byte) (int, error) {
	w.n++
	return 0, errors.New("disk full")
}

func testTables() (*printer.Printer, []uint32) {
	fields := defs.NewFieldCache([]defs.FieldDefinition{
		{Hash: 0x30, Name: "Alpha", Type: "UInt"},
		{Hash: 0x10, Name: "Beta", Type: "Enum"},
		{Hash: 0x20, Name: "Gamma", Type: "String64"},
	})
	enums := defs.NewEnumCache([]defs.EnumDefinition{{Hash: 0xE1, Value: "Sunny"}})
	return printer.New(enums, fields), fields.Hashes()
}

func TestItemPrinter(t *testing.T) {
	var buf bytes.Buffer
	p := NewItemPrinter(&buf)

	var logBuf bytes.Buffer
	p.SetMessageLogger(common.NewStdLoggerWithWriter(&logBuf, common.SeverityDebug))

	p.PrintBlock("one")
	p.PrintBlock("two")
	if got, want := buf.String(), "one\n------\ntwo"; got != want {
		t.Errorf("buf = %q, want %q", got, want)
	}
	if !strings.Contains(logBuf.String(), "two") {
		t.Errorf("logger did not echo block: %q", logBuf.String())
	}

	p.SetMute(true)
	if !p.IsMuted() {
		t.Error("expected muted")
	}
	p.PrintBlock("three")
	if p.Blocks() != 3 {
		t.Errorf("Blocks() = %d, want 3", p.Blocks())
	}
	if strings.Contains(buf.String(), "three") {
		t.Errorf("muted printer wrote output: %q", buf.String())
	}

	sp := NewItemPrinter(&buf)
	buf.Reset()
	sp.SetSeparator("|")
	sp.PrintBlock("a")
	sp.PrintBlock("b")
	if buf.String() != "a|b" || sp.Separator() != "|" {
		t.Errorf("custom separator output %q", buf.String())
	}
}

func TestItemPrinter_KeepsFirstError(t *testing.T) {
	w := &failWriter{}
	p := NewItemPrinter(w)
	p.PrintBlock("a")
	p.PrintBlock("b")
	if p.Err() == nil {
		t.Fatal("expected write error")
	}
	if w.n != 1 {
		t.Errorf("writer called %d times after failure, want 1", w.n)
	}
}

func TestOrderHashes(t *testing.T) {
	tests := []struct {
		name  string
		known []uint32
		keys  []uint32
		want  []uint32
	}{
		{"known order wins", []uint32{3, 1, 2}, []uint32{1, 2, 3}, []uint32{3, 1, 2}},
		{"extra keys ascending after known", []uint32{5}, []uint32{9, 5, 7}, []uint32{5, 7, 9}},
		{"known not in keys skipped", []uint32{1, 2, 3}, []uint32{3}, []uint32{3}},
		{"no known", nil, []uint32{2, 1}, []uint32{1, 2}},
		{"empty", []uint32{1}, nil, []uint32{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, OrderHashes(tt.known, tt.keys)); diff != "" {
				t.Errorf("OrderHashes mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDumpPrinter(t *testing.T) {
	pr, order := testTables()
	snap := savedata.Snapshot{
		0x10: value.Enum(0xE1),
		0x20: nil,
		0x30: value.UInt(42),
		0x05: value.Bool(true),
	}

	var buf bytes.Buffer
	dp := NewDumpPrinter(&buf, pr, order)
	dp.SetCollectStats()
	if n := dp.PrintSnapshot(snap); n != 4 {
		t.Errorf("PrintSnapshot() = %d, want 4", n)
	}

	want := strings.Join([]string{
		"Field: Alpha\nValue: (UInt) 42",
		"Field: Beta\nValue: (Enum) Sunny",
		"Field: Gamma\nValue: <null>",
		"Field: <Unknown (5)>\nValue: (Bool) true",
	}, "\n------\n")
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Errorf("dump mismatch (-want +got):\n%s", diff)
	}

	buf.Reset()
	dp.PrintStats()
	for _, line := range []string{"UInt : 1", "Enum : 1", "Bool : 1", "Vector3 : 0", "<null> : 1"} {
		if !strings.Contains(buf.String(), line+"\n") {
			t.Errorf("stats missing %q:\n%s", line, buf.String())
		}
	}
}

func TestDumpPrinter_Empty(t *testing.T) {
	pr, order := testTables()
	var buf bytes.Buffer
	dp := NewDumpPrinter(&buf, pr, order)
	if n := dp.PrintSnapshot(savedata.Snapshot{}); n != 0 || buf.Len() != 0 {
		t.Errorf("PrintSnapshot(empty) = %d, output %q", n, buf.String())
	}
}

func TestDiffPrinter(t *testing.T) {
	pr, order := testTables()
	d := differ.Result{
		0x20: {A: value.String64("Kakariko"), B: nil},
		0x30: {A: value.UInt(5), B: value.UInt(7)},
	}

	var buf bytes.Buffer
	dp := NewDiffPrinter(&buf, pr, order)
	if n := dp.PrintDiff(d); n != 2 {
		t.Errorf("PrintDiff() = %d, want 2", n)
	}
	want := "Field: Alpha\nFile 1: (UInt) 5\nFile 2: (UInt) 7" +
		"\n------\n" +
		"Field: Gamma\nFile 1: (String64[8]) \"Kakariko\"\nFile 2: <null>"
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Errorf("diff mismatch (-want +got):\n%s", diff)
	}

	buf.Reset()
	dp = NewDiffPrinter(&buf, pr, order)
	dp.SetLabels("Before", "")
	dp.PrintDiff(differ.Result{0x30: {A: value.UInt(1), B: nil}})
	if got, want := buf.String(), "Field: Alpha\nBefore: (UInt) 1\nFile 2: <null>"; got != want {
		t.Errorf("labelled diff = %q, want %q", got, want)
	}
}
