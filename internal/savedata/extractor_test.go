package savedata

import (
	"bytes"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"

	logpkg "totktools/common"
	"totktools/internal/common"
	"totktools/internal/databuf"
	"totktools/internal/defs"
	"totktools/internal/sav"
	"totktools/internal/savetest"
	"totktools/internal/value"
)

func fieldTable(defsList ...defs.FieldDefinition) *defs.FieldCache {
	return defs.NewFieldCache(defsList)
}

func field(hash uint32, name string, typ defs.DataType) defs.FieldDefinition {
	return defs.FieldDefinition{Hash: hash, Name: name, Type: string(typ)}
}

func extract(t *testing.T, fields *defs.FieldCache, image []byte) Snapshot {
	t.Helper()
	snap, err := NewExtractor(fields).Extract(databuf.NewLittleEndian(image))
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	return snap
}

func TestExtract_SingleDirectField(t *testing.T) {
	b := savetest.NewBuilder()
	if at := b.RecordOffset(); at != 0x28 {
		t.Fatalf("first record at 0x%X, want 0x28", at)
	}
	image := b.Record(0x1000, 42).Sentinel().Bytes()

	got := extract(t, fieldTable(field(0x1000, "PlayTime", defs.UInt)), image)
	want := Snapshot{0x1000: value.UInt(42)}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Extract() mismatch (-want +got):\n%s", diff)
	}
}

func TestExtract_KeySetMatchesFieldTable(t *testing.T) {
	fields := fieldTable(
		field(0x1000, "A", defs.UInt),
		field(0x2000, "B", defs.Bool),
		field(0x3000, "C", defs.Vector3),
	)
	image := savetest.NewBuilder().Record(0x9999, 1).Record(0x2000, 1).Sentinel().Bytes()

	got := extract(t, fields, image)
	want := Snapshot{0x1000: nil, 0x2000: value.Bool(true), 0x3000: nil}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Extract() mismatch (-want +got):\n%s", diff)
	}
	for h := range got {
		if !fields.Has(h) {
			t.Errorf("snapshot has key 0x%X not in field table", h)
		}
	}
}

func TestExtract_NoMatchingRecords(t *testing.T) {
	fields := fieldTable(field(0x1000, "A", defs.UInt), field(0x2000, "B", defs.String64))
	image := savetest.NewBuilder().Record(0x5, 5).Record(0x6, 6).Sentinel().Bytes()

	got := extract(t, fields, image)
	if len(got) != 2 {
		t.Fatalf("len(snapshot) = %d, want 2", len(got))
	}
	for h, v := range got {
		if v != nil {
			t.Errorf("snapshot[0x%X] = %v, want nil", h, v)
		}
	}
}

func TestExtract_EmptyFieldTable(t *testing.T) {
	image := savetest.NewBuilder().Record(0x1000, 1).Sentinel().Bytes()
	got := extract(t, fieldTable(), image)
	if len(got) != 0 {
		t.Errorf("snapshot = %v, want empty", got)
	}
}

func TestExtract_SentinelHalts(t *testing.T) {
	// The record after the sentinel would fail to decode if it were read.
	fields := fieldTable(field(0x1000, "A", defs.UInt), field(0x2000, "B", defs.Vector2))
	image := savetest.NewBuilder().
		Record(0x1000, 7).
		Sentinel().
		Record(0x2000, 0xFFFFFF00).
		Bytes()

	e := NewExtractor(fields)
	got, stats, err := e.ExtractStats(databuf.NewLittleEndian(image))
	if err != nil {
		t.Fatalf("ExtractStats() error = %v", err)
	}
	if got[0x2000] != nil {
		t.Errorf("record after sentinel was decoded: %v", got[0x2000])
	}
	if !stats.Sentinel || stats.Records != 2 || stats.StopAt != 0x30 {
		t.Errorf("stats = %+v, want sentinel at 0x30 after 2 records", stats)
	}
}

func TestExtract_SkipsUnknownHashes(t *testing.T) {
	fields := fieldTable(field(0x1000, "A", defs.Int))
	image := savetest.NewBuilder().
		Record(0xAAAA, 0xFFFFFFFF).
		Record(0xBBBB, 0).
		Record(0x1000, 3).
		Sentinel().
		Bytes()

	_, stats, err := NewExtractor(fields).ExtractStats(databuf.NewLittleEndian(image))
	if err != nil {
		t.Fatal(err)
	}
	if stats.Unknown != 2 || stats.Matched != 1 {
		t.Errorf("stats = %+v, want 2 unknown and 1 matched", stats)
	}
}

func TestExtract_LastRecordWins(t *testing.T) {
	fields := fieldTable(field(0x1000, "A", defs.UInt))
	image := savetest.NewBuilder().Record(0x1000, 1).Record(0x1000, 2).Sentinel().Bytes()

	got := extract(t, fields, image)
	if diff := cmp.Diff(Snapshot{0x1000: value.UInt(2)}, got); diff != "" {
		t.Errorf("Extract() mismatch (-want +got):\n%s", diff)
	}
}

func TestExtract_IndirectFields(t *testing.T) {
	fields := fieldTable(
		field(0x10, "Name", defs.WString16),
		field(0x20, "Pos", defs.Vector3),
		field(0x30, "Flags", defs.BoolArray),
		field(0x40, "Blob", defs.Binary),
		field(0x50, "Counter", defs.UInt),
	)
	b := savetest.NewBuilder()
	b.Pointer(0x10, savetest.WStr("Link", 16))
	b.Pointer(0x20, savetest.Concat(savetest.F32(1), savetest.F32(2), savetest.F32(3)))
	b.Pointer(0x30, savetest.Concat(savetest.U32(3), []byte{0x06}))
	// Inline binary data spills into the following strides, which are then
	// scanned as unknown hashes.
	b.InlineBinary(0x40, []byte{0xDE, 0xAD, 0xBE, 0xEF, 0x01})
	b.Record(0x50, 9)
	image := b.Sentinel().Bytes()

	got := extract(t, fields, image)
	want := Snapshot{
		0x10: value.WString16Of("Link"),
		0x20: value.Vector3{1, 2, 3},
		0x30: value.BoolArray{false, true, true},
		0x40: value.Binary{0xDE, 0xAD, 0xBE, 0xEF, 0x01},
		0x50: value.UInt(9),
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Extract() mismatch (-want +got):\n%s", diff)
	}
}

func TestExtract_PointerTargetsFollowHeapBase(t *testing.T) {
	fields := fieldTable(field(0x10, "Name", defs.WString16))
	b := savetest.NewBuilder().WithHeapBase(0x1000)
	if at := b.Pointer(0x10, savetest.WStr("Zelda", 16)); at != 0x1000 {
		t.Fatalf("payload placed at 0x%X, want 0x1000", at)
	}
	image := b.Sentinel().Bytes()
	if len(image) != 0x1000+32 {
		t.Errorf("image size 0x%X", len(image))
	}

	got := extract(t, fields, image)
	if diff := cmp.Diff(Snapshot{0x10: value.WString16Of("Zelda")}, got); diff != "" {
		t.Errorf("Extract() mismatch (-want +got):\n%s", diff)
	}
}

func TestExtract_DecodeErrorIsAnnotated(t *testing.T) {
	fields := fieldTable(field(0x2000, "Position", defs.Vector2))
	image := savetest.NewBuilder().Record(0x2000, 0x7FFFFFF0).Sentinel().Bytes()

	snap, err := NewExtractor(fields).Extract(databuf.NewLittleEndian(image))
	if snap != nil {
		t.Errorf("snapshot = %v, want nil on error", snap)
	}
	if !common.IsCode(err, sav.ErrOutOfRange) {
		t.Fatalf("error = %v, want SAV_ERR_OUT_OF_RANGE", err)
	}
	var le *common.Error
	if !errors.As(err, &le) {
		t.Fatalf("error %T is not a library error", err)
	}
	if !le.HasHash || le.Hash != 0x2000 {
		t.Errorf("error hash = 0x%X (set %v), want 0x2000", le.Hash, le.HasHash)
	}
	if !strings.Contains(le.Message, "Position (Vector2)") {
		t.Errorf("error message %q does not name the field", le.Message)
	}
}

func TestExtract_UnsupportedTypeOnlyWhenMatched(t *testing.T) {
	fields := fieldTable(field(0x1000, "A", defs.UInt), field(0x2000, "Odd", "Int8"))

	image := savetest.NewBuilder().Record(0x1000, 1).Sentinel().Bytes()
	if _, err := NewExtractor(fields).Extract(databuf.NewLittleEndian(image)); err != nil {
		t.Errorf("unmatched bad type should not fail: %v", err)
	}

	image = savetest.NewBuilder().Record(0x2000, 1).Sentinel().Bytes()
	_, err := NewExtractor(fields).Extract(databuf.NewLittleEndian(image))
	if !common.IsCode(err, sav.ErrUnsupportedType) {
		t.Errorf("error = %v, want SAV_ERR_UNSUPPORTED_TYPE", err)
	}
}

func TestExtract_TruncatedWithoutSentinel(t *testing.T) {
	fields := fieldTable(field(0x1000, "A", defs.UInt))
	image := savetest.NewBuilder().Record(0x1000, 1).Bytes()

	_, err := NewExtractor(fields).Extract(databuf.NewLittleEndian(image))
	if !common.IsCode(err, sav.ErrOutOfRange) {
		t.Errorf("error = %v, want SAV_ERR_OUT_OF_RANGE", err)
	}
}

func TestExtract_WindowEndWithoutSentinel(t *testing.T) {
	fields := fieldTable(field(0x1000, "A", defs.UInt))
	image := savetest.NewBuilder().Record(0x1000, 5).PadTo(0x80).Bytes()

	e := NewExtractor(fields)
	if err := e.SetLayout(Layout{Start: 0x28, End: 0x80, Stride: 8, Sentinel: sav.SentinelHash}); err != nil {
		t.Fatal(err)
	}
	got, stats, err := e.ExtractStats(databuf.NewLittleEndian(image))
	if err != nil {
		t.Fatalf("ExtractStats() error = %v", err)
	}
	if stats.Sentinel || stats.StopAt != 0x80 {
		t.Errorf("stats = %+v, want window end at 0x80", stats)
	}
	if got[0x1000] != value.UInt(5) {
		t.Errorf("snapshot[0x1000] = %v", got[0x1000])
	}
}

func TestLayout_Validate(t *testing.T) {
	tests := []struct {
		name   string
		layout Layout
		ok     bool
	}{
		{"default", DefaultLayout, true},
		{"empty window", Layout{Start: 0x40, End: 0x40, Stride: 8}, true},
		{"negative start", Layout{Start: -8, End: 0x40, Stride: 8}, false},
		{"end before start", Layout{Start: 0x40, End: 0x20, Stride: 8}, false},
		{"stride too small", Layout{Start: 0, End: 0x40, Stride: 4}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.layout.Validate()
			if (err == nil) != tt.ok {
				t.Errorf("Validate() = %v, want ok=%v", err, tt.ok)
			}
			if err != nil && !common.IsCode(err, sav.ErrInvalidParamVal) {
				t.Errorf("Validate() code = %v", common.Code(err))
			}
		})
	}

	e := NewExtractor(fieldTable())
	if err := e.SetLayout(Layout{Stride: 1}); err == nil {
		t.Error("SetLayout accepted an invalid layout")
	}
	if e.layout != DefaultLayout {
		t.Error("failed SetLayout changed the layout")
	}
}

func TestExtract_LogsScanSummary(t *testing.T) {
	var buf bytes.Buffer
	e := NewExtractor(fieldTable(field(0x1000, "A", defs.UInt)))
	e.SetLogger(logpkg.NewStdLoggerWithWriter(&buf, logpkg.SeverityDebug))

	image := savetest.NewBuilder().Record(0x1000, 1).Sentinel().Bytes()
	if _, err := e.Extract(databuf.NewLittleEndian(image)); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{"sentinel, offset 0x000030", "1 records matched", "1 of 1 fields present"} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %q:\n%s", want, out)
		}
	}
}

func TestExtract_ConcurrentUse(t *testing.T) {
	fields := fieldTable(field(0x1000, "A", defs.UInt), field(0x2000, "B", defs.String64))
	images := make([][]byte, 8)
	for i := range images {
		b := savetest.NewBuilder().Record(0x1000, uint32(i))
		b.Pointer(0x2000, savetest.Str(strings.Repeat("x", i+1), 64))
		images[i] = b.Sentinel().Bytes()
	}

	e := NewExtractor(fields)
	results := make([]Snapshot, len(images))
	errs := make([]error, len(images))
	var wg sync.WaitGroup
	for i := range images {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = e.Extract(databuf.NewLittleEndian(images[i]))
		}(i)
	}
	wg.Wait()

	for i := range images {
		if errs[i] != nil {
			t.Fatalf("image %d: %v", i, errs[i])
		}
		want := Snapshot{
			0x1000: value.UInt(i),
			0x2000: value.String64(strings.Repeat("x", i+1)),
		}
		if diff := cmp.Diff(want, results[i]); diff != "" {
			t.Errorf("image %d mismatch (-want +got):\n%s", i, diff)
		}
	}
}
