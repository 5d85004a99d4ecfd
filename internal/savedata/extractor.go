package savedata

import (
	"errors"
	"fmt"

	"totktools/common"
	liberr "totktools/internal/common"
	"totktools/internal/databuf"
	"totktools/internal/defs"
	"totktools/internal/sav"
	"totktools/internal/value"
)

// Snapshot maps every known field hash to its decoded value, or nil when the
// field was not found in the save file.
type Snapshot map[uint32]value.Value

// Layout describes the record window scanned for field hashes.
type Layout struct {
	Start    int
	End      int
	Stride   int
	Sentinel uint32
}

// DefaultLayout is the window used by retail save files.
var DefaultLayout = Layout{
	Start:    sav.ScanStart,
	End:      sav.ScanEnd,
	Stride:   sav.ScanStride,
	Sentinel: sav.SentinelHash,
}

// Validate checks the layout for a usable window and stride.
func (l Layout) Validate() error {
	if l.Start < 0 || l.End < l.Start || l.Stride < sav.RecordValueOffset+sav.PointerSize {
		return liberr.NewErrorMsg(sav.ErrSevError, sav.ErrInvalidParamVal,
			fmt.Sprintf("invalid scan layout start=0x%X end=0x%X stride=%d", l.Start, l.End, l.Stride))
	}
	return nil
}

// Stats summarises one extraction.
type Stats struct {
	Records  int // record positions examined, the sentinel included
	Matched  int // records whose hash is a known field
	Unknown  int // records skipped for an unknown hash
	Sentinel bool
	StopAt   int // offset where scanning stopped
}

// Extractor turns a save buffer into a Snapshot using a field table. It holds
// no per-extraction state, so one Extractor may run Extract concurrently on
// independent buffers.
type Extractor struct {
	fields *defs.FieldCache
	layout Layout
	logger common.Logger
}

// NewExtractor creates an extractor for the given field table using DefaultLayout.
func NewExtractor(fields *defs.FieldCache) *Extractor {
	return &Extractor{
		fields: fields,
		layout: DefaultLayout,
		logger: common.NewNoOpLogger(),
	}
}

// SetLayout replaces the scan window. Call before any Extract.
func (e *Extractor) SetLayout(l Layout) error {
	if err := l.Validate(); err != nil {
		return err
	}
	e.layout = l
	return nil
}

// SetLogger attaches a logger for scan summaries. Call before any Extract.
func (e *Extractor) SetLogger(l common.Logger) {
	e.logger = common.OrNoOp(l)
}

// Extract decodes buf into a Snapshot whose key set is exactly the field
// table's hash set.
func (e *Extractor) Extract(buf *databuf.Buffer) (Snapshot, error) {
	snap, _, err := e.ExtractStats(buf)
	return snap, err
}

// ExtractStats is Extract that also reports scan statistics.
func (e *Extractor) ExtractStats(buf *databuf.Buffer) (Snapshot, Stats, error) {
	var stats Stats

	out := make(Snapshot, e.fields.Len())
	for _, h := range e.fields.Hashes() {
		out[h] = nil
	}

	reader := NewReader(buf)
	pos := e.layout.Start
	for ; pos < e.layout.End; pos += e.layout.Stride {
		hash, err := buf.ReadUint32(pos)
		if err != nil {
			return nil, stats, err
		}
		stats.Records++

		if hash == e.layout.Sentinel {
			stats.Sentinel = true
			break
		}

		field, ok := e.fields.Get(hash)
		if !ok {
			stats.Unknown++
			continue
		}

		v, err := reader.ReadAuto(field.Type, pos+sav.RecordValueOffset)
		if err != nil {
			return nil, stats, annotate(err, field)
		}
		out[hash] = v
		stats.Matched++
	}
	stats.StopAt = pos

	if stats.Sentinel {
		e.logger.Logf(common.SeverityDebug, "scan stopped at sentinel, offset 0x%06X", pos)
	} else {
		e.logger.Logf(common.SeverityDebug, "scan reached window end 0x%06X without sentinel", e.layout.End)
	}
	e.logger.Logf(common.SeverityDebug, "%d records matched, %d unknown hashes skipped, %d of %d fields present",
		stats.Matched, stats.Unknown, countPresent(out), len(out))

	return out, stats, nil
}

// annotate tags a decode error with the field being read.
func annotate(err error, field defs.FieldDefinition) error {
	var le *liberr.Error
	if errors.As(err, &le) {
		tagged := le.WithHash(field.Hash)
		tagged.Message = fmt.Sprintf("field %s (%s): %s", field.Name, field.Type, le.Message)
		return tagged
	}
	return fmt.Errorf("field %s (%s): %w", field.Name, field.Type, err)
}

func countPresent(s Snapshot) int {
	n := 0
	for _, v := range s {
		if v != nil {
			n++
		}
	}
	return n
}
