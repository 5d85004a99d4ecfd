package printers

import (
	"fmt"
	"io"
	"strings"

	"totktools/internal/defs"
	"totktools/internal/savedata"
	"totktools/printer"
)

// DumpPrinter writes one "Field: <name>\nValue: <data>" block per snapshot
// entry.
type DumpPrinter struct {
	ItemPrinter
	printer      *printer.Printer
	order        []uint32
	collectStats bool
	typeCounts   map[defs.DataType]int
	nullCount    int
}

// NewDumpPrinter creates a dump printer. order is the preferred field order,
// normally the field table's Hashes().
func NewDumpPrinter(writer io.Writer, p *printer.Printer, order []uint32) *DumpPrinter {
	return &DumpPrinter{
		ItemPrinter: *NewItemPrinter(writer),
		printer:     p,
		order:       order,
		typeCounts:  make(map[defs.DataType]int),
	}
}

// FormatEntry renders a single dump block.
func FormatEntry(fieldName, value string) string {
	return fmt.Sprintf("Field: %s\nValue: %s", fieldName, value)
}

// PrintSnapshot writes every entry of snap and returns the number of blocks
// written.
func (p *DumpPrinter) PrintSnapshot(snap savedata.Snapshot) int {
	keys := make([]uint32, 0, len(snap))
	for h := range snap {
		keys = append(keys, h)
	}

	n := 0
	for _, h := range OrderHashes(p.order, keys) {
		v := snap[h]
		if p.collectStats {
			if v == nil {
				p.nullCount++
			} else {
				p.typeCounts[v.Type()]++
			}
		}
		p.PrintBlock(FormatEntry(p.printer.PrintFieldName(h), p.printer.PrintData(v)))
		n++
	}
	return n
}

// SetCollectStats turns on per-type counting.
func (p *DumpPrinter) SetCollectStats() { p.collectStats = true }

// StatsText renders the per-type counts of the values printed.
func (p *DumpPrinter) StatsText() string {
	var sb strings.Builder

	sb.WriteString("Fields printed by type:-\n")
	for _, t := range defs.AllTypes {
		sb.WriteString(fmt.Sprintf("%s : %d\n", t, p.typeCounts[t]))
	}
	sb.WriteString(fmt.Sprintf("<null> : %d\n", p.nullCount))
	return sb.String()
}

// PrintStats outputs the per-type counts of the values printed.
func (p *DumpPrinter) PrintStats() {
	p.ItemPrintLine(p.StatsText())
}
