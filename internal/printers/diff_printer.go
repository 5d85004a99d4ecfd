package printers

import (
	"fmt"
	"io"

	"totktools/internal/differ"
	"totktools/printer"
)

// Default labels for the two sides of a diff.
const (
	DefaultLabel1 = "File 1"
	DefaultLabel2 = "File 2"
)

// DiffPrinter writes one "Field: <name>\n<label1>: <a>\n<label2>: <b>"
// block per changed field.
type DiffPrinter struct {
	ItemPrinter
	printer *printer.Printer
	order   []uint32
	label1  string
	label2  string
}

// NewDiffPrinter creates a diff printer with the default labels.
func NewDiffPrinter(writer io.Writer, p *printer.Printer, order []uint32) *DiffPrinter {
	return &DiffPrinter{
		ItemPrinter: *NewItemPrinter(writer),
		printer:     p,
		order:       order,
		label1:      DefaultLabel1,
		label2:      DefaultLabel2,
	}
}

// SetLabels replaces the side labels. Empty labels keep the current value.
func (p *DiffPrinter) SetLabels(label1, label2 string) {
	if label1 != "" {
		p.label1 = label1
	}
	if label2 != "" {
		p.label2 = label2
	}
}

// FormatDiffEntry renders a single diff block.
func FormatDiffEntry(fieldName, label1, value1, label2, value2 string) string {
	return fmt.Sprintf("Field: %s\n%s: %s\n%s: %s", fieldName, label1, value1, label2, value2)
}

// PrintDiff writes every entry of d and returns the number of blocks written.
func (p *DiffPrinter) PrintDiff(d differ.Result) int {
	n := 0
	for _, h := range OrderHashes(p.order, d.Hashes()) {
		e := d[h]
		p.PrintBlock(FormatDiffEntry(
			p.printer.PrintFieldName(h),
			p.label1, p.printer.PrintData(e.A),
			p.label2, p.printer.PrintData(e.B),
		))
		n++
	}
	return n
}
