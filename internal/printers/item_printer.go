package printers

import (
	"fmt"
	"io"

	"totktools/common"
)

// DefaultSeparator goes between consecutive blocks.
const DefaultSeparator = "\n------\n"

// ItemPrinter writes text blocks to a writer, placing the separator between
// consecutive blocks. The first write error is kept and later output is
// dropped.
type ItemPrinter struct {
	writer    io.Writer
	logger    common.Logger
	separator string
	blocks    int
	muted     bool
	err       error
}

// NewItemPrinter constructs an ItemPrinter using the given io.Writer.
func NewItemPrinter(writer io.Writer) *ItemPrinter {
	return &ItemPrinter{
		writer:    writer,
		separator: DefaultSeparator,
	}
}

// SetMessageLogger sets the optional logger that echoes every block at
// debug level.
func (p *ItemPrinter) SetMessageLogger(logger common.Logger) {
	p.logger = logger
}

// SetSeparator replaces the text written between blocks.
func (p *ItemPrinter) SetSeparator(sep string) { p.separator = sep }

// Separator returns the text written between blocks.
func (p *ItemPrinter) Separator() string { return p.separator }

// ItemPrintLine writes the given message to the writer and optionally logs it.
func (p *ItemPrinter) ItemPrintLine(msg string) {
	if p.writer != nil && p.err == nil {
		if _, err := fmt.Fprint(p.writer, msg); err != nil {
			p.err = err
		}
	}
	if p.logger != nil {
		p.logger.Log(common.SeverityDebug, msg)
	}
}

// PrintBlock writes one block, preceded by the separator unless it is the
// first. Muted printers count the block but write nothing.
func (p *ItemPrinter) PrintBlock(block string) {
	if !p.muted {
		if p.blocks > 0 {
			p.ItemPrintLine(p.separator)
		}
		p.ItemPrintLine(block)
	}
	p.blocks++
}

// Blocks returns the number of blocks printed so far.
func (p *ItemPrinter) Blocks() int { return p.blocks }

// Err returns the first error returned by the writer.
func (p *ItemPrinter) Err() error { return p.err }

// SetMute sets the printer to mute (avoids output).
func (p *ItemPrinter) SetMute(mute bool) { p.muted = mute }

// IsMuted returns true if the printer is muted.
func (p *ItemPrinter) IsMuted() bool { return p.muted }
