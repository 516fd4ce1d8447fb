package output

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/dunc/pkg/buildenv"
	"github.com/arthur-debert/dunc/pkg/installer"
	"github.com/arthur-debert/dunc/pkg/output/styles"
)

// Printer writes dunc's messages to w. It implements installer.Reporter.
type Printer struct {
	w      io.Writer
	format Format
}

var _ installer.Reporter = (*Printer)(nil)

// NewPrinter creates a printer. format must not be FormatAuto; use Resolve.
func NewPrinter(w io.Writer, format Format) *Printer {
	if format == FormatAuto {
		format = FormatText
	}
	return &Printer{w: w, format: format}
}

// Format returns the printer's concrete format.
func (p *Printer) Format() Format { return p.format }

func (p *Printer) style(name, text string) string {
	if p.format != FormatTerminal {
		return text
	}
	return styles.GetStyle(name).Render(text)
}

// Placed prints one aligned install line such as
// "- [link] pkg/b.py  -> /install/pkg/b.py".
func (p *Printer) Placed(item installer.Installed, width int, dryRun bool) {
	tag, styleName := "[copy]", "Copy"
	if item.Mode == installer.ModeSymlink {
		tag, styleName = "[link]", "Link"
	}

	name := filepath.ToSlash(item.Entry.Rel())
	padded := name + strings.Repeat(" ", max(width-len(name), 0)+2)

	line := fmt.Sprintf("- %s %s-> %s", p.style(styleName, tag), padded, p.style("FilePath", item.Dest))
	if dryRun {
		line += " " + p.style("DryRun", "(dry run)")
	}
	_, _ = fmt.Fprintln(p.w, line)
}

// Path prints a single path, unstyled so it stays pipeable.
func (p *Printer) Path(path string) {
	_, _ = fmt.Fprintln(p.w, path)
}

// Header prints a section title.
func (p *Printer) Header(title string) {
	_, _ = fmt.Fprintln(p.w, p.style("Header", title))
}

// Info prints a muted informational line.
func (p *Printer) Info(format string, args ...interface{}) {
	_, _ = fmt.Fprintln(p.w, p.style("Muted", fmt.Sprintf(format, args...)))
}

// Vars prints the build environment as aligned NAME=value lines. Unset
// variables are shown as "(unset)".
func (p *Printer) Vars(vars []buildenv.Var) {
	width := 0
	for _, v := range vars {
		width = max(width, len(v.Name))
	}
	for _, v := range vars {
		value := v.Value
		if value == "" {
			value = p.style("Muted", "(unset)")
		}
		_, _ = fmt.Fprintf(p.w, "%-*s = %s\n", width, v.Name, value)
	}
}

// Error prints err prefixed with "Error: ".
func (p *Printer) Error(err error) {
	_, _ = fmt.Fprintln(p.w, p.style("Error", "Error: "+err.Error()))
}
