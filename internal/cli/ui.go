package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// =============================================================================
// Palette
// =============================================================================

var (
	colorAccent  = lipgloss.Color("36")  // teal
	colorGood    = lipgloss.Color("35")  // green
	colorCaution = lipgloss.Color("220") // amber
	colorBad     = lipgloss.Color("167") // soft red
	colorLink    = lipgloss.Color("75")  // light blue
	colorBright  = lipgloss.Color("255")
	colorMuted   = lipgloss.Color("245")
	colorFaint   = lipgloss.Color("240")
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	faintStyle   = lipgloss.NewStyle().Foreground(colorFaint)
	valueStyle   = lipgloss.NewStyle().Foreground(colorBright)
	cautionStyle = lipgloss.NewStyle().Foreground(colorCaution)
	commandStyle = lipgloss.NewStyle().Foreground(colorLink)
	keyStyle     = lipgloss.NewStyle().Foreground(colorMuted).Width(12)
	spinnerStyle = lipgloss.NewStyle().Foreground(colorAccent)
)

// mark is the icon leading a status line.
type mark struct {
	glyph string
	style lipgloss.Style
}

var (
	markSuccess = mark{"✓", lipgloss.NewStyle().Foreground(colorGood)}
	markFailure = mark{"✗", lipgloss.NewStyle().Foreground(colorBad)}
	markWarning = mark{"!", cautionStyle}
	markInfo    = mark{"›", lipgloss.NewStyle().Foreground(colorMuted)}
)

// =============================================================================
// Status Output
// =============================================================================

// printer writes styled status lines for one command run.
type printer struct {
	w io.Writer
}

func newPrinter(w io.Writer) *printer { return &printer{w: w} }

func (p *printer) status(m mark, text string) {
	fmt.Fprintln(p.w, m.style.Render(m.glyph)+" "+text)
}

func (p *printer) success(format string, args ...any) {
	p.status(markSuccess, fmt.Sprintf(format, args...))
}

func (p *printer) failure(format string, args ...any) {
	p.status(markFailure, fmt.Sprintf(format, args...))
}

func (p *printer) warn(format string, args ...any) {
	p.status(markWarning, cautionStyle.Render(fmt.Sprintf(format, args...)))
}

func (p *printer) info(format string, args ...any) {
	p.status(markInfo, fmt.Sprintf(format, args...))
}

// detail prints an indented, faint line under the previous status.
func (p *printer) detail(format string, args ...any) {
	fmt.Fprintln(p.w, "  "+faintStyle.Render(fmt.Sprintf(format, args...)))
}

// file prints a written output path.
func (p *printer) file(path string) {
	fmt.Fprintln(p.w, "  "+faintStyle.Render("→")+" "+valueStyle.Render(path))
}

func (p *printer) field(key, value string) {
	fmt.Fprintln(p.w, keyStyle.Render(key)+" "+valueStyle.Render(value))
}

// stats prints "N blocks · M edges · cached|fresh".
func (p *printer) stats(blocks, edges int, cached bool) {
	parts := []string{faintStyle.Render(fmt.Sprintf("%d blocks", blocks))}
	if edges > 0 {
		parts = append(parts, faintStyle.Render(fmt.Sprintf("%d edges", edges)))
	}
	if cached {
		parts = append(parts, markSuccess.style.Render("cached"))
	} else {
		parts = append(parts, markInfo.style.Render("fresh"))
	}
	fmt.Fprintln(p.w, "  "+strings.Join(parts, faintStyle.Render(" · ")))
}

// nextStep suggests a follow-up command.
func (p *printer) nextStep(description, cmd string) {
	fmt.Fprintln(p.w)
	fmt.Fprintln(p.w, faintStyle.Render(description+":")+" "+commandStyle.Render(cmd))
}
