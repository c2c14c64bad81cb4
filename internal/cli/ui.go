package cli

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

var (
	colorCyan   = lipgloss.Color("36")  // primary accents
	colorGreen  = lipgloss.Color("35")  // success
	colorYellow = lipgloss.Color("220") // warnings
	colorRed    = lipgloss.Color("167") // errors
	colorBlue   = lipgloss.Color("75")  // commands
	colorWhite  = lipgloss.Color("255") // values
	colorGray   = lipgloss.Color("245") // labels
	colorDim    = lipgloss.Color("240") // muted text
)

var (
	styleTitle   = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	styleSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleWarning = lipgloss.NewStyle().Foreground(colorYellow)
	styleError   = lipgloss.NewStyle().Foreground(colorRed)
	styleValue   = lipgloss.NewStyle().Foreground(colorWhite)
	styleKey     = lipgloss.NewStyle().Foreground(colorGray)
	styleDim     = lipgloss.NewStyle().Foreground(colorDim)
	styleCommand = lipgloss.NewStyle().Foreground(colorBlue)
	styleSpinner = lipgloss.NewStyle().Foreground(colorCyan)
)

const (
	iconSuccess = "✓"
	iconError   = "✗"
	iconWarning = "!"
	iconInfo    = "›"
	iconArrow   = "→"
)

// ui writes styled command output. Status lines go to out; error lines go
// to errOut so they survive piping. With colored off every render degrades
// to plain text, honoring --no-color.
type ui struct {
	out     io.Writer
	errOut  io.Writer
	colored bool
}

func (u *ui) render(style lipgloss.Style, s string) string {
	if !u.colored {
		return s
	}
	return style.Render(s)
}

// title prints a bold heading line.
func (u *ui) title(format string, args ...any) {
	fmt.Fprintln(u.out, u.render(styleTitle, fmt.Sprintf(format, args...)))
}

// success prints a checkmarked status line.
func (u *ui) success(format string, args ...any) {
	fmt.Fprintln(u.out, u.render(styleSuccess, iconSuccess)+" "+fmt.Sprintf(format, args...))
}

// warn prints a warning line.
func (u *ui) warn(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(u.out, u.render(styleWarning, iconWarning)+" "+u.render(styleWarning, msg))
}

// error prints an error line to errOut.
func (u *ui) error(format string, args ...any) {
	fmt.Fprintln(u.errOut, u.render(styleError, iconError)+" "+fmt.Sprintf(format, args...))
}

// info prints a status line.
func (u *ui) info(format string, args ...any) {
	fmt.Fprintln(u.out, u.render(styleDim, iconInfo)+" "+fmt.Sprintf(format, args...))
}

// detail prints an indented secondary line.
func (u *ui) detail(format string, args ...any) {
	fmt.Fprintln(u.out, "  "+u.render(styleDim, fmt.Sprintf(format, args...)))
}

// file prints an indented file mapping line.
func (u *ui) file(label, path string) {
	fmt.Fprintln(u.out, "  "+u.render(styleValue, label)+" "+u.render(styleDim, iconArrow)+" "+path)
}

// keyColumn is the label width for keyValue lines. Padding happens before
// styling so alignment survives --no-color.
const keyColumn = 14

// keyValue prints a labeled value with a fixed-width key column.
func (u *ui) keyValue(key, value string) {
	fmt.Fprintln(u.out, u.render(styleKey, fmt.Sprintf("%-*s", keyColumn, key))+" "+u.render(styleValue, value))
}

// next prints a suggested follow-up command.
func (u *ui) next(description, cmd string) {
	fmt.Fprintln(u.out, u.render(styleDim, description+":")+" "+u.render(styleCommand, cmd))
}

// blank prints an empty line.
func (u *ui) blank() {
	fmt.Fprintln(u.out)
}
