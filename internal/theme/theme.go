// Package theme maps style names to tcell styles for the terminal and vim views.
package theme

import (
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/bethropolis/termreel/internal/logger"
	"github.com/bethropolis/termreel/internal/script"
)

// Theme is a named set of styles.
type Theme struct {
	Name   string
	IsDark bool
	Styles map[string]tcell.Style
}

// GetStyle returns the style for name, falling back to its base name (the part
// before the first dot) and then to "Default".
func (t *Theme) GetStyle(name string) tcell.Style {
	if style, ok := t.Styles[name]; ok {
		return style
	}

	if dotIndex := strings.Index(name, "."); dotIndex != -1 {
		if style, ok := t.Styles[name[:dotIndex]]; ok {
			return style
		}
	}

	if defStyle, ok := t.Styles["Default"]; ok {
		if name != "Default" {
			logger.DebugTagf("theme", "Theme '%s': Style '%s' not found, falling back to 'Default'", t.Name, name)
		}
		return defStyle
	}

	logger.Warnf("Theme '%s': Style '%s' and 'Default' style not found, using tcell default.", t.Name, name)
	return tcell.StyleDefault
}

// LineStyleName is the style used for a terminal line of kind k.
func LineStyleName(k script.Kind) string {
	return "line." + k.String()
}

// LineStyle returns the style for a terminal line of kind k.
func (t *Theme) LineStyle(k script.Kind) tcell.Style {
	return t.GetStyle(LineStyleName(k))
}

// DevComfortDark is the built-in dark theme.
var DevComfortDark Theme

// Mono uses only attributes, for terminals without color.
var Mono Theme

func init() {
	dcBackground := tcell.NewHexColor(0x2a2f38)
	dcForeground := tcell.NewHexColor(0xc5cdd9)
	dcComment := tcell.NewHexColor(0x5c6370)
	dcRed := tcell.NewHexColor(0xe06c75)
	dcOrange := tcell.NewHexColor(0xd19a66)
	dcYellow := tcell.NewHexColor(0xe5c07b)
	dcGreen := tcell.NewHexColor(0x98c379)
	dcCyan := tcell.NewHexColor(0x56b6c2)
	dcBlue := tcell.NewHexColor(0x61afef)
	dcMagenta := tcell.NewHexColor(0xc678dd)

	baseStyle := tcell.StyleDefault.Background(tcell.ColorReset).Foreground(dcForeground)

	DevComfortDark = Theme{
		Name:   "DevComfort Dark",
		IsDark: true,
		Styles: map[string]tcell.Style{
			"Default":   baseStyle,
			"Selection": baseStyle.Reverse(true),
			"Cursor":    baseStyle.Reverse(true),
			"Title":     tcell.StyleDefault.Background(dcBackground).Foreground(dcComment),

			// Terminal
			"Prompt":       baseStyle.Foreground(dcGreen).Bold(true),
			"line.command": baseStyle.Foreground(dcForeground).Bold(true),
			"line.info":    baseStyle.Foreground(dcBlue),
			"line.success": baseStyle.Foreground(dcGreen),
			"line.error":   baseStyle.Foreground(dcRed).Bold(true),
			"line.log":     baseStyle.Foreground(dcComment),
			"line.warning": baseStyle.Foreground(dcYellow),
			"line.system":  baseStyle.Foreground(dcMagenta),
			"line.vim":     baseStyle,

			// Vim chrome
			"LineNumber":        baseStyle.Foreground(dcComment),
			"LineNumberCurrent": baseStyle.Foreground(dcYellow),
			"Tilde":             baseStyle.Foreground(dcBlue),
			"StatusBar":         tcell.StyleDefault.Background(dcBackground).Foreground(dcForeground),
			"StatusBarMode":     tcell.StyleDefault.Background(dcBlue).Foreground(dcBackground).Bold(true),
			"StatusBarModified": tcell.StyleDefault.Background(dcBackground).Foreground(dcYellow),
			"StatusBarMessage":  baseStyle.Bold(true),
			"StatusBarError":    tcell.StyleDefault.Background(dcRed).Foreground(tcell.ColorWhite),
			"CommandLine":       baseStyle,

			// Syntax
			"keyword":     baseStyle.Foreground(dcBlue).Bold(true),
			"string":      baseStyle.Foreground(dcGreen),
			"comment":     baseStyle.Foreground(dcComment).Italic(true),
			"number":      baseStyle.Foreground(dcOrange),
			"constant":    baseStyle.Foreground(dcOrange),
			"type":        baseStyle.Foreground(dcCyan),
			"function":    baseStyle.Foreground(dcYellow),
			"property":    baseStyle.Foreground(dcForeground),
			"variable":    baseStyle.Foreground(dcForeground),
			"attribute":   baseStyle.Foreground(dcMagenta),
			"operator":    baseStyle.Foreground(dcForeground),
			"punctuation": baseStyle.Foreground(dcComment),

			"type.builtin":      baseStyle.Foreground(dcCyan).Bold(true),
			"variable.builtin":  baseStyle.Foreground(dcCyan),
			"function.method":   baseStyle.Foreground(dcYellow),
			"keyword.modifier":  baseStyle.Foreground(dcMagenta),
			"keyword.coroutine": baseStyle.Foreground(dcMagenta).Bold(true),
		},
	}

	Mono = Theme{
		Name: "Mono",
		Styles: map[string]tcell.Style{
			"Default":           tcell.StyleDefault,
			"Selection":         tcell.StyleDefault.Reverse(true),
			"Cursor":            tcell.StyleDefault.Reverse(true),
			"Prompt":            tcell.StyleDefault.Bold(true),
			"line.command":      tcell.StyleDefault.Bold(true),
			"line.error":        tcell.StyleDefault.Bold(true).Underline(true),
			"line.log":          tcell.StyleDefault.Dim(true),
			"StatusBar":         tcell.StyleDefault.Reverse(true),
			"StatusBarMode":     tcell.StyleDefault.Reverse(true).Bold(true),
			"StatusBarModified": tcell.StyleDefault.Reverse(true),
			"StatusBarError":    tcell.StyleDefault.Bold(true),
			"LineNumber":        tcell.StyleDefault.Dim(true),
			"Tilde":             tcell.StyleDefault.Dim(true),
			"keyword":           tcell.StyleDefault.Bold(true),
			"comment":           tcell.StyleDefault.Italic(true),
		},
	}
}
