// Package layout splits the terminal into the dashboard's panels.
package layout

// Rect is a panel's outer size including its border.
type Rect struct {
	Width  int
	Height int
}

// Layout holds the computed dimensions for every panel.
//
//	┌ Form ──────┐┌ Timeline ───────────┐
//	├ Summary ───┤├ Fixes ──────────────┤
//	│            ││                     │
//	├ Score ─────┤├ Console ────────────┤
//	└────────────┘└─────────────────────┘
//	status bar
type Layout struct {
	TermWidth  int
	TermHeight int
	TooSmall   bool

	Form    Rect
	Summary Rect
	Score   Rect

	Timeline Rect
	Fixes    Rect
	Console  Rect

	StatusBarWidth int
}

const (
	MinWidth  = 80
	MinHeight = 24

	LeftColWeight = 0.38

	FormHeight     = 8
	ScoreHeight    = 7
	TimelineHeight = 7

	// ConsoleWeight is the console's share of the right column below the
	// timeline.
	ConsoleWeight = 0.45
)

// Calculate computes panel sizes for a terminal. One row is reserved for the
// status bar. The console is omitted (zero Rect) when showConsole is false and
// fixes take the remaining height.
func Calculate(termWidth, termHeight int, showConsole bool) Layout {
	l := Layout{TermWidth: termWidth, TermHeight: termHeight}
	if termWidth < MinWidth || termHeight < MinHeight {
		l.TooSmall = true
		return l
	}

	usable := termHeight - 1
	leftW := int(float64(termWidth) * LeftColWeight)
	rightW := termWidth - leftW

	l.Form = Rect{Width: leftW, Height: FormHeight}
	l.Score = Rect{Width: leftW, Height: ScoreHeight}
	l.Summary = Rect{Width: leftW, Height: usable - FormHeight - ScoreHeight}

	l.Timeline = Rect{Width: rightW, Height: TimelineHeight}
	rest := usable - TimelineHeight
	if showConsole {
		consoleH := int(float64(rest) * ConsoleWeight)
		l.Console = Rect{Width: rightW, Height: consoleH}
		l.Fixes = Rect{Width: rightW, Height: rest - consoleH}
	} else {
		l.Fixes = Rect{Width: rightW, Height: rest}
	}

	l.StatusBarWidth = termWidth
	return l
}
