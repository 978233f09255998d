package lawbot

// Theme defines semantic color mappings using ANSI color indices (0-15).
// The user's terminal theme determines the actual RGB values, so the app
// automatically matches any color scheme.
type Theme struct {
	UserMsg  int // User message accent
	BotMsg   int // Bot message text
	System   int // System notices
	Error    int // Error messages
	Citation int // Grounding citation list
	Muted    int // Status bar, placeholders
	CodeBg   int // Code block background
	Accent   int // Headings, links, active session
}

// DefaultTheme returns the default ANSI color mapping.
func DefaultTheme() Theme {
	return Theme{
		UserMsg:  4,
		BotMsg:   -1,
		System:   3,
		Error:    1,
		Citation: 6,
		Muted:    8,
		CodeBg:   0,
		Accent:   5,
	}
}
