package browse

import "github.com/charmbracelet/lipgloss"

// Theme names accepted by the browser and stored in settings.
const (
	ThemeLight = "light"
	ThemeDark  = "dark"
)

// palette holds the iOS system colors the styles are built from.
type palette struct {
	background    lipgloss.Color
	backgroundAlt lipgloss.Color
	text          lipgloss.Color
	textSecondary lipgloss.Color
	textTertiary  lipgloss.Color
	border        lipgloss.Color
	primary       lipgloss.Color
	success       lipgloss.Color
	warning       lipgloss.Color
	errorColor    lipgloss.Color
}

var palettes = map[string]palette{
	ThemeLight: {
		background:    "#FFFFFF",
		backgroundAlt: "#F2F2F7",
		text:          "#000000",
		textSecondary: "#3C3C43",
		textTertiary:  "#8E8E93",
		border:        "#C6C6C8",
		primary:       "#007AFF",
		success:       "#34C759",
		warning:       "#FF9500",
		errorColor:    "#FF3B30",
	},
	ThemeDark: {
		background:    "#000000",
		backgroundAlt: "#1C1C1E",
		text:          "#FFFFFF",
		textSecondary: "#EBEBF5",
		textTertiary:  "#8E8E93",
		border:        "#38383A",
		primary:       "#0A84FF",
		success:       "#30D158",
		warning:       "#FF9F0A",
		errorColor:    "#FF453A",
	},
}

// NormalizeTheme maps any value to a known theme, defaulting to light.
func NormalizeTheme(name string) string {
	if name == ThemeDark {
		return ThemeDark
	}
	return ThemeLight
}

// ToggleTheme returns the other theme.
func ToggleTheme(name string) string {
	if NormalizeTheme(name) == ThemeDark {
		return ThemeLight
	}
	return ThemeDark
}

type styles struct {
	activeTab     lipgloss.Style
	inactiveTab   lipgloss.Style
	border        lipgloss.Style
	statusBar     lipgloss.Style
	title         lipgloss.Style
	subtitle      lipgloss.Style
	selectedTitle lipgloss.Style
	selectedSub   lipgloss.Style
	badge         lipgloss.Style
	appliedBadge  lipgloss.Style
	label         lipgloss.Style
	value         lipgloss.Style
	heading       lipgloss.Style
	body          lipgloss.Style
	hint          lipgloss.Style
	errorText     lipgloss.Style
	flash         lipgloss.Style
}

func newStyles(theme string) styles {
	p := palettes[NormalizeTheme(theme)]
	return styles{
		activeTab: lipgloss.NewStyle().
			Bold(true).
			Padding(0, 2).
			Foreground(p.background).
			Background(p.primary),
		inactiveTab: lipgloss.NewStyle().
			Padding(0, 2).
			Foreground(p.textTertiary).
			Background(p.backgroundAlt),
		border: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.border),
		statusBar: lipgloss.NewStyle().
			Padding(0, 1).
			Foreground(p.textSecondary).
			Background(p.backgroundAlt),
		title: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.text),
		subtitle: lipgloss.NewStyle().
			Foreground(p.textTertiary),
		selectedTitle: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.primary),
		selectedSub: lipgloss.NewStyle().
			Foreground(p.textSecondary),
		badge: lipgloss.NewStyle().
			Foreground(p.warning),
		appliedBadge: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.success),
		label: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.primary).
			Width(12),
		value: lipgloss.NewStyle().
			Foreground(p.text),
		heading: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.text).
			MarginTop(1),
		body: lipgloss.NewStyle().
			Foreground(p.textSecondary),
		hint: lipgloss.NewStyle().
			Italic(true).
			Foreground(p.textTertiary),
		errorText: lipgloss.NewStyle().
			Foreground(p.errorColor),
		flash: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.success),
	}
}
