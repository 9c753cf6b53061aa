package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

const AppName = "agrilearn"

// ASCII art logo lines - canonical definition
var LogoLines = []string{
	"▄▀█ █▀▀ █▀█ █ █   █▀▀ ▄▀█ █▀█ █▄ █",
	"█▀█ █▄█ █▀▄ █ █▄▄ ██▄ █▀█ █▀▄ █ ▀█",
}

const CompactLogo = `agrilearn ›`

// Banner gradient colors
var BannerColors = []lipgloss.Color{
	lipgloss.Color("#A8E063"),
	lipgloss.Color("#56AB2F"),
	lipgloss.Color("#4ECDC4"),
	lipgloss.Color("#A8E063"),
}

// Brand colors follow the growing season: seedling green through
// harvest gold.
var (
	PrimaryColor   = lipgloss.Color("#A8E063") // young leaf
	SecondaryColor = lipgloss.Color("#56AB2F") // field green
	AccentColor    = lipgloss.Color("#4ECDC4") // irrigation teal

	BackgroundColor = lipgloss.Color("#1A2E1A")
	SurfaceColor    = lipgloss.Color("#16301C")
	TextColor       = lipgloss.Color("#EAEAEA")
	MutedColor      = lipgloss.Color("#94A3B8")

	UnreadColor  = lipgloss.Color("#FFE66D") // harvest gold
	ReadColor    = lipgloss.Color("#64748B")
	ErrorColor   = lipgloss.Color("#EF4444")
	SuccessColor = lipgloss.Color("#10B981")
)

// Styled components
var (
	LogoStyle = lipgloss.NewStyle().
			Foreground(PrimaryColor).
			Bold(true)

	TitleStyle = lipgloss.NewStyle().
			Foreground(TextColor).
			Background(SurfaceColor).
			Bold(true).
			Padding(0, 2)

	HeaderStyle = lipgloss.NewStyle().
			Foreground(SecondaryColor).
			Bold(true)

	StatusBarStyle = lipgloss.NewStyle().
			Foreground(MutedColor).
			Padding(0, 1)

	UnreadItemStyle = lipgloss.NewStyle().
			Foreground(UnreadColor).
			Bold(true)

	ReadItemStyle = lipgloss.NewStyle().
			Foreground(ReadColor)

	HelpStyle = lipgloss.NewStyle().
			Foreground(MutedColor).
			Italic(true)

	TimeStyle = lipgloss.NewStyle().
			Foreground(MutedColor).
			Faint(true)

	ErrorMessageStyle = lipgloss.NewStyle().
				Foreground(ErrorColor).
				Bold(true)

	SeparatorStyle = lipgloss.NewStyle().
			Foreground(MutedColor)

	StatusInfoStyle = lipgloss.NewStyle().
			Foreground(MutedColor)

	StatusSuccessStyle = lipgloss.NewStyle().
				Foreground(SuccessColor)

	StatusWarnStyle = lipgloss.NewStyle().
			Foreground(UnreadColor)

	StatusErrorStyle = lipgloss.NewStyle().
				Foreground(ErrorColor).
				Bold(true)

	CategoryStyle = lipgloss.NewStyle().
			Foreground(AccentColor).
			Bold(true)

	EmptyStyle = lipgloss.NewStyle()
)

// ContentWrapper returns a style for wrapping content with width and height constraints
func ContentWrapper(width, height int) lipgloss.Style {
	return EmptyStyle.Width(width).Height(height).MaxHeight(height)
}

func GetWelcomeMessage() string {
	return GetCompactBanner("Press enter to browse • ctrl+s to search")
}

func GetCompactBanner(message string) string {
	var coloredLines []string
	for _, line := range LogoLines {
		coloredLines = append(coloredLines, LogoStyle.Render(line))
	}

	logo := lipgloss.JoinVertical(lipgloss.Center, coloredLines...)

	return lipgloss.JoinVertical(
		lipgloss.Center,
		logo,
		"",
		HelpStyle.Render(message),
	)
}

func ShowBanner(version string) {
	lines := make([]string, len(LogoLines)+1)
	copy(lines, LogoLines)
	lines[len(LogoLines)] = ""

	versionTag := version
	if versionTag != "" && versionTag != "dev" {
		if versionTag[0] != 'v' && versionTag[0] != 'V' {
			versionTag = "v" + versionTag
		}
		lines = append(lines, fmt.Sprintf("  Agricultural Learning Companion %s", versionTag))
	} else {
		lines = append(lines, "  Agricultural Learning Companion")
	}

	var coloredLines []string
	for i, line := range lines {
		if line == "" {
			coloredLines = append(coloredLines, line)
			continue
		}

		colorIdx := i % len(BannerColors)
		style := lipgloss.NewStyle().
			Foreground(BannerColors[colorIdx]).
			Bold(i < len(LogoLines))

		coloredLines = append(coloredLines, style.Render(line))
	}

	borderStyle := lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(AccentColor).
		Padding(1, 3).
		MarginTop(1)

	banner := lipgloss.JoinVertical(lipgloss.Center, coloredLines...)
	output := borderStyle.Render(banner)

	fmt.Println(lipgloss.NewStyle().
		Width(70).
		Align(lipgloss.Center).
		Render(output))
}
