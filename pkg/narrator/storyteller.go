package narrator

import (
	"github.com/charmbracelet/lipgloss"
)

var victoryStyle = lipgloss.NewStyle().
	Border(lipgloss.DoubleBorder()).
	Padding(1, 3).
	Align(lipgloss.Center)

// CongratulateVictory renders the boxed victory banner.
func (dm *DungeonMaster) CongratulateVictory(playerName string) string {
	return victoryStyle.Render("🎉 Victory! 🎉\n\n" + playerName + " completed the adventure!\n\nThanks for playing!")
}

// FormatDialogue quotes text, attributing it when a speaker is given.
func FormatDialogue(text, speaker string) string {
	if speaker != "" {
		return `"` + text + `" — ` + speaker
	}
	return `"` + text + `"`
}

// FormatAction marks text as a stage direction.
func FormatAction(text string) string {
	return "*" + text + "*"
}

// AddDrama wraps text in emphasis for levels 1 and 2; any other level gets
// the strongest one.
func AddDrama(text string, level int) string {
	switch level {
	case 1:
		return "✨ " + text
	case 2:
		return "⚡ " + text + " ⚡"
	default:
		return "🔥 " + text + " 🔥"
	}
}
