package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"stack-and-slash/server/internal/worlddata"
)

var (
	playerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
	emptyStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))

	kindStyles = map[worlddata.Kind]lipgloss.Style{
		worlddata.KindTree:      lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
		worlddata.KindCrate:     lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
		worlddata.KindTombstone: lipgloss.NewStyle().Foreground(lipgloss.Color("7")),
	}
)

// View renders the generation window centered on the player, one rune per
// cell, with a status line underneath.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	player := m.world.PlayerLocation()
	radius := m.world.Radius()

	var sb strings.Builder
	sb.Grow((2*radius + 2) * (2*radius + 1))

	for y := player.Y - radius; y <= player.Y+radius; y++ {
		for x := player.X - radius; x <= player.X+radius; x++ {
			sb.WriteString(m.renderCell(x, y, player.X == x && player.Y == y))
		}
		sb.WriteByte('\n')
	}

	sb.WriteString(statusStyle.Render(fmt.Sprintf(
		"seed %d  pos %d,%d  features %d  [wasd/arrows move, t origin, x chop, o save, q quit]  %s",
		m.world.Seed(), player.X, player.Y, len(m.world.Surroundings()), m.status,
	)))
	return sb.String()
}

func (m Model) renderCell(x, y int, isPlayer bool) string {
	if isPlayer {
		return playerStyle.Render("@")
	}
	feature := m.featureAt(x, y)
	if feature == nil {
		return emptyStyle.Render(".")
	}
	def, ok := worlddata.LookupKind(feature.Kind())
	if !ok {
		return "?"
	}
	style, ok := kindStyles[feature.Kind()]
	if !ok {
		return string(def.Glyph)
	}
	return style.Render(string(def.Glyph))
}
