// Package tui is a terminal viewer for walking a world locally. It drives
// the same world operations the server exposes, which makes it a handy way
// to eyeball generation and persistence without a client.
package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"stack-and-slash/server/internal/grid"
	"stack-and-slash/server/internal/worlddata"
)

// Model is the Bubble Tea model wrapping one world.
type Model struct {
	world    *worlddata.WorldData
	status   string
	quitting bool
}

// NewModel wraps an already generated world.
func NewModel(world *worlddata.WorldData) Model {
	return Model{
		world:  world,
		status: fmt.Sprintf("world %d", world.Seed()),
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles keyboard input.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.String() {
	case "ctrl+c", "q":
		m.quitting = true
		return m, tea.Quit
	case "up", "w":
		m.move(0, -1)
	case "down", "s":
		m.move(0, 1)
	case "left", "a":
		m.move(-1, 0)
	case "right", "d":
		m.move(1, 0)
	case "t":
		m.world.TeleportPlayer(0, 0)
		m.status = "teleported to origin"
	case "x":
		m.removeHere()
	case "o":
		if err := m.world.SaveData(); err != nil {
			m.status = fmt.Sprintf("save failed: %v", err)
		} else {
			m.status = "saved"
		}
	}
	return m, nil
}

func (m *Model) move(dx, dy int) {
	pos := m.world.PlayerLocation()
	m.world.UpdatePlayerLocation(pos.X+dx, pos.Y+dy)
	m.status = fmt.Sprintf("at %d,%d", pos.X+dx, pos.Y+dy)
}

func (m *Model) removeHere() {
	pos := m.world.PlayerLocation()
	feature := m.world.FeatureAt(pos)
	if feature == nil {
		m.status = "nothing here"
		return
	}
	kind := feature.Kind()
	m.world.RemoveFeature(pos)
	m.status = fmt.Sprintf("removed %s at %d,%d", kind, pos.X, pos.Y)
}

// featureAt is the render lookup for one cell.
func (m Model) featureAt(x, y int) *worlddata.Feature {
	return m.world.FeatureAt(grid.Point{X: x, Y: y})
}
