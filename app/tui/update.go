package tui

import (
	"fmt"
	"slices"

	"replygen/app/model"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.input.Width = max(msg.Width-6, 10)
		m.help.Width = msg.Width
		return m, nil

	case spinner.TickMsg:
		if !m.ctrl.Snapshot().Loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case generatedMsg:
		m.ctrl.Complete(msg.pending, msg.reply, msg.err)
		if msg.err != nil {
			m.setError("No se pudo generar la respuesta")
		} else {
			m.setStatus("")
		}
		return m, nil

	case tea.KeyMsg:
		if cmd, handled := m.handleKey(msg); handled {
			return m, cmd
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.ctrl.SetDraftMessage(m.input.Value())

	return m, cmd
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	state := m.ctrl.Snapshot()

	switch {
	case key.Matches(msg, m.keys.Quit):
		return tea.Quit, true

	case key.Matches(msg, m.keys.Generate):
		return m.generate(), true

	case key.Matches(msg, m.keys.NextTone):
		_ = m.ctrl.SetTone(model.Next(model.Tones, state.Draft.Tone))
		return nil, true

	case key.Matches(msg, m.keys.NextIntensity):
		_ = m.ctrl.SetIntensity(model.Next(model.Intensities, state.Draft.Intensity))
		return nil, true

	case key.Matches(msg, m.keys.Save):
		if m.ctrl.SaveFavorite() {
			m.setStatus("Guardada en favoritas")
		}
		return nil, true

	case key.Matches(msg, m.keys.Export):
		m.export()
		return nil, true

	case key.Matches(msg, m.keys.NextFilter):
		_ = m.ctrl.SetFilterTone(model.Next(model.Filters, state.Filter))
		m.selected = 0
		return nil, true

	case key.Matches(msg, m.keys.Up):
		if m.selected > 0 {
			m.selected--
		}
		return nil, true

	case key.Matches(msg, m.keys.Down):
		if m.selected < m.visibleCount()-1 {
			m.selected++
		}
		return nil, true

	case key.Matches(msg, m.keys.Delete):
		if m.ctrl.DeleteHistoryItem(m.selected) {
			m.selected = min(m.selected, max(m.visibleCount()-1, 0))
		}
		return nil, true
	}

	return nil, false
}

// generate starts a generation and returns the command performing the
// gateway call. The call runs off the event loop so the draft stays editable.
func (m *Model) generate() tea.Cmd {
	p, ok := m.ctrl.Begin()
	if !ok {
		return nil
	}

	m.setStatus("")

	ctx, ctrl := m.ctx, m.ctrl

	return tea.Batch(m.spinner.Tick, func() tea.Msg {
		reply, err := ctrl.Run(ctx, p)
		return generatedMsg{pending: p, reply: reply, err: err}
	})
}

func (m *Model) export() {
	path, err := m.ctrl.WriteFavorites(m.exportDir)
	switch {
	case err != nil:
		m.setError(fmt.Sprintf("No se pudo exportar: %v", err))
	case path != "":
		m.setStatus("Exportado a " + path)
	}
}

func (m *Model) visibleCount() int {
	return len(slices.Collect(m.ctrl.FilteredHistory()))
}

func (m *Model) setStatus(text string) {
	m.status = text
	m.statusErr = false
}

func (m *Model) setError(text string) {
	m.status = text
	m.statusErr = true
}
