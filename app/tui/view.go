package tui

import (
	"fmt"
	"strings"

	"replygen/app/model"

	"github.com/charmbracelet/lipgloss"
)

func (m *Model) View() string {
	state := m.ctrl.Snapshot()

	var b strings.Builder

	b.WriteString(titleStyle.Render("Generador de Respuestas Creativas"))
	b.WriteString("\n\n")
	b.WriteString(m.input.View())
	b.WriteString("\n\n")

	b.WriteString(renderOptions("Tono", model.Tones, state.Draft.Tone, activeToneStyle))
	b.WriteString("\n")
	b.WriteString(renderOptions("Intensidad", model.Intensities, state.Draft.Intensity, activeIntensityStyle))
	b.WriteString("\n\n")

	switch {
	case state.Loading:
		b.WriteString(m.spinner.View() + " Generando...")
		b.WriteString("\n\n")
	case state.Reply != "":
		b.WriteString(replyStyle.Width(m.contentWidth()).Render(state.Reply))
		b.WriteString("\n\n")
	}

	if n := len(state.Favorites); n > 0 {
		b.WriteString(labelStyle.Render(fmt.Sprintf("Favoritas: %d", n)))
		b.WriteString("\n\n")
	}

	if len(state.History) > 0 {
		b.WriteString(m.renderHistory(state.Filter))
		b.WriteString("\n")
	}

	if m.status != "" {
		style := statusStyle
		if m.statusErr {
			style = errorStyle
		}
		b.WriteString(style.Render(m.status))
		b.WriteString("\n")
	}

	b.WriteString(m.help.View(m.keys))

	return b.String()
}

func (m *Model) renderHistory(filter model.Filter) string {
	var b strings.Builder

	b.WriteString(lipgloss.NewStyle().Bold(true).Render("Historial de Respuestas"))
	b.WriteString("  ")
	b.WriteString(labelStyle.Render("Filtro: " + filterLabel(filter)))
	b.WriteString("\n")

	i := 0
	for entry := range m.ctrl.FilteredHistory() {
		cursor := "  "
		prompt := "Prompt: " + entry.Prompt
		if i == m.selected {
			cursor = selectedStyle.Render("▸ ")
			prompt = selectedStyle.Render(prompt)
		}

		b.WriteString(cursor + prompt + "\n")
		b.WriteString("  Respuesta: " + entry.Reply + "\n")
		b.WriteString("  " + metaStyle.Render(fmt.Sprintf("Tono: %s, Intensidad: %s", entry.Tone, entry.Intensity)) + "\n")
		i++
	}

	if i == 0 {
		b.WriteString(labelStyle.Render("Sin respuestas para este tono"))
	}

	return historyStyle.Width(m.contentWidth()).Render(strings.TrimRight(b.String(), "\n"))
}

func renderOptions[T ~string](label string, values []T, active T, activeStyle lipgloss.Style) string {
	parts := make([]string, 0, len(values)+1)
	parts = append(parts, labelStyle.Render(fmt.Sprintf("%-11s", label)))

	for _, v := range values {
		style := optionStyle
		if v == active {
			style = activeStyle
		}
		parts = append(parts, style.Render(capitalize(string(v))))
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func filterLabel(f model.Filter) string {
	if f == model.FilterAll {
		return "Todos los tonos"
	}
	return capitalize(string(f))
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	return strings.ToUpper(string(r[0])) + string(r[1:])
}

func (m *Model) contentWidth() int {
	if m.width <= 0 {
		return 76
	}
	return max(m.width-4, 20)
}
