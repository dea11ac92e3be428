package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Generate      key.Binding
	NextTone      key.Binding
	NextIntensity key.Binding
	Save          key.Binding
	Export        key.Binding
	NextFilter    key.Binding
	Up            key.Binding
	Down          key.Binding
	Delete        key.Binding
	Quit          key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Generate: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "generar"),
		),
		NextTone: key.NewBinding(
			key.WithKeys("ctrl+t"),
			key.WithHelp("ctrl+t", "tono"),
		),
		NextIntensity: key.NewBinding(
			key.WithKeys("ctrl+n"),
			key.WithHelp("ctrl+n", "intensidad"),
		),
		Save: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "guardar"),
		),
		Export: key.NewBinding(
			key.WithKeys("ctrl+e"),
			key.WithHelp("ctrl+e", "exportar"),
		),
		NextFilter: key.NewBinding(
			key.WithKeys("ctrl+f"),
			key.WithHelp("ctrl+f", "filtrar"),
		),
		Up: key.NewBinding(
			key.WithKeys("up"),
			key.WithHelp("↑/↓", "historial"),
		),
		Down: key.NewBinding(
			key.WithKeys("down"),
		),
		Delete: key.NewBinding(
			key.WithKeys("ctrl+d"),
			key.WithHelp("ctrl+d", "borrar"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "esc"),
			key.WithHelp("esc", "salir"),
		),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Generate, k.NextTone, k.NextIntensity, k.Save, k.Export, k.NextFilter, k.Up, k.Delete, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Generate, k.NextTone, k.NextIntensity},
		{k.Save, k.Export},
		{k.NextFilter, k.Up, k.Delete, k.Quit},
	}
}
