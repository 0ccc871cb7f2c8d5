package app

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/kerbaras/logolink/pkg/app/screens"
)

type App struct {
	document string
	load     screens.Loader
}

func NewApp(document string, load screens.Loader) *App {
	return &App{document: document, load: load}
}

func (a *App) Run() error {
	model := screens.NewRootScreen(a.document, a.load)
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err := p.Run()
	return err
}
