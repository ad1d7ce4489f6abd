package main

import (
	"flag"
	"fmt"
	"os"

	"codeberg.org/papermind/server/internal/tui"
	tea "github.com/charmbracelet/bubbletea"
)

func main() {
	documentID := flag.String("document", "", "scope questions to one document id")
	flag.Parse()

	app := tui.NewApp(*documentID)
	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithMouseCellMotion())

	if _, err := p.Run(); err != nil {
		fmt.Printf("error running papermind: %v\n", err)
		os.Exit(1)
	}
}
