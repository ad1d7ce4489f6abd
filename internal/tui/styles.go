package tui

import (
	"github.com/charmbracelet/lipgloss"
)

var (
	colorWhite     = lipgloss.Color("#FFFFFF")
	colorLightGray = lipgloss.Color("#CCCCCC")
	colorGray      = lipgloss.Color("#888888")
	colorDarkGray  = lipgloss.Color("#444444")
	colorCyan      = lipgloss.Color("#5FD7FF")
)

var (
	userStyle = lipgloss.NewStyle().
			Foreground(colorCyan).
			Bold(true)

	assistantStyle = lipgloss.NewStyle().
			Foreground(colorWhite)

	metaStyle = lipgloss.NewStyle().
			Foreground(colorGray).
			Italic(true)

	statusStyle = lipgloss.NewStyle().
			Foreground(colorGray).
			Italic(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(colorLightGray).
			Bold(true)

	helpStyle = lipgloss.NewStyle().
			Foreground(colorDarkGray).
			Italic(true)

	inputBoxStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(colorGray).
			Padding(0, 1)
)

const logo = `
  ██████╗  █████╗ ██████╗ ███████╗██████╗ ███╗   ███╗██╗███╗   ██╗██████╗
  ██╔══██╗██╔══██╗██╔══██╗██╔════╝██╔══██╗████╗ ████║██║████╗  ██║██╔══██╗
  ██████╔╝███████║██████╔╝█████╗  ██████╔╝██╔████╔██║██║██╔██╗ ██║██║  ██║
  ██╔═══╝ ██╔══██║██╔═══╝ ██╔══╝  ██╔══██╗██║╚██╔╝██║██║██║╚██╗██║██║  ██║
  ██║     ██║  ██║██║     ███████╗██║  ██║██║ ╚═╝ ██║██║██║ ╚████║██████╔╝
  ╚═╝     ╚═╝  ╚═╝╚═╝     ╚══════╝╚═╝  ╚═╝╚═╝     ╚═╝╚═╝╚═╝  ╚═══╝╚═════╝
`
