package main

import "github.com/charmbracelet/lipgloss"

// Shared lipgloss styles for command output.
var (
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	subtleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	incomeStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("36"))
	expenseStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
)

// categoryPalette colors breakdown rows; the report engine's color index is
// taken modulo its length.
var categoryPalette = []lipgloss.Color{
	"#3b82f6",
	"#ef4444",
	"#10b981",
	"#f59e0b",
	"#8b5cf6",
	"#ec4899",
	"#14b8a6",
	"#f97316",
	"#6366f1",
	"#84cc16",
}

func categoryStyle(index int) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(categoryPalette[index%len(categoryPalette)])
}

func kindStyle(income bool) lipgloss.Style {
	if income {
		return incomeStyle
	}
	return expenseStyle
}
