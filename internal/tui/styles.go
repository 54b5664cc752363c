package tui

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles は画面表示に使う lipgloss スタイルの一式を保持するのだ。
type Styles struct {
	Header  lipgloss.Style
	Label   lipgloss.Style
	Warning lipgloss.Style
}

// DefaultStyles は標準のスタイルセットを返します。
func DefaultStyles() Styles {
	return Styles{
		Header: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205")).
			Border(lipgloss.DoubleBorder()).
			Padding(0, 2),
		Label:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		Warning: lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
	}
}

// RenderHeader はアプリケーションのバナーを描画するのだ。
func RenderHeader(s Styles) string {
	return s.Header.Render("🦄 Pony Matrix Prompt Generator")
}
