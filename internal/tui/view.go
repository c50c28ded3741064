package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jask/tiermaker/internal/tierlist"
)

const labelWidth = 10

// paletteColors maps stored color tokens to terminal colors.
var paletteColors = map[string]lipgloss.Color{
	"bg-red-500":    lipgloss.Color("#ef4444"),
	"bg-orange-500": lipgloss.Color("#f97316"),
	"bg-yellow-500": lipgloss.Color("#eab308"),
	"bg-green-500":  lipgloss.Color("#22c55e"),
	"bg-blue-500":   lipgloss.Color("#3b82f6"),
	"bg-purple-500": lipgloss.Color("#a855f7"),
	"bg-pink-500":   lipgloss.Color("#ec4899"),
	"bg-gray-500":   lipgloss.Color("#6b7280"),
}

// styles
var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Underline(true)
	labelStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#111827")).Width(labelWidth).Align(lipgloss.Center)
	unrankedStyle = lipgloss.NewStyle().Bold(true).Width(labelWidth).Align(lipgloss.Center).Foreground(lipgloss.Color("#d1d5db"))
	chipStyle     = lipgloss.NewStyle().Padding(0, 1).Border(lipgloss.NormalBorder())
	cursorStyle   = chipStyle.BorderForeground(lipgloss.Color("#facc15")).Bold(true)
	heldStyle     = chipStyle.BorderStyle(lipgloss.DoubleBorder()).BorderForeground(lipgloss.Color("#38bdf8"))
	dimStyle      = lipgloss.NewStyle().Faint(true)
	modalStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
)

func tierColor(token string) lipgloss.Color {
	if c, ok := paletteColors[token]; ok {
		return c
	}
	return paletteColors["bg-gray-500"]
}

// itemTitle is the short text shown for an item.
func itemTitle(it tierlist.Item) string {
	if it.Kind == tierlist.KindImage {
		if it.Label != "" {
			return "[img] " + it.Label
		}
		return "[img]"
	}
	if it.Label != "" {
		return it.Payload + " (" + it.Label + ")"
	}
	return it.Payload
}

func (a *App) View() string {
	b := a.board()
	var sb strings.Builder
	title := "Tier List"
	if a.dirty {
		title += " *"
	}
	sb.WriteString(titleStyle.Render(title) + "\n\n")

	for i, tier := range b.Tiers {
		label := labelStyle.Background(tierColor(tier.Color)).Render(tier.Name)
		sb.WriteString(a.renderRow(i, label, tier.Items) + "\n")
	}
	sb.WriteString("\n" + a.renderRow(len(b.Tiers), unrankedStyle.Render("Unranked"), b.Unranked) + "\n")
	if a.chart {
		sb.WriteString("\n" + tierChart(b, a.width) + "\n")
	}

	if a.modal != modalNone {
		sb.WriteString("\n" + modalStyle.Render(a.renderModal()) + "\n")
	}
	sb.WriteString("\n" + a.help.View(a.keys))
	if a.status != "" {
		sb.WriteString("\n" + a.status)
	}
	return sb.String()
}

func (a *App) renderRow(row int, label string, items []tierlist.Item) string {
	marker := "  "
	if row == a.row {
		marker = "▶ "
	}
	chips := make([]string, 0, len(items))
	for i, it := range items {
		style := chipStyle
		switch {
		case it.ID == a.held:
			style = heldStyle
		case row == a.row && i == a.col:
			style = cursorStyle
		}
		chips = append(chips, style.Render(itemTitle(it)))
	}
	body := dimStyle.Render("(empty)")
	if len(chips) > 0 {
		body = lipgloss.JoinHorizontal(lipgloss.Top, chips...)
	}
	if a.width > labelWidth+4 {
		body = lipgloss.NewStyle().MaxWidth(a.width - labelWidth - 4).Render(body)
	}
	return lipgloss.JoinHorizontal(lipgloss.Center, marker, label, " ", body)
}

func (a *App) renderModal() string {
	switch a.modal {
	case modalNewItem:
		return titleStyle.Render("New text item") + fmt.Sprintf("\n%s\n[enter] Add  [esc] Cancel", a.input)
	case modalImage:
		return titleStyle.Render("Add image (file path)") + fmt.Sprintf("\n%s\n[enter] Add  [esc] Cancel", a.input)
	case modalImportCSV:
		return titleStyle.Render("Import CSV (text[,label] per line)") + fmt.Sprintf("\n%s\n[enter] Import  [esc] Cancel", a.input)
	case modalNewTier:
		return titleStyle.Render("New tier") + fmt.Sprintf("\n%s\n[enter] Save  [esc] Cancel", a.input)
	case modalRenameTier:
		return titleStyle.Render("Rename tier") + fmt.Sprintf("\n%s\n[enter] Save  [esc] Cancel", a.input)
	case modalSearch:
		out := titleStyle.Render("Find item") + "\n" + a.input + "\n"
		for i, m := range a.matches {
			marker := " "
			if i == a.matchIdx {
				marker = "▶"
			}
			out += fmt.Sprintf("%s %s  %s\n", marker, itemTitle(m.Item), dimStyle.Render(a.containerName(m.ContainerID)))
		}
		return out + "[enter] Jump  [esc] Cancel"
	case modalShare:
		out := titleStyle.Render("Share link") + "\n" + a.link + "\n"
		if a.services.Session.Oversized(a.link) {
			out += fmt.Sprintf("warning: link is %d bytes and may be cut off by browsers or chat apps\n", len(a.link))
		}
		return out + "[any key] Close"
	case modalConfirmReset:
		return titleStyle.Render("Reset board?") + "\nAll items and custom tiers will be removed.\n[y] Yes  [n] No"
	default:
		return ""
	}
}

func (a *App) containerName(id string) string {
	if t, ok := a.board().Tier(id); ok {
		return t.Name
	}
	return "Unranked"
}
