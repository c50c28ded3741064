package tui

import (
	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/lipgloss"

	"github.com/jask/tiermaker/internal/tierlist"
)

const (
	chartHeight   = 8
	chartLabelLen = 3
)

var unrankedBarStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#d1d5db"))

// tierChart draws one bar per tier with its item count, unranked last.
func tierChart(b tierlist.Board, width int) string {
	if b.ItemCount() == 0 {
		return dimStyle.Render("(no items yet)")
	}
	data := make([]barchart.BarData, 0, len(b.Tiers)+1)
	for _, t := range b.Tiers {
		data = append(data, bar(t.Name, len(t.Items), lipgloss.NewStyle().Foreground(tierColor(t.Color))))
	}
	data = append(data, bar("Unranked", len(b.Unranked), unrankedBarStyle))

	w := len(data) * (chartLabelLen + 1)
	if width > w {
		w = min(width, len(data)*8)
	}
	bc := barchart.New(w, chartHeight, barchart.WithDataSet(data), barchart.WithBarGap(1))
	bc.Draw()
	return bc.View()
}

func bar(name string, count int, style lipgloss.Style) barchart.BarData {
	label := []rune(name)
	if len(label) > chartLabelLen {
		label = label[:chartLabelLen]
	}
	return barchart.BarData{
		Label:  string(label),
		Values: []barchart.BarValue{{Name: name, Value: float64(count), Style: style}},
	}
}
