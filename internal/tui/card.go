package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rshade/cryptoboard/internal/format"
	"github.com/rshade/cryptoboard/internal/market"
)

// RenderAssetCard renders the full card for one asset: identity, price,
// signed 24h change and the market statistics grid.
func RenderAssetCard(a market.Asset, favorited bool, width int) string {
	var content strings.Builder

	title := HeaderStyle.Render(a.Name) + " " + SubtleStyle.Render(strings.ToUpper(a.Symbol))
	if favorited {
		title += " " + FavoriteStyle.Render("★")
	}
	content.WriteString(title)
	content.WriteString("\n\n")

	content.WriteString(ValueStyle.Render(format.Price(a.CurrentPrice)))
	content.WriteString("\n")
	content.WriteString(changeStyle(a.PriceChangePercentage24h).Render("24h: " + format.SignedPercent(a.PriceChangePercentage24h)))
	content.WriteString("\n\n")

	stats := [][2]string{
		{"High 24h:", format.Price(a.High24h)},
		{"Low 24h:", format.Price(a.Low24h)},
		{"Market Cap:", format.Small(a.MarketCap)},
		{"Total Volume:", format.Small(a.TotalVolume)},
		{"Circulating Supply:", format.Supply(a.CirculatingSupply)},
		{"ATH:", format.Price(a.ATH)},
		{"ATL:", format.Price(a.ATL)},
	}
	labelWidth := 0
	for _, s := range stats {
		labelWidth = max(labelWidth, lipgloss.Width(s[0]))
	}
	for _, s := range stats {
		content.WriteString(LabelStyle.Width(labelWidth + 1).Render(s[0]))
		content.WriteString(ValueStyle.Render(s[1]))
		content.WriteString("\n")
	}
	content.WriteString("\n")
	content.WriteString(LabelStyle.Render("Rank ") + ValueStyle.Render(format.Rank(a.MarketCapRank)))

	return BoxStyle.Width(max(width-borderPadding, minCardWidth)).Render(content.String())
}

const minCardWidth = 30

// cardLines is the height of a compact card including its border.
const cardLines = 5

// renderCompactCard renders a favorite snapshot for the sidebar.
func renderCompactCard(a market.Asset, selected bool, width int) string {
	name := HeaderStyle.Render(a.Name) + " " + SubtleStyle.Render(strings.ToUpper(a.Symbol))
	price := ValueStyle.Render(format.Price(a.CurrentPrice))
	change := changeStyle(a.PriceChangePercentage24h).Render(format.SignedPercent(a.PriceChangePercentage24h))
	body := name + "\n" + price + "  " + change + "\n" + LabelStyle.Render("Rank "+format.Rank(a.MarketCapRank))

	style := BoxStyle
	if selected {
		style = CardSelectedStyle
	}
	return style.Width(max(width-borderPadding, 1)).Render(body)
}
