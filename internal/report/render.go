// Package report renders a one-off asset snapshot for non-interactive output.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/rshade/cryptoboard/internal/cli/pagination"
	"github.com/rshade/cryptoboard/internal/format"
	"github.com/rshade/cryptoboard/internal/listing"
	"github.com/rshade/cryptoboard/internal/market"
)

// Output formats accepted by Render.
const (
	FormatTable = "table"
	FormatJSON  = "json"
)

// tabwriterPadding is the minimum padding between columns in the plain table.
const tabwriterPadding = 2

// Snapshot is one derived view of the asset list.
type Snapshot struct {
	LastUpdated time.Time
	Sort        listing.SortSpec
	Search      string
	Total       int // assets before filtering
	Assets      []market.Asset
	// Pagination is set when only a window of the filtered list is shown.
	Pagination *pagination.Meta
}

// Render writes s in the requested format. Styled selects the lipgloss
// table instead of the plain tab-aligned one.
func Render(w io.Writer, outputFormat string, styled bool, s Snapshot) error {
	switch outputFormat {
	case FormatJSON:
		return RenderJSON(w, s)
	case FormatTable, "":
		if styled {
			return RenderStyled(w, s)
		}
		return RenderTable(w, s)
	default:
		return fmt.Errorf("unsupported output format: %s", outputFormat)
	}
}

func headers(spec listing.SortSpec) []string {
	out := make([]string, 0, len(listing.Columns))
	for _, k := range listing.Columns {
		title := k.Title()
		if spec.Key == k {
			title += " " + spec.Direction.Arrow()
		}
		out = append(out, title)
	}
	return out
}

func cells(a market.Asset) []string {
	return []string{
		format.Rank(a.MarketCapRank),
		a.Name + " " + strings.ToUpper(a.Symbol),
		format.Price(a.CurrentPrice),
		format.Percent(a.PriceChangePercentage24h),
		format.Small(a.TotalVolume),
		format.Small(a.MarketCap),
	}
}

func footer(s Snapshot) string {
	line := fmt.Sprintf("%d of %d assets", len(s.Assets), s.Total)
	if s.Pagination != nil {
		line += fmt.Sprintf(" · Page %d of %d", s.Pagination.CurrentPage, s.Pagination.TotalPages)
	}
	if !s.LastUpdated.IsZero() {
		line += " · Last Update: " + format.Timestamp(s.LastUpdated)
	}
	return line
}

// RenderTable writes a tab-aligned plain text table.
func RenderTable(w io.Writer, s Snapshot) error {
	tw := tabwriter.NewWriter(w, 0, 0, tabwriterPadding, ' ', 0)
	if _, err := fmt.Fprintln(tw, strings.Join(headers(s.Sort), "\t")); err != nil {
		return err
	}
	for _, a := range s.Assets {
		if _, err := fmt.Fprintln(tw, strings.Join(cells(a), "\t")); err != nil {
			return err
		}
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintln(w, footer(s))
	return err
}

// RenderStyled writes a bordered table with gain/loss coloring.
func RenderStyled(w io.Writer, s Snapshot) error {
	gain := lipgloss.NewStyle().Foreground(lipgloss.Color("#16c784"))
	loss := lipgloss.NewStyle().Foreground(lipgloss.Color("#ea3943"))
	header := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	const changeCol = 3

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("241"))).
		Headers(headers(s.Sort)...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return header.Padding(0, 1)
			}
			return lipgloss.NewStyle().Padding(0, 1)
		})
	for _, a := range s.Assets {
		row := cells(a)
		if a.PriceChangePercentage24h >= 0 {
			row[changeCol] = gain.Render(row[changeCol])
		} else {
			row[changeCol] = loss.Render(row[changeCol])
		}
		t.Row(row...)
	}

	_, err := fmt.Fprintln(w, t.Render()+"\n"+footer(s))
	return err
}

// jsonSnapshot is the machine-readable snapshot document.
type jsonSnapshot struct {
	LastUpdated *time.Time       `json:"last_updated,omitempty"`
	Sort        string           `json:"sort"`
	Search      string           `json:"search,omitempty"`
	Total       int              `json:"total"`
	Count       int              `json:"count"`
	Pagination  *pagination.Meta `json:"pagination,omitempty"`
	Assets      []market.Asset   `json:"assets"`
}

// RenderJSON writes the snapshot as indented JSON.
func RenderJSON(w io.Writer, s Snapshot) error {
	doc := jsonSnapshot{
		Sort:       s.Sort.String(),
		Search:     s.Search,
		Total:      s.Total,
		Count:      len(s.Assets),
		Pagination: s.Pagination,
		Assets:     s.Assets,
	}
	if doc.Assets == nil {
		doc.Assets = []market.Asset{}
	}
	if !s.LastUpdated.IsZero() {
		ts := s.LastUpdated.UTC()
		doc.LastUpdated = &ts
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(doc)
}
