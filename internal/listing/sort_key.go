package listing

import (
	"errors"
	"fmt"
	"strings"
)

// SortKey identifies a sortable table column.
type SortKey int

const (
	// SortNone keeps the endpoint's order.
	SortNone SortKey = iota
	SortRank
	SortName
	SortPrice
	SortChange24h
	SortVolume
	SortMarketCap
)

// Columns lists the sortable columns in table order.
//
//nolint:gochecknoglobals // Compile-time constant lookup table.
var Columns = []SortKey{SortRank, SortName, SortPrice, SortChange24h, SortVolume, SortMarketCap}

// String returns the canonical field name accepted by ParseSortKey.
func (k SortKey) String() string {
	switch k {
	case SortNone:
		return "none"
	case SortRank:
		return "rank"
	case SortName:
		return "name"
	case SortPrice:
		return "price"
	case SortChange24h:
		return "change_24h"
	case SortVolume:
		return "volume"
	case SortMarketCap:
		return "market_cap"
	default:
		return "unknown"
	}
}

// Title returns the column header label.
func (k SortKey) Title() string {
	switch k {
	case SortRank:
		return "#"
	case SortName:
		return "Name"
	case SortPrice:
		return "Price"
	case SortChange24h:
		return "24h %"
	case SortVolume:
		return "Volume"
	case SortMarketCap:
		return "Market Cap"
	case SortNone:
		return ""
	default:
		return ""
	}
}

// Textual reports whether the key compares strings rather than numbers.
func (k SortKey) Textual() bool {
	return k == SortName
}

// ErrUnknownSortKey is returned by ParseSortKey for unrecognised field names.
var ErrUnknownSortKey = errors.New("unknown sort field")

//nolint:gochecknoglobals // Compile-time constant lookup table.
var sortKeyAliases = map[string]SortKey{
	"none":                        SortNone,
	"rank":                        SortRank,
	"#":                           SortRank,
	"market_cap_rank":             SortRank,
	"name":                        SortName,
	"price":                       SortPrice,
	"current_price":               SortPrice,
	"change_24h":                  SortChange24h,
	"24h":                         SortChange24h,
	"price_change_percentage_24h": SortChange24h,
	"volume":                      SortVolume,
	"total_volume":                SortVolume,
	"market_cap":                  SortMarketCap,
	"marketcap":                   SortMarketCap,
}

// ParseSortKey resolves a field name (case-insensitive) to a SortKey.
// Both the canonical names and the endpoint's JSON field names are accepted.
func ParseSortKey(field string) (SortKey, error) {
	key, ok := sortKeyAliases[strings.ToLower(strings.TrimSpace(field))]
	if !ok {
		return SortNone, fmt.Errorf("%w: %q", ErrUnknownSortKey, field)
	}
	return key, nil
}

// ValidFields returns the canonical field names in column order.
func ValidFields() []string {
	fields := make([]string, 0, len(Columns))
	for _, k := range Columns {
		fields = append(fields, k.String())
	}
	return fields
}
