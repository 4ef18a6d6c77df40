package transform

import (
	"context"
	"fmt"
	"strings"

	"contentsync/core/schema"
	"contentsync/core/utils"
)

// currencySymbols maps ISO currency codes to display symbols. Unmapped
// codes render as-is.
var currencySymbols = map[string]string{
	"EUR": "€",
	"USD": "$",
	"GBP": "£",
}

// CurrencySymbol returns the display symbol for a currency code.
func CurrencySymbol(code string) string {
	if sym, ok := currencySymbols[code]; ok {
		return sym
	}
	return code
}

type price struct {
	Amount      string
	Currency    string
	Default     bool
	Description string
}

type rank struct {
	Name   string
	Prices []price
}

func decodeRanks(raw any) []rank {
	items, ok := raw.([]any)
	if !ok {
		return nil
	}
	ranks := make([]rank, 0, len(items))
	for _, item := range items {
		m, ok := item.(map[string]any)
		if !ok {
			continue
		}
		r := rank{Name: utils.SafeString(m["name"])}
		if r.Name == "" {
			r.Name = utils.SafeString(m["description"])
		}
		rawPrices, _ := m["prices"].([]any)
		for _, rp := range rawPrices {
			pm, ok := rp.(map[string]any)
			if !ok {
				continue
			}
			amount := utils.SafeString(pm["amount"])
			if amount == "" {
				amount = utils.SafeString(pm["price"])
			}
			r.Prices = append(r.Prices, price{
				Amount:      amount,
				Currency:    utils.SafeString(pm["currency"]),
				Default:     utils.ToBool(pm["default"]),
				Description: utils.SafeString(pm["description"]),
			})
		}
		ranks = append(ranks, r)
	}
	return ranks
}

func (p price) render() string {
	line := strings.TrimSpace(CurrencySymbol(p.Currency) + " " + p.Amount)
	if p.Description != "" {
		line += fmt.Sprintf(" (%s)", p.Description)
	}
	return line
}

// sortDefaultsFirst returns the prices with default-flagged entries first,
// keeping the relative order within each group.
func sortDefaultsFirst(prices []price) []price {
	ordered := make([]price, 0, len(prices))
	for _, p := range prices {
		if p.Default {
			ordered = append(ordered, p)
		}
	}
	for _, p := range prices {
		if !p.Default {
			ordered = append(ordered, p)
		}
	}
	return ordered
}

// RenderPrices renders a deterministic HTML fragment for a rank/price
// structure. Multiple ranks get one labelled block each, a single rank with
// multiple prices lists default prices first, a single price renders
// inline. An empty structure renders an empty fragment.
func RenderPrices(raw any) string {
	ranks := decodeRanks(raw)

	withPrices := ranks[:0:0]
	for _, r := range ranks {
		if len(r.Prices) > 0 {
			withPrices = append(withPrices, r)
		}
	}
	if len(withPrices) == 0 {
		return ""
	}

	if len(withPrices) == 1 {
		prices := sortDefaultsFirst(withPrices[0].Prices)
		if len(prices) == 1 {
			return fmt.Sprintf(`<span class="price">%s</span>`, prices[0].render())
		}
		var b strings.Builder
		b.WriteString(`<ul class="prices">`)
		for _, p := range prices {
			b.WriteString("<li>" + p.render() + "</li>")
		}
		b.WriteString(`</ul>`)
		return b.String()
	}

	var b strings.Builder
	for _, r := range withPrices {
		b.WriteString(`<div class="price-rank">`)
		if r.Name != "" {
			b.WriteString("<h4>" + r.Name + "</h4>")
		}
		b.WriteString(`<ul>`)
		for _, p := range sortDefaultsFirst(r.Prices) {
			b.WriteString("<li>" + p.render() + "</li>")
		}
		b.WriteString(`</ul></div>`)
	}
	return b.String()
}

// Prices renders the rank/price structure into a rich text field.
func Prices() Handler {
	return func(ctx context.Context, t Target) error {
		return t.Record.Set(t.Field.Name, schema.Rich(schema.HTML(RenderPrices(t.Raw))))
	}
}
