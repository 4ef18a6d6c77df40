package transform

import (
	"context"
	"strings"
	"testing"

	"contentsync/core/schema"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderPricesDefaultFirst(t *testing.T) {
	raw := []any{
		map[string]any{
			"prices": []any{
				map[string]any{"amount": 8, "currency": "EUR", "default": false},
				map[string]any{"amount": 10, "currency": "EUR", "default": true},
			},
		},
	}

	out := RenderPrices(raw)
	assert.Equal(t, `<ul class="prices"><li>€ 10</li><li>€ 8</li></ul>`, out)
	assert.Less(t, strings.Index(out, "€ 10"), strings.Index(out, "€ 8"))
}

func TestRenderPricesSingleInline(t *testing.T) {
	raw := []any{
		map[string]any{
			"prices": []any{
				map[string]any{"amount": 15, "currency": "USD", "description": "standard"},
			},
		},
	}

	assert.Equal(t, `<span class="price">$ 15 (standard)</span>`, RenderPrices(raw))
}

func TestRenderPricesMultipleRanks(t *testing.T) {
	raw := []any{
		map[string]any{
			"name":   "Balcony",
			"prices": []any{map[string]any{"amount": 20, "currency": "GBP"}},
		},
		map[string]any{
			"name":   "Stalls",
			"prices": []any{map[string]any{"amount": 35, "currency": "GBP"}},
		},
	}

	out := RenderPrices(raw)
	assert.Contains(t, out, "<h4>Balcony</h4>")
	assert.Contains(t, out, "<h4>Stalls</h4>")
	assert.Contains(t, out, "£ 20")
	assert.Contains(t, out, "£ 35")
	assert.Equal(t, 2, strings.Count(out, `<div class="price-rank">`))
}

func TestRenderPricesEmpty(t *testing.T) {
	assert.Equal(t, "", RenderPrices(nil))
	assert.Equal(t, "", RenderPrices([]any{}))
	assert.Equal(t, "", RenderPrices([]any{map[string]any{"prices": []any{}}}))
}

func TestCurrencySymbolFallback(t *testing.T) {
	assert.Equal(t, "€", CurrencySymbol("EUR"))
	assert.Equal(t, "CHF", CurrencySymbol("CHF"))
}

func TestRenderStatusControl(t *testing.T) {
	tests := []struct {
		name    string
		status  string
		message string
		onSale  bool
		href    string
		want    string
	}{
		{
			name:   "on sale renders enabled link",
			status: "ONSALE",
			onSale: true,
			href:   "https://tickets.example.org/123",
			want:   `<a class="availability onsale" href="https://tickets.example.org/123">Order tickets</a>`,
		},
		{
			name:   "on sale status without onsale flag renders nothing",
			status: "ONSALE",
			onSale: false,
			want:   "",
		},
		{
			name:    "sold out renders disabled label",
			status:  "SOLDOUT",
			message: "Sold out, sorry!",
			want:    `<span class="availability disabled">Sold out, sorry!</span>`,
		},
		{
			name:   "sold out without message falls back to status",
			status: "SOLDOUT",
			want:   `<span class="availability disabled">Soldout</span>`,
		},
		{
			name:    "cancelled renders disabled label",
			status:  "CANCELLED",
			message: "Event cancelled",
			want:    `<span class="availability disabled">Event cancelled</span>`,
		},
		{
			name:   "unrecognized status renders empty fragment",
			status: "POSTPONED",
			want:   "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RenderStatusControl(tt.status, tt.message, tt.onSale, tt.href))
		})
	}
}

func TestArrangementsRendering(t *testing.T) {
	s, err := schema.New(schema.Field{Name: "arrangements", Kind: schema.KindRichText})
	require.NoError(t, err)

	lookup := func(ctx context.Context, id string) (string, bool) {
		if id == "a1" {
			return "Dinner and show", true
		}
		return "", false
	}

	tr := New(s).Register("arrangements", Arrangements(lookup))
	rec := schema.NewRecord(s)

	raw := []any{
		map[string]any{"id": "a1", "title": "VIP package"},
		map[string]any{"id": "a2", "title": "Standard"},
		map[string]any{"id": "a3"},
	}
	require.NoError(t, tr.Apply(context.Background(), rec, "r1", "arrangements", raw))

	v, _ := rec.Get("arrangements")
	assert.Contains(t, v.Rich.Raw, "<strong>VIP package</strong><p>Dinner and show</p>")
	assert.Contains(t, v.Rich.Raw, "<li><strong>Standard</strong></li>")
	assert.Equal(t, 2, strings.Count(v.Rich.Raw, "<li>"))
}

func TestArrangementsEmpty(t *testing.T) {
	s, err := schema.New(schema.Field{Name: "arrangements", Kind: schema.KindRichText})
	require.NoError(t, err)

	tr := New(s).Register("arrangements", Arrangements(nil))
	rec := schema.NewRecord(s)

	require.NoError(t, tr.Apply(context.Background(), rec, "r1", "arrangements", []any{}))
	v, _ := rec.Get("arrangements")
	assert.Equal(t, "", v.Rich.Raw)
}
