package pricing

import (
	"context"
	"fmt"
	"strconv"

	"github.com/hetznercloud/hcloud-go/v2/hcloud"
)

// Source returns the current Hetzner price list. *hcloud.PricingClient
// implements it.
type Source interface {
	Get(ctx context.Context) (hcloud.Pricing, *hcloud.Response, error)
}

// NewSource returns the pricing endpoint of a Hetzner Cloud client.
func NewSource(token string, opts ...hcloud.ClientOption) Source {
	opts = append([]hcloud.ClientOption{hcloud.WithToken(token)}, opts...)
	return &hcloud.NewClient(opts...).Pricing
}

// FetchPrices fetches current pricing from the Hetzner API.
func FetchPrices(ctx context.Context, src Source) (*Prices, error) {
	pricing, _, err := src.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch hcloud pricing: %w", err)
	}
	return convertPricing(pricing), nil
}

func convertPricing(p hcloud.Pricing) *Prices {
	prices := &Prices{
		Currency:    p.Currency,
		Servers:     make(map[string]map[string]Price),
		PrimaryIPv4: make(map[string]Price),
	}

	for _, st := range p.ServerTypes {
		if st.ServerType == nil {
			continue
		}
		byLocation := make(map[string]Price, len(st.Pricings))
		for _, lp := range st.Pricings {
			if lp.Location == nil {
				continue
			}
			byLocation[lp.Location.Name] = Price{
				Net:   parsePriceString(lp.Monthly.Net),
				Gross: parsePriceString(lp.Monthly.Gross),
			}
		}
		prices.Servers[st.ServerType.Name] = byLocation
	}

	for _, ip := range p.PrimaryIPs {
		if ip.Type != "ipv4" {
			continue
		}
		for _, lp := range ip.Pricings {
			prices.PrimaryIPv4[lp.Location] = Price{
				Net:   parsePriceString(lp.Monthly.Net),
				Gross: parsePriceString(lp.Monthly.Gross),
			}
		}
	}

	return prices
}

// parsePriceString converts a price string (e.g., "4.3500") to float64.
func parsePriceString(s string) float64 {
	if s == "" {
		return 0
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return f
}
