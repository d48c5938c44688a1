package pricing

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/hetznercloud/hcloud-go/v2/hcloud"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSource struct {
	pricing hcloud.Pricing
	err     error
}

func (f fakeSource) Get(context.Context) (hcloud.Pricing, *hcloud.Response, error) {
	return f.pricing, nil, f.err
}

func TestFetchPrices(t *testing.T) {
	src := fakeSource{pricing: hcloud.Pricing{
		Currency: "EUR",
		ServerTypes: []hcloud.ServerTypePricing{
			{
				ServerType: &hcloud.ServerType{Name: "cx32"},
				Pricings: []hcloud.ServerTypeLocationPricing{
					{Location: &hcloud.Location{Name: "nbg1"}, Monthly: hcloud.Price{Net: "8.0000", Gross: "9.5200"}},
					{Location: nil},
				},
			},
			{ServerType: nil},
		},
		PrimaryIPs: []hcloud.PrimaryIPPricing{
			{Type: "ipv4", Pricings: []hcloud.PrimaryIPTypePricing{
				{Location: "nbg1", Monthly: hcloud.PrimaryIPPrice{Net: "0.5000", Gross: "0.5950"}},
			}},
			{Type: "ipv6", Pricings: []hcloud.PrimaryIPTypePricing{
				{Location: "nbg1", Monthly: hcloud.PrimaryIPPrice{Net: "0.0000", Gross: "0.0000"}},
			}},
		},
	}}

	prices, err := FetchPrices(context.Background(), src)
	require.NoError(t, err)

	assert.Equal(t, "EUR", prices.Currency)
	assert.Equal(t, Price{Net: 8, Gross: 9.52}, prices.Servers["cx32"]["nbg1"])
	assert.Len(t, prices.Servers, 1)
	assert.Equal(t, Price{Net: 0.5, Gross: 0.595}, prices.PrimaryIPv4["nbg1"])
}

func TestFetchPrices_Error(t *testing.T) {
	_, err := FetchPrices(context.Background(), fakeSource{err: errors.New("unauthorized")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to fetch hcloud pricing: unauthorized")
}

func TestNewSource(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/pricing", r.URL.Path)
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"pricing": {
				"currency": "EUR",
				"vat_rate": "19.00",
				"server_types": [
					{"id": 1, "name": "cx32", "prices": [
						{"location": "fsn1", "price_hourly": {"net": "0.0130", "gross": "0.0155"},
						 "price_monthly": {"net": "8.0900", "gross": "9.6271"}}
					]}
				],
				"primary_ips": [
					{"type": "ipv4", "prices": [
						{"location": "fsn1", "price_hourly": {"net": "0.0008", "gross": "0.0010"},
						 "price_monthly": {"net": "0.5000", "gross": "0.5950"}}
					]}
				]
			}
		}`))
	}))
	defer server.Close()

	src := NewSource("test-token", hcloud.WithEndpoint(server.URL))
	prices, err := FetchPrices(context.Background(), src)
	require.NoError(t, err)

	assert.InDelta(t, 8.09, prices.Servers["cx32"]["fsn1"].Net, 0.0001)
	assert.InDelta(t, 0.595, prices.PrimaryIPv4["fsn1"].Gross, 0.0001)
}

func TestParsePriceString(t *testing.T) {
	tests := []struct {
		input string
		want  float64
	}{
		{"4.3500", 4.35},
		{"0", 0},
		{"", 0},
		{"invalid", 0},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, parsePriceString(tt.input), 0.0001, tt.input)
	}
}
