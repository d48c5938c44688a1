// Package pricing estimates the monthly cost of a deployment on Hetzner Cloud.
package pricing

import (
	"fmt"

	"github.com/imamik/rlcluster/internal/config"
	"github.com/imamik/rlcluster/internal/platform"
)

// Hetzner Object Storage base price in EUR per month. It includes 1 TB of
// storage and 1 TB of egress, which a log bucket never exceeds.
const objectStorageMonthly = 5.99

// Price is a net and gross monthly price.
type Price struct {
	Net   float64
	Gross float64
}

// Prices contains Hetzner pricing data.
type Prices struct {
	Currency string

	// Servers maps server type, then location, to its monthly price.
	Servers map[string]map[string]Price

	// PrimaryIPv4 maps location to the monthly cost of a primary IPv4.
	PrimaryIPv4 map[string]Price
}

// server returns the monthly price of serverType in location.
func (p *Prices) server(serverType, location string) (Price, bool) {
	price, ok := p.Servers[serverType][location]
	return price, ok
}

// Estimate contains the calculated cost estimate.
type Estimate struct {
	Name     string
	Currency string
	Items    []LineItem
	Total    Price
}

// LineItem represents a single cost line item.
type LineItem struct {
	Description string
	Quantity    int
	UnitType    string
	Unit        Price
	Total       Price
}

// String returns a formatted string representation of the line item.
func (l LineItem) String() string {
	return fmt.Sprintf("%s: %d× %s @ %.2f = %.2f/mo",
		l.Description, l.Quantity, l.UnitType, l.Unit.Gross, l.Total.Gross)
}

// AnnualCost returns the estimated annual gross cost.
func (e *Estimate) AnnualCost() float64 {
	return e.Total.Gross * 12
}

// Calculator calculates deployment costs based on Hetzner pricing.
type Calculator struct {
	prices *Prices
}

// NewCalculator creates a calculator using prices.
func NewCalculator(prices *Prices) *Calculator {
	return &Calculator{prices: prices}
}

// Calculate estimates the cost of running jobs with the hcloud driver. Every
// job is one server with a primary IPv4 in the location its placement tag
// names, or the default location.
func (c *Calculator) Calculate(name string, jobs []platform.JobSpec, cfg config.HCloudConfig) (*Estimate, error) {
	estimate := &Estimate{Name: name, Currency: c.prices.Currency}

	perLocation := make(map[string]int)
	var locations []string
	for _, job := range jobs {
		loc := cfg.Location
		if job.PlacementTag != "" {
			loc = job.PlacementTag
		}
		if perLocation[loc] == 0 {
			locations = append(locations, loc)
		}
		perLocation[loc]++
	}

	for _, loc := range locations {
		n := perLocation[loc]
		price, ok := c.prices.server(cfg.ServerType, loc)
		if !ok {
			return nil, fmt.Errorf("missing pricing for server type %s in %s", cfg.ServerType, loc)
		}
		estimate.add(LineItem{
			Description: "Servers (" + loc + ")",
			Quantity:    n,
			UnitType:    cfg.ServerType,
			Unit:        price,
		})
		estimate.add(LineItem{
			Description: "Primary IPv4 (" + loc + ")",
			Quantity:    n,
			UnitType:    "ipv4",
			Unit:        c.prices.PrimaryIPv4[loc],
		})
	}

	if cfg.ObjectStorage.Enabled() {
		estimate.add(LineItem{
			Description: "Object Storage",
			Quantity:    1,
			UnitType:    "bucket",
			Unit:        Price{Net: objectStorageMonthly, Gross: objectStorageMonthly},
		})
	}

	return estimate, nil
}

func (e *Estimate) add(item LineItem) {
	q := float64(item.Quantity)
	item.Total = Price{Net: item.Unit.Net * q, Gross: item.Unit.Gross * q}
	e.Items = append(e.Items, item)
	e.Total.Net += item.Total.Net
	e.Total.Gross += item.Total.Gross
}
