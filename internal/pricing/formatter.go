package pricing

import (
	"fmt"
	"strings"
)

const boxWidth = 61

// Format returns a boxed cost estimate for terminal display.
func Format(e *Estimate) string {
	b := &box{width: boxWidth}

	b.rule('┌', '─', '┐')
	b.line("rlcluster Cost Estimate")
	b.line(fmt.Sprintf("Deployment: %s", e.Name))
	b.rule('├', '─', '┤')
	b.line("")

	for _, item := range e.Items {
		b.line(fmt.Sprintf("%-24s %3d x %-6s %8.2f/mo",
			item.Description, item.Quantity, strings.ToUpper(item.UnitType), item.Total.Gross))
	}

	b.line(strings.Repeat("─", boxWidth-4))
	b.line(fmt.Sprintf("%-36s %8.2f/mo", "Net", e.Total.Net))
	b.line(fmt.Sprintf("%-36s %8.2f/mo", "Total incl. VAT", e.Total.Gross))
	b.line("")
	b.line(fmt.Sprintf("Annual estimate: %.2f", e.AnnualCost()))
	b.rule('└', '─', '┘')

	fmt.Fprintf(&b.sb, "\n  Prices from Hetzner API (%s)\n", e.Currency)

	return b.sb.String()
}

// FormatCompact returns a single-line cost summary.
func FormatCompact(e *Estimate) string {
	return fmt.Sprintf("%s: %.2f %s/mo (%.2f/yr incl. VAT)",
		e.Name, e.Total.Gross, e.Currency, e.AnnualCost())
}

// box draws fixed-width framed text.
type box struct {
	sb    strings.Builder
	width int
}

func (b *box) rule(left, fill, right rune) {
	fmt.Fprintf(&b.sb, "%c%s%c\n", left, strings.Repeat(string(fill), b.width-2), right)
}

// line writes text padded to the box width; longer text is truncated.
func (b *box) line(text string) {
	inner := b.width - 4
	runes := []rune(text)
	if len(runes) > inner {
		runes = runes[:inner]
	}
	fmt.Fprintf(&b.sb, "│ %s%s │\n", string(runes), strings.Repeat(" ", inner-len(runes)))
}
