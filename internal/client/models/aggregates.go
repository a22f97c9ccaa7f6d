package models

import "fmt"

// Summary holds the aggregates derived from a metric list. Values are
// recomputed on every render from the current list, never stored.
type Summary struct {
	Campaigns        int
	TotalImpressions int64
	TotalClicks      int64
	TotalConversions int64

	// AvgCTR and ConvRate are percentages formatted with two decimals,
	// e.g. "4.27". A zero denominator yields "0.00", not an error.
	AvgCTR   string
	ConvRate string
}

// Summarize computes the dashboard aggregates for the given list.
func Summarize(metrics []Metric) Summary {
	s := Summary{Campaigns: len(metrics)}
	for _, m := range metrics {
		s.TotalImpressions += m.Impressions
		s.TotalClicks += m.Clicks
		s.TotalConversions += m.Conversions
	}
	s.AvgCTR = Percent(s.TotalClicks, s.TotalImpressions)
	s.ConvRate = Percent(s.TotalConversions, s.TotalClicks)
	return s
}

// CTR returns the metric's click-through rate as a two-decimal
// percentage string, "0.00" when there are no impressions.
func (m Metric) CTR() string {
	return Percent(m.Clicks, m.Impressions)
}

// ConversionRate returns conversions/clicks as a two-decimal percentage
// string, "0.00" when there are no clicks.
func (m Metric) ConversionRate() string {
	return Percent(m.Conversions, m.Clicks)
}

// Percent formats 100*num/den with two decimals. A zero denominator is a
// guard case, not an error: the result is "0.00".
func Percent(num, den int64) string {
	if den == 0 {
		return "0.00"
	}
	return fmt.Sprintf("%.2f", float64(num)/float64(den)*100)
}
