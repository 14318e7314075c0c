package service

import (
	"time"

	"inputdash/internal/core/facets"
	"inputdash/internal/core/filters"
	"inputdash/internal/core/vocab"
	tim "inputdash/internal/platform/time"
	"inputdash/internal/services/api/search/domain"
)

// Period names
const (
	PeriodInfinite = "infin"
	PeriodCustom   = "custom"
)

// chartMinDays is the shortest bounded period that gets a chart
const chartMinDays = 7

var presetPeriods = []struct {
	days int
	name string
}{{1, "1d"}, {7, "7d"}, {30, "30d"}}

// SentimentOf reads the type facet rows into happy, sad and ideas counts
func SentimentOf(rows []map[string]int64) domain.Sentiment {
	s := domain.Sentiment{Sentiment: "happy"}
	for _, r := range rows {
		switch r[filters.FieldType] {
		case int64(vocab.Praise.ID):
			s.Happy = r[facets.CountAttr]
		case int64(vocab.Issue.ID):
			s.Sad = r[facets.CountAttr]
		case int64(vocab.Idea.ID):
			s.Ideas = r[facets.CountAttr]
		}
	}
	s.Total = s.Happy + s.Sad + s.Ideas
	if s.Sad > s.Happy {
		s.Sentiment = "sad"
	}
	return s
}

// PeriodOf names the selected date range and counts its days
func PeriodOf(f Form, today time.Time) (string, int) {
	if f.DateStart == nil {
		return PeriodInfinite, 0
	}
	end := today
	if f.DateEnd != nil {
		end = *f.DateEnd
	}
	days := tim.DaysBetween(*f.DateStart, end)
	if !tim.SameDay(end, today) {
		return PeriodCustom, days
	}
	for _, p := range presetPeriods {
		if tim.SameDay(*f.DateStart, tim.AddDays(today, -p.days)) {
			return p.name, days
		}
	}
	return PeriodCustom, days
}

// ChartOf builds the daily sentiment chart, or nil when the period is too short or no series came back.
// A type filter narrows the chart to that type's series.
func ChartOf(daily *facets.Series, period string, days int, typ *vocab.OpinionType) *domain.Chart {
	if days < chartMinDays && period != PeriodInfinite {
		return nil
	}
	if typ != nil {
		var data []facets.Point
		if daily != nil {
			switch typ.ID {
			case vocab.Praise.ID:
				data = daily.Praise
			case vocab.Idea.ID:
				data = daily.Idea
			default:
				data = daily.Issue
			}
		}
		if data == nil {
			data = []facets.Point{}
		}
		return &domain.Chart{Series: []domain.ChartSeries{{Name: typeTitle(*typ), Data: data}}}
	}
	if daily == nil {
		return nil
	}
	return &domain.Chart{Series: []domain.ChartSeries{
		{Name: "Praise", Data: daily.Praise},
		{Name: "Issues", Data: daily.Issue},
		{Name: "Ideas", Data: daily.Idea},
	}}
}

func typeTitle(t vocab.OpinionType) string {
	switch t.ID {
	case vocab.Praise.ID:
		return "Praise"
	case vocab.Idea.ID:
		return "Idea"
	default:
		return "Issue"
	}
}

// DemographicsOf turns the sidebar facets into display rows
func DemographicsOf(sets map[string]facets.Set) domain.Demographics {
	return domain.Demographics{
		Locale:       demoRows(sets, facets.Locale, vocab.LocaleName),
		Platform:     demoRows(sets, facets.Platform, vocab.PlatformPretty),
		Manufacturer: demoRows(sets, facets.Manufacturer, nil),
		Device:       demoRows(sets, facets.Device, nil),
	}
}

func demoRows(sets map[string]facets.Set, k facets.Kind, pretty func(string) string) []domain.DemoRow {
	s, ok := sets[k.String()]
	if !ok || s.Rows == nil {
		return nil
	}
	out := make([]domain.DemoRow, 0, len(s.Rows))
	for _, r := range s.Rows {
		row := domain.DemoRow{Label: r.Label, Count: r.Count}
		if r.Label != nil {
			row.Name = *r.Label
			if pretty != nil {
				row.Name = pretty(*r.Label)
			}
		}
		out = append(out, row)
	}
	return out
}
