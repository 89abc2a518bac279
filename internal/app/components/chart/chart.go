// Package chart draws payload series as plain HTML bars. There is no chart
// library on the page; every bar carries its value as text too.
package chart

import (
	"strconv"

	"github.com/a-h/templ"

	"github.com/FACorreiaa/go-edudash/internal/app/components/markup"
	"github.com/FACorreiaa/go-edudash/internal/app/models"
)

type Props struct {
	ID    string
	Title string
	Rows  []map[string]any
	// XKey labels each bar, YKey sizes it.
	XKey string
	YKey string
}

func Card(p Props) templ.Component {
	return markup.Func(func(m *markup.Writer) {
		m.Rawf(`<section%s data-chart="%s" class="rounded-lg border bg-card p-4 shadow-sm">`,
			markup.Attr("id", p.ID), markup.Esc(p.YKey))
		m.Raw(`<h3 class="mb-3 text-sm font-semibold">`)
		m.Text(p.Title)
		m.Raw(`</h3>`)
		if len(p.Rows) == 0 {
			m.Raw(`<p class="chart-empty text-sm text-muted-foreground">No data yet.</p></section>`)
			return
		}

		peak := 0.0
		for _, row := range p.Rows {
			if v := number(row[p.YKey]); v > peak {
				peak = v
			}
		}

		m.Raw(`<ul class="space-y-2">`)
		for _, row := range p.Rows {
			value := number(row[p.YKey])
			width := 0.0
			if peak > 0 {
				width = value / peak * 100
			}
			m.Raw(`<li class="chart-bar flex items-center gap-2 text-xs">`)
			m.Raw(`<span class="chart-label w-24 shrink-0 truncate">`)
			m.Text(models.FormatValue(row[p.XKey]))
			m.Raw(`</span><span class="h-3 rounded bg-primary"`)
			m.Rawf(` style="width:%s%%"></span>`, strconv.FormatFloat(width, 'f', 1, 64))
			m.Raw(`<span class="chart-value">`)
			m.Text(models.FormatValue(row[p.YKey]))
			m.Raw(`</span></li>`)
		}
		m.Raw(`</ul></section>`)
	})
}

func number(v any) float64 {
	switch t := v.(type) {
	case float64:
		return t
	case int:
		return float64(t)
	case string:
		f, _ := strconv.ParseFloat(t, 64)
		return f
	}
	return 0
}
