package kpi

import (
	"github.com/Oudwins/tailwind-merge-go/pkg/twmerge"
	"github.com/a-h/templ"

	"github.com/FACorreiaa/go-edudash/internal/app/components/markup"
	"github.com/FACorreiaa/go-edudash/internal/app/models"
)

type Props struct {
	// Key is the payload kpi name, exposed as data-kpi.
	Key   string
	Title string
	Value string
	Icon  string
	Unit  string
	Class string
}

func Box(p Props) templ.Component {
	return markup.Func(func(m *markup.Writer) {
		m.Rawf(`<div data-kpi="%s" class="%s">`, markup.Esc(p.Key),
			markup.Esc(twmerge.Merge("rounded-lg border bg-card p-4 shadow-sm", p.Class)))
		m.Raw(`<div class="flex items-center justify-between">`)
		m.Raw(`<p class="kpi-title text-sm text-muted-foreground">`)
		m.Text(p.Title)
		m.Raw(`</p>`)
		if p.Icon != "" {
			m.Rawf(`<i class="%s" aria-hidden="true"></i>`, markup.Esc(p.Icon))
		}
		m.Raw(`</div><p class="kpi-value mt-2 text-2xl font-semibold">`)
		m.Text(p.Value)
		if p.Unit != "" {
			m.Raw(`<span class="kpi-unit ml-1 text-sm">`)
			m.Text(p.Unit)
			m.Raw(`</span>`)
		}
		m.Raw(`</p></div>`)
	})
}

// Grid renders one box per kpi in the payload, in key order. Titles default
// to the humanized key.
func Grid(payload models.DashboardPayload, titles map[string]string) templ.Component {
	return markup.Func(func(m *markup.Writer) {
		keys := payload.KPIKeys()
		if len(keys) == 0 {
			return
		}
		m.Raw(`<div class="kpi-grid grid gap-4 sm:grid-cols-2 lg:grid-cols-4">`)
		for _, key := range keys {
			value, ok := payload.KPI(key)
			if !ok {
				continue
			}
			title := titles[key]
			if title == "" {
				title = models.HumanizeKey(key)
			}
			m.Component(Box(Props{Key: key, Title: title, Value: value}))
		}
		m.Raw(`</div>`)
	})
}
