package card

import (
	"github.com/a-h/templ"

	"github.com/FACorreiaa/go-edudash/internal/app/components/markup"
	"github.com/FACorreiaa/go-edudash/internal/app/models"
)

// Section is a titled card around body.
func Section(id, title string, body templ.Component) templ.Component {
	return markup.Func(func(m *markup.Writer) {
		m.Rawf(`<section%s class="rounded-lg border bg-card p-4 shadow-sm">`, markup.Attr("id", id))
		if title != "" {
			m.Raw(`<h3 class="mb-3 text-sm font-semibold">`)
			m.Text(title)
			m.Raw(`</h3>`)
		}
		m.Component(body)
		m.Raw(`</section>`)
	})
}

// Insight shows the backend's prediction text. Empty text renders nothing.
func Insight(text string) templ.Component {
	return markup.Func(func(m *markup.Writer) {
		if text == "" {
			return
		}
		m.Raw(`<aside class="insight rounded-lg border border-indigo-200 bg-indigo-50 p-4 text-sm">`)
		m.Raw(`<p class="mb-1 font-semibold">Insight</p><p class="insight-text">`)
		m.Text(text)
		m.Raw(`</p></aside>`)
	})
}

type FeedProps struct {
	ID       string
	Title    string
	Items    []map[string]any
	TitleKey string
	MetaKey  string
	Empty    string
}

// Feed lists items by one headline field and one secondary field.
func Feed(p FeedProps) templ.Component {
	return Section(p.ID, p.Title, markup.Func(func(m *markup.Writer) {
		if len(p.Items) == 0 {
			m.Raw(`<p class="feed-empty text-sm text-muted-foreground">`)
			m.Text(p.Empty)
			m.Raw(`</p>`)
			return
		}
		m.Raw(`<ul class="divide-y">`)
		for _, item := range p.Items {
			m.Raw(`<li class="feed-item py-2"><p class="font-medium">`)
			m.Text(models.FormatValue(item[p.TitleKey]))
			m.Raw(`</p>`)
			if meta := models.FormatValue(item[p.MetaKey]); meta != "" {
				m.Raw(`<p class="text-xs text-muted-foreground">`)
				m.Text(meta)
				m.Raw(`</p>`)
			}
			m.Raw(`</li>`)
		}
		m.Raw(`</ul>`)
	}))
}
