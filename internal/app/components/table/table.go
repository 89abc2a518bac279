package table

import (
	"github.com/a-h/templ"

	"github.com/FACorreiaa/go-edudash/internal/app/components/markup"
	"github.com/FACorreiaa/go-edudash/internal/app/models"
)

type Column struct {
	Key   string
	Label string
}

type Props struct {
	ID      string
	Columns []Column
	Rows    []map[string]any
	Empty   string
	// Actions renders an extra trailing cell per row when set.
	Actions func(row map[string]any) templ.Component
	// RowID names the key whose value becomes each row's id suffix.
	RowID string
}

func DataTable(p Props) templ.Component {
	return markup.Func(func(m *markup.Writer) {
		if len(p.Rows) == 0 {
			empty := p.Empty
			if empty == "" {
				empty = "Nothing to show."
			}
			m.Rawf(`<p%s class="table-empty text-sm text-muted-foreground">`, markup.Attr("id", p.ID))
			m.Text(empty)
			m.Raw(`</p>`)
			return
		}

		m.Rawf(`<div class="overflow-x-auto"><table%s class="w-full text-left text-sm"><thead><tr>`, markup.Attr("id", p.ID))
		for _, col := range p.Columns {
			label := col.Label
			if label == "" {
				label = models.HumanizeKey(col.Key)
			}
			m.Raw(`<th class="px-3 py-2 font-medium">`)
			m.Text(label)
			m.Raw(`</th>`)
		}
		if p.Actions != nil {
			m.Raw(`<th class="px-3 py-2"></th>`)
		}
		m.Raw(`</tr></thead><tbody>`)

		for _, row := range p.Rows {
			rowID := ""
			if p.RowID != "" && p.ID != "" {
				rowID = markup.Attr("id", p.ID+"-"+models.FormatValue(row[p.RowID]))
			}
			m.Rawf(`<tr%s class="border-t">`, rowID)
			for _, col := range p.Columns {
				m.Raw(`<td class="px-3 py-2">`)
				m.Text(models.FormatValue(row[col.Key]))
				m.Raw(`</td>`)
			}
			if p.Actions != nil {
				m.Raw(`<td class="px-3 py-2 text-right">`)
				m.Component(p.Actions(row))
				m.Raw(`</td>`)
			}
			m.Raw(`</tr>`)
		}
		m.Raw(`</tbody></table></div>`)
	})
}

// Columns builds columns from keys with humanized labels.
func Columns(keys ...string) []Column {
	cols := make([]Column, len(keys))
	for i, k := range keys {
		cols[i] = Column{Key: k}
	}
	return cols
}
