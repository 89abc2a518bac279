package components_test

import (
	"context"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/a-h/templ"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FACorreiaa/go-edudash/internal/app/components/banner"
	"github.com/FACorreiaa/go-edudash/internal/app/components/card"
	"github.com/FACorreiaa/go-edudash/internal/app/components/chart"
	"github.com/FACorreiaa/go-edudash/internal/app/components/kpi"
	"github.com/FACorreiaa/go-edudash/internal/app/components/markup"
	"github.com/FACorreiaa/go-edudash/internal/app/components/table"
	"github.com/FACorreiaa/go-edudash/internal/app/models"
)

func render(t *testing.T, c templ.Component) *goquery.Document {
	t.Helper()
	var sb strings.Builder
	require.NoError(t, c.Render(context.Background(), &sb))
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(sb.String()))
	require.NoError(t, err)
	return doc
}

func TestKPIGrid(t *testing.T) {
	payload := models.DashboardPayload{"kpis": map[string]any{
		"total_institutions": float64(12),
		"avg_gpa":            8.25,
		"missing":            nil,
	}}
	doc := render(t, kpi.Grid(payload, map[string]string{"avg_gpa": "Average GPA"}))

	boxes := doc.Find("[data-kpi]")
	require.Equal(t, 2, boxes.Length())
	assert.Equal(t, "avg_gpa", boxes.First().AttrOr("data-kpi", ""))
	assert.Equal(t, "Average GPA", strings.TrimSpace(boxes.First().Find(".kpi-title").Text()))

	inst := doc.Find(`[data-kpi="total_institutions"]`)
	assert.Equal(t, "Total Institutions", inst.Find(".kpi-title").Text())
	assert.Equal(t, "12", inst.Find(".kpi-value").Text())
}

func TestKPIGrid_EmptyPayloadRendersNothing(t *testing.T) {
	var sb strings.Builder
	require.NoError(t, kpi.Grid(nil, nil).Render(context.Background(), &sb))
	assert.Empty(t, sb.String())
}

func TestChartCard(t *testing.T) {
	rows := []map[string]any{
		{"year": float64(2023), "students": float64(19000)},
		{"year": float64(2024), "students": float64(22000)},
	}
	doc := render(t, chart.Card(chart.Props{Title: "Enrolment", Rows: rows, XKey: "year", YKey: "students"}))

	bars := doc.Find(".chart-bar")
	require.Equal(t, 2, bars.Length())
	assert.Equal(t, "2024", bars.Last().Find(".chart-label").Text())
	assert.Equal(t, "22000", bars.Last().Find(".chart-value").Text())
	style, _ := bars.Last().Find("span.bg-primary").Attr("style")
	assert.Equal(t, "width:100.0%", style)

	empty := render(t, chart.Card(chart.Props{Title: "Nothing"}))
	assert.Equal(t, 1, empty.Find(".chart-empty").Length())
}

func TestDataTable(t *testing.T) {
	rows := []map[string]any{
		{"id": float64(3), "name": "<IIT>", "state": "Delhi"},
	}
	doc := render(t, table.DataTable(table.Props{
		ID:      "institutions",
		Columns: table.Columns("name", "state"),
		Rows:    rows,
		RowID:   "id",
		Actions: func(row map[string]any) templ.Component {
			return markup.TextComponent("delete " + models.FormatValue(row["id"]))
		},
	}))

	assert.Equal(t, []string{"Name", "State", ""}, doc.Find("th").Map(func(_ int, s *goquery.Selection) string { return s.Text() }))
	row := doc.Find("tr#institutions-3")
	require.Equal(t, 1, row.Length())
	assert.Equal(t, "<IIT>", row.Find("td").First().Text())
	assert.Equal(t, "delete 3", row.Find("td").Last().Text())

	empty := render(t, table.DataTable(table.Props{Empty: "No institutions yet."}))
	assert.Equal(t, "No institutions yet.", empty.Find(".table-empty").Text())
}

func TestBanner(t *testing.T) {
	doc := render(t, banner.Banner(banner.BannerProps{
		ID: "login-error", Type: banner.BannerError, Message: "Bad email or password", Dismissable: true, AutoDismiss: 5,
	}))
	b := doc.Find("#login-error")
	assert.Equal(t, "alert", b.AttrOr("role", ""))
	assert.Equal(t, "5", b.AttrOr("data-auto-dismiss", ""))
	assert.Contains(t, b.Text(), "Bad email or password")
	assert.Equal(t, 1, b.Find("button").Length())
}

func TestInsightAndFeed(t *testing.T) {
	var sb strings.Builder
	require.NoError(t, card.Insight("").Render(context.Background(), &sb))
	assert.Empty(t, sb.String())

	doc := render(t, card.Feed(card.FeedProps{
		Title:    "Events",
		Items:    []map[string]any{{"title": "Sports day", "date": "2025-01-10"}},
		TitleKey: "title",
		MetaKey:  "date",
	}))
	assert.Equal(t, "Sports day", doc.Find(".feed-item p").First().Text())
	assert.Equal(t, "2025-01-10", doc.Find(".feed-item p").Last().Text())
}
