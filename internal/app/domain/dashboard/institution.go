package dashboard

import (
	"net/http"
	"path/filepath"
	"strings"

	"github.com/a-h/templ"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/FACorreiaa/go-edudash/internal/app/components/banner"
	"github.com/FACorreiaa/go-edudash/internal/app/components/button"
	"github.com/FACorreiaa/go-edudash/internal/app/components/card"
	"github.com/FACorreiaa/go-edudash/internal/app/components/chart"
	"github.com/FACorreiaa/go-edudash/internal/app/components/kpi"
	"github.com/FACorreiaa/go-edudash/internal/app/components/markup"
	"github.com/FACorreiaa/go-edudash/internal/app/components/table"
	"github.com/FACorreiaa/go-edudash/internal/app/domain/layout"
	"github.com/FACorreiaa/go-edudash/internal/app/domain/roles"
	"github.com/FACorreiaa/go-edudash/internal/app/models"
	"github.com/FACorreiaa/go-edudash/internal/app/renderer"
	"github.com/FACorreiaa/go-edudash/internal/pkg/apiclient"
)

// MaxUploadBytes caps institution data files.
const MaxUploadBytes = 10 << 20

var institutionKPITitles = map[string]string{
	"total_students": "Total Students",
	"total_teachers": "Total Faculty",
	"avg_gpa":        "Institute Avg. GPA",
	"nirf_rank":      "NIRF Rank",
}

func InstitutionPages() []Page {
	return []Page{
		{Title: "Institution Dashboard", Body: layout.PayloadPage(InstitutionOverview)},
		{Slug: "faculty", Title: "Manage Faculty", Body: layout.PayloadPage(InstitutionFaculty)},
		{Slug: "upload", Title: "Upload Data", Body: Stack(Heading("Upload Data", "AISHE/NIRF data as CSV."), UploadForm(nil))},
		settingsPage(),
	}
}

func facultyTable(p models.DashboardPayload) templ.Component {
	return table.DataTable(table.Props{
		ID: "faculty-table",
		Columns: []table.Column{
			{Key: "name", Label: "Name"},
			{Key: "subject", Label: "Subject"},
			{Key: "avg_feedback", Label: "Feedback"},
		},
		Rows:  p.Items("faculty"),
		RowID: "id",
		Empty: "No faculty records.",
	})
}

func InstitutionOverview(p models.DashboardPayload) templ.Component {
	name := models.FormatValue(p.ProfileFields()["name"])
	if name == "" {
		name = "Institution Dashboard"
	}
	return Stack(
		Heading(name, "Institution overview"),
		kpi.Grid(p, institutionKPITitles),
		card.Insight(p.Insight()),
		Columns(
			chart.Card(chart.Props{
				ID: "department-performance", Title: "Department Performance (Avg. GPA)",
				Rows: p.Series("department_performance"), XKey: "name", YKey: "avg_gpa",
			}),
			card.Section("faculty-overview", "Faculty Overview", facultyTable(p)),
		),
	)
}

func InstitutionFaculty(p models.DashboardPayload) templ.Component {
	return Stack(Heading("Manage Faculty", ""), card.Section("faculty", "", facultyTable(p)))
}

// UploadForm posts a CSV file to the upload handler and replaces itself with
// the answer.
func UploadForm(b *banner.BannerProps) templ.Component {
	action := roles.HomeURL(models.RoleInstitution) + "/upload"
	return markup.Func(func(m *markup.Writer) {
		m.Rawf(`<form id="upload-form" method="post" action="%s" enctype="multipart/form-data" hx-post="%s" hx-encoding="multipart/form-data" hx-target="this" hx-swap="outerHTML" class="rounded-lg border bg-white p-6 shadow-sm">`, action, action)
		if b != nil {
			m.Component(banner.Banner(*b))
		}
		m.Raw(`<label for="upload-file" class="mb-2 block text-sm font-medium">Data file (CSV)</label>`)
		m.Raw(`<input id="upload-file" type="file" name="file" accept=".csv,text/csv" required class="mb-4 block w-full text-sm">`)
		m.Component(markup.With(button.Button(button.Props{Type: button.TypeSubmit}), markup.TextComponent("Upload")))
		m.Raw(`</form>`)
	})
}

// Upload forwards a CSV file to the backend and answers with the form and
// the backend's message.
func (h *Handler) Upload(c *gin.Context) {
	fail := func(status int, msg string) {
		renderer.Render(c, status, UploadForm(&banner.BannerProps{ID: "upload-error", Type: banner.BannerError, Message: msg, Dismissable: true}))
	}

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, MaxUploadBytes)
	fh, err := c.FormFile("file")
	if err != nil {
		fail(http.StatusUnprocessableEntity, "Choose a CSV file to upload.")
		return
	}
	if !strings.EqualFold(filepath.Ext(fh.Filename), ".csv") {
		fail(http.StatusUnprocessableEntity, "Only .csv files can be uploaded.")
		return
	}
	f, err := fh.Open()
	if err != nil {
		h.logger.Error("Failed to open uploaded file", zap.Error(err))
		fail(http.StatusBadRequest, "The file could not be read.")
		return
	}
	defer f.Close()

	msg, err := h.API(c).UploadInstitutionData(c.Request.Context(), fh.Filename, f)
	if err != nil {
		h.logger.Warn("Institution upload failed", zap.String("file", fh.Filename), zap.Error(err))
		fail(apiclient.StatusOf(err), apiclient.Describe(err, "Upload failed. Please try again."))
		return
	}
	text := msg.Msg
	if text == "" {
		text = "File uploaded successfully."
	}
	h.logger.Info("Institution data uploaded", zap.String("file", fh.Filename), zap.Int64("size", fh.Size))
	renderer.Render(c, http.StatusOK, UploadForm(&banner.BannerProps{ID: "upload-success", Type: banner.BannerSuccess, Message: text, Dismissable: true}))
}
