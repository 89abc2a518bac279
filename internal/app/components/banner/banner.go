package banner

import (
	"strconv"

	"github.com/Oudwins/tailwind-merge-go/pkg/twmerge"
	"github.com/a-h/templ"

	"github.com/FACorreiaa/go-edudash/internal/app/components/markup"
)

type BannerType string

const (
	BannerError   BannerType = "error"
	BannerSuccess BannerType = "success"
	BannerInfo    BannerType = "info"
	BannerWarning BannerType = "warning"
)

type BannerProps struct {
	ID          string
	Type        BannerType
	Message     string
	Description string
	Dismissable bool
	// AutoDismiss removes the banner after this many seconds; 0 keeps it.
	AutoDismiss int
	Class       string
}

func Banner(p BannerProps) templ.Component {
	if p.Type == "" {
		p.Type = BannerInfo
	}
	return markup.Func(func(m *markup.Writer) {
		role := "status"
		if p.Type == BannerError {
			role = "alert"
		}
		auto := ""
		if p.AutoDismiss > 0 {
			auto = markup.Attr("data-auto-dismiss", strconv.Itoa(p.AutoDismiss))
		}
		m.Rawf(`<div%s role="%s" data-banner="%s" class="%s"%s>`,
			markup.Attr("id", p.ID), role, markup.Esc(string(p.Type)),
			markup.Esc(twmerge.Merge("rounded-md border px-4 py-3 text-sm", typeClasses(p.Type), p.Class)), auto)
		m.Raw(`<p class="font-medium">`)
		m.Text(p.Message)
		m.Raw(`</p>`)
		if p.Description != "" {
			m.Raw(`<p class="mt-1 opacity-80">`)
			m.Text(p.Description)
			m.Raw(`</p>`)
		}
		if p.Dismissable {
			m.Raw(`<button type="button" class="ml-auto text-xs underline" onclick="this.parentElement.remove()" aria-label="Dismiss">Dismiss</button>`)
		}
		m.Raw(`</div>`)
	})
}

func typeClasses(t BannerType) string {
	switch t {
	case BannerError:
		return "border-red-300 bg-red-50 text-red-800"
	case BannerSuccess:
		return "border-green-300 bg-green-50 text-green-800"
	case BannerWarning:
		return "border-yellow-300 bg-yellow-50 text-yellow-800"
	default:
		return "border-blue-300 bg-blue-50 text-blue-800"
	}
}
