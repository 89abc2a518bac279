package layout

import (
	"github.com/a-h/templ"

	"github.com/FACorreiaa/go-edudash/internal/app/models"
)

// DashboardPath is the backend path of a role's dashboard payload. Admin and
// institution have dedicated overview endpoints; every other role uses
// /{role}/dashboard.
func DashboardPath(role models.Role) string {
	switch role {
	case models.RoleAdmin:
		return "/admin/overview"
	case models.RoleInstitution:
		return "/institution/overview"
	default:
		return "/" + string(role) + "/dashboard"
	}
}

// PayloadPage is a page that renders the dashboard payload.
type PayloadPage func(models.DashboardPayload) templ.Component

// Inject hands payload to page. A PayloadPage receives the whole payload
// (an empty one when nil); a plain component renders unchanged; anything
// else renders nothing.
func Inject(page any, payload models.DashboardPayload) templ.Component {
	if payload == nil {
		payload = models.DashboardPayload{}
	}
	switch p := page.(type) {
	case PayloadPage:
		if p == nil {
			return templ.NopComponent
		}
		return p(payload)
	case func(models.DashboardPayload) templ.Component:
		if p == nil {
			return templ.NopComponent
		}
		return p(payload)
	case templ.Component:
		return p
	default:
		return templ.NopComponent
	}
}
