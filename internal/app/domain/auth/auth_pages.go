package auth

import (
	"github.com/a-h/templ"

	"github.com/FACorreiaa/go-edudash/internal/app/components/banner"
	"github.com/FACorreiaa/go-edudash/internal/app/components/button"
	"github.com/FACorreiaa/go-edudash/internal/app/components/form"
	"github.com/FACorreiaa/go-edudash/internal/app/components/markup"
	"github.com/FACorreiaa/go-edudash/internal/app/models"
)

const (
	loginFormID  = "login-form"
	signupFormID = "signup-form"
)

// FormState is what a re-rendered form shows: the submitted values, field
// errors and an optional banner.
type FormState struct {
	Values map[string]string
	Errors map[string]string
	Banner *banner.BannerProps
}

func (s FormState) value(k string) string { return s.Values[k] }
func (s FormState) err(k string) string   { return s.Errors[k] }

func LoginForm(s FormState) templ.Component {
	return markup.Func(func(m *markup.Writer) {
		m.Rawf(`<form id="%s" method="post" action="/login" hx-post="/login" hx-target="this" hx-swap="outerHTML" class="rounded-lg bg-white p-8 shadow-md">`, loginFormID)
		m.Raw(`<h2 class="mb-6 text-center text-2xl font-bold">Welcome back</h2>`)
		if s.Banner != nil {
			m.Component(banner.Banner(*s.Banner))
		}
		m.Component(form.Input(form.Field{Name: "email", Label: "Email", Type: "email", Placeholder: "Username (Email)",
			Value: s.value("email"), Error: s.err("email"), Required: true}))
		m.Component(form.Input(form.Field{Name: "password", Label: "Password", Type: "password", Placeholder: "Password",
			Error: s.err("password"), Required: true}))
		m.Component(markup.With(button.Button(button.Props{Type: button.TypeSubmit, FullWidth: true}), markup.TextComponent("Log in")))
		m.Raw(`<p class="mt-4 text-center text-sm">No account? <a href="/signup" class="underline">Create one</a></p>`)
		m.Raw(`</form>`)
	})
}

var roleOptions = func() []form.Option {
	opts := make([]form.Option, 0, len(models.Roles()))
	for _, r := range models.Roles() {
		opts = append(opts, form.Option{Value: string(r), Label: r.DisplayName()})
	}
	return opts
}()

func SignupForm(s FormState) templ.Component {
	role := s.value("role")
	if role == "" {
		role = string(models.RoleStudent)
	}
	return markup.Func(func(m *markup.Writer) {
		m.Rawf(`<form id="%s" method="post" action="/signup" hx-post="/signup" hx-target="this" hx-swap="outerHTML" class="rounded-lg bg-white p-8 shadow-md">`, signupFormID)
		m.Raw(`<h2 class="mb-6 text-center text-2xl font-bold">Create your account</h2>`)
		if s.Banner != nil {
			m.Component(banner.Banner(*s.Banner))
		}
		m.Component(form.Input(form.Field{Name: "fullName", Label: "Full name", Placeholder: "Full Name",
			Value: s.value("fullName"), Error: s.err("fullName"), Required: true}))
		m.Component(form.Input(form.Field{Name: "email", Label: "Email", Type: "email", Placeholder: "Email Address",
			Value: s.value("email"), Error: s.err("email"), Required: true}))
		m.Component(form.Input(form.Field{Name: "password", Label: "Password", Type: "password", Placeholder: "Password",
			Error: s.err("password"), Required: true}))
		m.Component(form.Select(form.Field{Name: "role", Label: "Role", Value: role, Options: roleOptions,
			Error: s.err("role"), Required: true}))
		m.Component(markup.With(button.Button(button.Props{Type: button.TypeSubmit, FullWidth: true}), markup.TextComponent("Sign up")))
		m.Raw(`<p class="mt-4 text-center text-sm">Already registered? <a href="/login" class="underline">Log in</a></p>`)
		m.Raw(`</form>`)
	})
}
