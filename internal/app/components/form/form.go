// Package form renders labelled inputs and maps binding errors onto them.
package form

import (
	"errors"
	"reflect"
	"strings"

	"github.com/Oudwins/tailwind-merge-go/pkg/twmerge"
	"github.com/a-h/templ"
	"github.com/go-playground/validator/v10"

	"github.com/FACorreiaa/go-edudash/internal/app/components/markup"
)

type Option struct {
	Value string
	Label string
}

type Field struct {
	Name        string
	Label       string
	Type        string
	Value       string
	Placeholder string
	Error       string
	Required    bool
	Options     []Option
	Class       string
}

const inputClass = "w-full rounded-md border border-gray-300 px-3 py-2 text-sm focus:outline-none focus:ring-2 focus:ring-primary-500"

// Input renders a labelled <input>, or a <textarea> for Type "textarea".
func Input(f Field) templ.Component {
	if f.Type == "" {
		f.Type = "text"
	}
	return field(f, func(m *markup.Writer, class string) {
		if f.Type == "textarea" {
			m.Rawf(`<textarea id="%s" name="%s" class="%s"%s%s>`, fieldID(f), markup.Esc(f.Name), markup.Esc(class),
				markup.Attr("placeholder", f.Placeholder), required(f))
			m.Text(f.Value)
			m.Raw(`</textarea>`)
			return
		}
		value := f.Value
		if f.Type == "password" {
			value = ""
		}
		m.Rawf(`<input id="%s" type="%s" name="%s" class="%s"%s%s%s>`, fieldID(f), markup.Esc(f.Type), markup.Esc(f.Name),
			markup.Esc(class), markup.Attr("value", value), markup.Attr("placeholder", f.Placeholder), required(f))
	})
}

// Select renders a labelled <select> with f.Value preselected.
func Select(f Field) templ.Component {
	return field(f, func(m *markup.Writer, class string) {
		m.Rawf(`<select id="%s" name="%s" class="%s"%s>`, fieldID(f), markup.Esc(f.Name), markup.Esc(class), required(f))
		for _, opt := range f.Options {
			selected := ""
			if opt.Value == f.Value {
				selected = " selected"
			}
			m.Rawf(`<option value="%s"%s>`, markup.Esc(opt.Value), selected)
			m.Text(opt.Label)
			m.Raw(`</option>`)
		}
		m.Raw(`</select>`)
	})
}

func field(f Field, control func(m *markup.Writer, class string)) templ.Component {
	return markup.Func(func(m *markup.Writer) {
		class := inputClass
		if f.Error != "" {
			class = twmerge.Merge(class, "border-red-500 focus:ring-red-500")
		}
		class = twmerge.Merge(class, f.Class)

		m.Raw(`<div class="mb-4">`)
		if f.Label != "" {
			m.Rawf(`<label for="%s" class="mb-1 block text-sm font-medium">`, fieldID(f))
			m.Text(f.Label)
			m.Raw(`</label>`)
		}
		control(m, class)
		if f.Error != "" {
			m.Rawf(`<p class="field-error mt-1 text-xs text-red-600" data-field="%s">`, markup.Esc(f.Name))
			m.Text(f.Error)
			m.Raw(`</p>`)
		}
		m.Raw(`</div>`)
	})
}

func fieldID(f Field) string {
	return "field-" + markup.Esc(f.Name)
}

func required(f Field) string {
	if f.Required {
		return " required"
	}
	return ""
}

// FieldErrors maps validation errors from binding obj (a pointer to a
// struct with form tags) to messages keyed by form field name. It returns
// nil when err holds no validation errors.
func FieldErrors(obj any, err error) map[string]string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}
	t := reflect.TypeOf(obj)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	out := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		name := strings.ToLower(fe.Field())
		if sf, ok := t.FieldByName(fe.StructField()); ok {
			if tag := strings.Split(sf.Tag.Get("form"), ",")[0]; tag != "" {
				name = tag
			}
		}
		if _, seen := out[name]; !seen {
			out[name] = message(fe)
		}
	}
	return out
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required."
	case "max":
		return "Must be at most " + fe.Param() + " characters."
	case "email":
		return "Enter a valid email address."
	case "url":
		return "Enter a valid URL."
	case "oneof":
		return "Choose one of: " + strings.ReplaceAll(fe.Param(), " ", ", ") + "."
	case "gt", "min":
		return "Must be at least " + fe.Param() + "."
	default:
		return "Invalid value."
	}
}
