package button

import (
	"github.com/Oudwins/tailwind-merge-go/pkg/twmerge"
	"github.com/a-h/templ"

	"github.com/FACorreiaa/go-edudash/internal/app/components/markup"
)

type Variant string

const (
	VariantDefault     Variant = "default"
	VariantDestructive Variant = "destructive"
	VariantOutline     Variant = "outline"
	VariantSecondary   Variant = "secondary"
	VariantGhost       Variant = "ghost"
	VariantLink        Variant = "link"
)

type Size string

const (
	SizeDefault Size = "default"
	SizeSm      Size = "sm"
	SizeLg      Size = "lg"
	SizeIcon    Size = "icon"
)

type Type string

const (
	TypeButton Type = "button"
	TypeReset  Type = "reset"
	TypeSubmit Type = "submit"
)

type Props struct {
	ID         string
	Class      string
	Attributes templ.Attributes
	Variant    Variant
	Size       Size
	FullWidth  bool
	Href       string
	Target     string
	Disabled   bool
	Type       Type
}

// Button renders a <button>, or an <a> when Href is set. Children come from
// templ.WithChildren on the render context.
func Button(props ...Props) templ.Component {
	var p Props
	if len(props) > 0 {
		p = props[0]
	}
	if p.Type == "" {
		p.Type = TypeButton
	}

	return markup.Func(func(m *markup.Writer) {
		class := p.classes()
		if p.Href != "" && !p.Disabled {
			m.Rawf(`<a%s href="%s"%s class="%s"%s>`,
				markup.Attr("id", p.ID), markup.Esc(p.Href), markup.Attr("target", p.Target),
				markup.Esc(class), markup.Attrs(p.Attributes))
			m.Children()
			m.Raw(`</a>`)
			return
		}

		disabled := ""
		if p.Disabled {
			disabled = " disabled"
		}
		m.Rawf(`<button%s type="%s" class="%s"%s%s>`,
			markup.Attr("id", p.ID), markup.Esc(string(p.Type)), markup.Esc(class), disabled, markup.Attrs(p.Attributes))
		m.Children()
		m.Raw(`</button>`)
	})
}

func (p Props) classes() string {
	width := ""
	if p.FullWidth {
		width = "w-full"
	}
	return twmerge.Merge(
		"inline-flex items-center justify-center gap-2 whitespace-nowrap rounded-md text-sm font-medium transition-all cursor-pointer",
		"disabled:pointer-events-none disabled:opacity-50 outline-none focus-visible:ring-2",
		p.variantClasses(),
		p.sizeClasses(),
		width,
		p.Class,
	)
}

func (p Props) variantClasses() string {
	switch p.Variant {
	case VariantDestructive:
		return "bg-destructive text-white hover:bg-destructive/90"
	case VariantOutline:
		return "border bg-background hover:bg-accent hover:text-accent-foreground"
	case VariantSecondary:
		return "bg-secondary text-secondary-foreground hover:bg-secondary/80"
	case VariantGhost:
		return "hover:bg-accent hover:text-accent-foreground"
	case VariantLink:
		return "text-primary underline-offset-4 hover:underline"
	default:
		return "bg-primary text-primary-foreground hover:bg-primary/90"
	}
}

func (p Props) sizeClasses() string {
	switch p.Size {
	case SizeSm:
		return "h-8 rounded-md gap-1.5 px-3"
	case SizeLg:
		return "h-10 rounded-md px-6"
	case SizeIcon:
		return "size-9"
	default:
		return "h-9 px-4 py-2"
	}
}
