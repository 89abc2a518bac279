package button

import (
	"context"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/a-h/templ"

	"github.com/FACorreiaa/go-edudash/internal/app/components/markup"
)

func render(t *testing.T, ctx context.Context, c templ.Component) *goquery.Document {
	t.Helper()
	var sb strings.Builder
	if err := c.Render(ctx, &sb); err != nil {
		t.Fatalf("failed to render: %v", err)
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(sb.String()))
	if err != nil {
		t.Fatalf("failed to read rendered HTML: %v", err)
	}
	return doc
}

func TestButton(t *testing.T) {
	t.Run("it renders a button element", func(t *testing.T) {
		doc := render(t, context.Background(), Button(Props{ID: "save-institution", Type: TypeSubmit}))

		btn := doc.Find("button")
		if btn.Length() != 1 {
			t.Fatalf("expected one button, got %d", btn.Length())
		}
		if id, _ := btn.Attr("id"); id != "save-institution" {
			t.Errorf(`expected id "save-institution", got %q`, id)
		}
		if typ, _ := btn.Attr("type"); typ != "submit" {
			t.Errorf(`expected type "submit", got %q`, typ)
		}
	})

	t.Run("it renders an anchor element when href is provided", func(t *testing.T) {
		doc := render(t, context.Background(), Button(Props{ID: "to-portfolio", Href: "/dashboard/student/portfolio"}))

		a := doc.Find("a")
		if a.Length() != 1 {
			t.Fatal("expected an anchor element to be rendered")
		}
		if href, _ := a.Attr("href"); href != "/dashboard/student/portfolio" {
			t.Errorf("unexpected href %q", href)
		}
	})

	t.Run("a disabled link renders as a disabled button", func(t *testing.T) {
		doc := render(t, context.Background(), Button(Props{Href: "/x", Disabled: true}))
		if doc.Find("a").Length() != 0 {
			t.Error("expected no anchor for a disabled link")
		}
		if _, ok := doc.Find("button").Attr("disabled"); !ok {
			t.Error("expected disabled attribute")
		}
	})

	t.Run("it applies variant and size classes", func(t *testing.T) {
		doc := render(t, context.Background(), Button(Props{Variant: VariantDestructive, Size: SizeLg}))

		btn := doc.Find("button")
		for _, class := range []string{"bg-destructive", "h-10"} {
			if !btn.HasClass(class) {
				t.Errorf("expected class %q in %q", class, btn.AttrOr("class", ""))
			}
		}
		if btn.HasClass("bg-primary") {
			t.Error("variant classes should replace the default background")
		}
	})

	t.Run("custom class wins over size", func(t *testing.T) {
		doc := render(t, context.Background(), Button(Props{Class: "h-12"}))
		btn := doc.Find("button")
		if !btn.HasClass("h-12") || btn.HasClass("h-9") {
			t.Errorf("expected h-12 to replace h-9, got %q", btn.AttrOr("class", ""))
		}
	})

	t.Run("extra attributes are escaped", func(t *testing.T) {
		doc := render(t, context.Background(), Button(Props{Attributes: templ.Attributes{
			"hx-delete":  "/dashboard/admin/institutions/3",
			"hx-confirm": `Delete "IIT"?`,
		}}))
		btn := doc.Find("button")
		if v := btn.AttrOr("hx-confirm", ""); v != `Delete "IIT"?` {
			t.Errorf("unexpected hx-confirm %q", v)
		}
		if v := btn.AttrOr("hx-delete", ""); v != "/dashboard/admin/institutions/3" {
			t.Errorf("unexpected hx-delete %q", v)
		}
	})
}

func TestButtonChildren(t *testing.T) {
	doc := render(t, context.Background(), Button())
	if doc.Find("button").Text() != "" {
		t.Errorf("expected button to have no child content")
	}

	ctx := templ.WithChildren(context.Background(), markup.TextComponent("Add <Skill>"))
	doc = render(t, ctx, Button())
	if got := doc.Find("button").Text(); got != "Add <Skill>" {
		t.Errorf("expected escaped child text, got %q", got)
	}
}
