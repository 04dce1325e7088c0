package templates

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"
)

const stylesheet = `body{max-width:48rem;margin:2rem auto;padding:0 1rem;font-family:Georgia,serif;line-height:1.6}
nav{margin-bottom:1.5rem;border-bottom:1px solid #ddd;padding-bottom:.5rem}
nav a{margin-right:1rem}
a.exists{color:#1a5fb4}
a.unknown{color:#a51d2d}
a.unknown::after{content:"?"}
textarea{width:100%;min-height:20rem;font-family:monospace;font-size:.95rem}
footer.references{margin-top:2rem;border-top:1px solid #ddd;padding-top:.5rem;font-size:.9rem;color:#555}`

// PageView renders a wiki page with its references footer.
func PageView(data PageViewData) templ.Component {
	return layout(data.Title, templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, `<article>`); err != nil {
			return err
		}
		if err := RawHTML(data.HTML).Render(ctx, w); err != nil {
			return err
		}
		if _, err := io.WriteString(w, `</article>`); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, `<p><a href="%s">Edit this page</a></p>`, templ.EscapeString(data.EditURL)); err != nil {
			return err
		}
		return writeReferences(w, data.References)
	}))
}

// EditPage renders the page editor form.
func EditPage(data EditPageData) templ.Component {
	return layout(data.Title, templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		heading := "Editing " + data.Name
		if data.IsNew {
			heading = "Creating " + data.Name
		}
		if _, err := fmt.Fprintf(w, `<h1>%s</h1>`, templ.EscapeString(heading)); err != nil {
			return err
		}
		_, err := fmt.Fprintf(w,
			`<form method="post" action="%s"><textarea name="content">%s</textarea><p><button type="submit">Save</button></p></form>`,
			templ.EscapeString(data.ActionURL),
			templ.EscapeString(data.Content),
		)
		return err
	}))
}

// IndexPage renders the listing of every page in the wiki.
func IndexPage(data IndexPageData) templ.Component {
	return layout(data.Title, templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, `<h1>All pages</h1>`); err != nil {
			return err
		}
		if len(data.Entries) == 0 {
			_, err := io.WriteString(w, `<p>No pages yet. Start by editing the homepage.</p>`)
			return err
		}
		if _, err := io.WriteString(w, `<ul>`); err != nil {
			return err
		}
		for _, entry := range data.Entries {
			if _, err := fmt.Fprintf(w, `<li><a class="exists" href="%s">%s</a></li>`,
				templ.EscapeString(entry.URL), templ.EscapeString(entry.Name)); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, `</ul>`)
		return err
	}))
}

// ErrorPage renders an error view.
func ErrorPage(data ErrorPageData) templ.Component {
	return layout(data.Title, templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := fmt.Fprintf(w, `<h1>%s</h1><p>%s</p>`,
			templ.EscapeString(data.StatusLabel), templ.EscapeString(data.Message))
		return err
	}))
}

func layout(title string, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if _, err := fmt.Fprintf(w,
			`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8"><title>%s</title><style>%s</style></head><body>`,
			templ.EscapeString(title), stylesheet); err != nil {
			return err
		}
		if _, err := io.WriteString(w, `<nav><a href="/">Home</a><a href="/pages">All pages</a></nav>`); err != nil {
			return err
		}
		if err := body.Render(ctx, w); err != nil {
			return err
		}
		_, err := io.WriteString(w, `</body></html>`)
		return err
	})
}

func writeReferences(w io.Writer, references []ReferenceView) error {
	if len(references) == 0 {
		return nil
	}

	if _, err := io.WriteString(w, `<footer class="references">References: `); err != nil {
		return err
	}
	for i, ref := range references {
		if i > 0 {
			if _, err := io.WriteString(w, `, `); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintf(w, `<a class="%s" href="%s">%s</a>`,
			templ.EscapeString(ref.Class), templ.EscapeString(ref.URL), templ.EscapeString(ref.Name)); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, `</footer>`)
	return err
}
