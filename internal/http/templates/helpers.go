package templates

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

// RawHTML wraps already-rendered markup, such as a markdown-converted page
// body, in a component that writes it verbatim. Callers must only pass
// markup produced by the renderer, never user input.
func RawHTML(markup string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		_, err := io.WriteString(w, markup)
		return err
	})
}
