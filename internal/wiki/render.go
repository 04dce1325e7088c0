package wiki

import (
	"bytes"
	"context"
	"sync"

	"github.com/rotisserie/eris"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

// markdownInstance is initialized once and reused. The converter
// configuration never changes and goldmark instances are safe to share.
// Raw HTML passthrough is required so the anchors injected by the link
// resolver survive conversion.
var (
	markdownInstance goldmark.Markdown
	markdownOnce     sync.Once
)

func getMarkdown() goldmark.Markdown {
	markdownOnce.Do(func() {
		markdownInstance = goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			goldmark.WithRendererOptions(html.WithUnsafe()),
		)
	})
	return markdownInstance
}

// Renderer turns page content into HTML: wiki references are rewritten into
// classified links first, then the result converts from Markdown.
type Renderer struct {
	store *Store
}

// NewRenderer constructs a renderer bound to the store used for link
// classification.
func NewRenderer(store *Store) (*Renderer, error) {
	if store == nil {
		return nil, eris.New("page store is required")
	}
	return &Renderer{store: store}, nil
}

// ToHTML renders the page's current content. Output is recomputed on every
// call so link classification always reflects the latest tree.
func (r *Renderer) ToHTML(ctx context.Context, page *Page) (string, error) {
	if page == nil {
		return "", eris.New("page is nil")
	}

	linked := linkWikiWords(page.Content, func(name string) Classification {
		return r.store.Classify(ctx, name)
	})

	var buf bytes.Buffer
	if err := getMarkdown().Convert([]byte(linked), &buf); err != nil {
		return "", eris.Wrapf(err, "converting markdown for page: %s", page.Name)
	}

	return buf.String(), nil
}
