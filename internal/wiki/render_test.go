package wiki

import (
	"context"
	"strings"
	"testing"
)

func TestNewRendererRequiresStore(t *testing.T) {
	t.Parallel()

	if _, err := NewRenderer(nil); err == nil {
		t.Fatalf("expected error when store is nil")
	}
}

func TestToHTMLLinkifiesAndConvertsMarkdown(t *testing.T) {
	t.Parallel()

	_, store := setupStore(t)
	ctx := context.Background()

	savePage(t, store, "AliceBob", "alice and bob")

	renderer, err := NewRenderer(store)
	if err != nil {
		t.Fatalf("NewRenderer returned error: %v", err)
	}

	page := &Page{Name: "Scratch", Content: "# Notes\n\nSee AliceBob and CarolDave."}

	html, err := renderer.ToHTML(ctx, page)
	if err != nil {
		t.Fatalf("ToHTML returned error: %v", err)
	}

	if !strings.Contains(html, "<h1>Notes</h1>") {
		t.Fatalf("expected markdown heading in output, got %q", html)
	}
	if !strings.Contains(html, `<a class="exists" href="/AliceBob">AliceBob</a>`) {
		t.Fatalf("expected exists link for AliceBob, got %q", html)
	}
	if !strings.Contains(html, `<a class="unknown" href="/CarolDave">CarolDave</a>`) {
		t.Fatalf("expected unknown link for CarolDave, got %q", html)
	}
}

func TestToHTMLSelfReferenceTracksOwnExistence(t *testing.T) {
	t.Parallel()

	_, store := setupStore(t)
	ctx := context.Background()

	renderer, err := NewRenderer(store)
	if err != nil {
		t.Fatalf("NewRenderer returned error: %v", err)
	}

	draft := &Page{Name: "MyPage", Content: "MyPage refers to itself."}

	html, err := renderer.ToHTML(ctx, draft)
	if err != nil {
		t.Fatalf("ToHTML returned error: %v", err)
	}
	if !strings.Contains(html, `<a class="unknown" href="/MyPage">MyPage</a>`) {
		t.Fatalf("expected unsaved self-reference to be unknown, got %q", html)
	}

	savePage(t, store, "MyPage", "MyPage refers to itself.")

	saved, err := store.Find(ctx, "MyPage")
	if err != nil {
		t.Fatalf("Find returned error: %v", err)
	}

	html, err = renderer.ToHTML(ctx, saved)
	if err != nil {
		t.Fatalf("ToHTML returned error: %v", err)
	}
	if !strings.Contains(html, `<a class="exists" href="/MyPage">MyPage</a>`) {
		t.Fatalf("expected saved self-reference to exist, got %q", html)
	}
}

func TestToHTMLDoesNotMutateStoredContent(t *testing.T) {
	t.Parallel()

	_, store := setupStore(t)
	ctx := context.Background()

	savePage(t, store, "Journal", "Entry about HomePage.")

	page, err := store.Find(ctx, "Journal")
	if err != nil {
		t.Fatalf("Find returned error: %v", err)
	}

	renderer, err := NewRenderer(store)
	if err != nil {
		t.Fatalf("NewRenderer returned error: %v", err)
	}

	if _, err := renderer.ToHTML(ctx, page); err != nil {
		t.Fatalf("ToHTML returned error: %v", err)
	}

	reread, err := store.Find(ctx, "Journal")
	if err != nil {
		t.Fatalf("Find returned error: %v", err)
	}
	if reread.Content != "Entry about HomePage." {
		t.Fatalf("expected stored content untouched, got %q", reread.Content)
	}
}
