package wiki

import "testing"

func TestOutgoingLinksExtractsWikiAnchors(t *testing.T) {
	t.Parallel()

	rendered := `<p>See <a class="exists" href="/AliceBob">AliceBob</a> and ` +
		`<a class="unknown" href="/CarolDave">CarolDave</a>.</p>`

	links, err := OutgoingLinks(rendered)
	if err != nil {
		t.Fatalf("OutgoingLinks returned error: %v", err)
	}

	if len(links) != 2 {
		t.Fatalf("expected two links, got %d", len(links))
	}

	if links[0].Name != "AliceBob" || links[0].Href != "/AliceBob" || links[0].Class != ClassificationExists {
		t.Fatalf("unexpected first link: %#v", links[0])
	}
	if links[1].Name != "CarolDave" || links[1].Href != "/CarolDave" || links[1].Class != ClassificationUnknown {
		t.Fatalf("unexpected second link: %#v", links[1])
	}
}

func TestOutgoingLinksDeduplicates(t *testing.T) {
	t.Parallel()

	rendered := `<p><a class="exists" href="/Home">Home</a> twice: ` +
		`<a class="exists" href="/Home">Home</a></p>`

	links, err := OutgoingLinks(rendered)
	if err != nil {
		t.Fatalf("OutgoingLinks returned error: %v", err)
	}
	if len(links) != 1 {
		t.Fatalf("expected one deduplicated link, got %d", len(links))
	}
}

func TestOutgoingLinksIgnoresForeignAnchors(t *testing.T) {
	t.Parallel()

	rendered := `<p><a href="https://example.com">external</a>` +
		`<a class="nav" href="/pages">index</a>` +
		`<a class="exists" href="/Deep/Path">nested</a></p>`

	links, err := OutgoingLinks(rendered)
	if err != nil {
		t.Fatalf("OutgoingLinks returned error: %v", err)
	}
	if len(links) != 0 {
		t.Fatalf("expected no wiki links, got %#v", links)
	}
}
