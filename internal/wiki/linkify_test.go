package wiki

import "testing"

func classifyFrom(existing map[string]bool) func(string) Classification {
	return func(name string) Classification {
		if existing[name] {
			return ClassificationExists
		}
		return ClassificationUnknown
	}
}

func TestLinkWikiWordsClassifiesTargets(t *testing.T) {
	t.Parallel()

	input := "See AliceBob and CarolDave."
	got := linkWikiWords(input, classifyFrom(map[string]bool{"AliceBob": true}))

	want := `See <a class="exists" href="/AliceBob">AliceBob</a> and <a class="unknown" href="/CarolDave">CarolDave</a>.`
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestLinkWikiWordsLeavesPlainWordsAlone(t *testing.T) {
	t.Parallel()

	cases := []string{
		"Paris",
		"plain lowercase words",
		"ABC",
		"ends with Paris.",
		"snake_case and kebab-case stay put",
	}

	for _, input := range cases {
		if got := linkWikiWords(input, classifyFrom(nil)); got != input {
			t.Fatalf("expected %q unchanged, got %q", input, got)
		}
	}
}

func TestLinkWikiWordsAcceptsDigitsInLaterFragments(t *testing.T) {
	t.Parallel()

	got := linkWikiWords("Try PlanB2 today.", classifyFrom(nil))
	want := `Try <a class="unknown" href="/PlanB2">PlanB2</a> today.`
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestLinkWikiWordsIgnoresEmbeddedCapitals(t *testing.T) {
	t.Parallel()

	// A lowercase prefix glues the token into a single word.
	input := "deployVersionTwo"
	if got := linkWikiWords(input, classifyFrom(nil)); got != input {
		t.Fatalf("expected %q unchanged, got %q", input, got)
	}
}

func TestLinkWikiWordsHandlesMultipleFragments(t *testing.T) {
	t.Parallel()

	got := linkWikiWords("OldEnglishGrammar", classifyFrom(map[string]bool{"OldEnglishGrammar": true}))
	want := `<a class="exists" href="/OldEnglishGrammar">OldEnglishGrammar</a>`
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}
