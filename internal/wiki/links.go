package wiki

import (
	"strings"

	"github.com/rotisserie/eris"
	"golang.org/x/net/html"
)

// Link describes a wiki anchor discovered in rendered page HTML.
type Link struct {
	Name  string
	Href  string
	Class Classification
}

// OutgoingLinks parses rendered HTML and returns the wiki links it contains,
// in document order with duplicates removed. Only anchors produced by the
// link resolver (root-relative href, exists/unknown class) are reported.
func OutgoingLinks(rendered string) ([]Link, error) {
	doc, err := html.Parse(strings.NewReader(rendered))
	if err != nil {
		return nil, eris.Wrap(err, "parsing rendered page html")
	}

	var links []Link
	seen := make(map[string]struct{})

	var walk func(node *html.Node)
	walk = func(node *html.Node) {
		if node.Type == html.ElementNode && node.Data == "a" {
			if link, ok := wikiLinkFromAnchor(node); ok {
				if _, dup := seen[link.Href]; !dup {
					seen[link.Href] = struct{}{}
					links = append(links, link)
				}
			}
		}
		for child := node.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(doc)

	return links, nil
}

func wikiLinkFromAnchor(node *html.Node) (Link, bool) {
	var href, class string
	for _, attr := range node.Attr {
		switch attr.Key {
		case "href":
			href = attr.Val
		case "class":
			class = attr.Val
		}
	}

	if !strings.HasPrefix(href, "/") || strings.Count(href, "/") != 1 {
		return Link{}, false
	}

	var classification Classification
	switch Classification(class) {
	case ClassificationExists:
		classification = ClassificationExists
	case ClassificationUnknown:
		classification = ClassificationUnknown
	default:
		return Link{}, false
	}

	return Link{
		Name:  anchorText(node),
		Href:  href,
		Class: classification,
	}, true
}

func anchorText(node *html.Node) string {
	var builder strings.Builder
	for child := node.FirstChild; child != nil; child = child.NextSibling {
		if child.Type == html.TextNode {
			builder.WriteString(child.Data)
		}
	}
	return strings.TrimSpace(builder.String())
}
