package templates

// ReferenceView represents one outgoing wiki link shown under a page.
type ReferenceView struct {
	Name  string
	URL   string
	Class string
}

// PageViewData contains the dynamic values for a rendered wiki page.
type PageViewData struct {
	Title      string
	HTML       string
	EditURL    string
	References []ReferenceView
}

// EditPageData bundles the values rendered in the page editor.
type EditPageData struct {
	Title     string
	Name      string
	Content   string
	ActionURL string
	IsNew     bool
}

// IndexEntry represents a single page in the all-pages index.
type IndexEntry struct {
	Name string
	URL  string
}

// IndexPageData contains the values for the all-pages index.
type IndexPageData struct {
	Title   string
	Entries []IndexEntry
}

// ErrorPageData holds information for rendering an error view.
type ErrorPageData struct {
	Title       string
	StatusLabel string
	Message     string
}
