package wiki

// Page binds a logical page name to the content stored in the repository.
// The name never carries the configured file extension.
type Page struct {
	Name    string
	Content string

	blobID string
}

// IsNew reports whether the page has no committed identity yet.
func (p *Page) IsNew() bool {
	return p.blobID == ""
}

// BlobID returns the content identity assigned by the repository, or the
// empty string for a page that has never been committed.
func (p *Page) BlobID() string {
	return p.blobID
}
