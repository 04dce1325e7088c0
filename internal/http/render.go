package http

import (
	"bytes"
	"context"
	stdhttp "net/http"

	"github.com/a-h/templ"
	"github.com/rotisserie/eris"
)

// renderHTML renders a templ component into a complete HTML response with
// the given status.
func renderHTML(ctx context.Context, status int, component templ.Component) (*htmlResponse, error) {
	var buf bytes.Buffer
	if err := component.Render(ctx, &buf); err != nil {
		return nil, eris.Wrap(err, "rendering component")
	}

	return &htmlResponse{
		Status:      status,
		ContentType: htmlContentType,
		Body:        buf.Bytes(),
	}, nil
}

// redirectTo builds an empty response sending the client to location.
func redirectTo(location string) *htmlResponse {
	return &htmlResponse{
		Status:      stdhttp.StatusFound,
		ContentType: htmlContentType,
		Location:    location,
	}
}
