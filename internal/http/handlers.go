package http

import (
	"context"
	"fmt"
	stdhttp "net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/danielgtaylor/huma/v2"
	"github.com/getsentry/sentry-go"
	"github.com/rotisserie/eris"
	"github.com/sirupsen/logrus"

	"gitwiki/app/internal/http/templates"
	"gitwiki/app/internal/wiki"
)

const (
	htmlContentType      = "text/html; charset=utf-8"
	errorFallbackMessage = "We couldn't process your request right now."
)

type htmlResponse struct {
	Status      int
	ContentType string `header:"Content-Type"`
	Location    string `header:"Location"`
	Body        []byte
}

type pageInput struct {
	Page string `path:"page"`
}

type savePageInput struct {
	Page    string `path:"page"`
	RawBody []byte
}

type healthResponse struct {
	Status int
	Body   struct {
		Status     string `json:"status"`
		Repository string `json:"repository"`
	}
}

func (s *Server) registerHomeRoute() {
	huma.Get(s.api, "/", s.homeHandler, htmlOperation(
		"Redirect to the homepage",
		stdhttp.StatusFound,
	))
}

func (s *Server) registerIndexRoute() {
	huma.Get(s.api, "/pages", s.indexHandler, htmlOperation(
		"List all pages",
		stdhttp.StatusOK,
		stdhttp.StatusInternalServerError,
	))
}

func (s *Server) registerPageRoute() {
	huma.Get(s.api, "/{page}", s.pageHandler, htmlOperation(
		"Show a rendered page",
		stdhttp.StatusOK,
		stdhttp.StatusFound,
		stdhttp.StatusBadRequest,
		stdhttp.StatusInternalServerError,
	))
}

func (s *Server) registerEditRoute() {
	huma.Get(s.api, "/{page}/edit", s.editHandler, htmlOperation(
		"Edit a page",
		stdhttp.StatusOK,
		stdhttp.StatusBadRequest,
		stdhttp.StatusInternalServerError,
	))
}

func (s *Server) registerSaveRoute() {
	huma.Post(s.api, "/{page}", s.saveHandler, htmlOperation(
		"Save submitted page content",
		stdhttp.StatusFound,
		stdhttp.StatusBadRequest,
		stdhttp.StatusInternalServerError,
	))
}

func (s *Server) registerHealthRoute() {
	huma.Get(s.api, "/healthz", s.healthHandler, func(op *huma.Operation) {
		op.Summary = "Health check"
	})
}

func (s *Server) homeHandler(_ context.Context, _ *struct{}) (*htmlResponse, error) {
	return redirectTo("/" + s.homepage), nil
}

func (s *Server) indexHandler(ctx context.Context, _ *struct{}) (*htmlResponse, error) {
	pages, err := s.store.FindAll(ctx)
	if err != nil {
		s.recordError(ctx, err, "listing pages", nil)
		return s.renderErrorResponse(ctx, stdhttp.StatusInternalServerError, "We couldn't list the wiki pages right now.")
	}

	data := templates.IndexPageData{
		Title:   "All pages",
		Entries: make([]templates.IndexEntry, 0, len(pages)),
	}
	for _, page := range pages {
		data.Entries = append(data.Entries, templates.IndexEntry{
			Name: page.Name,
			URL:  "/" + page.Name,
		})
	}

	response, err := renderHTML(ctx, stdhttp.StatusOK, templates.IndexPage(data))
	if err != nil {
		s.recordError(ctx, err, "rendering page index", nil)
		return s.renderErrorResponse(ctx, stdhttp.StatusInternalServerError, "We couldn't render the page index.")
	}

	return response, nil
}

func (s *Server) pageHandler(ctx context.Context, input *pageInput) (*htmlResponse, error) {
	name := strings.TrimSpace(input.Page)

	page, err := s.store.Find(ctx, name)
	if err != nil {
		if eris.Is(err, wiki.ErrPageNotFound) {
			return redirectTo("/" + name + "/edit"), nil
		}

		status, message := classifyError(err)
		s.recordError(ctx, err, "loading page", logrus.Fields{"page": name})
		return s.renderErrorResponse(ctx, status, message)
	}

	rendered, err := s.renderer.ToHTML(ctx, page)
	if err != nil {
		s.recordError(ctx, err, "rendering page content", logrus.Fields{"page": name})
		return s.renderErrorResponse(ctx, stdhttp.StatusInternalServerError, "We couldn't render that page.")
	}

	references, err := wiki.OutgoingLinks(rendered)
	if err != nil {
		// The page still renders without its references footer.
		s.recordError(ctx, err, "extracting page references", logrus.Fields{"page": name})
		references = nil
	}

	data := templates.PageViewData{
		Title:      page.Name,
		HTML:       rendered,
		EditURL:    "/" + page.Name + "/edit",
		References: make([]templates.ReferenceView, 0, len(references)),
	}
	for _, ref := range references {
		data.References = append(data.References, templates.ReferenceView{
			Name:  ref.Name,
			URL:   ref.Href,
			Class: string(ref.Class),
		})
	}

	response, err := renderHTML(ctx, stdhttp.StatusOK, templates.PageView(data))
	if err != nil {
		s.recordError(ctx, err, "rendering page view", logrus.Fields{"page": name})
		return s.renderErrorResponse(ctx, stdhttp.StatusInternalServerError, "We couldn't render that page.")
	}

	return response, nil
}

func (s *Server) editHandler(ctx context.Context, input *pageInput) (*htmlResponse, error) {
	name := strings.TrimSpace(input.Page)

	page, err := s.store.FindOrCreate(ctx, name)
	if err != nil {
		status, message := classifyError(err)
		s.recordError(ctx, err, "preparing page editor", logrus.Fields{"page": name})
		return s.renderErrorResponse(ctx, status, message)
	}

	data := templates.EditPageData{
		Title:     "Edit " + page.Name,
		Name:      page.Name,
		Content:   page.Content,
		ActionURL: "/" + page.Name,
		IsNew:     page.IsNew(),
	}

	response, err := renderHTML(ctx, stdhttp.StatusOK, templates.EditPage(data))
	if err != nil {
		s.recordError(ctx, err, "rendering page editor", logrus.Fields{"page": name})
		return s.renderErrorResponse(ctx, stdhttp.StatusInternalServerError, "We couldn't render the editor.")
	}

	return response, nil
}

func (s *Server) saveHandler(ctx context.Context, input *savePageInput) (*htmlResponse, error) {
	name := strings.TrimSpace(input.Page)

	values, err := url.ParseQuery(string(input.RawBody))
	if err != nil {
		s.recordError(ctx, err, "parsing edit form", logrus.Fields{"page": name})
		return s.renderErrorResponse(ctx, stdhttp.StatusBadRequest, "The submitted form could not be read.")
	}
	content := values.Get("content")

	page, err := s.store.FindOrCreate(ctx, name)
	if err != nil {
		status, message := classifyError(err)
		s.recordError(ctx, err, "resolving page for save", logrus.Fields{"page": name})
		return s.renderErrorResponse(ctx, status, message)
	}

	if err := s.store.UpdateContent(ctx, page, content); err != nil {
		status, message := classifyError(err)
		s.recordError(ctx, err, "saving page", logrus.Fields{"page": name})
		return s.renderErrorResponse(ctx, status, message)
	}

	return redirectTo("/" + page.Name), nil
}

func (s *Server) healthHandler(ctx context.Context, _ *struct{}) (*healthResponse, error) {
	resp := &healthResponse{}
	resp.Body.Status = "ok"
	resp.Body.Repository = "ok"

	if _, err := s.store.FindAll(ctx); err != nil {
		s.recordError(ctx, err, "checking repository health", nil)
		resp.Body.Status = "degraded"
		resp.Body.Repository = "error"
		resp.Status = stdhttp.StatusServiceUnavailable
	}

	if resp.Status == 0 {
		resp.Status = stdhttp.StatusOK
	}

	return resp, nil
}

func htmlOperation(summary string, statuses ...int) func(op *huma.Operation) {
	return func(op *huma.Operation) {
		if summary != "" {
			op.Summary = summary
		}
		if op.Responses == nil {
			op.Responses = map[string]*huma.Response{}
		}
		if len(statuses) > 0 {
			// Keeps the generated document from declaring a 200 on routes
			// that only ever redirect.
			op.DefaultStatus = statuses[0]
		}

		for _, status := range statuses {
			code := strconv.Itoa(status)
			op.Responses[code] = &huma.Response{
				Description: stdhttp.StatusText(status),
				Content: map[string]*huma.MediaType{
					htmlContentType: {
						Schema: &huma.Schema{Type: "string"},
					},
				},
			}
		}
	}
}

func classifyError(err error) (int, string) {
	if err == nil {
		return stdhttp.StatusInternalServerError, errorFallbackMessage
	}

	cause := strings.ToLower(eris.Cause(err).Error())
	switch {
	case strings.Contains(cause, "page name is required"):
		return stdhttp.StatusBadRequest, "A page name is required."
	case strings.Contains(cause, "invalid page name"):
		return stdhttp.StatusBadRequest, "That page name is not allowed."
	case strings.Contains(cause, "not found"):
		return stdhttp.StatusNotFound, "We couldn't find that page."
	default:
		return stdhttp.StatusInternalServerError, errorFallbackMessage
	}
}

func (s *Server) renderErrorResponse(ctx context.Context, status int, message string) (*htmlResponse, error) {
	label := fmt.Sprintf("%d %s", status, stdhttp.StatusText(status))
	title := fmt.Sprintf("%s • GitWiki", label)
	template := templates.ErrorPage(templates.ErrorPageData{
		Title:       title,
		StatusLabel: label,
		Message:     message,
	})

	response, err := renderHTML(ctx, status, template)
	if err != nil {
		s.recordError(ctx, err, "rendering error page", logrus.Fields{"status": status})
		fallback := []byte(fmt.Sprintf("<html><body><h1>%s</h1><p>%s</p></body></html>", label, message))
		return &htmlResponse{Status: status, ContentType: htmlContentType, Body: fallback}, nil
	}

	return response, nil
}

func (s *Server) recordError(ctx context.Context, err error, message string, fields logrus.Fields) {
	if err == nil {
		return
	}

	if s.logger != nil {
		entry := s.logger.WithField("error", err.Error())
		if fields != nil {
			entry = entry.WithFields(fields)
		}
		if requestID := RequestIDFromContext(ctx); requestID != "" {
			entry = entry.WithField("request_id", requestID)
		}
		entry.Error(message)
	}

	if hub := sentry.GetHubFromContext(ctx); hub != nil {
		hub.CaptureException(err)
		return
	}
	if s.sentry != nil {
		s.sentry.CaptureException(err)
	}
}
