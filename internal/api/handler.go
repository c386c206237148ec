// Package api routes API Gateway requests to the content core.
package api

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/aws/aws-lambda-go/events"

	"github.com/tizor98/albertonet-sub000/internal/config"
	"github.com/tizor98/albertonet-sub000/internal/contact"
	"github.com/tizor98/albertonet-sub000/internal/feed"
	"github.com/tizor98/albertonet-sub000/internal/model"
	"github.com/tizor98/albertonet-sub000/internal/render"
	"github.com/tizor98/albertonet-sub000/internal/response"
	"github.com/tizor98/albertonet-sub000/pkg/logger"
)

// Catalog is the slice of the content service the handler consumes.
type Catalog interface {
	Posts(ctx context.Context) ([]model.Post, error)
	Post(ctx context.Context, slug string) (*model.Post, error)
	TopPosts(ctx context.Context) ([]model.TopPost, error)
	Projects(ctx context.Context) ([]model.Project, error)
}

// Handler serves the site API routes.
type Handler struct {
	catalog   Catalog
	messenger contact.MessageService
	validator *contact.Validator
	site      config.SiteConfig
}

func NewHandler(catalog Catalog, messenger contact.MessageService, validator *contact.Validator, site config.SiteConfig) *Handler {
	return &Handler{
		catalog:   catalog,
		messenger: messenger,
		validator: validator,
		site:      site,
	}
}

// Handle routes one API Gateway request.
func (h *Handler) Handle(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	path := req.Path
	method := req.HTTPMethod
	logger.Info("handling request", "method", method, "path", path)

	switch {
	case method == http.MethodGet && path == "/posts":
		return h.listPosts(ctx), nil
	case method == http.MethodGet && path == "/posts/top":
		return h.topPosts(ctx), nil
	case method == http.MethodGet && strings.HasPrefix(path, "/posts/"):
		return h.getPost(ctx, strings.TrimPrefix(path, "/posts/"), req.QueryStringParameters), nil
	case method == http.MethodGet && path == "/projects":
		return h.projects(ctx), nil
	case method == http.MethodGet && path == "/feed":
		return h.feed(ctx, req.QueryStringParameters), nil
	case method == http.MethodPost && path == "/contact":
		return h.postContact(ctx, req), nil
	default:
		return response.NotFound("route not found"), nil
	}
}

func (h *Handler) listPosts(ctx context.Context) events.APIGatewayProxyResponse {
	posts, err := h.catalog.Posts(ctx)
	if err != nil {
		logger.Error("failed to list posts", "error", err)
		return response.InternalServerError("failed to list posts")
	}
	return response.Success(model.PostListResponse{Posts: posts, Total: len(posts)})
}

func (h *Handler) getPost(ctx context.Context, slug string, params map[string]string) events.APIGatewayProxyResponse {
	post, err := h.catalog.Post(ctx, slug)
	if err != nil {
		logger.Error("failed to get post", "slug", slug, "error", err)
		return response.InternalServerError("failed to get post")
	}
	if post == nil {
		return response.NotFound("post not found")
	}

	if params["format"] == "html" {
		html, err := render.HTML(post.Content)
		if err != nil {
			logger.Error("failed to render post", "slug", slug, "error", err)
			return response.InternalServerError("failed to render post")
		}
		return response.HTML(html)
	}
	return response.Success(post)
}

func (h *Handler) topPosts(ctx context.Context) events.APIGatewayProxyResponse {
	top, err := h.catalog.TopPosts(ctx)
	if err != nil {
		logger.Error("failed to get top posts", "error", err)
		return response.InternalServerError("failed to get top posts")
	}
	return response.Success(top)
}

func (h *Handler) projects(ctx context.Context) events.APIGatewayProxyResponse {
	projects, err := h.catalog.Projects(ctx)
	if err != nil {
		logger.Error("failed to get projects", "error", err)
		return response.InternalServerError("failed to get projects")
	}
	return response.Success(projects)
}

func (h *Handler) feed(ctx context.Context, params map[string]string) events.APIGatewayProxyResponse {
	format := params["format"]
	if format == "" {
		format = feed.FormatRSS
	}
	if format != feed.FormatRSS && format != feed.FormatAtom {
		return response.BadRequest("unsupported feed format", nil)
	}

	posts, err := h.catalog.Posts(ctx)
	if err != nil {
		logger.Error("failed to build feed", "error", err)
		return response.InternalServerError("failed to build feed")
	}

	out, err := feed.Generate(h.site, posts, format)
	if err != nil {
		logger.Error("failed to render feed", "format", format, "error", err)
		return response.InternalServerError("failed to render feed")
	}
	return response.XML(feed.ContentType(format), out)
}

func (h *Handler) postContact(ctx context.Context, req events.APIGatewayProxyRequest) events.APIGatewayProxyResponse {
	locale := req.QueryStringParameters["locale"]
	if locale == "" {
		locale = h.site.DefaultLocale
	}

	var msg contact.Message
	if err := json.Unmarshal([]byte(req.Body), &msg); err != nil {
		return response.BadRequest("invalid request body", nil)
	}

	if details := h.validator.Validate(locale, msg); len(details) > 0 {
		return response.BadRequest("invalid contact message", details)
	}

	if err := h.messenger.SendContactNotification(ctx, msg); err != nil {
		logger.Error("failed to dispatch contact notification", "error", err)
		return response.InternalServerError("failed to send message")
	}
	return response.Accepted(map[string]string{"status": "accepted"})
}
