package handler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/itchan-dev/blogapi/shared/api"
	"github.com/itchan-dev/blogapi/shared/domain"
	"github.com/itchan-dev/blogapi/shared/errors"
	mw "github.com/itchan-dev/blogapi/shared/middleware"
	"github.com/itchan-dev/blogapi/shared/validation"
)

var errInvalidBlogId = errors.BadRequest("Invalid blog ID")

// blogIdParam returns the {id} path parameter if it is a well-formed id.
func blogIdParam(r *http.Request) (domain.BlogId, error) {
	id := chi.URLParam(r, "id")
	if _, err := uuid.Parse(id); err != nil {
		return "", errInvalidBlogId
	}
	return id, nil
}

// principal returns the identity established by the auth middleware. Routes
// using it are always mounted behind NeedAuth, so a missing principal means
// a wiring fault and is reported as unauthenticated.
func principal(r *http.Request) (domain.Principal, error) {
	p, ok := mw.GetPrincipalFromRequest(r)
	if !ok {
		return domain.Principal{}, errors.ErrUnauthenticated
	}
	return p, nil
}

// parseListQuery reads list filters from the query string. Absent page and
// limit fall back to their defaults.
func parseListQuery(r *http.Request) (api.ListBlogsQuery, error) {
	values := r.URL.Query()
	query := api.ListBlogsQuery{
		Category: values.Get("category"),
		Search:   values.Get("search"),
		Page:     1,
		Limit:    10,
	}
	if raw := values.Get("page"); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil {
			return query, validation.Field(&query, "page")
		}
		query.Page = page
	}
	if raw := values.Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil {
			return query, validation.Field(&query, "limit")
		}
		query.Limit = limit
	}
	if err := validation.Struct(&query); err != nil {
		return query, err
	}
	return query, nil
}

func (h *Handler) toApiBlog(blog domain.Blog) api.Blog {
	var author *api.BlogAuthor
	if blog.Author != nil {
		author = &api.BlogAuthor{Name: blog.Author.Name, Email: blog.Author.Email}
	}
	return api.Blog{
		Id:          blog.Id,
		Title:       blog.Title,
		Content:     blog.Content,
		ContentHTML: h.renderer.Render(blog.Content),
		Category:    blog.Category,
		Owner:       blog.Owner,
		Author:      author,
		CreatedAt:   blog.CreatedAt,
		UpdatedAt:   blog.UpdatedAt,
	}
}
