package handler

import (
	"net/http"

	"github.com/itchan-dev/blogapi/shared/api"
	"github.com/itchan-dev/blogapi/shared/domain"
	"github.com/itchan-dev/blogapi/shared/utils"
)

func (h *Handler) CreateBlog(w http.ResponseWriter, r *http.Request) {
	p, err := principal(r)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	var body api.CreateBlogRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	blog, err := h.blog.Create(r.Context(), p, domain.BlogCreationData{
		Title:    body.Title,
		Content:  body.Content,
		Category: body.Category,
	})
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusCreated, api.CreateBlogResponse{Message: "Blog created successfully.", Blog: h.toApiBlog(blog)})
}

func (h *Handler) GetBlogs(w http.ResponseWriter, r *http.Request) {
	p, err := principal(r)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	query, err := parseListQuery(r)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	page, err := h.blog.List(r.Context(), p, domain.BlogFilter{
		Category: query.Category,
		Search:   query.Search,
		Page:     query.Page,
		Limit:    query.Limit,
	})
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	blogs := make([]api.Blog, 0, len(page.Blogs))
	for _, blog := range page.Blogs {
		blogs = append(blogs, h.toApiBlog(blog))
	}
	utils.WriteJSON(w, http.StatusOK, api.BlogsResponse{Blogs: blogs, Pagination: page.Pagination})
}

func (h *Handler) GetBlog(w http.ResponseWriter, r *http.Request) {
	p, err := principal(r)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	id, err := blogIdParam(r)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	blog, err := h.blog.Get(r.Context(), p, id)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, api.BlogResponse{Blog: h.toApiBlog(blog)})
}

func (h *Handler) UpdateBlog(w http.ResponseWriter, r *http.Request) {
	p, err := principal(r)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	id, err := blogIdParam(r)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	var body api.UpdateBlogRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	updated, err := h.blog.Update(r.Context(), p, id, domain.BlogPatch{
		Title:    body.Title,
		Content:  body.Content,
		Category: body.Category,
	})
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, api.UpdateBlogResponse{Message: "Blog updated successfully.", Updated: h.toApiBlog(updated)})
}

func (h *Handler) DeleteBlog(w http.ResponseWriter, r *http.Request) {
	p, err := principal(r)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	id, err := blogIdParam(r)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	if err := h.blog.Delete(r.Context(), p, id); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, api.MessageResponse{Message: "Blog deleted successfully."})
}
