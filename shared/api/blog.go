package api

import (
	"time"

	"github.com/itchan-dev/blogapi/shared/domain"
)

type CreateBlogRequest struct {
	Title    string `json:"title" validate:"required,notblank" msg:"Title is required"`
	Content  string `json:"content" validate:"required,notblank" msg:"Content is required"`
	Category string `json:"category" msg:"Category must be a string"`
}

// UpdateBlogRequest is a partial update; absent fields are left untouched.
// Unknown fields such as owner are ignored by the decoder.
type UpdateBlogRequest struct {
	Title    *string `json:"title" validate:"omitnil,notblank" msg:"Title cannot be empty"`
	Content  *string `json:"content" validate:"omitnil,notblank" msg:"Content cannot be empty"`
	Category *string `json:"category" msg:"Category must be a string"`
}

type ListBlogsQuery struct {
	Category string `json:"category"`
	Search   string `json:"search"`
	Page     int    `json:"page" validate:"min=1,max=1000000" msg:"Page must be a positive integer"`
	Limit    int    `json:"limit" validate:"min=1,max=100" msg:"Limit must be between 1 and 100"`
}

type Blog struct {
	Id          string    `json:"id"`
	Title       string    `json:"title"`
	Content     string    `json:"content"`
	ContentHTML string    `json:"content_html"`
	Category    string    `json:"category,omitempty"`
	Owner       string      `json:"owner"`
	Author      *BlogAuthor `json:"author,omitempty"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

type BlogAuthor struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type CreateBlogResponse struct {
	Message string `json:"message"`
	Blog    Blog   `json:"blog"`
}

type BlogResponse struct {
	Blog Blog `json:"blog"`
}

type UpdateBlogResponse struct {
	Message string `json:"message"`
	Updated Blog   `json:"updated"`
}

type BlogsResponse struct {
	Blogs      []Blog            `json:"blogs"`
	Pagination domain.Pagination `json:"pagination"`
}
