package domain

import (
	"math"
	"time"
)

type Blog struct {
	Id        BlogId
	Title     BlogTitle
	Content   BlogContent
	Category  BlogCategory
	Owner     UserId
	CreatedAt time.Time
	UpdatedAt time.Time
	// Author is the owner's profile. Only listings fill it.
	Author *BlogAuthor
}

type BlogAuthor struct {
	Name  UserName
	Email Email
}

type BlogCreationData struct {
	Title    BlogTitle
	Content  BlogContent
	Category BlogCategory
	Owner    UserId
}

// BlogPatch holds a partial update. Nil fields are left untouched.
type BlogPatch struct {
	Title    *BlogTitle
	Content  *BlogContent
	Category *BlogCategory
}

// BlogFilter narrows a listing. Empty Owner means every owner.
type BlogFilter struct {
	Owner    UserId
	Category BlogCategory
	Search   string
	Page     int
	Limit    int
}

// Offset is the number of matches skipped before the page. It saturates at
// math.MaxInt instead of overflowing.
func (f BlogFilter) Offset() int {
	if f.Page < 1 || f.Limit < 1 {
		return 0
	}
	if f.Page-1 > math.MaxInt/f.Limit {
		return math.MaxInt
	}
	return (f.Page - 1) * f.Limit
}

type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
	Pages int `json:"pages"`
}

func NewPagination(page, limit, total int) Pagination {
	pages := 0
	if limit > 0 {
		pages = (total + limit - 1) / limit
	}
	return Pagination{Page: page, Limit: limit, Total: total, Pages: pages}
}

type BlogPage struct {
	Blogs      []Blog
	Pagination Pagination
}
