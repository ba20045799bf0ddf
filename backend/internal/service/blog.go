package service

import (
	"context"
	"strings"

	"github.com/itchan-dev/blogapi/shared/domain"
	"github.com/itchan-dev/blogapi/shared/errors"
	"github.com/itchan-dev/blogapi/shared/logger"
)

const (
	DefaultPageLimit = 10
	MaxPageLimit     = 100
)

type BlogService interface {
	Create(ctx context.Context, principal domain.Principal, data domain.BlogCreationData) (domain.Blog, error)
	List(ctx context.Context, principal domain.Principal, filter domain.BlogFilter) (domain.BlogPage, error)
	Get(ctx context.Context, principal domain.Principal, id domain.BlogId) (domain.Blog, error)
	Update(ctx context.Context, principal domain.Principal, id domain.BlogId, patch domain.BlogPatch) (domain.Blog, error)
	Delete(ctx context.Context, principal domain.Principal, id domain.BlogId) error
}

type BlogStorage interface {
	CreateBlog(ctx context.Context, data domain.BlogCreationData) (domain.Blog, error)
	Blog(ctx context.Context, id domain.BlogId) (domain.Blog, error)
	Blogs(ctx context.Context, filter domain.BlogFilter) ([]domain.Blog, int, error)
	// UpdateBlog and DeleteBlog only touch a row matching both id and owner
	// and return ErrBlogNotFound when none does.
	UpdateBlog(ctx context.Context, id domain.BlogId, owner domain.UserId, patch domain.BlogPatch) (domain.Blog, error)
	DeleteBlog(ctx context.Context, id domain.BlogId, owner domain.UserId) error
}

type Blog struct {
	storage          BlogStorage
	guard            OwnershipGuard
	ownerScopedReads bool
}

func NewBlog(storage BlogStorage, ownerScopedReads bool) *Blog {
	return &Blog{storage: storage, ownerScopedReads: ownerScopedReads}
}

// Create stores a blog owned by principal. Owner is never taken from input.
func (b *Blog) Create(ctx context.Context, principal domain.Principal, data domain.BlogCreationData) (domain.Blog, error) {
	data.Title = strings.TrimSpace(data.Title)
	data.Category = strings.TrimSpace(data.Category)
	data.Owner = principal.Id
	if err := validateBlog(data.Title, data.Content, "is required"); err != nil {
		return domain.Blog{}, err
	}

	blog, err := b.storage.CreateBlog(ctx, data)
	if err != nil {
		return domain.Blog{}, err
	}
	logger.FromContext(ctx).Info("blog created", "blog_id", blog.Id, "owner", blog.Owner)
	return blog, nil
}

func (b *Blog) List(ctx context.Context, principal domain.Principal, filter domain.BlogFilter) (domain.BlogPage, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = DefaultPageLimit
	}
	if filter.Limit > MaxPageLimit {
		filter.Limit = MaxPageLimit
	}
	filter.Search = strings.TrimSpace(filter.Search)
	filter.Owner = ""
	if b.ownerScopedReads {
		filter.Owner = principal.Id
	}

	blogs, total, err := b.storage.Blogs(ctx, filter)
	if err != nil {
		return domain.BlogPage{}, err
	}
	if blogs == nil {
		blogs = []domain.Blog{}
	}
	return domain.BlogPage{Blogs: blogs, Pagination: domain.NewPagination(filter.Page, filter.Limit, total)}, nil
}

func (b *Blog) Get(ctx context.Context, principal domain.Principal, id domain.BlogId) (domain.Blog, error) {
	blog, err := b.storage.Blog(ctx, id)
	if err != nil {
		return domain.Blog{}, err
	}
	if b.ownerScopedReads && blog.Owner != principal.Id {
		return domain.Blog{}, errors.ErrBlogNotFound
	}
	return blog, nil
}

// Update applies patch after the ownership check. A blog deleted between the
// check and the write surfaces as ErrBlogNotFound.
func (b *Blog) Update(ctx context.Context, principal domain.Principal, id domain.BlogId, patch domain.BlogPatch) (domain.Blog, error) {
	if patch.Title != nil {
		trimmed := strings.TrimSpace(*patch.Title)
		patch.Title = &trimmed
		if trimmed == "" {
			return domain.Blog{}, fieldError("title", "Title cannot be empty")
		}
	}
	if patch.Content != nil && strings.TrimSpace(*patch.Content) == "" {
		return domain.Blog{}, fieldError("content", "Content cannot be empty")
	}
	if patch.Category != nil {
		trimmed := strings.TrimSpace(*patch.Category)
		patch.Category = &trimmed
	}

	blog, err := b.storage.Blog(ctx, id)
	if err != nil {
		return domain.Blog{}, err
	}
	if err := b.guard.Authorize(principal.Id, blog, ActionEdit); err != nil {
		return domain.Blog{}, err
	}

	updated, err := b.storage.UpdateBlog(ctx, id, principal.Id, patch)
	if err != nil {
		return domain.Blog{}, err
	}
	logger.FromContext(ctx).Info("blog updated", "blog_id", id)
	return updated, nil
}

func (b *Blog) Delete(ctx context.Context, principal domain.Principal, id domain.BlogId) error {
	blog, err := b.storage.Blog(ctx, id)
	if err != nil {
		return err
	}
	if err := b.guard.Authorize(principal.Id, blog, ActionDelete); err != nil {
		return err
	}

	if err := b.storage.DeleteBlog(ctx, id, principal.Id); err != nil {
		return err
	}
	logger.FromContext(ctx).Info("blog deleted", "blog_id", id)
	return nil
}

func validateBlog(title, content, suffix string) error {
	var fields []errors.FieldError
	if title == "" {
		fields = append(fields, errors.FieldError{Field: "title", Message: "Title " + suffix})
	}
	if strings.TrimSpace(content) == "" {
		fields = append(fields, errors.FieldError{Field: "content", Message: "Content " + suffix})
	}
	if fields != nil {
		return &errors.ValidationError{Fields: fields}
	}
	return nil
}

func fieldError(field, message string) error {
	return &errors.ValidationError{Fields: []errors.FieldError{{Field: field, Message: message}}}
}
