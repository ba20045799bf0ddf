// Package memory keeps accounts and blogs in process memory. It implements
// the same storage interfaces as pg and is meant for local runs and tests.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/itchan-dev/blogapi/shared/domain"
	internal_errors "github.com/itchan-dev/blogapi/shared/errors"
)

type Storage struct {
	mu      sync.RWMutex
	users   map[domain.Email]domain.User
	blogs   map[domain.BlogId]domain.Blog
	order   map[domain.BlogId]int64 // insertion sequence, newest highest
	counter int64
	now     func() time.Time
}

func New() *Storage {
	return &Storage{
		users: make(map[domain.Email]domain.User),
		blogs: make(map[domain.BlogId]domain.Blog),
		order: make(map[domain.BlogId]int64),
		now:   func() time.Time { return time.Now().UTC() },
	}
}

func (s *Storage) RunMigrations(ctx context.Context) error {
	return nil
}

func (s *Storage) Ping(ctx context.Context) error {
	return ctx.Err()
}

func (s *Storage) Cleanup() error {
	return nil
}

// SaveUser enforces email uniqueness under the write lock, so concurrent
// duplicates resolve to exactly one account.
func (s *Storage) SaveUser(ctx context.Context, data domain.UserCreationData) (domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[data.Email]; ok {
		return domain.User{}, internal_errors.ErrDuplicateEmail
	}
	now := s.now()
	user := domain.User{
		Id:        uuid.NewString(),
		Name:      data.Name,
		Email:     data.Email,
		PassHash:  data.PassHash,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.users[data.Email] = user
	return user, nil
}

func (s *Storage) User(ctx context.Context, email domain.Email) (domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[email]
	if !ok {
		return domain.User{}, internal_errors.ErrUserNotFound
	}
	return user, nil
}

func (s *Storage) CreateBlog(ctx context.Context, data domain.BlogCreationData) (domain.Blog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.userById(data.Owner); !ok {
		return domain.Blog{}, internal_errors.ErrUserNotFound
	}
	now := s.now()
	blog := domain.Blog{
		Id:        uuid.NewString(),
		Title:     data.Title,
		Content:   data.Content,
		Category:  data.Category,
		Owner:     data.Owner,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.counter++
	s.blogs[blog.Id] = blog
	s.order[blog.Id] = s.counter
	return blog, nil
}

func (s *Storage) Blog(ctx context.Context, id domain.BlogId) (domain.Blog, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	blog, ok := s.blogs[id]
	if !ok {
		return domain.Blog{}, internal_errors.ErrBlogNotFound
	}
	return blog, nil
}

// Blogs returns one page of matching blogs, newest first.
func (s *Storage) Blogs(ctx context.Context, filter domain.BlogFilter) ([]domain.Blog, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	search := strings.ToLower(filter.Search)
	matched := []domain.Blog{}
	for _, blog := range s.blogs {
		if filter.Owner != "" && blog.Owner != filter.Owner {
			continue
		}
		if filter.Category != "" && blog.Category != filter.Category {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(blog.Title), search) &&
			!strings.Contains(strings.ToLower(blog.Content), search) {
			continue
		}
		matched = append(matched, blog)
	}
	sort.Slice(matched, func(i, j int) bool {
		return s.order[matched[i].Id] > s.order[matched[j].Id]
	})

	total := len(matched)
	start := filter.Offset()
	if start < 0 {
		start = 0
	}
	if start > total {
		start = total
	}
	end := total
	if filter.Limit > 0 && start+filter.Limit < total {
		end = start + filter.Limit
	}
	page := matched[start:end]
	for i := range page {
		if owner, ok := s.userById(page[i].Owner); ok {
			page[i].Author = &domain.BlogAuthor{Name: owner.Name, Email: owner.Email}
		}
	}
	return page, total, nil
}

func (s *Storage) UpdateBlog(ctx context.Context, id domain.BlogId, owner domain.UserId, patch domain.BlogPatch) (domain.Blog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	blog, ok := s.blogs[id]
	if !ok || blog.Owner != owner {
		return domain.Blog{}, internal_errors.ErrBlogNotFound
	}
	if patch.Title != nil {
		blog.Title = *patch.Title
	}
	if patch.Content != nil {
		blog.Content = *patch.Content
	}
	if patch.Category != nil {
		blog.Category = *patch.Category
	}
	blog.UpdatedAt = s.now()
	s.blogs[id] = blog
	return blog, nil
}

func (s *Storage) DeleteBlog(ctx context.Context, id domain.BlogId, owner domain.UserId) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	blog, ok := s.blogs[id]
	if !ok || blog.Owner != owner {
		return internal_errors.ErrBlogNotFound
	}
	delete(s.blogs, id)
	delete(s.order, id)
	return nil
}

// userExists must be called with mu held.
func (s *Storage) userById(id domain.UserId) (domain.User, bool) {
	for _, user := range s.users {
		if user.Id == id {
			return user, true
		}
	}
	return domain.User{}, false
}
