package pg

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/itchan-dev/blogapi/shared/domain"
	internal_errors "github.com/itchan-dev/blogapi/shared/errors"
	"github.com/lib/pq"
)

const blogColumns = "id, title, content, category, owner_id, created_at, updated_at"

// =========================================================================
// Public Methods (satisfy the service.BlogStorage interface)
// =========================================================================

func (s *Storage) CreateBlog(ctx context.Context, data domain.BlogCreationData) (domain.Blog, error) {
	return s.createBlog(ctx, s.db, data)
}

func (s *Storage) Blog(ctx context.Context, id domain.BlogId) (domain.Blog, error) {
	if _, err := uuid.Parse(id); err != nil {
		return domain.Blog{}, internal_errors.ErrBlogNotFound
	}
	return scanBlog(s.db.QueryRowContext(ctx,
		"SELECT "+blogColumns+" FROM blogs WHERE id = $1", id))
}

// Blogs returns one page of blogs matching filter, newest first, together
// with the total number of matches.
func (s *Storage) Blogs(ctx context.Context, filter domain.BlogFilter) ([]domain.Blog, int, error) {
	where, args := blogFilterClause(filter)

	var total int
	if err := s.db.QueryRowContext(ctx, "SELECT count(*) FROM blogs"+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count blogs: %w", err)
	}

	query := fmt.Sprintf("SELECT %s FROM blogs%s ORDER BY created_at DESC, id LIMIT $%d OFFSET $%d",
		blogColumns, where, len(args)+1, len(args)+2)
	rows, err := s.db.QueryContext(ctx, query, append(args, filter.Limit, filter.Offset())...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query blogs: %w", err)
	}
	defer rows.Close()

	blogs := []domain.Blog{}
	for rows.Next() {
		blog, err := scanBlog(rows)
		if err != nil {
			return nil, 0, err
		}
		blogs = append(blogs, blog)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate blogs: %w", err)
	}
	if err := s.attachAuthors(ctx, s.db, blogs); err != nil {
		return nil, 0, err
	}
	return blogs, total, nil
}

// UpdateBlog applies patch to the blog only if owner still owns it.
func (s *Storage) UpdateBlog(ctx context.Context, id domain.BlogId, owner domain.UserId, patch domain.BlogPatch) (domain.Blog, error) {
	if _, err := uuid.Parse(id); err != nil {
		return domain.Blog{}, internal_errors.ErrBlogNotFound
	}
	var blog domain.Blog
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		var err error
		blog, err = s.updateBlog(ctx, tx, id, owner, patch)
		return err
	})
	return blog, err
}

// DeleteBlog removes the blog only if owner still owns it. Zero affected
// rows is ErrBlogNotFound.
func (s *Storage) DeleteBlog(ctx context.Context, id domain.BlogId, owner domain.UserId) error {
	if _, err := uuid.Parse(id); err != nil {
		return internal_errors.ErrBlogNotFound
	}
	result, err := s.db.ExecContext(ctx, "DELETE FROM blogs WHERE id = $1 AND owner_id = $2", id, owner)
	if err != nil {
		return fmt.Errorf("failed to delete blog: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return internal_errors.ErrBlogNotFound
	}
	return nil
}

// =========================================================================
// Internal Methods (accept a Querier for transactional/non-transactional use)
// =========================================================================

func (s *Storage) createBlog(ctx context.Context, q Querier, data domain.BlogCreationData) (domain.Blog, error) {
	if _, err := uuid.Parse(data.Owner); err != nil {
		return domain.Blog{}, internal_errors.ErrUserNotFound
	}
	blog, err := scanBlog(q.QueryRowContext(ctx,
		`INSERT INTO blogs (title, content, category, owner_id)
		 VALUES ($1, $2, $3, $4)
		 RETURNING `+blogColumns,
		data.Title, data.Content, data.Category, data.Owner))
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == foreignKeyViolation {
			return domain.Blog{}, internal_errors.ErrUserNotFound
		}
		return domain.Blog{}, fmt.Errorf("failed to insert blog: %w", err)
	}
	return blog, nil
}

// attachAuthors fills Author on each blog with its owner's name and email.
func (s *Storage) attachAuthors(ctx context.Context, q Querier, blogs []domain.Blog) error {
	if len(blogs) == 0 {
		return nil
	}
	ids := make([]string, 0, len(blogs))
	for _, blog := range blogs {
		ids = append(ids, blog.Owner)
	}

	rows, err := q.QueryContext(ctx, "SELECT id, name, email FROM users WHERE id = ANY($1::uuid[])", pq.Array(ids))
	if err != nil {
		return fmt.Errorf("failed to query blog authors: %w", err)
	}
	defer rows.Close()

	authors := make(map[domain.UserId]*domain.BlogAuthor, len(ids))
	for rows.Next() {
		var id domain.UserId
		author := &domain.BlogAuthor{}
		if err := rows.Scan(&id, &author.Name, &author.Email); err != nil {
			return fmt.Errorf("failed to scan blog author: %w", err)
		}
		authors[id] = author
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to iterate blog authors: %w", err)
	}

	for i := range blogs {
		blogs[i].Author = authors[blogs[i].Owner]
	}
	return nil
}

func (s *Storage) updateBlog(ctx context.Context, q Querier, id domain.BlogId, owner domain.UserId, patch domain.BlogPatch) (domain.Blog, error) {
	sets := []string{"updated_at = now()"}
	args := []interface{}{id, owner}
	add := func(column string, value *string) {
		if value == nil {
			return
		}
		args = append(args, *value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}
	add("title", patch.Title)
	add("content", patch.Content)
	add("category", patch.Category)

	query := fmt.Sprintf("UPDATE blogs SET %s WHERE id = $1 AND owner_id = $2 RETURNING %s",
		strings.Join(sets, ", "), blogColumns)
	return scanBlog(q.QueryRowContext(ctx, query, args...))
}

// blogFilterClause builds a WHERE clause with positional args for filter.
func blogFilterClause(filter domain.BlogFilter) (string, []interface{}) {
	var conds []string
	var args []interface{}
	if filter.Owner != "" {
		args = append(args, filter.Owner)
		conds = append(conds, fmt.Sprintf("owner_id = $%d", len(args)))
	}
	if filter.Category != "" {
		args = append(args, filter.Category)
		conds = append(conds, fmt.Sprintf("category = $%d", len(args)))
	}
	if filter.Search != "" {
		args = append(args, "%"+escapeLike(filter.Search)+"%")
		conds = append(conds, fmt.Sprintf("(title ILIKE $%d OR content ILIKE $%d)", len(args), len(args)))
	}
	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBlog(row rowScanner) (domain.Blog, error) {
	var blog domain.Blog
	err := row.Scan(&blog.Id, &blog.Title, &blog.Content, &blog.Category, &blog.Owner, &blog.CreatedAt, &blog.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Blog{}, internal_errors.ErrBlogNotFound
		}
		return domain.Blog{}, fmt.Errorf("failed to scan blog: %w", err)
	}
	return blog, nil
}
