package handlers

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/vaughan-dsouza/fitness/internal/apperror"
	"github.com/vaughan-dsouza/fitness/internal/forms"
	"github.com/vaughan-dsouza/fitness/internal/models"
)

var epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

type memUsers struct {
	mu     sync.Mutex
	rows   map[int64]*models.User
	nextID int64
	// skipPrecheck makes the Taken queries lie, so only Create sees the duplicate.
	skipPrecheck bool
	failByID     error
}

func newMemUsers() *memUsers {
	return &memUsers{rows: map[int64]*models.User{}}
}

func (m *memUsers) conflict(u *models.User) error {
	for _, row := range m.rows {
		if row.ID == u.ID {
			continue
		}
		if row.Username == u.Username {
			return apperror.NewConflictError("username", forms.UsernameTakenMsg)
		}
		if row.Email == u.Email {
			return apperror.NewConflictError("email", forms.EmailTakenMsg)
		}
	}
	return nil
}

func (m *memUsers) Create(_ context.Context, u *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	u.Email = strings.ToLower(u.Email)
	if err := m.conflict(u); err != nil {
		return err
	}
	m.nextID++
	u.ID = m.nextID
	if u.ImageFile == "" {
		u.ImageFile = models.DefaultImageFile
	}
	u.CreatedAt = epoch
	row := *u
	m.rows[u.ID] = &row
	return nil
}

func (m *memUsers) find(match func(*models.User) bool) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, row := range m.rows {
		if match(row) {
			u := *row
			return &u, nil
		}
	}
	return nil, apperror.NewNotFoundError("User not found", nil)
}

func (m *memUsers) ByID(_ context.Context, id int64) (*models.User, error) {
	if m.failByID != nil {
		return nil, m.failByID
	}
	return m.find(func(u *models.User) bool { return u.ID == id })
}

func (m *memUsers) ByEmail(_ context.Context, email string) (*models.User, error) {
	email = strings.ToLower(email)
	return m.find(func(u *models.User) bool { return u.Email == email })
}

func (m *memUsers) ByUsername(_ context.Context, username string) (*models.User, error) {
	return m.find(func(u *models.User) bool { return u.Username == username })
}

func (m *memUsers) UsernameTaken(_ context.Context, username string, exceptID int64) (bool, error) {
	if m.skipPrecheck {
		return false, nil
	}
	u, err := m.find(func(u *models.User) bool { return u.Username == username && u.ID != exceptID })
	return u != nil, ignoreNotFound(err)
}

func (m *memUsers) EmailTaken(_ context.Context, email string, exceptID int64) (bool, error) {
	if m.skipPrecheck {
		return false, nil
	}
	email = strings.ToLower(email)
	u, err := m.find(func(u *models.User) bool { return u.Email == email && u.ID != exceptID })
	return u != nil, ignoreNotFound(err)
}

func (m *memUsers) Update(_ context.Context, u *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.rows[u.ID]; !ok {
		return apperror.NewNotFoundError("User not found", nil)
	}
	u.Email = strings.ToLower(u.Email)
	if err := m.conflict(u); err != nil {
		return err
	}
	row := *u
	m.rows[u.ID] = &row
	return nil
}

func (m *memUsers) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.rows)
}

func ignoreNotFound(err error) error {
	if apperror.IsNotFound(err) {
		return nil
	}
	return err
}

type memPosts struct {
	mu     sync.Mutex
	rows   map[int64]*models.Post
	nextID int64
	users  *memUsers
}

func newMemPosts(users *memUsers) *memPosts {
	return &memPosts{rows: map[int64]*models.Post{}, users: users}
}

// withAuthor fills the joined author columns the SQL store selects.
func (m *memPosts) withAuthor(p models.Post) models.Post {
	if u, err := m.users.ByID(context.Background(), p.UserID); err == nil {
		p.AuthorUsername = u.Username
		p.AuthorImage = u.ImageFile
	}
	return p
}

func (m *memPosts) Create(ctx context.Context, p *models.Post) error {
	if _, err := m.users.ByID(ctx, p.UserID); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	m.nextID++
	p.ID = m.nextID
	p.DatePosted = epoch.Add(time.Duration(p.ID) * time.Minute)
	row := *p
	m.rows[p.ID] = &row
	return nil
}

func (m *memPosts) ByID(_ context.Context, id int64) (*models.Post, error) {
	m.mu.Lock()
	row, ok := m.rows[id]
	m.mu.Unlock()
	if !ok {
		return nil, apperror.NewNotFoundError("Post not found", nil)
	}
	p := m.withAuthor(*row)
	return &p, nil
}

func (m *memPosts) list(page int, match func(*models.Post) bool) models.Page[models.Post] {
	m.mu.Lock()
	var all []models.Post
	for _, row := range m.rows {
		if match(row) {
			all = append(all, *row)
		}
	}
	m.mu.Unlock()

	sort.Slice(all, func(i, j int) bool {
		if !all[i].DatePosted.Equal(all[j].DatePosted) {
			return all[i].DatePosted.After(all[j].DatePosted)
		}
		return all[i].ID > all[j].ID
	})

	var items []models.Post
	for i := models.Offset(page, models.PerPage); i < len(all) && len(items) < models.PerPage; i++ {
		items = append(items, m.withAuthor(all[i]))
	}
	return models.NewPage(items, page, models.PerPage, len(all))
}

func (m *memPosts) List(_ context.Context, page int) (models.Page[models.Post], error) {
	return m.list(page, func(*models.Post) bool { return true }), nil
}

func (m *memPosts) ListByUser(_ context.Context, userID int64, page int) (models.Page[models.Post], error) {
	return m.list(page, func(p *models.Post) bool { return p.UserID == userID }), nil
}

func (m *memPosts) Update(_ context.Context, p *models.Post) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	row, ok := m.rows[p.ID]
	if !ok {
		return apperror.NewNotFoundError("Post not found", nil)
	}
	row.Title = p.Title
	row.Content = p.Content
	return nil
}

func (m *memPosts) Delete(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.rows[id]; !ok {
		return apperror.NewNotFoundError("Post not found", nil)
	}
	delete(m.rows, id)
	return nil
}

type memComments struct {
	mu     sync.Mutex
	rows   []models.Comment
	nextID int64
	posts  *memPosts
}

func (m *memComments) Create(ctx context.Context, c *models.Comment) error {
	if _, err := m.posts.ByID(ctx, c.PostID); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	m.nextID++
	c.ID = m.nextID
	c.DateCommented = epoch.Add(time.Duration(c.ID) * time.Minute)
	m.rows = append(m.rows, *c)
	return nil
}

func (m *memComments) ByID(_ context.Context, postID, commentID int64) (*models.Comment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range m.rows {
		if c.ID == commentID && c.PostID == postID {
			found := c
			return &found, nil
		}
	}
	return nil, apperror.NewNotFoundError("Comment not found", nil)
}

func (m *memComments) ListByPost(_ context.Context, postID int64) ([]models.Comment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.Comment{}
	for i := len(m.rows) - 1; i >= 0; i-- {
		if m.rows[i].PostID == postID {
			out = append(out, m.rows[i])
		}
	}
	return out, nil
}

var errPingFailed = errors.New("connection refused")
