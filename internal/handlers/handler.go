package handlers

import (
	"context"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"

	"github.com/vaughan-dsouza/fitness/internal/apperror"
	"github.com/vaughan-dsouza/fitness/internal/forms"
	"github.com/vaughan-dsouza/fitness/internal/metrics"
	"github.com/vaughan-dsouza/fitness/internal/models"
	"github.com/vaughan-dsouza/fitness/internal/session"
	"github.com/vaughan-dsouza/fitness/internal/utils"
)

type UserStore interface {
	Create(ctx context.Context, u *models.User) error
	ByID(ctx context.Context, id int64) (*models.User, error)
	ByEmail(ctx context.Context, email string) (*models.User, error)
	ByUsername(ctx context.Context, username string) (*models.User, error)
	UsernameTaken(ctx context.Context, username string, exceptID int64) (bool, error)
	EmailTaken(ctx context.Context, email string, exceptID int64) (bool, error)
	Update(ctx context.Context, u *models.User) error
}

type PostStore interface {
	Create(ctx context.Context, p *models.Post) error
	ByID(ctx context.Context, id int64) (*models.Post, error)
	List(ctx context.Context, page int) (models.Page[models.Post], error)
	ListByUser(ctx context.Context, userID int64, page int) (models.Page[models.Post], error)
	Update(ctx context.Context, p *models.Post) error
	Delete(ctx context.Context, id int64) error
}

type CommentStore interface {
	Create(ctx context.Context, c *models.Comment) error
	ByID(ctx context.Context, postID, commentID int64) (*models.Comment, error)
	ListByPost(ctx context.Context, postID int64) ([]models.Comment, error)
}

type PictureSaver interface {
	Save(src io.Reader, originalName string) (string, error)
	Remove(name string) error
}

// App is everything a handler may use. It is built once in main.
type App struct {
	Users    UserStore
	Posts    PostStore
	Comments CommentStore
	Sessions *session.Manager
	Forms    *forms.Validator
	Pictures PictureSaver
	Metrics  *metrics.Metrics
	Log      logrus.FieldLogger
}

type Handler struct {
	App      *App
	Pages    *PageHandler
	Auth     *AuthHandler
	Posts    *PostHandler
	Comments *CommentHandler
	Users    *UserHandler
}

func NewHandler(app *App) *Handler {
	return &Handler{
		App:      app,
		Pages:    &PageHandler{app},
		Auth:     &AuthHandler{app},
		Posts:    &PostHandler{app},
		Comments: &CommentHandler{app},
		Users:    &UserHandler{app},
	}
}

// fail writes err to the client. Server-side failures are logged with their cause.
func (a *App) fail(w http.ResponseWriter, r *http.Request, err error) {
	appErr := apperror.From(err)
	if appErr.StatusCode() >= http.StatusInternalServerError {
		a.Log.WithError(err).WithFields(logrus.Fields{
			"request_id": middleware.GetReqID(r.Context()),
			"method":     r.Method,
			"path":       r.URL.Path,
		}).Error("request failed")
	}
	utils.WriteError(w, appErr)
}

// loadPost resolves the {id} path parameter. A malformed id is reported the
// same as a missing post.
func (a *App) loadPost(w http.ResponseWriter, r *http.Request) (*models.Post, bool) {
	id, ok := utils.URLParamID(r, "id")
	if !ok {
		a.fail(w, r, apperror.NewNotFoundError("Post not found", nil))
		return nil, false
	}
	post, err := a.Posts.ByID(r.Context(), id)
	if err != nil {
		a.fail(w, r, err)
		return nil, false
	}
	return post, true
}

func identity(r *http.Request) session.Identity {
	return session.FromContext(r.Context())
}

// formView is what a page with a form renders to.
type formView struct {
	Title  string       `json:"title"`
	Legend string       `json:"legend,omitempty"`
	Form   any          `json:"form"`
	Errors forms.Errors `json:"errors,omitempty"`
	// Error is a form-wide message, e.g. a failed login.
	Error string `json:"error,omitempty"`
}

func renderForm(w http.ResponseWriter, status int, v formView) {
	utils.JSON(w, status, v)
}

// authorView is the public face of a user.
type authorView struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	ImageFile string `json:"image_file"`
}

func publicUser(u *models.User) authorView {
	return authorView{ID: u.ID, Username: u.Username, ImageFile: PictureURL(u.ImageFile)}
}

// PictureURL is where a stored profile picture is served from.
func PictureURL(name string) string {
	return PicturePrefix + name
}
