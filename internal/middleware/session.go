package middleware

import (
	"context"
	"net/http"
	"net/url"

	"github.com/sirupsen/logrus"

	"github.com/vaughan-dsouza/fitness/internal/apperror"
	"github.com/vaughan-dsouza/fitness/internal/models"
	"github.com/vaughan-dsouza/fitness/internal/session"
	"github.com/vaughan-dsouza/fitness/internal/utils"
)

// LoginPath is where guarded routes send anonymous callers.
const LoginPath = "/login"

type UserLoader interface {
	ByID(ctx context.Context, id int64) (*models.User, error)
}

// Identity resolves the session cookie into a session.Identity on the request
// context. A bad token or a user that no longer exists is anonymous.
func Identity(sessions *session.Manager, users UserLoader, log logrus.FieldLogger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := session.Anonymous

			if userID, ok := sessions.Current(r); ok {
				user, err := users.ByID(r.Context(), userID)
				switch {
				case err == nil:
					id = session.Identity{User: user}
				case apperror.IsNotFound(err):
					// stale cookie for a vanished user
				default:
					log.WithError(err).WithField("user_id", userID).Error("load session user")
					utils.WriteError(w, apperror.From(err))
					return
				}
			}

			next.ServeHTTP(w, r.WithContext(session.WithIdentity(r.Context(), id)))
		})
	}
}

// RequireLogin redirects anonymous callers to the login page, keeping the
// requested URI in ?next= for after login.
func RequireLogin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !session.FromContext(r.Context()).IsAuthenticated() {
			target := LoginPath + "?next=" + url.QueryEscape(r.URL.RequestURI())
			http.Redirect(w, r, target, http.StatusFound)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// AnonymousOnly sends authenticated callers home.
func AnonymousOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if session.FromContext(r.Context()).IsAuthenticated() {
			http.Redirect(w, r, "/home", http.StatusFound)
			return
		}
		next.ServeHTTP(w, r)
	})
}
