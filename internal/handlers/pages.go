package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/vaughan-dsouza/fitness/internal/models"
	"github.com/vaughan-dsouza/fitness/internal/utils"
)

type PageHandler struct {
	*App
}

type homeView struct {
	Posts models.Page[models.Post] `json:"posts"`
}

// Home lists every post, newest first, five per page.
func (h *PageHandler) Home(w http.ResponseWriter, r *http.Request) {
	page, err := h.Posts.List(r.Context(), utils.Page(r))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	utils.JSON(w, http.StatusOK, homeView{Posts: page})
}

func (h *PageHandler) About(w http.ResponseWriter, r *http.Request) {
	utils.JSON(w, http.StatusOK, map[string]string{"title": "About"})
}

// Health answers 200 when ping succeeds within two seconds.
func Health(ping func(ctx context.Context) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := ping(ctx); err != nil {
			utils.JSONError(w, http.StatusServiceUnavailable, "database unavailable")
			return
		}
		utils.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}
