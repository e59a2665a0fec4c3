package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/vaughan-dsouza/fitness/internal/models"
	"github.com/vaughan-dsouza/fitness/internal/utils"
)

type UserHandler struct {
	*App
}

type userPostsView struct {
	User  authorView               `json:"user"`
	Posts models.Page[models.Post] `json:"posts"`
}

// UserPosts lists one author's posts, newest first, five per page.
func (h *UserHandler) UserPosts(w http.ResponseWriter, r *http.Request) {
	user, err := h.Users.ByUsername(r.Context(), chi.URLParam(r, "username"))
	if err != nil {
		h.fail(w, r, err)
		return
	}

	page, err := h.Posts.ListByUser(r.Context(), user.ID, utils.Page(r))
	if err != nil {
		h.fail(w, r, err)
		return
	}

	utils.JSON(w, http.StatusOK, userPostsView{User: publicUser(user), Posts: page})
}
