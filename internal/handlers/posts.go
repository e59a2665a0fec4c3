package handlers

import (
	"net/http"
	"strconv"

	"github.com/vaughan-dsouza/fitness/internal/apperror"
	"github.com/vaughan-dsouza/fitness/internal/forms"
	"github.com/vaughan-dsouza/fitness/internal/models"
	"github.com/vaughan-dsouza/fitness/internal/utils"
)

type PostHandler struct {
	*App
}

func postURL(id int64) string {
	return "/post/" + strconv.FormatInt(id, 10)
}

// loadOwnedPost is loadPost plus a 403 unless the caller wrote the post.
func (h *PostHandler) loadOwnedPost(w http.ResponseWriter, r *http.Request) (*models.Post, bool) {
	post, ok := h.loadPost(w, r)
	if !ok {
		return nil, false
	}
	if !identity(r).Owns(post.UserID) {
		h.fail(w, r, apperror.NewForbiddenError("Forbidden"))
		return nil, false
	}
	return post, true
}

// ---------------------- CREATE ----------------------

func (h *PostHandler) NewForm(w http.ResponseWriter, r *http.Request) {
	renderForm(w, http.StatusOK, formView{Title: "New Post", Legend: "New Post", Form: forms.PostForm{}})
}

func (h *PostHandler) CreatePost(w http.ResponseWriter, r *http.Request) {
	f := forms.PostFromRequest(r)
	if errs := h.Forms.Post(f); errs.Any() {
		renderForm(w, http.StatusBadRequest, formView{Title: "New Post", Legend: "New Post", Form: f, Errors: errs})
		return
	}

	post := &models.Post{UserID: identity(r).UserID(), Title: f.Title, Content: f.Content}
	if err := h.Posts.Create(r.Context(), post); err != nil {
		h.fail(w, r, err)
		return
	}

	h.Metrics.PostWrite("create")
	utils.SeeOther(w, r, "/home")
}

// ---------------------- GET ONE ----------------------

type postView struct {
	Title    string           `json:"title"`
	Post     *models.Post     `json:"post"`
	Comments []models.Comment `json:"comments"`
}

// GetPost shows a post with its own comments, newest first.
func (h *PostHandler) GetPost(w http.ResponseWriter, r *http.Request) {
	post, ok := h.loadPost(w, r)
	if !ok {
		return
	}

	comments, err := h.Comments.ListByPost(r.Context(), post.ID)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	utils.JSON(w, http.StatusOK, postView{Title: post.Title, Post: post, Comments: comments})
}

// ---------------------- UPDATE ----------------------

func (h *PostHandler) EditForm(w http.ResponseWriter, r *http.Request) {
	post, ok := h.loadOwnedPost(w, r)
	if !ok {
		return
	}
	renderForm(w, http.StatusOK, formView{
		Title:  "Update Post",
		Legend: "Update Post",
		Form:   forms.PostForm{Title: post.Title, Content: post.Content},
	})
}

func (h *PostHandler) UpdatePost(w http.ResponseWriter, r *http.Request) {
	post, ok := h.loadOwnedPost(w, r)
	if !ok {
		return
	}

	f := forms.PostFromRequest(r)
	if errs := h.Forms.Post(f); errs.Any() {
		renderForm(w, http.StatusBadRequest, formView{Title: "Update Post", Legend: "Update Post", Form: f, Errors: errs})
		return
	}

	post.Title = f.Title
	post.Content = f.Content
	if err := h.Posts.Update(r.Context(), post); err != nil {
		h.fail(w, r, err)
		return
	}

	h.Metrics.PostWrite("update")
	utils.SeeOther(w, r, postURL(post.ID))
}

// ---------------------- DELETE ----------------------

func (h *PostHandler) DeletePost(w http.ResponseWriter, r *http.Request) {
	post, ok := h.loadOwnedPost(w, r)
	if !ok {
		return
	}

	if err := h.Posts.Delete(r.Context(), post.ID); err != nil {
		h.fail(w, r, err)
		return
	}

	h.Metrics.PostWrite("delete")
	utils.SeeOther(w, r, "/home")
}
