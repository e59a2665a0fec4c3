package handlers

import (
	"net/http"

	"github.com/vaughan-dsouza/fitness/internal/apperror"
	"github.com/vaughan-dsouza/fitness/internal/forms"
	"github.com/vaughan-dsouza/fitness/internal/models"
	"github.com/vaughan-dsouza/fitness/internal/utils"
)

type CommentHandler struct {
	*App
}

// ---------------------- CREATE ----------------------

func (h *CommentHandler) NewForm(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.loadPost(w, r); !ok {
		return
	}
	renderForm(w, http.StatusOK, formView{Title: "New Comment", Legend: "New Comment", Form: forms.CommentForm{}})
}

func (h *CommentHandler) CreateComment(w http.ResponseWriter, r *http.Request) {
	post, ok := h.loadPost(w, r)
	if !ok {
		return
	}

	f := forms.CommentFromRequest(r)
	if errs := h.Forms.Comment(f); errs.Any() {
		renderForm(w, http.StatusBadRequest, formView{Title: "New Comment", Legend: "New Comment", Form: f, Errors: errs})
		return
	}

	comment := &models.Comment{PostID: post.ID, UserID: identity(r).UserID(), Content: f.Content}
	if err := h.Comments.Create(r.Context(), comment); err != nil {
		h.fail(w, r, err)
		return
	}

	h.Metrics.CommentCreated()
	utils.SeeOther(w, r, postURL(post.ID))
}

// ---------------------- GET ----------------------

type commentView struct {
	Title   string          `json:"title"`
	Post    *models.Post    `json:"post"`
	Comment *models.Comment `json:"comment"`
}

// GetComment shows one comment. A comment id that belongs to another post is not found.
func (h *CommentHandler) GetComment(w http.ResponseWriter, r *http.Request) {
	post, ok := h.loadPost(w, r)
	if !ok {
		return
	}
	commentID, ok := utils.URLParamID(r, "commentID")
	if !ok {
		h.fail(w, r, apperror.NewNotFoundError("Comment not found", nil))
		return
	}

	comment, err := h.Comments.ByID(r.Context(), post.ID, commentID)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	utils.JSON(w, http.StatusOK, commentView{Title: post.Title, Post: post, Comment: comment})
}

type commentsView struct {
	Post     *models.Post     `json:"post"`
	Comments []models.Comment `json:"comments"`
}

func (h *CommentHandler) ListComments(w http.ResponseWriter, r *http.Request) {
	post, ok := h.loadPost(w, r)
	if !ok {
		return
	}

	comments, err := h.Comments.ListByPost(r.Context(), post.ID)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	utils.JSON(w, http.StatusOK, commentsView{Post: post, Comments: comments})
}
