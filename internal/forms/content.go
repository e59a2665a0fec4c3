package forms

import "net/http"

type PostForm struct {
	Title   string `form:"title" json:"title" validate:"required,max=100"`
	Content string `form:"content" json:"content" validate:"required"`
}

func PostFromRequest(r *http.Request) PostForm {
	return PostForm{
		Title:   field(r, "title"),
		Content: field(r, "content"),
	}
}

func (v *Validator) Post(f PostForm) Errors {
	return v.check(f)
}

type CommentForm struct {
	Content string `form:"content" json:"content" validate:"required"`
}

func CommentFromRequest(r *http.Request) CommentForm {
	return CommentForm{Content: field(r, "content")}
}

func (v *Validator) Comment(f CommentForm) Errors {
	return v.check(f)
}
