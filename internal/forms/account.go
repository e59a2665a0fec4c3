package forms

import (
	"context"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

const (
	// MaxUploadBytes bounds a multipart account form, picture included.
	MaxUploadBytes = 8 << 20

	PictureTypeMsg = "File does not have an approved extension: jpg, png"
)

var allowedPictures = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
}

type RegistrationForm struct {
	Username        string `form:"username" json:"username" validate:"required,min=2,max=20"`
	Email           string `form:"email" json:"email" validate:"required,email,max=120"`
	Password        string `form:"password" json:"-" validate:"required"`
	ConfirmPassword string `form:"confirm_password" json:"-" validate:"required,eqfield=Password"`
}

func RegistrationFromRequest(r *http.Request) RegistrationForm {
	return RegistrationForm{
		Username:        field(r, "username"),
		Email:           field(r, "email"),
		Password:        r.PostFormValue("password"),
		ConfirmPassword: r.PostFormValue("confirm_password"),
	}
}

// Registration checks the tag rules, then that neither username nor email is taken.
func (v *Validator) Registration(ctx context.Context, f RegistrationForm) (Errors, error) {
	errs := v.check(f)
	if err := v.checkUnique(ctx, errs, f.Username, f.Email, 0); err != nil {
		return nil, err
	}
	return errs, nil
}

type LoginForm struct {
	Email    string `form:"email" json:"email" validate:"required,email"`
	Password string `form:"password" json:"-" validate:"required"`
	Remember bool   `form:"remember" json:"remember"`
}

func LoginFromRequest(r *http.Request) LoginForm {
	return LoginForm{
		Email:    field(r, "email"),
		Password: r.PostFormValue("password"),
		Remember: checkbox(r, "remember"),
	}
}

func (v *Validator) Login(f LoginForm) Errors {
	return v.check(f)
}

type UpdateAccountForm struct {
	Username string                `form:"username" json:"username" validate:"required,min=2,max=20"`
	Email    string                `form:"email" json:"email" validate:"required,email,max=120"`
	Picture  *multipart.FileHeader `form:"picture" json:"-" validate:"-"`
}

// UpdateAccountFromRequest reads a urlencoded or multipart account form.
// The picture is only present on multipart submissions.
func UpdateAccountFromRequest(w http.ResponseWriter, r *http.Request) (UpdateAccountForm, error) {
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		r.Body = http.MaxBytesReader(w, r.Body, MaxUploadBytes)
		if err := r.ParseMultipartForm(MaxUploadBytes); err != nil {
			return UpdateAccountForm{}, err
		}
	} else if err := r.ParseForm(); err != nil {
		return UpdateAccountForm{}, err
	}

	f := UpdateAccountForm{
		Username: field(r, "username"),
		Email:    field(r, "email"),
	}
	if r.MultipartForm != nil {
		if files := r.MultipartForm.File["picture"]; len(files) > 0 && files[0].Size > 0 {
			f.Picture = files[0]
		}
	}
	return f, nil
}

// UpdateAccount validates a profile change by userID. Keeping one's own
// username or email is not a conflict.
func (v *Validator) UpdateAccount(ctx context.Context, userID int64, f UpdateAccountForm) (Errors, error) {
	errs := v.check(f)
	if err := v.checkUnique(ctx, errs, f.Username, f.Email, userID); err != nil {
		return nil, err
	}
	if f.Picture != nil {
		ok, err := pictureAllowed(f.Picture)
		if err != nil {
			return nil, err
		}
		if !ok {
			errs.Add("picture", PictureTypeMsg)
		}
	}
	return errs, nil
}

// pictureAllowed requires both an approved extension and matching content.
func pictureAllowed(fh *multipart.FileHeader) (bool, error) {
	want, ok := allowedPictures[strings.ToLower(filepath.Ext(fh.Filename))]
	if !ok {
		return false, nil
	}

	file, err := fh.Open()
	if err != nil {
		return false, err
	}
	defer file.Close()

	mtype, err := mimetype.DetectReader(file)
	if err != nil {
		return false, err
	}
	return mtype.Is(want), nil
}
