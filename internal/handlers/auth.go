package handlers

import (
	"errors"
	"net/http"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/vaughan-dsouza/fitness/internal/apperror"
	"github.com/vaughan-dsouza/fitness/internal/forms"
	"github.com/vaughan-dsouza/fitness/internal/images"
	"github.com/vaughan-dsouza/fitness/internal/models"
	"github.com/vaughan-dsouza/fitness/internal/utils"
)

// LoginFailedMsg is the only answer to bad credentials, whichever half was wrong.
const LoginFailedMsg = "Login Unsuccessful. Please check email and password"

type AuthHandler struct {
	*App
}

// -------------- REGISTER ---------------------

func (h *AuthHandler) RegisterForm(w http.ResponseWriter, r *http.Request) {
	renderForm(w, http.StatusOK, formView{Title: "Register", Form: forms.RegistrationForm{}})
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	f := forms.RegistrationFromRequest(r)

	errs, err := h.Forms.Registration(r.Context(), f)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if errs.Any() {
		renderForm(w, http.StatusBadRequest, formView{Title: "Register", Form: f, Errors: errs})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(f.Password), bcrypt.DefaultCost)
	if err != nil {
		h.fail(w, r, apperror.NewInternalError("internal error", err))
		return
	}

	user := &models.User{Username: f.Username, Email: f.Email, Password: string(hash)}
	if err := h.Users.Create(r.Context(), user); err != nil {
		// lost a race with another registration after the uniqueness check
		if apperror.IsConflict(err) {
			field := apperror.From(err).Field
			errs.Add(field, forms.TakenMessage(field))
			renderForm(w, http.StatusBadRequest, formView{Title: "Register", Form: f, Errors: errs})
			return
		}
		h.fail(w, r, err)
		return
	}

	h.Metrics.Registered()
	h.Log.WithFields(logrus.Fields{"user_id": user.ID, "username": user.Username}).Info("account created")
	utils.SeeOther(w, r, "/login")
}

// -------------- LOGIN ------------------------

func (h *AuthHandler) LoginForm(w http.ResponseWriter, r *http.Request) {
	renderForm(w, http.StatusOK, formView{Title: "Login", Form: forms.LoginForm{}})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	f := forms.LoginFromRequest(r)

	if errs := h.Forms.Login(f); errs.Any() {
		renderForm(w, http.StatusBadRequest, formView{Title: "Login", Form: f, Errors: errs})
		return
	}

	user, err := h.Users.ByEmail(r.Context(), f.Email)
	if err != nil && !apperror.IsNotFound(err) {
		h.fail(w, r, err)
		return
	}
	if user == nil || bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(f.Password)) != nil {
		authErr := apperror.NewAuthError(LoginFailedMsg)
		h.Metrics.Login(false)
		h.Log.WithField("remote", r.RemoteAddr).Warn("login failed")
		renderForm(w, authErr.StatusCode(), formView{Title: "Login", Form: f, Error: authErr.Message})
		return
	}

	if err := h.Sessions.Login(w, user.ID, f.Remember); err != nil {
		h.fail(w, r, apperror.NewInternalError("could not start session", err))
		return
	}

	h.Metrics.Login(true)
	utils.SeeOther(w, r, utils.SafeNext(r.URL.Query().Get("next"), "/home"))
}

// -------------- LOGOUT -----------------------

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.Sessions.Logout(w)
	http.Redirect(w, r, "/home", http.StatusFound)
}

// -------------- ACCOUNT (protected) ----------

type accountView struct {
	formView
	ImageFile string `json:"image_file"`
}

func (h *AuthHandler) accountPage(w http.ResponseWriter, status int, user *models.User, f forms.UpdateAccountForm, errs forms.Errors) {
	utils.JSON(w, status, accountView{
		formView:  formView{Title: "Account", Form: f, Errors: errs},
		ImageFile: PictureURL(user.ImageFile),
	})
}

func (h *AuthHandler) Account(w http.ResponseWriter, r *http.Request) {
	user := identity(r).User
	h.accountPage(w, http.StatusOK, user, forms.UpdateAccountForm{Username: user.Username, Email: user.Email}, nil)
}

// UpdateAccount changes username and email, and replaces the picture when one
// is uploaded. An upload that cannot be decoded fails the whole request.
func (h *AuthHandler) UpdateAccount(w http.ResponseWriter, r *http.Request) {
	user := identity(r).User

	f, err := forms.UpdateAccountFromRequest(w, r)
	if err != nil {
		h.fail(w, r, apperror.NewBadRequestError("invalid form submission", err))
		return
	}

	errs, err := h.Forms.UpdateAccount(r.Context(), user.ID, f)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if errs.Any() {
		h.accountPage(w, http.StatusBadRequest, user, f, errs)
		return
	}

	updated := *user
	updated.Username = f.Username
	updated.Email = f.Email

	var saved string
	if f.Picture != nil {
		saved, err = h.savePicture(f)
		if err != nil {
			h.fail(w, r, err)
			return
		}
		updated.ImageFile = saved
	}

	if err := h.Users.Update(r.Context(), &updated); err != nil {
		if saved != "" {
			if rmErr := h.Pictures.Remove(saved); rmErr != nil {
				h.Log.WithError(rmErr).WithField("file", saved).Warn("remove orphaned picture")
			}
		}
		if apperror.IsConflict(err) {
			field := apperror.From(err).Field
			errs.Add(field, forms.TakenMessage(field))
			h.accountPage(w, http.StatusBadRequest, user, f, errs)
			return
		}
		h.fail(w, r, err)
		return
	}

	if saved != "" {
		h.Metrics.PictureSaved()
	}
	utils.SeeOther(w, r, "/account")
}

func (h *AuthHandler) savePicture(f forms.UpdateAccountForm) (string, error) {
	src, err := f.Picture.Open()
	if err != nil {
		return "", apperror.NewBadRequestError("could not read uploaded picture", err)
	}
	defer src.Close()

	name, err := h.Pictures.Save(src, f.Picture.Filename)
	if errors.Is(err, images.ErrDecode) {
		return "", apperror.NewBadRequestError("uploaded picture could not be decoded", err)
	}
	if err != nil {
		return "", apperror.NewInternalError("could not store picture", err)
	}
	return name, nil
}
