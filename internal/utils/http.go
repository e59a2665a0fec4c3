package utils

import (
	"encoding/json"
	"net/http"

	"github.com/vaughan-dsouza/fitness/internal/apperror"
)

// JSON writes a JSON response with status code.
func JSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if data != nil {
		_ = json.NewEncoder(w).Encode(data)
	}
}

// JSONError writes {"error": "..."} with a given status.
func JSONError(w http.ResponseWriter, status int, msg string) {
	JSON(w, status, apperror.ErrorResponse{Error: msg})
}

// WriteError writes err with the status of its type. Only the message is sent.
func WriteError(w http.ResponseWriter, err *apperror.AppError) {
	JSON(w, err.StatusCode(), err.ToResponse())
}

// SeeOther redirects after a successful POST so a reload does not resubmit.
func SeeOther(w http.ResponseWriter, r *http.Request, target string) {
	http.Redirect(w, r, target, http.StatusSeeOther)
}
