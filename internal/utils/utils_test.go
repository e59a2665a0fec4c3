package utils

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"

	"github.com/vaughan-dsouza/fitness/internal/apperror"
)

func TestPage(t *testing.T) {
	cases := map[string]int{
		"/":            1,
		"/?page=3":     3,
		"/?page=0":     1,
		"/?page=-2":    1,
		"/?page=abc":   1,
		"/?page=2&x=y": 2,
	}
	for target, want := range cases {
		assert.Equal(t, want, Page(httptest.NewRequest(http.MethodGet, target, nil)), target)
	}
}

func TestURLParamID(t *testing.T) {
	r := chi.NewRouter()
	var got int64
	var ok bool
	r.Get("/post/{id}", func(w http.ResponseWriter, r *http.Request) {
		got, ok = URLParamID(r, "id")
	})

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/post/12", nil))
	assert.True(t, ok)
	assert.Equal(t, int64(12), got)

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/post/twelve", nil))
	assert.False(t, ok)
}

func TestSafeNext(t *testing.T) {
	assert.Equal(t, "/account", SafeNext("/account", "/home"))
	assert.Equal(t, "/post/1/update?x=1", SafeNext("/post/1/update?x=1", "/home"))
	assert.Equal(t, "/home", SafeNext("", "/home"))
	assert.Equal(t, "/home", SafeNext("https://evil.example", "/home"))
	assert.Equal(t, "/home", SafeNext("//evil.example", "/home"))
	assert.Equal(t, "/home", SafeNext(`/\evil.example`, "/home"))
	assert.Equal(t, "/home", SafeNext("/\t/evil.example", "/home"))
	assert.Equal(t, "/home", SafeNext("/\n/evil.example", "/home"))
	assert.Equal(t, "/home", SafeNext("/acc\x7fount", "/home"))
}

func TestWriteError(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteError(rec, apperror.NewForbiddenError("Forbidden"))

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.JSONEq(t, `{"error":"Forbidden"}`, rec.Body.String())
}
