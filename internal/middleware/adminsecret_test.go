package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func protected(secret string) http.Handler {
	return AdminSecret(secret)(okHandler())
}

func request(h http.Handler, method string, header map[string]string) int {
	req := httptest.NewRequest(method, "/posts", nil)
	for k, v := range header {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec.Code
}

func TestAdminSecret(t *testing.T) {
	t.Run("no secret configured passes everything", func(t *testing.T) {
		h := protected("")
		if code := request(h, http.MethodPost, nil); code != http.StatusOK {
			t.Errorf("code = %d", code)
		}
	})

	t.Run("reads stay open", func(t *testing.T) {
		h := protected("s3cret")
		if code := request(h, http.MethodGet, nil); code != http.StatusOK {
			t.Errorf("code = %d", code)
		}
	})

	t.Run("write without key is rejected", func(t *testing.T) {
		h := protected("s3cret")
		if code := request(h, http.MethodPost, nil); code != http.StatusUnauthorized {
			t.Errorf("code = %d", code)
		}
	})

	t.Run("write with wrong key is rejected", func(t *testing.T) {
		h := protected("s3cret")
		code := request(h, http.MethodDelete, map[string]string{"X-Admin-Key": "nope"})
		if code != http.StatusUnauthorized {
			t.Errorf("code = %d", code)
		}
	})

	t.Run("X-Admin-Key header grants access", func(t *testing.T) {
		h := protected("s3cret")
		code := request(h, http.MethodPut, map[string]string{"X-Admin-Key": "s3cret"})
		if code != http.StatusOK {
			t.Errorf("code = %d", code)
		}
	})

	t.Run("bearer token grants access", func(t *testing.T) {
		h := protected("s3cret")
		code := request(h, http.MethodPost, map[string]string{"Authorization": "Bearer s3cret"})
		if code != http.StatusOK {
			t.Errorf("code = %d", code)
		}
	})
}
