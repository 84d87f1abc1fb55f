package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/fachig/blog-api/internal/auth"
)

func doLogin(t *testing.T, secret string, body string) (*httptest.ResponseRecorder, AdminLoginResponse) {
	t.Helper()
	h := AdminLogin(auth.NewGate(secret), testLogger())
	req := httptest.NewRequest(http.MethodPost, "/auth/admin", bytes.NewReader([]byte(body)))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var resp AdminLoginResponse
	if rec.Code == http.StatusOK {
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("decode: %v", err)
		}
	}
	return rec, resp
}

func TestAdminLogin(t *testing.T) {
	t.Run("correct password", func(t *testing.T) {
		rec, resp := doLogin(t, "correct", `{"password":"correct"}`)
		if rec.Code != http.StatusOK || !resp.Success {
			t.Errorf("code=%d resp=%+v", rec.Code, resp)
		}
	})

	t.Run("wrong password is still 200", func(t *testing.T) {
		rec, resp := doLogin(t, "correct", `{"password":"wrong"}`)
		if rec.Code != http.StatusOK {
			t.Fatalf("code=%d, wrong passwords must not get a distinct status", rec.Code)
		}
		if resp.Success {
			t.Error("success=true for wrong password")
		}
	})

	t.Run("empty password matches wrong-password response", func(t *testing.T) {
		recEmpty, respEmpty := doLogin(t, "correct", `{"password":""}`)
		recWrong, _ := doLogin(t, "correct", `{"password":"wrong"}`)
		if recEmpty.Code != recWrong.Code {
			t.Errorf("empty=%d wrong=%d, statuses must match", recEmpty.Code, recWrong.Code)
		}
		if respEmpty.Success {
			t.Error("success=true for empty password")
		}
	})

	t.Run("misconfigured server looks like a denial", func(t *testing.T) {
		recMis, respMis := doLogin(t, "", `{"password":"anything"}`)
		recDen, respDen := doLogin(t, "correct", `{"password":"wrong"}`)
		if recMis.Code != recDen.Code {
			t.Errorf("misconfigured=%d denied=%d, statuses must match", recMis.Code, recDen.Code)
		}
		if respMis.Success != respDen.Success {
			t.Error("success flags differ between misconfigured and denied")
		}
		// Only the message text may differ.
		if respMis.Message == "" {
			t.Error("misconfigured response has no message")
		}
	})

	t.Run("garbage body is 400", func(t *testing.T) {
		rec, _ := doLogin(t, "correct", `{broken`)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("code=%d", rec.Code)
		}
	})
}
