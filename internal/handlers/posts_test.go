package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/fachig/blog-api/internal/blog"
	"github.com/fachig/blog-api/internal/events"
	"github.com/google/uuid"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// testRouter wires the posts handler onto a mux the same way cmd/api does,
// backed by the in-memory repository.
func testRouter(t *testing.T) *http.ServeMux {
	t.Helper()
	svc := blog.NewService(blog.NewMemoryRepository(), events.NoopPublisher{}, testLogger())
	h := NewPostsHandler(svc, testLogger())

	mux := http.NewServeMux()
	mux.Handle("GET /posts", h.List())
	mux.Handle("GET /posts/{id}", h.Get())
	mux.Handle("POST /posts", h.Create())
	mux.Handle("PUT /posts/{id}", h.Update())
	mux.Handle("DELETE /posts/{id}", h.Delete())
	return mux
}

func do(mux *http.ServeMux, method, path string, body any) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		b, _ := json.Marshal(body)
		reader = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, reader)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(rec.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode body %q: %v", rec.Body.String(), err)
	}
	return v
}

func createPost(t *testing.T, mux *http.ServeMux, body map[string]any) *blog.Post {
	t.Helper()
	rec := do(mux, http.MethodPost, "/posts", body)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create: status %d, body %s", rec.Code, rec.Body.String())
	}
	resp := decode[postResponse](t, rec)
	return resp.Post
}

func validBody() map[string]any {
	return map[string]any{
		"title":   "Sustainable Futures",
		"content": "Growing food with the land, not against it.",
		"excerpt": "Our mission in brief",
		"author":  "FACHIG Team",
		"tags":    []string{"welcome"},
	}
}

func TestPostsHandler_Create(t *testing.T) {
	t.Run("created with assigned fields and message", func(t *testing.T) {
		mux := testRouter(t)
		rec := do(mux, http.MethodPost, "/posts", validBody())
		if rec.Code != http.StatusCreated {
			t.Fatalf("status %d", rec.Code)
		}
		resp := decode[postResponse](t, rec)
		if resp.Post == nil || resp.Post.ID == uuid.Nil {
			t.Fatalf("post = %+v", resp.Post)
		}
		if resp.Post.ReadingTime < 1 {
			t.Errorf("readingTime = %d", resp.Post.ReadingTime)
		}
		if resp.Message != "Blog post created successfully" {
			t.Errorf("message = %q", resp.Message)
		}
	})

	t.Run("missing required field is 400", func(t *testing.T) {
		mux := testRouter(t)
		for _, field := range []string{"title", "content", "excerpt", "author"} {
			body := validBody()
			delete(body, field)
			rec := do(mux, http.MethodPost, "/posts", body)
			if rec.Code != http.StatusBadRequest {
				t.Errorf("missing %s: status %d", field, rec.Code)
			}
			e := decode[errorBody](t, rec)
			if e.Error != "VALIDATION_ERROR" || e.Message == "" {
				t.Errorf("missing %s: body %+v", field, e)
			}
		}
	})

	t.Run("garbage body is 400", func(t *testing.T) {
		mux := testRouter(t)
		req := httptest.NewRequest(http.MethodPost, "/posts", bytes.NewReader([]byte("{not json")))
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, req)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("status %d", rec.Code)
		}
	})
}

func TestPostsHandler_Get(t *testing.T) {
	mux := testRouter(t)
	post := createPost(t, mux, validBody())

	t.Run("found", func(t *testing.T) {
		rec := do(mux, http.MethodGet, "/posts/"+post.ID.String(), nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("status %d", rec.Code)
		}
		resp := decode[struct {
			Post *blog.Post `json:"post"`
		}](t, rec)
		if resp.Post == nil || resp.Post.ID != post.ID {
			t.Errorf("post = %+v", resp.Post)
		}
	})

	t.Run("missing is 404", func(t *testing.T) {
		rec := do(mux, http.MethodGet, "/posts/"+uuid.NewString(), nil)
		if rec.Code != http.StatusNotFound {
			t.Errorf("status %d", rec.Code)
		}
		e := decode[errorBody](t, rec)
		if e.Error != "NOT_FOUND" {
			t.Errorf("error = %q", e.Error)
		}
	})

	t.Run("malformed id is 404, not 400", func(t *testing.T) {
		rec := do(mux, http.MethodGet, "/posts/not-a-uuid", nil)
		if rec.Code != http.StatusNotFound {
			t.Errorf("status %d", rec.Code)
		}
	})
}

func TestPostsHandler_List(t *testing.T) {
	mux := testRouter(t)
	createPost(t, mux, validBody())
	second := validBody()
	second["title"] = "Composting Basics"
	second["tags"] = []string{"tips"}
	second["featured"] = true
	createPost(t, mux, second)

	type listResp struct {
		Items []*blog.Post `json:"items"`
		Total int64        `json:"total"`
		Page  int          `json:"page"`
		Limit int          `json:"limit"`
	}

	t.Run("lists everything with defaults", func(t *testing.T) {
		rec := do(mux, http.MethodGet, "/posts", nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("status %d", rec.Code)
		}
		resp := decode[listResp](t, rec)
		if resp.Total != 2 || len(resp.Items) != 2 || resp.Page != 1 || resp.Limit != 10 {
			t.Errorf("resp = %+v", resp)
		}
	})

	t.Run("filters narrow the result", func(t *testing.T) {
		rec := do(mux, http.MethodGet, "/posts?featured=true", nil)
		resp := decode[listResp](t, rec)
		if resp.Total != 1 || len(resp.Items) != 1 || resp.Items[0].Title != "Composting Basics" {
			t.Errorf("featured filter: %+v", resp)
		}

		rec = do(mux, http.MethodGet, "/posts?search=sustainable", nil)
		resp = decode[listResp](t, rec)
		if resp.Total != 1 || resp.Items[0].Title != "Sustainable Futures" {
			t.Errorf("search filter: %+v", resp)
		}

		rec = do(mux, http.MethodGet, "/posts?tag=TIPS", nil)
		resp = decode[listResp](t, rec)
		if resp.Total != 1 || resp.Items[0].Title != "Composting Basics" {
			t.Errorf("tag filter: %+v", resp)
		}
	})

	t.Run("junk pagination falls back to defaults", func(t *testing.T) {
		for _, qs := range []string{"?page=abc&limit=xyz", "?page=-1&limit=0", "?page=&limit="} {
			rec := do(mux, http.MethodGet, "/posts"+qs, nil)
			if rec.Code != http.StatusOK {
				t.Fatalf("%s: status %d", qs, rec.Code)
			}
			resp := decode[listResp](t, rec)
			if resp.Page != 1 || resp.Limit != 10 {
				t.Errorf("%s: page=%d limit=%d", qs, resp.Page, resp.Limit)
			}
		}
	})

	t.Run("total counts all matches before pagination", func(t *testing.T) {
		rec := do(mux, http.MethodGet, "/posts?limit=1&page=2", nil)
		resp := decode[listResp](t, rec)
		if resp.Total != 2 || len(resp.Items) != 1 {
			t.Errorf("resp = %+v", resp)
		}
	})

	t.Run("unparseable featured is ignored", func(t *testing.T) {
		rec := do(mux, http.MethodGet, "/posts?featured=banana", nil)
		resp := decode[listResp](t, rec)
		if resp.Total != 2 {
			t.Errorf("resp = %+v", resp)
		}
	})
}

func TestPostsHandler_Update(t *testing.T) {
	t.Run("partial update preserves untouched fields", func(t *testing.T) {
		mux := testRouter(t)
		post := createPost(t, mux, validBody())

		rec := do(mux, http.MethodPut, "/posts/"+post.ID.String(), map[string]any{"title": "Renamed"})
		if rec.Code != http.StatusOK {
			t.Fatalf("status %d, body %s", rec.Code, rec.Body.String())
		}
		resp := decode[postResponse](t, rec)
		if resp.Post.Title != "Renamed" {
			t.Errorf("title = %q", resp.Post.Title)
		}
		if len(resp.Post.Tags) != 1 || resp.Post.Tags[0] != "welcome" {
			t.Errorf("tags changed: %v", resp.Post.Tags)
		}
		if resp.Post.Content != post.Content || resp.Post.Author != post.Author {
			t.Errorf("untouched fields changed")
		}
		if resp.Message != "Blog post updated successfully" {
			t.Errorf("message = %q", resp.Message)
		}
	})

	t.Run("content update recomputes reading time", func(t *testing.T) {
		mux := testRouter(t)
		post := createPost(t, mux, validBody())

		long := ""
		for i := 0; i < 600; i++ {
			long += fmt.Sprintf("word%d ", i)
		}
		rec := do(mux, http.MethodPut, "/posts/"+post.ID.String(), map[string]any{"content": long})
		resp := decode[postResponse](t, rec)
		if resp.Post.ReadingTime != 3 {
			t.Errorf("readingTime = %d, want 3", resp.Post.ReadingTime)
		}
	})

	t.Run("missing post is 404", func(t *testing.T) {
		mux := testRouter(t)
		rec := do(mux, http.MethodPut, "/posts/"+uuid.NewString(), map[string]any{"title": "X"})
		if rec.Code != http.StatusNotFound {
			t.Errorf("status %d", rec.Code)
		}
	})
}

func TestPostsHandler_Delete(t *testing.T) {
	mux := testRouter(t)
	post := createPost(t, mux, validBody())

	rec := do(mux, http.MethodDelete, "/posts/"+post.ID.String(), nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d", rec.Code)
	}
	resp := decode[struct {
		Message   string    `json:"message"`
		DeletedID uuid.UUID `json:"deletedId"`
	}](t, rec)
	if resp.DeletedID != post.ID || resp.Message == "" {
		t.Errorf("resp = %+v", resp)
	}

	// Deleting again must report not found.
	rec = do(mux, http.MethodDelete, "/posts/"+post.ID.String(), nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("second delete: status %d", rec.Code)
	}
}
