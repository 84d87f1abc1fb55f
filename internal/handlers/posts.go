package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/fachig/blog-api/internal/blog"
	"github.com/google/uuid"
)

type PostsHandler struct {
	svc    *blog.Service
	logger *slog.Logger
}

func NewPostsHandler(svc *blog.Service, logger *slog.Logger) *PostsHandler {
	return &PostsHandler{
		svc:    svc,
		logger: logger,
	}
}

type CreatePostRequest struct {
	Title         string   `json:"title"`
	Content       string   `json:"content"`
	Excerpt       string   `json:"excerpt"`
	Author        string   `json:"author"`
	Tags          []string `json:"tags"`
	Featured      bool     `json:"featured"`
	FeaturedImage *string  `json:"featuredImage"`
	ImageAlt      *string  `json:"imageAlt"`
}

type UpdatePostRequest struct {
	Title         *string   `json:"title"`
	Content       *string   `json:"content"`
	Excerpt       *string   `json:"excerpt"`
	Author        *string   `json:"author"`
	Tags          *[]string `json:"tags"`
	Featured      *bool     `json:"featured"`
	FeaturedImage *string   `json:"featuredImage"`
	ImageAlt      *string   `json:"imageAlt"`
}

type postResponse struct {
	Post    *blog.Post `json:"post"`
	Message string     `json:"message"`
}

func (h *PostsHandler) List() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		result, err := h.svc.ListPosts(r.Context(), queryFromRequest(r))
		if err != nil {
			h.logger.Error("list posts failed", "error", err)
			writeError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR",
				"Unable to fetch blog posts at this time. Please try again later.")
			return
		}
		writeJSON(w, http.StatusOK, result)
	}
}

func (h *PostsHandler) Get() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := postID(w, r)
		if !ok {
			return
		}
		post, err := h.svc.GetPost(r.Context(), id)
		if err != nil {
			if errors.Is(err, blog.ErrNotFound) {
				writeError(w, r, http.StatusNotFound, "NOT_FOUND", "Blog post not found")
				return
			}
			h.logger.Error("get post failed", "post_id", id, "error", err)
			writeError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR",
				"Unable to fetch the requested blog post. Please try again later.")
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"post": post})
	}
}

func (h *PostsHandler) Create() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CreatePostRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, r, http.StatusBadRequest, "BAD_REQUEST", "invalid JSON body")
			return
		}
		if req.Title == "" || req.Content == "" || req.Excerpt == "" || req.Author == "" {
			writeError(w, r, http.StatusBadRequest, "VALIDATION_ERROR",
				"Title, content, excerpt, and author are required")
			return
		}

		post, err := h.svc.CreatePost(r.Context(), blog.NewPost{
			Title:         req.Title,
			Content:       req.Content,
			Excerpt:       req.Excerpt,
			Author:        req.Author,
			Tags:          req.Tags,
			Featured:      req.Featured,
			FeaturedImage: req.FeaturedImage,
			ImageAlt:      req.ImageAlt,
		})
		if err != nil {
			h.logger.Error("create post failed", "error", err)
			writeError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR",
				"Unable to create blog post. Please check your data and try again.")
			return
		}
		writeJSON(w, http.StatusCreated, postResponse{Post: post, Message: "Blog post created successfully"})
	}
}

func (h *PostsHandler) Update() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := postID(w, r)
		if !ok {
			return
		}
		var req UpdatePostRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, r, http.StatusBadRequest, "BAD_REQUEST", "invalid JSON body")
			return
		}

		post, err := h.svc.UpdatePost(r.Context(), id, blog.Changes{
			Title:         req.Title,
			Content:       req.Content,
			Excerpt:       req.Excerpt,
			Author:        req.Author,
			Tags:          req.Tags,
			Featured:      req.Featured,
			FeaturedImage: req.FeaturedImage,
			ImageAlt:      req.ImageAlt,
		})
		if err != nil {
			if errors.Is(err, blog.ErrNotFound) {
				writeError(w, r, http.StatusNotFound, "NOT_FOUND", "Blog post not found")
				return
			}
			h.logger.Error("update post failed", "post_id", id, "error", err)
			writeError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR",
				"Unable to update blog post. Please check your data and try again.")
			return
		}
		writeJSON(w, http.StatusOK, postResponse{Post: post, Message: "Blog post updated successfully"})
	}
}

func (h *PostsHandler) Delete() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := postID(w, r)
		if !ok {
			return
		}
		deleted, err := h.svc.DeletePost(r.Context(), id)
		if err != nil {
			if errors.Is(err, blog.ErrNotFound) {
				writeError(w, r, http.StatusNotFound, "NOT_FOUND", "Blog post not found")
				return
			}
			h.logger.Error("delete post failed", "post_id", id, "error", err)
			writeError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR",
				"Unable to delete blog post. Please try again later.")
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"message":   "Blog post deleted successfully",
			"deletedId": deleted,
		})
	}
}

// postID parses the {id} path segment. Ids are opaque, so a malformed one is
// indistinguishable from a missing post.
func postID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, r, http.StatusNotFound, "NOT_FOUND", "Blog post not found")
		return uuid.Nil, false
	}
	return id, true
}

func queryFromRequest(r *http.Request) blog.Query {
	params := r.URL.Query()
	q := blog.Query{
		Search: params.Get("search"),
		Tag:    params.Get("tag"),
	}
	if v := params.Get("featured"); v != "" {
		if featured, err := strconv.ParseBool(v); err == nil {
			q.Featured = &featured
		}
	}
	// Bad page/limit values stay zero and get defaulted downstream.
	q.Page, _ = strconv.Atoi(params.Get("page"))
	q.Limit, _ = strconv.Atoi(params.Get("limit"))
	return q
}
