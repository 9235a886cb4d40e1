package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/aussiebroadwan/postboard/internal/posts/service"
	"github.com/aussiebroadwan/postboard/pkg/captoken"
	"github.com/aussiebroadwan/postboard/pkg/httpx"
	"github.com/aussiebroadwan/postboard/pkg/postsdk"
	"github.com/aussiebroadwan/postboard/pkg/slogx"
)

// maxDeleteForm caps the form body of POST /v1/posts/{id}/delete.
const maxDeleteForm = 4 << 10

type PostsHandler struct {
	PostService *service.PostService
}

// HandleList handles GET /v1/posts
//
//	@Summary		List posts
//	@Description	Returns the newest posts first. Listings never carry delete tokens.
//	@Tags			Posts
//	@Produce		json
//	@Param			limit	query		int							false	"Maximum number of posts (1-100, default 20)"
//	@Success		200		{object}	postsdk.ListPostsResponse	"Posts"
//	@Failure		400		{object}	postsdk.ErrorResponse		"Invalid limit"
//	@Failure		500		{object}	postsdk.ErrorResponse		"Internal server error"
//	@Router			/v1/posts [get].
func (h *PostsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			postsdk.ErrInvalidRequest.WithDescription("limit must be a non-negative integer").WriteError(w)
			return
		}
		limit = n
	}

	posts, err := h.PostService.ListPosts(ctx, limit)
	if err != nil {
		log.Error("failed to list posts", "err", err)
		postsdk.ErrServerError.WriteError(w)
		return
	}

	resp := postsdk.ListPostsResponse{Posts: make([]postsdk.PostResponse, 0, len(posts))}
	for _, p := range posts {
		resp.Posts = append(resp.Posts, toPostResponse(p))
	}
	httpx.WriteJSON(w, http.StatusOK, resp)
}

// HandleCreate handles POST /v1/posts
//
//	@Summary		Create a post
//	@Tags			Posts
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		postsdk.CreatePostRequest	true	"Post"
//	@Success		201		{object}	postsdk.PostResponse		"Created post"
//	@Failure		400		{object}	postsdk.ErrorResponse		"Invalid request"
//	@Failure		401		{object}	postsdk.ErrorResponse		"Invalid or missing session"
//	@Failure		500		{object}	postsdk.ErrorResponse		"Internal server error"
//	@Router			/v1/posts [post].
func (h *PostsHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req postsdk.CreatePostRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		postsdk.ErrInvalidRequest.WithDescription(err.Error()).WriteError(w)
		return
	}

	post, err := h.PostService.CreatePost(ctx, httpx.UserIDFromContext(ctx), req.Title, req.Content)
	if err != nil {
		apiErr := apiError(err)
		if apiErr == postsdk.ErrServerError {
			log.Error("failed to create post", "err", err)
		}
		apiErr.WriteError(w)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, toPostResponse(post))
}

// HandleGet handles GET /v1/posts/{id}
//
//	@Summary		Read a post
//	@Description	Returns the post with its author. When the caller is the author, the response includes a
//	@Description	delete_token valid for a few minutes; send it back to delete the post.
//	@Tags			Posts
//	@Security		BearerAuth
//	@Produce		json
//	@Param			id	path		int						true	"Post ID"
//	@Success		200	{object}	postsdk.PostResponse	"Post"
//	@Failure		401	{object}	postsdk.ErrorResponse	"Invalid session (anonymous access is allowed)"
//	@Failure		404	{object}	postsdk.ErrorResponse	"Post not found"
//	@Failure		500	{object}	postsdk.ErrorResponse	"Internal server error"
//	@Router			/v1/posts/{id} [get].
func (h *PostsHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	id, ok := postIDFromPath(r)
	if !ok {
		postsdk.ErrPostNotFound.WriteError(w)
		return
	}

	view, err := h.PostService.ViewPost(ctx, id, httpx.UserIDFromContext(ctx))
	if err != nil {
		apiErr := apiError(err)
		if apiErr == postsdk.ErrServerError {
			log.Error("failed to view post", "post_id", id, "err", err)
		}
		apiErr.WriteError(w)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toPostViewResponse(view))
}

// HandleDelete handles DELETE /v1/posts/{id}
//
//	@Summary		Delete a post
//	@Description	Requires the delete token from GET /v1/posts/{id} in the X-Delete-Token header. The token is
//	@Description	bound to the caller and the post, expires after a few minutes, and is only honoured while the
//	@Description	caller still owns the post.
//	@Tags			Posts
//	@Security		BearerAuth
//	@Param			id				path	int		true	"Post ID"
//	@Param			X-Delete-Token	header	string	true	"Delete token"
//	@Success		204				"Deleted"
//	@Failure		401				{object}	postsdk.ErrorResponse	"Invalid or missing session"
//	@Failure		403				{object}	postsdk.ErrorResponse	"Delete token rejected"
//	@Failure		404				{object}	postsdk.ErrorResponse	"Post not found"
//	@Failure		503				{object}	postsdk.ErrorResponse	"Deleting is disabled"
//	@Router			/v1/posts/{id} [delete].
func (h *PostsHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	h.deletePost(w, r, r.Header.Get(postsdk.DeleteTokenHeader))
}

// HandleDeleteForm handles POST /v1/posts/{id}/delete
//
//	@Summary		Delete a post (form)
//	@Description	Same as DELETE /v1/posts/{id} with the token in the deleteToken form field, for HTML forms.
//	@Tags			Posts
//	@Security		BearerAuth
//	@Accept			x-www-form-urlencoded
//	@Param			id			path		int		true	"Post ID"
//	@Param			deleteToken	formData	string	true	"Delete token"
//	@Success		204			"Deleted"
//	@Failure		401			{object}	postsdk.ErrorResponse	"Invalid or missing session"
//	@Failure		403			{object}	postsdk.ErrorResponse	"Delete token rejected"
//	@Failure		404			{object}	postsdk.ErrorResponse	"Post not found"
//	@Failure		503			{object}	postsdk.ErrorResponse	"Deleting is disabled"
//	@Router			/v1/posts/{id}/delete [post].
func (h *PostsHandler) HandleDeleteForm(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxDeleteForm)
	if err := r.ParseForm(); err != nil {
		postsdk.ErrInvalidRequest.WithDescription("invalid form body").WriteError(w)
		return
	}
	// Body only; a token in the query string would end up in proxy logs.
	h.deletePost(w, r, r.PostForm.Get(postsdk.DeleteTokenFormField))
}

func (h *PostsHandler) deletePost(w http.ResponseWriter, r *http.Request, token string) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	id, ok := postIDFromPath(r)
	if !ok {
		postsdk.ErrPostNotFound.WriteError(w)
		return
	}

	err := h.PostService.DeletePost(ctx, id, httpx.UserIDFromContext(ctx), token)
	switch {
	case err == nil:
		w.WriteHeader(http.StatusNoContent)
		return
	case errors.Is(err, service.ErrDeleteDisabled):
		log.Error("delete refused: no delete token secret configured", "post_id", id)
	case errors.Is(err, service.ErrDeleteRejected), errors.Is(err, service.ErrPostNotFound):
		log.Warn("delete rejected", "post_id", id, "reason", captoken.Reason(err))
	default:
		log.Error("failed to delete post", "post_id", id, "err", err)
	}
	apiError(err).WriteError(w)
}

// HandleTransfer handles POST /v1/posts/{id}/transfer
//
//	@Summary		Transfer a post
//	@Description	Hands the post to another user. Delete tokens issued to the previous owner stop working.
//	@Tags			Posts
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			id		path		int							true	"Post ID"
//	@Param			request	body		postsdk.TransferPostRequest	true	"New owner"
//	@Success		200		{object}	postsdk.PostResponse		"Updated post"
//	@Failure		400		{object}	postsdk.ErrorResponse		"Invalid request"
//	@Failure		401		{object}	postsdk.ErrorResponse		"Invalid or missing session"
//	@Failure		403		{object}	postsdk.ErrorResponse		"Not the author"
//	@Failure		404		{object}	postsdk.ErrorResponse		"Post or user not found"
//	@Router			/v1/posts/{id}/transfer [post].
func (h *PostsHandler) HandleTransfer(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	id, ok := postIDFromPath(r)
	if !ok {
		postsdk.ErrPostNotFound.WriteError(w)
		return
	}

	var req postsdk.TransferPostRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		postsdk.ErrInvalidRequest.WithDescription(err.Error()).WriteError(w)
		return
	}

	post, err := h.PostService.TransferPost(ctx, id, httpx.UserIDFromContext(ctx), req.NewOwner)
	if err != nil {
		apiErr := apiError(err)
		if apiErr == postsdk.ErrServerError {
			log.Error("failed to transfer post", "post_id", id, "err", err)
		}
		apiErr.WriteError(w)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toPostResponse(post))
}
