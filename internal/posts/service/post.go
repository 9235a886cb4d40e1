package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/aussiebroadwan/postboard/internal/posts/domain"
	"github.com/aussiebroadwan/postboard/internal/posts/store"
	"github.com/aussiebroadwan/postboard/pkg/captoken"
	"github.com/aussiebroadwan/postboard/pkg/slogx"
)

const (
	MaxTitleLength   = 200
	MaxContentLength = 10_000

	DefaultListLimit = 20
	MaxListLimit     = 100
)

type PostService struct {
	Store store.Store

	// Issuer and Verifier are nil when no delete secret is configured. Views
	// then carry no token and deletes return ErrDeleteDisabled.
	Issuer   *captoken.Issuer
	Verifier *captoken.Verifier
}

// DeleteEnabled reports whether delete tokens can be issued and verified.
func (s *PostService) DeleteEnabled() bool {
	return s.Issuer != nil && s.Verifier != nil
}

// CreatePost stores a new post owned by authorID.
func (s *PostService) CreatePost(ctx context.Context, authorID, title, content string) (domain.Post, error) {
	if authorID == "" {
		return domain.Post{}, ErrUnauthenticated
	}

	title = strings.TrimSpace(title)
	content = strings.TrimSpace(content)
	switch {
	case title == "" || content == "":
		return domain.Post{}, fmt.Errorf("%w: title and content are required", ErrInvalidInput)
	case utf8.RuneCountInString(title) > MaxTitleLength:
		return domain.Post{}, fmt.Errorf("%w: title longer than %d characters", ErrInvalidInput, MaxTitleLength)
	case utf8.RuneCountInString(content) > MaxContentLength:
		return domain.Post{}, fmt.Errorf("%w: content longer than %d characters", ErrInvalidInput, MaxContentLength)
	}

	id, err := s.Store.Posts().CreatePost(ctx, domain.Post{AuthorID: authorID, Title: title, Content: content})
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Post{}, ErrUserNotFound
		}
		return domain.Post{}, fmt.Errorf("failed to create post: %w", err)
	}

	post, err := s.Store.Posts().GetPostByID(ctx, id)
	if err != nil {
		return domain.Post{}, fmt.Errorf("failed to load created post: %w", err)
	}

	slogx.FromContext(ctx).Info("post created", "post_id", id)
	return post, nil
}

// ListPosts returns the newest posts. limit is clamped to [1, MaxListLimit]
// and defaults to DefaultListLimit.
func (s *PostService) ListPosts(ctx context.Context, limit int) ([]domain.Post, error) {
	switch {
	case limit <= 0:
		limit = DefaultListLimit
	case limit > MaxListLimit:
		limit = MaxListLimit
	}

	posts, err := s.Store.Posts().ListPosts(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}
	return posts, nil
}

// ViewPost loads a post with its author for viewerID, which is empty for
// anonymous viewers. The author is offered a fresh delete token; nobody else
// is.
func (s *PostService) ViewPost(ctx context.Context, postID int64, viewerID string) (domain.PostView, error) {
	post, err := s.Store.Posts().GetPostByID(ctx, postID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.PostView{}, ErrPostNotFound
		}
		return domain.PostView{}, fmt.Errorf("failed to get post: %w", err)
	}

	view := domain.PostView{Post: post}

	author, err := s.Store.Users().GetUserByID(ctx, post.AuthorID)
	switch {
	case err == nil:
		view.AuthorUsername = author.Username
		view.AuthorDisplayName = author.DisplayName
	case errors.Is(err, store.ErrNotFound):
		// Render without an author rather than failing the view.
	default:
		return domain.PostView{}, fmt.Errorf("failed to get author: %w", err)
	}

	if viewerID == "" || viewerID != post.AuthorID || s.Issuer == nil {
		return view, nil
	}

	token, err := s.Issuer.Issue(post.ID, viewerID)
	if err != nil {
		// The post is still viewable; only the delete action is lost.
		slogx.FromContext(ctx).Error("failed to issue delete token",
			"post_id", post.ID,
			"reason", captoken.Reason(err),
		)
		return view, nil
	}
	view.DeleteToken = token

	return view, nil
}

// DeletePost deletes postID on behalf of actorID if token is a valid delete
// capability for that pair and actorID still owns the post. The owner read
// and the delete share one transaction.
func (s *PostService) DeletePost(ctx context.Context, postID int64, actorID, token string) error {
	if s.Verifier == nil {
		return ErrDeleteDisabled
	}
	if actorID == "" {
		return ErrUnauthenticated
	}

	log := slogx.FromContext(ctx)

	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := s.Verifier.Verify(ctx, postOwners(tx.Posts()), token, postID, actorID); err != nil {
			return err
		}
		return tx.Posts().DeletePost(ctx, postID)
	})

	switch {
	case err == nil:
		log.Info("post deleted", "post_id", postID)
		return nil
	case errors.Is(err, captoken.ErrNotFound), errors.Is(err, store.ErrNotFound):
		return fmt.Errorf("%w: %w", ErrPostNotFound, err)
	case captoken.IsRejection(err):
		return fmt.Errorf("%w: %w", ErrDeleteRejected, err)
	default:
		return fmt.Errorf("failed to delete post: %w", err)
	}
}

// TransferPost hands postID from actorID to the user named newOwner.
func (s *PostService) TransferPost(ctx context.Context, postID int64, actorID, newOwner string) (domain.Post, error) {
	if actorID == "" {
		return domain.Post{}, ErrUnauthenticated
	}

	var post domain.Post
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		owner, err := tx.Posts().GetPostOwner(ctx, postID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrPostNotFound
			}
			return err
		}
		if owner != actorID {
			return ErrNotPostOwner
		}

		target, err := tx.Users().GetUserByUsername(ctx, strings.TrimSpace(newOwner))
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrUserNotFound
			}
			return err
		}

		if err := tx.Posts().UpdatePostAuthor(ctx, postID, target.ID); err != nil {
			return err
		}

		post, err = tx.Posts().GetPostByID(ctx, postID)
		return err
	})
	if err != nil {
		if errors.Is(err, ErrPostNotFound) || errors.Is(err, ErrNotPostOwner) || errors.Is(err, ErrUserNotFound) {
			return domain.Post{}, err
		}
		return domain.Post{}, fmt.Errorf("failed to transfer post: %w", err)
	}

	slogx.FromContext(ctx).Info("post transferred", "post_id", postID, "new_owner_id", post.AuthorID)
	return post, nil
}

// postOwners reads the live owner through posts, which is bound to the
// delete transaction.
func postOwners(posts store.Posts) captoken.OwnerLookup {
	return captoken.OwnerLookupFunc(func(ctx context.Context, postID int64) (string, error) {
		owner, err := posts.GetPostOwner(ctx, postID)
		if errors.Is(err, store.ErrNotFound) {
			return "", captoken.ErrNotFound
		}
		return owner, err
	})
}
