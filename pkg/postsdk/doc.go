// Package postsdk is a Go client for the postboard HTTP API.
//
// Anonymous operations (register, login, listing and reading posts, health)
// live on Client. Login returns a Session that carries the bearer token and
// exposes the authenticated operations:
//
//	c := postsdk.NewClient("http://localhost:8080")
//	s, err := c.Login(ctx, "alice", "correct horse", "")
//	post, err := s.GetPost(ctx, 42)          // includes DeleteToken for the owner
//	err = s.DeletePost(ctx, 42, post.DeleteToken)
//
// Errors returned by the server are *APIError values; compare them with
// errors.Is against the predefined errors, which match on Code.
package postsdk
