// Package posts provides the client-side repository over the backend's
// posts table: list, fetch-by-id, create, and delete. The table itself,
// its ordering, and its row-level access policies are owned by the backend.
package posts
