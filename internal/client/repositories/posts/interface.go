package posts

import (
	"context"
	"time"
)

// Post is one published article, owned by the backend's posts table.
type Post struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content,omitempty"`
	Category  string    `json:"category,omitempty"`
	CreatedAt time.Time `json:"created_at,omitempty"`
	UserID    string    `json:"user_id,omitempty"`
	ImageURL  string    `json:"image_url,omitempty"`
}

// Repository defines post operations for the client.
//
// Contract:
//   - List: all posts, newest first; an empty table is an empty slice, not
//     an error.
//   - GetByID: (nil, nil) when the id does not exist.
//   - Create: requires an authenticated session; returns the created row.
//   - Delete: unconditional delete-by-id; ownership is the backend's call.
//
// All methods must honor context cancellation/timeouts.
type Repository interface {
	List(ctx context.Context) ([]Post, error)
	GetByID(ctx context.Context, id string) (*Post, error)
	Create(ctx context.Context, title, content, category, imageURL string) (*Post, error)
	Delete(ctx context.Context, id string) error
}
