package posts

import (
	"context"
	"errors"
	"net/http"
	"net/url"

	"github.com/supanews/supanews/internal/client/backend"
	"github.com/supanews/supanews/internal/client/session"
	"github.com/supanews/supanews/internal/common"
	"github.com/supanews/supanews/internal/logging"
)

const (
	restPath      = "/rest/v1/posts"
	selectColumns = "id,title,content,category,created_at,user_id,image_url"

	// Accept header asking the REST surface for exactly one object; zero or
	// multiple rows come back as a PGRST116 error instead of an array.
	acceptSingleObject = "application/vnd.pgrst.object+json"
)

// RestRepository is the Repository implementation backed by the backend's
// REST table surface.
type RestRepository struct {
	api      *backend.Client
	sessions *session.Store
	log      logging.Logger
}

// NewRestRepository binds a Repository to the given backend handle.
func NewRestRepository(api *backend.Client, sessions *session.Store, log logging.Logger) *RestRepository {
	return &RestRepository{api: api, sessions: sessions, log: log}
}

// List fetches all posts ordered by created_at descending.
func (r *RestRepository) List(ctx context.Context) ([]Post, error) {
	req := backend.Request{
		Method: http.MethodGet,
		Path:   restPath,
		Query: url.Values{
			"select": {selectColumns},
			"order":  {"created_at.desc"},
		},
	}

	var result []Post
	if err := r.api.Do(ctx, req, &result); err != nil {
		return nil, err
	}
	if result == nil {
		result = []Post{}
	}
	return result, nil
}

// GetByID fetches exactly one post. A backend "no rows" condition maps to
// (nil, nil); any other failure propagates with the backend's message.
func (r *RestRepository) GetByID(ctx context.Context, id string) (*Post, error) {
	req := backend.Request{
		Method: http.MethodGet,
		Path:   restPath,
		Query: url.Values{
			"select": {selectColumns},
			"id":     {"eq." + id},
		},
		Header: http.Header{"Accept": {acceptSingleObject}},
	}

	var post Post
	if err := r.api.Do(ctx, req, &post); err != nil {
		var berr *common.BackendError
		if errors.As(err, &berr) && berr.Code == backend.CodeNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &post, nil
}

// postInsert is the insert payload; optional columns are omitted when empty
// so the table defaults apply.
type postInsert struct {
	Title    string `json:"title"`
	Content  string `json:"content,omitempty"`
	Category string `json:"category,omitempty"`
	UserID   string `json:"user_id"`
	ImageURL string `json:"image_url,omitempty"`
}

// Create inserts a new post with the caller's user id attached and returns
// the generated row. The insert asks the backend to return the row directly,
// so no re-read is needed; a fallback re-read covers backends that ignore
// the preference header.
func (r *RestRepository) Create(ctx context.Context, title, content, category, imageURL string) (*Post, error) {
	uid := r.sessions.UserID()
	if uid == "" {
		return nil, common.ErrNotAuthenticated
	}

	req := backend.Request{
		Method: http.MethodPost,
		Path:   restPath,
		Query:  url.Values{"select": {selectColumns}},
		Header: http.Header{"Prefer": {"return=representation"}},
		Body: []postInsert{{
			Title:    title,
			Content:  content,
			Category: category,
			UserID:   uid,
			ImageURL: imageURL,
		}},
	}

	var created []Post
	if err := r.api.Do(ctx, req, &created); err != nil {
		return nil, err
	}
	if len(created) > 0 {
		return &created[0], nil
	}

	r.log.Debug(ctx, "insert returned no representation, re-reading newest post", "user_id", uid)
	return r.newestByUser(ctx, uid)
}

// newestByUser re-reads the most recently created post for uid. This mirrors
// the original client's reconciliation and shares its caveat: a concurrent
// insert by the same user can win the read.
func (r *RestRepository) newestByUser(ctx context.Context, uid string) (*Post, error) {
	req := backend.Request{
		Method: http.MethodGet,
		Path:   restPath,
		Query: url.Values{
			"select":  {selectColumns},
			"user_id": {"eq." + uid},
			"order":   {"created_at.desc"},
			"limit":   {"1"},
		},
		Header: http.Header{"Accept": {acceptSingleObject}},
	}

	var post Post
	if err := r.api.Do(ctx, req, &post); err != nil {
		return nil, err
	}
	return &post, nil
}

// Delete issues an unconditional delete-by-id. The backend's access policy
// rejects deletes by non-owners; that rejection surfaces as a BackendError
// carrying the backend's message.
func (r *RestRepository) Delete(ctx context.Context, id string) error {
	req := backend.Request{
		Method: http.MethodDelete,
		Path:   restPath,
		Query:  url.Values{"id": {"eq." + id}},
	}
	return r.api.Do(ctx, req, nil)
}
