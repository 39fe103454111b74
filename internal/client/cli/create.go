package cli

import (
	"context"
	"fmt"
	"mime"
	"path/filepath"
	"strings"

	"github.com/supanews/supanews/internal/client/repositories/posts"
	"github.com/supanews/supanews/internal/client/router"
	"github.com/supanews/supanews/internal/client/storage"
)

// Create runs the create-article form: title, category, content, and an
// optional image. Required-field checks happen before any network call.
func (a *App) Create(ctx context.Context) error {
	if !a.isLoggedIn() {
		fmt.Fprintln(a.out, "You must be logged in to create an article.")
		return nil
	}

	title, err := getSimpleText(a.reader, "Title", a.out)
	if err != nil {
		return err
	}
	category, err := getSimpleText(a.reader, "Category (e.g., Technology, Sports)", a.out)
	if err != nil {
		return err
	}
	content, err := getMultiline(a.reader, "Content", a.out)
	if err != nil {
		return err
	}

	title = strings.TrimSpace(title)
	category = strings.TrimSpace(category)
	content = strings.TrimSpace(content)
	if title == "" || content == "" || category == "" {
		fmt.Fprintln(a.out, "Please provide a title, content, and category.")
		return nil
	}

	imagePath, err := getSimpleText(a.reader, "Image file path (optional, Enter to skip)", a.out)
	if err != nil {
		return err
	}

	var imageURL string
	if imagePath != "" {
		imageURL, err = a.uploadImage(ctx, imagePath)
		if err != nil {
			fmt.Fprintln(a.out, err.Error())
			return nil
		}
	}

	fmt.Fprintln(a.out, "Submitting…")
	created, err := a.posts.Create(ctx, title, content, category, imageURL)
	if err != nil {
		a.log.Error(ctx, "error creating post", "error", err)
		msg := err.Error()
		if msg == "" {
			msg = "Failed to create post."
		}
		fmt.Fprintln(a.out, msg)
		return nil
	}

	fmt.Fprintln(a.out, "Post created!")

	// Prepend without a full refetch; the backend ordered it newest-first
	// anyway.
	a.postList = append([]posts.Post{*created}, a.postList...)
	a.router.SetView(router.ViewBrowse)
	a.renderView(ctx)
	return nil
}

// uploadImage reads the file and stores it through the uploader, returning
// the public URL.
func (a *App) uploadImage(ctx context.Context, path string) (string, error) {
	f, err := openFile(path)
	if err != nil {
		return "", fmt.Errorf("cannot open image: %w", err)
	}
	defer f.Close()

	contentType := mime.TypeByExtension(filepath.Ext(path))

	fmt.Fprintln(a.out, "Uploading image…")
	return a.uploader.Upload(ctx, storage.File{
		Name:        filepath.Base(path),
		ContentType: contentType,
		Body:        f,
	})
}
