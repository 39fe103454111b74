// Package cli provides the interactive supanews command-line client.
//
// It wires configuration, the session store, the backend REST adapter, the
// post repository, the image uploader, and a browser-style view router into
// an interactive command loop. Typical flow: restore the session, fetch the
// article list, apply the start URL, and execute user commands.
//
// Key features:
//   - Browse articles / show a single article (with deep-link start URLs)
//   - Login / Logout / Register
//   - Create an article with an optional image upload
//   - Delete own articles
//
// The loop is started via App.Run(ctx), which blocks until the user exits.
// See App, Root, and the per-command methods for details.
package cli
