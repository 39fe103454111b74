// Package backend wraps the single long-lived connection to the managed
// backend service. Repositories and the auth bridge issue their calls
// through Client.Do; the adapter itself holds no domain logic beyond header
// attachment, error translation, and the refresh-once retry on expired
// sessions.
package backend
