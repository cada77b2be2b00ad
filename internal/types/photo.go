package types

import (
	"encoding/json"
	"fmt"
)

// PhotoKind discriminates the three lifecycle states of a resume photo.
type PhotoKind int

// Photo lifecycle states: unset, freshly chosen binary not yet uploaded,
// and uploaded remote reference.
const (
	PhotoEmpty PhotoKind = iota
	PhotoLocal
	PhotoRemote
)

// Photo is a tagged variant over the photo lifecycle. A PhotoLocal value must
// be resolved to PhotoRemote (via the blob store) before the owning document
// is persisted; ResumeDocument.CheckIntegrity enforces this.
type Photo struct {
	kind PhotoKind
	data []byte
	mime string
	url  string
}

// NoPhoto returns the unset photo value.
func NoPhoto() Photo { return Photo{} }

// LocalPhoto wraps a freshly chosen binary image that has not been uploaded.
func LocalPhoto(data []byte, mimeType string) Photo {
	return Photo{kind: PhotoLocal, data: data, mime: mimeType}
}

// RemotePhoto wraps a publicly resolvable URL returned by the blob store.
func RemotePhoto(url string) Photo {
	if url == "" {
		return Photo{}
	}
	return Photo{kind: PhotoRemote, url: url}
}

// Kind returns the lifecycle state.
func (p Photo) Kind() PhotoKind { return p.kind }

// IsEmpty reports whether no photo is set.
func (p Photo) IsEmpty() bool { return p.kind == PhotoEmpty }

// URL returns the remote reference, or "" for non-remote photos.
func (p Photo) URL() string { return p.url }

// Bytes returns the local binary payload, or nil for non-local photos.
func (p Photo) Bytes() []byte { return p.data }

// MIMEType returns the local payload's content type, or "" for non-local photos.
func (p Photo) MIMEType() string { return p.mime }

// MarshalJSON serializes a remote photo as its URL and anything else as null.
// Local binaries are never serialized; they must be uploaded first.
func (p Photo) MarshalJSON() ([]byte, error) {
	if p.kind == PhotoRemote {
		return json.Marshal(p.url)
	}
	return []byte("null"), nil
}

// UnmarshalJSON accepts a URL string or null. Binary payloads arrive through
// multipart upload endpoints, never through JSON.
func (p *Photo) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*p = Photo{}
		return nil
	}
	var url string
	if err := json.Unmarshal(b, &url); err != nil {
		return fmt.Errorf("photo must be a URL string or null: %w", err)
	}
	*p = RemotePhoto(url)
	return nil
}
