package validation

import (
	"strings"

	"github.com/Caoophuongg/quickcv/internal/types"
)

// Upload ceilings per asset type. The photo ceiling is the client-facing
// limit from the editor; the dedicated upload endpoints enforce their own
// independent limits.
const (
	MaxPhotoBytes     = 4 << 20
	MaxAvatarBytes    = 2 << 20
	MaxThumbnailBytes = 5 << 20
)

// ImagePayload checks that an uploaded binary is image-typed and within the
// given size ceiling. The check runs before any transfer to blob storage.
func ImagePayload(contentType string, size int64, maxBytes int64) error {
	var fe FieldErrors
	if !strings.HasPrefix(contentType, "image/") {
		fe = fe.add("file", "must be an image file")
	}
	if size > maxBytes {
		fe = fe.add("file", "file exceeds the size limit")
	}
	return fe.OrNil()
}

// Photo checks the resume photo field. Only local binaries carry a payload
// to validate; empty and remote photos are always acceptable.
func Photo(p types.Photo) error {
	if p.Kind() != types.PhotoLocal {
		return nil
	}
	if err := ImagePayload(p.MIMEType(), int64(len(p.Bytes())), MaxPhotoBytes); err != nil {
		return err.(FieldErrors).prefix("photo")
	}
	return nil
}
