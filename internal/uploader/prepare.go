package uploader

import (
	"bytes"
	"encoding/base64"
	"fmt"

	"github.com/disintegration/imaging"

	// register the webp decoder; imaging itself only covers jpeg/png/gif
	_ "golang.org/x/image/webp"
)

const (
	thumbsideMax   = 320
	thumbQuality   = 75
	thumbByteLimit = 64 * 1024 // document-field budget for the inline preview

	compressSideMax = 1920
	compressQuality = 85
)

// Prepare decodes the item once and derives the inline preview thumbnail
// and the compressed variant that gets stored. Dimensions come from the
// decoded bounds.
func (m *Manager) Prepare(item *Item) error {
	img, err := imaging.Decode(bytes.NewReader(item.Data))
	if err != nil {
		return fmt.Errorf("decode %s: %w", item.Name, err)
	}
	bounds := img.Bounds()
	item.Width = bounds.Dx()
	item.Height = bounds.Dy()

	// inline preview, truncated to fit the document field budget
	thumb := imaging.Fit(img, thumbsideMax, thumbsideMax, imaging.Lanczos)
	var tbuf bytes.Buffer
	if err := imaging.Encode(&tbuf, thumb, imaging.JPEG, imaging.JPEGQuality(thumbQuality)); err != nil {
		return fmt.Errorf("encode thumbnail: %w", err)
	}
	preview := "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(tbuf.Bytes())
	if len(preview) > thumbByteLimit {
		preview = preview[:thumbByteLimit]
	}
	item.Preview = preview

	// compressed variant for storage; GIFs keep their original bytes so
	// animation survives
	if item.ContentType == "image/gif" ||
		(bounds.Dx() <= compressSideMax && bounds.Dy() <= compressSideMax && item.ContentType != "image/webp") {
		item.Compressed = item.Data
		return nil
	}
	resized := imaging.Fit(img, compressSideMax, compressSideMax, imaging.Lanczos)
	var cbuf bytes.Buffer
	if err := imaging.Encode(&cbuf, resized, imaging.JPEG, imaging.JPEGQuality(compressQuality)); err != nil {
		return fmt.Errorf("encode compressed: %w", err)
	}
	item.Compressed = cbuf.Bytes()
	item.ContentType = "image/jpeg"
	return nil
}
