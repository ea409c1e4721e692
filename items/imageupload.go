package items

import (
	"fmt"
	"mime/multipart"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
)

var itemUploadDir = "./static/itempic"

// saveItemImage decodes the uploaded image, writes the original and a 300px
// thumbnail under the item picture directory, and returns the public URL of
// the original.
func saveItemImage(file multipart.File, itemID string) (string, error) {
	img, err := imaging.Decode(file)
	if err != nil {
		return "", fmt.Errorf("failed to decode image: %w", err)
	}

	thumbDir := filepath.Join(itemUploadDir, "thumb")
	if err := os.MkdirAll(thumbDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create upload directory: %w", err)
	}

	fileName := itemID + ".jpg"
	originalPath := filepath.Join(itemUploadDir, fileName)
	thumbnailPath := filepath.Join(thumbDir, fileName)

	if err := imaging.Save(img, originalPath); err != nil {
		return "", fmt.Errorf("failed to save image: %w", err)
	}

	thumbImg := imaging.Resize(img, 300, 0, imaging.Lanczos)
	if err := imaging.Save(thumbImg, thumbnailPath); err != nil {
		return "", fmt.Errorf("failed to save thumbnail: %w", err)
	}

	return "/static/itempic/" + fileName, nil
}
