package utils

import (
	"fmt"
	"mime/multipart"
	"os"
	"path/filepath"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// SaveUpload writes an uploaded file under uploadDir with a generated
// timestamp-prefixed name. The stored name, not the original, is the durable
// reference kept on the resource row.
func SaveUpload(c *fiber.Ctx, file *multipart.FileHeader, uploadDir string) (string, int64, error) {
	if err := os.MkdirAll(uploadDir, 0o755); err != nil {
		return "", 0, err
	}

	ext := filepath.Ext(file.Filename)
	stored := fmt.Sprintf("%s_%s%s", time.Now().Format("20060102_150405"), uuid.NewString(), ext)

	if err := c.SaveFile(file, filepath.Join(uploadDir, stored)); err != nil {
		return "", 0, err
	}
	return stored, file.Size, nil
}
