package loader

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"github.com/legalease/lexctl/internal/domain/entity"
)

// Accepted document types, keyed by extension
var acceptedTypes = map[string]string{
	".pdf":  "application/pdf",
	".docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
}

// Accepted returns the accepted file extensions
func Accepted() []string {
	return []string{".pdf", ".docx"}
}

// LoadDocument checks that path is a PDF or DOCX file and returns an upload
// handle for it. The content is read again when the handle is opened.
func LoadDocument(path string) (*entity.UploadFile, error) {
	ext := strings.ToLower(filepath.Ext(path))
	want, ok := acceptedTypes[ext]
	if !ok {
		return nil, fmt.Errorf("unsupported file type '%s', must be one of %s", ext, strings.Join(Accepted(), ", "))
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%s is a directory", path)
	}
	if info.Size() == 0 {
		return nil, fmt.Errorf("%s is empty", path)
	}

	// The extension must agree with the content
	mtype, err := mimetype.DetectFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to detect file type: %w", err)
	}
	if !mtype.Is(want) {
		return nil, fmt.Errorf("%s does not look like a %s file (detected %s)", filepath.Base(path), strings.TrimPrefix(ext, "."), mtype.String())
	}

	return &entity.UploadFile{
		Name:        filepath.Base(path),
		ContentType: want,
		Size:        info.Size(),
		Open: func() (io.ReadCloser, error) {
			return os.Open(path)
		},
	}, nil
}
