package loader

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const samplePDF = "%PDF-1.4\n1 0 obj\n<< /Type /Catalog >>\nendobj\ntrailer\n<< /Root 1 0 R >>\n%%EOF\n"

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadDocument_PDF(t *testing.T) {
	path := writeFile(t, "Lease Agreement.PDF", samplePDF)

	file, err := LoadDocument(path)
	require.NoError(t, err)
	assert.Equal(t, "Lease Agreement.PDF", file.Name)
	assert.Equal(t, "application/pdf", file.ContentType)
	assert.Equal(t, int64(len(samplePDF)), file.Size)

	rc, err := file.Open()
	require.NoError(t, err)
	defer rc.Close()
	content, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, samplePDF, string(content))
}

func TestLoadDocument_Rejects(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
		wantErr string
	}{
		{name: "unsupported extension", file: "notes.txt", content: "hello", wantErr: "unsupported file type"},
		{name: "no extension", file: "contract", content: samplePDF, wantErr: "unsupported file type"},
		{name: "pdf extension with text content", file: "fake.pdf", content: "just some text", wantErr: "does not look like a pdf file"},
		{name: "docx extension with text content", file: "fake.docx", content: "just some text", wantErr: "does not look like a docx file"},
		{name: "empty file", file: "empty.pdf", content: "", wantErr: "is empty"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, tt.file, tt.content)
			_, err := LoadDocument(path)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadDocument_Missing(t *testing.T) {
	_, err := LoadDocument(filepath.Join(t.TempDir(), "missing.pdf"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read file")
}
