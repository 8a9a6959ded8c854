package resume

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadDocument_PlainText(t *testing.T) {
	path := filepath.Join(t.TempDir(), "resume.txt")
	require.NoError(t, os.WriteFile(path, []byte("Data engineer.\nPython, Spark."), 0644))

	text, err := ReadDocument(path)

	require.NoError(t, err)
	assert.Equal(t, "Data engineer.\nPython, Spark.", text)
}

func TestReadDocument_UnknownExtensionReadAsText(t *testing.T) {
	path := filepath.Join(t.TempDir(), "resume.md")
	require.NoError(t, os.WriteFile(path, []byte("# Resume"), 0644))

	text, err := ReadDocument(path)

	require.NoError(t, err)
	assert.Equal(t, "# Resume", text)
}

func TestReadDocument_MissingFile(t *testing.T) {
	_, err := ReadDocument(filepath.Join(t.TempDir(), "missing.pdf"))

	require.Error(t, err)
	var readErr *ReadError
	require.ErrorAs(t, err, &readErr)
	assert.Contains(t, readErr.Error(), "file not found")
}

func TestReadDocument_CorruptPDF(t *testing.T) {
	path := filepath.Join(t.TempDir(), "resume.pdf")
	require.NoError(t, os.WriteFile(path, []byte("not a pdf"), 0644))

	_, err := ReadDocument(path)

	assert.Error(t, err)
}

func TestReadDocument_CorruptDocx(t *testing.T) {
	path := filepath.Join(t.TempDir(), "resume.docx")
	require.NoError(t, os.WriteFile(path, []byte("not a zip archive"), 0644))

	_, err := ReadDocument(path)

	assert.Error(t, err)
}
