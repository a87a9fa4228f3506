package services

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocumentService_List(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, DefaultCatalog[1].FileName), []byte("docx bytes"), 0o644))

	docs, err := NewDocumentService(dir, DefaultCatalog).List()
	require.NoError(t, err)
	require.Len(t, docs, len(DefaultCatalog))

	assert.False(t, docs[0].Available)
	assert.True(t, docs[1].Available)
	assert.EqualValues(t, len("docx bytes"), docs[1].SizeBytes)
	assert.Equal(t, "vacation-request", docs[1].ID)
}

func TestDocumentService_Open(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, DefaultCatalog[0].FileName), []byte("letter"), 0o644))
	svc := NewDocumentService(dir, DefaultCatalog)

	f, doc, err := svc.Open("letter-blank")
	require.NoError(t, err)
	defer f.Close()
	body, err := io.ReadAll(f)
	require.NoError(t, err)
	assert.Equal(t, "letter", string(body))
	assert.Equal(t, DefaultCatalog[0].FileName, doc.FileName)

	_, _, err = svc.Open("vacation-request")
	assert.ErrorIs(t, err, ErrDocumentNotFound, "catalog entry without a file")

	_, _, err = svc.Open("../../etc/passwd")
	assert.ErrorIs(t, err, ErrDocumentNotFound, "only catalog ids resolve")
}
