package services

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/isdelr/staff-portal/internal/models"
	"github.com/samber/lo"
)

// DefaultCatalog lists the form templates employees can download.
var DefaultCatalog = []models.Document{
	{ID: "letter-blank", Title: "Letter blank", Description: "Company letterhead for outgoing mail", FileName: "Бланк письма.docx"},
	{ID: "vacation-request", Title: "Vacation request", Description: "Application for annual leave", FileName: "Заявление на отпуск.docx"},
	{ID: "resignation-request", Title: "Resignation request", Description: "Application for termination of employment", FileName: "Заявление на увольнение.docx"},
	{ID: "cash-advance-memo", Title: "Cash advance memo", Description: "Memo requesting funds on account", FileName: "СЗ на выдачу средств под отчет.docx"},
}

// DocumentServiceProvider defines the interface for document template services.
type DocumentServiceProvider interface {
	List() ([]models.Document, error)
	Open(id string) (*os.File, models.Document, error)
}

// DocumentService serves the catalog of templates from a directory on disk.
type DocumentService struct {
	dir     string
	catalog []models.Document
}

// NewDocumentService creates a new DocumentService.
func NewDocumentService(dir string, catalog []models.Document) *DocumentService {
	return &DocumentService{dir: dir, catalog: catalog}
}

// List returns the catalog with availability and size filled in from disk.
func (s *DocumentService) List() ([]models.Document, error) {
	docs := make([]models.Document, 0, len(s.catalog))
	for _, doc := range s.catalog {
		info, err := os.Stat(filepath.Join(s.dir, doc.FileName))
		switch {
		case err == nil && info.Mode().IsRegular():
			doc.Available = true
			doc.SizeBytes = info.Size()
		case err != nil && !errors.Is(err, fs.ErrNotExist):
			return nil, fmt.Errorf("failed to stat %s: %w", doc.FileName, err)
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

// Open returns the file of a catalog entry. Only catalog ids are accepted, so request input
// never reaches the filesystem path.
func (s *DocumentService) Open(id string) (*os.File, models.Document, error) {
	doc, found := lo.Find(s.catalog, func(d models.Document) bool {
		return d.ID == id
	})
	if !found {
		return nil, models.Document{}, ErrDocumentNotFound
	}

	f, err := os.Open(filepath.Join(s.dir, doc.FileName))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, models.Document{}, ErrDocumentNotFound
		}
		return nil, models.Document{}, fmt.Errorf("failed to open %s: %w", doc.FileName, err)
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, models.Document{}, fmt.Errorf("failed to stat %s: %w", doc.FileName, err)
	}
	doc.Available = true
	doc.SizeBytes = info.Size()
	return f, doc, nil
}
