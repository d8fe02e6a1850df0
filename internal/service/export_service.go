package service

import (
	"github.com/hance08/bankdash/internal/export"
)

type ExportService struct {
	saver *export.Saver
}

func NewExportService(saver *export.Saver) *ExportService {
	return &ExportService{saver: saver}
}

// Save writes rows as a format document named after base. An empty row
// set produces no file and returns export.ErrEmpty.
func (s *ExportService) Save(format, base, title string, rows []export.Row) (string, error) {
	return s.saver.Export(format, base, title, rows)
}
