package server

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/akuvvet/buchhaltung/internal/archive"
	"github.com/akuvvet/buchhaltung/pkg/telematik"
	"github.com/akuvvet/buchhaltung/pkg/telematik/models"
)

const (
	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	textContentType = "text/plain; charset=utf-8"

	msgNoFile      = "Keine Datei hochgeladen."
	msgNotXLSX     = "Bitte eine .xlsx-Datei hochladen."
	msgTooLarge    = "Die Datei ist zu groß."
	msgUnreadable  = "Die Datei konnte nicht verarbeitet werden: %v"
	msgInternalErr = "Interner Fehler bei der Verarbeitung."

	// multipartMemory is the part of a form kept in memory before spilling to disk.
	multipartMemory = 8 << 20
)

// uploadError is a client error with the status and message to report.
type uploadError struct {
	status  int
	message string
}

func (e *uploadError) Error() string { return e.message }

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", textContentType)
	_, _ = io.WriteString(w, "ok")
}

func (s *Server) handleProcess(w http.ResponseWriter, r *http.Request) {
	res, log, ok := s.process(w, r)
	if !ok {
		return
	}

	if path, err := archive.Save(s.config.ArchiveDir, res.WorkbookName, res.Workbook); err != nil {
		log.Warn("failed to archive workbook", zap.Error(err))
	} else if path != "" {
		log.Info("archived workbook", zap.String("path", path))
	}

	w.Header().Set("X-Clipboard-Available", fmt.Sprint(res.HasClipboard()))
	writeAttachment(w, xlsxContentType, res.WorkbookName, res.Workbook)
}

func (s *Server) handleClipboard(w http.ResponseWriter, r *http.Request) {
	res, _, ok := s.process(w, r)
	if !ok {
		return
	}
	if !res.HasClipboard() {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	writeAttachment(w, textContentType, res.ClipboardName, res.Clipboard)
}

// process reads the upload and runs the processor. On failure it has
// already written the error response and returns false.
func (s *Server) process(w http.ResponseWriter, r *http.Request) (*models.Result, *zap.Logger, bool) {
	jobID := uuid.NewString()
	w.Header().Set("X-Job-ID", jobID)
	log := s.logger.With(zap.String("job_id", jobID))

	data, name, err := s.readUpload(w, r)
	if err != nil {
		var ue *uploadError
		if errors.As(err, &ue) {
			log.Info("rejected upload", zap.Int("status", ue.status), zap.String("reason", ue.message))
			http.Error(w, ue.message, ue.status)
			return nil, log, false
		}
		log.Error("failed to read upload", zap.Error(err))
		http.Error(w, msgInternalErr, http.StatusInternalServerError)
		return nil, log, false
	}
	log = log.With(zap.String("upload", name))

	opts := s.opts
	opts.Logger = log
	res, err := telematik.Process(data, opts)
	switch {
	case errors.Is(err, telematik.ErrInvalidFormat), errors.Is(err, telematik.ErrNoWorkingSheet):
		log.Warn("unprocessable upload", zap.Error(err))
		http.Error(w, fmt.Sprintf(msgUnreadable, err), http.StatusUnprocessableEntity)
		return nil, log, false
	case err != nil:
		log.Error("processing failed", zap.Error(err))
		http.Error(w, msgInternalErr, http.StatusInternalServerError)
		return nil, log, false
	}
	return res, log, true
}

// readUpload returns the content and file name of the "file" form field.
func (s *Server) readUpload(w http.ResponseWriter, r *http.Request) ([]byte, string, error) {
	if s.config.MaxUploadBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, s.config.MaxUploadBytes)
	}
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, "", &uploadError{http.StatusRequestEntityTooLarge, msgTooLarge}
		}
		return nil, "", &uploadError{http.StatusBadRequest, msgNoFile}
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("file")
	if err != nil || header.Filename == "" {
		return nil, "", &uploadError{http.StatusBadRequest, msgNoFile}
	}
	defer file.Close()
	if !strings.HasSuffix(strings.ToLower(header.Filename), ".xlsx") {
		return nil, "", &uploadError{http.StatusBadRequest, msgNotXLSX}
	}

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, "", err
	}
	return data, header.Filename, nil
}

func writeAttachment(w http.ResponseWriter, contentType, name string, data []byte) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	w.Header().Set("Content-Length", fmt.Sprint(len(data)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
