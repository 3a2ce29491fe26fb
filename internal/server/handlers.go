package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"

	"github.com/claude/workoutplan/internal/exporter"
	"github.com/claude/workoutplan/internal/importer"
	"github.com/claude/workoutplan/internal/models"
	"github.com/claude/workoutplan/internal/store"
	"github.com/go-chi/chi/v5"
)

func (s *Server) handleGetPlan(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.store.Snapshot())
}

// handlePutPlan replaces the whole document. The body is held to the same
// rules as an import.
func (s *Server) handlePutPlan(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		writeJSON(w, http.StatusRequestEntityTooLarge, map[string]string{"error": err.Error()})
		return
	}
	plan, err := importer.Validate(body)
	if err != nil {
		writeRejection(w, err)
		return
	}
	s.store.Update(r.Context(), plan)
	writeJSON(w, http.StatusOK, s.store.Snapshot())
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Confirm bool `json:"confirm"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || !req.Confirm {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": `reset discards all edits; send {"confirm": true}`})
		return
	}
	s.store.Reset(r.Context())
	writeJSON(w, http.StatusOK, s.store.Snapshot())
}

func (s *Server) handleGetActiveUser(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.store.Snapshot().ActiveUser())
}

func (s *Server) handlePutActiveUser(w http.ResponseWriter, r *http.Request) {
	var profile models.UserProfile
	if !decodeBody(w, r, &profile) {
		return
	}
	if err := s.store.SaveActiveUser(r.Context(), profile); err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s.store.Snapshot().ActiveUser())
}

func (s *Server) handleSwitchUser(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ID string `json:"id"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	if err := s.store.SwitchUser(r.Context(), req.ID); err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s.store.Snapshot().ActiveUser())
}

func (s *Server) handlePutMetadata(w http.ResponseWriter, r *http.Request) {
	var md models.Metadata
	if !decodeBody(w, r, &md) {
		return
	}
	if err := s.store.SaveMetadata(r.Context(), md); err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s.store.Snapshot().Metadata)
}

func (s *Server) handleAddUser(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	user, err := s.store.AddUser(r.Context(), req.Name)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, user)
}

func (s *Server) handleDeleteUser(w http.ResponseWriter, r *http.Request) {
	if err := s.store.DeleteUser(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeStoreError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleImport routes multipart uploads with a "file" field to the file
// channel and any other body to the paste channel.
func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	var err error
	if isMultipart(r) {
		err = s.importFile(r)
	} else {
		var text []byte
		text, err = io.ReadAll(r.Body)
		if err == nil {
			_, err = s.importer.ImportPaste(r.Context(), string(text))
		}
	}
	if err != nil {
		if importer.KindName(err) != "" {
			writeRejection(w, err)
			return
		}
		s.log.Error("import failed", "error", err)
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, s.store.Snapshot())
}

func (s *Server) importFile(r *http.Request) error {
	f, hdr, err := r.FormFile("file")
	if err != nil {
		return fmt.Errorf("reading multipart field %q: %w", "file", err)
	}
	defer f.Close()
	_, err = s.importer.ImportFile(r.Context(), hdr.Filename, hdr.Header.Get("Content-Type"), f)
	return err
}

func isMultipart(r *http.Request) bool {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return err == nil && mediaType == "multipart/form-data"
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	plan := s.store.Snapshot()

	var (
		f   exporter.File
		err error
	)
	switch scope := r.URL.Query().Get("scope"); scope {
	case "", "user":
		f, err = exporter.SingleUser(plan, s.now())
	case "all":
		f, err = exporter.AllUsers(plan, s.now())
	default:
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "scope must be user or all"})
		return
	}
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": f.Name}))
	w.WriteHeader(http.StatusOK)
	w.Write(f.Data)
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return false
	}
	return true
}

func writeRejection(w http.ResponseWriter, err error) {
	writeJSON(w, http.StatusUnprocessableEntity, map[string]string{
		"error":  importer.Message(err),
		"kind":   importer.KindName(err),
		"detail": err.Error(),
	})
}

func writeStoreError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, store.ErrUserNotFound):
		status = http.StatusNotFound
	case errors.Is(err, store.ErrDeleteActiveUser), errors.Is(err, store.ErrDeleteLastUser):
		status = http.StatusConflict
	case errors.Is(err, store.ErrNotInitialized):
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
