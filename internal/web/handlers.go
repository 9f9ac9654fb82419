package web

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/shiftlog/importer/internal/importer"
	"github.com/shiftlog/importer/internal/logging"
	"github.com/shiftlog/importer/internal/schema"
)

// targetView describes an import target for the client.
type targetView struct {
	Key     string                      `json:"key"`
	Label   string                      `json:"label"`
	Columns []importer.ColumnDefinition `json:"columns"`
}

// sessionView is the session state returned by every session endpoint.
type sessionView struct {
	ID              string                   `json:"id"`
	Target          string                   `json:"target"`
	Step            importer.Step            `json:"step"`
	FileName        string                   `json:"fileName,omitempty"`
	Headers         []string                 `json:"headers,omitempty"`
	RowCount        int                      `json:"rowCount"`
	Mapping         []importer.ColumnMapping `json:"mapping,omitempty"`
	MissingRequired []string                 `json:"missingRequired,omitempty"`
	Warnings        []string                 `json:"warnings,omitempty"`
}

func viewOf(session *importer.Session) sessionView {
	table := session.Table()
	view := sessionView{
		ID:       session.ID(),
		Target:   session.Target(),
		Step:     session.Step(),
		FileName: session.FileName(),
		Headers:  table.Headers,
		RowCount: len(table.Rows),
		Mapping:  session.Mapping(),
	}
	if view.Step != importer.StepUpload {
		view.MissingRequired = importer.MissingRequiredLabels(session.Definitions(), session.Mapping())
	}
	for _, warn := range session.Warnings() {
		view.Warnings = append(view.Warnings, warn.String())
	}
	return view
}

// handleListTargets returns all registered import targets.
func (s *Server) handleListTargets(w http.ResponseWriter, r *http.Request) {
	targets := schema.All()
	views := make([]targetView, 0, len(targets))
	for _, t := range targets {
		views = append(views, targetView{Key: t.Key, Label: t.Label, Columns: t.Columns})
	}
	s.respondJSON(w, http.StatusOK, views)
}

// handleCreateSession creates a session for a target and attaches the
// uploaded file in one step. Accepts a multipart "file" part or a raw text
// body with an optional ?filename= query parameter.
func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	targetKey := chi.URLParam(r, "targetKey")
	target, ok := schema.Get(targetKey)
	if !ok {
		s.respondError(w, r, fmt.Errorf("unknown target: %s", targetKey), http.StatusNotFound)
		return
	}

	fileName, text, err := s.readUpload(w, r)
	if err != nil {
		s.respondError(w, r, err, http.StatusBadRequest)
		return
	}

	session, err := s.manager.Create(target.Table, target.Columns)
	if err != nil {
		s.respondError(w, r, err, http.StatusTooManyRequests)
		return
	}

	token, err := session.BeginRead(fileName)
	if err != nil {
		s.manager.Close(session.ID())
		s.respondError(w, r, err, http.StatusBadRequest)
		return
	}
	if err := session.AttachFile(token, text); err != nil {
		s.manager.Close(session.ID())
		s.respondError(w, r, err, http.StatusUnprocessableEntity)
		return
	}

	logging.FromContext(r.Context()).Info("import session created",
		"session_id", session.ID(),
		"target", target.Key,
		"file", fileName,
		"rows", len(session.Table().Rows),
	)
	s.respondJSON(w, http.StatusCreated, viewOf(session))
}

// readUpload extracts the uploaded file name and content from the request.
func (s *Server) readUpload(w http.ResponseWriter, r *http.Request) (string, string, error) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.Import.MaxFileSize)

	if file, header, err := r.FormFile("file"); err == nil {
		defer file.Close()
		data, err := io.ReadAll(file)
		if err != nil {
			return "", "", fmt.Errorf("read upload: %w", err)
		}
		return header.Filename, string(data), nil
	}

	data, err := io.ReadAll(r.Body)
	if err != nil {
		return "", "", fmt.Errorf("read upload: %w", err)
	}
	fileName := r.URL.Query().Get("filename")
	if fileName == "" {
		fileName = "upload.csv"
	}
	return fileName, string(data), nil
}

// handleGetSession returns the current session state.
func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	session, ok := s.session(w, r)
	if !ok {
		return
	}
	s.respondJSON(w, http.StatusOK, viewOf(session))
}

// handleUpdateMapping points one source column at a target key.
func (s *Server) handleUpdateMapping(w http.ResponseWriter, r *http.Request) {
	session, ok := s.session(w, r)
	if !ok {
		return
	}

	var req struct {
		SourceColumn string `json:"sourceColumn"`
		TargetKey    string `json:"targetKey"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, r, fmt.Errorf("decode request: %w", err), http.StatusBadRequest)
		return
	}

	if err := session.SetMapping(req.SourceColumn, req.TargetKey); err != nil {
		s.respondError(w, r, err, statusFor(err))
		return
	}
	s.respondJSON(w, http.StatusOK, viewOf(session))
}

// previewResponse carries the session state plus the records a commit would
// submit.
type previewResponse struct {
	sessionView
	Records     []importer.Record `json:"records"`
	RecordCount int               `json:"recordCount"`
}

// handlePreview advances the session to Preview and returns the
// materialized records.
func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	session, ok := s.session(w, r)
	if !ok {
		return
	}

	if err := session.Preview(); err != nil {
		s.respondError(w, r, err, statusFor(err))
		return
	}

	records := session.PreviewRecords()
	s.respondJSON(w, http.StatusOK, previewResponse{
		sessionView: viewOf(session),
		Records:     records,
		RecordCount: len(records),
	})
}

// handleBack steps the session backward.
func (s *Server) handleBack(w http.ResponseWriter, r *http.Request) {
	session, ok := s.session(w, r)
	if !ok {
		return
	}

	if err := session.Back(); err != nil {
		s.respondError(w, r, err, statusFor(err))
		return
	}
	s.respondJSON(w, http.StatusOK, viewOf(session))
}

// commitResponse reports a successful commit.
type commitResponse struct {
	Submitted int `json:"submitted"`
}

// handleCommit submits the batch through the configured writer. On failure
// the session stays in Preview and the writer's diagnostics are surfaced.
func (s *Server) handleCommit(w http.ResponseWriter, r *http.Request) {
	session, ok := s.session(w, r)
	if !ok {
		return
	}

	ctx := r.Context()
	if s.cfg.Import.CommitTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.Import.CommitTimeout)
		defer cancel()
	}

	count, err := session.Commit(ctx, s.manager.Writer())
	if err != nil {
		s.respondError(w, r, err, statusFor(err))
		return
	}

	logging.FromContext(r.Context()).Info("import committed",
		"session_id", session.ID(),
		"target", session.Target(),
		"records", count,
	)
	s.manager.Close(session.ID())
	s.respondJSON(w, http.StatusOK, commitResponse{Submitted: count})
}

// handleCloseSession destroys the session.
func (s *Server) handleCloseSession(w http.ResponseWriter, r *http.Request) {
	s.manager.Close(chi.URLParam(r, "sessionID"))
	w.WriteHeader(http.StatusNoContent)
}

// session looks up the request's session, responding 404 when it is gone.
func (s *Server) session(w http.ResponseWriter, r *http.Request) (*importer.Session, bool) {
	id := chi.URLParam(r, "sessionID")
	session, ok := s.manager.Get(id)
	if !ok {
		s.respondError(w, r, fmt.Errorf("session not found: %s", id), http.StatusNotFound)
		return nil, false
	}
	return session, true
}

// statusFor maps pipeline errors to HTTP status codes.
func statusFor(err error) int {
	var validationErr *importer.ValidationError
	var stateErr *importer.StateError
	var parseErr *importer.ParseError
	var commitErr *importer.CommitError

	switch {
	case errors.As(err, &validationErr), errors.As(err, &parseErr):
		return http.StatusUnprocessableEntity
	case errors.As(err, &stateErr), errors.Is(err, importer.ErrCommitInFlight):
		return http.StatusConflict
	case errors.As(err, &commitErr):
		return http.StatusBadGateway
	default:
		return http.StatusBadRequest
	}
}
