package server

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/jonathan/career-assistant/internal/dispatch"
	"github.com/jonathan/career-assistant/internal/extract"
	"github.com/jonathan/career-assistant/internal/fetch"
	"github.com/jonathan/career-assistant/internal/pipeline"
	"github.com/jonathan/career-assistant/internal/types"
)

var validate = validator.New()

// handleCreateSession starts a new empty session.
func (s *Server) handleCreateSession(w http.ResponseWriter, _ *http.Request) {
	entry := s.sessions.Create()
	s.jsonResponse(w, http.StatusCreated, map[string]any{
		"session_id": entry.ID,
		"created_at": entry.CreatedAt,
	})
}

// handleGetSession returns the current session snapshot.
func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	entry, err := s.sessions.Get(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, entry.Store.Snapshot())
}

// handleDeleteSession discards a session.
func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	if err := s.sessions.Delete(r.PathValue("id")); err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleSetPersonal replaces the session's personal details.
func (s *Server) handleSetPersonal(w http.ResponseWriter, r *http.Request) {
	entry, err := s.sessions.Get(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	var details types.PersonalDetails
	if err := json.NewDecoder(r.Body).Decode(&details); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid JSON body: "+err.Error())
		return
	}
	if err := validate.Struct(details); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid personal details: "+err.Error())
		return
	}

	entry.Store.SetPersonalDetails(details)
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "updated"})
}

// setJobRequest accepts either pasted text or a job posting URL.
type setJobRequest struct {
	Description string `json:"description,omitempty"`
	Title       string `json:"title,omitempty"`
	URL         string `json:"url,omitempty"`
}

// handleSetJob replaces the session's job context, fetching the posting
// when a URL is supplied.
func (s *Server) handleSetJob(w http.ResponseWriter, r *http.Request) {
	entry, err := s.sessions.Get(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	var req setJobRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid JSON body: "+err.Error())
		return
	}

	switch {
	case req.URL != "":
		posting, err := fetch.FetchJobPosting(r.Context(), req.URL)
		if err != nil {
			s.errorResponse(w, http.StatusBadGateway, err.Error())
			return
		}
		entry.Store.SetJob(posting.Description, posting.Title)
		s.jsonResponse(w, http.StatusOK, map[string]string{
			"status":  "updated",
			"title":   posting.Title,
			"company": posting.Company,
		})
	case req.Description != "":
		entry.Store.SetJob(req.Description, req.Title)
		s.jsonResponse(w, http.StatusOK, map[string]string{"status": "updated"})
	default:
		err := &ErrValidation{Field: "description", Message: "either description or url is required"}
		s.errorResponse(w, HTTPStatus(err), err.Error())
	}
}

// setResumeRequest accepts pasted text or an uploaded document.
type setResumeRequest struct {
	Text string `json:"text,omitempty"`
	// Data carries base64-encoded document bytes with a declared format.
	Data   string `json:"data,omitempty"`
	Format string `json:"format,omitempty"`
}

// handleSetResume replaces the session's resume context.
func (s *Server) handleSetResume(w http.ResponseWriter, r *http.Request) {
	entry, err := s.sessions.Get(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	var req setResumeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid JSON body: "+err.Error())
		return
	}

	text := req.Text
	if text == "" && req.Data != "" {
		format, err := extract.ParseFormat(req.Format)
		if err != nil {
			s.errorResponse(w, http.StatusBadRequest, err.Error())
			return
		}
		data, err := base64.StdEncoding.DecodeString(req.Data)
		if err != nil {
			s.errorResponse(w, http.StatusBadRequest, "invalid base64 document data: "+err.Error())
			return
		}
		text, err = extract.Extract(data, format)
		if err != nil {
			s.errorResponse(w, HTTPStatus(err), err.Error())
			return
		}
	}
	if text == "" {
		verr := &ErrValidation{Field: "text", Message: "either text or data is required"}
		s.errorResponse(w, HTTPStatus(verr), verr.Error())
		return
	}

	entry.Store.SetResume(text)
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"status": "updated",
		"chars":  len(text),
	})
}

// generateRequest selects the document kind and its options.
type generateRequest struct {
	Kind    string            `json:"kind"`
	Options map[string]string `json:"options,omitempty"`
}

// handleGenerate runs the full generation pipeline for a session.
func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	entry, err := s.sessions.Get(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid JSON body: "+err.Error())
		return
	}
	kind, err := types.ParseKind(req.Kind)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	p := &pipeline.Pipeline{
		Store:     entry.Store,
		Builder:   s.builder,
		Generator: s.generator,
		Verbose:   s.verbose,
		Out:       io.Discard,
	}

	result, err := p.Run(r.Context(), kind, req.Options)
	if err != nil {
		response := map[string]string{"error": err.Error()}
		var staged types.StagedError
		if errors.As(err, &staged) {
			response["stage"] = string(staged.Stage())
		}
		s.jsonResponse(w, HTTPStatus(err), response)
		return
	}

	s.jsonResponse(w, http.StatusOK, result)
}

// sendRequest carries the finished document and delivery details.
type sendRequest struct {
	From        string `json:"from"`
	SenderName  string `json:"sender_name,omitempty"`
	AppPassword string `json:"app_password"`
	To          string `json:"to"`
	Text        string `json:"text"`
	Kind        string `json:"kind,omitempty"`
}

// handleSend dispatches a generated document over SMTP.
func (s *Server) handleSend(w http.ResponseWriter, r *http.Request) {
	if _, err := s.sessions.Get(r.PathValue("id")); err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	var req sendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid JSON body: "+err.Error())
		return
	}
	for field, value := range map[string]string{"from": req.From, "app_password": req.AppPassword, "to": req.To, "text": req.Text} {
		if value == "" {
			verr := &ErrValidation{Field: field, Message: "is required"}
			s.errorResponse(w, HTTPStatus(verr), verr.Error())
			return
		}
	}

	result := &types.GenerationResult{
		Kind:           types.Kind(req.Kind),
		NormalizedText: req.Text,
	}
	account := dispatch.Account{
		Address:     req.From,
		AppPassword: req.AppPassword,
		Name:        req.SenderName,
	}

	if err := dispatch.Send(r.Context(), result, account, req.To); err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "sent", "to": req.To})
}
