package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/TwigBush/authz-go/internal/httpx"
	"github.com/TwigBush/authz-go/internal/notes"
	"github.com/TwigBush/authz-go/mw"
)

type NotesHandler struct {
	Store   *notes.Store
	Subject mw.SubjectFunc
}

func NewNotesHandler(store *notes.Store, subject mw.SubjectFunc) *NotesHandler {
	return &NotesHandler{Store: store, Subject: subject}
}

type noteRequest struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

func (h *NotesHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req noteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if req.Title == "" {
		httpx.WriteError(w, http.StatusBadRequest, "missing title")
		return
	}

	n := h.Store.Create(h.Subject(r), req.Title, req.Body)
	httpx.WriteJSON(w, http.StatusCreated, n)
}

func (h *NotesHandler) Get(w http.ResponseWriter, r *http.Request) {
	n, ok := h.Store.Get(chi.URLParam(r, "id"))
	if !ok {
		httpx.WriteError(w, http.StatusNotFound, "no such note")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, n)
}

func (h *NotesHandler) List(w http.ResponseWriter, r *http.Request) {
	httpx.WriteJSON(w, http.StatusOK, h.Store.List())
}

func (h *NotesHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req noteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	n, ok := h.Store.Update(chi.URLParam(r, "id"), req.Title, req.Body)
	if !ok {
		httpx.WriteError(w, http.StatusNotFound, "no such note")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, n)
}

func (h *NotesHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if !h.Store.Delete(chi.URLParam(r, "id")) {
		httpx.WriteError(w, http.StatusNotFound, "no such note")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
