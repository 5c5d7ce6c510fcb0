package http

import (
	"net/http"

	"contas/internal/core"
)

func (s *Server) handleListCategories(w http.ResponseWriter, r *http.Request) {
	accountID, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	categories, err := s.svc.Categories.ListCategories(r.Context(), accountID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	out := make([]categoryResponse, 0, len(categories))
	for _, c := range categories {
		out = append(out, toCategoryResponse(c))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleCreateCategory(w http.ResponseWriter, r *http.Request) {
	accountID, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	var payload categoryPayload
	if err := decodeJSON(w, r, &payload); err != nil {
		writeError(w, r, err)
		return
	}
	created, err := s.svc.Categories.CreateCategory(r.Context(), core.Category{
		AccountID: accountID,
		Name:      sanitizeInput(payload.Name),
		Color:     sanitizeInput(payload.Color),
		Icon:      sanitizeInput(payload.Icon),
		Type:      payload.Type,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toCategoryResponse(created))
}

func (s *Server) handleUpdateCategory(w http.ResponseWriter, r *http.Request) {
	accountID, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	categoryID, err := pathID(r, "categoryId")
	if err != nil {
		writeError(w, r, err)
		return
	}
	var payload categoryPayload
	if err := decodeJSON(w, r, &payload); err != nil {
		writeError(w, r, err)
		return
	}
	// Type is immutable; the service keeps the stored one.
	updated := core.Category{
		ID:        categoryID,
		AccountID: accountID,
		Name:      sanitizeInput(payload.Name),
		Color:     sanitizeInput(payload.Color),
		Icon:      sanitizeInput(payload.Icon),
		Type:      payload.Type,
	}
	if err := s.svc.Categories.UpdateCategory(r.Context(), updated); err != nil {
		writeError(w, r, err)
		return
	}
	// Re-read so the response reflects the immutable fields the
	// service pinned, not what the payload claimed.
	categories, err := s.svc.Categories.ListCategories(r.Context(), accountID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	for _, c := range categories {
		if c.ID == categoryID {
			updated = c
			break
		}
	}
	writeJSON(w, http.StatusOK, toCategoryResponse(updated))
}

func (s *Server) handleDeleteCategory(w http.ResponseWriter, r *http.Request) {
	accountID, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	categoryID, err := pathID(r, "categoryId")
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := s.svc.Categories.DeleteCategory(r.Context(), categoryID); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, deletedResponse{AccountID: accountID, Deleted: true})
}
