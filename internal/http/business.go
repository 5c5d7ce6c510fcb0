package http

import (
	"net/http"

	"contas/internal/core"
)

func (s *Server) handleListProjects(w http.ResponseWriter, r *http.Request) {
	accountID, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	projects, err := s.svc.Business.ListProjects(r.Context(), accountID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	out := make([]projectResponse, 0, len(projects))
	for _, p := range projects {
		out = append(out, projectResponse{ID: p.ID, AccountID: p.AccountID, Name: p.Name, ClientID: p.ClientID})
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleCreateProject(w http.ResponseWriter, r *http.Request) {
	accountID, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	var payload projectPayload
	if err := decodeJSON(w, r, &payload); err != nil {
		writeError(w, r, err)
		return
	}
	created, err := s.svc.Business.CreateProject(r.Context(), core.Project{
		AccountID: accountID,
		Name:      sanitizeInput(payload.Name),
		ClientID:  payload.ClientID,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, projectResponse{
		ID: created.ID, AccountID: created.AccountID, Name: created.Name, ClientID: created.ClientID,
	})
}

func (s *Server) handleDeleteProject(w http.ResponseWriter, r *http.Request) {
	accountID, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	projectID, err := pathID(r, "projectId")
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := s.svc.Business.DeleteProject(r.Context(), projectID); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, deletedResponse{AccountID: accountID, Deleted: true})
}

func (s *Server) handleListCostCenters(w http.ResponseWriter, r *http.Request) {
	accountID, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	centers, err := s.svc.Business.ListCostCenters(r.Context(), accountID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	out := make([]costCenterResponse, 0, len(centers))
	for _, c := range centers {
		out = append(out, costCenterResponse{ID: c.ID, AccountID: c.AccountID, Name: c.Name})
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleCreateCostCenter(w http.ResponseWriter, r *http.Request) {
	accountID, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	var payload costCenterPayload
	if err := decodeJSON(w, r, &payload); err != nil {
		writeError(w, r, err)
		return
	}
	created, err := s.svc.Business.CreateCostCenter(r.Context(), core.CostCenter{
		AccountID: accountID,
		Name:      sanitizeInput(payload.Name),
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, costCenterResponse{ID: created.ID, AccountID: created.AccountID, Name: created.Name})
}

func (s *Server) handleDeleteCostCenter(w http.ResponseWriter, r *http.Request) {
	accountID, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	centerID, err := pathID(r, "costCenterId")
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := s.svc.Business.DeleteCostCenter(r.Context(), centerID); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, deletedResponse{AccountID: accountID, Deleted: true})
}

func (s *Server) handleListClients(w http.ResponseWriter, r *http.Request) {
	accountID, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	clients, err := s.svc.Business.ListClients(r.Context(), accountID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	out := make([]clientResponse, 0, len(clients))
	for _, c := range clients {
		out = append(out, clientResponse{ID: c.ID, AccountID: c.AccountID, Name: c.Name, Email: c.Email})
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleCreateClient(w http.ResponseWriter, r *http.Request) {
	accountID, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	var payload clientPayload
	if err := decodeJSON(w, r, &payload); err != nil {
		writeError(w, r, err)
		return
	}
	created, err := s.svc.Business.CreateClient(r.Context(), core.Client{
		AccountID: accountID,
		Name:      sanitizeInput(payload.Name),
		Email:     sanitizeInput(payload.Email),
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, clientResponse{ID: created.ID, AccountID: created.AccountID, Name: created.Name, Email: created.Email})
}

func (s *Server) handleDeleteClient(w http.ResponseWriter, r *http.Request) {
	accountID, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	clientID, err := pathID(r, "clientId")
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := s.svc.Business.DeleteClient(r.Context(), clientID); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, deletedResponse{AccountID: accountID, Deleted: true})
}
