package server

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/vanshika/socialgraph/internal/domain"
	"github.com/vanshika/socialgraph/internal/render"
	"github.com/vanshika/socialgraph/internal/service"
	"github.com/vanshika/socialgraph/internal/socialgraph"
)

// APIHandlers exposes HTTP handlers for the REST API.
type APIHandlers struct {
	logger  *slog.Logger
	service *service.GraphService
	batch   *service.BatchPathFinder
}

// NewAPIHandlers constructs an APIHandlers instance.
func NewAPIHandlers(logger *slog.Logger, svc *service.GraphService, batch *service.BatchPathFinder) *APIHandlers {
	return &APIHandlers{
		logger:  logger.With("component", "api"),
		service: svc,
		batch:   batch,
	}
}

func (h *APIHandlers) getGraph(w http.ResponseWriter, r *http.Request) {
	snapshot, stats, err := h.service.Overview(r.Context())
	if err != nil {
		h.respondServiceError(w, err, "failed to read graph")
		return
	}
	respondJSON(w, http.StatusOK, graphResponse{
		Nodes: snapshot.Nodes,
		Edges: snapshot.Edges,
		Stats: stats,
	})
}

func (h *APIHandlers) getGraphDOT(w http.ResponseWriter, r *http.Request) {
	opts := render.DefaultOptions()

	query := r.URL.Query()
	source, target := query.Get("source"), query.Get("target")
	if source != "" || target != "" {
		path, err := h.service.ShortestPath(r.Context(), source, target)
		if err != nil {
			h.respondServiceError(w, err, "failed to compute path")
			return
		}
		opts.Highlight = path.Nodes
	}

	snapshot, err := h.service.Snapshot(r.Context())
	if err != nil {
		h.respondServiceError(w, err, "failed to read graph")
		return
	}
	w.Header().Set("Content-Type", "text/vnd.graphviz; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if err := render.DOT(w, snapshot, opts); err != nil {
		h.logger.Error("failed to write dot output", "error", err)
	}
}

func (h *APIHandlers) listUsers(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	result, err := h.service.ListUsers(r.Context(), service.ListUsersParams{
		Page:     parseInt(query.Get("page"), 1),
		PageSize: parseInt(query.Get("pageSize"), 50),
		Search:   query.Get("search"),
	})
	if err != nil {
		h.respondServiceError(w, err, "failed to list users")
		return
	}
	respondJSON(w, http.StatusOK, result)
}

func (h *APIHandlers) createUser(w http.ResponseWriter, r *http.Request) {
	var payload userRequest
	if !h.decodeAndValidate(w, r, &payload) {
		return
	}

	conns := make([]service.UserConnection, 0, len(payload.Connections))
	for _, c := range payload.Connections {
		weight, err := socialgraph.ParseWeight(c.Weight.String())
		if err != nil {
			h.respondServiceError(w, err, "failed to connect user")
			return
		}
		conns = append(conns, service.UserConnection{Target: c.Target, Weight: weight})
	}

	result, err := h.service.AddUserWithConnections(r.Context(), payload.ID, conns)
	if err != nil {
		h.respondServiceError(w, err, "failed to add user")
		return
	}

	status := http.StatusOK
	if result.Created {
		status = http.StatusCreated
	}
	respondJSON(w, status, userResponse{
		ID:          result.ID,
		Created:     result.Created,
		ConnectedTo: result.ConnectedTo,
	})
}

func (h *APIHandlers) deleteUser(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.service.RemoveUser(r.Context(), id); err != nil {
		h.respondServiceError(w, err, "failed to remove user")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *APIHandlers) getNeighbors(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	neighbors, err := h.service.Neighbors(r.Context(), id)
	if err != nil {
		h.respondServiceError(w, err, "failed to fetch neighbors")
		return
	}
	respondJSON(w, http.StatusOK, neighborsResponse{User: id, Neighbors: neighbors})
}

func (h *APIHandlers) getSuggestions(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	suggestions, err := h.service.SuggestFriends(r.Context(), id)
	if err != nil {
		h.respondServiceError(w, err, "failed to suggest friends")
		return
	}
	if suggestions == nil {
		suggestions = []domain.Suggestion{}
	}
	respondJSON(w, http.StatusOK, suggestionsResponse{User: id, Suggestions: suggestions})
}

func (h *APIHandlers) createConnection(w http.ResponseWriter, r *http.Request) {
	var payload connectionRequest
	if !h.decodeAndValidate(w, r, &payload) {
		return
	}
	weight, err := socialgraph.ParseWeight(payload.Weight.String())
	if err != nil {
		h.respondServiceError(w, err, "failed to add connection")
		return
	}

	input := service.ConnectionInput{Source: payload.Source, Target: payload.Target, Weight: weight}
	if err := h.service.Connect(r.Context(), input); err != nil {
		h.respondServiceError(w, err, "failed to add connection")
		return
	}
	source, _ := socialgraph.NormalizeID(payload.Source)
	target, _ := socialgraph.NormalizeID(payload.Target)
	respondJSON(w, http.StatusCreated, domain.Edge{Source: source, Target: target, Weight: weight})
}

func (h *APIHandlers) deleteConnection(w http.ResponseWriter, r *http.Request) {
	source, target := chi.URLParam(r, "source"), chi.URLParam(r, "target")
	if err := h.service.Disconnect(r.Context(), source, target); err != nil {
		h.respondServiceError(w, err, "failed to remove connection")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *APIHandlers) getShortestPath(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	source, target := query.Get("source"), query.Get("target")
	if source == "" || target == "" {
		writeError(w, http.StatusBadRequest, "source and target are required")
		return
	}

	path, err := h.service.ShortestPath(r.Context(), source, target)
	if err != nil {
		h.respondServiceError(w, err, "failed to compute path")
		return
	}
	respondJSON(w, http.StatusOK, pathResponse{Path: path, Hops: path.Hops()})
}

func (h *APIHandlers) batchShortestPaths(w http.ResponseWriter, r *http.Request) {
	var payload batchPathRequest
	if !h.decodeAndValidate(w, r, &payload) {
		return
	}

	outcomes, err := h.batch.FindPaths(r.Context(), payload.Pairs)
	if err != nil {
		h.respondServiceError(w, err, "failed to compute paths")
		return
	}

	resp := batchPathResponse{Results: outcomes}
	for _, out := range outcomes {
		if out.Path != nil {
			resp.Found++
		}
	}
	respondJSON(w, http.StatusOK, resp)
}

func (h *APIHandlers) getCommunities(w http.ResponseWriter, r *http.Request) {
	communities, err := h.service.Communities(r.Context())
	if err != nil {
		h.respondServiceError(w, err, "failed to find communities")
		return
	}
	if communities == nil {
		communities = []domain.Community{}
	}
	respondJSON(w, http.StatusOK, communitiesResponse{Count: len(communities), Communities: communities})
}

func (h *APIHandlers) getCentrality(w http.ResponseWriter, r *http.Request) {
	ranking, err := h.service.Centrality(r.Context())
	if err != nil {
		h.respondServiceError(w, err, "failed to rank centrality")
		return
	}
	if ranking == nil {
		ranking = []domain.CentralityScore{}
	}
	respondJSON(w, http.StatusOK, centralityResponse{Ranking: ranking})
}

func (h *APIHandlers) saveSnapshot(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Save(r.Context()); err != nil {
		h.respondServiceError(w, err, "failed to save snapshot")
		return
	}
	stats, err := h.service.Stats(r.Context())
	if err != nil {
		h.respondServiceError(w, err, "failed to save snapshot")
		return
	}
	respondJSON(w, http.StatusOK, snapshotResponse{
		Status: "saved",
		Store:  h.service.StoreName(),
		Stats:  stats,
	})
}

// respondServiceError maps domain errors to HTTP status codes. Unexpected
// failures are logged and reported with a generic message.
func (h *APIHandlers) respondServiceError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, socialgraph.ErrNodeNotFound),
		errors.Is(err, socialgraph.ErrNodesMissing),
		errors.Is(err, socialgraph.ErrEdgeNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, socialgraph.ErrInvalidWeight),
		errors.Is(err, socialgraph.ErrDuplicateID),
		errors.Is(err, socialgraph.ErrSelfConnection),
		errors.Is(err, socialgraph.ErrEmptyID),
		errors.Is(err, service.ErrBatchTooLarge):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, socialgraph.ErrNoPath):
		writeError(w, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		writeError(w, http.StatusServiceUnavailable, "request cancelled")
	default:
		h.logger.Error(fallback, "error", err)
		writeError(w, http.StatusInternalServerError, fallback)
	}
}

func (h *APIHandlers) decodeAndValidate(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := decodeJSON(r, dst); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return false
	}
	if err := validateStruct(dst); err != nil {
		writeError(w, http.StatusBadRequest, "validation error: "+err.Error())
		return false
	}
	return true
}

// --- Request & Response DTOs ---

type userRequest struct {
	ID          string              `json:"id" validate:"required"`
	Connections []initialConnection `json:"connections" validate:"dive"`
}

type initialConnection struct {
	Target string      `json:"target" validate:"required"`
	Weight json.Number `json:"weight" validate:"required"`
}

type connectionRequest struct {
	Source string      `json:"source" validate:"required"`
	Target string      `json:"target" validate:"required,nefield=Source"`
	Weight json.Number `json:"weight" validate:"required"`
}

type batchPathRequest struct {
	Pairs []domain.PathRequest `json:"pairs" validate:"required,min=1,dive"`
}

type userResponse struct {
	ID          string   `json:"id"`
	Created     bool     `json:"created"`
	ConnectedTo []string `json:"connectedTo,omitempty"`
}

type graphResponse struct {
	Nodes []string          `json:"nodes"`
	Edges []domain.Edge     `json:"edges"`
	Stats domain.GraphStats `json:"stats"`
}

type neighborsResponse struct {
	User      string            `json:"user"`
	Neighbors []domain.Neighbor `json:"neighbors"`
}

type suggestionsResponse struct {
	User        string              `json:"user"`
	Suggestions []domain.Suggestion `json:"suggestions"`
}

type pathResponse struct {
	domain.Path
	Hops int `json:"hops"`
}

type batchPathResponse struct {
	Found   int                  `json:"found"`
	Results []domain.PathOutcome `json:"results"`
}

type communitiesResponse struct {
	Count       int                `json:"count"`
	Communities []domain.Community `json:"communities"`
}

type centralityResponse struct {
	Ranking []domain.CentralityScore `json:"ranking"`
}

type snapshotResponse struct {
	Status string            `json:"status"`
	Store  string            `json:"store"`
	Stats  domain.GraphStats `json:"stats"`
}

func decodeJSON(r *http.Request, dst any) error {
	if r.Body == nil {
		return errors.New("request body is required")
	}
	defer r.Body.Close()

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	decoder.UseNumber()
	if err := decoder.Decode(dst); err != nil {
		return err
	}
	return nil
}

func parseInt(value string, fallback int) int {
	if value == "" {
		return fallback
	}
	if v, err := strconv.Atoi(value); err == nil {
		return v
	}
	return fallback
}

func writeError(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, map[string]string{
		"error": msg,
	})
}
