package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/jonathan/teammatch/internal/parsing"
	"github.com/jonathan/teammatch/internal/server/middleware"
	"github.com/jonathan/teammatch/internal/types"
	"go.uber.org/zap"
)

// maxBodyBytes bounds request bodies; candidate batches can be large.
const maxBodyBytes = 8 << 20

// ProjectSummary is the project part of a stored match.
type ProjectSummary struct {
	ID          string `json:"id"`
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
	OwnerID     string `json:"owner_id,omitempty"`
}

// MatchView pairs a match with the project it refers to.
type MatchView struct {
	types.Match
	Project ProjectSummary `json:"project"`
}

// MyMatchesResponse is the body of GET /me/matches.
type MyMatchesResponse struct {
	Matches []MatchView `json:"matches"`
	Skipped int         `json:"skipped"`
}

// validatable is implemented by every request type.
type validatable interface {
	Validate() error
}

// decode reads a JSON body into req and validates it.
func (s *Server) decode(w http.ResponseWriter, r *http.Request, req validatable) bool {
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return false
	}
	if err := req.Validate(); err != nil {
		s.errorFrom(w, validationError(err))
		return false
	}
	return true
}

func (s *Server) handleScore(w http.ResponseWriter, r *http.Request) {
	var req types.ScoreRequest
	if !s.decode(w, r, &req) {
		return
	}

	match, err := s.matcher.MatchOne(req.Profile, req.Target)
	if err != nil {
		s.errorFrom(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, match)
}

func (s *Server) handleRankTargets(w http.ResponseWriter, r *http.Request) {
	var req types.RankTargetsRequest
	if !s.decode(w, r, &req) {
		return
	}

	ranked, err := s.matcher.RankTargets(r.Context(), req.Profile, req.Targets, req.TopK)
	if err != nil {
		s.errorFrom(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, ranked)
}

func (s *Server) handleRankCandidates(w http.ResponseWriter, r *http.Request) {
	var req types.RankCandidatesRequest
	if !s.decode(w, r, &req) {
		return
	}

	ranked, err := s.matcher.RankCandidates(r.Context(), req.Candidates, req.Target, req.TopK)
	if err != nil {
		s.errorFrom(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, ranked)
}

func (s *Server) handleExtractSkills(w http.ResponseWriter, r *http.Request) {
	var req types.ExtractSkillsRequest
	if !s.decode(w, r, &req) {
		return
	}

	byCategory := parsing.ExtractSkills(req.Text)
	s.jsonResponse(w, http.StatusOK, types.ExtractSkillsResponse{
		SkillsByCategory: byCategory,
		AllSkills:        nonNil(parsing.FlattenSkills(byCategory)),
		Roles:            nonNil(parsing.ExtractRoles(req.Text)),
	})
}

// handleMyMatches ranks the projects the caller has not yet decided on.
func (s *Server) handleMyMatches(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	topK, err := queryTopK(r)
	if err != nil {
		s.errorFrom(w, err)
		return
	}

	ctx := r.Context()
	profile, err := s.store.GetProfile(ctx, userID)
	if err != nil {
		s.errorFrom(w, fmt.Errorf("load profile: %w", err))
		return
	}
	if profile == nil {
		s.errorFrom(w, &ErrNotFound{Resource: "profile", ID: userID.String()})
		return
	}
	targets, err := s.store.ListEligibleTargets(ctx, userID)
	if err != nil {
		s.errorFrom(w, fmt.Errorf("list projects: %w", err))
		return
	}

	s.persistProfileEmbedding(ctx, userID, profile)
	byID := make(map[string]*types.Target, len(targets))
	for _, t := range targets {
		s.persistTargetEmbedding(ctx, t)
		byID[t.ID] = t
	}

	ranked, err := s.matcher.RankTargets(ctx, profile, targets, topK)
	if err != nil {
		s.errorFrom(w, err)
		return
	}

	resp := MyMatchesResponse{Matches: make([]MatchView, 0, len(ranked.Matches)), Skipped: ranked.Skipped}
	for _, m := range ranked.Matches {
		view := MatchView{Match: m, Project: ProjectSummary{ID: m.TargetID}}
		if t, ok := byID[m.TargetID]; ok {
			view.Project = ProjectSummary{ID: t.ID, Title: t.Title, Description: t.Description, OwnerID: t.OwnerID}
		}
		resp.Matches = append(resp.Matches, view)
	}
	s.jsonResponse(w, http.StatusOK, resp)
}

// handleProjectCandidates ranks users for a project owned by the caller.
func (s *Server) handleProjectCandidates(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	topK, err := queryTopK(r)
	if err != nil {
		s.errorFrom(w, err)
		return
	}

	ctx := r.Context()
	projectID, target, err := s.loadTarget(ctx, r.PathValue("id"))
	if err != nil {
		s.errorFrom(w, err)
		return
	}
	if target.OwnerID != userID.String() {
		s.errorFrom(w, &ErrForbidden{Reason: "only the project owner can list candidates"})
		return
	}

	candidates, err := s.store.ListCandidateProfiles(ctx, projectID)
	if err != nil {
		s.errorFrom(w, fmt.Errorf("list candidates: %w", err))
		return
	}
	s.persistTargetEmbedding(ctx, target)
	for _, p := range candidates {
		if id, perr := uuid.Parse(p.ID); perr == nil {
			s.persistProfileEmbedding(ctx, id, p)
		}
	}

	ranked, err := s.matcher.RankCandidates(ctx, candidates, target, topK)
	if err != nil {
		s.errorFrom(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, ranked)
}

// handleDecision records the caller's match/pass action on a project.
func (s *Server) handleDecision(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	var req types.DecisionRequest
	if !s.decode(w, r, &req) {
		return
	}

	ctx := r.Context()
	projectID, target, err := s.loadTarget(ctx, r.PathValue("id"))
	if err != nil {
		s.errorFrom(w, err)
		return
	}
	if target.OwnerID == userID.String() {
		s.errorFrom(w, &ErrValidation{Field: "project_id", Message: "cannot decide on your own project"})
		return
	}

	decision := types.Decision{UserID: userID.String(), ProjectID: projectID.String(), Action: req.Action}
	if err := s.store.RecordDecision(ctx, decision); err != nil {
		s.errorFrom(w, fmt.Errorf("record decision: %w", err))
		return
	}
	s.jsonResponse(w, http.StatusOK, decision)
}

// loadTarget parses a project ID from the route and fetches it.
func (s *Server) loadTarget(ctx context.Context, raw string) (uuid.UUID, *types.Target, error) {
	projectID, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, nil, &ErrValidation{Field: "id", Message: "must be a UUID"}
	}
	target, err := s.store.GetTarget(ctx, projectID)
	if err != nil {
		return uuid.Nil, nil, fmt.Errorf("load project: %w", err)
	}
	if target == nil {
		return uuid.Nil, nil, &ErrNotFound{Resource: "project", ID: raw}
	}
	return projectID, target, nil
}

// persistProfileEmbedding computes and stores a missing profile embedding.
// Failures are logged; ranking falls back to the filler vector.
func (s *Server) persistProfileEmbedding(ctx context.Context, id uuid.UUID, p *types.Profile) {
	if len(p.Embedding) > 0 {
		return
	}
	vec, err := s.matcher.Embed(p)
	if err != nil {
		s.logger.Warn("profile embedding unavailable", zap.String("user_id", p.ID), zap.Error(err))
		return
	}
	p.Embedding = vec
	if err := s.store.SaveProfileEmbedding(ctx, id, vec); err != nil {
		s.logger.Warn("failed to save profile embedding", zap.String("user_id", p.ID), zap.Error(err))
	}
}

// persistTargetEmbedding computes and stores a missing project embedding.
func (s *Server) persistTargetEmbedding(ctx context.Context, t *types.Target) {
	if len(t.Embedding) > 0 {
		return
	}
	id, err := uuid.Parse(t.ID)
	if err != nil {
		return
	}
	vec, err := s.matcher.Embed(t)
	if err != nil {
		s.logger.Warn("project embedding unavailable", zap.String("project_id", t.ID), zap.Error(err))
		return
	}
	t.Embedding = vec
	if err := s.store.SaveTargetEmbedding(ctx, id, vec); err != nil {
		s.logger.Warn("failed to save project embedding", zap.String("project_id", t.ID), zap.Error(err))
	}
}

// queryTopK reads the optional top_k query parameter; zero means the default.
func queryTopK(r *http.Request) (int, error) {
	raw := r.URL.Query().Get("top_k")
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 || n > 200 {
		return 0, &ErrValidation{Field: "top_k", Message: "must be an integer between 0 and 200"}
	}
	return n, nil
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
