package handlers

import (
	"context"
	"net/http"

	"github.com/club28/backend/internal/models"
	"github.com/club28/backend/internal/services"
)

type MatchManager interface {
	SubmitScore(ctx context.Context, matchID int64, score, teamCode string) (*models.Match, error)
	Verify(ctx context.Context, matchID int64, action models.VerifyAction, verifierCode string) (*models.Match, error)
	AdminVerify(ctx context.Context, matchID int64, action models.VerifyAction) (*models.Match, error)
	AdminEditMatch(ctx context.Context, matchID int64, req *models.EditMatchRequest) (*models.Match, error)
	AdminCreateMatch(ctx context.Context, req *models.CreateMatchRequest) (*models.Match, error)
	AdminDeleteMatch(ctx context.Context, matchID int64) error
	Get(ctx context.Context, matchID int64) (*models.Match, error)
	List(ctx context.Context, tournamentID int64, category string) ([]models.Match, error)
}

type MatchHandler struct {
	service   MatchManager
	validator *services.ValidationHelper
}

func NewMatchHandler(service MatchManager) *MatchHandler {
	return &MatchHandler{
		service:   service,
		validator: services.NewValidationHelper(),
	}
}

type SubmitScoreRequest struct {
	Score string `json:"score" validate:"required,max=60"`
}

type VerifyRequest struct {
	Action models.VerifyAction `json:"action" validate:"required,oneof=APPROVE REJECT"`
}

// SubmitScore reports a result
// @Summary Submit match score
// @Description A participant submits the score; the opponents must verify it
// @Tags Matches
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Match ID"
// @Param request body SubmitScoreRequest true "Score such as 21-15,18-21,21-19"
// @Success 200 {object} models.Match
// @Failure 400 {object} services.ErrorResponse
// @Failure 409 {object} services.ErrorResponse
// @Router /matches/{id}/score [post]
func (h *MatchHandler) SubmitScore(w http.ResponseWriter, r *http.Request) {
	claims, ok := playerClaims(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req SubmitScoreRequest
	if !decodeJSON(w, r, h.validator, &req) {
		return
	}

	m, err := h.service.SubmitScore(r.Context(), id, req.Score, claims.TeamCode)
	if err != nil {
		services.WriteAppError(w, err)
		return
	}
	services.WriteJSON(w, http.StatusOK, m)
}

// Verify approves or rejects a submitted score
// @Summary Verify match score
// @Description An opponent approves (Official, prizes paid) or rejects (Disputed) the submitted score
// @Tags Matches
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Match ID"
// @Param request body VerifyRequest true "APPROVE or REJECT"
// @Success 200 {object} models.Match
// @Failure 400 {object} services.ErrorResponse
// @Failure 403 {object} services.ErrorResponse
// @Failure 409 {object} services.ErrorResponse
// @Router /matches/{id}/verify [post]
func (h *MatchHandler) Verify(w http.ResponseWriter, r *http.Request) {
	claims, ok := playerClaims(w, r)
	if !ok {
		return
	}
	h.verify(w, r, func(ctx context.Context, id int64, action models.VerifyAction) (*models.Match, error) {
		return h.service.Verify(ctx, id, action, claims.TeamCode)
	})
}

// AdminVerify settles a disputed or pending score without an opponent.
// @Summary Admin verify match score
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Match ID"
// @Param request body VerifyRequest true "APPROVE or REJECT"
// @Success 200 {object} models.Match
// @Failure 409 {object} services.ErrorResponse
// @Router /admin/matches/{id}/verify [post]
func (h *MatchHandler) AdminVerify(w http.ResponseWriter, r *http.Request) {
	h.verify(w, r, h.service.AdminVerify)
}

func (h *MatchHandler) verify(w http.ResponseWriter, r *http.Request, decide func(ctx context.Context, id int64, action models.VerifyAction) (*models.Match, error)) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req VerifyRequest
	if !decodeJSON(w, r, h.validator, &req) {
		return
	}

	m, err := decide(r.Context(), id, req.Action)
	if err != nil {
		services.WriteAppError(w, err)
		return
	}
	services.WriteJSON(w, http.StatusOK, m)
}

// Get returns one match
// @Summary Get match
// @Tags Matches
// @Produce json
// @Param id path int true "Match ID"
// @Success 200 {object} models.Match
// @Failure 404 {object} services.ErrorResponse
// @Router /matches/{id} [get]
func (h *MatchHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	m, err := h.service.Get(r.Context(), id)
	if err != nil {
		services.WriteAppError(w, err)
		return
	}
	services.WriteJSON(w, http.StatusOK, m)
}

// List returns a tournament's fixtures
// @Summary List matches
// @Tags Matches
// @Produce json
// @Param id path int true "Tournament ID"
// @Param category query string false "Category filter"
// @Success 200 {array} models.Match
// @Router /tournaments/{id}/matches [get]
func (h *MatchHandler) List(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	matches, err := h.service.List(r.Context(), id, r.URL.Query().Get("category"))
	if err != nil {
		services.WriteAppError(w, err)
		return
	}
	services.WriteJSON(w, http.StatusOK, matches)
}

// AdminCreateMatch schedules a fixture
// @Summary Create match
// @Description Sides are labels naming team codes in brackets, e.g. "Arjun (AR01) & Priya (PR22)"
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.CreateMatchRequest true "Fixture"
// @Success 201 {object} models.Match
// @Failure 400 {object} services.ErrorResponse
// @Router /admin/matches [post]
func (h *MatchHandler) AdminCreateMatch(w http.ResponseWriter, r *http.Request) {
	var req models.CreateMatchRequest
	if !decodeJSON(w, r, h.validator, &req) {
		return
	}
	m, err := h.service.AdminCreateMatch(r.Context(), &req)
	if err != nil {
		services.WriteAppError(w, err)
		return
	}
	services.WriteJSON(w, http.StatusCreated, m)
}

// AdminEditMatch overrides sides, schedule or score
// @Summary Edit match
// @Description A score set by an admin makes the match Official immediately
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Match ID"
// @Param request body models.EditMatchRequest true "Changes"
// @Success 200 {object} models.Match
// @Failure 400 {object} services.ErrorResponse
// @Failure 404 {object} services.ErrorResponse
// @Router /admin/matches/{id} [put]
func (h *MatchHandler) AdminEditMatch(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req models.EditMatchRequest
	if !decodeJSON(w, r, h.validator, &req) {
		return
	}
	m, err := h.service.AdminEditMatch(r.Context(), id, &req)
	if err != nil {
		services.WriteAppError(w, err)
		return
	}
	services.WriteJSON(w, http.StatusOK, m)
}

// AdminDeleteMatch removes a fixture
// @Summary Delete match
// @Tags Admin
// @Security BearerAuth
// @Param id path int true "Match ID"
// @Success 204
// @Failure 404 {object} services.ErrorResponse
// @Router /admin/matches/{id} [delete]
func (h *MatchHandler) AdminDeleteMatch(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	if err := h.service.AdminDeleteMatch(r.Context(), id); err != nil {
		services.WriteAppError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
