package handlers

import (
	"context"
	"net/http"

	"github.com/club28/backend/internal/models"
	"github.com/club28/backend/internal/services"
)

type TournamentManager interface {
	Create(ctx context.Context, req *models.TournamentRequest) (*models.Tournament, error)
	Edit(ctx context.Context, id int64, req *models.TournamentRequest) (*models.Tournament, error)
	Delete(ctx context.Context, id int64) error
	Get(ctx context.Context, id int64) (*models.Tournament, error)
	List(ctx context.Context, city string) ([]models.Tournament, error)
}

type StandingsReader interface {
	Standings(ctx context.Context, tournamentID int64, city, category string) ([]services.Standing, error)
}

type TournamentLedger interface {
	TournamentTransactions(ctx context.Context, tournamentID int64, name string) ([]models.Transaction, error)
}

type TournamentHandler struct {
	tournaments TournamentManager
	standings   StandingsReader
	ledger      TournamentLedger
	validator   *services.ValidationHelper
}

func NewTournamentHandler(tournaments TournamentManager, standings StandingsReader, ledger TournamentLedger) *TournamentHandler {
	return &TournamentHandler{
		tournaments: tournaments,
		standings:   standings,
		ledger:      ledger,
		validator:   services.NewValidationHelper(),
	}
}

// List returns tournaments
// @Summary List tournaments
// @Tags Tournaments
// @Produce json
// @Param city query string false "City filter"
// @Success 200 {array} models.Tournament
// @Router /tournaments [get]
func (h *TournamentHandler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.tournaments.List(r.Context(), r.URL.Query().Get("city"))
	if err != nil {
		services.WriteAppError(w, err)
		return
	}
	services.WriteJSON(w, http.StatusOK, list)
}

// Get returns a tournament with its pricing tiers
// @Summary Get tournament
// @Tags Tournaments
// @Produce json
// @Param id path int true "Tournament ID"
// @Success 200 {object} models.Tournament
// @Failure 404 {object} services.ErrorResponse
// @Router /tournaments/{id} [get]
func (h *TournamentHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	t, err := h.tournaments.Get(r.Context(), id)
	if err != nil {
		services.WriteAppError(w, err)
		return
	}
	services.WriteJSON(w, http.StatusOK, t)
}

// Standings returns the points table
// @Summary Get standings
// @Description Ranked by points (3 per win); ties keep registration order
// @Tags Tournaments
// @Produce json
// @Param id path int true "Tournament ID"
// @Param city query string false "City"
// @Param category query string false "Category"
// @Success 200 {array} services.Standing
// @Router /tournaments/{id}/standings [get]
func (h *TournamentHandler) Standings(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	q := r.URL.Query()
	rows, err := h.standings.Standings(r.Context(), id, q.Get("city"), q.Get("category"))
	if err != nil {
		services.WriteAppError(w, err)
		return
	}
	services.WriteJSON(w, http.StatusOK, rows)
}

// Create adds a tournament
// @Summary Create tournament
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.TournamentRequest true "Tournament"
// @Success 201 {object} models.Tournament
// @Failure 400 {object} services.ErrorResponse
// @Failure 409 {object} services.ErrorResponse
// @Router /admin/tournaments [post]
func (h *TournamentHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.TournamentRequest
	if !decodeJSON(w, r, h.validator, &req) {
		return
	}
	t, err := h.tournaments.Create(r.Context(), &req)
	if err != nil {
		services.WriteAppError(w, err)
		return
	}
	services.WriteJSON(w, http.StatusCreated, t)
}

// Edit replaces a tournament's settings and pricing tiers
// @Summary Edit tournament
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Tournament ID"
// @Param request body models.TournamentRequest true "Tournament"
// @Success 200 {object} models.Tournament
// @Failure 400 {object} services.ErrorResponse
// @Failure 409 {object} services.ErrorResponse
// @Router /admin/tournaments/{id} [put]
func (h *TournamentHandler) Edit(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req models.TournamentRequest
	if !decodeJSON(w, r, h.validator, &req) {
		return
	}
	t, err := h.tournaments.Edit(r.Context(), id, &req)
	if err != nil {
		services.WriteAppError(w, err)
		return
	}
	services.WriteJSON(w, http.StatusOK, t)
}

// Delete removes a tournament and archives its ledger lines
// @Summary Delete tournament
// @Tags Admin
// @Security BearerAuth
// @Param id path int true "Tournament ID"
// @Success 204
// @Failure 404 {object} services.ErrorResponse
// @Router /admin/tournaments/{id} [delete]
func (h *TournamentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	if err := h.tournaments.Delete(r.Context(), id); err != nil {
		services.WriteAppError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Transactions lists the live ledger lines of a tournament
// @Summary Tournament transactions
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "Tournament ID"
// @Success 200 {array} models.Transaction
// @Failure 404 {object} services.ErrorResponse
// @Router /admin/tournaments/{id}/transactions [get]
func (h *TournamentHandler) Transactions(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	t, err := h.tournaments.Get(r.Context(), id)
	if err != nil {
		services.WriteAppError(w, err)
		return
	}
	txs, err := h.ledger.TournamentTransactions(r.Context(), t.ID, t.Name)
	if err != nil {
		services.WriteAppError(w, err)
		return
	}
	services.WriteJSON(w, http.StatusOK, txs)
}
