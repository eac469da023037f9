package handlers

import (
	"context"
	"net/http"

	"github.com/club28/backend/internal/models"
	"github.com/go-chi/chi/v5"
	"github.com/club28/backend/internal/services"
)

type Registrar interface {
	Join(ctx context.Context, phone string, req *models.JoinRequest) (*services.JoinResult, error)
	ConfirmPartner(ctx context.Context, callerAccountID, registrationID int64, paymentMode string) (*services.JoinResult, error)
	AdminRegister(ctx context.Context, req *models.AdminRegisterRequest) (*models.Registration, error)
	Profile(ctx context.Context, phone string) (*models.PlayerProfile, error)
	Players(ctx context.Context) ([]models.Account, error)
	TournamentPlayers(ctx context.Context, name, city string) ([]models.PlayerEntry, error)
}

type RegistrationHandler struct {
	service   Registrar
	validator *services.ValidationHelper
}

func NewRegistrationHandler(service Registrar) *RegistrationHandler {
	return &RegistrationHandler{
		service:   service,
		validator: services.NewValidationHelper(),
	}
}

// ConfirmPartnerRequest is the invitee's payment choice.
type ConfirmPartnerRequest struct {
	PaymentMode string `json:"paymentMode" validate:"required,oneof=WALLET UPI CASH"`
}

// Join registers the caller for a tournament category
// @Summary Join tournament
// @Description Register the verified caller (and optionally a doubles partner) for a tournament category
// @Tags Registrations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.JoinRequest true "Join request"
// @Success 201 {object} services.JoinResult
// @Failure 400 {object} services.ErrorResponse
// @Failure 402 {object} services.ErrorResponse
// @Failure 409 {object} services.ErrorResponse
// @Router /registrations/join [post]
func (h *RegistrationHandler) Join(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsOrUnauthorized(w, r)
	if !ok {
		return
	}

	var req models.JoinRequest
	if !decodeJSON(w, r, h.validator, &req) {
		return
	}

	result, err := h.service.Join(r.Context(), claims.Phone, &req)
	if err != nil {
		services.WriteAppError(w, err)
		return
	}
	services.WriteJSON(w, http.StatusCreated, result)
}

// ConfirmPartner completes a pending doubles entry
// @Summary Confirm doubles partner
// @Description The invited partner pays their share and both players are placed in a group
// @Tags Registrations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Pending registration ID"
// @Param request body ConfirmPartnerRequest true "Payment choice"
// @Success 200 {object} services.JoinResult
// @Failure 400 {object} services.ErrorResponse
// @Failure 409 {object} services.ErrorResponse
// @Router /registrations/{id}/confirm [post]
func (h *RegistrationHandler) ConfirmPartner(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsOrUnauthorized(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req ConfirmPartnerRequest
	if !decodeJSON(w, r, h.validator, &req) {
		return
	}

	result, err := h.service.ConfirmPartner(r.Context(), claims.AccountID, id, req.PaymentMode)
	if err != nil {
		services.WriteAppError(w, err)
		return
	}
	services.WriteJSON(w, http.StatusOK, result)
}

// AdminRegister adds a confirmed singles entrant
// @Summary Manual registration
// @Description Admin registers a player by name and phone, creating the account if needed
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.AdminRegisterRequest true "Player"
// @Success 201 {object} models.Registration
// @Failure 400 {object} services.ErrorResponse
// @Failure 409 {object} services.ErrorResponse
// @Router /admin/registrations [post]
func (h *RegistrationHandler) AdminRegister(w http.ResponseWriter, r *http.Request) {
	var req models.AdminRegisterRequest
	if !decodeJSON(w, r, h.validator, &req) {
		return
	}

	reg, err := h.service.AdminRegister(r.Context(), &req)
	if err != nil {
		services.WriteAppError(w, err)
		return
	}
	services.WriteJSON(w, http.StatusCreated, reg)
}

// Profile returns the caller's account and registrations
// @Summary My profile
// @Description The caller's account with every registration, including pending doubles invitations to confirm
// @Tags Registrations
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.PlayerProfile
// @Failure 401 {object} services.ErrorResponse
// @Failure 404 {object} services.ErrorResponse
// @Router /me [get]
func (h *RegistrationHandler) Profile(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsOrUnauthorized(w, r)
	if !ok {
		return
	}

	profile, err := h.service.Profile(r.Context(), claims.Phone)
	if err != nil {
		services.WriteAppError(w, err)
		return
	}
	services.WriteJSON(w, http.StatusOK, profile)
}

// Players lists every player account
// @Summary List players
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.Account
// @Router /admin/players [get]
func (h *RegistrationHandler) Players(w http.ResponseWriter, r *http.Request) {
	players, err := h.service.Players(r.Context())
	if err != nil {
		services.WriteAppError(w, err)
		return
	}
	services.WriteJSON(w, http.StatusOK, players)
}

// TournamentPlayers lists a tournament's registrations
// @Summary Tournament roster
// @Description Every registration of the named tournament with player, group and status
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param name path string true "Tournament name"
// @Param city query string true "Tournament city"
// @Success 200 {array} models.PlayerEntry
// @Failure 400 {object} services.ErrorResponse
// @Failure 404 {object} services.ErrorResponse
// @Router /admin/tournament-players/{name} [get]
func (h *RegistrationHandler) TournamentPlayers(w http.ResponseWriter, r *http.Request) {
	roster, err := h.service.TournamentPlayers(r.Context(), chi.URLParam(r, "name"), r.URL.Query().Get("city"))
	if err != nil {
		services.WriteAppError(w, err)
		return
	}
	services.WriteJSON(w, http.StatusOK, roster)
}
