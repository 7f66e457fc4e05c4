package handler

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/novatale/armory/internal/domain"
	"github.com/novatale/armory/internal/logger"
	"github.com/novatale/armory/internal/player"
)

// PlayerRequest identifies a player in a request body
type PlayerRequest struct {
	PlayerID string `json:"player_id" validate:"required,max=64,excludesall=\x00\n\r\t "`
}

// StatsResponse is the derived stat block returned to clients
type StatsResponse struct {
	BaseAttack   int `json:"base_attack"`
	BonusAttack  int `json:"bonus_attack"`
	TotalAttack  int `json:"total_attack"`
	BaseDefense  int `json:"base_defense"`
	BonusDefense int `json:"bonus_defense"`
	TotalDefense int `json:"total_defense"`
	BaseHealth   int `json:"base_health"`
	BonusHealth  int `json:"bonus_health"`
	TotalHealth  int `json:"total_health"`
	BaseSpeed    int `json:"base_speed"`
	BonusSpeed   int `json:"bonus_speed"`
	TotalSpeed   int `json:"total_speed"`
}

func newStatsResponse(s domain.DerivedStats) StatsResponse {
	return StatsResponse{
		BaseAttack:   s.BaseAttack,
		BonusAttack:  s.BonusAttack,
		TotalAttack:  s.TotalAttack(),
		BaseDefense:  s.BaseDefense,
		BonusDefense: s.BonusDefense,
		TotalDefense: s.TotalDefense(),
		BaseHealth:   s.BaseHealth,
		BonusHealth:  s.BonusHealth,
		TotalHealth:  s.TotalHealth(),
		BaseSpeed:    s.BaseSpeed,
		BonusSpeed:   s.BonusSpeed,
		TotalSpeed:   s.TotalSpeed(),
	}
}

// decodePlayerRequest decodes and validates the common player body
func decodePlayerRequest(w http.ResponseWriter, r *http.Request) (PlayerRequest, bool) {
	log := logger.FromContext(r.Context())

	var req PlayerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("Failed to decode player request", "error", err)
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return req, false
	}
	if err := GetValidator().ValidateStruct(req); err != nil {
		log.Warn("Invalid request", "error", err)
		respondError(w, http.StatusBadRequest, fmt.Sprintf("Invalid request: %v", err))
		return req, false
	}
	return req, true
}

// playerIDFromQuery reads and checks the player_id query parameter
func playerIDFromQuery(w http.ResponseWriter, r *http.Request) (string, bool) {
	playerID := r.URL.Query().Get("player_id")
	if playerID == "" {
		respondError(w, http.StatusBadRequest, "player_id query parameter is required")
		return "", false
	}
	return playerID, true
}

// HandleRegisterPlayer registers a new player
// @Summary Register player
// @Description Create a new player profile seeded with the starting kit and gold
// @Tags player
// @Accept json
// @Produce json
// @Param request body PlayerRequest true "Player details"
// @Success 201 {object} domain.Profile
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /player/register [post]
func HandleRegisterPlayer(svc player.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		req, ok := decodePlayerRequest(w, r)
		if !ok {
			return
		}

		profile, err := svc.Register(r.Context(), req.PlayerID)
		if err != nil {
			log.Error("Failed to register player", "error", err, "playerID", req.PlayerID)
			respondServiceError(w, err)
			return
		}

		log.Info("Player registered", "playerID", req.PlayerID)
		respondJSON(w, http.StatusCreated, profile)
	}
}

// HandleLogin loads an existing player's profile
// @Summary Log in
// @Description Load the profile for an existing player
// @Tags player
// @Accept json
// @Produce json
// @Param request body PlayerRequest true "Player details"
// @Success 200 {object} domain.Profile
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /player/login [post]
func HandleLogin(svc player.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		req, ok := decodePlayerRequest(w, r)
		if !ok {
			return
		}

		profile, err := svc.Login(r.Context(), req.PlayerID)
		if err != nil {
			log.Error("Failed to log in player", "error", err, "playerID", req.PlayerID)
			respondServiceError(w, err)
			return
		}

		respondJSON(w, http.StatusOK, profile)
	}
}

// HandleLogout persists the player's profile at end of session
// @Summary Log out
// @Description Persist the player's profile and end the session
// @Tags player
// @Accept json
// @Produce json
// @Param request body PlayerRequest true "Player details"
// @Success 200 {object} SuccessResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /player/logout [post]
func HandleLogout(svc player.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		req, ok := decodePlayerRequest(w, r)
		if !ok {
			return
		}

		if err := svc.Logout(r.Context(), req.PlayerID); err != nil {
			log.Error("Failed to log out player", "error", err, "playerID", req.PlayerID)
			respondServiceError(w, err)
			return
		}

		respondJSON(w, http.StatusOK, SuccessResponse{Message: "Logged out"})
	}
}

// HandleDeletePlayer removes a player's profile
// @Summary Delete player
// @Description Permanently delete a player profile
// @Tags player
// @Accept json
// @Produce json
// @Param request body PlayerRequest true "Player details"
// @Success 200 {object} SuccessResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /player/delete [post]
func HandleDeletePlayer(svc player.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		req, ok := decodePlayerRequest(w, r)
		if !ok {
			return
		}

		if err := svc.Delete(r.Context(), req.PlayerID); err != nil {
			log.Error("Failed to delete player", "error", err, "playerID", req.PlayerID)
			respondServiceError(w, err)
			return
		}

		log.Info("Player deleted", "playerID", req.PlayerID)
		respondJSON(w, http.StatusOK, SuccessResponse{Message: "Player deleted"})
	}
}

// PlayersResponse lists registered player IDs
type PlayersResponse struct {
	Players []string `json:"players"`
}

// HandleListPlayers lists all registered players
// @Summary List players
// @Description Return the IDs of all registered players
// @Tags player
// @Produce json
// @Success 200 {object} PlayersResponse
// @Failure 500 {object} ErrorResponse
// @Router /players [get]
func HandleListPlayers(svc player.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		ids, err := svc.ListPlayers(r.Context())
		if err != nil {
			log.Error("Failed to list players", "error", err)
			respondServiceError(w, err)
			return
		}

		respondJSON(w, http.StatusOK, PlayersResponse{Players: ids})
	}
}

// HandleGetProfile returns a player's stored profile
// @Summary Get profile
// @Description Return the stored profile for a player
// @Tags player
// @Produce json
// @Param player_id query string true "Player ID"
// @Success 200 {object} domain.Profile
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /player/profile [get]
func HandleGetProfile(svc player.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		playerID, ok := playerIDFromQuery(w, r)
		if !ok {
			return
		}

		profile, err := svc.GetProfile(r.Context(), playerID)
		if err != nil {
			log.Error("Failed to get profile", "error", err, "playerID", playerID)
			respondServiceError(w, err)
			return
		}

		respondJSON(w, http.StatusOK, profile)
	}
}

// HandleGetStats returns a player's derived stats
// @Summary Get derived stats
// @Description Compute attack, defense, health and speed from level and equipment
// @Tags player
// @Produce json
// @Param player_id query string true "Player ID"
// @Success 200 {object} StatsResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /player/stats [get]
func HandleGetStats(svc player.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		playerID, ok := playerIDFromQuery(w, r)
		if !ok {
			return
		}

		derived, err := svc.GetStats(r.Context(), playerID)
		if err != nil {
			log.Error("Failed to compute stats", "error", err, "playerID", playerID)
			respondServiceError(w, err)
			return
		}

		respondJSON(w, http.StatusOK, newStatsResponse(derived))
	}
}

// AmountRequest carries a player ID and a positive amount
type AmountRequest struct {
	PlayerID string `json:"player_id" validate:"required,max=64,excludesall=\x00\n\r\t "`
	Amount   int    `json:"amount" validate:"required,min=1"`
}

// HandleAddExperience grants experience to a player
// @Summary Grant experience
// @Description Add experience, applying any level-ups the total supports
// @Tags player
// @Accept json
// @Produce json
// @Param request body AmountRequest true "Experience details"
// @Success 200 {object} domain.Profile
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /player/experience [post]
func HandleAddExperience(svc player.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var req AmountRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Error("Failed to decode experience request", "error", err)
			respondError(w, http.StatusBadRequest, "Invalid request body")
			return
		}
		if err := GetValidator().ValidateStruct(req); err != nil {
			log.Warn("Invalid request", "error", err)
			respondError(w, http.StatusBadRequest, fmt.Sprintf("Invalid request: %v", err))
			return
		}

		profile, err := svc.AddExperience(r.Context(), req.PlayerID, req.Amount)
		if err != nil {
			log.Error("Failed to grant experience", "error", err, "playerID", req.PlayerID)
			respondServiceError(w, err)
			return
		}

		log.Info("Experience granted", "playerID", req.PlayerID, "amount", req.Amount, "level", profile.Level)
		respondJSON(w, http.StatusOK, profile)
	}
}

// HandleAddGold credits gold to a player
// @Summary Credit gold
// @Description Add gold to a player's balance
// @Tags player
// @Accept json
// @Produce json
// @Param request body AmountRequest true "Gold details"
// @Success 200 {object} domain.Profile
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /player/gold/add [post]
func HandleAddGold(svc player.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var req AmountRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Error("Failed to decode gold request", "error", err)
			respondError(w, http.StatusBadRequest, "Invalid request body")
			return
		}
		if err := GetValidator().ValidateStruct(req); err != nil {
			log.Warn("Invalid request", "error", err)
			respondError(w, http.StatusBadRequest, fmt.Sprintf("Invalid request: %v", err))
			return
		}

		profile, err := svc.AddGold(r.Context(), req.PlayerID, req.Amount)
		if err != nil {
			log.Error("Failed to credit gold", "error", err, "playerID", req.PlayerID)
			respondServiceError(w, err)
			return
		}

		respondJSON(w, http.StatusOK, profile)
	}
}

// HandleSpendGold debits gold from a player
// @Summary Spend gold
// @Description Debit gold, failing when the balance does not cover the amount
// @Tags player
// @Accept json
// @Produce json
// @Param request body AmountRequest true "Gold details"
// @Success 200 {object} domain.Profile
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /player/gold/spend [post]
func HandleSpendGold(svc player.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var req AmountRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Error("Failed to decode gold request", "error", err)
			respondError(w, http.StatusBadRequest, "Invalid request body")
			return
		}
		if err := GetValidator().ValidateStruct(req); err != nil {
			log.Warn("Invalid request", "error", err)
			respondError(w, http.StatusBadRequest, fmt.Sprintf("Invalid request: %v", err))
			return
		}

		profile, err := svc.SpendGold(r.Context(), req.PlayerID, req.Amount)
		if err != nil {
			log.Error("Failed to spend gold", "error", err, "playerID", req.PlayerID)
			respondServiceError(w, err)
			return
		}

		respondJSON(w, http.StatusOK, profile)
	}
}
