package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/fadedpez/tucotrainer/internal/types"
	"github.com/fadedpez/tucotrainer/pkg/entities"
	"github.com/fadedpez/tucotrainer/pkg/services/blackjack"
	"github.com/fadedpez/tucotrainer/pkg/services/statistics"
	"github.com/fadedpez/tucotrainer/pkg/services/trainer"
	"github.com/go-chi/chi/v5"
)

type handValueRequest struct {
	Cards []cardInput `json:"cards"`
}

type handValueResponse struct {
	Value     int    `json:"value"`
	Hard      int    `json:"hard"`
	Soft      int    `json:"soft"`
	Display   string `json:"display"`
	Blackjack bool   `json:"blackjack"`
	Bust      bool   `json:"bust"`
}

type strategyRequest struct {
	Player []cardInput `json:"player"`
	Dealer *cardInput  `json:"dealer"`
}

type answerRequest struct {
	Action entities.Action `json:"action"`
}

type scenarioResponse struct {
	*trainer.Scenario
	PlayerValues blackjack.HandValues `json:"player_values"`
	Score        trainer.Score        `json:"score"`
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

func (s *Server) handValue(w http.ResponseWriter, r *http.Request) {
	var req handValueRequest
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, "Send cards as a list of codes like \"AS\" or objects like {\"suit\":\"spades\",\"rank\":1}.", err)
		return
	}

	cards := toCards(req.Cards)
	values := blackjack.CalculateHandValues(cards)
	writeJSON(w, http.StatusOK, handValueResponse{
		Value:     blackjack.CalculateHandValue(cards),
		Hard:      values.Hard,
		Soft:      values.Soft,
		Display:   values.Display,
		Blackjack: blackjack.IsBlackjack(cards),
		Bust:      blackjack.IsBust(cards),
	})
}

func (s *Server) strategy(w http.ResponseWriter, r *http.Request) {
	var req strategyRequest
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, "Send the player's cards and the dealer's up-card.", err)
		return
	}
	if req.Dealer == nil {
		badRequest(w, "The dealer's up-card is required.", errors.New("missing dealer card"))
		return
	}

	rec, err := blackjack.Recommend(toCards(req.Player), entities.Card(*req.Dealer))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (s *Server) newScenario(w http.ResponseWriter, r *http.Request) {
	player := chi.URLParam(r, "player")

	scenario, err := s.trainer.NewScenario(r.Context(), player)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, scenarioResponse{
		Scenario:     scenario,
		PlayerValues: scenario.PlayerValues(),
		Score:        s.trainer.Score(player),
	})
}

func (s *Server) answerScenario(w http.ResponseWriter, r *http.Request) {
	player := chi.URLParam(r, "player")
	id := chi.URLParam(r, "id")

	var req answerRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, trainer.ErrInvalidAnswer)
		return
	}

	grade, err := s.trainer.Answer(r.Context(), player, id, req.Action)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, grade)
}

func (s *Server) score(w http.ResponseWriter, r *http.Request) {
	score := s.trainer.Score(chi.URLParam(r, "player"))
	writeJSON(w, http.StatusOK, map[string]any{
		"correct":    score.Correct,
		"total":      score.Total,
		"percentage": score.Percentage(),
	})
}

func (s *Server) resetScore(w http.ResponseWriter, r *http.Request) {
	s.trainer.ResetScore(chi.URLParam(r, "player"))
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) playerStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.stats.GetPlayerStatistics(r.Context(), chi.URLParam(r, "player"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"statistics":        stats,
		"net_profit":        stats.NetProfit(),
		"win_rate":          stats.WinRate(),
		"training_accuracy": stats.TrainingAccuracy(),
	})
}

func (s *Server) leaderboard(w http.ResponseWriter, r *http.Request) {
	page, err := queryInt(r, "page", 1)
	if err != nil {
		writeError(w, err)
		return
	}
	perPage, err := queryInt(r, "per_page", statistics.DefaultPlayersPerPage)
	if err != nil {
		writeError(w, err)
		return
	}

	leaderboard, err := s.stats.GetLeaderboard(r.Context(), page, perPage)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, leaderboard)
}

func queryInt(r *http.Request, name string, fallback int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, types.WrapError(types.ErrInvalidArgument, name+" must be a number.", err)
	}
	return n, nil
}
