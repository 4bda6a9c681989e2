package httpapi

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/levelup-life/levelup-service/internal/game"
	"github.com/levelup-life/levelup-service/internal/progression"
	"github.com/levelup-life/levelup-service/internal/shop"
)

const (
	serviceTimeout = 8 * time.Second

	// Generation calls out to the model and needs more headroom than local ops.
	syncTimeout = 45 * time.Second

	maxPatchBodyBytes = 64 * 1024
)

// RegisterRoutes registers every API route on the router.
func RegisterRoutes(r chi.Router, svc *game.Service, logger *slog.Logger) {
	r.Route("/v1/profile", func(r chi.Router) {
		r.Use(middleware.Recoverer)

		r.Get("/", getProfile(svc))
		r.Patch("/", updateProfile(svc, logger))
		r.Post("/avatar", setAvatar(svc, logger))
		r.Post("/aura", setAura(svc, logger))
	})

	r.Route("/v1/goals", func(r chi.Router) {
		r.Use(middleware.Recoverer)

		r.Get("/", listGoals(svc))
		r.Post("/", addGoal(svc, logger))
		r.Post("/{id}/toggle", toggleGoal(svc, logger))
	})

	r.Route("/v1/challenges", func(r chi.Router) {
		r.Use(middleware.Recoverer)

		r.Get("/", listChallenges(svc))
		r.Post("/sync", syncChallenges(svc, logger))
		r.Post("/{id}/complete", completeChallenge(svc, logger))
	})

	r.Route("/v1/shop", func(r chi.Router) {
		r.Use(middleware.Recoverer)

		r.Get("/", listShop(svc))
		r.Post("/{id}/purchase", purchaseItem(svc, logger))
	})
}

// profileResponse adds the derived presentation fields the header renders.
type profileResponse struct {
	progression.Profile
	Completions   int `json:"completions"`
	XPToNextLevel int `json:"xpToNextLevel"`
}

func presentProfile(p progression.Profile) profileResponse {
	return profileResponse{
		Profile:       p,
		Completions:   len(p.History),
		XPToNextLevel: progression.LevelThreshold - p.XP,
	}
}

func getProfile(svc *game.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, presentProfile(svc.Profile()))
	}
}

func updateProfile(svc *game.Service, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxPatchBodyBytes)
		defer r.Body.Close()

		var body struct {
			Name *string `json:"name"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Name == nil {
			writeError(w, "bad_request", "invalid request body")
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), serviceTimeout)
		defer cancel()

		p, err := svc.Rename(ctx, *body.Name)
		if err != nil {
			respondServiceError(w, r, logger, "failed to rename profile", err)
			return
		}
		writeJSON(w, http.StatusOK, presentProfile(p))
	}
}

func setAvatar(svc *game.Service, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Seed string `json:"seed"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil || strings.TrimSpace(body.Seed) == "" {
			writeError(w, "bad_request", "invalid request body")
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), serviceTimeout)
		defer cancel()

		p, err := svc.SetAvatar(ctx, body.Seed)
		if err != nil {
			respondServiceError(w, r, logger, "failed to set avatar", err)
			return
		}
		writeJSON(w, http.StatusOK, presentProfile(p))
	}
}

func setAura(svc *game.Service, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Aura string `json:"aura"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			writeError(w, "bad_request", "invalid request body")
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), serviceTimeout)
		defer cancel()

		p, err := svc.SetAura(ctx, body.Aura)
		if err != nil {
			respondServiceError(w, r, logger, "failed to set aura", err)
			return
		}
		writeJSON(w, http.StatusOK, presentProfile(p))
	}
}

// goalView is a preset or custom goal annotated with its selection state.
type goalView struct {
	progression.Goal
	Selected bool `json:"selected"`
}

func listGoals(svc *game.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		p := svc.Profile()
		selected := make(map[string]bool, len(p.Goals))
		for _, g := range p.Goals {
			selected[g.ID] = true
		}

		views := make([]goalView, 0, len(p.Goals)+4)
		for _, g := range progression.PresetGoals() {
			views = append(views, goalView{Goal: g, Selected: selected[g.ID]})
		}
		for _, g := range p.Goals {
			if g.IsCustom {
				views = append(views, goalView{Goal: g, Selected: true})
			}
		}
		writeJSON(w, http.StatusOK, map[string]any{"goals": views})
	}
}

func addGoal(svc *game.Service, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Label    string `json:"label"`
			Category string `json:"category"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			writeError(w, "bad_request", "invalid request body")
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), serviceTimeout)
		defer cancel()

		goal, err := svc.AddGoal(ctx, body.Label, progression.Category(body.Category))
		if err != nil {
			respondServiceError(w, r, logger, "failed to add goal", err)
			return
		}
		writeJSON(w, http.StatusCreated, goal)
	}
}

func toggleGoal(svc *game.Service, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		goalID := chi.URLParam(r, "id")
		if strings.TrimSpace(goalID) == "" {
			writeError(w, "bad_request", "missing goal id")
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), serviceTimeout)
		defer cancel()

		p, err := svc.ToggleGoal(ctx, goalID)
		if err != nil {
			respondServiceError(w, r, logger, "failed to toggle goal", err)
			return
		}
		writeJSON(w, http.StatusOK, presentProfile(p))
	}
}

func listChallenges(svc *game.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"challenges": svc.ActiveChallenges()})
	}
}

func syncChallenges(svc *game.Service, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), syncTimeout)
		defer cancel()

		list, err := svc.Sync(ctx)
		if err != nil {
			respondServiceError(w, r, logger, "failed to sync challenges", err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"challenges": list})
	}
}

func completeChallenge(svc *game.Service, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		if strings.TrimSpace(id) == "" {
			writeError(w, "bad_request", "missing challenge id")
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), serviceTimeout)
		defer cancel()

		res, err := svc.Complete(ctx, id)
		if err != nil {
			respondServiceError(w, r, logger, "failed to complete challenge", err)
			return
		}
		writeJSON(w, http.StatusOK, res)
	}
}

// shopItemView annotates a catalog item with the profile-dependent state the
// shop overlay renders.
type shopItemView struct {
	shop.Item
	Owned     bool `json:"owned"`
	CanAfford bool `json:"canAfford"`
}

func listShop(svc *game.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		p := svc.Profile()
		items := shop.Catalog()
		views := make([]shopItemView, 0, len(items))
		for _, item := range items {
			views = append(views, shopItemView{
				Item:      item,
				Owned:     shop.Owned(p, item),
				CanAfford: p.Gems >= item.Cost,
			})
		}
		writeJSON(w, http.StatusOK, map[string]any{"gems": p.Gems, "items": views})
	}
}

func purchaseItem(svc *game.Service, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		itemID := chi.URLParam(r, "id")
		if strings.TrimSpace(itemID) == "" {
			writeError(w, "bad_request", "missing item id")
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), serviceTimeout)
		defer cancel()

		p, err := svc.Purchase(ctx, itemID)
		if err != nil {
			respondServiceError(w, r, logger, "failed to purchase item", err)
			return
		}
		writeJSON(w, http.StatusOK, presentProfile(p))
	}
}
