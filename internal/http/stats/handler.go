package stats

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/assetbook/internal/http/respond"
	"github.com/MrJamesThe3rd/assetbook/internal/presenter"
)

type Handler struct {
	p *presenter.Presenter
}

func NewHandler(p *presenter.Presenter) *Handler {
	return &Handler{p: p}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/summaries", h.summaries)
	r.Get("/dashboard", h.dashboard)
	r.Get("/trend", h.trend)
}

func (h *Handler) summaries(w http.ResponseWriter, r *http.Request) {
	summaries, err := h.p.Summaries(r.Context())
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, r, http.StatusOK, respond.Summaries(summaries, h.p.Money()))
}

func (h *Handler) dashboard(w http.ResponseWriter, r *http.Request) {
	d, err := h.p.Dashboard(r.Context())
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, r, http.StatusOK, respond.Dashboard(d, h.p.Money()))
}

func (h *Handler) trend(w http.ResponseWriter, r *http.Request) {
	defaults := h.p.TrendDefaults()
	points, withTotal := defaults.MaxPoints, defaults.WithTotal

	if s := r.URL.Query().Get("points"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n <= 0 {
			respond.BadRequest(w, r, "points must be a positive integer")
			return
		}

		points = n
	}

	if s := r.URL.Query().Get("total"); s != "" {
		b, err := strconv.ParseBool(s)
		if err != nil {
			respond.BadRequest(w, r, "total must be true or false")
			return
		}

		withTotal = b
	}

	series, err := h.p.Trend(r.Context(), points, withTotal)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, r, http.StatusOK, respond.Trend(series))
}
