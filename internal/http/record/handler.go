package record

import (
	"net/http"

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
	r.Get("/", h.list)
	r.Get("/latest", h.latest)
}

type recordRow struct {
	respond.RecordResponse
	LedgerName string `json:"ledger_name"`
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	all, err := h.p.Records(r.Context())
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	rows := make([]recordRow, len(all.Records))
	for i, rec := range all.Records {
		rows[i] = recordRow{
			RecordResponse: respond.Record(rec, h.p.Money()),
			LedgerName:     all.Name(rec.LedgerID),
		}
	}

	respond.JSON(w, r, http.StatusOK, rows)
}

func (h *Handler) latest(w http.ResponseWriter, r *http.Request) {
	records, err := h.p.LatestRecords(r.Context())
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, r, http.StatusOK, respond.Records(records, h.p.Money()))
}
