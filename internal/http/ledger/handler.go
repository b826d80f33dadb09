package ledger

import (
	"bytes"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

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
	r.With(middleware.AllowContentType("application/json")).Post("/", h.create)
	r.Get("/{id}", h.get)
	r.Delete("/{id}", h.delete)
	r.Get("/{id}/records", h.history)
	r.With(middleware.AllowContentType("application/json")).Post("/{id}/records", h.addRecord)
}

type createLedgerRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createLedgerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.BadRequest(w, r, "invalid request body")
		return
	}

	l, err := h.p.CreateLedger(r.Context(), req.Name, req.Description)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, r, http.StatusCreated, respond.Ledger(l))
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	ledgers, err := h.p.Ledgers(r.Context())
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, r, http.StatusOK, respond.Ledgers(ledgers))
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, ok := respond.PathID(w, r, "id")
	if !ok {
		return
	}

	l, err := h.p.Ledger(r.Context(), id)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, r, http.StatusOK, respond.Ledger(l))
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, ok := respond.PathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.p.DeleteLedger(r.Context(), id); err != nil {
		respond.Error(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type historyResponse struct {
	Ledger  respond.LedgerResponse   `json:"ledger"`
	Records []respond.RecordResponse `json:"records"`
}

func (h *Handler) history(w http.ResponseWriter, r *http.Request) {
	id, ok := respond.PathID(w, r, "id")
	if !ok {
		return
	}

	hist, err := h.p.History(r.Context(), id)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, r, http.StatusOK, historyResponse{
		Ledger:  respond.Ledger(hist.Ledger),
		Records: respond.Records(hist.Records, h.p.Money()),
	})
}

// amountText accepts an amount sent either as a JSON number or as a string
// such as "1,250.50".
type amountText string

func (a *amountText) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}

		*a = amountText(s)

		return nil
	}

	if string(data) == "null" {
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}

	*a = amountText(n)

	return nil
}

type addRecordRequest struct {
	Amount amountText `json:"amount"`
	Note   string     `json:"note"`
	Period string     `json:"period"`
	Date   string     `json:"date"`
}

func (h *Handler) addRecord(w http.ResponseWriter, r *http.Request) {
	id, ok := respond.PathID(w, r, "id")
	if !ok {
		return
	}

	var req addRecordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.BadRequest(w, r, "invalid request body")
		return
	}

	rec, err := h.p.AddRecord(r.Context(), presenter.RecordInput{
		LedgerID: id,
		Amount:   strings.TrimSpace(string(req.Amount)),
		Note:     req.Note,
		Period:   req.Period,
		Date:     req.Date,
	})
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, r, http.StatusCreated, respond.Record(rec, h.p.Money()))
}
