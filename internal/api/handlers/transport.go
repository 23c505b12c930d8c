package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"transport-catalogue-service/internal/adapters/requests"
	"transport-catalogue-service/internal/api/dto"
	"transport-catalogue-service/internal/catalogue"
	"transport-catalogue-service/internal/ports"

	"github.com/go-chi/chi/v5"
)

const maxBatchBytes = 1 << 20

type TransportHandler struct {
	Queries ports.TransportQueries
}

// Bus handles GET /buses/{name}.
func (h *TransportHandler) Bus(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	st, ok := h.Queries.BusStat(r.Context(), name)
	if !ok {
		writeError(w, r, http.StatusNotFound, requests.MsgNotFound)
		return
	}

	res := dto.BusResponse{
		Name:            st.Name,
		StopCount:       st.StopCount,
		UniqueStopCount: st.UniqueStopCount,
		RouteLength:     st.RoadLength,
		GeoLength:       st.GeoLength,
		MissingLegs:     st.MissingLegs,
	}
	if st.CurvatureDefined() {
		c := st.Curvature
		res.Curvature = &c
	}

	writeJSON(w, r, http.StatusOK, res)
}

// Stop handles GET /stops/{name}.
func (h *TransportHandler) Stop(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	st := h.Queries.StopStat(r.Context(), name)
	if !st.Found {
		writeError(w, r, http.StatusNotFound, requests.MsgNotFound)
		return
	}

	buses := st.Buses
	if buses == nil {
		buses = []string{}
	}
	writeJSON(w, r, http.StatusOK, dto.StopResponse{Name: st.Name, Buses: buses})
}

// Route handles GET /routes?from=&to=.
func (h *TransportHandler) Route(w http.ResponseWriter, r *http.Request) {
	from := r.URL.Query().Get("from")
	to := r.URL.Query().Get("to")
	if from == "" || to == "" {
		writeError(w, r, http.StatusBadRequest, "from and to are required")
		return
	}

	res, err := h.Queries.Route(r.Context(), from, to)
	if errors.Is(err, catalogue.ErrUnknownStop) {
		writeError(w, r, http.StatusNotFound, requests.MsgNotFound)
		return
	}
	if err != nil {
		writeInternal(w, r, err)
		return
	}
	if !res.Found {
		writeError(w, r, http.StatusNotFound, requests.MsgNotFound)
		return
	}

	ans := requests.NewRouteAnswer(0, res)
	writeJSON(w, r, http.StatusOK, dto.RouteResponse{
		From:      res.From,
		To:        res.To,
		TotalTime: ans.TotalTime,
		Items:     ans.Items,
	})
}

// Requests handles POST /requests: a batch of stat requests answered in order.
func (h *TransportHandler) Requests(w http.ResponseWriter, r *http.Request) {
	var req dto.StatBatchRequest

	dec := json.NewDecoder(io.LimitReader(r.Body, maxBatchBytes))
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(w, r, http.StatusBadRequest, "body must contain only one JSON object")
		return
	}

	answers, err := requests.AnswerAll(r.Context(), h.Queries, req.StatRequests)
	if err != nil {
		writeInternal(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.StatBatchResponse{Answers: answers})
}
