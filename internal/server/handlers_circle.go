package server

import (
	"net/http"
	"strconv"

	"agartha/internal/data"
	"agartha/internal/shared"

	"github.com/go-chi/chi/v5"
)

func (a *API) AllCircles(w http.ResponseWriter, r *http.Request) {
	circles, err := a.Svc.Circles(r.Context(), false)
	a.respond(w, r, circles, err)
}

func (a *API) ActiveCircles(w http.ResponseWriter, r *http.Request) {
	circles, err := a.Svc.Circles(r.Context(), true)
	a.respond(w, r, circles, err)
}

// readCircle checks the practitioner may create circles before it looks at
// the body.
func (a *API) readCircle(w http.ResponseWriter, r *http.Request) (string, *data.Circle, bool) {
	userID := chi.URLParam(r, "userId")
	if err := a.Svc.CanCreateCircle(r.Context(), userID); err != nil {
		a.fail(w, r, err)
		return "", nil, false
	}
	var c data.Circle
	if err := decodeBody(r, &c); err != nil {
		a.fail(w, r, errCircleData)
		return "", nil, false
	}
	return userID, &c, true
}

func (a *API) AddCircle(w http.ResponseWriter, r *http.Request) {
	userID, c, ok := a.readCircle(w, r)
	if !ok {
		return
	}
	p, _, err := a.Svc.PutCircle(r.Context(), userID, *c)
	a.respond(w, r, p, err)
}

func (a *API) AddCircleV2(w http.ResponseWriter, r *http.Request) {
	userID, c, ok := a.readCircle(w, r)
	if !ok {
		return
	}
	_, stored, err := a.Svc.PutCircle(r.Context(), userID, *c)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, shared.IDResponse{ID: stored.ID})
}

func (a *API) EditCircle(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userId")
	var c data.Circle
	if err := decodeBody(r, &c); err != nil {
		a.fail(w, r, errCircleData)
		return
	}
	p, err := a.Svc.EditCircle(r.Context(), userID, c)
	a.respond(w, r, p, err)
}

func (a *API) RemoveCircle(w http.ResponseWriter, r *http.Request) {
	removed, err := a.Svc.RemoveCircle(r.Context(), chi.URLParam(r, "userId"), chi.URLParam(r, "circleId"))
	a.respond(w, r, removed, err)
}

func (a *API) CircleReceipt(w http.ResponseWriter, r *http.Request) {
	report, err := a.Svc.CircleReceipt(r.Context(), chi.URLParam(r, "userId"), chi.URLParam(r, "circleId"))
	a.respond(w, r, report, err)
}

func (a *API) CircleRegistered(w http.ResponseWriter, r *http.Request) {
	report, err := a.Svc.Registered(r.Context(), chi.URLParam(r, "circleId"))
	a.respond(w, r, report, err)
}

func (a *API) AddVirtual(w http.ResponseWriter, r *http.Request) {
	count, err := strconv.ParseInt(chi.URLParam(r, "count"), 10, 64)
	if err != nil {
		a.fail(w, r, errNotPositive)
		return
	}
	circleID := chi.URLParam(r, "circleId")
	if _, err := a.Svc.AddVirtual(r.Context(), chi.URLParam(r, "userId"), circleID, count); err != nil {
		a.fail(w, r, err)
		return
	}
	report, err := a.Svc.Registered(r.Context(), circleID)
	a.respond(w, r, report, err)
}
