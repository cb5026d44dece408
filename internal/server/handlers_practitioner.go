package server

import (
	"encoding/json"
	"net/http"

	"agartha/internal/shared"

	"github.com/go-chi/chi/v5"
)

func (a *API) CreatePractitioner(w http.ResponseWriter, r *http.Request) {
	p, err := a.Svc.CreatePractitioner(r.Context(), chi.URLParam(r, "deviceId"))
	if err != nil {
		a.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, shared.NewPractitionerReport(p, a.Svc.Now()))
}

func (a *API) GetPractitioner(w http.ResponseWriter, r *http.Request) {
	p, err := a.Svc.Practitioner(r.Context(), chi.URLParam(r, "userId"))
	if err != nil {
		a.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, shared.NewPractitionerReport(p, a.Svc.Now()))
}

func (a *API) UpdatePractitioner(w http.ResponseWriter, r *http.Request) {
	var info shared.InvolvedInformation
	if err := decodeBody(r, &info); err != nil {
		writeJSON(w, http.StatusBadRequest, shared.ErrorResponse{Error: "bad json"})
		return
	}
	p, err := a.Svc.UpdateInvolved(r.Context(), chi.URLParam(r, "userId"), info)
	a.respond(w, r, p, err)
}

func (a *API) StartSession(w http.ResponseWriter, r *http.Request) {
	var info shared.StartSessionInformation
	if err := decodeBody(r, &info); err != nil {
		a.fail(w, r, errEmptySession)
		return
	}
	session, err := a.Svc.StartSession(r.Context(), chi.URLParam(r, "userId"), info)
	a.respond(w, r, session, err)
}

func (a *API) EndSession(w http.ResponseWriter, r *http.Request) {
	body, err := readBody(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, shared.ErrorResponse{Error: "bad body"})
		return
	}
	var feedback *int64
	if len(body) > 0 {
		var fb shared.Feedback
		if err := json.Unmarshal(body, &fb); err != nil {
			writeJSON(w, http.StatusBadRequest, shared.ErrorResponse{Error: "bad json"})
			return
		}
		feedback = &fb.Feedback
	}
	p, err := a.Svc.EndSession(r.Context(), chi.URLParam(r, "userId"), chi.URLParam(r, "points"), feedback)
	a.respond(w, r, p, err)
}

func (a *API) JoinCircle(w http.ResponseWriter, r *http.Request) {
	var info shared.StartSessionInformation
	if err := decodeBody(r, &info); err != nil {
		a.fail(w, r, errEmptySession)
		return
	}
	session, err := a.Svc.JoinCircle(r.Context(), chi.URLParam(r, "userId"), chi.URLParam(r, "circleId"), info)
	a.respond(w, r, session, err)
}

func (a *API) RegisterCircle(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := chi.URLParam(r, "userId")
	if _, err := a.Svc.Practitioner(ctx, userID); err != nil {
		a.fail(w, r, err)
		return
	}
	p, err := a.Svc.RegisterCircle(ctx, userID, chi.URLParam(r, "circleId"))
	a.respond(w, r, p, err)
}

func (a *API) SpiritBankHistory(w http.ResponseWriter, r *http.Request) {
	p, err := a.Svc.Practitioner(r.Context(), chi.URLParam(r, "userId"))
	if err != nil {
		a.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, p.SpiritBankLog)
}

func (a *API) FindByEmail(w http.ResponseWriter, r *http.Request) {
	p, err := a.Svc.FindByEmail(r.Context(), chi.URLParam(r, "userEmail"))
	a.respond(w, r, p, err)
}

func (a *API) Donate(w http.ResponseWriter, r *http.Request) {
	err := a.Svc.Donate(r.Context(), chi.URLParam(r, "fromId"), chi.URLParam(r, "toId"), chi.URLParam(r, "points"))
	a.respond(w, r, true, err)
}
