package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Admin routes sit behind requirePassPhrase.

func (a *API) AdminAuth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, true)
}

func (a *API) AdminPractitioners(w http.ResponseWriter, r *http.Request) {
	ps, err := a.Svc.Store.ListPractitioners(r.Context())
	a.respond(w, r, ps, err)
}

func (a *API) AdminGenerate(w http.ResponseWriter, r *http.Request) {
	ps, err := a.Svc.Generate(r.Context(), chi.URLParam(r, "count"))
	a.respond(w, r, ps, err)
}

func (a *API) AdminAddSession(w http.ResponseWriter, r *http.Request) {
	session, err := a.Svc.AddSession(r.Context(),
		chi.URLParam(r, "userId"),
		chi.URLParam(r, "discipline"),
		chi.URLParam(r, "intention"),
	)
	a.respond(w, r, session, err)
}

func (a *API) AdminRemoveAll(w http.ResponseWriter, r *http.Request) {
	err := a.Svc.Store.RemoveAllPractitioners(r.Context())
	a.respond(w, r, true, err)
}

func (a *API) AdminRemoveGenerated(w http.ResponseWriter, r *http.Request) {
	ps, err := a.Svc.RemoveGenerated(r.Context())
	a.respond(w, r, ps, err)
}

func (a *API) AdminRemovePractitioner(w http.ResponseWriter, r *http.Request) {
	removed, err := a.Svc.Store.RemovePractitioner(r.Context(), chi.URLParam(r, "userId"))
	a.respond(w, r, removed, err)
}

func (a *API) DevSetup(w http.ResponseWriter, r *http.Request) {
	id, err := a.Svc.DevSetup(r.Context())
	if err != nil {
		a.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"id": id})
}
