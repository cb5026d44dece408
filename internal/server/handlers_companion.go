package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (a *API) CompanionReport(w http.ResponseWriter, r *http.Request) {
	report, err := a.Svc.CompanionReport(r.Context())
	a.respond(w, r, report, err)
}

func (a *API) CompanionReportFor(w http.ResponseWriter, r *http.Request) {
	report, err := a.Svc.CompanionReportFor(r.Context(), chi.URLParam(r, "userId"))
	a.respond(w, r, report, err)
}

// OngoingReport serves both /ongoing and /ongoing/{userId}.
func (a *API) OngoingReport(w http.ResponseWriter, r *http.Request) {
	report, err := a.Svc.OngoingReport(r.Context(), chi.URLParam(r, "userId"))
	a.respond(w, r, report, err)
}

func (a *API) MatchedCompanions(w http.ResponseWriter, r *http.Request) {
	reports, err := a.Svc.MatchedCompanions(r.Context(), chi.URLParam(r, "userId"))
	a.respond(w, r, reports, err)
}
