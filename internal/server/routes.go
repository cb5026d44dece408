package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Routes builds the whole HTTP surface of the site.
func (a *API) Routes(staticDir string) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger(a.Log))

	r.Route("/v1", func(r chi.Router) {
		r.Use(allowAnyOrigin)

		r.Get("/settings", a.GetSettings)
		r.Post("/settings/intention", a.AddIntention)

		r.Route("/practitioner", func(r chi.Router) {
			r.Get("/create/{deviceId}", a.CreatePractitioner)
			r.Get("/spiritbankhistory/{userId}", a.SpiritBankHistory)
			r.Get("/find/email/{userEmail}", a.FindByEmail)
			r.Post("/session/start/{userId}", a.StartSession)
			r.Post("/session/end/{userId}/{points}", a.EndSession)
			r.Post("/circle/join/{userId}/{circleId}", a.JoinCircle)
			r.Post("/circle/register/{userId}/{circleId}", a.RegisterCircle)
			r.Post("/donate/{fromId}/{toId}/{points}", a.Donate)
			r.Get("/{userId}", a.GetPractitioner)
			r.Post("/{userId}", a.UpdatePractitioner)
		})

		r.Route("/circle", func(r chi.Router) {
			r.Get("/", a.AllCircles)
			r.Get("/active", a.ActiveCircles)
			r.Get("/receipt/{userId}/{circleId}", a.CircleReceipt)
			r.Get("/registered/{circleId}", a.CircleRegistered)
			r.Post("/virtual/{userId}/{circleId}/{count}", a.AddVirtual)
			r.Post("/{userId}", a.AddCircle)
			r.Put("/{userId}", a.EditCircle)
			r.Delete("/{userId}/{circleId}", a.RemoveCircle)
		})

		r.Route("/companion", func(r chi.Router) {
			r.Get("/", a.CompanionReport)
			r.Get("/ongoing", a.OngoingReport)
			r.Get("/ongoing/{userId}", a.OngoingReport)
			r.Get("/matched/{userId}", a.MatchedCompanions)
			r.Get("/{userId}", a.CompanionReportFor)
		})

		r.Route("/image", func(r chi.Router) {
			r.Get("/{imageId}", a.GetImage)
			r.Post("/{imageId}", a.PutImage)
		})

		r.Route("/admin", func(r chi.Router) {
			r.Use(a.requirePassPhrase)
			r.Post("/auth", a.AdminAuth)
			r.Post("/practitioners", a.AdminPractitioners)
			r.Post("/generate/{count}", a.AdminGenerate)
			r.Post("/session/add/{userId}/{discipline}/{intention}", a.AdminAddSession)
			r.Post("/remove/all", a.AdminRemoveAll)
			r.Post("/remove/generated", a.AdminRemoveGenerated)
			r.Post("/remove/practitioner/{userId}", a.AdminRemovePractitioner)
		})

		r.With(a.requireDevelopment).Get("/dev/dbsetup", a.DevSetup)
	})

	r.Route("/v2", func(r chi.Router) {
		r.Use(allowAnyOrigin)
		r.Post("/circles/{userId}", a.AddCircleV2)
	})

	r.Route("/monitoring", func(r chi.Router) {
		r.Get("/status", a.MonitorStatus)
		r.Get("/db/write", a.MonitorWrite)
		r.Get("/db/read", a.MonitorRead)
	})

	r.Get("/websocket", a.Hub.ServeWS)

	if staticDir != "" {
		r.Handle("/*", http.FileServer(http.Dir(staticDir)))
	}
	return r
}
