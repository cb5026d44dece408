package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"agartha/internal/shared"

	"go.uber.org/zap"
)

type API struct {
	Svc *Service
	Log *zap.Logger
	Hub *Hub
}

func NewAPI(svc *Service, logger *zap.Logger) *API {
	return &API{
		Svc: svc,
		Log: logger,
		Hub: NewHub(svc, logger),
	}
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func readBody(r *http.Request) ([]byte, error) {
	defer r.Body.Close()
	return io.ReadAll(io.LimitReader(r.Body, 2<<20))
}

func decodeBody(r *http.Request, v any) error {
	body, err := readBody(r)
	if err != nil {
		return err
	}
	return json.Unmarshal(body, v)
}

// fail reports err to the client. Anything that is not an apiError is logged
// and hidden behind a 500.
func (a *API) fail(w http.ResponseWriter, r *http.Request, err error) {
	var ae *apiError
	if errors.As(err, &ae) {
		writeJSON(w, ae.Status, ae.response())
		return
	}
	a.Log.Error("request failed",
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
		zap.Error(err),
	)
	writeJSON(w, http.StatusInternalServerError, shared.ErrorResponse{Error: "db error"})
}

// respond writes v, or the error when err is set.
func (a *API) respond(w http.ResponseWriter, r *http.Request, v any, err error) {
	if err != nil {
		a.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, v)
}
