package server

import (
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"agartha/internal/data"
	"agartha/internal/shared"

	"github.com/dustin/go-humanize"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

const maxImageBytes = 1_000_000

var imageExtensions = map[string]bool{".jpg": true, ".jpeg": true, ".png": true}

func (a *API) GetSettings(w http.ResponseWriter, r *http.Request) {
	st, err := a.Svc.Settings(r.Context())
	a.respond(w, r, st, err)
}

func (a *API) AddIntention(w http.ResponseWriter, r *http.Request) {
	var intention data.Intention
	if err := decodeBody(r, &intention); err != nil {
		writeJSON(w, http.StatusBadRequest, shared.ErrorResponse{Error: "bad json"})
		return
	}
	st, err := a.Svc.AddIntention(r.Context(), intention)
	a.respond(w, r, st, err)
}

func (a *API) GetImage(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "imageId")
	img, err := a.Svc.Store.GetImage(r.Context(), id)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	if img == nil {
		a.fail(w, r, notFound(fmt.Sprintf("image id %s missing", id)))
		return
	}
	w.Header().Set("Content-Disposition", "attachment; filename="+img.FileName)
	w.Header().Set("Content-Type", "application/force-download")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(img.Image)
}

// PutImage stores the multipart "file" under the id in the path and answers
// with the path it can be fetched from.
func (a *API) PutImage(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 2*maxImageBytes)
	file, header, err := r.FormFile("file")
	if err != nil {
		a.Log.Info("image upload rejected", zap.Error(err))
		a.fail(w, r, badRequest(shared.MsgImageMissing))
		return
	}
	defer file.Close()

	if !imageExtensions[strings.ToLower(filepath.Ext(header.Filename))] || header.Size > maxImageBytes {
		a.Log.Info("image upload rejected",
			zap.String("file", header.Filename),
			zap.String("size", humanize.Bytes(uint64(header.Size))),
			zap.String("limit", humanize.Bytes(maxImageBytes)),
		)
		a.fail(w, r, badRequest(shared.MsgImageMissing))
		return
	}

	b, err := io.ReadAll(io.LimitReader(file, maxImageBytes+1))
	if err != nil {
		a.fail(w, r, err)
		return
	}
	if len(b) > maxImageBytes {
		a.fail(w, r, badRequest(shared.MsgImageMissing))
		return
	}

	img := &data.Image{ID: chi.URLParam(r, "imageId"), FileName: header.Filename, Image: b}
	if err := a.Svc.Store.PutImage(r.Context(), img); err != nil {
		a.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, r.URL.Path)
}

func (a *API) MonitorStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"text": "Still alive"})
}

func (a *API) MonitorWrite(w http.ResponseWriter, r *http.Request) {
	ok, err := a.Svc.WriteMonitor(r.Context())
	a.respond(w, r, ok, err)
}

func (a *API) MonitorRead(w http.ResponseWriter, r *http.Request) {
	ok, err := a.Svc.ReadMonitor(r.Context())
	a.respond(w, r, ok, err)
}
