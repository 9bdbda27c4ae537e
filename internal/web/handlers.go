package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"path/filepath"

	"github.com/go-chi/chi/v5"

	"clipcatch/internal/library"
	"clipcatch/internal/model"
	"clipcatch/internal/progress"
	"clipcatch/internal/trimmer"
	"clipcatch/internal/util"
	"clipcatch/internal/util/format"
)

// Downloaded and trimmed media is always offered to the browser as mp4; the
// fetch format selectors prefer mp4 containers and the trimmer re-encodes
// into one.
const videoMIME = "video/mp4"

type handlers struct {
	logger  *slog.Logger
	svc     MediaService
	lib     *library.Library
	tracker *progress.Tracker
}

type downloadRequest struct {
	URL     string `json:"url"`
	Quality string `json:"quality"`
	JobID   string `json:"job_id"`
}

type trimRequest struct {
	File     string  `json:"file"`
	StartMin float64 `json:"start_min"`
	EndMin   float64 `json:"end_min"`
	JobID    string  `json:"job_id"`
}

type fileResponse struct {
	JobID       string  `json:"job_id"`
	Name        string  `json:"name"`
	Bytes       int64   `json:"bytes"`
	HumanSize   string  `json:"human_size"`
	DurationSec float64 `json:"duration_sec"`
}

func (h *handlers) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"service": "clipcatch",
	})
}

// download runs the fetch synchronously and responds when the file is on
// disk. The page polls /api/jobs/{id} with a client-chosen job ID while this
// request is in flight.
func (h *handlers) download(w http.ResponseWriter, r *http.Request) {
	var req downloadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, fmt.Errorf("invalid request body: %w", err), http.StatusBadRequest)
		return
	}

	quality := model.QualityBest
	if req.Quality != "" {
		q, err := model.ParseQuality(req.Quality)
		if err != nil {
			writeError(w, err, http.StatusBadRequest)
			return
		}
		quality = q
	}

	jobID := req.JobID
	if jobID == "" {
		jobID = h.svc.NewJobID()
	}

	// The page stops polling once this response arrives, so the job's
	// snapshot can be dropped from the tracker.
	defer func() { h.tracker.Forget(jobID) }()

	df, jobID, err := h.svc.Download(r.Context(), model.DownloadRequest{URL: req.URL, Quality: quality}, jobID)
	if err != nil {
		h.logger.Error("download failed", "url", req.URL, "job_id", jobID, "error", err)
		writeError(w, err, downloadStatus(err))
		return
	}

	writeJSON(w, http.StatusOK, fileResponse{
		JobID:       jobID,
		Name:        filepath.Base(df.Path),
		Bytes:       df.Bytes,
		HumanSize:   format.HumanizeBytes(df.Bytes),
		DurationSec: df.DurationSec,
	})
}

// trim converts the page's minute inputs to seconds and runs the cut
// synchronously.
func (h *handlers) trim(w http.ResponseWriter, r *http.Request) {
	var req trimRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, fmt.Errorf("invalid request body: %w", err), http.StatusBadRequest)
		return
	}

	jobID := req.JobID
	if jobID == "" {
		jobID = h.svc.NewJobID()
	}

	defer func() { h.tracker.Forget(jobID) }()

	startSec := req.StartMin * 60
	endSec := req.EndMin * 60

	tf, jobID, err := h.svc.Trim(r.Context(), req.File, startSec, endSec, jobID)
	if err != nil {
		h.logger.Error("trim failed", "file", req.File, "job_id", jobID, "error", err)
		writeError(w, err, trimStatus(err))
		return
	}

	writeJSON(w, http.StatusOK, fileResponse{
		JobID:       jobID,
		Name:        filepath.Base(tf.Path),
		Bytes:       tf.Bytes,
		HumanSize:   format.HumanizeBytes(tf.Bytes),
		DurationSec: tf.DurationSec,
	})
}

func (h *handlers) files(w http.ResponseWriter, r *http.Request) {
	downloads, err := h.lib.Downloads()
	if err != nil {
		writeError(w, err, http.StatusInternalServerError)
		return
	}
	trimmed, err := h.lib.Trimmed()
	if err != nil {
		writeError(w, err, http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string][]model.LibraryEntry{
		"downloads": downloads,
		"trimmed":   trimmed,
	})
}

// fileDuration reports a download's duration so the page can bound the
// end-time input before the user trims.
func (h *handlers) fileDuration(w http.ResponseWriter, r *http.Request) {
	name, err := pathName(r)
	if err != nil {
		writeError(w, err, http.StatusBadRequest)
		return
	}
	d, err := h.svc.Duration(r.Context(), name)
	if err != nil {
		writeError(w, err, trimStatus(err))
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"name":         name,
		"duration_sec": d,
	})
}

func (h *handlers) job(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	snap, ok := h.tracker.Get(id)
	if !ok {
		writeError(w, fmt.Errorf("unknown job %q", id), http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

func (h *handlers) serveDownload(w http.ResponseWriter, r *http.Request) {
	h.serveFile(w, r, h.lib.ResolveDownload)
}

func (h *handlers) serveTrimmed(w http.ResponseWriter, r *http.Request) {
	h.serveFile(w, r, h.lib.ResolveTrimmed)
}

// serveFile reads the whole file into memory and offers it as a browser
// download with a fixed video MIME type.
func (h *handlers) serveFile(w http.ResponseWriter, r *http.Request, resolve func(string) (string, error)) {
	name, err := pathName(r)
	if err != nil {
		writeError(w, err, http.StatusBadRequest)
		return
	}
	path, err := resolve(name)
	if err != nil {
		status := http.StatusBadRequest
		if os.IsNotExist(err) {
			status = http.StatusNotFound
		}
		writeError(w, err, status)
		return
	}
	data, err := library.ReadAll(path)
	if err != nil {
		writeError(w, err, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", videoMIME)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filepath.Base(path)))
	w.Header().Set("Content-Length", fmt.Sprintf("%d", len(data)))
	_, _ = w.Write(data)
}

func pathName(r *http.Request) (string, error) {
	raw := chi.URLParam(r, "name")
	name, err := url.PathUnescape(raw)
	if err != nil {
		return "", fmt.Errorf("invalid file name %q", raw)
	}
	return name, nil
}

// downloadStatus maps fetch failures onto HTTP statuses: bad input is the
// client's fault, everything else is the external tool's.
func downloadStatus(err error) int {
	if isInputError(err) {
		return http.StatusBadRequest
	}
	return http.StatusBadGateway
}

func trimStatus(err error) int {
	var ve *trimmer.ValidationError
	if errors.As(err, &ve) || isInputError(err) || os.IsNotExist(err) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func isInputError(err error) bool {
	return errors.Is(err, library.ErrBadName) || errors.Is(err, util.ErrInvalidURL)
}
