// Package server exposes calibration and analysis over HTTP.
//
// Routes:
//
//	GET  /healthz
//	GET  /v1/calibration   stored calibration
//	PUT  /v1/calibration   replace the calibration with a JSON body
//	POST /v1/calibrate     locate the board in an uploaded screenshot and save it
//	POST /v1/analyze       read the board from an uploaded screenshot and suggest placements
//
// Screenshots are uploaded as multipart form field "image".
package server

import (
	"encoding/json"
	"errors"
	"image"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"blockassist/internal/calibration"
	"blockassist/internal/capture"
	"blockassist/internal/pipeline"
	"blockassist/internal/solver"
)

const maxUploadSize = 20 << 20

var allowedMIME = map[string]bool{
	"image/png":  true,
	"image/jpeg": true,
	"image/gif":  true,
	"image/webp": true,
	"image/bmp":  true,
	"image/tiff": true,
}

// Server is the HTTP front end of a pipeline driver.
type Server struct {
	router chi.Router
	driver *pipeline.Driver
	logger *log.Logger
}

// New builds the router. The driver's Store and Locator serve calibration
// requests and its Reader serves analysis.
func New(d *pipeline.Driver, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	s := &Server{router: chi.NewRouter(), driver: d, logger: logger}
	s.routes()
	return s
}

func (s *Server) routes() {
	r := s.router
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/v1", func(r chi.Router) {
		r.Get("/calibration", s.handleGetCalibration)
		r.Put("/calibration", s.handlePutCalibration)
		r.Post("/calibrate", s.handleCalibrate)
		r.Post("/analyze", s.handleAnalyze)
	})
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("X-Content-Type-Options", "nosniff")
	s.router.ServeHTTP(w, r)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"elapsed", time.Since(start).Round(time.Millisecond),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}

// GET /v1/calibration
func (s *Server) handleGetCalibration(w http.ResponseWriter, r *http.Request) {
	cal, err := s.driver.Store.Load(r.Context())
	if errors.Is(err, calibration.ErrNotCalibrated) {
		jsonError(w, "not calibrated", http.StatusNotFound)
		return
	}
	if err != nil {
		s.logger.Error("load calibration", "err", err)
		jsonError(w, "failed to load calibration", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, cal)
}

// PUT /v1/calibration
func (s *Server) handlePutCalibration(w http.ResponseWriter, r *http.Request) {
	var cal calibration.Calibration
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cal); err != nil {
		jsonError(w, "invalid calibration body", http.StatusBadRequest)
		return
	}
	if err := cal.Validate(); err != nil {
		jsonError(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}
	if err := s.driver.Store.Save(r.Context(), cal); err != nil {
		s.logger.Error("save calibration", "err", err)
		jsonError(w, "failed to save calibration", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, cal)
}

// POST /v1/calibrate
func (s *Server) handleCalibrate(w http.ResponseWriter, r *http.Request) {
	img, ok := s.readUpload(w, r)
	if !ok {
		return
	}

	cal, err := s.driver.CalibrateImage(r.Context(), img)
	if errors.Is(err, pipeline.ErrNoGrid) {
		jsonError(w, "no board grid found in screenshot", http.StatusUnprocessableEntity)
		return
	}
	if err != nil {
		s.logger.Error("calibrate", "err", err)
		jsonError(w, "failed to save calibration", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusCreated, cal)
}

// AnalyzeResponse is the body returned by POST /v1/analyze.
type AnalyzeResponse struct {
	ID          string                  `json:"id"`
	Time        time.Time               `json:"time"`
	Board       [][]int                 `json:"board"`
	Placements  []solver.Placement      `json:"placements"`
	ClearedRows []int                   `json:"cleared_rows"`
	ClearedCols []int                   `json:"cleared_cols"`
	Calibration calibration.Calibration `json:"calibration"`
}

// POST /v1/analyze
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	cal, err := s.driver.Store.Load(r.Context())
	if errors.Is(err, calibration.ErrNotCalibrated) {
		jsonError(w, "not calibrated, POST a screenshot to /v1/calibrate first", http.StatusConflict)
		return
	}
	if err != nil {
		s.logger.Error("load calibration", "err", err)
		jsonError(w, "failed to load calibration", http.StatusInternalServerError)
		return
	}

	img, ok := s.readUpload(w, r)
	if !ok {
		return
	}

	rep := s.driver.Analyze(img, cal)
	s.logger.Info("analyzed", "id", rep.ID, "filled", rep.Matrix.FilledCount(),
		"placements", len(rep.Suggestion.Placements))

	writeJSON(w, http.StatusOK, AnalyzeResponse{
		ID:          rep.ID,
		Time:        rep.Time,
		Board:       rep.Matrix.Rows(),
		Placements:  rep.Suggestion.Placements,
		ClearedRows: rep.Suggestion.Cleared.Rows(),
		ClearedCols: rep.Suggestion.Cleared.Cols(),
		Calibration: rep.Calibration,
	})
}

// readUpload decodes the "image" form field. It writes the error response
// itself and reports whether the caller should continue.
func (s *Server) readUpload(w http.ResponseWriter, r *http.Request) (image.Image, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			jsonError(w, "screenshot too large", http.StatusRequestEntityTooLarge)
			return nil, false
		}
		jsonError(w, "multipart form expected", http.StatusBadRequest)
		return nil, false
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		jsonError(w, "field 'image' required", http.StatusBadRequest)
		return nil, false
	}
	defer file.Close()

	if mt := header.Header.Get("Content-Type"); mt != "" && !allowedMIME[mt] {
		jsonError(w, "unsupported image type "+mt, http.StatusUnsupportedMediaType)
		return nil, false
	}

	img, _, err := capture.DecodeReader(file)
	if err != nil {
		jsonError(w, "could not decode screenshot", http.StatusBadRequest)
		return nil, false
	}
	return img, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func jsonError(w http.ResponseWriter, msg string, status int) {
	writeJSON(w, status, map[string]string{"error": msg})
}
