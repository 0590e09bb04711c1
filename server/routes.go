package server

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/siegeai/siegeschema/adapter"
	"github.com/siegeai/siegeschema/infer"
	"github.com/siegeai/siegeschema/schema"
	"github.com/urfave/negroni"
)

const RequestIDHeader = "X-Request-ID"

type ctxKey int

const requestIDKey ctxKey = 0

func (s *Server) setupRoutes() {
	s.router.HandleFunc("/v1/infer", s.handleInfer()).Methods("POST")
	s.router.HandleFunc("/v1/adapters", s.handleAdapters()).Methods("GET")
	s.router.HandleFunc("/healthz", s.handleHealth()).Methods("GET")
	if s.gatherer != nil {
		s.router.Handle("/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{})).Methods("GET")
	}
	s.router.Use(requestIDMiddleware, s.logMiddleware)
}

func requestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, id)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), requestIDKey, id)))
	})
}

func (s *Server) logMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := negroni.NewResponseWriter(w)
		next.ServeHTTP(ww, r)
		s.logger.Info("request",
			"method", r.Method,
			"uri", r.RequestURI,
			"status", ww.Status(),
			"bytes", ww.Size(),
			"elapsed", time.Since(start),
			"requestID", requestID(r))
	})
}

func requestID(r *http.Request) string {
	id, _ := r.Context().Value(requestIDKey).(string)
	return id
}

type inferResponse struct {
	RequestID string          `json:"requestID"`
	Schema    json.RawMessage `json:"schema,omitempty"`
	Adapter   string          `json:"adapter,omitempty"`
	Native    string          `json:"native,omitempty"`
	Error     string          `json:"error,omitempty"`
}

func (s *Server) handleInfer() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		res := inferResponse{RequestID: requestID(r)}

		var a adapter.Adapter
		if name := r.URL.Query().Get("native"); name != "" {
			var err error
			if a, err = s.adapters.Lookup(name); err != nil {
				s.writeError(w, http.StatusBadRequest, res, err)
				return
			}
		}

		body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.maxBodyBytes))
		if err != nil {
			var mbe *http.MaxBytesError
			if errors.As(err, &mbe) {
				s.writeError(w, http.StatusRequestEntityTooLarge, res, err)
				return
			}
			s.writeError(w, http.StatusBadRequest, res, err)
			return
		}

		sch, err := s.inferrer.InferBytes(body)
		switch {
		case errors.Is(err, infer.ErrParse):
			s.writeError(w, http.StatusBadRequest, res, err)
			return
		case errors.Is(err, schema.ErrInvalidRoot):
			s.writeError(w, http.StatusUnprocessableEntity, res, err)
			return
		case err != nil:
			s.writeError(w, http.StatusInternalServerError, res, err)
			return
		}

		if res.Schema, err = schema.Marshal(sch); err != nil {
			s.writeError(w, http.StatusInternalServerError, res, err)
			return
		}

		if a != nil {
			res.Adapter = a.Name()
			native, err := adapter.Render(a, sch)
			if err != nil {
				s.logger.Warn("could not convert schema", "adapter", a.Name(), "err", err, "requestID", res.RequestID)
				res.Error = err.Error()
			} else {
				res.Native = string(native)
			}
		}

		s.writeJSON(w, http.StatusOK, res)
	}
}

type adapterInfo struct {
	Name    string `json:"name"`
	FileExt string `json:"fileExt"`
}

func (s *Server) handleAdapters() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		names := s.adapters.Names()
		infos := make([]adapterInfo, 0, len(names))
		for _, n := range names {
			a, err := s.adapters.Lookup(n)
			if err != nil {
				continue
			}
			infos = append(infos, adapterInfo{Name: a.Name(), FileExt: a.FileExt()})
		}
		s.writeJSON(w, http.StatusOK, map[string]any{"adapters": infos})
	}
}

func (s *Server) handleHealth() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, res inferResponse, err error) {
	res.Error = err.Error()
	s.writeJSON(w, status, res)
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Warn("could not write response", "err", err)
	}
}
