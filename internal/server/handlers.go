package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/GabrielNunesIT/raml-converter/internal/options"
)

// MaxBodySize bounds request bodies.
const MaxBodySize = 10 << 20

func (s *Server) handleConvert(w http.ResponseWriter, r *http.Request) {
	var req ConvertRequest
	if !s.decode(w, r, &req) {
		return
	}

	input, err := req.Input()
	if err != nil {
		s.writeError(w, err.Error(), http.StatusBadRequest)
		return
	}

	start := time.Now()
	result := s.importer.Convert(r.Context(), input, req.Options)
	s.metrics.ObserveConversion(string(input.Kind), result.Result, time.Since(start))

	status := http.StatusOK
	if !result.Result {
		s.log.Errorf("Error: conversion failed: %s", result.Reason)
		status = http.StatusUnprocessableEntity
	}

	s.writeJSON(w, result, status)
}

func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	var req InputRequest
	if !s.decode(w, r, &req) {
		return
	}

	input, err := req.Input()
	if err != nil {
		s.writeError(w, err.Error(), http.StatusBadRequest)
		return
	}

	s.writeJSON(w, s.importer.Validate(input), http.StatusOK)
}

func (s *Server) handleOptions(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, options.Describe(s.importer.Options()), http.StatusOK)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}, http.StatusOK)
}

// decode reads and validates a JSON body into dst. On failure the response is
// written and false returned.
func (s *Server) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, MaxBodySize)).Decode(dst); err != nil {
		s.log.Errorf("Error: failed to decode request: %v", err)
		s.writeError(w, "invalid request body", http.StatusBadRequest)
		return false
	}

	if err := s.validate.Struct(dst); err != nil {
		s.log.Errorf("Error: request validation failed: %v", err)
		s.writeError(w, "validation failed: "+err.Error(), http.StatusBadRequest)
		return false
	}

	return true
}

func (s *Server) writeError(w http.ResponseWriter, msg string, status int) {
	s.writeJSON(w, ErrorResponse{Error: msg}, status)
}

func (s *Server) writeJSON(w http.ResponseWriter, body any, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.log.Errorf("Error: failed to encode response: %v", err)
	}
}
