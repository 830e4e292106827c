package http

import (
	"context"
	"net/http"

	"github.com/pkg/errors"
	"github.com/sugawarayuuta/sonnet"

	"github.com/fleshka4/gofi/internal/apperrors"
	servicedto "github.com/fleshka4/gofi/internal/service/dto"
	"github.com/fleshka4/gofi/internal/transport/http/dto"
	"github.com/fleshka4/gofi/internal/transport/http/validate"
)

func (s *Server) handleSimulate(w http.ResponseWriter, r *http.Request) {
	req, code, err := validate.SimulateRequestValidate(r)
	if err != nil {
		s.writeJSON(w, code, dto.ErrorResponse{Error: err.Error()})
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), s.requestTimeout)
	defer cancel()

	m, err := s.svc.Simulate(ctx, servicedto.SimulateRequest{PoolA: req.PoolA, PoolB: req.PoolB})
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, dto.NewMatch(m))
}

func (s *Server) handleMatches(w http.ResponseWriter, r *http.Request) {
	req, code, err := validate.MatchesRequestValidate(r)
	if err != nil {
		s.writeJSON(w, code, dto.ErrorResponse{Error: err.Error()})
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), s.requestTimeout)
	defer cancel()

	matches, err := s.svc.Scan(ctx)
	if err != nil {
		s.writeError(w, err)
		return
	}
	if req.Limit > 0 && len(matches) > req.Limit {
		matches = matches[:req.Limit]
	}

	resp := dto.MatchesResponse{Count: len(matches), Matches: make([]dto.Match, 0, len(matches))}
	for _, m := range matches {
		resp.Matches = append(resp.Matches, dto.NewMatch(m))
	}
	s.writeJSON(w, http.StatusOK, resp)
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		s.writeJSON(w, http.StatusGatewayTimeout, dto.ErrorResponse{Error: "upstream timeout"})
	case errors.Is(err, apperrors.ErrInvalidArgument), errors.Is(err, apperrors.ErrPairMismatch):
		s.writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
	case errors.Is(err, apperrors.ErrNoOpportunity), errors.Is(err, apperrors.ErrInsufficientLiquidity):
		s.writeJSON(w, http.StatusUnprocessableEntity, dto.ErrorResponse{Error: err.Error()})
	case errors.Is(err, apperrors.ErrPairRead):
		s.writeJSON(w, http.StatusBadGateway, dto.ErrorResponse{Error: err.Error()})
	default:
		s.logger.Error("request failed", "err", err)
		s.writeJSON(w, http.StatusInternalServerError, dto.ErrorResponse{Error: "internal error"})
	}
}

func (s *Server) writeJSON(w http.ResponseWriter, code int, v any) {
	body, err := sonnet.Marshal(v)
	if err != nil {
		s.logger.Error("json marshal error", "err", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if _, err := w.Write(body); err != nil {
		s.logger.Error("response write error", "err", err)
	}
}
