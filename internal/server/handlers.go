package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"promto/internal/api"
	"promto/internal/campaign"
	"promto/internal/logging"
	"promto/internal/services"
)

func (s *Server) handleFindByName(w http.ResponseWriter, r *http.Request) {
	if !s.requirePost(w, r) {
		return
	}
	var req api.FindByNameRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	match, err := s.finder.Find(r.Context(), strings.TrimSpace(req.Keyword))
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	resp := api.FindByNameResponse{Found: match.Found, Reason: match.Reason}
	if match.Found {
		resp.URL = match.Candidate.URL
		resp.Title = match.Candidate.Title
		resp.Score = match.Score
	}
	s.writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleAffiliateLink(w http.ResponseWriter, r *http.Request) {
	if !s.requirePost(w, r) {
		return
	}
	var req api.AffiliateLinkRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	productURL := strings.TrimSpace(req.ProductURL)
	if productURL == "" {
		s.writeServiceError(w, r, services.Wrap(services.ErrValidation, "server", "make-affiliate-link", "productUrl required", nil))
		return
	}
	link, err := s.resolver.Resolve(r.Context(), productURL)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, api.AffiliateLinkResponse{
		Link:        link.URL,
		Via:         link.Via,
		IsAffiliate: link.IsAffiliate,
	})
}

func (s *Server) handleCampaign(w http.ResponseWriter, r *http.Request) {
	if !s.requirePost(w, r) {
		return
	}
	var req api.CampaignRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	artifact, err := s.composer.Compose(r.Context(), campaign.Request{
		AffiliateURL: strings.TrimSpace(req.AffiliateURL),
		ProductTitle: strings.TrimSpace(req.ProductTitle),
		ImageURLHint: strings.TrimSpace(req.ImageURLHint),
		Brief:        strings.TrimSpace(req.Brief),
	})
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, api.CampaignResponse{
		OK: true,
		Inputs: api.CampaignInputs{
			AffiliateURL:     artifact.Inputs.AffiliateURL,
			ProductTitle:     artifact.Inputs.ProductTitle,
			Brief:            artifact.Inputs.Brief,
			ImageURLDetected: artifact.Inputs.ImageURLDetected,
		},
		Assets: api.CampaignAssets{
			ImageDataURLContentType: artifact.Assets.ImageContentType,
			ImageDataURLPreview:     artifact.Assets.ImagePreview,
		},
		AdCopy:     artifact.AdCopy,
		Video:      api.CampaignVideo{VideoURL: artifact.Video.VideoURL},
		SocialPost: artifact.SocialPost,
	})
}

func (s *Server) handleViralIdea(w http.ResponseWriter, r *http.Request) {
	if !s.requirePost(w, r) {
		return
	}
	var req api.ViralIdeaRequest
	if err := decodeOptionalJSON(r, &req); err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	idea, err := s.ideas.ViralIdea(r.Context(), req.Exclude)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, api.ViralIdeaResponse{Idea: idea})
}

func (s *Server) handleDebug(w http.ResponseWriter, r *http.Request) {
	if !s.requirePost(w, r) {
		return
	}
	var req api.DebugRequest
	if err := decodeOptionalJSON(r, &req); err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	payload, err := s.finder.Debug(r.Context(), strings.TrimSpace(req.Keywords))
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, payload)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeJSON(w, http.StatusMethodNotAllowed, api.ErrorResponse{Error: "method not allowed"})
		return
	}
	s.writeJSON(w, http.StatusOK, api.HealthResponse{Status: "ok"})
}

func (s *Server) requirePost(w http.ResponseWriter, r *http.Request) bool {
	if r.Method != http.MethodPost {
		s.writeJSON(w, http.StatusMethodNotAllowed, api.ErrorResponse{Error: "method not allowed"})
		return false
	}
	return true
}

func (s *Server) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	status := services.HTTPStatus(err)
	requestID, _ := services.RequestIDFromContext(r.Context())
	s.logger.Error("request failed",
		logging.String("path", r.URL.Path),
		logging.String("request_id", requestID),
		logging.Int("status", status),
		logging.Error(err))
	s.writeJSON(w, status, api.ErrorResponse{Error: http.StatusText(status), Detail: err.Error()})
}

// decodeOptionalJSON treats an absent or empty body as the zero request.
func decodeOptionalJSON(r *http.Request, dst any) error {
	defer r.Body.Close()
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return services.Wrap(services.ErrValidation, "server", "decode", "invalid JSON body", err)
	}
	return nil
}
