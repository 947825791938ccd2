package server

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/jonathan/skillsync/internal/db"
	"github.com/jonathan/skillsync/internal/gap"
	"github.com/jonathan/skillsync/internal/llm"
	"github.com/jonathan/skillsync/internal/matching"
)

// ProfileRequest is the payload for PUT /profile. Skill order is preserved
// from the request body; resolution prefers earlier entries.
type ProfileRequest struct {
	Goal   string             `json:"goal"`
	Skills *matching.SkillMap `json:"skills"`
}

// ProfileResponse is returned by GET and PUT /profile.
type ProfileResponse struct {
	Goal   string             `json:"goal"`
	Skills *matching.SkillMap `json:"skills"`
}

// ResumeRequest is the payload for POST /profile/resume.
type ResumeRequest struct {
	ResumeText string `json:"resume_text" validate:"required"`
}

// AnalyzeRequest is the payload for POST /analyze. Goal overrides the stored
// profile goal for this call only.
type AnalyzeRequest struct {
	Goal      string `json:"goal"`
	Summarize bool   `json:"summarize"`
}

// AnalyzeResponse is the gap analysis report.
type AnalyzeResponse struct {
	Goal    string       `json:"goal"`
	Results []gap.Result `json:"results"`
	Message string       `json:"message,omitempty"`
	Summary string       `json:"summary,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	profile, err := s.store.GetProfile(r.Context(), userID)
	if err != nil {
		s.logError(r, err)
		writeError(w, http.StatusInternalServerError, "failed to load profile")
		return
	}

	writeJSON(w, http.StatusOK, ProfileResponse{Goal: profile.Goal, Skills: profile.Skills})
}

func (s *Server) handlePutProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	var req ProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Skills == nil {
		req.Skills = matching.NewSkillMap()
	}

	existing, err := s.store.GetProfile(r.Context(), userID)
	if err != nil {
		s.logError(r, err)
		writeError(w, http.StatusInternalServerError, "failed to load profile")
		return
	}

	profile := &db.Profile{
		UserID:     userID,
		Goal:       strings.TrimSpace(req.Goal),
		Skills:     req.Skills,
		ResumeText: existing.ResumeText,
	}
	if err := s.store.UpsertProfile(r.Context(), profile); err != nil {
		s.logError(r, err)
		writeError(w, http.StatusInternalServerError, "failed to save profile")
		return
	}

	writeJSON(w, http.StatusOK, ProfileResponse{Goal: profile.Goal, Skills: profile.Skills})
}

// handleUploadResume extracts a skill map from free-form resume text and
// merges it into the profile. Skills the user already listed keep their
// reported level and position.
func (s *Server) handleUploadResume(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "not authenticated")
		return
	}
	if s.llm == nil {
		writeError(w, http.StatusServiceUnavailable, "resume extraction is not configured")
		return
	}

	var req ResumeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := s.validator.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}

	extracted, err := llm.ExtractSkills(r.Context(), s.llm, req.ResumeText)
	if err != nil {
		s.logError(r, err)
		writeError(w, http.StatusBadGateway, "failed to extract skills from resume")
		return
	}

	profile, err := s.store.GetProfile(r.Context(), userID)
	if err != nil {
		s.logError(r, err)
		writeError(w, http.StatusInternalServerError, "failed to load profile")
		return
	}

	for _, entry := range extracted.Entries() {
		if _, exists := profile.Skills.Get(entry.Name); !exists {
			profile.Skills.Set(entry.Name, entry.Level)
		}
	}
	profile.ResumeText = req.ResumeText

	if err := s.store.UpsertProfile(r.Context(), profile); err != nil {
		s.logError(r, err)
		writeError(w, http.StatusInternalServerError, "failed to save profile")
		return
	}

	writeJSON(w, http.StatusOK, ProfileResponse{Goal: profile.Goal, Skills: profile.Skills})
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	var req AnalyzeRequest
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
	}

	profile, err := s.store.GetProfile(r.Context(), userID)
	if err != nil {
		s.logError(r, err)
		writeError(w, http.StatusInternalServerError, "failed to load profile")
		return
	}

	goal := strings.TrimSpace(req.Goal)
	if goal == "" {
		goal = profile.Goal
	}
	if goal == "" {
		writeError(w, http.StatusBadRequest, "no goal provided and none saved on the profile")
		return
	}

	results, err := s.engine.Analyze(r.Context(), goal, profile.Skills)
	if err != nil {
		s.logError(r, err)
		writeError(w, HTTPStatus(err), "gap analysis failed")
		return
	}

	resp := AnalyzeResponse{Goal: goal, Results: results}
	if len(results) == 0 {
		resp.Message = "no relevant categories found"
	} else if req.Summarize {
		if s.llm == nil {
			writeError(w, http.StatusServiceUnavailable, "summaries are not configured")
			return
		}
		summary, err := llm.SummarizeReport(r.Context(), s.llm, goal, results)
		if err != nil {
			s.logError(r, err)
			writeError(w, http.StatusBadGateway, "failed to summarize report")
			return
		}
		resp.Summary = summary
	}

	writeJSON(w, http.StatusOK, resp)
}
