package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"disha/internal/model"
	"disha/internal/service"
	"disha/internal/transport/rest/middleware"
)

// AssessmentHandler handles the three assessment tiers
type AssessmentHandler struct {
	sessionSvc *service.SessionService
}

// NewAssessmentHandler creates a new assessment handler
func NewAssessmentHandler(sessionSvc *service.SessionService) *AssessmentHandler {
	return &AssessmentHandler{sessionSvc: sessionSvc}
}

// GetGeneralQuestions handles GET /v1/assessment/general/questions
func (h *AssessmentHandler) GetGeneralQuestions(w http.ResponseWriter, r *http.Request) {
	questions, err := h.sessionSvc.GeneralQuestions(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"questions": questions})
}

// GeneralSubmission is the body for submitting the general tier
type GeneralSubmission struct {
	Answers []model.SubmitAnswerRequest `json:"answers"`
}

// SubmitGeneral handles POST /v1/assessment/general/answers
func (h *AssessmentHandler) SubmitGeneral(w http.ResponseWriter, r *http.Request) {
	sessionID := middleware.GetSessionID(r.Context())

	var req GeneralSubmission
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	inference, err := h.sessionSvc.SubmitGeneral(r.Context(), sessionID, req.Answers)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, inference)
}

// NextQuestion handles GET /v1/assessment/personalized/question
func (h *AssessmentHandler) NextQuestion(w http.ResponseWriter, r *http.Request) {
	sessionID := middleware.GetSessionID(r.Context())

	question, done, err := h.sessionSvc.NextQuestion(r.Context(), sessionID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"done": done, "question": question})
}

// SubmitAnswer handles POST /v1/assessment/personalized/answers
func (h *AssessmentHandler) SubmitAnswer(w http.ResponseWriter, r *http.Request) {
	sessionID := middleware.GetSessionID(r.Context())

	var req model.SubmitAnswerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	done, err := h.sessionSvc.SubmitAnswer(r.Context(), sessionID, req.OptionIndex)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"done": done})
}

// GetSubjectQuestions handles GET /v1/assessment/subject/{subject}/questions
func (h *AssessmentHandler) GetSubjectQuestions(w http.ResponseWriter, r *http.Request) {
	subject := mux.Vars(r)["subject"]
	questions := h.sessionSvc.SubjectQuestions(r.Context(), subject)
	writeJSON(w, http.StatusOK, map[string]interface{}{"questions": questions})
}

// SubjectSubmission is the body for submitting the subject tier
type SubjectSubmission struct {
	Subjects []string                    `json:"subjects"`
	Answers  []model.SubmitAnswerRequest `json:"answers"`
}

// SubmitSubjects handles POST /v1/assessment/subject/answers
func (h *AssessmentHandler) SubmitSubjects(w http.ResponseWriter, r *http.Request) {
	sessionID := middleware.GetSessionID(r.Context())

	var req SubjectSubmission
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	inference, err := h.sessionSvc.SubmitSubjects(r.Context(), sessionID, req.Subjects, req.Answers)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, inference)
}

// Recommendations handles GET /v1/recommendations
func (h *AssessmentHandler) Recommendations(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	suggestions, err := h.sessionSvc.Recommend(r.Context(), userID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, suggestions)
}

// Progress handles GET /v1/progress
func (h *AssessmentHandler) Progress(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	sections, err := h.sessionSvc.Progress(r.Context(), userID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"completed": sections})
}

// writeServiceError maps engine errors onto HTTP statuses
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrSessionNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrWrongStage),
		errors.Is(err, service.ErrInsufficientData),
		errors.Is(err, service.ErrNoPendingQuestion):
		writeError(w, http.StatusConflict, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}
