package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"disha/internal/cache"
	"disha/internal/model"
	"disha/internal/repository"
)

// CatalogHandler handles admin management of question banks and the
// course catalog
type CatalogHandler struct {
	questionRepo repository.QuestionRepo
	courseRepo   repository.CourseRepo
	catalogCache cache.CatalogCache
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(questionRepo repository.QuestionRepo, courseRepo repository.CourseRepo, catalogCache cache.CatalogCache) *CatalogHandler {
	return &CatalogHandler{
		questionRepo: questionRepo,
		courseRepo:   courseRepo,
		catalogCache: catalogCache,
	}
}

// ListQuestions handles GET /v1/admin/questions
func (h *CatalogHandler) ListQuestions(w http.ResponseWriter, r *http.Request) {
	questions, err := h.questionRepo.GetAll(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"questions": questions})
}

// CreateQuestion handles POST /v1/admin/questions
func (h *CatalogHandler) CreateQuestion(w http.ResponseWriter, r *http.Request) {
	var question model.Question
	if err := json.NewDecoder(r.Body).Decode(&question); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if len(question.Options) == 0 {
		writeError(w, http.StatusBadRequest, "question needs at least one option")
		return
	}

	if err := h.questionRepo.Create(r.Context(), &question); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, question)
}

// DeleteQuestion handles DELETE /v1/admin/questions/{id}
func (h *CatalogHandler) DeleteQuestion(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if err := h.questionRepo.Delete(r.Context(), id); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// ListCourses handles GET /v1/admin/courses, optionally filtered by
// ?stream=
func (h *CatalogHandler) ListCourses(w http.ResponseWriter, r *http.Request) {
	var courses []*model.Course
	var err error
	if stream := r.URL.Query().Get("stream"); stream != "" {
		courses, err = h.courseRepo.GetByStream(r.Context(), stream)
	} else {
		courses, err = h.courseRepo.GetAll(r.Context())
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"courses": courses})
}

// CreateCourse handles POST /v1/admin/courses
func (h *CatalogHandler) CreateCourse(w http.ResponseWriter, r *http.Request) {
	var course model.Course
	if err := json.NewDecoder(r.Body).Decode(&course); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if course.Name == "" || len(course.SkillLabels) == 0 {
		writeError(w, http.StatusBadRequest, "course needs a name and skill labels")
		return
	}

	if err := h.courseRepo.Create(r.Context(), &course); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	h.invalidateCatalog(r.Context())
	writeJSON(w, http.StatusCreated, course)
}

// DeleteCourse handles DELETE /v1/admin/courses/{id}
func (h *CatalogHandler) DeleteCourse(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if err := h.courseRepo.Delete(r.Context(), id); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	h.invalidateCatalog(r.Context())
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (h *CatalogHandler) invalidateCatalog(ctx context.Context) {
	// Stale recommendations until TTL expiry are acceptable; the
	// invalidation is best effort.
	_ = h.catalogCache.Invalidate(ctx)
}
