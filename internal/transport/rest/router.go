package rest

import (
	"net/http"
	"os"

	"github.com/gorilla/mux"

	"disha/internal/cache"
	"disha/internal/repository"
	"disha/internal/service"
	"disha/internal/transport/rest/handler"
	"disha/internal/transport/rest/middleware"
	"disha/internal/transport/ws"
)

// Container holds all dependencies for the router
type Container struct {
	AuthService    *service.AuthService
	SessionService *service.SessionService
	QuestionRepo   repository.QuestionRepo
	CourseRepo     repository.CourseRepo
	CatalogCache   cache.CatalogCache
	WSHub          *ws.Hub
}

// NewRouter creates the API router with all endpoints
func NewRouter(c *Container) http.Handler {
	r := mux.NewRouter()

	// Initialize handlers
	authHandler := handler.NewAuthHandler(c.AuthService, c.SessionService)
	assessmentHandler := handler.NewAssessmentHandler(c.SessionService)
	catalogHandler := handler.NewCatalogHandler(c.QuestionRepo, c.CourseRepo, c.CatalogCache)
	wsHandler := ws.NewHandler(c.WSHub, c.SessionService)

	// Initialize middleware
	authMW := middleware.NewAuthMiddleware(c.AuthService)

	// CORS middleware (apply first)
	r.Use(corsMiddleware)

	// API v1 routes
	v1 := r.PathPrefix("/v1").Subrouter()

	// Public routes
	v1.HandleFunc("/auth/login", authHandler.Login).Methods("POST", "OPTIONS")
	v1.HandleFunc("/sessions", authHandler.StartSession).Methods("POST", "OPTIONS")

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	// Assessment routes (require session token)
	sessionRoutes := v1.NewRoute().Subrouter()
	sessionRoutes.Use(authMW.RequireSession)

	sessionRoutes.HandleFunc("/assessment/general/questions", assessmentHandler.GetGeneralQuestions).Methods("GET", "OPTIONS")
	sessionRoutes.HandleFunc("/assessment/general/answers", assessmentHandler.SubmitGeneral).Methods("POST", "OPTIONS")
	sessionRoutes.HandleFunc("/assessment/personalized/question", assessmentHandler.NextQuestion).Methods("GET", "OPTIONS")
	sessionRoutes.HandleFunc("/assessment/personalized/answers", assessmentHandler.SubmitAnswer).Methods("POST", "OPTIONS")
	sessionRoutes.HandleFunc("/assessment/subject/{subject}/questions", assessmentHandler.GetSubjectQuestions).Methods("GET", "OPTIONS")
	sessionRoutes.HandleFunc("/assessment/subject/answers", assessmentHandler.SubmitSubjects).Methods("POST", "OPTIONS")
	sessionRoutes.HandleFunc("/recommendations", assessmentHandler.Recommendations).Methods("GET", "OPTIONS")
	sessionRoutes.HandleFunc("/progress", assessmentHandler.Progress).Methods("GET", "OPTIONS")

	// WebSocket route (session token in query param)
	sessionRoutes.HandleFunc("/ws/assessment", wsHandler.AdaptiveWS).Methods("GET")

	// Admin routes (require admin auth)
	adminRoutes := v1.NewRoute().Subrouter()
	adminRoutes.Use(authMW.RequireAdmin)

	adminRoutes.HandleFunc("/admin/questions", catalogHandler.ListQuestions).Methods("GET", "OPTIONS")
	adminRoutes.HandleFunc("/admin/questions", catalogHandler.CreateQuestion).Methods("POST", "OPTIONS")
	adminRoutes.HandleFunc("/admin/questions/{id}", catalogHandler.DeleteQuestion).Methods("DELETE", "OPTIONS")
	adminRoutes.HandleFunc("/admin/courses", catalogHandler.ListCourses).Methods("GET", "OPTIONS")
	adminRoutes.HandleFunc("/admin/courses", catalogHandler.CreateCourse).Methods("POST", "OPTIONS")
	adminRoutes.HandleFunc("/admin/courses/{id}", catalogHandler.DeleteCourse).Methods("DELETE", "OPTIONS")

	return r
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		allowedOrigins := os.Getenv("CORS_ALLOWED_ORIGINS")
		if allowedOrigins == "" {
			allowedOrigins = "*"
		}

		w.Header().Set("Access-Control-Allow-Origin", allowedOrigins)
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
