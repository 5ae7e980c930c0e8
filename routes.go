package main

import (
	"log"
	"net/http"
	"os"
	"strings"

	gorillahandlers "github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"wbs-dashboard/handlers"
	"wbs-dashboard/utilities"
)

func LoadRoutes() {
	r := mux.NewRouter()

	// Request logging on every route
	r.Use(handlers.LoggingMiddleware)

	// --- Task routes ---
	r.HandleFunc("/tasks/list", handlers.ListTasksHandler).Methods("GET")
	r.HandleFunc("/tasks/create", handlers.CreateTaskHandler).Methods("POST")
	r.HandleFunc("/tasks/update/{id}", handlers.UpdateTaskHandler).Methods("PUT")
	r.HandleFunc("/tasks/delete/{id}", handlers.DeleteTaskHandler).Methods("DELETE")
	r.HandleFunc("/tasks/assignees", handlers.ListAssigneesHandler).Methods("GET")
	r.HandleFunc("/tasks/categories", handlers.ListCategoriesHandler).Methods("GET")
	r.HandleFunc("/tasks/statuses", handlers.ListStatusesHandler).Methods("GET")

	// --- Derived statistics ---
	r.HandleFunc("/stats/categories", handlers.CategoryStatsHandler).Methods("GET")
	r.HandleFunc("/stats/assignees", handlers.AssigneeStatsHandler).Methods("GET")
	r.HandleFunc("/dashboard/overview", handlers.DashboardOverviewHandler).Methods("GET")

	// --- Screen design documents ---
	r.HandleFunc("/screen-designs/list", handlers.ListScreenDesignsHandler).Methods("GET")
	r.HandleFunc("/screen-designs/create", handlers.CreateScreenDesignHandler).Methods("POST")
	r.HandleFunc("/screen-designs/delete/{id}", handlers.DeleteScreenDesignHandler).Methods("DELETE")
	r.HandleFunc("/screen-designs/files/delete/{id}", handlers.DeleteScreenDesignFileHandler).Methods("DELETE")

	// CORS configuration
	headers := gorillahandlers.AllowedHeaders([]string{"X-Requested-With", "Content-Type", "Authorization"})
	methods := gorillahandlers.AllowedMethods([]string{"GET", "POST", "PUT", "DELETE", "OPTIONS"})

	allowedOriginsEnv := os.Getenv("CORS_ALLOWED_ORIGINS")
	var allowedOrigins []string
	if allowedOriginsEnv == "" {
		allowedOrigins = []string{"*"}
		utilities.LogInfo("CORS_ALLOWED_ORIGINS not set, allowing all origins ('*'). Set it for better security in production.")
	} else {
		allowedOrigins = strings.Split(allowedOriginsEnv, ",")
	}
	origins := gorillahandlers.AllowedOrigins(allowedOrigins)
	utilities.LogInfo("Configuring CORS with allowed origins: %v", allowedOrigins)

	handler := gorillahandlers.CORS(headers, methods, origins)(r)

	port := os.Getenv("SERVER_PORT")
	if port == "" {
		port = "8080"
	}

	utilities.LogInfo("Server started on port %s", port)
	log.Fatal(http.ListenAndServe(":"+port, handler))
}
