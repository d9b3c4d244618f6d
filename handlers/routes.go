package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"gymstream/api"
	"gymstream/internal/auth"
	"gymstream/internal/database"
	"gymstream/utils"
)

// NewHandler assembles the full HTTP surface: public auth endpoints on the
// root router, everything else behind the bearer-token middleware under /api.
func NewHandler(db *database.DB, tokens *auth.TokenManager, logger *slog.Logger) http.Handler {
	conn := db.Connection()

	users := database.NewUserRepository(conn)
	memberships := database.NewMembershipRepository(conn)
	equipment := database.NewEquipmentRepository(conn)
	classes := database.NewGymClassRepository(conn)
	sessions := database.NewTrainingSessionRepository(conn)
	registrations := database.NewClassRegistrationRepository(conn)
	payments := database.NewPaymentRepository(conn)

	authHandler := NewAuthHandler(users, tokens, logger)

	router := utils.NewRouter()

	// Signin is the only endpoint worth brute-forcing, so it alone is
	// rate limited. Public routes must be registered before the /api
	// subrouter or the auth middleware would swallow them.
	limiter := api.NewIPRateLimiter(rate.Every(6*time.Second), 10)
	authHandler.RegisterRoutes(router, api.RateLimitHandlerFunc(limiter, authHandler.Signin))

	protected := router.PathPrefix("/api").Subrouter()
	protected.Use(api.AuthMiddleware(tokens))

	authHandler.RegisterProtectedRoutes(protected)
	NewUsersHandler(users).RegisterRoutes(protected)
	NewMembershipsHandler(memberships).RegisterRoutes(protected)
	NewEquipmentHandler(equipment).RegisterRoutes(protected)
	NewGymClassesHandler(classes).RegisterRoutes(protected)
	NewTrainingSessionsHandler(sessions).RegisterRoutes(protected)
	NewClassRegistrationsHandler(registrations, classes, logger).RegisterRoutes(protected)
	NewPaymentsHandler(payments).RegisterRoutes(protected)

	return router
}
