package middleware

import (
	"net/http"
	"strings"

	"shareit/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// UserIDHeader carries the caller identity. Authentication happens upstream.
const UserIDHeader = "X-Sharer-User-Id"

// Identity reads the caller id from UserIDHeader and stores it in the request context.
func Identity(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := strings.TrimSpace(r.Header.Get(UserIDHeader))
			if raw == "" {
				utils.ResponseBadRequest(w, "Missing "+UserIDHeader+" header", nil)
				return
			}

			userID, err := uuid.Parse(raw)
			if err != nil || userID == uuid.Nil {
				logger.Warn("Invalid user id header",
					zap.String("value", raw),
					zap.String("path", r.URL.Path))
				utils.ResponseBadRequest(w, "Invalid "+UserIDHeader+" header", nil)
				return
			}

			next.ServeHTTP(w, r.WithContext(utils.SetUserContext(r.Context(), userID)))
		})
	}
}
