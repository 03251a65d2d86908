package middleware

import (
	"context"
	"net/http"
	"strings"

	"coursehub/internal/util"

	"github.com/rs/zerolog"
	"google.golang.org/api/idtoken"
)

// TokenValidator verifies a Google-signed OIDC token for an audience.
type TokenValidator func(ctx context.Context, token, audience string) (*idtoken.Payload, error)

// PubSubAuthMiddleware validates a JWT from a Pub/Sub push request.
// It bypasses authentication if isLocalDev is true.
func PubSubAuthMiddleware(isLocalDev bool, audience, expectedEmail string, logger zerolog.Logger) func(http.Handler) http.Handler {
	return pubSubAuth(isLocalDev, audience, expectedEmail, idtoken.Validate, logger)
}

func pubSubAuth(isLocalDev bool, audience, expectedEmail string, validate TokenValidator, logger zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// For local development, bypass the authentication check.
			if isLocalDev {
				logger.Debug().Msg("Skipping Pub/Sub authentication for emulator")
				next.ServeHTTP(w, r)
				return
			}

			if audience == "" || expectedEmail == "" {
				logger.Error().Msg("Pub/Sub auth middleware configured without an audience or expected email; requests will be denied")
				util.WriteError(w, http.StatusInternalServerError, "Internal Server Error")
				return
			}

			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				logger.Warn().Msg("Missing Authorization header in Pub/Sub push request")
				util.WriteError(w, http.StatusUnauthorized, "Unauthorized: missing authorization header")
				return
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				logger.Warn().Msg("Malformed Authorization header in Pub/Sub push request")
				util.WriteError(w, http.StatusUnauthorized, "Unauthorized: malformed authorization header")
				return
			}
			tokenString := parts[1]
			payload, err := validate(r.Context(), tokenString, audience)
			if err != nil {
				logger.Error().Err(err).Msg("Failed to validate Pub/Sub JWT")
				util.WriteError(w, http.StatusUnauthorized, "Unauthorized: invalid token")
				return
			}

			email, ok := payload.Claims["email"].(string)
			if !ok || email == "" {
				logger.Error().Msg("Email claim missing or invalid in Pub/Sub JWT")
				util.WriteError(w, http.StatusForbidden, "Forbidden: invalid email claim in token")
				return
			}

			if email != expectedEmail {
				logger.Warn().
					Str("token_email", email).
					Str("expected_email", expectedEmail).
					Msg("Pub/Sub JWT email does not match expected service account")
				util.WriteError(w, http.StatusForbidden, "Forbidden: token email does not match expected service account")
				return
			}

			logger.Info().
				Str("email", email).
				Str("issuer", payload.Issuer).
				Msg("Authenticated Pub/Sub push request")

			next.ServeHTTP(w, r)
		})
	}
}
