package middlewares

import (
	"context"
	"net/http"
	"strings"

	"stabsurvival/internal/ports"
)

type contextKey string

const SessionIDKey contextKey = "sessionID"

// AuthMiddleware cria um middleware para validação do token de sessão.
func AuthMiddleware(tokenService ports.TokenService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		fn := func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				http.Error(w, "Token de sessão requerido", http.StatusUnauthorized)
				return
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				http.Error(w, "Formato de token inválido (esperado: Bearer <token>)", http.StatusUnauthorized)
				return
			}

			sessionID, err := tokenService.ValidateToken(parts[1])
			if err != nil {
				http.Error(w, "Token inválido ou expirado: "+err.Error(), http.StatusUnauthorized)
				return
			}

			// Injeta o ID de sessão no contexto
			ctx := context.WithValue(r.Context(), SessionIDKey, sessionID)
			next.ServeHTTP(w, r.WithContext(ctx))
		}
		return http.HandlerFunc(fn)
	}
}
