package pkgauth

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/Parth-bot-crypto26/ChemicalVisualizer/internal/pkg/pkgrouter"
)

// Identity is the verified caller identity attached to a request.
type Identity struct {
	Username string
}

type identityContextKey struct{}

// GetIdentity returns the identity stored in the context and whether one is present.
func GetIdentity(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityContextKey{}).(Identity)
	return id, ok
}

// SetIdentity stores a verified identity into the context.
func SetIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityContextKey{}, id)
}

// Verifier resolves an opaque bearer token to an identity.
type Verifier interface {
	// Verify returns the identity bound to the token, or false if the token is unknown.
	Verify(ctx context.Context, token string) (Identity, bool)
}

// StaticVerifier is a Verifier backed by a fixed token-to-username table.
//
// It stands in for the external identity provider: tokens are issued out of
// band and listed in configuration.
type StaticVerifier struct {
	tokens map[string]string
}

// NewStaticVerifier builds a StaticVerifier from a token->username map.
func NewStaticVerifier(tokens map[string]string) *StaticVerifier {
	cloned := make(map[string]string, len(tokens))
	for token, username := range tokens {
		if token == "" || username == "" {
			continue
		}
		cloned[token] = username
	}
	return &StaticVerifier{tokens: cloned}
}

func (v *StaticVerifier) Verify(_ context.Context, token string) (Identity, bool) {
	username, ok := v.tokens[token]
	if !ok {
		return Identity{}, false
	}
	return Identity{Username: username}, true
}

// extractToken pulls the credential out of the Authorization header.
//
// Both "Bearer <token>" and the legacy "Token <token>" scheme used by the
// desktop client are accepted.
func extractToken(header string) string {
	header = strings.TrimSpace(header)
	if header == "" {
		return ""
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 {
		return ""
	}

	switch strings.ToLower(parts[0]) {
	case "bearer", "token":
		return strings.TrimSpace(parts[1])
	default:
		return ""
	}
}

// Middleware rejects requests without a verifiable credential (401) and
// stores the resolved identity in the request context otherwise.
func Middleware(verifier Verifier) pkgrouter.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := extractToken(r.Header.Get("Authorization"))
			if token == "" {
				writeUnauthorized(r.Context(), w, "authentication required")
				return
			}

			id, ok := verifier.Verify(r.Context(), token)
			if !ok {
				writeUnauthorized(r.Context(), w, "invalid credentials")
				return
			}

			next.ServeHTTP(w, r.WithContext(SetIdentity(r.Context(), id)))
		})
	}
}

func writeUnauthorized(ctx context.Context, w http.ResponseWriter, msg string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusUnauthorized)
	if err := json.NewEncoder(w).Encode(map[string]string{"message": msg}); err != nil {
		slog.ErrorContext(ctx, "server: failed to encode data to json", "error", err)
	}
}
