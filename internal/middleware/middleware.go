package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	"graphblog/internal/logger"
	"graphblog/internal/service"

	"github.com/rs/xid"
)

type Middleware func(http.Handler) http.Handler

type contextKey string

const (
	authKey      contextKey = "auth"
	requestIDKey contextKey = "requestID"
)

const RequestIDHeader = "X-Request-ID"

// Identity is the authenticated caller decoded from the bearer token.
type Identity struct {
	UserID string
	Email  string
}

// TokenParser verifies an access token and returns its claims.
type TokenParser interface {
	ParseToken(tokenString string) (*service.Claims, error)
}

// AuthMiddleware never rejects a request. It only marks the context as
// authenticated when the bearer token is valid; resolvers decide the rest.
func AuthMiddleware(parser TokenParser, log *logger.Logger) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				next.ServeHTTP(w, r)
				return
			}

			// Checking the "Bearer <token>" format
			parts := strings.Fields(authHeader)
			if len(parts) != 2 || parts[0] != "Bearer" {
				log.Debugw("Неверный формат заголовка Authorization", "path", r.URL.Path)
				next.ServeHTTP(w, r)
				return
			}

			claims, err := parser.ParseToken(parts[1])
			if err != nil {
				log.Debugw("Токен отклонён", "path", r.URL.Path, "error", err)
				next.ServeHTTP(w, r)
				return
			}

			ctx := WithIdentity(r.Context(), Identity{UserID: claims.UserID, Email: claims.Email})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func WithIdentity(ctx context.Context, identity Identity) context.Context {
	return context.WithValue(ctx, authKey, identity)
}

// IdentityFromContext reports whether the request was authenticated.
func IdentityFromContext(ctx context.Context) (Identity, bool) {
	identity, ok := ctx.Value(authKey).(Identity)
	return identity, ok && identity.UserID != ""
}

func IsAuth(ctx context.Context) bool {
	_, ok := IdentityFromContext(ctx)
	return ok
}

func CORSMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "OPTIONS, GET, POST, PUT, PATCH, DELETE")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

func (s *statusRecorder) Write(b []byte) (int, error) {
	if s.status == 0 {
		s.status = http.StatusOK
	}
	n, err := s.ResponseWriter.Write(b)
	s.bytes += n
	return n, err
}

func (s *statusRecorder) Unwrap() http.ResponseWriter {
	return s.ResponseWriter
}

// inboundRequestID returns the caller's request id if it is a well-formed xid.
func inboundRequestID(r *http.Request) string {
	id, err := xid.FromString(r.Header.Get(RequestIDHeader))
	if err != nil {
		return ""
	}
	return id.String()
}

func LoggingMiddleware(log *logger.Logger) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			requestID := inboundRequestID(r)
			if requestID == "" {
				requestID = xid.New().String()
			}
			w.Header().Set(RequestIDHeader, requestID)

			rec := &statusRecorder{ResponseWriter: w}
			ctx := context.WithValue(r.Context(), requestIDKey, requestID)

			next.ServeHTTP(rec, r.WithContext(ctx))

			if rec.status == 0 {
				rec.status = http.StatusOK
			}

			log.Infow("HTTP запрос",
				"requestID", requestID,
				"method", r.Method,
				"path", r.URL.Path,
				"status", rec.status,
				"bytes", rec.bytes,
				"duration", time.Since(start),
			)
		})
	}
}

func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

// Chain wraps h so that the last middleware is the outermost one.
func Chain(h http.Handler, middlewares ...Middleware) http.Handler {
	for _, m := range middlewares {
		h = m(h)
	}
	return h
}
