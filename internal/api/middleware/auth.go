package middleware

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

type contextKey string

const actorKey contextKey = "actor"

const (
	msgMissingToken = "отсутствует токен авторизации"
	msgInvalidToken = "некорректный токен авторизации"
)

var (
	// ErrMissingToken заголовок Authorization отсутствует или не Bearer
	ErrMissingToken = errors.New("auth: missing bearer token")

	// ErrInvalidToken токен не прошел проверку подписи или содержит некорректные claims
	ErrInvalidToken = errors.New("auth: invalid token")
)

// Claims claims токена, выпущенного сервисом авторизации
// sub - ID пользователя, pid - ID клиента или специалиста в зависимости от роли
type Claims struct {
	Role      string `json:"role"`
	ProfileID int64  `json:"pid"`
	jwt.RegisteredClaims
}

// Authenticator проверяет HMAC-подписанные JWT и кладет участника в контекст
type Authenticator struct {
	secret []byte
	issuer string
}

// NewAuthenticator создает проверку токенов. Пустой issuer отключает проверку iss
func NewAuthenticator(secret, issuer string) *Authenticator {
	return &Authenticator{
		secret: []byte(secret),
		issuer: issuer,
	}
}

// Required пропускает запрос только с валидным токеном
func (a *Authenticator) Required(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		actor, err := a.authenticate(r)
		if err != nil {
			if errors.Is(err, ErrMissingToken) {
				handlers.RespondUnauthorized(w, msgMissingToken)
				return
			}
			handlers.RespondUnauthorized(w, msgInvalidToken)
			return
		}

		next.ServeHTTP(w, r.WithContext(WithActor(r.Context(), actor)))
	})
}

// Optional кладет участника в контекст, если токен передан и валиден
// Используется на публичных маршрутах, где владелец видит больше данных
func (a *Authenticator) Optional(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		actor, err := a.authenticate(r)
		if err == nil {
			r = r.WithContext(WithActor(r.Context(), actor))
		}
		next.ServeHTTP(w, r)
	})
}

func (a *Authenticator) authenticate(r *http.Request) (domain.Actor, error) {
	header := r.Header.Get("Authorization")
	if header == "" || !strings.HasPrefix(header, "Bearer ") {
		return domain.Actor{}, ErrMissingToken
	}
	if len(a.secret) == 0 {
		return domain.Actor{}, ErrInvalidToken
	}

	return a.Parse(strings.TrimPrefix(header, "Bearer "))
}

// Parse проверяет токен и возвращает участника
func (a *Authenticator) Parse(tokenString string) (domain.Actor, error) {
	options := []jwt.ParserOption{jwt.WithValidMethods([]string{
		jwt.SigningMethodHS256.Alg(),
		jwt.SigningMethodHS384.Alg(),
		jwt.SigningMethodHS512.Alg(),
	})}
	if a.issuer != "" {
		options = append(options, jwt.WithIssuer(a.issuer))
	}

	claims := Claims{}
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return a.secret, nil
	}, options...)
	if err != nil || !token.Valid {
		return domain.Actor{}, ErrInvalidToken
	}

	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil || userID <= 0 {
		return domain.Actor{}, ErrInvalidToken
	}

	role := domain.ActorRole(claims.Role)
	if !role.IsValid() || claims.ProfileID <= 0 {
		return domain.Actor{}, ErrInvalidToken
	}

	return domain.Actor{UserID: userID, Role: role, ID: claims.ProfileID}, nil
}

// WithActor кладет участника в контекст
func WithActor(ctx context.Context, actor domain.Actor) context.Context {
	return context.WithValue(ctx, actorKey, actor)
}

// GetActor извлекает участника из контекста
func GetActor(ctx context.Context) (domain.Actor, bool) {
	actor, ok := ctx.Value(actorKey).(domain.Actor)
	return actor, ok
}
