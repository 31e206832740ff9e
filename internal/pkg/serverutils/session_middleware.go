package serverutils

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const sessionKeyLocal = "session_key"

type SessionCookieConfig struct {
	Secret     string
	CookieName string
	TTL        time.Duration
	Secure     bool
}

// SessionMiddleware resolves the session key from a signed cookie, issuing
// a new key on first contact or when the cookie does not verify.
func SessionMiddleware(cfg SessionCookieConfig) fiber.Handler {
	if cfg.CookieName == "" {
		cfg.CookieName = "sessionid"
	}
	if cfg.TTL <= 0 {
		cfg.TTL = time.Hour
	}
	secret := []byte(cfg.Secret)

	return func(ctx *fiber.Ctx) error {
		key, ok := parseSessionToken(ctx.Cookies(cfg.CookieName), secret)
		if !ok {
			key = uuid.NewString()
		}

		// Re-issued on every request so the cookie slides with the store TTL.
		token, err := signSessionToken(key, secret, cfg.TTL)
		if err != nil {
			return err
		}
		ctx.Cookie(&fiber.Cookie{
			Name:     cfg.CookieName,
			Value:    token,
			Path:     "/",
			Expires:  time.Now().Add(cfg.TTL),
			HTTPOnly: true,
			Secure:   cfg.Secure,
			SameSite: fiber.CookieSameSiteLaxMode,
		})

		ctx.Locals(sessionKeyLocal, key)
		return ctx.Next()
	}
}

// SessionKey returns the key stored by SessionMiddleware.
func SessionKey(ctx *fiber.Ctx) (string, bool) {
	key, ok := ctx.Locals(sessionKeyLocal).(string)
	return key, ok && key != ""
}

func signSessionToken(key string, secret []byte, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   key,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

func parseSessionToken(tokenStr string, secret []byte) (string, bool) {
	if tokenStr == "" {
		return "", false
	}

	var claims jwt.RegisteredClaims
	token, err := jwt.ParseWithClaims(tokenStr, &claims, func(t *jwt.Token) (interface{}, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		return "", false
	}

	if _, err := uuid.Parse(claims.Subject); err != nil {
		return "", false
	}
	return claims.Subject, true
}
