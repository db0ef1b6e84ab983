package session

import (
	"net/http"
	"time"

	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"storefront/internal/auth"
)

const (
	// CookieName is the name of the session cookie.
	CookieName = "sid"

	contextKey      = "session"
	tokenContextKey = "session_id"
)

// ManagerConfig configures the session cookie.
type ManagerConfig struct {
	TTL    time.Duration
	Secure bool
}

// Manager loads sessions for incoming requests and commits them on the way out.
type Manager struct {
	store  Store
	tokens *auth.JWTService
	cfg    ManagerConfig
}

// NewManager creates a session manager.
func NewManager(store Store, tokens *auth.JWTService, cfg ManagerConfig) *Manager {
	if cfg.TTL <= 0 {
		cfg.TTL = auth.DefaultSessionExpiry
	}
	return &Manager{store: store, tokens: tokens, cfg: cfg}
}

// Middleware returns the middleware chain: cookie token verification followed by
// session loading. Requests without a valid cookie continue anonymously.
func (m *Manager) Middleware() []echo.MiddlewareFunc {
	return []echo.MiddlewareFunc{
		echojwt.WithConfig(echojwt.Config{
			ContextKey:  tokenContextKey,
			TokenLookup: "cookie:" + CookieName,
			ParseTokenFunc: func(_ echo.Context, token string) (interface{}, error) {
				return m.tokens.ExtractSessionID(token)
			},
			ContinueOnIgnoredError: true,
			ErrorHandler: func(echo.Context, error) error {
				return nil
			},
		}),
		m.load,
	}
}

func (m *Manager) load(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		var sess *Session
		if id, ok := c.Get(tokenContextKey).(string); ok && id != "" {
			data, found, err := m.store.Load(ctx, id)
			if err != nil {
				log.Error().Err(err).Str("request_id", requestID(c)).Msg("load session")
			}
			if found {
				sess = New(id, data, true)
			}
		}
		if sess == nil {
			sess = New(auth.NewSessionID(), Data{}, false)
		}

		c.Set(contextKey, sess)
		c.Response().Before(func() {
			m.commit(c, sess)
		})
		return next(c)
	}
}

// commit writes the session result and the matching cookie. It runs once, just
// before the response header is written.
func (m *Manager) commit(c echo.Context, sess *Session) {
	if !sess.Changed() {
		return
	}
	ctx := c.Request().Context()

	if sess.destroyed {
		if sess.persisted {
			if err := m.store.Delete(ctx, sess.id); err != nil {
				log.Error().Err(err).Str("request_id", requestID(c)).Msg("destroy session")
			}
		}
		m.expireCookie(c)
		return
	}

	data := sess.Result()
	if sess.persisted && sess.OnlyClearsFlashes() {
		m.clearFlashes(c, sess.id, data)
		return
	}

	id := sess.id
	if sess.renew || data.IsZero() {
		if sess.persisted {
			if err := m.store.Delete(ctx, id); err != nil {
				log.Error().Err(err).Str("request_id", requestID(c)).Msg("drop old session")
			}
		}
		id = auth.NewSessionID()
	}

	if data.IsZero() {
		if sess.persisted {
			m.expireCookie(c)
		}
		return
	}

	if err := m.store.Save(ctx, id, data, m.cfg.TTL); err != nil {
		log.Error().Err(err).Str("request_id", requestID(c)).Msg("save session")
		return
	}

	token, err := m.tokens.GenerateSessionToken(id)
	if err != nil {
		log.Error().Err(err).Str("request_id", requestID(c)).Msg("sign session")
		return
	}
	c.SetCookie(&http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(m.cfg.TTL / time.Second),
		HttpOnly: true,
		Secure:   m.cfg.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// clearFlashes writes a record whose banners were consumed. The cookie is left
// as is, and a record removed or renewed meanwhile by another request stays gone.
func (m *Manager) clearFlashes(c echo.Context, id string, data Data) {
	ctx := c.Request().Context()

	var err error
	if data.IsZero() {
		err = m.store.Delete(ctx, id)
	} else {
		_, err = m.store.Replace(ctx, id, data, m.cfg.TTL)
	}
	if err != nil {
		log.Error().Err(err).Str("request_id", requestID(c)).Msg("clear session banners")
	}
}

func (m *Manager) expireCookie(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   m.cfg.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// FromContext returns the request's session. Without the middleware it returns a
// fresh anonymous session that is never stored.
func FromContext(c echo.Context) *Session {
	if sess, ok := c.Get(contextKey).(*Session); ok {
		return sess
	}
	sess := New("", Data{}, false)
	c.Set(contextKey, sess)
	return sess
}

func requestID(c echo.Context) string {
	return c.Response().Header().Get(echo.HeaderXRequestID)
}
