package httpserver

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/hirewire/hirewire/internal/domain"
	"github.com/hirewire/hirewire/internal/metrics"
	apperrors "github.com/hirewire/hirewire/internal/platform/errors"
)

// Context keys set by the guard for downstream handlers.
const (
	ctxKeySession = "session"
	ctxKeyUserID  = "userID"
)

const tokenCookieName = "token"

type accessLevel int

const (
	accessPublic accessLevel = iota
	accessAuthenticated
	accessRole
)

type guardRule struct {
	prefix string
	level  accessLevel
	role   domain.Role
}

// guardRules is evaluated top to bottom, first prefix match wins, so the
// more specific dashboard paths must come before the bare /dashboard entry.
var guardRules = []guardRule{
	{prefix: "/dashboard/seeker", level: accessRole, role: domain.RoleSeeker},
	{prefix: "/dashboard/employer", level: accessRole, role: domain.RoleEmployer},
	{prefix: "/dashboard", level: accessAuthenticated},
	{prefix: "/seekers", level: accessAuthenticated},
	{prefix: "/api", level: accessAuthenticated},
}

// entryPaths are public pages that bounce already-authenticated subjects
// back to their dashboard.
var entryPaths = map[string]bool{
	"/login":    true,
	"/register": true,
}

func classifyPath(path string) guardRule {
	for _, rule := range guardRules {
		if strings.HasPrefix(path, rule.prefix) {
			return rule
		}
	}
	return guardRule{level: accessPublic}
}

// sessionGuard is the single auth middleware. It decodes the session token
// when present, decides access per the path classification, and stores the
// verified session in the echo context. Handlers never re-verify tokens.
func (s *Server) sessionGuard(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		path := c.Request().URL.Path
		session, authenticated := s.decodeSession(c)

		if authenticated {
			c.Set(ctxKeySession, session)
			c.Set(ctxKeyUserID, session.Subject.ID)
		}

		// Authenticated subjects have no business on the entry pages.
		if entryPaths[path] {
			if authenticated {
				return c.Redirect(http.StatusFound, "/dashboard")
			}
			return next(c)
		}

		rule := classifyPath(path)
		if rule.level == accessPublic {
			return next(c)
		}

		if !authenticated {
			metrics.GuardDenialsTotal.WithLabelValues("unauthenticated").Inc()
			if isAPIPath(path) {
				return apperrors.UnauthenticatedError("authentication required")
			}
			return c.Redirect(http.StatusFound, loginRedirect(c.Request().URL))
		}

		if rule.level == accessRole && session.Subject.Role != rule.role {
			metrics.GuardDenialsTotal.WithLabelValues("wrong_role").Inc()
			if isAPIPath(path) {
				return apperrors.ForbiddenError("insufficient role")
			}
			// Browser callers land back on their own dashboard.
			return c.Redirect(http.StatusFound, "/dashboard")
		}

		return next(c)
	}
}

// decodeSession extracts and verifies the session token from the cookie or
// the Authorization header. Any decode failure (malformed, bad signature,
// expired) counts as unauthenticated; the guard does not distinguish.
func (s *Server) decodeSession(c echo.Context) (domain.Session, bool) {
	raw := ""
	if cookie, err := c.Cookie(tokenCookieName); err == nil && cookie.Value != "" {
		raw = cookie.Value
	} else if auth := c.Request().Header.Get(echo.HeaderAuthorization); strings.HasPrefix(auth, "Bearer ") {
		raw = strings.TrimPrefix(auth, "Bearer ")
	}
	if raw == "" {
		return domain.Session{}, false
	}

	session, err := s.codec.Decode(raw)
	if err != nil {
		return domain.Session{}, false
	}
	return session, true
}

func isAPIPath(path string) bool {
	return strings.HasPrefix(path, "/api")
}

// loginRedirect preserves the originally requested path so the login flow
// can send the subject back after authenticating.
func loginRedirect(target *url.URL) string {
	next := target.Path
	if target.RawQuery != "" {
		next += "?" + target.RawQuery
	}
	return "/login?next=" + url.QueryEscape(next)
}

// sessionFromContext returns the session the guard stored. Handlers behind
// the guard may assume it is present.
func sessionFromContext(c echo.Context) (domain.Session, error) {
	session, ok := c.Get(ctxKeySession).(domain.Session)
	if !ok {
		return domain.Session{}, apperrors.UnauthenticatedError("no session in context")
	}
	return session, nil
}
