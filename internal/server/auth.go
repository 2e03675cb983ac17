package server

import (
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	authdomain "github.com/smallbiznis/clinicdesk/internal/auth/domain"
	obscontext "github.com/smallbiznis/clinicdesk/internal/observability/context"
	"github.com/smallbiznis/clinicdesk/internal/observability/logger"
	"go.uber.org/zap"
)

const contextPrincipalKey = "principal"

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token     string               `json:"token"`
	ExpiresAt time.Time            `json:"expires_at"`
	User      authdomain.Principal `json:"user"`
}

func (s *Server) Login(c *gin.Context) {
	if !s.admitLogin(c) {
		return
	}

	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	username := strings.TrimSpace(req.Username)
	if username == "" || req.Password == "" {
		AbortWithError(c, newValidationError("credentials", "required", "username and password are required"))
		return
	}

	result, err := s.authsvc.Login(c.Request.Context(), authdomain.LoginRequest{
		Username:  username,
		Password:  req.Password,
		IPAddress: c.ClientIP(),
	})
	if err != nil {
		logger.FromContext(c.Request.Context()).Info("login rejected",
			zap.String("username", username),
			zap.String("client_ip", c.ClientIP()),
		)
		AbortWithError(c, err)
		return
	}

	s.sessions.Set(c, result.Token, result.ExpiresAt)

	c.JSON(http.StatusOK, gin.H{"data": loginResponse{
		Token:     result.Token,
		ExpiresAt: result.ExpiresAt,
		User:      result.Principal,
	}})
}

// admitLogin applies the per-IP login throttle and writes the 429 itself.
func (s *Server) admitLogin(c *gin.Context) bool {
	if s.loginLimiter == nil {
		return true
	}

	ctx := c.Request.Context()
	res, err := s.loginLimiter.Allow(ctx, c.ClientIP())
	if err != nil {
		logger.FromContext(ctx).Warn("login rate limit check failed", zap.Error(err))
		AbortWithError(c, ErrServiceUnavailable)
		return false
	}
	if res.Allowed {
		return true
	}

	logger.FromContext(ctx).Warn("login rate limit exceeded", zap.String("client_ip", c.ClientIP()))
	if s.obsMetrics != nil {
		s.obsMetrics.IncRateLimited("login")
	}
	c.Header("Retry-After", strconv.Itoa(retryAfterSeconds(res.RetryAfter)))
	AbortWithError(c, ErrRateLimited)
	return false
}

func retryAfterSeconds(d time.Duration) int {
	secs := int(math.Ceil(d.Seconds()))
	if secs < 1 {
		return 1
	}
	return secs
}

func (s *Server) Logout(c *gin.Context) {
	if token, ok := s.sessions.ReadToken(c); ok {
		if err := s.authsvc.Logout(c.Request.Context(), token); err != nil {
			logger.FromContext(c.Request.Context()).Debug("logout of invalid session", zap.Error(err))
		}
	}

	s.sessions.Clear(c)
	c.Status(http.StatusNoContent)
}

func (s *Server) Me(c *gin.Context) {
	principal, ok := principalFromContext(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": principal})
}

func (s *Server) WebAuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := s.sessions.ReadToken(c)
		if !ok {
			AbortWithError(c, ErrUnauthorized)
			return
		}

		principal, err := s.authsvc.Authenticate(c.Request.Context(), token)
		if err != nil {
			AbortWithError(c, err)
			return
		}

		ctx := obscontext.WithActor(c.Request.Context(), principal.Username)
		c.Request = c.Request.WithContext(ctx)
		c.Set(contextPrincipalKey, *principal)
		c.Next()
	}
}

func principalFromContext(c *gin.Context) (authdomain.Principal, bool) {
	value, ok := c.Get(contextPrincipalKey)
	if !ok {
		return authdomain.Principal{}, false
	}
	principal, ok := value.(authdomain.Principal)
	return principal, ok
}
