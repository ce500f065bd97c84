package http

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	authDomain "github.com/allisson/credentials/internal/auth/domain"
	authUseCase "github.com/allisson/credentials/internal/auth/usecase"
	"github.com/allisson/credentials/internal/httputil"
)

// AuthMechanismBasic is recorded for requests authenticated with client credentials.
const AuthMechanismBasic = "basic"

// AuthenticationMiddleware authenticates requests with HTTP Basic credentials where
// the username is the client id and the password is the client secret. The client is
// stored in the request context.
//
// Missing or malformed credentials and wrong secrets are 401. Inactive clients are 403.
func AuthenticationMiddleware(clientUseCase authUseCase.ClientUseCase, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		username, secret, ok := c.Request.BasicAuth()
		if !ok || username == "" || secret == "" {
			logger.Debug("authentication failed: missing basic credentials")
			c.Header("WWW-Authenticate", `Basic realm="credentials"`)
			httputil.HandleErrorGin(c, authDomain.ErrInvalidClientCredentials, logger)
			c.Abort()
			return
		}

		clientID, err := uuid.Parse(username)
		if err != nil {
			logger.Debug("authentication failed: client id is not a uuid")
			httputil.HandleErrorGin(c, authDomain.ErrInvalidClientCredentials, logger)
			c.Abort()
			return
		}

		client, err := clientUseCase.Authenticate(c.Request.Context(), clientID, secret)
		if err != nil {
			logger.Debug("authentication failed", slog.String("client_id", clientID.String()), slog.Any("error", err))
			httputil.HandleErrorGin(c, err, logger)
			c.Abort()
			return
		}

		c.Request = c.Request.WithContext(WithClient(c.Request.Context(), client))
		c.Next()
	}
}
