package v1

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/eventhive/ticketing-api/internal/api/handler/v1/response"
	"github.com/eventhive/ticketing-api/internal/domain"
)

// getUserFromContext resolves the authenticated user from the userID the JWT
// middleware stored in the request context.
func getUserFromContext(ctx *gin.Context, uSvc UserService) (domain.User, *response.Err) {
	rawID, exists := ctx.Get("userID")
	if !exists {
		return domain.User{}, response.ErrUnauthorized("missing authentication")
	}

	userID, ok := rawID.(uint)
	if !ok {
		return domain.User{}, response.ErrInternalServerError(fmt.Errorf("unexpected userID type %T in context", rawID))
	}

	user, err := uSvc.GetUser(ctx.Request.Context(), userID)
	if err != nil {
		return domain.User{}, response.ErrUnauthorized("unknown user")
	}

	return user, nil
}
