package v1

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/eventhive/ticketing-api/internal/api/handler/v1/response"
	"github.com/eventhive/ticketing-api/internal/domain"
	"github.com/eventhive/ticketing-api/internal/pkg/policy"
)

type StatsService interface {
	CollectStats(ctx context.Context) (domain.Stats, error)
}

type AdminHandler struct {
	svc    StatsService
	uSvc   UserService
	policy *policy.Policy
}

func NewAdminHandler(svc StatsService, uSvc UserService, pol *policy.Policy) *AdminHandler {
	return &AdminHandler{
		svc:    svc,
		uSvc:   uSvc,
		policy: pol,
	}
}

// HandleGetStats godoc
// @Summary      Get platform-wide ticketing stats
// @Description  Returns event, ticket and revenue counters. Requires the view-stats capability.
// @Tags         admin
// @Produce      json
// @Success      200  {object}  domain.Stats
// @Failure      401  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /admin/stats [get]
// @Security BearerAuth
func (h *AdminHandler) HandleGetStats(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)

		return
	}

	if !h.policy.Allows(user.Role, policy.CapViewStats) {
		response.RenderErr(ctx, response.ErrPermissionDenied(fmt.Errorf("user %v is not allowed to view stats", user.ID)))

		return
	}

	stats, err := h.svc.CollectStats(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandleGetStats -> h.svc.CollectStats -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, stats)
}
