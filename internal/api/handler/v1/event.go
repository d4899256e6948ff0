package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/eventhive/ticketing-api/internal/api/handler/v1/request"
	"github.com/eventhive/ticketing-api/internal/api/handler/v1/response"
	"github.com/eventhive/ticketing-api/internal/domain"
	"github.com/eventhive/ticketing-api/internal/pkg/policy"
	"github.com/eventhive/ticketing-api/internal/service"
)

type EventService interface {
	GetEvents(ctx context.Context) ([]domain.Event, error)
	GetEvent(ctx context.Context, id uint) (domain.Event, error)
	CreateEvent(ctx context.Context, event domain.Event) (domain.Event, error)
	SeedDemoEvents(ctx context.Context) ([]domain.Event, error)
}

type EventHandler struct {
	svc    EventService
	uSvc   UserService
	policy *policy.Policy
}

func NewEventHandler(svc EventService, uSvc UserService, pol *policy.Policy) *EventHandler {
	return &EventHandler{
		svc:    svc,
		uSvc:   uSvc,
		policy: pol,
	}
}

// HandleGetEvents godoc
// @Summary      List all events
// @Tags         events
// @Produce      json
// @Success      200  {array}   domain.Event
// @Failure      500  {object}  response.Err
// @Router       /events [get]
func (h *EventHandler) HandleGetEvents(ctx *gin.Context) {
	events, err := h.svc.GetEvents(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandleGetEvents -> h.svc.GetEvents -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, events)
}

// HandleGetEvent godoc
// @Summary      Get an event by ID
// @Tags         events
// @Produce      json
// @Param        eventID  path      int  true  "event ID"
// @Success      200      {object}  domain.Event
// @Failure      400      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /events/{eventID} [get]
func (h *EventHandler) HandleGetEvent(ctx *gin.Context) {
	rawID := ctx.Param("eventID")
	eventID, err := strconv.ParseUint(rawID, 10, 64)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(fmt.Errorf("invalid event ID: %w", err)))

		return
	}

	event, err := h.svc.GetEvent(ctx.Request.Context(), uint(eventID))
	if err != nil {
		if errors.Is(err, service.ErrEventNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("event", "ID", eventID))

			return
		}

		err = fmt.Errorf("v1.HandleGetEvent -> h.svc.GetEvent -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, event)
}

// HandleCreateEvent godoc
// @Summary      Create a new event
// @Description  Creates an event with an optional set of pass tiers. Requires the manage-events capability.
// @Tags         events
// @Accept       json
// @Produce      json
// @Param        input  body      request.CreateEventRequest  true  "event details"
// @Success      201    {object}  domain.Event
// @Failure      400    {object}  response.Err
// @Failure      401    {object}  response.Err
// @Failure      403    {object}  response.Err
// @Failure      500    {object}  response.Err
// @Router       /events [post]
// @Security BearerAuth
func (h *EventHandler) HandleCreateEvent(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)

		return
	}

	if !h.policy.Allows(user.Role, policy.CapManageEvents) {
		response.RenderErr(ctx, response.ErrPermissionDenied(fmt.Errorf("user %v is not allowed to manage events", user.ID)))

		return
	}

	var input request.CreateEventRequest
	if err := ctx.ShouldBindJSON(&input); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := input.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	parsedDate, err := time.Parse("2006-01-02", input.Date)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(fmt.Errorf("invalid date format: %v", err)))

		return
	}

	passes := make([]domain.PassTier, 0, len(input.Passes))
	for _, pass := range input.Passes {
		passes = append(passes, domain.PassTier{
			Name:              pass.Name,
			Price:             pass.Price,
			Description:       pass.Description,
			InitialAllocation: pass.InitialAllocation,
		})
	}

	event := domain.Event{
		Name:            input.Name,
		Description:     input.Description,
		Category:        input.Category,
		Organizer:       input.Organizer,
		Image:           input.Image,
		LocationName:    input.LocationName,
		LocationAddress: input.LocationAddress,
		Lat:             input.Lat,
		Lng:             input.Lng,
		Date:            parsedDate,
		Time:            input.Time,
		Price:           input.Price,
		MaxCapacity:     input.MaxCapacity,
		Passes:          passes,
	}

	created, err := h.svc.CreateEvent(ctx.Request.Context(), event)
	if err != nil {
		if errors.Is(err, service.ErrInvalidEvent) {
			response.RenderErr(ctx, response.ErrBadRequest(err))

			return
		}

		err = fmt.Errorf("v1.HandleCreateEvent -> h.svc.CreateEvent -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusCreated, created)
}

// HandleSeedEvents godoc
// @Summary      Seed demo events
// @Description  Inserts the demo catalogue when no events exist yet. Requires the manage-events capability.
// @Tags         events
// @Produce      json
// @Success      200  {array}   domain.Event
// @Failure      401  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /events/seed [post]
// @Security BearerAuth
func (h *EventHandler) HandleSeedEvents(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)

		return
	}

	if !h.policy.Allows(user.Role, policy.CapManageEvents) {
		response.RenderErr(ctx, response.ErrPermissionDenied(fmt.Errorf("user %v is not allowed to manage events", user.ID)))

		return
	}

	events, err := h.svc.SeedDemoEvents(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandleSeedEvents -> h.svc.SeedDemoEvents -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, events)
}
