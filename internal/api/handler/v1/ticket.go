package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/eventhive/ticketing-api/internal/api/handler/v1/request"
	"github.com/eventhive/ticketing-api/internal/api/handler/v1/response"
	"github.com/eventhive/ticketing-api/internal/domain"
	"github.com/eventhive/ticketing-api/internal/service"
)

type TicketService interface {
	IssueTicket(ctx context.Context, userID uint, req service.IssueRequest) (domain.TicketView, error)
	GetOwnedTicket(ctx context.Context, userID uint, ticketID string) (domain.TicketView, error)
	ListOwnedTickets(ctx context.Context, userID uint) ([]domain.TicketView, error)
	ScanTicket(ctx context.Context, scannerID uint, ticketID string) (domain.TicketView, error)
	CancelTicket(ctx context.Context, userID uint, ticketID string) (domain.TicketView, error)
}

type TicketHandler struct {
	svc  TicketService
	uSvc UserService
}

func NewTicketHandler(svc TicketService, uSvc UserService) *TicketHandler {
	return &TicketHandler{
		svc:  svc,
		uSvc: uSvc,
	}
}

// HandleIssueTicket godoc
// @Summary      Purchase tickets for an event
// @Description  Verifies the payment, reserves inventory and issues a ticket with its QR code in one step. Retrying with the same payment ID returns the ticket issued the first time.
// @Tags         tickets
// @Accept       json
// @Produce      json
// @Param        input  body      request.IssueTicketRequest  true  "purchase details"
// @Success      201    {object}  domain.TicketView
// @Failure      400    {object}  response.Err
// @Failure      401    {object}  response.Err
// @Failure      404    {object}  response.Err
// @Failure      409    {object}  response.Err
// @Failure      500    {object}  response.Err
// @Router       /tickets [post]
// @Security BearerAuth
func (h *TicketHandler) HandleIssueTicket(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)

		return
	}

	var input request.IssueTicketRequest
	if err := ctx.ShouldBindJSON(&input); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := input.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	ticket, err := h.svc.IssueTicket(ctx.Request.Context(), user.ID, service.IssueRequest{
		EventID:   input.EventID,
		PassName:  input.PassName,
		Quantity:  input.Quantity,
		PaymentID: input.PaymentID,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEventNotFound):
			response.RenderErr(ctx, response.ErrNotFound("event", "ID", input.EventID))
		case errors.Is(err, service.ErrPassNotFound):
			response.RenderErr(ctx, response.ErrBadRequest(service.ErrPassNotFound))
		case errors.Is(err, service.ErrPaymentNotVerified):
			response.RenderErr(ctx, response.ErrBadRequest(service.ErrPaymentNotVerified))
		case errors.Is(err, service.ErrInsufficientAvailability):
			response.RenderErr(ctx, response.ErrConflict(service.ErrInsufficientAvailability))
		default:
			err = fmt.Errorf("v1.HandleIssueTicket -> h.svc.IssueTicket -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}

		return
	}

	ctx.JSON(http.StatusCreated, ticket)
}

// HandleListTickets godoc
// @Summary      List the authenticated user's tickets
// @Tags         tickets
// @Produce      json
// @Success      200  {array}   domain.TicketView
// @Failure      401  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /tickets [get]
// @Security BearerAuth
func (h *TicketHandler) HandleListTickets(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)

		return
	}

	tickets, err := h.svc.ListOwnedTickets(ctx.Request.Context(), user.ID)
	if err != nil {
		err = fmt.Errorf("v1.HandleListTickets -> h.svc.ListOwnedTickets -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, tickets)
}

// HandleGetTicket godoc
// @Summary      Get one of the authenticated user's tickets
// @Description  Looks the ticket up by its public ID. Tickets belonging to other users are reported as not found.
// @Tags         tickets
// @Produce      json
// @Param        ticketID  path      string  true  "ticket ID"
// @Success      200       {object}  domain.TicketView
// @Failure      401       {object}  response.Err
// @Failure      404       {object}  response.Err
// @Failure      500       {object}  response.Err
// @Router       /tickets/{ticketID} [get]
// @Security BearerAuth
func (h *TicketHandler) HandleGetTicket(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)

		return
	}

	ticketID := ctx.Param("ticketID")

	ticket, err := h.svc.GetOwnedTicket(ctx.Request.Context(), user.ID, ticketID)
	if err != nil {
		if errors.Is(err, service.ErrTicketNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("ticket", "ID", ticketID))

			return
		}

		err = fmt.Errorf("v1.HandleGetTicket -> h.svc.GetOwnedTicket -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, ticket)
}

// HandleScanTicket godoc
// @Summary      Scan a ticket at the door
// @Description  Marks an active ticket as scanned. Requires the scan-tickets capability. A second scan is rejected with a conflict.
// @Tags         tickets
// @Produce      json
// @Param        ticketID  path      string  true  "ticket ID"
// @Success      200       {object}  domain.TicketView
// @Failure      401       {object}  response.Err
// @Failure      403       {object}  response.Err
// @Failure      404       {object}  response.Err
// @Failure      409       {object}  response.Err
// @Failure      500       {object}  response.Err
// @Router       /tickets/{ticketID}/scan [post]
// @Security BearerAuth
func (h *TicketHandler) HandleScanTicket(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)

		return
	}

	ticketID := ctx.Param("ticketID")

	ticket, err := h.svc.ScanTicket(ctx.Request.Context(), user.ID, ticketID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrScanNotAllowed):
			response.RenderErr(ctx, response.ErrPermissionDenied(fmt.Errorf("user %v is not allowed to scan tickets", user.ID)))
		case errors.Is(err, service.ErrTicketNotFound):
			response.RenderErr(ctx, response.ErrNotFound("ticket", "ID", ticketID))
		case errors.Is(err, service.ErrTicketAlreadyScanned):
			response.RenderErr(ctx, response.ErrConflict(service.ErrTicketAlreadyScanned))
		default:
			err = fmt.Errorf("v1.HandleScanTicket -> h.svc.ScanTicket -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}

		return
	}

	ctx.JSON(http.StatusOK, ticket)
}

// HandleCancelTicket godoc
// @Summary      Cancel one of the authenticated user's tickets
// @Description  Cancels an active ticket and releases its seats back to the pool it was reserved from.
// @Tags         tickets
// @Produce      json
// @Param        ticketID  path      string  true  "ticket ID"
// @Success      200       {object}  domain.TicketView
// @Failure      401       {object}  response.Err
// @Failure      404       {object}  response.Err
// @Failure      409       {object}  response.Err
// @Failure      500       {object}  response.Err
// @Router       /tickets/{ticketID}/cancel [post]
// @Security BearerAuth
func (h *TicketHandler) HandleCancelTicket(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)

		return
	}

	ticketID := ctx.Param("ticketID")

	ticket, err := h.svc.CancelTicket(ctx.Request.Context(), user.ID, ticketID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrTicketNotFound):
			response.RenderErr(ctx, response.ErrNotFound("ticket", "ID", ticketID))
		case errors.Is(err, service.ErrTicketAlreadyScanned):
			response.RenderErr(ctx, response.ErrConflict(service.ErrTicketAlreadyScanned))
		default:
			err = fmt.Errorf("v1.HandleCancelTicket -> h.svc.CancelTicket -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}

		return
	}

	ctx.JSON(http.StatusOK, ticket)
}
