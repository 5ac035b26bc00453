// Package http exposes the workflow use cases over an echo server.
// Actor identity travels in the X-Worker-ID header; authentication itself
// is handled upstream.
package http

import (
	"errors"
	"net/http"
	"time"

	"workshop/api"
	"workshop/internal/core/application/usecases/commands"
	"workshop/internal/core/application/usecases/queries"
	"workshop/internal/core/domain/model/kernel"
	"workshop/internal/core/domain/model/order"

	"github.com/labstack/echo/v4"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	createOrderHandler     commands.CreateOrderCommandHandler
	updateOrderHandler     commands.UpdateOrderCommandHandler
	cancelOrderHandler     commands.CancelOrderCommandHandler
	deleteOrderHandler     commands.DeleteOrderCommandHandler
	startStepHandler       commands.StartStepCommandHandler
	completeStepHandler    commands.CompleteStepCommandHandler
	updateStepNotesHandler commands.UpdateStepNotesCommandHandler
	blockStepHandler       commands.BlockStepCommandHandler
	unblockStepHandler     commands.UnblockStepCommandHandler

	// Query handlers
	getOrderHandler            queries.GetOrderQueryHandler
	getOrdersHandler           queries.GetOrdersQueryHandler
	listMyJobsHandler          queries.ListMyJobsQueryHandler
	getStepHandler             queries.GetStepQueryHandler
	previewProductStepsHandler queries.PreviewProductStepsQueryHandler
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	createOrderHandler commands.CreateOrderCommandHandler,
	updateOrderHandler commands.UpdateOrderCommandHandler,
	cancelOrderHandler commands.CancelOrderCommandHandler,
	deleteOrderHandler commands.DeleteOrderCommandHandler,
	startStepHandler commands.StartStepCommandHandler,
	completeStepHandler commands.CompleteStepCommandHandler,
	updateStepNotesHandler commands.UpdateStepNotesCommandHandler,
	blockStepHandler commands.BlockStepCommandHandler,
	unblockStepHandler commands.UnblockStepCommandHandler,
	getOrderHandler queries.GetOrderQueryHandler,
	getOrdersHandler queries.GetOrdersQueryHandler,
	listMyJobsHandler queries.ListMyJobsQueryHandler,
	getStepHandler queries.GetStepQueryHandler,
	previewProductStepsHandler queries.PreviewProductStepsQueryHandler,
) *Server {
	return &Server{
		createOrderHandler:         createOrderHandler,
		updateOrderHandler:         updateOrderHandler,
		cancelOrderHandler:         cancelOrderHandler,
		deleteOrderHandler:         deleteOrderHandler,
		startStepHandler:           startStepHandler,
		completeStepHandler:        completeStepHandler,
		updateStepNotesHandler:     updateStepNotesHandler,
		blockStepHandler:           blockStepHandler,
		unblockStepHandler:         unblockStepHandler,
		getOrderHandler:            getOrderHandler,
		getOrdersHandler:           getOrdersHandler,
		listMyJobsHandler:          listMyJobsHandler,
		getStepHandler:             getStepHandler,
		previewProductStepsHandler: previewProductStepsHandler,
	}
}

// RegisterRoutes binds all endpoints onto the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", s.Health)
	e.GET("/openapi.yml", s.OpenAPISpec)

	e.POST("/orders", s.CreateOrder)
	e.GET("/orders", s.GetOrders)
	e.GET("/orders/product-steps-template/:productId", s.PreviewProductSteps)
	e.GET("/orders/:id", s.GetOrder)
	e.PUT("/orders/:id", s.UpdateOrder)
	e.DELETE("/orders/:id", s.DeleteOrder)
	e.POST("/orders/:id/cancel", s.CancelOrder)

	e.GET("/my-jobs", s.ListMyJobs)
	e.GET("/my-jobs/:stepId", s.GetStep)
	e.POST("/my-jobs/:stepId/start", s.StartStep)
	e.POST("/my-jobs/:stepId/complete", s.CompleteStep)
	e.PUT("/my-jobs/:stepId/notes", s.UpdateStepNotes)
	e.POST("/my-jobs/:stepId/block", s.BlockStep)
	e.POST("/my-jobs/:stepId/unblock", s.UnblockStep)
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Healthy")
}

// OpenAPISpec handles GET /openapi.yml - serves the embedded API contract.
func (s *Server) OpenAPISpec(ctx echo.Context) error {
	return ctx.Blob(http.StatusOK, "application/yaml", api.OpenAPISpec)
}

// CreateOrder handles POST /orders - creates a new order with planned steps.
func (s *Server) CreateOrder(ctx echo.Context) error {
	actorID, err := actorID(ctx)
	if err != nil {
		return err
	}

	var request CreateOrderRequest
	if err = ctx.Bind(&request); err != nil {
		return respondBadRequest(ctx, "Invalid request body")
	}

	customerID, err := request.customerID()
	if err != nil {
		return respondBadRequest(ctx, err.Error())
	}
	items, err := request.items()
	if err != nil {
		return respondError(ctx, err)
	}
	overrides, err := request.overrides()
	if err != nil {
		return respondBadRequest(ctx, err.Error())
	}
	priority, err := parsePriority(request.Priority)
	if err != nil {
		return respondError(ctx, err)
	}

	orderID := kernel.NewUUID()
	cmd, err := commands.NewCreateOrderCommand(orderID, actorID, customerID, priority,
		request.Deadline, request.Notes, request.IsStock, items, overrides)
	if err != nil {
		return respondError(ctx, err)
	}

	if err = s.createOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	// Echo the created order back. A creator without ORDER_READ still gets
	// the identifier.
	query, err := queries.NewGetOrderQuery(orderID, actorID)
	if err != nil {
		return respondError(ctx, err)
	}
	response, err := s.getOrderHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return ctx.JSON(http.StatusCreated, map[string]string{"id": orderID.String()})
	}

	return ctx.JSON(http.StatusCreated, orderResponseFrom(response))
}

// GetOrder handles GET /orders/:id.
func (s *Server) GetOrder(ctx echo.Context) error {
	actorID, err := actorID(ctx)
	if err != nil {
		return err
	}
	orderID, err := pathUUID(ctx, "id")
	if err != nil {
		return err
	}

	query, err := queries.NewGetOrderQuery(orderID, actorID)
	if err != nil {
		return respondError(ctx, err)
	}

	response, err := s.getOrderHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, orderResponseFrom(response))
}

// GetOrders handles GET /orders - lists order headers, most urgent first.
func (s *Server) GetOrders(ctx echo.Context) error {
	actorID, err := actorID(ctx)
	if err != nil {
		return err
	}

	query, err := queries.NewGetOrdersQuery(actorID)
	if err != nil {
		return respondError(ctx, err)
	}

	orders, err := s.getOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	response := make([]OrderListItemResponse, 0, len(orders))
	for _, o := range orders {
		response = append(response, orderListItemFrom(o))
	}
	return ctx.JSON(http.StatusOK, response)
}

// UpdateOrder handles PUT /orders/:id - updates priority, deadline and notes.
func (s *Server) UpdateOrder(ctx echo.Context) error {
	actorID, err := actorID(ctx)
	if err != nil {
		return err
	}
	orderID, err := pathUUID(ctx, "id")
	if err != nil {
		return err
	}

	var request UpdateOrderRequest
	if err = ctx.Bind(&request); err != nil {
		return respondBadRequest(ctx, "Invalid request body")
	}
	priority, err := parsePriority(request.Priority)
	if err != nil {
		return respondError(ctx, err)
	}

	cmd, err := commands.NewUpdateOrderCommand(orderID, actorID, priority,
		request.Deadline, request.Notes)
	if err != nil {
		return respondError(ctx, err)
	}

	if err = s.updateOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// DeleteOrder handles DELETE /orders/:id - removes an order no work has
// started on.
func (s *Server) DeleteOrder(ctx echo.Context) error {
	actorID, err := actorID(ctx)
	if err != nil {
		return err
	}
	orderID, err := pathUUID(ctx, "id")
	if err != nil {
		return err
	}

	cmd, err := commands.NewDeleteOrderCommand(orderID, actorID)
	if err != nil {
		return respondError(ctx, err)
	}

	if err = s.deleteOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// CancelOrder handles POST /orders/:id/cancel - withdraws an order while
// keeping its record.
func (s *Server) CancelOrder(ctx echo.Context) error {
	actorID, err := actorID(ctx)
	if err != nil {
		return err
	}
	orderID, err := pathUUID(ctx, "id")
	if err != nil {
		return err
	}

	cmd, err := commands.NewCancelOrderCommand(orderID, actorID)
	if err != nil {
		return respondError(ctx, err)
	}

	if err = s.cancelOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// ListMyJobs handles GET /my-jobs - the actor's bucketed step list.
func (s *Server) ListMyJobs(ctx echo.Context) error {
	actorID, err := actorID(ctx)
	if err != nil {
		return err
	}

	query, err := queries.NewListMyJobsQuery(actorID)
	if err != nil {
		return respondError(ctx, err)
	}

	jobs, err := s.listMyJobsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, MyJobsResponse{
		Jobs: JobBucketsResponse{
			Current:    jobsFrom(jobs.Current),
			InProgress: jobsFrom(jobs.InProgress),
			Upcoming:   jobsFrom(jobs.Upcoming),
			Completed:  jobsFrom(jobs.Completed),
		},
		Summary: JobSummaryResponse{
			Current:    jobs.Summary.Current,
			InProgress: jobs.Summary.InProgress,
			Upcoming:   jobs.Summary.Upcoming,
			Completed:  jobs.Summary.Completed,
			Total:      jobs.Summary.Total,
		},
	})
}

// GetStep handles GET /my-jobs/:stepId - step detail for its assignee or any
// worker while the step is unassigned.
func (s *Server) GetStep(ctx echo.Context) error {
	actorID, err := actorID(ctx)
	if err != nil {
		return err
	}
	stepID, err := pathUUID(ctx, "stepId")
	if err != nil {
		return err
	}

	query, err := queries.NewGetStepQuery(stepID, actorID)
	if err != nil {
		return respondError(ctx, err)
	}

	response, err := s.getStepHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, stepDetailFrom(response))
}

// StartStep handles POST /my-jobs/:stepId/start.
func (s *Server) StartStep(ctx echo.Context) error {
	actorID, err := actorID(ctx)
	if err != nil {
		return err
	}
	stepID, err := pathUUID(ctx, "stepId")
	if err != nil {
		return err
	}

	cmd, err := commands.NewStartStepCommand(stepID, actorID)
	if err != nil {
		return respondError(ctx, err)
	}

	if err = s.startStepHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// CompleteStep handles POST /my-jobs/:stepId/complete. The response reports
// whether this completion finished the whole order.
func (s *Server) CompleteStep(ctx echo.Context) error {
	actorID, err := actorID(ctx)
	if err != nil {
		return err
	}
	stepID, err := pathUUID(ctx, "stepId")
	if err != nil {
		return err
	}

	var request NotesRequest
	if err = ctx.Bind(&request); err != nil {
		return respondBadRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewCompleteStepCommand(stepID, actorID, request.Notes)
	if err != nil {
		return respondError(ctx, err)
	}

	result, err := s.completeStepHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, CompleteStepResponse{
		OrderCompleted: result.OrderCompleted,
	})
}

// UpdateStepNotes handles PUT /my-jobs/:stepId/notes.
func (s *Server) UpdateStepNotes(ctx echo.Context) error {
	actorID, err := actorID(ctx)
	if err != nil {
		return err
	}
	stepID, err := pathUUID(ctx, "stepId")
	if err != nil {
		return err
	}

	var request NotesRequest
	if err = ctx.Bind(&request); err != nil {
		return respondBadRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewUpdateStepNotesCommand(stepID, actorID, request.Notes)
	if err != nil {
		return respondError(ctx, err)
	}

	if err = s.updateStepNotesHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// BlockStep handles POST /my-jobs/:stepId/block.
func (s *Server) BlockStep(ctx echo.Context) error {
	actorID, err := actorID(ctx)
	if err != nil {
		return err
	}
	stepID, err := pathUUID(ctx, "stepId")
	if err != nil {
		return err
	}

	cmd, err := commands.NewBlockStepCommand(stepID, actorID)
	if err != nil {
		return respondError(ctx, err)
	}

	if err = s.blockStepHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// UnblockStep handles POST /my-jobs/:stepId/unblock.
func (s *Server) UnblockStep(ctx echo.Context) error {
	actorID, err := actorID(ctx)
	if err != nil {
		return err
	}
	stepID, err := pathUUID(ctx, "stepId")
	if err != nil {
		return err
	}

	cmd, err := commands.NewUnblockStepCommand(stepID, actorID)
	if err != nil {
		return respondError(ctx, err)
	}

	if err = s.unblockStepHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// PreviewProductSteps handles GET /orders/product-steps-template/:productId -
// shows the template as it would be instantiated, without creating anything.
func (s *Server) PreviewProductSteps(ctx echo.Context) error {
	actorID, err := actorID(ctx)
	if err != nil {
		return err
	}
	productID, err := pathUUID(ctx, "productId")
	if err != nil {
		return err
	}

	query, err := queries.NewPreviewProductStepsQuery(productID, actorID)
	if err != nil {
		return respondError(ctx, err)
	}

	steps, err := s.previewProductStepsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	response := make([]TemplateStepResponse, 0, len(steps))
	for _, step := range steps {
		response = append(response, TemplateStepResponse{
			ID:                       step.ID.String(),
			Number:                   step.Number,
			Name:                     step.Name,
			Description:              step.Description,
			EstimatedDurationMinutes: int(step.EstimatedDuration / time.Minute),
		})
	}
	return ctx.JSON(http.StatusOK, response)
}

// errResponded signals that a helper already wrote the error response.
// echo's error handler skips committed responses, so returning it up the
// handler chain is a no-op.
var errResponded = errors.New("response already committed")

// actorID extracts the acting worker's identity from the X-Worker-ID header,
// responding 401 itself when the header is missing or malformed.
func actorID(ctx echo.Context) (kernel.UUID, error) {
	raw := ctx.Request().Header.Get("X-Worker-ID")
	if raw == "" {
		_ = ctx.JSON(http.StatusUnauthorized, Error{
			Code:    http.StatusUnauthorized,
			Message: "X-Worker-ID header is required",
		})
		return kernel.UUID{}, errResponded
	}

	id, err := kernel.UUIDFromString(raw)
	if err != nil {
		_ = ctx.JSON(http.StatusUnauthorized, Error{
			Code:    http.StatusUnauthorized,
			Message: "X-Worker-ID header is not a valid UUID",
		})
		return kernel.UUID{}, errResponded
	}
	return id, nil
}

// pathUUID parses a UUID path parameter, responding 400 itself when it is
// malformed.
func pathUUID(ctx echo.Context, name string) (kernel.UUID, error) {
	id, err := kernel.UUIDFromString(ctx.Param(name))
	if err != nil {
		_ = respondBadRequest(ctx, name+" is not a valid UUID")
		return kernel.UUID{}, errResponded
	}
	return id, nil
}

// parsePriority maps the wire priority onto the domain value, defaulting to
// NORMAL when the field is omitted.
func parsePriority(raw string) (order.Priority, error) {
	if raw == "" {
		return order.PriorityNormal, nil
	}
	return order.PriorityFromString(raw)
}
