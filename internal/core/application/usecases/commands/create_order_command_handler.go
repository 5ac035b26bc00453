package commands

import (
	"context"
	"fmt"
	"strings"
	"time"

	"workshop/internal/core/domain/model/kernel"
	"workshop/internal/core/domain/model/order"
	"workshop/internal/core/domain/model/worker"
	"workshop/internal/core/domain/services"
)

// CreateOrderCommandHandler handles the business logic for order creation.
// The acting worker must hold ORDER_CREATE; supplying a step override list
// additionally requires STEP_OVERRIDE. The order, its items and its step
// instances are persisted atomically.
type CreateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	planner    services.StepPlanner
}

// NewCreateOrderCommandHandler creates a handler for order creation operations.
// Requires an OrderUoWFactory for transactional persistence.
func NewCreateOrderCommandHandler(uowFactory OrderUoWFactory) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		planner:    services.NewStepPlanner(),
	}
}

// Handle processes the order creation command.
// Expands the ordered products' templates (or the override list) into step
// instances, creates the order in PENDING status and persists the whole
// aggregate in one transaction.
func (h *CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	actor, err := uow.WorkerRepository().Get(ctx, cmd.ActorID())
	if err != nil {
		return err
	}
	if !actor.Can(worker.PermissionOrderCreate) {
		return fmt.Errorf("%w: %s", worker.ErrPermissionDenied, worker.PermissionOrderCreate)
	}
	if len(cmd.Overrides()) > 0 && !actor.Can(worker.PermissionStepOverride) {
		return fmt.Errorf("%w: %s", worker.ErrPermissionDenied, worker.PermissionStepOverride)
	}

	steps, err := h.planSteps(ctx, uow, cmd)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	aggregate, err := order.NewOrder(cmd.OrderID(), orderNumber(cmd.OrderID()), cmd.CustomerID(),
		cmd.Priority(), cmd.Deadline(), cmd.Notes(), cmd.IsStock(), cmd.Items(), now)
	if err != nil {
		return err
	}
	if err = aggregate.AttachSteps(steps); err != nil {
		return err
	}

	if err = uow.OrderRepository().Add(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

func (h *CreateOrderCommandHandler) planSteps(ctx context.Context, uow OrderUoW,
	cmd CreateOrderCommand,
) ([]*order.Step, error) {
	if overrides := cmd.Overrides(); len(overrides) > 0 {
		return h.planner.PlanManual(overrides)
	}

	ids := make([]kernel.UUID, 0, len(cmd.Items()))
	for _, item := range cmd.Items() {
		ids = append(ids, item.ProductID())
	}

	products, err := uow.ProductRepository().GetAll(ctx, ids)
	if err != nil {
		return nil, err
	}

	return h.planner.PlanFromTemplates(cmd.Items(), products)
}

// orderNumber derives the human-readable order number from the order's UUID:
// the ORD- prefix followed by the first eight hex digits, uppercased.
func orderNumber(id kernel.UUID) string {
	return "ORD-" + strings.ToUpper(id.String()[:8])
}
