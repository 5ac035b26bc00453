package cmd

import (
	"log/slog"

	httpserver "workshop/internal/adapters/in/http"
	"workshop/internal/adapters/out/postgres"
	"workshop/internal/core/application/usecases/commands"
	"workshop/internal/core/application/usecases/queries"
	"workshop/internal/jobs"

	"gorm.io/gorm"
)

// CompositionRoot wires command and query handlers onto the GORM unit of
// work factory. Handlers are created per request; the root itself only
// carries the shared database handle.
type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
}

func NewCompositionRoot(_ Config, gormDB *gorm.DB) CompositionRoot {
	return CompositionRoot{
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
	}
}

func (c *CompositionRoot) stepUoWFactory() commands.StepUoWFactory {
	return FuncStepUoWFactory(func() commands.StepUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateUpdateOrderCommandHandler() commands.UpdateOrderCommandHandler {
	return commands.NewUpdateOrderCommandHandler(c.stepUoWFactory(), postgres.IsTransientError)
}

func (c *CompositionRoot) CreateCancelOrderCommandHandler() commands.CancelOrderCommandHandler {
	return commands.NewCancelOrderCommandHandler(c.stepUoWFactory(), postgres.IsTransientError)
}

func (c *CompositionRoot) CreateDeleteOrderCommandHandler() commands.DeleteOrderCommandHandler {
	return commands.NewDeleteOrderCommandHandler(c.stepUoWFactory(), postgres.IsTransientError)
}

func (c *CompositionRoot) CreateStartStepCommandHandler() commands.StartStepCommandHandler {
	return commands.NewStartStepCommandHandler(c.stepUoWFactory(), postgres.IsTransientError)
}

func (c *CompositionRoot) CreateCompleteStepCommandHandler() commands.CompleteStepCommandHandler {
	return commands.NewCompleteStepCommandHandler(c.stepUoWFactory(), postgres.IsTransientError)
}

func (c *CompositionRoot) CreateUpdateStepNotesCommandHandler() commands.UpdateStepNotesCommandHandler {
	return commands.NewUpdateStepNotesCommandHandler(c.stepUoWFactory(), postgres.IsTransientError)
}

func (c *CompositionRoot) CreateBlockStepCommandHandler() commands.BlockStepCommandHandler {
	return commands.NewBlockStepCommandHandler(c.stepUoWFactory(), postgres.IsTransientError)
}

func (c *CompositionRoot) CreateUnblockStepCommandHandler() commands.UnblockStepCommandHandler {
	return commands.NewUnblockStepCommandHandler(c.stepUoWFactory(), postgres.IsTransientError)
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetOrdersQueryHandler() queries.GetOrdersQueryHandler {
	return queries.NewGetOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListMyJobsQueryHandler() queries.ListMyJobsQueryHandler {
	return queries.NewListMyJobsQueryHandler(c.uowFactory.Create().OrderRepository())
}

func (c *CompositionRoot) CreateGetStepQueryHandler() queries.GetStepQueryHandler {
	return queries.NewGetStepQueryHandler(c.uowFactory.Create().OrderRepository())
}

func (c *CompositionRoot) CreatePreviewProductStepsQueryHandler() queries.PreviewProductStepsQueryHandler {
	return queries.NewPreviewProductStepsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetOverdueOrdersQueryHandler() queries.GetOverdueOrdersQueryHandler {
	return queries.NewGetOverdueOrdersQueryHandler(c.gormDB)
}

// CreateHTTPServer assembles the echo server with every handler wired.
func (c *CompositionRoot) CreateHTTPServer() *httpserver.Server {
	return httpserver.NewServer(
		c.CreateCreateOrderCommandHandler(),
		c.CreateUpdateOrderCommandHandler(),
		c.CreateCancelOrderCommandHandler(),
		c.CreateDeleteOrderCommandHandler(),
		c.CreateStartStepCommandHandler(),
		c.CreateCompleteStepCommandHandler(),
		c.CreateUpdateStepNotesCommandHandler(),
		c.CreateBlockStepCommandHandler(),
		c.CreateUnblockStepCommandHandler(),
		c.CreateGetOrderQueryHandler(),
		c.CreateGetOrdersQueryHandler(),
		c.CreateListMyJobsQueryHandler(),
		c.CreateGetStepQueryHandler(),
		c.CreatePreviewProductStepsQueryHandler(),
	)
}

// CreateJobManager assembles the background job manager.
func (c *CompositionRoot) CreateJobManager(logger *slog.Logger) *jobs.JobManager {
	return jobs.NewJobManager(c.CreateGetOverdueOrdersQueryHandler(), logger)
}

type FuncStepUoWFactory func() commands.StepUoW

func (f FuncStepUoWFactory) Create() commands.StepUoW {
	return f()
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}
