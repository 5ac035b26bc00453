package services_test

import (
	"testing"
	"time"

	"workshop/internal/core/domain/model/kernel"
	"workshop/internal/core/domain/model/order"
	"workshop/internal/core/domain/model/product"
	"workshop/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildProduct(t *testing.T, companyID kernel.UUID, names ...string) *product.Product {
	t.Helper()

	template := make([]product.TemplateStep, 0, len(names))
	for i, name := range names {
		step, err := product.NewTemplateStep(kernel.NewUUID(), i+1, name, name+" instructions", 30*time.Minute)
		require.NoError(t, err)
		template = append(template, step)
	}

	p, err := product.NewProduct(kernel.NewUUID(), companyID, "product", template)
	require.NoError(t, err)
	return p
}

func TestStepPlanner_PlanFromTemplates(t *testing.T) {
	planner := services.NewStepPlanner()
	companyID := kernel.NewUUID()

	t.Run("expands one product's template", func(t *testing.T) {
		p := buildProduct(t, companyID, "Cutting", "Welding", "Painting")
		item, err := order.NewItem(p.ID(), 2)
		require.NoError(t, err)

		steps, err := planner.PlanFromTemplates([]order.Item{item},
			map[kernel.UUID]*product.Product{p.ID(): p})

		require.NoError(t, err)
		require.Len(t, steps, 3)
		for i, step := range steps {
			assert.Equal(t, i+1, step.Number())
			assert.Equal(t, order.StepWaiting, step.Status())
			assert.False(t, step.Source().IsManual())
			require.NotNil(t, step.ProductID())
			assert.True(t, step.ProductID().IsEqual(p.ID()))
			assert.Nil(t, step.Assignee())
		}
		assert.Equal(t, "Cutting", steps[0].Name())
		assert.Equal(t, "Painting", steps[2].Name())

		templateStepID, ok := steps[0].Source().TemplateStepID()
		require.True(t, ok)
		assert.True(t, templateStepID.IsEqual(p.Template()[0].ID()))
	})

	t.Run("numbers continue across products", func(t *testing.T) {
		a := buildProduct(t, companyID, "A1", "A2")
		b := buildProduct(t, companyID, "B1", "B2", "B3")
		itemA, err := order.NewItem(a.ID(), 1)
		require.NoError(t, err)
		itemB, err := order.NewItem(b.ID(), 1)
		require.NoError(t, err)

		steps, err := planner.PlanFromTemplates([]order.Item{itemA, itemB},
			map[kernel.UUID]*product.Product{a.ID(): a, b.ID(): b})

		require.NoError(t, err)
		require.Len(t, steps, 5)
		for i, step := range steps {
			assert.Equal(t, i+1, step.Number())
		}
		assert.True(t, steps[1].ProductID().IsEqual(a.ID()))
		assert.True(t, steps[2].ProductID().IsEqual(b.ID()))
		assert.Equal(t, "B1", steps[2].Name())
	})

	t.Run("product with empty template contributes nothing", func(t *testing.T) {
		withSteps := buildProduct(t, companyID, "Cutting")
		empty := buildProduct(t, companyID)
		item1, err := order.NewItem(withSteps.ID(), 1)
		require.NoError(t, err)
		item2, err := order.NewItem(empty.ID(), 1)
		require.NoError(t, err)

		steps, err := planner.PlanFromTemplates([]order.Item{item1, item2},
			map[kernel.UUID]*product.Product{withSteps.ID(): withSteps, empty.ID(): empty})

		require.NoError(t, err)
		assert.Len(t, steps, 1)
	})

	t.Run("missing product is rejected", func(t *testing.T) {
		item, err := order.NewItem(kernel.NewUUID(), 1)
		require.NoError(t, err)

		_, err = planner.PlanFromTemplates([]order.Item{item}, nil)

		require.ErrorIs(t, err, order.ErrInvalidStepDefinition)
	})
}

func TestStepPlanner_PlanManual(t *testing.T) {
	planner := services.NewStepPlanner()

	t.Run("creates manual steps in definition order", func(t *testing.T) {
		assignee := kernel.NewUUID()
		defs := []services.StepDefinition{
			{Name: "Engrave", Description: "custom text", EstimatedDuration: time.Hour},
			{Name: "Polish", Assignee: &assignee},
		}

		steps, err := planner.PlanManual(defs)

		require.NoError(t, err)
		require.Len(t, steps, 2)
		assert.Equal(t, 1, steps[0].Number())
		assert.Equal(t, 2, steps[1].Number())
		assert.True(t, steps[0].Source().IsManual())
		assert.Nil(t, steps[0].ProductID())
		assert.True(t, steps[1].IsAssignedTo(assignee))
	})

	t.Run("manual steps form one precedence chain", func(t *testing.T) {
		steps, err := planner.PlanManual([]services.StepDefinition{
			{Name: "First"}, {Name: "Second"},
		})
		require.NoError(t, err)

		assert.True(t, steps[0].InSameGroup(steps[1]))
	})

	t.Run("empty list is an empty order", func(t *testing.T) {
		_, err := planner.PlanManual(nil)

		require.ErrorIs(t, err, order.ErrEmptyOrder)
	})

	t.Run("unnamed definition is rejected", func(t *testing.T) {
		_, err := planner.PlanManual([]services.StepDefinition{
			{Name: "Engrave"}, {Name: ""},
		})

		require.ErrorIs(t, err, order.ErrInvalidStepDefinition)
	})
}
