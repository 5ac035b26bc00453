package worker_test

import (
	"testing"

	"workshop/internal/core/domain/model/kernel"
	"workshop/internal/core/domain/model/worker"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWorker(t *testing.T) {
	validID := kernel.NewUUID()
	validCompany := kernel.NewUUID()

	t.Run("creates valid worker", func(t *testing.T) {
		w, err := worker.NewWorker(validID, validCompany, "Mara", false,
			[]worker.Permission{worker.PermissionStepExecute})

		require.NoError(t, err)
		require.NoError(t, w.Validate())
		assert.True(t, w.ID().IsEqual(validID))
		assert.True(t, w.CompanyID().IsEqual(validCompany))
		assert.Equal(t, "Mara", w.Name())
		assert.False(t, w.IsCompanyOwner())
		assert.ElementsMatch(t, []worker.Permission{worker.PermissionStepExecute}, w.Grants())
	})

	t.Run("fails with invalid id", func(t *testing.T) {
		var invalidID kernel.UUID

		w, err := worker.NewWorker(invalidID, validCompany, "Mara", false, nil)

		require.Error(t, err)
		assert.Nil(t, w)
	})

	t.Run("fails with empty name", func(t *testing.T) {
		w, err := worker.NewWorker(validID, validCompany, "", false, nil)

		require.Error(t, err)
		assert.Nil(t, w)
		assert.Contains(t, err.Error(), "name")
	})

	t.Run("fails with unknown permission", func(t *testing.T) {
		w, err := worker.NewWorker(validID, validCompany, "Mara", false,
			[]worker.Permission{"FLY_TO_MOON"})

		require.Error(t, err)
		assert.Nil(t, w)
		assert.Contains(t, err.Error(), "FLY_TO_MOON")
	})

	t.Run("zero value fails validation", func(t *testing.T) {
		var w worker.Worker

		require.ErrorIs(t, w.Validate(), worker.ErrWorkerIsNotConstructed)
	})
}

func TestWorker_Can(t *testing.T) {
	id := kernel.NewUUID()
	companyID := kernel.NewUUID()

	t.Run("granted permission is authorized", func(t *testing.T) {
		w, err := worker.NewWorker(id, companyID, "Mara", false,
			[]worker.Permission{worker.PermissionStepExecute, worker.PermissionOrderRead})
		require.NoError(t, err)

		assert.True(t, w.Can(worker.PermissionStepExecute))
		assert.True(t, w.Can(worker.PermissionOrderRead))
	})

	t.Run("missing permission is not authorized", func(t *testing.T) {
		w, err := worker.NewWorker(id, companyID, "Mara", false,
			[]worker.Permission{worker.PermissionStepExecute})
		require.NoError(t, err)

		assert.False(t, w.Can(worker.PermissionOrderCreate))
		assert.False(t, w.Can(worker.PermissionStepOverride))
	})

	t.Run("company owner bypasses every check", func(t *testing.T) {
		w, err := worker.NewWorker(id, companyID, "Owner", true, nil)
		require.NoError(t, err)

		assert.True(t, w.Can(worker.PermissionOrderCreate))
		assert.True(t, w.Can(worker.PermissionOrderDelete))
		assert.True(t, w.Can(worker.PermissionStepOverride))
	})
}

func TestPermission_Category(t *testing.T) {
	assert.Equal(t, worker.CategoryOrder, worker.PermissionOrderCreate.Category())
	assert.Equal(t, worker.CategoryOrder, worker.PermissionOrderDelete.Category())
	assert.Equal(t, worker.CategoryProduction, worker.PermissionStepExecute.Category())
	assert.Equal(t, worker.CategoryProduction, worker.PermissionStepOverride.Category())
	assert.Empty(t, worker.Permission("NOPE").Category())
}

func TestPermission_Validate(t *testing.T) {
	require.NoError(t, worker.PermissionOrderUpdate.Validate())
	require.Error(t, worker.Permission("NOPE").Validate())
}
