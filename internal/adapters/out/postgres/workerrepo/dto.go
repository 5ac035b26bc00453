// Package workerrepo persists workers and their permission grants.
package workerrepo

import (
	"workshop/internal/core/domain/model/kernel"
	"workshop/internal/core/domain/model/worker"

	"github.com/google/uuid"
)

// WorkerDTO is the database row of one worker.
type WorkerDTO struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	CompanyID      uuid.UUID `gorm:"type:uuid;index"`
	Name           string
	IsCompanyOwner bool

	Grants []GrantDTO `gorm:"foreignKey:WorkerID;constraint:OnDelete:CASCADE"`
}

// TableName overrides GORM's default naming to use "workers".
func (WorkerDTO) TableName() string {
	return "workers"
}

// GrantDTO is one permission granted to a worker.
type GrantDTO struct {
	WorkerID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	Permission string    `gorm:"primaryKey"`
}

// TableName overrides GORM's default naming to use "worker_grants".
func (GrantDTO) TableName() string {
	return "worker_grants"
}

// fromDomain converts a worker aggregate to its database representation.
func fromDomain(aggregate *worker.Worker) WorkerDTO {
	dto := WorkerDTO{
		ID:             aggregate.ID().Bytes(),
		CompanyID:      aggregate.CompanyID().Bytes(),
		Name:           aggregate.Name(),
		IsCompanyOwner: aggregate.IsCompanyOwner(),
	}

	for _, p := range aggregate.Grants() {
		dto.Grants = append(dto.Grants, GrantDTO{
			WorkerID:   dto.ID,
			Permission: string(p),
		})
	}

	return dto
}

// toDomain reconstructs the worker aggregate with its grant set.
func toDomain(dto WorkerDTO) (*worker.Worker, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	companyID, err := kernel.UUIDFromBytes(dto.CompanyID[:])
	if err != nil {
		return nil, err
	}

	grants := make([]worker.Permission, 0, len(dto.Grants))
	for _, grantDTO := range dto.Grants {
		grants = append(grants, worker.Permission(grantDTO.Permission))
	}

	return worker.RestoreWorker(id, companyID, dto.Name, dto.IsCompanyOwner, grants)
}
