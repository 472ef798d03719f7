package accessgrants

import "context"

type Repository interface {
	Create(ctx context.Context, g Grant) error
	Update(ctx context.Context, g Grant) error
	GetByID(ctx context.Context, id string) (Grant, error)
	Delete(ctx context.Context, id string) error
	ListByPatient(ctx context.Context, patientID int64) ([]Grant, error)
	ListByGrantee(ctx context.Context, granteeID int64) ([]Grant, error)
	ListByPatientAndGrantee(ctx context.Context, patientID, granteeID int64) ([]Grant, error)
}
