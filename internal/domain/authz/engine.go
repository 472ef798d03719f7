package authz

import (
	"context"
	"fmt"
	"time"

	"clinical-records/internal/domain/accessgrants"
	"clinical-records/internal/ports/auth"
)

// GrantSource expone los grants candidatos para un par (paciente, delegado).
// Lo implementan los repos de accessgrants; acá solo se lee.
type GrantSource interface {
	ListByPatientAndGrantee(ctx context.Context, patientID, granteeID int64) ([]accessgrants.Grant, error)
}

// Engine combina claims, recurso, operación y grants en un ALLOW/DENY.
// Sin estado mutable compartido: seguro para uso concurrente.
type Engine struct {
	grants GrantSource
	now    func() time.Time
}

func NewEngine(grants GrantSource) *Engine {
	return &Engine{
		grants: grants,
		now:    time.Now,
	}
}

// Decide evalúa contra el reloj del engine.
func (e *Engine) Decide(ctx context.Context, claims auth.Claims, res Resource, op Operation) (Decision, error) {
	return e.DecideAt(ctx, claims, res, op, e.now())
}

// DecideAt evalúa en orden, primer match gana:
//  1. admin: acceso total.
//  2. doctor: lectura y escritura sobre todo recurso acotado a paciente.
//  3. paciente sobre su propio expediente: lectura siempre; escritura solo
//     sobre patient_record.
//  4. grant delegado activo con nivel suficiente (write cubre read+write).
//  5. DENY: no_grant si existían grants para el par, role_insufficient si no.
//
// Todo camino de error resuelve a DENY.
func (e *Engine) DecideAt(ctx context.Context, claims auth.Claims, res Resource, op Operation, ref time.Time) (Decision, error) {
	deny := Decision{Outcome: OutcomeDeny}

	if claims.UserID <= 0 || !claims.Role.Valid() {
		return Decision{Outcome: OutcomeDeny, Reason: ReasonTokenInvalid}, ErrInvalidClaim
	}
	if op != OperationRead && op != OperationWrite {
		return deny, fmt.Errorf("%w: unknown operation %q", ErrInvalidResource, op)
	}
	if !validKind(res.Kind) {
		return deny, fmt.Errorf("%w: unknown kind %q", ErrInvalidResource, res.Kind)
	}
	if res.PatientID <= 0 {
		return deny, fmt.Errorf("%w: missing patient id", ErrInvalidResource)
	}

	switch claims.Role {
	case auth.RoleAdmin:
		return Decision{Outcome: OutcomeAllow, Reason: ReasonRolePrivileged}, nil
	case auth.RoleDoctor:
		// Privilegio global del doctor; no hay relación de cuidado en el
		// esquema que permita acotarlo.
		return Decision{Outcome: OutcomeAllow, Reason: ReasonRolePrivileged}, nil
	case auth.RolePatient:
		if claims.UserID == res.PatientID {
			if op == OperationRead || res.Kind == KindPatientRecord {
				return Decision{Outcome: OutcomeAllow, Reason: ReasonOwnerSelfAccess}, nil
			}
			// Escritura sobre citas/registros propios: sigue al paso de grants.
		}
	}

	grants, err := e.grants.ListByPatientAndGrantee(ctx, res.PatientID, claims.UserID)
	if err != nil {
		return deny, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	// Entre los grants activos gana el de mayor nivel (write > read).
	var best accessgrants.Level
	hasActive := false
	for _, g := range grants {
		if !accessgrants.IsActive(g, ref) {
			continue
		}
		if !hasActive || g.Level == accessgrants.LevelWrite {
			best = g.Level
			hasActive = true
		}
	}

	if hasActive && levelCovers(best, op) {
		return Decision{Outcome: OutcomeAllow, Reason: ReasonActiveGrant}, nil
	}
	if len(grants) > 0 {
		return Decision{Outcome: OutcomeDeny, Reason: ReasonNoGrant}, nil
	}
	return Decision{Outcome: OutcomeDeny, Reason: ReasonRoleInsufficient}, nil
}

func levelCovers(l accessgrants.Level, op Operation) bool {
	if l == accessgrants.LevelWrite {
		return true
	}
	return op == OperationRead
}

func validKind(k ResourceKind) bool {
	return k == KindPatientRecord || k == KindAppointment || k == KindMedicalRecord
}
