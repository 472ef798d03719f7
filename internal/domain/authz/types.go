package authz

import "errors"

// Operation es la operación solicitada sobre el recurso.
type Operation string

const (
	OperationRead  Operation = "read"
	OperationWrite Operation = "write"
)

// ResourceKind identifica el tipo de recurso clínico.
type ResourceKind string

const (
	KindPatientRecord ResourceKind = "patient_record"
	KindAppointment   ResourceKind = "appointment"
	KindMedicalRecord ResourceKind = "medical_record"
)

// Resource referencia el recurso sobre el que se decide.
// Citas y registros médicos siempre pertenecen a exactamente un paciente.
type Resource struct {
	Kind      ResourceKind
	PatientID int64
}

type Outcome string

const (
	OutcomeAllow Outcome = "allow"
	OutcomeDeny  Outcome = "deny"
)

// Reason explica por qué se llegó al resultado.
type Reason string

const (
	ReasonRolePrivileged   Reason = "role_privileged"
	ReasonOwnerSelfAccess  Reason = "owner_self_access"
	ReasonActiveGrant      Reason = "active_grant"
	ReasonNoGrant          Reason = "no_grant"
	ReasonRoleInsufficient Reason = "role_insufficient"
	ReasonTokenInvalid     Reason = "token_invalid"
)

// Decision es el resultado de una evaluación (actor, recurso, operación).
type Decision struct {
	Outcome Outcome
	Reason  Reason
}

func (d Decision) Allowed() bool {
	return d.Outcome == OutcomeAllow
}

var (
	// ErrInvalidClaim: identidad ausente o malformada. El caller debe tratarlo
	// como DENY, nunca como anónimo-permitido.
	ErrInvalidClaim = errors.New("invalid claim")

	// ErrInvalidResource: referencia de recurso malformada (kind desconocido o
	// sin patient_id en un recurso acotado a paciente).
	ErrInvalidResource = errors.New("invalid resource")

	// ErrStoreUnavailable: no se pudo consultar el store de grants.
	// La decisión resuelve a DENY (fail closed), jamás a ALLOW.
	ErrStoreUnavailable = errors.New("grant store unavailable")
)
