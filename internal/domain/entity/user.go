package entity

// Roles de usuario (vienen en el claim "role" del token).
const (
	RoleBodeguero         = "bodeguero"
	RoleSecretarioTecnico = "secretario_tecnico"
	RoleSupervisor        = "supervisor"
	RoleTecnico           = "tecnico"
)

// Actor identidad que ejecuta una operación (atribución de movimientos).
type Actor struct {
	UserID string
	Role   string
}
