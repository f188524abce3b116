package entity

// Roles válidos en los tokens que emite el servicio de autenticación.
const (
	RoleTechnician = "tecnico"
	RoleBodeguero  = "bodeguero"
	RoleAnalyst    = "analista"
	RoleAdmin      = "admin"
)

// Actor usuario que ejecuta una operación (extraído del JWT).
type Actor struct {
	ID   string
	Role string
}

// HasRole indica si el actor tiene alguno de los roles dados.
func (a Actor) HasRole(roles ...string) bool {
	for _, r := range roles {
		if a.Role == r {
			return true
		}
	}
	return false
}
