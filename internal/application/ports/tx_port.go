package ports

import (
	"context"

	"github.com/danieldelarosaginzalez-wq/ACSOLUTION-sub002/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción, pasando repositorios atados a esa tx.
// Commit si fn retorna nil; Rollback en cualquier otro caso (nada queda persistido).
type TxRunner interface {
	Run(ctx context.Context, fn func(repos repository.TxRepos) error) error
}
