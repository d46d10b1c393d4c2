package pgsql

import (
	portsrepo "github.com/SscSPs/opahours_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewRepositoryProvider wires every repository onto one pool. They share the
// transaction manager, so a transaction opened by a service spans all of them.
func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	base := BaseRepository{Pool: dbPool}

	return portsrepo.RepositoryProvider{
		TxManager:        &base,
		UserRepo:         newPgxUserRepository(base),
		RefreshTokenRepo: &PgxRefreshTokenRepository{BaseRepository: base},
		ClientRepo:       &PgxClientRepository{BaseRepository: base},
		PersonRepo:       &PgxPersonRepository{BaseRepository: base},
		WorkLogRepo:      newPgxWorkLogRepository(base),
		InvoiceRepo:      newPgxInvoiceRepository(base),
	}
}
