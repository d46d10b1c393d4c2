package pgsql

import (
	"context"
	"fmt"

	"github.com/SscSPs/opahours_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/opahours_backend/internal/core/ports/repositories"
	"github.com/SscSPs/opahours_backend/internal/models"
	"github.com/SscSPs/opahours_backend/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
)

const (
	clientColumns = `id, name, abn, address, created_at, updated_at`
	personColumns = `id, name, email, address, default_hourly_rate_cents, applies_gst, gst_percentage, created_at, updated_at`
)

type PgxClientRepository struct {
	BaseRepository
}

type PgxPersonRepository struct {
	BaseRepository
}

var (
	_ portsrepo.ClientRepositoryFacade = (*PgxClientRepository)(nil)
	_ portsrepo.PersonRepositoryFacade = (*PgxPersonRepository)(nil)
)

func scanClient(row pgx.Row) (domain.Client, error) {
	var m models.Client
	if err := row.Scan(&m.ClientID, &m.Name, &m.ABN, &m.Address, &m.CreatedAt, &m.UpdatedAt); err != nil {
		return domain.Client{}, err
	}
	return mapping.ToDomainClient(m), nil
}

func scanPerson(row pgx.Row) (domain.Person, error) {
	var m models.Person
	err := row.Scan(&m.PersonID, &m.Name, &m.Email, &m.Address, &m.DefaultHourlyRateCents,
		&m.AppliesGst, &m.GstPercentage, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return domain.Person{}, err
	}
	return mapping.ToDomainPerson(m), nil
}

// collect scans every row with scan. rows is closed on return.
func collect[T any](rows pgx.Rows, scan func(pgx.Row) (T, error)) ([]T, error) {
	out, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (T, error) {
		return scan(row)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to collect rows: %w", err)
	}
	return out, nil
}

func (r *PgxClientRepository) FindClientByID(ctx context.Context, clientID string) (*domain.Client, error) {
	c, err := scanClient(r.q(ctx).QueryRow(ctx, `SELECT `+clientColumns+` FROM clients WHERE id = $1;`, clientID))
	if err != nil {
		return nil, mapError(err, "failed to find client")
	}
	return &c, nil
}

func (r *PgxClientRepository) ListClients(ctx context.Context) ([]domain.Client, error) {
	rows, err := r.q(ctx).Query(ctx, `SELECT `+clientColumns+` FROM clients ORDER BY name, id;`)
	if err != nil {
		return nil, mapError(err, "failed to list clients")
	}
	return collect(rows, scanClient)
}

func (r *PgxPersonRepository) FindPersonByID(ctx context.Context, personID string) (*domain.Person, error) {
	p, err := scanPerson(r.q(ctx).QueryRow(ctx, `SELECT `+personColumns+` FROM persons WHERE id = $1;`, personID))
	if err != nil {
		return nil, mapError(err, "failed to find person")
	}
	return &p, nil
}

func (r *PgxPersonRepository) ListPersons(ctx context.Context) ([]domain.Person, error) {
	rows, err := r.q(ctx).Query(ctx, `SELECT `+personColumns+` FROM persons ORDER BY name, id;`)
	if err != nil {
		return nil, mapError(err, "failed to list persons")
	}
	return collect(rows, scanPerson)
}
