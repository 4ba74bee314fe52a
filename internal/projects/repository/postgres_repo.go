package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"iter"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"

	"github.com/GoSim-25-26J-441/portfolio/internal/projects/domain"
	"github.com/GoSim-25-26J-441/portfolio/internal/projects/utils"
)

const projectsSchema = `
create table if not exists projetos (
  id               text primary key,
  titulo           text not null,
  descricao        text not null,
  ordem            integer not null check (ordem >= 1),
  link             text not null,
  icon             text not null default '',
  color            text not null default '',
  tecnologias      text[] not null default '{}',
  data_criacao     timestamptz not null default now(),
  data_atualizacao timestamptz not null default now()
);
create index if not exists projetos_ordem_idx on projetos (ordem, data_criacao);
`

// PostgresStore keeps projects in a single table. Timestamps come from the
// database clock.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// EnsureSchema creates the projetos table when missing.
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, projectsSchema); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}

func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *PostgresStore) List(ctx context.Context) iter.Seq2[domain.Project, error] {
	return oneShot(func(yield func(domain.Project, error) bool) {
		const q = `
select id, titulo, descricao, ordem, link, icon, color, tecnologias, data_criacao, data_atualizacao
from projetos
order by ordem asc, data_criacao asc;
`
		rows, err := s.db.QueryContext(ctx, q)
		if err != nil {
			yield(domain.Project{}, storeErr("list projects", err))
			return
		}
		defer rows.Close()

		for rows.Next() {
			p, err := scanProject(rows)
			if err != nil {
				yield(domain.Project{}, storeErr("scan project", err))
				return
			}
			if !yield(p, nil) {
				return
			}
		}
		if err := rows.Err(); err != nil {
			yield(domain.Project{}, storeErr("list projects", err))
		}
	})
}

func (s *PostgresStore) Get(ctx context.Context, id string) (*domain.Project, error) {
	const q = `
select id, titulo, descricao, ordem, link, icon, color, tecnologias, data_criacao, data_atualizacao
from projetos
where id = $1;
`
	p, err := scanProject(s.db.QueryRowContext(ctx, q, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, storeErr("get project", err)
	}
	return &p, nil
}

func (s *PostgresStore) Create(ctx context.Context, in domain.ProjectInput) (string, error) {
	for i := 0; i < 5; i++ {
		id, err := utils.NewProjectID()
		if err != nil {
			return "", err
		}

		const q = `
insert into projetos (id, titulo, descricao, ordem, link, icon, color, tecnologias, data_criacao, data_atualizacao)
values ($1, $2, $3, $4, $5, $6, $7, $8, now(), now())
returning id;
`
		var out string
		err = s.db.QueryRowContext(ctx, q,
			id, in.Title, in.Description, in.Order, in.Link, in.Icon, in.Color, pq.Array(in.Technologies),
		).Scan(&out)
		if err == nil {
			return out, nil
		}

		// unique violation on id → retry
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			continue
		}
		return "", storeErr("create project", err)
	}

	return "", storeErr("create project", fmt.Errorf("failed to generate unique project id"))
}

func (s *PostgresStore) Update(ctx context.Context, id string, in domain.ProjectInput) error {
	const q = `
update projetos
set titulo = $2, descricao = $3, ordem = $4, link = $5, icon = $6, color = $7, tecnologias = $8,
    data_atualizacao = now()
where id = $1;
`
	res, err := s.db.ExecContext(ctx, q,
		id, in.Title, in.Description, in.Order, in.Link, in.Icon, in.Color, pq.Array(in.Technologies),
	)
	if err != nil {
		return storeErr("update project", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return storeErr("update project", err)
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (s *PostgresStore) Delete(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx, `delete from projetos where id = $1;`, id); err != nil {
		return storeErr("delete project", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProject(row rowScanner) (domain.Project, error) {
	var p domain.Project
	err := row.Scan(
		&p.ID, &p.Title, &p.Description, &p.Order, &p.Link, &p.Icon, &p.Color,
		pq.Array(&p.Technologies), &p.CreatedAt, &p.UpdatedAt,
	)
	return p, err
}
