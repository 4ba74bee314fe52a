package repository

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GoSim-25-26J-441/portfolio/internal/projects/domain"
)

var projectColumns = []string{
	"id", "titulo", "descricao", "ordem", "link", "icon", "color", "tecnologias", "data_criacao", "data_atualizacao",
}

func setupPostgresStore(t *testing.T) (*PostgresStore, sqlmock.Sqlmock, *sql.DB) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	return NewPostgresStore(db), mock, db
}

func TestPostgresStore_List(t *testing.T) {
	store, mock, db := setupPostgresStore(t)
	defer db.Close()

	now := time.Now()

	t.Run("returns rows in query order", func(t *testing.T) {
		mock.ExpectQuery(`select id, titulo, descricao, ordem`).
			WillReturnRows(sqlmock.NewRows(projectColumns).
				AddRow("proj-1", "Animu", "Comunidade de animes", 1, "https://a.example", domain.DefaultIcon, domain.DefaultColor, "{\"Tailwind CSS\",Quill.js,Firebase}", now, now).
				AddRow("proj-2", "Pinboard", "Pinterest pessoal", 2, "https://b.example", domain.DefaultIcon, domain.DefaultColor, "{\"Spring Boot\"}", now, now))

		items, err := Collect(store.List(context.Background()))
		require.NoError(t, err)
		require.Len(t, items, 2)
		assert.Equal(t, "Animu", items[0].Title)
		assert.Equal(t, []string{"Tailwind CSS", "Quill.js", "Firebase"}, items[0].Technologies)
		assert.Equal(t, 2, items[1].Order)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("query failure is a store error", func(t *testing.T) {
		mock.ExpectQuery(`select id, titulo, descricao, ordem`).
			WillReturnError(errors.New("connection reset"))

		_, err := Collect(store.List(context.Background()))
		assert.ErrorIs(t, err, domain.ErrStore)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestPostgresStore_Get(t *testing.T) {
	store, mock, db := setupPostgresStore(t)
	defer db.Close()

	t.Run("found", func(t *testing.T) {
		now := time.Now()
		mock.ExpectQuery(`select id, titulo`).
			WithArgs("proj-1").
			WillReturnRows(sqlmock.NewRows(projectColumns).
				AddRow("proj-1", "Animu", "Comunidade", 1, "https://a.example", "fas fa-tv", "#FF0000", "{Go}", now, now))

		p, err := store.Get(context.Background(), "proj-1")
		require.NoError(t, err)
		assert.Equal(t, "proj-1", p.ID)
		assert.Equal(t, "fas fa-tv", p.Icon)
		assert.Equal(t, []string{"Go"}, p.Technologies)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		mock.ExpectQuery(`select id, titulo`).
			WithArgs("missing").
			WillReturnError(sql.ErrNoRows)

		_, err := store.Get(context.Background(), "missing")
		assert.Equal(t, domain.ErrNotFound, err)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestPostgresStore_Create(t *testing.T) {
	store, mock, db := setupPostgresStore(t)
	defer db.Close()

	in := sampleInput("Animu", 1)

	t.Run("retries on id collision", func(t *testing.T) {
		mock.ExpectQuery(`insert into projetos`).
			WithArgs(sqlmock.AnyArg(), in.Title, in.Description, in.Order, in.Link, in.Icon, in.Color, sqlmock.AnyArg()).
			WillReturnError(&pgconn.PgError{Code: "23505"})
		mock.ExpectQuery(`insert into projetos`).
			WithArgs(sqlmock.AnyArg(), in.Title, in.Description, in.Order, in.Link, in.Icon, in.Color, sqlmock.AnyArg()).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("proj-12345-6789"))

		id, err := store.Create(context.Background(), in)
		require.NoError(t, err)
		assert.Equal(t, "proj-12345-6789", id)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("other errors are store errors", func(t *testing.T) {
		mock.ExpectQuery(`insert into projetos`).
			WillReturnError(errors.New("disk full"))

		_, err := store.Create(context.Background(), in)
		assert.ErrorIs(t, err, domain.ErrStore)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestPostgresStore_Update(t *testing.T) {
	store, mock, db := setupPostgresStore(t)
	defer db.Close()

	in := sampleInput("Animu", 3)

	t.Run("updates existing row", func(t *testing.T) {
		mock.ExpectExec(`update projetos`).
			WithArgs("proj-1", in.Title, in.Description, in.Order, in.Link, in.Icon, in.Color, sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, store.Update(context.Background(), "proj-1", in))
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing row is not found", func(t *testing.T) {
		mock.ExpectExec(`update projetos`).
			WithArgs("missing", in.Title, in.Description, in.Order, in.Link, in.Icon, in.Color, sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := store.Update(context.Background(), "missing", in)
		assert.ErrorIs(t, err, domain.ErrNotFound)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestPostgresStore_Delete(t *testing.T) {
	store, mock, db := setupPostgresStore(t)
	defer db.Close()

	mock.ExpectExec(`delete from projetos`).
		WithArgs("proj-1").
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, store.Delete(context.Background(), "proj-1"))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_EnsureSchema(t *testing.T) {
	store, mock, db := setupPostgresStore(t)
	defer db.Close()

	mock.ExpectExec(`create table if not exists projetos`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, store.EnsureSchema(context.Background()))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_Ping(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectPing()
	assert.NoError(t, NewPostgresStore(db).Ping(context.Background()))

	mock.ExpectPing().WillReturnError(errors.New("connection refused"))
	assert.Error(t, NewPostgresStore(db).Ping(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}
