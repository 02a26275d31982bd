package persistence

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/hms/backend/internal/domain/patient"
	"github.com/hms/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// newMockPatientRepository creates a GormPatientRepository with a mocked SQL connection
func newMockPatientRepository(t *testing.T) (*GormPatientRepository, sqlmock.Sqlmock, *sql.DB) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return NewGormPatientRepository(gormDB), mock, mockDB
}

func TestNewGormPatientRepository(t *testing.T) {
	t.Run("creates repository with valid DB", func(t *testing.T) {
		repo, _, mockDB := newMockPatientRepository(t)
		defer mockDB.Close()

		assert.NotNil(t, repo)
		assert.NotNil(t, repo.db)
	})
}

func TestGormPatientRepository_FindByID(t *testing.T) {
	t.Run("finds existing patient", func(t *testing.T) {
		repo, mock, mockDB := newMockPatientRepository(t)
		defer mockDB.Close()

		patientID := uuid.New()

		rows := sqlmock.NewRows([]string{"id", "first_name", "last_name", "email", "phone", "blood_group"}).
			AddRow(patientID, "John", "Doe", "john.doe@example.com", "555-0101", "O+")

		mock.ExpectQuery(`SELECT \* FROM "patients" WHERE id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(patientID, 1).
			WillReturnRows(rows)

		p, err := repo.FindByID(context.Background(), patientID)

		assert.NoError(t, err)
		assert.NotNil(t, p)
		assert.Equal(t, patientID, p.ID)
		assert.Equal(t, "John Doe", p.FullName())
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns error for non-existent patient", func(t *testing.T) {
		repo, mock, mockDB := newMockPatientRepository(t)
		defer mockDB.Close()

		patientID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "patients" WHERE id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(patientID, 1).
			WillReturnError(gorm.ErrRecordNotFound)

		p, err := repo.FindByID(context.Background(), patientID)

		assert.Error(t, err)
		assert.Nil(t, p)
		assert.Equal(t, shared.ErrNotFound, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormPatientRepository_FindByEmail(t *testing.T) {
	t.Run("finds patient by email, case insensitive", func(t *testing.T) {
		repo, mock, mockDB := newMockPatientRepository(t)
		defer mockDB.Close()

		patientID := uuid.New()

		rows := sqlmock.NewRows([]string{"id", "first_name", "last_name", "email"}).
			AddRow(patientID, "Jane", "Roe", "jane.roe@example.com")

		mock.ExpectQuery(`SELECT \* FROM "patients" WHERE LOWER\(email\) = \$1 ORDER BY .* LIMIT .*`).
			WithArgs("jane.roe@example.com", 1).
			WillReturnRows(rows)

		p, err := repo.FindByEmail(context.Background(), "Jane.Roe@Example.com")

		assert.NoError(t, err)
		assert.NotNil(t, p)
		assert.Equal(t, "jane.roe@example.com", p.Email)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns error for empty email", func(t *testing.T) {
		repo, _, mockDB := newMockPatientRepository(t)
		defer mockDB.Close()

		_, err := repo.FindByEmail(context.Background(), "")

		assert.Error(t, err)
	})
}

func TestGormPatientRepository_FindAll(t *testing.T) {
	t.Run("orders by whitelisted sort field", func(t *testing.T) {
		repo, mock, mockDB := newMockPatientRepository(t)
		defer mockDB.Close()

		rows := sqlmock.NewRows([]string{"id", "first_name", "last_name", "email"}).
			AddRow(uuid.New(), "Alice", "Adams", "alice@example.com").
			AddRow(uuid.New(), "Bob", "Brown", "bob@example.com")

		mock.ExpectQuery(`SELECT \* FROM "patients" ORDER BY first_name ASC`).
			WillReturnRows(rows)

		patients, err := repo.FindAll(context.Background(), shared.Filter{OrderBy: "first_name", OrderDir: "asc"})

		assert.NoError(t, err)
		assert.Len(t, patients, 2)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("falls back to created_at for unknown sort field", func(t *testing.T) {
		repo, mock, mockDB := newMockPatientRepository(t)
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT \* FROM "patients" ORDER BY created_at DESC`).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		_, err := repo.FindAll(context.Background(), shared.Filter{OrderBy: "email; DROP TABLE patients"})

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormPatientRepository_FindByIDs(t *testing.T) {
	t.Run("finds multiple patients by IDs", func(t *testing.T) {
		repo, mock, mockDB := newMockPatientRepository(t)
		defer mockDB.Close()

		id1 := uuid.New()
		id2 := uuid.New()

		rows := sqlmock.NewRows([]string{"id", "first_name", "email"}).
			AddRow(id1, "Alice", "alice@example.com").
			AddRow(id2, "Bob", "bob@example.com")

		mock.ExpectQuery(`SELECT \* FROM "patients" WHERE id IN \(\$1,\$2\)`).
			WithArgs(id1, id2).
			WillReturnRows(rows)

		patients, err := repo.FindByIDs(context.Background(), []uuid.UUID{id1, id2})

		assert.NoError(t, err)
		assert.Len(t, patients, 2)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns empty slice for empty IDs", func(t *testing.T) {
		repo, _, mockDB := newMockPatientRepository(t)
		defer mockDB.Close()

		patients, err := repo.FindByIDs(context.Background(), []uuid.UUID{})

		assert.NoError(t, err)
		assert.Empty(t, patients)
	})
}

func TestGormPatientRepository_Save(t *testing.T) {
	t.Run("saves patient", func(t *testing.T) {
		repo, mock, mockDB := newMockPatientRepository(t)
		defer mockDB.Close()

		p, _ := patient.NewPatient("John", "Doe", "john.doe@example.com")

		mock.ExpectExec(`UPDATE "patients" SET`).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.Save(context.Background(), p)

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormPatientRepository_Delete(t *testing.T) {
	t.Run("deletes existing patient", func(t *testing.T) {
		repo, mock, mockDB := newMockPatientRepository(t)
		defer mockDB.Close()

		patientID := uuid.New()

		mock.ExpectExec(`DELETE FROM "patients" WHERE id = \$1`).
			WithArgs(patientID).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.Delete(context.Background(), patientID)

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns error for non-existent patient", func(t *testing.T) {
		repo, mock, mockDB := newMockPatientRepository(t)
		defer mockDB.Close()

		patientID := uuid.New()

		mock.ExpectExec(`DELETE FROM "patients" WHERE id = \$1`).
			WithArgs(patientID).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.Delete(context.Background(), patientID)

		assert.Error(t, err)
		assert.Equal(t, shared.ErrNotFound, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormPatientRepository_Count(t *testing.T) {
	t.Run("counts patients", func(t *testing.T) {
		repo, mock, mockDB := newMockPatientRepository(t)
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT count\(\*\) FROM "patients"`).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(42))

		count, err := repo.Count(context.Background(), shared.Filter{})

		assert.NoError(t, err)
		assert.Equal(t, int64(42), count)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormPatientRepository_InterfaceCompliance(t *testing.T) {
	t.Run("implements PatientRepository interface", func(t *testing.T) {
		repo, _, mockDB := newMockPatientRepository(t)
		defer mockDB.Close()

		var _ patient.PatientRepository = repo
	})
}
