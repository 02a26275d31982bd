package patient

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPatient(t *testing.T) {
	t.Run("creates patient with lowercased email", func(t *testing.T) {
		p, err := NewPatient("John", "Doe", "John.Doe@Example.com")
		require.NoError(t, err)

		assert.Equal(t, "john.doe@example.com", p.Email)
		assert.Equal(t, "John Doe", p.FullName())
	})

	t.Run("rejects invalid input", func(t *testing.T) {
		_, err := NewPatient("", "Doe", "a@b.c")
		assert.Error(t, err)

		_, err = NewPatient("John", "Doe", "")
		assert.Error(t, err)

		_, err = NewPatient("John", "Doe", "not-an-email")
		assert.Error(t, err)
	})
}

func TestPatient_BloodGroupAndGender(t *testing.T) {
	p, err := NewPatient("John", "Doe", "john@example.com")
	require.NoError(t, err)

	require.NoError(t, p.SetBloodGroup("O+"))
	assert.Error(t, p.SetBloodGroup("Q+"))

	require.NoError(t, p.SetGender(GenderFemale))
	assert.Error(t, p.SetGender(Gender("unknown")))
}

func TestNewAdmission(t *testing.T) {
	patientID := uuid.New()
	bedID := uuid.New()

	t.Run("IPD requires a bed", func(t *testing.T) {
		_, err := NewAdmission(patientID, AdmissionIPD, "Dr. Grey", nil, time.Now())
		assert.Error(t, err)

		adm, err := NewAdmission(patientID, AdmissionIPD, "Dr. Grey", &bedID, time.Now())
		require.NoError(t, err)
		assert.Equal(t, AdmissionStatusAdmitted, adm.Status)
	})

	t.Run("OPD must not carry a bed", func(t *testing.T) {
		_, err := NewAdmission(patientID, AdmissionOPD, "Dr. Grey", &bedID, time.Now())
		assert.Error(t, err)

		adm, err := NewAdmission(patientID, AdmissionOPD, "Dr. Grey", nil, time.Now())
		require.NoError(t, err)
		assert.Nil(t, adm.BedID)
	})

	t.Run("unknown kind is rejected", func(t *testing.T) {
		_, err := NewAdmission(patientID, AdmissionKind("XYZ"), "Dr. Grey", nil, time.Now())
		assert.Error(t, err)
	})
}

func TestAdmission_Discharge(t *testing.T) {
	patientID := uuid.New()
	admittedAt := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	adm, err := NewAdmission(patientID, AdmissionOPD, "Dr. Grey", nil, admittedAt)
	require.NoError(t, err)

	t.Run("cannot discharge before admission", func(t *testing.T) {
		err := adm.Discharge(admittedAt.Add(-time.Hour))
		assert.Error(t, err)
	})

	t.Run("discharge closes the admission", func(t *testing.T) {
		require.NoError(t, adm.Discharge(admittedAt.Add(2*time.Hour)))
		assert.Equal(t, AdmissionStatusDischarged, adm.Status)
		require.NotNil(t, adm.DischargedAt)
	})

	t.Run("double discharge is rejected", func(t *testing.T) {
		assert.Error(t, adm.Discharge(time.Now()))
	})
}
