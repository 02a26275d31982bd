package staff

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func TestNewPayroll(t *testing.T) {
	t.Run("net salary is derived", func(t *testing.T) {
		p, err := NewPayroll(uuid.New(), 3, 2024, d(3000), d(500), d(200))
		require.NoError(t, err)

		assert.True(t, p.NetSalary.Equal(d(3300)))
		assert.Equal(t, PayrollStatusUnpaid, p.Status)
	})

	t.Run("rejects invalid period", func(t *testing.T) {
		_, err := NewPayroll(uuid.New(), 0, 2024, d(1), d(0), d(0))
		assert.Error(t, err)

		_, err = NewPayroll(uuid.New(), 13, 2024, d(1), d(0), d(0))
		assert.Error(t, err)

		_, err = NewPayroll(uuid.New(), 6, 1995, d(1), d(0), d(0))
		assert.Error(t, err)
	})

	t.Run("rejects deduction above gross", func(t *testing.T) {
		_, err := NewPayroll(uuid.New(), 3, 2024, d(1000), d(0), d(1001))
		assert.Error(t, err)
	})
}

func TestPayroll_ComponentChangeRecomputesNet(t *testing.T) {
	p, err := NewPayroll(uuid.New(), 3, 2024, d(3000), d(500), d(200))
	require.NoError(t, err)

	require.NoError(t, p.SetComponents(d(3200), d(0), d(100)))
	assert.True(t, p.NetSalary.Equal(d(3100)))
}

func TestPayroll_MarkPaid(t *testing.T) {
	p, err := NewPayroll(uuid.New(), 3, 2024, d(3000), d(0), d(0))
	require.NoError(t, err)

	require.NoError(t, p.MarkPaid(time.Now()))
	assert.Equal(t, PayrollStatusPaid, p.Status)
	assert.NotNil(t, p.PaidAt)

	assert.Error(t, p.MarkPaid(time.Now()), "double payment is rejected")
}

func TestNewStaffMember(t *testing.T) {
	t.Run("valid roles", func(t *testing.T) {
		for _, role := range []Role{RoleNurse, RolePharmacist, RoleReceptionist, RoleCaseHandler} {
			s, err := NewStaffMember(role, "Amy", "Lee", "amy@example.com")
			require.NoError(t, err, "role %s", role)
			assert.Equal(t, StaffStatusActive, s.Status)
		}
	})

	t.Run("invalid role", func(t *testing.T) {
		_, err := NewStaffMember(Role("doctor"), "Amy", "Lee", "amy@example.com")
		assert.Error(t, err)
	})
}
