package store

import (
	"errors"
	"mrs/src/models"
	"mrs/src/types"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func newTestStore(t *testing.T) *JSONStore {
	t.Helper()
	s, err := NewJSONStore(t.TempDir())
	if err != nil {
		t.Fatalf("could not open json store: %s", err.Error())
	}
	return s
}

func TestJSONStoreBodyCRUD(t *testing.T) {
	s := newTestStore(t)

	body := &models.Body{TagNumber: "BT-250101-001", FullName: "John Doe"}
	assert.NoError(t, s.CreateBody(body))
	assert.Equal(t, uint(1), body.ID)

	got, err := s.GetBody(body.ID)
	assert.NoError(t, err)
	assert.Equal(t, "John Doe", got.FullName)

	got.FullName = "Jane Doe"
	assert.NoError(t, s.UpdateBody(got))
	got, _ = s.GetBody(body.ID)
	assert.Equal(t, "Jane Doe", got.FullName)

	byTag, err := s.GetBodyByTag("BT-250101-001")
	assert.NoError(t, err)
	assert.Equal(t, body.ID, byTag.ID)

	assert.NoError(t, s.DeleteBody(body.ID))
	_, err = s.GetBody(body.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestJSONStoreAllocationRoundTrip(t *testing.T) {
	s := newTestStore(t)

	days := 7
	allocation := &models.StorageAllocation{
		BodyID:               1,
		StorageUnitID:        2,
		AllocatedDate:        time.Now().Truncate(time.Second),
		ExpectedDurationDays: &days,
		Status:               types.ALLOCATION_ACTIVE,
		PriorityLevel:        types.PRIORITY_HIGH,
		TemperatureRequired:  -18.0,
		AllocatedBy:          "admin",
		AllocationType:       types.ALLOCATION_MANUAL,
		ProviderID:           1,
		OutletID:             1,
	}
	assert.NoError(t, s.CreateAllocation(allocation))
	assert.NotZero(t, allocation.ID)
	assert.False(t, allocation.AddedOn.IsZero())

	got, err := s.GetAllocation(allocation.ID)
	assert.NoError(t, err)
	assert.Equal(t, allocation.BodyID, got.BodyID)
	assert.Equal(t, allocation.StorageUnitID, got.StorageUnitID)
	assert.Equal(t, types.ALLOCATION_ACTIVE, got.Status)
	assert.Equal(t, &days, got.ExpectedDurationDays)

	active, err := s.ActiveAllocationsForBody(1)
	assert.NoError(t, err)
	assert.Len(t, active, 1)

	releasedBy := "nurse2"
	now := time.Now()
	got.Status = types.ALLOCATION_RELEASED
	got.ReleasedBy = &releasedBy
	got.ReleasedDate = &now
	assert.NoError(t, s.UpdateAllocation(got))

	active, _ = s.ActiveAllocationsForBody(1)
	assert.Empty(t, active)
}

func TestJSONStorePersistsAcrossReopen(t *testing.T) {
	dir := t.TempDir()
	s, err := NewJSONStore(dir)
	assert.NoError(t, err)
	assert.NoError(t, s.CreateBody(&models.Body{TagNumber: "BT-1", FullName: "John Doe"}))

	reopened, err := NewJSONStore(dir)
	assert.NoError(t, err)
	bodies, err := reopened.ListBodies()
	assert.NoError(t, err)
	assert.Len(t, bodies, 1)
	assert.Equal(t, "John Doe", bodies[0].FullName)

	// counter continues from persisted state
	assert.NoError(t, reopened.CreateBody(&models.Body{TagNumber: "BT-2"}))
	bodies, _ = reopened.ListBodies()
	assert.Equal(t, uint(2), bodies[1].ID)
}

func TestJSONStoreTransactRollsBackOnError(t *testing.T) {
	s := newTestStore(t)
	boom := errors.New("boom")

	err := s.Transact(func(tx Gateway) error {
		if err := tx.CreateBody(&models.Body{TagNumber: "BT-X"}); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	bodies, _ := s.ListBodies()
	assert.Empty(t, bodies)
}

func TestJSONStoreTransactCommits(t *testing.T) {
	s := newTestStore(t)

	err := s.Transact(func(tx Gateway) error {
		if err := tx.CreateBody(&models.Body{TagNumber: "BT-X"}); err != nil {
			return err
		}
		return tx.CreateMovement(&models.Movement{BodyID: 1, ToLocation: "cold room"})
	})
	assert.NoError(t, err)

	bodies, _ := s.ListBodies()
	movements, _ := s.ListMovements()
	assert.Len(t, bodies, 1)
	assert.Len(t, movements, 1)
}

func TestJSONStoreNextSequence(t *testing.T) {
	s := newTestStore(t)

	seq, err := s.NextSequence("BT", "20250101")
	assert.NoError(t, err)
	assert.Equal(t, 1, seq)

	seq, _ = s.NextSequence("BT", "20250101")
	assert.Equal(t, 2, seq)

	// independent per day and prefix
	seq, _ = s.NextSequence("BT", "20250102")
	assert.Equal(t, 1, seq)
	seq, _ = s.NextSequence("MRG", "20250101")
	assert.Equal(t, 1, seq)
}
