package utils

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDateSequencedIDMatchesOwnFormat(t *testing.T) {
	seq := 7
	id := DateSequencedID("BT", &seq)
	assert.True(t, ValidateIDFormat(id, "date-sequenced"), id)
	assert.Contains(t, id, "-007")
}

func TestDateSequencedIDFourDigitSequenceNeverMatches(t *testing.T) {
	seq := 1234
	id := DateSequencedID("BT", &seq)
	assert.False(t, ValidateIDFormat(id, "date-sequenced"), id)
}

func TestDateSequencedIDRandomFiller(t *testing.T) {
	id := DateSequencedID("BT", nil)
	assert.True(t, ValidateIDFormat(id, "date-sequenced"), id)
}

func TestCompactDateSequencedID(t *testing.T) {
	seq := 42
	id := CompactDateSequencedID("BT", &seq)
	assert.True(t, ValidateIDFormat(id, "compact"), id)
	assert.Equal(t, fmt.Sprintf("BT-%s-042", time.Now().Format("060102")), id)
}

func TestTimestampIDLength(t *testing.T) {
	id := TimestampID()
	assert.Len(t, id, 17)
	assert.True(t, ValidateIDFormat(id, "timestamp"), id)
}

func TestRandomAlphanumericID(t *testing.T) {
	id := RandomAlphanumericID(8)
	assert.True(t, ValidateIDFormat(id, "alphanumeric"), id)

	id = RandomAlphanumericID(0)
	assert.Len(t, id, 8)
}

func TestShortUniqueID(t *testing.T) {
	id, err := ShortUniqueID(10)
	assert.NoError(t, err)
	assert.Len(t, id, 10)
	for _, c := range id {
		assert.NotContains(t, "+/=", string(c))
	}

	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		id, err := ShortUniqueID(12)
		assert.NoError(t, err)
		assert.False(t, seen[id], "duplicate short unique id")
		seen[id] = true
	}
}

func TestHospitalID(t *testing.T) {
	id := HospitalID("MRG")
	assert.True(t, ValidateIDFormat(id, "hospital"), id)
}

func TestNewGUID(t *testing.T) {
	assert.True(t, ValidateIDFormat(NewGUID(), "guid"))
}

func TestPreferredIDUsesCompactForm(t *testing.T) {
	seq := 1
	assert.True(t, ValidateIDFormat(PreferredID("BT", &seq), "compact"))
}

func TestValidateIDFormatUnknownFormat(t *testing.T) {
	assert.False(t, ValidateIDFormat("anything", "nope"))
}
