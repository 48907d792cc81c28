package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshot_AcceptAndSkip(t *testing.T) {
	var snap Snapshot
	snap.Accept("apple", qty("10"))
	snap.Accept("banana", qty("0"))
	snap.Skip("cherry", `"many"`, ErrNonNumericQuantity)
	snap.Accept("date", qty("1.25"))

	require.Len(t, snap.Items, 2)
	assert.Equal(t, "apple", snap.Items[0].Name)
	assert.Equal(t, "date", snap.Items[1].Name)

	require.Len(t, snap.Skipped, 2)
	assert.Equal(t, "banana", snap.Skipped[0].Key)
	assert.ErrorIs(t, snap.Skipped[0].Reason, ErrNonPositiveSnapshot)
	assert.Equal(t, "cherry", snap.Skipped[1].Key)
	assert.ErrorIs(t, snap.Skipped[1].Reason, ErrNonNumericQuantity)
}

func TestSnapshot_RepeatedKeyLastValueWins(t *testing.T) {
	var snap Snapshot
	snap.Accept("a", qty("1"))
	snap.Accept("b", qty("2"))
	snap.Accept("a", qty("3"))

	require.Len(t, snap.Items, 2)
	assert.Equal(t, "a", snap.Items[0].Name)
	assert.Equal(t, "3", snap.Items[0].Quantity.String())

	snap.Skip("a", "null", ErrNonNumericQuantity)
	snap.Accept("c", qty("4"))
	require.Len(t, snap.Items, 2)
	assert.Equal(t, "b", snap.Items[0].Name)
	assert.Equal(t, "c", snap.Items[1].Name)

	snap.Accept("b", qty("5"))
	assert.Equal(t, "5", snap.Items[0].Quantity.String())
}
