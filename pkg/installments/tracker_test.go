package installments

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func accept(t *testing.T, tr *Tracker, key, installment string) bool {
	t.Helper()
	ok, err := tr.Accept(key, installment)
	require.NoError(t, err)
	return ok
}

func TestTracker_Decreasing(t *testing.T) {
	tr := NewTracker()
	assert.True(t, accept(t, tr, "ACADEMIA X", "03/10"))
	assert.True(t, accept(t, tr, "ACADEMIA X", "02/10"))
	assert.Equal(t, map[string]int{"ACADEMIA X": 2}, tr.Snapshot())
}

func TestTracker_Repeated(t *testing.T) {
	tr := NewTracker()
	assert.True(t, accept(t, tr, "ACADEMIA X", "02/10"))
	assert.False(t, accept(t, tr, "ACADEMIA X", "02/10"))
}

func TestTracker_Increasing(t *testing.T) {
	tr := NewTracker()
	assert.True(t, accept(t, tr, "ACADEMIA X", "02/10"))
	assert.False(t, accept(t, tr, "ACADEMIA X", "03/10"))
	assert.Equal(t, 2, tr.Snapshot()["ACADEMIA X"])
}

func TestTracker_RejectedDoesNotUpdate(t *testing.T) {
	tr := NewTracker()
	assert.True(t, accept(t, tr, "LOJA", "05/06"))
	assert.False(t, accept(t, tr, "LOJA", "06/06"))
	assert.True(t, accept(t, tr, "LOJA", "04/06"))
	assert.Equal(t, []Entry{{Key: "LOJA", Installment: 4}}, tr.Entries())
}

func TestTracker_NoInstallmentBypasses(t *testing.T) {
	tr := NewTracker()
	assert.True(t, accept(t, tr, "PADARIA", ""))
	assert.True(t, accept(t, tr, "PADARIA", ""))
	assert.Equal(t, 0, tr.Len())
}

func TestTracker_KeysAreIndependent(t *testing.T) {
	tr := NewTracker()
	assert.True(t, accept(t, tr, "LOJA A", "02/03"))
	assert.True(t, accept(t, tr, "LOJA B", "02/03"))
	assert.Equal(t, []Entry{{Key: "LOJA A", Installment: 2}, {Key: "LOJA B", Installment: 2}}, tr.Entries())
}

func TestTracker_BadInstallment(t *testing.T) {
	tr := NewTracker()
	_, err := tr.Accept("LOJA", "xx/10")
	assert.ErrorIs(t, err, ErrBadInstallment)
}

func TestCurrent(t *testing.T) {
	n, err := Current("07/12")
	require.NoError(t, err)
	assert.Equal(t, 7, n)
}
