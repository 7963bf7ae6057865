package dbtime

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2024-01-01")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), d)

	d, err = ParseDate("2024-03-05T23:30:00+07:00")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC), d)

	_, err = ParseDate("05/03/2024")
	assert.Error(t, err)
}

func TestDateOfKeepsLocalCalendarDay(t *testing.T) {
	jakarta := time.FixedZone("WIB", 7*3600)
	late := time.Date(2024, 6, 30, 23, 59, 0, 0, jakarta)

	assert.Equal(t, time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC), DateOf(late))
}

func TestSetLocationFallsBackToUTC(t *testing.T) {
	t.Cleanup(func() { _ = SetLocation("") })

	assert.Error(t, SetLocation("Nowhere/Atlantis"))
	assert.Equal(t, time.UTC, Location())
}

func TestDatePointers(t *testing.T) {
	got, err := ParseDatePtr(nil)
	require.NoError(t, err)
	assert.Nil(t, got)

	blank := "  "
	got, err = ParseDatePtr(&blank)
	require.NoError(t, err)
	assert.Nil(t, got)

	s := "2025-02-14"
	got, err = ParseDatePtr(&s)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "2025-02-14", *FormatDatePtr(got))
}
