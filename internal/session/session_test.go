package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueThenParse(t *testing.T) {
	m := NewManager("secret", time.Hour)

	profileID, token, err := m.Issue()
	require.NoError(t, err)
	require.NotEmpty(t, profileID)

	got, err := m.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, profileID, got)
}

func TestIssue_DistinctProfiles(t *testing.T) {
	m := NewManager("secret", time.Hour)
	a, _, err := m.Issue()
	require.NoError(t, err)
	b, _, err := m.Issue()
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestParse_Rejects(t *testing.T) {
	m := NewManager("secret", time.Hour)
	_, token, err := m.Issue()
	require.NoError(t, err)

	_, err = NewManager("other", time.Hour).Parse(token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = m.Parse("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)

	expired := NewManager("secret", time.Hour)
	expired.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	_, err = expired.Parse(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
