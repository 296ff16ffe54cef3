package db

import (
	"errors"
	"reflect"
	"testing"

	"github.com/google/uuid"
	"github.com/jonathan/teammatch/internal/types"
	pgvector "github.com/pgvector/pgvector-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRow assigns fixed values to Scan destinations in order.
type fakeRow struct {
	values []any
	err    error
}

func (r fakeRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	if len(dest) != len(r.values) {
		return errors.New("column count mismatch")
	}
	for i, d := range dest {
		reflect.ValueOf(d).Elem().Set(reflect.ValueOf(r.values[i]))
	}
	return nil
}

func strPtr(s string) *string { return &s }

func intPtr(n int) *int { return &n }

func vecPtr(v []float32) *pgvector.Vector {
	vec := pgvector.NewVector(v)
	return &vec
}

func TestScanProfile(t *testing.T) {
	id := uuid.New()
	row := fakeRow{values: []any{
		id, "Builds things", "UTC",
		[]string{"backend"}, []string{"python", "go"}, []string{"ai"}, []string{"saas"},
		strPtr("4"),
		[]byte(`{"total_hackathons": 3, "wins_breakdown": {"first": 1}, "hackathon_score": 10}`),
		vecPtr([]float32{0.1, 0.2}),
	}}

	p, err := scanProfile(row)
	require.NoError(t, err)

	assert.Equal(t, id.String(), p.ID)
	assert.Equal(t, []string{"python", "go"}, p.Skills)
	assert.Equal(t, types.YearsOf(4), p.ExperienceYears)
	require.NotNil(t, p.Hackathons)
	assert.Equal(t, 10, p.Hackathons.Score)
	assert.Equal(t, 1, p.Hackathons.Wins.First)
	assert.Equal(t, []float32{0.1, 0.2}, p.Embedding)
}

func TestScanProfile_NullableColumns(t *testing.T) {
	row := fakeRow{values: []any{
		uuid.New(), "", "",
		[]string{}, []string{}, []string{}, []string{},
		(*string)(nil), []byte(nil), (*pgvector.Vector)(nil),
	}}

	p, err := scanProfile(row)
	require.NoError(t, err)

	assert.True(t, p.ExperienceYears.Valid())
	assert.Nil(t, p.Hackathons)
	assert.Nil(t, p.Embedding)
}

func TestScanProfile_MalformedYearsKept(t *testing.T) {
	row := fakeRow{values: []any{
		uuid.New(), "", "",
		[]string{}, []string{}, []string{}, []string{},
		strPtr("a decade"), []byte(nil), (*pgvector.Vector)(nil),
	}}

	p, err := scanProfile(row)
	require.NoError(t, err)
	assert.False(t, p.ExperienceYears.Valid())
	assert.Equal(t, "a decade", p.ExperienceYears.String())
}

func TestScanProfile_BadHackathonJSON(t *testing.T) {
	row := fakeRow{values: []any{
		uuid.New(), "", "",
		[]string{}, []string{}, []string{}, []string{},
		(*string)(nil), []byte(`{not json`), (*pgvector.Vector)(nil),
	}}

	_, err := scanProfile(row)
	assert.ErrorContains(t, err, "failed to decode hackathons")
}

func TestScanTarget(t *testing.T) {
	id, owner := uuid.New(), uuid.New()
	row := fakeRow{values: []any{
		id, owner, "Matchmaker", "Find teammates",
		[]string{"python", "react"}, []string{"frontend"},
		intPtr(2), intPtr(6), "Europe/Berlin", "web app",
		vecPtr([]float32{1, 0, 0}),
	}}

	target, err := scanTarget(row)
	require.NoError(t, err)

	assert.Equal(t, id.String(), target.ID)
	assert.Equal(t, owner.String(), target.OwnerID)
	minYears, maxYears := target.Bounds()
	assert.Equal(t, 2, minYears)
	assert.Equal(t, 6, maxYears)
	assert.Equal(t, []float32{1, 0, 0}, target.Embedding)
}

func TestScan_PropagatesError(t *testing.T) {
	boom := errors.New("boom")
	_, err := scanTarget(fakeRow{err: boom})
	assert.ErrorIs(t, err, boom)
	_, err = scanProfile(fakeRow{err: boom})
	assert.ErrorIs(t, err, boom)
}

func TestVectorSlice(t *testing.T) {
	assert.Nil(t, vectorSlice(nil))
	assert.Nil(t, vectorSlice(vecPtr(nil)))

	src := []float32{1, 2}
	out := vectorSlice(vecPtr(src))
	out[0] = 9
	assert.Equal(t, float32(1), src[0], "result does not alias the column buffer")
}

func TestSchemaEmbedded(t *testing.T) {
	assert.Contains(t, schemaSQL, "CREATE TABLE IF NOT EXISTS match_decisions")
	assert.Contains(t, schemaSQL, "vector(384)")
}
