package csvaudience

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mesa-campaigns/internal/core/domain"
)

func writeCSV(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o600))
}

func TestSelectAudienceFiltersRows(t *testing.T) {
	dir := t.TempDir()
	writeCSV(t, dir, "list.csv", `recipient_id,email,name,subscribed
1,ada@example.com,Ada,true
2,not-an-address,Bob,true
3,carol@example.com,Carol,false
4, dan@example.com ,Dan,
`)
	p := NewProvider(dir, "", 0)

	got, err := p.SelectAudience(context.Background(), nil, "list.csv")
	require.NoError(t, err)

	want := []domain.Recipient{
		{ID: "1", Email: "ada@example.com", Name: "Ada"},
		{ID: "4", Email: "dan@example.com", Name: "Dan"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("audience mismatch (-want +got):\n%s", diff)
	}
}

func TestSelectAudiencePrefersEngagedAndSynthesizesNames(t *testing.T) {
	dir := t.TempDir()
	writeCSV(t, dir, "default.csv", `email,engagement_score
jane.doe@example.com,9
low@example.com,2
max_power@example.com,7.5
`)
	p := NewProvider(dir, "default.csv", 0)

	got, err := p.SelectAudience(context.Background(), nil, "")
	require.NoError(t, err)

	require.Len(t, got, 2)
	assert.Equal(t, "Jane Doe", got[0].Name)
	assert.Equal(t, "Max Power", got[1].Name)
}

func TestSelectAudienceLimit(t *testing.T) {
	dir := t.TempDir()
	writeCSV(t, dir, "list.csv", "email\na@example.com\nb@example.com\nc@example.com\n")

	got, err := NewProvider(dir, "", 2).SelectAudience(context.Background(), nil, "list.csv")
	require.NoError(t, err)

	assert.Len(t, got, 2)
}

func TestSelectAudienceEmptyFileIsNotAnError(t *testing.T) {
	dir := t.TempDir()
	writeCSV(t, dir, "empty.csv", "")

	got, err := NewProvider(dir, "", 0).SelectAudience(context.Background(), nil, "empty.csv")

	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestSelectAudienceErrors(t *testing.T) {
	dir := t.TempDir()
	writeCSV(t, dir, "nomail.csv", "name\nAda\n")
	p := NewProvider(dir, "", 0)

	_, err := p.SelectAudience(context.Background(), nil, "../etc/passwd")
	assert.Error(t, err)

	_, err = p.SelectAudience(context.Background(), nil, "missing.csv")
	assert.Error(t, err)

	_, err = p.SelectAudience(context.Background(), nil, "nomail.csv")
	assert.Error(t, err)
}
