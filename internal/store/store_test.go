// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package store

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v3"

	"github.com/Sneha-B6/P-1/pkg/types"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(types.StoreConfig{Dir: filepath.Join(t.TempDir(), "usecases")}, nil)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func sampleUseCase(source string, created time.Time) types.UseCase {
	fields := types.FieldSet{
		{Label: types.LabelActors, Content: "Shipper, Carrier", Found: true},
		{Label: types.LabelPreconditions, Content: types.MissingContent, Found: false},
		{Label: types.LabelMainFlow, Content: "Shipper books a slot.", Found: true},
		{Label: types.LabelPostconditions, Content: "Slot reserved", Found: true},
		{Label: types.LabelExceptions, Content: types.MissingContent, Found: false},
	}
	return types.UseCase{
		Source:    source,
		Focus:     "Region: APAC",
		UserStory: "As a shipper I want to book cargo.",
		Narrative: fields.Narrative(),
		Fields:    fields,
		CreatedAt: created,
	}
}

func TestNewID(t *testing.T) {
	a := NewID("brd.pdf", "Actors: A")
	assert.Len(t, a, 12)
	assert.Equal(t, a, NewID("brd.pdf", "Actors: A"))
	assert.NotEqual(t, a, NewID("brd.pdf", "Actors: B"))
	assert.NotEqual(t, a, NewID("other.pdf", "Actors: A"))
}

func TestSaveGetRoundTrip(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()
	created := time.Date(2026, 3, 1, 9, 30, 0, 123, time.UTC)

	uc := sampleUseCase("cargo-brd.docx", created)
	require.NoError(t, s.Save(ctx, &uc))
	assert.Equal(t, NewID(uc.Source, uc.Narrative), uc.ID)

	got, err := s.Get(ctx, uc.ID)
	require.NoError(t, err)
	assert.Equal(t, uc.Fields, got.Fields)
	assert.Equal(t, uc.Source, got.Source)
	assert.Equal(t, uc.Focus, got.Focus)
	assert.Equal(t, uc.UserStory, got.UserStory)
	assert.Equal(t, uc.Narrative, got.Narrative)
	assert.True(t, created.Equal(got.CreatedAt), "created %v, got %v", created, got.CreatedAt)
}

func TestSaveReplacesFields(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	uc := sampleUseCase("brd.txt", time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, s.Save(ctx, &uc))

	uc.Fields = types.FieldSet{{Label: types.LabelActors, Content: "Agent", Found: true}}
	require.NoError(t, s.Save(ctx, &uc))

	got, err := s.Get(ctx, uc.ID)
	require.NoError(t, err)
	assert.Equal(t, uc.Fields, got.Fields)

	all, err := s.List(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestSaveFillsCreatedAt(t *testing.T) {
	s := testStore(t)
	uc := sampleUseCase("brd.txt", time.Time{})

	require.NoError(t, s.Save(context.Background(), &uc))
	assert.False(t, uc.CreatedAt.IsZero())
}

func TestGetNotFound(t *testing.T) {
	s := testStore(t)

	_, err := s.Get(context.Background(), "deadbeef0000")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestListNewestFirst(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()
	base := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)

	for i, src := range []string{"old.txt", "newest.txt", "middle.txt"} {
		offsets := []time.Duration{0, 2 * time.Hour, time.Hour}
		uc := sampleUseCase(src, base.Add(offsets[i]))
		require.NoError(t, s.Save(ctx, &uc))
	}

	all, err := s.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "newest.txt", all[0].Source)
	assert.Equal(t, "middle.txt", all[1].Source)
	assert.Equal(t, "old.txt", all[2].Source)
	assert.Len(t, all[0].Fields, 5)

	limited, err := s.List(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, limited, 2)
}

func TestDelete(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	uc := sampleUseCase("brd.txt", time.Now())
	require.NoError(t, s.Save(ctx, &uc))

	require.NoError(t, s.Delete(ctx, uc.ID))
	_, err := s.Get(ctx, uc.ID)
	require.ErrorIs(t, err, ErrNotFound)

	var n int
	require.NoError(t, s.db.QueryRow(`SELECT count(*) FROM fields`).Scan(&n))
	assert.Zero(t, n, "fields cascade on delete")

	require.ErrorIs(t, s.Delete(ctx, uc.ID), ErrNotFound)
}

func TestExportYAML(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	uc := sampleUseCase("brd.txt", time.Date(2026, 2, 2, 0, 0, 0, 0, time.UTC))
	require.NoError(t, s.Save(ctx, &uc))

	path, err := s.ExportYAML(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(s.Dir(), ExportYAMLFile), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var got []types.UseCase
	require.NoError(t, yaml.Unmarshal(data, &got))
	require.Len(t, got, 1)
	assert.Equal(t, uc.Fields, got[0].Fields)
	assert.Equal(t, uc.ID, got[0].ID)
}

func TestExportJSON(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	out := filepath.Join(t.TempDir(), "all.json")
	path, err := s.ExportJSON(ctx, out)
	require.NoError(t, err)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, string(data))

	uc := sampleUseCase("brd.txt", time.Date(2026, 2, 2, 0, 0, 0, 0, time.UTC))
	require.NoError(t, s.Save(ctx, &uc))

	_, err = s.ExportJSON(ctx, out)
	require.NoError(t, err)
	data, err = os.ReadFile(out)
	require.NoError(t, err)

	var got []types.UseCase
	require.NoError(t, json.Unmarshal(data, &got))
	require.Len(t, got, 1)
	assert.Equal(t, uc.Fields, got[0].Fields)
}
