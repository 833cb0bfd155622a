package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMemoryUpsertAndLoadAll(t *testing.T) {
	ctx := context.Background()
	s := NewMemory()
	defer s.Close()

	records, err := s.LoadAll(ctx)
	assert.NoError(t, err)
	assert.Empty(t, records)

	assert.NoError(t, s.UpsertField(ctx, "42", "prefix", "!"))
	assert.NoError(t, s.UpsertField(ctx, "42", "cmd-ping", true))
	assert.NoError(t, s.UpsertField(ctx, "global", "prefix", "?"))

	records, err = s.LoadAll(ctx)
	assert.NoError(t, err)
	assert.Len(t, records, 2)
	byTenant := map[string]map[string]any{}
	for _, r := range records {
		byTenant[r.Tenant] = r.Document
	}
	assert.Equal(t, map[string]any{"prefix": "!", "cmd-ping": true}, byTenant["42"])
	assert.Equal(t, map[string]any{"prefix": "?"}, byTenant["global"])
}

func TestMemoryUpsertReplacesField(t *testing.T) {
	ctx := context.Background()
	s := NewMemory()
	defer s.Close()

	assert.NoError(t, s.UpsertField(ctx, "42", "prefix", "!"))
	assert.NoError(t, s.UpsertField(ctx, "42", "prefix", "$"))

	records, err := s.LoadAll(ctx)
	assert.NoError(t, err)
	assert.Len(t, records, 1)
	assert.Equal(t, map[string]any{"prefix": "$"}, records[0].Document)
}

func TestMemoryUnsetField(t *testing.T) {
	ctx := context.Background()
	s := NewMemory()
	defer s.Close()

	assert.NoError(t, s.UpsertField(ctx, "42", "prefix", "!"))
	assert.NoError(t, s.UnsetField(ctx, "42", "prefix"))
	// Unsetting an absent field or record is a no-op.
	assert.NoError(t, s.UnsetField(ctx, "42", "missing"))
	assert.NoError(t, s.UnsetField(ctx, "77", "prefix"))

	records, err := s.LoadAll(ctx)
	assert.NoError(t, err)
	assert.Len(t, records, 1)
	assert.Empty(t, records[0].Document)
}

func TestMemoryDeleteRecord(t *testing.T) {
	ctx := context.Background()
	s := NewMemory()
	defer s.Close()

	assert.NoError(t, s.UpsertField(ctx, "42", "prefix", "!"))
	assert.NoError(t, s.DeleteRecord(ctx, "42"))
	assert.NoError(t, s.DeleteRecord(ctx, "42"))

	records, err := s.LoadAll(ctx)
	assert.NoError(t, err)
	assert.Empty(t, records)
}

func TestMemoryLoadAllClonesDocuments(t *testing.T) {
	ctx := context.Background()
	s := NewMemory()
	defer s.Close()

	assert.NoError(t, s.UpsertField(ctx, "42", "mods", map[string]any{"ping": true}))
	records, err := s.LoadAll(ctx)
	assert.NoError(t, err)
	records[0].Document["mods"].(map[string]any)["ping"] = false

	records, err = s.LoadAll(ctx)
	assert.NoError(t, err)
	assert.Equal(t, map[string]any{"ping": true}, records[0].Document["mods"])
}

func TestTenantEncoding(t *testing.T) {
	assert.Equal(t, "0", encodeTenant("global"))
	assert.Equal(t, "42", encodeTenant("42"))
	assert.Equal(t, "global", decodeTenant("0"))
	assert.Equal(t, "42", decodeTenant("42"))
}
