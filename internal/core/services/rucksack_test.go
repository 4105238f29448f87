package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atelier-tools/batchman/internal/adapters/driven/storage/memory"
	"github.com/atelier-tools/batchman/internal/core/domain"
)

// rucksackMockHost implements driven.FragmentHost for testing.
type rucksackMockHost struct {
	captured []byte
	capErr   error
	inserted []byte
	insErr   error
}

func (m *rucksackMockHost) CaptureFragment(_ context.Context, _ domain.FragmentKind) ([]byte, error) {
	if m.capErr != nil {
		return nil, m.capErr
	}
	return m.captured, nil
}

func (m *rucksackMockHost) InsertFragment(_ context.Context, _ domain.FragmentKind, payload []byte) error {
	if m.insErr != nil {
		return m.insErr
	}
	m.inserted = payload
	return nil
}

func TestRucksack_PutAndView(t *testing.T) {
	stores := memory.NewStoreFactory()
	r := NewRucksack(stores, nil)
	ctx := context.Background()
	dir := t.TempDir()

	require.NoError(t, r.Put(ctx, dir, domain.RucksackItem{
		Scope:   domain.ScopeUser,
		Kind:    domain.KindTextStyle,
		Name:    "caption",
		Payload: []byte("user-style"),
	}))
	require.NoError(t, r.Put(ctx, dir, domain.RucksackItem{
		Scope:   domain.ScopeProject,
		Kind:    domain.KindTextStyle,
		Name:    "caption",
		Payload: []byte("project-style"),
	}))

	view, err := r.View(ctx, dir)
	require.NoError(t, err)

	item, err := view.Resolve(domain.KindTextStyle, "caption")
	require.NoError(t, err)
	assert.Equal(t, domain.ScopeProject, item.Scope)
	assert.Equal(t, []byte("project-style"), item.Payload)
}

func TestRucksack_PutValidation(t *testing.T) {
	r := NewRucksack(memory.NewStoreFactory(), nil)
	ctx := context.Background()
	dir := t.TempDir()

	err := r.Put(ctx, dir, domain.RucksackItem{Scope: domain.ScopeUser, Kind: "sticker", Name: "x"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	err = r.Put(ctx, dir, domain.RucksackItem{Scope: domain.ScopeUser, Kind: domain.KindLayer})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	err = r.Put(ctx, dir, domain.RucksackItem{Scope: "global", Kind: domain.KindLayer, Name: "x"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRucksack_CaptureAndPut(t *testing.T) {
	stores := memory.NewStoreFactory()
	host := &rucksackMockHost{captured: []byte("captured-layer")}
	r := NewRucksack(stores, host)
	ctx := context.Background()
	dir := t.TempDir()

	require.NoError(t, r.CaptureAndPut(ctx, dir, domain.ScopeProject, domain.KindLayer, "sky"))

	store, err := stores.ProjectRucksack(dir)
	require.NoError(t, err)
	item, err := store.Get(ctx, domain.KindLayer, "sky")
	require.NoError(t, err)
	assert.Equal(t, []byte("captured-layer"), item.Payload)
	assert.False(t, item.UpdatedAt.IsZero())
}

func TestRucksack_CaptureWithoutHost(t *testing.T) {
	r := NewRucksack(memory.NewStoreFactory(), nil)
	err := r.CaptureAndPut(context.Background(), t.TempDir(), domain.ScopeUser, domain.KindLayer, "sky")
	assert.ErrorIs(t, err, domain.ErrNotImplemented)
}

func TestRucksack_ResolveAndInsert(t *testing.T) {
	stores := memory.NewStoreFactory()
	host := &rucksackMockHost{}
	r := NewRucksack(stores, host)
	ctx := context.Background()
	dir := t.TempDir()

	require.NoError(t, r.Put(ctx, dir, domain.RucksackItem{
		Scope:   domain.ScopeUser,
		Kind:    domain.KindVectorObject,
		Name:    "arrow",
		Payload: []byte("svg-ish"),
	}))

	view, err := r.View(ctx, dir)
	require.NoError(t, err)

	require.NoError(t, r.ResolveAndInsert(ctx, view, domain.KindVectorObject, "arrow"))
	assert.Equal(t, []byte("svg-ish"), host.inserted)

	err = r.ResolveAndInsert(ctx, view, domain.KindVectorObject, "missing")
	assert.ErrorIs(t, err, domain.ErrItemNotFound)
}

func TestRucksack_InsertHostError(t *testing.T) {
	stores := memory.NewStoreFactory()
	host := &rucksackMockHost{insErr: errors.New("host closed")}
	r := NewRucksack(stores, host)
	ctx := context.Background()
	dir := t.TempDir()

	require.NoError(t, r.Put(ctx, dir, domain.RucksackItem{
		Scope: domain.ScopeUser, Kind: domain.KindLayer, Name: "x", Payload: []byte("p"),
	}))
	view, err := r.View(ctx, dir)
	require.NoError(t, err)

	assert.Error(t, r.ResolveAndInsert(ctx, view, domain.KindLayer, "x"))
}

func TestRucksack_Delete(t *testing.T) {
	stores := memory.NewStoreFactory()
	r := NewRucksack(stores, nil)
	ctx := context.Background()
	dir := t.TempDir()

	require.NoError(t, r.Put(ctx, dir, domain.RucksackItem{
		Scope: domain.ScopeProject, Kind: domain.KindLayerEffect, Name: "glow", Payload: []byte("fx"),
	}))
	require.NoError(t, r.Delete(ctx, dir, domain.ScopeProject, domain.KindLayerEffect, "glow"))

	view, err := r.View(ctx, dir)
	require.NoError(t, err)
	_, err = view.Resolve(domain.KindLayerEffect, "glow")
	assert.ErrorIs(t, err, domain.ErrItemNotFound)

	// Deleting again is not an error.
	assert.NoError(t, r.Delete(ctx, dir, domain.ScopeProject, domain.KindLayerEffect, "glow"))
}

func TestRucksack_Move(t *testing.T) {
	stores := memory.NewStoreFactory()
	r := NewRucksack(stores, nil)
	ctx := context.Background()
	dir := t.TempDir()

	require.NoError(t, r.Put(ctx, dir, domain.RucksackItem{
		Scope: domain.ScopeProject, Kind: domain.KindTextStyle, Name: "title", Payload: []byte("style"),
	}))

	require.NoError(t, r.Move(ctx, dir, domain.ScopeProject, domain.ScopeUser, domain.KindTextStyle, "title"))

	project, err := stores.ProjectRucksack(dir)
	require.NoError(t, err)
	_, err = project.Get(ctx, domain.KindTextStyle, "title")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	user, err := stores.UserRucksack()
	require.NoError(t, err)
	item, err := user.Get(ctx, domain.KindTextStyle, "title")
	require.NoError(t, err)
	assert.Equal(t, domain.ScopeUser, item.Scope)
	assert.Equal(t, []byte("style"), item.Payload)
}

func TestRucksack_MoveMissing(t *testing.T) {
	r := NewRucksack(memory.NewStoreFactory(), nil)
	err := r.Move(context.Background(), t.TempDir(), domain.ScopeUser, domain.ScopeProject, domain.KindLayer, "gone")
	assert.ErrorIs(t, err, domain.ErrItemNotFound)
}

func TestRucksack_MoveSameScope(t *testing.T) {
	r := NewRucksack(memory.NewStoreFactory(), nil)
	err := r.Move(context.Background(), t.TempDir(), domain.ScopeUser, domain.ScopeUser, domain.KindLayer, "x")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
