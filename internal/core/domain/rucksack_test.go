package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRucksackView_ProjectShadowsUser(t *testing.T) {
	user := []RucksackItem{
		{Scope: ScopeUser, Kind: KindTextStyle, Name: "Title", Payload: []byte("user")},
		{Scope: ScopeUser, Kind: KindLayer, Name: "Frame", Payload: []byte("frame")},
	}
	project := []RucksackItem{
		{Scope: ScopeProject, Kind: KindTextStyle, Name: "Title", Payload: []byte("project")},
	}

	view := NewRucksackView(user, project)
	require.Equal(t, 2, view.Len())

	title, err := view.Resolve(KindTextStyle, "Title")
	require.NoError(t, err)
	assert.Equal(t, ScopeProject, title.Scope)
	assert.Equal(t, []byte("project"), title.Payload)

	frame, err := view.Resolve(KindLayer, "Frame")
	require.NoError(t, err)
	assert.Equal(t, ScopeUser, frame.Scope)
}

func TestRucksackView_SameNameDifferentKind(t *testing.T) {
	user := []RucksackItem{
		{Scope: ScopeUser, Kind: KindLayer, Name: "Title", Payload: []byte("layer")},
	}
	project := []RucksackItem{
		{Scope: ScopeProject, Kind: KindTextStyle, Name: "Title", Payload: []byte("style")},
	}

	view := NewRucksackView(user, project)
	assert.Equal(t, 2, view.Len())

	layer, err := view.Resolve(KindLayer, "Title")
	require.NoError(t, err)
	assert.Equal(t, []byte("layer"), layer.Payload)
}

func TestRucksackView_ResolveMiss(t *testing.T) {
	view := NewRucksackView(nil, nil)
	_, err := view.Resolve(KindVectorObject, "nope")
	assert.ErrorIs(t, err, ErrItemNotFound)
}

func TestRucksackView_ItemsSorted(t *testing.T) {
	view := NewRucksackView([]RucksackItem{
		{Kind: KindVectorObject, Name: "b"},
		{Kind: KindLayer, Name: "z"},
		{Kind: KindLayer, Name: "a"},
	}, nil)

	items := view.Items()
	require.Len(t, items, 3)
	assert.Equal(t, KindLayer, items[0].Kind)
	assert.Equal(t, "a", items[0].Name)
	assert.Equal(t, "z", items[1].Name)
	assert.Equal(t, KindVectorObject, items[2].Kind)
}

func TestFragmentKind_IsValid(t *testing.T) {
	assert.True(t, KindTextStyle.IsValid())
	assert.True(t, KindLayerEffect.IsValid())
	assert.False(t, FragmentKind("brush").IsValid())
}

func TestRucksackScope_IsValid(t *testing.T) {
	assert.True(t, ScopeProject.IsValid())
	assert.True(t, ScopeUser.IsValid())
	assert.False(t, RucksackScope("global").IsValid())
}
