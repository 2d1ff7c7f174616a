package oracle

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDummy_TopicShift(t *testing.T) {
	d := Dummy{}

	shift, err := d.TopicShift(context.Background(), "", "new Message C")
	require.NoError(t, err)
	assert.False(t, shift, "no previous message means no shift")

	shift, err = d.TopicShift(context.Background(), "Message A", "Message B")
	require.NoError(t, err)
	assert.False(t, shift)

	shift, err = d.TopicShift(context.Background(), "Message B", "new Message C")
	require.NoError(t, err)
	assert.True(t, shift)

	shift, err = d.TopicShift(context.Background(), "Message B", "NEW Message C")
	require.NoError(t, err)
	assert.True(t, shift, "match is case-insensitive")
}

func TestDummy_Summarize(t *testing.T) {
	d := Dummy{}
	text, err := d.Summarize(context.Background(), []string{"a", "b"})
	require.NoError(t, err)
	assert.Equal(t, "Summary(2 messages)", text)
}

func TestDummy_Group(t *testing.T) {
	d := Dummy{}
	groups, err := d.Group(context.Background(), []string{"a", "b", "c"})
	require.NoError(t, err)
	assert.Equal(t, [][]int{{0}, {1}, {2}}, groups)
}
