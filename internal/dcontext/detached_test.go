package dcontext

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDetachedContextSurvivesParentCancel(t *testing.T) {
	parent, cancel := context.WithCancel(context.Background())
	parent = context.WithValue(parent, "k", "v")

	detached := DetachedContext(parent)
	cancel()

	require.Error(t, parent.Err())
	select {
	case <-parent.Done():
	default:
		t.Fatal("parent context should be canceled")
	}

	require.Nil(t, detached.Done())
	require.Equal(t, "v", detached.Value("k"))
}
