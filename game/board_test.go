package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIsSafe(t *testing.T) {
	t.Run("safe and home column squares", func(t *testing.T) {
		for _, rel := range []int{1, 9, 14, 22, 27, 35, 40, 48, 52, 55, 57} {
			require.True(t, IsSafe(rel), "Square %d should be safe", rel)
		}
		for _, rel := range []int{0, 2, 10, 13, 26, 47, 51} {
			require.False(t, IsSafe(rel), "Square %d should not be safe", rel)
		}
	})

	t.Run("safety of a ring square does not depend on the color standing there", func(t *testing.T) {
		safeAbs := map[int]bool{}
		for rel := 1; rel < HomeColumn; rel++ {
			if IsSafe(rel) {
				safeAbs[RelativeToAbsolute(Red, rel)] = true
			}
		}
		for c := Green; c <= Blue; c++ {
			for rel := 1; rel < HomeColumn; rel++ {
				require.Equal(t, IsSafe(rel), safeAbs[RelativeToAbsolute(c, rel)],
					"%s at rel %d should agree with red on the same ring square", c, rel)
			}
		}
	})
}

func TestColor(t *testing.T) {
	t.Run("game modes seat opposite colors", func(t *testing.T) {
		require.Equal(t, [2]Color{Red, Yellow}, ColorPair(0))
		require.Equal(t, [2]Color{Blue, Green}, ColorPair(1))
		require.Equal(t, [2]Color{Blue, Green}, ColorPair(7))
	})

	t.Run("initials", func(t *testing.T) {
		for c := Red; c <= Blue; c++ {
			got, ok := ColorFromInitial(c.Initial())
			require.True(t, ok)
			require.Equal(t, c, got)
		}
		_, ok := ColorFromInitial('Z')
		require.False(t, ok)
	})
}
