package browse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pageNumbers(tokens []PageToken) []int {
	var out []int
	for _, t := range tokens {
		if !t.Ellipsis {
			out = append(out, t.Page)
		}
	}
	return out
}

func TestPageButtons_SmallRangeListsEveryPage(t *testing.T) {
	for last := 1; last <= 7; last++ {
		tokens := PageButtons(3, 1, last)
		require.Len(t, tokens, last)
		for i, tok := range tokens {
			assert.False(t, tok.Ellipsis)
			assert.Equal(t, i+1, tok.Page)
		}
	}
}

func TestPageButtons_LargeRangeKeepsEnds(t *testing.T) {
	tokens := PageButtons(5, 1, 20)
	require.NotEmpty(t, tokens)
	assert.Equal(t, 1, tokens[0].Page)
	assert.Equal(t, 20, tokens[len(tokens)-1].Page)
}

func TestPageButtons_WindowCenteredOnCurrent(t *testing.T) {
	tokens := PageButtons(10, 1, 20)
	assert.Equal(t, []int{1, 9, 10, 11, 20}, pageNumbers(tokens))
	// Gaps on both sides of the window.
	assert.True(t, tokens[1].Ellipsis)
	assert.True(t, tokens[len(tokens)-2].Ellipsis)
}

func TestPageButtons_WindowClampedAtStart(t *testing.T) {
	tokens := PageButtons(1, 1, 20)
	assert.Equal(t, []int{1, 2, 20}, pageNumbers(tokens))
	// Window touches the left end, so only one ellipsis before last.
	var gaps int
	for _, tok := range tokens {
		if tok.Ellipsis {
			gaps++
		}
	}
	assert.Equal(t, 1, gaps)
}

func TestPageButtons_WindowClampedAtEnd(t *testing.T) {
	tokens := PageButtons(20, 1, 20)
	assert.Equal(t, []int{1, 19, 20}, pageNumbers(tokens))
}

func TestPageButtons_CurrentOutOfRangeIsClamped(t *testing.T) {
	tokens := PageButtons(99, 1, 20)
	assert.Equal(t, pageNumbers(PageButtons(20, 1, 20)), pageNumbers(tokens))

	tokens = PageButtons(-3, 1, 20)
	assert.Equal(t, pageNumbers(PageButtons(1, 1, 20)), pageNumbers(tokens))
}

func TestPageButtons_Deterministic(t *testing.T) {
	for current := -2; current <= 25; current++ {
		a := PageButtons(current, 1, 23)
		b := PageButtons(current, 1, 23)
		require.Equal(t, a, b)

		// Window pages always inside (first, last).
		for i, tok := range a {
			if i == 0 || i == len(a)-1 || tok.Ellipsis {
				continue
			}
			assert.Greater(t, tok.Page, 1)
			assert.Less(t, tok.Page, 23)
		}
	}
}

func TestClampPage(t *testing.T) {
	assert.Equal(t, 1, ClampPage(0, 1, 9))
	assert.Equal(t, 9, ClampPage(42, 1, 9))
	assert.Equal(t, 5, ClampPage(5, 1, 9))
}
