package intent

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrdinals(t *testing.T) {
	tests := []struct {
		name       string
		text       string
		shownCount int
		want       []int
	}{
		{"single digit", "2", 5, []int{1}},
		{"select verb with digit", "select 3", 5, []int{2}},
		{"two digits joined by and", "select 1 and 3", 5, []int{0, 2}},
		{"comma separated", "1, 2, 4", 5, []int{0, 1, 3}},
		{"ordinal suffix", "the 2nd one", 5, []int{1}},
		{"number word", "the first one", 5, []int{0}},
		{"word pair", "first and third", 5, []int{0, 2}},
		{"last resolves to shown count", "the last one", 4, []int{3}},
		{"out of range dropped", "select 7", 5, nil},
		{"partial selection survives", "1 and 9", 5, []int{0}},
		{"duplicates collapse", "2 and 2", 5, []int{1}},
		{"nothing shown", "select 2", 0, nil},
		{"no reference", "something nice", 5, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Ordinals(tt.text, tt.shownCount))
		})
	}
}

func TestOrdinalsWordOneDoesNotDuplicate(t *testing.T) {
	// "one" trailing a number reference is a noun, not a position
	assert.Equal(t, []int{2}, Ordinals("the third one", 5))
	assert.Equal(t, []int{1}, Ordinals("the 2nd one", 5))
}

func TestOrdinalsWordOneAsStandalonePosition(t *testing.T) {
	// Separated from any number reference, "one" is position 1
	assert.Equal(t, []int{0, 1}, Ordinals("select 2 and one", 5))
	assert.Equal(t, []int{0}, Ordinals("one", 5))
}

func TestHasOrdinalShape(t *testing.T) {
	tests := []struct {
		text string
		want bool
	}{
		{"2", true},
		{"1 and 3", true},
		{"the first one", true},
		{"2nd", true},
		{"last", true},
		{"add to cart", false},
		{"gift under 500", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			assert.Equal(t, tt.want, HasOrdinalShape(tt.text))
		})
	}
}
