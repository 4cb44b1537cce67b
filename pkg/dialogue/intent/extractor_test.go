package intent

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseFilterPriceBounds(t *testing.T) {
	t.Run("under", func(t *testing.T) {
		f := ParseFilter("gift under 500")
		assert.Equal(t, 0.0, f.MinPrice)
		assert.Equal(t, 500.0, f.MaxPrice)
		assert.True(t, f.Bounded())
	})

	t.Run("under with currency", func(t *testing.T) {
		f := ParseFilter("something below rs. 1500")
		assert.Equal(t, 1500.0, f.MaxPrice)
	})

	t.Run("between", func(t *testing.T) {
		f := ParseFilter("gifts between 200 and 800")
		assert.Equal(t, 200.0, f.MinPrice)
		assert.Equal(t, 800.0, f.MaxPrice)
	})

	t.Run("no bound", func(t *testing.T) {
		f := ParseFilter("birthday gift for my sister")
		assert.True(t, math.IsInf(f.MaxPrice, 1))
		assert.False(t, f.Bounded())
	})
}

func TestParseFilterAttributes(t *testing.T) {
	f := ParseFilter("superhero gift for a 7 year old boy, birthday, under 500")

	assert.Equal(t, 7, f.Age)
	assert.Equal(t, "male", f.Gender)
	assert.Equal(t, "birthday", f.Occasion)
	assert.Equal(t, "superhero", f.Theme)
	assert.Equal(t, 500.0, f.MaxPrice)
}

func TestParseFilterGender(t *testing.T) {
	assert.Equal(t, "female", ParseFilter("anniversary gift for my wife").Gender)
	assert.Equal(t, "male", ParseFilter("something for dad").Gender)
	assert.Equal(t, "", ParseFilter("a nice gift").Gender)
}

func TestParseFilterKeywords(t *testing.T) {
	f := ParseFilter("show me chocolate hampers")

	assert.Contains(t, f.Keywords, "chocolate")
	assert.Contains(t, f.Keywords, "hampers")
	assert.NotContains(t, f.Keywords, "show")
	assert.NotContains(t, f.Keywords, "me")
}

func TestParseFilterListingNounsAreNotKeywords(t *testing.T) {
	for _, text := range []string{"show products", "list all items", "browse the catalog", "view options"} {
		assert.True(t, ParseFilter(text).IsZero(), "input %q", text)
	}
}

func TestFilterTags(t *testing.T) {
	f := Filter{Theme: "romantic", Occasion: "anniversary", Gender: "female", Age: 0}
	assert.Equal(t, []string{"romantic", "anniversary", "female"}, f.Tags())

	kid := Filter{Age: 7}
	assert.Equal(t, []string{"age:7", "kids"}, kid.Tags())
}

func TestFilterIsZero(t *testing.T) {
	assert.True(t, ParseFilter("").IsZero())
	assert.False(t, ParseFilter("gift under 500").IsZero())
	assert.False(t, ParseFilter("something for my sister").IsZero())
}
