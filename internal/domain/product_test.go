package domain

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProduct_MatchesText(t *testing.T) {
	phone := &Product{Title: "iPhone 12", Description: "Barely used", Category: "Electronics & Gadgets"}
	book := &Product{Title: "Textbook", Description: "Linear algebra", Category: "Books & Study Materials"}

	assert.True(t, phone.MatchesText("phone"))
	assert.True(t, phone.MatchesText("PHONE"))
	assert.False(t, book.MatchesText("phone"))

	// Description and category are searched too.
	assert.True(t, book.MatchesText("algebra"))
	assert.True(t, book.MatchesText("study"))

	// Empty query matches everything.
	assert.True(t, phone.MatchesText(""))
	assert.True(t, book.MatchesText(""))
}

func TestNewProduct_Validation(t *testing.T) {
	_, err := NewProduct("seller1", "uni1", "Bike", "red bike", "Sports Equipment", 50, ConditionGood, nil)
	assert.NoError(t, err)

	_, err = NewProduct("", "uni1", "Bike", "", "Sports Equipment", 50, ConditionGood, nil)
	assert.Error(t, err)

	_, err = NewProduct("seller1", "uni1", "", "", "Sports Equipment", 50, ConditionGood, nil)
	assert.Error(t, err)

	_, err = NewProduct("seller1", "uni1", "Bike", "", "Sports Equipment", -1, ConditionGood, nil)
	assert.Error(t, err)

	_, err = NewProduct("seller1", "uni1", "Bike", "", "Sports Equipment", math.NaN(), ConditionGood, nil)
	assert.Error(t, err)

	_, err = NewProduct("seller1", "uni1", "Bike", "", "Sports Equipment", 50, Condition("mint"), nil)
	assert.Error(t, err)
}

func TestNewProduct_Defaults(t *testing.T) {
	p, err := NewProduct("seller1", "uni1", "Bike", "", "Sports Equipment", 0, ConditionNew, nil)
	assert.NoError(t, err)
	assert.Equal(t, ProductStatusActive, p.Status)
	assert.NotNil(t, p.Images)
	assert.Empty(t, p.Images)
}

func TestNewReview_Validation(t *testing.T) {
	_, err := NewReview("p1", "buyer", "seller", 5, "great")
	assert.NoError(t, err)

	_, err = NewReview("p1", "buyer", "seller", 0, "")
	assert.Error(t, err)

	_, err = NewReview("p1", "buyer", "seller", 6, "")
	assert.Error(t, err)

	_, err = NewReview("p1", "seller", "seller", 4, "reviewing myself")
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = NewReview("", "buyer", "seller", 4, "")
	assert.Error(t, err)
}

func TestFilter_Equal(t *testing.T) {
	cat := "Electronics & Gadgets"
	catCopy := "Electronics & Gadgets"
	min := 10.0

	a := Filter{Category: &cat, MinPrice: &min, SortBy: SortNewest}
	b := Filter{Category: &catCopy, MinPrice: &min, SortBy: SortNewest}
	assert.True(t, a.Equal(b))

	b.SortBy = SortViews
	assert.False(t, a.Equal(b))

	assert.True(t, Filter{}.Equal(Filter{}))
	assert.False(t, Filter{Conditions: []Condition{ConditionNew}}.Equal(Filter{}))
}
