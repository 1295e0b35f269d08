package feature

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFeature(t *testing.T) {
	f := New("outlook", []string{"sunny", "overcast"})
	assert.Equal(t, "outlook", f.Name())
	assert.Equal(t, []string{"sunny", "overcast"}, f.AvailableValues())
	assert.Equal(t, "outlook [sunny, overcast]", f.String())
}

func TestCriterion(t *testing.T) {
	c := NewCriterion("outlook", "sunny")
	assert.Equal(t, "outlook", c.Feature())
	assert.Equal(t, "sunny", c.Value())
	assert.True(t, c.Accepts("sunny"))
	assert.False(t, c.Accepts("rainy"))
	assert.Equal(t, "outlook is sunny", c.(*discreteCriterion).String())
}
