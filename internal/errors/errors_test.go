package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorBuilderDefaults(t *testing.T) {
	ee := Newf("something failed").Build()
	require.NotNil(t, ee)
	assert.Equal(t, ComponentUnknown, ee.Component)
	assert.Equal(t, CategoryGeneric, ee.Category)
	assert.Equal(t, "something failed", ee.Error())
	assert.False(t, ee.Timestamp.IsZero())
}

func TestErrorBuilderContext(t *testing.T) {
	ee := Newf("fetch failed").
		Component("forecast").
		Category(CategoryNetwork).
		Context("status_code", 503).
		Build()

	assert.Equal(t, "forecast", ee.Component)
	assert.Equal(t, "network", ee.GetCategory())

	ctx := ee.GetContext()
	require.NotNil(t, ctx)
	assert.Equal(t, 503, ctx["status_code"])

	// Mutating the copy must not affect the error
	ctx["status_code"] = 200
	assert.Equal(t, 503, ee.GetContext()["status_code"])
}

func TestErrorUnwrap(t *testing.T) {
	sentinel := fmt.Errorf("upstream down")
	ee := New(fmt.Errorf("wrapped: %w", sentinel)).Category(CategoryNetwork).Build()

	assert.True(t, Is(ee, sentinel))

	var target *EnhancedError
	assert.True(t, As(ee, &target))
	assert.Equal(t, CategoryNetwork, target.Category)
}

func TestErrorIsMatchesCategory(t *testing.T) {
	a := Newf("a").Category(CategoryState).Build()
	b := Newf("b").Category(CategoryState).Build()
	c := Newf("c").Category(CategoryNetwork).Build()

	assert.True(t, a.Is(b))
	assert.False(t, a.Is(c))
}
