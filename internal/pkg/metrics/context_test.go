package metrics

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContext(t *testing.T) {
	_, isNop := FromContext(context.Background()).(*NopCollector)
	assert.True(t, isNop, "без collector в контексте возвращается NopCollector")

	//nolint:staticcheck // проверка nil контекста
	_, isNop = FromContext(nil).(*NopCollector)
	assert.True(t, isNop)

	c := NewNopCollector()
	assert.Same(t, c, FromContext(NewContext(context.Background(), c)))
}
