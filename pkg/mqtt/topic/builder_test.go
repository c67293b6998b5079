package topic

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuilder(t *testing.T) {
	b := NewBuilder("/voltura/v1/")

	assert.Equal(t, "voltura/v1/selection/dealer/m1", b.Selection("dealer", "m1"))
	assert.Equal(t, "voltura/v1/selection/sales-points/+", b.SelectionWildcard("sales-points"))
	assert.Equal(t, "voltura/v1/selection/dealer/a_b_c", b.Selection("dealer", "a/b#c"))
}
