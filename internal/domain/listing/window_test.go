package listing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// render flattens labels into a compact form for comparison, using -1 for an
// ellipsis
func render(labels []PageLabel) []int {
	if len(labels) == 0 {
		return nil
	}
	out := make([]int, 0, len(labels))
	for _, l := range labels {
		if l.Ellipsis {
			out = append(out, -1)
			continue
		}
		out = append(out, l.Page)
	}
	return out
}

func TestPageWindow(t *testing.T) {
	tests := []struct {
		name    string
		current int
		total   int
		want    []int
	}{
		{"no pages", 1, 0, nil},
		{"single page", 1, 1, []int{1}},
		{"two pages", 2, 2, []int{1, 2}},
		{"start of many", 1, 10, []int{1, 2, 3, -1, 10}},
		{"page four keeps leading window", 4, 10, []int{1, 2, 3, 4, 5, 6, -1, 10}},
		{"middle shows both ellipses", 5, 10, []int{1, -1, 3, 4, 5, 6, 7, -1, 10}},
		{"near end drops trailing ellipsis", 7, 10, []int{1, -1, 5, 6, 7, 8, 9, 10}},
		{"last page", 10, 10, []int{1, -1, 8, 9, 10}},
		{"small set has no ellipses", 3, 5, []int{1, 2, 3, 4, 5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, render(PageWindow(tt.current, tt.total)))
		})
	}
}

func TestPageWindow_ActiveFlag(t *testing.T) {
	labels := PageWindow(5, 10)

	for _, l := range labels {
		if l.Page == 5 {
			assert.True(t, l.Active)
			continue
		}
		assert.False(t, l.Active)
	}
}

func TestPageWindow_ClampsCurrent(t *testing.T) {
	assert.Equal(t, render(PageWindow(10, 10)), render(PageWindow(99, 10)))
	assert.Equal(t, render(PageWindow(1, 10)), render(PageWindow(-3, 10)))
}
