package office

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func TestAssembleLayout(t *testing.T) {
	a1 := Area{ID: "a1", Number: 1, X: 0, Y: 0}
	a2 := Area{ID: "a2", Number: 2, X: 2, Y: 1}

	flat := []layoutRow{
		{area: a1, rowID: ptr("r1"), rowNumber: ptr(1), rowDescription: ptr("window"), seatID: ptr("s1"), seatNumber: ptr(1), seatDescription: ptr("")},
		{area: a1, rowID: ptr("r1"), rowNumber: ptr(1), rowDescription: ptr("window"), seatID: ptr("s2"), seatNumber: ptr(2), seatDescription: ptr("corner")},
		{area: a1, rowID: ptr("r2"), rowNumber: ptr(2), rowDescription: ptr("")},
		{area: a2},
	}

	areas := assembleLayout(flat)
	require.Len(t, areas, 2)

	require.Len(t, areas[0].Rows, 2)
	assert.Equal(t, "window", areas[0].Rows[0].Description)
	assert.Equal(t, 1, areas[0].Rows[0].AreaNumber)
	require.Len(t, areas[0].Rows[0].Seats, 2)
	assert.Equal(t, SeatTag{ID: "s2", Number: 2, Description: "corner"}, areas[0].Rows[0].Seats[1])
	assert.Empty(t, areas[0].Rows[1].Seats)

	assert.Empty(t, areas[1].Rows)
	assert.NotNil(t, areas[1].Rows)
}

func TestAssembleLayout_Empty(t *testing.T) {
	assert.Nil(t, assembleLayout(nil))
}

func TestLayoutGridSize(t *testing.T) {
	l := &Layout{Areas: []*AreaLayout{
		{Area: Area{X: 0, Y: 0}},
		{Area: Area{X: 3, Y: 1}},
		{Area: Area{X: 1, Y: 4}},
	}}
	cols, rows := l.GridSize()
	assert.Equal(t, 4, cols)
	assert.Equal(t, 5, rows)
}
