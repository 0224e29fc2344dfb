package office

// layoutRow is one line of the areas LEFT JOIN rows LEFT JOIN seats result.
type layoutRow struct {
	area            Area
	rowID           *string
	rowNumber       *int
	rowDescription  *string
	seatID          *string
	seatNumber      *int
	seatDescription *string
}

// assembleLayout folds ordered join rows into the nested area/row/seat tree.
// Input must be ordered by area, then row, then seat.
func assembleLayout(flat []layoutRow) []*AreaLayout {
	var areas []*AreaLayout
	var curArea *AreaLayout
	var curRow *RowLayout

	for _, lr := range flat {
		if curArea == nil || curArea.ID != lr.area.ID {
			curArea = &AreaLayout{Area: lr.area, Rows: []*RowLayout{}}
			areas = append(areas, curArea)
			curRow = nil
		}
		if lr.rowID == nil {
			continue
		}
		if curRow == nil || curRow.ID != *lr.rowID {
			curRow = &RowLayout{
				Row: Row{
					ID:          *lr.rowID,
					AreaID:      curArea.ID,
					AreaNumber:  curArea.Number,
					Number:      deref(lr.rowNumber),
					Description: deref(lr.rowDescription),
				},
				Seats: []SeatTag{},
			}
			curArea.Rows = append(curArea.Rows, curRow)
		}
		if lr.seatID == nil {
			continue
		}
		curRow.Seats = append(curRow.Seats, SeatTag{
			ID:          *lr.seatID,
			Number:      deref(lr.seatNumber),
			Description: deref(lr.seatDescription),
		})
	}
	return areas
}

func deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}

// GridSize returns the number of columns and rows the area grid needs.
func (l *Layout) GridSize() (cols, rows int) {
	for _, a := range l.Areas {
		if a.X+1 > cols {
			cols = a.X + 1
		}
		if a.Y+1 > rows {
			rows = a.Y + 1
		}
	}
	return cols, rows
}
