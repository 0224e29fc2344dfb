package scheduled

import "context"

// isSeatScheduled reports whether any reservation of seatID, other than
// exceptID, shares a day with p. Store errors are returned, never read as
// "free".
func (s *service) isSeatScheduled(ctx context.Context, seatID string, p Period, exceptID string) (bool, error) {
	existing, err := s.repo.ListBySeat(ctx, seatID)
	if err != nil {
		return false, err
	}
	for _, r := range existing {
		if exceptID != "" && r.ID == exceptID {
			continue
		}
		if r.Period().Overlaps(p) {
			return true, nil
		}
	}
	return false, nil
}

// EmployeeSeat identifies the reservation that already places an employee
// somewhere during a period.
type EmployeeSeat struct {
	ReservationID string
	SeatID        string
	SeatNumber    int
}

// employeeSeat returns the first reservation of employeeID, other than
// exceptID, that shares a day with p, or nil when the employee is free.
func (s *service) employeeSeat(ctx context.Context, employeeID string, p Period, exceptID string) (*EmployeeSeat, error) {
	existing, err := s.repo.ListByEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	for _, r := range existing {
		if exceptID != "" && r.ID == exceptID {
			continue
		}
		if r.Period().Overlaps(p) {
			return &EmployeeSeat{ReservationID: r.ID, SeatID: r.SeatID, SeatNumber: r.SeatNumber}, nil
		}
	}
	return nil, nil
}
