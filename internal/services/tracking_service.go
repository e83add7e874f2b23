package services

import (
	"time"

	applog "marrent/internal/log"
	"marrent/internal/repos"
)

// ExpiryWindow is how close to its end date a rental gets flagged on the
// tracking screen.
const ExpiryWindow = 3 // days

type TrackedRental struct {
	repos.RentalListRow
	DaysRemaining int
}

type TrackingService struct {
	Rentals *repos.RentalRepo
	Now     func() time.Time // overridable in tests
}

func NewTrackingService(rentals *repos.RentalRepo) *TrackingService {
	return &TrackingService{Rentals: rentals, Now: time.Now}
}

// Snapshot returns every active rental with days remaining until its end
// date, plus the subset ending within ExpiryWindow days (overdue included).
func (s *TrackingService) Snapshot() (all, expiring []TrackedRental, err error) {
	rows, err := s.Rentals.ListActive()
	if err != nil {
		return nil, nil, err
	}
	today := s.Now().Truncate(24 * time.Hour)
	for _, row := range rows {
		tr := TrackedRental{RentalListRow: row}
		end, perr := time.Parse(dateLayout, row.EndDate)
		if perr != nil {
			// still listed, but never classified as expiring
			applog.Job("tracking.bad_end_date", perr, map[string]any{"rental": row.ID})
			all = append(all, tr)
			continue
		}
		tr.DaysRemaining = int(end.Sub(today).Hours() / 24)
		all = append(all, tr)
		if tr.DaysRemaining <= ExpiryWindow {
			expiring = append(expiring, tr)
		}
	}
	return all, expiring, nil
}
