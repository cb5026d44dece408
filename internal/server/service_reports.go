package server

import (
	"context"
	"time"

	"agartha/internal/data"
	"agartha/internal/shared"

	"github.com/google/uuid"
)

// CompanionReport covers every session in the last CompanionNumberOfHours.
func (s *Service) CompanionReport(ctx context.Context) (*shared.CompanionReport, error) {
	all, err := s.Store.ListPractitioners(ctx)
	if err != nil {
		return nil, err
	}
	now := s.Now()
	start := now.Add(-data.CompanionNumberOfHours * time.Hour)
	companions := data.PractitionersWithSessionsBetween(all, start, now, now)
	report := shared.NewCompanionReport(len(companions), data.AllSessionsActiveBetween(companions, start, now, now), now)
	return &report, nil
}

// CompanionReportFor reports on the others whose latest session overlapped the
// practitioner's latest session.
func (s *Service) CompanionReportFor(ctx context.Context, id string) (*shared.CompanionReport, error) {
	p, err := s.Practitioner(ctx, id)
	if err != nil {
		return nil, err
	}
	now := s.Now()
	last := p.LastSession()
	if last == nil {
		report := shared.NewSingleSessionReport(nil, now)
		return &report, nil
	}
	all, err := s.Store.ListPractitioners(ctx)
	if err != nil {
		return nil, err
	}
	start, end := last.StartTime.Time, now
	if last.EndTime != nil {
		end = last.EndTime.Time
	}
	report := shared.NewSingleSessionReport(data.LastSessionsActiveBetween(all, id, start, end, now), now)
	return &report, nil
}

// OngoingReport covers the last OngoingSessionMinutes. An empty id includes
// everyone.
func (s *Service) OngoingReport(ctx context.Context, id string) (*shared.CompanionReport, error) {
	if id != "" {
		if _, err := s.Practitioner(ctx, id); err != nil {
			return nil, err
		}
	}
	all, err := s.Store.ListPractitioners(ctx)
	if err != nil {
		return nil, err
	}
	now := s.Now()
	start := now.Add(-data.OngoingSessionMinutes * time.Minute)
	report := shared.NewSingleSessionReport(data.LastSessionsActiveBetween(all, id, start, now, now), now)
	return &report, nil
}

func (s *Service) MatchedCompanions(ctx context.Context, id string) ([]shared.CompanionsSessionReport, error) {
	p, err := s.Practitioner(ctx, id)
	if err != nil {
		return nil, err
	}
	all, err := s.Store.ListPractitioners(ctx)
	if err != nil {
		return nil, err
	}
	return shared.MatchedSessions(p, data.OngoingSessions(all, id, s.Now())), nil
}

// settingsID is the id of the single settings document.
const settingsID = "settings"

// Settings returns the settings document, storing the defaults on first use.
func (s *Service) Settings(ctx context.Context) (*data.Settings, error) {
	st, err := s.Store.GetSettings(ctx)
	if err != nil || st != nil {
		return st, err
	}
	return s.Store.UpdateSettings(ctx, data.DefaultSettings(settingsID), func(*data.Settings) error { return nil })
}

func (s *Service) AddIntention(ctx context.Context, intention data.Intention) (*data.Settings, error) {
	if intention.Title == "" {
		return nil, badRequest("Intention title cannot be empty")
	}
	return s.Store.UpdateSettings(ctx, data.DefaultSettings(settingsID), func(st *data.Settings) error {
		st.Intentions = append(st.Intentions, intention)
		return nil
	})
}

func (s *Service) WriteMonitor(ctx context.Context) (bool, error) {
	item := data.NewMonitorItem(uuid.NewString(), s.Now())
	if err := s.Store.InsertMonitorItem(ctx, item); err != nil {
		return false, err
	}
	return item.ID != "", nil
}

func (s *Service) ReadMonitor(ctx context.Context) (bool, error) {
	n, err := s.Store.CountMonitorItems(ctx)
	return n > 0, err
}
