package server

import (
	"context"
	"strconv"
	"strings"
	"time"

	"agartha/internal/data"
	"agartha/internal/shared"

	"github.com/google/uuid"
)

// Service applies the practitioner rules on top of a Store.
type Service struct {
	Store Store
	Cfg   *shared.SiteConfig
	Now   func() time.Time
}

func NewService(store Store, cfg *shared.SiteConfig) *Service {
	return &Service{
		Store: store,
		Cfg:   cfg,
		Now:   func() time.Time { return time.Now().UTC() },
	}
}

func parsePositive(s string) (int64, error) {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil || n <= 0 {
		return 0, errNotPositive
	}
	return n, nil
}

// CreatePractitioner inserts a practitioner with the device id, returning the
// stored one when the id is already taken.
func (s *Service) CreatePractitioner(ctx context.Context, id string) (*data.Practitioner, error) {
	if strings.TrimSpace(id) == "" {
		return nil, errPractitionerID
	}
	p := data.NewPractitioner(id, s.Now())
	inserted, err := s.Store.InsertPractitioner(ctx, p)
	if err != nil {
		return nil, err
	}
	if inserted {
		return p, nil
	}
	return s.Store.GetPractitioner(ctx, id)
}

// Practitioner returns an existing practitioner or errPractitionerID.
func (s *Service) Practitioner(ctx context.Context, id string) (*data.Practitioner, error) {
	p, err := s.Store.GetPractitioner(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, errPractitionerID
	}
	return p, nil
}

func (s *Service) update(ctx context.Context, id string, fn func(*data.Practitioner) error) (*data.Practitioner, error) {
	p, err := updatePractitioner(ctx, s.Store, id, fn)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, errPractitionerID
	}
	return p, nil
}

func (s *Service) UpdateInvolved(ctx context.Context, id string, info shared.InvolvedInformation) (*data.Practitioner, error) {
	return s.update(ctx, id, func(p *data.Practitioner) error {
		p.SetInvolved(info.FullName, info.Email, info.Description)
		return nil
	})
}

func (s *Service) StartSession(ctx context.Context, id string, info shared.StartSessionInformation) (*data.Session, error) {
	if info.Discipline == "" || info.Intention == "" {
		return nil, errEmptySession
	}
	return s.startSession(ctx, id, info, nil)
}

func (s *Service) startSession(ctx context.Context, id string, info shared.StartSessionInformation, circle *data.Circle) (*data.Session, error) {
	now := s.Now()
	session := data.Session{
		Geolocation: info.Geolocation,
		Discipline:  info.Discipline,
		Intention:   info.Intention,
		StartTime:   data.At(now),
		Circle:      circle,
	}
	_, err := s.update(ctx, id, func(p *data.Practitioner) error {
		charged := circle != nil && !p.CreatorOfCircle(circle)
		if charged && p.SpiritBankPoints() < circle.MinimumSpiritContribution {
			return badRequest(shared.MsgPractitionerNotAffordCircle)
		}
		p.Sessions = append(p.Sessions, session)
		if charged {
			p.AddLog(now, data.LogJoinedCircle, -circle.MinimumSpiritContribution)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &session, nil
}

// EndSession closes the last session, books the contribution points and, for
// a circle creator, closes the circle and pays out the circle share. Without
// a session nothing is booked.
func (s *Service) EndSession(ctx context.Context, id, points string, feedback *int64) (*data.Practitioner, error) {
	contribution, err := strconv.ParseInt(points, 10, 64)
	if err != nil || contribution < 0 {
		return nil, errNotPositive
	}
	all, err := s.Store.ListPractitioners(ctx)
	if err != nil {
		return nil, err
	}
	var p *data.Practitioner
	for _, candidate := range all {
		if candidate.ID == id {
			p = candidate
		}
	}
	if p == nil {
		return nil, errPractitionerID
	}

	now := s.Now()
	award := data.ComputeEndSessionAward(p, all, s.Cfg.ContributionPercent, now)

	ids := []string{id}
	if feedback != nil && award.Circle != nil && !award.Creator {
		if _, owner := data.FindCircle(all, award.Circle.ID); owner != nil {
			ids = append(ids, owner.ID)
		}
	}

	out, err := s.Store.UpdatePractitioners(ctx, ids, func(ps []*data.Practitioner) error {
		me := ps[0]
		if me == nil {
			return errPractitionerID
		}
		if me.LastSession() == nil {
			return nil
		}
		me.EndLastSession(now)
		me.AddLog(now, data.LogEndedSession, contribution)
		if award.Creator {
			if c := me.Circle(award.Circle.ID); c != nil {
				c.EndTime = data.At(now)
				if feedback != nil {
					c.Feedback = append(c.Feedback, *feedback)
				}
			}
			if award.CirclePoints > 0 {
				me.AddLog(now, data.LogEndedCreatedCircle, award.CirclePoints)
			}
		}
		if len(ps) > 1 && ps[1] != nil {
			if c := ps[1].Circle(award.Circle.ID); c != nil {
				c.Feedback = append(c.Feedback, *feedback)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out[0], nil
}

// JoinCircle starts a session inside an active circle, charging everyone but
// the creator the circle's minimum contribution.
func (s *Service) JoinCircle(ctx context.Context, id, circleID string, info shared.StartSessionInformation) (*data.Session, error) {
	if info.Discipline == "" || info.Intention == "" {
		return nil, errEmptySession
	}
	p, err := s.Practitioner(ctx, id)
	if err != nil {
		return nil, err
	}
	all, err := s.Store.ListPractitioners(ctx)
	if err != nil {
		return nil, err
	}
	circle, _ := data.FindCircle(all, circleID)
	if circle == nil || !circle.Active(s.Now()) {
		return nil, badRequest(shared.MsgCircleNotActiveOrExist)
	}
	if p.SpiritBankPoints() < circle.MinimumSpiritContribution {
		return nil, badRequest(shared.MsgPractitionerNotAffordCircle)
	}
	if !circle.AllowsDiscipline(info.Discipline) {
		return nil, badRequest(shared.MsgDisciplineNotMatched)
	}
	if !circle.AllowsIntention(info.Intention) {
		return nil, badRequest(shared.MsgIntentionNotMatched)
	}
	return s.startSession(ctx, id, info, circle)
}

func (s *Service) RegisterCircle(ctx context.Context, id, circleID string) (*data.Practitioner, error) {
	all, err := s.Store.ListPractitioners(ctx)
	if err != nil {
		return nil, err
	}
	if c, _ := data.FindCircle(all, circleID); c == nil {
		return nil, badRequest(shared.MsgCircleNotActiveOrExist)
	}
	return s.update(ctx, id, func(p *data.Practitioner) error {
		p.RegisterCircle(circleID)
		return nil
	})
}

func (s *Service) FindByEmail(ctx context.Context, email string) (*data.Practitioner, error) {
	p, err := s.Store.FindPractitionerByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, notFound(shared.MsgEmailNotFound)
	}
	return p, nil
}

// Donate moves points from one practitioner's spirit bank to another's.
func (s *Service) Donate(ctx context.Context, fromID, toID, points string) error {
	if fromID == toID {
		return errPractitionerID
	}
	amount, err := parsePositive(points)
	if err != nil {
		return err
	}
	_, err = s.Store.UpdatePractitioners(ctx, []string{fromID, toID}, func(ps []*data.Practitioner) error {
		from, to := ps[0], ps[1]
		if from == nil || to == nil {
			return errPractitionerID
		}
		if from.SpiritBankPoints() < amount {
			return errOutOfFunds
		}
		now := s.Now()
		from.AddLog(now, data.LogDonate, -amount)
		to.AddLog(now, data.LogDonate, amount)
		return nil
	})
	return err
}

// CanCreateCircle checks the practitioner exists and holds the configured
// minimum of points for creating circles.
func (s *Service) CanCreateCircle(ctx context.Context, id string) error {
	p, err := s.Practitioner(ctx, id)
	if err != nil {
		return err
	}
	if p.SpiritBankPoints() < s.Cfg.MinPointsCreateCircle {
		return errCircleMinPoints(s.Cfg.MinPointsCreateCircle)
	}
	return nil
}

func validCircle(c *data.Circle) bool {
	return strings.TrimSpace(c.Name) != "" && c.EndTime.After(c.StartTime.Time)
}

// PutCircle adds the circle to the practitioner or replaces the one with the
// same id. The practitioner needs the configured minimum of points.
func (s *Service) PutCircle(ctx context.Context, id string, circle data.Circle) (*data.Practitioner, *data.Circle, error) {
	if !validCircle(&circle) {
		return nil, nil, errCircleData
	}
	if circle.ID == "" {
		circle.ID = uuid.NewString()
	}
	p, err := s.update(ctx, id, func(p *data.Practitioner) error {
		if p.SpiritBankPoints() < s.Cfg.MinPointsCreateCircle {
			return errCircleMinPoints(s.Cfg.MinPointsCreateCircle)
		}
		if existing := p.Circle(circle.ID); existing != nil {
			circle.Feedback = existing.Feedback
			circle.VirtualRegistered = existing.VirtualRegistered
		}
		p.PutCircle(circle)
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return p, &circle, nil
}

// EditCircle replaces a circle the practitioner already owns.
func (s *Service) EditCircle(ctx context.Context, id string, circle data.Circle) (*data.Practitioner, error) {
	if circle.ID == "" || !validCircle(&circle) {
		return nil, errCircleData
	}
	return s.update(ctx, id, func(p *data.Practitioner) error {
		existing := p.Circle(circle.ID)
		if existing == nil {
			return errNotCreator
		}
		circle.Feedback = existing.Feedback
		circle.VirtualRegistered = existing.VirtualRegistered
		*existing = circle
		return nil
	})
}

func (s *Service) RemoveCircle(ctx context.Context, id, circleID string) (bool, error) {
	var removed bool
	_, err := s.update(ctx, id, func(p *data.Practitioner) error {
		removed = p.RemoveCircle(circleID)
		return nil
	})
	return removed, err
}

func (s *Service) Circles(ctx context.Context, activeOnly bool) ([]data.Circle, error) {
	all, err := s.Store.ListPractitioners(ctx)
	if err != nil {
		return nil, err
	}
	if activeOnly {
		return data.ActiveCircles(all, s.Now()), nil
	}
	return data.AllCircles(all), nil
}

func (s *Service) CircleReceipt(ctx context.Context, id, circleID string) (*shared.CircleReport, error) {
	p, err := s.Practitioner(ctx, id)
	if err != nil {
		return nil, err
	}
	circle := p.Circle(circleID)
	if circle == nil {
		return nil, errNotCreator
	}
	all, err := s.Store.ListPractitioners(ctx)
	if err != nil {
		return nil, err
	}
	report := shared.NewCircleReport(*circle, data.SessionsInCircle(all, circleID), circle.LogPoints(p.SpiritBankLog))
	return &report, nil
}

func (s *Service) Registered(ctx context.Context, circleID string) (*shared.RegisteredReport, error) {
	all, err := s.Store.ListPractitioners(ctx)
	if err != nil {
		return nil, err
	}
	circle, _ := data.FindCircle(all, circleID)
	if circle == nil {
		return nil, badRequest(shared.MsgCircleNotActiveOrExist)
	}
	report := shared.RegisteredReport{VirtualRegistered: circle.VirtualRegistered}
	for _, p := range all {
		for _, registered := range p.RegisteredCircles {
			if registered == circleID {
				report.PractitionersRegistered++
				break
			}
		}
	}
	return &report, nil
}

// AddVirtual lets a circle creator pay for count virtual participants.
func (s *Service) AddVirtual(ctx context.Context, id, circleID string, count int64) (*data.Circle, error) {
	if count <= 0 {
		return nil, errNotPositive
	}
	var circle data.Circle
	_, err := s.update(ctx, id, func(p *data.Practitioner) error {
		c := p.Circle(circleID)
		if c == nil {
			return errNotCreator
		}
		cost := count * data.CostAddVirtualSessionPoints
		if p.SpiritBankPoints() < cost {
			return errOutOfFunds
		}
		p.AddLog(s.Now(), data.LogAddVirtualToCircle, -cost)
		c.VirtualRegistered += count
		circle = *c
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &circle, nil
}
