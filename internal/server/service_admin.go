package server

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strconv"
	"strings"
	"time"

	"agartha/internal/data"
	"agartha/internal/shared"

	"github.com/google/uuid"
)

const randomSelection = "random"

func pick[T any](items []T) T {
	return items[rand.IntN(len(items))]
}

// randomSession builds a session started now at one of the development
// locations, drawing discipline and intention from settings unless given.
func (s *Service) randomSession(ctx context.Context, discipline, intention string) (data.Session, error) {
	st, err := s.Settings(ctx)
	if err != nil {
		return data.Session{}, err
	}
	if discipline == "" || strings.HasPrefix(strings.ToLower(discipline), randomSelection) {
		discipline = pick(st.Disciplines).Title
	}
	if intention == "" || strings.HasPrefix(strings.ToLower(intention), randomSelection) {
		intention = pick(st.Intentions).Title
	}
	geo := pick(data.DevGeolocations)
	return data.Session{
		Geolocation: &geo,
		Discipline:  discipline,
		Intention:   intention,
		StartTime:   data.At(s.Now()),
	}, nil
}

// Generate inserts count practitioners that each have one ongoing session.
// An unparsable count generates nothing.
func (s *Service) Generate(ctx context.Context, count string) ([]*data.Practitioner, error) {
	n, err := strconv.Atoi(count)
	if err != nil || n < 0 {
		n = 0
	}
	out := make([]*data.Practitioner, 0, n)
	for i := 0; i < n; i++ {
		session, err := s.randomSession(ctx, "", "")
		if err != nil {
			return nil, err
		}
		p := data.NewPractitioner(uuid.NewString(), s.Now())
		desc := GeneratedDescription
		p.Description = &desc
		p.Sessions = append(p.Sessions, session)
		if _, err := s.Store.InsertPractitioner(ctx, p); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

// AddSession starts a session for an existing practitioner. Values starting
// with "random" are drawn from settings.
func (s *Service) AddSession(ctx context.Context, id, discipline, intention string) (*data.Session, error) {
	session, err := s.randomSession(ctx, discipline, intention)
	if err != nil {
		return nil, err
	}
	p, err := updatePractitioner(ctx, s.Store, id, func(p *data.Practitioner) error {
		p.Sessions = append(p.Sessions, session)
		return nil
	})
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, badRequest(fmt.Sprintf("Practitioner id %s does not exist in database", id))
	}
	return &session, nil
}

func (s *Service) RemoveGenerated(ctx context.Context) ([]*data.Practitioner, error) {
	if err := s.Store.RemoveGeneratedPractitioners(ctx); err != nil {
		return nil, err
	}
	return s.Store.ListPractitioners(ctx)
}

type fixtureSession struct {
	geo        int // index into DevGeolocations, -1 for none
	discipline string
	intention  string
	startAgo   time.Duration
	endAgo     time.Duration // zero leaves the session open
}

type fixturePractitioner struct {
	createdAgo  time.Duration
	fullName    string
	email       string
	description string
	sessions    []fixtureSession
}

const day = 24 * time.Hour

// devFixtures mixes long gone, abandoned and ongoing practitioners so every
// companion report has something to show.
var devFixtures = []fixturePractitioner{
	{createdAgo: 30 * day, sessions: []fixtureSession{
		{4, "Yoga", "Harmony", 30*day + 200*time.Minute, 30*day + 100*time.Minute},
		{4, "Yoga", "Love", 29*day + 200*time.Minute, 0},
		{4, "Yoga", "Empowerment", 28*day + 200*time.Minute, 28*day + 100*time.Minute},
	}},
	{createdAgo: 5*day + 410*time.Minute, sessions: []fixtureSession{
		{-1, "Yoga", "Wellbeing", 5*day + 400*time.Minute, 5*day + 300*time.Minute},
		{-1, "Yoga", "Love", 4*day + 400*time.Minute, 4*day + 300*time.Minute},
		{-1, "Yoga", "Transformation", 3*day + 400*time.Minute, 3*day + 300*time.Minute},
		{-1, "Yoga", "Harmony", 2*day + 400*time.Minute, 2*day + 300*time.Minute},
		{-1, "Yoga", "Empowerment", day + 400*time.Minute, day + 300*time.Minute},
	}},
	{createdAgo: 5*day + 405*time.Minute, fullName: "John Hanibal Smith", email: "john@kollektiva.se",
		description: "I love it when a plan comes together", sessions: []fixtureSession{
			{3, "Meditation", "Empowerment", 5*day + 400*time.Minute, 5*day + 300*time.Minute},
			{3, "Meditation", "Harmony", 4*day + 400*time.Minute, 4*day + 300*time.Minute},
			{3, "Meditation", "Empathy", 3*day + 400*time.Minute, 3*day + 300*time.Minute},
			{-1, "Meditation", "Freedom", 2*day + 400*time.Minute, 2*day + 300*time.Minute},
			{3, "Meditation", "Love", day + 400*time.Minute, day + 300*time.Minute},
		}},
	{createdAgo: 10 * day},
	{createdAgo: 10 * time.Minute},
	{createdAgo: 3*day + 210*time.Minute, sessions: []fixtureSession{
		{4, "Yoga", "Harmony", 3*day + 200*time.Minute, 3*day + 100*time.Minute},
		{4, "Yoga", "Love", 2*day + 200*time.Minute, 2*day + 100*time.Minute},
		{4, "Yoga", "Empowerment", day + 200*time.Minute, 0},
	}},
	{createdAgo: 2*day + 202*time.Minute, sessions: []fixtureSession{
		{-1, "Yoga", "Freedom", 2*day + 200*time.Minute, 2*day + 100*time.Minute},
		{3, "Meditation", "Harmony", 40 * time.Minute, 0},
	}},
	{createdAgo: 50 * time.Minute, sessions: []fixtureSession{
		{1, "Meditation", "Freedom", 45 * time.Minute, 0},
	}},
	{createdAgo: 2*day + 202*time.Minute, sessions: []fixtureSession{
		{4, "Yoga", "Empathy", 2*day + 200*time.Minute, 2*day + 100*time.Minute},
		{2, "Yoga", "Freedom", 40 * time.Minute, 0},
	}},
	{createdAgo: 35 * time.Minute, sessions: []fixtureSession{
		{-1, "Meditation", "Empathy", 30 * time.Minute, 0},
	}},
}

// DevSetup seeds the development fixtures and a fresh practitioner to log on
// as, whose id is returned.
func (s *Service) DevSetup(ctx context.Context) (string, error) {
	now := s.Now()
	for _, f := range devFixtures {
		p := data.NewPractitioner(uuid.NewString(), now.Add(-f.createdAgo))
		if f.fullName != "" {
			p.SetInvolved(f.fullName, f.email, f.description)
		}
		for _, fs := range f.sessions {
			session := data.Session{
				Discipline: fs.discipline,
				Intention:  fs.intention,
				StartTime:  data.At(now.Add(-fs.startAgo)),
			}
			if fs.geo >= 0 {
				geo := data.DevGeolocations[fs.geo]
				session.Geolocation = &geo
			}
			if fs.endAgo > 0 {
				session.EndTime = data.TimePtr(now.Add(-fs.endAgo))
			}
			p.Sessions = append(p.Sessions, session)
		}
		if _, err := s.Store.InsertPractitioner(ctx, p); err != nil {
			return "", err
		}
	}

	me := data.NewPractitioner(uuid.NewString(), now)
	if _, err := s.Store.InsertPractitioner(ctx, me); err != nil {
		return "", err
	}
	return me.ID, nil
}

// VirtualSessions charges the creator of the circle the practitioner is
// currently in for count virtual participants and returns copies of the
// practitioner's session to stand in for them.
func (s *Service) VirtualSessions(ctx context.Context, id string, count int64) ([]data.Session, error) {
	p, err := s.Practitioner(ctx, id)
	if err != nil {
		return nil, err
	}
	last := p.LastSession()
	if last == nil || last.Circle == nil || !p.CreatorOfCircle(last.Circle) {
		return nil, errNotCreator
	}
	if _, err := s.AddVirtual(ctx, id, last.Circle.ID, count); err != nil {
		return nil, err
	}
	out := make([]data.Session, count)
	for i := range out {
		out[i] = *last
	}
	return out, nil
}

// passPhraseMatches checks an admin request body.
func (s *Service) passPhraseMatches(body []byte) bool {
	return shared.PassPhraseMatches(s.Cfg.PassPhrase, body)
}
