package services

import (
	"context"
	"time"

	"github.com/claussm/barefoot-tees/internal/domain"
)

type mockPlayerRepository struct {
	players map[string]*domain.Player
	byPhone map[string][]*domain.Player
	err     error
}

func (m *mockPlayerRepository) Create(ctx context.Context, p *domain.Player) error {
	if m.err != nil {
		return m.err
	}
	if p.ID == "" {
		p.ID = "generated-id"
	}
	if m.players == nil {
		m.players = map[string]*domain.Player{}
	}
	m.players[p.ID] = p
	return nil
}

func (m *mockPlayerRepository) GetByID(ctx context.Context, id string) (*domain.Player, error) {
	if m.err != nil {
		return nil, m.err
	}
	p, ok := m.players[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return p, nil
}

func (m *mockPlayerRepository) Update(ctx context.Context, p *domain.Player) error {
	if m.err != nil {
		return m.err
	}
	if _, ok := m.players[p.ID]; !ok {
		return domain.ErrNotFound
	}
	m.players[p.ID] = p
	return nil
}

func (m *mockPlayerRepository) Deactivate(ctx context.Context, id string) error {
	if m.err != nil {
		return m.err
	}
	p, ok := m.players[id]
	if !ok {
		return domain.ErrNotFound
	}
	p.IsActive = false
	return nil
}

func (m *mockPlayerRepository) List(ctx context.Context) ([]*domain.Player, error) {
	if m.err != nil {
		return nil, m.err
	}
	out := make([]*domain.Player, 0, len(m.players))
	for _, p := range m.players {
		out = append(out, p)
	}
	return out, nil
}

func (m *mockPlayerRepository) FindActiveByPhone(ctx context.Context, phone string) ([]*domain.Player, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.byPhone[phone], nil
}

type mockCourseRepository struct {
	courses map[string]*domain.Course
	err     error
}

func (m *mockCourseRepository) Create(ctx context.Context, c *domain.Course) error {
	if m.err != nil {
		return m.err
	}
	if c.ID == "" {
		c.ID = "generated-id"
	}
	if m.courses == nil {
		m.courses = map[string]*domain.Course{}
	}
	m.courses[c.ID] = c
	return nil
}

func (m *mockCourseRepository) GetByID(ctx context.Context, id string) (*domain.Course, error) {
	if m.err != nil {
		return nil, m.err
	}
	c, ok := m.courses[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return c, nil
}

func (m *mockCourseRepository) List(ctx context.Context) ([]*domain.Course, error) {
	if m.err != nil {
		return nil, m.err
	}
	out := make([]*domain.Course, 0, len(m.courses))
	for _, c := range m.courses {
		out = append(out, c)
	}
	return out, nil
}

type mockEventRepository struct {
	events    map[string]*domain.Event
	lockCalls []bool
	createErr error
	err       error
}

func (m *mockEventRepository) Create(ctx context.Context, e *domain.Event, groupCount int) error {
	if m.createErr != nil {
		return m.createErr
	}
	if e.ID == "" {
		e.ID = "generated-id"
	}
	if m.events == nil {
		m.events = map[string]*domain.Event{}
	}
	m.events[e.ID] = e
	return nil
}

func (m *mockEventRepository) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	if m.err != nil {
		return nil, m.err
	}
	e, ok := m.events[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return e, nil
}

func (m *mockEventRepository) List(ctx context.Context) ([]*domain.Event, error) {
	if m.err != nil {
		return nil, m.err
	}
	out := make([]*domain.Event, 0, len(m.events))
	for _, e := range m.events {
		out = append(out, e)
	}
	return out, nil
}

func (m *mockEventRepository) SetLocked(ctx context.Context, id string, locked bool) error {
	if m.err != nil {
		return m.err
	}
	e, ok := m.events[id]
	if !ok {
		return domain.ErrNotFound
	}
	e.IsLocked = locked
	m.lockCalls = append(m.lockCalls, locked)
	return nil
}

type mockEventPlayerRepository struct {
	rows           map[string]*domain.EventPlayer
	details        map[string][]*domain.EventPlayerDetail
	playingCount   map[string]int
	latestByPlayer map[string]*domain.EventPlayer
	stamped        map[string]time.Time
	recordedRSVP   map[string]domain.RSVPStatus
	recordedStatus map[string]domain.Status
	updateConflict bool
	createErr      error
	stampErr       error
	err            error
}

func (m *mockEventPlayerRepository) Create(ctx context.Context, ep *domain.EventPlayer) error {
	if m.createErr != nil {
		return m.createErr
	}
	if ep.ID == "" {
		ep.ID = "generated-id"
	}
	if m.rows == nil {
		m.rows = map[string]*domain.EventPlayer{}
	}
	m.rows[ep.ID] = ep
	return nil
}

func (m *mockEventPlayerRepository) GetByID(ctx context.Context, id string) (*domain.EventPlayer, error) {
	if m.err != nil {
		return nil, m.err
	}
	ep, ok := m.rows[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return ep, nil
}

func (m *mockEventPlayerRepository) ListByEventID(ctx context.Context, eventID string, status domain.Status) ([]*domain.EventPlayerDetail, error) {
	if m.err != nil {
		return nil, m.err
	}
	all := m.details[eventID]
	if status == "" {
		return all, nil
	}
	out := make([]*domain.EventPlayerDetail, 0, len(all))
	for _, d := range all {
		if d.Status == status {
			out = append(out, d)
		}
	}
	return out, nil
}

func (m *mockEventPlayerRepository) CountPlaying(ctx context.Context, eventID string) (int, error) {
	if m.err != nil {
		return 0, m.err
	}
	return m.playingCount[eventID], nil
}

func (m *mockEventPlayerRepository) UpdateStatusIf(ctx context.Context, id string, expected, target domain.Status) (bool, error) {
	if m.err != nil {
		return false, m.err
	}
	if m.updateConflict {
		return false, nil
	}
	ep, ok := m.rows[id]
	if !ok || ep.Status != expected {
		return false, nil
	}
	ep.Status = target
	return true, nil
}

func (m *mockEventPlayerRepository) StampRSVPSent(ctx context.Context, id string, at time.Time) error {
	if m.stampErr != nil {
		return m.stampErr
	}
	if m.stamped == nil {
		m.stamped = map[string]time.Time{}
	}
	m.stamped[id] = at
	return nil
}

func (m *mockEventPlayerRepository) LatestRSVPSent(ctx context.Context, playerID string) (*domain.EventPlayer, error) {
	if m.err != nil {
		return nil, m.err
	}
	ep, ok := m.latestByPlayer[playerID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return ep, nil
}

func (m *mockEventPlayerRepository) RecordReply(ctx context.Context, id string, rsvp domain.RSVPStatus, status domain.Status) error {
	if m.err != nil {
		return m.err
	}
	if m.recordedRSVP == nil {
		m.recordedRSVP = map[string]domain.RSVPStatus{}
		m.recordedStatus = map[string]domain.Status{}
	}
	m.recordedRSVP[id] = rsvp
	m.recordedStatus[id] = status
	return nil
}

type mockGroupRepository struct {
	groups      map[string]*domain.Group
	assignments []*domain.AssignmentDetail
	replaced    []string
	deleted     []string
	replaceErr  error
	err         error
}

func (m *mockGroupRepository) GetByID(ctx context.Context, id string) (*domain.Group, error) {
	if m.err != nil {
		return nil, m.err
	}
	g, ok := m.groups[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return g, nil
}

func (m *mockGroupRepository) ListByEventID(ctx context.Context, eventID string) ([]*domain.Group, error) {
	if m.err != nil {
		return nil, m.err
	}
	out := make([]*domain.Group, 0)
	for _, g := range m.groups {
		if g.EventID == eventID {
			out = append(out, g)
		}
	}
	return out, nil
}

func (m *mockGroupRepository) ListAssignmentsByEventID(ctx context.Context, eventID string) ([]*domain.AssignmentDetail, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.assignments, nil
}

func (m *mockGroupRepository) ReplaceAssignment(ctx context.Context, eventID, playerID, groupID string, position int) error {
	if m.replaceErr != nil {
		return m.replaceErr
	}
	m.replaced = append(m.replaced, playerID)
	return nil
}

func (m *mockGroupRepository) DeleteAssignmentByPlayer(ctx context.Context, eventID, playerID string) error {
	if m.err != nil {
		return m.err
	}
	m.deleted = append(m.deleted, playerID)
	return nil
}

type sentSMS struct {
	to   string
	body string
}

type mockSMSSender struct {
	configured bool
	failFor    map[string]error
	sent       []sentSMS
}

func (m *mockSMSSender) Send(ctx context.Context, to, body string) error {
	if err, ok := m.failFor[to]; ok {
		return err
	}
	m.sent = append(m.sent, sentSMS{to: to, body: body})
	return nil
}

func (m *mockSMSSender) Configured() bool { return m.configured }

type mockEmailService struct {
	sent []*domain.TeeSheetEmailData
	err  error
}

func (m *mockEmailService) SendTeeSheetPublished(ctx context.Context, data *domain.TeeSheetEmailData) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, data)
	return nil
}
