// Package fake is an in-memory UnitOfWork for command tests. It mirrors the
// constraint behavior of the real store (unique header per event, one open
// change request per booking, no overlapping active bookings) and stores the
// request aggregate as separate header and line rows, so a command that skips
// a persistence call loses data here too. It runs no transactions: a failing
// command must fail before it mutates, which matches how the commands are
// written.
package fake

import (
	"context"
	"sort"
	"sync"

	"facility-reservation/internal/domain/booking"
	"facility-reservation/internal/domain/change"
	"facility-reservation/internal/domain/event"
	"facility-reservation/internal/domain/request"
	"facility-reservation/internal/domain/room"
	"facility-reservation/internal/domain/timeslot"
	"facility-reservation/internal/infra"
	"facility-reservation/internal/infra/db"
	"facility-reservation/internal/usecase/shared"

	"github.com/google/uuid"
)

type UnitOfWork struct {
	mu sync.Mutex

	events   map[uuid.UUID]*event.Event
	headers  map[uuid.UUID]*request.Header
	lines    map[uuid.UUID]*request.Line
	bookings map[uuid.UUID]*booking.Booking
	changes  map[uuid.UUID]*change.Request
	rooms    map[uuid.UUID]*room.Room

	outbox     []shared.OutboxMessage
	nextSeq    int64
	claimedIDs map[int64]bool
	sentIDs    map[int64]bool
}

func NewUnitOfWork() *UnitOfWork {
	return &UnitOfWork{
		events:     make(map[uuid.UUID]*event.Event),
		headers:    make(map[uuid.UUID]*request.Header),
		lines:      make(map[uuid.UUID]*request.Line),
		bookings:   make(map[uuid.UUID]*booking.Booking),
		changes:    make(map[uuid.UUID]*change.Request),
		rooms:      make(map[uuid.UUID]*room.Room),
		claimedIDs: make(map[int64]bool),
		sentIDs:    make(map[int64]bool),
	}
}

var _ shared.UnitOfWork = (*UnitOfWork)(nil)

func (u *UnitOfWork) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	return fn(ctx, &tx{u: u})
}

func (u *UnitOfWork) WithDB(ctx context.Context, fn func(ctx context.Context, dbtx db.DBTX) error) error {
	return fn(ctx, nil)
}

func (u *UnitOfWork) Reads() shared.CommandReads {
	return &commandReads{u: u}
}

// Seeding helpers for test setup.

func (u *UnitOfWork) SeedEvent(ev *event.Event) { u.events[ev.ID()] = ev }

func (u *UnitOfWork) SeedHeader(h *request.Header) {
	u.headers[h.ID()] = stripLines(h)
	for _, l := range h.Lines() {
		u.lines[l.ID()] = l
	}
}

func (u *UnitOfWork) SeedBooking(b *booking.Booking) { u.bookings[b.ID()] = b }
func (u *UnitOfWork) SeedChange(cr *change.Request)  { u.changes[cr.ID()] = cr }
func (u *UnitOfWork) SeedRoom(r *room.Room)          { u.rooms[r.ID()] = r }

func (u *UnitOfWork) Event(id uuid.UUID) *event.Event { return u.events[id] }

// Header reassembles the aggregate from the stored rows, so asserts see
// persisted state, not whatever the command mutated in memory.
func (u *UnitOfWork) Header(id uuid.UUID) *request.Header {
	h, ok := u.headers[id]
	if !ok {
		return nil
	}
	return u.rebuildHeader(h)
}

func (u *UnitOfWork) Booking(id uuid.UUID) *booking.Booking { return u.bookings[id] }
func (u *UnitOfWork) Change(id uuid.UUID) *change.Request   { return u.changes[id] }

// stripLines keeps only the header row's own columns, the shape InsertHeader
// writes; line rows travel separately through InsertLines.
func stripLines(h *request.Header) *request.Header {
	return request.ReconstructHeader(
		h.ID(), h.EventID(), h.RequesterID(), h.RequestingUnit(),
		h.Cancelled(), nil, h.CreatedAt(), h.UpdatedAt(),
	)
}

func (u *UnitOfWork) rebuildHeader(h *request.Header) *request.Header {
	var lines []*request.Line
	for _, l := range u.lines {
		if l.HeaderID() == h.ID() {
			lines = append(lines, l)
		}
	}
	sort.Slice(lines, func(i, j int) bool {
		if !lines[i].CreatedAt().Equal(lines[j].CreatedAt()) {
			return lines[i].CreatedAt().Before(lines[j].CreatedAt())
		}
		return lines[i].ID().String() < lines[j].ID().String()
	})
	return request.ReconstructHeader(
		h.ID(), h.EventID(), h.RequesterID(), h.RequestingUnit(),
		h.Cancelled(), lines, h.CreatedAt(), h.UpdatedAt(),
	)
}

// Topics lists enqueued outbox topics in order, for event-emission asserts.
func (u *UnitOfWork) Topics() []string {
	out := make([]string, 0, len(u.outbox))
	for _, m := range u.outbox {
		out = append(out, m.Topic)
	}
	return out
}

// ExpireClaims releases every outstanding outbox claim, standing in for the
// claim TTL lapsing in the real store.
func (u *UnitOfWork) ExpireClaims() {
	u.claimedIDs = make(map[int64]bool)
}

// ActiveBookings returns all active bookings, any room.
func (u *UnitOfWork) ActiveBookings() []*booking.Booking {
	var out []*booking.Booking
	for _, b := range u.bookings {
		if b.IsActive() {
			out = append(out, b)
		}
	}
	return out
}

type tx struct {
	u *UnitOfWork
}

func (t *tx) Events() shared.EventRepository     { return &eventRepo{u: t.u} }
func (t *tx) Requests() shared.RequestRepository { return &requestRepo{u: t.u} }
func (t *tx) Bookings() shared.BookingRepository { return &bookingRepo{u: t.u} }
func (t *tx) Changes() shared.ChangeRepository   { return &changeRepo{u: t.u} }
func (t *tx) Outbox() shared.OutboxRepository    { return &outboxRepo{u: t.u} }
func (t *tx) Rooms() shared.RoomReader           { return &roomReader{u: t.u} }
func (t *tx) Reads() shared.CommandReads         { return &commandReads{u: t.u} }
func (t *tx) DB() db.DBTX                        { return nil }

func notFound(what string) error {
	return infra.WrapRepoErr(what+" not found", nil, infra.KindNotFound)
}

func duplicate(what string) error {
	return infra.WrapRepoErr(what, nil, infra.KindDuplicateKey)
}

type eventRepo struct{ u *UnitOfWork }

func (r *eventRepo) Insert(_ context.Context, ev *event.Event) error {
	r.u.events[ev.ID()] = ev
	return nil
}

func (r *eventRepo) FindForUpdate(_ context.Context, id uuid.UUID) (*event.Event, error) {
	ev, ok := r.u.events[id]
	if !ok {
		return nil, notFound("event")
	}
	return ev, nil
}

func (r *eventRepo) Update(_ context.Context, ev *event.Event) error {
	if _, ok := r.u.events[ev.ID()]; !ok {
		return notFound("event")
	}
	return nil
}

type requestRepo struct{ u *UnitOfWork }

// Header and line rows are stored separately, as in the SQL schema: a line
// exists only once it was delivered through InsertLines, and finds rebuild
// the aggregate from the rows. A command that mutates the aggregate without
// persisting the rows loses the mutation, same as against Postgres.

func (r *requestRepo) InsertHeader(_ context.Context, h *request.Header) error {
	for _, existing := range r.u.headers {
		if existing.EventID() == h.EventID() {
			return duplicate("header already exists for event")
		}
	}
	r.u.headers[h.ID()] = stripLines(h)
	return nil
}

func (r *requestRepo) InsertLines(_ context.Context, lines []*request.Line) error {
	for _, l := range lines {
		if _, ok := r.u.lines[l.ID()]; ok {
			return duplicate("line already exists")
		}
		if _, ok := r.u.headers[l.HeaderID()]; !ok {
			return notFound("header")
		}
		r.u.lines[l.ID()] = l
	}
	return nil
}

func (r *requestRepo) UpdateLine(_ context.Context, l *request.Line) error {
	if _, ok := r.u.lines[l.ID()]; !ok {
		return notFound("line")
	}
	r.u.lines[l.ID()] = l
	return nil
}

func (r *requestRepo) DeleteLines(_ context.Context, ids []uuid.UUID) error {
	for _, id := range ids {
		delete(r.u.lines, id)
	}
	return nil
}

func (r *requestRepo) FindHeaderForUpdate(_ context.Context, id uuid.UUID) (*request.Header, error) {
	h, ok := r.u.headers[id]
	if !ok {
		return nil, notFound("header")
	}
	return r.u.rebuildHeader(h), nil
}

func (r *requestRepo) FindHeaderByEventForUpdate(_ context.Context, eventID uuid.UUID) (*request.Header, error) {
	for _, h := range r.u.headers {
		if h.EventID() == eventID {
			return r.u.rebuildHeader(h), nil
		}
	}
	return nil, notFound("header")
}

func (r *requestRepo) FindHeaderByLineForUpdate(_ context.Context, lineID uuid.UUID) (*request.Header, error) {
	l, ok := r.u.lines[lineID]
	if !ok {
		return nil, notFound("header")
	}
	h, ok := r.u.headers[l.HeaderID()]
	if !ok {
		return nil, notFound("header")
	}
	return r.u.rebuildHeader(h), nil
}

func (r *requestRepo) UpdateHeaderState(_ context.Context, h *request.Header) error {
	if _, ok := r.u.headers[h.ID()]; !ok {
		return notFound("header")
	}
	r.u.headers[h.ID()] = stripLines(h)
	return nil
}

type bookingRepo struct{ u *UnitOfWork }

func (r *bookingRepo) LockRoom(_ context.Context, _ uuid.UUID) error { return nil }

func (r *bookingRepo) HasOverlap(_ context.Context, roomID uuid.UUID, interval timeslot.Interval, exclude *uuid.UUID) (bool, error) {
	for _, b := range r.u.bookings {
		if b.RoomID() != roomID || !b.IsActive() {
			continue
		}
		if exclude != nil && b.ID() == *exclude {
			continue
		}
		if b.Interval().Overlaps(interval) {
			return true, nil
		}
	}
	return false, nil
}

func (r *bookingRepo) Insert(_ context.Context, b *booking.Booking) error {
	for _, existing := range r.u.bookings {
		if existing.RoomID() == b.RoomID() && existing.IsActive() && existing.Interval().Overlaps(b.Interval()) {
			return infra.WrapRepoErr("booking overlap", nil, infra.KindConflict)
		}
	}
	r.u.bookings[b.ID()] = b
	return nil
}

func (r *bookingRepo) FindForUpdate(_ context.Context, id uuid.UUID) (*booking.Booking, error) {
	b, ok := r.u.bookings[id]
	if !ok {
		return nil, notFound("booking")
	}
	return b, nil
}

func (r *bookingRepo) Update(_ context.Context, b *booking.Booking) error {
	if _, ok := r.u.bookings[b.ID()]; !ok {
		return notFound("booking")
	}
	return nil
}

func (r *bookingRepo) FindActiveByHeader(_ context.Context, headerID uuid.UUID) ([]*booking.Booking, error) {
	var out []*booking.Booking
	for _, b := range r.u.bookings {
		if !b.IsActive() {
			continue
		}
		if l, ok := r.u.lines[b.LineID()]; ok && l.HeaderID() == headerID {
			out = append(out, b)
		}
	}
	return out, nil
}

type changeRepo struct{ u *UnitOfWork }

func (r *changeRepo) Insert(_ context.Context, cr *change.Request) error {
	for _, existing := range r.u.changes {
		if existing.BookingID() == cr.BookingID() && existing.IsPending() {
			return duplicate("open change request exists for booking")
		}
	}
	r.u.changes[cr.ID()] = cr
	return nil
}

func (r *changeRepo) FindForUpdate(_ context.Context, id uuid.UUID) (*change.Request, error) {
	cr, ok := r.u.changes[id]
	if !ok {
		return nil, notFound("change request")
	}
	return cr, nil
}

func (r *changeRepo) Update(_ context.Context, cr *change.Request) error {
	if _, ok := r.u.changes[cr.ID()]; !ok {
		return notFound("change request")
	}
	return nil
}

type outboxRepo struct{ u *UnitOfWork }

func (r *outboxRepo) Enqueue(_ context.Context, topic string, payload []byte) error {
	r.u.nextSeq++
	r.u.outbox = append(r.u.outbox, shared.OutboxMessage{
		ID:      r.u.nextSeq,
		Topic:   topic,
		Payload: payload,
	})
	return nil
}

func (r *outboxRepo) ClaimBatch(_ context.Context, limit int) ([]shared.OutboxMessage, error) {
	var out []shared.OutboxMessage
	for _, m := range r.u.outbox {
		if r.u.sentIDs[m.ID] || r.u.claimedIDs[m.ID] {
			continue
		}
		r.u.claimedIDs[m.ID] = true
		out = append(out, m)
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (r *outboxRepo) MarkSent(_ context.Context, ids []int64) error {
	for _, id := range ids {
		r.u.sentIDs[id] = true
	}
	return nil
}

type roomReader struct{ u *UnitOfWork }

func (r *roomReader) FindByID(_ context.Context, id uuid.UUID) (*room.Room, error) {
	rm, ok := r.u.rooms[id]
	if !ok {
		return nil, notFound("room")
	}
	return rm, nil
}

type commandReads struct{ u *UnitOfWork }

func (r *commandReads) EventByID(_ context.Context, id uuid.UUID) (*shared.EventSnapshot, error) {
	ev, ok := r.u.events[id]
	if !ok {
		return nil, notFound("event")
	}
	return &shared.EventSnapshot{
		ID:          ev.ID(),
		Title:       ev.Title(),
		RequesterID: ev.RequesterID(),
		Unit:        ev.Unit(),
		Status:      ev.Status().String(),
	}, nil
}

func (r *commandReads) HeaderByID(_ context.Context, id uuid.UUID) (*shared.HeaderSnapshot, error) {
	h, ok := r.u.headers[id]
	if !ok {
		return nil, notFound("header")
	}
	return headerSnapshot(r.u.rebuildHeader(h)), nil
}

func (r *commandReads) HeaderByLineID(_ context.Context, lineID uuid.UUID) (*shared.HeaderSnapshot, error) {
	l, ok := r.u.lines[lineID]
	if !ok {
		return nil, notFound("header")
	}
	h, ok := r.u.headers[l.HeaderID()]
	if !ok {
		return nil, notFound("header")
	}
	return headerSnapshot(r.u.rebuildHeader(h)), nil
}

func (r *commandReads) BookingOwner(_ context.Context, bookingID uuid.UUID) (*shared.BookingOwnerSnapshot, error) {
	b, ok := r.u.bookings[bookingID]
	if !ok {
		return nil, notFound("booking")
	}
	l, ok := r.u.lines[b.LineID()]
	if !ok {
		return nil, notFound("booking owner")
	}
	h, ok := r.u.headers[l.HeaderID()]
	if !ok {
		return nil, notFound("booking owner")
	}
	return &shared.BookingOwnerSnapshot{
		BookingID:   b.ID(),
		RoomID:      b.RoomID(),
		LineID:      b.LineID(),
		HeaderID:    h.ID(),
		RequesterID: h.RequesterID(),
		Unit:        h.RequestingUnit(),
		Status:      b.Status().String(),
	}, nil
}

func (r *commandReads) ChangeByID(_ context.Context, id uuid.UUID) (*shared.ChangeSnapshot, error) {
	cr, ok := r.u.changes[id]
	if !ok {
		return nil, notFound("change request")
	}
	return &shared.ChangeSnapshot{
		ID:          cr.ID(),
		BookingID:   cr.BookingID(),
		RequesterID: cr.RequesterID(),
		Status:      cr.Status().String(),
	}, nil
}

func headerSnapshot(h *request.Header) *shared.HeaderSnapshot {
	return &shared.HeaderSnapshot{
		ID:          h.ID(),
		EventID:     h.EventID(),
		RequesterID: h.RequesterID(),
		Unit:        h.RequestingUnit(),
		Status:      h.Status().String(),
	}
}
