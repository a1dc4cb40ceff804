package kernel

import (
	"errors"
	"strings"
	"time"

	"transferflow/internal/pkg/errs"
	"transferflow/internal/pkg/guard"
)

// SystemActorID identifies actions performed without an upstream identity.
const SystemActorID = "system"

var (
	ErrActorIsNotConstructed         = errs.NewValueIsRequiredError("actor must be created via NewActor")
	ErrActorSnapshotIsNotConstructed = errs.NewValueIsRequiredError("actor snapshot must be created via Actor.Snapshot")
)

// Actor is the identity of whoever performs an operation. Identity is resolved
// upstream; the service only records it.
type Actor struct { //nolint:recvcheck //using for validation
	id    string
	name  string
	guard guard.ConstructorGuard
}

// NewActor creates an actor. The id is required; an empty name falls back to the id.
func NewActor(id, name string) (Actor, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Actor{}, errs.NewValueIsRequiredError("actor id")
	}
	name = strings.TrimSpace(name)
	if name == "" {
		name = id
	}
	return Actor{id: id, name: name, guard: guard.NewConstructorGuard()}, nil
}

// SystemActor returns the actor used when no identity was supplied.
func SystemActor() Actor {
	return Actor{id: SystemActorID, name: "System", guard: guard.NewConstructorGuard()}
}

func (a Actor) Validate() error {
	return a.guard.Validate(ErrActorIsNotConstructed)
}

func (a Actor) ID() string {
	return a.id
}

func (a Actor) Name() string {
	return a.name
}

// Snapshot freezes the actor together with the moment and remarks of an action.
func (a Actor) Snapshot(at time.Time, remarks string) (ActorSnapshot, error) {
	if err := a.Validate(); err != nil {
		return ActorSnapshot{}, err
	}
	if at.IsZero() {
		return ActorSnapshot{}, errs.NewValueIsRequiredError("actor snapshot time")
	}
	return ActorSnapshot{
		actorID:   a.id,
		actorName: a.name,
		at:        at,
		remarks:   remarks,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// ActorSnapshot is an immutable record of who performed a transition and when.
type ActorSnapshot struct { //nolint:recvcheck //using for validation
	actorID   string
	actorName string
	at        time.Time
	remarks   string
	guard     guard.ConstructorGuard
}

// RestoreActorSnapshot rebuilds a snapshot read back from storage.
func RestoreActorSnapshot(actorID, actorName string, at time.Time, remarks string) (ActorSnapshot, error) {
	actor, err := NewActor(actorID, actorName)
	if err != nil {
		return ActorSnapshot{}, errors.Join(ErrActorSnapshotIsNotConstructed, err)
	}
	return actor.Snapshot(at, remarks)
}

func (s ActorSnapshot) Validate() error {
	return s.guard.Validate(ErrActorSnapshotIsNotConstructed)
}

func (s ActorSnapshot) ActorID() string {
	return s.actorID
}

func (s ActorSnapshot) ActorName() string {
	return s.actorName
}

func (s ActorSnapshot) At() time.Time {
	return s.at
}

func (s ActorSnapshot) Remarks() string {
	return s.remarks
}
