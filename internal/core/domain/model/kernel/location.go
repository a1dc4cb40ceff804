package kernel

import (
	"errors"
	"fmt"
	"strings"

	"transferflow/internal/pkg/errs"
	"transferflow/internal/pkg/guard"
)

// LocationType distinguishes the two kinds of transfer endpoint.
type LocationType int

const (
	UnknownLocationType LocationType = iota
	Warehouse
	Store
)

func (t LocationType) String() string {
	switch t {
	case Warehouse:
		return "WAREHOUSE"
	case Store:
		return "STORE"
	default:
		return "UNKNOWN"
	}
}

func (t LocationType) Validate() error {
	if t != Warehouse && t != Store {
		return errs.NewValueIsInvalidErrorWithCause("location type", fmt.Errorf("%d is not a valid location type", t))
	}
	return nil
}

// ParseLocationType accepts the String form, case-insensitively.
func ParseLocationType(s string) (LocationType, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "WAREHOUSE":
		return Warehouse, nil
	case "STORE":
		return Store, nil
	default:
		return UnknownLocationType, errs.NewValueIsInvalidErrorWithCause(
			"location type", fmt.Errorf("%q is not a valid location type", s))
	}
}

// Contact is the person reachable at a location.
type Contact struct {
	Name  string
	Phone string
}

var ErrLocationSnapshotIsNotConstructed = errs.NewValueIsRequiredError(
	"location snapshot must be created via NewLocationSnapshot")

// LocationSnapshot is a copy of a directory location taken when an order is created or edited.
// Later directory changes never reach snapshots already stored on orders.
type LocationSnapshot struct { //nolint:recvcheck //using for validation
	locationType LocationType
	id           UUID
	code         string
	name         string
	address      string
	contact      Contact
	guard        guard.ConstructorGuard
}

func NewLocationSnapshot(
	locationType LocationType,
	id UUID,
	code, name, address string,
	contact Contact,
) (LocationSnapshot, error) {
	snapshot := LocationSnapshot{
		address: address,
		contact: contact,
		guard:   guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		snapshot.setType(locationType),
		snapshot.setID(id),
		snapshot.setCode(code),
		snapshot.setName(name),
	); err != nil {
		return LocationSnapshot{}, err
	}

	return snapshot, nil
}

func (l LocationSnapshot) Validate() error {
	return l.guard.Validate(ErrLocationSnapshotIsNotConstructed)
}

func (l LocationSnapshot) Type() LocationType {
	return l.locationType
}

func (l LocationSnapshot) ID() UUID {
	return l.id
}

func (l LocationSnapshot) Code() string {
	return l.code
}

func (l LocationSnapshot) Name() string {
	return l.name
}

func (l LocationSnapshot) Address() string {
	return l.address
}

func (l LocationSnapshot) Contact() Contact {
	return l.contact
}

// IsSameLocation compares the referenced directory entries, not the copied details.
func (l LocationSnapshot) IsSameLocation(other LocationSnapshot) bool {
	return l.id.IsEqual(other.id)
}

func (l LocationSnapshot) String() string {
	return fmt.Sprintf("%s %s (%s)", l.locationType, l.code, l.name)
}

func (l *LocationSnapshot) setType(t LocationType) error {
	if err := t.Validate(); err != nil {
		return err
	}
	l.locationType = t
	return nil
}

func (l *LocationSnapshot) setID(id UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	l.id = id
	return nil
}

func (l *LocationSnapshot) setCode(code string) error {
	if strings.TrimSpace(code) == "" {
		return errs.NewValueIsRequiredError("location code")
	}
	l.code = code
	return nil
}

func (l *LocationSnapshot) setName(name string) error {
	if strings.TrimSpace(name) == "" {
		return errs.NewValueIsRequiredError("location name")
	}
	l.name = name
	return nil
}
