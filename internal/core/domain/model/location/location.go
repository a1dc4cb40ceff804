// Package location models the read-only Location Directory: the warehouses and
// stores that transfer orders move stock between, and the inventory they hold.
package location

import (
	"errors"
	"strings"

	"transferflow/internal/core/domain/model/kernel"
	"transferflow/internal/pkg/errs"
)

var ErrLocationIsNotConstructed = errors.New("Location must be created via NewLocation constructor")

// Location is a directory entry. Orders never reference it directly; they copy
// it through Snapshot.
type Location struct {
	id           kernel.UUID
	locationType kernel.LocationType
	code         string
	name         string
	address      string
	contact      kernel.Contact
	active       bool

	isConstructed bool
}

func NewLocation(
	id kernel.UUID,
	locationType kernel.LocationType,
	code, name, address string,
	contact kernel.Contact,
	active bool,
) (*Location, error) {
	l := &Location{
		address:       address,
		contact:       contact,
		active:        active,
		isConstructed: true,
	}

	if err := errors.Join(
		l.setID(id),
		l.setType(locationType),
		l.setCode(code),
		l.setName(name),
	); err != nil {
		return nil, err
	}

	return l, nil
}

func (l *Location) Validate() error {
	if l == nil || !l.isConstructed {
		return ErrLocationIsNotConstructed
	}
	return nil
}

func (l *Location) ID() kernel.UUID {
	return l.id
}

func (l *Location) Type() kernel.LocationType {
	return l.locationType
}

func (l *Location) Code() string {
	return l.code
}

func (l *Location) Name() string {
	return l.name
}

func (l *Location) Address() string {
	return l.address
}

func (l *Location) Contact() kernel.Contact {
	return l.contact
}

func (l *Location) IsActive() bool {
	return l.active
}

// Snapshot copies the location into the immutable form stored on orders.
func (l *Location) Snapshot() (kernel.LocationSnapshot, error) {
	if err := l.Validate(); err != nil {
		return kernel.LocationSnapshot{}, err
	}
	return kernel.NewLocationSnapshot(l.locationType, l.id, l.code, l.name, l.address, l.contact)
}

func (l *Location) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	l.id = id
	return nil
}

func (l *Location) setType(t kernel.LocationType) error {
	if err := t.Validate(); err != nil {
		return err
	}
	l.locationType = t
	return nil
}

func (l *Location) setCode(code string) error {
	if strings.TrimSpace(code) == "" {
		return errs.NewValueIsRequiredError("location code")
	}
	l.code = code
	return nil
}

func (l *Location) setName(name string) error {
	if strings.TrimSpace(name) == "" {
		return errs.NewValueIsRequiredError("location name")
	}
	l.name = name
	return nil
}
