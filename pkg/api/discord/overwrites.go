package discord

import (
	"fmt"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Overwrites is a keyed collection of user and role overwrites. An id never
// appears as both a user and a role, and empty overwrites are never stored.
type Overwrites struct {
	users map[string]Overwrite
	roles map[string]Overwrite
}

func NewOverwrites() *Overwrites {
	return &Overwrites{
		users: make(map[string]Overwrite),
		roles: make(map[string]Overwrite),
	}
}

// OverwritesFromWire parses a wire list into a collection. Records are
// applied in order, so a later record for the same id wins, subject to the
// kind-uniqueness check.
func OverwritesFromWire(records []OverwriteRecord) (*Overwrites, error) {
	overwrites := NewOverwrites()
	for _, record := range records {
		o, err := OverwriteFromWire(record)
		if err != nil {
			return nil, err
		}

		if err := overwrites.Set(o); err != nil {
			return nil, err
		}
	}

	return overwrites, nil
}

// Set stores an overwrite under its kind's map. Setting an overwrite that is
// empty removes any existing entry instead. It is an error if the id is
// already keyed under the other kind.
func (os *Overwrites) Set(o Overwrite) error {
	main, other := os.roles, os.users
	if o.Type == OverwriteTypeUser {
		main, other = os.users, os.roles
	}

	if _, ok := other[o.ID]; ok {
		return os.kindConflict(o.ID, o.Type)
	}

	if o.IsEmpty() {
		delete(main, o.ID)
		return nil
	}

	main[o.ID] = o
	return nil
}

// GetUser returns the stored overwrite for a user id, or a fresh empty
// user overwrite if none exists. The default is not inserted.
func (os *Overwrites) GetUser(id string) (Overwrite, error) {
	if _, ok := os.roles[id]; ok {
		return Overwrite{}, os.kindConflict(id, OverwriteTypeUser)
	}

	if o, ok := os.users[id]; ok {
		return o, nil
	}

	return Overwrite{ID: id, Type: OverwriteTypeUser}, nil
}

// GetRole returns the stored overwrite for a role id, or a fresh empty role
// overwrite if none exists.
func (os *Overwrites) GetRole(id string) (Overwrite, error) {
	if _, ok := os.users[id]; ok {
		return Overwrite{}, os.kindConflict(id, OverwriteTypeRole)
	}

	if o, ok := os.roles[id]; ok {
		return o, nil
	}

	return Overwrite{ID: id, Type: OverwriteTypeRole}, nil
}

func (os *Overwrites) UpdateUser(id string, allow, deny, ignore any) error {
	o, err := os.GetUser(id)
	if err != nil {
		return err
	}

	updated, err := o.Update(allow, deny, ignore)
	if err != nil {
		return err
	}

	return os.Set(updated)
}

func (os *Overwrites) UpdateRole(id string, allow, deny, ignore any) error {
	o, err := os.GetRole(id)
	if err != nil {
		return err
	}

	updated, err := o.Update(allow, deny, ignore)
	if err != nil {
		return err
	}

	return os.Set(updated)
}

func (os *Overwrites) UserIDs() []string {
	ids := maps.Keys(os.users)
	slices.Sort(ids)
	return ids
}

func (os *Overwrites) RoleIDs() []string {
	ids := maps.Keys(os.roles)
	slices.Sort(ids)
	return ids
}

// ToWire emits the non-empty overwrites as wire records, users first, each
// group ordered by id.
func (os *Overwrites) ToWire() []OverwriteRecord {
	var records []OverwriteRecord
	for _, id := range os.UserIDs() {
		records = append(records, os.users[id].ToWire())
	}

	for _, id := range os.RoleIDs() {
		records = append(records, os.roles[id].ToWire())
	}

	return records
}

func (os *Overwrites) Copy() *Overwrites {
	copied := NewOverwrites()
	maps.Copy(copied.users, os.users)
	maps.Copy(copied.roles, os.roles)
	return copied
}

func (os *Overwrites) kindConflict(id string, want OverwriteType) error {
	if want == OverwriteTypeUser {
		return fmt.Errorf("%w: id %s is a role, not a user", ErrInvalidArgument, id)
	}

	return fmt.Errorf("%w: id %s is a user, not a role", ErrInvalidArgument, id)
}
