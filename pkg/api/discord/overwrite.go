package discord

import (
	"fmt"
	"strconv"
)

type OverwriteType int

const (
	OverwriteTypeRole OverwriteType = 0
	OverwriteTypeUser OverwriteType = 1
)

// Overwrite is a per-subject permission exception attached to a channel. It
// is an immutable value: Update returns a new Overwrite. Allow and Deny are
// always disjoint.
type Overwrite struct {
	ID    string
	Type  OverwriteType
	Allow Permission
	Deny  Permission
}

// OverwriteRecord is the wire form of an Overwrite. Discord requires the
// bitmasks as decimal strings.
type OverwriteRecord struct {
	ID    string `json:"id" mapstructure:"id"`
	Type  int    `json:"type" mapstructure:"type"`
	Allow string `json:"allow" mapstructure:"allow"`
	Deny  string `json:"deny" mapstructure:"deny"`
}

func (o Overwrite) IsEmpty() bool {
	return o.Allow == 0 && o.Deny == 0
}

// Update returns a copy of o with permissions changed. Bits in allow are
// enabled in Allow and disabled in Deny; bits in deny the other way around;
// bits in ignore are disabled in both. Each argument is coerced through
// PermissionOf. It is an error for any two of the coerced sets to share a
// bit.
func (o Overwrite) Update(allow, deny, ignore any) (Overwrite, error) {
	allowSet, err := PermissionOf(allow)
	if err != nil {
		return Overwrite{}, err
	}

	denySet, err := PermissionOf(deny)
	if err != nil {
		return Overwrite{}, err
	}

	ignoreSet, err := PermissionOf(ignore)
	if err != nil {
		return Overwrite{}, err
	}

	if allowSet&denySet != 0 || allowSet&ignoreSet != 0 || denySet&ignoreSet != 0 {
		return Overwrite{}, fmt.Errorf("%w: contradiction: allow %v, deny %v, ignore %v",
			ErrInvalidArgument, allowSet, denySet, ignoreSet)
	}

	return Overwrite{
		ID:    o.ID,
		Type:  o.Type,
		Allow: (o.Allow | allowSet) &^ denySet &^ ignoreSet,
		Deny:  (o.Deny | denySet) &^ allowSet &^ ignoreSet,
	}, nil
}

// Describe renders a human readable summary, e.g.
// "User foo can SPEAK|STREAM; cannot BAN_MEMBERS."
func (o Overwrite) Describe() string {
	label := fmt.Sprintf("Role %s", o.ID)
	if o.Type == OverwriteTypeUser {
		label = fmt.Sprintf("User %s", o.ID)
	}

	switch {
	case o.Allow == 0 && o.Deny == 0:
		return fmt.Sprintf("%s has no overwrites.", label)
	case o.Deny == 0:
		return fmt.Sprintf("%s can %v.", label, o.Allow)
	case o.Allow == 0:
		return fmt.Sprintf("%s cannot %v.", label, o.Deny)
	}

	return fmt.Sprintf("%s can %v; cannot %v.", label, o.Allow, o.Deny)
}

func (o Overwrite) ToWire() OverwriteRecord {
	return OverwriteRecord{
		ID:    o.ID,
		Type:  int(o.Type),
		Allow: strconv.FormatUint(uint64(o.Allow), 10),
		Deny:  strconv.FormatUint(uint64(o.Deny), 10),
	}
}

func OverwriteFromWire(record OverwriteRecord) (Overwrite, error) {
	// Absent bitmasks default to no permission.
	allow := PermissionNone
	if record.Allow != "" {
		var err error
		if allow, err = PermissionOf(record.Allow); err != nil {
			return Overwrite{}, err
		}
	}

	deny := PermissionNone
	if record.Deny != "" {
		var err error
		if deny, err = PermissionOf(record.Deny); err != nil {
			return Overwrite{}, err
		}
	}

	return Overwrite{
		ID:    record.ID,
		Type:  OverwriteType(record.Type),
		Allow: allow,
		Deny:  deny,
	}, nil
}
