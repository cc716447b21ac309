package domain

// Capability names one field of a PermissionSet.
type Capability string

const (
	CapCreate Capability = "create"
	CapRead   Capability = "read"
	CapUpdate Capability = "update"
	CapDelete Capability = "delete"
)

func ParseCapability(s string) (Capability, error) {
	switch Capability(s) {
	case CapCreate, CapRead, CapUpdate, CapDelete:
		return Capability(s), nil
	default:
		return "", ErrInvalidInput
	}
}

func FullAccess() PermissionSet {
	return PermissionSet{Create: true, Read: true, Update: true, Delete: true}
}

// Merge ORs two permission sets field by field.
func Merge(a, b PermissionSet) PermissionSet {
	return PermissionSet{
		Create: a.Create || b.Create,
		Read:   a.Read || b.Read,
		Update: a.Update || b.Update,
		Delete: a.Delete || b.Delete,
	}
}

func IsAnyGranted(p PermissionSet) bool {
	return p.Create || p.Read || p.Update || p.Delete
}

func (p PermissionSet) With(c Capability, value bool) PermissionSet {
	switch c {
	case CapCreate:
		p.Create = value
	case CapRead:
		p.Read = value
	case CapUpdate:
		p.Update = value
	case CapDelete:
		p.Delete = value
	}
	return p
}

func (p PermissionSet) Granted(c Capability) bool {
	switch c {
	case CapCreate:
		return p.Create
	case CapRead:
		return p.Read
	case CapUpdate:
		return p.Update
	case CapDelete:
		return p.Delete
	default:
		return false
	}
}
