// Package access decides which customer-owned rows a principal may see or change.
package access

// Principal is the authenticated caller.
type Principal struct {
	CustomerID  int64
	Email       string
	IsStaff     bool
	IsSuperuser bool
}

// Privileged reports whether the principal bypasses ownership checks.
func (p Principal) Privileged() bool {
	return p.IsStaff || p.IsSuperuser
}

// Kind enumerates the resources that have an owning customer.
type Kind int

const (
	KindCustomer Kind = iota + 1
	KindOrder
	KindTicket
)

func (k Kind) String() string {
	switch k {
	case KindCustomer:
		return "customer"
	case KindOrder:
		return "order"
	case KindTicket:
		return "ticket"
	default:
		return "unknown"
	}
}

// Resource is an owned row reduced to what the permission check needs.
// OwnerID is the customer the row belongs to: the customer itself, the order's
// customer, or the customer of the ticket's order.
type Resource struct {
	Kind    Kind
	OwnerID int64
}

// Allowed reports whether p may read or modify r.
func Allowed(p Principal, r Resource) bool {
	if p.Privileged() {
		return true
	}
	switch r.Kind {
	case KindCustomer, KindOrder, KindTicket:
		return r.OwnerID == p.CustomerID
	default:
		return false
	}
}

// Scope returns the owner filter for listing rows: nil means every row.
func Scope(p Principal) *int64 {
	if p.Privileged() {
		return nil
	}
	id := p.CustomerID
	return &id
}
