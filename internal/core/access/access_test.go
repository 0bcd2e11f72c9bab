package access

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllowed(t *testing.T) {
	customer := Principal{CustomerID: 7}
	staff := Principal{CustomerID: 1, IsStaff: true}
	superuser := Principal{CustomerID: 2, IsSuperuser: true}

	tests := []struct {
		name      string
		principal Principal
		resource  Resource
		want      bool
	}{
		{"own customer record", customer, Resource{Kind: KindCustomer, OwnerID: 7}, true},
		{"other customer record", customer, Resource{Kind: KindCustomer, OwnerID: 8}, false},
		{"own order", customer, Resource{Kind: KindOrder, OwnerID: 7}, true},
		{"other order", customer, Resource{Kind: KindOrder, OwnerID: 9}, false},
		{"ticket on own order", customer, Resource{Kind: KindTicket, OwnerID: 7}, true},
		{"ticket on other order", customer, Resource{Kind: KindTicket, OwnerID: 9}, false},
		{"unknown kind", customer, Resource{Kind: Kind(99), OwnerID: 7}, false},
		{"zero kind", customer, Resource{OwnerID: 7}, false},
		{"staff sees all", staff, Resource{Kind: KindOrder, OwnerID: 9}, true},
		{"superuser sees all", superuser, Resource{Kind: KindTicket, OwnerID: 9}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Allowed(tt.principal, tt.resource))
		})
	}
}

func TestScope(t *testing.T) {
	assert.Nil(t, Scope(Principal{CustomerID: 1, IsStaff: true}))
	assert.Nil(t, Scope(Principal{CustomerID: 1, IsSuperuser: true}))

	scope := Scope(Principal{CustomerID: 42})
	require.NotNil(t, scope)
	assert.Equal(t, int64(42), *scope)
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "customer", KindCustomer.String())
	assert.Equal(t, "order", KindOrder.String())
	assert.Equal(t, "ticket", KindTicket.String())
	assert.Equal(t, "unknown", Kind(0).String())
}
