package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tablekit/resto_backoffice_app/internal/core/domain"
)

func TestIsCorporateRoleName(t *testing.T) {
	tests := []struct {
		name     string
		roleName string
		want     bool
	}{
		{name: "exact owner", roleName: "Owner", want: true},
		{name: "exact corporate uppercase", roleName: "CORPORATE", want: true},
		{name: "owner substring", roleName: "Co-Owner", want: true},
		{name: "corporate substring", roleName: "corporate-admin", want: true},
		{name: "owner embedded mid-word", roleName: "Former Owner Assistant", want: true},
		{name: "plain staff role", roleName: "Staff", want: false},
		{name: "manager role", roleName: "Shift Manager", want: false},
		{name: "empty name", roleName: "", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, domain.IsCorporateRoleName(tt.roleName))
		})
	}
}
