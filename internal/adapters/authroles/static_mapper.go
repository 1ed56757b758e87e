package authroles

import (
	domainauth "github.com/openfest/festival-ui-api/internal/domain/auth"
)

// StaticRoleMapper maps IdP groups to application roles by simple string
// membership. Master wins over admin when a user is in both groups; anyone
// else lands on operator, the least-privileged tier.
type StaticRoleMapper struct {
	MasterGroup string
	AdminGroup  string
}

func (m StaticRoleMapper) Map(groups []string) domainauth.Role {
	for _, g := range groups {
		if m.MasterGroup != "" && g == m.MasterGroup {
			return domainauth.RoleMaster
		}
	}
	for _, g := range groups {
		if m.AdminGroup != "" && g == m.AdminGroup {
			return domainauth.RoleAdmin
		}
	}
	return domainauth.RoleOperator
}
