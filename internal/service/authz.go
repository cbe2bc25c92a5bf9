package service

import (
	"quill/internal/auth"
	"quill/internal/models"
)

// canModify is the single authorization predicate shared by all
// resource services: the owner may always mutate, and the admin role
// overrides ownership where adminOverride is set.
func canModify(p auth.Principal, ownerID uint, adminOverride bool) bool {
	if p.UserID == ownerID {
		return true
	}
	return adminOverride && p.HasRole(models.RoleAdmin)
}
