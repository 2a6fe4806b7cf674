package domain

import "strings"

// AccessRequirement lists the roles and areas allowed to reach a resource.
// Both empty means any authenticated user.
type AccessRequirement struct {
	Roles []string
	Areas []string
}

func (r AccessRequirement) Open() bool {
	return len(r.Roles) == 0 && len(r.Areas) == 0
}

// Authorize grants access when the claim's role is in Roles or its area is in
// Areas. Matching is case-insensitive.
func Authorize(claim Claim, req AccessRequirement) bool {
	if req.Open() {
		return true
	}
	return containsFold(req.Roles, claim.Role) || containsFold(req.Areas, claim.Area)
}

func containsFold(set []string, v string) bool {
	v = strings.TrimSpace(v)
	if v == "" {
		return false
	}
	for _, s := range set {
		if strings.EqualFold(strings.TrimSpace(s), v) {
			return true
		}
	}
	return false
}
