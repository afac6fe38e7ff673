package rbac

import "strings"

// Checker answers role/permission questions for one policy. A permission
// is either exact ("exam:view") or a namespace wildcard ("results:*", "*").
type Checker struct {
	exact    map[string]map[string]bool
	prefixes map[string][]string
}

func NewChecker(policy map[string][]string) *Checker {
	if policy == nil {
		policy = RolePermissions
	}
	c := &Checker{
		exact:    make(map[string]map[string]bool, len(policy)),
		prefixes: make(map[string][]string, len(policy)),
	}
	for role, perms := range policy {
		set := make(map[string]bool, len(perms))
		for _, p := range perms {
			if strings.HasSuffix(p, "*") {
				c.prefixes[role] = append(c.prefixes[role], strings.TrimSuffix(p, "*"))
				continue
			}
			set[p] = true
		}
		c.exact[role] = set
	}
	return c
}

func (c *Checker) Has(role, perm string) bool {
	if c.exact[role][perm] {
		return true
	}
	for _, p := range c.prefixes[role] {
		if strings.HasPrefix(perm, p) {
			return true
		}
	}
	return false
}
