// Package routeguard decides whether the current session may enter a route.
// The policy itself is a pure function over (roles, path) so it can be unit
// tested away from any navigation machinery.
package routeguard

import "strings"

// Restricted role names. Holders are confined to a small allow-list of
// routes; every other role passes through all route checks.
const (
	RoleConsultative = "Consultative"
	RoleSales        = "Sales"
)

// Routes allowed for the Consultative role
var consultativeAllowedRoutes = []string{
	RouteConsultationRequests,
	RouteProfile,
	RouteLogin,
}

// Routes allowed for the Sales role
var salesAllowedRoutes = []string{
	RouteUnitRequests,
	RouteUnitRequestsSales,
	RouteProfile,
	RouteLogin,
}

// Decision is the outcome of a policy evaluation. A denied navigation
// carries the route to land on instead.
type Decision struct {
	Allow      bool
	RedirectTo string
}

func allow() Decision {
	return Decision{Allow: true}
}

func denyRedirect(to string) Decision {
	return Decision{RedirectTo: to}
}

// Evaluate applies the role policy to a requested path. Order matters: the
// unauthenticated case defers to the auth guard, then the first restricted
// role held decides exclusively. A user holding both restricted roles gets
// only the Consultative rules; allow-lists are deliberately not merged.
func Evaluate(roles []string, path string) Decision {
	if len(roles) == 0 {
		return allow()
	}

	path = stripQuery(path)

	if containsRole(roles, RoleConsultative) {
		if matchesAllowList(path, consultativeAllowedRoutes) {
			return allow()
		}
		return denyRedirect(RouteConsultationRequests)
	}

	if containsRole(roles, RoleSales) {
		// The estate-units list page is off limits for sales staff, but the
		// details page of an individual unit is not.
		if path == RouteEstateUnits {
			return denyRedirect(RouteUnitRequestsSales)
		}
		if strings.HasPrefix(path, RouteEstateUnitDetails+"/") {
			return allow()
		}
		if matchesAllowList(path, salesAllowedRoutes) {
			return allow()
		}
		return denyRedirect(RouteUnitRequestsSales)
	}

	return allow()
}

// matchesAllowList reports whether path equals an allowed route or is a
// sub-path of one.
func matchesAllowList(path string, allowed []string) bool {
	for _, route := range allowed {
		if path == route || strings.HasPrefix(path, route+"/") {
			return true
		}
	}
	return false
}

func containsRole(roles []string, role string) bool {
	for _, r := range roles {
		if r == role {
			return true
		}
	}
	return false
}

func stripQuery(path string) string {
	if i := strings.IndexByte(path, '?'); i >= 0 {
		return path[:i]
	}
	return path
}
