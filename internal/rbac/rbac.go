// Package rbac holds the static role-based access control table for the
// marketplace. The table is process-wide, read-only configuration; checks are
// pure functions over it.
//
// Ownership of individual rows (a seller editing another seller's product) is
// not decided here. Repositories scope their queries by seller/customer id,
// the same boundary the hosted backend drew with row-level security.
package rbac

// Role identifies an actor category.
type Role string

const (
	RoleCustomer Role = "customer"
	RoleSeller   Role = "seller"
	RoleAdmin    Role = "admin"
)

// Action is an operation an actor may attempt on a resource.
type Action string

const (
	ActionView   Action = "view"
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
	// ActionManage is a wildcard implying every action on the paired resources.
	ActionManage  Action = "manage"
	ActionApprove Action = "approve"
	ActionFulfill Action = "fulfill"
	ActionRefund  Action = "refund"
)

// Resource is a protected entity category.
type Resource string

const (
	ResourceUsers          Resource = "users"
	ResourceSellerProfiles Resource = "seller_profiles"
	ResourceProducts       Resource = "products"
	ResourceOrders         Resource = "orders"
	ResourceOrderItems     Resource = "order_items"
	ResourceCategories     Resource = "categories"
	ResourceReviews        Resource = "reviews"
	ResourceCoupons        Resource = "coupons"
	ResourceAnalytics      Resource = "analytics"
	ResourceAnnouncements  Resource = "announcements"
	ResourceWishlist       Resource = "wishlist"
	ResourceCart           Resource = "cart"
)

// Rule grants the cross-product of its actions and resources to a role.
type Rule struct {
	Actions   []Action
	Resources []Resource
}

var rolePermissions = map[Role][]Rule{
	RoleAdmin: {
		{
			Actions: []Action{ActionManage},
			Resources: []Resource{
				ResourceUsers, ResourceSellerProfiles, ResourceProducts,
				ResourceOrders, ResourceOrderItems, ResourceCategories,
				ResourceReviews, ResourceCoupons, ResourceAnalytics,
				ResourceAnnouncements,
			},
		},
		{
			Actions:   []Action{ActionApprove},
			Resources: []Resource{ResourceSellerProfiles, ResourceProducts, ResourceReviews},
		},
		{
			Actions:   []Action{ActionRefund},
			Resources: []Resource{ResourceOrders},
		},
	},
	RoleSeller: {
		{
			Actions:   []Action{ActionCreate, ActionUpdate, ActionDelete, ActionView},
			Resources: []Resource{ResourceProducts, ResourceCoupons},
		},
		{
			Actions:   []Action{ActionView, ActionFulfill, ActionUpdate},
			Resources: []Resource{ResourceOrders, ResourceOrderItems},
		},
		{
			Actions:   []Action{ActionView},
			Resources: []Resource{ResourceAnalytics},
		},
		{
			Actions:   []Action{ActionUpdate},
			Resources: []Resource{ResourceSellerProfiles},
		},
	},
	RoleCustomer: {
		{
			Actions:   []Action{ActionView, ActionCreate, ActionUpdate, ActionDelete},
			Resources: []Resource{ResourceCart, ResourceWishlist},
		},
		{
			Actions:   []Action{ActionCreate, ActionView},
			Resources: []Resource{ResourceOrders},
		},
		{
			Actions:   []Action{ActionCreate, ActionView},
			Resources: []Resource{ResourceReviews},
		},
		{
			Actions:   []Action{ActionView},
			Resources: []Resource{ResourceProducts, ResourceCategories, ResourceAnnouncements},
		},
	},
}

// HasPermission reports whether role may perform action on resource. An empty
// role (unauthenticated caller) is never permitted; an unknown role has no
// rules. Absence of permission is a normal false, never an error.
func HasPermission(role Role, action Action, resource Resource) bool {
	if role == "" {
		return false
	}
	for _, rule := range rolePermissions[role] {
		if !containsResource(rule.Resources, resource) {
			continue
		}
		if containsAction(rule.Actions, ActionManage) || containsAction(rule.Actions, action) {
			return true
		}
	}
	return false
}

// Permission is a single (action, resource) grant.
type Permission struct {
	Action   Action   `json:"action"`
	Resource Resource `json:"resource"`
}

// crudActions is what the manage wildcard expands to for display.
var crudActions = []Action{ActionView, ActionCreate, ActionUpdate, ActionDelete}

// RolePermissions enumerates every grant a role holds, expanding manage into
// the standard CRUD actions. The expansion is presentational, for "what can
// this role do" screens; enforcement always goes through HasPermission.
func RolePermissions(role Role) []Permission {
	var out []Permission
	for _, rule := range rolePermissions[role] {
		for _, a := range rule.Actions {
			if a == ActionManage {
				for _, r := range rule.Resources {
					for _, crud := range crudActions {
						out = append(out, Permission{Action: crud, Resource: r})
					}
				}
				continue
			}
			for _, r := range rule.Resources {
				out = append(out, Permission{Action: a, Resource: r})
			}
		}
	}
	return out
}

// ParseRole maps a stored role string onto a known Role.
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleCustomer, RoleSeller, RoleAdmin:
		return Role(s), true
	}
	return "", false
}

func containsAction(actions []Action, a Action) bool {
	for _, v := range actions {
		if v == a {
			return true
		}
	}
	return false
}

func containsResource(resources []Resource, r Resource) bool {
	for _, v := range resources {
		if v == r {
			return true
		}
	}
	return false
}
