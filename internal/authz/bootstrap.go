package authz

import "fmt"

// RoleSeed 预置角色定义
type RoleSeed struct {
	Role     string
	Inherits []string
	Policies []Policy
}

func crud(objects ...string) []Policy {
	policies := make([]Policy, 0, len(objects))
	for _, object := range objects {
		policies = append(policies, Policy{Object: object, Action: "*"})
	}
	return policies
}

// BuiltinRoleSeeds 预置角色矩阵
func BuiltinRoleSeeds() []RoleSeed {
	catalog := crud(
		"/store/products",
		"/store/products/:id",
		"/store/products/:id/images",
		"/store/products/:id/images/:image_id",
		"/store/products/:id/reviews/:review_id",
		"/store/collections",
		"/store/collections/:id",
		"/admin/products/:id/promotions",
		"/admin/promotions",
		"/admin/promotions/:id",
		"/admin/tags",
		"/admin/tags/:id",
		"/admin/tagged-items",
		"/admin/tagged-items/:id",
	)
	catalog = append(catalog, Policy{Object: "/admin/products/clean-inventory", Action: "POST"})

	orders := crud(
		"/store/orders/:id",
		"/store/customers/:id",
		"/admin/customers/:id/membership",
	)
	orders = append(orders, Policy{Object: "/admin/customers/notify", Action: "POST"})

	return []RoleSeed{
		{
			Role: "readonly_auditor",
			Policies: []Policy{
				{Object: "/admin/*", Action: "GET"},
				{Object: "/store/*", Action: "GET"},
			},
		},
		{
			Role:     "catalog_manager",
			Inherits: []string{"readonly_auditor"},
			Policies: catalog,
		},
		{
			Role:     "order_manager",
			Inherits: []string{"readonly_auditor"},
			Policies: orders,
		},
	}
}

// BootstrapBuiltinRoles 初始化预置角色，已存在的规则不会重复写入
func (s *Service) BootstrapBuiltinRoles() error {
	if err := s.ready(); err != nil {
		return err
	}
	for _, seed := range BuiltinRoleSeeds() {
		role, err := s.EnsureRole(seed.Role)
		if err != nil {
			return err
		}
		for _, parent := range seed.Inherits {
			parentRole, err := NormalizeRole(parent)
			if err != nil {
				return err
			}
			if _, err := s.enforcer.AddNamedGroupingPolicy("g", role, parentRole); err != nil {
				return fmt.Errorf("link role inheritance failed: %w", err)
			}
		}
		for _, policy := range seed.Policies {
			action := NormalizeAction(policy.Action)
			if action == "" {
				return ErrActionRequired
			}
			if _, err := s.enforcer.AddPolicy(role, NormalizeObject(policy.Object), action); err != nil {
				return fmt.Errorf("add builtin policy failed: %w", err)
			}
		}
	}
	return nil
}
