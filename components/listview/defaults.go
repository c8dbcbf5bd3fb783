package listview

// MaintenanceResource is the settings resource toggled by the maintenance
// switch; it is not a list page.
const MaintenanceResource = "settings/maintenance"

var defaultPageDefinitions = []PageDefinition{
	{
		Code:         "admin.page.stock",
		Name:         "Stock",
		Description:  "Product inventory list",
		Resource:     "products",
		SearchFields: []string{"name", "id", "category"},
		Dimensions: []Dimension{
			{
				Field: "category",
				Label: "Category",
				Schema: map[string]any{
					"type":  "array",
					"items": map[string]any{"type": "string"},
				},
			},
			{
				Field: "status",
				Label: "Status",
				Schema: map[string]any{
					"type": "array",
					"items": map[string]any{
						"type": "string",
						"enum": []string{"All", "active", "inactive"},
					},
				},
			},
		},
		SumField: "quantity",
		CountRules: []CountRule{
			{Name: "published", Field: "is_published"},
			{Name: "active", Field: "status", Equals: "active"},
		},
	},
	{
		Code:         "admin.page.payments",
		Name:         "Payments",
		Description:  "Payments ledger",
		Resource:     "payments",
		SearchFields: []string{"id", "customer_name", "payment_method"},
		Dimensions: []Dimension{
			{
				Field: "payment_method",
				Label: "Method",
				Schema: map[string]any{
					"type": "array",
					"items": map[string]any{
						"type": "string",
						"enum": []string{"All", "gcash", "cod", "card"},
					},
				},
			},
			{
				Field: "status",
				Label: "Status",
				Schema: map[string]any{
					"type": "array",
					"items": map[string]any{
						"type": "string",
						"enum": []string{"All", "pending", "paid", "refunded", "failed"},
					},
				},
			},
		},
		SumField: "amount",
		CountRules: []CountRule{
			{Name: "pending", Field: "status", Equals: "pending"},
			{Name: "paid", Field: "status", Equals: "paid"},
		},
	},
	{
		Code:         "admin.page.feedbacks",
		Name:         "Feedbacks",
		Description:  "Customer review moderation",
		Resource:     "feedbacks",
		SearchFields: []string{"customer_name", "email", "comment"},
		Dimensions: []Dimension{
			{
				Field: "rating",
				Label: "Rating",
				Schema: map[string]any{
					"type": "array",
					"items": map[string]any{
						"type": "string",
						"enum": []string{"All", "1", "2", "3", "4", "5"},
					},
				},
			},
		},
		SumField: "rating",
		CountRules: []CountRule{
			{Name: "published", Field: "is_published"},
			{Name: "replied", Field: "has_reply"},
		},
	},
	{
		Code:         "admin.page.admin_users",
		Name:         "Admin Users",
		Description:  "Administrator accounts",
		Resource:     "admin-users",
		SearchFields: []string{"name", "email", "id"},
		Dimensions: []Dimension{
			{
				Field: "role",
				Label: "Role",
				Schema: map[string]any{
					"type": "array",
					"items": map[string]any{
						"type": "string",
						"enum": []string{"All", "owner", "manager", "staff"},
					},
				},
			},
		},
		CountRules: []CountRule{
			{Name: "active", Field: "is_active"},
		},
	},
}

// DefaultPageDefinitions returns the built-in page definitions registered by
// NewRegistry.
func DefaultPageDefinitions() []PageDefinition {
	defs := make([]PageDefinition, len(defaultPageDefinitions))
	copy(defs, defaultPageDefinitions)
	return defs
}
