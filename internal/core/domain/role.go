package domain

const (
	RoleAdmin  = "admin"
	RoleEditor = "editor"
	RoleViewer = "viewer"

	// DefaultRole is assigned to every self-registered user.
	DefaultRole = RoleViewer
)

const (
	PermImportCreate = "import.create"
	PermImportView   = "import.view"
	PermImportEdit   = "import.edit"
	PermImportDelete = "import.delete"
	PermLeadView     = "lead.view"
	PermLeadCreate   = "lead.create"
	PermLeadEdit     = "lead.edit"
	PermLeadDelete   = "lead.delete"
	PermUserView     = "user.view"
	PermUserCreate   = "user.create"
	PermUserEdit     = "user.edit"
	PermUserDelete   = "user.delete"
)

type Role struct {
	ID          string
	Name        string
	Description string
}

// PermissionSeed describes one row of the static permission table.
type PermissionSeed struct {
	Name        string
	Description string
}

// PermissionCatalogue lists every permission known to the system, in seed order.
var PermissionCatalogue = []PermissionSeed{
	{PermImportCreate, "Create imports"},
	{PermImportView, "View imports"},
	{PermImportEdit, "Edit imports"},
	{PermImportDelete, "Delete imports"},
	{PermLeadView, "View leads"},
	{PermLeadCreate, "Create leads"},
	{PermLeadEdit, "Edit leads"},
	{PermLeadDelete, "Delete leads"},
	{PermUserView, "View users"},
	{PermUserCreate, "Create users"},
	{PermUserEdit, "Edit users"},
	{PermUserDelete, "Delete users"},
}

// RoleGrants maps each seeded role to the permissions it holds.
var RoleGrants = map[string][]string{
	RoleAdmin: allPermissionNames(),
	RoleEditor: {
		PermImportCreate, PermImportView, PermImportEdit,
		PermLeadView, PermLeadCreate, PermLeadEdit,
	},
	RoleViewer: {PermImportView, PermLeadView},
}

// RoleDescriptions holds the human readable description of each seeded role.
var RoleDescriptions = map[string]string{
	RoleAdmin:  "Full access to all resources",
	RoleEditor: "Can create and edit imports and leads",
	RoleViewer: "Read-only access",
}

// SeededRoles returns the seeded role names in a stable order.
func SeededRoles() []string {
	return []string{RoleAdmin, RoleEditor, RoleViewer}
}

func allPermissionNames() []string {
	names := make([]string, 0, len(PermissionCatalogue))
	for _, p := range PermissionCatalogue {
		names = append(names, p.Name)
	}
	return names
}
