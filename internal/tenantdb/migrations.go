package tenantdb

// Migration is one versioned schema step applied to a tenant database.
// Versions are applied in strict ascending order, each inside its own
// transaction.
type Migration struct {
	Version    int
	Name       string
	Statements []string
}

// Migrations is the tenant schema. Every tenant database, once migrated,
// exposes the accounts/roles tables the provisioning path inserts into
// directly, plus the products/orders tables behind the statistics queries.
var Migrations = []Migration{
	{
		Version: 1,
		Name:    "create_roles",
		Statements: []string{
			`CREATE TABLE IF NOT EXISTS roles (
				role_id SERIAL PRIMARY KEY,
				role_name TEXT NOT NULL UNIQUE,
				description TEXT NOT NULL DEFAULT ''
			)`,
		},
	},
	{
		Version: 2,
		Name:    "create_accounts",
		Statements: []string{
			`CREATE TABLE IF NOT EXISTS accounts (
				account_id UUID PRIMARY KEY,
				username TEXT NOT NULL UNIQUE,
				password_hash TEXT NOT NULL,
				full_name TEXT NOT NULL,
				email TEXT,
				phone TEXT,
				is_active BOOLEAN NOT NULL DEFAULT TRUE,
				created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT CURRENT_TIMESTAMP
			)`,
			`CREATE TABLE IF NOT EXISTS account_roles (
				account_id UUID NOT NULL REFERENCES accounts(account_id) ON DELETE CASCADE,
				role_id INTEGER NOT NULL REFERENCES roles(role_id) ON DELETE CASCADE,
				PRIMARY KEY (account_id, role_id)
			)`,
		},
	},
	{
		Version: 3,
		Name:    "create_products",
		Statements: []string{
			`CREATE TABLE IF NOT EXISTS products (
				product_id UUID PRIMARY KEY,
				sku TEXT NOT NULL UNIQUE,
				name TEXT NOT NULL,
				price NUMERIC(12,2) NOT NULL DEFAULT 0,
				stock INTEGER NOT NULL DEFAULT 0,
				is_active BOOLEAN NOT NULL DEFAULT TRUE,
				created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT CURRENT_TIMESTAMP
			)`,
		},
	},
	{
		Version: 4,
		Name:    "create_orders",
		Statements: []string{
			`CREATE TABLE IF NOT EXISTS orders (
				order_id UUID PRIMARY KEY,
				account_id UUID REFERENCES accounts(account_id),
				total_amount NUMERIC(12,2) NOT NULL DEFAULT 0,
				status TEXT NOT NULL DEFAULT 'pending',
				placed_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT CURRENT_TIMESTAMP
			)`,
			`CREATE INDEX IF NOT EXISTS idx_orders_placed_at ON orders (placed_at)`,
		},
	},
}
