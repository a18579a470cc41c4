package domain

// TenantOwner is the primary account of a tenant, stored in the master
// registry. A mirrored account row also lives inside the tenant's own
// database so the tenant stays usable if the master registry is unreachable.
type TenantOwner struct {
	ID           string  `gorm:"column:account_id;primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	TenantID     string  `gorm:"column:tenant_id;type:uuid;not null" json:"tenant_id"`
	Username     string  `gorm:"column:username;type:text;not null;unique" json:"username"`
	PasswordHash string  `gorm:"column:password_hash;type:text;not null" json:"-"`
	FullName     string  `gorm:"column:full_name;type:text;not null" json:"full_name"`
	Email        string  `gorm:"column:email;type:text;not null;unique" json:"email"`
	Phone        string  `gorm:"column:phone;type:text;not null;unique" json:"phone"`
	IsActive     bool    `gorm:"column:is_active;not null;default:true" json:"is_active"`
	Tenant       *Tenant `gorm:"foreignKey:TenantID;references:ID;constraint:OnDelete:CASCADE" json:"-"`
}

func (TenantOwner) TableName() string {
	return "tenant_owners"
}
