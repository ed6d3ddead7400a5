package domain

const (
	RoleUser      = "user"
	RoleModerator = "moderator"
	RoleAdmin     = "admin"
)

// Currency is the listing price currency. Closed set: invalid values are
// rejected at the boundary, never stored.
type Currency string

const (
	CurrencyDJF Currency = "DJF"
	CurrencyUSD Currency = "USD"
)

func (c Currency) Valid() bool {
	return c == CurrencyDJF || c == CurrencyUSD
}

// ContactMethod says how buyers reach the seller of a listing.
type ContactMethod string

const (
	ContactWhatsapp ContactMethod = "whatsapp"
	ContactPhone    ContactMethod = "phone"
	ContactBoth     ContactMethod = "both"
)

func (m ContactMethod) Valid() bool {
	return m == ContactWhatsapp || m == ContactPhone || m == ContactBoth
}

// NotificationType mirrors the four severities the frontend renders.
type NotificationType string

const (
	NotifyInfo    NotificationType = "info"
	NotifySuccess NotificationType = "success"
	NotifyWarning NotificationType = "warning"
	NotifyError   NotificationType = "error"
)

// Plan is the subscription tier. Purely a flag record, no billing.
type Plan string

const (
	PlanFree    Plan = "FREE"
	PlanPremium Plan = "PREMIUM"
)

func (p Plan) Valid() bool {
	return p == PlanFree || p == PlanPremium
}

// CanModifyListing is the single authorization predicate for listing
// mutation: the owner, any moderator, or any admin.
func CanModifyListing(callerID uint, callerRole string, ownerID uint) bool {
	if callerRole == RoleModerator || callerRole == RoleAdmin {
		return true
	}
	return callerID == ownerID
}
