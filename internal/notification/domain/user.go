package domain

// Role is the account type stored on a user record.
type Role string

const (
	RoleRegular   Role = "regular"
	RoleCorporate Role = "corporate"
	RoleCompany   Role = "company" // legacy spelling of corporate
	RoleAdmin     Role = "admin"
)

// IsCorporate reports whether the role belongs to a company account.
func (r Role) IsCorporate() bool {
	return r == RoleCorporate || r == RoleCompany
}

// UserRecord is the part of users/{uid} the pipeline reads.
type UserRecord struct {
	UID        string
	Role       Role
	IsApproved *bool // nil when the field was never written
	FCMTokens  []string
}

// Approved reports whether the account is explicitly approved.
func (u UserRecord) Approved() bool {
	return u.IsApproved != nil && *u.IsApproved
}

// DecodeUser reads a user document. Absent or wrong-typed fields decode to
// their zero value.
func DecodeUser(uid string, doc Document) UserRecord {
	return UserRecord{
		UID:        uid,
		Role:       Role(doc.String("role")),
		IsApproved: doc.OptionalBool("isApproved"),
		FCMTokens:  TokensFromDocument(doc),
	}
}

// TokensFromDocument extracts the fcmTokens array of a user document.
func TokensFromDocument(doc Document) []string {
	return doc.Strings("fcmTokens")
}
