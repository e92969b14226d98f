package model

// ContactType tags a CRM contact batch by origin.
type ContactType string

const (
	ContactTypeBuyer      ContactType = "buyer"
	ContactTypeRegistered ContactType = "registered"
	ContactTypeNewsletter ContactType = "newsletter"
)

// ValidContactType reports whether t is one of the known contact types.
func ValidContactType(t ContactType) bool {
	switch t {
	case ContactTypeBuyer, ContactTypeRegistered, ContactTypeNewsletter:
		return true
	}
	return false
}

// Contact is a CRM contact upsert candidate.
type Contact struct {
	Email      string
	Country    string
	Attributes map[string]any
}
