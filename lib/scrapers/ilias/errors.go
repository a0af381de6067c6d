package ilias

import "errors"

var (
	// ErrStructuralMismatch marks a page that is missing markup the
	// extraction rules require: a mandatory property block, a row cell,
	// an expected attribute.
	ErrStructuralMismatch = errors.New("expected markup is missing")

	// ErrLocalizationMismatch marks a property block that was found but
	// contains no row matching any accepted label spelling. The block
	// being present makes this a malformed page rather than an absent
	// optional field.
	ErrLocalizationMismatch = errors.New("no accepted label matched")

	// ErrDateGrammar marks date or time text the grammar cannot parse.
	ErrDateGrammar = errors.New("malformed date text")

	// ErrReferenceUnavailable is returned when resolving a reference
	// the portal rendered no link for.
	ErrReferenceUnavailable = errors.New("reference has no link")

	// ErrCallerContract marks an API misuse detected before any
	// network traffic, such as deleting a file without an id.
	ErrCallerContract = errors.New("caller contract violation")
)
