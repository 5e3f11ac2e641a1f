package timeline

import (
	"strings"

	"github.com/adoview/pkg/models"
)

// ResolveActor recovers the acting identity behind a system thread. The
// nominal comment author is often a service account; the real actor is
// referenced indirectly through a thread-type-specific property pointing
// into the thread's own identities map. The identities map is thread-local:
// different threads may use the same key for different identities, so it is
// never cached or merged across threads.
//
// When no reference resolves (missing property, unknown key, or a malformed
// identity-key array) the first comment's author is used, so a usable actor
// is always produced for a thread that has any comment at all.
func ResolveActor(t *models.Thread) *models.IdentityRef {
	if id, ok := propertyIdentity(t); ok {
		return id
	}
	if first := t.FirstComment(); first != nil {
		author := first.Author
		return &author
	}
	return nil
}

func propertyIdentity(t *models.Thread) (*models.IdentityRef, bool) {
	tt, ok := threadType(t)
	if !ok {
		return nil, false
	}
	switch tt {
	case threadTypeVoteUpdate:
		return identityByKeyProp(t, propVotedByIdentity)
	case threadTypeReviewersUpdate:
		return identityByKeyProp(t, propReviewersAddedIdentity)
	case threadTypePolicyStatusUpdate:
		v, ok := t.Properties.Get(propRequiredReviewerIdentities)
		if !ok {
			return nil, false
		}
		keys, ok := v.AsStringList()
		if !ok {
			return nil, false
		}
		return identityByKey(t, keys[0])
	default:
		return nil, false
	}
}

func identityByKeyProp(t *models.Thread, prop string) (*models.IdentityRef, bool) {
	v, ok := t.Properties.Get(prop)
	if !ok {
		return nil, false
	}
	key, ok := v.AsString()
	if !ok {
		return nil, false
	}
	return identityByKey(t, key)
}

func identityByKey(t *models.Thread, key string) (*models.IdentityRef, bool) {
	id, ok := t.Identities[key]
	if !ok {
		return nil, false
	}
	return &id, true
}

// NormalizeDisplayName strips the bracketed organizational prefix some
// directory-backed identities carry, e.g. `[Contoso]\Jane Doe` -> `Jane Doe`.
func NormalizeDisplayName(name string) string {
	if !strings.HasPrefix(name, "[") {
		return name
	}
	if i := strings.LastIndex(name, "\\"); i >= 0 && i+1 < len(name) {
		return name[i+1:]
	}
	return name
}
