package timeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adoview/pkg/models"
)

func TestResolveActorVoteUpdate(t *testing.T) {
	thread := &models.Thread{
		ID: 40,
		Comments: []models.Comment{{
			Author:  models.IdentityRef{ID: "svc", DisplayName: "Build Service"},
			Content: "Jane Doe voted 10",
		}},
		Identities: map[string]models.IdentityRef{
			"1": {ID: "u1", DisplayName: "Jane Doe", UniqueName: "jane@contoso.com"},
		},
		Properties: models.PropertyBag{
			propThreadType:      {Value: threadTypeVoteUpdate},
			propVotedByIdentity: {Value: "1"},
		},
	}

	actor := ResolveActor(thread)
	require.NotNil(t, actor)
	assert.Equal(t, "Jane Doe", actor.DisplayName)
	assert.Equal(t, "u1", actor.ID)
}

func TestResolveActorReviewersUpdate(t *testing.T) {
	thread := &models.Thread{
		ID: 41,
		Comments: []models.Comment{{
			Author: models.IdentityRef{ID: "svc", DisplayName: "Build Service"},
		}},
		Identities: map[string]models.IdentityRef{
			"2": {ID: "u2", DisplayName: "John Smith"},
		},
		Properties: models.PropertyBag{
			propThreadType:             {Value: threadTypeReviewersUpdate},
			propReviewersAddedIdentity: {Value: "2"},
		},
	}

	actor := ResolveActor(thread)
	require.NotNil(t, actor)
	assert.Equal(t, "John Smith", actor.DisplayName)
}

func TestResolveActorPolicyStatusUpdate(t *testing.T) {
	thread := &models.Thread{
		ID: 42,
		Comments: []models.Comment{{
			Author: models.IdentityRef{ID: "svc", DisplayName: "Policy Service"},
		}},
		Identities: map[string]models.IdentityRef{
			"3": {ID: "u3", DisplayName: "Required Ricky"},
			"4": {ID: "u4", DisplayName: "Optional Olive"},
		},
		Properties: models.PropertyBag{
			propThreadType:                 {Value: threadTypePolicyStatusUpdate},
			propRequiredReviewerIdentities: {Value: `["3","4"]`},
		},
	}

	actor := ResolveActor(thread)
	require.NotNil(t, actor)
	assert.Equal(t, "Required Ricky", actor.DisplayName, "first key wins")
}

func TestResolveActorMalformedArrayFallsBack(t *testing.T) {
	// A JSON parse failure on the identity-key array is not an error: the
	// nominal author is the fallback actor.
	thread := &models.Thread{
		ID: 43,
		Comments: []models.Comment{{
			Author: models.IdentityRef{ID: "svc", DisplayName: "Policy Service"},
		}},
		Properties: models.PropertyBag{
			propThreadType:                 {Value: threadTypePolicyStatusUpdate},
			propRequiredReviewerIdentities: {Value: `["3",`},
		},
	}

	actor := ResolveActor(thread)
	require.NotNil(t, actor)
	assert.Equal(t, "Policy Service", actor.DisplayName)
}

func TestResolveActorUnknownKeyFallsBack(t *testing.T) {
	thread := &models.Thread{
		ID: 44,
		Comments: []models.Comment{{
			Author: models.IdentityRef{ID: "svc", DisplayName: "Build Service"},
		}},
		Identities: map[string]models.IdentityRef{},
		Properties: models.PropertyBag{
			propThreadType:      {Value: threadTypeVoteUpdate},
			propVotedByIdentity: {Value: "99"},
		},
	}

	actor := ResolveActor(thread)
	require.NotNil(t, actor)
	assert.Equal(t, "Build Service", actor.DisplayName)
}

func TestResolveActorEmptyThread(t *testing.T) {
	assert.Nil(t, ResolveActor(&models.Thread{ID: 45}))
}

func TestNormalizeDisplayName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{`[Contoso]\Jane Doe`, "Jane Doe"},
		{`[TEAM FOUNDATION]\Fabrikam Devs`, "Fabrikam Devs"},
		{"Jane Doe", "Jane Doe"},
		{"", ""},
		{`[Broken prefix`, `[Broken prefix`},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeDisplayName(tt.in), "input %q", tt.in)
	}
}
