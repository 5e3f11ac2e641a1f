package timeline

import (
	"strings"

	"github.com/adoview/pkg/models"
)

// EnrichReviewers attributes team-level votes to the specific members who
// cast them. A vote on a pull request may be delegated: a human reviewer's
// votedFor list names the container (team) identities they represented. The
// enriched list rewrites each container reviewer's votedFor with the concrete
// members who voted on the team's behalf; individual reviewers and teams
// nobody voted for pass through unchanged.
//
// The function is pure: the caller's slice and its entries are never
// modified in place.
func EnrichReviewers(reviewers []models.Reviewer) []models.Reviewer {
	delegation := buildDelegation(reviewers)

	out := make([]models.Reviewer, len(reviewers))
	for i, r := range reviewers {
		out[i] = r
		if r.IsContainer {
			if members, ok := delegation[r.ID]; ok {
				out[i].VotedFor = members
			}
		}
	}
	return out
}

// buildDelegation maps team identity id -> ordered members who voted while
// representing that team, deduplicated by identity id. The mapping is built
// once per enrichment pass and discarded afterwards.
func buildDelegation(reviewers []models.Reviewer) map[string][]models.Reviewer {
	delegation := make(map[string][]models.Reviewer)
	for _, r := range reviewers {
		for _, target := range r.VotedFor {
			if !target.IsContainer {
				continue
			}
			if delegateKnown(delegation[target.ID], r.ID) {
				continue
			}
			// The delegate enters as a plain member identity, stripped of
			// its own vote/required/container state.
			delegation[target.ID] = append(delegation[target.ID], models.Reviewer{
				IdentityRef: r.IdentityRef,
			})
		}
	}
	return delegation
}

func delegateKnown(members []models.Reviewer, id string) bool {
	for _, m := range members {
		if m.ID == id {
			return true
		}
	}
	return false
}

// DelegatedVoteText composes the display text for a team reviewer whose vote
// was cast by delegates: "approved via Jane Doe, John Smith". It returns ""
// for reviewers with no delegation or an unknown vote code.
func DelegatedVoteText(r models.Reviewer) string {
	if !r.IsContainer || len(r.VotedFor) == 0 {
		return ""
	}
	label, ok := VoteLabel(r.Vote)
	if !ok {
		return ""
	}
	names := make([]string, 0, len(r.VotedFor))
	for _, m := range r.VotedFor {
		names = append(names, NormalizeDisplayName(m.DisplayName))
	}
	return label + " via " + strings.Join(names, ", ")
}
