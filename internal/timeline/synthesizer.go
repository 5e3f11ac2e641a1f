package timeline

import (
	"strings"

	"github.com/adoview/pkg/models"
)

// contentVotePatterns map the platform's literal "voted N" content to vote
// codes. Longer patterns first so "voted 1" never shadows "voted 10".
var contentVotePatterns = []struct {
	pattern string
	vote    int
}{
	{"voted 10", VoteApproved},
	{"voted -10", VoteRejected},
	{"voted -5", VoteWaitingForAuthor},
	{"voted 5", VoteApprovedSuggestions},
	{"voted 0", VoteNone},
}

// platformSentences are fully formed system-message wordings. When the
// content already reads as one of these it is used verbatim: it is already
// correctly phrased and attributed by the platform.
var platformSentences = []struct {
	phrase string
	kind   models.EventKind
}{
	{"joined as a reviewer", models.EventReviewerJoined},
	{"created the pull request", models.EventCreated},
	{"was added as a required reviewer", models.EventRequiredReviewerAdded},
	{"was added as an optional reviewer", models.EventRequiredReviewerAdded},
	{"approved the pull request", models.EventVoteChanged},
	{"approved with suggestions", models.EventVoteChanged},
	{"rejected", models.EventVoteChanged},
	{"waiting for the author", models.EventVoteChanged},
	{"reset their vote", models.EventVoteChanged},
}

// Synthesize converts a classified system thread into a human-readable
// message and its event kind. Content takes precedence over metadata: the
// "voted N" shortcut and the verbatim sentence pass-through reflect what the
// platform actually showed, which is guaranteed synchronized with what a
// human reader saw even when the typed metadata disagrees. Metadata-driven
// synthesis is the fallback. ok=false means the thread is unreconstructable
// and is dropped from the timeline.
func Synthesize(t *models.Thread, actorName string) (string, models.EventKind, bool) {
	first := t.FirstComment()
	if first == nil {
		return "", "", false
	}
	content := strings.ToLower(first.Content)

	for _, p := range contentVotePatterns {
		if strings.Contains(content, p.pattern) {
			label, _ := VoteLabel(p.vote)
			return actorName + " " + label, models.EventVoteChanged, true
		}
	}

	for _, s := range platformSentences {
		if strings.Contains(content, s.phrase) {
			return first.Content, s.kind, true
		}
	}

	tt, ok := threadType(t)
	if !ok {
		return "", "", false
	}
	switch tt {
	case threadTypeVoteUpdate:
		v, ok := t.Properties.Get(propVoteResult)
		if !ok {
			return "", "", false
		}
		vote, ok := v.AsInt()
		if !ok {
			return "", "", false
		}
		label, ok := VoteLabel(vote)
		if !ok {
			return "", "", false
		}
		return actorName + " " + label, models.EventVoteChanged, true
	case threadTypeReviewersUpdate:
		return actorName + " joined as a reviewer", models.EventReviewerJoined, true
	case threadTypePullRequestCreated:
		return actorName + " created the pull request", models.EventCreated, true
	case threadTypePolicyStatusUpdate:
		if _, ok := propertyIdentity(t); !ok {
			return "", "", false
		}
		return actorName + " was added as a required reviewer", models.EventRequiredReviewerAdded, true
	}
	return "", "", false
}
