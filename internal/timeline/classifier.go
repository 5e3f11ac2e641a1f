package timeline

import (
	"strings"

	"github.com/adoview/pkg/models"
)

// Classification separates platform-generated notifications from genuine
// human discussion.
type Classification int

const (
	// Human is a genuine review comment thread.
	Human Classification = iota
	// System is a platform-generated notification thread.
	System
)

// Property keys of interest on a thread's property bag.
const (
	propThreadType                 = "CodeReviewThreadType"
	propVoteResult                 = "CodeReviewVoteResult"
	propVotedByIdentity            = "CodeReviewVotedByIdentity"
	propReviewersAddedIdentity     = "CodeReviewReviewersUpdatedAddedIdentity"
	propRequiredReviewerIdentities = "CodeReviewRequiredReviewerExampleReviewerIdentities"
)

// Thread type discriminator values the platform emits for system threads.
const (
	threadTypeVoteUpdate         = "VoteUpdate"
	threadTypeReviewersUpdate    = "ReviewersUpdate"
	threadTypeReviewerAdd        = "ReviewerAdd"
	threadTypePullRequestCreated = "PullRequestCreated"
	threadTypeIteration          = "Iteration"
	threadTypePolicyStatusUpdate = "PolicyStatusUpdate"
)

var systemThreadTypes = map[string]bool{
	threadTypeVoteUpdate:         true,
	threadTypeReviewersUpdate:    true,
	threadTypeReviewerAdd:        true,
	threadTypePullRequestCreated: true,
	threadTypeIteration:          true,
	threadTypePolicyStatusUpdate: true,
}

// phraseTable is a case-insensitive substring lookup. All heuristic phrase
// matching in the engine goes through this one type so the tables can be
// swapped for a versioned-schema check if the data source ever guarantees
// typed metadata. Phrase matching is a documented fallback tier, not the
// primary path.
type phraseTable []string

func (p phraseTable) matches(content string) bool {
	lower := strings.ToLower(content)
	for _, phrase := range p {
		if strings.Contains(lower, phrase) {
			return true
		}
	}
	return false
}

// systemPhrases are the platform's own system-message wordings. The API does
// not reliably tag every system message with typed metadata, so untyped,
// unanchored threads whose content reads like one of these are treated as
// system threads.
var systemPhrases = phraseTable{
	"approved the pull request",
	"joined as a reviewer",
	"created the pull request",
	"required reviewer",
	"waiting for the author",
	"rejected",
	"voted",
}

// threadType returns the thread-type discriminator property, if present.
func threadType(t *models.Thread) (string, bool) {
	v, ok := t.Properties.Get(propThreadType)
	if !ok {
		return "", false
	}
	return v.AsString()
}

// Classify decides whether a thread is a system notification or a human
// comment. First match wins: typed comment hint, then the thread-type
// discriminator, then the content phrase fallback. A thread with a file/line
// anchor is never System, code comments are always human-authored even when
// their text happens to match a phrase.
func Classify(t *models.Thread) Classification {
	first := t.FirstComment()
	if first == nil {
		return Human
	}
	if first.CommentType == models.CommentTypeSystem {
		return System
	}
	if tt, ok := threadType(t); ok && systemThreadTypes[tt] {
		return System
	}
	if !t.Anchored() && systemPhrases.matches(first.Content) {
		return System
	}
	return Human
}
