package timeline

// Vote codes on the platform's signed scale.
const (
	VoteApproved            = 10
	VoteApprovedSuggestions = 5
	VoteNone                = 0
	VoteWaitingForAuthor    = -5
	VoteRejected            = -10
)

var voteLabels = map[int]string{
	VoteApproved:            "approved",
	VoteApprovedSuggestions: "approved with suggestions",
	VoteNone:                "reset their vote",
	VoteWaitingForAuthor:    "is waiting for the author",
	VoteRejected:            "rejected",
}

// VoteLabel maps a vote code to its semantic label. Unknown codes report
// ok=false; they must never default to a label that implies approval or
// rejection, the caller falls through to content matching instead.
func VoteLabel(vote int) (string, bool) {
	label, ok := voteLabels[vote]
	return label, ok
}
