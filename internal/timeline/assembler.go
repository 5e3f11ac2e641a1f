package timeline

import (
	"sort"

	"github.com/adoview/pkg/models"
)

// RedactedPlaceholder replaces the content of a deleted reply. A deleted
// first comment instead drops the whole thread.
const RedactedPlaceholder = "[comment deleted]"

// Stats counts what a reconstruction pass did with its input. Dropped covers
// threads that produced no event: deleted threads, empty threads, and system
// threads no message could be synthesized for. The counts are diagnostic
// only and never change timeline content.
type Stats struct {
	Threads int `json:"threads"`
	Events  int `json:"events"`
	Dropped int `json:"dropped"`
}

// Reconstruct builds the ordered activity timeline for a pull request from
// its raw threads. The synthetic creation thread is injected first, every
// thread is classified, system threads are resolved and synthesized, human
// threads become comment events, and the result is sorted newest first.
//
// The engine is a pure transformation: it performs no I/O, never modifies
// the caller's threads, and has no fatal error conditions. Threads that
// cannot be reconstructed are omitted rather than failing the whole
// timeline.
func Reconstruct(threads []models.Thread, pr *models.PullRequest, viewer *models.Profile) []models.SemanticEvent {
	events, _ := ReconstructWithStats(threads, pr, viewer)
	return events
}

// ReconstructWithStats is Reconstruct plus diagnostic counts.
func ReconstructWithStats(threads []models.Thread, pr *models.PullRequest, viewer *models.Profile) ([]models.SemanticEvent, Stats) {
	working := injectCreationThread(threads, pr, viewer)

	stats := Stats{Threads: len(working)}
	events := make([]models.SemanticEvent, 0, len(working))
	for i := range working {
		t := &working[i]
		ev, ok := reconstructThread(t)
		if !ok {
			stats.Dropped++
			continue
		}
		events = append(events, ev)
	}
	stats.Events = len(events)

	// Newest first; a missing timestamp is the zero time and therefore
	// sorts last. The sort is stable, ties keep input order.
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Timestamp.After(events[j].Timestamp)
	})
	return events, stats
}

func reconstructThread(t *models.Thread) (models.SemanticEvent, bool) {
	if t.IsDeleted {
		return models.SemanticEvent{}, false
	}
	first := t.FirstComment()
	if first == nil || first.IsDeleted {
		return models.SemanticEvent{}, false
	}

	if Classify(t) == Human {
		return models.SemanticEvent{
			Kind:           models.EventComment,
			Actor:          first.Author,
			Timestamp:      t.PublishedDate,
			Message:        first.Content,
			SourceThreadID: t.ID,
			Source:         redactedCopy(t),
		}, true
	}

	actor := ResolveActor(t)
	if actor == nil {
		return models.SemanticEvent{}, false
	}
	msg, kind, ok := Synthesize(t, NormalizeDisplayName(actor.DisplayName))
	if !ok {
		return models.SemanticEvent{}, false
	}
	return models.SemanticEvent{
		Kind:           kind,
		Actor:          *actor,
		Timestamp:      t.PublishedDate,
		Message:        msg,
		SourceThreadID: t.ID,
	}, true
}

// redactedCopy derives the thread copy a comment event carries: a fresh
// comments slice with deleted replies rendered as a placeholder. Replies
// stay in original conversation order, they are never re-sorted.
func redactedCopy(t *models.Thread) *models.Thread {
	cp := *t
	cp.Comments = make([]models.Comment, len(t.Comments))
	copy(cp.Comments, t.Comments)
	for i := 1; i < len(cp.Comments); i++ {
		if cp.Comments[i].IsDeleted {
			cp.Comments[i].Content = RedactedPlaceholder
		}
	}
	return &cp
}
