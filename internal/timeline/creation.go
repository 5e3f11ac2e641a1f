package timeline

import (
	"strings"

	"github.com/adoview/pkg/models"
)

// SyntheticCreationThreadID is the reserved sentinel for the injected
// creation thread. Real thread IDs are always non-negative, so it never
// collides.
const SyntheticCreationThreadID = -1

// injectCreationThread appends the implicit "PR created" thread, which the
// platform does not reliably emit. The synthetic thread flows through the
// same classification and synthesis pipeline as real data; there is no
// special-cased output path. The input slice is not modified.
func injectCreationThread(threads []models.Thread, pr *models.PullRequest, viewer *models.Profile) []models.Thread {
	out := make([]models.Thread, 0, len(threads)+1)
	out = append(out, threads...)
	// The timeline carries exactly one creation event: skip injection when
	// the platform already supplied a creation thread. Only a live thread
	// counts; a deleted one is dropped later and must not suppress the
	// synthetic event.
	for i := range threads {
		t := &threads[i]
		if t.IsDeleted {
			continue
		}
		if first := t.FirstComment(); first == nil || first.IsDeleted {
			continue
		}
		if t.ID == SyntheticCreationThreadID {
			return out
		}
		if tt, ok := threadType(t); ok && tt == threadTypePullRequestCreated {
			return out
		}
	}
	out = append(out, models.Thread{
		ID:            SyntheticCreationThreadID,
		PublishedDate: pr.CreationDate,
		Comments: []models.Comment{{
			Author: models.IdentityRef{
				ID:          pr.CreatedBy.ID,
				DisplayName: creatorDisplayName(pr, viewer),
				UniqueName:  pr.CreatedBy.UniqueName,
				ImageURL:    pr.CreatedBy.ImageURL,
			},
			CommentType: models.CommentTypeText,
		}},
		Properties: models.PropertyBag{
			propThreadType: {Type: "System.String", Value: threadTypePullRequestCreated},
		},
	})
	return out
}

// creatorDisplayName picks the attribution for the synthetic creation event:
// the viewer's own profile display name when the viewer created the PR, else
// the local part of the creator's account identifier.
func creatorDisplayName(pr *models.PullRequest, viewer *models.Profile) string {
	if viewer != nil && viewer.DisplayName != "" && sameAccount(pr.CreatedBy, viewer) {
		return viewer.DisplayName
	}
	return localPart(pr.CreatedBy.UniqueName)
}

func sameAccount(creator models.IdentityRef, viewer *models.Profile) bool {
	if viewer.ID != "" && creator.ID != "" && viewer.ID == creator.ID {
		return true
	}
	return viewer.EmailAddress != "" &&
		strings.EqualFold(viewer.EmailAddress, creator.UniqueName)
}

func localPart(uniqueName string) string {
	if i := strings.Index(uniqueName, "@"); i > 0 {
		return uniqueName[:i]
	}
	return uniqueName
}
