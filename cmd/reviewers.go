package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/adoview/internal/timeline"
	"github.com/adoview/pkg/models"
)

// ReviewersCommand returns the reviewers command
func ReviewersCommand() *cli.Command {
	return &cli.Command{
		Name:  "reviewers",
		Usage: "List a pull request's reviewers with team votes attributed to members",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "repo",
				Aliases: []string{"r"},
				Usage:   "Repository name or ID",
			},
			&cli.StringFlag{
				Name:    "local",
				Aliases: []string{"l"},
				Usage:   "Read pull-request data from a local JSON `FILE` instead of the API",
			},
		},
		ArgsUsage: "PR_ID",
		Action:    runReviewers,
	}
}

// reviewerEntry pairs an enriched reviewer with the composed display text
// for team votes cast by delegates.
type reviewerEntry struct {
	models.Reviewer
	DelegatedVote string `json:"delegatedVote,omitempty"`
}

func runReviewers(c *cli.Context) error {
	var reviewers []models.Reviewer

	if localPath := c.String("local"); localPath != "" {
		fixture, err := loadFixture(localPath)
		if err != nil {
			return err
		}
		reviewers = fixture.Reviewers
		if reviewers == nil {
			reviewers = fixture.PullRequest.Reviewers
		}
	} else {
		repo := c.String("repo")
		if repo == "" {
			return fmt.Errorf("missing required flag: --repo")
		}
		prID, err := prIDArg(c)
		if err != nil {
			return err
		}
		client, err := newClient(c)
		if err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()

		reviewers, err = client.Reviewers(ctx, repo, prID)
		if err != nil {
			return err
		}
	}

	enriched := timeline.EnrichReviewers(reviewers)
	entries := make([]reviewerEntry, len(enriched))
	for i, r := range enriched {
		entries[i] = reviewerEntry{
			Reviewer:      r,
			DelegatedVote: timeline.DelegatedVoteText(r),
		}
	}
	return printJSON(entries)
}
