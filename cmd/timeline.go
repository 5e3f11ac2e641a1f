package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"

	"github.com/adoview/internal/azdo"
	"github.com/adoview/internal/config"
	"github.com/adoview/internal/timeline"
	"github.com/adoview/pkg/models"
)

// TimelineCommand returns the timeline command
func TimelineCommand() *cli.Command {
	return &cli.Command{
		Name:  "timeline",
		Usage: "Reconstruct the activity timeline of a pull request",
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
			&cli.BoolFlag{
				Name:  "stats",
				Usage: "Log reconstruction statistics",
			},
		},
		ArgsUsage: "PR_ID",
		Action:    runTimeline,
	}
}

// localFixture is the shape of a --local input file: raw API data saved to
// disk, in the same JSON the platform serves.
type localFixture struct {
	PullRequest models.PullRequest `json:"pullRequest"`
	Threads     []models.Thread    `json:"threads"`
	Reviewers   []models.Reviewer  `json:"reviewers,omitempty"`
	Viewer      *models.Profile    `json:"viewer,omitempty"`
}

func runTimeline(c *cli.Context) error {
	var (
		threads []models.Thread
		pr      *models.PullRequest
		viewer  *models.Profile
	)

	if localPath := c.String("local"); localPath != "" {
		fixture, err := loadFixture(localPath)
		if err != nil {
			return err
		}
		pr = &fixture.PullRequest
		threads = fixture.Threads
		viewer = fixture.Viewer
	} else {
		var err error
		pr, threads, viewer, err = fetchPullRequestData(c)
		if err != nil {
			return err
		}
	}

	events, stats := timeline.ReconstructWithStats(threads, pr, viewer)
	if c.Bool("stats") {
		log.Info().
			Int("threads", stats.Threads).
			Int("events", stats.Events).
			Int("dropped", stats.Dropped).
			Msg("timeline reconstructed")
	}

	return printJSON(events)
}

func fetchPullRequestData(c *cli.Context) (*models.PullRequest, []models.Thread, *models.Profile, error) {
	repo := c.String("repo")
	if repo == "" {
		return nil, nil, nil, fmt.Errorf("missing required flag: --repo")
	}
	prID, err := prIDArg(c)
	if err != nil {
		return nil, nil, nil, err
	}

	client, err := newClient(c)
	if err != nil {
		return nil, nil, nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	pr, err := client.PullRequest(ctx, repo, prID)
	if err != nil {
		return nil, nil, nil, err
	}
	threads, err := client.Threads(ctx, repo, prID)
	if err != nil {
		return nil, nil, nil, err
	}

	// The profile only affects attribution of the synthetic creation event;
	// a failed lookup falls back to the creator's account name.
	viewer, err := client.Profile(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("profile lookup failed, using account name attribution")
		viewer = nil
	}
	return pr, threads, viewer, nil
}

func newClient(c *cli.Context) (*azdo.Client, error) {
	cfg, err := config.LoadConfig(c.String("config"))
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := config.Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return azdo.NewClient(
		cfg.General.BaseURL,
		cfg.General.Organization,
		cfg.General.Project,
		cfg.Auth.Token,
	), nil
}

func prIDArg(c *cli.Context) (int, error) {
	if c.NArg() < 1 {
		return 0, fmt.Errorf("missing required argument: pull request ID")
	}
	prID, err := strconv.Atoi(c.Args().Get(0))
	if err != nil {
		return 0, fmt.Errorf("invalid pull request ID %q", c.Args().Get(0))
	}
	return prID, nil
}

func loadFixture(path string) (*localFixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	var fixture localFixture
	if err := json.Unmarshal(data, &fixture); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return &fixture, nil
}

func printJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
