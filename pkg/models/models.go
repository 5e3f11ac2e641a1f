package models

import (
	"time"
)

// Thread statuses as reported by the code-review API.
const (
	ThreadStatusActive   = "active"
	ThreadStatusFixed    = "fixed"
	ThreadStatusWontFix  = "wontFix"
	ThreadStatusClosed   = "closed"
	ThreadStatusByDesign = "byDesign"
	ThreadStatusPending  = "pending"
)

// Thread is one discussion unit on a pull request. A thread may be a genuine
// human conversation (possibly anchored to a file and line range) or a
// platform-generated system notification encoded through Properties.
type Thread struct {
	ID              int            `json:"id"`
	PublishedDate   time.Time      `json:"publishedDate,omitempty"`
	LastUpdatedDate time.Time      `json:"lastUpdatedDate,omitempty"`
	Comments        []Comment      `json:"comments"`
	Status          string         `json:"status,omitempty"`
	ThreadContext   *ThreadContext `json:"threadContext,omitempty"`
	// PullRequestThreadContext is the alternate anchor the API uses for
	// threads tracked across iterations. Either context marks the thread as
	// code-anchored.
	PullRequestThreadContext *ThreadContext `json:"pullRequestThreadContext,omitempty"`

	Identities map[string]IdentityRef `json:"identities,omitempty"`
	Properties PropertyBag            `json:"properties,omitempty"`
	IsDeleted  bool                   `json:"isDeleted,omitempty"`
}

// Anchored reports whether the thread carries a file/line context.
func (t *Thread) Anchored() bool {
	return t.ThreadContext != nil || t.PullRequestThreadContext != nil
}

// FirstComment returns the thread's primary message, or nil for an empty thread.
func (t *Thread) FirstComment() *Comment {
	if len(t.Comments) == 0 {
		return nil
	}
	return &t.Comments[0]
}

// ThreadContext anchors a thread to a file path and line range.
type ThreadContext struct {
	FilePath       string        `json:"filePath,omitempty"`
	LeftFileStart  *FilePosition `json:"leftFileStart,omitempty"`
	LeftFileEnd    *FilePosition `json:"leftFileEnd,omitempty"`
	RightFileStart *FilePosition `json:"rightFileStart,omitempty"`
	RightFileEnd   *FilePosition `json:"rightFileEnd,omitempty"`
}

// FilePosition is a 1-based line/column pair within a file.
type FilePosition struct {
	Line   int `json:"line"`
	Offset int `json:"offset"`
}

// Comment types attached by the platform.
const (
	CommentTypeSystem = "system"
	CommentTypeText   = "text"
)

// Comment is one message within a thread. Comments arrive in conversation
// order; the first comment is the thread's primary message.
type Comment struct {
	ID              int         `json:"id"`
	ParentCommentID int         `json:"parentCommentId,omitempty"`
	Author          IdentityRef `json:"author"`
	Content         string      `json:"content"`
	CommentType     string      `json:"commentType,omitempty"`
	PublishedDate   time.Time   `json:"publishedDate,omitempty"`
	IsDeleted       bool        `json:"isDeleted,omitempty"`
}

// IdentityRef identifies a user, service account, or team.
type IdentityRef struct {
	ID          string `json:"id,omitempty"`
	DisplayName string `json:"displayName,omitempty"`
	UniqueName  string `json:"uniqueName,omitempty"`
	ImageURL    string `json:"imageUrl,omitempty"`
}

// Reviewer is an IdentityRef holding a formal reviewer slot on a pull
// request. IsContainer marks team (as opposed to individual) entries; for a
// team reviewer, VotedFor lists the members who cast a vote on its behalf.
type Reviewer struct {
	IdentityRef
	Vote        int        `json:"vote"`
	IsRequired  bool       `json:"isRequired,omitempty"`
	IsContainer bool       `json:"isContainer,omitempty"`
	VotedFor    []Reviewer `json:"votedFor,omitempty"`
}

// PullRequest carries the PR metadata the timeline engine needs.
type PullRequest struct {
	PullRequestID int         `json:"pullRequestId"`
	Title         string      `json:"title,omitempty"`
	Description   string      `json:"description,omitempty"`
	Status        string      `json:"status,omitempty"`
	CreatedBy     IdentityRef `json:"createdBy"`
	CreationDate  time.Time   `json:"creationDate"`
	Reviewers     []Reviewer  `json:"reviewers,omitempty"`
}

// Profile is the viewing user's own identity from the profile endpoint.
type Profile struct {
	ID           string `json:"id,omitempty"`
	DisplayName  string `json:"displayName,omitempty"`
	EmailAddress string `json:"emailAddress,omitempty"`
}

// EventKind discriminates the semantic event variants.
type EventKind string

const (
	EventCreated               EventKind = "created"
	EventVoteChanged           EventKind = "vote_changed"
	EventReviewerJoined        EventKind = "reviewer_joined"
	EventRequiredReviewerAdded EventKind = "required_reviewer_added"
	EventComment               EventKind = "comment"
)

// SemanticEvent is one reconstructed entry in the activity timeline. Events
// are immutable once constructed; the engine only reorders the collection.
type SemanticEvent struct {
	Kind      EventKind   `json:"kind"`
	Actor     IdentityRef `json:"actor"`
	Timestamp time.Time   `json:"timestamp"`
	Message   string      `json:"message"`

	// SourceThreadID links back to the thread the event was derived from.
	// Negative IDs denote synthetic threads injected by the engine.
	SourceThreadID int `json:"sourceThreadId"`

	// Source carries the full thread for comment-kind events so the caller
	// can render the body, file anchor, and replies. It is a private copy
	// derived by the engine, never the caller's input thread.
	Source *Thread `json:"-"`
}
