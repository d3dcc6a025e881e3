// internal/app/workflow/collaboration/collaboration.go

// Package collaboration owns the issue assignment lifecycle: the
// collaboration-request state machine, direct claims, and resolution.
// No other path sets an issue's assigned NGO.
package collaboration

import (
	"context"
	"errors"
	"fmt"

	collabstore "github.com/civicworks/civicbridge/internal/app/store/collabs"
	issuestore "github.com/civicworks/civicbridge/internal/app/store/issues"
	"github.com/civicworks/civicbridge/internal/app/system/notify"
	"github.com/civicworks/civicbridge/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// Decision is a response to a pending request.
type Decision string

const (
	Accept Decision = "accept"
	Reject Decision = "reject"
)

var (
	// ErrIssueAlreadyAssigned is returned when acceptance loses the
	// assignment race: the request ends up accepted but unapplied,
	// and the issue keeps its earlier assignee.
	ErrIssueAlreadyAssigned = errors.New("issue was assigned to another organization")

	ErrSameOrganization = errors.New("an organization cannot request collaboration with itself")
	ErrBadDecision      = errors.New("decision must be accept or reject")
)

// Engine drives collaboration requests and issue assignment.
type Engine struct {
	collabs *collabstore.Store
	issues  *issuestore.Store
	pub     notify.Publisher
	log     *zap.Logger
}

func New(collabs *collabstore.Store, issues *issuestore.Store, pub notify.Publisher, logger *zap.Logger) *Engine {
	return &Engine{collabs: collabs, issues: issues, pub: pub, log: logger}
}

// Create proposes a collaboration on an issue to another NGO. Fails
// with issuestore.ErrNotFound when the issue is unknown and
// collabstore.ErrDuplicatePending when a pending request already
// targets the same (issue, NGO) pair.
func (e *Engine) Create(ctx context.Context, issueID, fromOrg, toOrg primitive.ObjectID, message string) (models.CollaborationRequest, error) {
	if fromOrg == toOrg {
		return models.CollaborationRequest{}, ErrSameOrganization
	}

	iss, err := e.issues.GetByID(ctx, issueID)
	if err != nil {
		return models.CollaborationRequest{}, err
	}

	req, err := e.collabs.Create(ctx, issueID, fromOrg, toOrg, message)
	if err != nil {
		return models.CollaborationRequest{}, err
	}

	e.log.Info("collaboration requested",
		zap.String("request_id", req.ID.Hex()),
		zap.String("issue_id", issueID.Hex()),
		zap.String("from_org", fromOrg.Hex()),
		zap.String("to_org", toOrg.Hex()))

	e.pub.Publish(notify.Event{
		RecipientID: toOrg,
		Kind:        notify.KindCollabRequested,
		Message:     fmt.Sprintf("You received a collaboration request on issue %q.", iss.Title),
	})
	return req, nil
}

// Respond resolves a pending request. Only the requested NGO may
// respond, and only once; a repeat attempt is
// collabstore.ErrAlreadyResolved, never a silent success.
//
// Accepting approves the requester's claim: the issue is assigned to
// requested_by, provided it is still open. When a third party got
// there first the request stays accepted but unapplied and the caller
// sees ErrIssueAlreadyAssigned alongside the resolved request. Both
// outcomes notify the requester.
func (e *Engine) Respond(ctx context.Context, requestID, responderOrg primitive.ObjectID, decision Decision) (models.CollaborationRequest, error) {
	var status string
	switch decision {
	case Accept:
		status = models.CollabStatusAccepted
	case Reject:
		status = models.CollabStatusRejected
	default:
		return models.CollaborationRequest{}, ErrBadDecision
	}

	req, err := e.collabs.Resolve(ctx, requestID, responderOrg, status)
	if err != nil {
		return models.CollaborationRequest{}, err
	}

	if decision == Reject {
		e.log.Info("collaboration rejected",
			zap.String("request_id", req.ID.Hex()),
			zap.String("issue_id", req.IssueID.Hex()))
		e.pub.Publish(notify.Event{
			RecipientID: req.RequestedBy,
			Kind:        notify.KindCollabRejected,
			Message:     "Your collaboration request was rejected.",
		})
		return req, nil
	}

	// Accept saga: the request is already accepted; now try the
	// conditional issue assignment. Issue state wins on a race.
	_, err = e.issues.Assign(ctx, req.IssueID, req.RequestedBy)
	switch {
	case err == nil:
		req.Applied = true
		if err := e.collabs.SetApplied(ctx, req.ID, true); err != nil {
			// The assignment committed; losing the flag is not worth
			// failing the acceptance over.
			e.log.Error("failed to flag request applied",
				zap.String("request_id", req.ID.Hex()), zap.Error(err))
		}
		e.log.Info("collaboration accepted",
			zap.String("request_id", req.ID.Hex()),
			zap.String("issue_id", req.IssueID.Hex()),
			zap.String("assigned_ngo", req.RequestedBy.Hex()))
		e.pub.Publish(notify.Event{
			RecipientID: req.RequestedBy,
			Kind:        notify.KindCollabAccepted,
			Message:     "Your collaboration request was accepted.",
		})
		return req, nil

	case errors.Is(err, issuestore.ErrAlreadyAssigned):
		e.log.Warn("collaboration accepted but issue already assigned",
			zap.String("request_id", req.ID.Hex()),
			zap.String("issue_id", req.IssueID.Hex()))
		e.pub.Publish(notify.Event{
			RecipientID: req.RequestedBy,
			Kind:        notify.KindCollabAccepted,
			Message:     "Your collaboration request was accepted, but the issue had already been assigned.",
		})
		return req, ErrIssueAlreadyAssigned

	default:
		return req, err
	}
}

// ClaimIssue assigns an open issue directly to an NGO, using the same
// open-only guard as acceptance, so a claim and an acceptance can
// never both win.
func (e *Engine) ClaimIssue(ctx context.Context, issueID, orgID primitive.ObjectID) (models.Issue, error) {
	iss, err := e.issues.Assign(ctx, issueID, orgID)
	if err != nil {
		return models.Issue{}, err
	}
	e.log.Info("issue claimed",
		zap.String("issue_id", issueID.Hex()),
		zap.String("organization_id", orgID.Hex()))
	return iss, nil
}

// ResolveIssue marks an assigned issue resolved. Only the assigned NGO
// may resolve it.
func (e *Engine) ResolveIssue(ctx context.Context, issueID, orgID primitive.ObjectID) (models.Issue, error) {
	iss, err := e.issues.Resolve(ctx, issueID, orgID)
	if err != nil {
		return models.Issue{}, err
	}
	e.log.Info("issue resolved",
		zap.String("issue_id", issueID.Hex()),
		zap.String("organization_id", orgID.Hex()))
	return iss, nil
}
