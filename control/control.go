// Copyright (C) 2025 sage-x-project
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with this program. If not, see <https://www.gnu.org/licenses/>.

// SPDX-License-Identifier: LGPL-3.0-or-later

package control

import (
	"time"

	"github.com/google/uuid"

	"github.com/adityak74/open-context/observer"
)

// dismissalProtectionThreshold is how many same-kind, same-scope
// dismissals trigger a broader standing protection.
const dismissalProtectionThreshold = 3

// Candidate is one action proposed by the improver, not yet routed.
type Candidate struct {
	Kind        string
	EntryIDs    []string
	Payload     map[string]interface{}
	Scope       map[string]string
	Preview     interface{}
	Description string
	Reasoning   string
}

// Executor actually performs an approved or auto-executed action. It is
// supplied by the improver, which owns the action semantics; control only
// routes.
type Executor func(kind string, payload map[string]interface{}) (interface{}, error)

// ExecutionOutcome summarizes the result of running one candidate.
type ExecutionOutcome struct {
	Kind         string
	AutoExecuted bool
	Preview      interface{}
	Err          error
}

// Control classifies, routes, and tracks improver-proposed actions
// through the pending-action lifecycle, persisting everything to the
// shared awareness blob via obs.
type Control struct {
	obs    *observer.Observer
	policy AutoApprovePolicy
	ttl    time.Duration
}

// New creates a Control backed by obs, governed by policy, with pending
// actions expiring after ttl (default 7 days if ttl <= 0).
func New(obs *observer.Observer, policy AutoApprovePolicy, ttl time.Duration) *Control {
	if ttl <= 0 {
		ttl = 7 * 24 * time.Hour
	}
	return &Control{obs: obs, policy: policy, ttl: ttl}
}

// Route classifies a candidate and either executes it immediately (if
// policy allows and it isn't protected) or enqueues it for review.
// Protected candidates are dropped silently and reported via ok=false.
func (c *Control) Route(cand Candidate, exec Executor) (executed bool, ok bool, err error) {
	protected, err := c.IsProtected(cand.EntryIDs, cand.Scope, cand.Kind)
	if err != nil {
		return false, false, err
	}
	if protected {
		return false, false, nil
	}

	if c.policy.AutoExecutes(cand.Kind) {
		if _, err := exec(cand.Kind, cand.Payload); err != nil {
			return false, true, err
		}
		return true, true, nil
	}

	if _, err := c.Enqueue(cand); err != nil {
		return false, true, err
	}
	return false, true, nil
}

// Enqueue records cand as a new pending action with status "pending" and
// a 7-day (or configured) expiry.
func (c *Control) Enqueue(cand Candidate) (observer.PendingAction, error) {
	now := time.Now().UTC()
	pa := observer.PendingAction{
		ID:            newPendingID(cand.Kind, now),
		CreatedAt:     now,
		ExpiresAt:     now.Add(c.ttl),
		ActionKind:    cand.Kind,
		ActionPayload: cand.Payload,
		Risk:          string(Classify(cand.Kind)),
		Description:   cand.Description,
		Reasoning:     cand.Reasoning,
		Preview:       cand.Preview,
		Status:        observer.StatusPending,
	}

	err := c.obs.Mutate(func(st *observer.AwarenessState) error {
		st.PendingActions = append(st.PendingActions, pa)
		return nil
	})
	return pa, err
}

// Pending returns every pending action, regardless of status.
func (c *Control) Pending() ([]observer.PendingAction, error) {
	st, err := c.obs.Snapshot()
	if err != nil {
		return nil, err
	}
	return st.PendingActions, nil
}

// ApproveResult reports the outcome of approving one pending action.
type ApproveResult struct {
	ID          string
	Applicable  bool
	ActionKind  string
	ExecutedErr error
}

// Approve loads the action by ID, executes it if still pending, and
// journals the result. Approving a non-pending or missing ID returns
// Applicable=false and is a no-op.
func (c *Control) Approve(id string, exec Executor) (ApproveResult, error) {
	var result ApproveResult
	var execResult interface{}
	var execErr error

	err := c.obs.Mutate(func(st *observer.AwarenessState) error {
		idx := indexOfPending(st.PendingActions, id)
		if idx < 0 || st.PendingActions[idx].Status != observer.StatusPending {
			result = ApproveResult{ID: id, Applicable: false}
			return nil
		}

		pa := &st.PendingActions[idx]
		execResult, execErr = exec(pa.ActionKind, pa.ActionPayload)
		pa.Status = observer.StatusApproved
		result = ApproveResult{ID: id, Applicable: true, ActionKind: pa.ActionKind, ExecutedErr: execErr}
		return nil
	})
	if err != nil {
		return ApproveResult{}, err
	}

	if result.Applicable {
		_ = execResult
		_ = c.obs.AppendImprovement(observer.ImprovementRecord{
			Actions:      []observer.ActionCount{{Type: result.ActionKind, Count: 1}},
			AutoExecuted: false,
		})
	}
	return result, nil
}

// ApproveBatch approves each ID independently.
func (c *Control) ApproveBatch(ids []string, exec Executor) []ApproveResult {
	out := make([]ApproveResult, 0, len(ids))
	for _, id := range ids {
		r, err := c.Approve(id, exec)
		if err != nil {
			r = ApproveResult{ID: id, Applicable: false, ExecutedErr: err}
		}
		out = append(out, r)
	}
	return out
}

// Dismiss sets an action to dismissed, records the reason, and learns a
// protection for its targets — and, if the dismissal pattern repeats,
// a broader scope-level protection.
func (c *Control) Dismiss(id, reason string) error {
	return c.obs.Mutate(func(st *observer.AwarenessState) error {
		idx := indexOfPending(st.PendingActions, id)
		if idx < 0 || st.PendingActions[idx].Status != observer.StatusPending {
			return nil
		}

		pa := &st.PendingActions[idx]
		pa.Status = observer.StatusDismissed
		pa.DismissalReason = reason

		now := time.Now().UTC()
		for _, entryID := range entryIDsFromPayload(pa.ActionPayload) {
			st.Protections = append(st.Protections, observer.Protection{
				ID:        uuid.NewString(),
				EntryID:   entryID,
				Actions:   []string{pa.ActionKind},
				Reason:    reason,
				CreatedAt: now,
			})
		}

		scope := scopeFromPayload(pa.ActionPayload)
		if len(scope) > 0 && countRecentDismissals(st.PendingActions, pa.ActionKind, scope) >= dismissalProtectionThreshold {
			st.Protections = append(st.Protections, observer.Protection{
				ID:        uuid.NewString(),
				Scope:     scope,
				Actions:   []string{pa.ActionKind},
				Reason:    reason,
				CreatedAt: now,
			})
		}

		return nil
	})
}

// DismissBatch dismisses each ID independently with a shared reason.
func (c *Control) DismissBatch(ids []string, reason string) []error {
	out := make([]error, 0, len(ids))
	for _, id := range ids {
		out = append(out, c.Dismiss(id, reason))
	}
	return out
}

// Expire walks the pending list and marks every action whose expiry has
// passed as expired. Expiration never auto-approves.
func (c *Control) Expire() error {
	now := time.Now().UTC()
	return c.obs.Mutate(func(st *observer.AwarenessState) error {
		for i := range st.PendingActions {
			pa := &st.PendingActions[i]
			if pa.Status == observer.StatusPending && pa.ExpiresAt.Before(now) {
				pa.Status = observer.StatusExpired
			}
		}
		return nil
	})
}

// IsProtected reports whether any entry-scoped or scope-scoped protection
// blocks kind against the given targets/scope.
func (c *Control) IsProtected(entryIDs []string, scope map[string]string, kind string) (bool, error) {
	st, err := c.obs.Snapshot()
	if err != nil {
		return false, err
	}

	idSet := map[string]bool{}
	for _, id := range entryIDs {
		idSet[id] = true
	}

	for _, p := range st.Protections {
		if !containsAction(p.Actions, kind) {
			continue
		}
		if p.EntryID != "" && idSet[p.EntryID] {
			return true, nil
		}
		if len(p.Scope) > 0 && scopeMatches(p.Scope, scope) {
			return true, nil
		}
	}
	return false, nil
}

func scopeMatches(protectionScope, candidateScope map[string]string) bool {
	if len(candidateScope) == 0 {
		return false
	}
	for k, v := range protectionScope {
		if candidateScope[k] != v {
			return false
		}
	}
	return true
}

func containsAction(actions []string, kind string) bool {
	for _, a := range actions {
		if a == kind {
			return true
		}
	}
	return false
}

func entryIDsFromPayload(payload map[string]interface{}) []string {
	raw, ok := payload["entryIds"]
	if !ok {
		return nil
	}
	switch v := raw.(type) {
	case []string:
		return v
	case []interface{}:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}

func scopeFromPayload(payload map[string]interface{}) map[string]string {
	scope := map[string]string{}
	if t, ok := payload["typeName"].(string); ok && t != "" {
		scope["typeName"] = t
	}
	return scope
}

func countRecentDismissals(pending []observer.PendingAction, kind string, scope map[string]string) int {
	n := 0
	for _, pa := range pending {
		if pa.Status != observer.StatusDismissed || pa.ActionKind != kind {
			continue
		}
		if scopeMatches(scope, scopeFromPayload(pa.ActionPayload)) {
			n++
		}
	}
	return n
}

func indexOfPending(pending []observer.PendingAction, id string) int {
	for i, pa := range pending {
		if pa.ID == id {
			return i
		}
	}
	return -1
}
