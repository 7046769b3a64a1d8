// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"sort"
	"time"
)

// StatusHistoryEntry is one moderation decision in an article's append-only
// status log. ReasonReject is populated only for rejected transitions.
type StatusHistoryEntry struct {
	Status       ArticleStatus `json:"status"`
	ChangedAt    time.Time     `json:"changed_at"`
	ReasonReject string        `json:"reason_reject,omitempty"`
}

// Rejection is the derived view of the rejection currently relevant to the
// author: the most recent rejected entry that carries a reason.
type Rejection struct {
	Reason     string    `json:"reason"`
	RejectedAt time.Time `json:"rejected_at"`
}

// LatestRejection scans a status-history log for the most recent rejection
// with a non-empty reason. An article can be rejected, resubmitted, and
// rejected again, so the relevant entry is not necessarily the last one in
// the log. Returns false when the log is empty or holds no such entry —
// that is "no rejection on record", not an error.
func LatestRejection(log []StatusHistoryEntry) (*Rejection, bool) {
	if len(log) == 0 {
		return nil, false
	}

	// Work on a copy — the caller's log order is unspecified and must not
	// be disturbed.
	entries := make([]StatusHistoryEntry, len(log))
	copy(entries, log)
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].ChangedAt.After(entries[j].ChangedAt)
	})

	for _, e := range entries {
		if e.Status == ArticleStatusRejected && e.ReasonReject != "" {
			return &Rejection{Reason: e.ReasonReject, RejectedAt: e.ChangedAt}, true
		}
	}
	return nil, false
}
