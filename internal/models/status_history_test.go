// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"testing"
	"time"
)

func ts(offset int) time.Time {
	return time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC).Add(time.Duration(offset) * time.Hour)
}

func TestLatestRejectionEmptyLog(t *testing.T) {
	if _, ok := LatestRejection(nil); ok {
		t.Error("expected no rejection for nil log")
	}
	if _, ok := LatestRejection([]StatusHistoryEntry{}); ok {
		t.Error("expected no rejection for empty log")
	}
}

func TestLatestRejectionNoMatchingEntry(t *testing.T) {
	log := []StatusHistoryEntry{
		{Status: ArticleStatusPending, ChangedAt: ts(0)},
		{Status: ArticleStatusPublished, ChangedAt: ts(1)},
	}
	if _, ok := LatestRejection(log); ok {
		t.Error("expected no rejection when log has no rejected entry")
	}
}

func TestLatestRejectionIgnoresEmptyReason(t *testing.T) {
	log := []StatusHistoryEntry{
		{Status: ArticleStatusRejected, ChangedAt: ts(0), ReasonReject: "too short"},
		{Status: ArticleStatusRejected, ChangedAt: ts(1)}, // no reason recorded
	}
	rej, ok := LatestRejection(log)
	if !ok {
		t.Fatal("expected a rejection")
	}
	if rej.Reason != "too short" {
		t.Errorf("reason: got %q, want %q", rej.Reason, "too short")
	}
}

func TestLatestRejectionResubmitRoundTrip(t *testing.T) {
	// Rejected, resubmitted, rejected again — the second reason wins even
	// though a pending entry follows the first rejection.
	log := []StatusHistoryEntry{
		{Status: ArticleStatusPending, ChangedAt: ts(1)},
		{Status: ArticleStatusRejected, ChangedAt: ts(2), ReasonReject: "missing source"},
		{Status: ArticleStatusPending, ChangedAt: ts(3)},
		{Status: ArticleStatusRejected, ChangedAt: ts(4), ReasonReject: "still incomplete"},
	}

	rej, ok := LatestRejection(log)
	if !ok {
		t.Fatal("expected a rejection")
	}
	if rej.Reason != "still incomplete" {
		t.Errorf("reason: got %q, want %q", rej.Reason, "still incomplete")
	}
	if !rej.RejectedAt.Equal(ts(4)) {
		t.Errorf("rejected at: got %v, want %v", rej.RejectedAt, ts(4))
	}
}

func TestLatestRejectionUnorderedLog(t *testing.T) {
	// The backend does not promise ordering; the newest reason must still win.
	log := []StatusHistoryEntry{
		{Status: ArticleStatusRejected, ChangedAt: ts(4), ReasonReject: "still incomplete"},
		{Status: ArticleStatusPending, ChangedAt: ts(3)},
		{Status: ArticleStatusRejected, ChangedAt: ts(2), ReasonReject: "missing source"},
		{Status: ArticleStatusPending, ChangedAt: ts(1)},
	}

	rej, ok := LatestRejection(log)
	if !ok {
		t.Fatal("expected a rejection")
	}
	if rej.Reason != "still incomplete" {
		t.Errorf("reason: got %q, want %q", rej.Reason, "still incomplete")
	}
}

func TestLatestRejectionDoesNotMutateInput(t *testing.T) {
	log := []StatusHistoryEntry{
		{Status: ArticleStatusRejected, ChangedAt: ts(2), ReasonReject: "b"},
		{Status: ArticleStatusRejected, ChangedAt: ts(1), ReasonReject: "a"},
	}
	LatestRejection(log)
	if log[0].ReasonReject != "b" || log[1].ReasonReject != "a" {
		t.Error("input log was reordered")
	}
}
