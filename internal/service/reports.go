// Commune - Social Network Backend
// Copyright 2026 The Commune Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/commune-social/commune

package service

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/commune-social/commune/internal/apperr"
	"github.com/commune-social/commune/internal/models"
)

// ReportKind is the closed set of reportable entities.
type ReportKind string

const (
	ReportUser  ReportKind = "user"
	ReportGroup ReportKind = "group"
	ReportPage  ReportKind = "page"
	ReportPost  ReportKind = "post"
)

// ReportService files and withdraws reports against users, groups,
// pages, and posts. One active report per reporter per target; the
// 10-report ban threshold fires in the target's save hook, not here.
type ReportService struct {
	users  UserStore
	groups GroupStore
	pages  PageStore
	posts  PostStore
}

func hasReportBy(reports []models.Report, reporter primitive.ObjectID) bool {
	for _, r := range reports {
		if r.ReportedBy == reporter {
			return true
		}
	}
	return false
}

func removeReportBy(reports []models.Report, reporter primitive.ObjectID) []models.Report {
	out := reports[:0:0]
	for _, r := range reports {
		if r.ReportedBy != reporter {
			out = append(out, r)
		}
	}
	return out
}

func removeMadeReport(made []models.MadeReport, itemID primitive.ObjectID) []models.MadeReport {
	out := made[:0:0]
	for _, m := range made {
		if m.ReportedItemID != itemID {
			out = append(out, m)
		}
	}
	return out
}

// Add files a report against the target and records it in the
// reporter's madeReports. A second report by the same reporter against
// the same target fails.
func (s *ReportService) Add(ctx context.Context, kind ReportKind, itemID, reporterID primitive.ObjectID, reason string) error {
	reporter, err := findUser(ctx, s.users, reporterID, "Invalid user id")
	if err != nil {
		return err
	}

	report := models.Report{
		Reason:     reason,
		ReportedBy: reporterID,
		CreatedAt:  time.Now().UTC(),
	}

	switch kind {
	case ReportUser:
		target, err := findUser(ctx, s.users, itemID, "Invalid reported user id")
		if err != nil {
			return err
		}
		if hasReportBy(target.Reports, reporterID) {
			return apperr.BadRequest("You have already reported this user")
		}
		target.Reports = append(target.Reports, report)
		if err := s.users.Save(ctx, target); err != nil {
			return err
		}
	case ReportGroup:
		target, err := findGroup(ctx, s.groups, itemID, "Invalid reported group id")
		if err != nil {
			return err
		}
		if hasReportBy(target.Reports, reporterID) {
			return apperr.BadRequest("You have already reported this group")
		}
		target.Reports = append(target.Reports, report)
		if err := s.groups.Save(ctx, target); err != nil {
			return err
		}
	case ReportPage:
		target, err := findPage(ctx, s.pages, itemID, "Invalid reported page id")
		if err != nil {
			return err
		}
		if hasReportBy(target.Reports, reporterID) {
			return apperr.BadRequest("You have already reported this page")
		}
		target.Reports = append(target.Reports, report)
		if err := s.pages.Save(ctx, target); err != nil {
			return err
		}
	case ReportPost:
		target, err := findPost(ctx, s.posts, itemID, "Invalid reported post id")
		if err != nil {
			return err
		}
		if hasReportBy(target.Reports, reporterID) {
			return apperr.BadRequest("You have already reported this post")
		}
		target.Reports = append(target.Reports, report)
		if err := s.posts.Save(ctx, target); err != nil {
			return err
		}
	default:
		return apperr.BadRequest("Invalid report type")
	}

	reporter.MadeReports = append(reporter.MadeReports, models.MadeReport{
		ReportedItemID: itemID,
		Reason:         reason,
		CreatedAt:      report.CreatedAt,
	})
	return s.users.Save(ctx, reporter)
}

// Remove withdraws the caller's report against the target. Only the
// original reporter may remove it.
func (s *ReportService) Remove(ctx context.Context, kind ReportKind, itemID, userID primitive.ObjectID) error {
	user, err := findUser(ctx, s.users, userID, "Invalid user id")
	if err != nil {
		return err
	}

	switch kind {
	case ReportUser:
		target, err := findUser(ctx, s.users, itemID, "Invalid reported user id")
		if err != nil {
			return err
		}
		if !hasReportBy(target.Reports, userID) {
			return apperr.BadRequest("You can't remove this report, only the report owner can delete it")
		}
		target.Reports = removeReportBy(target.Reports, userID)
		if err := s.users.Save(ctx, target); err != nil {
			return err
		}
	case ReportGroup:
		target, err := findGroup(ctx, s.groups, itemID, "Invalid reported group id")
		if err != nil {
			return err
		}
		if !hasReportBy(target.Reports, userID) {
			return apperr.BadRequest("You can't remove this report, only the report owner can delete it")
		}
		target.Reports = removeReportBy(target.Reports, userID)
		if err := s.groups.Save(ctx, target); err != nil {
			return err
		}
	case ReportPage:
		target, err := findPage(ctx, s.pages, itemID, "Invalid reported page id")
		if err != nil {
			return err
		}
		if !hasReportBy(target.Reports, userID) {
			return apperr.BadRequest("You can't remove this report, only the report owner can delete it")
		}
		target.Reports = removeReportBy(target.Reports, userID)
		if err := s.pages.Save(ctx, target); err != nil {
			return err
		}
	case ReportPost:
		target, err := findPost(ctx, s.posts, itemID, "Invalid reported post id")
		if err != nil {
			return err
		}
		if !hasReportBy(target.Reports, userID) {
			return apperr.BadRequest("You can't remove this report, only the report owner can delete it")
		}
		target.Reports = removeReportBy(target.Reports, userID)
		if err := s.posts.Save(ctx, target); err != nil {
			return err
		}
	default:
		return apperr.BadRequest("Invalid report type")
	}

	user.MadeReports = removeMadeReport(user.MadeReports, itemID)
	return s.users.Save(ctx, user)
}
