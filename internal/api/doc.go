// Commune - Social Network Backend
// Copyright 2026 The Commune Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/commune-social/commune

// Package api exposes the HTTP surface: a chi router under /api/v1,
// request DTOs validated before the service layer runs, and the tagged
// response envelope every endpoint renders.
//
// Handlers stay thin. They decode and validate the payload, call one
// service operation, and hand the result to the envelope writer. All
// domain decisions, including which errors exist and how they read,
// live in internal/service.
package api
