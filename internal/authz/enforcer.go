// Commune - Social Network Backend
// Copyright 2026 The Commune Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/commune-social/commune

// Package authz provides the role gate for protected write routes using
// a Casbin RBAC enforcer. Grants are explicit per role: user and
// superAdmin may create groups and posts, only superAdmin manages
// users, and admin holds no write grants of its own. The model and
// policy ship embedded.
package authz

import (
	_ "embed"
	"fmt"
	"strings"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
	"github.com/casbin/casbin/v2/persist"

	"github.com/commune-social/commune/internal/models"
)

//go:embed model.conf
var embeddedModel string

//go:embed policy.csv
var embeddedPolicy string

// Enforcer answers role/resource/action authorization questions.
type Enforcer struct {
	enforcer *casbin.SyncedEnforcer
}

// NewEnforcer builds an enforcer from the embedded model and policy.
func NewEnforcer() (*Enforcer, error) {
	m, err := model.NewModelFromString(embeddedModel)
	if err != nil {
		return nil, fmt.Errorf("failed to parse authz model: %w", err)
	}

	e, err := casbin.NewSyncedEnforcer(m)
	if err != nil {
		return nil, fmt.Errorf("failed to create enforcer: %w", err)
	}

	if err := loadPolicyLines(e, embeddedPolicy); err != nil {
		return nil, fmt.Errorf("failed to load authz policy: %w", err)
	}

	return &Enforcer{enforcer: e}, nil
}

// Allowed reports whether the role may perform action on the resource.
// Unknown roles are denied.
func (e *Enforcer) Allowed(role models.Role, resource, action string) (bool, error) {
	ok, err := e.enforcer.Enforce(string(role), resource, action)
	if err != nil {
		return false, fmt.Errorf("enforce failed: %w", err)
	}
	return ok, nil
}

// loadPolicyLines feeds the embedded CSV policy into the enforcer model.
func loadPolicyLines(e *casbin.SyncedEnforcer, policy string) error {
	for _, line := range strings.Split(policy, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if err := persist.LoadPolicyLine(line, e.GetModel()); err != nil {
			return err
		}
	}
	return e.BuildRoleLinks()
}
