// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package model defines the page document and the types shared across the
// application: pages, sections and their typed content, events and users.
package model

// DemoUserID is the account used by the demo login.
const DemoUserID = "demo-user-1"

// User is an account that owns pages.
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// DemoUser returns the built-in demo account.
func DemoUser() User {
	return User{
		ID:    DemoUserID,
		Name:  "Demo User",
		Email: "demo@example.com",
	}
}
