// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

// Route pattern constants for chi router registration.
const (
	// RouteAPI is the prefix of the JSON API.
	RouteAPI = "/api"
	// RoutePublicPage serves a published page by slug.
	RoutePublicPage = "/p/{slug}"
	// RouteRobots is the robots.txt route.
	RouteRobots = "/robots.txt"
	// RouteSitemap is the sitemap.xml route.
	RouteSitemap = "/sitemap.xml"
	// RouteHealth is the health check route.
	RouteHealth = "/health"
	// RouteHealthLive is the liveness probe route.
	RouteHealthLive = "/health/live"
	// RouteHealthReady is the readiness probe route.
	RouteHealthReady = "/health/ready"
)

// Utility constants used by main.go.
const (
	// LogCacheInit is the log message for page cache initialization.
	LogCacheInit = "page cache initialized"
	// HeaderContentType is the Content-Type HTTP header name.
	HeaderContentType = "Content-Type"
)

const (
	contentTypeJSON = "application/json"
	contentTypeHTML = "text/html; charset=utf-8"
	contentTypeText = "text/plain; charset=utf-8"
	contentTypeXML  = "application/xml; charset=utf-8"
)
