// SPDX-License-Identifier: MIT

// Package server exposes an engine over HTTP with gin.
//
//	GET  /health          liveness
//	GET  /v1/network      network summary
//	POST /v1/search       shortest route, cached per start/end pair
//	POST /v1/train        tabular training run
//	GET  /v1/runs         stored runs, newest first (with a run store)
//	GET  /v1/runs/:id     one stored run
//
// Errors are JSON objects {"error": "..."}: 400 for bad input or unknown IDs,
// 404 when no route exists, 422 when training does not converge.
package server
