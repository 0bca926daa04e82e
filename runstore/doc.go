// SPDX-License-Identifier: MIT

// Package runstore keeps a history of searches and training runs in BadgerDB.
//
// Records are JSON values under "run:<uuid>" keys. A store opened with an empty
// directory lives in memory and disappears on Close.
package runstore
