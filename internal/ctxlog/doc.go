// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package ctxlog carries a *slog.Logger on a context.Context.
//
// The default is a pretty console handler on stderr that formats records in a
// human-readable way. The initial level comes from CHUNKMETER_LOG_LEVEL.
package ctxlog
