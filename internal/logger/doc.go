// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

// Package logger wraps hclog behind the small Logger interface used by cardiostat.
// Loggers travel through context.Context so every pipeline stage logs with the
// same level, name and run identifier.
package logger
