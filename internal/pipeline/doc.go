// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

// Package pipeline provides the core building blocks to create and run
// data processing pipelines.
// A pipeline is composed of a source, a transformation and a destination: the
// source table is loaded once per run, transformed in memory, and the result is
// handed to the destination if it supports the required capability.
package pipeline
