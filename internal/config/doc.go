// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

// Package config loads the ambient configuration of the tool from the
// environment and the job files executed by the run command.
package config
