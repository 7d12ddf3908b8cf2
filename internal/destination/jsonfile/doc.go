// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

// Package jsonfile implements a destination that stores every result it
// receives as an indented JSON document in a file, replacing any previous content.
package jsonfile
