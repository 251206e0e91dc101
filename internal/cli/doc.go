// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli wires configuration, logging, the reference catalog and the
// privileged runner into an enrollment wizard and runs it in the full-screen
// or text front end.
package cli
