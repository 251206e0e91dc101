// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

//go:build !(darwin || linux || freebsd)

package privileged

import "errors"

var errNoMemoryLock = errors.New("memory locking not supported on this platform")

func lockMemory([]byte) error { return errNoMemoryLock }

func unlockMemory([]byte) error { return nil }
