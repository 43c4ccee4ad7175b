// Copyright 2026 LibreShockwave. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package lingo

import "errors"

// Outwardly visible error conditions. These are diagnostic, not thrown
// across opcode boundaries: every opcode handler converts a fault into
// the scope's Error flag plus a Void result before returning to the
// dispatcher.
var (
	ErrStepLimitExceeded = errors.New("Step limit exceeded")
	ErrUnknownHandler    = errors.New("Unknown handler")
	ErrAncestorCycle     = errors.New("ancestor traversal limit exceeded")
)

// AncestorTraversalLimit bounds ScriptInstance.Ancestor walks, guarding
// against cyclic ancestor chains.
const AncestorTraversalLimit = 100

// DefaultStepLimit is the VM-wide instruction dispatch cap, guarding
// against runaway handlers.
const DefaultStepLimit = 10_000_000
