// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package witness

import "fmt"

// accessTracker records which of the nodes of a proof have been dereferenced
// while resolving values. A node that remains untouched across the lifetime
// of a checker is either waste or an attempted resource-exhaustion attack,
// and the final audit reports it.
type accessTracker struct {
	accessed []bool
	sealed   bool
}

func newAccessTracker(size int) *accessTracker {
	return &accessTracker{accessed: make([]bool, size)}
}

func (t *accessTracker) markAccessed(index int) {
	t.accessed[index] = true
}

// ensureNoUnused checks that every tracked node has been accessed at least
// once. The check is one-shot: it seals the tracker, and repeated calls
// report ErrAlreadyFinalized.
func (t *accessTracker) ensureNoUnused() error {
	if t.sealed {
		return ErrAlreadyFinalized
	}
	t.sealed = true
	for index, accessed := range t.accessed {
		if !accessed {
			return fmt.Errorf("%w: node %d never accessed", ErrUnusedNode, index)
		}
	}
	return nil
}
