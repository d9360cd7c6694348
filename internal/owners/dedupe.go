// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package owners

// Bucket accumulates the owners of one date key, keeping only the first
// occurrence of each identity key.
type Bucket struct {
	owners []Owner
	seen   map[string]struct{}
}

// NewBucket returns an empty bucket.
func NewBucket() *Bucket {
	return &Bucket{seen: make(map[string]struct{})}
}

// Add appends o unless an owner with the same identity key is already present.
// It reports whether o was kept.
func (b *Bucket) Add(o Owner) bool {
	key := o.IdentityKey()
	if _, dup := b.seen[key]; dup {
		return false
	}
	b.seen[key] = struct{}{}
	b.owners = append(b.owners, o)
	return true
}

// Len returns the number of distinct owners.
func (b *Bucket) Len() int { return len(b.owners) }

// Owners returns a copy of the retained owners in insertion order.
func (b *Bucket) Owners() []Owner {
	out := make([]Owner, len(b.owners))
	copy(out, b.owners)
	return out
}

// Dedupe returns in with later duplicates removed. Order is preserved.
func Dedupe(in []Owner) []Owner {
	b := NewBucket()
	for _, o := range in {
		b.Add(o)
	}
	return b.Owners()
}
