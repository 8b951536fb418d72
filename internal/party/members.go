package party

import "cmp"

// MemberDiff classifies identities between two member lists.
type MemberDiff struct {
	Added         []Identity
	Removed       []Identity
	OnlineChanged []Identity
}

// Empty reports whether both lists describe the same members and flags.
func (d MemberDiff) Empty() bool {
	return len(d.Added) == 0 && len(d.Removed) == 0 && len(d.OnlineChanged) == 0
}

// DiffMembers compares two member lists sorted by identity in a single pass.
func DiffMembers(prev, next []Member) MemberDiff {
	var d MemberDiff
	mergeSorted(prev, next, func(m Member) Identity { return m.Identity }, func(a, b *Member) {
		switch {
		case a == nil:
			d.Added = append(d.Added, b.Identity)
		case b == nil:
			d.Removed = append(d.Removed, a.Identity)
		case a.Online != b.Online:
			d.OnlineChanged = append(d.OnlineChanged, a.Identity)
		}
	})
	return d
}

// diffKeys compares two sorted, duplicate-free key lists.
func diffKeys[K cmp.Ordered](prev, next []K) (added, removed []K) {
	mergeSorted(prev, next, func(k K) K { return k }, func(a, b *K) {
		switch {
		case a == nil:
			added = append(added, *b)
		case b == nil:
			removed = append(removed, *a)
		}
	})
	return added, removed
}

// mergeSorted walks a and b, both sorted ascending by key, and calls visit
// once per distinct key with the entry from each side, nil when absent.
func mergeSorted[T any, K cmp.Ordered](a, b []T, key func(T) K, visit func(x, y *T)) {
	i, j := 0, 0
	for i < len(a) || j < len(b) {
		switch {
		case j >= len(b):
			visit(&a[i], nil)
			i++
		case i >= len(a):
			visit(nil, &b[j])
			j++
		default:
			ka, kb := key(a[i]), key(b[j])
			switch {
			case ka < kb:
				visit(&a[i], nil)
				i++
			case kb < ka:
				visit(nil, &b[j])
				j++
			default:
				visit(&a[i], &b[j])
				i++
				j++
			}
		}
	}
}
