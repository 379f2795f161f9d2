package tagset

import "sort"

// Diff compares a local tag codebook against the remote tag set and returns
// the two asymmetric differences.
//
// localOnly holds local tags absent from remote (candidates for retirement
// from the codebook); remoteOnly holds remote tags absent from local
// (candidates for addition). Both are sorted ascending by byte value.
// Duplicates in either input collapse: membership, not count, is compared.
// Neither input is modified and no item is touched.
func Diff(localTags, remoteTags []string) (localOnly, remoteOnly []string) {
	local := toSet(localTags)
	remote := toSet(remoteTags)

	localOnly = missingFrom(local, remote)
	remoteOnly = missingFrom(remote, local)
	return localOnly, remoteOnly
}

// missingFrom returns the members of have absent from other, sorted.
func missingFrom(have, other map[string]struct{}) []string {
	out := make([]string, 0, len(have))
	for tag := range have {
		if _, ok := other[tag]; !ok {
			out = append(out, tag)
		}
	}
	sort.Strings(out)
	return out
}

func toSet(tags []string) map[string]struct{} {
	set := make(map[string]struct{}, len(tags))
	for _, t := range tags {
		set[t] = struct{}{}
	}
	return set
}
