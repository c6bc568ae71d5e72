package ui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/javiermolinar/satchel/internal/item"
)

var errAmbiguousID = errors.New("ambiguous item id")

// findItem resolves an exact id or a unique id prefix.
func findItem(items []item.Item, ref string) (item.Item, error) {
	if i := item.Find(items, ref); i >= 0 {
		return items[i], nil
	}

	var matches []item.Item
	for _, it := range items {
		if strings.HasPrefix(it.ID, ref) {
			matches = append(matches, it)
		}
	}

	switch len(matches) {
	case 0:
		return item.Item{}, fmt.Errorf("%w: %q", item.ErrNotFound, ref)
	case 1:
		return matches[0], nil
	default:
		ids := make([]string, len(matches))
		for i, m := range matches {
			ids[i] = m.ID
		}
		return item.Item{}, fmt.Errorf("%w %q matches %s", errAmbiguousID, ref, strings.Join(ids, ", "))
	}
}
