package paging

import "strings"

// DefaultPageBudget is the per-page character budget used by PackPages.
// It leaves headroom under Telegram's 4096-character message limit for
// page headers added later.
const DefaultPageBudget = 4000

// PackPages greedily packs items into pages joined with newlines so that
// no page exceeds budget characters (counted in runes, including the
// joining newlines). Item order is preserved and items are never split:
// an item longer than the budget gets a page of its own. Empty input
// yields no pages.
func PackPages(items []string, budget int) []string {
	if budget <= 0 {
		budget = DefaultPageBudget
	}

	var (
		pages   []string
		current strings.Builder
		used    int
	)

	flush := func() {
		if used > 0 {
			pages = append(pages, current.String())
			current.Reset()
			used = 0
		}
	}

	for _, item := range items {
		if item == "" {
			continue
		}
		length := len([]rune(item))

		switch {
		case used == 0 && length >= budget:
			pages = append(pages, item)
		case used == 0:
			current.WriteString(item)
			used = length
		case used+1+length <= budget:
			current.WriteString("\n")
			current.WriteString(item)
			used += 1 + length
		default:
			flush()
			if length >= budget {
				pages = append(pages, item)
			} else {
				current.WriteString(item)
				used = length
			}
		}
	}
	flush()

	return pages
}
