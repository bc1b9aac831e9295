// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package present

// Pages returns how many pages of size limit cover total results. There is
// always at least one page, even when total is zero.
func Pages(total, limit int) int {
	if limit <= 0 || total <= 0 {
		return 1
	}
	return (total + limit - 1) / limit
}

// Offset converts a 1-based page number to a result offset. Pages below 1
// are treated as page 1.
func Offset(page, limit int) int {
	if page < 1 {
		page = 1
	}
	return (page - 1) * limit
}

// Window returns the 1-based numbers of the first and last result shown
// for a page starting at offset. Both are zero when nothing is shown.
func Window(offset, limit, total int) (first, last int) {
	if total <= 0 || offset >= total {
		return 0, 0
	}
	last = offset + limit
	if last > total {
		last = total
	}
	return offset + 1, last
}
