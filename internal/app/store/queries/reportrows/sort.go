package reportrows

import (
	"sort"
	"strings"
)

// Sort orders rows in place by the requested field and direction. The sort
// is stable and entirely in memory over the already-joined rows.
//
// Recognized fields: name, type, height, createdat, user, org, status.
// Direction is "asc" or "desc"; any unrecognized field/direction pair
// falls back to descending creation time. Rows without a height (zero)
// always sort after rows that have one when sorting by height ascending.
func Sort(rows []Row, field, direction string) {
	field = strings.ToLower(strings.TrimSpace(field))
	direction = strings.ToLower(strings.TrimSpace(direction))

	asc := direction == "asc"
	if direction != "asc" && direction != "desc" {
		field = ""
	}

	var less func(a, b Row) bool
	switch field {
	case "name":
		less = func(a, b Row) bool {
			return strings.ToLower(a.ObstacleName) < strings.ToLower(b.ObstacleName)
		}
	case "type":
		less = func(a, b Row) bool {
			return strings.ToLower(a.ObstacleType) < strings.ToLower(b.ObstacleType)
		}
	case "height":
		sort.SliceStable(rows, func(i, j int) bool {
			return heightLess(rows[i], rows[j], asc)
		})
		return
	case "createdat":
		less = func(a, b Row) bool { return a.CreatedAt.Before(b.CreatedAt) }
	case "user":
		less = func(a, b Row) bool {
			return strings.ToLower(a.UserName) < strings.ToLower(b.UserName)
		}
	case "org":
		less = func(a, b Row) bool {
			return strings.ToLower(a.OrgName) < strings.ToLower(b.OrgName)
		}
	case "status":
		less = func(a, b Row) bool {
			return strings.ToLower(a.StatusName()) < strings.ToLower(b.StatusName())
		}
	default:
		// Unrecognized: newest first.
		sort.SliceStable(rows, func(i, j int) bool {
			return rows[i].CreatedAt.After(rows[j].CreatedAt)
		})
		return
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if asc {
			return less(rows[i], rows[j])
		}
		return less(rows[j], rows[i])
	})
}

// heightLess orders by height with zero (missing) heights always last on
// ascending sorts and first on descending ones, keeping the two groups
// internally ordered by height.
func heightLess(a, b Row, asc bool) bool {
	aMissing := a.Height == 0
	bMissing := b.Height == 0
	if aMissing != bMissing {
		if asc {
			return bMissing
		}
		return aMissing
	}
	if asc {
		return a.Height < b.Height
	}
	return a.Height > b.Height
}
