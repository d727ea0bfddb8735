package service

const (
	defaultListLimit = 50
	maxListLimit     = 200
)

// clampLimit applies the default page size and caps it.
func clampLimit(limit int) int {
	if limit <= 0 {
		return defaultListLimit
	}
	if limit > maxListLimit {
		return maxListLimit
	}
	return limit
}
