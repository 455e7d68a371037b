package repository

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// pageBounds clamps caller supplied paging values to what Postgres accepts.
func pageBounds(limit, offset int) (int, int) {
	if limit <= 0 || limit > maxPageSize {
		limit = defaultPageSize
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
