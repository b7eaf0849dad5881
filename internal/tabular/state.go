package tabular

// SortSpec names a sort column and direction. An empty Field means
// "leave the rows in input order".
type SortSpec struct {
	Field     string `json:"field"`
	Direction string `json:"direction"`
}

// QueryState is the mutable view state driving one administrative
// collection: keyword search, exact-match field filters, sort, and
// pagination. Whenever the keyword, the filters, or the page size
// change, the current page is clamped back to 1 because the result
// set cardinality changes underneath the pager.
type QueryState struct {
	Keyword  string            `json:"keyword"`
	Filters  map[string]string `json:"filters"`
	Sort     SortSpec          `json:"sort"`
	Page     int               `json:"page"`
	PageSize int               `json:"page_size"`
}

// NewQueryState returns a state on page 1 with the given page size.
func NewQueryState(pageSize int) *QueryState {
	if pageSize < 1 {
		pageSize = 10
	}
	return &QueryState{
		Filters:  make(map[string]string),
		Page:     1,
		PageSize: pageSize,
	}
}

// SetKeyword updates the search keyword and resets to the first page.
func (s *QueryState) SetKeyword(keyword string) {
	s.Keyword = keyword
	s.Page = 1
}

// SetFilter updates one exact-match filter and resets to the first
// page. An empty value removes the filter.
func (s *QueryState) SetFilter(field, value string) {
	if s.Filters == nil {
		s.Filters = make(map[string]string)
	}
	if value == "" {
		delete(s.Filters, field)
	} else {
		s.Filters[field] = value
	}
	s.Page = 1
}

// SetPageSize updates the page size and resets to the first page.
func (s *QueryState) SetPageSize(size int) {
	if size < 1 {
		size = 1
	}
	s.PageSize = size
	s.Page = 1
}

// ToggleSort cycles the sort for a column: first click sorts
// ascending, a second click on the same column flips the direction.
func (s *QueryState) ToggleSort(field string) {
	if s.Sort.Field == field {
		if s.Sort.Direction == Asc {
			s.Sort.Direction = Desc
		} else {
			s.Sort.Direction = Asc
		}
		return
	}
	s.Sort = SortSpec{Field: field, Direction: Asc}
}

// Apply runs the full pipeline for this state over rows: exact
// filters, then keyword filter over searchFields, then sort, then
// pagination. It returns the page rows and the filtered total.
func (s *QueryState) Apply(rows []Row, searchFields []string) ([]Row, int) {
	out := rows
	for field, value := range s.Filters {
		out = FilterExact(out, field, value)
	}
	out = Filter(out, s.Keyword, searchFields)
	out = Sort(out, s.Sort.Field, s.Sort.Direction)
	return Paginate(out, s.Page, s.PageSize)
}
