package types

// Page represents the server pagination envelope. Number is the zero-based
// page index; only Content is ever transformed by adapters, the counters are
// passed through untouched.
type Page[T any] struct {
	Content          []T   `json:"content"`
	TotalElements    int64 `json:"totalElements"`
	TotalPages       int   `json:"totalPages"`
	Size             int   `json:"size"`
	Number           int   `json:"number"`
	NumberOfElements int   `json:"numberOfElements"`
}

// Pagination держит клиентское состояние пагинации контейнера.
type Pagination struct {
	Page       int   `json:"page"`
	Size       int   `json:"size"`
	TotalItems int64 `json:"total_items"`
}
