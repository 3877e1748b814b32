// pkg/constants/constants.go
package constants

//============== ROLES ==============

// Имена ролей в том виде, в котором их возвращает сервер.
const (
	RoleAdmin   = "ROLE_ADMIN"
	RoleCourier = "ROLE_COURIER"
	RoleClient  = "ROLE_CLIENT"
)

//============== PAGINATION ==============

const (
	DefaultPageSize = 5
)

// PageSizeOptions — допустимые размеры страницы в таблицах.
var PageSizeOptions = []int{5, 10, 25}

//============== SEARCH ==============

// DebounceMillis задаёт тихое окно для поискового ввода.
const DebounceMillis = 500
