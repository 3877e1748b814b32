// pkg/constants/urlpaths.go
package constants

// Маршруты REST API курьерского бэкенда. Сгруппированы по ресурсам,
// чтобы сервисы не собирали строки по всему коду.

const (
	AuthSignIn = "/auth/signin"
	AuthSignUp = "/auth/signup"

	CredentialUpdate  = "/credential/update-credential"
	CredentialLogout  = "/credential/logout"
	CredentialRefresh = "/credential/refresh-token"
)

const (
	UserBase       = "/user"
	UserList       = "/user/all"
	UserListByRole = "/user/role"
	UserSearch     = "/user/search"

	RoleBase = "/user/role"
	RoleList = "/user/role/all"
)

const (
	BranchBase     = "/resource/branch"
	BranchList     = "/resource/branch/all"
	BranchByOffice = "/resource/branch/office"
	BranchSearch   = "/resource/branch/search"

	OfficeBase       = "/resource/office"
	OfficeList       = "/resource/office/all"
	OfficeCreateBase = "/resource/office/base"
	OfficeSearch     = "/resource/office/search"

	ContactBase     = "/resource/contact"
	ContactByPhone  = "/resource/contact/phone"
	ContactByOffice = "/resource/contact/office"
	ContactByBranch = "/resource/contact/branch"
	ContactEnable   = "/resource/contact/enable"
	ContactSearch   = "/resource/contact/search"
)
