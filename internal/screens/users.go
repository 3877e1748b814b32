package screens

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"courier-console/internal/adapters"
	"courier-console/internal/api"
	"courier-console/internal/container"
	"courier-console/internal/dto"
	"courier-console/internal/entities"
	"courier-console/internal/fetch"
	"courier-console/internal/services"
	"courier-console/internal/view"
	"courier-console/pkg/constants"
)

// UsersScreen — экран пользователей. Доступен только администраторам;
// собственную запись администратора контейнер защищает от правки и
// удаления.
type UsersScreen struct {
	crudScreen[entities.UserAccount]

	users    *services.UserService
	offices  *services.OfficeService
	branches *services.BranchService
}

func NewUsersScreen(
	users *services.UserService,
	offices *services.OfficeService,
	branches *services.BranchService,
	d deps,
) *UsersScreen {
	s := &UsersScreen{
		users:    users,
		offices:  offices,
		branches: branches,
	}

	cfg := container.Config[entities.UserAccount]{
		Title:       "Users",
		Placeholder: "Search by name, email or phone",
		Actions: container.Actions{
			GetItems: users.GetUsers,
			CreateItem: func(draft any) api.ApiRequest {
				return users.CreateUser(draft.(dto.UserForm))
			},
			UpdateItem: func(id int64, draft any) api.ApiRequest {
				return users.UpdateUser(id, draft.(dto.UserForm))
			},
			DeleteItem:  users.DeleteUser,
			SearchItems: users.SearchUsers,
			SearchItemsByFilters: func(filters container.Filter, page, size int) api.ApiRequest {
				return users.SearchUsersByFilters(filters.(dto.UserFilter), page, size)
			},
		},
		Adapters: container.Adapters[entities.UserAccount]{
			Item: adapters.Account,
			List: adapters.List[entities.UserAccount],
		},
		Columns: []container.Column[entities.UserAccount]{
			{Key: "fullName", Label: "Full name", Sortable: true},
			{Key: "email", Label: "Email", Sortable: true},
			{Key: "phoneNumber", Label: "Phone"},
			{Key: "roles", Label: "Roles"},
		},
		MapItemRow: func(u entities.UserAccount) []string {
			return []string{u.FullName, u.Email, u.PhoneNumber, roleNames(u.Roles)}
		},
		AllowedActions: container.AllowedActions{
			Create: []string{constants.RoleAdmin},
			Update: []string{constants.RoleAdmin},
			Delete: []string{constants.RoleAdmin},
		},
		FormatMessage: func(u entities.UserAccount) string {
			return fmt.Sprintf("Delete user %q?", u.FullName)
		},
		// Раскрываются только клиенты: у них есть офис и филиалы.
		RowExpandable: func(u entities.UserAccount) bool { return u.IsClient() },
		ExpandContent: s.expandContent,
	}

	s.crudScreen = crudScreen[entities.UserAccount]{
		name:      "users",
		roles:     []string{constants.RoleAdmin},
		container: container.New(cfg, d.Auth, d.Fetcher, d.Notifier, d.Logger),
		deps:      d,
	}
	s.table = view.NewTable(s.container)
	s.search = view.NewSearchBox(d.Debounce, func(ctx context.Context, q string) error {
		return s.container.SetQuery(ctx, q)
	})
	return s
}

//============== ФОРМА ==============

func (s *UsersScreen) Create(ctx context.Context) error {
	s.container.OpenCreateForm()
	return s.submit(ctx, dto.UserForm{})
}

func (s *UsersScreen) Edit(ctx context.Context, id int64) error {
	current, ok := s.container.GetItemByID(id)
	if !ok {
		s.deps.Notifier.Error("User not found on this page")
		return nil
	}
	s.container.OpenEditForm(id)
	return s.submit(ctx, dto.UserForm{
		ID:          current.ID,
		FullName:    current.FullName,
		Email:       current.Email,
		PhoneNumber: current.PhoneNumber,
		Roles:       current.Roles,
		Office:      current.Office,
		Branches:    current.Branches,
	})
}

// submit собирает форму построчно, валидирует и отдает контейнеру.
func (s *UsersScreen) submit(ctx context.Context, form dto.UserForm) error {
	defer func() {
		if s.container.FormOpen() {
			s.container.CloseForm()
		}
	}()

	form.FullName = s.deps.Form.Prompt("Full name", form.FullName)
	form.Email = s.deps.Form.Prompt("Email", form.Email)
	form.PhoneNumber = s.deps.Form.Prompt("Phone (+...)", form.PhoneNumber)

	roles, err := s.promptRoles(ctx, form.Roles)
	if err != nil {
		return err
	}
	form.Roles = roles

	if form.HasClientRole() {
		office, branches, err := s.promptClientFields(ctx, form.Office, form.Branches)
		if err != nil {
			return err
		}
		form.Office, form.Branches = office, branches
	} else {
		form.Office, form.Branches = nil, nil
	}

	if !s.validate(form) {
		return nil
	}
	return s.container.SubmitForm(ctx, form)
}

// promptRoles показывает справочник ролей и принимает короткие имена
// через запятую (admin,courier,client).
func (s *UsersScreen) promptRoles(ctx context.Context, current []entities.Role) ([]entities.Role, error) {
	response := fetch.CallEndpoint(ctx, s.deps.Fetcher, s.users.GetRoles(), func(raw json.RawMessage) ([]entities.Role, error) {
		result, err := adapters.List(raw, adapters.Role)
		return result.Items, err
	})
	if response.Err != nil {
		s.deps.Notifier.Error("Failed to load roles")
		return nil, response.Err
	}

	available := response.Data
	fmt.Fprintf(s.deps.Out, "Roles: %s\n", roleNames(available))

	names := s.deps.Form.PromptList("Assign roles (comma-separated)", roleNames(current))
	if len(names) == 0 {
		return current, nil
	}

	var picked []entities.Role
	for _, name := range names {
		for _, role := range available {
			if strings.EqualFold(role.ShortName(), name) || strings.EqualFold(role.Name, name) {
				picked = append(picked, role)
				break
			}
		}
	}
	return picked, nil
}

// promptClientFields — офис и филиалы для роли клиента.
func (s *UsersScreen) promptClientFields(ctx context.Context, office *entities.OfficeBase, branches []entities.BranchBase) (*entities.OfficeBase, []entities.BranchBase, error) {
	picked, err := promptOffice(ctx, s.deps, s.offices, office)
	if err != nil || picked == nil {
		return office, branches, err
	}

	available, err := branchesByOffice(ctx, s.deps, s.branches, picked.ID)
	if err != nil {
		return picked, nil, err
	}
	for _, b := range available {
		fmt.Fprintf(s.deps.Out, "  [%d] %s, %s\n", b.ID, b.City, b.Address)
	}
	ids := s.deps.Form.PromptList("Branch ids (comma-separated)", joinBranchIDs(branches))

	var selected []entities.BranchBase
	for _, rawID := range ids {
		for _, b := range available {
			if fmt.Sprint(b.ID) == rawID {
				selected = append(selected, b)
				break
			}
		}
	}
	return picked, selected, nil
}

//============== ФИЛЬТРЫ ==============

func (s *UsersScreen) OpenFilters(ctx context.Context) error {
	if err := s.container.ToggleAdvanced(ctx, true); err != nil {
		return err
	}

	form := dto.UserSearchForm{
		FullName:    s.deps.Form.Prompt("Full name filter", ""),
		Email:       s.deps.Form.Prompt("Email filter", ""),
		PhoneNumber: s.deps.Form.Prompt("Phone filter", ""),
		Address:     s.deps.Form.Prompt("Address filter", ""),
	}
	for _, name := range s.deps.Form.PromptList("Role filter (comma-separated)", "") {
		form.SelectedRoles = append(form.SelectedRoles, entities.Role{Name: qualifiedRole(name)})
	}

	return s.container.SetFilters(ctx, adapters.UserFilter(form))
}

//============== ДЕТАЛИ СТРОКИ ==============

// expandContent дотягивает полную запись: в списке офис и филиалы
// клиента могут быть не заполнены.
func (s *UsersScreen) expandContent(ctx context.Context, id int64) (string, error) {
	response := fetch.CallEndpoint(ctx, s.deps.Fetcher, s.users.FindUser(id), adapters.Account)
	if response.Err != nil {
		return "", response.Err
	}

	account := response.Data
	if !account.IsClient() {
		return "", nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Office: %s\n", account.Office.Name)
	fmt.Fprintf(&b, "Branches:")
	for _, br := range account.Branches {
		fmt.Fprintf(&b, "\n  - %s, %s", br.City, br.Address)
	}
	return b.String(), nil
}

//============== ХЕЛПЕРЫ ==============

func roleNames(roles []entities.Role) string {
	names := make([]string, 0, len(roles))
	for _, r := range roles {
		names = append(names, r.ShortName())
	}
	return strings.Join(names, ",")
}

func qualifiedRole(short string) string {
	upper := strings.ToUpper(strings.TrimSpace(short))
	if strings.HasPrefix(upper, "ROLE_") {
		return upper
	}
	return "ROLE_" + upper
}

func joinBranchIDs(branches []entities.BranchBase) string {
	ids := make([]string, 0, len(branches))
	for _, b := range branches {
		ids = append(ids, fmt.Sprint(b.ID))
	}
	return strings.Join(ids, ",")
}
