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

//============== ОФИСЫ ==============

// OfficesScreen — офисы со счётчиками филиалов и контактов. Смотреть
// могут администраторы и курьеры, менять — только администраторы.
type OfficesScreen struct {
	crudScreen[entities.OfficePage]

	offices  *services.OfficeService
	branches *services.BranchService
	contacts *services.ContactService
}

func NewOfficesScreen(
	offices *services.OfficeService,
	branches *services.BranchService,
	contacts *services.ContactService,
	d deps,
) *OfficesScreen {
	s := &OfficesScreen{
		offices:  offices,
		branches: branches,
		contacts: contacts,
	}

	cfg := container.Config[entities.OfficePage]{
		Title:       "Offices",
		Placeholder: "Search by office name",
		Actions: container.Actions{
			GetItems: offices.GetOffices,
			CreateItem: func(draft any) api.ApiRequest {
				return offices.CreateOffice(draft.(dto.OfficeForm))
			},
			UpdateItem: func(id int64, draft any) api.ApiRequest {
				return offices.UpdateOffice(id, draft.(dto.OfficeForm))
			},
			DeleteItem:  offices.DeleteOffice,
			SearchItems: offices.SearchOffices,
			// Расширенного поиска у офисов нет.
		},
		Adapters: container.Adapters[entities.OfficePage]{
			Item: adapters.OfficePage,
			List: adapters.List[entities.OfficePage],
		},
		Columns: []container.Column[entities.OfficePage]{
			{Key: "name", Label: "Name", Sortable: true},
			{Key: "branches", Label: "Branches"},
			{Key: "contacts", Label: "Contacts"},
		},
		MapItemRow: func(o entities.OfficePage) []string {
			return []string{o.Name, fmt.Sprint(o.CountBranches), fmt.Sprint(o.CountContacts)}
		},
		AllowedActions: container.AllowedActions{
			Create: []string{constants.RoleAdmin},
			Update: []string{constants.RoleAdmin},
			Delete: []string{constants.RoleAdmin},
		},
		FormatMessage: func(o entities.OfficePage) string {
			return fmt.Sprintf("Delete office %q with all its branches?", o.Name)
		},
		RowExpandable: func(o entities.OfficePage) bool {
			return o.CountBranches > 0 || o.CountContacts > 0
		},
		ExpandContent: s.expandContent,
	}

	s.crudScreen = crudScreen[entities.OfficePage]{
		name:      "offices",
		roles:     []string{constants.RoleAdmin, constants.RoleCourier},
		container: container.New(cfg, d.Auth, d.Fetcher, d.Notifier, d.Logger),
		deps:      d,
	}
	s.table = view.NewTable(s.container)
	s.search = view.NewSearchBox(d.Debounce, func(ctx context.Context, q string) error {
		return s.container.SetQuery(ctx, q)
	})
	return s
}

func (s *OfficesScreen) Create(ctx context.Context) error {
	s.container.OpenCreateForm()
	return s.submit(ctx, dto.OfficeForm{})
}

func (s *OfficesScreen) Edit(ctx context.Context, id int64) error {
	current, ok := s.container.GetItemByID(id)
	if !ok {
		s.deps.Notifier.Error("Office not found on this page")
		return nil
	}
	s.container.OpenEditForm(id)
	return s.submit(ctx, dto.OfficeForm{ID: current.ID, Name: current.Name})
}

func (s *OfficesScreen) submit(ctx context.Context, form dto.OfficeForm) error {
	defer func() {
		if s.container.FormOpen() {
			s.container.CloseForm()
		}
	}()

	form.Name = s.deps.Form.Prompt("Office name", form.Name)

	// Филиалы можно завести сразу; формат: "Город - Адрес" через точку
	// с запятой. Пустой ввод создаёт офис без филиалов.
	for _, raw := range s.deps.Form.PromptList("Branches (City - Address; ...)", "") {
		city, address, ok := strings.Cut(raw, "-")
		if !ok {
			continue
		}
		form.Branches = append(form.Branches, entities.BranchBase{
			City:    strings.TrimSpace(city),
			Address: strings.TrimSpace(address),
		})
	}

	if !s.validate(form) {
		return nil
	}
	return s.container.SubmitForm(ctx, form)
}

// У офисов нет панели фильтров — открытие просто сообщает об этом.
func (s *OfficesScreen) OpenFilters(context.Context) error {
	s.deps.Notifier.Error("Offices have no advanced search")
	return nil
}

// expandContent показывает филиалы и контакты офиса.
func (s *OfficesScreen) expandContent(ctx context.Context, id int64) (string, error) {
	branchList, err := branchesByOffice(ctx, s.deps, s.branches, id)
	if err != nil {
		return "", err
	}

	contactsResp := fetch.CallEndpoint(ctx, s.deps.Fetcher, s.contacts.GetContactsByOffice(id), func(raw json.RawMessage) ([]entities.ContactBase, error) {
		result, err := adapters.List(raw, adapters.ContactBase)
		return result.Items, err
	})
	if contactsResp.Err != nil {
		return "", contactsResp.Err
	}

	var b strings.Builder
	b.WriteString("Branches:")
	for _, br := range branchList {
		fmt.Fprintf(&b, "\n  - %s, %s", br.City, br.Address)
	}
	b.WriteString("\nContacts:")
	for _, c := range contactsResp.Data {
		fmt.Fprintf(&b, "\n  - %s (%s)", c.FullName, c.PhoneNumber)
	}
	return b.String(), nil
}

//============== ФИЛИАЛЫ ==============

// BranchesScreen — филиалы с привязкой к офису и расширенным поиском.
type BranchesScreen struct {
	crudScreen[entities.Branch]

	branches *services.BranchService
	offices  *services.OfficeService
}

func NewBranchesScreen(
	branches *services.BranchService,
	offices *services.OfficeService,
	d deps,
) *BranchesScreen {
	s := &BranchesScreen{
		branches: branches,
		offices:  offices,
	}

	cfg := container.Config[entities.Branch]{
		Title:       "Branches",
		Placeholder: "Search by city or address",
		Actions: container.Actions{
			GetItems: branches.GetBranches,
			CreateItem: func(draft any) api.ApiRequest {
				return branches.CreateBranch(draft.(dto.BranchForm))
			},
			UpdateItem: func(id int64, draft any) api.ApiRequest {
				return branches.UpdateBranch(id, draft.(dto.BranchForm))
			},
			DeleteItem:  branches.DeleteBranch,
			SearchItems: branches.SearchBranches,
			SearchItemsByFilters: func(filters container.Filter, page, size int) api.ApiRequest {
				return branches.SearchBranchesByFilters(filters.(dto.BranchFilter), page, size)
			},
		},
		Adapters: container.Adapters[entities.Branch]{
			Item: adapters.Branch,
			List: adapters.List[entities.Branch],
		},
		Columns: []container.Column[entities.Branch]{
			{Key: "city", Label: "City", Sortable: true},
			{Key: "address", Label: "Address", Sortable: true},
			{Key: "office", Label: "Office", Sortable: true, SortValue: func(b entities.Branch) string {
				return b.Office.Name
			}},
		},
		MapItemRow: func(b entities.Branch) []string {
			return []string{b.City, b.Address, b.Office.Name}
		},
		AllowedActions: container.AllowedActions{
			Create: []string{constants.RoleAdmin},
			Update: []string{constants.RoleAdmin},
			Delete: []string{constants.RoleAdmin},
		},
		FormatMessage: func(b entities.Branch) string {
			return fmt.Sprintf("Delete branch %s, %s?", b.City, b.Address)
		},
	}

	s.crudScreen = crudScreen[entities.Branch]{
		name:      "branches",
		roles:     []string{constants.RoleAdmin, constants.RoleCourier},
		container: container.New(cfg, d.Auth, d.Fetcher, d.Notifier, d.Logger),
		deps:      d,
	}
	s.table = view.NewTable(s.container)
	s.search = view.NewSearchBox(d.Debounce, func(ctx context.Context, q string) error {
		return s.container.SetQuery(ctx, q)
	})
	return s
}

func (s *BranchesScreen) Create(ctx context.Context) error {
	s.container.OpenCreateForm()
	return s.submit(ctx, dto.BranchForm{})
}

func (s *BranchesScreen) Edit(ctx context.Context, id int64) error {
	current, ok := s.container.GetItemByID(id)
	if !ok {
		s.deps.Notifier.Error("Branch not found on this page")
		return nil
	}
	s.container.OpenEditForm(id)
	office := current.Office
	return s.submit(ctx, dto.BranchForm{
		ID:      current.ID,
		City:    current.City,
		Address: current.Address,
		Office:  &office,
	})
}

func (s *BranchesScreen) submit(ctx context.Context, form dto.BranchForm) error {
	defer func() {
		if s.container.FormOpen() {
			s.container.CloseForm()
		}
	}()

	form.City = s.deps.Form.Prompt("City", form.City)
	form.Address = s.deps.Form.Prompt("Address", form.Address)

	office, err := promptOffice(ctx, s.deps, s.offices, form.Office)
	if err != nil {
		return err
	}
	form.Office = office

	if !s.validate(form) {
		return nil
	}
	return s.container.SubmitForm(ctx, form)
}

func (s *BranchesScreen) OpenFilters(ctx context.Context) error {
	if err := s.container.ToggleAdvanced(ctx, true); err != nil {
		return err
	}

	form := dto.BranchSearchForm{
		Address: s.deps.Form.Prompt("Address filter", ""),
		Cities:  s.deps.Form.PromptList("City filter (comma-separated)", ""),
	}
	if office, err := promptOffice(ctx, s.deps, s.offices, nil); err == nil && office != nil {
		form.Offices = []entities.OfficeBase{*office}
	}

	return s.container.SetFilters(ctx, adapters.BranchFilter(form))
}

//============== ОБЩИЕ СПРАВОЧНИКИ ==============

// promptOffice показывает полный справочник офисов и принимает id.
// Пустой ввод оставляет current.
func promptOffice(ctx context.Context, d deps, offices *services.OfficeService, current *entities.OfficeBase) (*entities.OfficeBase, error) {
	response := fetch.CallEndpoint(ctx, d.Fetcher, offices.GetOfficeList(), func(raw json.RawMessage) ([]entities.OfficeBase, error) {
		result, err := adapters.List(raw, adapters.OfficeBase)
		return result.Items, err
	})
	if response.Err != nil {
		d.Notifier.Error("Failed to load offices")
		return current, response.Err
	}

	for _, o := range response.Data {
		fmt.Fprintf(d.Out, "  [%d] %s\n", o.ID, o.Name)
	}

	currentID := ""
	if current != nil {
		currentID = fmt.Sprint(current.ID)
	}
	raw := d.Form.Prompt("Office id", currentID)
	for _, o := range response.Data {
		if fmt.Sprint(o.ID) == raw {
			picked := o
			return &picked, nil
		}
	}
	return current, nil
}

func branchesByOffice(ctx context.Context, d deps, branches *services.BranchService, officeID int64) ([]entities.BranchBase, error) {
	response := fetch.CallEndpoint(ctx, d.Fetcher, branches.GetBranchesByOffice(officeID), func(raw json.RawMessage) ([]entities.BranchBase, error) {
		result, err := adapters.List(raw, adapters.BranchBase)
		return result.Items, err
	})
	return response.Data, response.Err
}
