package screens

import (
	"context"
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

// ContactsScreen — контактные лица офисов. Строка раскрывается в список
// филиалов, к которым привязан контакт.
type ContactsScreen struct {
	crudScreen[entities.ContactBase]

	contacts *services.ContactService
	offices  *services.OfficeService
	branches *services.BranchService
}

func NewContactsScreen(
	contacts *services.ContactService,
	offices *services.OfficeService,
	branches *services.BranchService,
	d deps,
) *ContactsScreen {
	s := &ContactsScreen{
		contacts: contacts,
		offices:  offices,
		branches: branches,
	}

	cfg := container.Config[entities.ContactBase]{
		Title:       "Contacts",
		Placeholder: "Search by name or phone",
		Actions: container.Actions{
			GetItems: contacts.GetContacts,
			CreateItem: func(draft any) api.ApiRequest {
				return contacts.CreateContact(draft.(dto.ContactForm))
			},
			UpdateItem: func(id int64, draft any) api.ApiRequest {
				return contacts.UpdateContact(id, draft.(dto.ContactForm))
			},
			DeleteItem:  contacts.DeleteContact,
			SearchItems: contacts.SearchContacts,
			SearchItemsByFilters: func(filters container.Filter, page, size int) api.ApiRequest {
				return contacts.SearchContactsByFilters(filters.(dto.ContactFilter), page, size)
			},
		},
		Adapters: container.Adapters[entities.ContactBase]{
			Item: adapters.ContactBase,
			List: adapters.List[entities.ContactBase],
		},
		Columns: []container.Column[entities.ContactBase]{
			{Key: "fullName", Label: "Full name", Sortable: true},
			{Key: "phoneNumber", Label: "Phone"},
			{Key: "office", Label: "Office", Sortable: true, SortValue: func(c entities.ContactBase) string {
				return c.Office.Name
			}},
		},
		MapItemRow: func(c entities.ContactBase) []string {
			return []string{c.FullName, c.PhoneNumber, c.Office.Name}
		},
		AllowedActions: container.AllowedActions{
			Create: []string{constants.RoleAdmin},
			Update: []string{constants.RoleAdmin},
			Delete: []string{constants.RoleAdmin},
		},
		FormatMessage: func(c entities.ContactBase) string {
			return fmt.Sprintf("Delete contact %q?", c.FullName)
		},
		RowExpandable: func(entities.ContactBase) bool { return true },
		ExpandContent: s.expandContent,
	}

	s.crudScreen = crudScreen[entities.ContactBase]{
		name:      "contacts",
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

func (s *ContactsScreen) Create(ctx context.Context) error {
	s.container.OpenCreateForm()
	return s.submit(ctx, dto.ContactForm{})
}

func (s *ContactsScreen) Edit(ctx context.Context, id int64) error {
	current, ok := s.container.GetItemByID(id)
	if !ok {
		s.deps.Notifier.Error("Contact not found on this page")
		return nil
	}
	s.container.OpenEditForm(id)
	office := current.Office
	return s.submit(ctx, dto.ContactForm{
		ID:          current.ID,
		FullName:    current.FullName,
		PhoneNumber: current.PhoneNumber,
		Office:      &office,
	})
}

func (s *ContactsScreen) submit(ctx context.Context, form dto.ContactForm) error {
	defer func() {
		if s.container.FormOpen() {
			s.container.CloseForm()
		}
	}()

	form.FullName = s.deps.Form.Prompt("Full name", form.FullName)
	form.PhoneNumber = s.deps.Form.Prompt("Phone (+...)", form.PhoneNumber)

	office, err := promptOffice(ctx, s.deps, s.offices, form.Office)
	if err != nil {
		return err
	}
	form.Office = office

	if form.Office != nil {
		available, err := branchesByOffice(ctx, s.deps, s.branches, form.Office.ID)
		if err == nil {
			for _, b := range available {
				fmt.Fprintf(s.deps.Out, "  [%d] %s, %s\n", b.ID, b.City, b.Address)
			}
			for _, rawID := range s.deps.Form.PromptList("Branch ids (comma-separated)", "") {
				for _, b := range available {
					if fmt.Sprint(b.ID) == rawID {
						form.Branches = append(form.Branches, b)
						break
					}
				}
			}
		}
	}

	if !s.validate(form) {
		return nil
	}
	return s.container.SubmitForm(ctx, form)
}

func (s *ContactsScreen) OpenFilters(ctx context.Context) error {
	if err := s.container.ToggleAdvanced(ctx, true); err != nil {
		return err
	}

	form := dto.ContactSearchForm{
		FullName:    s.deps.Form.Prompt("Full name filter", ""),
		PhoneNumber: s.deps.Form.Prompt("Phone filter", ""),
		Address:     s.deps.Form.Prompt("Address filter", ""),
		Cities:      s.deps.Form.PromptList("City filter (comma-separated)", ""),
	}
	if office, err := promptOffice(ctx, s.deps, s.offices, nil); err == nil && office != nil {
		form.Offices = []entities.OfficeBase{*office}
	}

	return s.container.SetFilters(ctx, adapters.ContactFilter(form))
}

// expandContent дотягивает полный контакт с его филиалами.
func (s *ContactsScreen) expandContent(ctx context.Context, id int64) (string, error) {
	response := fetch.CallEndpoint(ctx, s.deps.Fetcher, s.contacts.FindContact(id), adapters.Contact)
	if response.Err != nil {
		return "", response.Err
	}

	contact := response.Data
	if len(contact.Branches) == 0 {
		return "No branches assigned", nil
	}

	var b strings.Builder
	b.WriteString("Branches:")
	for _, br := range contact.Branches {
		fmt.Fprintf(&b, "\n  - %s, %s", br.City, br.Address)
	}
	return b.String(), nil
}
