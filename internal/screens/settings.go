package screens

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"

	"courier-console/internal/api"
	"courier-console/internal/dto"
	"courier-console/internal/services"
	"courier-console/internal/view"
	"courier-console/pkg/apperrors"
)

// SettingsScreen — профиль текущего пользователя: смена пароля и срок
// действия access-токена. Доступен любой роли.
type SettingsScreen struct {
	auth   *services.AuthService
	client *api.Client
	deps   deps
}

func NewSettingsScreen(auth *services.AuthService, client *api.Client, d deps) *SettingsScreen {
	return &SettingsScreen{
		auth:   auth,
		client: client,
		deps:   d,
	}
}

func (s *SettingsScreen) Render(w io.Writer) {
	fmt.Fprintln(w, color.New(color.Bold, color.FgCyan).Sprint("Settings"))

	a := s.deps.Auth
	fmt.Fprintf(w, "Signed in as: %s <%s>\n", a.FullName, a.Email)
	fmt.Fprintf(w, "Phone: %s\n", a.PhoneNumber)
	fmt.Fprintf(w, "Roles: %s\n", roleNames(a.Roles))

	if expiry, ok := s.client.AccessTokenExpiry(); ok {
		fmt.Fprintf(w, "Access token expires: %s\n", expiry.Format(time.RFC1123))
	} else {
		fmt.Fprintln(w, color.HiBlackString("Access token: not available"))
	}
}

// UpdateCredential — смена пароля с подтверждением нового.
func (s *SettingsScreen) UpdateCredential(ctx context.Context) error {
	form := dto.UpdateCredentialForm{
		OldPassword:     s.deps.Form.PromptSecret("Current password"),
		NewPassword:     s.deps.Form.PromptSecret("New password"),
		ConfirmPassword: s.deps.Form.PromptSecret("Confirm new password"),
	}

	if err := s.deps.Validator.Validate(form); err != nil {
		var invalid *apperrors.InvalidInputError
		if errors.As(err, &invalid) && len(invalid.Fields) > 0 {
			view.RenderFieldErrors(s.deps.Out, invalid.Fields)
			return nil
		}
		return err
	}

	if err := s.auth.UpdateCredential(ctx, form); err != nil {
		s.deps.Notifier.Error("Failed to update password")
		return err
	}
	s.deps.Notifier.Success("Password updated")
	return nil
}
