// Файл: main.go

package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/fatih/color"
	"go.uber.org/zap"

	"courier-console/internal/api"
	"courier-console/internal/container"
	"courier-console/internal/dto"
	"courier-console/internal/export"
	"courier-console/internal/fetch"
	"courier-console/internal/screens"
	"courier-console/internal/services"
	"courier-console/internal/session"
	"courier-console/internal/view"
	"courier-console/pkg/apperrors"
	"courier-console/pkg/config"
	applogger "courier-console/pkg/logger"
	"courier-console/pkg/validation"
)

func main() {
	cfg := config.New()

	logger := applogger.NewLogger(cfg.Log.FilePath)
	defer logger.Sync()

	client, err := api.NewClient(cfg.API.BaseURL, cfg.API.Timeout, logger)
	if err != nil {
		log.Fatalf("не удалось создать API-клиент: %v", err)
	}

	store, err := session.NewStore(cfg.Session.StorageDir, logger)
	if err != nil {
		log.Fatalf("не удалось открыть хранилище сессии: %v", err)
	}

	fetcher := fetch.NewFetcher(logger)

	c := &console{
		cfg:       cfg,
		logger:    logger,
		client:    client,
		fetcher:   fetcher,
		store:     store,
		validator: validation.New(),
		notifier:  view.NewNotifier(os.Stdout, os.Stdin),
		form:      view.NewForm(os.Stdout, os.Stdin),
		exporter:  export.NewExcelExporter(cfg.Export.Dir, logger),
		out:       os.Stdout,

		auth:     services.NewAuthService(client, fetcher, logger),
		users:    services.NewUserService(client, logger),
		offices:  services.NewOfficeService(client, logger),
		branches: services.NewBranchService(client, logger),
		contacts: services.NewContactService(client, logger),
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Восстановление сессии: на диске лежит только id, личность
	// перечитывается с сервера.
	if err := store.Rehydrate(ctx, c.auth.FetchAuthState); err == nil && store.SignedIn() {
		c.buildScreens()
		fmt.Fprintf(c.out, "Welcome back, %s\n", store.Auth().FullName)
	}

	c.run(ctx)
}

//============== КОНСОЛЬ ==============

type console struct {
	cfg       *config.Config
	logger    *zap.Logger
	client    *api.Client
	fetcher   *fetch.Fetcher
	store     *session.Store
	validator *validation.Validator
	notifier  container.Notifier
	form      *view.Form
	exporter  *export.ExcelExporter
	out       io.Writer

	auth     *services.AuthService
	users    *services.UserService
	offices  *services.OfficeService
	branches *services.BranchService
	contacts *services.ContactService

	registry *screens.Registry
	settings *screens.SettingsScreen
	current  screens.Screen
}

// buildScreens пересобирает экраны под роли текущей сессии.
func (c *console) buildScreens() {
	d := screens.Deps(
		c.store.Auth(),
		c.fetcher,
		c.notifier,
		c.validator,
		c.form,
		c.exporter,
		c.out,
		c.cfg.UI.Debounce,
		c.logger,
	)
	c.registry = screens.NewRegistry(
		screens.NewUsersScreen(c.users, c.offices, c.branches, d),
		screens.NewOfficesScreen(c.offices, c.branches, c.contacts, d),
		screens.NewBranchesScreen(c.branches, c.offices, d),
		screens.NewContactsScreen(c.contacts, c.offices, c.branches, d),
	)
	c.settings = screens.NewSettingsScreen(c.auth, c.client, d)
	c.current = nil
}

func (c *console) run(ctx context.Context) {
	fmt.Fprintln(c.out, color.New(color.Bold).Sprint("Courier console. Type 'help' for commands."))

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Fprint(c.out, "> ")
		if !scanner.Scan() {
			return
		}
		if ctx.Err() != nil {
			return
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		command, arg, _ := strings.Cut(line, " ")
		arg = strings.TrimSpace(arg)

		if command == "quit" || command == "exit" {
			c.fetcher.CancelPending()
			return
		}
		if err := c.dispatch(ctx, command, arg); err != nil {
			c.logger.Warn("команда завершилась ошибкой",
				zap.String("command", command), zap.Error(err))
		}
	}
}

func (c *console) dispatch(ctx context.Context, command, arg string) error {
	switch command {
	case "help":
		c.printHelp()
		return nil
	case "login":
		return c.login(ctx)
	case "register":
		return c.register(ctx)
	case "logout":
		return c.logout(ctx)
	}

	if !c.store.SignedIn() {
		c.notifier.Error("Sign in first (login)")
		return nil
	}

	switch command {
	case "screens":
		for _, s := range c.registry.Visible(c.store.Auth()) {
			fmt.Fprintf(c.out, "  %s — %s\n", s.Name(), s.Title())
		}
		return nil
	case "open":
		return c.open(ctx, arg)
	case "settings":
		c.settings.Render(c.out)
		return nil
	case "passwd":
		return c.settings.UpdateCredential(ctx)
	}

	if c.current == nil {
		c.notifier.Error("Open a screen first (open <name>)")
		return nil
	}
	return c.screenCommand(ctx, command, arg)
}

func (c *console) screenCommand(ctx context.Context, command, arg string) error {
	s := c.current
	render := true
	var err error

	// Дозревший поиск применяется здесь, в горутине цикла команд;
	// из таймера дебаунсера контейнер никто не трогает.
	if flushErr := s.FlushSearch(ctx); flushErr != nil {
		c.logger.Warn("отложенный поиск не применился", zap.Error(flushErr))
	}

	switch command {
	case "show":
	case "next":
		err = s.NextPage(ctx)
	case "prev":
		err = s.PrevPage(ctx)
	case "size":
		n, convErr := strconv.Atoi(arg)
		if convErr != nil {
			c.notifier.Error("Usage: size 5|10|25")
			return nil
		}
		err = s.SetPageSize(ctx, n)
	case "search":
		s.Search(arg)
		render = false
	case "filters":
		err = s.OpenFilters(ctx)
	case "nofilters":
		err = s.CloseFilters(ctx)
	case "sort":
		s.Sort(arg)
	case "create":
		err = s.Create(ctx)
	case "edit":
		return c.withID(ctx, arg, s.Edit)
	case "del":
		return c.withID(ctx, arg, s.Delete)
	case "row":
		id, convErr := strconv.ParseInt(arg, 10, 64)
		if convErr != nil {
			c.notifier.Error("Usage: row <id>")
			return nil
		}
		s.ToggleRow(id)
	case "export":
		path, exportErr := s.Export()
		if exportErr != nil {
			c.notifier.Error("Export failed")
			return exportErr
		}
		c.notifier.Success("Exported to " + path)
		return nil
	default:
		c.notifier.Error("Unknown command, type 'help'")
		return nil
	}

	if err != nil {
		return err
	}
	if render {
		s.Render(ctx, c.out)
	}
	return nil
}

func (c *console) withID(ctx context.Context, arg string, fn func(context.Context, int64) error) error {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		c.notifier.Error("Numeric id expected")
		return nil
	}
	if err := fn(ctx, id); err != nil {
		return err
	}
	c.current.Render(ctx, c.out)
	return nil
}

func (c *console) open(ctx context.Context, name string) error {
	s, ok := c.registry.Get(name, c.store.Auth())
	if !ok {
		c.notifier.Error("No such screen or access denied")
		return nil
	}
	if c.current != nil {
		c.current.Stop()
	}
	c.current = s
	if err := s.Open(ctx); err != nil {
		return err
	}
	s.Render(ctx, c.out)
	return nil
}

//============== АУТЕНТИФИКАЦИЯ ==============

func (c *console) login(ctx context.Context) error {
	form := dto.SignInForm{
		Login:    c.form.Prompt("Email or phone", ""),
		Password: c.form.PromptSecret("Password"),
	}
	if err := c.validator.Validate(form); err != nil {
		c.renderValidation(err)
		return nil
	}

	auth, err := c.auth.SignIn(ctx, form)
	if err != nil {
		if errors.Is(err, apperrors.ErrInvalidCredentials) {
			c.notifier.Error("Invalid credentials")
			return nil
		}
		c.notifier.Error("Sign-in failed")
		return err
	}

	if err := c.store.Save(auth); err != nil {
		c.logger.Warn("сессия не сохранена на диск", zap.Error(err))
	}
	c.buildScreens()
	c.notifier.Success("Signed in as " + auth.FullName)
	return nil
}

func (c *console) register(ctx context.Context) error {
	form := dto.SignUpForm{
		Email:           c.form.Prompt("Email", ""),
		Phone:           c.form.Prompt("Phone (+...)", ""),
		Password:        c.form.PromptSecret("Password"),
		ConfirmPassword: c.form.PromptSecret("Confirm password"),
	}
	if err := c.validator.Validate(form); err != nil {
		c.renderValidation(err)
		return nil
	}

	if err := c.auth.SignUp(ctx, form); err != nil {
		c.notifier.Error("Registration failed")
		return err
	}
	c.notifier.Success("Registered, now sign in")
	return nil
}

func (c *console) logout(ctx context.Context) error {
	if !c.store.SignedIn() {
		return nil
	}
	if c.current != nil {
		c.current.Stop()
	}
	if err := c.auth.Logout(ctx); err != nil {
		c.logger.Warn("выход на сервере не удался", zap.Error(err))
	}
	c.store.Clear()
	c.registry = nil
	c.settings = nil
	c.current = nil
	c.notifier.Success("Signed out")
	return nil
}

func (c *console) renderValidation(err error) {
	var invalid *apperrors.InvalidInputError
	if errors.As(err, &invalid) && len(invalid.Fields) > 0 {
		view.RenderFieldErrors(c.out, invalid.Fields)
		return
	}
	c.notifier.Error(err.Error())
}

func (c *console) printHelp() {
	help := `
  login / register / logout   — session
  screens                     — list available screens
  open <name>                 — open screen (users, offices, branches, contacts)
  show                        — redraw current screen
  next / prev / size <n>      — pagination (sizes 5, 10, 25)
  search <text>               — debounced text search; empty text resets
  filters / nofilters         — advanced search panel
  sort <column>               — toggle sort by column key
  create / edit <id> / del <id>
  row <id>                    — expand or collapse a row
  export                      — current page to .xlsx
  settings / passwd           — profile and password
  quit`
	fmt.Fprintln(c.out, strings.TrimPrefix(help, "\n"))
}
