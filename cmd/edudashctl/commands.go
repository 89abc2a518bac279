package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/FACorreiaa/go-edudash/internal/app/domain/auth"
	"github.com/FACorreiaa/go-edudash/internal/app/domain/layout"
	"github.com/FACorreiaa/go-edudash/internal/app/models"
	"github.com/FACorreiaa/go-edudash/internal/pkg/apiclient"
	"github.com/FACorreiaa/go-edudash/internal/pkg/config"
	"github.com/FACorreiaa/go-edudash/internal/pkg/logger"
	"github.com/FACorreiaa/go-edudash/internal/pkg/session"
)

const usage = `Usage: edudashctl [global flags] <command> [flags]

Commands:
  login      --email --password     sign in and keep the session
  signup     --name --email --password [--role]
  logout                             forget the session
  status                             show who is signed in
  dashboard  [--role] [--json]       print a role's dashboard

Global flags:
`

type app struct {
	cfg    *config.Config
	out    io.Writer
	logger *zap.Logger
	store  *session.FileStore
	api    *apiclient.Client
	gate   *auth.Gate
	auth   auth.AuthService
}

func run(ctx context.Context, args []string, out, errOut io.Writer) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	global := pflag.NewFlagSet("edudashctl", pflag.ContinueOnError)
	global.SetOutput(errOut)
	global.SetInterspersed(false)
	sessionFile := global.String("session-file", cfg.Session.FilePath, "where the session is kept")
	apiURL := global.String("api", cfg.API.BaseURL, "backend base URL")
	logLevel := global.String("log-level", "warn", "log level written to stderr")
	global.Usage = func() {
		fmt.Fprint(errOut, usage)
		global.PrintDefaults()
	}
	if err := global.Parse(args); err != nil {
		return err
	}
	rest := global.Args()
	if len(rest) == 0 {
		global.Usage()
		return errors.New("no command given")
	}

	cfg.API.BaseURL = strings.TrimRight(*apiURL, "/")
	if err := cfg.Validate(); err != nil {
		return err
	}
	l, err := logger.New(logger.ParseLevel(*logLevel), "stderr")
	if err != nil {
		return err
	}
	defer func() { _ = l.Sync() }()

	a := &app{cfg: cfg, out: out, logger: l}
	a.store = session.NewFileStore(*sessionFile, l)
	a.api = apiclient.New(cfg.API, l).WithTokens(session.Tokens(a.store))
	a.gate = auth.NewGate(auth.NewDecoder(cfg.Auth.JWTSecret), l)
	a.auth = auth.NewAuthService(a.api, cfg.Signup.DefaultInstitutionID, l)

	name, cmdArgs := rest[0], rest[1:]
	switch name {
	case "login":
		return a.login(ctx, cmdArgs, errOut)
	case "signup":
		return a.signup(ctx, cmdArgs, errOut)
	case "logout":
		return a.logout(ctx)
	case "status":
		return a.status(ctx)
	case "dashboard":
		return a.dashboard(ctx, cmdArgs, errOut)
	default:
		global.Usage()
		return fmt.Errorf("unknown command %q", name)
	}
}

func (a *app) login(ctx context.Context, args []string, errOut io.Writer) error {
	fs := pflag.NewFlagSet("login", pflag.ContinueOnError)
	fs.SetOutput(errOut)
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "account password")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *email == "" || *password == "" {
		return errors.New("email and password are required")
	}

	role, err := a.auth.Login(ctx, a.store, *email, *password)
	if err != nil {
		return errors.New(apiclient.Describe(err, "Failed to log in. Please check your credentials."))
	}
	fmt.Fprintf(a.out, "Logged in as %s (%s). Session saved to %s\n", *email, role, a.store.Path())
	return nil
}

func (a *app) signup(ctx context.Context, args []string, errOut io.Writer) error {
	fs := pflag.NewFlagSet("signup", pflag.ContinueOnError)
	fs.SetOutput(errOut)
	var in auth.SignupInput
	fs.StringVar(&in.FullName, "name", "", "full name")
	fs.StringVar(&in.Email, "email", "", "account email")
	fs.StringVar(&in.Password, "password", "", "account password")
	fs.StringVar(&in.Role, "role", string(models.RoleStudent), "student, teacher, institution or admin")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if in.FullName == "" || in.Email == "" || in.Password == "" {
		return errors.New("name, email and password are required")
	}

	if err := a.auth.Signup(ctx, in); err != nil {
		return errors.New(apiclient.Describe(err, "Failed to sign up. Please try again."))
	}
	fmt.Fprintln(a.out, "Account created successfully! Please log in.")
	return nil
}

func (a *app) logout(ctx context.Context) error {
	if err := a.auth.Logout(ctx, a.store); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Logged out.")
	return nil
}

func (a *app) status(ctx context.Context) error {
	stored := a.store.Read()
	if stored.Token == "" {
		fmt.Fprintln(a.out, "Not logged in.")
		return nil
	}
	d := a.gate.Check(ctx, a.store, stored.Role)
	switch d.Outcome {
	case auth.Authorized:
		exp := d.Claims.ExpiresAt.Time
		fmt.Fprintf(a.out, "Logged in as %s, token expires %s (in %s).\n",
			d.Role, exp.Format(time.RFC3339), time.Until(exp).Round(time.Second))
	case auth.Expired:
		fmt.Fprintln(a.out, "Session expired. Log in again.")
	default:
		fmt.Fprintf(a.out, "Session unusable (%s). Log in again.\n", d.Outcome)
	}
	return nil
}

func (a *app) dashboard(ctx context.Context, args []string, errOut io.Writer) error {
	fs := pflag.NewFlagSet("dashboard", pflag.ContinueOnError)
	fs.SetOutput(errOut)
	roleFlag := fs.String("role", "", "dashboard to open; defaults to the signed-in role")
	asJSON := fs.Bool("json", false, "print the raw payload")
	if err := fs.Parse(args); err != nil {
		return err
	}

	role := a.store.Read().Role
	if *roleFlag != "" {
		r, ok := models.ParseRole(*roleFlag)
		if !ok {
			return fmt.Errorf("unknown role %q", *roleFlag)
		}
		role = r
	}
	if role == "" {
		return errors.New("not logged in")
	}

	d := a.gate.Check(ctx, a.store, role)
	switch d.Outcome {
	case auth.Authorized:
	case auth.RoleMismatch:
		return fmt.Errorf("signed in as %s, cannot open the %s dashboard", d.Role, role)
	case auth.Expired:
		return errors.New("session expired, log in again")
	default:
		return errors.New("not logged in")
	}

	o := layout.New(layout.WithLogger(a.logger))
	defer o.Unmount()
	view := o.Mount(ctx, role, a.api)
	view, err := o.Await(ctx, view.Generation)
	if err != nil {
		return err
	}
	if view.Status == layout.StatusFailed {
		return errors.New(view.Message())
	}

	if *asJSON {
		enc := json.NewEncoder(a.out)
		enc.SetIndent("", "  ")
		return enc.Encode(view.Payload)
	}
	printView(a.out, view)
	return nil
}

func printView(out io.Writer, view layout.View) {
	p := view.Profile
	fmt.Fprintf(out, "Hello, %s!\n", view.UserName)
	fmt.Fprintf(out, "%s · %s · %s\n\n", p.Name, p.Details, p.Institution)

	if keys := view.Payload.KPIKeys(); len(keys) > 0 {
		tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
		for _, key := range keys {
			if v, ok := view.Payload.KPI(key); ok {
				fmt.Fprintf(tw, "%s\t%s\n", models.HumanizeKey(key), v)
			}
		}
		_ = tw.Flush()
		fmt.Fprintln(out)
	}
	if insight := view.Payload.Insight(); insight != "" {
		fmt.Fprintf(out, "Insight: %s\n", insight)
	}
}
