// Command skillswapctl manages a single-device SkillSwap session stored in
// the configured backend.
//
// Usage:
//
//	skillswapctl [-config dir] <command> [flags]
//
// Commands: register, login, logout, whoami, browse, stats, reset, seed.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"text/tabwriter"

	"github.com/PrathamSatpute/SkillSwap-Hackthon/internal/config"
	"github.com/PrathamSatpute/SkillSwap-Hackthon/internal/domain"
	"github.com/PrathamSatpute/SkillSwap-Hackthon/internal/repository"
	"github.com/PrathamSatpute/SkillSwap-Hackthon/internal/seed"
	"github.com/PrathamSatpute/SkillSwap-Hackthon/internal/store"
	"github.com/PrathamSatpute/SkillSwap-Hackthon/internal/validation"
)

var errUsage = errors.New("usage: skillswapctl [-config dir] <register|login|logout|whoami|browse|stats|reset|seed> [flags]")

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, out io.Writer) error {
	global := flag.NewFlagSet("skillswapctl", flag.ContinueOnError)
	global.SetOutput(io.Discard)
	configDir := global.String("config", ".", "directory containing config.yml")
	if err := global.Parse(args); err != nil {
		return errUsage
	}
	if global.NArg() == 0 {
		return errUsage
	}

	cfg, err := config.Load(*configDir)
	if err != nil {
		return err
	}
	level, _ := cfg.Level()
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	db, err := repository.Open(ctx, cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	st := store.New(db,
		store.WithLogger(logger),
		store.WithHasher(store.NewBcryptHasher(cfg.BcryptCost)),
	)
	if err := st.Load(ctx); err != nil {
		return fmt.Errorf("load state: %w", err)
	}

	cmd, rest := global.Arg(0), global.Args()[1:]
	switch cmd {
	case "register":
		return register(ctx, st, rest, out)
	case "login":
		return login(ctx, st, rest, out)
	case "logout":
		st.Logout(ctx)
		fmt.Fprintln(out, "logged out")
		return nil
	case "whoami":
		return whoami(st, out)
	case "browse":
		return browse(st, rest, out)
	case "stats":
		return stats(st, out)
	case "reset":
		if err := st.ResetDemoData(ctx); err != nil {
			return err
		}
		fmt.Fprintln(out, "demo data reset")
		return nil
	case "seed":
		return seedUsers(ctx, st, rest, out)
	}
	return fmt.Errorf("unknown command %q\n%w", cmd, errUsage)
}

func register(ctx context.Context, st *store.Store, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("register", flag.ContinueOnError)
	fs.SetOutput(out)
	name := fs.String("name", "", "display name")
	email := fs.String("email", "", "email address")
	password := fs.String("password", "", "password")
	location := fs.String("location", "", "location")
	private := fs.Bool("private", false, "hide the profile from the directory")
	if err := fs.Parse(args); err != nil {
		return err
	}

	form := validation.Registration{
		Name:            validation.SanitizeInput(*name),
		Email:           *email,
		Password:        *password,
		ConfirmPassword: *password,
		Location:        validation.SanitizeInput(*location),
	}
	if err := form.Validate().Err(); err != nil {
		return err
	}

	isPublic := !*private
	ok := st.Register(ctx, domain.UserDraft{
		Name:     form.Name,
		Email:    form.Email,
		Password: form.Password,
		Location: form.Location,
		IsPublic: &isPublic,
	})
	if !ok {
		return domain.ErrDuplicateEmail
	}
	return whoami(st, out)
}

func login(ctx context.Context, st *store.Store, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("login", flag.ContinueOnError)
	fs.SetOutput(out)
	email := fs.String("email", "", "email address")
	password := fs.String("password", "", "password")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if !st.Login(ctx, *email, *password) {
		return errors.New("invalid email or password")
	}
	return whoami(st, out)
}

func whoami(st *store.Store, out io.Writer) error {
	u, ok := st.CurrentUser()
	if !ok {
		fmt.Fprintln(out, "not logged in")
		return nil
	}
	fmt.Fprintf(out, "%s <%s> (%s)\n", u.Name, u.Email, u.Role)
	return nil
}

func browse(st *store.Store, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("browse", flag.ContinueOnError)
	fs.SetOutput(out)
	var q store.DirectoryQuery
	fs.StringVar(&q.Term, "q", "", "search term")
	fs.StringVar(&q.Category, "category", "", "skill category")
	fs.StringVar(&q.Location, "location", "", "location substring")
	fs.StringVar(&q.Availability, "availability", "", "availability slot")
	if err := fs.Parse(args); err != nil {
		return err
	}

	viewer := ""
	if u, ok := st.CurrentUser(); ok {
		viewer = u.ID
	}
	users := st.Directory(viewer, q)

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tLOCATION\tOFFERS\tRATING")
	for _, u := range users {
		offers := make([]string, len(u.SkillsOffered))
		for i, s := range u.SkillsOffered {
			offers[i] = s.Name
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%.1f (%d)\n", u.Name, u.Location, strings.Join(offers, ", "), u.Rating, u.TotalRatings)
	}
	return tw.Flush()
}

func stats(st *store.Store, out io.Writer) error {
	s := st.Stats()
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "active users\t%d\n", s.ActiveUsers)
	fmt.Fprintf(tw, "banned users\t%d\n", s.BannedUsers)
	fmt.Fprintf(tw, "pending swaps\t%d\n", s.PendingSwaps)
	fmt.Fprintf(tw, "accepted swaps\t%d\n", s.AcceptedSwaps)
	fmt.Fprintf(tw, "completed swaps\t%d\n", s.CompletedSwaps)
	fmt.Fprintf(tw, "ratings\t%d\n", s.Ratings)
	fmt.Fprintf(tw, "admin messages\t%d\n", s.AdminMessages)
	return tw.Flush()
}

func seedUsers(ctx context.Context, st *store.Store, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("seed", flag.ContinueOnError)
	fs.SetOutput(out)
	n := fs.Int("n", 10, "number of demo users")
	seedValue := fs.Int64("seed", 0, "random seed, 0 for a random one")
	if err := fs.Parse(args); err != nil {
		return err
	}

	users, err := seed.Users(ctx, st, *n, seed.Options{Seed: *seedValue})
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "seeded %d users (password %s)\n", len(users), seed.DemoPassword)
	return nil
}
