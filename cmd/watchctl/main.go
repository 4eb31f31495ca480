// watchctl is a terminal front end for the stock watchlist backend. It wires
// the session store, the API client, and the domain services together and
// maps their typed failures onto user-facing messages.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/joho/godotenv"

	"github.com/stockwatch/stockwatch-go/internal/api"
	"github.com/stockwatch/stockwatch-go/internal/config"
	"github.com/stockwatch/stockwatch-go/internal/crypto"
	"github.com/stockwatch/stockwatch-go/internal/model"
	"github.com/stockwatch/stockwatch-go/internal/service"
	"github.com/stockwatch/stockwatch-go/internal/session"
	"github.com/stockwatch/stockwatch-go/pkg/logger"
)

func main() {
	logger.Init(false)

	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file found, using environment variables")
	}

	cfg := config.Load()

	store, err := session.OpenSQLiteStore(cfg.SessionPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "cannot open session store:", err)
		os.Exit(1)
	}
	defer store.Close()

	client := api.New(cfg.APIBaseURL, store,
		api.WithTimeout(cfg.HTTPTimeout),
		api.WithRateLimit(cfg.RateLimit, cfg.RateBurst),
	)

	app := &app{
		auth:      service.NewAuthService(client, store),
		watchlist: service.NewWatchlistService(client),
		alerts:    service.NewAlertService(client),
		trending:  service.NewTrendingService(),
		store:     store,
	}

	store.OnClear(func() {
		slog.Debug("session cleared")
	})

	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	if err := app.run(context.Background(), os.Args[1], os.Args[2:]); err != nil {
		fmt.Fprintln(os.Stderr, userMessage(err))
		os.Exit(1)
	}
}

type app struct {
	auth      *service.AuthService
	watchlist *service.WatchlistService
	alerts    *service.AlertService
	trending  *service.TrendingService
	store     session.Store
}

func (a *app) run(ctx context.Context, command string, args []string) error {
	switch command {
	case "login":
		return a.runLogin(ctx, args)
	case "register":
		return a.runRegister(ctx, args)
	case "logout":
		return a.auth.Logout()
	case "whoami":
		return a.runWhoami()
	case "list":
		return a.runList(ctx)
	case "add":
		return a.runAdd(ctx, args)
	case "update":
		return a.runUpdate(ctx, args)
	case "remove":
		return a.runRemove(ctx, args)
	case "alerts":
		return a.runAlerts(ctx, args)
	case "read":
		return a.runMarkRead(ctx, args)
	case "trending":
		return a.runTrending(args)
	case "help", "-h", "--help":
		usage()
		return nil
	default:
		usage()
		return fmt.Errorf("unknown command %q", command)
	}
}

func (a *app) runLogin(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("login", flag.ExitOnError)
	username := fs.String("username", "", "account username")
	password := fs.String("password", "", "account password")
	fs.Parse(args)

	if *username == "" || *password == "" {
		return errors.New("login requires -username and -password")
	}

	resp, err := a.auth.Login(ctx, *username, *password)
	if err != nil {
		return err
	}

	fmt.Printf("logged in as %s <%s>\n", resp.Username, resp.Email)
	return nil
}

func (a *app) runRegister(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("register", flag.ExitOnError)
	username := fs.String("username", "", "desired username")
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "account password")
	fs.Parse(args)

	if *username == "" || *email == "" || *password == "" {
		return errors.New("register requires -username, -email and -password")
	}

	resp, err := a.auth.Register(ctx, *username, *email, *password)
	if err != nil {
		return err
	}

	fmt.Printf("registered and logged in as %s <%s>\n", resp.Username, resp.Email)
	return nil
}

func (a *app) runWhoami() error {
	user, ok := a.auth.CurrentUser()
	if !ok {
		fmt.Println("not logged in")
		return nil
	}

	fmt.Printf("%s <%s>\n", user.Username, user.Email)

	if sess, ok := a.store.Load(); ok {
		if expiry, err := crypto.TokenExpiry(sess.Token); err == nil {
			fmt.Printf("session valid until %s\n", expiry.Local().Format("2006-01-02 15:04"))
		}
	}
	return nil
}

func (a *app) runList(ctx context.Context) error {
	stocks, err := a.watchlist.List(ctx)
	if err != nil {
		return err
	}

	if len(stocks) == 0 {
		fmt.Println("watchlist is empty")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 2, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSYMBOL\tMIN\tMAX\tACTIVE\tADDED")
	for _, s := range stocks {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%v\t%s\n",
			s.ID, s.Symbol, priceOrDash(s.MinPrice), priceOrDash(s.MaxPrice),
			s.Active, s.CreatedAt.Local().Format("2006-01-02"))
	}
	return w.Flush()
}

func (a *app) runAdd(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("add", flag.ExitOnError)
	symbol := fs.String("symbol", "", "ticker symbol")
	min := fs.Float64("min", 0, "minimum price threshold")
	max := fs.Float64("max", 0, "maximum price threshold")
	fs.Parse(args)

	if *symbol == "" {
		return errors.New("add requires -symbol")
	}

	req := model.WatchedStockRequest{
		Symbol:   strings.ToUpper(*symbol),
		MinPrice: optionalPrice(fs, "min", *min),
		MaxPrice: optionalPrice(fs, "max", *max),
	}

	stock, err := a.watchlist.Add(ctx, req)
	if err != nil {
		return err
	}

	fmt.Printf("watching %s (id %d)\n", stock.Symbol, stock.ID)
	return nil
}

func (a *app) runUpdate(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("update", flag.ExitOnError)
	id := fs.Int64("id", 0, "watchlist entry id")
	min := fs.Float64("min", 0, "minimum price threshold")
	max := fs.Float64("max", 0, "maximum price threshold")
	fs.Parse(args)

	if *id == 0 {
		return errors.New("update requires -id")
	}

	req := model.WatchedStockRequest{
		MinPrice: optionalPrice(fs, "min", *min),
		MaxPrice: optionalPrice(fs, "max", *max),
	}

	stock, err := a.watchlist.Update(ctx, *id, req)
	if err != nil {
		return err
	}

	fmt.Printf("updated %s: min %s, max %s\n",
		stock.Symbol, priceOrDash(stock.MinPrice), priceOrDash(stock.MaxPrice))
	return nil
}

func (a *app) runRemove(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("remove", flag.ExitOnError)
	id := fs.Int64("id", 0, "watchlist entry id")
	fs.Parse(args)

	if *id == 0 {
		return errors.New("remove requires -id")
	}

	if err := a.watchlist.Remove(ctx, *id); err != nil {
		return err
	}

	fmt.Println("removed")
	return nil
}

func (a *app) runAlerts(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("alerts", flag.ExitOnError)
	unreadOnly := fs.Bool("unread", false, "show only unread alerts")
	page := fs.Int("page", service.DefaultAlertPage, "page number")
	size := fs.Int("size", service.DefaultAlertSize, "page size")
	fs.Parse(args)

	var (
		alerts []model.Alert
		err    error
	)
	if *unreadOnly {
		alerts, err = a.alerts.ListUnread(ctx)
	} else {
		alerts, err = a.alerts.List(ctx, *page, *size)
	}
	if err != nil {
		return err
	}

	// The badge count fails soft: a zero here never blocks the listing.
	fmt.Printf("unread alerts: %d\n\n", a.alerts.UnreadCount(ctx))

	if len(alerts) == 0 {
		fmt.Println("no alerts")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 2, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSYMBOL\tPRICE\tTHRESHOLD\tTYPE\tWHEN\tREAD")
	for _, al := range alerts {
		fmt.Fprintf(w, "%d\t%s\t%.2f\t%.2f\t%s\t%s\t%v\n",
			al.ID, al.Symbol, al.CurrentPrice, al.ThresholdPrice,
			alertTypeLabel(al.AlertType), al.TriggeredAt.Local().Format("2006-01-02 15:04"), al.Read)
	}
	return w.Flush()
}

func (a *app) runMarkRead(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("read", flag.ExitOnError)
	idList := fs.String("ids", "", "comma-separated alert ids")
	fs.Parse(args)

	if *idList == "" {
		return errors.New("read requires -ids, e.g. -ids 1,2,3")
	}

	var ids []int64
	for _, part := range strings.Split(*idList, ",") {
		id, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64)
		if err != nil {
			return fmt.Errorf("invalid alert id %q", part)
		}
		ids = append(ids, id)
	}

	if err := a.alerts.MarkAsRead(ctx, ids); err != nil {
		return err
	}

	fmt.Printf("marked %d alert(s) read\n", len(ids))
	return nil
}

func (a *app) runTrending(args []string) error {
	fs := flag.NewFlagSet("trending", flag.ExitOnError)
	category := fs.String("category", "all", "filter by category")
	fs.Parse(args)

	stocks := a.trending.List(*category)
	if len(stocks) == 0 {
		fmt.Println("no trending stocks in this category")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 2, 4, 2, ' ', 0)
	fmt.Fprintln(w, "SYMBOL\tNAME\tPRICE\tCHANGE\tCAP\tCATEGORY")
	for _, s := range stocks {
		fmt.Fprintf(w, "%s\t%s\t%.2f\t%+.2f%%\t%s\t%s\n",
			s.Symbol, s.Name, s.Price, s.ChangePercent, s.MarketCap, s.Category)
	}
	return w.Flush()
}

// optionalPrice returns a pointer only when the flag was passed explicitly,
// so an omitted threshold stays unset instead of becoming zero.
func optionalPrice(fs *flag.FlagSet, name string, value float64) *float64 {
	passed := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == name {
			passed = true
		}
	})
	if !passed {
		return nil
	}
	return &value
}

func priceOrDash(p *float64) string {
	if p == nil {
		return "-"
	}
	return strconv.FormatFloat(*p, 'f', 2, 64)
}

func alertTypeLabel(t model.AlertType) string {
	switch t {
	case model.AlertMinPriceExceeded:
		return "below min"
	case model.AlertMaxPriceExceeded:
		return "above max"
	default:
		return string(t)
	}
}

// userMessage turns the typed failures from the service layer into the static
// messages shown to the user.
func userMessage(err error) string {
	switch {
	case errors.Is(err, api.ErrUnauthenticated):
		return "Your session has expired. Please login again."
	case errors.Is(err, service.ErrInvalidCredentials):
		return "Invalid username or password."
	case errors.Is(err, service.ErrRegistrationFailed):
		return "Registration failed. The username or email may already be taken."
	case errors.Is(err, api.ErrNotFound):
		return "No such entry."
	case errors.Is(err, api.ErrConflict):
		return "That symbol is already on your watchlist."
	case errors.Is(err, api.ErrNetwork):
		return "Cannot reach the server. Is the backend running?"
	default:
		return err.Error()
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage: watchctl <command> [flags]

commands:
  register  -username -email -password   create an account and login
  login     -username -password          login and store the session
  logout                                 discard the stored session
  whoami                                 show the logged-in user
  list                                   show the watchlist
  add       -symbol [-min] [-max]        watch a symbol
  update    -id [-min] [-max]            change thresholds
  remove    -id                          stop watching
  alerts    [-unread] [-page] [-size]    show alerts
  read      -ids 1,2,3                   mark alerts read
  trending  [-category]                  show trending stocks`)
}
