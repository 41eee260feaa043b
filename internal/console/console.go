// Package console is a line-oriented front end for the home builder wizard
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"sync"

	"buildmyhome/internal/model"
	"buildmyhome/internal/plans"
	"buildmyhome/internal/wizard"
)

// API is the part of the server API the console talks to directly
type API interface {
	SubmitInquiry(ctx context.Context, req model.InquiryRequest) (*model.Inquiry, error)
	SimilarPackages(ctx context.Context, cfg model.HomeConfiguration, limit int) ([]model.Package, error)
}

// Console reads commands and drives a wizard
type Console struct {
	wiz  *wizard.Wizard
	book *plans.Book
	api  API

	mu        sync.Mutex
	out       io.Writer
	lastShown int64
}

// New creates a console writing to out. api may be nil when running offline.
func New(w *wizard.Wizard, book *plans.Book, api API, out io.Writer) *Console {
	c := &Console{wiz: w, book: book, api: api, out: out}
	c.lastShown = w.State().Config.EstimatedCostRupees
	w.Watch(c.onChange)
	return c
}

// onChange prints each newly applied estimate
func (c *Console) onChange(st wizard.State) {
	if st.Pending {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if st.Config.EstimatedCostRupees == c.lastShown {
		return
	}
	c.lastShown = st.Config.EstimatedCostRupees
	fmt.Fprintf(c.out, "💰 Estimated cost: %s\n", FormatRupees(st.Config.EstimatedCostRupees))
}

func (c *Console) printf(format string, args ...interface{}) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintf(c.out, format, args...)
}

// Run executes commands from in until EOF or quit
func (c *Console) Run(ctx context.Context, in io.Reader) error {
	c.printf("🏠 Custom home builder. Type 'help' for commands.\n")
	c.show()

	scanner := bufio.NewScanner(in)
	for {
		c.printf("%s> ", c.wiz.State().Step)
		if !scanner.Scan() {
			c.printf("\n")
			return scanner.Err()
		}
		if quit := c.Exec(ctx, scanner.Text()); quit {
			return nil
		}
	}
}

// Exec runs one command line and reports whether the user asked to quit
func (c *Console) Exec(ctx context.Context, line string) bool {
	args := splitArgs(strings.TrimSpace(line))
	if len(args) == 0 {
		return false
	}

	switch cmd, rest := strings.ToLower(args[0]), args[1:]; cmd {
	case "quit", "exit":
		return true
	case "help":
		c.help()
	case "show":
		c.show()
	case "set":
		c.set(rest)
	case "material":
		c.material(rest)
	case "appliance":
		c.appliance(rest)
	case "next":
		c.next()
	case "back":
		if err := c.wiz.Back(); err != nil {
			c.printf("⚠️  %v\n", err)
			return false
		}
		c.show()
	case "fresh":
		if err := c.wiz.StartFresh(); err != nil {
			c.printf("⚠️  %v\n", err)
			return false
		}
		c.mu.Lock()
		c.lastShown = c.wiz.State().Config.EstimatedCostRupees
		c.mu.Unlock()
		c.printf("🧹 Started fresh\n")
		c.show()
	case "save":
		c.save(ctx)
	case "submit":
		c.submit(ctx, rest)
	case "similar":
		c.similar(ctx)
	default:
		c.printf("Unknown command %q. Type 'help' for commands.\n", cmd)
	}
	return false
}

func (c *Console) help() {
	c.printf(`Commands:
  show                         current step, selections and estimate
  set <field> <value>          fields: %s
  material <category> <id>     categories: flooring walls kitchen bathroom doors windows ("none" clears)
  appliance <id> on|off        toggle an appliance
  next | back                  move between steps
  fresh                        discard everything and start over
  save                         save this plan
  similar                      stock packages close to this plan
  submit name=.. phone=.. [email=..] location=.. [requirements=..]
  quit
`, strings.Join(fieldNames(), " "))
}

func (c *Console) show() {
	st := c.wiz.State()
	cfg := st.Config

	var b strings.Builder
	fmt.Fprintf(&b, "── Step %d/5: %s ──\n", int(st.Step)+1, st.Step)
	fmt.Fprintf(&b, "  Land %d sq ft · %d floor(s) · %d bed · %d bath · %s", cfg.LandAreaSqFt, cfg.Floors, cfg.Bedrooms, cfg.Bathrooms, cfg.HouseType)
	if cfg.BudgetRange != "" {
		fmt.Fprintf(&b, " · budget %s lakhs", cfg.BudgetRange)
	}
	b.WriteString("\n")
	if cfg.Design != nil {
		fmt.Fprintf(&b, "  Design: %s plan, %s ceiling, %s windows\n", cfg.Design.FloorPlan, cfg.Design.CeilingHeight, cfg.Design.WindowStyle)
	}
	if len(cfg.Materials) > 0 {
		cats := make([]string, 0, len(cfg.Materials))
		for cat, id := range cfg.Materials {
			if id != "" {
				cats = append(cats, fmt.Sprintf("%s=%s", cat, id))
			}
		}
		sort.Strings(cats)
		fmt.Fprintf(&b, "  Materials: %s\n", strings.Join(cats, ", "))
	}
	if cfg.InteriorType != "" {
		fmt.Fprintf(&b, "  Interior: %s", cfg.InteriorType)
		if cfg.Interiors != nil {
			fmt.Fprintf(&b, ", lighting %d", cfg.Interiors.LightingQuality)
			if len(cfg.Interiors.Appliances) > 0 {
				fmt.Fprintf(&b, ", appliances %s", strings.Join(cfg.Interiors.Appliances, " "))
			}
		}
		b.WriteString("\n")
	}
	fmt.Fprintf(&b, "  Estimated cost: %s", FormatRupees(cfg.EstimatedCostRupees))
	if st.Pending {
		b.WriteString(" (updating)")
	}
	b.WriteString("\n")
	if err := c.wiz.CanAdvance(); err != nil && !errors.Is(err, wizard.ErrTerminalStep) {
		fmt.Fprintf(&b, "  Next is disabled: %v\n", err)
	}

	c.printf("%s", b.String())
}

func (c *Console) set(args []string) {
	if len(args) != 2 {
		c.printf("usage: set <field> <value>\n")
		return
	}
	f, ok := fields[strings.ToLower(args[0])]
	if !ok {
		c.printf("Unknown field %q. Fields: %s\n", args[0], strings.Join(fieldNames(), " "))
		return
	}
	apply, err := f(args[1])
	if err != nil {
		c.printf("⚠️  %s %v\n", args[0], err)
		return
	}
	_ = c.wiz.Update(apply)
}

func (c *Console) material(args []string) {
	if len(args) != 2 {
		c.printf("usage: material <category> <id>\n")
		return
	}
	cat := model.MaterialCategory(strings.ToLower(args[0]))
	if err := model.Validator().Var(string(cat), "oneof=flooring walls kitchen bathroom doors windows"); err != nil {
		c.printf("⚠️  unknown material category %q\n", args[0])
		return
	}
	id := args[1]
	_ = c.wiz.Update(func(cfg *model.HomeConfiguration) {
		if cfg.Materials == nil {
			cfg.Materials = model.Materials{}
		}
		if strings.EqualFold(id, "none") {
			delete(cfg.Materials, cat)
			return
		}
		cfg.Materials[cat] = id
	})
}

func (c *Console) appliance(args []string) {
	if len(args) != 2 || (args[1] != "on" && args[1] != "off") {
		c.printf("usage: appliance <id> on|off\n")
		return
	}
	id, on := args[0], args[1] == "on"
	_ = c.wiz.Update(func(cfg *model.HomeConfiguration) {
		if cfg.Interiors == nil {
			cfg.Interiors = &model.Interiors{LightingQuality: 1}
		}
		has := cfg.Interiors.HasAppliance(id)
		switch {
		case on && !has:
			cfg.Interiors.Appliances = append(cfg.Interiors.Appliances, id)
		case !on && has:
			kept := cfg.Interiors.Appliances[:0:0]
			for _, a := range cfg.Interiors.Appliances {
				if a != id {
					kept = append(kept, a)
				}
			}
			cfg.Interiors.Appliances = kept
		}
	})
}

func (c *Console) next() {
	if err := c.wiz.Next(); err != nil {
		if errors.Is(err, wizard.ErrTerminalStep) {
			c.printf("This is the last step. Use 'save' or 'submit'.\n")
			return
		}
		c.printf("⚠️  Can't continue yet: %v\n", err)
		return
	}
	c.show()
}

func (c *Console) save(ctx context.Context) {
	if c.book == nil {
		c.printf("⚠️  Saved plans are not available\n")
		return
	}
	c.wiz.Wait()
	cfg := c.wiz.State().Config
	notice, err := c.book.Save(ctx, model.SavedPlanEntry{CustomPackage: &cfg})
	if err != nil {
		c.printf("⚠️  Could not save plan: %v\n", err)
		return
	}
	c.printf("⭐ %s\n", notice)
}

// submit validates the contact details inline, then sends them with the
// current configuration attached. Failures leave the wizard untouched.
func (c *Console) submit(ctx context.Context, args []string) {
	if st := c.wiz.State(); st.Step != wizard.Summary {
		c.printf("Submit is available on the summary step (currently %s).\n", st.Step)
		return
	}

	req := model.InquiryRequest{}
	for _, a := range args {
		k, v, ok := strings.Cut(a, "=")
		if !ok {
			c.printf("⚠️  expected key=value, got %q\n", a)
			return
		}
		switch strings.ToLower(k) {
		case "name":
			req.FullName = v
		case "phone":
			req.PhoneNumber = v
		case "email":
			req.Email = v
		case "location":
			req.Location = v
		case "requirements":
			req.Requirements = v
		default:
			c.printf("⚠️  unknown field %q\n", k)
			return
		}
	}

	if errs := req.Validate(); len(errs) > 0 {
		names := make([]string, 0, len(errs))
		for f := range errs {
			names = append(names, f)
		}
		sort.Strings(names)
		for _, f := range names {
			c.printf("  ✖ %s %s\n", f, errs[f])
		}
		return
	}

	if c.api == nil {
		c.printf("✖ Could not send your inquiry: no server configured. Your details are kept; try again with --api.\n")
		return
	}

	c.wiz.Wait()
	cfg := c.wiz.State().Config
	req.CustomPackage = &cfg

	inquiry, err := c.api.SubmitInquiry(ctx, req)
	if err != nil {
		c.printf("✖ Could not send your inquiry: %v. Your details are kept; try again.\n", err)
		return
	}
	c.printf("✅ Thank you, %s! Inquiry #%d received with your %s plan.\n",
		inquiry.FullName, inquiry.ID, FormatRupees(cfg.EstimatedCostRupees))
}

func (c *Console) similar(ctx context.Context) {
	if c.api == nil {
		c.printf("⚠️  Similar packages need a server (--api)\n")
		return
	}
	cfg := c.wiz.State().Config
	packages, err := c.api.SimilarPackages(ctx, cfg, 3)
	if err != nil {
		c.printf("⚠️  Could not load similar packages: %v\n", err)
		return
	}
	if len(packages) == 0 {
		c.printf("No similar packages.\n")
		return
	}
	for _, p := range packages {
		c.printf("  #%d %s · %d sq ft · %dBHK · %s · %s\n", p.ID, p.Name, p.SizeSqFt, p.Bedrooms, p.Style, FormatRupees(p.PriceRupees))
	}
}

type fieldSetter func(value string) (func(*model.HomeConfiguration), error)

var fields = map[string]fieldSetter{
	"land":      intField("min=100", func(cfg *model.HomeConfiguration, n int) { cfg.LandAreaSqFt = n }),
	"floors":    intField("min=1,max=10", func(cfg *model.HomeConfiguration, n int) { cfg.Floors = n }),
	"bedrooms":  intField("min=1", func(cfg *model.HomeConfiguration, n int) { cfg.Bedrooms = n }),
	"bathrooms": intField("min=1", func(cfg *model.HomeConfiguration, n int) { cfg.Bathrooms = n }),
	"lighting": intField("min=1,max=3", func(cfg *model.HomeConfiguration, n int) {
		if cfg.Interiors == nil {
			cfg.Interiors = &model.Interiors{Appliances: []string{}}
		}
		cfg.Interiors.LightingQuality = n
	}),
	"type": enumField("oneof=modern traditional contemporary minimalist", func(cfg *model.HomeConfiguration, v string) {
		cfg.HouseType = model.HouseType(v)
	}),
	"budget": enumField("oneof=15-20 20-30 30-50 50-75 75-100 100+", func(cfg *model.HomeConfiguration, v string) {
		cfg.BudgetRange = model.BudgetRange(v)
	}),
	"interior": enumField("oneof=basic premium luxury", func(cfg *model.HomeConfiguration, v string) {
		cfg.InteriorType = model.InteriorType(v)
	}),
	"plan": enumField("oneof=open traditional hybrid", func(cfg *model.HomeConfiguration, v string) {
		design(cfg).FloorPlan = model.FloorPlan(v)
	}),
	"ceiling": enumField("oneof=standard high vaulted", func(cfg *model.HomeConfiguration, v string) {
		design(cfg).CeilingHeight = model.CeilingHeight(v)
	}),
	"windows": enumField("oneof=standard large panoramic", func(cfg *model.HomeConfiguration, v string) {
		design(cfg).WindowStyle = model.WindowStyle(v)
	}),
}

func fieldNames() []string {
	names := make([]string, 0, len(fields))
	for n := range fields {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

func design(cfg *model.HomeConfiguration) *model.Design {
	if cfg.Design == nil {
		cfg.Design = &model.Design{}
	}
	return cfg.Design
}

func intField(rule string, set func(*model.HomeConfiguration, int)) fieldSetter {
	return func(value string) (func(*model.HomeConfiguration), error) {
		n, err := strconv.Atoi(value)
		if err != nil {
			return nil, fmt.Errorf("must be a whole number")
		}
		if err := model.Validator().Var(n, rule); err != nil {
			return nil, fmt.Errorf("must satisfy %s", strings.ReplaceAll(rule, ",", " "))
		}
		return func(cfg *model.HomeConfiguration) { set(cfg, n) }, nil
	}
}

func enumField(rule string, set func(*model.HomeConfiguration, string)) fieldSetter {
	return func(value string) (func(*model.HomeConfiguration), error) {
		v := strings.ToLower(value)
		if err := model.Validator().Var(v, rule); err != nil {
			return nil, fmt.Errorf("must be one of: %s", strings.TrimPrefix(rule, "oneof="))
		}
		return func(cfg *model.HomeConfiguration) { set(cfg, v) }, nil
	}
}
