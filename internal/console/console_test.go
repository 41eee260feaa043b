package console

import (
	"bytes"
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"

	"buildmyhome/internal/model"
	"buildmyhome/internal/plans"
	"buildmyhome/internal/session"
	"buildmyhome/internal/wizard"
)

type fakeAPI struct {
	err      error
	received []model.InquiryRequest
}

func (f *fakeAPI) SubmitInquiry(ctx context.Context, req model.InquiryRequest) (*model.Inquiry, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.received = append(f.received, req)
	return &model.Inquiry{ID: 7, FullName: req.FullName}, nil
}

func (f *fakeAPI) SimilarPackages(ctx context.Context, cfg model.HomeConfiguration, limit int) ([]model.Package, error) {
	return []model.Package{{ID: 1, Name: "Modern 2BHK Villa", SizeSqFt: 1200, Bedrooms: 2, Style: "modern", PriceRupees: 2500000}}, nil
}

func newConsole(t *testing.T, api API) (*Console, *wizard.Wizard, *plans.Book, *bytes.Buffer) {
	t.Helper()
	store := session.NewMemoryStore()
	w := wizard.New(wizard.Options{Store: store})
	t.Cleanup(w.Close)
	book, err := plans.Open(store, nil)
	if err != nil {
		t.Fatalf("plans.Open: %v", err)
	}
	out := &bytes.Buffer{}
	return New(w, book, api, out), w, book, out
}

func run(c *Console, lines ...string) {
	for _, l := range lines {
		c.Exec(context.Background(), l)
	}
}

func TestFormatRupees(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{0, "₹0"},
		{999, "₹999"},
		{1000, "₹1,000"},
		{100000, "₹1,00,000"},
		{2200000, "₹22,00,000"},
		{3993000, "₹39,93,000"},
		{123456789, "₹12,34,56,789"},
		{-5000, "-₹5,000"},
	}
	for _, tt := range tests {
		if got := FormatRupees(tt.in); got != tt.want {
			t.Errorf("FormatRupees(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSplitArgs(t *testing.T) {
	got := splitArgs(`submit name="Asha Rao" phone=9876543210  location=Pune`)
	want := []string{"submit", "name=Asha Rao", "phone=9876543210", "location=Pune"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("splitArgs = %q, want %q", got, want)
	}
}

func TestExec_SetUpdatesEstimate(t *testing.T) {
	c, w, _, out := newConsole(t, nil)

	run(c, "set land 1500")

	if got := w.State().Config.EstimatedCostRupees; got != 3300000 {
		t.Errorf("estimate = %d, want 3300000", got)
	}
	if !strings.Contains(out.String(), "₹33,00,000") {
		t.Errorf("output missing new estimate:\n%s", out.String())
	}
}

func TestExec_SetRejectsInvalidValues(t *testing.T) {
	c, w, _, out := newConsole(t, nil)
	before := w.State().Config

	run(c, "set floors 11", "set land abc", "set type castle", "set color blue")

	if !reflect.DeepEqual(w.State().Config, before) {
		t.Errorf("config changed after invalid input")
	}
	for _, want := range []string{"floors must satisfy", "land must be a whole number", "type must be one of", "Unknown field"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("output missing %q:\n%s", want, out.String())
		}
	}
}

func TestExec_WalkToSummary(t *testing.T) {
	c, w, _, out := newConsole(t, nil)

	run(c, "next", "next", "next")
	if got := w.State().Step; got != wizard.Materials {
		t.Fatalf("step = %s, want materials", got)
	}
	if !strings.Contains(out.String(), "Can't continue yet") {
		t.Errorf("expected precondition message:\n%s", out.String())
	}

	run(c,
		"material flooring 1",
		"material walls 5",
		"material kitchen 3",
		"material bathroom 4",
		"material doors 6",
		"next",
		"set interior premium",
		"appliance ac on",
		"next",
	)
	st := w.State()
	if st.Step != wizard.Summary {
		t.Fatalf("step = %s, want summary", st.Step)
	}
	// 1000 * 2000 * 1.1 * 1.2 * 1.25
	if st.Config.EstimatedCostRupees != 3300000 {
		t.Errorf("estimate = %d, want 3300000", st.Config.EstimatedCostRupees)
	}
	if !st.Config.Interiors.HasAppliance("ac") {
		t.Errorf("appliance not recorded")
	}

	run(c, "appliance ac off", "material flooring none")
	st = w.State()
	if st.Config.Interiors.HasAppliance("ac") {
		t.Errorf("appliance still set")
	}
	if _, ok := st.Config.Materials[model.CategoryFlooring]; ok {
		t.Errorf("flooring still selected")
	}
}

func TestExec_Submit(t *testing.T) {
	api := &fakeAPI{}
	c, w, _, out := newConsole(t, api)

	run(c, `submit name="Asha Rao" phone=9876543210 location=Pune`)
	if len(api.received) != 0 {
		t.Fatalf("submitted before summary")
	}

	run(c,
		"next", "next",
		"material flooring 1", "material walls 5", "material kitchen 3", "material bathroom 4", "material doors 6",
		"next", "next",
	)
	if w.State().Step != wizard.Summary {
		t.Fatalf("did not reach summary")
	}

	out.Reset()
	run(c, `submit name=A phone=123 location=Pune`)
	if len(api.received) != 0 {
		t.Fatalf("invalid inquiry was sent")
	}
	if !strings.Contains(out.String(), "fullName") || !strings.Contains(out.String(), "phoneNumber") {
		t.Errorf("missing field errors:\n%s", out.String())
	}

	run(c, `submit name="Asha Rao" phone=9876543210 location=Pune requirements="corner plot"`)
	if len(api.received) != 1 {
		t.Fatalf("received %d inquiries, want 1", len(api.received))
	}
	got := api.received[0]
	if got.FullName != "Asha Rao" || got.Requirements != "corner plot" {
		t.Errorf("request = %+v", got)
	}
	if got.CustomPackage == nil || got.CustomPackage.EstimatedCostRupees != w.State().Config.EstimatedCostRupees {
		t.Errorf("configuration not attached: %+v", got.CustomPackage)
	}
	if !strings.Contains(out.String(), "Inquiry #7") {
		t.Errorf("missing confirmation:\n%s", out.String())
	}
}

func TestExec_SubmitFailureKeepsState(t *testing.T) {
	api := &fakeAPI{err: errors.New("connection refused")}
	c, w, _, out := newConsole(t, api)
	run(c,
		"next", "next",
		"material flooring 1", "material walls 5", "material kitchen 3", "material bathroom 4", "material doors 6",
		"next", "next",
	)
	before := w.State()

	run(c, `submit name="Asha Rao" phone=9876543210 location=Pune`)

	if !strings.Contains(out.String(), "Could not send your inquiry") {
		t.Errorf("missing failure notice:\n%s", out.String())
	}
	if !reflect.DeepEqual(w.State(), before) {
		t.Errorf("state changed after failed submit")
	}
}

func TestExec_SaveDedupes(t *testing.T) {
	c, _, book, out := newConsole(t, nil)

	run(c, "save", "set bedrooms 3", "save")

	if n := len(book.List()); n != 1 {
		t.Errorf("saved %d plans, want 1", n)
	}
	if !strings.Contains(out.String(), string(plans.NoticeSaved)) ||
		!strings.Contains(out.String(), string(plans.NoticeAlreadySaved)) {
		t.Errorf("missing notices:\n%s", out.String())
	}
}

func TestExec_FreshAndQuit(t *testing.T) {
	c, w, _, _ := newConsole(t, nil)

	run(c, "set land 2500", "next")
	run(c, "fresh")
	st := w.State()
	if st.Step != wizard.Basics || !reflect.DeepEqual(st.Config, wizard.DefaultConfiguration()) {
		t.Errorf("fresh did not reset: %+v", st)
	}

	if !c.Exec(context.Background(), "quit") {
		t.Errorf("quit did not stop")
	}
	if c.Exec(context.Background(), "   ") {
		t.Errorf("blank line stopped the console")
	}
}

func TestExec_Similar(t *testing.T) {
	c, _, _, out := newConsole(t, &fakeAPI{})
	run(c, "similar")
	if !strings.Contains(out.String(), "Modern 2BHK Villa") || !strings.Contains(out.String(), "₹25,00,000") {
		t.Errorf("similar output:\n%s", out.String())
	}

	offline, _, _, out := newConsole(t, nil)
	run(offline, "similar")
	if !strings.Contains(out.String(), "need a server") {
		t.Errorf("offline similar output:\n%s", out.String())
	}
}

func TestRun(t *testing.T) {
	c, w, _, out := newConsole(t, nil)

	err := c.Run(context.Background(), strings.NewReader("set floors 2\nshow\nquit\nset floors 3\n"))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if got := w.State().Config.Floors; got != 2 {
		t.Errorf("floors = %d, want 2", got)
	}
	if !strings.Contains(out.String(), "Step 1/5: basics") {
		t.Errorf("missing step header:\n%s", out.String())
	}
}
