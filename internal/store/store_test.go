package store_test

import (
	"context"
	"strings"
	"testing"

	"callsheet/internal/pricing"
	"callsheet/internal/services"
	"callsheet/internal/store"
	"callsheet/internal/testsupport"
)

func TestOpenAppliesMigrationsIdempotently(t *testing.T) {
	cfg := testsupport.NewConfig(t)

	st, err := store.Open(cfg)
	if err != nil {
		t.Fatalf("first open: %v", err)
	}
	if err := st.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	st, err = store.Open(cfg)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer st.Close()

	if _, err := st.ListClients(context.Background()); err != nil {
		t.Fatalf("ListClients after reopen: %v", err)
	}
}

func TestRateTableRoundTrip(t *testing.T) {
	st := testsupport.MustOpenStore(t, testsupport.NewConfig(t))
	ctx := context.Background()

	if err := st.SetRate(ctx, "edit_basic_60", 1200); err != nil {
		t.Fatal(err)
	}
	if err := st.SetRate(ctx, "edit_basic_60", 1300); err != nil {
		t.Fatal(err)
	}

	rates, err := st.RatesSnapshot(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if rates["edit_basic_60"] != 1300 {
		t.Fatalf("rate = %v, want 1300 after upsert", rates["edit_basic_60"])
	}

	if err := st.DeleteRate(ctx, "edit_basic_60"); err != nil {
		t.Fatal(err)
	}
	rates, _ = st.RatesSnapshot(ctx)
	if _, ok := rates["edit_basic_60"]; ok {
		t.Fatal("rate survived deletion")
	}

	if err := st.SetRate(ctx, "", 1); err == nil {
		t.Fatal("empty key must be rejected")
	}
}

func TestSeedRatesDoesNotClobber(t *testing.T) {
	st := testsupport.MustOpenStore(t, testsupport.NewConfig(t))
	ctx := context.Background()

	if err := st.SetRate(ctx, "rush_standard", 0.30); err != nil {
		t.Fatal(err)
	}
	if err := st.SeedRates(ctx, pricing.Rates{"rush_standard": 0.25, "rush_emergency": 0.50}); err != nil {
		t.Fatal(err)
	}

	rates, _ := st.RatesSnapshot(ctx)
	if rates["rush_standard"] != 0.30 {
		t.Fatalf("operator edit clobbered by seed: %v", rates["rush_standard"])
	}
	if rates["rush_emergency"] != 0.50 {
		t.Fatalf("seed missing: %v", rates["rush_emergency"])
	}
}

func TestClientCRUD(t *testing.T) {
	st := testsupport.MustOpenStore(t, testsupport.NewConfig(t))
	ctx := context.Background()

	created, err := st.CreateClient(ctx, store.Client{Name: "Acme Media", Email: "hello@acme.test"})
	if err != nil {
		t.Fatal(err)
	}
	if created.ID == 0 || created.CreatedAt.IsZero() {
		t.Fatalf("created = %+v", created)
	}

	created.Company = "Acme"
	updated, err := st.UpdateClient(ctx, *created)
	if err != nil {
		t.Fatal(err)
	}
	if updated.Company != "Acme" {
		t.Fatalf("updated = %+v", updated)
	}

	if err := st.DeleteClient(ctx, created.ID); err != nil {
		t.Fatal(err)
	}
	if _, err := st.GetClient(ctx, created.ID); !services.IsCallerError(err) {
		t.Fatalf("expected not-found after delete, got %v", err)
	}
	if _, err := st.CreateClient(ctx, store.Client{}); err == nil {
		t.Fatal("nameless client must be rejected")
	}
}

func TestProjectListFilterAndCascade(t *testing.T) {
	st := testsupport.MustOpenStore(t, testsupport.NewConfig(t))
	ctx := context.Background()

	a := testsupport.NewClient(t, st, "Client A")
	b := testsupport.NewClient(t, st, "Client B")
	pa := testsupport.NewProject(t, st, a.ID, "Brand Film")
	testsupport.NewProject(t, st, b.ID, "Event Recap")

	forA, err := st.ListProjects(ctx, a.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(forA) != 1 || forA[0].ID != pa.ID {
		t.Fatalf("projects for client A = %+v", forA)
	}
	all, _ := st.ListProjects(ctx, 0)
	if len(all) != 2 {
		t.Fatalf("all projects = %+v", all)
	}

	// Deleting the client cascades to its projects.
	if err := st.DeleteClient(ctx, a.ID); err != nil {
		t.Fatal(err)
	}
	if _, err := st.GetProject(ctx, pa.ID); !services.IsCallerError(err) {
		t.Fatalf("project should cascade away, got %v", err)
	}
}

func deliverableRates() map[string]float64 {
	return map[string]float64{
		"edit_basic_60":      1000,
		"colour_standard_60": 200,
		"subtitles_basic_60": 150,
	}
}

func TestSaveDeliverableRecomputesCost(t *testing.T) {
	st := testsupport.MustOpenStore(t, testsupport.NewConfig(t))
	ctx := context.Background()
	testsupport.SeedRates(t, st, deliverableRates())

	client := testsupport.NewClient(t, st, "Acme")
	project := testsupport.NewProject(t, st, client.ID, "Launch Video")

	d := store.Deliverable{
		ProjectID:          project.ID,
		Title:              "Hero cut",
		VideoLengthSeconds: 55,
		EditType:           pricing.EditBasic,
		ColourGrading:      pricing.ColourStandard,
		Subtitles:          pricing.SubtitlesBasic,
		Rush:               pricing.RushNone,
		Cost:               999999, // must be ignored
	}
	saved, err := st.SaveDeliverable(ctx, d)
	if err != nil {
		t.Fatal(err)
	}
	if saved.Bracket != pricing.Bracket60 {
		t.Fatalf("bracket = %s", saved.Bracket)
	}
	if saved.Cost != 1350 {
		t.Fatalf("cost = %v, want 1350 (1000+200+150)", saved.Cost)
	}

	// Full replacement recomputes against the edited inputs.
	saved.Rush = pricing.RushStandard
	replaced, err := st.SaveDeliverable(ctx, *saved)
	if err != nil {
		t.Fatal(err)
	}
	if replaced.Cost != 1687.50 {
		t.Fatalf("rush cost = %v, want 1687.50", replaced.Cost)
	}
	if replaced.ID != saved.ID {
		t.Fatalf("replacement changed the row ID")
	}
}

func TestSaveDeliverableValidation(t *testing.T) {
	st := testsupport.MustOpenStore(t, testsupport.NewConfig(t))
	client := testsupport.NewClient(t, st, "Acme")
	project := testsupport.NewProject(t, st, client.ID, "P")

	base := store.Deliverable{
		ProjectID:          project.ID,
		Title:              "x",
		VideoLengthSeconds: 60,
		EditType:           pricing.EditBasic,
		ColourGrading:      pricing.ColourNone,
		Subtitles:          pricing.SubtitlesNone,
		Rush:               pricing.RushNone,
	}

	bad := base
	bad.EditType = "director_cut"
	if _, err := st.SaveDeliverable(context.Background(), bad); !services.IsCallerError(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	bad = base
	bad.AdditionalFormats = -1
	if _, err := st.SaveDeliverable(context.Background(), bad); !services.IsCallerError(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	bad = base
	bad.ProjectID = 9999
	if _, err := st.SaveDeliverable(context.Background(), bad); !services.IsCallerError(err) {
		t.Fatalf("expected not-found for missing project, got %v", err)
	}
}

func TestSaveShootRecomputesCost(t *testing.T) {
	st := testsupport.MustOpenStore(t, testsupport.NewConfig(t))
	ctx := context.Background()
	testsupport.SeedRates(t, st, map[string]float64{
		"shoot_day_full":     1400,
		"camera_fx6_full":    400,
		"second_shooter_half": 350,
	})

	client := testsupport.NewClient(t, st, "Acme")
	project := testsupport.NewProject(t, st, client.ID, "Launch Video")

	sh := store.Shoot{
		ProjectID:     project.ID,
		Label:         "Day 1",
		Type:          pricing.ShootFullDay,
		CameraBody:    "fx6",
		SecondShooter: pricing.AddOn{Enabled: true, Day: pricing.DayHalf},
		Travel:        pricing.TravelDriving,
		DistanceKm:    50,
		ExtraEquipment: []pricing.EquipmentItem{
			{Name: "drone", Cost: 275},
		},
	}
	saved, err := st.SaveShoot(ctx, sh, 5)
	if err != nil {
		t.Fatal(err)
	}
	// 1400 + 400 + 350 + 275 + 50*2*5
	if saved.Cost != 2925 {
		t.Fatalf("cost = %v, want 2925", saved.Cost)
	}
	if len(saved.ExtraEquipment) != 1 || saved.ExtraEquipment[0].Name != "drone" {
		t.Fatalf("extra equipment = %+v", saved.ExtraEquipment)
	}

	loaded, err := st.GetShoot(ctx, saved.ID)
	if err != nil {
		t.Fatal(err)
	}
	if loaded.SecondShooter.Day != pricing.DayHalf {
		t.Fatalf("add-on day lost in round trip: %+v", loaded.SecondShooter)
	}
}

func TestGenerateInvoiceSnapshotsAmounts(t *testing.T) {
	st := testsupport.MustOpenStore(t, testsupport.NewConfig(t))
	ctx := context.Background()
	testsupport.SeedRates(t, st, map[string]float64{
		"edit_basic_60":  1000,
		"shoot_day_half": 800,
	})

	client := testsupport.NewClient(t, st, "Acme")
	project := testsupport.NewProject(t, st, client.ID, "Launch Video")

	if _, err := st.SaveDeliverable(ctx, store.Deliverable{
		ProjectID: project.ID, Title: "Hero cut", VideoLengthSeconds: 50,
		EditType: pricing.EditBasic, ColourGrading: pricing.ColourNone,
		Subtitles: pricing.SubtitlesNone, Rush: pricing.RushNone,
	}); err != nil {
		t.Fatal(err)
	}
	if _, err := st.SaveShoot(ctx, store.Shoot{
		ProjectID: project.ID, Type: pricing.ShootHalfDay,
	}, 5); err != nil {
		t.Fatal(err)
	}

	inv, err := st.GenerateInvoice(ctx, project.ID, "USD")
	if err != nil {
		t.Fatal(err)
	}
	if inv.Total != 1800 {
		t.Fatalf("total = %v, want 1800", inv.Total)
	}
	if len(inv.Lines) != 2 {
		t.Fatalf("lines = %+v", inv.Lines)
	}
	if !strings.HasPrefix(inv.Number, "INV-") {
		t.Fatalf("number = %q", inv.Number)
	}

	// A later rate change must not alter the issued invoice.
	if err := st.SetRate(ctx, "edit_basic_60", 5000); err != nil {
		t.Fatal(err)
	}
	again, err := st.GetInvoice(ctx, inv.ID)
	if err != nil {
		t.Fatal(err)
	}
	if again.Total != 1800 {
		t.Fatalf("issued invoice changed: %v", again.Total)
	}

	second, err := st.GenerateInvoice(ctx, project.ID, "USD")
	if err != nil {
		t.Fatal(err)
	}
	if second.Number == inv.Number {
		t.Fatalf("invoice numbers must be unique: %s", second.Number)
	}
}

func TestGenerateInvoiceEmptyProjectRejected(t *testing.T) {
	st := testsupport.MustOpenStore(t, testsupport.NewConfig(t))
	client := testsupport.NewClient(t, st, "Acme")
	project := testsupport.NewProject(t, st, client.ID, "Empty")

	if _, err := st.GenerateInvoice(context.Background(), project.ID, "USD"); !services.IsCallerError(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestFormatMoney(t *testing.T) {
	if got := store.FormatMoney("USD", 1250.5); !strings.Contains(got, "1,250.50") {
		t.Fatalf("FormatMoney USD = %q", got)
	}
	if got := store.FormatMoney("???", 10); got != "10.00 ???" {
		t.Fatalf("FormatMoney fallback = %q", got)
	}
}
