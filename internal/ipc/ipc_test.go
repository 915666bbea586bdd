package ipc_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"callsheet/internal/api"
	"callsheet/internal/daemon"
	"callsheet/internal/ipc"
	"callsheet/internal/logging"
	"callsheet/internal/pricing"
	"callsheet/internal/storage"
	"callsheet/internal/store"
	"callsheet/internal/testsupport"
	"callsheet/internal/uploads"
)

func startDaemon(t *testing.T) *ipc.Client {
	t.Helper()

	cfg := testsupport.NewConfig(t)
	st := testsupport.MustOpenStore(t, cfg)

	ctx := context.Background()
	d, err := daemon.New(ctx, cfg, st, logging.NewNop())
	if err != nil {
		t.Fatalf("create daemon: %v", err)
	}
	if err := d.Start(ctx); err != nil {
		t.Fatalf("start daemon: %v", err)
	}
	t.Cleanup(d.Stop)

	server, err := ipc.NewServer(ctx, cfg.SocketPath(), d, d.Stop, logging.NewNop())
	if err != nil {
		t.Fatalf("create ipc server: %v", err)
	}
	server.Serve()
	t.Cleanup(server.Close)

	client, err := ipc.Dial(cfg.SocketPath())
	if err != nil {
		t.Fatalf("dial daemon socket: %v", err)
	}
	t.Cleanup(func() { client.Close() })
	return client
}

func TestStatusReportsRunningDaemon(t *testing.T) {
	client := startDaemon(t)

	status, err := client.Status()
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	if !status.Running {
		t.Fatal("expected daemon to report running")
	}
	if status.DatabasePath == "" {
		t.Fatal("expected database path in status")
	}
}

func TestRateRoundTrip(t *testing.T) {
	client := startDaemon(t)

	if err := client.RateSet("edit_basic_60", 1000); err != nil {
		t.Fatalf("set rate: %v", err)
	}
	rates, err := client.RateList()
	if err != nil {
		t.Fatalf("list rates: %v", err)
	}
	if rates["edit_basic_60"] != 1000 {
		t.Fatalf("expected edit_basic_60 = 1000, got %v", rates["edit_basic_60"])
	}

	if err := client.RateDelete("edit_basic_60"); err != nil {
		t.Fatalf("delete rate: %v", err)
	}
	rates, err = client.RateList()
	if err != nil {
		t.Fatalf("list rates after delete: %v", err)
	}
	if _, ok := rates["edit_basic_60"]; ok {
		t.Fatal("expected rate to be removed")
	}
}

func TestRecordsAndPricingOverSocket(t *testing.T) {
	client := startDaemon(t)

	if err := client.RateSet("edit_basic_60", 1000); err != nil {
		t.Fatalf("seed rate: %v", err)
	}
	if err := client.RateSet("colour_standard_60", 200); err != nil {
		t.Fatalf("seed rate: %v", err)
	}

	cl, err := client.ClientSave(store.Client{Name: "Acme Films", Email: "hello@acme.test"})
	if err != nil {
		t.Fatalf("save client: %v", err)
	}
	if cl.ID == 0 {
		t.Fatal("expected client id to be assigned")
	}

	project, err := client.ProjectSave(store.Project{ClientID: cl.ID, Name: "Launch Video"})
	if err != nil {
		t.Fatalf("save project: %v", err)
	}

	d, err := client.DeliverableSave(store.Deliverable{
		ProjectID:          project.ID,
		Title:              "Hero cut",
		VideoLengthSeconds: 55,
		EditType:           pricing.EditBasic,
		ColourGrading:      pricing.ColourStandard,
		Subtitles:          pricing.SubtitlesNone,
		Rush:               pricing.RushNone,
	})
	if err != nil {
		t.Fatalf("save deliverable: %v", err)
	}
	if d.Cost != 1200 {
		t.Fatalf("expected stored cost 1200, got %v", d.Cost)
	}
	if d.Bracket != pricing.Bracket60 {
		t.Fatalf("expected bracket %q, got %q", pricing.Bracket60, d.Bracket)
	}

	quote, err := client.PriceDeliverable(api.DeliverableInput{
		VideoLengthSeconds: 55,
		EditType:           "basic",
		ColourGrading:      "standard",
		Subtitles:          "none",
		Rush:               "none",
	})
	if err != nil {
		t.Fatalf("price deliverable: %v", err)
	}
	if quote.Cost != 1200 {
		t.Fatalf("expected quote 1200, got %v", quote.Cost)
	}
}

func TestUploadSubmitOverSocket(t *testing.T) {
	client := startDaemon(t)

	path := filepath.Join(t.TempDir(), "cut.mp4")
	testsupport.WriteFile(t, path, "final render")

	view, err := client.UploadSubmit(ipc.UploadSubmitRequest{
		Path:     path,
		FolderID: storage.MemoryRootID,
	})
	if err != nil {
		t.Fatalf("submit upload: %v", err)
	}
	if view.ID == "" {
		t.Fatal("expected job id")
	}

	deadline := time.Now().Add(5 * time.Second)
	for {
		got, err := client.UploadDescribe(view.ID)
		if err != nil {
			t.Fatalf("describe upload: %v", err)
		}
		if got.Status == uploads.StatusDone {
			if got.SuccessCount != 1 {
				t.Fatalf("expected 1 uploaded file, got %d", got.SuccessCount)
			}
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("upload did not finish, status %s", got.Status)
		}
		time.Sleep(10 * time.Millisecond)
	}

	jobs, err := client.UploadList()
	if err != nil {
		t.Fatalf("list uploads: %v", err)
	}
	if len(jobs) != 1 {
		t.Fatalf("expected one job, got %d", len(jobs))
	}
}

func TestUploadActionsRejectUnknownJob(t *testing.T) {
	client := startDaemon(t)

	if err := client.UploadPause("missing"); err == nil {
		t.Fatal("expected error for unknown job")
	}
	if err := client.UploadResolve("missing", "skip", false); err == nil {
		t.Fatal("expected error for unknown job")
	}
}

func TestDialFailsWithoutSocket(t *testing.T) {
	if _, err := ipc.Dial(filepath.Join(t.TempDir(), "missing.sock")); err == nil {
		t.Fatal("expected dial error for missing socket")
	}
}
