package store

import (
	"context"
	"path/filepath"
	"testing"

	"leadgen-engine/internal/domain"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	if err := Migrate(db.Pool); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func TestMigrateIdempotent(t *testing.T) {
	db := openTestDB(t)
	if err := Migrate(db.Pool); err != nil {
		t.Fatalf("second migrate: %v", err)
	}
}

func TestRunLifecycle(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	id := NewRunID()
	criteria := domain.SearchCriteria{Industries: []string{"dental"}}
	if err := InsertRun(ctx, db.Pool, id, criteria); err != nil {
		t.Fatalf("insert run: %v", err)
	}

	r, err := GetRun(ctx, db.Pool, id)
	if err != nil {
		t.Fatalf("get run: %v", err)
	}
	if r.Status != RunStatusRunning {
		t.Errorf("status = %q, want running", r.Status)
	}
	if len(r.Criteria.Industries) != 1 || r.Criteria.Industries[0] != "dental" {
		t.Errorf("criteria round-trip: %+v", r.Criteria)
	}

	if err := FinishRun(ctx, db.Pool, id, []string{"q1", "q2"}, 7, ""); err != nil {
		t.Fatalf("finish run: %v", err)
	}
	r, err = GetRun(ctx, db.Pool, id)
	if err != nil {
		t.Fatalf("get run after finish: %v", err)
	}
	if r.Status != RunStatusDone || r.LeadCount != 7 || len(r.QueriesUsed) != 2 {
		t.Errorf("finished run = %+v", r)
	}
	if r.FinishedAt == "" {
		t.Error("missing finished_at")
	}
}

func TestFinishRunWithError(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	id := NewRunID()
	if err := InsertRun(ctx, db.Pool, id, domain.SearchCriteria{}); err != nil {
		t.Fatal(err)
	}
	if err := FinishRun(ctx, db.Pool, id, nil, 0, "gateway unavailable"); err != nil {
		t.Fatal(err)
	}
	r, err := GetRun(ctx, db.Pool, id)
	if err != nil {
		t.Fatal(err)
	}
	if r.Status != RunStatusFailed || r.Error != "gateway unavailable" {
		t.Errorf("failed run = %+v", r)
	}
}

func TestLeadsInsertListDelete(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	runID := NewRunID()
	if err := InsertRun(ctx, db.Pool, runID, domain.SearchCriteria{}); err != nil {
		t.Fatal(err)
	}

	leads := []domain.CandidateLead{
		{ID: "lead_a", Name: "Jane Smith", Company: "Acme Inc", JobTitle: "Manager",
			Email: "jane@acme.com", Score: 90, SourcePlatform: "linkedin"},
		{ID: "lead_b", Name: "Bob Lee", Company: "Beta LLC", JobTitle: "Owner",
			Score: 65, SourcePlatform: "reddit"},
	}
	if err := InsertLeads(ctx, db.Pool, runID, leads); err != nil {
		t.Fatalf("insert leads: %v", err)
	}

	got, err := ListLeads(ctx, db.Pool, ListLeadsOpts{RunID: runID})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d leads, want 2", len(got))
	}
	if got[0].Score < got[1].Score {
		t.Error("default sort should be score desc")
	}

	got, err = ListLeads(ctx, db.Pool, ListLeadsOpts{Platform: "reddit"})
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].ID != "lead_b" {
		t.Errorf("platform filter: %+v", got)
	}

	got, err = ListLeads(ctx, db.Pool, ListLeadsOpts{MinScore: 80})
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].ID != "lead_a" {
		t.Errorf("min score filter: %+v", got)
	}

	ok, err := DeleteLead(ctx, db.Pool, "lead_a")
	if err != nil || !ok {
		t.Fatalf("delete lead: ok=%v err=%v", ok, err)
	}
	ok, err = DeleteLead(ctx, db.Pool, "lead_a")
	if err != nil || ok {
		t.Fatalf("second delete should report missing: ok=%v err=%v", ok, err)
	}
}

func TestDeleteRunCascades(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	runID := NewRunID()
	if err := InsertRun(ctx, db.Pool, runID, domain.SearchCriteria{}); err != nil {
		t.Fatal(err)
	}
	if err := InsertLeads(ctx, db.Pool, runID, []domain.CandidateLead{
		{ID: "lead_x", Name: "A", Company: "B", JobTitle: "C"},
	}); err != nil {
		t.Fatal(err)
	}

	if err := DeleteRun(ctx, db.Pool, runID); err != nil {
		t.Fatalf("delete run: %v", err)
	}
	got, err := ListLeads(ctx, db.Pool, ListLeadsOpts{RunID: runID})
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 0 {
		t.Errorf("leads survived run deletion: %+v", got)
	}
}

func TestCompanyDomainCache(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	d, err := GetCompanyDomain(ctx, db.Pool, "Acme Inc")
	if err != nil || d != "" {
		t.Fatalf("empty cache: d=%q err=%v", d, err)
	}

	if err := UpsertCompanyDomain(ctx, db.Pool, "  Acme   Inc ", "Acme.COM"); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	d, err = GetCompanyDomain(ctx, db.Pool, "acme inc")
	if err != nil {
		t.Fatal(err)
	}
	if d != "acme.com" {
		t.Errorf("domain = %q, want acme.com", d)
	}
}
