package organizationstore_test

import (
	"errors"
	"fmt"
	"testing"

	organizationstore "github.com/civicworks/civicbridge/internal/app/store/organizations"
	"github.com/civicworks/civicbridge/internal/app/system/indexes"
	"github.com/civicworks/civicbridge/internal/domain/models"
	"github.com/civicworks/civicbridge/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestCreate_DuplicateNameIsCaseInsensitive(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := indexes.EnsureAll(ctx, db); err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}

	store := organizationstore.New(db)

	org, err := store.Create(ctx, models.Organization{Name: "Helping Hands", City: "Springfield"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if org.Status != models.OrgStatusActive {
		t.Errorf("status: got %q, want %q", org.Status, models.OrgStatusActive)
	}
	if org.NameCI != "helping hands" {
		t.Errorf("name_ci: got %q", org.NameCI)
	}

	if _, err := store.Create(ctx, models.Organization{Name: "HELPING HANDS"}); !errors.Is(err, organizationstore.ErrDuplicateName) {
		t.Errorf("case-variant duplicate: got %v, want ErrDuplicateName", err)
	}
}

func TestGetByIDs(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	f := testutil.NewFixtures(t, db)
	store := organizationstore.New(db)

	a := f.CreateOrganization(ctx, "Alpha")
	b := f.CreateOrganization(ctx, "Beta")
	f.CreateOrganization(ctx, "Gamma")

	orgs, err := store.GetByIDs(ctx, []primitive.ObjectID{a.ID, b.ID})
	if err != nil {
		t.Fatalf("GetByIDs failed: %v", err)
	}
	if len(orgs) != 2 {
		t.Errorf("got %d organizations, want 2", len(orgs))
	}

	orgs, err = store.GetByIDs(ctx, nil)
	if err != nil {
		t.Fatalf("GetByIDs with no ids failed: %v", err)
	}
	if len(orgs) != 0 {
		t.Errorf("empty id list should return nothing")
	}
}

func TestUpdate(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	f := testutil.NewFixtures(t, db)
	store := organizationstore.New(db)

	org := f.CreateOrganization(ctx, "Helping Hands")

	if err := store.Update(ctx, org.ID, models.Organization{City: "Shelbyville"}); err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	got, err := store.GetByID(ctx, org.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.City != "Shelbyville" {
		t.Errorf("city: got %q, want Shelbyville", got.City)
	}
	if got.Name != "Helping Hands" {
		t.Errorf("untouched fields should survive, name is %q", got.Name)
	}

	if err := store.Update(ctx, primitive.NewObjectID(), models.Organization{City: "Nowhere"}); !errors.Is(err, organizationstore.ErrNotFound) {
		t.Errorf("unknown org: got %v, want ErrNotFound", err)
	}
}

func TestListPage_PagingAndPrefix(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	f := testutil.NewFixtures(t, db)
	store := organizationstore.New(db)

	// More than one page of active NGOs plus noise that must not appear
	for i := 0; i < 55; i++ {
		f.CreateOrganization(ctx, fmt.Sprintf("Org %03d", i))
	}
	inactive := f.CreateOrganization(ctx, "Org Inactive Zz")
	if err := store.Update(ctx, inactive.ID, models.Organization{Status: models.OrgStatusInactive}); err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	first, err := store.ListPage(ctx, "", "", "")
	if err != nil {
		t.Fatalf("ListPage failed: %v", err)
	}
	if len(first.Organizations) != 50 {
		t.Fatalf("first page: got %d rows, want 50", len(first.Organizations))
	}
	if first.HasPrev {
		t.Errorf("first page should have no previous page")
	}
	if !first.HasNext {
		t.Fatalf("first page should have a next page")
	}
	for i := 1; i < len(first.Organizations); i++ {
		if first.Organizations[i].NameCI < first.Organizations[i-1].NameCI {
			t.Errorf("rows out of order at index %d", i)
		}
	}

	second, err := store.ListPage(ctx, "", "", first.NextCursor)
	if err != nil {
		t.Fatalf("ListPage after cursor failed: %v", err)
	}
	if len(second.Organizations) != 5 {
		t.Errorf("second page: got %d rows, want 5", len(second.Organizations))
	}
	if !second.HasPrev {
		t.Errorf("second page should have a previous page")
	}
	if second.HasNext {
		t.Errorf("second page should be the last")
	}
	if second.Organizations[0].NameCI <= first.Organizations[len(first.Organizations)-1].NameCI {
		t.Errorf("second page should continue after the first")
	}

	back, err := store.ListPage(ctx, "", second.PrevCursor, "")
	if err != nil {
		t.Fatalf("ListPage before cursor failed: %v", err)
	}
	if len(back.Organizations) != 50 {
		t.Errorf("backward page: got %d rows, want 50", len(back.Organizations))
	}
	if back.Organizations[0].NameCI != first.Organizations[0].NameCI {
		t.Errorf("backward page should land on the first page")
	}

	// Prefix search folds case and excludes inactive NGOs
	hits, err := store.ListPage(ctx, "ORG 00", "", "")
	if err != nil {
		t.Fatalf("ListPage with prefix failed: %v", err)
	}
	if len(hits.Organizations) != 10 {
		t.Errorf("prefix page: got %d rows, want 10", len(hits.Organizations))
	}
	for _, o := range hits.Organizations {
		if o.Status != models.OrgStatusActive {
			t.Errorf("inactive NGO %q leaked into the directory", o.Name)
		}
	}
}
