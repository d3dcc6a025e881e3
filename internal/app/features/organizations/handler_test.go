package organizations_test

import (
	"net/http"
	"testing"

	"github.com/civicworks/civicbridge/internal/app/features/organizations"
	organizationstore "github.com/civicworks/civicbridge/internal/app/store/organizations"
	"github.com/civicworks/civicbridge/internal/app/system/indexes"
	"github.com/civicworks/civicbridge/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

func TestRegister(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := indexes.EnsureAll(ctx, db); err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}
	h := organizations.NewHandler(organizationstore.New(db), zap.NewNop())

	post := func(body string) *testutil.ResponseRecorder {
		req := testutil.NewJSONRequest(http.MethodPost, "/organizations", body)
		rec := testutil.NewRecorder()
		h.Register(rec, req)
		return rec
	}

	rec := post(`{"name":"Helping Hands","city":"Springfield","contact_info":"hi@helpinghands.org"}`)
	rec.AssertStatus(t, http.StatusCreated)
	rec.AssertContains(t, "Helping Hands")

	post(`{"name":"helping HANDS"}`).AssertStatus(t, http.StatusConflict)
	post(`{"name":"   "}`).AssertStatus(t, http.StatusBadRequest)
	post(`{"name":`).AssertStatus(t, http.StatusBadRequest)
}

func TestView(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	f := testutil.NewFixtures(t, db)
	h := organizations.NewHandler(organizationstore.New(db), zap.NewNop())

	org := f.CreateOrganization(ctx, "Helping Hands")

	get := func(id string) *testutil.ResponseRecorder {
		req := testutil.NewJSONRequest(http.MethodGet, "/organizations/"+id, "")
		req = testutil.WithChiURLParam(req, "id", id)
		rec := testutil.NewRecorder()
		h.View(rec, req)
		return rec
	}

	rec := get(org.ID.Hex())
	rec.AssertStatus(t, http.StatusOK)
	rec.AssertContains(t, "Helping Hands")

	get(primitive.NewObjectID().Hex()).AssertStatus(t, http.StatusNotFound)
	get("not-an-id").AssertStatus(t, http.StatusBadRequest)
}

func TestList_EmptyDirectory(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := organizations.NewHandler(organizationstore.New(db), zap.NewNop())

	req := testutil.NewJSONRequest(http.MethodGet, "/organizations", "")
	rec := testutil.NewRecorder()
	h.List(rec, req)

	rec.AssertStatus(t, http.StatusOK)
	rec.AssertContains(t, `"organizations":[]`)
}
