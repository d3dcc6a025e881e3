// internal/app/store/organizations/organizationstore.go
package organizationstore

import (
	"context"
	"errors"
	"time"

	"github.com/civicworks/civicbridge/internal/app/system/paging"
	"github.com/civicworks/civicbridge/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Store manages the NGO directory. Name uniqueness is
// case-insensitive, backed by the unique index on name_ci.
type Store struct {
	c *mongo.Collection
}

var (
	ErrNotFound      = errors.New("organization not found")
	ErrDuplicateName = errors.New("an organization with this name already exists")
)

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("organizations")}
}

func (s *Store) Create(ctx context.Context, org models.Organization) (models.Organization, error) {
	now := time.Now().UTC()
	org.ID = primitive.NewObjectID()
	org.NameCI = text.Fold(org.Name)
	if org.Status == "" {
		org.Status = models.OrgStatusActive
	}
	org.CreatedAt = now
	org.UpdatedAt = now
	_, err := s.c.InsertOne(ctx, org)
	if err != nil {
		if wafflemongo.IsDup(err) {
			return models.Organization{}, ErrDuplicateName
		}
		return models.Organization{}, err
	}
	return org, nil
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Organization, error) {
	var org models.Organization
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&org)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Organization{}, ErrNotFound
	}
	if err != nil {
		return models.Organization{}, err
	}
	return org, nil
}

// GetByIDs loads multiple organizations by their ObjectIDs.
func (s *Store) GetByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Organization, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	cur, err := s.c.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var orgs []models.Organization
	if err := cur.All(ctx, &orgs); err != nil {
		return nil, err
	}
	return orgs, nil
}

// Update modifies an organization's mutable fields and refreshes
// UpdatedAt. Empty fields are left untouched.
func (s *Store) Update(ctx context.Context, id primitive.ObjectID, org models.Organization) error {
	set := bson.M{
		"updated_at": time.Now().UTC(),
	}
	if org.Name != "" {
		set["name"] = org.Name
		set["name_ci"] = text.Fold(org.Name)
	}
	if org.City != "" {
		set["city"] = org.City
	}
	if org.ContactInfo != "" {
		set["contact_info"] = org.ContactInfo
	}
	if org.Status != "" {
		set["status"] = org.Status
	}
	res, err := s.c.UpdateByID(ctx, id, bson.M{"$set": set})
	if err != nil {
		if wafflemongo.IsDup(err) {
			return ErrDuplicateName
		}
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Page is one page of the directory listing.
type Page struct {
	Organizations []models.Organization
	HasPrev       bool
	HasNext       bool
	PrevCursor    string
	NextCursor    string
}

// ListPage returns a keyset-paginated slice of the directory, ordered
// by folded name. q, when set, is a case-insensitive name prefix
// filter. before/after are opaque cursors from a previous page.
func (s *Store) ListPage(ctx context.Context, q, before, after string) (Page, error) {
	cfg := paging.ConfigureKeyset(before, after)

	filter := bson.M{"status": models.OrgStatusActive}
	if lo, hi := text.PrefixRange(q); lo != "" {
		filter["name_ci"] = bson.M{"$gte": lo, "$lt": hi}
	}
	if ks := cfg.KeysetWindow("name_ci"); ks != nil {
		for k, v := range ks {
			filter[k] = v
		}
	}

	find := options.Find()
	cfg.ApplyToFind(find, "name_ci")

	cur, err := s.c.Find(ctx, filter, find)
	if err != nil {
		return Page{}, err
	}
	defer cur.Close(ctx)

	var rows []models.Organization
	if err := cur.All(ctx, &rows); err != nil {
		return Page{}, err
	}

	trim := paging.TrimPage(&rows, before, after)
	if cfg.Direction == paging.Backward {
		paging.Reverse(rows)
	}

	prev, next := paging.BuildCursors(rows,
		func(o models.Organization) string { return o.NameCI },
		func(o models.Organization) primitive.ObjectID { return o.ID },
	)

	return Page{
		Organizations: rows,
		HasPrev:       trim.HasPrev,
		HasNext:       trim.HasNext,
		PrevCursor:    prev,
		NextCursor:    next,
	}, nil
}
