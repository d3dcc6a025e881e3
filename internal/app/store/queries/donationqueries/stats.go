// internal/app/store/queries/donationqueries/stats.go
package donationqueries

import (
	"context"

	"github.com/civicworks/civicbridge/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Stats is the per-NGO donation aggregate consumed by dashboards.
type Stats struct {
	Count      int64             `json:"count"`
	TotalCents int64             `json:"total_cents"`
	Recent     []models.Donation `json:"recent"`
}

// ForOrganization aggregates donation count and sum for one NGO and
// attaches the most recent donations (up to recentN). Read-only.
func ForOrganization(ctx context.Context, db *mongo.Database, orgID primitive.ObjectID, recentN int64) (Stats, error) {
	c := db.Collection("donations")

	cur, err := c.Aggregate(ctx, mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.M{"organization_id": orgID}}},
		bson.D{{Key: "$group", Value: bson.M{
			"_id":   nil,
			"n":     bson.M{"$sum": 1},
			"total": bson.M{"$sum": "$amount_cents"},
		}}},
	})
	if err != nil {
		return Stats{}, err
	}
	defer cur.Close(ctx)

	var stats Stats
	if cur.Next(ctx) {
		var row struct {
			N     int64 `bson:"n"`
			Total int64 `bson:"total"`
		}
		if err := cur.Decode(&row); err != nil {
			return Stats{}, err
		}
		stats.Count = row.N
		stats.TotalCents = row.Total
	}
	if err := cur.Err(); err != nil {
		return Stats{}, err
	}

	if recentN <= 0 {
		recentN = 5
	}
	rcur, err := c.Find(ctx, bson.M{"organization_id": orgID},
		options.Find().
			SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}}).
			SetLimit(recentN))
	if err != nil {
		return Stats{}, err
	}
	defer rcur.Close(ctx)

	if err := rcur.All(ctx, &stats.Recent); err != nil {
		return Stats{}, err
	}
	if stats.Recent == nil {
		stats.Recent = []models.Donation{}
	}
	return stats, nil
}
