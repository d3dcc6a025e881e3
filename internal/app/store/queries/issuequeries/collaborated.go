// internal/app/store/queries/issuequeries/collaborated.go
package issuequeries

import (
	"context"

	"github.com/civicworks/civicbridge/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// ListCollaborated returns the issues an NGO co-owns through accepted
// collaboration requests, whether it was the requesting or the
// responding side. An issue shows up once even when several accepted
// requests reference it.
func ListCollaborated(ctx context.Context, db *mongo.Database, orgID primitive.ObjectID) ([]models.Issue, error) {
	pipe := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.M{
			"status": models.CollabStatusAccepted,
			"$or": bson.A{
				bson.M{"requested_by": orgID},
				bson.M{"requested_to": orgID},
			},
		}}},
		bson.D{{Key: "$group", Value: bson.M{
			"_id":        "$issue_id",
			"first_seen": bson.M{"$min": "$created_at"},
		}}},
		bson.D{{Key: "$lookup", Value: bson.M{
			"from":         "issues",
			"localField":   "_id",
			"foreignField": "_id",
			"as":           "issue",
		}}},
		bson.D{{Key: "$unwind", Value: "$issue"}},
		bson.D{{Key: "$sort", Value: bson.D{
			{Key: "issue.created_at", Value: -1},
			{Key: "issue._id", Value: -1},
		}}},
		bson.D{{Key: "$replaceRoot", Value: bson.M{"newRoot": "$issue"}}},
	}

	cur, err := db.Collection("collab_requests").Aggregate(ctx, pipe)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.Issue
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
