// internal/app/system/httpapi/httpapi.go

// Package httpapi holds the small shared pieces of the JSON API:
// response encoding, the error envelope, body decoding with a size
// cap, and ObjectID extraction from chi route params.
package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// errorResponse is the envelope for every non-2xx response.
type errorResponse struct {
	Error string `json:"error"`
}

// WriteJSON encodes v with the given status. Encoding failures are
// ignored; the status line is already on the wire.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Error writes the error envelope with the given status.
func Error(w http.ResponseWriter, status int, message string) {
	WriteJSON(w, status, errorResponse{Error: message})
}

// DecodeJSON reads a JSON body into dst, capping the body at maxBytes
// and rejecting unknown fields. The returned error message is safe to
// echo to the client.
func DecodeJSON(w http.ResponseWriter, r *http.Request, maxBytes int64, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return errors.New("request body too large")
		}
		return errors.New("invalid JSON body")
	}
	return nil
}

// IDParam extracts a hex ObjectID from the named chi URL parameter.
func IDParam(r *http.Request, name string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, name))
	if err != nil {
		return primitive.NilObjectID, errors.New("invalid " + name)
	}
	return id, nil
}

// QueryID extracts a hex ObjectID from the named query parameter.
func QueryID(r *http.Request, name string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(r.URL.Query().Get(name))
	if err != nil {
		return primitive.NilObjectID, errors.New("invalid " + name)
	}
	return id, nil
}
