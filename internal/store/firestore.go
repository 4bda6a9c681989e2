package store

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const firestoreCollection = "documents"

// firestoreDocument is the stored shape: the serialized payload is kept as one
// string field so the wire format stays byte-identical across backends.
type firestoreDocument struct {
	Body      string    `firestore:"body"`
	UpdatedAt time.Time `firestore:"updated_at"`
}

type firestoreDocs struct {
	client *firestore.Client
}

// NewFirestoreStore returns a Store backed by Firestore documents. It exists
// for installations that want their save synced through a project instead of a
// local file.
func NewFirestoreStore(client *firestore.Client) Store {
	return newStore(&firestoreDocs{client: client})
}

func (f *firestoreDocs) get(ctx context.Context, name string) ([]byte, error) {
	snap, err := f.client.Collection(firestoreCollection).Doc(name).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("read document %s: %w", name, err)
	}

	var doc firestoreDocument
	if err := snap.DataTo(&doc); err != nil {
		return nil, fmt.Errorf("unmarshal document %s: %w", name, err)
	}
	return []byte(doc.Body), nil
}

func (f *firestoreDocs) put(ctx context.Context, name string, body []byte) error {
	_, err := f.client.Collection(firestoreCollection).Doc(name).Set(ctx, firestoreDocument{
		Body:      string(body),
		UpdatedAt: time.Now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("write document %s: %w", name, err)
	}
	return nil
}

func (f *firestoreDocs) Close() error {
	return f.client.Close()
}
